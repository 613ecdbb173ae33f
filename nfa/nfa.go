package nfa

import (
	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/ruledef"
)

// Nfa is a finished, closed automaton: every state's epsilon/omega
// closure is frozen and every residual catch-all edge has been resolved
// to a concrete key.
type Nfa struct {
	states []NfaState
	start  StateID
	end    StateID
}

// Start returns the automaton's entry point: the "default" state
// block's own start state.
func (n *Nfa) Start() StateID { return n.start }

// End returns the shared accept state every completed match closes to.
func (n *Nfa) End() StateID { return n.end }

// State returns the state named by id.
func (n *Nfa) State(id StateID) *NfaState { return &n.states[id] }

// Len returns the number of states.
func (n *Nfa) Len() int { return len(n.states) }

// IsEnd reports whether a state set (as produced by following a state's
// Closure) contains the shared end state — the "terminal" test subset
// construction needs to decide whether a DFA state accepts.
func (n *Nfa) IsEnd(set []StateID) bool {
	for _, id := range set {
		if id == n.end {
			return true
		}
	}
	return false
}

// Build compiles a whole rule file into one Nfa: every state block's
// rules are wrapped with their entry/match actions and transition
// wiring, combined via OR into that block's subgraph, and the file's
// "default" block becomes the automaton's start state.
func Build(file *ruledef.File, enc *encoding.Encoding) (*Nfa, error) {
	return buildProgram(file, enc)
}
