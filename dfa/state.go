// Package dfa performs subset construction over an nfa.Nfa: each DFA
// state names a set of NFA states (canonicalized via their combined
// epsilon/omega closure), transitions are computed over a disjoint key
// cover, and a state's action is the dominant action among its member
// NFA states.
package dfa

import (
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/term"
)

// StateID names one state in a Dfa. The zero value is a valid state
// (the start state is always built first); use InvalidState to test for
// absence.
type StateID uint32

// InvalidState is the sentinel returned when a lookup fails.
const InvalidState StateID = 0xFFFFFFFF

// Edge is one outgoing transition: take it when the input matches Key,
// landing on Target.
type Edge struct {
	Key    key.Key
	Target StateID
}

// DfaState is one node of the automaton: a deterministic set of outgoing
// edges over pairwise-disjoint keys, whether it terminates a match, and
// the dominant action of its member NFA states (if any carry one) plus
// the lexer state the scanner should re-enter afterward.
type DfaState struct {
	id         StateID
	edges      []Edge
	terminal   bool
	action     term.Action
	transition string
	members    []uint32 // the NFA state IDs this DFA state represents, sorted
}

// ID returns the state's identity.
func (s *DfaState) ID() StateID { return s.id }

// Edges returns the state's outgoing transitions, over pairwise-disjoint
// keys. Must not be mutated.
func (s *DfaState) Edges() []Edge { return s.edges }

// Terminal reports whether this state contains the NFA's shared end
// state — whether reaching it completes a match.
func (s *DfaState) Terminal() bool { return s.terminal }

// Action returns the state's dominant action, or the empty Action if
// none of its member NFA states carries an entry/match action. A
// non-terminal state can carry one: an entry action sits on a state
// that does not reach the shared end.
func (s *DfaState) Action() term.Action { return s.action }

// Transition names the lexer state the generated scanner should re-enter
// once Action fires, mirroring the contributing NfaState's own field.
func (s *DfaState) Transition() string { return s.transition }

// Members returns the sorted NFA state IDs this DFA state represents.
// Exposed for minimization, which needs to compare and re-key these sets.
func (s *DfaState) Members() []uint32 { return s.members }

// NewState constructs a DfaState directly from already-computed fields.
// Subset construction never needs this (it derives each field as it
// discovers a subset); it exists for downstream stages — minimization —
// that assemble a fresh Dfa from an existing one's per-state data rather
// than from an Nfa via subset construction.
func NewState(id StateID, edges []Edge, terminal bool, action term.Action, transition string, members []uint32) DfaState {
	return DfaState{
		id:         id,
		edges:      edges,
		terminal:   terminal,
		action:     action,
		transition: transition,
		members:    members,
	}
}
