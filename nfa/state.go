// Package nfa builds the Thompson-construction NFA that regexsyntax and
// ruledef fragments compile down to: one state per constructor, epsilon
// and omega edges for control flow, and a single shared accept path that
// every matching rule's action funnels into.
//
// The package exposes two entry points: Builder, a low-level Thompson
// construction over term.Term trees (one state/method per NfaBuilder
// operation), and Build, the rule-file-level driver that wires a whole
// ruledef.File's state blocks into one automaton.
package nfa

import (
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/term"
)

// StateID names one state in an Nfa. The zero value is a valid state:
// state 0 is always the global end (see Nfa.End).
type StateID uint32

// InvalidState is the sentinel returned when a lookup fails.
const InvalidState StateID = 0xFFFFFFFF

// Edge is one outgoing transition: take it when the input matches Key,
// landing on Target.
type Edge struct {
	Key    key.Key
	Target StateID
}

// NfaState is one node of the automaton. Per state: a set of outgoing
// edges (possibly overlapping keys — subset construction disjoints
// them), an optional dominant Action, and the downstream "next scan
// state" metadata carried on accept states.
type NfaState struct {
	id         StateID
	edges      []Edge
	action     term.Action
	transition string // meaningful only when !action.IsEmpty()
	closure    []StateID
	closed     bool
}

// ID returns the state's identity.
func (s *NfaState) ID() StateID { return s.id }

// Edges returns the state's outgoing transitions. Must not be mutated.
func (s *NfaState) Edges() []Edge { return s.edges }

// Action returns the state's action, or the empty Action if it carries
// none.
func (s *NfaState) Action() term.Action { return s.action }

// Transition names the lexer state the generated scanner should re-enter
// after this state's Action fires ("" for the top-level default state,
// matching ruledef.Action.Transition's own convention).
func (s *NfaState) Transition() string { return s.transition }

// Closure returns the state's frozen epsilon/omega closure: every state
// (including itself) reachable without consuming input. Populated once
// construction finishes; calling it on an open Nfa panics.
func (s *NfaState) Closure() []StateID {
	if !s.closed {
		panic("nfa: Closure called before the automaton was closed")
	}
	return s.closure
}
