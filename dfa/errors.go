package dfa

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/OlegKalashnikov2001/lexergen/term"
)

// ErrEmptyAutomaton is the sentinel EmptyAutomatonError wraps, so callers
// can test for it with errors.Is without depending on the struct's
// fields.
var ErrEmptyAutomaton = errors.New("dfa: automaton has no terminal states")

// EmptyAutomatonError reports a Dfa with no terminal state at all: no
// member of any reachable subset ever included the NFA's shared end
// state, meaning the rule file that produced it declared no match
// action anywhere. Such a Dfa can never accept anything, so Build aborts
// rather than handing minimize/shape a DFA that is a codegen dead end.
type EmptyAutomatonError struct {
	States int
}

func (e *EmptyAutomatonError) Error() string {
	return fmt.Sprintf("dfa: build produced %d state(s), none terminal: %s", e.States, ErrEmptyAutomaton)
}

func (e *EmptyAutomatonError) Unwrap() error { return ErrEmptyAutomaton }

// ActionConflictError reports two NFA states merged into one DFA state
// carrying actions tied on precedence but structurally unequal — the
// rule file assigns two different, equally-prioritized actions to the
// same lexical position, and there is no principled way to pick one.
type ActionConflictError struct {
	First, Second term.Action
}

func (e *ActionConflictError) Error() string {
	return fmt.Sprintf("dfa: action conflict: %s vs %s", e.First, e.Second)
}

// NoDefaultActionError reports that Lex hit a dead end — a state with no
// matching transition for the current rune — in a state that carries no
// action to close the pending token out with. A Dfa built from a rule
// file whose non-accepting dead ends are all unreachable from the start
// state never hits this; it means some input this Dfa accepts byte-rejects
// has no rule covering it.
type NoDefaultActionError struct {
	State    StateID
	Position int
}

func (e *NoDefaultActionError) Error() string {
	return fmt.Sprintf("dfa: state %d has no transition and no action to close the token at position %d", e.State, e.Position)
}

// UnmatchedCharError reports that Lex, having just closed a token, could
// not restart at the start state on the rune that ended it — the
// automaton's alphabet does not cover this input at all.
type UnmatchedCharError struct {
	Char     rune
	Position int
}

func (e *UnmatchedCharError) Error() string {
	return fmt.Sprintf("dfa: no transition for %q at position %d", e.Char, e.Position)
}
