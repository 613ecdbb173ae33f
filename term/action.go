package term

import "fmt"

// Action pairs a user-action Term with a precedence: lower precedence
// wins when two NFA states carrying different actions merge into one DFA
// state. The empty action uses the -1 sentinel precedence.
type Action struct {
	term       Term
	precedence int
}

// EmptyAction is the distinguished "no action" value.
func EmptyAction() Action { return Action{term: Empty(), precedence: -1} }

// NewAction builds a non-empty action. precedence must be >= 0.
func NewAction(t Term, precedence int) Action {
	if t.IsEmpty() {
		panic("term: action term must not be empty; use EmptyAction")
	}
	if precedence < 0 {
		panic("term: action must have non-negative precedence")
	}
	return Action{term: t, precedence: precedence}
}

// IsEmpty reports whether a is the empty action.
func (a Action) IsEmpty() bool { return a.term.IsEmpty() }

// Term returns the action's term.
func (a Action) Term() Term { return a.term }

// Precedence returns the action's precedence, or -1 for the empty action.
func (a Action) Precedence() int { return a.precedence }

// Equal reports whether two actions carry structurally equal terms
// (precedence is not part of the comparison — two actions can tie on
// precedence only if they are Equal, per ConflictError below).
func (a Action) Equal(other Action) bool { return a.term.Equal(other.term) }

func (a Action) String() string {
	if a.IsEmpty() {
		return "action<>"
	}
	return fmt.Sprintf("action<%s@%d>", a.term, a.precedence)
}

// ConflictError reports two actions tied on precedence but structurally
// unequal — a specification conflict (spec §3 "ties are allowed only when
// the action terms are structurally equal").
type ConflictError struct {
	First, Second Action
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("action conflict at precedence %d: %s vs %s",
		e.First.Precedence(), e.First, e.Second)
}

// Dominant computes the dominant action among a set of candidate actions:
// the one with the smallest non-negative precedence. Ties are only valid
// between structurally equal actions; an unequal tie is a ConflictError.
// Called with no non-empty actions, it returns EmptyAction.
func Dominant(actions ...Action) (Action, error) {
	dominant := EmptyAction()
	for _, a := range actions {
		if a.IsEmpty() {
			continue
		}
		if dominant.IsEmpty() {
			dominant = a
			continue
		}
		switch {
		case a.Precedence() == dominant.Precedence():
			if !a.Equal(dominant) {
				return Action{}, &ConflictError{First: dominant, Second: a}
			}
		case a.Precedence() < dominant.Precedence():
			dominant = a
		}
	}
	return dominant, nil
}
