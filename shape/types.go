package shape

import (
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/term"
)

// EntryLabel names the reason a jump table slot exists, so a back end
// knows what prologue (if any) to emit before jumping into the target
// state.
type EntryLabel int

const (
	// StateEntry is a plain jump straight to a state's dispatch code.
	StateEntry EntryLabel = iota
	// AfterEntryCode is a jump that must skip a state's entry action on
	// re-entry (the action already ran the first time through). Nothing
	// in this package registers it directly — generated jumps are
	// always StateEntry or Inline — but a back end that recognizes a
	// bypassable entry action can register one of its own alongside the
	// table this package builds.
	AfterEntryCode
	// Inline marks a jump into a clone generated for one source state's
	// reference to an inlineable target, rather than into the shared
	// target state itself.
	Inline
)

// JumpEntry is one append-only slot in a Program's jump table.
type JumpEntry struct {
	State int
	Label EntryLabel
}

// Transition is one outgoing edge usable by an if-chain or switch
// dispatch: a set of primary-range atoms (possibly just one) sharing a
// single jump target.
type Transition struct {
	Atoms []key.EmitAtom
	Jump  int
}

// DeferredAtom is one rewritten class check within a DeferredTransition:
// either a call into the named class's predicate, or the distinguished
// catch-all slot that must be checked last.
type DeferredAtom struct {
	Class    string
	CatchAll bool
}

// DeferredTransition is one class-dispatch check, run after every
// switch/if check has failed.
type DeferredTransition struct {
	Atoms []DeferredAtom
	Jump  int
}

// State is one node of a shaped Program: a DFA state (or, for states
// with Inline == true, a caller-private clone of one) annotated with
// everything a back end needs to emit its dispatch code.
type State struct {
	// OriginalMembers are the minimized dfa.Dfa state's NFA member IDs,
	// for debugging; clones created during inlining share their
	// origin's OriginalMembers.
	OriginalMembers []uint32

	Terminal   bool
	Action     term.Action
	Transition string

	// ElideRead is true when this state consumes no further input: it
	// has no transitions at all, or its only transition is the omega
	// transition. The omega target's own ElideRead is not consulted.
	ElideRead bool

	// IsEOSHandler is true for any state that is the target of some
	// end-of-input transition, whatever else reaches it. Such states are
	// never inlined.
	IsEOSHandler  bool
	MustNotInline bool
	// Inline is true for an inline-eligible state: both the template
	// state itself and every private clone generated from it for one
	// particular source state, rather than a shared state every
	// referencing transition jumps to.
	Inline bool

	// NoSwitch is true when dense jump-table dispatch isn't worth
	// emitting for this state; its range transitions are if-chained
	// instead of switched on.
	NoSwitch bool

	IfTransitions       []Transition
	SwitchTransitions   []Transition
	DeferredTransitions []DeferredTransition

	// EOSJump and OmegaJump are jump-table indices, or -1 if the state
	// carries no such transition.
	EOSJump   int
	OmegaJump int
}

// Program is the shaped form of a minimized dfa.Dfa: states in
// deterministic traversal order (Start is always 0) plus the jump table
// every transition target is registered in. States never referenced by
// any JumpEntry (and not Start) are inline-eligible templates that were
// cloned, rather than jumped to, everywhere they were reached — their
// own transition fields still hold pre-registration state indices, not
// Jumps offsets, since nothing ever needed to dispatch into them
// directly. A back end should walk from Start and from each JumpEntry,
// not from States in array order.
type Program struct {
	States []State
	Jumps  []JumpEntry
	Start  int
}
