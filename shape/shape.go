package shape

import (
	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/encoding"
)

// Shape prepares d for downstream emission: every state's keys are
// decomposed into concrete atoms, states are renumbered in a
// deterministic traversal order starting from d.Start(), transitions are
// classified into if/switch/deferred-class dispatch, eligible states are
// inlined into their callers, and every transition target is replaced by
// an index into the returned Program's jump table.
func Shape(d *dfa.Dfa, enc *encoding.Encoding) (*Program, error) {
	byOriginal, err := pretransform(d)
	if err != nil {
		return nil, err
	}

	ordered := reorder(byOriginal, d.Start())
	// The scanner enters the start state directly, not through a jump,
	// so it is never inlined and its transitions are always rewritten.
	ordered[0].mustNotInline = true

	for _, n := range ordered {
		splitTransitions(n)
	}
	for _, n := range ordered {
		if err := rewriteDeferred(n.index, n, enc); err != nil {
			return nil, err
		}
	}

	setInline(ordered)

	b := &jumpBuilder{nodes: ordered}
	b.rewriteRange(0, len(ordered), map[int]int{})

	states := make([]State, len(b.nodes))
	for i, n := range b.nodes {
		states[i] = toState(n)
	}
	return &Program{States: states, Jumps: b.jumps, Start: 0}, nil
}

func toState(n *node) State {
	return State{
		OriginalMembers:     n.members,
		Terminal:            n.terminal,
		Action:              n.action,
		Transition:          n.transition,
		ElideRead:           n.elideRead,
		IsEOSHandler:        n.isEOSHandler,
		MustNotInline:       n.mustNotInline,
		Inline:              n.inline,
		NoSwitch:            n.noSwitch,
		IfTransitions:       exportTransitions(n.ifTransitions),
		SwitchTransitions:   exportTransitions(n.switchTransitions),
		DeferredTransitions: exportDeferred(n.deferredOut),
		EOSJump:             n.eosIndex,
		OmegaJump:           n.omegaIndex,
	}
}

func exportTransitions(in []transition) []Transition {
	out := make([]Transition, len(in))
	for i, t := range in {
		out[i] = Transition{Atoms: t.atoms, Jump: t.target}
	}
	return out
}

func exportDeferred(in []deferredTransition) []DeferredTransition {
	out := make([]DeferredTransition, len(in))
	for i, t := range in {
		atoms := make([]DeferredAtom, len(t.atoms))
		for j, a := range t.atoms {
			atoms[j] = DeferredAtom{Class: a.call, CatchAll: a.catchAll}
		}
		out[i] = DeferredTransition{Atoms: atoms, Jump: t.target}
	}
	return out
}
