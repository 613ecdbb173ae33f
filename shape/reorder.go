package shape

import "github.com/OlegKalashnikov2001/lexergen/dfa"

// reorder renumbers every reachable state via a depth-first traversal
// from start, visiting a state's real transitions in their already
// key-sorted order, then its eos transition, then its omega transition;
// the start state always lands at index 0. Every state that is the
// target of some eos transition is marked is_eos_handler and
// must_not_inline.
func reorder(byOriginal map[dfa.StateID]*node, start dfa.StateID) []*node {
	var ordered []*node
	var visit func(id dfa.StateID)
	visit = func(id dfa.StateID) {
		n := byOriginal[id]
		if n.index != -1 {
			return
		}
		n.index = len(ordered)
		ordered = append(ordered, n)
		for _, rt := range n.rawTransitions {
			visit(rt.target)
		}
		if n.eosTarget != nil {
			visit(*n.eosTarget)
		}
		if n.omegaTarget != nil {
			visit(*n.omegaTarget)
		}
	}
	visit(start)

	eosHandlers := make(map[int]bool)
	for _, n := range ordered {
		n.combined = make([]transition, len(n.rawTransitions))
		for i, rt := range n.rawTransitions {
			n.combined[i] = transition{atoms: rt.atoms, target: byOriginal[rt.target].index}
		}
		if n.eosTarget != nil {
			idx := byOriginal[*n.eosTarget].index
			n.eosIndex = idx
			eosHandlers[idx] = true
		}
		if n.omegaTarget != nil {
			n.omegaIndex = byOriginal[*n.omegaTarget].index
		}
	}
	for _, n := range ordered {
		if eosHandlers[n.index] {
			n.isEOSHandler = true
			n.mustNotInline = true
		}
	}
	return ordered
}
