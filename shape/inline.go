package shape

// terminatesImmediately reports whether reaching nodes[idx] consumes no
// further input: either it has no real transitions at all, or its only
// transition is the omega fallback into a state that itself terminates
// immediately. Memoized since the omega chain it follows can be shared
// by many states.
func terminatesImmediately(nodes []*node, idx int, memo map[int]bool) bool {
	if v, ok := memo[idx]; ok {
		return v
	}
	n := nodes[idx]
	var result bool
	switch {
	case n.totalTransitions == 0:
		result = true
	case n.totalTransitions == 1 && n.omegaIndex >= 0:
		result = terminatesImmediately(nodes, n.omegaIndex, memo)
	default:
		result = false
	}
	memo[idx] = result
	return result
}

// setInline marks every state eligible for inlining: a state carrying
// must_not_inline is never eligible; a state that terminates immediately
// always is; otherwise a state with fewer than three distinct characters
// and no class checks is eligible if every one of its real transitions
// also lands on a state that terminates immediately.
func setInline(nodes []*node) {
	memo := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		eligible := false
		switch {
		case n.mustNotInline:
			eligible = false
		case terminatesImmediately(nodes, n.index, memo):
			eligible = true
		case n.distinctKeys < 3 && n.classKeys == 0:
			eligible = true
			for _, t := range n.combined {
				if !terminatesImmediately(nodes, t.target, memo) {
					eligible = false
					break
				}
			}
		}
		n.inline = eligible
	}
}
