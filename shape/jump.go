package shape

// jumpBuilder replaces every transition target with a jump-table index,
// generating one private clone per (source state, inlineable target)
// pair along the way so that inlined code is never shared between
// unrelated callers.
type jumpBuilder struct {
	nodes []*node
	jumps []JumpEntry
}

func (b *jumpBuilder) registerJump(targetIdx int, label EntryLabel) int {
	b.jumps = append(b.jumps, JumpEntry{State: targetIdx, Label: label})
	return len(b.jumps) - 1
}

// cloneInline appends a private copy of nodes[targetIdx] and returns its
// new index. The copy shares its origin's read-only slices (atoms,
// member IDs); only jump.go mutates a node's transition targets, and it
// does so on the clone's own fields, never the original's.
func (b *jumpBuilder) cloneInline(targetIdx int) int {
	clone := *b.nodes[targetIdx]
	clone.ifTransitions = append([]transition(nil), clone.ifTransitions...)
	clone.switchTransitions = append([]transition(nil), clone.switchTransitions...)
	clone.deferredOut = append([]deferredTransition(nil), clone.deferredOut...)
	clone.index = len(b.nodes)
	clone.justGeneratedInline = true
	b.nodes = append(b.nodes, &clone)
	return clone.index
}

// rewriteRange walks states [start,end), replacing every transition
// target with a jump-table index and cloning inlineable targets as it
// goes. inlineMappingIn maps a target index already cloned by an
// ancestor call to that clone's index, so sibling transitions within the
// same source state (and states created alongside it) share one clone
// instead of minting a fresh one per reference. It returns how many new
// states were appended while processing this range.
func (b *jumpBuilder) rewriteRange(start, end int, inlineMappingIn map[int]int) int {
	totalCreated := 0
	for stateIdx := start; stateIdx < end; stateIdx++ {
		n := b.nodes[stateIdx]
		if n.inline {
			if !n.justGeneratedInline {
				// An inline-eligible template that was never actually
				// referenced as a clone source; its own dispatch code is
				// never emitted, so it needs no jump rewriting.
				continue
			}
			n.justGeneratedInline = false
		}

		inlineMapping := make(map[int]int, len(inlineMappingIn))
		for k, v := range inlineMappingIn {
			inlineMapping[k] = v
		}

		generateJump := func(targetIdx int) int {
			target := b.nodes[targetIdx]
			label := StateEntry
			actual := targetIdx
			if target.inline {
				if mapped, ok := inlineMapping[targetIdx]; ok {
					actual = mapped
				} else {
					actual = b.cloneInline(targetIdx)
					inlineMapping[targetIdx] = actual
					label = Inline
				}
			}
			return b.registerJump(actual, label)
		}

		for i := range n.ifTransitions {
			n.ifTransitions[i].target = generateJump(n.ifTransitions[i].target)
		}
		for i := range n.switchTransitions {
			n.switchTransitions[i].target = generateJump(n.switchTransitions[i].target)
		}
		for i := range n.deferredOut {
			n.deferredOut[i].target = generateJump(n.deferredOut[i].target)
		}
		if n.omegaIndex >= 0 {
			n.omegaIndex = generateJump(n.omegaIndex)
		}
		if n.eosIndex >= 0 {
			// An eos target always carries must_not_inline, so it is
			// never cloned; register it directly.
			n.eosIndex = b.registerJump(n.eosIndex, StateEntry)
		}

		created := len(inlineMapping) - len(inlineMappingIn)
		if created == 0 {
			continue
		}
		newEnd := len(b.nodes)
		subCreated := b.rewriteRange(newEnd-created, newEnd, inlineMapping)
		totalCreated += created + subCreated
	}
	return totalCreated
}
