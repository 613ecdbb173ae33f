package minimize

import (
	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/internal/conv"
	"github.com/OlegKalashnikov2001/lexergen/internal/sparse"
)

// initialPartitions groups every state by its action signature: the
// coarsest partition that could possibly survive refinement, since two
// states with different accept behavior can never be merged no matter
// how their transitions turn out. Returned as partitions keyed by their
// own sparse.Set hash, so the refinement loop can use that hash as a
// stable map key for both the partition set and the refinement worklist.
func initialPartitions(d *dfa.Dfa, n uint32) map[uint64]*sparse.Set {
	buckets := map[string]*sparse.Set{}
	for i := 0; i < d.Len(); i++ {
		s := d.State(dfa.StateID(i))
		sig := actionSignature(s)
		set, ok := buckets[sig]
		if !ok {
			set = sparse.NewSet(n)
			buckets[sig] = set
		}
		set.Insert(conv.IntToUint32(i))
	}

	partitions := make(map[uint64]*sparse.Set, len(buckets))
	for _, set := range buckets {
		partitions[set.Key()] = set
	}
	return partitions
}

// actionSignature names the bucket a state's accept behavior belongs to.
// Terminal and non-terminal states never merge even when both carry no
// action, and two actioned states only ever share a bucket when their
// actions are the same term — matching the dominant-action tie rule
// subset construction already enforces (equal actions only).
func actionSignature(s *dfa.DfaState) string {
	switch {
	case s.Terminal() && !s.Action().IsEmpty():
		return "T:" + s.Action().Term().Key()
	case !s.Terminal() && !s.Action().IsEmpty():
		// A state whose members carry an entry action but never reach
		// the shared end state; its signature stays distinct from the
		// actioned terminal case.
		return "N:" + s.Action().Term().Key()
	case s.Terminal():
		return "terminal"
	default:
		return "nonterminal"
	}
}

// splitSet partitions p into its intersection and difference with
// mapInto. ok is false when p lies entirely on one side, meaning no
// split occurred and the caller should leave p alone.
func splitSet(p, mapInto *sparse.Set, n uint32) (inter, diff *sparse.Set, ok bool) {
	inter = sparse.NewSet(n)
	diff = sparse.NewSet(n)
	for _, v := range p.Values() {
		if mapInto.Contains(v) {
			inter.Insert(v)
		} else {
			diff.Insert(v)
		}
	}
	if inter.IsEmpty() || diff.IsEmpty() {
		return nil, nil, false
	}
	return inter, diff, true
}
