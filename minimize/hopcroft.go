package minimize

import (
	"sort"

	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/internal/conv"
	"github.com/OlegKalashnikov2001/lexergen/internal/sparse"
	"github.com/OlegKalashnikov2001/lexergen/key"
)

// Minimize returns the smallest Dfa equivalent to d: states that no
// input string can ever distinguish are merged into one. d itself is
// never mutated; when no two states merge, d itself is returned,
// otherwise a freshly built Dfa.
func Minimize(d *dfa.Dfa) (*dfa.Dfa, error) {
	n := conv.IntToUint32(d.Len())
	partitions := initialPartitions(d, n)
	if len(partitions) == 1 {
		return d, nil
	}

	alphabet := alphabetOf(d)
	transitions := computeTransitions(d, alphabet)

	working := make(map[uint64]*sparse.Set, len(partitions))
	for k, p := range partitions {
		working[k] = p
	}

	for len(working) > 0 {
		testKey, testPartition := popAny(working)
		delete(working, testKey)

		testArray := make([]bool, n)
		for _, s := range testPartition.Values() {
			testArray[s] = true
		}

		for alphaIdx := range alphabet {
			mapInto := sparse.NewSet(n)
			for s := uint32(0); s < n; s++ {
				target := transitions[s][alphaIdx]
				if target >= 0 && testArray[target] {
					mapInto.Insert(s)
				}
			}
			if mapInto.IsEmpty() {
				continue
			}
			refine(partitions, working, mapInto, n)
		}
	}

	if len(partitions) == int(n) {
		// Refinement never merged anything: d was already minimal.
		return d, nil
	}
	return buildFromPartitions(d, partitions, alphabet, transitions)
}

// refine splits every partition that straddles mapInto into its
// intersection and difference with it. The split set is collected in one
// pass over the current partitions snapshot and applied afterward, so
// that partitions gained or lost mid-pass never affect the pass itself
// — mirroring how the reference algorithm defers its own bookkeeping
// until after the key's inner loop finishes.
func refine(partitions, working map[uint64]*sparse.Set, mapInto *sparse.Set, n uint32) {
	type split struct {
		oldKey      uint64
		inter, diff *sparse.Set
	}
	var splits []split
	for pk, p := range partitions {
		inter, diff, ok := splitSet(p, mapInto, n)
		if !ok {
			continue
		}
		splits = append(splits, split{pk, inter, diff})
	}

	for _, sp := range splits {
		delete(partitions, sp.oldKey)
		partitions[sp.inter.Key()] = sp.inter
		partitions[sp.diff.Key()] = sp.diff

		if _, inWorking := working[sp.oldKey]; inWorking {
			delete(working, sp.oldKey)
			working[sp.inter.Key()] = sp.inter
			working[sp.diff.Key()] = sp.diff
		} else if sp.inter.Len() <= sp.diff.Len() {
			working[sp.inter.Key()] = sp.inter
		} else {
			working[sp.diff.Key()] = sp.diff
		}
	}
}

// popAny returns an arbitrary entry from a map, the same "any remaining
// partition will do" choice the reference worklist makes when picking
// its next test_partition.
func popAny(m map[uint64]*sparse.Set) (uint64, *sparse.Set) {
	for k, v := range m {
		return k, v
	}
	panic("minimize: popAny called on an empty map")
}

// buildFromPartitions assembles the minimized Dfa: each surviving
// partition collapses to one state, numbered by the smallest original
// state ID it contains so that output numbering stays deterministic
// across runs over the same input.
func buildFromPartitions(d *dfa.Dfa, partitions map[uint64]*sparse.Set, alphabet []key.Key, transitions [][]int32) (*dfa.Dfa, error) {
	ordered := make([]*sparse.Set, 0, len(partitions))
	for _, p := range partitions {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return minOf(ordered[i].SortedValues()) < minOf(ordered[j].SortedValues())
	})

	owner := make([]dfa.StateID, d.Len())
	for newID, p := range ordered {
		for _, s := range p.Values() {
			owner[s] = dfa.StateID(newID)
		}
	}

	states := make([]dfa.DfaState, len(ordered))
	for newID, p := range ordered {
		members := p.SortedValues()
		rep := members[0]

		edges, err := mergeEdges(transitions[rep], alphabet, owner)
		if err != nil {
			return nil, err
		}

		repState := d.State(dfa.StateID(rep))
		states[newID] = dfa.NewState(
			dfa.StateID(newID),
			edges,
			repState.Terminal(),
			repState.Action(),
			repState.Transition(),
			members,
		)
	}

	return dfa.New(states, owner[d.Start()]), nil
}

// mergeEdges groups alphabet atoms by which merged state they now land
// in and folds each same-target group back into a single key, so the
// minimized automaton keeps the same pairwise-disjoint-edge shape subset
// construction produced rather than one edge per original atom.
// MergedKey only accepts operands of one kind (and, for KindUnique, one
// tag), so a target reached by atoms of more than one kind — a composite
// range and eos both now landing in the same merged state, say — keeps
// one edge per kind instead of forcing an invalid merge.
func mergeEdges(targetsByAtom []int32, alphabet []key.Key, owner []dfa.StateID) ([]dfa.Edge, error) {
	type groupKey struct {
		target dfa.StateID
		kind   key.Kind
		tag    key.UniqueTag
	}
	groups := map[groupKey][]key.Key{}
	var order []groupKey
	for i, target := range targetsByAtom {
		if target < 0 {
			continue
		}
		k := alphabet[i]
		gk := groupKey{target: owner[target], kind: k.Kind(), tag: k.Tag()}
		if _, ok := groups[gk]; !ok {
			order = append(order, gk)
		}
		groups[gk] = append(groups[gk], k)
	}

	edges := make([]dfa.Edge, 0, len(order))
	for _, gk := range order {
		merged, err := key.MergedKey(groups[gk]...)
		if err != nil {
			return nil, err
		}
		edges = append(edges, dfa.Edge{Key: merged, Target: gk.target})
	}
	return edges, nil
}

func minOf(xs []uint32) uint32 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
