package minimize

import (
	"fmt"

	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/internal/sparse"
)

// VerifyPartitions checks the invariant a finished partitioning must
// satisfy: every member of a partition transitions, on every alphabet
// symbol, into the same other partition — or has no transition at all —
// as every other member. Minimize never calls this itself; like the
// reference algorithm's own self-check (disabled in its production
// path), it exists for diagnosing a suspected bug in the refinement
// loop, not for routine use.
func VerifyPartitions(d *dfa.Dfa, partitions map[uint64]*sparse.Set) error {
	alphabet := alphabetOf(d)
	transitions := computeTransitions(d, alphabet)

	owner := make([]uint64, d.Len())
	for pk, p := range partitions {
		for _, s := range p.Values() {
			owner[s] = pk
		}
	}

	for pk, p := range partitions {
		for a := range alphabet {
			var want uint64
			wantNone := true
			first := true
			for _, s := range p.Values() {
				target := transitions[s][a]
				none := target < 0
				var got uint64
				if !none {
					got = owner[target]
				}
				if first {
					want, wantNone, first = got, none, false
					continue
				}
				if none != wantNone || (!none && got != want) {
					return fmt.Errorf("minimize: partition %d disagrees on alphabet symbol %d (%s)", pk, a, alphabet[a].String())
				}
			}
		}
	}
	return nil
}
