package minimize

import (
	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/key"
)

// noTransition marks a (state, alphabet symbol) pair with no outgoing
// edge in the dense transition table computeTransitions builds.
const noTransition = -1

// alphabetOf computes the disjoint key cover over every edge in d, so
// that refinement can ask "where does this whole partition go on input
// X" using one shared, whole-automaton symbol set rather than each
// state's own, locally-disjoint cover (which need not agree with any
// other state's).
func alphabetOf(d *dfa.Dfa) []key.Key {
	seen := map[string]bool{}
	var keys []key.Key
	for i := 0; i < d.Len(); i++ {
		for _, e := range d.State(dfa.StateID(i)).Edges() {
			sig := e.Key.String()
			if !seen[sig] {
				seen[sig] = true
				keys = append(keys, e.Key)
			}
		}
	}
	disjoint := key.DisjointKeys(keys)
	key.Sort(disjoint)
	return disjoint
}

// computeTransitions precomputes, for every state and every alphabet
// index, which state the automaton moves to — or noTransition if none
// of the state's edges cover that symbol. Built once up front so the
// refinement loop's repeated "where does X go" queries are array lookups
// rather than a key-matching scan over every state's edges.
func computeTransitions(d *dfa.Dfa, alphabet []key.Key) [][]int32 {
	transitions := make([][]int32, d.Len())
	for i := 0; i < d.Len(); i++ {
		row := make([]int32, len(alphabet))
		edges := d.State(dfa.StateID(i)).Edges()
		for a, atom := range alphabet {
			row[a] = noTransition
			for _, e := range edges {
				if e.Key.IsSupersetOf(atom) {
					row[a] = int32(e.Target)
					break
				}
			}
		}
		transitions[i] = row
	}
	return transitions
}
