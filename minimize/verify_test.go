package minimize

import (
	"testing"

	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/internal/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singletonPartitions(d *dfa.Dfa) map[uint64]*sparse.Set {
	n := uint32(d.Len())
	partitions := make(map[uint64]*sparse.Set, d.Len())
	for i := 0; i < d.Len(); i++ {
		s := sparse.NewSet(n)
		s.Insert(uint32(i))
		partitions[s.Key()] = s
	}
	return partitions
}

func TestVerifyPartitionsAcceptsSingletonPartitions(t *testing.T) {
	d := buildDfa(t, `
<default>
  ab «TOKEN("AB")||»
  cb «TOKEN("AB")||»
`)
	// Every state alone in its own partition trivially satisfies the
	// invariant: there's no other member to disagree with.
	require.NoError(t, VerifyPartitions(d, singletonPartitions(d)))
}

func TestVerifyPartitionsRejectsAnUnsoundMerge(t *testing.T) {
	d := buildDfa(t, `
<default>
  a «TOKEN("A")||»
  b «TOKEN("B")||»
`)
	// Merge the start state into the "a" accept state's partition: the
	// start state still has outgoing edges (to both accept states) while
	// the accept state has none, so on every alphabet symbol the two
	// members disagree about whether there's a transition at all.
	n := uint32(d.Len())
	partitions := singletonPartitions(d)
	start := d.State(d.Start())
	a := walk(t, d, "a")
	for k, p := range partitions {
		if p.Contains(uint32(start.ID())) || p.Contains(uint32(a.ID())) {
			delete(partitions, k)
		}
	}
	merged := sparse.NewSet(n)
	merged.Insert(uint32(start.ID()))
	merged.Insert(uint32(a.ID()))
	partitions[merged.Key()] = merged

	assert.Error(t, VerifyPartitions(d, partitions))
}
