package nfa

import (
	"testing"

	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/regexsyntax"
	"github.com/OlegKalashnikov2001/lexergen/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEncoding() *encoding.Encoding {
	return encoding.Latin1()
}

func buildPattern(t *testing.T, pattern string) (*Builder, StateID, []openEdge) {
	t.Helper()
	rt, err := regexsyntax.Parse(pattern)
	require.NoError(t, err)
	b := NewBuilder(testEncoding())
	start, ends, err := b.buildTerm(rt)
	require.NoError(t, err)
	return b, start, ends
}

func TestLiteralFragmentHasSingleOpenEdge(t *testing.T) {
	b, start, ends := buildPattern(t, "a")
	require.Len(t, ends, 1)
	edge := b.states[start].edges[0]
	assert.True(t, edge.Key.Equal(key.SingleChar('a')))
	assert.Equal(t, InvalidState, edge.Target)
}

func TestConcatenationPatchesIntermediateEdge(t *testing.T) {
	b, start, ends := buildPattern(t, "ab")
	require.Len(t, ends, 1)
	firstEdge := b.states[start].edges[0]
	assert.NotEqual(t, InvalidState, firstEdge.Target)
	secondState := firstEdge.Target
	secondEdge := b.states[secondState].edges[0]
	assert.True(t, secondEdge.Key.Equal(key.SingleChar('b')))
}

func TestAlternationStartHasTwoEpsilonEdges(t *testing.T) {
	b, start, ends := buildPattern(t, "a|b")
	require.Len(t, ends, 2)
	require.Len(t, b.states[start].edges, 2)
	for _, e := range b.states[start].edges {
		assert.True(t, e.Key.IsEpsilon())
	}
}

func TestOneOrMoreLoopsBack(t *testing.T) {
	b, start, ends := buildPattern(t, "a+")
	require.Len(t, ends, 1)
	// start -(a)-> loop; loop has an epsilon back to start and an open exit.
	loop := b.states[start].edges[0].Target
	require.Len(t, b.states[loop].edges, 2)
	sawBackEdge := false
	for _, e := range b.states[loop].edges {
		if e.Key.IsEpsilon() && e.Target == start {
			sawBackEdge = true
		}
	}
	assert.True(t, sawBackEdge)
}

func TestZeroOrMoreHasSkipAndLoopEdges(t *testing.T) {
	b, start, _ := buildPattern(t, "a*")
	require.Len(t, b.states[start].edges, 2)
	var sawOpen, sawResolved bool
	for _, e := range b.states[start].edges {
		if e.Target == InvalidState {
			sawOpen = true
		} else {
			sawResolved = true
		}
	}
	assert.True(t, sawOpen)
	assert.True(t, sawResolved)
}

func TestZeroOrOneUnionsBothExits(t *testing.T) {
	_, _, ends := buildPattern(t, "a?")
	assert.Len(t, ends, 2)
}

func TestRepeatExactCountChainsMandatoryCopies(t *testing.T) {
	b, start, ends := buildPattern(t, "a{3}")
	require.Len(t, ends, 1)
	// three mandatory 'a' consumptions chained: start -a-> s1 -a-> s2 -a-> (open)
	s1 := b.states[start].edges[0].Target
	require.NotEqual(t, InvalidState, s1)
	s2 := b.states[s1].edges[0].Target
	require.NotEqual(t, InvalidState, s2)
	assert.Equal(t, InvalidState, b.states[s2].edges[0].Target)
}

func TestRepeatRangeAddsOptionalTail(t *testing.T) {
	_, _, ends := buildPattern(t, "a{1,3}")
	// one mandatory copy then two optional copies, each contributing a skip edge,
	// plus the final copy's own dangling end.
	assert.Len(t, ends, 3)
}

func TestClassBuildsDisjointableKey(t *testing.T) {
	b, start, ends := buildPattern(t, "[a-c]")
	require.Len(t, ends, 1)
	edge := b.states[start].edges[0]
	assert.True(t, edge.Key.MatchesChar(testEncoding(), 'b'))
	assert.False(t, edge.Key.MatchesChar(testEncoding(), 'd'))
}

func TestNotClassInvertsOverPrimaryRange(t *testing.T) {
	b, start, _ := buildPattern(t, "[^a-c]")
	edge := b.states[start].edges[0]
	assert.False(t, edge.Key.MatchesChar(testEncoding(), 'b'))
	assert.True(t, edge.Key.MatchesChar(testEncoding(), 'd'))
}

func TestMatchActionClosesToGlobalEnd(t *testing.T) {
	enc := testEncoding()
	b := NewBuilder(enc)
	body, err := regexsyntax.Parse("a")
	require.NoError(t, err)
	wrapped := term.New("MATCH_ACTION", term.New("TOKEN", "A"), 0, body, "")
	start, ends, err := b.buildTerm(wrapped)
	require.NoError(t, err)
	assert.Nil(t, ends)

	mid := b.states[start].edges[0].Target
	var acceptID StateID = InvalidState
	for _, e := range b.states[mid].edges {
		if e.Key.IsOmega() {
			acceptID = e.Target
		}
	}
	require.NotEqual(t, InvalidState, acceptID)
	accept := b.states[acceptID]
	require.False(t, accept.action.IsEmpty())
	assert.Equal(t, "TOKEN", accept.action.Term().Name())

	// accept closes to the shared end via epsilon.
	require.Len(t, accept.edges, 1)
	assert.True(t, accept.edges[0].Key.IsEpsilon())
	assert.Equal(t, b.End(), accept.edges[0].Target)
}

func TestJoinPatchesIntoNamedSubgraphAndIsMemoized(t *testing.T) {
	enc := testEncoding()
	b := NewBuilder(enc)
	targetBody, err := regexsyntax.Parse("x")
	require.NoError(t, err)
	b.RegisterSubgraph("target", targetBody)

	bodyA, err := regexsyntax.Parse("a")
	require.NoError(t, err)
	startA, endsA, err := b.buildTerm(term.New("JOIN", bodyA, "target"))
	require.NoError(t, err)

	bodyB, err := regexsyntax.Parse("b")
	require.NoError(t, err)
	startB, endsB, err := b.buildTerm(term.New("JOIN", bodyB, "target"))
	require.NoError(t, err)

	// Both joins patch into the same memoized "target" subgraph instance.
	targetViaA := b.states[startA].edges[0].Target
	targetViaB := b.states[startB].edges[0].Target
	assert.Equal(t, targetViaA, targetViaB)
	assert.Equal(t, len(endsA), len(endsB))
}

func TestRecursiveSubgraphJoinIsRejected(t *testing.T) {
	enc := testEncoding()
	b := NewBuilder(enc)
	// "loop" JOINs itself directly with no consuming edge in between.
	b.RegisterSubgraph("loop", term.New("JOIN", term.New("EMPTY"), "loop"))
	_, _, err := b.buildNamedSubgraph("loop")
	require.Error(t, err)
	var recErr *RecursiveSubgraphError
	assert.ErrorAs(t, err, &recErr)
}

func TestContinueLoopsBackToEnclosingSubgraphStart(t *testing.T) {
	enc := testEncoding()
	b := NewBuilder(enc)
	body, err := regexsyntax.Parse("a")
	require.NoError(t, err)
	b.RegisterSubgraph("self", term.New("CONTINUE", body, 0))
	frag, err := b.buildNamedSubgraph("self")
	require.NoError(t, err)
	assert.Nil(t, frag.ends)
	// frag.start aliases (via epsilon) into the body's own start, whose 'a'
	// edge loops back to frag.start, forming self -> a-body -(a)-> self.
	require.Len(t, b.states[frag.start].edges, 1)
	aliasEdge := b.states[frag.start].edges[0]
	require.True(t, aliasEdge.Key.IsEpsilon())
	aBody := aliasEdge.Target
	require.Len(t, b.states[aBody].edges, 1)
	consumeEdge := b.states[aBody].edges[0]
	assert.True(t, consumeEdge.Key.Equal(key.SingleChar('a')))
	assert.Equal(t, frag.start, consumeEdge.Target)
}
