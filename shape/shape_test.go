package shape

import (
	"testing"

	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/nfa"
	"github.com/OlegKalashnikov2001/lexergen/ruledef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildShapedDfa(t *testing.T, enc *encoding.Encoding, src string) *dfa.Dfa {
	t.Helper()
	f, err := ruledef.Parse(src)
	require.NoError(t, err)
	n, err := nfa.Build(f, enc)
	require.NoError(t, err)
	d, err := dfa.Build(n)
	require.NoError(t, err)
	return d
}

func TestShapeStartsAtZeroAndRegistersInBoundsJumps(t *testing.T) {
	d := buildShapedDfa(t, encoding.Latin1(), `
<default>
  a «TOKEN("A")||»
  eos «|EOF()|»
`)
	p, err := Shape(d, encoding.Latin1())
	require.NoError(t, err)

	assert.Equal(t, 0, p.Start)
	require.NotEmpty(t, p.States)
	require.NotEmpty(t, p.Jumps)

	start := p.States[0]
	assert.False(t, start.Terminal)
	assert.GreaterOrEqual(t, start.EOSJump, 0)

	for _, j := range p.Jumps {
		assert.GreaterOrEqual(t, j.State, 0)
		assert.Less(t, j.State, len(p.States))
	}
}

func TestShapeInlinesImmediatelyTerminatingAcceptStates(t *testing.T) {
	d := buildShapedDfa(t, encoding.Latin1(), `
<default>
  a «TOKEN("A")||»
  b «TOKEN("B")||»
`)
	p, err := Shape(d, encoding.Latin1())
	require.NoError(t, err)

	inlineCount := 0
	for _, s := range p.States {
		if s.Inline {
			inlineCount++
		}
	}
	// both one-character accept states terminate immediately, so each
	// of their two source-state references clones a private copy.
	assert.Positive(t, inlineCount)

	foundInlineJump := false
	for _, j := range p.Jumps {
		if j.Label == Inline {
			foundInlineJump = true
		}
	}
	assert.True(t, foundInlineJump)
}

func TestShapeReportsCatchAllCoverageErrorForAnUnmentionedClass(t *testing.T) {
	enc := testEncodingWithTwoClasses()
	d := buildShapedDfa(t, enc, `
<default>
  [[:everything_else:]] «TOKEN("X")||»
`)
	_, err := Shape(d, enc)

	var covErr *CatchAllCoverageError
	require.ErrorAs(t, err, &covErr)
	assert.Equal(t, []string{"alpha"}, covErr.Missing)
}

func TestShapeAcceptsACompleteClassCoverage(t *testing.T) {
	enc := testEncodingWithTwoClasses()
	d := buildShapedDfa(t, enc, `
<default>
  [[:alpha:]] «TOKEN("A")||»
  [[:everything_else:]] «TOKEN("B")||»
`)
	p, err := Shape(d, enc)
	require.NoError(t, err)

	var sawDeferred bool
	for _, s := range p.States {
		if len(s.DeferredTransitions) > 0 {
			sawDeferred = true
			last := s.DeferredTransitions[len(s.DeferredTransitions)-1]
			assert.True(t, last.Atoms[len(last.Atoms)-1].CatchAll)
		}
	}
	assert.True(t, sawDeferred)
}
