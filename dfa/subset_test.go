package dfa

import (
	"testing"

	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/nfa"
	"github.com/OlegKalashnikov2001/lexergen/ruledef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDfa(t *testing.T, src string) *Dfa {
	t.Helper()
	f, err := ruledef.Parse(src)
	require.NoError(t, err)
	n, err := nfa.Build(f, encoding.Latin1())
	require.NoError(t, err)
	d, err := Build(n)
	require.NoError(t, err)
	return d
}

func TestBuildProducesReachableStartState(t *testing.T) {
	d := buildDfa(t, `
<default>
  a «TOKEN("A")||»
  eos «|EOF()|»
`)
	assert.NotEqual(t, InvalidState, d.Start())
	assert.True(t, d.Len() > 0)
}

func TestBuildMergesAlternativesIntoOneDisjointTransitionSet(t *testing.T) {
	d := buildDfa(t, `
<default>
  a «TOKEN("A")||»
  b «TOKEN("B")||»
`)
	start := d.State(d.Start())
	// "a" and "b" are disjoint single characters; the start state should
	// carry two non-overlapping composite edges, not an ambiguous merge.
	var composite int
	for _, e := range start.Edges() {
		if e.Key.Kind() == key.KindComposite {
			composite++
			assert.False(t, e.Key.MatchesChar(encoding.Latin1(), 'a') && e.Key.MatchesChar(encoding.Latin1(), 'b'))
		}
	}
	assert.Equal(t, 2, composite)
}

func TestBuildMarksAcceptStateTerminalWithDominantAction(t *testing.T) {
	d := buildDfa(t, `
<default>
  a «|TOKEN("A")|»
`)
	start := d.State(d.Start())
	require.Len(t, start.Edges(), 1)
	next := d.State(start.Edges()[0].Target)
	assert.True(t, next.Terminal())
	require.False(t, next.Action().IsEmpty())
	assert.Equal(t, "TOKEN", next.Action().Term().Name())
}

func TestBuildKeepsEosAsDistinctAlphabetSymbol(t *testing.T) {
	d := buildDfa(t, `
<default>
  a «TOKEN("A")||»
  eos «|EOF()|»
`)
	start := d.State(d.Start())
	var sawEos bool
	for _, e := range start.Edges() {
		if e.Key.Kind() == key.KindUnique && e.Key.Tag() == key.EOS {
			sawEos = true
		}
	}
	assert.True(t, sawEos)
}

func TestBuildNeverSurfacesRawCatchAllKey(t *testing.T) {
	// catch_all is always rewritten to a concrete key (or no_match) before
	// subset construction ever sees it; this just confirms that holds
	// through to the finished Dfa.
	d := buildDfa(t, `
<default>
  a «TOKEN("A")||»
  catch_all «|ERROR()|»
`)
	for i := 0; i < d.Len(); i++ {
		for _, e := range d.State(StateID(i)).Edges() {
			assert.False(t, e.Key.Kind() == key.KindUnique && e.Key.Tag() == key.CatchAll)
		}
	}
}

func TestBuildReportsActionConflictOnTiedUnequalActions(t *testing.T) {
	f, err := ruledef.Parse(`
<default>
  a «|TOKEN("A")|»
  a «|TOKEN("B")|»
`)
	require.NoError(t, err)
	// A real rule file can never tie two rules' precedence (ruledef
	// assigns it monotonically), so force the collision directly on the
	// parsed tree to exercise the conflict path: two structurally
	// unequal actions reaching the same accept state at equal precedence.
	f.States[0].Rules[1].Precedence = f.States[0].Rules[0].Precedence
	n, err := nfa.Build(f, encoding.Latin1())
	require.NoError(t, err)

	_, err = Build(n)
	require.Error(t, err)
	var conflict *ActionConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestBuildRejectsARuleFileWithNoMatchAction(t *testing.T) {
	f, err := ruledef.Parse(`
<default>
  a «||loopy»
<loopy>
  b «||default»
`)
	require.NoError(t, err)
	n, err := nfa.Build(f, encoding.Latin1())
	require.NoError(t, err)

	_, err = Build(n)
	require.Error(t, err)
	var empty *EmptyAutomatonError
	require.ErrorAs(t, err, &empty)
	assert.ErrorIs(t, err, ErrEmptyAutomaton)
	assert.True(t, empty.States > 0)
}
