package dfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlegKalashnikov2001/lexergen/encoding"
)

func TestLexSplitsARunOfRepeatedTokens(t *testing.T) {
	d := buildDfa(t, `
<default>
  a «|TOKEN("A")|»
  b «|TOKEN("B")|»
`)
	tokens, err := d.Lex(encoding.Latin1(), "aabba")
	require.NoError(t, err)

	require.Len(t, tokens, 5)
	for i, want := range []struct {
		start, end int
		name       string
	}{
		{0, 1, "A"}, {1, 2, "A"}, {2, 3, "B"}, {3, 4, "B"}, {4, 5, "A"},
	} {
		assert.Equal(t, want.start, tokens[i].Start)
		assert.Equal(t, want.end, tokens[i].End)
		assert.Equal(t, want.name, tokens[i].Action.Term().StringArg(0))
	}
}

func TestLexReportsUnmatchedCharWhenTheAlphabetDoesNotCoverInput(t *testing.T) {
	d := buildDfa(t, `
<default>
  a «|TOKEN("A")|»
`)
	_, err := d.Lex(encoding.Latin1(), "ab")

	var unmatched *UnmatchedCharError
	require.ErrorAs(t, err, &unmatched)
	assert.Equal(t, 'b', unmatched.Char)
	assert.Equal(t, 1, unmatched.Position)
}
