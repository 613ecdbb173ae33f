package ruledef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleStateBlock(t *testing.T) {
	src := `
digit = [0-9];
<start>
  $digit+ «TOKEN("NUMBER")||»
`
	f, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, f.Aliases, 1)
	require.Len(t, f.States, 1)
	assert.Equal(t, "start", f.States[0].Name)
	require.Len(t, f.States[0].Rules, 1)
	rule := f.States[0].Rules[0]
	assert.Equal(t, RuleRegex, rule.Kind)
	assert.Equal(t, "TOKEN", rule.Action.Match.Name())
	assert.Equal(t, "NUMBER", rule.Action.Match.StringArg(0))
	assert.Equal(t, 0, rule.Precedence)
}

func TestParseDistinguishedRules(t *testing.T) {
	src := `
<start>
  default_action «SKIP||»
  eos «|EOF()|»
  catch_all «|ERROR()|»
`
	f, err := Parse(src)
	require.NoError(t, err)
	rules := f.States[0].Rules
	require.Len(t, rules, 3)
	assert.Equal(t, RuleDefaultAction, rules[0].Kind)
	assert.Equal(t, RuleEOS, rules[1].Kind)
	assert.Equal(t, RuleCatchAll, rules[2].Kind)
	assert.Equal(t, 0, rules[0].Precedence)
	assert.Equal(t, 1, rules[1].Precedence)
	assert.Equal(t, 2, rules[2].Precedence)
}

func TestParseTransitionAndContinue(t *testing.T) {
	src := `
<start>
  \" «STRING_BEGIN||string»
<string>
  \" «STRING_END|STR()|continue»
`
	f, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, f.States, 2)
	assert.Equal(t, "string", f.States[0].Rules[0].Action.Transition)
	assert.Equal(t, "continue", f.States[1].Rules[0].Action.Transition)
}

func TestContinueInDefaultStateBecomesEmptyTransition(t *testing.T) {
	src := `
<default>
  digit «NUM||continue»
`
	f, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "", f.States[0].Rules[0].Action.Transition)
}

func TestAliasRedefinitionConflicts(t *testing.T) {
	src := `
digit = [0-9];
digit = [0-9];
<start>
  digit «T||»
`
	_, err := Parse(src)
	require.Error(t, err)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictAliasRedefined, conflict.Kind)
}

func TestDuplicateEOSConflicts(t *testing.T) {
	src := `
<start>
  eos «A||»
  eos «B||»
`
	_, err := Parse(src)
	require.Error(t, err)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictEOSTwice, conflict.Kind)
}

func TestAliasReferenceExpansion(t *testing.T) {
	src := `
digit = [0-9];
number = $digit+;
<start>
  number «NUM||»
`
	f, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, f.Aliases, 2)
	assert.Equal(t, "([0-9])+", f.Aliases[1].Pattern)
}

func TestUnboundAliasReferenceIsSyntaxError(t *testing.T) {
	src := `
<start>
  $missing «T||»
`
	_, err := Parse(src)
	assert.Error(t, err)
}
