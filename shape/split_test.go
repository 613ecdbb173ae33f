package shape

import (
	"testing"

	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTransitionsNoSwitchWhenFewDistinctKeys(t *testing.T) {
	n := &node{
		distinctKeys: 5,
		ranges:       2,
		combined: []transition{
			{atoms: []key.EmitAtom{{Kind: key.EmitPrimaryRange, Lo: 'a', Hi: 'e'}}, target: 1},
		},
	}
	splitTransitions(n)
	assert.True(t, n.noSwitch)
	assert.Len(t, n.ifTransitions, 1)
	assert.Empty(t, n.switchTransitions)
}

func TestSplitTransitionsUsesSwitchWhenDenseAndManyRanges(t *testing.T) {
	n := &node{
		distinctKeys: 12,
		ranges:       4,
		combined: []transition{
			{atoms: []key.EmitAtom{{Kind: key.EmitPrimaryRange, Lo: 'b', Hi: 'd'}}, target: 1},
		},
	}
	splitTransitions(n)
	assert.False(t, n.noSwitch) // 12/4 == 3, below the 7.0 threshold
	assert.Len(t, n.switchTransitions, 1)
	assert.Empty(t, n.ifTransitions)
}

func TestSplitTransitionsAlwaysIfChainsTheZeroRange(t *testing.T) {
	n := &node{
		distinctKeys: 12,
		ranges:       4,
		combined: []transition{
			{atoms: []key.EmitAtom{{Kind: key.EmitPrimaryRange, Lo: 0, Hi: 0}}, target: 1},
		},
	}
	splitTransitions(n)
	assert.False(t, n.noSwitch)
	// even with switch dispatch preferred overall, the 0 atom is
	// reserved for the eos/sentinel if-check.
	assert.Len(t, n.ifTransitions, 1)
	assert.Empty(t, n.switchTransitions)
}

func TestSplitTransitionsDefersClassAtoms(t *testing.T) {
	n := &node{
		distinctKeys: 2,
		ranges:       1,
		combined: []transition{
			{atoms: []key.EmitAtom{{Kind: key.EmitClass, Class: "alpha"}}, target: 1},
		},
	}
	splitTransitions(n)
	assert.Len(t, n.deferredWork, 1)
	assert.Empty(t, n.ifTransitions)
	assert.Empty(t, n.switchTransitions)
}

func testEncodingWithTwoClasses() *encoding.Encoding {
	e := encoding.New("test", 0x00, 0x7F)
	e.AddClass("alpha", []encoding.RuneRange{{Lo: 0x100, Hi: 0x200}})
	e.AddClass("everything_else", []encoding.RuneRange{{Lo: 0x300, Hi: 0x301}})
	e.SetCatchAll("everything_else")
	return e
}

func TestRewriteDeferredMovesCatchAllToTheEndWhenCoverageIsComplete(t *testing.T) {
	n := &node{deferredWork: []transition{
		{atoms: []key.EmitAtom{{Kind: key.EmitClass, Class: "alpha"}}, target: 1},
		{atoms: []key.EmitAtom{{Kind: key.EmitClass, Class: "everything_else"}}, target: 2},
	}}
	err := rewriteDeferred(0, n, testEncodingWithTwoClasses())
	require.NoError(t, err)

	require.Len(t, n.deferredOut, 2)
	assert.Equal(t, "alpha", n.deferredOut[0].atoms[0].call)
	assert.False(t, n.deferredOut[0].atoms[0].catchAll)
	assert.True(t, n.deferredOut[1].atoms[0].catchAll)
	assert.Equal(t, 2, n.deferredOut[1].target)
}

func TestRewriteDeferredErrorsWhenCatchAllCoexistsWithAnUnmentionedClass(t *testing.T) {
	n := &node{deferredWork: []transition{
		{atoms: []key.EmitAtom{{Kind: key.EmitClass, Class: "everything_else"}}, target: 2},
	}}
	err := rewriteDeferred(3, n, testEncodingWithTwoClasses())

	var covErr *CatchAllCoverageError
	require.ErrorAs(t, err, &covErr)
	assert.Equal(t, 3, covErr.StateIndex)
	assert.Equal(t, []string{"alpha"}, covErr.Missing)
}

func TestRewriteDeferredNoopWhenThereAreNoClassTransitions(t *testing.T) {
	n := &node{}
	err := rewriteDeferred(0, n, testEncodingWithTwoClasses())
	require.NoError(t, err)
	assert.Empty(t, n.deferredOut)
}
