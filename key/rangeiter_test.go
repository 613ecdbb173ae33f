package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeIterComposite(t *testing.T) {
	k, err := MergedKey(RangeKey('a', 'z'), Class("digit"))
	require.NoError(t, err)
	atoms, err := k.RangeIter()
	require.NoError(t, err)
	require.Len(t, atoms, 2)
	assert.Equal(t, EmitPrimaryRange, atoms[0].Kind)
	assert.Equal(t, EmitClass, atoms[1].Kind)
	assert.Equal(t, "digit", atoms[1].Class)
}

func TestRangeIterOmegaAndUnique(t *testing.T) {
	atoms, err := Omega().RangeIter()
	require.NoError(t, err)
	assert.Equal(t, EmitOmega, atoms[0].Kind)

	atoms, err = Unique(EOS).RangeIter()
	require.NoError(t, err)
	assert.Equal(t, EmitUnique, atoms[0].Kind)
	assert.Equal(t, EOS, atoms[0].Tag)
}

func TestRangeIterRejectsEpsilonAndUnresolvedNotClass(t *testing.T) {
	_, err := Epsilon().RangeIter()
	assert.ErrorIs(t, err, ErrNotEmittable)

	_, err = NotClass("digit").RangeIter()
	assert.ErrorIs(t, err, ErrNotEmittable)
}
