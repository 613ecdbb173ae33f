package shape

import (
	"testing"

	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/key"
	"github.com/OlegKalashnikov2001/lexergen/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenAction(name string) term.Action {
	return term.NewAction(term.New("TOKEN", name), 0)
}

func TestTransformStateSplitsZeroRangeToTheEnd(t *testing.T) {
	states := []dfa.DfaState{
		dfa.NewState(0, []dfa.Edge{{Key: key.RangeKey(0, 5), Target: 1}}, false, term.EmptyAction(), "", nil),
		dfa.NewState(1, nil, true, tokenAction("X"), "", nil),
	}
	d := dfa.New(states, 0)

	n, err := transformState(0, d.State(0))
	require.NoError(t, err)

	require.Len(t, n.rawTransitions, 2)
	assert.Equal(t, key.EmitPrimaryRange, n.rawTransitions[0].atoms[0].Kind)
	assert.EqualValues(t, 1, n.rawTransitions[0].atoms[0].Lo)
	assert.EqualValues(t, 5, n.rawTransitions[0].atoms[0].Hi)
	assert.EqualValues(t, 0, n.rawTransitions[1].atoms[0].Lo)
	assert.EqualValues(t, 0, n.rawTransitions[1].atoms[0].Hi)

	// ranges counts the original [0,5] atom once and the synthetic
	// trailing [0,0] split once more; distinct_keys counts the original
	// atom's width before the split shrinks it.
	assert.Equal(t, 2, n.ranges)
	assert.Equal(t, 6, n.distinctKeys)
}

func TestTransformStateDropsAnExactZeroRangeAfterRecordingIt(t *testing.T) {
	states := []dfa.DfaState{
		dfa.NewState(0, []dfa.Edge{{Key: key.RangeKey(0, 0), Target: 1}}, false, term.EmptyAction(), "", nil),
		dfa.NewState(1, nil, true, tokenAction("X"), "", nil),
	}
	d := dfa.New(states, 0)

	n, err := transformState(0, d.State(0))
	require.NoError(t, err)

	require.Len(t, n.rawTransitions, 1)
	assert.EqualValues(t, 0, n.rawTransitions[0].atoms[0].Lo)
	assert.EqualValues(t, 0, n.rawTransitions[0].atoms[0].Hi)
	assert.Equal(t, 2, n.ranges)
	assert.Equal(t, 1, n.distinctKeys)
}

func TestTransformStateCountsClassKeys(t *testing.T) {
	states := []dfa.DfaState{
		dfa.NewState(0, []dfa.Edge{{Key: key.Class("alpha"), Target: 1}}, false, term.EmptyAction(), "", nil),
		dfa.NewState(1, nil, true, tokenAction("X"), "", nil),
	}
	d := dfa.New(states, 0)

	n, err := transformState(0, d.State(0))
	require.NoError(t, err)

	assert.Equal(t, 1, n.classKeys)
	require.Len(t, n.rawTransitions, 1)
	assert.Equal(t, key.EmitClass, n.rawTransitions[0].atoms[0].Kind)
	assert.Equal(t, "alpha", n.rawTransitions[0].atoms[0].Class)
}

func TestTransformStateElidesReadWhenThereIsNothingToConsume(t *testing.T) {
	states := []dfa.DfaState{
		dfa.NewState(0, nil, true, tokenAction("X"), "", nil),
	}
	d := dfa.New(states, 0)

	n, err := transformState(0, d.State(0))
	require.NoError(t, err)
	assert.True(t, n.elideRead)
}

func TestTransformStateDoesNotElideReadOnAnEOSOnlyTransition(t *testing.T) {
	states := []dfa.DfaState{
		dfa.NewState(0, []dfa.Edge{{Key: key.Unique(key.EOS), Target: 1}}, false, term.EmptyAction(), "", nil),
		dfa.NewState(1, nil, true, tokenAction("X"), "", nil),
	}
	d := dfa.New(states, 0)

	n, err := transformState(0, d.State(0))
	require.NoError(t, err)
	// an eos transition still consumes the decision to stop reading;
	// only an omega-only transition elides the read.
	assert.False(t, n.elideRead)
	require.NotNil(t, n.eosTarget)
	assert.Equal(t, dfa.StateID(1), *n.eosTarget)
}

func TestTransformStateElidesReadOnAnOmegaOnlyTransition(t *testing.T) {
	states := []dfa.DfaState{
		dfa.NewState(0, []dfa.Edge{{Key: key.Omega(), Target: 1}}, false, term.EmptyAction(), "", nil),
		dfa.NewState(1, nil, true, tokenAction("X"), "", nil),
	}
	d := dfa.New(states, 0)

	n, err := transformState(0, d.State(0))
	require.NoError(t, err)
	assert.True(t, n.elideRead)
	require.NotNil(t, n.omegaTarget)
}
