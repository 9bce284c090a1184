package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"jersi/searcher"
)

func TestNewMctsValidatesLimits(t *testing.T) {
	assert.Panics(t, func() {
		NewMcts("m", WithTimeLimit(1000), WithIterationLimit(50))
	}, "the limits are exclusive")
	assert.NotPanics(t, func() { NewMcts("m") }, "defaults to a time limit")
	assert.NotPanics(t, func() { NewMcts("m", WithIterationLimit(50)) })
}

func TestActionWeight(t *testing.T) {
	assert.Equal(t, 0.0, actionWeight("M:c1"))
	assert.Equal(t, 1.0, actionWeight("a1-b2"))
	assert.Equal(t, 11.0, actionWeight("a1-b2=d3"))
	assert.Equal(t, 110.0, actionWeight("d3=f4!"))
	assert.Equal(t, 210.0, actionWeight("e4=e5!!"))
}

func TestSelectBiased(t *testing.T) {
	rng := xrand.New(xrand.NewSource(1))
	s := capturePosition(t)

	adapted := mctsState{state: s, maximizer: s.CurrentSide()}
	actions := adapted.Actions()

	captures := 0
	for i := 0; i < 200; i++ {
		a := selectBiased(actions, rng)
		require.NotNil(t, a)
		if actionWeight(a.Name()) >= 100 {
			captures++
		}
	}
	assert.Greater(t, captures, 20, "capture weights dominate the draw")
}

func TestMctsStateAdapter(t *testing.T) {
	s := openingState()
	adapted := mctsState{state: s, maximizer: s.CurrentSide()}

	assert.Equal(t, 1, adapted.Player())
	assert.False(t, adapted.IsTerminal())

	actions := adapted.Actions()
	require.Len(t, actions, 1066)

	next := adapted.Play(actions[0]).(mctsState)
	assert.Equal(t, -1, next.Player(), "the opponent moves next")
	assert.Equal(t, s.CurrentSide(), next.maximizer, "the maximizer stays pinned")
}

func TestMctsPlaysLegalActions(t *testing.T) {
	m := NewMcts("mcts-50i", WithIterationLimit(50))
	s := capturePosition(t)

	a := m.Search(s)
	require.NotNil(t, a)
	assert.True(t, legalNames(s)[a.Name()], "illegal action %s", a.Name())
}

var _ searcher.RolloutPolicy = biasedRollout
