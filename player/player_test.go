package player

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jersi/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

var (
	testBoard   = game.NewBoard()
	testCatalog = game.NewCatalog()
)

func openingState() *game.GameState {
	return game.NewGameState(testBoard, testCatalog)
}

// capturePosition plays the shortest scripted line that leaves the
// mover a stack capture: white to move, eight capturing actions
// around f4.
func capturePosition(t *testing.T) *game.GameState {
	t.Helper()
	s := openingState()
	for _, name := range []string{"a1-b2=d3", "i5-h5=f4"} {
		next, err := s.ApplyByName(name)
		require.NoError(t, err)
		s = next
	}
	return s
}

func legalNames(s *game.GameState) map[string]bool {
	names := make(map[string]bool)
	for _, name := range s.ActionNames() {
		names[name] = true
	}
	return names
}

func TestIsMoveAction(t *testing.T) {
	assert.True(t, isMoveAction("a1-b2"))
	assert.True(t, isMoveAction("a1=b2"))
	assert.True(t, isMoveAction("d3=f4!-e4"))
	assert.False(t, isMoveAction("M:c1"))
	assert.False(t, isMoveAction("M:c1/W:c2"))
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	c.Add(NewRandom("random"))

	p, err := c.Get("random")
	require.NoError(t, err)
	assert.Equal(t, "random", p.Name())

	_, err = c.Get("nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no player "nobody"`)

	assert.Panics(t, func() { c.Add(NewRandom("random")) }, "duplicate names are rejected")
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	names := c.Names()
	for _, name := range []string{
		"human", "random",
		"minimax1", "minimax1-400", "minimax2", "minimax2-400", "minimax3", "minimax3-400",
		"mcts-2s", "mcts-10s-jrp", "mcts-50i-jrp",
	} {
		assert.Contains(t, names, name)
	}

	human, err := c.Get("human")
	require.NoError(t, err)
	assert.True(t, human.Interactive())

	random, err := c.Get("random")
	require.NoError(t, err)
	assert.False(t, random.Interactive())
}
