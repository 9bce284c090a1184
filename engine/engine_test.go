package engine

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jersi/game"
	"jersi/player"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestNewRequiresBothPlayers(t *testing.T) {
	state := game.NewGameState(game.NewBoard(), game.NewCatalog())
	assert.Panics(t, func() { New(state, nil, player.NewRandom("random")) })
	assert.Panics(t, func() { New(state, player.NewRandom("random"), nil) })
}

func TestNextTurn(t *testing.T) {
	state := game.NewGameState(game.NewBoard(), game.NewCatalog())
	e := New(state, player.NewRandom("white"), player.NewRandom("black"))

	require.True(t, e.HasNextTurn())
	e.NextTurn()

	assert.NotEmpty(t, e.LastAction())
	assert.Equal(t, 2, e.State().Turn())
	assert.Equal(t, game.Black, e.State().CurrentSide())
}

func TestRunFinishesTheGame(t *testing.T) {
	state := game.NewGameState(game.NewBoard(), game.NewCatalog(), game.WithMaxCredit(5))
	e := New(state, player.NewRandom("white"), player.NewRandom("black"))

	rewards := e.Run()

	final := e.State()
	require.True(t, final.IsTerminal())
	assert.NotEqual(t, game.NotTerminal, final.TerminalCase())
	assert.Equal(t, final.Rewards(), rewards)
	assert.Equal(t, 0, rewards[game.White]+rewards[game.Black], "zero-sum outcome")

	assert.False(t, e.HasNextTurn())
	e.NextTurn()
	assert.Equal(t, final, e.State(), "a finished game no longer advances")
}
