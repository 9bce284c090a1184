// Package engine runs a full game between two configured players,
// logging every turn.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"jersi/game"
	"jersi/player"
)

// Engine drives one game from the opening to a terminal position.
type Engine struct {
	state   *game.GameState
	players [2]player.Player

	turn       int
	lastAction string
	thinkTime  [2]time.Duration
}

// New builds an engine over an initial state and one player per side.
func New(state *game.GameState, white, black player.Player) *Engine {
	if white == nil || black == nil {
		panic("engine: both players must be set")
	}
	return &Engine{
		state:   state,
		players: [2]player.Player{game.White: white, game.Black: black},
	}
}

// State returns the current position.
func (e *Engine) State() *game.GameState { return e.state }

// LastAction returns the notation of the most recent turn.
func (e *Engine) LastAction() string { return e.lastAction }

// HasNextTurn reports whether the game is still running.
func (e *Engine) HasNextTurn() bool { return !e.state.IsTerminal() }

func (e *Engine) playerLabel(side game.Side) string {
	return fmt.Sprintf("%s-%s", side, e.players[side].Name())
}

// NextTurn lets the side to move pick and play one action.
func (e *Engine) NextTurn() {
	if !e.HasNextTurn() {
		return
	}

	side := e.state.CurrentSide()
	label := e.playerLabel(side)
	actionCount := len(e.state.LegalActions())

	log.Info().Msgf("%s is thinking ...", label)

	start := time.Now()
	action := e.players[side].Search(e.state)
	elapsed := time.Since(start)
	e.thinkTime[side] += elapsed

	e.turn = e.state.Turn()
	e.lastAction = action.Name()

	log.Info().Msgf("turn %d : after %.1f seconds %s selects %s amongst %d actions",
		e.turn, elapsed.Seconds(), label, action.Name(), actionCount)

	e.state = e.state.Apply(action)

	if e.state.IsTerminal() {
		e.logOutcome()
	}
}

// Run plays the whole game and returns the final rewards.
func (e *Engine) Run() [2]int {
	for e.HasNextTurn() {
		e.NextTurn()
	}
	return e.state.Rewards()
}

func (e *Engine) logOutcome() {
	rewards := e.state.Rewards()
	white := e.playerLabel(game.White)
	black := e.playerLabel(game.Black)
	whiteTime := e.thinkTime[game.White].Seconds()
	blackTime := e.thinkTime[game.Black].Seconds()

	switch {
	case rewards[game.White] == rewards[game.Black]:
		log.Info().Msgf("nobody wins ; the game is a draw between %s and %s ; %.0f versus %.0f seconds",
			white, black, whiteTime, blackTime)
	case rewards[game.White] > rewards[game.Black]:
		log.Info().Msgf("%s wins against %s ; %.0f versus %.0f seconds",
			white, black, whiteTime, blackTime)
	default:
		log.Info().Msgf("%s wins against %s ; %.0f versus %.0f seconds",
			black, white, blackTime, whiteTime)
	}
}
