// Package searcher implements Monte-Carlo tree search over a generic
// two-player zero-sum game. The game plugs in through the State
// interface; rewards are expressed from a fixed maximizer viewpoint.
package searcher

type Action interface {
	Name() string
}

// State is one game position seen from a fixed maximizer. Play must
// leave the receiver untouched and return the successor.
type State interface {
	// Player returns +1 when the maximizer is to move, -1 otherwise.
	Player() int
	IsTerminal() bool
	// Reward is only meaningful on terminal states: positive for a
	// maximizer win, negative for a loss, zero for a draw.
	Reward() float64
	Actions() []Action
	Play(action Action) State
}

// Statistics reports visit and reward totals after a search.
type Statistics struct {
	RootVisits   int
	RootReward   float64
	ActionVisits int
	ActionReward float64
}
