package player

import (
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	xrand "golang.org/x/exp/rand"

	"jersi/game"
	"jersi/searcher"
)

// mctsState adapts a game position to the searcher interface, pinning
// the maximizer to the side that started the search.
type mctsState struct {
	state     *game.GameState
	maximizer game.Side
}

func (s mctsState) Player() int {
	if s.state.CurrentSide() == s.maximizer {
		return 1
	}
	return -1
}

func (s mctsState) IsTerminal() bool { return s.state.IsTerminal() }

func (s mctsState) Reward() float64 {
	return float64(s.state.Rewards()[s.maximizer])
}

func (s mctsState) Actions() []searcher.Action {
	legal := s.state.LegalActions()
	actions := make([]searcher.Action, len(legal))
	for i, a := range legal {
		actions[i] = a
	}
	return actions
}

func (s mctsState) Play(action searcher.Action) searcher.State {
	return mctsState{
		state:     s.state.Apply(action.(*game.Action)),
		maximizer: s.maximizer,
	}
}

// actionWeight scores a notation for the biased rollout: captures count
// most, then stack steps, then cube steps.
func actionWeight(name string) float64 {
	return 100*float64(strings.Count(name, "!")) +
		10*float64(strings.Count(name, "=")) +
		1*float64(strings.Count(name, "-"))
}

// biasedRollout follows weighted random actions until the game ends.
func biasedRollout(state searcher.State, rng *xrand.Rand) float64 {
	for !state.IsTerminal() {
		state = state.Play(selectBiased(state.Actions(), rng))
	}
	return state.Reward()
}

func selectBiased(actions []searcher.Action, rng *xrand.Rand) searcher.Action {
	var drops, moves []searcher.Action
	for _, a := range actions {
		if isMoveAction(a.Name()) {
			moves = append(moves, a)
		} else {
			drops = append(drops, a)
		}
	}

	if len(moves) == 0 {
		return drops[rng.Intn(len(drops))]
	}
	if len(drops) != 0 && rng.Float64() <= dropProbability {
		return drops[rng.Intn(len(drops))]
	}

	total := 0.0
	for _, a := range moves {
		total += actionWeight(a.Name())
	}
	if total == 0 {
		return moves[rng.Intn(len(moves))]
	}
	pick := rng.Float64() * total
	for _, a := range moves {
		pick -= actionWeight(a.Name())
		if pick <= 0 {
			return a
		}
	}
	return moves[len(moves)-1]
}

type MctsOption func(m *Mcts)

// WithTimeLimit bounds each search by wall-clock milliseconds.
func WithTimeLimit(milliseconds int) MctsOption {
	return func(m *Mcts) { m.timeLimit = milliseconds }
}

// WithIterationLimit bounds each search by a round count.
func WithIterationLimit(iterations int) MctsOption {
	return func(m *Mcts) { m.iterations = iterations }
}

// WithBiasedRollout makes rollouts prefer captures and stack moves.
func WithBiasedRollout() MctsOption {
	return func(m *Mcts) { m.biased = true }
}

// Mcts drives a Monte-Carlo tree search each turn. Defaults to a one
// second budget when neither limit is given.
type Mcts struct {
	name       string
	timeLimit  int
	iterations int
	biased     bool
}

func NewMcts(name string, options ...MctsOption) *Mcts {
	m := &Mcts{name: name}
	for _, option := range options {
		option(m)
	}
	if m.timeLimit > 0 && m.iterations > 0 {
		panic("player: cannot set both a time limit and an iteration limit")
	}
	if m.timeLimit == 0 && m.iterations == 0 {
		m.timeLimit = 1000
	}
	return m
}

func (m *Mcts) Name() string { return m.name }

func (m *Mcts) Interactive() bool { return false }

func (m *Mcts) Search(state *game.GameState) *game.Action {
	var options []searcher.Option
	if m.timeLimit > 0 {
		options = append(options, searcher.WithDuration(time.Duration(m.timeLimit)*time.Millisecond))
	} else {
		options = append(options, searcher.WithIterations(m.iterations))
	}
	if m.biased {
		options = append(options, searcher.WithRollout(biasedRollout))
	}
	mcts := searcher.New(options...)

	_ = mcts.Search(mctsState{state: state, maximizer: state.CurrentSide()})

	// amongst the best actions prefer board moves over drops
	best := mcts.BestActions()
	var bestMoves []searcher.Action
	for _, a := range best {
		if isMoveAction(a.Name()) {
			bestMoves = append(bestMoves, a)
		}
	}
	if len(bestMoves) != 0 {
		if dropped := len(best) - len(bestMoves); dropped != 0 {
			log.Debug().Msgf("%s: forgetting %d best drop actions", m.name, dropped)
		}
		best = bestMoves
	}

	action := best[rand.Intn(len(best))].(*game.Action)

	stats := mcts.Statistics(action)
	log.Info().Msgf("%s: chosen action %s reward %.1f over %d visits / root reward %.1f over %d visits",
		m.name, action.Name(), stats.ActionReward, stats.ActionVisits, stats.RootReward, stats.RootVisits)

	return action
}
