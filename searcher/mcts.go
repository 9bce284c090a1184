package searcher

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// RolloutPolicy plays a position out to the end and returns its reward.
type RolloutPolicy func(state State, rng *rand.Rand) float64

// RandomRollout follows uniformly random actions until the game ends.
func RandomRollout(state State, rng *rand.Rand) float64 {
	for !state.IsTerminal() {
		actions := state.Actions()
		if len(actions) == 0 {
			panic(fmt.Sprintf("searcher: non-terminal state has no actions: %v", state))
		}
		state = state.Play(actions[rng.Intn(len(actions))])
	}
	return state.Reward()
}

type Option func(m *MCTS)

// WithDuration bounds a search by wall-clock time.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		m.duration = duration
	}
}

// WithIterations bounds a search by a number of rounds.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithExploration overrides the UCB1 exploration constant.
func WithExploration(exploration float64) Option {
	return func(m *MCTS) {
		m.exploration = exploration
	}
}

// WithRollout overrides the rollout policy.
func WithRollout(rollout RolloutPolicy) Option {
	return func(m *MCTS) {
		m.rollout = rollout
	}
}

// WithSeed makes the search deterministic.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// MCTS is a single-threaded Monte-Carlo tree searcher. One round runs
// selection, expansion, rollout and backpropagation; the budget is
// either a duration or an iteration count, never both.
type MCTS struct {
	duration    time.Duration
	iterations  int
	exploration float64
	rollout     RolloutPolicy
	rng         *rand.Rand

	root *node

	// stepwise search bookkeeping
	timeBegin   time.Time
	timeEnd     time.Time
	timeCurrent time.Time
	iterCurrent int
	ended       bool
}

const (
	// stepwise slice sizes
	timeSlice      = time.Second
	iterationSlice = 50
)

func New(options ...Option) *MCTS {
	m := &MCTS{
		exploration: math.Sqrt2,
		rollout:     RandomRollout,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(m)
	}
	if (m.duration > 0) == (m.iterations > 0) {
		panic("searcher: must specify either a search duration or an iteration count")
	}
	return m
}

// Search grows a tree from state until the budget runs out, then
// returns the action of the most promising root child.
func (m *MCTS) Search(state State) Action {
	m.SearchInit(state)
	for !m.SearchEnded() {
		m.SearchRun()
	}
	return m.BestAction()
}

// SearchInit starts a stepwise search. Callers alternate SearchRun and
// SearchEnded, typically polling Progression in between.
func (m *MCTS) SearchInit(state State) {
	m.root = newNode(state, nil)
	m.ended = false
	if m.duration > 0 {
		m.timeBegin = time.Now()
		m.timeCurrent = m.timeBegin
		m.timeEnd = m.timeBegin.Add(m.duration)
	} else {
		m.iterCurrent = 0
	}
}

// SearchRun executes one slice of the search budget.
func (m *MCTS) SearchRun() {
	if m.SearchEnded() {
		return
	}
	if m.duration > 0 {
		sliceEnd := m.timeCurrent.Add(timeSlice)
		if sliceEnd.After(m.timeEnd) {
			sliceEnd = m.timeEnd
		}
		for time.Now().Before(sliceEnd) {
			m.round()
		}
	} else {
		sliceEnd := min(m.iterCurrent+iterationSlice, m.iterations)
		for m.iterCurrent < sliceEnd {
			m.round()
			m.iterCurrent++
		}
	}
}

// SearchEnded reports whether the budget is exhausted.
func (m *MCTS) SearchEnded() bool {
	if !m.ended {
		if m.duration > 0 {
			m.timeCurrent = time.Now()
			m.ended = !m.timeCurrent.Before(m.timeEnd)
		} else {
			m.ended = m.iterCurrent >= m.iterations
		}
	}
	return m.ended
}

// Progression returns the share of the budget spent, from 0 to 100.
func (m *MCTS) Progression() float64 {
	if m.SearchEnded() {
		return 100
	}
	if m.duration > 0 {
		return 100 * float64(m.timeCurrent.Sub(m.timeBegin)) / float64(m.duration)
	}
	return 100 * float64(m.iterCurrent) / float64(m.iterations)
}

func (m *MCTS) round() {
	node := m.selectNode(m.root)
	reward := m.rollout(node.state, m.rng)
	node.backup(reward)
}

// selectNode descends by UCB1 through fully expanded nodes, then
// expands one untried action.
func (m *MCTS) selectNode(n *node) *node {
	for !n.terminal {
		if n.fullyExpanded {
			n = m.bestChild(n, m.exploration)
		} else {
			return m.expand(n)
		}
	}
	return n
}

func (m *MCTS) expand(n *node) *node {
	actions := n.state.Actions()
	m.rng.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
	})
	for _, action := range actions {
		if _, tried := n.children[action]; tried {
			continue
		}
		child := newNode(n.state.Play(action), n)
		n.children[action] = child
		if len(n.children) == len(actions) {
			n.fullyExpanded = true
		}
		return child
	}
	panic("searcher: expand called on a fully expanded node")
}

// bestChild picks the child maximizing the mover's UCB1 value, breaking
// ties at random. With zero exploration this is the pure exploitation
// choice used to report the search result.
func (m *MCTS) bestChild(n *node, exploration float64) *node {
	player := float64(n.state.Player())
	bestValue := math.Inf(-1)
	var best []*node

	for _, child := range n.children {
		value := player*child.reward/float64(child.visits) +
			exploration*math.Sqrt(math.Log(float64(n.visits))/float64(child.visits))
		switch {
		case value > bestValue:
			bestValue = value
			best = best[:0]
			best = append(best, child)
		case value == bestValue:
			best = append(best, child)
		}
	}
	return best[m.rng.Intn(len(best))]
}

// BestAction returns the action of the best root child, ties broken at
// random.
func (m *MCTS) BestAction() Action {
	best := m.bestChild(m.root, 0)
	for action, child := range m.root.children {
		if child == best {
			return action
		}
	}
	panic("searcher: best child is not a root child")
}

// BestActions returns every root action tied for the best value.
func (m *MCTS) BestActions() []Action {
	player := float64(m.root.state.Player())
	bestValue := math.Inf(-1)
	var best []Action

	for action, child := range m.root.children {
		value := player * child.reward / float64(child.visits)
		switch {
		case value > bestValue:
			bestValue = value
			best = best[:0]
			best = append(best, action)
		case value == bestValue:
			best = append(best, action)
		}
	}
	return best
}

// Statistics reports the root totals and, when action is a root child,
// its totals as well.
func (m *MCTS) Statistics(action Action) Statistics {
	stats := Statistics{
		RootVisits: m.root.visits,
		RootReward: m.root.reward,
	}
	if child, ok := m.root.children[action]; ok {
		stats.ActionVisits = child.visits
		stats.ActionReward = child.reward
	}
	return stats
}
