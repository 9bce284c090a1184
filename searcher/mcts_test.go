package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type mockAction struct {
	name string
}

func (a *mockAction) Name() string { return a.name }

// mockState is a hand-built game tree node. Play follows the next map;
// terminal leaves carry the maximizer reward.
type mockState struct {
	player   int
	terminal bool
	reward   float64
	actions  []Action
	next     map[Action]State
}

func (s *mockState) Player() int      { return s.player }
func (s *mockState) IsTerminal() bool { return s.terminal }
func (s *mockState) Reward() float64  { return s.reward }

func (s *mockState) Actions() []Action {
	actions := make([]Action, len(s.actions))
	copy(actions, s.actions)
	return actions
}

func (s *mockState) Play(action Action) State {
	next, ok := s.next[action]
	if !ok {
		panic("mock: unknown action " + action.Name())
	}
	return next
}

func leaf(reward float64) *mockState {
	return &mockState{terminal: true, reward: reward}
}

func branch(player int, next map[Action]State) *mockState {
	s := &mockState{player: player, next: next}
	for action := range next {
		s.actions = append(s.actions, action)
	}
	return s
}

func TestNewValidatesBudget(t *testing.T) {
	assert.Panics(t, func() { New() }, "a budget is required")
	assert.Panics(t, func() { New(WithDuration(time.Second), WithIterations(10)) },
		"duration and iterations are exclusive")
	assert.NotPanics(t, func() { New(WithIterations(10)) })
	assert.NotPanics(t, func() { New(WithDuration(time.Millisecond)) })
}

func TestSearchPicksImmediateWin(t *testing.T) {
	win := &mockAction{name: "win"}
	draw := &mockAction{name: "draw"}
	lose := &mockAction{name: "lose"}
	root := branch(+1, map[Action]State{
		win:  leaf(+1),
		draw: leaf(0),
		lose: leaf(-1),
	})

	m := New(WithIterations(200), WithSeed(7))
	best := m.Search(root)
	assert.Equal(t, "win", best.Name())

	bests := m.BestActions()
	require.Len(t, bests, 1)
	assert.Equal(t, "win", bests[0].Name())
}

func TestSearchAvoidsPunishedBranch(t *testing.T) {
	// The trap branch looks attractive until the opponent reply is
	// explored: the opponent minimizes and picks the punishment.
	punish := &mockAction{name: "punish"}
	blunder := &mockAction{name: "blunder"}
	reply := branch(-1, map[Action]State{
		punish:  leaf(-1),
		blunder: leaf(+1),
	})

	safe := &mockAction{name: "safe"}
	trap := &mockAction{name: "trap"}
	root := branch(+1, map[Action]State{
		safe: leaf(0),
		trap: reply,
	})

	m := New(WithIterations(500), WithSeed(11))
	best := m.Search(root)
	assert.Equal(t, "safe", best.Name())
}

func TestSearchWithSingleIteration(t *testing.T) {
	win := &mockAction{name: "win"}
	lose := &mockAction{name: "lose"}
	root := branch(+1, map[Action]State{
		win:  leaf(+1),
		lose: leaf(-1),
	})

	m := New(WithIterations(1), WithSeed(2))
	best := m.Search(root)
	require.NotNil(t, best, "one round is enough to report an action")
	assert.Contains(t, []string{"win", "lose"}, best.Name())
}

func TestStepwiseSearch(t *testing.T) {
	win := &mockAction{name: "win"}
	lose := &mockAction{name: "lose"}
	root := branch(+1, map[Action]State{
		win:  leaf(+1),
		lose: leaf(-1),
	})

	m := New(WithIterations(120), WithSeed(3))
	m.SearchInit(root)
	require.False(t, m.SearchEnded())

	m.SearchRun()
	assert.InDelta(t, 100*50.0/120.0, m.Progression(), 0.01, "one slice of 50 rounds")

	for !m.SearchEnded() {
		m.SearchRun()
	}
	assert.Equal(t, 100.0, m.Progression())

	best := m.BestAction()
	assert.Equal(t, "win", best.Name())

	stats := m.Statistics(best)
	assert.Equal(t, 120, stats.RootVisits, "every round visits the root")
	assert.Greater(t, stats.ActionVisits, 0)
	assert.Positive(t, stats.ActionReward)
}

func TestSearchWithDurationStops(t *testing.T) {
	win := &mockAction{name: "win"}
	lose := &mockAction{name: "lose"}
	root := branch(+1, map[Action]State{
		win:  leaf(+1),
		lose: leaf(-1),
	})

	m := New(WithDuration(20*time.Millisecond), WithSeed(5))
	start := time.Now()
	best := m.Search(root)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.NotNil(t, best)
}

func TestRandomRollout(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, 1.0, RandomRollout(leaf(+1), rng), "a terminal state returns its reward")

	step := &mockAction{name: "step"}
	start := branch(+1, map[Action]State{step: leaf(-1)})
	assert.Equal(t, -1.0, RandomRollout(start, rng))

	stuck := &mockState{player: +1}
	assert.Panics(t, func() { RandomRollout(stuck, rng) },
		"a non-terminal state without actions is a defect")
}
