package player

import (
	"math"
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"jersi/game"
)

const (
	distanceWeight = 1000
	captureWeight  = 50000
	centerWeight   = 200
)

var relocationSuffix = regexp.MustCompile(`/[kK]:..$`)

type MinimaxOption func(m *Minimax)

// WithDepth sets the search depth in plies; at least 1.
func WithDepth(depth int) MinimaxOption {
	if depth < 1 {
		panic("player: minimax depth must be at least 1")
	}
	return func(m *Minimax) { m.maxDepth = depth }
}

// WithMaxChildren samples the action list down to roughly this many
// children per node, keeping spread over destination cells.
func WithMaxChildren(count int) MinimaxOption {
	return func(m *Minimax) { m.maxChildren = count }
}

// Minimax searches with negascout over a material, king-distance and
// center-control evaluation.
type Minimax struct {
	name        string
	maxDepth    int
	maxChildren int
}

func NewMinimax(name string, options ...MinimaxOption) *Minimax {
	m := &Minimax{name: name, maxDepth: 1}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Name() string { return m.name }

func (m *Minimax) Interactive() bool { return false }

func (m *Minimax) Search(state *game.GameState) *game.Action {
	maximizer := state.CurrentSide()

	bestValue := math.Inf(-1)
	var best []*game.Action

	for _, action := range m.orderActions(m.sampleActions(state.LegalActions())) {
		child := state.Apply(action)
		value := -m.negamax(child, maximizer, -1, m.maxDepth-1, math.Inf(-1), math.Inf(1))

		switch {
		case value > bestValue:
			bestValue = value
			best = best[:0]
			best = append(best, action)
		case value == bestValue:
			best = append(best, action)
		}
	}

	return best[rand.Intn(len(best))]
}

// negamax searches from the viewpoint of the side to move; sign is +1
// when that side is the maximizer. Uses negascout null windows with a
// full re-search on fail-high.
func (m *Minimax) negamax(state *game.GameState, maximizer game.Side, sign int, depth int, alpha, beta float64) float64 {
	if depth == 0 || state.IsTerminal() {
		return float64(sign) * m.evaluate(state, maximizer)
	}

	actions := m.orderActions(m.sampleActions(state.LegalActions()))

	value := math.Inf(-1)
	for i, action := range actions {
		child := state.Apply(action)

		var childValue float64
		if i == 0 {
			childValue = -m.negamax(child, maximizer, -sign, depth-1, -beta, -alpha)
		} else {
			childValue = -m.negamax(child, maximizer, -sign, depth-1, -alpha-1, -alpha)
			if alpha < childValue && childValue < beta {
				childValue = -m.negamax(child, maximizer, -sign, depth-1, -beta, -childValue)
			}
		}

		value = math.Max(value, childValue)
		alpha = math.Max(alpha, value)
		if alpha >= beta {
			break
		}
	}
	return value
}

// evaluate scores a position for the maximizer: king progress, material
// balance and center presence, with terminal positions at infinity.
func (m *Minimax) evaluate(state *game.GameState, maximizer game.Side) float64 {
	sign := 1.0
	if maximizer == game.Black {
		sign = -1
	}

	if state.IsTerminal() {
		switch reward := state.Rewards()[maximizer]; {
		case reward > 0:
			return math.Inf(1)
		case reward < 0:
			return math.Inf(-1)
		default:
			return 0
		}
	}

	distances := state.KingGoalDistances()
	captures := state.CaptureCounts()
	centers := state.CenterCounts()

	value := 0.0
	value += distanceWeight * sign * float64(distances[game.Black]-distances[game.White])
	value += captureWeight * sign * float64(captures[game.Black]-captures[game.White])
	value += centerWeight * sign * float64(centers[game.White]-centers[game.Black])
	return value
}

// orderActions puts capturing actions first so alpha-beta cuts early.
func (m *Minimax) orderActions(actions []*game.Action) []*game.Action {
	ordered := make([]*game.Action, len(actions))
	copy(ordered, actions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return strings.Count(ordered[i].Name(), "!") > strings.Count(ordered[j].Name(), "!")
	})
	return ordered
}

// sampleActions trims an oversized action list. Board moves are sorted
// by destination cell and sampled one per chunk, then topped up with a
// few random drops.
func (m *Minimax) sampleActions(actions []*game.Action) []*game.Action {
	if m.maxChildren == 0 || len(actions) <= m.maxChildren {
		return actions
	}

	var drops, moves []*game.Action
	for _, a := range actions {
		if isMoveAction(a.Name()) {
			moves = append(moves, a)
		} else {
			drops = append(drops, a)
		}
	}

	if len(moves) > m.maxChildren {
		destination := func(a *game.Action) string {
			name := relocationSuffix.ReplaceAllString(a.Name(), "")
			name = strings.ReplaceAll(name, "!", "")
			return name[len(name)-2:]
		}
		sort.SliceStable(moves, func(i, j int) bool {
			return destination(moves[i]) < destination(moves[j])
		})

		sampled := make([]*game.Action, 0, m.maxChildren)
		for _, chunk := range chunks(moves, m.maxChildren) {
			if len(chunk) != 0 {
				sampled = append(sampled, chunk[rand.Intn(len(chunk))])
			}
		}
		moves = sampled
	}

	if len(drops) == 0 {
		return moves
	}

	dropCount := m.maxChildren - len(moves)
	if minimum := int(math.Ceil(dropProbability * float64(len(moves)))); dropCount < minimum {
		dropCount = minimum
	}
	for i := 0; i < dropCount; i++ {
		moves = append(moves, drops[rand.Intn(len(drops))])
	}
	return moves
}

// chunks splits a slice into count successive chunks; the last one
// takes the remainder.
func chunks(actions []*game.Action, count int) [][]*game.Action {
	size := len(actions) / count
	result := make([][]*game.Action, 0, count)

	end := 0
	for i := 0; i < count-1; i++ {
		start := end
		end = start + size
		result = append(result, actions[start:end])
	}
	result = append(result, actions[end:])
	return result
}
