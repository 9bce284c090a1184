package player

import (
	"math/rand"

	"jersi/game"
)

// dropProbability is the chance the random player spends its turn on a
// drop when board moves are available.
const dropProbability = 0.05

// Random plays a uniformly random board move, with a small bias toward
// an occasional drop so the reserve does not sit unused forever.
type Random struct {
	name string
}

func NewRandom(name string) *Random {
	return &Random{name: name}
}

func (r *Random) Name() string { return r.name }

func (r *Random) Interactive() bool { return false }

func (r *Random) Search(state *game.GameState) *game.Action {
	var drops, moves []*game.Action
	for _, a := range state.LegalActions() {
		if isMoveAction(a.Name()) {
			moves = append(moves, a)
		} else {
			drops = append(drops, a)
		}
	}

	if len(moves) == 0 {
		return drops[rand.Intn(len(drops))]
	}
	if len(drops) != 0 && rand.Float64() <= dropProbability {
		return drops[rand.Intn(len(drops))]
	}
	return moves[rand.Intn(len(moves))]
}
