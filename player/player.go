// Package player provides the move-choosing strategies: human relay,
// uniform random, minimax and Monte-Carlo tree search.
package player

import (
	"fmt"
	"sort"
	"strings"

	"jersi/game"
)

// Player picks one action per turn. Interactive players wait for
// external input instead of searching.
type Player interface {
	Name() string
	Interactive() bool
	Search(state *game.GameState) *game.Action
}

// isMoveAction distinguishes board moves from drops: a move notation
// always carries a '-' or '=' step.
func isMoveAction(name string) bool {
	return strings.ContainsAny(name, "-=")
}

// Catalog is a registry of configured players, keyed by name.
type Catalog struct {
	players map[string]Player
}

func NewCatalog() *Catalog {
	return &Catalog{players: make(map[string]Player)}
}

// Add registers a player. Duplicate names are a programming defect.
func (c *Catalog) Add(p Player) {
	if _, exists := c.players[p.Name()]; exists {
		panic(fmt.Sprintf("player: duplicate catalog entry %q", p.Name()))
	}
	c.players[p.Name()] = p
}

// Names returns the registered names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.players))
	for name := range c.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the player registered under name.
func (c *Catalog) Get(name string) (Player, error) {
	p, ok := c.players[name]
	if !ok {
		return nil, fmt.Errorf("no player %q in catalog", name)
	}
	return p, nil
}

// DefaultCatalog registers the standard line-up: a human relay, the
// random player, minimax at depths 1 to 3 with and without child
// sampling, and a few MCTS budgets.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	c.Add(NewHuman("human"))
	c.Add(NewRandom("random"))

	c.Add(NewMinimax("minimax1", WithDepth(1)))
	c.Add(NewMinimax("minimax1-400", WithDepth(1), WithMaxChildren(400)))
	c.Add(NewMinimax("minimax2", WithDepth(2)))
	c.Add(NewMinimax("minimax2-400", WithDepth(2), WithMaxChildren(400)))
	c.Add(NewMinimax("minimax3", WithDepth(3)))
	c.Add(NewMinimax("minimax3-400", WithDepth(3), WithMaxChildren(400)))

	c.Add(NewMcts("mcts-2s", WithTimeLimit(2000)))
	c.Add(NewMcts("mcts-10s-jrp", WithTimeLimit(10000), WithBiasedRollout()))
	c.Add(NewMcts("mcts-50i-jrp", WithIterationLimit(50), WithBiasedRollout()))

	return c
}
