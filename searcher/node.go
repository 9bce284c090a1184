package searcher

type node struct {
	state         State
	parent        *node
	terminal      bool
	fullyExpanded bool
	visits        int
	reward        float64
	children      map[Action]*node
}

func newNode(state State, parent *node) *node {
	terminal := state.IsTerminal()
	return &node{
		state:         state,
		parent:        parent,
		terminal:      terminal,
		fullyExpanded: terminal,
		children:      make(map[Action]*node),
	}
}

// backup propagates a rollout reward up to the root.
func (n *node) backup(reward float64) {
	for node := n; node != nil; node = node.parent {
		node.visits++
		node.reward += reward
	}
}
