package game

// Capture classifies what an action removed from the board. Chained
// actions keep the most severe classification of their steps.
type Capture int8

const (
	CaptureNone Capture = iota
	CaptureSome
	CaptureKing
)

// Action is one legal turn: a drop, a cube or stack move, a chained
// combination, or any of those followed by a king relocation. The
// resulting state is built eagerly while generating the action.
type Action struct {
	name    string
	state   *GameState
	capture Capture
}

func newAction(name string, state *GameState, capture Capture, prev *Action) *Action {
	if prev != nil && prev.capture > capture {
		capture = prev.capture
	}
	return &Action{name: name, state: state, capture: capture}
}

// Name returns the action in game notation, including capture marks,
// e.g. "b1-c2!" or "e4=e6!!/k:i3".
func (a *Action) Name() string { return a.name }

// Capture reports the most severe capture the action performs.
func (a *Action) Capture() Capture { return a.capture }

func (a *Action) String() string { return a.name }

// actionAppender collects actions while dropping duplicates: actions
// with a notation already seen, and drop pairs that mirror a seen one
// (same label, the two destinations swapped).
type actionAppender struct {
	actions   []*Action
	notations map[string]struct{}
}

func newActionAppender() *actionAppender {
	return &actionAppender{notations: make(map[string]struct{})}
}

func (p *actionAppender) append(a *Action) {
	if _, seen := p.notations[a.name]; seen {
		return
	}
	if mirror, ok := mirrorDropPair(a.name); ok {
		if _, seen := p.notations[mirror]; seen {
			return
		}
	}
	p.actions = append(p.actions, a)
	p.notations[a.name] = struct{}{}
}
