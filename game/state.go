package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// MaxCredit is the number of captureless turns before a game is drawn.
// The counter rearms whenever an action captures.
const MaxCredit = 40

// TerminalCase tells how a finished game ended.
type TerminalCase int

const (
	NotTerminal TerminalCase = iota
	WhiteArrived
	BlackArrived
	WhiteCaptured
	BlackCaptured
	WhiteBlocked
	BlackBlocked
	ZeroCredit
)

func (c TerminalCase) String() string {
	switch c {
	case NotTerminal:
		return "not terminal"
	case WhiteArrived:
		return "white arrived"
	case BlackArrived:
		return "black arrived"
	case WhiteCaptured:
		return "white captured"
	case BlackCaptured:
		return "black captured"
	case WhiteBlocked:
		return "white blocked"
	case BlackBlocked:
		return "black blocked"
	case ZeroCredit:
		return "zero credit"
	}
	return fmt.Sprintf("TerminalCase(%d)", int(c))
}

type verdict struct {
	terminal bool
	cas      TerminalCase
	rewards  [2]int
}

// GameState is one position: cube placement, side to move, turn counter
// and the draw-countdown credit. States are immutable through the public
// API; Apply and the action finders work on structural copies, so a kept
// reference stays valid while the game continues elsewhere.
type GameState struct {
	board   *Board
	catalog *Catalog

	bottom [cellCount]int8
	top    [cellCount]int8
	status [cubeCount]CubeStatus

	side   Side
	turn   int
	credit int

	maxCredit int

	taken bool

	actions      []*Action
	byName       map[string]*Action
	bySimpleName map[string]*Action
	verdict      *verdict
}

// Option customizes the initial position.
type Option func(*config)

type config struct {
	reserve   bool
	maxCredit int
}

// WithoutReserve starts without the reserved Mountain and Wise cubes,
// removing all drop actions from the game.
func WithoutReserve() Option {
	return func(c *config) { c.reserve = false }
}

// WithMaxCredit overrides the captureless-turn countdown.
func WithMaxCredit(credit int) Option {
	if credit <= 0 {
		panic("game: max credit must be positive")
	}
	return func(c *config) { c.maxCredit = credit }
}

var initialPlacement = []struct{ cube, cell string }{
	{"F1", "b1"}, {"F2", "b8"}, {"K1", "a4"},
	{"R1", "b2"}, {"P1", "b3"}, {"S1", "b4"},
	{"R2", "b5"}, {"P2", "b6"}, {"S2", "b7"},
	{"R3", "a3"}, {"S3", "a2"}, {"P3", "a1"},
	{"S4", "a5"}, {"R4", "a6"}, {"P4", "a7"},

	{"f1", "h1"}, {"f2", "h8"}, {"k1", "i4"},
	{"r1", "h7"}, {"p1", "h6"}, {"s1", "h5"},
	{"r2", "h4"}, {"p2", "h3"}, {"s2", "h2"},
	{"r3", "i5"}, {"s3", "i6"}, {"p3", "i7"},
	{"s4", "i3"}, {"r4", "i2"}, {"p4", "i1"},
}

var initialReserve = []struct{ cube, cell string }{
	{"W1", "c"}, {"W2", "c"},
	{"M1", "b"}, {"M2", "b"},
	{"M3", "a"}, {"M4", "a"},

	{"m1", "i"}, {"m2", "i"},
	{"m3", "h"}, {"m4", "h"},
	{"w1", "g"}, {"w2", "g"},
}

// NewGameState builds the opening position. The board and catalog are
// shared read-only; many states may reference the same instances.
func NewGameState(board *Board, catalog *Catalog, opts ...Option) *GameState {
	cfg := config{reserve: true, maxCredit: MaxCredit}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &GameState{
		board:     board,
		catalog:   catalog,
		side:      White,
		turn:      1,
		credit:    cfg.maxCredit,
		maxCredit: cfg.maxCredit,
	}
	for i := range s.bottom {
		s.bottom[i] = nullCube
		s.top[i] = nullCube
	}
	for i := range s.status {
		s.status[i] = Active
	}

	for _, p := range initialPlacement {
		s.placeByName(p.cube, p.cell)
	}
	if cfg.reserve {
		for _, p := range initialReserve {
			s.placeByName(p.cube, p.cell)
			cube, _ := catalog.CubeByName(p.cube)
			s.status[cube.Index] = Reserved
		}
	} else {
		for i := range s.status {
			if kind := catalog.Cube(int8(i)).Sort; kind == Mountain || kind == Wise {
				s.status[i] = Unused
			}
		}
	}
	return s
}

func (s *GameState) placeByName(cubeName, cellName string) {
	cube, ok := s.catalog.CubeByName(cubeName)
	if !ok {
		panic(fmt.Sprintf("game: unknown cube %q", cubeName))
	}
	cell, ok := s.board.CellByName(cellName)
	if !ok {
		panic(fmt.Sprintf("game: unknown cell %q", cellName))
	}
	s.setCube(cube.Index, int8(cell.Index))
}

// setCube stacks the cube onto the cell: bottom slot first, then top.
func (s *GameState) setCube(cube, cell int8) {
	switch {
	case s.bottom[cell] == nullCube:
		s.bottom[cell] = cube
	case s.top[cell] == nullCube:
		s.top[cell] = cube
	default:
		panic(fmt.Sprintf("game: cell %s already holds two cubes", s.board.Cell(int(cell)).Name))
	}
}

// removeReserved takes the cube off its reserve cell, keeping a single
// remaining cube in the bottom slot.
func (s *GameState) removeReserved(cube int8) {
	for i := range s.bottom {
		if s.board.cells[i].Reserve {
			if s.top[i] == cube {
				s.top[i] = nullCube
				return
			}
			if s.bottom[i] == cube {
				s.bottom[i] = s.top[i]
				s.top[i] = nullCube
				return
			}
		}
	}
	panic(fmt.Sprintf("game: reserved cube %s not found on a reserve cell", s.catalog.Cube(cube).Name))
}

// fork returns a structural copy with all lazy caches cleared. The fixed
// arrays copy by value; board and catalog stay shared.
func (s *GameState) fork() *GameState {
	ns := *s
	ns.taken = false
	ns.actions = nil
	ns.byName = nil
	ns.bySimpleName = nil
	ns.verdict = nil
	return &ns
}

// CurrentSide returns the side to move.
func (s *GameState) CurrentSide() Side { return s.side }

// Turn returns the 1-based turn counter.
func (s *GameState) Turn() int { return s.turn }

// Credit returns the remaining captureless turns before a draw.
func (s *GameState) Credit() int { return s.credit }

// Board returns the shared board topology.
func (s *GameState) Board() *Board { return s.board }

// Catalog returns the shared cube catalog.
func (s *GameState) Catalog() *Catalog { return s.catalog }

// CubeAt returns the bottom and top cubes of a cell; nil when absent.
func (s *GameState) CubeAt(cell int8) (bottom, top *Cube) {
	if s.bottom[cell] != nullCube {
		bottom = s.catalog.Cube(s.bottom[cell])
	}
	if s.top[cell] != nullCube {
		top = s.catalog.Cube(s.top[cell])
	}
	return bottom, top
}

// Status returns the status of cube i.
func (s *GameState) Status(cube int8) CubeStatus { return s.status[cube] }

// Apply advances the game by one action of this position. The turn
// bookkeeping runs once per action; applying the same action twice
// returns the same successor.
func (s *GameState) Apply(a *Action) *GameState {
	next := a.state

	if !next.taken {
		next.taken = true
		next.side = next.side.Opponent()
		next.turn++
		next.credit = max(0, next.credit-1)
		if a.capture != CaptureNone {
			next.credit = next.maxCredit
		}
	}
	return next
}

// ApplyByName applies the action whose notation matches name. Capture
// marks in the input are ignored during matching.
func (s *GameState) ApplyByName(name string) (*GameState, error) {
	a, err := s.ActionByName(name)
	if err != nil {
		return nil, err
	}
	return s.Apply(a), nil
}

// ActionByName resolves an action from its notation, with or without
// capture marks.
func (s *GameState) ActionByName(name string) (*Action, error) {
	s.indexActions()
	if a, ok := s.byName[name]; ok {
		return a, nil
	}
	if a, ok := s.bySimpleName[Simplify(name)]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("no legal action %q", name)
}

// LegalActions returns every legal action of the position, shuffled.
// The slice is computed once and cached; callers must not mutate it.
func (s *GameState) LegalActions() []*Action {
	if s.actions == nil {
		s.actions = append(s.findMoves(), s.findDrops(false)...)
		rand.Shuffle(len(s.actions), func(i, j int) {
			s.actions[i], s.actions[j] = s.actions[j], s.actions[i]
		})
	}
	return s.actions
}

func (s *GameState) indexActions() {
	if s.byName != nil {
		return
	}
	s.byName = make(map[string]*Action)
	s.bySimpleName = make(map[string]*Action)
	for _, a := range s.LegalActions() {
		s.byName[a.name] = a
		s.bySimpleName[Simplify(a.name)] = a
	}
}

// ActionNames returns the sorted notations of all legal actions.
func (s *GameState) ActionNames() []string {
	s.indexActions()
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActionSimpleNames returns the sorted notations with capture marks
// stripped, the form players type.
func (s *GameState) ActionSimpleNames() []string {
	s.indexActions()
	names := make([]string, 0, len(s.bySimpleName))
	for name := range s.bySimpleName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *GameState) kingCell(side Side) int8 {
	king := s.catalog.KingIndex(side)
	for i := range s.bottom {
		if s.bottom[i] == king || s.top[i] == king {
			return int8(i)
		}
	}
	return nullCell
}

// IsTerminal reports whether the game is over. The verdict is computed
// once and cached.
func (s *GameState) IsTerminal() bool {
	s.resolve()
	return s.verdict.terminal
}

// TerminalCase tells how the game ended, or NotTerminal.
func (s *GameState) TerminalCase() TerminalCase {
	s.resolve()
	return s.verdict.cas
}

// Rewards returns the per-side outcome (+1 win, 0 draw, -1 loss),
// indexed by White and Black. Panics on a non-terminal position.
func (s *GameState) Rewards() [2]int {
	s.resolve()
	if !s.verdict.terminal {
		panic("game: rewards requested on a non-terminal state")
	}
	return s.verdict.rewards
}

func won(winner Side) [2]int {
	var r [2]int
	r[winner] = 1
	r[winner.Opponent()] = -1
	return r
}

// resolve decides the verdict. A captured king outranks an arrival,
// which outranks credit exhaustion, which outranks a blocked mover.
func (s *GameState) resolve() {
	if s.verdict != nil {
		return
	}
	v := &verdict{cas: NotTerminal}
	s.verdict = v

	whiteCaptured := s.status[s.catalog.KingIndex(White)] == Captured
	blackCaptured := s.status[s.catalog.KingIndex(Black)] == Captured

	whiteArrived := false
	blackArrived := false
	if !whiteCaptured && !blackCaptured {
		whiteArrived = s.board.IsGoal(White, s.kingCell(White))
		if !whiteArrived {
			blackArrived = s.board.IsGoal(Black, s.kingCell(Black))
		}
	}

	switch {
	case whiteCaptured:
		v.terminal = true
		v.cas = WhiteCaptured
		v.rewards = won(Black)
	case blackCaptured:
		v.terminal = true
		v.cas = BlackCaptured
		v.rewards = won(White)
	case whiteArrived:
		v.terminal = true
		v.cas = WhiteArrived
		v.rewards = won(White)
	case blackArrived:
		v.terminal = true
		v.cas = BlackArrived
		v.rewards = won(Black)
	case s.credit == 0:
		v.terminal = true
		v.cas = ZeroCredit
	case !s.HasAction():
		v.terminal = true
		if s.side == White {
			v.cas = WhiteBlocked
			v.rewards = won(Black)
		} else {
			v.cas = BlackBlocked
			v.rewards = won(White)
		}
	}
}

// CaptureCounts returns how many cubes each side has lost.
func (s *GameState) CaptureCounts() [2]int {
	var counts [2]int
	for i, status := range s.status {
		if status == Captured {
			counts[s.catalog.Cube(int8(i)).Side]++
		}
	}
	return counts
}

// ReserveCounts returns how many cubes each side still holds in reserve.
func (s *GameState) ReserveCounts() [2]int {
	var counts [2]int
	for i, status := range s.status {
		if status == Reserved {
			counts[s.catalog.Cube(int8(i)).Side]++
		}
	}
	return counts
}

// KingGoalDistances returns each king's hex distance to its goal row.
func (s *GameState) KingGoalDistances() [2]int {
	var distances [2]int
	for side := White; side <= Black; side++ {
		distances[side] = s.board.GoalDistance(side, s.kingCell(side))
	}
	return distances
}

// CenterCounts counts each side's non-Mountain cubes in the central zone.
func (s *GameState) CenterCounts() [2]int {
	var counts [2]int
	for _, cell := range s.board.CenterCells() {
		for _, cube := range []int8{s.bottom[cell], s.top[cell]} {
			if cube == nullCube {
				break
			}
			c := s.catalog.Cube(cube)
			if c.Sort != Mountain {
				counts[c.Side]++
			}
		}
	}
	return counts
}

// Summary is a one-line digest: turn, side to move, credit, and the
// reserved and captured cubes grouped by label.
func (s *GameState) Summary() string {
	reserved := make(map[byte]int)
	captured := make(map[byte]int)
	for i, status := range s.status {
		label := s.catalog.Cube(int8(i)).Label
		switch status {
		case Reserved:
			reserved[label]++
		case Captured:
			captured[label]++
		}
	}

	group := func(counts map[byte]int) string {
		labels := make([]byte, 0, len(counts))
		for label := range counts {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

		parts := make([]string, 0, len(labels))
		for _, label := range labels {
			parts = append(parts, fmt.Sprintf("%c:%d", label, counts[label]))
		}
		return strings.Join(parts, " ")
	}

	return fmt.Sprintf("turn %d / player %s / credit %d / reserved %s / captured %s",
		s.turn, s.side, s.credit, group(reserved), group(captured))
}

// Render draws the playable board as text, one row per line. Each cell
// shows its name and its cubes top-first, dots for empty slots.
func (s *GameState) Render() string {
	const shift = "    "

	var sb strings.Builder
	for _, row := range s.board.layout {
		sb.WriteString(strings.Repeat(shift, row.shift))
		for _, name := range row.names {
			cell, _ := s.board.CellByName(name)
			sb.WriteString(name)

			bottom, top := s.CubeAt(int8(cell.Index))
			switch {
			case bottom == nil:
				sb.WriteString("..")
			case top == nil:
				sb.WriteString("." + string(bottom.Label))
			default:
				sb.WriteString(string(top.Label) + string(bottom.Label))
			}
			sb.WriteString(shift)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
