package game

// The board is a hexagon of hexagons: nine rows (a..i) of 7 to 9 cells each,
// plus six off-board reserve cells (a, b, c for white; g, h, i for black).
// Cells carry axial (u, v) coordinates; see
// https://www.redblobgames.com/grids/hexagons for the coordinate system.

const (
	cellCount      = 75
	directionCount = 6

	nullCell int8 = -1
)

// Direction indexes the six hexagon directions, counter-clockwise from east.
type Direction int8

const (
	Phi090 Direction = iota
	Phi150
	Phi210
	Phi270
	Phi330
	Phi030
)

var (
	deltaU = [directionCount]int{+1, +1, +0, -1, -1, +0}
	deltaV = [directionCount]int{+0, -1, -1, +0, +1, +1}
)

// Cell is a playable hex or an off-board reserve slot. Cells are created once
// by NewBoard and never mutated.
type Cell struct {
	Index   int
	Name    string
	U, V    int
	Reserve bool
}

type boardRow struct {
	shift int
	names []string
}

// Board holds the static topology: cells, per-direction neighbor tables at
// distance 1 and 2, home and goal rows for each side, and a few precomputed
// helpers for evaluation and rendering. Built once, read-only afterward.
type Board struct {
	cells  []Cell
	byName map[string]int

	active []int8 // indices of playable cells

	fst [cellCount][directionCount]int8 // distance-1 neighbors, nullCell where off-grid or reserve
	snd [cellCount][directionCount]int8 // distance-2 neighbors, absent unless fst exists and neither is reserve

	home   [2][]int8          // king starting rows per side
	isGoal [2][cellCount]bool // king goal rows per side (the opponent's home row)

	goalDist [2][cellCount]int8 // hex distance to the side's nearest goal cell
	center   []int8             // 19-cell central zone

	layout []boardRow // row layout used by the text renderer
}

type cellSpec struct {
	name    string
	u, v    int
	reserve bool
}

var cellSpecs = []cellSpec{
	{name: "a1", u: -1, v: -4}, {name: "a2", u: 0, v: -4}, {name: "a3", u: 1, v: -4},
	{name: "a4", u: 2, v: -4}, {name: "a5", u: 3, v: -4}, {name: "a6", u: 4, v: -4},
	{name: "a7", u: 5, v: -4},
	{name: "a", u: 6, v: -4, reserve: true},

	{name: "b1", u: -2, v: -3}, {name: "b2", u: -1, v: -3}, {name: "b3", u: 0, v: -3},
	{name: "b4", u: 1, v: -3}, {name: "b5", u: 2, v: -3}, {name: "b6", u: 3, v: -3},
	{name: "b7", u: 4, v: -3}, {name: "b8", u: 5, v: -3},
	{name: "b", u: 6, v: -3, reserve: true},

	{name: "c1", u: -2, v: -2}, {name: "c2", u: -1, v: -2}, {name: "c3", u: 0, v: -2},
	{name: "c4", u: 1, v: -2}, {name: "c5", u: 2, v: -2}, {name: "c6", u: 3, v: -2},
	{name: "c7", u: 4, v: -2},
	{name: "c", u: 5, v: -2, reserve: true},

	{name: "d1", u: -3, v: -1}, {name: "d2", u: -2, v: -1}, {name: "d3", u: -1, v: -1},
	{name: "d4", u: 0, v: -1}, {name: "d5", u: 1, v: -1}, {name: "d6", u: 2, v: -1},
	{name: "d7", u: 3, v: -1}, {name: "d8", u: 4, v: -1},

	{name: "e1", u: -4, v: 0}, {name: "e2", u: -3, v: 0}, {name: "e3", u: -2, v: 0},
	{name: "e4", u: -1, v: 0}, {name: "e5", u: 0, v: 0}, {name: "e6", u: 1, v: 0},
	{name: "e7", u: 2, v: 0}, {name: "e8", u: 3, v: 0}, {name: "e9", u: 4, v: 0},

	{name: "f1", u: -4, v: 1}, {name: "f2", u: -3, v: 1}, {name: "f3", u: -2, v: 1},
	{name: "f4", u: -1, v: 1}, {name: "f5", u: 0, v: 1}, {name: "f6", u: 1, v: 1},
	{name: "f7", u: 2, v: 1}, {name: "f8", u: 3, v: 1},

	{name: "g", u: -5, v: 2, reserve: true},
	{name: "g1", u: -4, v: 2}, {name: "g2", u: -3, v: 2}, {name: "g3", u: -2, v: 2},
	{name: "g4", u: -1, v: 2}, {name: "g5", u: 0, v: 2}, {name: "g6", u: 1, v: 2},
	{name: "g7", u: 2, v: 2},

	{name: "h", u: -6, v: 3, reserve: true},
	{name: "h1", u: -5, v: 3}, {name: "h2", u: -4, v: 3}, {name: "h3", u: -3, v: 3},
	{name: "h4", u: -2, v: 3}, {name: "h5", u: -1, v: 3}, {name: "h6", u: 0, v: 3},
	{name: "h7", u: 1, v: 3}, {name: "h8", u: 2, v: 3},

	{name: "i", u: -6, v: 4, reserve: true},
	{name: "i1", u: -5, v: 4}, {name: "i2", u: -4, v: 4}, {name: "i3", u: -3, v: 4},
	{name: "i4", u: -2, v: 4}, {name: "i5", u: -1, v: 4}, {name: "i6", u: 0, v: 4},
	{name: "i7", u: 1, v: 4},
}

var homeRowNames = [2][]string{
	White: {"a1", "a2", "a3", "a4", "a5", "a6", "a7"},
	Black: {"i1", "i2", "i3", "i4", "i5", "i6", "i7"},
}

var centerCellNames = []string{
	"c3", "c4", "c5",
	"d3", "d4", "d5", "d6",
	"e3", "e4", "e5", "e6", "e7",
	"f3", "f4", "f5", "f6",
	"g3", "g4", "g5",
}

// NewBoard builds the full topology. The result is immutable and safe to
// share between any number of game states.
func NewBoard() *Board {
	if len(cellSpecs) != cellCount {
		panic("board: cell table does not match cellCount")
	}

	b := &Board{
		cells:  make([]Cell, cellCount),
		byName: make(map[string]int, cellCount),
	}

	byCoord := make(map[[2]int]int, cellCount)
	for i, spec := range cellSpecs {
		b.cells[i] = Cell{Index: i, Name: spec.name, U: spec.u, V: spec.v, Reserve: spec.reserve}
		b.byName[spec.name] = i
		byCoord[[2]int{spec.u, spec.v}] = i
		if !spec.reserve {
			b.active = append(b.active, int8(i))
		}
	}

	b.buildNeighbors(byCoord)
	b.buildKingRows()
	b.buildGoalDistances()
	b.buildCenter()
	b.buildLayout()
	return b
}

func (b *Board) buildNeighbors(byCoord map[[2]int]int) {
	for i := range b.cells {
		for d := range b.fst[i] {
			b.fst[i][d] = nullCell
			b.snd[i][d] = nullCell
		}
		if b.cells[i].Reserve {
			continue
		}
		for d := 0; d < directionCount; d++ {
			fst, ok := byCoord[[2]int{b.cells[i].U + deltaU[d], b.cells[i].V + deltaV[d]}]
			if !ok || b.cells[fst].Reserve {
				continue
			}
			b.fst[i][d] = int8(fst)
			snd, ok := byCoord[[2]int{b.cells[i].U + 2*deltaU[d], b.cells[i].V + 2*deltaV[d]}]
			if ok && !b.cells[snd].Reserve {
				b.snd[i][d] = int8(snd)
			}
		}
	}
}

func (b *Board) buildKingRows() {
	for side := White; side <= Black; side++ {
		for _, name := range homeRowNames[side] {
			b.home[side] = append(b.home[side], int8(b.byName[name]))
		}
	}
	// Each side's goal row is the opponent's home row.
	for side := White; side <= Black; side++ {
		for _, idx := range b.home[side.Opponent()] {
			b.isGoal[side][idx] = true
		}
	}
}

func (b *Board) buildGoalDistances() {
	for side := White; side <= Black; side++ {
		for i, cell := range b.cells {
			best := -1
			for _, goal := range b.home[side.Opponent()] {
				d := hexDistance(cell.U, cell.V, b.cells[goal].U, b.cells[goal].V)
				if best < 0 || d < best {
					best = d
				}
			}
			b.goalDist[side][i] = int8(best)
		}
	}
}

func (b *Board) buildCenter() {
	for _, name := range centerCellNames {
		b.center = append(b.center, int8(b.byName[name]))
	}
}

func (b *Board) buildLayout() {
	b.layout = []boardRow{
		{2, []string{"i1", "i2", "i3", "i4", "i5", "i6", "i7"}},
		{1, []string{"h1", "h2", "h3", "h4", "h5", "h6", "h7", "h8"}},
		{2, []string{"g1", "g2", "g3", "g4", "g5", "g6", "g7"}},
		{1, []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8"}},
		{0, []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7", "e8", "e9"}},
		{1, []string{"d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8"}},
		{2, []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"}},
		{1, []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8"}},
		{2, []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}},
	}
}

func hexDistance(u1, v1, u2, v2 int) int {
	return (abs(u1-u2) + abs(v1-v2) + abs(u1+v1-u2-v2)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Cell returns the cell at index i.
func (b *Board) Cell(i int) Cell { return b.cells[i] }

// CellByName looks a cell up by its name (e.g. "e5" or the reserve cell "a").
func (b *Board) CellByName(name string) (Cell, bool) {
	i, ok := b.byName[name]
	if !ok {
		return Cell{}, false
	}
	return b.cells[i], true
}

// ActiveCells returns the indices of all playable cells.
func (b *Board) ActiveCells() []int8 { return b.active }

// FirstNeighbor returns the distance-1 neighbor of cell c in direction d, or
// -1 when off-grid or a reserve cell.
func (b *Board) FirstNeighbor(c int8, d Direction) int8 { return b.fst[c][d] }

// SecondNeighbor returns the distance-2 neighbor of cell c in direction d, or
// -1 when the intermediate or target cell is off-grid or a reserve cell.
func (b *Board) SecondNeighbor(c int8, d Direction) int8 { return b.snd[c][d] }

// ActiveNeighbors returns the distance-1 playable neighbors of cell c.
func (b *Board) ActiveNeighbors(c int8) []int8 {
	neighbors := make([]int8, 0, directionCount)
	for d := 0; d < directionCount; d++ {
		if n := b.fst[c][d]; n != nullCell {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// HomeRow returns the king starting row of the given side.
func (b *Board) HomeRow(side Side) []int8 { return b.home[side] }

// IsGoal reports whether cell c belongs to the goal row of the given side.
func (b *Board) IsGoal(side Side, c int8) bool { return b.isGoal[side][c] }

// GoalDistance returns the hex distance from cell c to the nearest goal cell
// of the given side.
func (b *Board) GoalDistance(side Side, c int8) int { return int(b.goalDist[side][c]) }

// CenterCells returns the indices of the central zone.
func (b *Board) CenterCells() []int8 { return b.center }
