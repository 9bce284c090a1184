package game

import "fmt"

// Side identifies one of the two players.
type Side int

const (
	White Side = iota
	Black
)

func (s Side) Opponent() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	panic(fmt.Sprintf("game: invalid side %d", int(s)))
}

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// CubeSort is one of the seven piece types.
type CubeSort int8

const (
	Fool CubeSort = iota
	King
	Mountain
	Paper
	Rock
	Scissors
	Wise
)

// CubeStatus tracks where a cube currently lives. Exactly one status
// holds for every cube; Unused marks cubes excluded from the game.
type CubeStatus int8

const (
	Active CubeStatus = iota
	Reserved
	Captured
	Unused
)

const (
	cubeCount = 42

	nullCube int8 = -1
)

// Cube is an immutable catalog entry. The label casing encodes the side:
// uppercase for white, lowercase for black.
type Cube struct {
	Index int8
	Name  string
	Label byte
	Sort  CubeSort
	Side  Side
}

// Beats reports whether c may capture other. Same-side pairs never beat; a
// King, Wise or Mountain never initiates a capture; a Mountain is never
// captured; Rock, Paper and Scissors beat each other cyclically and each
// also beats Fool, King and Wise; Fool beats the three elementals, itself
// and the King.
func (c *Cube) Beats(other *Cube) bool {
	if c.Side == other.Side || other.Sort == Mountain {
		return false
	}
	switch c.Sort {
	case King, Wise, Mountain:
		return false
	case Rock:
		return other.Sort == Scissors || other.Sort == Fool || other.Sort == King || other.Sort == Wise
	case Paper:
		return other.Sort == Rock || other.Sort == Fool || other.Sort == King || other.Sort == Wise
	case Scissors:
		return other.Sort == Paper || other.Sort == Fool || other.Sort == King || other.Sort == Wise
	case Fool:
		return other.Sort == Rock || other.Sort == Paper || other.Sort == Scissors ||
			other.Sort == Fool || other.Sort == King
	}
	panic(fmt.Sprintf("game: invalid cube sort %d", int8(c.Sort)))
}

func (c *Cube) String() string {
	return c.Name
}

// Catalog is the immutable set of all 42 cubes, indexed in sorted-name
// order. Built once and shared read-only between game states.
type Catalog struct {
	cubes  []Cube
	byName map[string]int8
	king   [2]int8
}

type cubeSpec struct {
	name string
	sort CubeSort
	side Side
}

// Sorted-name order, white (uppercase) before black (lowercase). Per side:
// 2 Fool, 1 King, 4 Mountain, 4 Paper, 4 Rock, 4 Scissors, 2 Wise.
var cubeSpecs = []cubeSpec{
	{"F1", Fool, White}, {"F2", Fool, White},
	{"K1", King, White},
	{"M1", Mountain, White}, {"M2", Mountain, White}, {"M3", Mountain, White}, {"M4", Mountain, White},
	{"P1", Paper, White}, {"P2", Paper, White}, {"P3", Paper, White}, {"P4", Paper, White},
	{"R1", Rock, White}, {"R2", Rock, White}, {"R3", Rock, White}, {"R4", Rock, White},
	{"S1", Scissors, White}, {"S2", Scissors, White}, {"S3", Scissors, White}, {"S4", Scissors, White},
	{"W1", Wise, White}, {"W2", Wise, White},

	{"f1", Fool, Black}, {"f2", Fool, Black},
	{"k1", King, Black},
	{"m1", Mountain, Black}, {"m2", Mountain, Black}, {"m3", Mountain, Black}, {"m4", Mountain, Black},
	{"p1", Paper, Black}, {"p2", Paper, Black}, {"p3", Paper, Black}, {"p4", Paper, Black},
	{"r1", Rock, Black}, {"r2", Rock, Black}, {"r3", Rock, Black}, {"r4", Rock, Black},
	{"s1", Scissors, Black}, {"s2", Scissors, Black}, {"s3", Scissors, Black}, {"s4", Scissors, Black},
	{"w1", Wise, Black}, {"w2", Wise, Black},
}

// NewCatalog builds the full cube catalog.
func NewCatalog() *Catalog {
	if len(cubeSpecs) != cubeCount {
		panic("catalog: cube table does not match cubeCount")
	}

	c := &Catalog{
		cubes:  make([]Cube, cubeCount),
		byName: make(map[string]int8, cubeCount),
	}
	for i, spec := range cubeSpecs {
		c.cubes[i] = Cube{
			Index: int8(i),
			Name:  spec.name,
			Label: spec.name[0],
			Sort:  spec.sort,
			Side:  spec.side,
		}
		c.byName[spec.name] = int8(i)
		if spec.sort == King {
			c.king[spec.side] = int8(i)
		}
	}
	return c
}

// Cube returns the cube at index i.
func (c *Catalog) Cube(i int8) *Cube { return &c.cubes[i] }

// CubeByName looks a cube up by name, e.g. "K1" or "r3".
func (c *Catalog) CubeByName(name string) (*Cube, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return &c.cubes[i], true
}

// KingIndex returns the index of the given side's king.
func (c *Catalog) KingIndex(side Side) int8 { return c.king[side] }
