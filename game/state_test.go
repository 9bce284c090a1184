package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testBoard   = NewBoard()
	testCatalog = NewCatalog()
)

// bareState strips the opening position down to an empty board with every
// cube unused, so a test can stage an exact position with placeActive.
func bareState() *GameState {
	s := NewGameState(testBoard, testCatalog)
	for i := range s.bottom {
		s.bottom[i] = nullCube
		s.top[i] = nullCube
	}
	for i := range s.status {
		s.status[i] = Unused
	}
	return s
}

func placeActive(t *testing.T, s *GameState, cubeName, cellName string) {
	t.Helper()
	cube, ok := s.catalog.CubeByName(cubeName)
	require.True(t, ok, "cube %s", cubeName)
	s.placeByName(cubeName, cellName)
	s.status[cube.Index] = Active
}

func shapeCounts(names []string) map[NotationShape]int {
	counts := make(map[NotationShape]int)
	for _, name := range names {
		counts[ClassifyNotation(Simplify(name))]++
	}
	return counts
}

func statusCounts(s *GameState) map[CubeStatus]int {
	counts := make(map[CubeStatus]int)
	for i := int8(0); i < cubeCount; i++ {
		counts[s.Status(i)]++
	}
	return counts
}

func TestOpeningPosition(t *testing.T) {
	s := NewGameState(testBoard, testCatalog)

	assert.Equal(t, White, s.CurrentSide())
	assert.Equal(t, 1, s.Turn())
	assert.Equal(t, MaxCredit, s.Credit())

	assert.Equal(t, [2]int{6, 6}, s.ReserveCounts())
	assert.Equal(t, [2]int{0, 0}, s.CaptureCounts())
	assert.Equal(t, [2]int{8, 8}, s.KingGoalDistances())
	assert.Equal(t, [2]int{0, 0}, s.CenterCounts())

	counts := statusCounts(s)
	assert.Equal(t, 30, counts[Active])
	assert.Equal(t, 12, counts[Reserved])
	assert.Equal(t, 0, counts[Captured])

	assert.False(t, s.IsTerminal())
	assert.Equal(t, NotTerminal, s.TerminalCase())
	assert.Panics(t, func() { s.Rewards() }, "rewards are undefined before the end")

	summary := s.Summary()
	assert.Contains(t, summary, "turn 1 / player white / credit 40")
	assert.Contains(t, summary, "reserved M:4 W:2 m:4 w:2")

	rendered := s.Render()
	assert.Contains(t, rendered, "a4.K", "white king on its home row")
	assert.Contains(t, rendered, "i4.k", "black king on its home row")
	assert.Contains(t, rendered, "e5..", "empty center")
}

func TestOpeningActions(t *testing.T) {
	s := NewGameState(testBoard, testCatalog)

	actions := s.LegalActions()
	require.Len(t, actions, 1066)

	names := s.ActionNames()
	require.Len(t, names, 1066, "every notation is unique")
	require.Len(t, s.ActionSimpleNames(), 1066, "no opening action captures")

	counts := shapeCounts(names)
	assert.Equal(t, 92, counts[ShapeDropOne])
	assert.Equal(t, 746, counts[ShapeDropTwo])
	assert.Equal(t, 64, counts[ShapeMoveCube])
	assert.Equal(t, 164, counts[ShapeMoveCubeMoveStack])

	assert.Contains(t, names, "M:c1/M:c1", "both mountains may share a cell")

	t.Run("mirror drop pairs appear once", func(t *testing.T) {
		set := make(map[string]bool, len(names))
		for _, name := range names {
			set[name] = true
		}
		mirrors := 0
		for _, name := range names {
			if mirror, ok := mirrorDropPair(name); ok && set[mirror] {
				mirrors++
			}
		}
		assert.Zero(t, mirrors, "a double drop and its mirror place the same cubes")
	})

	t.Run("lookup by name", func(t *testing.T) {
		a, err := s.ActionByName("a1-b2")
		require.NoError(t, err)
		assert.Equal(t, "a1-b2", a.Name())
		assert.Equal(t, CaptureNone, a.Capture())

		_, err = s.ActionByName("e5-e6")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no legal action")
	})
}

func TestApply(t *testing.T) {
	s := NewGameState(testBoard, testCatalog)

	next, err := s.ApplyByName("a1-b2")
	require.NoError(t, err)

	assert.Equal(t, Black, next.CurrentSide())
	assert.Equal(t, 2, next.Turn())
	assert.Equal(t, MaxCredit-1, next.Credit(), "captureless turns burn credit")

	t.Run("the origin state is untouched", func(t *testing.T) {
		assert.Equal(t, White, s.CurrentSide())
		assert.Equal(t, 1, s.Turn())
		assert.Equal(t, MaxCredit, s.Credit())

		b2, _ := s.Board().CellByName("b2")
		bottom, top := s.CubeAt(int8(b2.Index))
		require.NotNil(t, bottom)
		assert.Equal(t, "R1", bottom.Name)
		assert.Nil(t, top)
	})

	t.Run("applying twice yields the same successor", func(t *testing.T) {
		a, err := s.ActionByName("a1-b2")
		require.NoError(t, err)
		again := s.Apply(a)
		assert.Same(t, next, again)
		assert.Equal(t, 2, again.Turn())
	})
}

func TestCaptureLine(t *testing.T) {
	s := NewGameState(testBoard, testCatalog)

	s, err := s.ApplyByName("a1-b2=d3")
	require.NoError(t, err)
	s, err = s.ApplyByName("i5-h5=f4")
	require.NoError(t, err)

	require.Equal(t, White, s.CurrentSide())
	require.Equal(t, 3, s.Turn())

	var captures []string
	for _, name := range s.ActionNames() {
		if strings.Contains(name, "!") {
			captures = append(captures, name)
		}
	}
	assert.ElementsMatch(t, []string{
		"d3=e4-f4!",
		"d3=f4!",
		"d3=f4!-e4",
		"d3=f4!-e5",
		"d3=f4!-f3",
		"d3=f4!-f5",
		"d3=f4!-g3",
		"d3=f4!-g4",
	}, captures)

	t.Run("marked and bare notations both resolve", func(t *testing.T) {
		marked, err := s.ActionByName("d3=f4!")
		require.NoError(t, err)
		bare, err := s.ActionByName("d3=f4")
		require.NoError(t, err)
		assert.Same(t, marked, bare)
		assert.Equal(t, CaptureSome, marked.Capture())
	})

	s, err = s.ApplyByName("d3=f4")
	require.NoError(t, err)

	assert.Equal(t, 4, s.Turn())
	assert.Equal(t, [2]int{0, 2}, s.CaptureCounts(), "the attacked stack is lost whole")
	assert.Equal(t, MaxCredit, s.Credit(), "a capture rearms the countdown")

	counts := statusCounts(s)
	assert.Equal(t, 2, counts[Captured])
	assert.Equal(t, 28, counts[Active])
	assert.Equal(t, 12, counts[Reserved])
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	checkInvariants := func(t *testing.T, s *GameState) {
		t.Helper()

		counts := statusCounts(s)
		require.Equal(t, 42,
			counts[Active]+counts[Reserved]+counts[Captured]+counts[Unused],
			"every cube has exactly one status")

		onBoard, onReserve := 0, 0
		for cell := range s.bottom {
			if s.top[cell] != nullCube {
				require.NotEqual(t, nullCube, s.bottom[cell],
					"cell %s holds a top cube over an empty bottom", s.board.Cell(cell).Name)
			}
			occupants := 0
			if s.bottom[cell] != nullCube {
				occupants++
			}
			if s.top[cell] != nullCube {
				occupants++
			}
			if s.board.Cell(cell).Reserve {
				onReserve += occupants
			} else {
				onBoard += occupants
			}
		}
		require.Equal(t, counts[Active], onBoard, "active cubes all sit on playable cells")
		require.Equal(t, counts[Reserved], onReserve, "reserved cubes all sit on reserve cells")
	}

	s := NewGameState(testBoard, testCatalog)
	checkInvariants(t, s)

	for ply := 0; ply < 60 && !s.IsTerminal(); ply++ {
		actions := s.LegalActions()
		require.NotEmpty(t, actions, "a non-terminal state has actions")
		s = s.Apply(actions[0])
		checkInvariants(t, s)
	}
}

func TestActionNameRoundTrip(t *testing.T) {
	roundTrip := func(t *testing.T, s *GameState) {
		t.Helper()
		for _, name := range s.ActionNames() {
			a, err := s.ActionByName(name)
			require.NoError(t, err, name)
			assert.Equal(t, name, a.Name())

			simple, err := s.ActionByName(Simplify(name))
			require.NoError(t, err, name)
			assert.Same(t, a, simple, "capture marks are display only")
		}
	}

	t.Run("opening", func(t *testing.T) {
		roundTrip(t, NewGameState(testBoard, testCatalog))
	})

	t.Run("position with captures", func(t *testing.T) {
		s := NewGameState(testBoard, testCatalog)
		for _, name := range []string{"a1-b2=d3", "i5-h5=f4"} {
			next, err := s.ApplyByName(name)
			require.NoError(t, err)
			s = next
		}
		roundTrip(t, s)
	})
}

func TestWithoutReserve(t *testing.T) {
	s := NewGameState(testBoard, testCatalog, WithoutReserve())

	assert.Equal(t, [2]int{0, 0}, s.ReserveCounts())

	names := s.ActionNames()
	require.Len(t, names, 228, "the move actions of the opening, without any drop")
	for _, name := range names {
		assert.NotContains(t, name, ":", "no drops without a reserve")
	}
}

func TestWithMaxCredit(t *testing.T) {
	assert.Panics(t, func() { WithMaxCredit(0) })

	s := NewGameState(testBoard, testCatalog, WithMaxCredit(1))
	require.Equal(t, 1, s.Credit())

	s, err := s.ApplyByName("a1-b2")
	require.NoError(t, err)

	assert.Equal(t, 0, s.Credit())
	require.True(t, s.IsTerminal())
	assert.Equal(t, ZeroCredit, s.TerminalCase())
	assert.Equal(t, [2]int{0, 0}, s.Rewards(), "credit exhaustion is a draw")
}

func TestTerminalPrecedence(t *testing.T) {
	t.Run("a captured king outranks an arrival", func(t *testing.T) {
		s := bareState()
		placeActive(t, s, "K1", "i4")
		s.status[s.catalog.KingIndex(Black)] = Captured

		require.True(t, s.IsTerminal())
		assert.Equal(t, BlackCaptured, s.TerminalCase())
		assert.Equal(t, [2]int{1, -1}, s.Rewards())
	})

	t.Run("white arrives on row i", func(t *testing.T) {
		s := bareState()
		placeActive(t, s, "K1", "i4")
		placeActive(t, s, "k1", "e5")

		require.True(t, s.IsTerminal())
		assert.Equal(t, WhiteArrived, s.TerminalCase())
		assert.Equal(t, [2]int{1, -1}, s.Rewards())
	})

	t.Run("black arrives on row a", func(t *testing.T) {
		s := bareState()
		placeActive(t, s, "K1", "e5")
		placeActive(t, s, "k1", "a4")

		require.True(t, s.IsTerminal())
		assert.Equal(t, BlackArrived, s.TerminalCase())
		assert.Equal(t, [2]int{-1, 1}, s.Rewards())
	})
}

func TestBlockedMoverLoses(t *testing.T) {
	s := bareState()
	placeActive(t, s, "K1", "a1")
	placeActive(t, s, "k1", "i4")
	for _, stack := range []struct{ bottom, top, cell string }{
		{"r1", "r2", "a2"},
		{"s1", "s2", "b1"},
		{"p1", "p2", "b2"},
	} {
		placeActive(t, s, stack.bottom, stack.cell)
		placeActive(t, s, stack.top, stack.cell)
	}

	require.False(t, s.HasAction(), "the cornered king cannot attack full stacks")
	require.True(t, s.IsTerminal())
	assert.Equal(t, WhiteBlocked, s.TerminalCase())
	assert.Equal(t, [2]int{-1, 1}, s.Rewards())
}

func TestKingRelocation(t *testing.T) {
	stage := func(t *testing.T) *GameState {
		s := bareState()
		placeActive(t, s, "K1", "a4")
		placeActive(t, s, "R1", "e4")
		placeActive(t, s, "k1", "e5")
		return s
	}

	t.Run("one relocation per empty home cell", func(t *testing.T) {
		s := stage(t)
		names := s.ActionNames()
		for _, cell := range []string{"i1", "i2", "i3", "i4", "i5", "i6", "i7"} {
			assert.Contains(t, names, "e4-e5!!/k:"+cell)
		}
		_, err := s.ActionByName("e4-e5")
		require.Error(t, err, "a relocatable king may not stay captured")

		s, err = s.ApplyByName("e4-e5/k:i3")
		require.NoError(t, err)
		require.False(t, s.IsTerminal())

		i3, _ := s.Board().CellByName("i3")
		bottom, _ := s.CubeAt(int8(i3.Index))
		require.NotNil(t, bottom)
		assert.Equal(t, "k1", bottom.Name)
	})

	t.Run("a mountain carries the relocated king", func(t *testing.T) {
		s := stage(t)
		placeActive(t, s, "M1", "i1")
		for i, cube := range []string{"P1", "P2", "P3", "P4", "S1", "S2"} {
			placeActive(t, s, cube, []string{"i2", "i3", "i4", "i5", "i6", "i7"}[i])
		}

		relocations := 0
		for _, name := range s.ActionNames() {
			if strings.HasPrefix(name, "e4-e5!!/") {
				relocations++
			}
		}
		assert.Equal(t, 1, relocations)

		s, err := s.ApplyByName("e4-e5/k:i1")
		require.NoError(t, err)
		require.False(t, s.IsTerminal())

		i1, _ := s.Board().CellByName("i1")
		bottom, top := s.CubeAt(int8(i1.Index))
		assert.Equal(t, "M1", bottom.Name)
		assert.Equal(t, "k1", top.Name)
	})

	t.Run("a bare king capture ends the game", func(t *testing.T) {
		s := stage(t)
		for i, cube := range []string{"P1", "P2", "P3", "P4", "S1", "S2", "S3"} {
			placeActive(t, s, cube, []string{"i1", "i2", "i3", "i4", "i5", "i6", "i7"}[i])
		}

		a, err := s.ActionByName("e4-e5!!")
		require.NoError(t, err, "no relocation cell is left")
		assert.Equal(t, CaptureKing, a.Capture())

		s = s.Apply(a)
		require.True(t, s.IsTerminal())
		assert.Equal(t, BlackCaptured, s.TerminalCase())
		assert.Equal(t, [2]int{1, -1}, s.Rewards())
	})
}

func TestMountainMoves(t *testing.T) {
	s := bareState()
	placeActive(t, s, "K1", "a4")
	placeActive(t, s, "k1", "i4")
	placeActive(t, s, "S1", "e5")
	placeActive(t, s, "m1", "e6")
	placeActive(t, s, "p1", "e6")
	placeActive(t, s, "m2", "f5")
	placeActive(t, s, "M1", "d4")

	names := s.ActionNames()

	t.Run("a mountain never moves", func(t *testing.T) {
		for _, name := range names {
			assert.False(t, strings.HasPrefix(name, "d4"), "unexpected action %s", name)
		}
	})

	t.Run("a lone enemy mountain carries any cube", func(t *testing.T) {
		assert.Contains(t, names, "e5-f5")
	})

	t.Run("a sheltering mountain survives the attack", func(t *testing.T) {
		require.Contains(t, names, "e5-e6!")

		next, err := s.ApplyByName("e5-e6")
		require.NoError(t, err)
		assert.Equal(t, [2]int{0, 1}, next.CaptureCounts(), "only the top cube is lost")

		e6, _ := next.Board().CellByName("e6")
		bottom, top := next.CubeAt(int8(e6.Index))
		assert.Equal(t, "m1", bottom.Name)
		assert.Equal(t, "S1", top.Name)
	})
}
