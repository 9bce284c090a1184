package game

// Action finders. Every finder works on forked states: a trier either
// returns nil or an Action carrying a fully built successor state, so
// the receiver is never mutated.

// movableCubeAt reports whether the mover may take the topmost cube of
// the cell: a friendly non-Mountain cube, alone or on top of a stack.
func (s *GameState) movableCubeAt(cell int8) bool {
	if s.board.cells[cell].Reserve {
		return false
	}
	cube := s.top[cell]
	if cube == nullCube {
		cube = s.bottom[cell]
	}
	if cube == nullCube {
		return false
	}
	c := s.catalog.Cube(cube)
	return c.Side == s.side && c.Sort != Mountain
}

// movableStackAt reports whether the cell holds a full stack of two
// friendly non-Mountain cubes.
func (s *GameState) movableStackAt(cell int8) bool {
	if s.board.cells[cell].Reserve {
		return false
	}
	bottom, top := s.bottom[cell], s.top[cell]
	if bottom == nullCube || top == nullCube {
		return false
	}
	bc, tc := s.catalog.Cube(bottom), s.catalog.Cube(top)
	return bc.Side == s.side && tc.Side == s.side &&
		bc.Sort != Mountain && tc.Sort != Mountain
}

// droppableCubes returns at most one reserved Mountain and one reserved
// Wise of the mover, lowest index first. Sibling reserves are
// interchangeable, so one of each sort is enough.
func (s *GameState) droppableCubes() []int8 {
	var cubes []int8
	mountainFound, wiseFound := false, false

	for i, status := range s.status {
		if status != Reserved {
			continue
		}
		c := s.catalog.Cube(int8(i))
		if c.Side != s.side {
			continue
		}
		switch {
		case c.Sort == Mountain && !mountainFound:
			cubes = append(cubes, int8(i))
			mountainFound = true
		case c.Sort == Wise && !wiseFound:
			cubes = append(cubes, int8(i))
			wiseFound = true
		}
		if mountainFound && wiseFound {
			break
		}
	}
	return cubes
}

// tryDrop drops a reserved cube onto an active cell. A Mountain may only
// stack on a Mountain; nothing stacks on a King; the landed-on cube must
// be friendly.
func (s *GameState) tryDrop(cube, dst int8, prev *Action) *Action {
	c := s.catalog.Cube(cube)

	if c.Side != s.side || (c.Sort != Mountain && c.Sort != Wise) {
		return nil
	}
	if s.status[cube] != Reserved || s.board.cells[dst].Reserve {
		return nil
	}

	notation := dropNotation(c.Label, s.board.cells[dst].Name, prev)

	switch {
	case s.bottom[dst] == nullCube:
		ns := s.fork()
		ns.removeReserved(cube)
		ns.bottom[dst] = cube
		ns.status[cube] = Active
		return newAction(notation, ns, CaptureNone, prev)

	case s.top[dst] == nullCube:
		bottom := s.catalog.Cube(s.bottom[dst])
		if bottom.Side != s.side || bottom.Sort == King {
			return nil
		}
		if c.Sort == Mountain && bottom.Sort != Mountain {
			return nil
		}
		ns := s.fork()
		ns.removeReserved(cube)
		ns.top[dst] = cube
		ns.status[cube] = Active
		return newAction(notation, ns, CaptureNone, prev)

	default:
		return nil
	}
}

// tryRelocateKing puts a just-captured king back on a cell of its home
// row: onto an empty cell, or on top of a lone cube that is friendly to
// the king or a Mountain.
func (s *GameState) tryRelocateKing(king, dst int8, prev *Action) *Action {
	k := s.catalog.Cube(king)

	if s.status[king] != Captured || s.top[dst] != nullCube {
		return nil
	}

	if s.bottom[dst] == nullCube {
		ns := s.fork()
		ns.bottom[dst] = king
		ns.status[king] = Active
		notation := relocateKingNotation(k.Label, s.board.cells[dst].Name, prev)
		return newAction(notation, ns, CaptureKing, prev)
	}

	bottom := s.catalog.Cube(s.bottom[dst])
	if bottom.Side != k.Side && bottom.Sort != Mountain {
		return nil
	}
	ns := s.fork()
	ns.top[dst] = king
	ns.status[king] = Active
	notation := relocateKingNotation(k.Label, s.board.cells[dst].Name, prev)
	return newAction(notation, ns, CaptureKing, prev)
}

// liftMovableCube removes the mover's cube from the cell, top first,
// and returns its index.
func (s *GameState) liftMovableCube(src int8) int8 {
	if cube := s.top[src]; cube != nullCube {
		s.top[src] = nullCube
		return cube
	}
	cube := s.bottom[src]
	s.bottom[src] = nullCube
	return cube
}

func (s *GameState) topmostCube(src int8) int8 {
	if s.top[src] != nullCube {
		return s.top[src]
	}
	return s.bottom[src]
}

func captureOf(captured *Cube) Capture {
	if captured.Sort == King {
		return CaptureKing
	}
	return CaptureSome
}

// tryMoveCube moves the topmost movable cube of src one step to dst.
func (s *GameState) tryMoveCube(src, dst int8, prev *Action) *Action {
	if !s.movableCubeAt(src) || s.board.cells[dst].Reserve {
		return nil
	}

	srcName := s.board.cells[src].Name
	dstName := s.board.cells[dst].Name

	switch {
	case s.bottom[dst] == nullCube:
		// empty destination
		ns := s.fork()
		ns.bottom[dst] = ns.liftMovableCube(src)
		notation := moveCubeNotation(srcName, dstName, CaptureNone, prev)
		return newAction(notation, ns, CaptureNone, prev)

	case s.top[dst] == nullCube:
		// lone cube on destination
		bottom := s.catalog.Cube(s.bottom[dst])
		mover := s.catalog.Cube(s.topmostCube(src))

		switch {
		case bottom.Sort == Mountain:
			// a lone Mountain carries any cube, whatever its side
			ns := s.fork()
			ns.top[dst] = ns.liftMovableCube(src)
			notation := moveCubeNotation(srcName, dstName, CaptureNone, prev)
			return newAction(notation, ns, CaptureNone, prev)

		case bottom.Side != s.side:
			if !mover.Beats(bottom) {
				return nil
			}
			capture := captureOf(bottom)
			ns := s.fork()
			ns.status[ns.bottom[dst]] = Captured
			ns.bottom[dst] = ns.liftMovableCube(src)
			notation := moveCubeNotation(srcName, dstName, capture, prev)
			return newAction(notation, ns, capture, prev)

		case bottom.Sort == King:
			return nil

		default:
			ns := s.fork()
			ns.top[dst] = ns.liftMovableCube(src)
			notation := moveCubeNotation(srcName, dstName, CaptureNone, prev)
			return newAction(notation, ns, CaptureNone, prev)
		}

	default:
		// full destination: only the enemy top can be attacked
		top := s.catalog.Cube(s.top[dst])
		bottom := s.catalog.Cube(s.bottom[dst])
		mover := s.catalog.Cube(s.topmostCube(src))

		if top.Side == s.side || !mover.Beats(top) {
			return nil
		}

		if bottom.Sort == Mountain {
			// the Mountain shelters the bottom: replace the top only
			capture := captureOf(top)
			ns := s.fork()
			ns.status[ns.top[dst]] = Captured
			ns.top[dst] = ns.liftMovableCube(src)
			notation := moveCubeNotation(srcName, dstName, capture, prev)
			return newAction(notation, ns, capture, prev)
		}

		capture := captureOf(top)
		ns := s.fork()
		ns.status[ns.top[dst]] = Captured
		ns.status[ns.bottom[dst]] = Captured
		ns.top[dst] = nullCube
		ns.bottom[dst] = ns.liftMovableCube(src)
		notation := moveCubeNotation(srcName, dstName, capture, prev)
		return newAction(notation, ns, capture, prev)
	}
}

// tryMoveStack moves a full friendly stack to dst, one or two cells away
// along one direction.
func (s *GameState) tryMoveStack(src, dst int8, prev *Action) *Action {
	if !s.movableStackAt(src) || s.board.cells[dst].Reserve {
		return nil
	}

	srcName := s.board.cells[src].Name
	dstName := s.board.cells[dst].Name

	moveStack := func(ns *GameState) {
		bottom, top := ns.bottom[src], ns.top[src]
		ns.bottom[src], ns.top[src] = nullCube, nullCube
		ns.bottom[dst], ns.top[dst] = bottom, top
	}

	switch {
	case s.bottom[dst] == nullCube:
		ns := s.fork()
		moveStack(ns)
		notation := moveStackNotation(srcName, dstName, CaptureNone, prev)
		return newAction(notation, ns, CaptureNone, prev)

	case s.top[dst] == nullCube:
		top := s.catalog.Cube(s.top[src])
		bottom := s.catalog.Cube(s.bottom[dst])

		if top.Side == bottom.Side || !top.Beats(bottom) {
			return nil
		}
		capture := captureOf(bottom)
		ns := s.fork()
		ns.status[ns.bottom[dst]] = Captured
		ns.bottom[dst] = nullCube
		moveStack(ns)
		notation := moveStackNotation(srcName, dstName, capture, prev)
		return newAction(notation, ns, capture, prev)

	default:
		top := s.catalog.Cube(s.top[src])
		dstTop := s.catalog.Cube(s.top[dst])
		dstBottom := s.catalog.Cube(s.bottom[dst])

		if top.Side == dstTop.Side || !top.Beats(dstTop) || dstBottom.Sort == Mountain {
			return nil
		}
		capture := captureOf(dstTop)
		ns := s.fork()
		ns.status[ns.top[dst]] = Captured
		ns.status[ns.bottom[dst]] = Captured
		ns.top[dst], ns.bottom[dst] = nullCube, nullCube
		moveStack(ns)
		notation := moveStackNotation(srcName, dstName, capture, prev)
		return newAction(notation, ns, capture, prev)
	}
}

// findDrops generates single and double drops. The second drop lands on
// the first destination itself or one of its direct neighbors, and its
// cube comes from the reserve left after the first drop.
func (s *GameState) findDrops(findOne bool) []*Action {
	appender := newActionAppender()

	for _, cube1 := range s.droppableCubes() {
		for _, dst1 := range s.board.ActiveCells() {
			a1 := s.tryDrop(cube1, dst1, nil)
			if a1 == nil {
				continue
			}
			appender.append(a1)
			if findOne {
				return appender.actions
			}

			s1 := a1.state
			for _, cube2 := range s1.droppableCubes() {
				for _, dst2 := range append([]int8{dst1}, s.board.ActiveNeighbors(dst1)...) {
					if a2 := s1.tryDrop(cube2, dst2, a1); a2 != nil {
						appender.append(a2)
					}
				}
			}
		}
	}
	return appender.actions
}

// findMoves generates all move actions, each king-capturing one expanded
// into its relocation continuations.
func (s *GameState) findMoves() []*Action {
	moves := append(s.findStackFirstMoves(false), s.findCubeFirstMoves(false)...)
	moves = s.withKingRelocations(moves)

	appender := newActionAppender()
	for _, a := range moves {
		appender.append(a)
	}
	return appender.actions
}

// withKingRelocations expands every king-capturing action into one
// action per legal relocation cell on the captured king's home row.
// When no relocation is possible the bare capture stands and the king
// stays captured, which ends the game.
func (s *GameState) withKingRelocations(moves []*Action) []*Action {
	actions := make([]*Action, 0, len(moves))
	king := s.catalog.KingIndex(s.side.Opponent())
	kingSide := s.catalog.Cube(king).Side

	for _, a := range moves {
		if a.capture != CaptureKing {
			actions = append(actions, a)
			continue
		}

		relocated := false
		for _, dst := range s.board.HomeRow(kingSide) {
			if ak := a.state.tryRelocateKing(king, dst, a); ak != nil {
				actions = append(actions, ak)
				relocated = true
			}
		}
		if !relocated {
			actions = append(actions, a)
		}
	}
	return actions
}

// findCubeFirstMoves generates single cube moves and their chained
// continuations: when the moved cube completes a friendly stack, the
// stack may move on, one or two cells.
func (s *GameState) findCubeFirstMoves(findOne bool) []*Action {
	var actions []*Action

	for _, src := range s.board.ActiveCells() {
		if !s.movableCubeAt(src) {
			continue
		}
		for d := Direction(0); d < directionCount; d++ {
			dst1 := s.board.FirstNeighbor(src, d)
			if dst1 == nullCell {
				continue
			}
			a1 := s.tryMoveCube(src, dst1, nil)
			if a1 == nil {
				continue
			}
			actions = append(actions, a1)
			if findOne {
				return actions
			}

			s1 := a1.state
			if !s1.movableStackAt(dst1) {
				continue
			}
			for d2 := Direction(0); d2 < directionCount; d2++ {
				dst21 := s1.board.FirstNeighbor(dst1, d2)
				if dst21 == nullCell {
					continue
				}
				if a21 := s1.tryMoveStack(dst1, dst21, a1); a21 != nil {
					actions = append(actions, a21)
				}
				if s1.bottom[dst21] == nullCube {
					// the stack can cross the empty cell
					if dst22 := s1.board.SecondNeighbor(dst1, d2); dst22 != nullCell {
						if a22 := s1.tryMoveStack(dst1, dst22, a1); a22 != nil {
							actions = append(actions, a22)
						}
					}
				}
			}
		}
	}
	return actions
}

// findStackFirstMoves generates stack moves, over one or two cells, and
// their chained continuations: after the stack settles, its top cube may
// move on.
func (s *GameState) findStackFirstMoves(findOne bool) []*Action {
	var actions []*Action

	for _, src := range s.board.ActiveCells() {
		if !s.movableStackAt(src) {
			continue
		}
		for d := Direction(0); d < directionCount; d++ {
			dst11 := s.board.FirstNeighbor(src, d)
			if dst11 == nullCell {
				continue
			}
			if a11 := s.tryMoveStack(src, dst11, nil); a11 != nil {
				actions = append(actions, a11)
				if findOne {
					return actions
				}

				s11 := a11.state
				for d2 := Direction(0); d2 < directionCount; d2++ {
					dst21 := s11.board.FirstNeighbor(dst11, d2)
					if dst21 == nullCell {
						continue
					}
					if a21 := s11.tryMoveCube(dst11, dst21, a11); a21 != nil {
						actions = append(actions, a21)
					}
				}
			}

			if s.bottom[dst11] != nullCube {
				continue
			}
			// the stack can cross the empty cell
			dst12 := s.board.SecondNeighbor(src, d)
			if dst12 == nullCell {
				continue
			}
			a12 := s.tryMoveStack(src, dst12, nil)
			if a12 == nil {
				continue
			}
			actions = append(actions, a12)

			s12 := a12.state
			for d2 := Direction(0); d2 < directionCount; d2++ {
				dst22 := s12.board.FirstNeighbor(dst12, d2)
				if dst22 == nullCell {
					continue
				}
				if a22 := s12.tryMoveCube(dst12, dst22, a12); a22 != nil {
					actions = append(actions, a22)
				}
			}
		}
	}
	return actions
}

// HasAction reports whether the mover has at least one legal action,
// without generating the whole action list.
func (s *GameState) HasAction() bool {
	if len(s.findCubeFirstMoves(true)) != 0 {
		return true
	}
	return len(s.findDrops(true)) != 0
}
