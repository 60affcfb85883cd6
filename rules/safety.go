package rules

// SafetyMode selects how hypothetical moves are played out when testing
// king safety. Both modes give identical verdicts.
type SafetyMode uint8

const (
	// SafetyClone plays each hypothetical move on a private copy of the
	// piece array and history.
	SafetyClone SafetyMode = iota
	// SafetyUndo plays the move in place and reverts it with the move's
	// undo routine before returning.
	SafetyUndo
)

func (m SafetyMode) String() string {
	if m == SafetyUndo {
		return "undo"
	}
	return "clone"
}

// tryMove evaluates fn on the position reached by m. A move whose origin
// equals its destination evaluates the current position. No change made
// during the call is visible once it returns.
func (s *state) tryMove(m Move, mode SafetyMode, fn func(*state) bool) bool {
	if m.from == m.to {
		return fn(s)
	}
	if mode == SafetyUndo {
		s.push(m)
		ok := fn(s)
		s.pop()
		return ok
	}
	f := s.fork()
	f.push(m)
	return fn(&f)
}

// attackedAfter reports whether side's king is attacked once m is played.
// For side's own castle every square the king stands on or crosses is
// tested, from its home square toward the rook.
func (s *state) attackedAfter(m Move, side Color, mode SafetyMode) bool {
	if m.special == SpecialCastle && m.piece.Color() == side {
		step := 1
		if m.wing == QueenSide {
			step = -1
		}
		rank := m.from.Rank()
		for f := m.from.File(); f > 1 && f < 7; f += step {
			walk := newBuilder(m.from, SquareAt(f, rank), m.piece)
			if s.attackedAfter(walk.m, side, mode) {
				return true
			}
		}
		return false
	}
	return s.tryMove(m, mode, func(next *state) bool { return next.kingAttacked(side) })
}

// kingAttacked reports whether any enemy piece can move onto side's king
// under its plain movement rule. A board without that king is never in check.
func (s *state) kingAttacked(side Color) bool {
	king := s.kingSquare(side)
	if king == NoSquare {
		return false
	}
	for sq := Square(0); sq < 64; sq++ {
		p := s.pieces[sq]
		if p == NoPiece || p.Color() == side {
			continue
		}
		b := newBuilder(sq, king, p)
		if dispatch[p.Kind()].validate(s, &b) {
			return true
		}
	}
	return false
}

// hasAnyLegalMove stops at the first pseudo move of side that passes
// validation without exposing its king.
func (s *state) hasAnyLegalMove(side Color, mode SafetyMode) bool {
	var buf [32]Square
	for sq := Square(0); sq < 64; sq++ {
		p := s.pieces[sq]
		if p == NoPiece || p.Color() != side {
			continue
		}
		kind := &dispatch[p.Kind()]
		for _, to := range kind.pseudo(s, sq, buf[:0]) {
			b := newBuilder(sq, to, p)
			if !kind.validate(s, &b) {
				continue
			}
			b.resolveCapture(s)
			if !s.attackedAfter(b.m, side, mode) {
				return true
			}
		}
	}
	return false
}
