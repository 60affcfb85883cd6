package rules

// state is the piece array plus the history it was reached by. Everything
// else (side to move, castling rights, en passant target, clocks) is derived
// from the pair and the setup it started from.
type state struct {
	pieces  [64]Piece
	history []Move
	setup   *Setup
}

func newState(setup *Setup) state {
	return state{pieces: setup.Pieces, setup: setup}
}

// fork returns a private copy for hypothetical play. The history is clipped
// to its length so appends on the fork never write into the original's
// backing array.
func (s *state) fork() state {
	f := *s
	n := len(s.history)
	f.history = s.history[:n:n]
	return f
}

// push applies m and records it.
func (s *state) push(m Move) {
	specials[m.special].apply(&s.pieces, m)
	s.history = append(s.history, m)
}

// pop reverts the most recent move. The history must be non-empty.
func (s *state) pop() Move {
	n := len(s.history) - 1
	m := s.history[n]
	specials[m.special].undo(&s.pieces, m)
	s.history = s.history[:n]
	return m
}

func (s *state) turn() Color {
	t := s.setup.Turn
	if len(s.history)%2 == 1 {
		t = t.Opposite()
	}
	return t
}

func (s *state) kingSquare(c Color) Square {
	k := NewPiece(c, King)
	for sq := Square(0); sq < 64; sq++ {
		if s.pieces[sq] == k {
			return sq
		}
	}
	return NoSquare
}

// enPassantTarget is the square skipped by a two-square pawn advance made on
// the previous ply. With no history the setup's target applies.
func (s *state) enPassantTarget() Square {
	n := len(s.history)
	if n == 0 {
		return s.setup.EnPassant
	}
	last := s.history[n-1]
	if last.piece.Kind() != Pawn || abs(last.to.Rank()-last.from.Rank()) != 2 {
		return NoSquare
	}
	return SquareAt(last.to.File(), (last.to.Rank()+last.from.Rank())/2)
}

// enPassantVictim returns the pawn square captured when the pawn on from
// takes en passant on to.
func (s *state) enPassantVictim(from, to Square) (Square, bool) {
	p := s.pieces[from]
	if p.Kind() != Pawn || to != s.enPassantTarget() || to == NoSquare {
		return NoSquare, false
	}
	if to.Rank()-from.Rank() != forward(p.Color()) || abs(to.File()-from.File()) != 1 {
		return NoSquare, false
	}
	victim := SquareAt(to.File(), from.Rank())
	if s.pieces[victim] != NewPiece(p.Color().Opposite(), Pawn) {
		return NoSquare, false
	}
	return victim, true
}

func rookHome(c Color, w Wing) Square {
	if w == QueenSide {
		return SquareAt(0, homeRank(c))
	}
	return SquareAt(7, homeRank(c))
}

func kingHome(c Color) Square { return SquareAt(4, homeRank(c)) }

// touched reports whether any recorded move left or landed on sq.
func (s *state) touched(sq Square, landing bool) bool {
	for _, m := range s.history {
		if m.from == sq || (landing && m.to == sq) {
			return true
		}
	}
	return false
}

// canCastle reports the castling right of c on w. The setup flag must be
// set, the rook must be standing at home, the king must never have left its
// home square, and nothing may have left or landed on the rook's square.
func (s *state) canCastle(c Color, w Wing) bool {
	if !s.setup.Castling.Has(c, w) {
		return false
	}
	rook := rookHome(c, w)
	if s.pieces[rook] != NewPiece(c, Rook) || s.pieces[kingHome(c)] != NewPiece(c, King) {
		return false
	}
	return !s.touched(kingHome(c), false) && !s.touched(rook, true)
}

func (s *state) castlingRights() CastlingRights {
	var r CastlingRights
	for _, c := range [2]Color{White, Black} {
		for _, w := range [2]Wing{KingSide, QueenSide} {
			if s.canCastle(c, w) {
				r |= castleFlag(c, w)
			}
		}
	}
	return r
}

// lastIrreversible is the history index of the latest capture or pawn move, or -1.
func (s *state) lastIrreversible() int {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].IsIrreversible() {
			return i
		}
	}
	return -1
}

// halfmoveClock counts plies since the last capture or pawn move.
func (s *state) halfmoveClock() int {
	if i := s.lastIrreversible(); i >= 0 {
		return len(s.history) - 1 - i
	}
	return s.setup.HalfmoveClock + len(s.history)
}
