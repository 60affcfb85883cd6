package rules

// lastRank reports whether a pawn of c arriving on sq promotes.
func lastRank(sq Square, c Color) bool { return sq.Rank() == homeRank(c.Opposite()) }

func validPawn(s *state, b *moveBuilder) bool {
	from, to := b.m.from, b.m.to
	c := b.m.piece.Color()
	dx, dy := to.File()-from.File(), (to.Rank()-from.Rank())*forward(c)
	target := s.pieces[to]
	switch {
	case dx == 0 && dy == 1:
		if target != NoPiece {
			return false
		}
	case dx == 0 && dy == 2:
		mid := SquareAt(from.File(), from.Rank()+forward(c))
		return from.Rank() == pawnHomeRank(c) && s.pieces[mid] == NoPiece && target == NoPiece
	case abs(dx) == 1 && dy == 1:
		if target == NoPiece {
			victim, ok := s.enPassantVictim(from, to)
			if !ok {
				return false
			}
			b.enPassant(victim, s.pieces[victim])
			return true
		}
		if target.Color() == c {
			return false
		}
	default:
		return false
	}
	if lastRank(to, c) {
		b.promote()
	}
	return true
}

func validKnight(s *state, b *moveBuilder) bool {
	dx, dy := abs(b.m.to.File()-b.m.from.File()), abs(b.m.to.Rank()-b.m.from.Rank())
	if !(dx == 1 && dy == 2) && !(dx == 2 && dy == 1) {
		return false
	}
	return s.enemyOrEmpty(b.m.to, b.m.piece.Color())
}

// pathClear reports whether every square strictly between from and to is
// empty. The two squares must share a rank, file or diagonal.
func (s *state) pathClear(from, to Square) bool {
	df, dr := sign(to.File()-from.File()), sign(to.Rank()-from.Rank())
	for sq := SquareAt(from.File()+df, from.Rank()+dr); sq != to; sq = SquareAt(sq.File()+df, sq.Rank()+dr) {
		if s.pieces[sq] != NoPiece {
			return false
		}
	}
	return true
}

func diagonal(from, to Square) bool {
	dx, dy := abs(to.File()-from.File()), abs(to.Rank()-from.Rank())
	return dx == dy && dx != 0
}

func straight(from, to Square) bool {
	return from != to && (from.File() == to.File() || from.Rank() == to.Rank())
}

func validBishop(s *state, b *moveBuilder) bool {
	return diagonal(b.m.from, b.m.to) && s.pathClear(b.m.from, b.m.to) && s.enemyOrEmpty(b.m.to, b.m.piece.Color())
}

func validRook(s *state, b *moveBuilder) bool {
	return straight(b.m.from, b.m.to) && s.pathClear(b.m.from, b.m.to) && s.enemyOrEmpty(b.m.to, b.m.piece.Color())
}

func validQueen(s *state, b *moveBuilder) bool {
	return validBishop(s, b) || validRook(s, b)
}

// validKing accepts one-square steps and the castle patterns: the king
// moves two files from its home square, or is dropped on its own rook's
// home square. King safety on the transit squares is checked by the oracle.
func validKing(s *state, b *moveBuilder) bool {
	from, to := b.m.from, b.m.to
	c := b.m.piece.Color()
	dx, dy := to.File()-from.File(), to.Rank()-from.Rank()
	if abs(dx) < 2 && abs(dy) < 2 {
		return s.enemyOrEmpty(to, c)
	}
	if from != kingHome(c) || dy != 0 {
		return false
	}
	var w Wing
	switch to.File() {
	case 0, 2:
		w = QueenSide
	case 6, 7:
		w = KingSide
	default:
		return false
	}
	if !s.canCastle(c, w) {
		return false
	}
	if w == QueenSide && !s.emptyFiles(from.Rank(), 1, 3) {
		return false
	}
	if w == KingSide && !s.emptyFiles(from.Rank(), 5, 6) {
		return false
	}
	b.castle(w)
	return true
}

func coverPawn(s *state, b *moveBuilder) bool {
	c := b.m.piece.Color()
	dx := abs(b.m.to.File() - b.m.from.File())
	dy := (b.m.to.Rank() - b.m.from.Rank()) * forward(c)
	if dx != 1 || dy != 1 {
		return false
	}
	t := s.pieces[b.m.to]
	return t == NoPiece || t.Color() == c
}

func coverKnight(s *state, b *moveBuilder) bool {
	dx, dy := abs(b.m.to.File()-b.m.from.File()), abs(b.m.to.Rank()-b.m.from.Rank())
	return ((dx == 1 && dy == 2) || (dx == 2 && dy == 1)) && s.friendly(b.m.to, b.m.piece.Color())
}

// coverSlider accepts the pair when the piece's own geometry reaches a
// friendly piece with nothing in between.
func coverSlider(s *state, b *moveBuilder) bool {
	from, to := b.m.from, b.m.to
	var shaped bool
	switch b.m.piece.Kind() {
	case Bishop:
		shaped = diagonal(from, to)
	case Rook:
		shaped = straight(from, to)
	case Queen:
		shaped = diagonal(from, to) || straight(from, to)
	}
	return shaped && s.pathClear(from, to) && s.friendly(to, b.m.piece.Color())
}

func coverKing(s *state, b *moveBuilder) bool {
	dx, dy := abs(b.m.to.File()-b.m.from.File()), abs(b.m.to.Rank()-b.m.from.Rank())
	return dx < 2 && dy < 2 && b.m.from != b.m.to && s.friendly(b.m.to, b.m.piece.Color())
}

// PromotionResolver picks the kind for a promotion the mover did not
// specify. Returning anything other than a queen, rook, bishop or knight
// selects the queen.
type PromotionResolver func(from, to Square, side Color) PieceKind

// judgeOpts selects how much work judge does beyond the geometry check.
type judgeOpts struct {
	checkTurn bool
	// annotate computes the check and mate flags.
	annotate bool
	mode     SafetyMode
	resolver PromotionResolver
}

// judge runs the validation pipeline for one candidate: turn, geometry,
// capture, own-king safety, promotion kind, then the check and mate flags.
// The origin square must hold a piece.
func (s *state) judge(c Candidate, o judgeOpts) (Move, Verdict) {
	p := s.pieces[c.From]
	if p == NoPiece || c.From == c.To {
		return Move{}, Illegal
	}
	if o.checkTurn && p.Color() != s.turn() {
		return Move{}, Illegal
	}
	b := newBuilder(c.From, c.To, p)
	if !dispatch[p.Kind()].validate(s, &b) {
		return Move{}, Illegal
	}
	b.resolveCapture(s)
	if s.attackedAfter(b.m, p.Color(), o.mode) {
		return Move{}, LeavesKingInCheck
	}
	if b.m.special == SpecialPromotion {
		b.m.promotion = resolvePromotion(c, p.Color(), o.resolver)
	}
	if o.annotate {
		s.annotate(&b.m, o.mode)
	}
	return b.build(), Legal
}

func resolvePromotion(c Candidate, side Color, r PromotionResolver) PieceKind {
	if c.Promotion.promotable() {
		return c.Promotion
	}
	if r != nil {
		if k := r(c.From, c.To, side); k.promotable() {
			return k
		}
	}
	return Queen
}

// annotate sets the check and mate flags of a legal move.
func (s *state) annotate(m *Move, mode SafetyMode) {
	them := m.piece.Color().Opposite()
	m.check = s.attackedAfter(*m, them, mode)
	m.mate = false
	if m.check {
		m.mate = !s.tryMove(*m, mode, func(next *state) bool {
			return next.hasAnyLegalMove(them, mode)
		})
	}
}

// covers runs the defend validator for one pair.
func (s *state) covers(from, to Square) (Move, bool) {
	p := s.pieces[from]
	if p == NoPiece || from == to {
		return Move{}, false
	}
	b := newBuilder(from, to, p)
	if !dispatch[p.Kind()].cover(s, &b) {
		return Move{}, false
	}
	return b.build(), true
}
