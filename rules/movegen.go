package rules

// kindRules holds the movement rules of one piece kind.
//
// pseudo and defend append destination squares in a fixed per-kind order.
// validate checks a single origin/destination pair and may attach a special
// tag to the builder; cover is its counterpart for defended squares.
type kindRules struct {
	pseudo   func(s *state, from Square, dst []Square) []Square
	defend   func(s *state, from Square, dst []Square) []Square
	validate func(s *state, b *moveBuilder) bool
	cover    func(s *state, b *moveBuilder) bool
}

var dispatch [King + 1]kindRules

func init() {
	dispatch = [King + 1]kindRules{
		NoKind: {pseudo: noSquares, defend: noSquares, validate: never, cover: never},
		Pawn:   {pseudo: pawnMoves, defend: pawnDefends, validate: validPawn, cover: coverPawn},
		Knight: {pseudo: knightMoves, defend: knightDefends, validate: validKnight, cover: coverKnight},
		Bishop: {pseudo: bishopMoves, defend: bishopDefends, validate: validBishop, cover: coverSlider},
		Rook:   {pseudo: rookMoves, defend: rookDefends, validate: validRook, cover: coverSlider},
		Queen:  {pseudo: queenMoves, defend: queenDefends, validate: validQueen, cover: coverSlider},
		King:   {pseudo: kingMoves, defend: kingDefends, validate: validKing, cover: coverKing},
	}
}

var (
	knightDX = [8]int{2, 2, -2, -2, 1, 1, -1, -1}
	knightDY = [8]int{1, -1, 1, -1, 2, -2, 2, -2}

	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs   = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

func noSquares(_ *state, _ Square, dst []Square) []Square { return dst }

func never(_ *state, _ *moveBuilder) bool { return false }

// enemyOrEmpty reports whether a piece of color c may land on sq.
func (s *state) enemyOrEmpty(sq Square, c Color) bool {
	p := s.pieces[sq]
	return p == NoPiece || p.Color() != c
}

func (s *state) friendly(sq Square, c Color) bool {
	p := s.pieces[sq]
	return p != NoPiece && p.Color() == c
}

// Order: one step, right diagonal, left diagonal, two steps.
func pawnMoves(s *state, from Square, dst []Square) []Square {
	c := s.pieces[from].Color()
	f, r := from.File(), from.Rank()
	next := r + forward(c)
	ahead := SquareAt(f, next)
	if ahead == NoSquare {
		return dst
	}
	open := s.pieces[ahead] == NoPiece
	if open {
		dst = append(dst, ahead)
	}
	for _, df := range [2]int{1, -1} {
		sq := SquareAt(f+df, next)
		if sq == NoSquare {
			continue
		}
		if t := s.pieces[sq]; t != NoPiece && t.Color() != c {
			dst = append(dst, sq)
		} else if _, ok := s.enPassantVictim(from, sq); ok {
			dst = append(dst, sq)
		}
	}
	if open && r == pawnHomeRank(c) {
		if two := SquareAt(f, next+forward(c)); s.pieces[two] == NoPiece {
			dst = append(dst, two)
		}
	}
	return dst
}

func pawnDefends(s *state, from Square, dst []Square) []Square {
	c := s.pieces[from].Color()
	next := from.Rank() + forward(c)
	for _, df := range [2]int{1, -1} {
		sq := SquareAt(from.File()+df, next)
		if sq == NoSquare {
			continue
		}
		if t := s.pieces[sq]; t == NoPiece || t.Color() == c {
			dst = append(dst, sq)
		}
	}
	return dst
}

func knightMoves(s *state, from Square, dst []Square) []Square {
	c := s.pieces[from].Color()
	for i := range knightDX {
		sq := SquareAt(from.File()+knightDX[i], from.Rank()+knightDY[i])
		if sq != NoSquare && s.enemyOrEmpty(sq, c) {
			dst = append(dst, sq)
		}
	}
	return dst
}

func knightDefends(s *state, from Square, dst []Square) []Square {
	c := s.pieces[from].Color()
	for i := range knightDX {
		sq := SquareAt(from.File()+knightDX[i], from.Rank()+knightDY[i])
		if sq != NoSquare && s.friendly(sq, c) {
			dst = append(dst, sq)
		}
	}
	return dst
}

// rays walks each direction to the first occupied square, which is kept
// when it holds an enemy.
func (s *state) rays(from Square, dirs [4][2]int, dst []Square) []Square {
	c := s.pieces[from].Color()
	for _, d := range dirs {
		for sq := SquareAt(from.File()+d[0], from.Rank()+d[1]); sq != NoSquare; sq = SquareAt(sq.File()+d[0], sq.Rank()+d[1]) {
			if t := s.pieces[sq]; t != NoPiece {
				if t.Color() != c {
					dst = append(dst, sq)
				}
				break
			}
			dst = append(dst, sq)
		}
	}
	return dst
}

// rayDefends keeps the first occupied square in each direction when it is friendly.
func (s *state) rayDefends(from Square, dirs [4][2]int, dst []Square) []Square {
	c := s.pieces[from].Color()
	for _, d := range dirs {
		for sq := SquareAt(from.File()+d[0], from.Rank()+d[1]); sq != NoSquare; sq = SquareAt(sq.File()+d[0], sq.Rank()+d[1]) {
			if t := s.pieces[sq]; t != NoPiece {
				if t.Color() == c {
					dst = append(dst, sq)
				}
				break
			}
		}
	}
	return dst
}

func bishopMoves(s *state, from Square, dst []Square) []Square {
	return s.rays(from, bishopDirs, dst)
}

func bishopDefends(s *state, from Square, dst []Square) []Square {
	return s.rayDefends(from, bishopDirs, dst)
}

func rookMoves(s *state, from Square, dst []Square) []Square {
	return s.rays(from, rookDirs, dst)
}

func rookDefends(s *state, from Square, dst []Square) []Square {
	return s.rayDefends(from, rookDirs, dst)
}

func queenMoves(s *state, from Square, dst []Square) []Square {
	return s.rays(from, bishopDirs, s.rays(from, rookDirs, dst))
}

func queenDefends(s *state, from Square, dst []Square) []Square {
	return s.rayDefends(from, bishopDirs, s.rayDefends(from, rookDirs, dst))
}

// Adjacent squares file by file, then rank by rank within a file, then
// castle candidates: queenside (rook square, then c-file), kingside (g-file,
// then rook square). Castling rights are left to the validator.
func kingMoves(s *state, from Square, dst []Square) []Square {
	p := s.pieces[from]
	c := p.Color()
	f, r := from.File(), from.Rank()
	for x := max(f-1, 0); x <= min(f+1, 7); x++ {
		for y := max(r-1, 0); y <= min(r+1, 7); y++ {
			sq := SquareAt(x, y)
			if sq != from && s.enemyOrEmpty(sq, c) {
				dst = append(dst, sq)
			}
		}
	}
	if from != kingHome(c) {
		return dst
	}
	rook := NewPiece(c, Rook)
	if s.pieces[SquareAt(0, r)] == rook && s.emptyFiles(r, 1, 3) {
		dst = append(dst, SquareAt(0, r), SquareAt(2, r))
	}
	if s.pieces[SquareAt(7, r)] == rook && s.emptyFiles(r, 5, 6) {
		dst = append(dst, SquareAt(6, r), SquareAt(7, r))
	}
	return dst
}

func kingDefends(s *state, from Square, dst []Square) []Square {
	c := s.pieces[from].Color()
	f, r := from.File(), from.Rank()
	for x := max(f-1, 0); x <= min(f+1, 7); x++ {
		for y := max(r-1, 0); y <= min(r+1, 7); y++ {
			sq := SquareAt(x, y)
			if sq != from && s.friendly(sq, c) {
				dst = append(dst, sq)
			}
		}
	}
	return dst
}

// emptyFiles reports whether files lo..hi of rank are all empty.
func (s *state) emptyFiles(rank, lo, hi int) bool {
	for f := lo; f <= hi; f++ {
		if s.pieces[SquareAt(f, rank)] != NoPiece {
			return false
		}
	}
	return true
}
