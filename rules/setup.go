package rules

import "fmt"

// CastlingRights holds the four castle flags as bits.
type CastlingRights uint8

const (
	CastleWhiteKing CastlingRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen

	NoCastling  CastlingRights = 0
	AllCastling                = CastleWhiteKing | CastleWhiteQueen | CastleBlackKing | CastleBlackQueen
)

func castleFlag(c Color, w Wing) CastlingRights {
	f := CastleWhiteKing
	if w == QueenSide {
		f = CastleWhiteQueen
	}
	if c == Black {
		f <<= 2
	}
	return f
}

// Has reports whether the flag for c castling on w is set.
func (r CastlingRights) Has(c Color, w Wing) bool { return r&castleFlag(c, w) != 0 }

// String returns the flags as "KQkq" letters, or "-" when none are set.
func (r CastlingRights) String() string {
	if r&AllCastling == 0 {
		return "-"
	}
	var buf []byte
	for i, ch := range []byte("KQkq") {
		if r&(1<<i) != 0 {
			buf = append(buf, ch)
		}
	}
	return string(buf)
}

// Setup is an externally supplied starting position.
type Setup struct {
	Pieces [64]Piece
	Turn   Color
	// Castling flags for positions whose history is unknown. A flag only
	// grants the right while the king and rook still stand on their home squares.
	Castling CastlingRights
	// EnPassant is the target square when the position starts right after a
	// two-square pawn advance, otherwise NoSquare.
	EnPassant      Square
	HalfmoveClock  int
	FullmoveNumber int
}

var backRank = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StandardSetup returns the initial chess position.
func StandardSetup() Setup {
	s := EmptySetup()
	for f, k := range backRank {
		s.Pieces[SquareAt(f, 0)] = NewPiece(White, k)
		s.Pieces[SquareAt(f, 1)] = WhitePawn
		s.Pieces[SquareAt(f, 6)] = BlackPawn
		s.Pieces[SquareAt(f, 7)] = NewPiece(Black, k)
	}
	s.Castling = AllCastling
	return s
}

// EmptySetup returns a board with no pieces, White to move.
func EmptySetup() Setup {
	return Setup{EnPassant: NoSquare, FullmoveNumber: 1}
}

// Validate checks what the rules need from a setup: at most one king per
// color, a well-formed en passant target and non-negative clocks.
func (s Setup) Validate() error {
	var kings [2]int
	for sq, p := range s.Pieces {
		if p == NoPiece {
			continue
		}
		if p.Kind() == NoKind || p.Kind() > King || p&^15 != 0 {
			return fmt.Errorf("%w: bad piece code %d on %s", ErrInvalidSetup, p, Square(sq))
		}
		if p.Kind() == King {
			kings[p.Color()]++
		}
	}
	if kings[White] > 1 || kings[Black] > 1 {
		return fmt.Errorf("%w: more than one king of a color", ErrInvalidSetup)
	}
	if s.Turn > Black {
		return fmt.Errorf("%w: side to move %d", ErrInvalidSetup, s.Turn)
	}
	if s.EnPassant != NoSquare {
		// The target lies behind a pawn of the side that just moved.
		want := 5
		if s.Turn == Black {
			want = 2
		}
		if !s.EnPassant.Valid() || s.EnPassant.Rank() != want {
			return fmt.Errorf("%w: en passant target %s", ErrInvalidSetup, s.EnPassant)
		}
	}
	if s.HalfmoveClock < 0 || s.FullmoveNumber < 0 {
		return fmt.Errorf("%w: negative move clock", ErrInvalidSetup)
	}
	return nil
}
