package rules

// Color is the side owning a piece.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opposite returns the other side.
func (c Color) Opposite() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind is a colorless piece type.
type PieceKind uint8

const (
	NoKind PieceKind = 0
	Pawn   PieceKind = 1
	Knight PieceKind = 2
	Bishop PieceKind = 3
	Rook   PieceKind = 4
	Queen  PieceKind = 5
	King   PieceKind = 6
)

var kindNames = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) String() string {
	if k > King {
		return "?"
	}
	return kindNames[k]
}

// Letter returns the upper-case letter used for the kind in coordinate and
// board-text notation, or 0 for NoKind.
func (k PieceKind) Letter() byte {
	if k == NoKind || k > King {
		return 0
	}
	return " PNBRQK"[k]
}

// KindFromLetter maps a piece letter of either case to its kind.
func KindFromLetter(ch byte) PieceKind {
	switch ch {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoKind
}

// promotable reports whether a pawn may become this kind.
func (k PieceKind) promotable() bool {
	return k == Queen || k == Rook || k == Bishop || k == Knight
}

// Piece packs a kind and a color into one byte.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are the white kind with bit 3 set, so
	// piece & 7 is the kind and piece & 8 the color.
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// NewPiece combines a color and a kind. NoKind yields NoPiece.
func NewPiece(c Color, k PieceKind) Piece {
	if k == NoKind || k > King {
		return NoPiece
	}
	p := Piece(k)
	if c == Black {
		p |= 8
	}
	return p
}

// Kind returns the colorless kind of the piece.
func (p Piece) Kind() PieceKind { return PieceKind(p & 7) }

// Color returns the owner. NoPiece reports White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// Letter returns the board-text letter: upper case for White, lower case
// for Black, '.' for an empty square.
func (p Piece) Letter() byte {
	if p == NoPiece {
		return '.'
	}
	ch := p.Kind().Letter()
	if p.Color() == Black {
		ch += 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string {
	if p == NoPiece {
		return "none"
	}
	return p.Color().String() + " " + p.Kind().String()
}

// PieceFromLetter is the inverse of Piece.Letter for the twelve piece letters.
func PieceFromLetter(ch byte) Piece {
	k := KindFromLetter(ch)
	if k == NoKind {
		return NoPiece
	}
	if ch >= 'a' {
		return NewPiece(Black, k)
	}
	return NewPiece(White, k)
}
