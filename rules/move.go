package rules

import (
	"fmt"
	"strings"
)

// Special tags the move kinds that need their own apply and undo routines.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialCastle
	SpecialEnPassant
	SpecialPromotion
)

func (s Special) String() string {
	switch s {
	case SpecialCastle:
		return "castle"
	case SpecialEnPassant:
		return "en passant"
	case SpecialPromotion:
		return "promotion"
	}
	return "none"
}

// Wing is the side of the board a castle happens on.
type Wing uint8

const (
	KingSide Wing = iota
	QueenSide
)

func (w Wing) String() string {
	if w == QueenSide {
		return "queenside"
	}
	return "kingside"
}

// Verdict is the outcome of validating a candidate move. Illegal moves are
// reported through a Verdict, never through an error.
type Verdict uint8

const (
	Illegal Verdict = iota
	Legal
	// LeavesKingInCheck means the move obeys the piece's movement rule but
	// would leave the mover's own king attacked.
	LeavesKingInCheck
)

func (v Verdict) String() string {
	switch v {
	case Legal:
		return "legal"
	case LeavesKingInCheck:
		return "leaves king in check"
	}
	return "illegal"
}

// Candidate is an unvalidated request to move the piece on From to To.
// Promotion optionally pre-selects the promotion kind.
type Candidate struct {
	From      Square
	To        Square
	Promotion PieceKind
}

func (c Candidate) String() string {
	s := c.From.String() + c.To.String()
	if c.Promotion.promotable() {
		s += strings.ToLower(string(c.Promotion.Letter()))
	}
	return s
}

// ParseCandidate parses coordinate move text such as "e2e4" or "e7e8q".
func ParseCandidate(str string) (Candidate, error) {
	if len(str) != 4 && len(str) != 5 {
		return Candidate{}, fmt.Errorf("%w: move %q", ErrInvalidArgument, str)
	}
	from, err := ParseSquare(str[0:2])
	if err != nil {
		return Candidate{}, err
	}
	to, err := ParseSquare(str[2:4])
	if err != nil {
		return Candidate{}, err
	}
	c := Candidate{From: from, To: to}
	if len(str) == 5 {
		c.Promotion = KindFromLetter(str[4])
		if !c.Promotion.promotable() {
			return Candidate{}, fmt.Errorf("%w: promotion piece %q", ErrInvalidArgument, str[4])
		}
	}
	return c, nil
}

// Move is a validated move. Moves are only produced by the validator and are
// never partially populated.
type Move struct {
	from, to  Square
	piece     Piece
	captured  Piece
	special   Special
	wing      Wing
	victim    Square
	promotion PieceKind
	check     bool
	mate      bool
	notation  string
}

// From returns the origin square.
func (m Move) From() Square { return m.from }

// To returns the destination square. For a castle given as king-onto-rook
// this is the rook's square.
func (m Move) To() Square { return m.to }

// Piece returns the moving piece.
func (m Move) Piece() Piece { return m.piece }

// Captured returns the captured piece, or NoPiece.
func (m Move) Captured() Piece { return m.captured }

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool { return m.captured != NoPiece }

// Special returns the special-move tag.
func (m Move) Special() Special { return m.special }

// CastleWing returns the wing of a castle. Only meaningful when Special is SpecialCastle.
func (m Move) CastleWing() Wing { return m.wing }

// CapturedSquare returns the square the captured piece stood on. It differs
// from To only for en passant. NoSquare when nothing is captured.
func (m Move) CapturedSquare() Square {
	if m.captured == NoPiece {
		return NoSquare
	}
	return m.victim
}

// Promotion returns the kind a pawn becomes, or NoKind.
func (m Move) Promotion() PieceKind {
	if m.special != SpecialPromotion {
		return NoKind
	}
	return m.promotedKind()
}

// IsCheck reports whether the move attacks the opponent's king.
func (m Move) IsCheck() bool { return m.check }

// IsMate reports whether the move checks and leaves the opponent without a legal reply.
func (m Move) IsMate() bool { return m.mate }

// Notation returns text attached with WithNotation.
func (m Move) Notation() string { return m.notation }

// WithNotation returns a copy of m carrying human-readable text produced by a
// notation encoder.
func (m Move) WithNotation(s string) Move {
	m.notation = s
	return m
}

// IsIrreversible reports whether the move is a capture or a pawn move.
func (m Move) IsIrreversible() bool {
	return m.captured != NoPiece || m.piece.Kind() == Pawn
}

// Candidate returns the request that reproduces this move.
func (m Move) Candidate() Candidate {
	return Candidate{From: m.from, To: m.to, Promotion: m.Promotion()}
}

// String returns coordinate text, e.g. "e2e4" or "e7e8q".
func (m Move) String() string { return m.Candidate().String() }

func (m Move) promotedKind() PieceKind {
	if m.promotion == NoKind {
		return Queen
	}
	return m.promotion
}

// kingTarget is where the king ends up after a castle.
func (m Move) kingTarget() Square {
	if m.wing == QueenSide {
		return SquareAt(2, m.from.Rank())
	}
	return SquareAt(6, m.from.Rank())
}

// moveBuilder populates a Move through the validation pipeline. Only build
// hands the result out.
type moveBuilder struct {
	m Move
}

func newBuilder(from, to Square, p Piece) moveBuilder {
	return moveBuilder{m: Move{from: from, to: to, piece: p, victim: NoSquare}}
}

func (b *moveBuilder) castle(w Wing) {
	b.m.special = SpecialCastle
	b.m.wing = w
}

func (b *moveBuilder) enPassant(victim Square, p Piece) {
	b.m.special = SpecialEnPassant
	b.m.victim = victim
	b.m.captured = p
}

func (b *moveBuilder) promote() {
	b.m.special = SpecialPromotion
}

// resolveCapture records an enemy piece on the destination.
func (b *moveBuilder) resolveCapture(s *state) {
	if b.m.special == SpecialEnPassant || b.m.special == SpecialCastle {
		return
	}
	if t := s.pieces[b.m.to]; t != NoPiece && t.Color() != b.m.piece.Color() {
		b.m.captured = t
		b.m.victim = b.m.to
	}
}

func (b *moveBuilder) build() Move { return b.m }
