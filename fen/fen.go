// Package fen reads and writes Forsyth-Edwards board text for the rules package.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chess-rules/rules"
)

// StartPos is the FEN string for the standard initial chess position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN wraps every decoding failure.
var ErrInvalidFEN = errors.New("invalid FEN")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidFEN}, args...)...)
}

// Decode parses a FEN string into a setup. The clock fields may be omitted.
func Decode(text string) (rules.Setup, error) {
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return rules.Setup{}, invalid("not enough fields")
	}
	setup := rules.EmptySetup()

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return rules.Setup{}, invalid("incorrect number of ranks")
	}
	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return rules.Setup{}, invalid("empty rank description")
		}
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := rules.PieceFromLetter(ch)
			if piece == rules.NoPiece {
				return rules.Setup{}, invalid("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return rules.Setup{}, invalid("too many squares in rank %d", rank+1)
			}
			setup.Pieces[rules.SquareAt(file, rank)] = piece
			file++
		}
		if file != 8 {
			return rules.Setup{}, invalid("rank %d does not have 8 columns", rank+1)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		setup.Turn = rules.White
	case "b":
		setup.Turn = rules.Black
	default:
		return rules.Setup{}, invalid("side to move must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				setup.Castling |= rules.CastleWhiteKing
			case 'Q':
				setup.Castling |= rules.CastleWhiteQueen
			case 'k':
				setup.Castling |= rules.CastleBlackKing
			case 'q':
				setup.Castling |= rules.CastleBlackQueen
			default:
				return rules.Setup{}, invalid("invalid castling rights character %q", ch)
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := rules.ParseSquare(fields[3])
		if err != nil {
			return rules.Setup{}, invalid("en passant square %q", fields[3])
		}
		setup.EnPassant = sq
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return rules.Setup{}, invalid("halfmove clock is not a number")
		}
		setup.HalfmoveClock = n
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return rules.Setup{}, invalid("fullmove number is not a number")
		}
		setup.FullmoveNumber = n
	}

	if err := setup.Validate(); err != nil {
		return rules.Setup{}, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	return setup, nil
}

// NewBoard decodes text and starts a board from it.
func NewBoard(text string, opts ...rules.Option) (*rules.Board, error) {
	setup, err := Decode(text)
	if err != nil {
		return nil, err
	}
	return rules.NewBoardFromSetup(setup, opts...)
}

// Encode renders a setup.
func Encode(s rules.Setup) string {
	return encode(&s.Pieces, s.Turn, s.Castling, s.EnPassant, s.HalfmoveClock, s.FullmoveNumber)
}

// EncodeBoard renders the current position of b, with castling rights and
// the en passant target derived from its history.
func EncodeBoard(b *rules.Board) string {
	pieces := b.Pieces()
	return encode(&pieces, b.Turn(), b.CastlingRights(), b.EnPassantTarget(), b.HalfmoveClock(), b.FullmoveNumber())
}

func encode(pieces *[64]rules.Piece, turn rules.Color, castling rules.CastlingRights, ep rules.Square, halfmove, fullmove int) string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := pieces[rules.SquareAt(file, rank)]
			if p == rules.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// 2. Side to move
	if turn == rules.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	// 3-4. Castling rights and en passant square
	sb.WriteString(castling.String())
	sb.WriteByte(' ')
	sb.WriteString(ep.String())

	// 5-6. Clocks
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(fullmove))
	return sb.String()
}
