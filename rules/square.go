package rules

import "fmt"

// Square is a flat board index, file + 8*rank, with a1 = 0 and h8 = 63.
type Square int

// NoSquare marks an unset square. It must never index into a board.
const NoSquare Square = -1

// SquareAt converts a zero-based (file, rank) pair. Off-board pairs yield NoSquare.
func SquareAt(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(file + 8*rank)
}

// Valid reports whether s addresses one of the 64 squares.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// File returns the zero-based file (a = 0). Only meaningful for valid squares.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the zero-based rank (rank 1 = 0). Only meaningful for valid squares.
func (s Square) Rank() int { return int(s) / 8 }

// String returns coordinate text such as "e4", or "-" for an invalid square.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare parses coordinate text such as "e4".
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return NoSquare, fmt.Errorf("%w: square %q", ErrInvalidArgument, str)
	}
	file, rank := str[0], str[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: square %q out of range", ErrInvalidArgument, str)
	}
	return SquareAt(int(file-'a'), int(rank-'1')), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// homeRank is the back rank of c.
func homeRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

// pawnHomeRank is the rank c's pawns start on.
func pawnHomeRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// forward is the rank direction c's pawns advance in.
func forward(c Color) int {
	if c == White {
		return 1
	}
	return -1
}
