package rules

// repetitionWindow is the number of reversible plies the repetition rule inspects.
const repetitionWindow = 8

// Snapshot is a position as the repetition rule compares it.
type Snapshot struct {
	Pieces    [64]Piece
	Castling  CastlingRights
	EnPassant Square
}

func (s *state) snapshot() Snapshot {
	return Snapshot{Pieces: s.pieces, Castling: s.castlingRights(), EnPassant: s.enPassantTarget()}
}

// repetition compares the current position with the ones 8 and 4 plies
// back. It needs 8 plies with no capture or pawn move. The rewind happens
// on a fork, so the board is untouched.
func (s *state) repetition() bool {
	n := len(s.history)
	if n < repetitionWindow || s.lastIrreversible() > n-1-repetitionWindow {
		return false
	}
	current := s.snapshot()
	past := s.fork()
	for i := 0; i < repetitionWindow/2; i++ {
		past.pop()
	}
	mid := past.snapshot()
	for i := 0; i < repetitionWindow/2; i++ {
		past.pop()
	}
	if past.snapshot() != current {
		return false
	}
	return mid == current
}

// IsRepetition reports whether the windowed repetition rule holds now,
// whether or not the rule is enabled for automatic draws.
func (b *Board) IsRepetition() bool { return b.repetition() }
