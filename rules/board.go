package rules

import (
	"fmt"
	"log/slog"
	"strings"
)

// Board is a game in progress: the canonical piece array, the history of
// applied moves, and the stored end-game result. A Board is not safe for
// concurrent use; MovesParallel and AnalyseParallel fan out internally on
// private copies.
type Board struct {
	state
	start     Setup
	drawRules AutoDrawRules
	resolver  PromotionResolver
	mode      SafetyMode
	log       *slog.Logger
	result    Result
}

// Report is what ApplyMove returns. Move and Endgame are only set when the
// verdict is Legal.
type Report struct {
	Move    Move
	Verdict Verdict
	Endgame Result
}

// NewBoard returns a board at the standard starting position.
func NewBoard(opts ...Option) *Board {
	b, err := NewBoardFromSetup(StandardSetup(), opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromSetup returns a board starting from setup.
func NewBoardFromSetup(setup Setup, opts ...Option) (*Board, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	b := &Board{start: setup, log: discardLogger()}
	b.state = newState(&b.start)
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Setup returns the position the board started from.
func (b *Board) Setup() Setup { return b.start }

// PieceAt returns the piece on sq, or NoPiece for empty or invalid squares.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.pieces[sq]
}

// Pieces returns a copy of the piece array.
func (b *Board) Pieces() [64]Piece { return b.pieces }

// Turn returns the side to move.
func (b *Board) Turn() Color { return b.turn() }

// History returns a copy of the applied moves, oldest first.
func (b *Board) History() []Move { return append([]Move(nil), b.history...) }

// LastMove returns the most recent applied move.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}

// EnPassantTarget returns the square a pawn may capture en passant on this
// ply, or NoSquare.
func (b *Board) EnPassantTarget() Square { return b.enPassantTarget() }

// CastlingRights returns the rights currently held by both sides. Holding a
// right does not mean castling is legal right now.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights() }

// HalfmoveClock counts plies since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock() }

// FullmoveNumber starts at the setup's number and increments after each Black move.
func (b *Board) FullmoveNumber() int {
	n := len(b.history)
	if b.start.Turn == Black {
		n++
	}
	return b.start.FullmoveNumber + n/2
}

// KingSquare returns the square of c's king, or NoSquare.
func (b *Board) KingSquare(c Color) Square { return b.kingSquare(c) }

// Captured lists the pieces of color c taken so far, in capture order.
func (b *Board) Captured(c Color) []Piece {
	var out []Piece
	for _, m := range b.history {
		if m.captured != NoPiece && m.captured.Color() == c {
			out = append(out, m.captured)
		}
	}
	return out
}

// Snapshot returns the position as compared by the repetition rule.
func (b *Board) Snapshot() Snapshot { return b.snapshot() }

func (b *Board) checkOrigin(sq Square) error {
	if !sq.Valid() {
		return fmt.Errorf("%w: square %d", ErrInvalidArgument, int(sq))
	}
	if b.pieces[sq] == NoPiece {
		return fmt.Errorf("%w: %s", ErrPieceNotFound, sq)
	}
	return nil
}

func (b *Board) checkCandidate(c Candidate) error {
	if !c.To.Valid() {
		return fmt.Errorf("%w: destination %d", ErrInvalidArgument, int(c.To))
	}
	return b.checkOrigin(c.From)
}

// PseudoMoves returns the squares the piece on sq reaches by its movement
// pattern, ignoring king safety and castling rights.
func (b *Board) PseudoMoves(sq Square) ([]Square, error) {
	if err := b.checkOrigin(sq); err != nil {
		return nil, err
	}
	return dispatch[b.pieces[sq].Kind()].pseudo(&b.state, sq, nil), nil
}

// DefendedSquares returns the friendly-occupied squares the piece on sq
// covers. Pawns also cover empty forward diagonals.
func (b *Board) DefendedSquares(sq Square) ([]Square, error) {
	if err := b.checkOrigin(sq); err != nil {
		return nil, err
	}
	return dispatch[b.pieces[sq].Kind()].defend(&b.state, sq, nil), nil
}

// Validate judges a candidate without applying it. When checkTurn is false
// either side may move. The returned Move is complete, flags included, only
// for a Legal verdict. Promotions without a requested kind become queens.
func (b *Board) Validate(c Candidate, checkTurn bool) (Move, Verdict, error) {
	if err := b.checkCandidate(c); err != nil {
		return Move{}, Illegal, err
	}
	m, v := b.judge(c, judgeOpts{checkTurn: checkTurn, annotate: true, mode: b.mode})
	return m, v, nil
}

// IsKingAttacked reports whether c's king is attacked in the current position.
func (b *Board) IsKingAttacked(c Color) bool { return b.kingAttacked(c) }

// HasAnyLegalMove reports whether c has at least one legal move, regardless of turn.
func (b *Board) HasAnyLegalMove(c Color) bool { return b.hasAnyLegalMove(c, b.mode) }

// IsCheckmate reports whether c is attacked and has no legal move.
func (b *Board) IsCheckmate(c Color) bool {
	return b.kingAttacked(c) && !b.hasAnyLegalMove(c, b.mode)
}

// IsStalemate reports whether c is not attacked and has no legal move.
func (b *Board) IsStalemate(c Color) bool {
	return !b.kingAttacked(c) && !b.hasAnyLegalMove(c, b.mode)
}

// ApplyMove validates c for the side to move and plays it when legal. An
// illegal candidate is not an error: the report carries the verdict and
// the board is unchanged.
func (b *Board) ApplyMove(c Candidate) (Report, error) {
	if b.result.Terminal() {
		return Report{}, fmt.Errorf("%w: %s", ErrGameEnded, b.result)
	}
	if err := b.checkCandidate(c); err != nil {
		return Report{}, err
	}
	m, v := b.judge(c, judgeOpts{checkTurn: true, annotate: true, mode: b.mode, resolver: b.resolver})
	if v != Legal {
		if v == LeavesKingInCheck {
			b.log.Info("move leaves king in check", "move", c.String(), "side", b.turn().String())
		}
		return Report{Verdict: v}, nil
	}
	b.push(m)
	b.result = b.EvaluateEndgame()
	b.log.Debug("move applied", "move", m.String(), "check", m.check, "ply", len(b.history))
	if b.result.Terminal() {
		b.log.Info("game ended", "result", b.result.String())
	}
	return Report{Move: m, Verdict: Legal, Endgame: b.result}, nil
}

// UndoMove reverts the most recent move and clears any stored result.
func (b *Board) UndoMove() (Move, error) {
	if len(b.history) == 0 {
		return Move{}, ErrNoMoveToUndo
	}
	m := b.pop()
	b.result = Result{}
	return m, nil
}

// Reset returns the board to its setup and forgets the history and result.
func (b *Board) Reset() {
	b.state = newState(&b.start)
	b.result = Result{}
}

// String draws the board with rank 8 on top, one letter per square.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			sb.WriteByte(b.pieces[SquareAt(f, r)].Letter())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
