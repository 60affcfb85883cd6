package rules

import "fmt"

// EndgameKind classifies a game result.
type EndgameKind uint8

const (
	Ongoing EndgameKind = iota
	Checkmate
	Stalemate
	Resignation
	DrawAgreed
	DrawRepetition
	DrawInsufficientMaterial
	DrawFiftyMoves
)

var endgameNames = [...]string{
	Ongoing:                  "ongoing",
	Checkmate:                "checkmate",
	Stalemate:                "stalemate",
	Resignation:              "resignation",
	DrawAgreed:               "draw agreed",
	DrawRepetition:           "draw by repetition",
	DrawInsufficientMaterial: "draw by insufficient material",
	DrawFiftyMoves:           "draw by fifty-move rule",
}

func (k EndgameKind) String() string {
	if int(k) < len(endgameNames) {
		return endgameNames[k]
	}
	return fmt.Sprintf("EndgameKind(%d)", k)
}

// Result is the state of a game. Winner is only meaningful for Checkmate
// and Resignation.
type Result struct {
	Kind   EndgameKind
	Winner Color
}

// Terminal reports whether the game is over.
func (r Result) Terminal() bool { return r.Kind != Ongoing }

// Decisive reports whether the result has a winner.
func (r Result) Decisive() bool { return r.Kind == Checkmate || r.Kind == Resignation }

// Draw reports whether the game ended without a winner.
func (r Result) Draw() bool { return r.Terminal() && !r.Decisive() }

func (r Result) String() string {
	if r.Decisive() {
		return r.Kind.String() + ", " + r.Winner.String() + " wins"
	}
	return r.Kind.String()
}

// AutoDrawRules selects the draws declared without a claim.
type AutoDrawRules uint8

const (
	AutoDrawRepetition AutoDrawRules = 1 << iota
	AutoDrawInsufficientMaterial
	AutoDrawFiftyMoves

	NoAutoDraw  AutoDrawRules = 0
	AllAutoDraw               = AutoDrawRepetition | AutoDrawInsufficientMaterial | AutoDrawFiftyMoves
)

// EvaluateEndgame computes the result of the current position for the side
// to move: checkmate, then stalemate, then the configured draw rules. It
// does not look at the stored result.
func (b *Board) EvaluateEndgame() Result {
	side := b.turn()
	if !b.hasAnyLegalMove(side, b.mode) {
		if b.kingAttacked(side) {
			return Result{Kind: Checkmate, Winner: side.Opposite()}
		}
		return Result{Kind: Stalemate}
	}
	if b.drawRules&AutoDrawInsufficientMaterial != 0 && b.insufficientMaterial() {
		return Result{Kind: DrawInsufficientMaterial}
	}
	if b.drawRules&AutoDrawRepetition != 0 && b.repetition() {
		return Result{Kind: DrawRepetition}
	}
	if b.drawRules&AutoDrawFiftyMoves != 0 && b.halfmoveClock() >= 100 {
		return Result{Kind: DrawFiftyMoves}
	}
	return Result{}
}

// Endgame returns the stored result: the last evaluation after ApplyMove,
// or a resignation or agreed draw.
func (b *Board) Endgame() Result { return b.result }

// Resign ends the game in favor of c's opponent.
func (b *Board) Resign(c Color) error {
	if b.result.Terminal() {
		return fmt.Errorf("%w: %s", ErrGameEnded, b.result)
	}
	b.result = Result{Kind: Resignation, Winner: c.Opposite()}
	b.log.Info("game ended", "result", b.result.String())
	return nil
}

// DeclareDraw ends the game as an agreed draw.
func (b *Board) DeclareDraw() error {
	if b.result.Terminal() {
		return fmt.Errorf("%w: %s", ErrGameEnded, b.result)
	}
	b.result = Result{Kind: DrawAgreed}
	b.log.Info("game ended", "result", b.result.String())
	return nil
}

// insufficientMaterial covers bare kings, a single minor piece, and
// bishops that all stand on squares of one color.
func (s *state) insufficientMaterial() bool {
	var minors, knights int
	bishopShade := -1
	mixed := false
	for sq := Square(0); sq < 64; sq++ {
		switch s.pieces[sq].Kind() {
		case NoKind, King:
		case Knight:
			minors++
			knights++
		case Bishop:
			minors++
			shade := (sq.File() + sq.Rank()) % 2
			if bishopShade >= 0 && shade != bishopShade {
				mixed = true
			}
			bishopShade = shade
		default:
			return false
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && !mixed
}
