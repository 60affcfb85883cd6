package rules

import "sync"

// SquareInfo aggregates the moves touching one square.
type SquareInfo struct {
	Square Square
	Piece  Piece
	// PieceMoves are the legal moves of the piece standing here.
	PieceMoves []Move
	// MovesTo are the legal moves landing here.
	MovesTo []Move
	// Defenders are the moves covering this square: defend moves, plus every
	// non-pawn legal move landing here.
	Defenders []Move
	// Defends are the defend moves of the piece standing here.
	Defends []Move
}

// Analysis is a per-square view of the legal and defend moves of a position.
type Analysis struct {
	squares [64]SquareInfo
	moves   []Move
}

// At returns the entry for sq, or nil for an invalid square.
func (a *Analysis) At(sq Square) *SquareInfo {
	if !sq.Valid() {
		return nil
	}
	return &a.squares[sq]
}

// Moves returns every legal move that went into the analysis.
func (a *Analysis) Moves() []Move { return a.moves }

func newAnalysis(pieces *[64]Piece, moves, defends []Move) *Analysis {
	a := &Analysis{moves: moves}
	for sq := range a.squares {
		a.squares[sq] = SquareInfo{Square: Square(sq), Piece: pieces[sq]}
	}
	for _, m := range moves {
		a.squares[m.from].PieceMoves = append(a.squares[m.from].PieceMoves, m)
		to := &a.squares[m.to]
		to.MovesTo = append(to.MovesTo, m)
		if m.piece.Kind() != Pawn {
			to.Defenders = append(to.Defenders, m)
		}
	}
	for _, m := range defends {
		a.squares[m.from].Defends = append(a.squares[m.from].Defends, m)
		a.squares[m.to].Defenders = append(a.squares[m.to].Defenders, m)
	}
	return a
}

// Analyse builds the per-square view. Pass IgnoreTurn to cover both sides.
func (b *Board) Analyse(o GenOptions) *Analysis {
	return newAnalysis(&b.pieces, b.Moves(o), b.Defended(o))
}

// AnalyseParallel is Analyse with legal moves generated in parallel. The
// move order inside each entry is unspecified.
func (b *Board) AnalyseParallel(o GenOptions) *Analysis {
	var (
		wg      sync.WaitGroup
		defends []Move
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		f := b.fork()
		for sq := Square(0); sq < 64; sq++ {
			defends = f.defendsFrom(sq, o, defends)
		}
	}()
	moves := b.MovesParallel(o)
	wg.Wait()
	return newAnalysis(&b.pieces, moves, defends)
}
