package crosscheck

import (
	"fmt"
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/corentings/chess/v2"
	"github.com/dylhunn/dragontoothmg"
)

// Oracle counts perft leaves under each root move of a position. Keys are
// coordinate move text with a lowercase promotion letter ("e7e8q").
type Oracle interface {
	Name() string
	Divide(fen string, depth int) (map[string]uint64, error)
}

var (
	// Dragontooth uses the dragontoothmg bitboard generator.
	Dragontooth Oracle = dragontooth{}
	// Goose uses the GooseEngineMG generator.
	Goose Oracle = goose{}
	// Corentings uses the corentings/chess position model.
	Corentings Oracle = corentings{}
)

// Oracles lists every available oracle.
func Oracles() []Oracle { return []Oracle{Dragontooth, Goose, Corentings} }

// ByName returns the oracle with the given name.
func ByName(name string) (Oracle, error) {
	for _, o := range Oracles() {
		if o.Name() == name {
			return o, nil
		}
	}
	return nil, fmt.Errorf("crosscheck: unknown oracle %q", name)
}

type dragontooth struct{}

func (dragontooth) Name() string { return "dragontooth" }

// ParseFen does not report errors, so callers pass text the fen package
// has already accepted.
func (dragontooth) Divide(fen string, depth int) (map[string]uint64, error) {
	if depth < 1 {
		return nil, errDepth(depth)
	}
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[strings.ToLower(m.String())] += dragontoothPerft(&b, depth-1)
		undo()
	}
	return out, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := b.Apply(m)
		n += dragontoothPerft(b, depth-1)
		undo()
	}
	return n
}

type goose struct{}

func (goose) Name() string { return "goose" }

func (goose) Divide(fen string, depth int) (map[string]uint64, error) {
	if depth < 1 {
		return nil, errDepth(depth)
	}
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("crosscheck: goose: %w", err)
	}
	out := make(map[string]uint64)
	for m, n := range gm.PerftDivide(b, depth) {
		out[m.String()] += n
	}
	return out, nil
}

type corentings struct{}

func (corentings) Name() string { return "corentings" }

func (corentings) Divide(fen string, depth int) (map[string]uint64, error) {
	if depth < 1 {
		return nil, errDepth(depth)
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("crosscheck: corentings: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	out := make(map[string]uint64)
	for _, m := range pos.ValidMoves() {
		key := strings.ToLower(chess.UCINotation{}.Encode(pos, &m))
		out[key] += corentingsPerft(pos.Update(&m), depth-1)
	}
	return out, nil
}

func corentingsPerft(pos *chess.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.ValidMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		n += corentingsPerft(pos.Update(&m), depth-1)
	}
	return n
}

func errDepth(depth int) error {
	return fmt.Errorf("crosscheck: depth must be > 0, got %d", depth)
}
