package rules_test

import (
	"testing"

	"chess-rules/fen"
	"chess-rules/rules"
)

const (
	kiwipete   = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos6       = "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
	epPosition = "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	promoPos   = "1n5k/P7/8/8/8/8/8/7K w - - 0 1"
)

func mustBoard(t testing.TB, text string, opts ...rules.Option) *rules.Board {
	t.Helper()
	b, err := fen.NewBoard(text, opts...)
	if err != nil {
		t.Fatalf("fen.NewBoard(%q): %v", text, err)
	}
	return b
}

func sq(t testing.TB, s string) rules.Square {
	t.Helper()
	v, err := rules.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return v
}

// play applies coordinate moves in order and fails on anything but a legal move.
func play(t testing.TB, b *rules.Board, moves ...string) rules.Report {
	t.Helper()
	var rep rules.Report
	for i, text := range moves {
		c, err := rules.ParseCandidate(text)
		if err != nil {
			t.Fatalf("ParseCandidate(%q): %v", text, err)
		}
		rep, err = b.ApplyMove(c)
		if err != nil {
			t.Fatalf("ApplyMove(%s) at ply %d: %v", text, i, err)
		}
		if rep.Verdict != rules.Legal {
			t.Fatalf("ApplyMove(%s) at ply %d: verdict %v", text, i, rep.Verdict)
		}
	}
	return rep
}

// findMove returns the generated move with the given coordinate text.
func findMove(t testing.TB, moves []rules.Move, text string) (rules.Move, bool) {
	t.Helper()
	for _, m := range moves {
		if m.String() == text {
			return m, true
		}
	}
	return rules.Move{}, false
}
