package rules_test

import (
	"testing"

	"golang.org/x/exp/slices"

	"chess-rules/rules"
)

// checkLines reach pins, checks, castles and en passant chances.
var checkLines = [][]string{
	nil,
	{"e2e4", "d7d5", "e4e5", "f7f5"},
	{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "e1g1"},
	{"d2d4", "e7e6", "c2c4", "f8b4"},
	{"e2e4", "f7f6", "d1h5"},
}

var safetyModes = []rules.SafetyMode{rules.SafetyClone, rules.SafetyUndo}

func TestSafetyModesAgree(t *testing.T) {
	opts := rules.GenOptions{IgnoreTurn: true, AllowAmbiguousCastle: true}
	for _, line := range checkLines {
		clone := rules.NewBoard(rules.WithSafetyMode(rules.SafetyClone))
		undo := rules.NewBoard(rules.WithSafetyMode(rules.SafetyUndo))
		play(t, clone, line...)
		play(t, undo, line...)
		before := undo.Snapshot()
		history := undo.History()

		for from := rules.Square(0); from < 64; from++ {
			if clone.PieceAt(from) == rules.NoPiece {
				continue
			}
			for to := rules.Square(0); to < 64; to++ {
				c := rules.Candidate{From: from, To: to}
				mc, vc, _ := clone.Validate(c, false)
				mu, vu, _ := undo.Validate(c, false)
				if vc != vu || mc != mu {
					t.Fatalf("%v %s: clone %v/%s undo %v/%s", line, c, vc, mc, vu, mu)
				}
			}
		}
		if !slices.Equal(clone.Moves(opts), undo.Moves(opts)) {
			t.Fatalf("%v: clone and undo enumerate different moves", line)
		}
		if undo.Snapshot() != before || !slices.Equal(undo.History(), history) {
			t.Fatalf("%v: validating changed the undo board", line)
		}
		if clone.Snapshot() != before {
			t.Fatalf("%v: clone board differs from undo board", line)
		}
	}
}

func TestQueriesLeaveHistoryIntact(t *testing.T) {
	opts := rules.GenOptions{IgnoreTurn: true}
	for _, mode := range safetyModes {
		b := rules.NewBoard(rules.WithSafetyMode(mode))
		play(t, b, "e2e4", "e7e5")
		before, history := b.Snapshot(), b.History()

		b.Moves(opts)
		b.MovesParallel(opts)
		b.Analyse(opts)
		b.IsRepetition()
		b.Perft(2)
		if b.Snapshot() != before || !slices.Equal(b.History(), history) {
			t.Fatalf("%v: queries changed the board", mode)
		}

		h := b.History()
		h[0] = rules.Move{}
		if got := b.History(); !slices.Equal(got, history) {
			t.Fatalf("%v: History returned the live slice", mode)
		}

		rep := play(t, b, "g1f3")
		if b.PieceAt(sq(t, "g1")) != rules.NoPiece || b.PieceAt(sq(t, "f3")) != rules.WhiteKnight {
			t.Fatalf("%v: g1f3 not applied after queries", mode)
		}
		undone, err := b.UndoMove()
		if err != nil || undone != rep.Move {
			t.Fatalf("%v: undo got %s err %v want %s", mode, undone, err, rep.Move)
		}
		if b.Snapshot() != before || len(b.History()) != 2 {
			t.Fatalf("%v: undo did not restore the position", mode)
		}
	}
}

func TestKingAttackedInPlace(t *testing.T) {
	for _, mode := range safetyModes {
		b := rules.NewBoard(rules.WithSafetyMode(mode))
		play(t, b, "e2e4", "f7f6", "d1h5")
		if !b.IsKingAttacked(rules.Black) || b.IsKingAttacked(rules.White) {
			t.Fatalf("%v: after Qh5+ black=%v white=%v", mode, b.IsKingAttacked(rules.Black), b.IsKingAttacked(rules.White))
		}
		if _, v, _ := b.Validate(rules.Candidate{From: sq(t, "a7"), To: sq(t, "a6")}, true); v != rules.LeavesKingInCheck {
			t.Fatalf("%v: a7a6 ignoring the check: %v", mode, v)
		}
		if _, v, _ := b.Validate(rules.Candidate{From: sq(t, "g7"), To: sq(t, "g6")}, true); v != rules.Legal {
			t.Fatalf("%v: g7g6 blocking the check: %v", mode, v)
		}
	}
}
