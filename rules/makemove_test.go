package rules_test

import (
	"errors"
	"testing"

	"chess-rules/fen"
	"chess-rules/rules"
)

// Apply then undo restores the position for every legal move, two plies deep.
func TestApplyUndoRoundTrip(t *testing.T) {
	for _, text := range []string{fen.StartPos, kiwipete, pos6, epPosition, promoPos} {
		b := mustBoard(t, text)
		before := b.Snapshot()
		beforeFEN := fen.EncodeBoard(b)
		for _, m := range b.Moves(rules.GenOptions{AllowAmbiguousCastle: true}) {
			if _, err := b.ApplyMove(m.Candidate()); err != nil {
				t.Fatalf("%s: apply %s: %v", text, m, err)
			}
			mid := b.Snapshot()
			for _, reply := range b.Moves(rules.GenOptions{}) {
				if _, err := b.ApplyMove(reply.Candidate()); err != nil {
					t.Fatalf("%s: apply %s %s: %v", text, m, reply, err)
				}
				if _, err := b.UndoMove(); err != nil {
					t.Fatal(err)
				}
				if b.Snapshot() != mid {
					t.Fatalf("%s: undo %s after %s did not restore the position", text, reply, m)
				}
			}
			undone, err := b.UndoMove()
			if err != nil {
				t.Fatal(err)
			}
			if undone.Candidate() != m.Candidate() {
				t.Fatalf("%s: undo returned %s want %s", text, undone, m)
			}
			if b.Snapshot() != before || fen.EncodeBoard(b) != beforeFEN {
				t.Fatalf("%s: undo %s did not restore the position:\n%s", text, m, b)
			}
		}
	}
}

func TestUndoWithoutHistory(t *testing.T) {
	b := rules.NewBoard()
	if _, err := b.UndoMove(); !errors.Is(err, rules.ErrNoMoveToUndo) {
		t.Fatalf("UndoMove on a fresh board: got %v", err)
	}
}

func TestApplyMoveReportsCheck(t *testing.T) {
	b := rules.NewBoard()
	rep := play(t, b, "e2e4", "f7f6", "d1h5")
	if !rep.Move.IsCheck() || rep.Move.IsMate() {
		t.Fatalf("Qh5+: check=%v mate=%v", rep.Move.IsCheck(), rep.Move.IsMate())
	}
	if !b.IsKingAttacked(rules.Black) || rep.Endgame.Terminal() {
		t.Fatalf("black should be in check with the game ongoing: %v", rep.Endgame)
	}
	last, ok := b.LastMove()
	if !ok || last.String() != "d1h5" || last.Piece() != rules.WhiteQueen {
		t.Fatalf("LastMove: %v %v", last, ok)
	}
}

func TestApplyMoveIllegalLeavesBoard(t *testing.T) {
	b := rules.NewBoard()
	before := b.Snapshot()
	rep, err := b.ApplyMove(rules.Candidate{From: sq(t, "e2"), To: sq(t, "e5")})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Verdict != rules.Illegal || b.Snapshot() != before || len(b.History()) != 0 {
		t.Fatalf("illegal move changed the board: verdict %v", rep.Verdict)
	}
}
