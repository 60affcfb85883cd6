package rules_test

import (
	"testing"

	"chess-rules/rules"
)

func verdict(t *testing.T, b *rules.Board, move string) rules.Verdict {
	t.Helper()
	c, err := rules.ParseCandidate(move)
	if err != nil {
		t.Fatal(err)
	}
	_, v, err := b.Validate(c, true)
	if err != nil {
		t.Fatalf("Validate(%s): %v", move, err)
	}
	return v
}

func TestCastleMakeUnmake(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	before := b.Snapshot()
	rep := play(t, b, "e1g1")
	m := rep.Move
	if m.Special() != rules.SpecialCastle || m.CastleWing() != rules.KingSide {
		t.Fatalf("e1g1: special=%v wing=%v", m.Special(), m.CastleWing())
	}
	if b.PieceAt(sq(t, "g1")) != rules.WhiteKing || b.PieceAt(sq(t, "f1")) != rules.WhiteRook {
		t.Fatalf("after castle: g1=%v f1=%v", b.PieceAt(sq(t, "g1")), b.PieceAt(sq(t, "f1")))
	}
	if b.PieceAt(sq(t, "e1")) != rules.NoPiece || b.PieceAt(sq(t, "h1")) != rules.NoPiece {
		t.Fatalf("castle left pieces on home squares")
	}
	if b.CastlingRights() != rules.NoCastling {
		t.Fatalf("rights after castling: got %v", b.CastlingRights())
	}
	if _, err := b.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if b.Snapshot() != before {
		t.Fatalf("snapshot mismatch after undoing castle")
	}
}

func TestQueensideCastle(t *testing.T) {
	b := mustBoard(t, "r3k3/8/8/8/8/8/8/4K3 b q - 0 1")
	play(t, b, "e8c8")
	if b.PieceAt(sq(t, "c8")) != rules.BlackKing || b.PieceAt(sq(t, "d8")) != rules.BlackRook || b.PieceAt(sq(t, "a8")) != rules.NoPiece {
		t.Fatalf("after O-O-O:\n%s", b)
	}
}

func TestCastleThroughCheckRejected(t *testing.T) {
	cases := []struct {
		name        string
		fen         string
		king, queen rules.Verdict
	}{
		{"clear", "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", rules.Legal, rules.Legal},
		{"in check", "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1", rules.LeavesKingInCheck, rules.LeavesKingInCheck},
		{"f1 attacked", "5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1", rules.LeavesKingInCheck, rules.Legal},
		{"g1 attacked", "6rk/8/8/8/8/8/8/R3K2R w KQ - 0 1", rules.LeavesKingInCheck, rules.Legal},
		{"d1 attacked", "3rk3/8/8/8/8/8/8/R3K2R w KQ - 0 1", rules.Legal, rules.LeavesKingInCheck},
		{"c1 attacked", "2r1k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", rules.Legal, rules.LeavesKingInCheck},
		{"only b1 attacked", "1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", rules.Legal, rules.Legal},
		{"no flags", "4k3/8/8/8/8/8/8/R3K2R w - - 0 1", rules.Illegal, rules.Illegal},
		{"blocked", "4k3/8/8/8/8/8/8/RN2K1NR w KQ - 0 1", rules.Illegal, rules.Illegal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			if got := verdict(t, b, "e1g1"); got != tc.king {
				t.Fatalf("e1g1: got %v want %v", got, tc.king)
			}
			if got := verdict(t, b, "e1c1"); got != tc.queen {
				t.Fatalf("e1c1: got %v want %v", got, tc.queen)
			}
		})
	}
}

func TestCastlingRightLostWhenRookMoves(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	play(t, b, "h1h2", "e8d8", "h2h1", "d8e8")
	if got := verdict(t, b, "e1g1"); got != rules.Illegal {
		t.Fatalf("kingside after rook returned: got %v want illegal", got)
	}
	if got := verdict(t, b, "e1c1"); got != rules.Legal {
		t.Fatalf("queenside right should survive: got %v", got)
	}
	if got := b.CastlingRights(); got != rules.CastleWhiteQueen {
		t.Fatalf("rights: got %v want Q", got)
	}
}

func TestCastlingRightLostWhenKingMoves(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	play(t, b, "e1e2", "e8d8", "e2e1", "d8e8")
	if got := b.CastlingRights(); got != rules.NoCastling {
		t.Fatalf("rights after king walk: got %v", got)
	}
}

func TestCastlingRightLostWhenRookCaptured(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/6b1/R3K2R b KQ - 0 1")
	play(t, b, "g2h1")
	if got := b.CastlingRights(); got != rules.CastleWhiteQueen {
		t.Fatalf("rights after Bxh1: got %v want Q", got)
	}
	// A flag without its rook grants nothing
	b = mustBoard(t, "4k3/8/8/8/8/8/8/4K3 w KQ - 0 1")
	if got := b.CastlingRights(); got != rules.NoCastling {
		t.Fatalf("rights without rooks: got %v", got)
	}
}

func TestAmbiguousCastle(t *testing.T) {
	b := mustBoard(t, kiwipete)
	moves := b.Moves(rules.GenOptions{})
	if _, ok := findMove(t, moves, "e1h1"); ok {
		t.Fatalf("e1h1 listed without AllowAmbiguousCastle")
	}
	if _, ok := findMove(t, moves, "e1g1"); !ok {
		t.Fatalf("e1g1 missing")
	}
	all := b.Moves(rules.GenOptions{AllowAmbiguousCastle: true})
	if len(all) != len(moves)+2 {
		t.Fatalf("ambiguous castles: got %d moves want %d", len(all), len(moves)+2)
	}
	rep := play(t, b, "e1h1")
	if rep.Move.Special() != rules.SpecialCastle || b.PieceAt(sq(t, "g1")) != rules.WhiteKing || b.PieceAt(sq(t, "f1")) != rules.WhiteRook {
		t.Fatalf("e1h1 did not castle:\n%s", b)
	}
}
