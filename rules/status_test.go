package rules_test

import (
	"errors"
	"testing"

	"chess-rules/rules"
)

func TestCheckmate_FoolsMate(t *testing.T) {
	// Black just played Qh4#, White to move and is checkmated
	b := mustBoard(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !b.IsKingAttacked(rules.White) {
		t.Fatalf("expected White to be in check")
	}
	if b.HasAnyLegalMove(rules.White) {
		t.Fatalf("expected no legal moves for White in mate")
	}
	if !b.IsCheckmate(rules.White) {
		t.Fatalf("expected checkmate for White")
	}
	if b.IsStalemate(rules.White) {
		t.Fatalf("not stalemate in mate position")
	}
	res := b.EvaluateEndgame()
	if res.Kind != rules.Checkmate || res.Winner != rules.Black {
		t.Fatalf("EvaluateEndgame: got %v", res)
	}
}

func TestStalemate_Basic(t *testing.T) {
	b := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if b.IsKingAttacked(rules.Black) {
		t.Fatalf("expected Black not in check")
	}
	if b.HasAnyLegalMove(rules.Black) {
		t.Fatalf("expected no legal moves for Black in stalemate")
	}
	if !b.IsStalemate(rules.Black) {
		t.Fatalf("expected stalemate for Black")
	}
	if res := b.EvaluateEndgame(); res.Kind != rules.Stalemate || res.Decisive() {
		t.Fatalf("EvaluateEndgame: got %v", res)
	}
}

// Mate-in-one: play the mating move and verify the report and the stored result
func TestMateInOne_ApplyAndDetect(t *testing.T) {
	b := mustBoard(t, "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1")
	m, ok := findMove(t, b.Moves(rules.GenOptions{}), "g6g7")
	if !ok {
		t.Fatalf("expected to find Qxg7# in legal moves")
	}
	if m.Captured() != rules.BlackPawn || !m.IsCheck() || !m.IsMate() {
		t.Fatalf("Qxg7: captured=%v check=%v mate=%v", m.Captured(), m.IsCheck(), m.IsMate())
	}
	rep := play(t, b, "g6g7")
	if rep.Endgame.Kind != rules.Checkmate || rep.Endgame.Winner != rules.White {
		t.Fatalf("report endgame: got %v", rep.Endgame)
	}
	if b.Endgame() != rep.Endgame {
		t.Fatalf("stored endgame %v differs from report %v", b.Endgame(), rep.Endgame)
	}
	_, err := b.ApplyMove(rules.Candidate{From: sq(t, "h8"), To: sq(t, "g8")})
	if !errors.Is(err, rules.ErrGameEnded) {
		t.Fatalf("move after mate: got %v want ErrGameEnded", err)
	}
	if _, err := b.UndoMove(); err != nil {
		t.Fatalf("UndoMove: %v", err)
	}
	if b.Endgame().Terminal() {
		t.Fatalf("undo should clear the result, got %v", b.Endgame())
	}
}

func TestStalematingMoveIsNotMate(t *testing.T) {
	// Qf7 stalemates the king on h8 without checking it
	b := mustBoard(t, "7k/8/6K1/8/8/8/8/5Q2 w - - 0 1")
	m, _, err := b.Validate(rules.Candidate{From: sq(t, "f1"), To: sq(t, "f7")}, true)
	if err != nil {
		t.Fatal(err)
	}
	if m.IsCheck() || m.IsMate() {
		t.Fatalf("Qf7: check=%v mate=%v, want neither", m.IsCheck(), m.IsMate())
	}
	rep := play(t, b, "f1f7")
	if rep.Endgame.Kind != rules.Stalemate {
		t.Fatalf("endgame after Qf7: got %v", rep.Endgame)
	}
}

func TestMateAndStalemateDefinitions(t *testing.T) {
	positions := []string{
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1",
		kiwipete,
		pos6,
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, text := range positions {
		b := mustBoard(t, text)
		for _, c := range []rules.Color{rules.White, rules.Black} {
			attacked, canMove := b.IsKingAttacked(c), b.HasAnyLegalMove(c)
			if got, want := b.IsCheckmate(c), attacked && !canMove; got != want {
				t.Fatalf("%s %v: IsCheckmate=%v want %v", text, c, got, want)
			}
			if got, want := b.IsStalemate(c), !attacked && !canMove; got != want {
				t.Fatalf("%s %v: IsStalemate=%v want %v", text, c, got, want)
			}
		}
	}
}

func TestNoKingIsNeverInCheck(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/8/8/8/R6r w - - 0 1")
	if b.IsKingAttacked(rules.White) || b.IsKingAttacked(rules.Black) {
		t.Fatalf("a board without kings reported check")
	}
	if b.KingSquare(rules.White) != rules.NoSquare {
		t.Fatalf("KingSquare on kingless board: got %v", b.KingSquare(rules.White))
	}
}

func TestLeavesKingInCheckVerdict(t *testing.T) {
	// The bishop on e2 is pinned against the king by the rook on e8
	b := mustBoard(t, "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1")
	rep, err := b.ApplyMove(rules.Candidate{From: sq(t, "e2"), To: sq(t, "d3")})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Verdict != rules.LeavesKingInCheck {
		t.Fatalf("pinned bishop: got verdict %v", rep.Verdict)
	}
	if len(b.History()) != 0 || b.PieceAt(sq(t, "e2")) != rules.WhiteBishop {
		t.Fatalf("rejected move changed the board")
	}
	rep, err = b.ApplyMove(rules.Candidate{From: sq(t, "e2"), To: sq(t, "e4")})
	if err != nil || rep.Verdict != rules.Illegal {
		t.Fatalf("bishop moving straight: verdict %v err %v", rep.Verdict, err)
	}
}

func TestValidateErrors(t *testing.T) {
	b := rules.NewBoard()
	if _, _, err := b.Validate(rules.Candidate{From: sq(t, "e4"), To: sq(t, "e5")}, true); !errors.Is(err, rules.ErrPieceNotFound) {
		t.Fatalf("empty origin: got %v want ErrPieceNotFound", err)
	}
	if _, _, err := b.Validate(rules.Candidate{From: rules.NoSquare, To: sq(t, "e5")}, true); !errors.Is(err, rules.ErrInvalidArgument) {
		t.Fatalf("unset origin: got %v want ErrInvalidArgument", err)
	}
	if _, err := b.PseudoMoves(sq(t, "d4")); !errors.Is(err, rules.ErrPieceNotFound) {
		t.Fatalf("PseudoMoves on empty square: got %v", err)
	}
	if _, v, err := b.Validate(rules.Candidate{From: sq(t, "e7"), To: sq(t, "e5")}, true); err != nil || v != rules.Illegal {
		t.Fatalf("black move on white's turn: verdict %v err %v", v, err)
	}
	if _, v, _ := b.Validate(rules.Candidate{From: sq(t, "e7"), To: sq(t, "e5")}, false); v != rules.Legal {
		t.Fatalf("black move with turn ignored: verdict %v", v)
	}
	if _, v, _ := b.Validate(rules.Candidate{From: sq(t, "e2"), To: sq(t, "e2")}, true); v != rules.Illegal {
		t.Fatalf("null move: verdict %v", v)
	}
	if _, err := b.UndoMove(); !errors.Is(err, rules.ErrNoMoveToUndo) {
		t.Fatalf("UndoMove on fresh board: got %v", err)
	}
}

func TestResignAndDeclareDraw(t *testing.T) {
	b := rules.NewBoard()
	play(t, b, "e2e4")
	if err := b.Resign(rules.Black); err != nil {
		t.Fatal(err)
	}
	if res := b.Endgame(); res.Kind != rules.Resignation || res.Winner != rules.White {
		t.Fatalf("after resign: got %v", res)
	}
	if err := b.DeclareDraw(); !errors.Is(err, rules.ErrGameEnded) {
		t.Fatalf("draw after resign: got %v", err)
	}
	if _, err := b.ApplyMove(rules.Candidate{From: sq(t, "e7"), To: sq(t, "e5")}); !errors.Is(err, rules.ErrGameEnded) {
		t.Fatalf("move after resign: got %v", err)
	}
	b.Reset()
	if b.Endgame().Terminal() || len(b.History()) != 0 || b.PieceAt(sq(t, "e2")) != rules.WhitePawn {
		t.Fatalf("Reset did not restore the setup")
	}
	if err := b.DeclareDraw(); err != nil {
		t.Fatal(err)
	}
	if !b.Endgame().Draw() {
		t.Fatalf("DeclareDraw: got %v", b.Endgame())
	}
}
