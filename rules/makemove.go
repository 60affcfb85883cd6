package rules

// specialRule mutates a piece array for one kind of move and reverts it.
type specialRule struct {
	apply func(pcs *[64]Piece, m Move)
	undo  func(pcs *[64]Piece, m Move)
}

var specials = [...]specialRule{
	SpecialNone:      {apply: slide, undo: unslide},
	SpecialCastle:    {apply: castle, undo: uncastle},
	SpecialEnPassant: {apply: enPassant, undo: unEnPassant},
	SpecialPromotion: {apply: promote, undo: unpromote},
}

func slide(pcs *[64]Piece, m Move) {
	pcs[m.to] = pcs[m.from]
	pcs[m.from] = NoPiece
}

func unslide(pcs *[64]Piece, m Move) {
	pcs[m.from] = m.piece
	pcs[m.to] = m.captured
}

// castleSquares returns the king and rook destinations and the rook origin.
func castleSquares(m Move) (kingTo, rookFrom, rookTo Square) {
	c := m.piece.Color()
	rookFrom = rookHome(c, m.wing)
	kingTo = m.kingTarget()
	rookTo = SquareAt(5, m.from.Rank())
	if m.wing == QueenSide {
		rookTo = SquareAt(3, m.from.Rank())
	}
	return kingTo, rookFrom, rookTo
}

func castle(pcs *[64]Piece, m Move) {
	kingTo, rookFrom, rookTo := castleSquares(m)
	rook := pcs[rookFrom]
	pcs[m.from] = NoPiece
	pcs[rookFrom] = NoPiece
	pcs[kingTo] = m.piece
	pcs[rookTo] = rook
}

func uncastle(pcs *[64]Piece, m Move) {
	kingTo, rookFrom, rookTo := castleSquares(m)
	pcs[kingTo] = NoPiece
	pcs[rookTo] = NoPiece
	pcs[m.from] = m.piece
	pcs[rookFrom] = NewPiece(m.piece.Color(), Rook)
}

func enPassant(pcs *[64]Piece, m Move) {
	slide(pcs, m)
	pcs[m.victim] = NoPiece
}

func unEnPassant(pcs *[64]Piece, m Move) {
	pcs[m.from] = m.piece
	pcs[m.to] = NoPiece
	pcs[m.victim] = m.captured
}

// promote treats an unresolved kind as a queen, which is what a king-safety
// test needs before the kind is chosen.
func promote(pcs *[64]Piece, m Move) {
	pcs[m.from] = NoPiece
	pcs[m.to] = NewPiece(m.piece.Color(), m.promotedKind())
}

func unpromote(pcs *[64]Piece, m Move) {
	pcs[m.from] = m.piece
	pcs[m.to] = m.captured
}
