package rules

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It plays moves on the board and restores it before returning.
func (b *Board) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return b.perftRec(depth, &pc)
}

// perftCtx keeps one move buffer per depth so the walk does not allocate.
type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 64)
	}
	return buf[:0]
}

func (s *state) legalMoves(mode SafetyMode, dst []Move) []Move {
	for sq := Square(0); sq < 64; sq++ {
		dst = s.movesFrom(sq, GenOptions{}, false, mode, dst)
	}
	return dst
}

func (b *Board) perftRec(depth int, pc *perftCtx) uint64 {
	moves := b.legalMoves(b.mode, pc.bufFor(depth))
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.push(m)
		nodes += b.perftRec(depth-1, pc)
		b.pop()
	}
	return nodes
}

// PerftDivide maps each legal root move, in coordinate text, to the leaf
// count below it.
func (b *Board) PerftDivide(depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.legalMoves(b.mode, nil) {
		b.push(m)
		result[m.String()] = b.Perft(depth - 1)
		b.pop()
	}
	return result
}
