package rules

import "sync"

// GenOptions tunes move enumeration.
type GenOptions struct {
	// AllowAmbiguousCastle also lists castles written as the king dropping
	// on its own rook (e1h1), next to the two-file form (e1g1).
	AllowAmbiguousCastle bool
	// IgnoreTurn enumerates moves for both sides.
	IgnoreTurn bool
}

var promotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

// movesFrom appends the legal moves of the piece on sq. Each promotion is
// expanded into one move per kind, queen first, each carrying its own flags.
func (s *state) movesFrom(sq Square, o GenOptions, annotate bool, mode SafetyMode, dst []Move) []Move {
	p := s.pieces[sq]
	if p == NoPiece || (!o.IgnoreTurn && p.Color() != s.turn()) {
		return dst
	}
	var buf [32]Square
	for _, to := range dispatch[p.Kind()].pseudo(s, sq, buf[:0]) {
		m, v := s.judge(Candidate{From: sq, To: to}, judgeOpts{checkTurn: !o.IgnoreTurn, mode: mode})
		if v != Legal {
			continue
		}
		if m.special == SpecialCastle && !o.AllowAmbiguousCastle && m.to != m.kingTarget() {
			continue
		}
		if m.special != SpecialPromotion {
			if annotate {
				s.annotate(&m, mode)
			}
			dst = append(dst, m)
			continue
		}
		// Flags depend on the promotion kind.
		for _, k := range promotionKinds {
			pm := m
			pm.promotion = k
			if annotate {
				s.annotate(&pm, mode)
			}
			dst = append(dst, pm)
		}
	}
	return dst
}

// Moves lists every legal move, by origin square from a1 to h8 and in the
// fixed per-kind order within a square.
func (b *Board) Moves(o GenOptions) []Move {
	var out []Move
	for sq := Square(0); sq < 64; sq++ {
		out = b.movesFrom(sq, o, true, b.mode, out)
	}
	return out
}

// MovesFrom lists the legal moves of the piece on sq.
func (b *Board) MovesFrom(sq Square, o GenOptions) ([]Move, error) {
	if err := b.checkOrigin(sq); err != nil {
		return nil, err
	}
	return b.movesFrom(sq, o, true, b.mode, nil), nil
}

// MovesParallel returns the same set as Moves, generated with one goroutine
// per occupied square. The order is unspecified.
func (b *Board) MovesParallel(o GenOptions) []Move {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out []Move
	)
	for sq := Square(0); sq < 64; sq++ {
		if b.pieces[sq] == NoPiece {
			continue
		}
		f := b.fork()
		wg.Add(1)
		go func(sq Square, f state) {
			defer wg.Done()
			moves := f.movesFrom(sq, o, true, b.mode, nil)
			mu.Lock()
			out = append(out, moves...)
			mu.Unlock()
		}(sq, f)
	}
	wg.Wait()
	return out
}

// defendsFrom appends one move per square the piece on sq covers.
func (s *state) defendsFrom(sq Square, o GenOptions, dst []Move) []Move {
	p := s.pieces[sq]
	if p == NoPiece || (!o.IgnoreTurn && p.Color() != s.turn()) {
		return dst
	}
	var buf [16]Square
	for _, to := range dispatch[p.Kind()].defend(s, sq, buf[:0]) {
		if m, ok := s.covers(sq, to); ok {
			dst = append(dst, m)
		}
	}
	return dst
}

// Defended lists one move per (piece, covered square) pair. These are not
// playable moves.
func (b *Board) Defended(o GenOptions) []Move {
	var out []Move
	for sq := Square(0); sq < 64; sq++ {
		out = b.defendsFrom(sq, o, out)
	}
	return out
}
