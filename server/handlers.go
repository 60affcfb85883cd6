package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chess-rules/fen"
	"chess-rules/rules"
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errBadRequest}, args...)...)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("decoding body: %v", err)
	}
	return nil
}

// board builds a board from text, the start position when text is empty.
func (s *Server) board(text string, opts ...rules.Option) (*rules.Board, error) {
	if text == "" {
		text = fen.StartPos
	}
	return fen.NewBoard(text, append([]rules.Option{rules.WithSafetyMode(s.mode)}, opts...)...)
}

func genOptions(r *http.Request) rules.GenOptions {
	q := r.URL.Query()
	flag := func(name string) bool {
		v, _ := strconv.ParseBool(q.Get(name))
		return v
	}
	return rules.GenOptions{IgnoreTurn: flag("ignoreTurn"), AllowAmbiguousCastle: flag("ambiguousCastle")}
}

// GET /moves?fen=...[&ignoreTurn=1] and /moves/{square}
func (s *Server) movesHandler(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r.URL.Query().Get("fen"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	o := genOptions(r)
	var moves []rules.Move
	if name, ok := mux.Vars(r)["square"]; ok {
		sq, err := rules.ParseSquare(name)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if moves, err = b.MovesFrom(sq, o); err != nil {
			s.fail(w, r, err)
			return
		}
	} else if r.URL.Query().Has("parallel") {
		moves = b.MovesParallel(o)
	} else {
		moves = b.Moves(o)
	}
	writeJSON(w, http.StatusOK, movesResponse{
		FEN:   fen.EncodeBoard(b),
		Turn:  b.Turn().String(),
		Count: len(moves),
		Moves: moveBodies(moves),
	})
}

// GET /analyse?fen=... and /analyse/{square}
func (s *Server) analyseHandler(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r.URL.Query().Get("fen"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a := b.AnalyseParallel(genOptions(r))
	resp := analyseResponse{FEN: fen.EncodeBoard(b), Count: len(a.Moves())}
	if name, ok := mux.Vars(r)["square"]; ok {
		sq, err := rules.ParseSquare(name)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp.Squares = []squareBody{newSquareBody(a.At(sq))}
	} else {
		for sq := rules.Square(0); sq < 64; sq++ {
			resp.Squares = append(resp.Squares, newSquareBody(a.At(sq)))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /perft?fen=...&depth=N
func (s *Server) perftHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	depth, err := strconv.Atoi(q.Get("depth"))
	if err != nil || depth < 1 || depth > maxPerftDepth {
		s.fail(w, r, badRequest("depth must be between 1 and %d", maxPerftDepth))
		return
	}
	b, err := s.board(q.Get("fen"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := perftResponse{FEN: fen.EncodeBoard(b), Depth: depth, Divide: b.PerftDivide(depth)}
	for _, n := range resp.Divide {
		resp.Nodes += n
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /validate {"fen": ..., "move": "e2e4"}
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	b, err := s.board(req.FEN)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := rules.ParseCandidate(req.Move)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	m, v, err := b.Validate(c, !req.IgnoreTurn)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := validateResponse{Verdict: v.String()}
	if v == rules.Legal {
		body := newMoveBody(m)
		resp.Move = &body
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /replay {"fen": ..., "moves": [...], "autoDraw": true}
func (s *Server) replayHandler(w http.ResponseWriter, r *http.Request) {
	var req replayRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	var resp replayResponse
	b, err := s.replay(req, func(p plyBody) error {
		resp.Plies = append(resp.Plies, p)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp.FEN = fen.EncodeBoard(b)
	resp.Result = newResultBody(b.Endgame())
	writeJSON(w, http.StatusOK, resp)
}
