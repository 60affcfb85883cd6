package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"chess-rules/fen"
	"chess-rules/rules"
)

// replay plays req.Moves in order and hands every ply to emit. It stops at
// the first move that is not legal, after emitting it.
func (s *Server) replay(req replayRequest, emit func(plyBody) error) (*rules.Board, error) {
	var opts []rules.Option
	if req.AutoDraw {
		opts = append(opts, rules.WithAutoDraw(rules.AllAutoDraw))
	}
	b, err := s.board(req.FEN, opts...)
	if err != nil {
		return nil, err
	}
	for i, text := range req.Moves {
		c, err := rules.ParseCandidate(text)
		if err != nil {
			return b, err
		}
		rep, err := b.ApplyMove(c)
		if err != nil {
			return b, badRequest("ply %d: %v", i+1, err)
		}
		ply := plyBody{Ply: i + 1, Move: text, Verdict: rep.Verdict.String(), Endgame: newResultBody(rep.Endgame)}
		if rep.Verdict == rules.Legal {
			body := newMoveBody(rep.Move)
			ply.Applied = &body
		}
		if err := emit(ply); err != nil {
			return b, err
		}
		if rep.Verdict != rules.Legal {
			break
		}
	}
	return b, nil
}

type wsDone struct {
	Done   bool       `json:"done"`
	FEN    string     `json:"fen"`
	Result resultBody `json:"result"`
}

// GET /ws/replay: the client sends one replay request and receives one
// message per ply, then a final summary.
func (s *Server) wsReplayHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	s.log.Debug("websocket connected", "remote", conn.RemoteAddr().String())

	var req replayRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(errorBody{Error: badRequest("decoding request: %v", err).Error()})
		return
	}
	b, err := s.replay(req, func(p plyBody) error { return conn.WriteJSON(p) })
	if err != nil {
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) {
			return
		}
		s.log.Debug("replay stopped", "error", err)
		_ = conn.WriteJSON(errorBody{Error: err.Error()})
		return
	}
	_ = conn.WriteJSON(wsDone{Done: true, FEN: fen.EncodeBoard(b), Result: newResultBody(b.Endgame())})
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
