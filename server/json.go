package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"chess-rules/fen"
	"chess-rules/rules"
)

type errorBody struct {
	Error string `json:"error"`
}

type moveBody struct {
	UCI      string `json:"uci"`
	Piece    string `json:"piece"`
	Captured string `json:"captured,omitempty"`
	Special  string `json:"special,omitempty"`
	Check    bool   `json:"check"`
	Mate     bool   `json:"mate"`
}

func newMoveBody(m rules.Move) moveBody {
	body := moveBody{UCI: m.String(), Piece: string(m.Piece().Letter()), Check: m.IsCheck(), Mate: m.IsMate()}
	if m.IsCapture() {
		body.Captured = string(m.Captured().Letter())
	}
	if m.Special() != rules.SpecialNone {
		body.Special = m.Special().String()
	}
	return body
}

func moveBodies(moves []rules.Move) []moveBody {
	out := make([]moveBody, 0, len(moves))
	for _, m := range moves {
		out = append(out, newMoveBody(m))
	}
	return out
}

func uciList(moves []rules.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}

type resultBody struct {
	Kind   string `json:"kind"`
	Winner string `json:"winner,omitempty"`
}

func newResultBody(r rules.Result) resultBody {
	body := resultBody{Kind: r.Kind.String()}
	if r.Decisive() {
		body.Winner = r.Winner.String()
	}
	return body
}

type movesResponse struct {
	FEN   string     `json:"fen"`
	Turn  string     `json:"turn"`
	Count int        `json:"count"`
	Moves []moveBody `json:"moves"`
}

type squareBody struct {
	Square     string   `json:"square"`
	Piece      string   `json:"piece,omitempty"`
	PieceMoves []string `json:"pieceMoves"`
	MovesTo    []string `json:"movesTo"`
	Defenders  []string `json:"defenders"`
	Defends    []string `json:"defends"`
}

func newSquareBody(info *rules.SquareInfo) squareBody {
	body := squareBody{
		Square:     info.Square.String(),
		PieceMoves: uciList(info.PieceMoves),
		MovesTo:    uciList(info.MovesTo),
		Defenders:  uciList(info.Defenders),
		Defends:    uciList(info.Defends),
	}
	if info.Piece != rules.NoPiece {
		body.Piece = string(info.Piece.Letter())
	}
	return body
}

type analyseResponse struct {
	FEN     string       `json:"fen"`
	Count   int          `json:"count"`
	Squares []squareBody `json:"squares"`
}

type validateRequest struct {
	FEN        string `json:"fen"`
	Move       string `json:"move"`
	IgnoreTurn bool   `json:"ignoreTurn"`
}

type validateResponse struct {
	Verdict string    `json:"verdict"`
	Move    *moveBody `json:"move,omitempty"`
}

type replayRequest struct {
	FEN      string   `json:"fen"`
	Moves    []string `json:"moves"`
	AutoDraw bool     `json:"autoDraw"`
}

type plyBody struct {
	Ply     int        `json:"ply"`
	Move    string     `json:"move"`
	Verdict string     `json:"verdict"`
	Applied *moveBody  `json:"applied,omitempty"`
	Endgame resultBody `json:"endgame"`
}

type replayResponse struct {
	Plies  []plyBody  `json:"plies"`
	FEN    string     `json:"fen"`
	Result resultBody `json:"result"`
}

type perftResponse struct {
	FEN    string            `json:"fen"`
	Depth  int               `json:"depth"`
	Nodes  uint64            `json:"nodes"`
	Divide map[string]uint64 `json:"divide"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errStatus maps caller errors to 400 and everything else to 500.
func errStatus(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, rules.ErrInvalidArgument),
		errors.Is(err, rules.ErrPieceNotFound),
		errors.Is(err, rules.ErrInvalidSetup),
		errors.Is(err, fen.ErrInvalidFEN):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.log.Debug("bad request", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
