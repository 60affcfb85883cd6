// Package server exposes read-only rules queries over HTTP and a websocket
// replay stream. It keeps no game sessions.
package server

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"chess-rules/rules"
)

// maxPerftDepth bounds the depth a request may ask for.
const maxPerftDepth = 4

// Server routes analysis requests to fresh boards.
type Server struct {
	router    *mux.Router
	handler   http.Handler
	upgrader  websocket.Upgrader
	log       *slog.Logger
	accessLog io.Writer
	mode      rules.SafetyMode
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAccessLog sends the combined access log to w. The default is stdout.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

// WithSafetyMode selects the king-safety mode of every board the server builds.
func WithSafetyMode(m rules.SafetyMode) Option {
	return func(s *Server) { s.mode = m }
}

// New builds the router.
func New(opts ...Option) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		log:       slog.Default().With("package", "server"),
		accessLog: os.Stdout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.NotFoundHandler = http.HandlerFunc(notFound)
	s.router.HandleFunc("/moves", s.movesHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/moves/{square:[a-h][1-8]}", s.movesHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/analyse", s.analyseHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/analyse/{square:[a-h][1-8]}", s.analyseHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/perft", s.perftHandler).Methods(http.MethodGet)
	s.router.Handle("/validate", handlers.ContentTypeHandler(http.HandlerFunc(s.validateHandler), "application/json")).Methods(http.MethodPost)
	s.router.Handle("/replay", handlers.ContentTypeHandler(http.HandlerFunc(s.replayHandler), "application/json")).Methods(http.MethodPost)
	s.router.HandleFunc("/ws/replay", s.wsReplayHandler)

	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true), handlers.RecoveryLogger(recoveryLogger{s.log}))
	s.handler = handlers.LoggingHandler(s.accessLog, recovery(s.router))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// recoveryLogger adapts slog to the handlers recovery logger.
type recoveryLogger struct{ log *slog.Logger }

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("handler panic", "panic", v)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
}
