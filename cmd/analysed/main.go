package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"chess-rules/rules"
	"chess-rules/server"
)

func main() {
	addr := flag.String("addr", ":8080", "Address to listen on")
	readTimeout := flag.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	undo := flag.Bool("undo", false, "Test king safety by undoing moves in place instead of cloning")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	mode := rules.SafetyClone
	if *undo {
		mode = rules.SafetyUndo
	}
	srv := &http.Server{
		Addr:         *addr,
		Handler:      server.New(server.WithLogger(log), server.WithSafetyMode(mode)),
		ReadTimeout:  *readTimeout,
		WriteTimeout: *writeTimeout,
	}
	log.Info("starting server", "addr", *addr, "safety", mode.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
