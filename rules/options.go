package rules

import (
	"io"
	"log/slog"
)

// Option configures a Board.
type Option func(*Board)

// WithAutoDraw selects the draw rules evaluated after every applied move.
func WithAutoDraw(r AutoDrawRules) Option {
	return func(b *Board) { b.drawRules = r }
}

// WithPromotionResolver installs the callback asked for a promotion kind
// when ApplyMove receives a promotion without one.
func WithPromotionResolver(r PromotionResolver) Option {
	return func(b *Board) { b.resolver = r }
}

// WithSafetyMode selects how king-safety tests play hypothetical moves.
func WithSafetyMode(m SafetyMode) Option {
	return func(b *Board) { b.mode = m }
}

// WithLogger sets the logger for applied and rejected moves and game results.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
