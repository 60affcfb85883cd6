package rules

import "errors"

var (
	// ErrPieceNotFound is returned when an operation names an empty origin square.
	ErrPieceNotFound = errors.New("rules: no piece on square")
	// ErrInvalidArgument is returned for unset or off-board squares and malformed move text.
	ErrInvalidArgument = errors.New("rules: invalid argument")
	// ErrGameEnded is returned when mutating a game that already has a terminal result.
	ErrGameEnded = errors.New("rules: game already ended")
	// ErrInvalidSetup is returned when a supplied starting position is unusable.
	ErrInvalidSetup = errors.New("rules: invalid setup")
	// ErrNoMoveToUndo is returned by UndoMove on an empty history.
	ErrNoMoveToUndo = errors.New("rules: no move to undo")
)
