package game

import "errors"

var (
	// ErrInvalidConfiguration marks a malformed entity. It is raised when
	// reference data is loaded or a combatant is built, never during battle.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidState is returned when a combatant cannot act, e.g. it knows no moves.
	ErrInvalidState = errors.New("invalid state")
	// ErrStalemate is returned when a battle exceeds its turn bound.
	ErrStalemate = errors.New("stalemate")
)
