package game

import "errors"

// Structural failures, surfaced from room creation / game start.
var (
	ErrInvalidGridSize   = errors.New("invalid grid size")
	ErrInsufficientWords = errors.New("not enough words in pool")
	ErrCodesExhausted    = errors.New("room code space exhausted")
)

// Membership failures. Room state is unchanged when these are returned.
var (
	ErrRoomFull         = errors.New("room is full")
	ErrRoomNotJoinable  = errors.New("room is not joinable")
	ErrDuplicatePlayer  = errors.New("player already in room")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrAlreadyStarted   = errors.New("game already started")
)

// Turn legality failures. Always a no-op on room state.
var (
	ErrWrongPhase      = errors.New("action not allowed in current phase")
	ErrNotActivePlayer = errors.New("not the active player")
	ErrInvalidClue     = errors.New("invalid clue")
	ErrInvalidPosition = errors.New("card position out of range")
	ErrAlreadyRevealed = errors.New("card already revealed")
)
