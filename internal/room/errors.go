package room

import "errors"

// Caller-visible failures. Every precondition violation surfaces as one of
// these and leaves the room untouched; none of them are retryable by the
// core. The transport layer maps them onto status codes.
var (
	// ErrRoomNotFound: no room with that identifier.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomFull: the room already seats MaxPlayers.
	ErrRoomFull = errors.New("room is full")

	// ErrAlreadyStarted: join or start attempted after the round began.
	ErrAlreadyStarted = errors.New("game already started")

	// ErrNotHost: only the host seat may start the round.
	ErrNotHost = errors.New("only host can start the game")

	// ErrNotSeated: the player identifier holds no seat in the room.
	ErrNotSeated = errors.New("player not in room")

	// ErrNotPlayerTurns: an action arrived outside the player_turns phase.
	ErrNotPlayerTurns = errors.New("not in player turns")

	// ErrNotYourTurn: the acting seat is not the active turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrSeatResolved: the seat's outcome is already decided this round.
	ErrSeatResolved = errors.New("player already resolved")

	// ErrInvalidAction: the action literal is neither "hit" nor "stand".
	ErrInvalidAction = errors.New("action must be hit or stand")

	// ErrMaxPlayers: requested capacity is outside the 1..8 range.
	ErrMaxPlayers = errors.New("max players must be between 1 and 8")

	// ErrNameLength: the player name is empty or too long after trimming.
	ErrNameLength = errors.New("player name must be 1 to 30 characters")
)
