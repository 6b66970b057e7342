package room

import (
	"time"

	"goldenjack/internal/game"
)

// Phase is the lifecycle stage of a room.
type Phase string

const (
	PhaseWaiting     Phase = "waiting"
	PhasePlayerTurns Phase = "player_turns"
	PhaseDealerTurn  Phase = "dealer_turn"
	PhaseResults     Phase = "results"
)

// Seat is a persistent per-room player slot. Unlike a game.Participant,
// which is recreated every round, a seat survives the whole room lifecycle;
// the stood/resolved/result fields are per-round transients reset at round
// start.
type Seat struct {
	PlayerID string
	Name     string

	Stood    bool
	Resolved bool
	Result   string
}

// Room binds seats to at most one round engine. Seat order is frozen once
// assigned: seats[i] always corresponds to engine.Players[i] for the active
// round, so the index is the canonical identity of a player.
type Room struct {
	ID         string
	HostID     string
	Seats      []*Seat
	MaxPlayers int

	Phase            Phase
	CurrentTurnIndex int
	Engine           *game.Game

	// version increments on every mutation; state streams use it to detect
	// change without diffing snapshots.
	version    uint64
	lastActive time.Time
}

// FindSeatIndex returns the index of the seat held by playerID, or -1.
func (r *Room) FindSeatIndex(playerID string) int {
	for i, seat := range r.Seats {
		if seat.PlayerID == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) touch(now time.Time) {
	r.lastActive = now
}

func (r *Room) bump() {
	r.version++
}
