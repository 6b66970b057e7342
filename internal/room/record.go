package room

import "time"

// SeatOutcome is one seat's final standing in a finished round.
type SeatOutcome struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Result   string `json:"result"`
}

// RoundRecord summarizes a finished round for downstream consumers (archive,
// queue). It is built under the manager lock and handed out by value, so
// holders never alias live room state.
type RoundRecord struct {
	RoomID      string        `json:"room_id"`
	DealerScore int           `json:"dealer_score"`
	Seats       []SeatOutcome `json:"seats"`
	FinishedAt  time.Time     `json:"finished_at"`
}
