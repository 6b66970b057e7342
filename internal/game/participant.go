package game

import "goldenjack/internal/deck"

// Participant is one hand at the table: a seated player or the dealer.
// Participants are recreated for every round; persistent identity lives in
// the room layer.
type Participant struct {
	Name     string      `json:"name"`
	Hand     []deck.Card `json:"hand"`
	Score    int         `json:"score"`
	IsDealer bool        `json:"isDealer"`
	Result   string      `json:"result,omitempty"`
}

// NewParticipant creates a participant with an empty hand.
func NewParticipant(name string, isDealer bool) *Participant {
	return &Participant{Name: name, IsDealer: isDealer}
}

// AddCard appends a card to the hand and recomputes the score from scratch.
func (p *Participant) AddCard(c deck.Card) {
	p.Hand = append(p.Hand, c)
	p.Score = ComputeScore(p.Hand, p.IsDealer)
}

// ResetHand clears the hand and score. Used only at round reset.
func (p *Participant) ResetHand() {
	p.Hand = p.Hand[:0]
	p.Score = 0
}
