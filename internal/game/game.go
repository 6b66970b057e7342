package game

import (
	"fmt"

	"goldenjack/internal/deck"
)

// Player count bounds for a single round.
const (
	MinPlayers = 1
	MaxPlayers = 8
)

// HandLimit caps every hand at five cards; a five-card hand at 21 or under
// is the Di Linh. The dealer auto-plays while under the limit and below the
// stand score.
const (
	HandLimit        = 5
	dealerStandScore = 15
)

// Game is the round engine: one deck, one dealer, and N player hands for
// exactly one play-through. It carries no turn state; whose turn it is lives
// in the room layer.
type Game struct {
	Players []*Participant
	Dealer  *Participant

	nPlayers int
	deck     *deck.Deck
}

// New creates a round engine for nPlayers hands. The deck is freshly
// shuffled and the dealer seat is created empty; call AddPlayers to populate
// the player hands.
func New(nPlayers int) (*Game, error) {
	if nPlayers < MinPlayers {
		return nil, fmt.Errorf("number of players must be at least %d", MinPlayers)
	}
	if nPlayers > MaxPlayers {
		return nil, fmt.Errorf("number of players cannot exceed %d", MaxPlayers)
	}
	return &Game{
		nPlayers: nPlayers,
		Dealer:   NewParticipant("Dealer", true),
		deck:     deck.New(),
	}, nil
}

// SetDeck replaces the engine's deck. A stacked deck fixes the exact deal
// order, which deterministic tests rely on.
func (g *Game) SetDeck(d *deck.Deck) {
	g.deck = d
}

// AddPlayers appends the configured number of fresh participants, named
// positionally ("Player 1", ...). Index order is the permanent identity of a
// hand for the round.
func (g *Game) AddPlayers() {
	for i := 0; i < g.nPlayers; i++ {
		g.Players = append(g.Players, NewParticipant(fmt.Sprintf("Player %d", i+1), false))
	}
}

// DealInitialCards gives every player and the dealer two cards: two passes,
// each dealing one card to every player in index order and then one to the
// dealer.
func (g *Game) DealInitialCards() {
	for pass := 0; pass < 2; pass++ {
		for _, p := range g.Players {
			p.AddCard(g.DrawCard())
		}
		g.Dealer.AddCard(g.DrawCard())
	}
}

// DrawCard draws the next card from the deck.
func (g *Game) DrawCard() deck.Card {
	return g.deck.Draw()
}

// Reset discards all hands and replaces the deck, returning the engine to
// its pre-deal state. The participants themselves are kept.
func (g *Game) Reset() {
	g.deck = deck.New()
	g.Dealer.ResetHand()
	for _, p := range g.Players {
		p.ResetHand()
	}
}

// PlayDealer runs the dealer's automated drawing policy to completion.
func (g *Game) PlayDealer() {
	for len(g.Dealer.Hand) < HandLimit && g.Dealer.Score < dealerStandScore {
		g.Dealer.AddCard(g.DrawCard())
	}
}

// IsBlackjack reports whether the hand is a two-card 21.
func IsBlackjack(p *Participant) bool {
	return len(p.Hand) == 2 && p.Score == 21
}

// IsGoldenBlackjack reports whether the hand is two aces.
func IsGoldenBlackjack(p *Participant) bool {
	if len(p.Hand) != 2 {
		return false
	}
	for _, c := range p.Hand {
		if c.Rank != deck.Ace {
			return false
		}
	}
	return true
}

// IsSpirit reports whether the hand is a five-card charlie: five cards
// totalling 21 or less (the original rules call this hand "Di Linh").
func IsSpirit(p *Participant) bool {
	return len(p.Hand) == HandLimit && p.Score <= 21
}

// IsNatural reports whether the hand resolves immediately at deal time.
func IsNatural(p *Participant) bool {
	return IsBlackjack(p) || IsGoldenBlackjack(p)
}

// CheckPlayer evaluates the player at the given index against the dealer and
// stores the verdict on the participant.
func (g *Game) CheckPlayer(playerIndex int) error {
	if playerIndex < 0 || playerIndex >= len(g.Players) {
		return fmt.Errorf("player index %d is out of range", playerIndex)
	}
	g.Players[playerIndex].Result = g.EvaluateWinner(playerIndex)
	return nil
}

// EvaluateWinner judges one player's hand against the dealer's. The ladder
// is ordered; the first matching tier decides:
//
//	golden blackjack > blackjack > five-card Di Linh > bust > higher score.
//
// Within the blackjack tier a one-sided blackjack favors the dealer; the
// golden and Di Linh tiers favor the player first.
func (g *Game) EvaluateWinner(playerIndex int) string {
	player := g.Players[playerIndex]
	dealer := g.Dealer

	playerGolden := IsGoldenBlackjack(player)
	dealerGolden := IsGoldenBlackjack(dealer)

	switch {
	case playerGolden && dealerGolden:
		return "Draw (both Golden Blackjack)"
	case playerGolden:
		return "Player wins with Golden Blackjack"
	case dealerGolden:
		return "Dealer wins with Golden Blackjack"
	}

	playerBlackjack := IsBlackjack(player)
	dealerBlackjack := IsBlackjack(dealer)

	switch {
	case playerBlackjack && dealerBlackjack:
		return "Draw (both Blackjack)"
	case dealerBlackjack:
		return "Dealer wins with Blackjack"
	case playerBlackjack:
		return "Player wins with Blackjack"
	}

	switch {
	case IsSpirit(player) && IsSpirit(dealer):
		return "Draw (both Di Linh)"
	case IsSpirit(player):
		return "Player wins with Di Linh"
	case IsSpirit(dealer):
		return "Dealer wins with Di Linh"
	}

	switch {
	case player.Score > 21:
		return "Player busted - Dealer wins"
	case dealer.Score > 21:
		return "Dealer busted - Player wins"
	case player.Score > dealer.Score:
		return "Player wins"
	case player.Score < dealer.Score:
		return "Dealer wins"
	default:
		return "Draw"
	}
}
