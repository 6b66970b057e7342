package deck

import (
	"math/rand"
	"time"
)

// Deck owns a mutable sequence of cards. A fresh deck holds all 52 cards in a
// uniformly random order; Draw pops from the end and transparently replaces
// the deck with a freshly shuffled one when it runs out.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a shuffled 52-card deck.
func New() *Deck {
	d := &Deck{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	d.cards = d.freshCards()
	return d
}

// NewStacked creates a deck holding exactly the given cards, in order.
// Draw returns the last card first. Intended for deterministic setups.
func NewStacked(cards ...Card) *Deck {
	d := &Deck{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cards: make([]Card, len(cards)),
	}
	copy(d.cards, cards)
	return d
}

func (d *Deck) freshCards() []Card {
	cards := make([]Card, 0, 52)
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// Draw removes and returns the last card. If the deck is empty it is first
// replaced with a freshly shuffled 52-card deck, so Draw always succeeds.
// Callers that track dealt cards must tolerate duplicates across that
// reshuffle boundary.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.cards = d.freshCards()
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

// Remaining reports how many cards are left before the next reshuffle.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
