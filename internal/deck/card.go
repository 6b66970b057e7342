package deck

import "fmt"

// Suit represents a card suit.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the display name of the suit.
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return "?"
	}
}

// Rank represents a card rank.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank symbol: "2".."10", "J", "Q", "K", "A".
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Value returns the scoring value of the rank. Face cards count 10.
// Aces are not scored here; their value depends on the rest of the hand,
// so callers count them separately.
func (r Rank) Value() int {
	switch {
	case r >= Jack && r <= King:
		return 10
	default:
		return int(r)
	}
}

// Card is an immutable (suit, rank) value.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a card with the given suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns e.g. "A of Hearts".
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// assetNames maps ranks whose asset files are named by word rather than symbol.
var assetNames = map[Rank]string{
	Ace:   "ace",
	Jack:  "jack",
	Queen: "queen",
	King:  "king",
}

// AssetName returns the image filename for the card, e.g. "ace_of_hearts.png"
// or "10_of_spades.png". Resolving the file itself is up to the caller.
func (c Card) AssetName() string {
	rankName, ok := assetNames[c.Rank]
	if !ok {
		rankName = c.Rank.String()
	}
	var suitName string
	switch c.Suit {
	case Hearts:
		suitName = "hearts"
	case Diamonds:
		suitName = "diamonds"
	case Clubs:
		suitName = "clubs"
	default:
		suitName = "spades"
	}
	return fmt.Sprintf("%s_of_%s.png", rankName, suitName)
}
