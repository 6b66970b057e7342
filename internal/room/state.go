package room

import (
	"strconv"
	"time"

	"goldenjack/internal/deck"
)

// CardView is a card as shown to a viewer. Hidden cards carry no identity.
type CardView struct {
	Hidden   bool   `json:"hidden"`
	Rank     string `json:"rank,omitempty"`
	Suit     string `json:"suit,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// SeatView is one seat's public projection. Score is "?" while the seat's
// cards are hidden and empty before any round has been dealt.
type SeatView struct {
	Name     string     `json:"name"`
	Score    string     `json:"score,omitempty"`
	Cards    []CardView `json:"cards"`
	Stood    bool       `json:"stood"`
	Resolved bool       `json:"resolved"`
	Result   string     `json:"result,omitempty"`
}

// DealerView mirrors SeatView for the dealer's hand.
type DealerView struct {
	Score string     `json:"score,omitempty"`
	Cards []CardView `json:"cards"`
}

// ResultEntry is one line of the final results list.
type ResultEntry struct {
	Name   string `json:"name"`
	Result string `json:"result"`
}

// State is the read-only projection of a room for one viewer. Two calls with
// no intervening action yield identical states.
type State struct {
	RoomID           string        `json:"room_id"`
	Phase            Phase         `json:"phase"`
	CurrentTurnIndex int           `json:"current_player_index"`
	YourIndex        *int          `json:"your_player_index"`
	Players          []SeatView    `json:"players"`
	Dealer           DealerView    `json:"dealer"`
	CanStart         bool          `json:"can_start"`
	CanAct           bool          `json:"can_act"`
	Results          []ResultEntry `json:"results"`

	// Version identifies the room revision this state was built from. State
	// streams push a new snapshot when it changes.
	Version uint64 `json:"-"`
}

func viewCard(c deck.Card, hidden bool) CardView {
	if hidden {
		return CardView{Hidden: true}
	}
	return CardView{
		Rank:     c.Rank.String(),
		Suit:     c.Suit.String(),
		ImageURL: "/assets/" + c.AssetName(),
	}
}

// GetState builds the viewer-specific projection of a room. While a seat's
// cards are hidden (another seat's unresolved hand during player turns, or
// the dealer's hand before the dealer plays) their score reads "?".
func (m *Manager) GetState(roomID, viewerID string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	r.touch(time.Now())

	var yourIndex *int
	if viewerID != "" {
		if idx := r.FindSeatIndex(viewerID); idx != -1 {
			yourIndex = &idx
		}
	}

	st := &State{
		RoomID:           r.ID,
		Phase:            r.Phase,
		CurrentTurnIndex: r.CurrentTurnIndex,
		YourIndex:        yourIndex,
		Results:          []ResultEntry{},
		Version:          r.version,
	}

	if r.Phase == PhaseWaiting {
		for _, seat := range r.Seats {
			st.Players = append(st.Players, SeatView{
				Name:  seat.Name,
				Cards: []CardView{},
			})
		}
		st.Dealer = DealerView{Cards: []CardView{}}
		st.CanStart = viewerID == r.HostID
		return st, nil
	}

	for idx, seat := range r.Seats {
		player := r.Engine.Players[idx]
		hide := r.Phase == PhasePlayerTurns && idx != r.CurrentTurnIndex && !seat.Resolved

		cards := make([]CardView, len(player.Hand))
		for i, c := range player.Hand {
			cards[i] = viewCard(c, hide)
		}
		score := "?"
		if !hide {
			score = strconv.Itoa(player.Score)
		}
		st.Players = append(st.Players, SeatView{
			Name:     seat.Name,
			Score:    score,
			Cards:    cards,
			Stood:    seat.Stood,
			Resolved: seat.Resolved,
			Result:   seat.Result,
		})
	}

	hideDealer := r.Phase == PhasePlayerTurns
	dealer := r.Engine.Dealer
	dealerCards := make([]CardView, len(dealer.Hand))
	for i, c := range dealer.Hand {
		dealerCards[i] = viewCard(c, hideDealer)
	}
	dealerScore := "?"
	if !hideDealer {
		dealerScore = strconv.Itoa(dealer.Score)
	}
	st.Dealer = DealerView{Score: dealerScore, Cards: dealerCards}

	if yourIndex != nil {
		st.CanAct = *yourIndex == r.CurrentTurnIndex && r.Phase == PhasePlayerTurns
	}

	if r.Phase == PhaseResults {
		for _, seat := range r.Seats {
			st.Results = append(st.Results, ResultEntry{Name: seat.Name, Result: seat.Result})
		}
	}
	return st, nil
}
