package room

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"goldenjack/internal/game"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxNameLength bounds a player name after trimming.
const MaxNameLength = 30

// Manager is the concurrency-safe room registry and the turn-advancement
// state machine. One mutex guards the room table and every room mutation;
// all operations are short and synchronous, so a single registry-wide lock
// keeps each call atomic with respect to every other caller. Dealer
// resolution runs inline inside the triggering call, never on a timer.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
	log   *logrus.Logger

	// OnRoundFinished, when set, receives a snapshot of every round that
	// reaches the results phase. It runs on its own goroutine so a slow sink
	// cannot stall gameplay. Set it before serving traffic.
	OnRoundFinished func(RoundRecord)

	// newEngine builds the round engine for a seat count. Tests swap it to
	// stack the deck.
	newEngine func(nPlayers int) (*game.Game, error)
}

// NewManager creates an empty registry. A nil logger falls back to a fresh
// logrus instance.
func NewManager(log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{
		rooms:     make(map[string]*Room),
		log:       log,
		newEngine: game.New,
	}
}

func newPlayerID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func newRoomID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > MaxNameLength {
		return "", ErrNameLength
	}
	return name, nil
}

// CreateRoom allocates a waiting room with the creator seated as host and
// returns the room and host seat identifiers.
func (m *Manager) CreateRoom(playerName string, maxPlayers int) (roomID, playerID string, err error) {
	name, err := validName(playerName)
	if err != nil {
		return "", "", err
	}
	if maxPlayers < game.MinPlayers || maxPlayers > game.MaxPlayers {
		return "", "", ErrMaxPlayers
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	roomID = newRoomID()
	for m.rooms[roomID] != nil { // 6 hex chars can collide
		roomID = newRoomID()
	}
	playerID = newPlayerID()

	r := &Room{
		ID:         roomID,
		HostID:     playerID,
		Seats:      []*Seat{{PlayerID: playerID, Name: name}},
		MaxPlayers: maxPlayers,
		Phase:      PhaseWaiting,
	}
	r.touch(time.Now())
	m.rooms[roomID] = r

	m.log.WithFields(logrus.Fields{
		"room":        roomID,
		"host":        name,
		"max_players": maxPlayers,
	}).Info("room created")
	return roomID, playerID, nil
}

// JoinRoom appends a new seat while the room is still waiting and returns
// the seat's player identifier.
func (m *Manager) JoinRoom(roomID, playerName string) (string, error) {
	name, err := validName(playerName)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return "", ErrRoomNotFound
	}
	if r.Phase != PhaseWaiting {
		return "", ErrAlreadyStarted
	}
	if len(r.Seats) >= r.MaxPlayers {
		return "", ErrRoomFull
	}

	playerID := newPlayerID()
	r.Seats = append(r.Seats, &Seat{PlayerID: playerID, Name: name})
	r.bump()
	r.touch(time.Now())

	m.log.WithFields(logrus.Fields{
		"room":   roomID,
		"player": name,
		"seats":  len(r.Seats),
	}).Info("player joined")
	return playerID, nil
}

// StartRound builds a fresh round engine over the current seats, deals, and
// advances into the first playable turn. Only the host may start, and only
// from the waiting phase. Naturals dealt to players resolve immediately; a
// natural dealt to the dealer skips player turns entirely and finalizes the
// round before this call returns.
func (m *Manager) StartRound(roomID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if r.HostID != playerID {
		return ErrNotHost
	}
	if r.Phase != PhaseWaiting {
		return ErrAlreadyStarted
	}

	eng, err := m.newEngine(len(r.Seats))
	if err != nil {
		return err
	}
	eng.AddPlayers()
	for i, seat := range r.Seats {
		eng.Players[i].Name = seat.Name
	}
	eng.DealInitialCards()

	r.Engine = eng
	r.Phase = PhasePlayerTurns
	r.CurrentTurnIndex = 0
	for _, seat := range r.Seats {
		seat.Stood = false
		seat.Resolved = false
		seat.Result = ""
	}
	r.bump()
	r.touch(time.Now())

	m.resolveInitialNaturals(r)
	if game.IsNatural(eng.Dealer) {
		m.runDealerAndFinalize(r)
		m.log.WithField("room", roomID).Info("round ended on dealer natural")
		return nil
	}
	m.moveToNextPlayable(r)
	if r.Phase == PhaseDealerTurn {
		m.runDealerAndFinalize(r)
	}

	m.log.WithFields(logrus.Fields{
		"room":  roomID,
		"phase": r.Phase,
		"seats": len(r.Seats),
	}).Info("round started")
	return nil
}

// Action applies a hit or stand for the active seat. The literal is trimmed
// and lowercased before matching. If the seat finishes (stood, busted, or at
// the hand limit) the turn advances, and if no playable seat remains the
// dealer resolves and the round finalizes before the call returns.
func (m *Manager) Action(roomID, playerID, action string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if r.Phase != PhasePlayerTurns {
		return ErrNotPlayerTurns
	}

	idx := r.FindSeatIndex(playerID)
	if idx == -1 {
		return ErrNotSeated
	}
	if idx != r.CurrentTurnIndex {
		return ErrNotYourTurn
	}
	seat := r.Seats[idx]
	if seat.Resolved {
		return ErrSeatResolved
	}

	action = strings.ToLower(strings.TrimSpace(action))
	if action != "hit" && action != "stand" {
		return ErrInvalidAction
	}

	player := r.Engine.Players[idx]
	if action == "hit" {
		player.AddCard(r.Engine.DrawCard())
	} else {
		seat.Stood = true
	}
	r.bump()
	r.touch(time.Now())

	if m.seatFinished(r, idx) {
		m.advanceAfter(r, idx)
	}
	if r.Phase == PhaseDealerTurn {
		m.runDealerAndFinalize(r)
	}

	m.log.WithFields(logrus.Fields{
		"room":   roomID,
		"seat":   idx,
		"action": action,
		"score":  player.Score,
		"phase":  r.Phase,
	}).Debug("action applied")
	return nil
}

// seatFinished reports whether a seat can take no further turns this round.
// Lock held.
func (m *Manager) seatFinished(r *Room, idx int) bool {
	seat := r.Seats[idx]
	player := r.Engine.Players[idx]
	return seat.Resolved || seat.Stood || player.Score > 21 || len(player.Hand) >= game.HandLimit
}

// moveToNextPlayable points the turn at the first unfinished seat, or hands
// the round to the dealer when none remain. Lock held.
func (m *Manager) moveToNextPlayable(r *Room) {
	for idx := range r.Seats {
		if !m.seatFinished(r, idx) {
			r.CurrentTurnIndex = idx
			r.Phase = PhasePlayerTurns
			return
		}
	}
	r.Phase = PhaseDealerTurn
}

// advanceAfter moves the turn to the next unfinished seat strictly after
// fromIndex. Seats before the current turn are always finished, so the scan
// in moveToNextPlayable cannot step backwards. Lock held.
func (m *Manager) advanceAfter(r *Room, fromIndex int) {
	for idx := fromIndex + 1; idx < len(r.Seats); idx++ {
		if !m.seatFinished(r, idx) {
			r.CurrentTurnIndex = idx
			return
		}
	}
	m.moveToNextPlayable(r)
}

// resolveInitialNaturals settles every seat dealt a blackjack or golden
// blackjack, independent of turn order. Lock held.
func (m *Manager) resolveInitialNaturals(r *Room) {
	for idx, seat := range r.Seats {
		player := r.Engine.Players[idx]
		if game.IsNatural(player) {
			r.Engine.CheckPlayer(idx)
			seat.Result = player.Result
			seat.Resolved = true
		}
	}
}

// runDealerAndFinalize plays out the dealer, judges every seat, and moves
// the room to results. Runs synchronously inside the triggering call. Lock
// held.
func (m *Manager) runDealerAndFinalize(r *Room) {
	r.Phase = PhaseDealerTurn
	r.Engine.PlayDealer()

	for idx, seat := range r.Seats {
		r.Engine.CheckPlayer(idx)
		seat.Result = r.Engine.Players[idx].Result
		seat.Resolved = true
	}
	r.Phase = PhaseResults
	r.bump()

	rec := RoundRecord{
		RoomID:      r.ID,
		DealerScore: r.Engine.Dealer.Score,
		FinishedAt:  time.Now(),
		Seats:       make([]SeatOutcome, len(r.Seats)),
	}
	for idx, seat := range r.Seats {
		rec.Seats[idx] = SeatOutcome{
			PlayerID: seat.PlayerID,
			Name:     seat.Name,
			Score:    r.Engine.Players[idx].Score,
			Result:   seat.Result,
		}
	}
	if m.OnRoundFinished != nil {
		go m.OnRoundFinished(rec)
	}

	m.log.WithFields(logrus.Fields{
		"room":         r.ID,
		"dealer_score": rec.DealerScore,
	}).Info("round finalized")
}

// RoomCount reports how many rooms are live.
func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// PruneIdle evicts rooms untouched for longer than maxAge and returns how
// many were removed. Eviction policy lives with the caller; the registry
// only executes it.
func (m *Manager) PruneIdle(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, r := range m.rooms {
		if r.lastActive.Before(cutoff) {
			delete(m.rooms, id)
			removed++
			m.log.WithField("room", id).Info("room expired")
		}
	}
	return removed
}
