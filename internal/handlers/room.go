// Package handlers exposes the room lifecycle over HTTP: create, join, start,
// act, and read state, plus a WebSocket state stream.
package handlers

import (
	"encoding/json"
	"net/http"

	"goldenjack/internal/game"
	"goldenjack/internal/room"

	"github.com/sirupsen/logrus"
)

// RoomServer binds the room manager to the HTTP surface.
type RoomServer struct {
	Manager *room.Manager
	Log     *logrus.Logger

	// Origins is the accepted WebSocket origin list; "*" allows any.
	Origins []string
}

// NewRoomServer wires a server over an existing manager.
func NewRoomServer(m *room.Manager, log *logrus.Logger, origins []string) *RoomServer {
	return &RoomServer{Manager: m, Log: log, Origins: origins}
}

type createRoomRequest struct {
	PlayerName string `json:"player_name"`
	MaxPlayers int    `json:"max_players"`
}

type joinRoomRequest struct {
	PlayerName string `json:"player_name"`
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

type actionRequest struct {
	PlayerID string `json:"player_id"`
	Action   string `json:"action"`
}

// CreateRoomHandler allocates a room with the caller seated as host.
// An omitted max_players defaults to the table limit.
func (s *RoomServer) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}
	if req.MaxPlayers == 0 {
		req.MaxPlayers = game.MaxPlayers
	}

	roomID, playerID, err := s.Manager.CreateRoom(req.PlayerName, req.MaxPlayers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"room_id":   roomID,
		"player_id": playerID,
	})
}

// JoinRoomHandler seats a new player in a waiting room.
func (s *RoomServer) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}

	roomID := r.PathValue("room_id")
	playerID, err := s.Manager.JoinRoom(roomID, req.PlayerName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"room_id":   roomID,
		"player_id": playerID,
	})
}

// StartRoundHandler deals a round on behalf of the host and returns the
// caller's view of the result.
func (s *RoomServer) StartRoundHandler(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}

	roomID := r.PathValue("room_id")
	if err := s.Manager.StartRound(roomID, req.PlayerID); err != nil {
		writeError(w, err)
		return
	}
	st, err := s.Manager.GetState(roomID, req.PlayerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ActionHandler applies a hit or stand for the caller and returns their
// refreshed view.
func (s *RoomServer) ActionHandler(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}

	roomID := r.PathValue("room_id")
	if err := s.Manager.Action(roomID, req.PlayerID, req.Action); err != nil {
		writeError(w, err)
		return
	}
	st, err := s.Manager.GetState(roomID, req.PlayerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// StateHandler returns the viewer-specific room projection. The viewer is
// identified by the player_id query parameter; spectators omit it.
func (s *RoomServer) StateHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.Manager.GetState(r.PathValue("room_id"), r.URL.Query().Get("player_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HealthHandler reports liveness and the live room count.
func (s *RoomServer) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"rooms":  s.Manager.RoomCount(),
	})
}

// Register attaches every route to the mux.
func (s *RoomServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /rooms", s.CreateRoomHandler)
	mux.HandleFunc("POST /rooms/{room_id}/join", s.JoinRoomHandler)
	mux.HandleFunc("POST /rooms/{room_id}/start", s.StartRoundHandler)
	mux.HandleFunc("POST /rooms/{room_id}/action", s.ActionHandler)
	mux.HandleFunc("GET /rooms/{room_id}/state", s.StateHandler)
	mux.HandleFunc("GET /rooms/{room_id}/ws", s.RoomWSHandler)
	mux.HandleFunc("GET /health", s.HealthHandler)
}
