package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"goldenjack/internal/room"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a room error onto its HTTP status and emits a JSON body
// with a "detail" field.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"detail": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrNotHost), errors.Is(err, room.ErrNotSeated):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
