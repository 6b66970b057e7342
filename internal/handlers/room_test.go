package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goldenjack/internal/room"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux() *http.ServeMux {
	log := logrus.New()
	log.SetOutput(io.Discard)
	srv := NewRoomServer(room.NewManager(log), log, []string{"*"})
	mux := http.NewServeMux()
	srv.Register(mux)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateRoom(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, "POST", "/rooms", `{"player_name":"Alice","max_players":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Len(t, out["room_id"], 6)
	assert.Len(t, out["player_id"], 12)

	rec = do(t, mux, "POST", "/rooms", `{"player_name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "player name must be 1 to 30 characters", decode(t, rec)["detail"])

	rec = do(t, mux, "POST", "/rooms", `{"player_name":"Alice","max_players":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, "POST", "/rooms", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJoinRoom(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, "POST", "/rooms/ZZZZZZ/join", `{"player_name":"Bob"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "room not found", decode(t, rec)["detail"])

	out := decode(t, do(t, mux, "POST", "/rooms", `{"player_name":"Alice","max_players":2}`))
	roomID := out["room_id"].(string)

	rec = do(t, mux, "POST", "/rooms/"+roomID+"/join", `{"player_name":"Bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	joined := decode(t, rec)
	assert.Equal(t, roomID, joined["room_id"])
	assert.Len(t, joined["player_id"], 12)

	rec = do(t, mux, "POST", "/rooms/"+roomID+"/join", `{"player_name":"Carol"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "room is full", decode(t, rec)["detail"])
}

func TestStartRound(t *testing.T) {
	mux := newTestMux()

	out := decode(t, do(t, mux, "POST", "/rooms", `{"player_name":"Alice","max_players":2}`))
	roomID := out["room_id"].(string)
	hostID := out["player_id"].(string)

	bob := decode(t, do(t, mux, "POST", "/rooms/"+roomID+"/join", `{"player_name":"Bob"}`))
	bobID := bob["player_id"].(string)

	rec := do(t, mux, "POST", "/rooms/"+roomID+"/start", `{"player_id":"`+bobID+`"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, mux, "POST", "/rooms/"+roomID+"/start", `{"player_id":"`+hostID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode(t, rec)
	assert.Contains(t, []string{"player_turns", "results"}, st["phase"])
	players := st["players"].([]interface{})
	require.Len(t, players, 2)
	first := players[0].(map[string]interface{})
	assert.Len(t, first["cards"], 2)

	rec = do(t, mux, "POST", "/rooms/"+roomID+"/start", `{"player_id":"`+hostID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, "POST", "/rooms/"+roomID+"/join", `{"player_name":"Late"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "game already started", decode(t, rec)["detail"])
}

func TestActionFlow(t *testing.T) {
	mux := newTestMux()

	out := decode(t, do(t, mux, "POST", "/rooms", `{"player_name":"Alice","max_players":1}`))
	roomID := out["room_id"].(string)
	hostID := out["player_id"].(string)

	rec := do(t, mux, "POST", "/rooms/"+roomID+"/action", `{"player_id":"`+hostID+`","action":"hit"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "not in player turns", decode(t, rec)["detail"])

	st := decode(t, do(t, mux, "POST", "/rooms/"+roomID+"/start", `{"player_id":"`+hostID+`"}`))
	if st["phase"] == "results" {
		t.Skip("dealt a natural; no turn to play")
	}

	rec = do(t, mux, "POST", "/rooms/"+roomID+"/action", `{"player_id":"nobody","action":"hit"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, mux, "POST", "/rooms/"+roomID+"/action", `{"player_id":"`+hostID+`","action":"double"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "action must be hit or stand", decode(t, rec)["detail"])

	rec = do(t, mux, "POST", "/rooms/"+roomID+"/action", `{"player_id":"`+hostID+`","action":"stand"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	st = decode(t, rec)
	assert.Equal(t, "results", st["phase"])
	results := st["results"].([]interface{})
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].(map[string]interface{})["result"])
	dealer := st["dealer"].(map[string]interface{})
	assert.NotEqual(t, "?", dealer["score"])
}

func TestStateProjectionOverHTTP(t *testing.T) {
	mux := newTestMux()

	out := decode(t, do(t, mux, "POST", "/rooms", `{"player_name":"Alice","max_players":2}`))
	roomID := out["room_id"].(string)
	hostID := out["player_id"].(string)

	rec := do(t, mux, "GET", "/rooms/ZZZZZZ/state", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Spectator: no seat index, no start button.
	st := decode(t, do(t, mux, "GET", "/rooms/"+roomID+"/state", ""))
	assert.Equal(t, "waiting", st["phase"])
	assert.Nil(t, st["your_player_index"])
	assert.Equal(t, false, st["can_start"])

	st = decode(t, do(t, mux, "GET", "/rooms/"+roomID+"/state?player_id="+hostID, ""))
	assert.Equal(t, float64(0), st["your_player_index"])
	assert.Equal(t, true, st["can_start"])
}

func TestHealth(t *testing.T) {
	mux := newTestMux()
	rec := do(t, mux, "GET", "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, float64(0), out["rooms"])
}
