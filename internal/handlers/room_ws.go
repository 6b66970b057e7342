package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"goldenjack/internal/middleware"

	"github.com/coder/websocket"
)

// statePollInterval is how often the stream checks the room for a new
// revision. Pushes only happen when the version changes.
const statePollInterval = 250 * time.Millisecond

// RoomWSHandler streams the viewer's room projection over a WebSocket. A
// snapshot is pushed on connect and again whenever the room's version counter
// moves. The stream is read-only; client frames are drained and ignored.
func (s *RoomServer) RoomWSHandler(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("room_id")
	viewerID := r.URL.Query().Get("player_id")

	if _, err := s.Manager.GetState(roomID, viewerID); err != nil {
		writeError(w, err)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.Origins,
	})
	if err != nil {
		s.Log.Warnf("websocket accept error: %v", err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "handler finished")
	middleware.LogWebSocketConnect(s.Log, r.RemoteAddr, r.URL.Path)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		for {
			if _, _, err := c.Read(ctx); err != nil {
				cancel()
				return
			}
		}
	}()

	var last uint64
	push := func() error {
		st, err := s.Manager.GetState(roomID, viewerID)
		if err != nil {
			c.Close(websocket.StatusGoingAway, "room expired")
			return err
		}
		if st.Version == last {
			return nil
		}
		data, err := json.Marshal(st)
		if err != nil {
			return err
		}
		wctx, wcancel := context.WithTimeout(ctx, 5*time.Second)
		defer wcancel()
		if err := c.Write(wctx, websocket.MessageText, data); err != nil {
			return err
		}
		last = st.Version
		return nil
	}

	// last starts at zero and live versions start at zero too, so force the
	// initial snapshot out before polling.
	if st, err := s.Manager.GetState(roomID, viewerID); err == nil {
		if data, merr := json.Marshal(st); merr == nil {
			if werr := c.Write(ctx, websocket.MessageText, data); werr != nil {
				middleware.LogWebSocketDisconnect(s.Log, r.RemoteAddr, r.URL.Path, werr)
				return
			}
			last = st.Version
		}
	}

	ticker := time.NewTicker(statePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			middleware.LogWebSocketDisconnect(s.Log, r.RemoteAddr, r.URL.Path, nil)
			return
		case <-ticker.C:
			if err := push(); err != nil {
				middleware.LogWebSocketDisconnect(s.Log, r.RemoteAddr, r.URL.Path, err)
				return
			}
		}
	}
}
