// Package history fans finished rounds out to optional sinks: a Redis queue
// for live consumers and a Postgres archive. Gameplay never depends on either;
// a historian with no sinks swallows records.
package history

import (
	"context"
	"os"
	"time"

	"goldenjack/internal/room"

	"github.com/sirupsen/logrus"
)

// Historian receives finished-round records and forwards them to whichever
// sinks are connected. Its Record method fits the room manager's
// OnRoundFinished callback.
type Historian struct {
	log     *logrus.Logger
	queue   *Queue
	archive *Archive
}

// FromEnv connects the sinks whose environment variables are present:
// REDIS_ADDR enables the queue, PG_HOST enables the archive. A sink that is
// configured but unreachable is a startup error.
func FromEnv(ctx context.Context, log *logrus.Logger) (*Historian, error) {
	h := &Historian{log: log}

	if os.Getenv("REDIS_ADDR") != "" {
		q, err := ConnectQueue(ctx)
		if err != nil {
			return nil, err
		}
		h.queue = q
		log.Info("round history queue connected")
	}
	if os.Getenv("PG_HOST") != "" {
		a, err := ConnectArchive(ctx)
		if err != nil {
			return nil, err
		}
		h.archive = a
		log.Info("round history archive connected")
	}
	return h, nil
}

// Record forwards one finished round to every connected sink. Sink failures
// are logged, never surfaced to gameplay.
func (h *Historian) Record(rec room.RoundRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if h.queue != nil {
		if err := h.queue.Publish(ctx, rec); err != nil {
			h.log.WithField("room", rec.RoomID).WithError(err).Warn("queue publish failed")
		}
	}
	if h.archive != nil {
		if err := h.archive.Save(ctx, rec); err != nil {
			h.log.WithField("room", rec.RoomID).WithError(err).Warn("archive save failed")
		}
	}
}

// Close releases every connected sink.
func (h *Historian) Close() {
	if h.queue != nil {
		h.queue.Close()
	}
	if h.archive != nil {
		h.archive.Close()
	}
}
