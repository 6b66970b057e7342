package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"goldenjack/internal/config"
	"goldenjack/internal/room"

	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list finished rounds are pushed onto.
var DefaultQueueName = "goldenjack_rounds"

// Queue publishes finished-round records to a Redis list for downstream
// consumers.
type Queue struct {
	rdb  *redis.Client
	name string
}

// ConnectQueue builds a Queue from environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
//   - HISTORY_QUEUE_NAME (optional)
func ConnectQueue(ctx context.Context) (*Queue, error) {
	addr := config.Getenv("REDIS_ADDR", "localhost:6379")
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   config.GetenvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Queue{
		rdb:  rdb,
		name: config.Getenv("HISTORY_QUEUE_NAME", DefaultQueueName),
	}, nil
}

// Publish serializes the record to JSON and pushes it onto the queue.
func (q *Queue) Publish(ctx context.Context, rec room.RoundRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal round record: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.name, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", q.name, err)
	}
	return nil
}

// Close releases the underlying client.
func (q *Queue) Close() error {
	return q.rdb.Close()
}
