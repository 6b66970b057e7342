// cmd/historian/main.go is an asynchronous consumer that pops finished-round
// records from the Redis queue and persists them to PostgreSQL in batches.
// Run it alongside the game server when rounds are published with only the
// queue sink enabled.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"goldenjack/internal/config"
	"goldenjack/internal/history"
	"goldenjack/internal/room"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type consumer struct {
	rdb        *redis.Client
	archive    *history.Archive
	log        *logrus.Logger
	queueName  string
	batchSize  int
	flushDelay time.Duration

	batchMu sync.Mutex
	batch   []room.RoundRecord

	ctx      context.Context
	cancelFn context.CancelFunc
}

func newConsumer(log *logrus.Logger) (*consumer, error) {
	archive, err := history.ConnectArchive(context.Background())
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: config.Getenv("REDIS_ADDR", "localhost:6379"),
		DB:   config.GetenvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &consumer{
		rdb:        rdb,
		archive:    archive,
		log:        log,
		queueName:  config.Getenv("HISTORY_QUEUE_NAME", history.DefaultQueueName),
		batchSize:  config.GetenvInt("HISTORY_BATCH_SIZE", 20),
		flushDelay: time.Duration(config.GetenvInt("HISTORY_FLUSH_MS", 500)) * time.Millisecond,
		ctx:        ctx,
		cancelFn:   cancel,
	}, nil
}

// run reads from the queue until the context ends, flushing the batch on size
// or on the flush timer.
func (c *consumer) run() {
	ticker := time.NewTicker(c.flushDelay)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			c.flush()
			return

		case <-ticker.C:
			c.flush()

		default:
			// BLPop with a short timeout so shutdown is noticed promptly.
			res, err := c.rdb.BLPop(c.ctx, 3*time.Second, c.queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || c.ctx.Err() != nil {
					continue
				}
				c.log.WithError(err).Error("BLPop failed")
				continue
			}
			if len(res) < 2 {
				continue
			}

			var rec room.RoundRecord
			if err := json.Unmarshal([]byte(res[1]), &rec); err != nil {
				c.log.WithError(err).Warn("invalid round record")
				continue
			}
			c.append(rec)
		}
	}
}

func (c *consumer) append(rec room.RoundRecord) {
	c.batchMu.Lock()
	defer c.batchMu.Unlock()
	c.batch = append(c.batch, rec)
	if len(c.batch) >= c.batchSize {
		c.flushLocked()
	}
}

func (c *consumer) flush() {
	c.batchMu.Lock()
	defer c.batchMu.Unlock()
	c.flushLocked()
}

func (c *consumer) flushLocked() {
	if len(c.batch) == 0 {
		return
	}
	recs := make([]room.RoundRecord, len(c.batch))
	copy(recs, c.batch)
	c.batch = c.batch[:0]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := c.archive.SaveBatch(ctx, recs); err != nil {
		c.log.WithError(err).Error("batch flush failed")
		return
	}
	c.log.WithField("rounds", len(recs)).Info("flushed rounds to archive")
}

func (c *consumer) stop() {
	c.cancelFn()
	c.archive.Close()
	c.rdb.Close()
}

func main() {
	log := logrus.New()
	if level, err := logrus.ParseLevel(config.Getenv("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}

	c, err := newConsumer(log)
	if err != nil {
		log.Fatalf("historian init failed: %v", err)
	}
	go c.run()
	log.Infof("historian consuming queue %q", c.queueName)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	c.stop()
	log.Info("historian shutdown complete")
}
