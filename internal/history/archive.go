package history

import (
	"context"
	"fmt"
	"os"
	"time"

	"goldenjack/internal/config"
	"goldenjack/internal/room"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Archive persists finished rounds to Postgres: one row per round and one per
// seat outcome.
type Archive struct {
	pool *pgxpool.Pool
}

// ConnectArchive builds an Archive from the POSTGRES_USER, POSTGRES_PASSWORD,
// PG_HOST, PG_PORT and PG_DATABASE environment variables.
func ConnectArchive(ctx context.Context) (*Archive, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("PG_HOST"),
		config.Getenv("PG_PORT", "5432"),
		os.Getenv("PG_DATABASE"),
	)

	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return &Archive{pool: pool}, nil
}

// Save writes the round and its seat outcomes in one transaction.
func (a *Archive) Save(ctx context.Context, rec room.RoundRecord) error {
	return a.SaveBatch(ctx, []room.RoundRecord{rec})
}

// SaveBatch writes several rounds in a single transaction. Used by the
// historian consumer, which flushes queued records in batches.
func (a *Archive) SaveBatch(ctx context.Context, recs []room.RoundRecord) error {
	err := pgx.BeginTxFunc(ctx, a.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range recs {
			var roundID int64
			insRound := `
				INSERT INTO rounds (room_id, dealer_score, finished_at)
				VALUES ($1, $2, $3)
				RETURNING id
			`
			if e := tx.QueryRow(ctx, insRound, rec.RoomID, rec.DealerScore, rec.FinishedAt).Scan(&roundID); e != nil {
				return e
			}
			insSeat := `
				INSERT INTO round_results (round_id, player_id, name, score, result)
				VALUES ($1, $2, $3, $4, $5)
			`
			for _, seat := range rec.Seats {
				if _, e := tx.Exec(ctx, insSeat, roundID, seat.PlayerID, seat.Name, seat.Score, seat.Result); e != nil {
					return e
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx insert round batch: %w", err)
	}
	return nil
}

// Close releases the pool.
func (a *Archive) Close() {
	a.pool.Close()
}
