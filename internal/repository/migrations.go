package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS couriers (
		id             BIGINT PRIMARY KEY,
		online         BOOLEAN NOT NULL DEFAULT false,
		lat            DOUBLE PRECISION NOT NULL,
		lon            DOUBLE PRECISION NOT NULL,
		transport_type TEXT NOT NULL,
		last_seen_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS couriers_online_geo_idx ON couriers (lat, lon) WHERE online`,

	`CREATE TABLE IF NOT EXISTS dispatch_jobs (
		id               TEXT PRIMARY KEY,
		order_id         TEXT NOT NULL,
		shop_id          TEXT NOT NULL,
		shop_order_id    TEXT NOT NULL,
		shop_lat         DOUBLE PRECISION NOT NULL,
		shop_lon         DOUBLE PRECISION NOT NULL,
		status           TEXT NOT NULL,
		assigned_courier BIGINT,
		accepted_at      TIMESTAMPTZ,
		deadline         TIMESTAMPTZ,
		round            INT NOT NULL DEFAULT 0,
		next_round_at    TIMESTAMPTZ,
		version          BIGINT NOT NULL DEFAULT 1,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL,
		declined         BIGINT[] NOT NULL DEFAULT '{}',
		CONSTRAINT dispatch_jobs_courier_chk CHECK (
			(assigned_courier IS NOT NULL) = (status IN ('assigned', 'completed'))
		)
	)`,
	// one live job per shop-portion; terminal jobs may repeat the pair
	`CREATE UNIQUE INDEX IF NOT EXISTS dispatch_jobs_active_uniq
		ON dispatch_jobs (order_id, shop_order_id)
		WHERE status IN ('broadcasting', 'assigned')`,
	`CREATE INDEX IF NOT EXISTS dispatch_jobs_courier_idx ON dispatch_jobs (assigned_courier, status)`,
	`CREATE INDEX IF NOT EXISTS dispatch_jobs_due_idx ON dispatch_jobs (status, next_round_at)`,

	`CREATE TABLE IF NOT EXISTS dispatch_offers (
		job_id     TEXT NOT NULL REFERENCES dispatch_jobs(id) ON DELETE CASCADE,
		courier_id BIGINT NOT NULL,
		seq        BIGSERIAL,
		offered_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (job_id, courier_id)
	)`,
}

// Migrate creates the dispatch schema if it does not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	return withTx(ctx, db, func(tx pgx.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration step %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// withTx runs fn in a transaction, rolling back on error or panic.
func withTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
