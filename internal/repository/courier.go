package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dispatch-go-Orurh/internal/domain"
)

// CourierRepo stores courier presence.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// Get - returns courier by its ID.
func (r *CourierRepo) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, online, lat, lon, transport_type, last_seen_at FROM couriers WHERE id=$1`, id)
	c, err := scanCourier(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %d: %w", id, err)
	}
	return c, nil
}

// Upsert stores a presence ping. Pings older than the stored one are ignored.
func (r *CourierRepo) Upsert(ctx context.Context, c *domain.Courier) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO couriers (id, online, lat, lon, transport_type, last_seen_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			online         = EXCLUDED.online,
			lat            = EXCLUDED.lat,
			lon            = EXCLUDED.lon,
			transport_type = EXCLUDED.transport_type,
			last_seen_at   = EXCLUDED.last_seen_at
		WHERE couriers.last_seen_at <= EXCLUDED.last_seen_at`,
		c.ID, c.Online, c.Location.Lat, c.Location.Lon, c.TransportType, c.LastSeenAt,
	)
	if err != nil {
		return fmt.Errorf("upsert courier %d: %w", c.ID, err)
	}
	return nil
}

// ListOnlineWithin returns online couriers inside box seen after seenAfter,
// ordered by id.
func (r *CourierRepo) ListOnlineWithin(ctx context.Context, box domain.BoundingBox, seenAfter time.Time) ([]domain.Courier, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, online, lat, lon, transport_type, last_seen_at
		FROM couriers
		WHERE online
		  AND last_seen_at >= $1
		  AND lat BETWEEN $2 AND $3
		  AND lon BETWEEN $4 AND $5
		ORDER BY id`,
		seenAfter, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon,
	)
	if err != nil {
		return nil, fmt.Errorf("list online couriers: %w", err)
	}
	defer rows.Close()

	var out []domain.Courier
	for rows.Next() {
		c, err := scanCourier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCourier(row pgx.Row) (*domain.Courier, error) {
	var c domain.Courier
	if err := row.Scan(&c.ID, &c.Online, &c.Location.Lat, &c.Location.Lon, &c.TransportType, &c.LastSeenAt); err != nil {
		return nil, err
	}
	c.LastSeenAt = c.LastSeenAt.UTC()
	return &c, nil
}
