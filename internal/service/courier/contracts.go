package courier

import (
	"context"

	"dispatch-go-Orurh/internal/domain"
)

// presenceRepository stores the latest known state of each courier.
type presenceRepository interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	Upsert(ctx context.Context, c *domain.Courier) error
}
