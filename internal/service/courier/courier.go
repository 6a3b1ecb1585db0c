package courier

import (
	"context"
	"time"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
)

// Service records courier presence pings read by the candidate selector.
type Service struct {
	repo             presenceRepository
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures a courier Service.
func NewService(r presenceRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validatePresence(p *domain.Presence) error {
	if p.CourierID <= 0 {
		return apperr.ErrInvalid
	}
	if !p.Location.Valid() {
		return apperr.ErrInvalid
	}
	if p.TransportType == "" {
		p.TransportType = domain.TransportTypeFoot
	}
	if !p.TransportType.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

// Get retrieves a courier by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

// UpdatePresence stores a ping and stamps it with the server time.
func (s *Service) UpdatePresence(ctx context.Context, p domain.Presence) (*domain.Courier, error) {
	if err := validatePresence(&p); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c := &domain.Courier{
		ID:            p.CourierID,
		Online:        p.Online,
		Location:      p.Location,
		TransportType: p.TransportType,
		LastSeenAt:    s.now(),
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
