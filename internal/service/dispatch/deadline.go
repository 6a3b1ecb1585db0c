package dispatch

import (
	"fmt"
	"time"

	"dispatch-go-Orurh/internal/domain"
)

type defaultTimeFactory struct {
	foot, scooter, car time.Duration
}

// NewTimeFactory returns the transport-based deadline policy: slower
// transport gets a longer window.
func NewTimeFactory() TimeFactory {
	return defaultTimeFactory{
		foot:    30 * time.Minute,
		scooter: 15 * time.Minute,
		car:     5 * time.Minute,
	}
}

// Deadline returns acceptedAt shifted by the window of the courier's transport.
func (f defaultTimeFactory) Deadline(transport domain.CourierTransportType, acceptedAt time.Time) (time.Time, error) {
	switch transport {
	case domain.TransportTypeFoot:
		return acceptedAt.Add(f.foot), nil
	case domain.TransportTypeScooter:
		return acceptedAt.Add(f.scooter), nil
	case domain.TransportTypeCar:
		return acceptedAt.Add(f.car), nil
	default:
		return time.Time{}, fmt.Errorf("unknown transport type: %q", transport)
	}
}
