package domain

import "time"

// EventType names a dispatch event published to downstream consumers.
type EventType string

// Dispatch events. offer.* go to couriers, job.* to order management.
const (
	EventOfferCreated   EventType = "offer.created"
	EventOfferWithdrawn EventType = "offer.withdrawn"
	EventJobAssigned    EventType = "job.assigned"
	EventJobReopened    EventType = "job.reopened"
	EventJobExpired     EventType = "job.expired"
	EventJobCancelled   EventType = "job.cancelled"
	EventJobCompleted   EventType = "job.completed"
)

// Event is a dispatch notification. CourierID is zero for job-level events
// that have no single courier recipient.
type Event struct {
	Type        EventType `json:"type"`
	JobID       string    `json:"job_id"`
	OrderID     string    `json:"order_id"`
	ShopID      string    `json:"shop_id"`
	ShopOrderID string    `json:"shop_order_id"`
	CourierID   int64     `json:"courier_id,omitempty"`
	Round       int       `json:"round,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewEvent builds an event for job with the given type.
func NewEvent(t EventType, j *Job, courierID int64, at time.Time) Event {
	return Event{
		Type:        t,
		JobID:       j.ID,
		OrderID:     j.OrderID,
		ShopID:      j.ShopID,
		ShopOrderID: j.ShopOrderID,
		CourierID:   courierID,
		Round:       j.Round,
		OccurredAt:  at,
	}
}
