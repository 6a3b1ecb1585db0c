package handlers

import (
	"time"

	"dispatch-go-Orurh/internal/domain"
)

type locationDTO struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type createJobRequest struct {
	OrderID      string       `json:"order_id"`
	ShopID       string       `json:"shop_id"`
	ShopOrderID  string       `json:"shop_order_id"`
	ShopLocation *locationDTO `json:"shop_location"`
}

type courierActionRequest struct {
	CourierID int64 `json:"courier_id"`
}

type jobResponse struct {
	ID              string           `json:"id"`
	OrderID         string           `json:"order_id"`
	ShopID          string           `json:"shop_id"`
	ShopOrderID     string           `json:"shop_order_id"`
	ShopLocation    domain.Location  `json:"shop_location"`
	Status          domain.JobStatus `json:"status"`
	Round           int              `json:"round"`
	BroadcastSet    []int64          `json:"broadcast_set"`
	AssignedCourier *int64           `json:"assigned_courier,omitempty"`
	AcceptedAt      *time.Time       `json:"accepted_at,omitempty"`
	Deadline        *time.Time       `json:"delivery_deadline,omitempty"`
	NextRoundAt     *time.Time       `json:"next_round_at,omitempty"`
	Version         int64            `json:"version"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type acceptResponse struct {
	Outcome    domain.AcceptOutcome `json:"outcome"`
	JobID      string               `json:"job_id"`
	CourierID  int64                `json:"courier_id"`
	AcceptedAt time.Time            `json:"accepted_at"`
	Deadline   time.Time            `json:"delivery_deadline"`
}

type presenceRequest struct {
	Online        bool                        `json:"online"`
	Lat           *float64                    `json:"lat"`
	Lon           *float64                    `json:"lon"`
	TransportType domain.CourierTransportType `json:"transport_type"`
}

type courierResponse struct {
	ID            int64                       `json:"id"`
	Online        bool                        `json:"online"`
	Location      domain.Location             `json:"location"`
	TransportType domain.CourierTransportType `json:"transport_type"`
	LastSeenAt    time.Time                   `json:"last_seen_at"`
}
