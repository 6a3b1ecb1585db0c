package kafka

import (
	"strings"
	"time"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/service/orders"
)

// EventDTO is the wire form of a shop-order event
type EventDTO struct {
	OrderID     string    `json:"order_id"`
	ShopID      string    `json:"shop_id"`
	ShopOrderID string    `json:"shop_order_id"`
	Status      string    `json:"status"`
	ShopLat     float64   `json:"shop_lat"`
	ShopLon     float64   `json:"shop_lon"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:      strings.TrimSpace(dto.OrderID),
		ShopID:       strings.TrimSpace(dto.ShopID),
		ShopOrderID:  strings.TrimSpace(dto.ShopOrderID),
		Status:       strings.TrimSpace(dto.Status),
		ShopLocation: domain.Location{Lat: dto.ShopLat, Lon: dto.ShopLon},
		CreatedAt:    dto.CreatedAt,
	}
}
