package orders

import (
	"time"

	"dispatch-go-Orurh/internal/domain"
)

// Event is a single shop-order event from order management
type Event struct {
	OrderID      string
	ShopID       string
	ShopOrderID  string
	Status       string
	ShopLocation domain.Location
	CreatedAt    time.Time
}
