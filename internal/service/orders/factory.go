package orders

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byStatus map[string]actionFunc
}

func newActionFactory(onReady, onCancelled, onDelivered actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[string]actionFunc{
			"shop_order_ready": onReady,
			// старые статусы из order-service, пока он шлет оба варианта
			"ready":                onReady,
			"shop_order_cancelled": onCancelled,
			"canceled":             onCancelled,
			"cancelled":            onCancelled,
			"shop_order_delivered": onDelivered,
			"delivered":            onDelivered,
		},
	}
}

func (f *actionFactory) get(status string) (actionFunc, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	fn, ok := f.byStatus[status]
	return fn, ok
}
