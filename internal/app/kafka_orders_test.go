package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/service/orders"
	"dispatch-go-Orurh/internal/transport/kafka"
)

type spyHandler struct {
	called int
	event  orders.Event
	err    error
}

func (s *spyHandler) Handle(_ context.Context, e orders.Event) error {
	s.called++
	s.event = e
	return s.err
}

func TestMakeOrdersKafka_PassesEventThrough(t *testing.T) {
	t.Parallel()

	spy := &spyHandler{}
	ev := orders.Event{OrderID: "o-1", ShopOrderID: "so-1", Status: "shop_order_ready"}

	require.NoError(t, makeOrdersKafka(spy)(context.Background(), ev))
	require.Equal(t, 1, spy.called)
	require.Equal(t, ev, spy.event)
}

func TestMakeOrdersKafka_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{name: "invalid", err: apperr.ErrInvalid, permanent: true},
		{name: "illegal transition", err: fmt.Errorf("complete: %w", apperr.ErrIllegalTransition), permanent: true},
		{name: "not found", err: apperr.ErrNotFound, permanent: true},
		{name: "cas exhausted", err: apperr.ErrConflict, permanent: false},
		{name: "db down", err: errors.New("connection reset"), permanent: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := makeOrdersKafka(&spyHandler{err: tt.err})(context.Background(), orders.Event{})
			require.ErrorIs(t, err, tt.err)

			var perm kafka.PermanentError
			require.Equal(t, tt.permanent, errors.As(err, &perm))
		})
	}
}
