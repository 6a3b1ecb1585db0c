package dispatch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dispatch-go-Orurh/internal/domain"
	"dispatch-go-Orurh/internal/repository/memory"
	"dispatch-go-Orurh/internal/service/dispatch"
	testlog "dispatch-go-Orurh/internal/testutil"
)

var shop = domain.Location{Lat: 55.7558, Lon: 37.6173}

// near returns a point roughly km kilometres north of the shop.
func near(km float64) domain.Location {
	return domain.Location{Lat: shop.Lat + km/111.2, Lon: shop.Lon}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

// recipients returns couriers that got an event of type t, in publish order.
func (p *recordingPublisher) recipients(t domain.EventType) []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []int64
	for _, ev := range p.events {
		if ev.Type == t {
			out = append(out, ev.CourierID)
		}
	}
	return out
}

func (p *recordingPublisher) count(t domain.EventType) int {
	return len(p.recipients(t))
}

type fixture struct {
	jobs     *memory.JobStore
	couriers *memory.CourierStore
	pub      *recordingPublisher
	clock    *fakeClock
	log      *testlog.Recorder
	svc      *dispatch.Service
}

func newFixture(t *testing.T, opts dispatch.Options) *fixture {
	t.Helper()

	f := &fixture{
		jobs:     memory.NewJobStore(),
		couriers: memory.NewCourierStore(),
		pub:      &recordingPublisher{},
		clock:    newFakeClock(),
		log:      testlog.New(),
	}
	f.svc = dispatch.NewService(dispatch.Deps{
		Jobs:      f.jobs,
		Couriers:  f.couriers,
		Publisher: f.pub,
		Logger:    f.log.Logger(),
		Clock:     f.clock.Now,
	}, opts)
	return f
}

func (f *fixture) addCourier(t *testing.T, id int64, loc domain.Location, transport domain.CourierTransportType) {
	t.Helper()
	require.NoError(t, f.couriers.Upsert(context.Background(), &domain.Courier{
		ID:            id,
		Online:        true,
		Location:      loc,
		TransportType: transport,
		LastSeenAt:    f.clock.Now(),
	}))
}

func newJob(orderID string) domain.NewJob {
	return domain.NewJob{
		OrderID:      orderID,
		ShopID:       "shop-1",
		ShopOrderID:  orderID + "-s1",
		ShopLocation: shop,
	}
}
