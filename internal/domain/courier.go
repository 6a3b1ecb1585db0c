package domain

import "time"

// CourierTransportType represents the transport type of a courier.
type CourierTransportType string

// Courier is the availability snapshot of a delivery courier as reported by
// the courier app. Dispatch only reads it.
type Courier struct {
	ID            int64
	Online        bool
	Location      Location
	TransportType CourierTransportType
	LastSeenAt    time.Time
}

// Presence carries a location ping from a courier client.
type Presence struct {
	CourierID     int64
	Online        bool
	Location      Location
	TransportType CourierTransportType
}

// Candidate is a courier eligible for an offer, with its distance to the shop.
type Candidate struct {
	CourierID     int64
	TransportType CourierTransportType
	DistanceKm    float64
}
