package handlers

import "dispatch-go-Orurh/internal/domain"

func (r createJobRequest) toModel() (domain.NewJob, bool) {
	if r.ShopLocation == nil || r.ShopLocation.Lat == nil || r.ShopLocation.Lon == nil {
		return domain.NewJob{}, false
	}
	return domain.NewJob{
		OrderID:      r.OrderID,
		ShopID:       r.ShopID,
		ShopOrderID:  r.ShopOrderID,
		ShopLocation: domain.Location{Lat: *r.ShopLocation.Lat, Lon: *r.ShopLocation.Lon},
	}, true
}

func (r presenceRequest) toModel(courierID int64) (domain.Presence, bool) {
	if r.Lat == nil || r.Lon == nil {
		return domain.Presence{}, false
	}
	return domain.Presence{
		CourierID:     courierID,
		Online:        r.Online,
		Location:      domain.Location{Lat: *r.Lat, Lon: *r.Lon},
		TransportType: r.TransportType,
	}, true
}

func jobToResponse(j *domain.Job) jobResponse {
	set := j.BroadcastSet
	if set == nil {
		set = []int64{}
	}
	return jobResponse{
		ID:              j.ID,
		OrderID:         j.OrderID,
		ShopID:          j.ShopID,
		ShopOrderID:     j.ShopOrderID,
		ShopLocation:    j.ShopLocation,
		Status:          j.Status,
		Round:           j.Round,
		BroadcastSet:    set,
		AssignedCourier: j.AssignedCourier,
		AcceptedAt:      j.AcceptedAt,
		Deadline:        j.Deadline,
		NextRoundAt:     j.NextRoundAt,
		Version:         j.Version,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func jobsToResponse(list []domain.Job) []jobResponse {
	out := make([]jobResponse, 0, len(list))
	for i := range list {
		out = append(out, jobToResponse(&list[i]))
	}
	return out
}

func courierToResponse(c *domain.Courier) courierResponse {
	return courierResponse{
		ID:            c.ID,
		Online:        c.Online,
		Location:      c.Location,
		TransportType: c.TransportType,
		LastSeenAt:    c.LastSeenAt,
	}
}
