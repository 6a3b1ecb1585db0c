package domain

import "math"

const earthRadiusKm = 6371.0

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinates are inside the WGS84 ranges.
func (l Location) Valid() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lon) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

// DistanceKm returns the great-circle distance between two points (haversine).
func (l Location) DistanceKm(o Location) float64 {
	lat1 := l.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180
	dLat := (o.Lat - l.Lat) * math.Pi / 180
	dLon := (o.Lon - l.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// BoundingBox is a lat/lon rectangle.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p Location) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// BoundingBox returns the rectangle that encloses a circle of radiusKm around
// l. Used as a cheap index-friendly pre-filter before DistanceKm.
func (l Location) BoundingBox(radiusKm float64) BoundingBox {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi
	box := BoundingBox{
		MinLat: math.Max(-90, l.Lat-dLat),
		MaxLat: math.Min(90, l.Lat+dLat),
		MinLon: -180,
		MaxLon: 180,
	}

	cos := math.Cos(l.Lat * math.Pi / 180)
	if cos < 1e-6 || box.MaxLat >= 90 || box.MinLat <= -90 {
		return box
	}
	dLon := dLat / cos
	// crossing the antimeridian: give up on the longitude filter
	if dLon >= 180 || l.Lon-dLon < -180 || l.Lon+dLon > 180 {
		return box
	}
	box.MinLon, box.MaxLon = l.Lon-dLon, l.Lon+dLon
	return box
}
