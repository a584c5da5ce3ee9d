package geo

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DefaultCoordinate is where ShoreSquad launched: central Singapore. Every
// location-aware feature falls back to it when the caller cannot be located.
var DefaultCoordinate = Coordinate{Lat: 1.3521, Lng: 103.8198}

// IsZero reports whether the coordinate carries no position at all. The
// (0, 0) null-island pair is never a real beach location for us.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}
