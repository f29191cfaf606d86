package gps

import "github.com/golang/geo/s2"

// LatLng converts a Fix to an s2.LatLng, giving callers access to the
// wider golang/geo toolkit (distance, cell covering) for things like
// range-to-digipeater calculations without this package reinventing
// spherical geometry.
func (f Fix) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(f.Latitude, f.Longitude)
}
