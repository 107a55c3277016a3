// Package geo holds the great-circle helpers used for presence verification.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius (IUGG).
const EarthRadiusMeters = 6371008.8

// DefaultMaxMeters is the presence radius used when none is configured.
const DefaultMaxMeters = 200.0

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// Valid reports whether the coordinate lies within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Latitude) && !math.IsNaN(c.Longitude) &&
		c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Distance returns the haversine distance between a and b in meters.
func Distance(a, b Coordinate) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h marginally past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// IsWithinRange reports whether the two coordinates are at most maxMeters apart.
// A missing coordinate never counts as presence.
func IsWithinRange(student, company *Coordinate, maxMeters float64) bool {
	if student == nil || company == nil {
		return false
	}
	if !student.Valid() || !company.Valid() {
		return false
	}
	return Distance(*student, *company) <= maxMeters
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
