package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// metersPerDegreeLat is the length of one degree of latitude on the haversine sphere.
var metersPerDegreeLat = 2 * math.Pi * EarthRadiusMeters / 360

func northOf(c Coordinate, meters float64) Coordinate {
	return Coordinate{Latitude: c.Latitude + meters/metersPerDegreeLat, Longitude: c.Longitude}
}

func TestIsWithinRange_SamePointZeroRadius(t *testing.T) {
	origin := &Coordinate{}
	assert.True(t, IsWithinRange(origin, &Coordinate{}, 0))
}

func TestIsWithinRange_ThreeHundredMeters(t *testing.T) {
	company := Coordinate{Latitude: 5.6037, Longitude: -0.1870}
	student := northOf(company, 300)

	assert.InDelta(t, 300, Distance(student, company), 0.01)
	assert.False(t, IsWithinRange(&student, &company, DefaultMaxMeters))
	assert.True(t, IsWithinRange(&student, &company, 400))
}

func TestIsWithinRange_BoundaryInclusive(t *testing.T) {
	company := Coordinate{Latitude: 10, Longitude: 20}
	student := northOf(company, 150)
	d := Distance(student, company)

	assert.True(t, IsWithinRange(&student, &company, d))
	assert.False(t, IsWithinRange(&student, &company, d-0.001))
}

func TestIsWithinRange_Symmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 0.002}},
		{{Latitude: 51.5007, Longitude: -0.1246}, {Latitude: 51.5014, Longitude: -0.1419}},
		{{Latitude: -33.8568, Longitude: 151.2153}, {Latitude: -33.8570, Longitude: 151.2160}},
		{{Latitude: 89.9, Longitude: 10}, {Latitude: 89.9, Longitude: -170}},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
		for _, r := range []float64{0, 50, 200, 1000, 50000} {
			assert.Equal(t, IsWithinRange(&a, &b, r), IsWithinRange(&b, &a, r))
		}
	}
}

func TestIsWithinRange_MissingCoordinate(t *testing.T) {
	c := &Coordinate{Latitude: 1, Longitude: 1}

	assert.False(t, IsWithinRange(nil, c, 1e9))
	assert.False(t, IsWithinRange(c, nil, 1e9))
	assert.False(t, IsWithinRange(nil, nil, 1e9))
}

func TestIsWithinRange_InvalidCoordinate(t *testing.T) {
	bad := &Coordinate{Latitude: 91, Longitude: 0}
	ok := &Coordinate{Latitude: 0, Longitude: 0}

	assert.False(t, IsWithinRange(bad, ok, 1e9))
	assert.False(t, IsWithinRange(ok, &Coordinate{Latitude: math.NaN()}, 1e9))
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(Coordinate{Latitude: 0, Longitude: 0}, Coordinate{Latitude: 0, Longitude: 180})
	assert.InDelta(t, math.Pi*EarthRadiusMeters, d, 1e-3)
}
