package geo

import (
	"testing"

	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineNMKnownDistance(t *testing.T) {
	mumbai := types.Coordinate{Lat: 19.0760, Lon: 72.8777}
	chennai := types.Coordinate{Lat: 13.0827, Lon: 80.2707}

	d := HaversineNM(mumbai, chennai)
	// Mumbai-Chennai great-circle distance is roughly 558 nm.
	assert.InDelta(t, 558, d, 5)
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	p := types.Coordinate{Lat: 10, Lon: 60}
	assert.InDelta(t, 0, HaversineNM(p, p), 1e-9)
}

func TestBearingCardinalDirections(t *testing.T) {
	origin := types.Coordinate{Lat: 0, Lon: 0}
	north := types.Coordinate{Lat: 1, Lon: 0}
	east := types.Coordinate{Lat: 0, Lon: 1}

	assert.InDelta(t, 0, BearingDeg(origin, north), 1)
	assert.InDelta(t, 90, BearingDeg(origin, east), 1)
}

func TestDestinationPointRoundTrip(t *testing.T) {
	origin := types.Coordinate{Lat: 19.0760, Lon: 72.8777}
	brng := 45.0
	dist := 100.0

	dest := DestinationPoint(origin, brng, dist)
	back := HaversineNM(origin, dest)
	assert.InDelta(t, dist, back, 0.5)
}

func TestPlanarDistanceApproximatesHaversineAtSmallScale(t *testing.T) {
	a := types.Coordinate{Lat: 10, Lon: 60}
	b := types.Coordinate{Lat: 10.1, Lon: 60.1}

	planar := PlanarDistanceNM(a, b)
	sphere := HaversineNM(a, b)
	assert.InDelta(t, sphere, planar, sphere*0.05+0.5)
}

func TestInterpolateGreatCircleEndpoints(t *testing.T) {
	a := types.Coordinate{Lat: 19.0760, Lon: 72.8777}
	b := types.Coordinate{Lat: 13.0827, Lon: 80.2707}

	start := InterpolateGreatCircle(a, b, 0)
	end := InterpolateGreatCircle(a, b, 1)

	require.True(t, a.Equal(start))
	assert.InDelta(t, b.Lat, end.Lat, 0.01)
	assert.InDelta(t, b.Lon, end.Lon, 0.01)
}

func TestBoundingBoxAroundContainsBoth(t *testing.T) {
	a := types.Coordinate{Lat: 10, Lon: 60}
	b := types.Coordinate{Lat: 15, Lon: 65}

	box := BoundingBoxAround(a, b, 1)
	assert.True(t, box.Contains(a))
	assert.True(t, box.Contains(b))
	assert.Equal(t, 9.0, box.MinLat)
	assert.Equal(t, 16.0, box.MaxLat)
}
