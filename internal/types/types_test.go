package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateEqual(t *testing.T) {
	a := Coordinate{Lat: 19.076, Lon: 72.8777}
	b := Coordinate{Lat: 19.0760001, Lon: 72.8777001}
	assert.True(t, a.Equal(b))

	c := Coordinate{Lat: 19.0761, Lon: 72.8777}
	assert.False(t, a.Equal(c))
}

func TestCoordinatePointRoundTrip(t *testing.T) {
	c := Coordinate{Lat: 13.0827, Lon: 80.2707}
	p := c.Point()
	require.Equal(t, c.Lon, p[0])
	require.Equal(t, c.Lat, p[1])

	back := FromPoint(p)
	assert.Equal(t, c, back)
}

func TestBoundingBoxContainsAndExpand(t *testing.T) {
	box := BoundingBox{MinLat: 10, MaxLat: 20, MinLon: 60, MaxLon: 70}
	assert.True(t, box.Contains(Coordinate{Lat: 15, Lon: 65}))
	assert.False(t, box.Contains(Coordinate{Lat: 25, Lon: 65}))

	expanded := box.Expand(2)
	assert.Equal(t, 8.0, expanded.MinLat)
	assert.Equal(t, 22.0, expanded.MaxLat)
	assert.Equal(t, 58.0, expanded.MinLon)
	assert.Equal(t, 72.0, expanded.MaxLon)
}

func TestEngineErrorWrapsCause(t *testing.T) {
	cause := assert.AnError
	err := NewError(ErrNoPathFound, "no route between ports", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no_path_found")
}
