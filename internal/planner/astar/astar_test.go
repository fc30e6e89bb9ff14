package astar

import (
	"context"
	"testing"
	"time"

	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFindsPathBetweenOpenWaterPoints(t *testing.T) {
	p := New(landatlas.New())
	start := types.Coordinate{Lat: 10.0, Lon: 65.0}
	goal := types.Coordinate{Lat: 12.0, Lon: 67.0}

	path, err := p.Plan(context.Background(), start, goal)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(path), 2)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
}

func TestPlanPathAvoidsLand(t *testing.T) {
	atlas := landatlas.New()
	p := New(atlas)
	// Short hop near the Indian west coast, should hug around any land cells.
	start := types.Coordinate{Lat: 19.0, Lon: 69.0}
	goal := types.Coordinate{Lat: 15.5, Lon: 70.0}

	path, err := p.Plan(context.Background(), start, goal)
	require.NoError(t, err)
	for _, c := range path[1 : len(path)-1] {
		assert.False(t, atlas.IsLand(c), "intermediate waypoint %v should not be on land", c)
	}
}

func TestPlanRespectsCancellation(t *testing.T) {
	p := New(landatlas.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Plan(ctx, types.Coordinate{Lat: 10, Lon: 65}, types.Coordinate{Lat: 12, Lon: 67})
	require.Error(t, err)
	var engErr *types.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, types.ErrPlannerTimeout, engErr.Kind)
}

func TestSnapToWaterReturnsInputCellWhenAlreadyWater(t *testing.T) {
	cells := map[cellKey]bool{{lat: 10.0, lon: 65.0}: true}
	got := snapToWater(types.Coordinate{Lat: 10.0, Lon: 65.0}, cells)
	assert.Equal(t, cellKey{lat: 10.0, lon: 65.0}, got)
}

func TestNeighborsOfReturnsOnlyWaterCells(t *testing.T) {
	center := cellKey{lat: 0, lon: 0}
	cells := map[cellKey]bool{
		center:                                 true,
		{lat: 0, lon: Resolution}:               true,
		{lat: Resolution, lon: Resolution}:      false, // present in map but not water
	}
	got := neighborsOf(center, cells)
	require.Len(t, got, 1)
	assert.Equal(t, cellKey{lat: 0, lon: Resolution}, got[0])
}

func TestPlanTerminatesWithinReasonableTime(t *testing.T) {
	p := New(landatlas.New())
	done := make(chan struct{})
	go func() {
		_, _ = p.Plan(context.Background(), types.Coordinate{Lat: 0, Lon: 80}, types.Coordinate{Lat: 5, Lon: 85})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("astar planning did not terminate")
	}
}
