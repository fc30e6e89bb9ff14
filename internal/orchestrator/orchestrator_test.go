package orchestrator

import (
	"context"
	"testing"

	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/MeKo-Tech/shiproute/internal/voyage"
	"github.com/MeKo-Tech/shiproute/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator() *Orchestrator {
	atlas := landatlas.New()
	hz := hazard.New(atlas)
	wx := weather.New(nil)
	return New(atlas, hz, wx, voyage.DefaultCatalog())
}

func TestPlanRouteProducesRouteWithMetrics(t *testing.T) {
	o := newTestOrchestrator()
	req := PlanRequest{
		Start:  types.Coordinate{Lat: 10.0, Lon: 65.0},
		Goal:   types.Coordinate{Lat: 12.0, Lon: 67.0},
		Vessel: voyage.Container10000TEU,
		Month:  1,
	}

	route, err := o.PlanRoute(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, route.Waypoints)
	assert.Greater(t, route.Metrics.DistanceNM, 0.0)
	assert.Greater(t, route.Metrics.FuelTons, 0.0)
	assert.NotEmpty(t, route.Planner)
}

func TestPlanRouteStartEqualsGoalReturnsSinglePointRoute(t *testing.T) {
	o := newTestOrchestrator()
	point := types.Coordinate{Lat: 10.0, Lon: 65.0}
	req := PlanRequest{
		Start:  point,
		Goal:   point,
		Vessel: voyage.Container10000TEU,
		Month:  1,
	}

	route, err := o.PlanRoute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, route.Waypoints, 1)
	assert.Equal(t, point, route.Waypoints[0].Coordinate)
	assert.Equal(t, 0.0, route.Metrics.DistanceNM)
	assert.Equal(t, 0.0, route.Metrics.FuelTons)
}

func TestPlanRouteRejectsUnknownVessel(t *testing.T) {
	o := newTestOrchestrator()
	req := PlanRequest{
		Start:  types.Coordinate{Lat: 10.0, Lon: 65.0},
		Goal:   types.Coordinate{Lat: 12.0, Lon: 67.0},
		Vessel: voyage.VesselType("not_a_real_vessel"),
		Month:  1,
	}

	_, err := o.PlanRoute(context.Background(), req)
	require.Error(t, err)
	var engErr *types.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, types.ErrUnknownVessel, engErr.Kind)
}

func TestSnapToWaterReturnsKnownPortOffshore(t *testing.T) {
	o := newTestOrchestrator()
	mumbai := types.Coordinate{Lat: 19.076, Lon: 72.877}

	snapped, ok := o.snapToWater(mumbai, "test")
	require.True(t, ok)
	assert.InDelta(t, 18.9, snapped.Lat, 1e-9)
	assert.InDelta(t, 72.8, snapped.Lon, 1e-9)
}

func TestSnapToWaterLeavesOpenWaterUnchanged(t *testing.T) {
	o := newTestOrchestrator()
	open := types.Coordinate{Lat: 10.0, Lon: 65.0}

	snapped, ok := o.snapToWater(open, "test")
	require.True(t, ok)
	assert.Equal(t, open, snapped)
}

func TestInterpolateRoutePreservesOriginalWaypoints(t *testing.T) {
	waypoints := []types.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 2},
	}
	got := interpolateRoute(waypoints, 30)

	assert.Equal(t, waypoints[0], got[0])
	assert.Contains(t, got, waypoints[1])
	assert.Equal(t, waypoints[2], got[len(got)-1])
	assert.Greater(t, len(got), len(waypoints))
}

func TestInterpolateRouteShortCircuitsOnSinglePoint(t *testing.T) {
	waypoints := []types.Coordinate{{Lat: 0, Lon: 0}}
	got := interpolateRoute(waypoints, 30)
	assert.Equal(t, waypoints, got)
}

func TestReplanRouteReturnsNotOKWhenUnreachable(t *testing.T) {
	o := newTestOrchestrator()
	start := types.Coordinate{Lat: 10, Lon: 65}
	goal := types.Coordinate{Lat: 11, Lon: 66}
	session := o.NewReplanSession(start, goal)

	_, err := session.Plan(context.Background())
	require.NoError(t, err)

	// Blocking the start cell's entire 8-neighborhood (default 20 nm step)
	// makes the goal unreachable, so ReplanRoute must report ok=false
	// rather than a zero-value route.
	step := 20.0 / 60.0
	changed := []types.Coordinate{
		{Lat: 10.0 + step, Lon: 65.0},
		{Lat: 10.0 - step, Lon: 65.0},
		{Lat: 10.0, Lon: 65.0 + step},
		{Lat: 10.0, Lon: 65.0 - step},
		{Lat: 10.0 + step, Lon: 65.0 + step},
		{Lat: 10.0 + step, Lon: 65.0 - step},
		{Lat: 10.0 - step, Lon: 65.0 + step},
		{Lat: 10.0 - step, Lon: 65.0 - step},
	}
	_, ok, err := o.ReplanRoute(context.Background(), session, changed, PlanRequest{
		Vessel: voyage.Container10000TEU, Month: 1,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildWaypointsAccumulatesDistanceAndFuel(t *testing.T) {
	path := []types.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 1, Lon: 0},
		{Lat: 2, Lon: 0},
	}
	metrics := types.VoyageMetrics{DistanceNM: 120, FuelTons: 100}

	wps := buildWaypoints(path, metrics)
	require.Len(t, wps, 3)
	assert.Equal(t, 0.0, wps[0].CumulativeDistanceNM)
	assert.InDelta(t, 100.0, wps[2].CumulativeFuelTons, 1.0)
}
