package geojson

import (
	"encoding/json"
	"testing"

	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoute() types.Route {
	return types.Route{
		Planner: "sampling",
		Waypoints: []types.Waypoint{
			{Coordinate: types.Coordinate{Lat: 10.0, Lon: 65.0}, CumulativeDistanceNM: 0, CumulativeFuelTons: 0},
			{Coordinate: types.Coordinate{Lat: 11.0, Lon: 66.0}, CumulativeDistanceNM: 80, CumulativeFuelTons: 12},
			{Coordinate: types.Coordinate{Lat: 12.0, Lon: 67.0}, CumulativeDistanceNM: 160, CumulativeFuelTons: 24},
		},
		Metrics: types.VoyageMetrics{
			DistanceNM:     160,
			DurationHours:  12,
			FuelTons:       24,
			CO2Tons:        76.08,
			AverageSpeedKn: 13.3,
		},
		Warnings: []string{"elevated piracy risk along route"},
	}
}

func TestRouteToFeatureCollectionHasLineStringAndWaypoints(t *testing.T) {
	fc := RouteToFeatureCollection(sampleRoute())

	require.Len(t, fc.Features, 4) // 1 route line + 3 waypoints

	routeFeature := fc.Features[0]
	assert.Equal(t, "LineString", routeFeature.Geometry.GeoJSONType())
	assert.Equal(t, "route", routeFeature.Properties["feature_type"])
	assert.Equal(t, "sampling", routeFeature.Properties["planner"])
	assert.Equal(t, 160.0, routeFeature.Properties["distance_nm"])
	assert.Contains(t, routeFeature.Properties["warnings"], "elevated piracy risk along route")

	wp1 := fc.Features[1]
	assert.Equal(t, "Point", wp1.Geometry.GeoJSONType())
	assert.Equal(t, "waypoint", wp1.Properties["feature_type"])
	assert.Equal(t, 0, wp1.Properties["index"])

	wp3 := fc.Features[3]
	assert.Equal(t, 160.0, wp3.Properties["cumulative_distance_nm"])
	assert.Equal(t, 24.0, wp3.Properties["cumulative_fuel_tons"])
}

func TestRouteToFeatureCollectionOmitsWarningsWhenEmpty(t *testing.T) {
	route := sampleRoute()
	route.Warnings = nil

	fc := RouteToFeatureCollection(route)
	_, ok := fc.Features[0].Properties["warnings"]
	assert.False(t, ok)
}

func TestHazardZonesToFeatureCollectionProducesClosedPolygons(t *testing.T) {
	zones := []hazard.Zone{
		{
			Name:           "Gulf of Aden",
			Type:           hazard.ZonePiracy,
			Center:         types.Coordinate{Lat: 12.5, Lon: 48.0},
			RadiusDeg:      2.0,
			Severity:       hazard.SeverityHigh,
			CostMultiplier: 1.5,
			ActiveMonths:   []int{1, 2, 3},
		},
	}

	fc := HazardZonesToFeatureCollection(zones)
	require.Len(t, fc.Features, 1)

	feature := fc.Features[0]
	assert.Equal(t, "Polygon", feature.Geometry.GeoJSONType())
	assert.Equal(t, "hazard_zone", feature.Properties["feature_type"])
	assert.Equal(t, "Gulf of Aden", feature.Properties["name"])
	assert.Equal(t, hazard.SeverityHigh.String(), feature.Properties["severity"])

	polygon, ok := feature.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 1)
	ring := polygon[0]
	assert.Equal(t, ring[0], ring[len(ring)-1])
	assert.Len(t, ring, 33) // 32 vertices + closing point
}

func TestHazardZonesToFeatureCollectionOmitsActiveMonthsWhenEmpty(t *testing.T) {
	zones := []hazard.Zone{
		{
			Name:      "Permanent shoal",
			Type:      hazard.ZoneShallowWater,
			Center:    types.Coordinate{Lat: 1, Lon: 1},
			RadiusDeg: 0.1,
			Severity:  hazard.SeverityLow,
		},
	}

	fc := HazardZonesToFeatureCollection(zones)
	_, ok := fc.Features[0].Properties["active_months"]
	assert.False(t, ok)
}

func TestMarshalProducesValidJSON(t *testing.T) {
	fc := RouteToFeatureCollection(sampleRoute())

	data, err := Marshal(fc)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
}

func TestRouteToFeatureCollectionHandlesEmptyRoute(t *testing.T) {
	fc := RouteToFeatureCollection(types.Route{})
	require.Len(t, fc.Features, 1) // just the (empty) route line, no waypoints
}
