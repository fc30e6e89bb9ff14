// Package geojson exports a planned Route and the hazard zones that
// triggered along it as a GeoJSON FeatureCollection, for diagnostic
// tooling and the `shiproute plan --geojson` CLI output.
package geojson

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteToFeatureCollection converts a planned Route into a GeoJSON
// FeatureCollection: a single LineString feature carrying the route's
// aggregate metrics as properties, plus one Point feature per waypoint
// carrying its cumulative distance/fuel.
func RouteToFeatureCollection(route types.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, len(route.Waypoints))
	for i, wp := range route.Waypoints {
		line[i] = wp.Coordinate.Point()
	}

	routeFeature := geojson.NewFeature(line)
	routeFeature.Properties["feature_type"] = "route"
	routeFeature.Properties["planner"] = route.Planner
	routeFeature.Properties["distance_nm"] = route.Metrics.DistanceNM
	routeFeature.Properties["duration_hours"] = route.Metrics.DurationHours
	routeFeature.Properties["fuel_tons"] = route.Metrics.FuelTons
	routeFeature.Properties["co2_tons"] = route.Metrics.CO2Tons
	routeFeature.Properties["average_speed_kn"] = route.Metrics.AverageSpeedKn
	if len(route.Warnings) > 0 {
		routeFeature.Properties["warnings"] = route.Warnings
	}
	fc.Append(routeFeature)

	for i, wp := range route.Waypoints {
		point := geojson.NewFeature(wp.Coordinate.Point())
		point.Properties["feature_type"] = "waypoint"
		point.Properties["index"] = i
		point.Properties["cumulative_distance_nm"] = wp.CumulativeDistanceNM
		point.Properties["cumulative_fuel_tons"] = wp.CumulativeFuelTons
		fc.Append(point)
	}

	return fc
}

// HazardZonesToFeatureCollection exports hazard zones as circular
// polygons (approximated with a fixed-vertex ring, since Zone only
// stores a center and a planar-degree radius) for overlay on the same
// map as a route.
func HazardZonesToFeatureCollection(zones []hazard.Zone) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, z := range zones {
		ring := circleRing(z.Center, z.RadiusDeg, 32)
		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties["feature_type"] = "hazard_zone"
		feature.Properties["name"] = z.Name
		feature.Properties["zone_type"] = string(z.Type)
		feature.Properties["severity"] = z.Severity.String()
		feature.Properties["cost_multiplier"] = z.CostMultiplier
		if len(z.ActiveMonths) > 0 {
			feature.Properties["active_months"] = z.ActiveMonths
		}
		fc.Append(feature)
	}

	return fc
}

// circleRing approximates a planar-degree circle with n vertices, closing
// the ring back to its first point.
func circleRing(center types.Coordinate, radiusDeg float64, n int) orb.Ring {
	ring := make(orb.Ring, n+1)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		c := types.Coordinate{
			Lat: center.Lat + radiusDeg*math.Sin(theta),
			Lon: center.Lon + radiusDeg*math.Cos(theta),
		}
		ring[i] = c.Point()
	}
	ring[n] = ring[0]
	return ring
}

// Marshal encodes a FeatureCollection as indented GeoJSON bytes.
func Marshal(fc *geojson.FeatureCollection) ([]byte, error) {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("geojson: marshal feature collection: %w", err)
	}
	return data, nil
}
