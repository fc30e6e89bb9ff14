// Package landatlas implements the fixed coastline polygon atlas used to
// reject routes that cross land, and the helpers built on top of it:
// nearby safe-water search and route land-crossing statistics.
package landatlas

import (
	"github.com/MeKo-Tech/shiproute/internal/geo"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/paulmach/orb"
)

// Atlas answers point-in-land and line-crosses-land queries against the
// fixed polygon coastline table.
type Atlas struct {
	regions []landPolygon
}

// New builds an Atlas from the built-in coastline table.
func New() *Atlas {
	return &Atlas{regions: defaultAtlas()}
}

// Ring returns the closed vertex loop for a named region, or nil if the
// atlas has no such region. Exposed for diagnostics/GeoJSON export.
func (a *Atlas) Ring(name string) orb.Ring {
	for _, r := range a.regions {
		if r.name != name {
			continue
		}
		ring := make(orb.Ring, len(r.vertices))
		for i, v := range r.vertices {
			ring[i] = v.Point()
		}
		return ring
	}
	return nil
}

// RegionNames returns the names of every land region in the atlas.
func (a *Atlas) RegionNames() []string {
	names := make([]string, len(a.regions))
	for i, r := range a.regions {
		names[i] = r.name
	}
	return names
}

// pointInPolygon implements ray casting with the standard
// upper-vertex-inclusive/lower-vertex-exclusive tie-break: a point exactly
// on a polygon vertex's latitude is resolved consistently so a shared edge
// between two regions cannot double-count or gap.
func pointInPolygon(c types.Coordinate, vertices []types.Coordinate) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}
	inside := false

	p1 := vertices[0]
	for i := 1; i <= n; i++ {
		p2 := vertices[i%n]

		if c.Lat > minF(p1.Lat, p2.Lat) && c.Lat <= maxF(p1.Lat, p2.Lat) {
			if c.Lon <= maxF(p1.Lon, p2.Lon) {
				var xIntersect float64
				if p1.Lat != p2.Lat {
					xIntersect = (c.Lat-p1.Lat)*(p2.Lon-p1.Lon)/(p2.Lat-p1.Lat) + p1.Lon
				}
				if p1.Lon == p2.Lon || c.Lon <= xIntersect {
					inside = !inside
				}
			}
		}

		p1 = p2
	}

	return inside
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// IsLand reports whether c falls inside any land region.
func (a *Atlas) IsLand(c types.Coordinate) bool {
	for _, r := range a.regions {
		if pointInPolygon(c, r.vertices) {
			return true
		}
	}
	return false
}

// IsWater is the complement of IsLand.
func (a *Atlas) IsWater(c types.Coordinate) bool {
	return !a.IsLand(c)
}

// LineCrossesLand checks both endpoints plus numChecks-1 evenly spaced
// interior points along the straight lat/lon segment from a to b and
// reports whether any checked point lands on a land region. A numChecks
// of zero or less is treated as 50. numChecks of 50
// matches the resolution used for final route validation; callers
// wanting a cheaper check during planning can pass a smaller value.
func (a *Atlas) LineCrossesLand(start, end types.Coordinate, numChecks int) bool {
	if a.IsLand(start) || a.IsLand(end) {
		return true
	}
	if numChecks <= 0 {
		numChecks = 50
	}
	for i := 1; i < numChecks; i++ {
		t := float64(i) / float64(numChecks)
		mid := types.Coordinate{
			Lat: start.Lat + t*(end.Lat-start.Lat),
			Lon: start.Lon + t*(end.Lon-start.Lon),
		}
		if a.IsLand(mid) {
			return true
		}
	}
	return false
}

// searchOffsets is the expanding-square search radius sequence used by
// GetSafeWaterPoint, in degrees.
var searchOffsets = []float64{0.1, 0.2, 0.3, 0.5, 1.0}

// GetSafeWaterPoint returns c unchanged if it is already water, otherwise
// searches an expanding 3x3 ring of offsets around c and returns the first
// water point found. Returns c itself, unchanged, if no nearby water point
// exists within the search offsets.
func (a *Atlas) GetSafeWaterPoint(c types.Coordinate) types.Coordinate {
	if a.IsWater(c) {
		return c
	}

	for _, offset := range searchOffsets {
		for _, dLat := range []float64{-offset, 0, offset} {
			for _, dLon := range []float64{-offset, 0, offset} {
				if dLat == 0 && dLon == 0 {
					continue
				}
				candidate := types.Coordinate{Lat: c.Lat + dLat, Lon: c.Lon + dLon}
				if a.IsWater(candidate) {
					return candidate
				}
			}
		}
	}

	return c
}

// RouteStatistics summarizes a waypoint polyline's total distance and
// land-crossing segment count, for validating a planner's final output.
type RouteStatistics struct {
	TotalDistanceNM      float64
	WaypointCount        int
	LandCrossingSegments int
	IsValidRoute         bool
}

// RouteStatistics computes validation statistics for a polyline of
// coordinates, matching the land-crossing check used during final route
// validation (50 samples per segment).
func (a *Atlas) RouteStatistics(waypoints []types.Coordinate) RouteStatistics {
	stats := RouteStatistics{WaypointCount: len(waypoints), IsValidRoute: true}

	for i := 0; i+1 < len(waypoints); i++ {
		stats.TotalDistanceNM += geo.HaversineNM(waypoints[i], waypoints[i+1])
		if a.LineCrossesLand(waypoints[i], waypoints[i+1], 50) {
			stats.LandCrossingSegments++
		}
	}
	stats.IsValidRoute = stats.LandCrossingSegments == 0
	return stats
}
