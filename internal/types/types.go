// Package types holds the shared data model used across the planning
// engine: coordinates, bounding boxes, routes and their metrics, and the
// typed error kinds the public operations return.
package types

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Coordinate is a point on the earth's surface, latitude and longitude in
// decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Point returns the coordinate as an orb.Point ([lon, lat] order, matching
// orb's convention).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// FromPoint builds a Coordinate from an orb.Point.
func FromPoint(p orb.Point) Coordinate {
	return Coordinate{Lat: p[1], Lon: p[0]}
}

// Equal compares two coordinates at 6-decimal precision (~0.11m), the
// tolerance used throughout the engine for "same point" checks.
func (c Coordinate) Equal(other Coordinate) bool {
	const eps = 1e-6
	return math.Abs(c.Lat-other.Lat) < eps && math.Abs(c.Lon-other.Lon) < eps
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// BoundingBox is an axis-aligned lat/lon rectangle.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether c falls within the box, inclusive of edges.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// Expand returns a box padded by deg degrees on every side.
func (b BoundingBox) Expand(deg float64) BoundingBox {
	return BoundingBox{
		MinLat: b.MinLat - deg,
		MaxLat: b.MaxLat + deg,
		MinLon: b.MinLon - deg,
		MaxLon: b.MaxLon + deg,
	}
}

// BoundingBoxFromPoints returns the smallest box containing both points.
func BoundingBoxFromPoints(a, b Coordinate) BoundingBox {
	box := BoundingBox{
		MinLat: math.Min(a.Lat, b.Lat),
		MaxLat: math.Max(a.Lat, b.Lat),
		MinLon: math.Min(a.Lon, b.Lon),
		MaxLon: math.Max(a.Lon, b.Lon),
	}
	return box
}

// Waypoint is a single point along a planned route, carrying the metrics
// accumulated from the route start up to and including this point.
type Waypoint struct {
	Coordinate
	CumulativeDistanceNM float64
	CumulativeFuelTons   float64
	Meta                 map[string]any
}

// Route is the output of plan_route/replan_route: an ordered polyline plus
// aggregate voyage metrics.
type Route struct {
	Waypoints      []Waypoint
	Metrics        VoyageMetrics
	Planner        string // which planner produced the final polyline
	Warnings       []string
}

// VoyageMetrics aggregates the fuel/emissions/time estimate for a route or
// a single leg of one.
type VoyageMetrics struct {
	DistanceNM     float64
	DurationHours  float64
	FuelTons       float64
	CO2Tons        float64
	AverageSpeedKn float64
}

// ErrorKind classifies engine errors so callers can branch on failure mode
// without string-matching messages.
type ErrorKind string

const (
	ErrInvalidInput     ErrorKind = "invalid_input"
	ErrNoPathFound      ErrorKind = "no_path_found"
	ErrLandLocked       ErrorKind = "land_locked"
	ErrWeatherUnavailable ErrorKind = "weather_unavailable"
	ErrPlannerTimeout   ErrorKind = "planner_timeout"
	ErrUnknownVessel    ErrorKind = "unknown_vessel"
)

// EngineError is the error type every public operation returns on failure.
type EngineError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *EngineError) Unwrap() error { return e.Cause }

// NewError constructs an EngineError, optionally wrapping a cause.
func NewError(kind ErrorKind, message string, cause error) *EngineError {
	return &EngineError{Kind: kind, Message: message, Cause: cause}
}
