// Package orchestrator implements spec component C10, the route
// orchestrator: port snapping, adaptive-parameter planner chain
// (sampling planner first, grid A* fallback), ~100-point interpolation,
// and per-segment evaluation into aggregate VoyageMetrics. It is the
// single entry point the four route and hazard operations (plan_route,
// replan_route, evaluate_waypoint_hazard, evaluate_route_hazards) sit
// behind, the way the teacher's pipeline.Generator.Generate is the
// single entry point behind its CLI/worker callers.
package orchestrator

import (
	"context"
	"log/slog"
	"math"
	"runtime"

	"github.com/MeKo-Tech/shiproute/internal/geo"
	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/planner/astar"
	"github.com/MeKo-Tech/shiproute/internal/planner/replan"
	"github.com/MeKo-Tech/shiproute/internal/planner/sampling"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/MeKo-Tech/shiproute/internal/voyage"
	"github.com/MeKo-Tech/shiproute/internal/weather"
	"github.com/MeKo-Tech/shiproute/internal/worker"
)

// InterpolationPoints is the target output polyline density (spec §4.10).
const InterpolationPoints = 100

// CoastLonThreshold splits the Indian subcontinent into west/east coast
// for offshore port-snapping direction, per spec §4.10 / the reference
// route calculator's port heuristics.
const CoastLonThreshold = 76.0

// OffshoreSearchStepDeg and OffshoreSearchSteps bound the directional
// offshore search before falling back to the expanding grid search.
const (
	OffshoreSearchStepDeg = 0.05
	OffshoreSearchSteps   = 20
)

// gridSearchRadiiDeg are the expanding-ring radii of the final port-snap
// fallback, in degrees (spec §4.10).
var gridSearchRadiiDeg = []float64{0.1, 0.2, 0.3, 0.5, 0.7, 1.0}

var gridSearchDirections = []types.Coordinate{
	{Lat: 0, Lon: 1}, {Lat: 0, Lon: -1}, {Lat: 1, Lon: 0}, {Lat: -1, Lon: 0},
	{Lat: 1, Lon: 1}, {Lat: 1, Lon: -1}, {Lat: -1, Lon: 1}, {Lat: -1, Lon: -1},
}

// KnownPort pins a frequently-used port to a known-good offshore
// coordinate, skipping the land atlas's polygon resolution limits right
// at the coastline.
type KnownPort struct {
	Name     string
	Onshore  types.Coordinate
	Offshore types.Coordinate
}

// defaultKnownPorts mirrors the reference implementation's pinned
// offshore coordinates for the three Indian ports whose harbor polygons
// sit inside the atlas's coastline simplification.
func defaultKnownPorts() []KnownPort {
	return []KnownPort{
		{Name: "Mumbai", Onshore: types.Coordinate{Lat: 19.076, Lon: 72.877}, Offshore: types.Coordinate{Lat: 18.9, Lon: 72.8}},
		{Name: "Chennai", Onshore: types.Coordinate{Lat: 13.194, Lon: 80.282}, Offshore: types.Coordinate{Lat: 13.0, Lon: 80.3}},
		{Name: "Kolkata", Onshore: types.Coordinate{Lat: 22.572, Lon: 88.364}, Offshore: types.Coordinate{Lat: 21.5, Lon: 88.0}},
	}
}

func nearPort(c types.Coordinate, p KnownPort) bool {
	return math.Abs(c.Lat-p.Onshore.Lat) < 0.2 && math.Abs(c.Lon-p.Onshore.Lon) < 0.2
}

// Orchestrator wires the land atlas, hazard service, weather service, and
// the planner chain into the four route and hazard operations
// (fuel_estimate is served by internal/voyage directly).
type Orchestrator struct {
	atlas      *landatlas.Atlas
	hazards    *hazard.Service
	weather    *weather.Service
	sampler    *sampling.Planner
	fallback   *astar.Planner
	catalog    voyage.Catalog
	knownPorts []KnownPort
	workers    int
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithWorkers overrides the default per-segment evaluation worker count
// (defaults to GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithKnownPorts overrides the built-in pinned-port table.
func WithKnownPorts(ports []KnownPort) Option {
	return func(o *Orchestrator) { o.knownPorts = ports }
}

// New builds an Orchestrator over the given shared services.
func New(atlas *landatlas.Atlas, hazards *hazard.Service, wx *weather.Service, catalog voyage.Catalog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		atlas:      atlas,
		hazards:    hazards,
		weather:    wx,
		sampler:    sampling.New(atlas, hazards, wx),
		fallback:   astar.New(atlas),
		catalog:    catalog,
		knownPorts: defaultKnownPorts(),
		workers:    runtime.GOMAXPROCS(0),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// snapToWater implements spec §4.10's port-snapping chain: known-port
// pin, then directional offshore search, then an expanding grid search.
// Returns the input coordinate and false if no water point was found.
func (o *Orchestrator) snapToWater(c types.Coordinate, label string) (types.Coordinate, bool) {
	if !o.atlas.IsLand(c) {
		return c, true
	}

	for _, p := range o.knownPorts {
		if nearPort(c, p) {
			o.logger.Debug("snapped to known port offshore coordinate", "label", label, "port", p.Name)
			return p.Offshore, true
		}
	}

	direction := 1.0
	if c.Lon < CoastLonThreshold {
		direction = -1.0
	}
	for i := 1; i <= OffshoreSearchSteps; i++ {
		test := types.Coordinate{Lat: c.Lat, Lon: c.Lon + direction*OffshoreSearchStepDeg*float64(i)}
		if !o.atlas.IsLand(test) {
			o.logger.Debug("snapped to water via offshore search", "label", label, "point", test)
			return test, true
		}
	}

	for _, radius := range gridSearchRadiiDeg {
		for _, dir := range gridSearchDirections {
			test := types.Coordinate{Lat: c.Lat + dir.Lat*radius, Lon: c.Lon + dir.Lon*radius}
			if !o.atlas.IsLand(test) {
				o.logger.Debug("snapped to water via grid search", "label", label, "point", test, "radius", radius)
				return test, true
			}
		}
	}

	return c, false
}

// interpolateRoute linearly densifies waypoints to approximately
// InterpolationPoints output points, preserving every input waypoint as
// an exact sample (spec §4.10) — a plain per-leg lat/lon lerp, matching
// the reference route calculator rather than a geodesic interpolation,
// since the input legs are already short enough that the difference is
// immaterial and the original behavior is worth preserving exactly.
func interpolateRoute(waypoints []types.Coordinate, numPoints int) []types.Coordinate {
	if len(waypoints) < 2 {
		return waypoints
	}

	legs := len(waypoints) - 1
	segments := numPoints / legs
	if segments < 2 {
		segments = 2
	}

	out := make([]types.Coordinate, 0, numPoints+legs)
	out = append(out, waypoints[0])
	for i := 0; i < legs; i++ {
		a, b := waypoints[i], waypoints[i+1]
		for j := 1; j < segments; j++ {
			ratio := float64(j) / float64(segments)
			out = append(out, types.Coordinate{
				Lat: a.Lat + (b.Lat-a.Lat)*ratio,
				Lon: a.Lon + (b.Lon-a.Lon)*ratio,
			})
		}
		out = append(out, b)
	}
	return out
}

// windFactorEvaluator adapts the weather service to worker.Evaluator so
// per-segment midpoint weather sampling (spec §4.10 step 5) runs
// concurrently across a route's legs instead of serially.
type windFactorEvaluator struct {
	wx *weather.Service
}

func (e windFactorEvaluator) EvaluateSegment(ctx context.Context, start, end types.Coordinate, month int) (float64, error) {
	mid := types.Coordinate{Lat: (start.Lat + end.Lat) / 2, Lon: (start.Lon + end.Lon) / 2}
	sample := e.wx.Sample(ctx, mid.Lat, mid.Lon, 0)
	return weather.WindFactor(sample.WindSpeedKt), nil
}

// averageWeatherFactor runs windFactorEvaluator over every leg of path
// via the worker pool and returns the mean wind factor.
func (o *Orchestrator) averageWeatherFactor(ctx context.Context, path []types.Coordinate, month int) float64 {
	if len(path) < 2 {
		return 1.0
	}

	tasks := make([]worker.Task, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		tasks[i] = worker.Task{Index: i, Start: path[i], End: path[i+1], Month: month}
	}

	pool := worker.New(worker.Config{Workers: o.workers, Evaluator: windFactorEvaluator{wx: o.weather}})
	results := pool.Run(ctx, tasks)

	var total float64
	var n int
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		total += r.Cost
		n++
	}
	if n == 0 {
		return 1.0
	}
	return total / float64(n)
}

// PlanRequest is the input to PlanRoute.
type PlanRequest struct {
	Start            types.Coordinate
	Goal             types.Coordinate
	Vessel           voyage.VesselType
	OperatingSpeedKn float64 // 0 means 85% of design speed
	LoadFactor       float64 // 0 means 0.85 (typical laden)
	Month            int     // 1-12, for seasonal hazard gating
}

// PlanRoute implements spec §6's plan_route operation: port snapping,
// adaptive parameters, the sampling-planner-then-grid-A* chain,
// interpolation, and evaluation into VoyageMetrics.
//
// Start equal to goal is a literal structural boundary (spec §8): the
// route is the single-point [start], with zero distance and fuel, not a
// degenerate two-point path through the planner chain.
func (o *Orchestrator) PlanRoute(ctx context.Context, req PlanRequest) (types.Route, error) {
	if req.Start == req.Goal {
		return types.Route{
			Waypoints: []types.Waypoint{{Coordinate: req.Start}},
			Planner:   "identity",
		}, nil
	}

	start, ok := o.snapToWater(req.Start, "start")
	if !ok {
		return types.Route{}, types.NewError(types.ErrLandLocked, "start point has no nearby water", nil)
	}
	goal, ok := o.snapToWater(req.Goal, "goal")
	if !ok {
		return types.Route{}, types.NewError(types.ErrLandLocked, "goal point has no nearby water", nil)
	}

	path, plannerName, warnings, err := o.planPath(ctx, start, goal, req.Month)
	if err != nil {
		return types.Route{}, err
	}

	return o.evaluate(ctx, path, plannerName, warnings, req)
}

// planPath runs the sampling planner (C7) and, on failure to connect,
// falls back to grid A* (C8), per spec §4.10's planner chain.
func (o *Orchestrator) planPath(ctx context.Context, start, goal types.Coordinate, month int) ([]types.Coordinate, string, []string, error) {
	result, err := o.sampler.Plan(ctx, start, goal, month)
	if err != nil {
		return nil, "", nil, err
	}
	if result.Connected && len(result.Path) >= 2 {
		o.logger.Debug("sampling planner connected", "iterations", result.Iterations)
		return result.Path, "sampling", result.Warnings, nil
	}

	o.logger.Debug("sampling planner failed to connect, falling back to grid astar")
	path, err := o.fallback.Plan(ctx, start, goal)
	if err != nil {
		return nil, "", nil, err
	}
	if len(path) < 2 {
		return nil, "", nil, types.NewError(types.ErrNoPathFound, "no planner produced a usable route", nil)
	}
	return path, "astar", nil, nil
}

// evaluate builds the final Route: interpolation, per-segment weather
// sampling, fuel/CO2 estimation, and hazard risk assessment.
func (o *Orchestrator) evaluate(ctx context.Context, path []types.Coordinate, plannerName string, warnings []string, req PlanRequest) (types.Route, error) {
	model, err := voyage.NewModel(o.catalog, req.Vessel, o.hazards, o.weather)
	if err != nil {
		return types.Route{}, err
	}

	interpolated := interpolateRoute(path, InterpolationPoints)

	speed := req.OperatingSpeedKn
	if speed <= 0 {
		speed = model.Spec().DesignSpeedKn * 0.85
	}
	loadFactor := req.LoadFactor
	if loadFactor <= 0 {
		loadFactor = 0.85
	}

	weatherFactor := o.averageWeatherFactor(ctx, interpolated, req.Month)
	metrics := model.Evaluate(interpolated, speed, weatherFactor, loadFactor)

	hazardEval := o.hazards.EvaluateRoute(interpolated, req.Month)
	if hazardEval.RiskAssessment == "HIGH" {
		warnings = append(warnings, "route passes through high-severity hazard zones")
	}

	waypoints := buildWaypoints(interpolated, metrics)

	return types.Route{
		Waypoints: waypoints,
		Metrics:   metrics,
		Planner:   plannerName,
		Warnings:  warnings,
	}, nil
}

// buildWaypoints attaches cumulative distance and a distance-proportional
// fuel share to each interpolated point. The proportional fuel split
// assumes the single constant operating speed PlanRoute evaluated the
// route at, consistent with the rest of the VoyageMetrics computation.
func buildWaypoints(path []types.Coordinate, metrics types.VoyageMetrics) []types.Waypoint {
	waypoints := make([]types.Waypoint, len(path))
	if len(path) == 0 {
		return waypoints
	}
	waypoints[0] = types.Waypoint{Coordinate: path[0]}

	var cumDist float64
	for i := 1; i < len(path); i++ {
		cumDist += geo.HaversineNM(path[i-1], path[i])
		var frac float64
		if metrics.DistanceNM > 0 {
			frac = cumDist / metrics.DistanceNM
		}
		waypoints[i] = types.Waypoint{
			Coordinate:           path[i],
			CumulativeDistanceNM: cumDist,
			CumulativeFuelTons:   metrics.FuelTons * frac,
		}
	}
	return waypoints
}

// NewReplanSession starts an incremental replanner (C9) rooted at the
// given start/goal, exposed as the separate entry point spec §4.10
// describes for mid-voyage replanning.
func (o *Orchestrator) NewReplanSession(start, goal types.Coordinate) *replan.Service {
	return replan.New(o.atlas, start, goal)
}

// ReplanRoute implements spec §6's replan_route operation against an
// existing ReplanSession. If the replanner cannot find an alternative
// path, ok is false and the caller must keep its prior route (spec
// §4.10 failure semantics), never a zero-value Route mistaken for "no
// route."
func (o *Orchestrator) ReplanRoute(ctx context.Context, session *replan.Service, changed []types.Coordinate, req PlanRequest) (route types.Route, ok bool, err error) {
	path, err := session.Replan(ctx, changed)
	if err != nil {
		return types.Route{}, false, err
	}
	if path == nil {
		return types.Route{}, false, nil
	}

	route, err = o.evaluate(ctx, path, "replan", nil, req)
	if err != nil {
		return types.Route{}, false, err
	}
	return route, true, nil
}

// EvaluateWaypointHazard implements spec §6's evaluate_waypoint_hazard.
func (o *Orchestrator) EvaluateWaypointHazard(c types.Coordinate, month int) hazard.PointEvaluation {
	return o.hazards.EvaluatePoint(c, month)
}

// EvaluateRouteHazards implements spec §6's evaluate_route_hazards.
func (o *Orchestrator) EvaluateRouteHazards(polyline []types.Coordinate, month int) hazard.RouteEvaluation {
	return o.hazards.EvaluateRoute(polyline, month)
}
