// Package astar implements spec component C8, the deterministic grid A*
// fallback planner invoked when the sampling planner (C7) fails to
// produce a usable connection: a locally constructed 0.5°-resolution
// water-cell set, standard A* with a planar-distance heuristic, and a
// degenerate two-point fallback when no path exists.
package astar

import (
	"container/heap"
	"context"
	"log/slog"
	"math"

	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/types"
)

// Resolution is the grid cell size in degrees (≈30 nm), per spec §4.8.
const Resolution = 0.5

// BoundsPaddingDeg is the padding added around start/goal to bound the
// locally constructed water-cell set.
const BoundsPaddingDeg = 2.0

// MaxIterations bounds the search per spec §4.8's iteration cap.
const MaxIterations = 10000

type cellKey struct {
	lat float64
	lon float64
}

func snap(v float64) float64 {
	return math.Round(v/Resolution) * Resolution
}

func keyFor(c types.Coordinate) cellKey {
	return cellKey{lat: snap(c.Lat), lon: snap(c.Lon)}
}

func (k cellKey) coordinate() types.Coordinate {
	return types.Coordinate{Lat: k.lat, Lon: k.lon}
}

func planarDeg(a, b types.Coordinate) float64 {
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Planner builds a bounded water-cell set around a start/goal pair and
// searches it with A*.
type Planner struct {
	atlas  *landatlas.Atlas
	logger *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger overrides the default logger (slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New builds an A* planner backed by atlas for land/water classification.
func New(atlas *landatlas.Atlas, opts ...Option) *Planner {
	p := &Planner{atlas: atlas, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// buildWaterCells enumerates every water cell in the padded bounding box
// around start and goal, per spec §4.8's locally constructed water-cell
// set.
func (p *Planner) buildWaterCells(start, goal types.Coordinate) map[cellKey]bool {
	minLat := math.Min(start.Lat, goal.Lat) - BoundsPaddingDeg
	maxLat := math.Max(start.Lat, goal.Lat) + BoundsPaddingDeg
	minLon := math.Min(start.Lon, goal.Lon) - BoundsPaddingDeg
	maxLon := math.Max(start.Lon, goal.Lon) + BoundsPaddingDeg

	cells := make(map[cellKey]bool)
	for lat := minLat; lat <= maxLat; lat += Resolution {
		for lon := minLon; lon <= maxLon; lon += Resolution {
			c := types.Coordinate{Lat: lat, Lon: lon}
			if !p.atlas.IsLand(c) {
				cells[keyFor(c)] = true
			}
		}
	}
	p.logger.Debug("astar water grid built", "cells", len(cells), "resolution", Resolution)
	return cells
}

// snapToWater finds the nearest cell in cells to c. If c's own grid cell
// is water, it is returned directly; otherwise every water cell is
// scanned for the closest one (the bounded local grid keeps this cheap).
func snapToWater(c types.Coordinate, cells map[cellKey]bool) cellKey {
	k := keyFor(c)
	if cells[k] {
		return k
	}

	best := k
	bestDist := math.Inf(1)
	for cand := range cells {
		d := planarDeg(c, cand.coordinate())
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best
}

var neighborOffsets = []cellKey{
	{lat: 0, lon: -Resolution}, {lat: 0, lon: Resolution},
	{lat: -Resolution, lon: 0}, {lat: Resolution, lon: 0},
	{lat: -Resolution, lon: -Resolution}, {lat: -Resolution, lon: Resolution},
	{lat: Resolution, lon: -Resolution}, {lat: Resolution, lon: Resolution},
}

func neighborsOf(k cellKey, cells map[cellKey]bool) []cellKey {
	out := make([]cellKey, 0, 8)
	for _, off := range neighborOffsets {
		n := cellKey{lat: k.lat + off.lat, lon: k.lon + off.lon}
		if cells[n] {
			out = append(out, n)
		}
	}
	return out
}

type searchNode struct {
	key    cellKey
	fScore float64
	gScore float64
	index  int
}

type openQueue []*searchNode

func (q openQueue) Len() int            { return len(q) }
func (q openQueue) Less(i, j int) bool  { return q[i].fScore < q[j].fScore }
func (q openQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index, q[j].index = i, j }
func (q *openQueue) Push(x interface{}) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Plan runs grid A* from start to goal, returning the water-cell-center
// polyline. If no path is found within MaxIterations, it returns the
// two-point degenerate fallback per spec §4.8 — callers decide whether
// that is acceptable.
func (p *Planner) Plan(ctx context.Context, start, goal types.Coordinate) ([]types.Coordinate, error) {
	cells := p.buildWaterCells(start, goal)

	startKey := snapToWater(start, cells)
	goalKey := snapToWater(goal, cells)

	open := &openQueue{}
	heap.Init(open)
	heap.Push(open, &searchNode{key: startKey, fScore: planarDeg(startKey.coordinate(), goalKey.coordinate()), gScore: 0})

	gScores := map[cellKey]float64{startKey: 0}
	cameFrom := map[cellKey]cellKey{}
	closed := map[cellKey]bool{}

	iterations := 0
	for open.Len() > 0 && iterations < MaxIterations {
		select {
		case <-ctx.Done():
			return nil, types.NewError(types.ErrPlannerTimeout, "astar cancelled", ctx.Err())
		default:
		}

		iterations++
		current := heap.Pop(open).(*searchNode)

		if current.key == goalKey {
			p.logger.Debug("astar goal reached", "iterations", iterations)
			return reconstructPath(current.key, cameFrom, start, goal), nil
		}
		if closed[current.key] {
			continue
		}
		closed[current.key] = true

		for _, n := range neighborsOf(current.key, cells) {
			if closed[n] {
				continue
			}
			tentativeG := current.gScore + planarDeg(current.key.coordinate(), n.coordinate())
			if existing, ok := gScores[n]; ok && tentativeG >= existing {
				continue
			}
			gScores[n] = tentativeG
			cameFrom[n] = current.key
			h := planarDeg(n.coordinate(), goalKey.coordinate())
			heap.Push(open, &searchNode{key: n, gScore: tentativeG, fScore: tentativeG + h})
		}
	}

	p.logger.Debug("astar no path found, returning degenerate fallback", "iterations", iterations)
	return []types.Coordinate{start, goal}, nil
}

// reconstructPath walks cameFrom from the goal cell back to the start
// cell, then replaces the two endpoints with the caller's exact
// start/goal coordinates so the polyline doesn't lose sub-cell precision.
func reconstructPath(goal cellKey, cameFrom map[cellKey]cellKey, start, end types.Coordinate) []types.Coordinate {
	var cellPath []cellKey
	for k := goal; ; {
		cellPath = append(cellPath, k)
		prev, ok := cameFrom[k]
		if !ok {
			break
		}
		k = prev
	}

	path := make([]types.Coordinate, len(cellPath))
	for i, k := range cellPath {
		path[len(cellPath)-1-i] = k.coordinate()
	}
	path[0] = start
	path[len(path)-1] = end
	return path
}
