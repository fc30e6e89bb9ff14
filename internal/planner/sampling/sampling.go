// Package sampling implements spec component C7, the bidirectional
// water-biased sampling planner: two tree arenas grown from start and
// goal, adaptive iteration/step/goal-bias parameters scaled to the
// straight-line distance, near-neighbor rewiring, and a greedy tree
// connection attempt each iteration.
package sampling

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"strconv"

	"github.com/MeKo-Tech/shiproute/internal/geo"
	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/oceangrid"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/MeKo-Tech/shiproute/internal/voyage"
	"github.com/MeKo-Tech/shiproute/internal/weather"
)

// NearNeighborRadiusDeg is the fixed planar-degree radius used for
// rewiring candidates, per spec §4.7 step 6.
const NearNeighborRadiusDeg = 1.0

// Params holds the distance-adapted search parameters.
type Params struct {
	Iterations int
	StepNM     float64
	GoalBias   float64
}

// AdaptParams implements spec §4.7's distance-tiered parameter table.
func AdaptParams(distanceNM float64) Params {
	var p Params
	switch {
	case distanceNM < 500:
		p = Params{Iterations: 400, StepNM: 10}
	case distanceNM < 1000:
		p = Params{Iterations: 300, StepNM: 20}
	case distanceNM < 2000:
		p = Params{Iterations: 200, StepNM: 25}
	default:
		p = Params{Iterations: 150, StepNM: 30}
	}

	switch {
	case distanceNM < 500:
		p.GoalBias = 0.50
	case distanceNM < 1000:
		p.GoalBias = 0.35
	default:
		p.GoalBias = 0.20
	}
	return p
}

func planarDeg(a, b types.Coordinate) float64 {
	return geo.PlanarDistanceNM(a, b) / geo.DegreeNM
}

// node is one vertex of a tree arena.
type node struct {
	pos      types.Coordinate
	parent   *node
	cost     float64
	children []*node
}

// arena is one of the two tree structures (rooted at start or goal).
type arena struct {
	root  *node
	nodes []*node
}

func newArena(root types.Coordinate) *arena {
	r := &node{pos: root}
	return &arena{root: r, nodes: []*node{r}}
}

func (a *arena) nearest(point types.Coordinate) *node {
	best := a.nodes[0]
	bestDist := planarDeg(best.pos, point)
	for _, n := range a.nodes[1:] {
		d := planarDeg(n.pos, point)
		if d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best
}

func (a *arena) within(point types.Coordinate, radiusDeg float64) []*node {
	var out []*node
	for _, n := range a.nodes {
		if planarDeg(n.pos, point) <= radiusDeg {
			out = append(out, n)
		}
	}
	return out
}

func (a *arena) add(n *node) {
	a.nodes = append(a.nodes, n)
	if n.parent != nil {
		n.parent.children = append(n.parent.children, n)
	}
}

func pathToRoot(n *node) []types.Coordinate {
	var out []types.Coordinate
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur.pos)
	}
	// reverse, root first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Result is the outcome of a Plan call.
type Result struct {
	Path       []types.Coordinate
	Connected  bool
	Iterations int
	Cost       float64
	Warnings   []string
}

// Planner grows a bidirectional sampling tree between a start and goal
// point, biased toward classified water cells and the counterpart root.
type Planner struct {
	atlas   *landatlas.Atlas
	hazards *hazard.Service
	weather *weather.Service
	logger  *slog.Logger
	rng     *rand.Rand
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// WithRand overrides the default random source (for deterministic tests).
func WithRand(r *rand.Rand) Option {
	return func(p *Planner) { p.rng = r }
}

// New builds a sampling Planner.
func New(atlas *landatlas.Atlas, hazards *hazard.Service, wx *weather.Service, opts ...Option) *Planner {
	p := &Planner{
		atlas:   atlas,
		hazards: hazards,
		weather: wx,
		logger:  slog.Default(),
		rng:     rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// collisionDensity implements spec §4.7 step 4's density tiers: the
// number of interior samples scales with segment length.
func collisionDensity(lengthDeg float64) int {
	switch {
	case lengthDeg > 1.0:
		return 15
	case lengthDeg > 0.5:
		return 8
	case lengthDeg > 0.1:
		return 4
	default:
		return 2
	}
}

// collisionFree samples interior points plus endpoints along a-b and
// reports whether every sample is water.
func (p *Planner) collisionFree(a, b types.Coordinate) bool {
	if p.atlas.IsLand(a) || p.atlas.IsLand(b) {
		return false
	}
	length := planarDeg(a, b)
	n := collisionDensity(length)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		mid := types.Coordinate{Lat: a.Lat + t*(b.Lat-a.Lat), Lon: a.Lon + t*(b.Lon-a.Lon)}
		if p.atlas.IsLand(mid) {
			return false
		}
	}
	return true
}

func (p *Planner) segmentCost(ctx context.Context, a, b types.Coordinate, month int) float64 {
	return voyage.SegmentCost(ctx, a, b, p.hazards, p.weather, month)
}

// waterSampler caches the three depth-tiered cell pools used by spec
// §4.7's water-biased sampling, built once per Plan call from a local
// Level-2 grid over the inflated start/goal bounding box.
type waterSampler struct {
	deep    []types.Coordinate
	shallow []types.Coordinate
	all     []types.Coordinate
}

var knownSafeAreas = []types.Coordinate{
	{Lat: 15.0, Lon: 68.0},
	{Lat: 10.0, Lon: 75.0},
	{Lat: 5.0, Lon: 80.0},
	{Lat: 12.0, Lon: 82.0},
	{Lat: 18.0, Lon: 70.0},
	{Lat: 11.0, Lon: 79.0},
}

func buildWaterSampler(atlas *landatlas.Atlas, start, goal types.Coordinate) *waterSampler {
	const margin = 3.0
	bounds := types.BoundingBoxFromPoints(start, goal).Expand(margin)

	grid, err := oceangrid.New(2, atlas, oceangrid.WithBounds(bounds))
	if err != nil {
		return &waterSampler{}
	}

	ws := &waterSampler{}
	for _, c := range grid.GetWaterCells() {
		ws.all = append(ws.all, c.Center)
		switch {
		case c.DepthM > 50:
			ws.deep = append(ws.deep, c.Center)
		case c.DepthM >= 20:
			ws.shallow = append(ws.shallow, c.Center)
		}
	}
	return ws
}

// sample implements the 0.7/0.2/0.1 depth-tiered draw with the fallback
// chain of spec §4.7's water-biased sampling paragraph.
func (ws *waterSampler) sample(rng *rand.Rand, atlas *landatlas.Atlas, start, goal types.Coordinate) types.Coordinate {
	u := rng.Float64()
	switch {
	case u < 0.7 && len(ws.deep) > 0:
		return ws.deep[rng.Intn(len(ws.deep))]
	case u < 0.9 && len(ws.shallow) > 0:
		return ws.shallow[rng.Intn(len(ws.shallow))]
	case len(ws.all) > 0:
		return ws.all[rng.Intn(len(ws.all))]
	}

	mid := types.Coordinate{Lat: (start.Lat + goal.Lat) / 2, Lon: (start.Lon + goal.Lon) / 2}
	if !atlas.IsLand(mid) {
		return mid
	}
	for _, c := range knownSafeAreas {
		if !atlas.IsLand(c) {
			return c
		}
	}
	return types.Coordinate{Lat: mid.Lat, Lon: mid.Lon - 1.0}
}

// extend steers the nearest node in t toward target by at most stepDeg,
// collision-checks the new segment, picks the best parent among near
// neighbors (spec §4.7 steps 2-6), and rewires neighbors that would
// benefit from routing through the new node (step 7). Returns nil if the
// step is blocked by land.
func (p *Planner) extend(ctx context.Context, t *arena, target types.Coordinate, stepDeg float64, month int) *node {
	nearest := t.nearest(target)
	dist := planarDeg(nearest.pos, target)

	var newPos types.Coordinate
	if dist <= stepDeg {
		newPos = target
	} else {
		frac := stepDeg / dist
		newPos = types.Coordinate{
			Lat: nearest.pos.Lat + frac*(target.Lat-nearest.pos.Lat),
			Lon: nearest.pos.Lon + frac*(target.Lon-nearest.pos.Lon),
		}
	}

	if !p.collisionFree(nearest.pos, newPos) {
		return nil
	}

	// Step 6: choose the near-neighbor minimizing cost_from_root + segment_cost.
	bestParent := nearest
	bestCost := nearest.cost + p.segmentCost(ctx, nearest.pos, newPos, month)
	neighbors := t.within(newPos, NearNeighborRadiusDeg)
	for _, n := range neighbors {
		if n == nearest || !p.collisionFree(n.pos, newPos) {
			continue
		}
		c := n.cost + p.segmentCost(ctx, n.pos, newPos, month)
		if c < bestCost {
			bestCost = c
			bestParent = n
		}
	}

	newNode := &node{pos: newPos, parent: bestParent, cost: bestCost}
	t.add(newNode)

	// Step 7: rewire neighbors whose cost improves by routing through newNode.
	for _, n := range neighbors {
		if n == bestParent || !p.collisionFree(newNode.pos, n.pos) {
			continue
		}
		candidateCost := newNode.cost + p.segmentCost(ctx, newNode.pos, n.pos, month)
		if candidateCost < n.cost {
			rewireParent(n, newNode, candidateCost)
		}
	}

	return newNode
}

// rewireParent re-parents n under newParent and propagates the cost delta
// to every descendant of n, keeping the tree's cost_from_root values
// consistent.
func rewireParent(n, newParent *node, newCost float64) {
	if n.parent != nil {
		children := n.parent.children
		for i, c := range children {
			if c == n {
				n.parent.children = append(children[:i], children[i+1:]...)
				break
			}
		}
	}
	delta := newCost - n.cost
	n.parent = newParent
	n.cost = newCost
	newParent.children = append(newParent.children, n)
	propagateCost(n, delta)
}

func propagateCost(n *node, delta float64) {
	for _, c := range n.children {
		c.cost += delta
		propagateCost(c, delta)
	}
}

// Plan runs the bidirectional sampling search from start to goal, for the
// given calendar month (used by the hazard service's seasonal gating).
func (p *Planner) Plan(ctx context.Context, start, goal types.Coordinate, month int) (Result, error) {
	distanceNM := geo.HaversineNM(start, goal)
	params := AdaptParams(distanceNM)
	stepDeg := params.StepNM / geo.DegreeNM

	treeS := newArena(start)
	treeG := newArena(goal)
	ws := buildWaterSampler(p.atlas, start, goal)

	var bestCost = math.Inf(1)
	var bestS, bestG *node

	p.logger.Debug("sampling planner starting", "distance_nm", distanceNM, "iterations", params.Iterations, "goal_bias", params.GoalBias)

	iterations := 0
	for iter := 0; iter < params.Iterations; iter++ {
		select {
		case <-ctx.Done():
			return Result{}, types.NewError(types.ErrPlannerTimeout, "sampling planner cancelled", ctx.Err())
		default:
		}
		iterations = iter + 1

		active, other, otherRoot := treeS, treeG, goal
		if iter%2 == 1 {
			active, other, otherRoot = treeG, treeS, start
		}

		var candidate types.Coordinate
		if p.rng.Float64() < params.GoalBias {
			candidate = otherRoot
		} else {
			candidate = ws.sample(p.rng, p.atlas, start, goal)
		}

		newNode := p.extend(ctx, active, candidate, stepDeg, month)
		if newNode == nil {
			continue
		}

		// Short-circuit: new node is within one step of the other tree's
		// root and a direct segment is clear.
		if d := planarDeg(newNode.pos, otherRoot); d < stepDeg && p.collisionFree(newNode.pos, otherRoot) {
			sNode, gNode := newNode, (*node)(nil)
			if active == treeG {
				sNode, gNode = nil, newNode
			}
			var sPath, gPath []types.Coordinate
			var cost float64
			if sNode != nil {
				sPath = pathToRoot(sNode)
				cost = sNode.cost + p.segmentCost(ctx, sNode.pos, goal, month)
				sPath = append(sPath, goal)
				return finishResult(sPath, cost, iterations, p.atlas), nil
			}
			gPath = pathToRoot(gNode)
			cost = gNode.cost + p.segmentCost(ctx, start, gNode.pos, month)
			full := append([]types.Coordinate{start}, reverseCopy(gPath)...)
			return finishResult(full, cost, iterations, p.atlas), nil
		}

		// Attempt to connect the other tree toward the new node.
		otherNode := p.extend(ctx, other, newNode.pos, stepDeg, month)
		if otherNode != nil && p.collisionFree(newNode.pos, otherNode.pos) {
			var sNode, gNode *node
			if active == treeS {
				sNode, gNode = newNode, otherNode
			} else {
				sNode, gNode = otherNode, newNode
			}
			total := sNode.cost + gNode.cost + p.segmentCost(ctx, sNode.pos, gNode.pos, month)
			if total < bestCost {
				bestCost = total
				bestS, bestG = sNode, gNode
			}
		}
	}

	if bestS == nil || bestG == nil {
		p.logger.Debug("sampling planner found no connection", "iterations", iterations)
		return Result{Iterations: iterations, Connected: false}, nil
	}

	path := pathToRoot(bestS)
	path = append(path, reverseCopy(pathToRoot(bestG))...)
	return finishResult(path, bestCost, iterations, p.atlas), nil
}

func reverseCopy(in []types.Coordinate) []types.Coordinate {
	out := make([]types.Coordinate, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// finishResult sweeps the final path for land crossings per spec §4.7's
// "final check" — reported as warnings, never silently corrected.
func finishResult(path []types.Coordinate, cost float64, iterations int, atlas *landatlas.Atlas) Result {
	res := Result{Path: path, Connected: true, Cost: cost, Iterations: iterations}
	for i, c := range path {
		if atlas.IsLand(c) {
			res.Warnings = append(res.Warnings, "waypoint on land: "+c.String()+" at index "+strconv.Itoa(i))
		}
	}
	return res
}
