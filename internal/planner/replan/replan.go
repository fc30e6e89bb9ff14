// Package replan implements spec component C9, the incremental
// LPA*-style replanner used for mid-voyage rerouting: g/rhs node values,
// priority-key ordering, and a bounded compute-shortest-path loop that
// only revisits nodes affected by a changed-obstacle set instead of
// recomputing the whole route from scratch.
package replan

import (
	"container/heap"
	"context"
	"log/slog"
	"math"

	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/types"
)

// StepNM is the default grid step size in nautical miles (spec's d_star
// reference uses 20 nm).
const StepNM = 20.0

// MaxIterations bounds the compute-shortest-path loop.
const MaxIterations = 500

// MaxPathVertices guards path extraction against cycles.
const MaxPathVertices = 1000

type cellKey struct {
	lat float64
	lon float64
}

func (k cellKey) coordinate() types.Coordinate {
	return types.Coordinate{Lat: k.lat, Lon: k.lon}
}

func snap(v, step float64) float64 {
	return math.Round(v/step) * step
}

type lpaNode struct {
	key        cellKey
	g, rhs     float64
	heapIndex  int
	inOpen     bool
	insertSeq  int
}

func newNode(k cellKey) *lpaNode {
	return &lpaNode{key: k, g: math.Inf(1), rhs: math.Inf(1), heapIndex: -1}
}

// priorityKey is the LPA* key: (min(g,rhs)+h, min(g,rhs)), with a stable
// insertion-order tie-break per spec §4.9's "pop in insertion order".
type priorityKey struct {
	primary   float64
	secondary float64
	insertSeq int
}

func (a priorityKey) less(b priorityKey) bool {
	if a.primary != b.primary {
		return a.primary < b.primary
	}
	if a.secondary != b.secondary {
		return a.secondary < b.secondary
	}
	return a.insertSeq < b.insertSeq
}

type openQueue struct {
	items []*lpaNode
	keys  map[*lpaNode]priorityKey
}

func newOpenQueue() *openQueue {
	return &openQueue{keys: make(map[*lpaNode]priorityKey)}
}

func (q *openQueue) Len() int { return len(q.items) }
func (q *openQueue) Less(i, j int) bool {
	return q.keys[q.items[i]].less(q.keys[q.items[j]])
}
func (q *openQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].heapIndex, q.items[j].heapIndex = i, j
}
func (q *openQueue) Push(x interface{}) {
	n := x.(*lpaNode)
	n.heapIndex = len(q.items)
	q.items = append(q.items, n)
}
func (q *openQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	item.heapIndex = -1
	return item
}

// Service holds the incremental planning state for one start/goal pair.
// A Service is scoped to a single route: a new mid-voyage replan target
// requires a new Service.
type Service struct {
	atlas     *landatlas.Atlas
	stepDeg   float64
	bounds    types.BoundingBox
	logger    *slog.Logger
	nodes     map[cellKey]*lpaNode
	obstacles map[cellKey]bool
	open      *openQueue
	nextSeq   int
	start     cellKey
	goal      cellKey
}

// Option configures a Service.
type Option func(*Service)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithStepNM overrides the default 20 nm grid step.
func WithStepNM(nm float64) Option {
	return func(s *Service) { s.stepDeg = nm / 60.0 }
}

// New builds an incremental replanner rooted at start with target goal,
// bounded to a padded box around both (spec §4.9 is grid-local, like the
// sampling and A* planners).
func New(atlas *landatlas.Atlas, start, goal types.Coordinate, opts ...Option) *Service {
	s := &Service{
		atlas:     atlas,
		stepDeg:   StepNM / 60.0,
		logger:    slog.Default(),
		nodes:     make(map[cellKey]*lpaNode),
		obstacles: make(map[cellKey]bool),
		open:      newOpenQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}

	minLat := math.Min(start.Lat, goal.Lat) - 2.0
	maxLat := math.Max(start.Lat, goal.Lat) + 2.0
	minLon := math.Min(start.Lon, goal.Lon) - 2.0
	maxLon := math.Max(start.Lon, goal.Lon) + 2.0
	s.bounds = types.BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}

	s.start = cellKey{lat: snap(start.Lat, s.stepDeg), lon: snap(start.Lon, s.stepDeg)}
	s.goal = cellKey{lat: snap(goal.Lat, s.stepDeg), lon: snap(goal.Lon, s.stepDeg)}

	startNode := s.nodeAt(s.start)
	startNode.rhs = 0
	s.pushOrUpdate(startNode)
	s.nodeAt(s.goal)

	return s
}

func (s *Service) nodeAt(k cellKey) *lpaNode {
	n, ok := s.nodes[k]
	if !ok {
		n = newNode(k)
		s.nodes[k] = n
	}
	return n
}

func (s *Service) heuristic(k cellKey) float64 {
	dLat := k.lat - s.goal.lat
	dLon := k.lon - s.goal.lon
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

func (s *Service) calcKey(n *lpaNode) priorityKey {
	m := math.Min(n.g, n.rhs)
	seq := n.insertSeq
	return priorityKey{primary: m + s.heuristic(n.key), secondary: m, insertSeq: seq}
}

func (s *Service) pushOrUpdate(n *lpaNode) {
	if n.insertSeq == 0 && !n.inOpen {
		s.nextSeq++
		n.insertSeq = s.nextSeq
	}
	key := s.calcKey(n)
	if n.inOpen {
		s.open.keys[n] = key
		heap.Fix(s.open, n.heapIndex)
		return
	}
	s.open.keys[n] = key
	n.inOpen = true
	heap.Push(s.open, n)
}

func (s *Service) removeFromOpen(n *lpaNode) {
	if !n.inOpen {
		return
	}
	heap.Remove(s.open, n.heapIndex)
	delete(s.open.keys, n)
	n.inOpen = false
}

// neighborOffsets enumerates in the spec §4.9 tie-break order: N, E, S, W,
// then diagonals.
var neighborOffsets = []cellKey{
	{lat: 1, lon: 0},   // N
	{lat: 0, lon: 1},   // E
	{lat: -1, lon: 0},  // S
	{lat: 0, lon: -1},  // W
	{lat: 1, lon: 1},   // NE
	{lat: 1, lon: -1},  // NW
	{lat: -1, lon: 1},  // SE
	{lat: -1, lon: -1}, // SW
}

// neighborsOf returns the in-bounds neighbor keys of k, creating their
// node entries on demand (the grid is discovered lazily, same as the
// reference algorithm's on-demand node table). Keys are snapped to the
// step lattice so they compare equal to keys snapped from coordinates
// (start, goal, changed obstacles).
func (s *Service) neighborsOf(k cellKey) []cellKey {
	out := make([]cellKey, 0, 8)
	for _, off := range neighborOffsets {
		n := cellKey{lat: snap(k.lat+off.lat*s.stepDeg, s.stepDeg), lon: snap(k.lon+off.lon*s.stepDeg, s.stepDeg)}
		c := n.coordinate()
		if c.Lat < s.bounds.MinLat || c.Lat > s.bounds.MaxLat || c.Lon < s.bounds.MinLon || c.Lon > s.bounds.MaxLon {
			continue
		}
		out = append(out, n)
	}
	return out
}

// edgeCost returns the traversal cost between adjacent cells a and b, or
// +Inf if either is land or in the dynamic obstacle set.
func (s *Service) edgeCost(a, b cellKey) float64 {
	if s.blocked(a) || s.blocked(b) {
		return math.Inf(1)
	}
	dLat := a.lat - b.lat
	dLon := a.lon - b.lon
	return math.Sqrt(dLat*dLat+dLon*dLon) * 60.0
}

func (s *Service) blocked(k cellKey) bool {
	if s.obstacles[k] {
		return true
	}
	return s.atlas.IsLand(k.coordinate())
}

// updateVertex recomputes rhs(n) from its neighbors (spec §4.9's one-step
// lookahead) and repositions n in the open set according to local
// consistency.
func (s *Service) updateVertex(n *lpaNode) {
	if n.key != s.start {
		best := math.Inf(1)
		for _, nb := range s.neighborsOf(n.key) {
			pred := s.nodeAt(nb)
			c := best
			if cand := pred.g + s.edgeCost(nb, n.key); cand < c {
				c = cand
			}
			best = c
		}
		n.rhs = best
	}

	if n.g != n.rhs {
		s.pushOrUpdate(n)
	} else {
		s.removeFromOpen(n)
	}
}

// computeShortestPath runs the bounded LPA* main loop (spec §4.9 step 2).
func (s *Service) computeShortestPath(ctx context.Context) error {
	iterations := 0
	goalNode := s.nodeAt(s.goal)

	for s.open.Len() > 0 && iterations < MaxIterations {
		select {
		case <-ctx.Done():
			return types.NewError(types.ErrPlannerTimeout, "replanner cancelled", ctx.Err())
		default:
		}

		topKey := s.open.keys[s.open.items[0]]
		goalKey := s.calcKey(goalNode)
		if !topKey.less(goalKey) && goalNode.rhs == goalNode.g {
			break
		}

		iterations++
		u := heap.Pop(s.open).(*lpaNode)
		u.inOpen = false
		delete(s.open.keys, u)

		if u.g > u.rhs {
			u.g = u.rhs
			for _, nb := range s.neighborsOf(u.key) {
				s.updateVertex(s.nodeAt(nb))
			}
		} else {
			u.g = math.Inf(1)
			s.updateVertex(u)
			for _, nb := range s.neighborsOf(u.key) {
				s.updateVertex(s.nodeAt(nb))
			}
		}
	}

	s.logger.Debug("replanner compute-shortest-path finished", "iterations", iterations, "goal_g", goalNode.g)
	return nil
}

// Plan computes the initial path from start to goal.
func (s *Service) Plan(ctx context.Context) ([]types.Coordinate, error) {
	if err := s.computeShortestPath(ctx); err != nil {
		return nil, err
	}
	return s.extractPath(), nil
}

// Replan implements spec §4.9's replan(Δ): toggles the obstruction state
// of each changed coordinate, recomputes rhs for its neighbors, and
// reruns the bounded shortest-path loop. Returns an empty polyline if the
// goal remains unreachable; the caller must keep its prior route.
func (s *Service) Replan(ctx context.Context, changed []types.Coordinate) ([]types.Coordinate, error) {
	for _, c := range changed {
		k := cellKey{lat: snap(c.Lat, s.stepDeg), lon: snap(c.Lon, s.stepDeg)}
		s.obstacles[k] = !s.obstacles[k]

		if _, ok := s.nodes[k]; !ok {
			continue
		}
		for _, nb := range s.neighborsOf(k) {
			s.updateVertex(s.nodeAt(nb))
		}
	}

	if err := s.computeShortestPath(ctx); err != nil {
		return nil, err
	}
	return s.extractPath(), nil
}

// extractPath walks greedily from goal back to start, at each step
// choosing the predecessor minimizing g(n') + cost(n', current); guards
// against cycles with a MaxPathVertices cap. Returns nil if the goal's g
// value is still +Inf (no path).
func (s *Service) extractPath() []types.Coordinate {
	goalNode := s.nodeAt(s.goal)
	if math.IsInf(goalNode.g, 1) {
		return nil
	}

	var cells []cellKey
	current := s.goal
	visited := make(map[cellKey]bool)

	for current != s.start && len(cells) < MaxPathVertices {
		cells = append(cells, current)
		visited[current] = true

		var bestPred cellKey
		bestCost := math.Inf(1)
		found := false
		for _, nb := range s.neighborsOf(current) {
			if visited[nb] {
				continue
			}
			predNode := s.nodeAt(nb)
			cost := predNode.g + s.edgeCost(nb, current)
			if cost < bestCost {
				bestCost = cost
				bestPred = nb
				found = true
			}
		}
		if !found {
			return nil
		}
		current = bestPred
	}
	cells = append(cells, s.start)

	path := make([]types.Coordinate, len(cells))
	for i, k := range cells {
		path[len(cells)-1-i] = k.coordinate()
	}
	return path
}
