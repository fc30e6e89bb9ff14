// Package oceangrid implements the two-level hierarchical ocean lattice:
// cell classification, the depth model, cost multipliers, hazard-zone
// overlays, and neighbor queries (spec component C3).
package oceangrid

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/MeKo-Tech/shiproute/internal/geo"
	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/types"
)

// CellType tags a grid cell's traversal classification.
type CellType string

const (
	CellLand    CellType = "LAND"
	CellShallow CellType = "SHALLOW"
	CellHazard  CellType = "HAZARD"
	CellWater   CellType = "WATER"
	CellUnknown CellType = "UNKNOWN"
)

const (
	// Level1Resolution is the coarse lattice spacing in degrees.
	Level1Resolution = 1.0
	// Level2Resolution is the fine lattice spacing in degrees.
	Level2Resolution = 0.1

	depthShallowBoundaryM = 50.0

	costWater   = 1.0
	costShallow = 3.0
	costHazard  = 2.5
)

// DefaultBounds is the default ocean coverage area.
var DefaultBounds = types.BoundingBox{MinLat: -60, MaxLat: 85, MinLon: -180, MaxLon: 180}

// CellKey uniquely addresses a cell by its rounded lattice center.
type CellKey struct {
	Level int
	Row   int
	Col   int
}

// Cell is a single lattice cell.
type Cell struct {
	Center        types.Coordinate
	Level         int
	Type          CellType
	DepthM        float64
	Cost          float64 // >= 1.0 before overlays (a traffic-lane overlay can scale it below 1), +Inf for LAND
	WeatherFactor float64
}

// Bounds returns the lat/lon rectangle the cell covers, half a resolution
// step on each side of its center.
func (c Cell) Bounds(resolution float64) types.BoundingBox {
	half := resolution / 2
	return types.BoundingBox{
		MinLat: c.Center.Lat - half,
		MaxLat: c.Center.Lat + half,
		MinLon: c.Center.Lon - half,
		MaxLon: c.Center.Lon + half,
	}
}

// Grid is the Level-1 or Level-2 lattice over a bounding box.
type Grid struct {
	level      int
	resolution float64
	bounds     types.BoundingBox
	cells      map[CellKey]*Cell
	atlas      *landatlas.Atlas
	logger     *slog.Logger
	fullClass  bool
}

// Option configures grid construction.
type Option func(*Grid)

// WithLogger sets the structured logger used during (potentially slow)
// classification, mirroring the teacher's progress-reporting convention.
func WithLogger(l *slog.Logger) Option {
	return func(g *Grid) { g.logger = l }
}

// WithFullClassification disables the Level-1 sample-mode shortcut (every
// 4th cell) and land-checks every cell. This is the spec §9 opt-in "full
// classification" mode; Level-2 always classifies every cell regardless.
func WithFullClassification() Option {
	return func(g *Grid) { g.fullClass = true }
}

// WithBounds restricts the lattice to a smaller area than DefaultBounds,
// useful for tests and for planners that only need a local grid.
func WithBounds(b types.BoundingBox) Option {
	return func(g *Grid) { g.bounds = b }
}

// New builds a grid at the given level (1 or 2) against the supplied land
// atlas. Level-1 cells are classified in sample mode (every 4th cell,
// spec §4.3) unless WithFullClassification is given; Level-2 cells are
// always fully classified.
func New(level int, atlas *landatlas.Atlas, opts ...Option) (*Grid, error) {
	if level != 1 && level != 2 {
		return nil, fmt.Errorf("oceangrid: invalid level %d", level)
	}

	g := &Grid{
		level:      level,
		resolution: Level1Resolution,
		bounds:     DefaultBounds,
		cells:      make(map[CellKey]*Cell),
		atlas:      atlas,
		logger:     slog.Default(),
	}
	if level == 2 {
		g.resolution = Level2Resolution
	}
	for _, opt := range opts {
		opt(g)
	}

	g.classify()
	return g, nil
}

// Level reports which lattice level (1 or 2) this grid is.
func (g *Grid) Level() int { return g.level }

// Resolution reports the lattice spacing in degrees.
func (g *Grid) Resolution() float64 { return g.resolution }

func snap(value, resolution float64) float64 {
	return math.Round(value/resolution) * resolution
}

func (g *Grid) keyFor(c types.Coordinate) CellKey {
	row := int(math.Round(c.Lat / g.resolution))
	col := int(math.Round(c.Lon / g.resolution))
	return CellKey{Level: g.level, Row: row, Col: col}
}

func (g *Grid) centerFor(key CellKey) types.Coordinate {
	return types.Coordinate{
		Lat: float64(key.Row) * g.resolution,
		Lon: float64(key.Col) * g.resolution,
	}
}

func (g *Grid) classify() {
	rows := int(math.Round((g.bounds.MaxLat - g.bounds.MinLat) / g.resolution))
	cols := int(math.Round((g.bounds.MaxLon - g.bounds.MinLon) / g.resolution))
	total := (rows + 1) * (cols + 1)
	classified := 0

	index := 0
	for r := 0; r <= rows; r++ {
		lat := snap(g.bounds.MinLat+float64(r)*g.resolution, g.resolution)
		for c := 0; c <= cols; c++ {
			lon := snap(g.bounds.MinLon+float64(c)*g.resolution, g.resolution)
			center := types.Coordinate{Lat: lat, Lon: lon}
			key := g.keyFor(center)

			sampleMode := g.level == 1 && !g.fullClass
			checkLand := !sampleMode || index%4 == 0
			index++

			cell := &Cell{Center: center, Level: g.level}
			if checkLand && g.atlas.IsLand(center) {
				cell.Type = CellLand
				cell.Cost = math.Inf(1)
			} else {
				depth := depthAt(center)
				cell.DepthM = depth
				if depth < depthShallowBoundaryM {
					cell.Type = CellShallow
					cell.Cost = costShallow
				} else {
					cell.Type = CellWater
					cell.Cost = costWater
				}
			}
			cell.WeatherFactor = 1.0

			g.cells[key] = cell
			classified++
		}
		if g.logger != nil && rows > 0 && r%50 == 0 {
			g.logger.Debug("oceangrid classification progress",
				"level", g.level, "classified", classified, "total", total)
		}
	}
}

// GetCell returns the cell whose lattice center is nearest to c, or nil if
// outside the grid's bounds.
func (g *Grid) GetCell(c types.Coordinate) *Cell {
	if !g.bounds.Contains(c) {
		return nil
	}
	key := g.keyFor(c)
	return g.cells[key]
}

// AllCells returns every cell in the grid. Intended for diagnostics/tests;
// callers needing performance should use GetCell/Neighbors instead of
// scanning this.
func (g *Grid) AllCells() []*Cell {
	out := make([]*Cell, 0, len(g.cells))
	for _, c := range g.cells {
		out = append(out, c)
	}
	return out
}

// GetWaterCells returns every non-LAND cell.
func (g *Grid) GetWaterCells() []*Cell {
	out := make([]*Cell, 0, len(g.cells))
	for _, c := range g.cells {
		if c.Type != CellLand {
			out = append(out, c)
		}
	}
	return out
}

// GetNearestWaterCell linearly scans for the non-LAND cell nearest to c
// within maxDeg planar degrees, returning nil if none qualifies. Used for
// port snapping (spec §4.3, §4.10).
func (g *Grid) GetNearestWaterCell(c types.Coordinate, maxDeg float64) *Cell {
	var best *Cell
	bestDist := math.Inf(1)

	for _, cell := range g.cells {
		if cell.Type == CellLand {
			continue
		}
		d := geo.PlanarDistanceNM(c, cell.Center) / geo.DegreeNM
		if d <= maxDeg && d < bestDist {
			bestDist = d
			best = cell
		}
	}
	return best
}

// Neighbors returns the 4- or 8-connected lattice neighbors of a cell,
// excluding LAND cells and any cell outside the grid.
func (g *Grid) Neighbors(c *Cell, diagonal bool) []*Cell {
	key := g.keyFor(c.Center)
	offsets := [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	if diagonal {
		offsets = append(offsets, [2]int{-1, -1}, [2]int{-1, 1}, [2]int{1, -1}, [2]int{1, 1})
	}

	out := make([]*Cell, 0, len(offsets))
	for _, off := range offsets {
		nk := CellKey{Level: key.Level, Row: key.Row + off[0], Col: key.Col + off[1]}
		if cell, ok := g.cells[nk]; ok && cell.Type != CellLand {
			out = append(out, cell)
		}
	}
	return out
}

// AddHazardZone applies a cost multiplier to every non-LAND cell whose
// center lies within radiusDeg planar degrees of center, setting the
// cell's type to HAZARD unless it is already LAND — unconditionally,
// regardless of the sign of mult. Traffic-lane preference overlays use
// mult < 1 and still mark affected cells HAZARD; only the resulting cost
// distinguishes them from a raised-cost hazard.
//
// Rather than testing every cell in the grid against center, this walks
// only the row/col key range the zone's bounding box can possibly touch
// (derived the same way keyFor addresses a single coordinate), so cost is
// proportional to the zone's footprint instead of the whole lattice.
func (g *Grid) AddHazardZone(center types.Coordinate, radiusDeg, mult float64) {
	rowSpan := int(math.Ceil(radiusDeg/g.resolution)) + 1
	colSpan := int(math.Ceil(radiusDeg/(g.resolution*math.Max(math.Cos(center.Lat*math.Pi/180), 0.01)))) + 1
	centerKey := g.keyFor(center)

	for dr := -rowSpan; dr <= rowSpan; dr++ {
		for dc := -colSpan; dc <= colSpan; dc++ {
			key := CellKey{Level: g.level, Row: centerKey.Row + dr, Col: centerKey.Col + dc}
			cell, ok := g.cells[key]
			if !ok || cell.Type == CellLand {
				continue
			}
			d := geo.PlanarDistanceNM(center, cell.Center) / geo.DegreeNM
			if d > radiusDeg {
				continue
			}
			cell.Cost *= mult
			cell.Type = CellHazard
		}
	}
}

// depthAt returns a synthetic depth in meters for a coordinate, using
// latitude bands overridden by named continental-shelf rectangles —
// matching the original ocean_grid.py depth model.
func depthAt(c types.Coordinate) float64 {
	depth := 4000.0
	switch {
	case c.Lat > 60 || c.Lat < -50:
		depth = 3500
	case math.Abs(c.Lat) < 10:
		depth = 4000
	}

	switch {
	case c.Lat >= 35 && c.Lat <= 45 && c.Lon >= -20 && c.Lon <= 40:
		depth = 200 // Mediterranean / North Africa shelf
	case c.Lat >= 20 && c.Lat <= 35 && c.Lon >= 50 && c.Lon <= 75:
		depth = 150 // Arabian Sea shelf
	case c.Lat >= 5 && c.Lat <= 20 && c.Lon >= 85 && c.Lon <= 105:
		depth = 100 // SE Asia shelf
	case c.Lat >= -15 && c.Lat <= 5 && c.Lon >= 95 && c.Lon <= 140:
		depth = 80 // Indonesian shelf
	}

	return depth
}
