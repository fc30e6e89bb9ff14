package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/orchestrator"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/MeKo-Tech/shiproute/internal/voyage"
	"github.com/MeKo-Tech/shiproute/internal/weather"
)

// buildOrchestrator wires the fixed land atlas, hazard service, weather
// service (no live providers configured yet, so every sample falls back to
// the synthetic generator), and default vessel catalog into a single
// Orchestrator, the way runServe and runGenerate in the teacher wired a
// DataSource/pipeline.Generator pair.
func buildOrchestrator() *orchestrator.Orchestrator {
	atlas := landatlas.New()
	hazards := hazard.New(atlas)
	wx := weather.New(nil, weather.WithTTL(10*time.Minute))
	catalog := voyage.DefaultCatalog()

	return orchestrator.New(atlas, hazards, wx, catalog, orchestrator.WithLogger(logger))
}

func parseVessel(name string) (voyage.VesselType, error) {
	vt := voyage.VesselType(name)
	if _, ok := voyage.DefaultCatalog().Lookup(vt); !ok {
		return "", fmt.Errorf("unknown vessel type %q (see `shiproute fuel --list-vessels`)", name)
	}
	return vt, nil
}

func parseCoordinate(lat, lon float64) types.Coordinate {
	return types.Coordinate{Lat: lat, Lon: lon}
}

// parseCoordinateList parses "lat,lon" pairs from CLI flag values such as
// --block lat,lon --block lat,lon.
func parseCoordinateList(values []string) ([]types.Coordinate, error) {
	coords := make([]types.Coordinate, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid coordinate %q, expected \"lat,lon\"", v)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", v, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", v, err)
		}
		coords = append(coords, types.Coordinate{Lat: lat, Lon: lon})
	}
	return coords, nil
}
