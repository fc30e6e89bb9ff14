package voyage

import (
	"context"
	"math"
	"testing"

	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/MeKo-Tech/shiproute/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustModel(t *testing.T, vt VesselType) *Model {
	t.Helper()
	m, err := NewModel(DefaultCatalog(), vt, hazard.New(landatlas.New()), weather.New(nil))
	require.NoError(t, err)
	return m
}

func TestNewModelRejectsUnknownVessel(t *testing.T) {
	_, err := NewModel(DefaultCatalog(), VesselType("not-a-vessel"), nil, nil)
	require.Error(t, err)
	var engErr *types.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, types.ErrUnknownVessel, engErr.Kind)
}

func TestDailyConsumptionAtDesignSpeedEqualsNominal(t *testing.T) {
	m := mustModel(t, Container4000TEU)
	// At design speed, full load, calm weather: speed_factor=1, load_adjusted=1.
	got := m.DailyConsumption(m.Spec().DesignSpeedKn, 1.0, 1.0)
	assert.InDelta(t, m.Spec().NominalFuelConsumptionTD, got, 1e-9)
}

func TestDailyConsumptionIsCubicInSpeed(t *testing.T) {
	m := mustModel(t, BulkCarrier50k)
	designSpeed := m.Spec().DesignSpeedKn

	half := m.DailyConsumption(designSpeed/2, 1.0, 1.0)
	full := m.DailyConsumption(designSpeed, 1.0, 1.0)

	// Halving speed should drop consumption to 1/8 (cubic law).
	assert.InDelta(t, full/8, half, 1e-6)
}

func TestDailyConsumptionLoadFactorRange(t *testing.T) {
	m := mustModel(t, TankerVLCC)
	empty := m.DailyConsumption(m.Spec().DesignSpeedKn, 1.0, 0.0)
	full := m.DailyConsumption(m.Spec().DesignSpeedKn, 1.0, 1.0)

	assert.InDelta(t, m.Spec().NominalFuelConsumptionTD*0.6, empty, 1e-9)
	assert.InDelta(t, m.Spec().NominalFuelConsumptionTD, full, 1e-9)
	assert.Less(t, empty, full)
}

func TestEstimateVoyageComputesCO2AndDuration(t *testing.T) {
	m := mustModel(t, Container10000TEU)
	est := m.EstimateVoyage(1900, m.Spec().DesignSpeedKn, 1.0, 1.0)

	assert.InDelta(t, 1900/m.Spec().DesignSpeedKn, est.DurationHours, 1e-9)
	assert.InDelta(t, est.TotalFuelTons*CO2PerFuelTon, est.TotalCO2Tons, 1e-9)
	assert.Greater(t, est.TotalFuelTons, 0.0)
}

func TestEstimateVoyageFlagsInsufficientFuel(t *testing.T) {
	m := mustModel(t, GeneralCargo)
	// A very long voyage at design speed should exceed the small tank.
	est := m.EstimateVoyage(50000, m.Spec().DesignSpeedKn, 1.0, 1.0)
	assert.False(t, est.SufficientFuel)
	assert.Greater(t, est.TanksNeeded, 1.0)
}

func TestCompareSpeedsIdentifiesMostEconomicalAndFastest(t *testing.T) {
	m := mustModel(t, Container14000TEU)
	cmp := m.CompareSpeeds(5000, []float64{12, 16, 20}, 1.0)

	require.Len(t, cmp.Scenarios, 3)
	assert.Equal(t, 12.0, cmp.MostEconomicalSpeedKn)
	assert.Equal(t, 20.0, cmp.FastestSpeedKn)
	assert.GreaterOrEqual(t, cmp.FuelSavingsVsFastest, 0.0)
}

func TestSegmentCostIsInfiniteOverLand(t *testing.T) {
	atlas := landatlas.New()
	hz := hazard.New(atlas)
	cost := SegmentCost(context.Background(),
		types.Coordinate{Lat: 22.0, Lon: 78.0},
		types.Coordinate{Lat: 22.1, Lon: 78.1},
		hz, nil, 1)
	assert.True(t, math.IsInf(cost, 1))
}

func TestSegmentCostOverOpenWaterIsFinitePositive(t *testing.T) {
	atlas := landatlas.New()
	hz := hazard.New(atlas)
	wx := weather.New(nil)
	cost := SegmentCost(context.Background(),
		types.Coordinate{Lat: 10.0, Lon: 65.0},
		types.Coordinate{Lat: 10.1, Lon: 65.1},
		hz, wx, 1)
	assert.Greater(t, cost, 0.0)
	assert.False(t, math.IsInf(cost, 1))
}

func TestEvaluateSumsHaversineDistance(t *testing.T) {
	m := mustModel(t, TankerAframax)
	route := []types.Coordinate{
		{Lat: 19.0, Lon: 72.8},
		{Lat: 15.0, Lon: 73.0},
		{Lat: 10.0, Lon: 75.0},
	}
	metrics := m.Evaluate(route, m.Spec().DesignSpeedKn, 1.0, 1.0)
	assert.Greater(t, metrics.DistanceNM, 0.0)
	assert.Equal(t, m.Spec().DesignSpeedKn, metrics.AverageSpeedKn)
	assert.Greater(t, metrics.FuelTons, 0.0)
}

func TestDefaultCatalogHasNineVessels(t *testing.T) {
	all := DefaultCatalog().All()
	assert.Len(t, all, 9)
}
