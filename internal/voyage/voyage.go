// Package voyage implements spec component C6, the fuel and emissions
// model: a vessel specifications catalog and the cubic speed/fuel
// consumption law used both to cost individual route segments and to
// summarize a complete route into VoyageMetrics.
package voyage

import (
	"context"
	"math"

	"github.com/MeKo-Tech/shiproute/internal/geo"
	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/MeKo-Tech/shiproute/internal/weather"
)

// VesselType identifies one of the catalog's standard vessel classes.
type VesselType string

const (
	Container4000TEU  VesselType = "container_4000"
	Container10000TEU VesselType = "container_10000"
	Container14000TEU VesselType = "container_14000"
	BulkCarrier50k    VesselType = "bulk_50k"
	BulkCarrier75k    VesselType = "bulk_75k"
	TankerAframax     VesselType = "tanker_aframax"
	TankerVLCC        VesselType = "tanker_vlcc"
	GeneralCargo      VesselType = "general_cargo"
	RoRoShip          VesselType = "roro"
)

// CO2PerFuelTon is the emission factor (spec §4.6): metric tons of CO2
// per metric ton of fuel burned.
const CO2PerFuelTon = 3.17

// Spec holds the physical and consumption characteristics of one vessel
// class, ported from the maritime reference catalog.
type Spec struct {
	Name                     string
	TEUCapacity              int
	LengthM                  float64
	BeamM                    float64
	DraftM                   float64
	DeadweightT              float64
	FuelTankCapacityT        float64
	MainEnginePowerKW        float64
	MaxSpeedKn               float64
	DesignSpeedKn            float64
	NominalFuelConsumptionTD float64 // tons/day at design speed, load factor 1.0, calm water
	WettedSurfaceM2          float64
	BlockCoefficient         float64
	WaveSensitivityFactor    float64
}

// Catalog is the capability the engine consumes for vessel lookups; the
// in-process map below is the default implementation, but callers may
// substitute their own (e.g. one backed by a fleet database).
type Catalog interface {
	Lookup(vt VesselType) (Spec, bool)
	All() map[VesselType]Spec
}

type staticCatalog struct {
	specs map[VesselType]Spec
}

func (c staticCatalog) Lookup(vt VesselType) (Spec, bool) {
	s, ok := c.specs[vt]
	return s, ok
}

func (c staticCatalog) All() map[VesselType]Spec {
	out := make(map[VesselType]Spec, len(c.specs))
	for k, v := range c.specs {
		out[k] = v
	}
	return out
}

// DefaultCatalog returns the built-in nine-vessel specifications table.
func DefaultCatalog() Catalog {
	return staticCatalog{specs: map[VesselType]Spec{
		Container4000TEU: {
			Name: "Container Ship 4000 TEU", TEUCapacity: 4000,
			LengthM: 228, BeamM: 32.2, DraftM: 10.5, DeadweightT: 40000,
			FuelTankCapacityT: 3000, MainEnginePowerKW: 11980,
			MaxSpeedKn: 20, DesignSpeedKn: 17.5,
			NominalFuelConsumptionTD: 58, WettedSurfaceM2: 6800,
			BlockCoefficient: 0.58, WaveSensitivityFactor: 1.2,
		},
		Container10000TEU: {
			Name: "Container Ship 10000 TEU", TEUCapacity: 10000,
			LengthM: 294, BeamM: 32.8, DraftM: 11.5, DeadweightT: 85000,
			FuelTankCapacityT: 4750, MainEnginePowerKW: 44544,
			MaxSpeedKn: 20.5, DesignSpeedKn: 19,
			NominalFuelConsumptionTD: 220, WettedSurfaceM2: 9200,
			BlockCoefficient: 0.60, WaveSensitivityFactor: 1.3,
		},
		Container14000TEU: {
			Name: "Container Ship 14000 TEU (Neo-Panamax)", TEUCapacity: 14000,
			LengthM: 400, BeamM: 54, DraftM: 12, DeadweightT: 160000,
			FuelTankCapacityT: 6000, MainEnginePowerKW: 49440,
			MaxSpeedKn: 22, DesignSpeedKn: 19.5,
			NominalFuelConsumptionTD: 280, WettedSurfaceM2: 14000,
			BlockCoefficient: 0.62, WaveSensitivityFactor: 1.25,
		},
		BulkCarrier50k: {
			Name: "Bulk Carrier 50000 DWT",
			LengthM: 190, BeamM: 30, DraftM: 9.8, DeadweightT: 50000,
			FuelTankCapacityT: 2500, MainEnginePowerKW: 8550,
			MaxSpeedKn: 15, DesignSpeedKn: 14,
			NominalFuelConsumptionTD: 42, WettedSurfaceM2: 5000,
			BlockCoefficient: 0.75, WaveSensitivityFactor: 1.15,
		},
		BulkCarrier75k: {
			Name: "Bulk Carrier 75000 DWT (Capesize)",
			LengthM: 228, BeamM: 32, DraftM: 11.5, DeadweightT: 75000,
			FuelTankCapacityT: 3500, MainEnginePowerKW: 14000,
			MaxSpeedKn: 14.5, DesignSpeedKn: 13.5,
			NominalFuelConsumptionTD: 65, WettedSurfaceM2: 7500,
			BlockCoefficient: 0.78, WaveSensitivityFactor: 1.18,
		},
		TankerAframax: {
			Name: "Tanker Aframax (40000 DWT)",
			LengthM: 228, BeamM: 32, DraftM: 10.2, DeadweightT: 40000,
			FuelTankCapacityT: 2300, MainEnginePowerKW: 8000,
			MaxSpeedKn: 15.5, DesignSpeedKn: 14.5,
			NominalFuelConsumptionTD: 38, WettedSurfaceM2: 5200,
			BlockCoefficient: 0.76, WaveSensitivityFactor: 1.20,
		},
		TankerVLCC: {
			Name: "Tanker VLCC (300000 DWT)",
			LengthM: 333, BeamM: 60, DraftM: 14.8, DeadweightT: 300000,
			FuelTankCapacityT: 8000, MainEnginePowerKW: 32000,
			MaxSpeedKn: 15.5, DesignSpeedKn: 15,
			NominalFuelConsumptionTD: 210, WettedSurfaceM2: 18000,
			BlockCoefficient: 0.82, WaveSensitivityFactor: 1.22,
		},
		GeneralCargo: {
			Name: "General Cargo Ship 26700 DWT",
			LengthM: 175, BeamM: 25.4, DraftM: 9.5, DeadweightT: 26700,
			FuelTankCapacityT: 1800, MainEnginePowerKW: 5000,
			MaxSpeedKn: 16, DesignSpeedKn: 14.5,
			NominalFuelConsumptionTD: 31, WettedSurfaceM2: 3800,
			BlockCoefficient: 0.65, WaveSensitivityFactor: 1.25,
		},
		RoRoShip: {
			Name: "Ro-Ro Ship 5000 CEU",
			LengthM: 200, BeamM: 25, DraftM: 7.0, DeadweightT: 15000,
			FuelTankCapacityT: 2000, MainEnginePowerKW: 12800,
			MaxSpeedKn: 22, DesignSpeedKn: 20,
			NominalFuelConsumptionTD: 95, WettedSurfaceM2: 4500,
			BlockCoefficient: 0.55, WaveSensitivityFactor: 1.35,
		},
	}}
}

// Model computes fuel consumption, emissions, and segment costs for one
// vessel, combining its Spec with hazard and weather services.
type Model struct {
	vessel  VesselType
	spec    Spec
	hazards *hazard.Service
	weather *weather.Service
}

// NewModel builds a fuel model for vt, sourcing the vessel Spec from cat.
// Returns an ErrUnknownVessel-kind error if vt is not in cat.
func NewModel(cat Catalog, vt VesselType, hazards *hazard.Service, wx *weather.Service) (*Model, error) {
	spec, ok := cat.Lookup(vt)
	if !ok {
		return nil, types.NewError(types.ErrUnknownVessel, "unknown vessel type: "+string(vt), nil)
	}
	return &Model{vessel: vt, spec: spec, hazards: hazards, weather: wx}, nil
}

// Spec returns the vessel's catalog specification.
func (m *Model) Spec() Spec { return m.spec }

// DailyConsumption implements spec §4.6's calculate_fuel_consumption: the
// cubic speed law F_day = F_base * (v/V_design)^3 * load_adjusted *
// weather_factor, where load_adjusted = 0.6 + 0.4*loadFactor.
func (m *Model) DailyConsumption(speedKn, weatherFactor, loadFactor float64) float64 {
	speedRatio := speedKn / m.spec.DesignSpeedKn
	speedFactor := speedRatio * speedRatio * speedRatio
	loadAdjusted := 0.6 + 0.4*loadFactor
	return m.spec.NominalFuelConsumptionTD * speedFactor * loadAdjusted * weatherFactor
}

// VoyageEstimate is the result of estimating total fuel for a voyage leg.
type VoyageEstimate struct {
	DistanceNM       float64
	AvgSpeedKn       float64
	DurationHours    float64
	DurationDays     float64
	TotalFuelTons    float64
	DailyFuelTons    float64
	TotalCO2Tons     float64
	TankCapacityT    float64
	SufficientFuel   bool
	TanksNeeded      float64
	FuelCostUSD      float64
}

// fuelCostPerTon is the nominal cost used for the cost_estimate diagnostic
// (spec supplemented feature; the original uses a fixed $450/ton).
const fuelCostPerTon = 450.0

// EstimateVoyage implements spec §4.6's estimate_voyage_fuel for a single
// distance/speed pair.
func (m *Model) EstimateVoyage(distanceNM, avgSpeedKn, weatherFactor, loadFactor float64) VoyageEstimate {
	daily := m.DailyConsumption(avgSpeedKn, weatherFactor, loadFactor)

	var hours float64
	if avgSpeedKn > 0 {
		hours = distanceNM / avgSpeedKn
	}
	days := hours / 24

	totalFuel := daily * days
	totalCO2 := totalFuel * CO2PerFuelTon

	var tanksNeeded float64
	if m.spec.FuelTankCapacityT > 0 {
		tanksNeeded = totalFuel / m.spec.FuelTankCapacityT
	}

	return VoyageEstimate{
		DistanceNM:     distanceNM,
		AvgSpeedKn:     avgSpeedKn,
		DurationHours:  hours,
		DurationDays:   days,
		TotalFuelTons:  totalFuel,
		DailyFuelTons:  daily,
		TotalCO2Tons:   totalCO2,
		TankCapacityT:  m.spec.FuelTankCapacityT,
		SufficientFuel: totalFuel <= m.spec.FuelTankCapacityT,
		TanksNeeded:    tanksNeeded,
		FuelCostUSD:    totalFuel * fuelCostPerTon,
	}
}

// SpeedScenario is one row of a CompareSpeeds comparison.
type SpeedScenario struct {
	SpeedKn    float64
	TimeDays   float64
	FuelTons   float64
	CO2Tons    float64
	FuelCostUSD float64
}

// SpeedComparison is the supplemented "should we slow down" report.
type SpeedComparison struct {
	DistanceNM            float64
	Scenarios             []SpeedScenario
	MostEconomicalSpeedKn float64
	FastestSpeedKn        float64
	FuelSavingsVsFastest  float64
}

// CompareSpeeds implements the supplemented compare_speed_scenarios
// feature: fuel/time/CO2/cost across a set of candidate average speeds,
// at full load and the given weather factor.
func (m *Model) CompareSpeeds(distanceNM float64, speedsKn []float64, weatherFactor float64) SpeedComparison {
	scenarios := make([]SpeedScenario, 0, len(speedsKn))
	for _, v := range speedsKn {
		est := m.EstimateVoyage(distanceNM, v, weatherFactor, 1.0)
		scenarios = append(scenarios, SpeedScenario{
			SpeedKn: v, TimeDays: est.DurationDays, FuelTons: est.TotalFuelTons,
			CO2Tons: est.TotalCO2Tons, FuelCostUSD: est.FuelCostUSD,
		})
	}

	result := SpeedComparison{DistanceNM: distanceNM, Scenarios: scenarios}
	if len(scenarios) == 0 {
		return result
	}

	mostEconomical, fastest := scenarios[0], scenarios[0]
	for _, sc := range scenarios[1:] {
		if sc.FuelTons < mostEconomical.FuelTons {
			mostEconomical = sc
		}
		if sc.TimeDays < fastest.TimeDays {
			fastest = sc
		}
	}
	result.MostEconomicalSpeedKn = mostEconomical.SpeedKn
	result.FastestSpeedKn = fastest.SpeedKn
	result.FuelSavingsVsFastest = fastest.FuelTons - mostEconomical.FuelTons
	return result
}

// SegmentCost implements spec §4.6's segment_cost(a, b): the planar-degree
// distance between a and b, scaled by the hazard cost multiplier and wind
// factor evaluated at the segment midpoint. ctx bounds the weather lookup
// per spec §5; planners call this in tight inner loops and must be able to
// cancel it promptly.
func SegmentCost(ctx context.Context, a, b types.Coordinate, hazards *hazard.Service, wx *weather.Service, month int) float64 {
	mid := types.Coordinate{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}

	hazardMult := 1.0
	if hazards != nil {
		hazardMult = hazards.EvaluatePoint(mid, month).CostMultiplier
	}
	if math.IsInf(hazardMult, 1) {
		return math.Inf(1)
	}

	windFactor := 1.0
	if wx != nil {
		sample := wx.Sample(ctx, mid.Lat, mid.Lon, 0)
		windFactor = weather.WindFactor(sample.WindSpeedKt)
	}

	return geo.PlanarDistanceNM(a, b) * hazardMult * windFactor
}

// Evaluate implements spec §4.6's route-level summary: per-segment
// haversine distance accumulated into VoyageMetrics, using avgSpeedKn to
// derive duration and the fuel model to derive fuel/CO2.
func (m *Model) Evaluate(waypoints []types.Coordinate, avgSpeedKn, weatherFactor, loadFactor float64) types.VoyageMetrics {
	var totalNM float64
	for i := 1; i < len(waypoints); i++ {
		totalNM += geo.HaversineNM(waypoints[i-1], waypoints[i])
	}

	est := m.EstimateVoyage(totalNM, avgSpeedKn, weatherFactor, loadFactor)

	return types.VoyageMetrics{
		DistanceNM:     totalNM,
		DurationHours:  est.DurationHours,
		FuelTons:       est.TotalFuelTons,
		CO2Tons:        est.TotalCO2Tons,
		AverageSpeedKn: avgSpeedKn,
	}
}
