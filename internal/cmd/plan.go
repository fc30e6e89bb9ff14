package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MeKo-Tech/shiproute/internal/geojson"
	"github.com/MeKo-Tech/shiproute/internal/orchestrator"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a fuel-optimal route between two coordinates",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().Float64("start-lat", 0, "Start latitude")
	planCmd.Flags().Float64("start-lon", 0, "Start longitude")
	planCmd.Flags().Float64("goal-lat", 0, "Goal latitude")
	planCmd.Flags().Float64("goal-lon", 0, "Goal longitude")
	planCmd.Flags().String("vessel", "container_10000", "Vessel type (see `shiproute fuel --list-vessels`)")
	planCmd.Flags().Float64("speed", 0, "Operating speed in knots (default: 85% of the vessel's design speed)")
	planCmd.Flags().Float64("load-factor", 0.85, "Cargo load factor, 0-1")
	planCmd.Flags().Int("month", int(time.Now().Month()), "Month of year (1-12), for seasonal hazard weighting")
	planCmd.Flags().Duration("timeout", 30*time.Second, "Planning timeout")
	planCmd.Flags().Bool("geojson", false, "Print the route as a GeoJSON FeatureCollection instead of a summary")
	planCmd.Flags().String("geojson-out", "", "Write the GeoJSON FeatureCollection to this file instead of stdout")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	vesselFlag, _ := cmd.Flags().GetString("vessel")
	vessel, err := parseVessel(vesselFlag)
	if err != nil {
		return err
	}

	startLat, _ := cmd.Flags().GetFloat64("start-lat")
	startLon, _ := cmd.Flags().GetFloat64("start-lon")
	goalLat, _ := cmd.Flags().GetFloat64("goal-lat")
	goalLon, _ := cmd.Flags().GetFloat64("goal-lon")
	speed, _ := cmd.Flags().GetFloat64("speed")
	loadFactor, _ := cmd.Flags().GetFloat64("load-factor")
	month, _ := cmd.Flags().GetInt("month")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	wantGeoJSON, _ := cmd.Flags().GetBool("geojson")
	geojsonOut, _ := cmd.Flags().GetString("geojson-out")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	o := buildOrchestrator()
	route, err := o.PlanRoute(ctx, orchestrator.PlanRequest{
		Start:            parseCoordinate(startLat, startLon),
		Goal:             parseCoordinate(goalLat, goalLon),
		Vessel:           vessel,
		OperatingSpeedKn: speed,
		LoadFactor:       loadFactor,
		Month:            month,
	})
	if err != nil {
		return fmt.Errorf("plan route: %w", err)
	}

	if wantGeoJSON || geojsonOut != "" {
		data, err := geojson.Marshal(geojson.RouteToFeatureCollection(route))
		if err != nil {
			return err
		}
		if geojsonOut != "" {
			return os.WriteFile(geojsonOut, data, 0o644)
		}
		fmt.Println(string(data))
		return nil
	}

	printRouteSummary(route)
	return nil
}

func printRouteSummary(route types.Route) {
	fmt.Printf("planner:        %s\n", route.Planner)
	fmt.Printf("waypoints:      %d\n", len(route.Waypoints))
	fmt.Printf("distance:       %.1f nm\n", route.Metrics.DistanceNM)
	fmt.Printf("duration:       %.1f h\n", route.Metrics.DurationHours)
	fmt.Printf("avg speed:      %.1f kn\n", route.Metrics.AverageSpeedKn)
	fmt.Printf("fuel:           %.2f t\n", route.Metrics.FuelTons)
	fmt.Printf("co2:            %.2f t\n", route.Metrics.CO2Tons)
	for _, w := range route.Warnings {
		fmt.Printf("warning:        %s\n", w)
	}
}
