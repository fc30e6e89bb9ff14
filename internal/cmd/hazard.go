package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var hazardCmd = &cobra.Command{
	Use:   "hazard",
	Short: "Evaluate hazard exposure at a point or along a route",
}

var hazardPointCmd = &cobra.Command{
	Use:   "point",
	Short: "Evaluate the hazard severity and cost multiplier at a single coordinate",
	RunE:  runHazardPoint,
}

var hazardRouteCmd = &cobra.Command{
	Use:   "route",
	Short: "Evaluate hazard exposure along a polyline",
	Long:  `Reads a route as repeated --point "lat,lon" flags and reports aggregate hazard exposure.`,
	RunE:  runHazardRoute,
}

func init() {
	rootCmd.AddCommand(hazardCmd)
	hazardCmd.AddCommand(hazardPointCmd)
	hazardCmd.AddCommand(hazardRouteCmd)

	hazardPointCmd.Flags().Float64("lat", 0, "Latitude")
	hazardPointCmd.Flags().Float64("lon", 0, "Longitude")
	hazardPointCmd.Flags().Int("month", int(time.Now().Month()), "Month of year (1-12)")

	hazardRouteCmd.Flags().StringSlice("point", nil, "Waypoint coordinates, as \"lat,lon\" (repeatable, in order)")
	hazardRouteCmd.Flags().Int("month", int(time.Now().Month()), "Month of year (1-12)")
}

func runHazardPoint(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	month, _ := cmd.Flags().GetInt("month")

	o := buildOrchestrator()
	eval := o.EvaluateWaypointHazard(parseCoordinate(lat, lon), month)

	fmt.Printf("hazardous:      %t\n", eval.IsHazardous)
	fmt.Printf("severity:       %s\n", eval.Severity)
	fmt.Printf("cost multiplier: %.2f\n", eval.CostMultiplier)
	for _, z := range eval.Triggering {
		fmt.Printf("triggering zone: %s (%s)\n", z.Name, z.Type)
	}
	return nil
}

func runHazardRoute(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	pointFlags, _ := cmd.Flags().GetStringSlice("point")
	month, _ := cmd.Flags().GetInt("month")

	waypoints, err := parseCoordinateList(pointFlags)
	if err != nil {
		return err
	}
	if len(waypoints) < 2 {
		return fmt.Errorf("need at least two --point flags to evaluate a route")
	}

	o := buildOrchestrator()
	eval := o.EvaluateRouteHazards(waypoints, month)

	fmt.Printf("waypoints:            %d\n", eval.WaypointCount)
	fmt.Printf("hazardous waypoints:  %d\n", eval.HazardWaypoints)
	fmt.Printf("total cost:           %.2f\n", eval.TotalCost)
	fmt.Printf("avg cost multiplier:  %.2f\n", eval.AverageCostMultiplier)
	fmt.Printf("max severity:         %s\n", eval.MaxSeverity)
	fmt.Printf("risk assessment:      %s\n", eval.RiskAssessment)
	for _, z := range eval.CriticalZones {
		fmt.Printf("critical zone:        %s (%s)\n", z.Name, z.Type)
	}
	return nil
}
