package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/MeKo-Tech/shiproute/internal/orchestrator"
	"github.com/spf13/cobra"
)

var replanCmd = &cobra.Command{
	Use:   "replan",
	Short: "Plan a route, then incrementally replan it around newly obstructed waypoints",
	Long: `replan demonstrates the incremental LPA*-style replanner: it plans an
initial route, toggles the blocked/free state of the given coordinates, and
reports whether the replanner found an alternative without a full re-plan.`,
	RunE: runReplan,
}

func init() {
	rootCmd.AddCommand(replanCmd)

	replanCmd.Flags().Float64("start-lat", 0, "Start latitude")
	replanCmd.Flags().Float64("start-lon", 0, "Start longitude")
	replanCmd.Flags().Float64("goal-lat", 0, "Goal latitude")
	replanCmd.Flags().Float64("goal-lon", 0, "Goal longitude")
	replanCmd.Flags().String("vessel", "container_10000", "Vessel type")
	replanCmd.Flags().Int("month", int(time.Now().Month()), "Month of year (1-12)")
	replanCmd.Flags().StringSlice("block", nil, "Coordinates to toggle blocked/free, as \"lat,lon\" (repeatable)")
	replanCmd.Flags().Duration("timeout", 30*time.Second, "Planning timeout")
}

func runReplan(cmd *cobra.Command, args []string) error {
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
	month, _ := cmd.Flags().GetInt("month")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	blockFlags, _ := cmd.Flags().GetStringSlice("block")

	changed, err := parseCoordinateList(blockFlags)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	o := buildOrchestrator()
	start := parseCoordinate(startLat, startLon)
	goal := parseCoordinate(goalLat, goalLon)

	req := orchestrator.PlanRequest{Start: start, Goal: goal, Vessel: vessel, Month: month}
	initial, err := o.PlanRoute(ctx, req)
	if err != nil {
		return fmt.Errorf("initial plan: %w", err)
	}
	fmt.Println("initial route:")
	printRouteSummary(initial)

	if len(changed) == 0 {
		fmt.Println("\nno --block coordinates given, nothing to replan")
		return nil
	}

	session := o.NewReplanSession(start, goal)
	if _, err := session.Plan(ctx); err != nil {
		return fmt.Errorf("replanner warm start: %w", err)
	}

	updated, ok, err := o.ReplanRoute(ctx, session, changed, req)
	if err != nil {
		return fmt.Errorf("replan: %w", err)
	}
	if !ok {
		fmt.Println("\nno alternative route found after toggling the given coordinates; keep the prior route")
		return nil
	}

	fmt.Println("\nreplanned route:")
	printRouteSummary(updated)
	return nil
}
