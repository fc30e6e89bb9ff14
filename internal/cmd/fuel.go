package cmd

import (
	"fmt"
	"sort"

	"github.com/MeKo-Tech/shiproute/internal/hazard"
	"github.com/MeKo-Tech/shiproute/internal/landatlas"
	"github.com/MeKo-Tech/shiproute/internal/voyage"
	"github.com/MeKo-Tech/shiproute/internal/weather"
	"github.com/spf13/cobra"
)

var fuelCmd = &cobra.Command{
	Use:   "fuel",
	Short: "Estimate fuel consumption for a distance without planning a route",
	RunE:  runFuel,
}

func init() {
	rootCmd.AddCommand(fuelCmd)

	fuelCmd.Flags().String("vessel", "container_10000", "Vessel type")
	fuelCmd.Flags().Float64("distance", 0, "Distance in nautical miles")
	fuelCmd.Flags().Float64("speed", 0, "Speed in knots (default: the vessel's design speed)")
	fuelCmd.Flags().Float64("weather-factor", 1.0, "Weather resistance multiplier (1.0 = calm)")
	fuelCmd.Flags().Float64("load-factor", 0.85, "Cargo load factor, 0-1")
	fuelCmd.Flags().Float64Slice("compare-speeds", nil, "Additional speeds (knots) to compare fuel/time tradeoffs against")
	fuelCmd.Flags().Bool("list-vessels", false, "List known vessel types and exit")
}

func runFuel(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	listVessels, _ := cmd.Flags().GetBool("list-vessels")
	if listVessels {
		return printVesselCatalog()
	}

	vesselFlag, _ := cmd.Flags().GetString("vessel")
	vessel, err := parseVessel(vesselFlag)
	if err != nil {
		return err
	}

	distance, _ := cmd.Flags().GetFloat64("distance")
	speed, _ := cmd.Flags().GetFloat64("speed")
	weatherFactor, _ := cmd.Flags().GetFloat64("weather-factor")
	loadFactor, _ := cmd.Flags().GetFloat64("load-factor")
	compareSpeeds, _ := cmd.Flags().GetFloat64Slice("compare-speeds")

	atlas := landatlas.New()
	hazards := hazard.New(atlas)
	wx := weather.New(nil)
	model, err := voyage.NewModel(voyage.DefaultCatalog(), vessel, hazards, wx)
	if err != nil {
		return err
	}

	spec := model.Spec()
	if speed == 0 {
		speed = spec.DesignSpeedKn
	}

	estimate := model.EstimateVoyage(distance, speed, weatherFactor, loadFactor)
	fmt.Printf("vessel:         %s\n", spec.Name)
	fmt.Printf("distance:       %.1f nm\n", distance)
	fmt.Printf("speed:          %.1f kn\n", speed)
	fmt.Printf("duration:       %.1f h\n", estimate.DurationHours)
	fmt.Printf("fuel:           %.2f t\n", estimate.TotalFuelTons)
	fmt.Printf("co2:            %.2f t\n", estimate.TotalCO2Tons)
	fmt.Printf("fuel cost:      $%.2f\n", estimate.FuelCostUSD)
	if !estimate.SufficientFuel {
		fmt.Printf("warning:        %.1f tanks needed, exceeds tank capacity of %.1f t\n", estimate.TanksNeeded, estimate.TankCapacityT)
	}

	if len(compareSpeeds) > 0 {
		cmp := model.CompareSpeeds(distance, append([]float64{speed}, compareSpeeds...), weatherFactor)
		fmt.Println("\nspeed comparison:")
		for _, s := range cmp.Scenarios {
			fmt.Printf("  %.1f kn: %.1f days, %.2f t fuel, $%.2f\n", s.SpeedKn, s.TimeDays, s.FuelTons, s.FuelCostUSD)
		}
		fmt.Printf("most economical: %.1f kn, fastest: %.1f kn, savings: %.2f t fuel\n",
			cmp.MostEconomicalSpeedKn, cmp.FastestSpeedKn, cmp.FuelSavingsVsFastest)
	}

	return nil
}

func printVesselCatalog() error {
	all := voyage.DefaultCatalog().All()
	names := make([]string, 0, len(all))
	for vt := range all {
		names = append(names, string(vt))
	}
	sort.Strings(names)

	for _, name := range names {
		spec := all[voyage.VesselType(name)]
		fmt.Printf("%-20s %-40s design speed %.1f kn\n", name, spec.Name, spec.DesignSpeedKn)
	}
	return nil
}
