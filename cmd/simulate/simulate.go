package simulate

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/flora"
	"github.com/tkoskela/floraest/internal/logging"
)

// Command creates the simulate command, writing a synthetic species record
// table to a CSV file.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [output.csv]",
		Short: "Generate a synthetic species record table",
		Long: `Generate a seeded synthetic species record table with the dataset
attributes (definition category, report count, toxicity, processing level,
edibility) and write it to a CSV file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "species.csv"
			if len(args) == 1 {
				path = args[0]
			}

			sim := settings.Input.Simulate
			records := flora.NewSimulator(sim.Seed).Generate(sim.Species)
			if err := flora.SaveCSV(path, records); err != nil {
				return err
			}

			logging.Info("Synthetic dataset written",
				"path", path,
				"species", len(records),
				"seed", sim.Seed)
			return nil
		},
	}

	// Set up flags specific to the 'simulate' command
	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the simulate command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().IntVarP(&settings.Input.Simulate.Species, "species", "n", viper.GetInt("input.simulate.species"), "Number of species records to generate")
	cmd.Flags().Uint64Var(&settings.Input.Simulate.Seed, "sim-seed", viper.GetUint64("input.simulate.seed"), "Seed for the sample simulator")
}
