package estimate

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tkoskela/floraest/internal/analysis"
	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/export"
)

// Command creates the estimate command, running the full estimation pipeline
// against the configured dataset.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the edible proportion of vascular plant species",
		Long: `Run the Beta-Binomial estimation pipeline: load the species record table
(or simulate one), update the prior with the observed edibility counts,
compute the highest-density credible interval and extrapolate it to the
described vascular plant flora.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := analysis.RunEstimate(cmd.Context(), settings)
			if err != nil {
				return err
			}
			return export.Save(result, settings.Output.Format, settings.Output.Path)
		},
	}

	// Set up flags specific to the 'estimate' command
	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the estimate command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().StringVarP(&settings.Input.Path, "input", "i", viper.GetString("input.path"), "Path to species records CSV, empty to simulate a dataset")
	cmd.Flags().StringVarP(&settings.Output.Format, "format", "f", viper.GetString("output.format"), "Output format: table, csv or xlsx")
	cmd.Flags().StringVarP(&settings.Output.Path, "output", "o", viper.GetString("output.path"), "Output file path for csv and xlsx formats")
}
