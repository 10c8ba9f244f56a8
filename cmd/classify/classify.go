package classify

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tkoskela/floraest/internal/analysis"
	"github.com/tkoskela/floraest/internal/conf"
)

// Command creates the classify command, classifying species edibility from
// Wikipedia page intros.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [species...]",
		Short: "Classify species edibility from Wikipedia",
		Long: `Fetch the Wikipedia page of each species and classify it as edible, toxic
or unknown from keywords in the page intro. With no species arguments the
names are taken from the configured dataset. Fetch failures degrade to
unknown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Explicit invocation overrides the enable switch.
			settings.Wikipedia.Enabled = true

			report, err := analysis.RunClassify(cmd.Context(), settings, args)
			if err != nil {
				return err
			}
			return report.WriteReport(os.Stdout)
		},
	}

	// Set up flags specific to the 'classify' command
	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the classify command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().StringVarP(&settings.Input.Path, "input", "i", viper.GetString("input.path"), "Path to species records CSV used when no names are given")
	cmd.Flags().BoolVar(&settings.Wikipedia.Debug, "api-debug", viper.GetBool("wikipedia.debug"), "Log API request and response details")
}
