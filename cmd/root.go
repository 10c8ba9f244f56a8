package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tkoskela/floraest/cmd/classify"
	"github.com/tkoskela/floraest/cmd/estimate"
	"github.com/tkoskela/floraest/cmd/simulate"
	"github.com/tkoskela/floraest/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "floraest",
		Short: "FloraEst CLI",
		Long:  "Bayesian estimation of the proportion of vascular plant species that are edible.",
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		cobra.CheckErr(err)
	}

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		estimate.Command(settings),
		simulate.Command(settings),
		classify.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Analysis.Prior.Variant, "prior", viper.GetString("analysis.prior.variant"), "Prior variant: informative, flat or custom")
	rootCmd.PersistentFlags().Float64VarP(&settings.Analysis.Mass, "mass", "m", viper.GetFloat64("analysis.mass"), "Credibility mass for the highest-density interval, between 0 and 1")
	rootCmd.PersistentFlags().IntVar(&settings.Analysis.Draws, "draws", viper.GetInt("analysis.draws"), "Number of posterior draws for the interval calculator")
	rootCmd.PersistentFlags().Uint64Var(&settings.Analysis.Seed, "seed", viper.GetUint64("analysis.seed"), "Seed for posterior sampling")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
