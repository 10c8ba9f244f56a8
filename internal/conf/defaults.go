// defaults.go default values for FloraEst settings
package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig sets viper defaults for every configuration parameter.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	// Main settings
	viper.SetDefault("main.name", "FloraEst")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "floraest.log")
	viper.SetDefault("main.log.level", "info")

	// Analysis settings
	viper.SetDefault("analysis.prior.variant", PriorInformative)
	viper.SetDefault("analysis.prior.alpha", InformativeAlpha)
	viper.SetDefault("analysis.prior.beta", InformativeBeta)
	viper.SetDefault("analysis.mass", 0.95)
	viper.SetDefault("analysis.draws", 20000)
	viper.SetDefault("analysis.seed", 42)
	viper.SetDefault("analysis.species.lower", 342000)
	viper.SetDefault("analysis.species.upper", 369000)

	// Input settings
	viper.SetDefault("input.path", "")
	viper.SetDefault("input.simulate.species", 200)
	viper.SetDefault("input.simulate.seed", 42)

	// Output settings
	viper.SetDefault("output.format", FormatTable)
	viper.SetDefault("output.path", "")

	// Wikipedia classifier settings
	viper.SetDefault("wikipedia.enabled", true)
	viper.SetDefault("wikipedia.debug", false)
	viper.SetDefault("wikipedia.baseurl", "https://en.wikipedia.org/w/api.php")
	viper.SetDefault("wikipedia.contact", "https://github.com/tkoskela/floraest")
	viper.SetDefault("wikipedia.timeoutsec", 10)
	viper.SetDefault("wikipedia.cachettlmin", 60)
	viper.SetDefault("wikipedia.ratelimitms", 500)
}
