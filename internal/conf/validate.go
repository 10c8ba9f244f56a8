// conf/validate.go

package conf

import (
	"fmt"
	"log/slog"
	"strings"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateMainSettings(&settings.Main); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateAnalysisSettings(&settings.Analysis); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateInputSettings(&settings.Input); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateOutputSettings(&settings.Output); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateWikipediaSettings(&settings.Wikipedia); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// LogLevel parses the configured main log level into a slog.Level.
func (s *Settings) LogLevel() slog.Level {
	switch strings.ToLower(s.Main.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func validateMainSettings(main *MainSettings) error {
	if main.Log.Enabled && main.Log.Path == "" {
		return fmt.Errorf("main log enabled but log path is empty")
	}
	switch strings.ToLower(main.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid main log level: %q", main.Log.Level)
	}
	return nil
}

func validateAnalysisSettings(analysis *AnalysisSettings) error {
	switch analysis.Prior.Variant {
	case PriorInformative, PriorFlat:
	case PriorCustom:
		if analysis.Prior.Alpha <= 0 || analysis.Prior.Beta <= 0 {
			return fmt.Errorf("custom prior pseudo-counts must be positive, got alpha=%g beta=%g",
				analysis.Prior.Alpha, analysis.Prior.Beta)
		}
	default:
		return fmt.Errorf("unknown prior variant: %q", analysis.Prior.Variant)
	}

	if analysis.Mass <= 0 || analysis.Mass >= 1 {
		return fmt.Errorf("credibility mass must be in (0,1), got %g", analysis.Mass)
	}

	if analysis.Draws < 1 {
		return fmt.Errorf("posterior draws must be at least 1, got %d", analysis.Draws)
	}

	if analysis.Species.Lower <= 0 || analysis.Species.Upper <= 0 {
		return fmt.Errorf("species count bounds must be positive, got lower=%g upper=%g",
			analysis.Species.Lower, analysis.Species.Upper)
	}
	if analysis.Species.Lower > analysis.Species.Upper {
		return fmt.Errorf("species lower bound %g exceeds upper bound %g",
			analysis.Species.Lower, analysis.Species.Upper)
	}

	return nil
}

func validateInputSettings(input *InputSettings) error {
	if input.Path == "" && input.Simulate.Species < 1 {
		return fmt.Errorf("simulated species count must be at least 1, got %d", input.Simulate.Species)
	}
	return nil
}

func validateOutputSettings(output *OutputSettings) error {
	switch output.Format {
	case FormatTable:
	case FormatCSV, FormatXLSX:
		if output.Path == "" {
			return fmt.Errorf("output path is required for format %q", output.Format)
		}
	default:
		return fmt.Errorf("unknown output format: %q", output.Format)
	}
	return nil
}

func validateWikipediaSettings(wikipedia *WikipediaSettings) error {
	if !wikipedia.Enabled {
		return nil
	}
	if wikipedia.BaseURL == "" {
		return fmt.Errorf("wikipedia base URL is empty")
	}
	if wikipedia.TimeoutSec <= 0 {
		return fmt.Errorf("wikipedia timeout must be positive, got %d", wikipedia.TimeoutSec)
	}
	if wikipedia.RateLimitMS < 0 {
		return fmt.Errorf("wikipedia rate limit must not be negative, got %d", wikipedia.RateLimitMS)
	}
	return nil
}
