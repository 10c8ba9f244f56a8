// config.go: This file contains the configuration for the FloraEst application.
// It defines the settings struct and functions to load and save the settings.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tkoskela/floraest/internal/errors"
)

//go:embed config.yaml
var configFiles embed.FS

// Prior variants selectable in configuration. The informative prior is the
// default; the flat prior is retained as an explicit option.
const (
	PriorInformative = "informative"
	PriorFlat        = "flat"
	PriorCustom      = "custom"
)

// Pseudo-counts for the named prior variants.
const (
	InformativeAlpha = 10.0
	InformativeBeta  = 90.0
	FlatAlpha        = 1.0
	FlatBeta         = 1.0
)

// Output formats for estimate results.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
)

const osWindows = "windows"

// LogConfig contains settings for application log output.
type LogConfig struct {
	Enabled bool   // true to enable main log file
	Path    string // path to main log file
	Level   string // minimum log level: debug, info, warn, error
}

// MainSettings contains main application settings.
type MainSettings struct {
	Name string    // node name, included in log and export metadata
	Log  LogConfig // main log settings
}

// PriorSettings selects the Beta prior used by the conjugate estimator.
type PriorSettings struct {
	Variant string  // "informative", "flat" or "custom"
	Alpha   float64 // prior pseudo-count of edible species, used by "custom"
	Beta    float64 // prior pseudo-count of inedible species, used by "custom"
}

// PseudoCounts resolves the prior variant into concrete pseudo-counts.
func (p *PriorSettings) PseudoCounts() (alpha, beta float64, err error) {
	switch p.Variant {
	case PriorInformative:
		return InformativeAlpha, InformativeBeta, nil
	case PriorFlat:
		return FlatAlpha, FlatBeta, nil
	case PriorCustom:
		return p.Alpha, p.Beta, nil
	default:
		return 0, 0, errors.Newf("unknown prior variant: %q", p.Variant).
			Category(errors.CategoryConfiguration).
			Context("variant", p.Variant).
			Build()
	}
}

// SpeciesBounds holds the external range of total vascular plant species
// counts used by the population extrapolator.
type SpeciesBounds struct {
	Lower float64 // lower bound of total species count
	Upper float64 // upper bound of total species count
}

// AnalysisSettings contains settings for the estimation pipeline.
type AnalysisSettings struct {
	Prior   PriorSettings // prior specification
	Mass    float64       // credibility mass for the HDI, e.g. 0.95
	Draws   int           // posterior draws used by the interval calculator
	Seed    uint64        // seed for posterior sampling
	Species SpeciesBounds // total species count bounds
}

// SimulateSettings contains settings for synthetic dataset generation.
type SimulateSettings struct {
	Species int    // number of species records to generate
	Seed    uint64 // seed for the sample simulator
}

// InputSettings contains settings for dataset input.
type InputSettings struct {
	Path     string           // path to species records CSV, empty to simulate
	Simulate SimulateSettings // simulator settings
}

// OutputSettings contains settings for result output.
type OutputSettings struct {
	Format string // output format: table, csv or xlsx
	Path   string // output file path for csv/xlsx formats
}

// WikipediaSettings contains settings for the edibility classifier.
type WikipediaSettings struct {
	Enabled     bool   // true to enable Wikipedia classification
	Debug       bool   // true to enable debug logging of API traffic
	BaseURL     string // MediaWiki API endpoint
	Contact     string // contact URL or mail for the User-Agent header
	TimeoutSec  int    // per-request timeout in seconds
	CacheTTLMin int    // classification cache TTL in minutes
	RateLimitMS int    // minimum delay between API requests in milliseconds
}

// Settings contains all runtime settings
type Settings struct {
	Debug bool // true to enable debug log output

	Version string `yaml:"-"` // release version, set at build time

	Main      MainSettings
	Analysis  AnalysisSettings
	Input     InputSettings
	Output    OutputSettings
	Wikipedia WikipediaSettings
}

// settingsInstance is the current settings instance
var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration into the global settings instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes the embedded default configuration to the first
// default config path and re-reads it.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig := getDefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig returns the embedded default configuration as a string.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("error reading embedded config.yaml: %v", err)
	}
	return string(data)
}

// GetSettings returns the current settings instance
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the current settings instance, loading them if necessary.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("error loading settings: %v", err)
			}
		}
	})
	return GetSettings()
}

// SaveYAMLConfig atomically writes the given settings to configPath as YAML.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	// Write to a temporary file first so the replace is atomic.
	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tempFileName := tempFile.Name()
	defer os.Remove(tempFileName)

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		return fmt.Errorf("error writing to temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}

	if err := os.Rename(tempFileName, configPath); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the OS specific default configuration paths.
// If a config.yaml already exists in one of them, only that path is returned.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case osWindows:
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "floraest"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "floraest"),
			"/etc/floraest",
		}
	}

	for _, path := range configPaths {
		configFile := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configFile); err == nil {
			return []string{path}, nil
		}
	}

	return configPaths, nil
}
