package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "exoradio/internal/errors"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "EXORADIO"

// Config represents the complete application configuration.
//
// Leaf fields use split_words instead of envconfig name tags: a name tag
// also makes envconfig fall back to the unprefixed variable (PATH, DIR).
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Filter  FilterConfig  `yaml:"filter"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
	History HistoryConfig `yaml:"history"`
}

// InputConfig locates the source catalog
type InputConfig struct {
	Path string `yaml:"path" split_words:"true" validate:"required"`
	// HDU is the index of the table extension; 1 is the first data section
	HDU int `yaml:"hdu" split_words:"true" validate:"gte=1"`
}

// OutputConfig controls where report files are written
type OutputConfig struct {
	Dir string `yaml:"dir" split_words:"true" validate:"required"`
}

// FilterConfig holds the strict lower bounds of the filtered report
type FilterConfig struct {
	FcThreshold   float64 `yaml:"fc_threshold" split_words:"true"`
	FluxThreshold float64 `yaml:"flux_threshold" split_words:"true"`
}

// ExportConfig toggles optional export formats
type ExportConfig struct {
	XLSX bool `yaml:"xlsx" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
}

// TracingConfig enables the stdout span exporter
type TracingConfig struct {
	Enabled bool `yaml:"enabled" split_words:"true"`
}

// MetricsConfig configures the prometheus textfile written after each run
type MetricsConfig struct {
	Textfile string `yaml:"textfile" split_words:"true" validate:"omitempty,endswith=.prom"`
}

// HistoryConfig configures the sqlite run history
type HistoryConfig struct {
	DBPath string `yaml:"db_path" split_words:"true"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: "asu.fit",
			HDU:  1,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Filter: FilterConfig{
			FcThreshold:   1,
			FluxThreshold: 1,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/exoradio.log",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at configFile
// (or a discovered config.yaml when configFile is empty) and EXORADIO_*
// environment variables, then validates it.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, apperrors.NewConfigError("config file not readable", err).
			WithContext("path", configFile)
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	// Environment last so it wins over the file. No envconfig default tags:
	// unset variables leave the file/default value in place.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return apperrors.NewConfigError("config validation failed", err).
				WithContext("field", first.Namespace()).
				WithContext("rule", first.Tag())
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// String renders the configuration as YAML for debug logging
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(out)
}
