package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "pumscli/internal/errors"
)

// EnvPrefix namespaces every environment override, e.g. PUMS_LOGGING_LEVEL.
const EnvPrefix = "PUMS"

// ConfigFileEnv names the variable that points at an explicit YAML config file.
const ConfigFileEnv = "PUMS_CONFIG_FILE"

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Rewrite RewriteConfig `yaml:"rewrite" envconfig:"REWRITE"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// DataConfig locates the dictionary and the PUMS extracts.
// Relative paths are resolved against BaseDir.
type DataConfig struct {
	BaseDir        string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DictionaryFile string `yaml:"dictionary_file" envconfig:"DICTIONARY_FILE" validate:"required"`
	HousingCSV     string `yaml:"housing_csv" envconfig:"HOUSING_CSV" validate:"required"`
	PersonCSV      string `yaml:"person_csv" envconfig:"PERSON_CSV" validate:"required"`
	Encoding       string `yaml:"encoding" envconfig:"ENCODING" validate:"oneof=utf-8 latin-1 windows-1252"`
}

// RewriteConfig controls where rewritten CSVs go.
type RewriteConfig struct {
	InPlace      bool   `yaml:"in_place" envconfig:"IN_PLACE"`
	OutputSuffix string `yaml:"output_suffix" envconfig:"OUTPUT_SUFFIX" validate:"required_if=InPlace false"`
	BOMPrefix    bool   `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// ReportConfig controls the header mapping report.
type ReportConfig struct {
	MaxColumns int    `yaml:"max_columns" envconfig:"MAX_COLUMNS" validate:"min=1"`
	XLSXPath   string `yaml:"xlsx_path" envconfig:"XLSX_PATH"`
}

// TracingConfig contains OpenTelemetry tracing configuration
type TracingConfig struct {
	Exporter    string  `yaml:"exporter" envconfig:"EXPORTER" validate:"oneof=none stdout"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// Load builds the configuration from defaults, then the YAML config file if one
// is found, then PUMS_* environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	// Unset variables leave the field untouched, so env only overrides.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays YAML configuration onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"pums.yaml",
		"configs/pums.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/pumscli.log",
		},
		Data: DataConfig{
			BaseDir:        ".",
			DictionaryFile: DefaultDictionaryFile,
			HousingCSV:     DefaultHousingCSV,
			PersonCSV:      DefaultPersonCSV,
			Encoding:       "utf-8",
		},
		Rewrite: RewriteConfig{
			OutputSuffix: DefaultOutputSuffix,
		},
		Report: ReportConfig{
			MaxColumns: 15,
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			SampleRatio: 1.0,
		},
	}
}

// String renders the effective configuration for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("data=%s dictionary=%s encoding=%s in_place=%t log_level=%s tracing=%s",
		c.Data.BaseDir, c.Data.DictionaryFile, c.Data.Encoding,
		c.Rewrite.InPlace, c.Logging.Level, c.Tracing.Exporter)
}
