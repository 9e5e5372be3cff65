package config

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-report/internal/indicator"
	"github.com/rxtech-lab/argo-report/internal/version"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/rxtech-lab/argo-report/pkg/marketdata"
	"github.com/rxtech-lab/argo-report/pkg/marketdata/provider"
	"gopkg.in/yaml.v3"
)

// Config is the run configuration. Values loaded from a file override Default, and
// command line flags override the file.
type Config struct {
	Version          string   `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=argo-report version the file was written for. Major and minor must match the binary"`
	Tickers          []string `yaml:"tickers" json:"tickers" jsonschema:"title=Tickers,description=Symbols to analyze in order,minItems=1" validate:"required,min=1,dive,required"`
	Days             int      `yaml:"days" json:"days" jsonschema:"title=Days,description=Number of calendar days of history ending today,minimum=1,default=365" validate:"gt=0"`
	Provider         string   `yaml:"provider" json:"provider" jsonschema:"title=Provider,description=Market data provider,enum=yahoo,enum=polygon,enum=binance,enum=duckdb,default=yahoo" validate:"required,oneof=yahoo polygon binance duckdb"`
	PolygonApiKey    string   `yaml:"polygon_api_key,omitempty" json:"polygon_api_key,omitempty" jsonschema:"title=Polygon API Key,description=API key used by the polygon provider" validate:"required_if=Provider polygon"`
	MAWindows        []int    `yaml:"ma_windows" json:"ma_windows" jsonschema:"title=Moving Average Windows,description=Moving average windows in trading days,minItems=1,uniqueItems=true" validate:"required,min=1,unique,dive,gt=0"`
	VolatilityWindow int      `yaml:"volatility_window" json:"volatility_window" jsonschema:"title=Volatility Window,description=Rolling volatility window in trading days,minimum=2,default=20" validate:"gte=2"`
	OutputDir        string   `yaml:"output_dir" json:"output_dir" jsonschema:"title=Output Directory,description=Directory the chart images are written to,default=." validate:"required"`
	ExportDir        string   `yaml:"export_dir,omitempty" json:"export_dir,omitempty" jsonschema:"title=Export Directory,description=Optional directory the fetched bars are exported to as Parquet"`
	DataPath         string   `yaml:"data_path,omitempty" json:"data_path,omitempty" jsonschema:"title=Data Path,description=Directory of Parquet files read by the duckdb provider" validate:"required_if=Provider duckdb"`
	LogLevel         string   `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"required,oneof=debug info warn error"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	indicatorConfig := indicator.DefaultConfig()

	return Config{
		Tickers:          []string{"TSLA", "AAPL"},
		Days:             365,
		Provider:         string(provider.ProviderYahoo),
		MAWindows:        indicatorConfig.MAWindows,
		VolatilityWindow: indicatorConfig.VolatilityWindow,
		OutputDir:        ".",
		LogLevel:         "info",
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(content)
}

// Parse decodes YAML content on top of Default.
func Parse(content []byte) (Config, error) {
	config := Default()

	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	return config, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return version.CheckConfigCompatibility(version.GetVersion(), c.Version)
}

// IndicatorConfig returns the indicator part of the configuration.
func (c Config) IndicatorConfig() indicator.Config {
	return indicator.Config{
		MAWindows:        append([]int(nil), c.MAWindows...),
		VolatilityWindow: c.VolatilityWindow,
	}
}

// ClientConfig returns the market data client part of the configuration.
func (c Config) ClientConfig() marketdata.ClientConfig {
	return marketdata.ClientConfig{
		ProviderType:  provider.ProviderType(c.Provider),
		PolygonApiKey: c.PolygonApiKey,
		DataPath:      c.DataPath,
		ExportPath:    c.ExportDir,
	}
}

// GenerateSchema returns the JSON schema of the configuration file.
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
	}

	schema := reflector.Reflect(&Config{})
	schema.Title = "argo-report-config"
	schema.Description = "Configuration schema for argo-report"

	return schema
}

// GenerateSchemaJSON returns the indented JSON form of GenerateSchema.
func GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal schema", err)
	}

	return string(schemaBytes), nil
}
