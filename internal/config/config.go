package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables recognized on top of the config file.
const (
	EnvTier   = "AUTOINSIGHT_TIER"
	EnvOutput = "AUTOINSIGHT_OUTPUT"
)

// CSVConfig carries the CSV and TXT reader options.
type CSVConfig struct {
	Delimiter string   `yaml:"delimiter,omitempty"`
	HeaderRow int      `yaml:"header_row,omitempty"`
	Columns   []string `yaml:"columns,omitempty"`
	RowLimit  int      `yaml:"row_limit,omitempty"`
}

// ExcelConfig carries the Excel reader options.
type ExcelConfig struct {
	Sheet string `yaml:"sheet,omitempty"`
}

// CleaningConfig mirrors the cleaning options of a run.
type CleaningConfig struct {
	Strategy      string  `yaml:"strategy,omitempty"`
	DropThreshold float64 `yaml:"drop_threshold,omitempty"`
	OutlierMethod string  `yaml:"outlier_method,omitempty"`
}

// AnalysisConfig mirrors the correlation options of a run.
type AnalysisConfig struct {
	CorrelationMethod    string  `yaml:"correlation_method,omitempty"`
	CorrelationThreshold float64 `yaml:"correlation_threshold,omitempty"`
}

// ChartsConfig toggles chart rendering. A nil Enabled means unset, so
// the command-line default applies.
type ChartsConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ReportConfig toggles the PDF report and overrides its title.
type ReportConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Title   string `yaml:"title,omitempty"`
}

// ProjectConfig is the parsed autoinsight.yaml. Zero values mean unset;
// the CLI fills them from flags and built-in defaults.
type ProjectConfig struct {
	Tier     string         `yaml:"tier,omitempty"`
	Output   string         `yaml:"output,omitempty"`
	CSV      CSVConfig      `yaml:"csv,omitempty"`
	Excel    ExcelConfig    `yaml:"excel,omitempty"`
	Cleaning CleaningConfig `yaml:"cleaning,omitempty"`
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
	Charts   ChartsConfig   `yaml:"charts,omitempty"`
	Report   ReportConfig   `yaml:"report,omitempty"`
}

const ConfigFileName = "autoinsight.yaml"

// Load reads autoinsight.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays the recognized environment variables on top of the
// file values.
func (c *ProjectConfig) ApplyEnv() {
	if v := os.Getenv(EnvTier); v != "" {
		c.Tier = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
}

// Validate checks every set field and reports all problems together.
// Unset fields are fine; defaults cover them later.
func (c *ProjectConfig) Validate() error {
	var errs []error

	if c.Tier != "" && !autoinsight.ParseTier(c.Tier).IsValid() {
		errs = append(errs, fmt.Errorf("unknown tier %q", c.Tier))
	}
	if len(c.CSV.Delimiter) > 1 {
		errs = append(errs, fmt.Errorf("csv delimiter %q must be a single character", c.CSV.Delimiter))
	}
	if c.CSV.HeaderRow < 0 {
		errs = append(errs, errors.New("csv header_row cannot be negative"))
	}
	if c.CSV.RowLimit < 0 {
		errs = append(errs, errors.New("csv row_limit cannot be negative"))
	}
	if c.Cleaning.Strategy != "" && !autoinsight.ParseCleaningStrategy(c.Cleaning.Strategy).IsValid() {
		errs = append(errs, fmt.Errorf("unknown cleaning strategy %q", c.Cleaning.Strategy))
	}
	if c.Cleaning.DropThreshold < 0 || c.Cleaning.DropThreshold > 1 {
		errs = append(errs, errors.New("cleaning drop_threshold must be within [0, 1]"))
	}
	if c.Cleaning.OutlierMethod != "" && !autoinsight.OutlierMethod(c.Cleaning.OutlierMethod).IsValid() {
		errs = append(errs, fmt.Errorf("unknown outlier method %q", c.Cleaning.OutlierMethod))
	}
	if c.Analysis.CorrelationMethod != "" && !autoinsight.ParseCorrelationMethod(c.Analysis.CorrelationMethod).IsValid() {
		errs = append(errs, fmt.Errorf("unknown correlation method %q", c.Analysis.CorrelationMethod))
	}
	if c.Analysis.CorrelationThreshold < 0 || c.Analysis.CorrelationThreshold > 1 {
		errs = append(errs, errors.New("analysis correlation_threshold must be within [0, 1]"))
	}

	return errors.Join(errs...)
}

// DelimiterRune returns the configured CSV delimiter as a rune, zero
// when unset.
func (c *ProjectConfig) DelimiterRune() rune {
	if c.CSV.Delimiter == "" {
		return 0
	}
	return []rune(c.CSV.Delimiter)[0]
}
