// Package config loads and validates the YAML run configuration of wavey.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/wavey/dataio"
	"github.com/cwbudde/wavey/dsp/baseline"
)

// ErrInvalidConfig reports a configuration that cannot drive a run.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the run configuration. Field names follow the YAML keys.
type Config struct {
	// SpectrumDir holds the spectrometer exports.
	SpectrumDir string `yaml:"spectrum_dir" validate:"required" jsonschema:"description=Directory with the spectrometer exports"`

	// WeightFile is an optional CSV with a "weights" column, one weight per
	// time point.
	WeightFile string `yaml:"weight_file,omitempty" jsonschema:"description=CSV file with a weights column"`

	TimePoints int `yaml:"number_of_time_points" validate:"gt=0" jsonschema:"minimum=1,description=Files per acquisition run"`
	Start      int `yaml:"start,omitempty" validate:"gte=0" jsonschema:"minimum=0,default=0"`
	End        int `yaml:"end,omitempty" validate:"gte=-1" jsonschema:"minimum=-1,default=-1,description=Inclusive index of the last file or -1 for all"`

	FileType string `yaml:"file_type,omitempty" validate:"fileformat" jsonschema:"enum=raman,enum=ir,enum=uv,default=raman"`

	// BaselineMethod enables baseline correction when set.
	BaselineMethod string         `yaml:"baseline_correction_method,omitempty" validate:"omitempty,baselinemethod" jsonschema:"enum=arpls,enum=asls"`
	Baseline       BaselineConfig `yaml:"baseline_correction_configs,omitempty"`

	OutDir        string `yaml:"out_dir" validate:"required" jsonschema:"description=Output directory (created if missing)"`
	Workers       int    `yaml:"workers,omitempty" validate:"gte=0" jsonschema:"minimum=0,description=Concurrent column solves or 0 for one per CPU"`
	PlotColumns   []int  `yaml:"plot_columns,omitempty" validate:"dive,gte=0" jsonschema:"description=Time point columns to plot"`
	SavePhase     bool   `yaml:"save_phase,omitempty"`
	SaveMagnitude bool   `yaml:"save_magnitude,omitempty" jsonschema:"description=Write the magnitude of the unweighted row spectra"`

	LogLevel string `yaml:"log_level,omitempty" validate:"loglevel" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	LogFile  string `yaml:"log_file,omitempty" jsonschema:"description=Rotated log file in addition to stderr"`
}

// BaselineConfig holds the estimator parameters.
type BaselineConfig struct {
	Lambda    float64 `yaml:"lambda" validate:"omitempty,gt=0" jsonschema:"exclusiveMinimum=0"`
	StopRatio float64 `yaml:"stop_ratio,omitempty" validate:"gte=0" jsonschema:"minimum=0,default=1e-06"`
	MaxIters  int     `yaml:"max_iters,omitempty" validate:"gte=0" jsonschema:"minimum=0,default=10"`

	// P is the AsLS asymmetry.
	P float64 `yaml:"p,omitempty" validate:"gt=0,lt=1" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=1,default=0.01"`
}

// Default returns a configuration with every optional key at its default.
func Default() Config {
	opts := baseline.DefaultOptions()
	return Config{
		End:      -1,
		FileType: dataio.FormatRaman.String(),
		LogLevel: logrus.InfoLevel.String(),
		Baseline: BaselineConfig{
			StopRatio: opts.StopRatio,
			MaxIters:  opts.MaxIters,
			P:         opts.Asymmetry,
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML on top of [Default] and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field constraints and the cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.End != -1 && c.End < c.Start {
		return fmt.Errorf("%w: end %d before start %d", ErrInvalidConfig, c.End, c.Start)
	}
	if c.CorrectionEnabled() {
		if err := c.BaselineOptions().Validate(); err != nil {
			return fmt.Errorf("%w: baseline_correction_configs: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// CorrectionEnabled reports whether a baseline method is configured.
func (c *Config) CorrectionEnabled() bool {
	return strings.TrimSpace(c.BaselineMethod) != ""
}

// Method returns the configured baseline method.
func (c *Config) Method() (baseline.Method, error) {
	return baseline.ParseMethod(c.BaselineMethod)
}

// BaselineOptions converts the estimator section.
func (c *Config) BaselineOptions() baseline.Options {
	return baseline.Options{
		Lambda:    c.Baseline.Lambda,
		StopRatio: c.Baseline.StopRatio,
		MaxIters:  c.Baseline.MaxIters,
		Asymmetry: c.Baseline.P,
	}
}

// Format returns the export format of the spectrum files.
func (c *Config) Format() (dataio.Format, error) {
	return dataio.ParseFormat(c.FileType)
}

// Level returns the configured log level.
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// LoadOptions returns the dataset selection for [dataio.LoadDataset].
func (c *Config) LoadOptions(logger logrus.FieldLogger) (dataio.LoadOptions, error) {
	format, err := c.Format()
	if err != nil {
		return dataio.LoadOptions{}, err
	}
	return dataio.LoadOptions{
		Format:     format,
		TimePoints: c.TimePoints,
		Start:      c.Start,
		End:        c.End,
		Logger:     logger,
	}, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("fileformat", func(fl validator.FieldLevel) bool {
		_, err := dataio.ParseFormat(fl.Field().String())
		return err == nil
	})
	must("baselinemethod", func(fl validator.FieldLevel) bool {
		_, err := baseline.ParseMethod(fl.Field().String())
		return err == nil
	})
	must("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logrus.ParseLevel(fl.Field().String())
		return err == nil
	})
	return v
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "fileformat", "baselinemethod", "loglevel":
		return fmt.Sprintf("%s: unsupported value %q", field, fe.Value())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: must satisfy %s=%s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Sprintf("%s: must satisfy %s, got %v", field, fe.Tag(), fe.Value())
	}
}
