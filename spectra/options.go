package spectra

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
)

// CorrectConfig configures [Correct].
type CorrectConfig struct {
	Workers int
	Logger  logrus.FieldLogger
}

// CorrectOption mutates a CorrectConfig.
type CorrectOption func(*CorrectConfig)

// DefaultCorrectConfig uses one worker per CPU and discards log output.
func DefaultCorrectConfig() CorrectConfig {
	return CorrectConfig{
		Workers: runtime.NumCPU(),
		Logger:  discardLogger(),
	}
}

// WithWorkers sets the number of columns solved concurrently.
// Values <= 0 keep the default.
func WithWorkers(n int) CorrectOption {
	return func(cfg *CorrectConfig) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithLogger routes per-column diagnostics to l.
func WithLogger(l logrus.FieldLogger) CorrectOption {
	return func(cfg *CorrectConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyCorrectOptions applies zero or more options to the default config.
func ApplyCorrectOptions(opts ...CorrectOption) CorrectConfig {
	cfg := DefaultCorrectConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
