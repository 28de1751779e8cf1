// Command wavey corrects spectral baselines and reweights a time series of
// spectra in the Fourier domain, driven by a YAML configuration file.
//
// Usage:
//
//	wavey [flags] config.yaml
//
// Examples:
//
//	wavey run.yaml
//	wavey -v -timeout 10m run.yaml
//	wavey -schema > wavey.schema.json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/wavey/config"
	"github.com/cwbudde/wavey/pipeline"
	"github.com/cwbudde/wavey/spectra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wavey", flag.ContinueOnError)
	fs.SetOutput(stderr)
	timeout := fs.Duration("timeout", 0, "abort the run after this duration (0 = no limit)")
	schema := fs.Bool("schema", false, "print the JSON schema of the configuration file and exit")
	verbose := fs.Bool("v", false, "log at debug level regardless of log_level")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: wavey [flags] config.yaml\n\n")
		fmt.Fprintf(stderr, "Loads a directory of spectra, corrects baselines, applies Fourier\n")
		fmt.Fprintf(stderr, "weights and writes the result tables to out_dir.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  wavey run.yaml\n")
		fmt.Fprintf(stderr, "  wavey -v -timeout 10m run.yaml\n")
		fmt.Fprintf(stderr, "  wavey -schema\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *schema {
		b, err := config.Schema()
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(b))
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg, stderr, *verbose)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	rep, err := pipeline.Run(ctx, cfg, logger)
	if rep != nil && rep.Correction != nil {
		printSummary(stdout, stderr, rep.Correction)
	}
	if err != nil {
		logger.WithError(err).Error("run failed")
		return 1
	}

	logger.WithFields(logrus.Fields{
		"rows":    rep.Rows,
		"columns": rep.Cols,
		"outputs": len(rep.Outputs),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("done")
	return 0
}

// printSummary lists the columns that failed or stopped at the iteration
// cap. Nothing is printed when every column converged.
func printSummary(w, errw io.Writer, corr *spectra.Correction) {
	failed, capped := corr.Failed(), corr.Unconverged()
	if len(failed) == 0 && len(capped) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Column\tStatus\tIterations\tFinal Ratio\tError\n")
	fmt.Fprintf(tw, "------\t------\t----------\t-----------\t-----\n")
	for _, r := range capped {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.3g\t-\n", r.Index, r.Status, r.Iterations, r.FinalRatio)
	}
	for _, r := range failed {
		fmt.Fprintf(tw, "%d\tfailed\t%d\t-\t%v\n", r.Index, r.Iterations, r.Err)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(errw, "error: failed to flush summary: %v\n", err)
	}
}
