package spectra

import (
	"context"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/wavey/dsp/baseline"
	"github.com/cwbudde/wavey/stats/column"
)

// ColumnReport is the outcome of the baseline solve for one column.
type ColumnReport struct {
	Index      int
	Iterations int
	FinalRatio float64
	Status     baseline.Status

	// Err is non-nil when the column was not corrected: the solve failed or
	// the context ended before the column was submitted.
	Err error

	// Corrected summarizes the column after subtraction.
	Corrected column.Stats
}

// Correction holds the baselines and per-column reports of [Correct].
type Correction struct {
	// Baseline has the shape of the dataset. Columns that failed are zero.
	Baseline *mat.Dense
	Columns  []ColumnReport
}

// Failed returns the reports of columns that were left uncorrected.
func (c *Correction) Failed() []ColumnReport {
	var out []ColumnReport
	for _, r := range c.Columns {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Unconverged returns the reports of columns corrected with the estimate at
// the iteration cap.
func (c *Correction) Unconverged() []ColumnReport {
	var out []ColumnReport
	for _, r := range c.Columns {
		if r.Err == nil && r.Status == baseline.StatusIterationCapReached {
			out = append(out, r)
		}
	}
	return out
}

// Correct estimates the baseline of every column of ds with est and
// subtracts it in place.
//
// Columns are solved by a pool of workers. Each worker writes only its own
// column of ds.Y and of the baseline matrix. A column whose solve fails keeps
// its original values and a zero baseline; its error is recorded in the
// report and does not stop the other columns. Once ctx is done no further
// columns are submitted, the unsubmitted ones are reported with ctx.Err(),
// and Correct returns that error together with the partial result.
func Correct(ctx context.Context, ds *Dataset, est baseline.Estimator, opts ...CorrectOption) (*Correction, error) {
	if ds.Fourier() {
		return nil, fmt.Errorf("%w: baseline correction requires the spectral domain", ErrDomain)
	}
	if est == nil {
		return nil, fmt.Errorf("spectra: nil baseline estimator")
	}
	cfg := ApplyCorrectOptions(opts...)

	rows, cols := ds.Y.Dims()
	out := &Correction{
		Baseline: mat.NewDense(rows, cols, nil),
		Columns:  make([]ColumnReport, cols),
	}
	for j := range out.Columns {
		out.Columns[j].Index = j
	}

	workers := min(cfg.Workers, cols)
	jobs := make(chan int, workers)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			out.Columns[j] = correctColumn(ds, out.Baseline, est, j, cfg.Logger)
		}
	}

	wg.Add(workers)
	for range workers {
		go worker()
	}

	skip := func(from int, err error) {
		for k := from; k < cols; k++ {
			out.Columns[k].Err = err
		}
		cfg.Logger.WithFields(logrus.Fields{
			"skipped": cols - from,
			"error":   err,
		}).Warn("baseline correction interrupted")
	}

	var ctxErr error
dispatch:
	for j := range cols {
		if ctxErr = ctx.Err(); ctxErr != nil {
			skip(j, ctxErr)
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			skip(j, ctxErr)
			break dispatch
		case jobs <- j:
		}
	}
	close(jobs)
	wg.Wait()

	return out, ctxErr
}

func correctColumn(ds *Dataset, bl *mat.Dense, est baseline.Estimator, j int, log logrus.FieldLogger) ColumnReport {
	rep := ColumnReport{Index: j}
	entry := log.WithField("column", j)

	res, err := est.Estimate(ds.Column(j))
	if err != nil {
		rep.Err = err
		entry.WithError(err).Error("baseline estimate failed, column left uncorrected")
		return rep
	}

	col := ds.Column(j)
	neg := make([]float64, len(col))
	vecmath.ScaleBlock(neg, res.Baseline, -1)
	vecmath.AddBlockInPlace(col, neg)

	bl.SetCol(j, res.Baseline)
	ds.SetColumn(j, col)

	rep.Iterations = res.Iterations
	rep.FinalRatio = res.FinalRatio
	rep.Status = res.Status
	rep.Corrected = column.Calculate(col)

	entry = entry.WithFields(logrus.Fields{
		"iterations":  res.Iterations,
		"final_ratio": res.FinalRatio,
	})
	if res.Converged() {
		entry.WithFields(logrus.Fields(rep.Corrected.Fields())).Debug("baseline converged")
	} else {
		entry.Warn("baseline iteration cap reached, using last estimate")
	}
	return rep
}
