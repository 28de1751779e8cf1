package baseline

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/wavey/internal/testutil"
)

func arplsOptions(lambda float64, maxIters int) Options {
	opts := DefaultOptions()
	opts.Lambda = lambda
	opts.MaxIters = maxIters
	return opts
}

func quadraticWithNoise(n int, noise float64) (y, base []float64) {
	base = testutil.Polynomial(n, 1, 2, 3)
	return testutil.Sum(base, testutil.DeterministicNoise(7, noise, n)), base
}

func TestEstimateBaselineLengthMatchesInput(t *testing.T) {
	for _, n := range []int{16, 64, 257} {
		y, _ := quadraticWithNoise(n, 0.05)
		res, err := EstimateBaseline(y, arplsOptions(1e4, 20))
		require.NoErrorf(t, err, "n=%d", n)
		assert.Len(t, res.Baseline, n)
		assert.Len(t, res.Residual, n)
		assert.Len(t, res.Weights, n)
		testutil.RequireFinite(t, res.Baseline)
	}
}

func TestEstimateBaselineResidualIsDifference(t *testing.T) {
	y, _ := quadraticWithNoise(128, 0.05)
	res, err := EstimateBaseline(y, arplsOptions(1e5, 10))
	require.NoError(t, err)
	for i := range y {
		assert.InDelta(t, y[i]-res.Baseline[i], res.Residual[i], 1e-12)
	}
	testutil.RequireSliceNearlyEqual(t, res.Corrected(), res.Residual, 0)
}

func TestEstimateBaselineQuadraticWithNoise(t *testing.T) {
	y, base := quadraticWithNoise(500, 0.02)

	res, err := EstimateBaseline(y, arplsOptions(1e6, 50))
	require.NoError(t, err)
	assert.True(t, res.Converged(), "status %v ratio %g after %d iterations", res.Status, res.FinalRatio, res.Iterations)
	assert.LessOrEqual(t, res.FinalRatio, 1e-6)
	assert.LessOrEqual(t, res.Iterations, 51)

	diff, err := testutil.MaxAbsDiff(res.Baseline, base)
	require.NoError(t, err)
	assert.Less(t, diff, 0.1)
}

func TestEstimateBaselineIgnoresSpike(t *testing.T) {
	const (
		n     = 400
		spike = 200
	)
	y, base := quadraticWithNoise(n, 0.02)
	y = testutil.Sum(y, testutil.Spike(n, spike, 50))

	res, err := EstimateBaseline(y, arplsOptions(1e5, 50))
	require.NoError(t, err)

	assert.Less(t, res.Weights[spike], 1e-3)
	assert.InDelta(t, base[spike], res.Baseline[spike], 0.1)
	neighbours := 0.5 * (res.Baseline[spike-1] + res.Baseline[spike+1])
	assert.InDelta(t, neighbours, res.Baseline[spike], 0.01)
	assert.Greater(t, res.Residual[spike], 45.0)
}

func TestEstimateBaselineWeightsStayInOpenUnitInterval(t *testing.T) {
	const n = 300
	y, _ := quadraticWithNoise(n, 0.02)
	y = testutil.Sum(y,
		testutil.GaussianPeak(n, 80, 4, 3),
		testutil.GaussianPeak(n, 210, 8, 1.5),
		testutil.Spike(n, 150, 100),
	)

	updates := 0
	res, err := arpls(y, arplsOptions(1e5, 30), func(iter int, w []float64) {
		updates++
		assert.Equal(t, updates, iter)
		testutil.RequireOpenUnit(t, w)
	})
	require.NoError(t, err)
	assert.Equal(t, res.Iterations, updates)
	testutil.RequireOpenUnit(t, res.Weights)
}

func TestEstimateBaselineTerminatesAtCap(t *testing.T) {
	y, _ := quadraticWithNoise(200, 0.05)
	for _, maxIters := range []int{0, 1, 3, 7} {
		opts := arplsOptions(1e5, maxIters)
		opts.StopRatio = 0

		res, err := EstimateBaseline(y, opts)
		require.NoError(t, err)
		assert.Equal(t, StatusIterationCapReached, res.Status)
		assert.False(t, res.Converged())
		assert.Equal(t, maxIters+1, res.Iterations)
		assert.Greater(t, res.FinalRatio, 0.0)
		assert.Len(t, res.Baseline, len(y))
	}
}

func TestEstimateBaselineInvalidInput(t *testing.T) {
	valid := testutil.Sum(testutil.Ramp(0, 1, 32), testutil.DeterministicNoise(3, 0.1, 32))
	withNaN := append([]float64(nil), valid...)
	withNaN[5] = math.NaN()
	withInf := append([]float64(nil), valid...)
	withInf[9] = math.Inf(-1)

	tests := []struct {
		name string
		y    []float64
		opts Options
	}{
		{"length two", []float64{1, 2}, arplsOptions(10, 10)},
		{"empty", nil, arplsOptions(10, 10)},
		{"nan sample", withNaN, arplsOptions(10, 10)},
		{"inf sample", withInf, arplsOptions(10, 10)},
		{"zero lambda", valid, arplsOptions(0, 10)},
		{"negative lambda", valid, arplsOptions(-5, 10)},
		{"negative max iters", valid, arplsOptions(10, -1)},
		{"negative stop ratio", valid, Options{Lambda: 10, StopRatio: -1, MaxIters: 10}},
		{"nan stop ratio", valid, Options{Lambda: 10, StopRatio: math.NaN(), MaxIters: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateBaseline(tt.y, tt.opts)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEstimateBaselineConstantIsDegenerate(t *testing.T) {
	_, err := EstimateBaseline(testutil.DC(3.5, 100), arplsOptions(1e4, 10))
	require.ErrorIs(t, err, ErrDegenerateResidual)
}

func TestEstimateBaselineZeroSignalIsDegenerate(t *testing.T) {
	_, err := EstimateBaseline(make([]float64, 20), arplsOptions(1e4, 10))
	require.ErrorIs(t, err, ErrDegenerateResidual)
}

func TestEstimateBaselineMonotonicRampIsDegenerate(t *testing.T) {
	_, err := EstimateBaseline(testutil.Ramp(1, 2, 50), arplsOptions(100, 10))
	require.ErrorIs(t, err, ErrDegenerateResidual)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestEstimateBaselineLambdaExtremes(t *testing.T) {
	y, _ := quadraticWithNoise(300, 0.02)

	t.Run("small lambda tracks signal", func(t *testing.T) {
		res, err := EstimateBaseline(y, arplsOptions(1e-3, 10))
		require.NoError(t, err)
		assert.Len(t, res.Baseline, len(y))

		abs := make([]float64, len(res.Residual))
		for i, v := range res.Residual {
			abs[i] = math.Abs(v)
		}
		sort.Float64s(abs)
		assert.Less(t, abs[len(abs)/2], 5e-3)
	})

	t.Run("large lambda is nearly linear", func(t *testing.T) {
		res, err := EstimateBaseline(y, arplsOptions(1e12, 10))
		require.NoError(t, err)
		testutil.RequireFinite(t, res.Baseline)
		z := res.Baseline
		for i := 1; i+1 < len(z); i++ {
			assert.Less(t, math.Abs(z[i-1]-2*z[i]+z[i+1]), 1e-4, "curvature at %d", i)
		}
	})
}

// Re-running on the corrected signal converges at least as fast for a
// moderately stiff baseline. This is not a general ARPLS property: with very
// stiff penalties (λ ≳ 1e7) the second pass can take more iterations.
func TestEstimateBaselineCorrectedSignalNeedsNoMoreWork(t *testing.T) {
	const n = 300
	y := testutil.Sum(
		testutil.Ramp(0.5, 0.01, n),
		testutil.GaussianPeak(n, 150, 5, 1),
		testutil.DeterministicNoise(11, 0.02, n),
	)
	opts := arplsOptions(1e5, 100)

	first, err := EstimateBaseline(y, opts)
	require.NoError(t, err)
	second, err := EstimateBaseline(first.Corrected(), opts)
	require.NoError(t, err)

	assert.LessOrEqual(t, second.Iterations, first.Iterations)
}

func TestEstimateBaselineModerateOffset(t *testing.T) {
	y, base := quadraticWithNoise(500, 0.02)
	shifted := testutil.Sum(y, testutil.DC(100, len(y)))

	res, err := EstimateBaseline(shifted, arplsOptions(1e6, 50))
	require.NoError(t, err)
	assert.True(t, res.Converged())

	diff, err := testutil.MaxAbsDiff(res.Baseline, testutil.Sum(base, testutil.DC(100, len(base))))
	require.NoError(t, err)
	assert.Less(t, diff, 0.1)
}

func TestSpreadToleranceFollowsSignalLevel(t *testing.T) {
	y, _ := quadraticWithNoise(500, 1e-4)
	shifted := testutil.Sum(y, testutil.DC(1e4, len(y)))
	const spread = 1.25e-4

	assert.False(t, spreadTooSmall(spread, signalScale(y)))
	assert.True(t, spreadTooSmall(spread, signalScale(shifted)),
		"a 1e4 offset lifts the threshold above a 1.25e-4 spread")

	assert.True(t, spreadTooSmall(0, 1))
	assert.True(t, spreadTooSmall(math.NaN(), 1))
	assert.True(t, spreadTooSmall(math.Inf(1), 1))
}

func TestEstimateBaselineDoesNotMutateInput(t *testing.T) {
	y, _ := quadraticWithNoise(64, 0.05)
	orig := append([]float64(nil), y...)
	_, err := EstimateBaseline(y, arplsOptions(1e3, 10))
	require.NoError(t, err)
	assert.Equal(t, orig, y)
}

func TestLogisticBounds(t *testing.T) {
	assert.InDelta(t, 0.5, logistic(0), 1e-15)
	assert.Equal(t, weightEps, logistic(1e6))
	assert.Equal(t, 1-weightEps, logistic(-1e6))
	assert.InDelta(t, 1/(1+math.E), logistic(1), 1e-15)
	assert.InDelta(t, 1/(1+math.Exp(-3)), logistic(-3), 1e-15)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "converged", StatusConverged.String())
	assert.Equal(t, "iteration-cap-reached", StatusIterationCapReached.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
