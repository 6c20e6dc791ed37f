package marketdata_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/curvecal/calibrate"
	"github.com/meenmo/curvecal/marketdata"
)

func TestUSD20080204Input(t *testing.T) {
	t.Parallel()

	in := marketdata.USD20080204()
	require.Len(t, in.Quotes, 14)
	require.Len(t, in.Prefix, 4)

	// Quotes are ordered by maturity with strictly increasing dates.
	for i := 1; i < len(in.Quotes); i++ {
		if !in.Quotes[i].Maturity.After(in.Quotes[i-1].Maturity) {
			t.Fatalf("quote maturities not increasing at %s", in.Quotes[i].ID)
		}
	}
	assert.True(t, in.Quotes[len(in.Quotes)-1].Maturity.Equal(
		time.Date(2038, time.February, 8, 0, 0, 0, 0, time.UTC)))

	// Callers own their copy; mutating it must not leak into the fixture.
	in.Quotes[0].ParRate = 99.0
	in.Prefix[0] = 99.0
	fresh := marketdata.USD20080204()
	assert.Equal(t, 0.02795, fresh.Quotes[0].ParRate)
	assert.Equal(t, 0.03145, fresh.Prefix[0])
}

func TestUSD20080204Calibration(t *testing.T) {
	if testing.Short() {
		t.Skip("full 30Y reference calibration")
	}

	in := marketdata.USD20080204()
	res, err := calibrate.Bootstrap(in, calibrate.DefaultConfig)
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.Less(t, res.Iterations, calibrate.DefaultConfig.MaxIterations)

	// Settlement is 2008-02-06; the grid runs quarterly out to the 30Y
	// maturity.
	assert.True(t, res.Curve.Settlement().Equal(
		time.Date(2008, time.February, 6, 0, 0, 0, 0, time.UTC)))
	assert.True(t, res.KnotDates[len(res.KnotDates)-1].Equal(
		time.Date(2038, time.February, 8, 0, 0, 0, 0, time.UTC)))

	// The short-end prefix passes through to the curve untouched.
	for i, want := range in.Prefix {
		assert.Equal(t, want, res.Forwards[i], "prefix knot %d", i)
	}

	// Every quoted swap reprices to par within tolerance of its notional.
	require.Len(t, res.Residuals, len(in.Quotes))
	for id, npv := range res.Residuals {
		assert.LessOrEqual(t, math.Abs(npv), in.Conventions.Notional*calibrate.DefaultConfig.Tolerance,
			"residual for %s", id)
	}

	// Calibrated forwards stay within a sane rate band over the whole grid.
	for i, f := range res.Forwards {
		assert.Greater(t, f, 0.0, "forward %d", i)
		assert.Less(t, f, 0.15, "forward %d", i)
	}

	// Discount factors decrease monotonically on a positive forward curve.
	prev := 1.0
	for _, d := range res.KnotDates[1:] {
		df, err := res.Curve.DF(d)
		require.NoError(t, err)
		assert.Less(t, df, prev)
		prev = df
	}
}
