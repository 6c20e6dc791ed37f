package swap_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/curve"
	"github.com/meenmo/curvecal/daycount"
	"github.com/meenmo/curvecal/errs"
	"github.com/meenmo/curvecal/schedule"
	"github.com/meenmo/curvecal/swap"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// flatCurve builds a single-rate curve from settlement out to horizon.
func flatCurve(t *testing.T, settlement, horizon time.Time, rate float64) *curve.Forward {
	t.Helper()
	crv, err := curve.New(settlement, []curve.Knot{
		{Date: settlement, Rate: rate},
		{Date: horizon, Rate: rate},
	}, daycount.Act360, calendar.TARGET)
	if err != nil {
		t.Fatalf("curve.New error: %v", err)
	}
	return crv
}

func annualSpec(id string, dir swap.Direction, fixedRate float64, effective, maturity time.Time) swap.Spec {
	leg := swap.LegSpec{
		Frequency:  schedule.Annual,
		Calendar:   calendar.TARGET,
		Adjustment: calendar.Unadjusted,
		Generation: schedule.Backward,
		DayCount:   daycount.Act360,
	}
	fixed := leg
	fixed.FixedRate = fixedRate
	floating := leg
	return swap.Spec{
		ID:        id,
		Direction: dir,
		Notional:  100.0,
		Effective: effective,
		Maturity:  maturity,
		Fixed:     fixed,
		Floating:  floating,
	}
}

func TestLegPVsSinglePeriod(t *testing.T) {
	t.Parallel()

	effective := d(2008, time.February, 6)
	maturity := d(2009, time.February, 6)
	crv := flatCurve(t, effective, maturity, 0.03)

	in, err := swap.New(annualSpec("1Y", swap.Payer, 0.04, effective, maturity))
	if err != nil {
		t.Fatalf("swap.New error: %v", err)
	}

	pv, err := swap.LegPVs(in, crv)
	if err != nil {
		t.Fatalf("LegPVs error: %v", err)
	}

	// One period of 366 actual days on both legs.
	accrual := 366.0 / 360.0
	df := math.Exp(-0.03 * accrual)
	wantFixed := 100.0 * 0.04 * accrual * df
	fwd := (1.0/df - 1.0) / accrual
	wantFloat := 100.0 * fwd * accrual * df

	if math.Abs(pv.FixedPV-wantFixed) > 1e-12 {
		t.Fatalf("FixedPV = %.15f, want %.15f", pv.FixedPV, wantFixed)
	}
	if math.Abs(pv.FloatingPV-wantFloat) > 1e-12 {
		t.Fatalf("FloatingPV = %.15f, want %.15f", pv.FloatingPV, wantFloat)
	}
	if math.Abs(pv.NPV-(wantFloat-wantFixed)) > 1e-12 {
		t.Fatalf("NPV = %.15f, want %.15f", pv.NPV, wantFloat-wantFixed)
	}
}

func TestNPVPayerReceiverMirror(t *testing.T) {
	t.Parallel()

	effective := d(2008, time.February, 6)
	maturity := d(2010, time.February, 6)
	crv := flatCurve(t, effective, maturity, 0.03)

	payer, err := swap.New(annualSpec("p", swap.Payer, 0.04, effective, maturity))
	if err != nil {
		t.Fatalf("swap.New error: %v", err)
	}
	receiver, err := swap.New(annualSpec("r", swap.Receiver, 0.04, effective, maturity))
	if err != nil {
		t.Fatalf("swap.New error: %v", err)
	}

	npvP, err := swap.NPV(payer, crv)
	if err != nil {
		t.Fatalf("NPV error: %v", err)
	}
	npvR, err := swap.NPV(receiver, crv)
	if err != nil {
		t.Fatalf("NPV error: %v", err)
	}
	if npvP != -npvR {
		t.Fatalf("payer/receiver not mirrored: %.15f vs %.15f", npvP, npvR)
	}
	// Fixed 4% against a 3% flat curve favors the receiver.
	if npvP >= 0 {
		t.Fatalf("payer NPV = %.15f, want negative against a cheaper curve", npvP)
	}
}

func TestNPVIdempotent(t *testing.T) {
	t.Parallel()

	effective := d(2008, time.February, 6)
	maturity := d(2010, time.February, 6)
	crv := flatCurve(t, effective, maturity, 0.03)

	in, err := swap.New(annualSpec("x", swap.Payer, 0.04, effective, maturity))
	if err != nil {
		t.Fatalf("swap.New error: %v", err)
	}
	first, err := swap.NPV(in, crv)
	if err != nil {
		t.Fatalf("NPV error: %v", err)
	}
	second, err := swap.NPV(in, crv)
	if err != nil {
		t.Fatalf("NPV error: %v", err)
	}
	if first != second {
		t.Fatalf("re-pricing changed the result: %.15f vs %.15f", first, second)
	}
}

func TestParRatePricesToZero(t *testing.T) {
	t.Parallel()

	effective := d(2008, time.February, 6)
	maturity := d(2011, time.February, 6)
	crv := flatCurve(t, effective, maturity, 0.03)

	in, err := swap.New(annualSpec("par", swap.Payer, 0.0, effective, maturity))
	if err != nil {
		t.Fatalf("swap.New error: %v", err)
	}
	par, err := swap.ParRate(in, crv)
	if err != nil {
		t.Fatalf("ParRate error: %v", err)
	}

	spec := annualSpec("repriced", swap.Payer, par, effective, maturity)
	repriced, err := swap.New(spec)
	if err != nil {
		t.Fatalf("swap.New error: %v", err)
	}
	npv, err := swap.NPV(repriced, crv)
	if err != nil {
		t.Fatalf("NPV error: %v", err)
	}
	if math.Abs(npv) > 1e-10 {
		t.Fatalf("NPV at par = %.15f, want ~0", npv)
	}
}

func TestNewRejectsIndexTenorMismatch(t *testing.T) {
	t.Parallel()

	spec := annualSpec("mm", swap.Payer, 0.04,
		d(2008, time.February, 6), d(2010, time.February, 6))

	// A 3M index on a semiannual floating leg is inconsistent.
	spec.Floating.Frequency = schedule.Semiannual
	spec.Floating.Index = swap.USDLibor3M
	_, err := swap.New(spec)
	var cfgErr *errs.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}

	// Matching tenor and frequency is accepted.
	spec.Floating.Frequency = schedule.Quarterly
	if _, err := swap.New(spec); err != nil {
		t.Fatalf("swap.New error: %v", err)
	}

	// An unset index skips the check.
	spec.Floating.Frequency = schedule.Semiannual
	spec.Floating.Index = ""
	if _, err := swap.New(spec); err != nil {
		t.Fatalf("swap.New error: %v", err)
	}
}

func TestNPVNilCurve(t *testing.T) {
	t.Parallel()

	in, err := swap.New(annualSpec("n", swap.Payer, 0.04,
		d(2008, time.February, 6), d(2009, time.February, 6)))
	if err != nil {
		t.Fatalf("swap.New error: %v", err)
	}
	if _, err := swap.NPV(in, nil); err == nil {
		t.Fatalf("NPV(nil curve) should fail")
	}
}

func TestMaturityBeyondCurveDomain(t *testing.T) {
	t.Parallel()

	effective := d(2008, time.February, 6)
	crv := flatCurve(t, effective, d(2009, time.February, 6), 0.03)

	in, err := swap.New(annualSpec("long", swap.Payer, 0.04, effective, d(2012, time.February, 6)))
	if err != nil {
		t.Fatalf("swap.New error: %v", err)
	}
	if _, err := swap.NPV(in, crv); err == nil {
		t.Fatalf("NPV beyond curve domain should fail")
	}
}
