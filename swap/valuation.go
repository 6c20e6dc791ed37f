package swap

import (
	"errors"
	"fmt"

	"github.com/meenmo/curvecal/curve"
	"github.com/meenmo/curvecal/daycount"
)

// ErrNilCurve is returned when a required curve argument is nil.
var ErrNilCurve = errors.New("nil curve")

// NPV values the swap off the curve and returns the signed net present
// value: sign(direction) * (floating PV - fixed PV). It is a pure function
// of its inputs; re-pricing the same instrument against a different curve
// never mutates the instrument.
func NPV(in *Instrument, crv *curve.Forward) (float64, error) {
	pv, err := LegPVs(in, crv)
	if err != nil {
		return 0, err
	}
	return pv.NPV, nil
}

// LegPVs computes both leg PVs and the signed net. Curve domain misses
// propagate as domain errors rather than being masked.
func LegPVs(in *Instrument, crv *curve.Forward) (PV, error) {
	if crv == nil {
		return PV{}, ErrNilCurve
	}
	fixed, err := fixedLegPV(in, crv)
	if err != nil {
		return PV{}, fmt.Errorf("swap %s: fixed leg: %w", in.spec.ID, err)
	}
	float, err := floatingLegPV(in, crv, true)
	if err != nil {
		return PV{}, fmt.Errorf("swap %s: floating leg: %w", in.spec.ID, err)
	}
	return PV{
		FixedPV:    fixed,
		FloatingPV: float,
		NPV:        in.spec.Direction.Sign() * (float - fixed),
	}, nil
}

// fixedLegPV discounts notional * rate * accrual over the fixed schedule,
// paying at each period end.
func fixedLegPV(in *Instrument, crv *curve.Forward) (float64, error) {
	spec := in.spec
	pv := 0.0
	for i := 1; i < len(in.fixedDates); i++ {
		start, end := in.fixedDates[i-1], in.fixedDates[i]
		accrual := daycount.YearFraction(spec.Fixed.DayCount, start, end)
		df, err := crv.DF(end)
		if err != nil {
			return 0, err
		}
		pv += spec.Notional * spec.Fixed.FixedRate * accrual * df
	}
	return pv, nil
}

// floatingLegPV discounts notional * (forward + spread) * accrual over the
// floating schedule. The forecast rate is the simple forward implied by the
// curve between the period's start and end:
//
//	fwd = (DF(start)/DF(end) - 1) / accrual
//
// which is the standard forward-looking Libor-style fixing.
func floatingLegPV(in *Instrument, crv *curve.Forward, withSpread bool) (float64, error) {
	spec := in.spec
	pv := 0.0
	for i := 1; i < len(in.floatDates); i++ {
		start, end := in.floatDates[i-1], in.floatDates[i]
		accrual := daycount.YearFraction(spec.Floating.DayCount, start, end)

		rate := 0.0
		if accrual > 0 {
			dfStart, err := crv.DF(start)
			if err != nil {
				return 0, err
			}
			dfEnd, err := crv.DF(end)
			if err != nil {
				return 0, err
			}
			rate = (dfStart/dfEnd - 1.0) / accrual
		}
		if withSpread {
			rate += spec.Floating.Spread
		}

		df, err := crv.DF(end)
		if err != nil {
			return 0, err
		}
		pv += spec.Notional * rate * accrual * df
	}
	return pv, nil
}

// ParRate returns the fixed rate that would price the swap to zero on the
// curve: floating leg PV over the fixed leg annuity.
func ParRate(in *Instrument, crv *curve.Forward) (float64, error) {
	if crv == nil {
		return 0, ErrNilCurve
	}
	float, err := floatingLegPV(in, crv, true)
	if err != nil {
		return 0, fmt.Errorf("swap %s: floating leg: %w", in.spec.ID, err)
	}

	spec := in.spec
	annuity := 0.0
	for i := 1; i < len(in.fixedDates); i++ {
		start, end := in.fixedDates[i-1], in.fixedDates[i]
		accrual := daycount.YearFraction(spec.Fixed.DayCount, start, end)
		df, err := crv.DF(end)
		if err != nil {
			return 0, fmt.Errorf("swap %s: fixed leg: %w", in.spec.ID, err)
		}
		annuity += spec.Notional * accrual * df
	}
	if annuity == 0 {
		return 0, fmt.Errorf("swap %s: fixed leg annuity is zero", in.spec.ID)
	}
	return float / annuity, nil
}
