package swap

import (
	"fmt"

	"github.com/meenmo/curvecal/errs"
	"github.com/meenmo/curvecal/schedule"
)

// Instrument is a swap spec with both leg schedules precomputed. Schedule
// defects surface here, before any valuation or calibration begins. An
// Instrument is immutable and safe to read from concurrent constraint
// evaluations.
type Instrument struct {
	spec       Spec
	fixedDates schedule.Schedule
	floatDates schedule.Schedule
}

// New validates the spec and generates both leg schedules.
func New(spec Spec) (*Instrument, error) {
	if spec.ID == "" {
		return nil, &errs.ConfigurationError{Setting: "swap id", Value: "", Reason: "empty"}
	}
	if spec.Notional <= 0 {
		return nil, errs.Configf("swap notional", fmt.Sprintf("%g", spec.Notional), "must be positive")
	}
	if !spec.Maturity.After(spec.Effective) {
		return nil, errs.Configf("swap maturity", spec.Maturity.Format("2006-01-02"),
			"not after effective %s", spec.Effective.Format("2006-01-02"))
	}
	switch spec.Direction {
	case Payer, Receiver:
	default:
		return nil, &errs.ConfigurationError{Setting: "swap type", Value: string(spec.Direction)}
	}
	if ix := spec.Floating.Index; ix != "" {
		if months, _ := spec.Floating.Frequency.Period(); months != ix.TenorMonths() {
			return nil, errs.Configf("floating leg frequency", string(spec.Floating.Frequency),
				"does not match the %d-month tenor of %s", ix.TenorMonths(), ix)
		}
	}

	fixed, err := schedule.Generate(spec.Effective, spec.Maturity,
		spec.Fixed.Frequency, spec.Fixed.Calendar, spec.Fixed.Adjustment,
		spec.Fixed.Generation, spec.Fixed.EndOfMonth)
	if err != nil {
		return nil, fmt.Errorf("swap %s: fixed leg: %w", spec.ID, err)
	}
	float, err := schedule.Generate(spec.Effective, spec.Maturity,
		spec.Floating.Frequency, spec.Floating.Calendar, spec.Floating.Adjustment,
		spec.Floating.Generation, spec.Floating.EndOfMonth)
	if err != nil {
		return nil, fmt.Errorf("swap %s: floating leg: %w", spec.ID, err)
	}

	return &Instrument{spec: spec, fixedDates: fixed, floatDates: float}, nil
}

// ID returns the instrument identifier.
func (in *Instrument) ID() string { return in.spec.ID }

// Spec returns a copy of the instrument's spec.
func (in *Instrument) Spec() Spec { return in.spec }

// FixedSchedule returns a copy of the fixed leg's dates.
func (in *Instrument) FixedSchedule() schedule.Schedule {
	return append(schedule.Schedule(nil), in.fixedDates...)
}

// FloatingSchedule returns a copy of the floating leg's dates.
func (in *Instrument) FloatingSchedule() schedule.Schedule {
	return append(schedule.Schedule(nil), in.floatDates...)
}
