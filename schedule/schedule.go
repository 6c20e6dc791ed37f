// Package schedule generates ordered accrual/payment date sequences for
// swap legs and curve pillar grids.
package schedule

import (
	"strings"
	"time"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/errs"
)

// Frequency is a payment/reset periodicity.
type Frequency string

const (
	Daily      Frequency = "DAILY"
	Weekly     Frequency = "WEEKLY"
	Monthly    Frequency = "MONTHLY"
	Quarterly  Frequency = "QUARTERLY"
	Semiannual Frequency = "SEMIANNUAL"
	Annual     Frequency = "ANNUAL"
)

// ParseFrequency maps a frequency name to its Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAILY":
		return Daily, nil
	case "WEEKLY":
		return Weekly, nil
	case "MONTHLY":
		return Monthly, nil
	case "QUARTERLY":
		return Quarterly, nil
	case "SEMIANNUAL":
		return Semiannual, nil
	case "ANNUAL":
		return Annual, nil
	default:
		return "", &errs.ConfigurationError{Setting: "frequency", Value: s}
	}
}

// Period returns the step length of one period: months for monthly and
// longer frequencies, days otherwise.
func (f Frequency) Period() (months, days int) {
	switch f {
	case Daily:
		return 0, 1
	case Weekly:
		return 0, 7
	case Monthly:
		return 1, 0
	case Quarterly:
		return 3, 0
	case Semiannual:
		return 6, 0
	case Annual:
		return 12, 0
	default:
		panic("schedule: unknown frequency " + string(f))
	}
}

// Direction selects the date-generation anchor.
type Direction string

const (
	// Forward steps one period at a time from the start date; a short stub,
	// if any, falls at the back.
	Forward Direction = "FORWARD"
	// Backward steps one period at a time from the end date; a short stub,
	// if any, falls at the front (standard swap convention).
	Backward Direction = "BACKWARD"
)

// ParseDirection maps a generation-rule name to its Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FORWARD":
		return Forward, nil
	case "BACKWARD":
		return Backward, nil
	default:
		return "", &errs.ConfigurationError{Setting: "date generation rule", Value: s}
	}
}

// Schedule is a strictly increasing date sequence. The first date is the
// adjusted effective start, the last the adjusted maturity.
type Schedule []time.Time

// Start returns the first schedule date.
func (s Schedule) Start() time.Time { return s[0] }

// End returns the last schedule date.
func (s Schedule) End() time.Time { return s[len(s)-1] }

// Generate builds a leg schedule between start and end.
//
// The raw (unadjusted) sequence steps one period at a time from the anchor
// boundary given by dir, with the final stub snapped to the un-stepped
// boundary. When endOfMonth is set and the start date falls on a month end,
// interior dates are forced to month ends. Every raw date is then rolled
// per adj on cal. A collapse of adjacent adjusted dates reports a
// configuration error.
func Generate(start, end time.Time, freq Frequency, cal calendar.ID, adj calendar.Adjustment, dir Direction, endOfMonth bool) (Schedule, error) {
	if !end.After(start) {
		return nil, errs.Configf("schedule", start.Format("2006-01-02"),
			"end %s not after start", end.Format("2006-01-02"))
	}

	months, dayStep := freq.Period()
	eom := endOfMonth && months > 0 && start.Day() == calendar.DaysInMonth(start)

	var raw []time.Time
	switch dir {
	case Backward:
		raw = append(raw, end)
		for i := 1; ; i++ {
			d := step(end, -i*months, -i*dayStep, eom)
			if !d.After(start) {
				break
			}
			raw = append(raw, d)
		}
		raw = append(raw, start)
		reverse(raw)
	case Forward:
		raw = append(raw, start)
		for i := 1; ; i++ {
			d := step(start, i*months, i*dayStep, eom)
			if !d.Before(end) {
				break
			}
			raw = append(raw, d)
		}
		raw = append(raw, end)
	default:
		return nil, &errs.ConfigurationError{Setting: "date generation rule", Value: string(dir)}
	}

	out := make(Schedule, len(raw))
	for i, d := range raw {
		out[i] = calendar.Adjust(cal, d, adj)
	}
	for i := 1; i < len(out); i++ {
		if !out[i].After(out[i-1]) {
			return nil, errs.Configf("schedule", out[i].Format("2006-01-02"),
				"period collapse after business-day adjustment (frequency %s)", freq)
		}
	}
	return out, nil
}

// step offsets anchor by the given months/days without month-length drift:
// month arithmetic clamps to the shorter target month (EDATE semantics),
// and eom forces clamped month-end alignment.
func step(anchor time.Time, months, daysN int, eom bool) time.Time {
	if months == 0 {
		return anchor.AddDate(0, 0, daysN)
	}
	d := addMonthsClamped(anchor, months)
	if eom {
		return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return d
}

// addMonthsClamped behaves like Excel's EDATE, avoiding Go's month
// normalization surprises (e.g. Jan 31 + 1 month is Feb 28/29, not Mar 3).
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	day := t.Day()
	if max := calendar.DaysInMonth(firstOfTarget); day > max {
		day = max
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

func reverse(dates []time.Time) {
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
}
