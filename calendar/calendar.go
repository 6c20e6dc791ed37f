// Package calendar provides holiday calendars and business-day adjustment
// rules. All functions are pure; dates are time.Time values at UTC midnight.
package calendar

import (
	"strings"
	"time"

	"github.com/meenmo/curvecal/errs"
)

// ID identifies a holiday calendar.
type ID string

const (
	TARGET        ID = "TARGET"
	UnitedStates  ID = "UNITEDSTATES"
	UnitedKingdom ID = "UNITEDKINGDOM"
)

// Parse maps a calendar name to its ID. Unknown names are a configuration
// defect, never silently defaulted.
func Parse(s string) (ID, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TARGET":
		return TARGET, nil
	case "UNITEDSTATES", "US":
		return UnitedStates, nil
	case "UNITEDKINGDOM", "UK":
		return UnitedKingdom, nil
	default:
		return "", &errs.ConfigurationError{Setting: "calendar", Value: s}
	}
}

// Adjustment is a business-day rolling rule.
type Adjustment string

const (
	Following         Adjustment = "FOLLOWING"
	ModifiedFollowing Adjustment = "MODIFIEDFOLLOWING"
	Preceding         Adjustment = "PRECEDING"
	ModifiedPreceding Adjustment = "MODIFIEDPRECEDING"
	Unadjusted        Adjustment = "UNADJUSTED"
)

// ParseAdjustment maps a rolling-rule name to its Adjustment.
func ParseAdjustment(s string) (Adjustment, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FOLLOWING":
		return Following, nil
	case "MODIFIEDFOLLOWING":
		return ModifiedFollowing, nil
	case "PRECEDING":
		return Preceding, nil
	case "MODIFIEDPRECEDING":
		return ModifiedPreceding, nil
	case "UNADJUSTED":
		return Unadjusted, nil
	default:
		return "", &errs.ConfigurationError{Setting: "business day adjustment", Value: s}
	}
}

// IsBusinessDay checks weekends and the calendar's holiday rule.
func IsBusinessDay(cal ID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust maps t to a business day under the given rolling rule.
func Adjust(cal ID, t time.Time, adj Adjustment) time.Time {
	switch adj {
	case Unadjusted:
		return t
	case Following:
		return nextBusinessDay(cal, t)
	case Preceding:
		return priorBusinessDay(cal, t)
	case ModifiedFollowing:
		d := nextBusinessDay(cal, t)
		if d.Month() != t.Month() {
			return priorBusinessDay(cal, t)
		}
		return d
	case ModifiedPreceding:
		d := priorBusinessDay(cal, t)
		if d.Month() != t.Month() {
			return nextBusinessDay(cal, t)
		}
		return d
	default:
		// Adjustment values come from ParseAdjustment; anything else is a
		// programming error.
		panic("calendar: unknown adjustment " + string(adj))
	}
}

func nextBusinessDay(cal ID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func priorBusinessDay(cal ID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal ID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal ID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal ID, t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, firstOfNext, -1)
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
