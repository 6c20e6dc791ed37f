// Package daycount implements day-count conventions as a closed enum with
// an exhaustive year-fraction rule per variant.
package daycount

import (
	"strings"
	"time"

	"github.com/meenmo/curvecal/errs"
)

// Convention is a year-fraction rule.
type Convention string

const (
	Act360       Convention = "ACTUAL360"
	Act365Fixed  Convention = "ACTUAL365FIXED"
	ActActISDA   Convention = "ACTUALACTUAL"
	Act365NoLeap Convention = "ACTUAL365NOLEAP"
	Thirty360    Convention = "THIRTY360"
	Business252  Convention = "BUSINESS252"
)

// Parse maps a convention name to its Convention. Unknown names are a
// configuration defect, never silently defaulted.
func Parse(s string) (Convention, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTUAL360", "ACT/360":
		return Act360, nil
	case "ACTUAL365FIXED", "ACT/365F":
		return Act365Fixed, nil
	case "ACTUALACTUAL", "ACT/ACT":
		return ActActISDA, nil
	case "ACTUAL365NOLEAP", "ACT/365NL":
		return Act365NoLeap, nil
	case "THIRTY360", "30/360":
		return Thirty360, nil
	case "BUSINESS252", "BUS/252":
		return Business252, nil
	default:
		return "", &errs.ConfigurationError{Setting: "day count convention", Value: s}
	}
}

// YearFraction computes the year fraction between two dates under the given
// convention. The result is >= 0 for end >= start and exactly 0 for equal
// dates. Convention values come from Parse; anything else panics.
func YearFraction(c Convention, start, end time.Time) float64 {
	if end.Before(start) {
		return -YearFraction(c, end, start)
	}
	switch c {
	case Act360:
		return days(start, end) / 360.0
	case Act365Fixed:
		return days(start, end) / 365.0
	case ActActISDA:
		return actActISDA(start, end)
	case Act365NoLeap:
		return (days(start, end) - float64(leapDaysBetween(start, end))) / 365.0
	case Thirty360:
		return thirty360(start, end)
	case Business252:
		// Weekday count over a flat 252-day year. No exchange calendar is in
		// scope, so holidays are not excluded here.
		return float64(weekdaysBetween(start, end)) / 252.0
	default:
		panic("daycount: unknown convention " + string(c))
	}
}

func days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// actActISDA splits the interval at calendar-year boundaries, weighting each
// portion by its own year length.
func actActISDA(start, end time.Time) float64 {
	if start.Year() == end.Year() {
		return days(start, end) / yearLength(start.Year())
	}
	startYearEnd := time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	endYearStart := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return days(start, startYearEnd)/yearLength(start.Year()) +
		float64(end.Year()-start.Year()-1) +
		days(endYearStart, end)/yearLength(end.Year())
}

func yearLength(year int) float64 {
	if isLeapYear(year) {
		return 366.0
	}
	return 365.0
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// leapDaysBetween counts February 29ths in (start, end].
func leapDaysBetween(start, end time.Time) int {
	n := 0
	for y := start.Year(); y <= end.Year(); y++ {
		if !isLeapYear(y) {
			continue
		}
		feb29 := time.Date(y, time.February, 29, 0, 0, 0, 0, time.UTC)
		if feb29.After(start) && !feb29.After(end) {
			n++
		}
	}
	return n
}

// thirty360 applies the US bond basis: day-of-month 31 counts as 30 on the
// start date, and on the end date when the start day is already >= 30.
func thirty360(start, end time.Time) float64 {
	d1 := start.Day()
	d2 := end.Day()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 == 30 {
		d2 = 30
	}
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

func weekdaysBetween(start, end time.Time) int {
	n := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}
