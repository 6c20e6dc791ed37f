package calendar

import "time"

func isHoliday(cal ID, t time.Time) bool {
	switch cal {
	case TARGET:
		return isTargetHoliday(t)
	case UnitedStates:
		return isUSHoliday(t)
	case UnitedKingdom:
		return isUKHoliday(t)
	default:
		return false
	}
}

// isTargetHoliday implements the ECB TARGET closing rule: New Year's Day,
// Good Friday and Easter Monday (since 2000), Labour Day (since 2000),
// Christmas Day, Day of Goodwill (since 2000), plus the year-end closings
// of 1998, 1999 and 2001.
func isTargetHoliday(t time.Time) bool {
	y, m, d := t.Year(), t.Month(), t.Day()

	if m == time.January && d == 1 {
		return true
	}
	if y >= 2000 {
		em := easterMonday(y)
		if t.Equal(em) || t.Equal(em.AddDate(0, 0, -3)) { // Easter Monday, Good Friday
			return true
		}
		if m == time.May && d == 1 {
			return true
		}
		if m == time.December && d == 26 {
			return true
		}
	}
	if m == time.December && d == 25 {
		return true
	}
	if m == time.December && d == 31 && (y == 1998 || y == 1999 || y == 2001) {
		return true
	}
	return false
}

// isUSHoliday implements the US settlement calendar: federal holidays with
// Saturday observed on the preceding Friday and Sunday on the following
// Monday.
func isUSHoliday(t time.Time) bool {
	y, m, d := t.Year(), t.Month(), t.Day()
	wd := t.Weekday()

	switch {
	// New Year's Day (Sunday rolls to Monday Jan 2; Friday Dec 31 covered below).
	case m == time.January && (d == 1 || (d == 2 && wd == time.Monday)):
		return true
	case m == time.December && d == 31 && wd == time.Friday:
		return true
	// Martin Luther King Jr. Day: third Monday of January, since 1983.
	case y >= 1983 && m == time.January && wd == time.Monday && (d-1)/7 == 2:
		return true
	// Washington's Birthday: third Monday of February.
	case m == time.February && wd == time.Monday && (d-1)/7 == 2:
		return true
	// Memorial Day: last Monday of May.
	case m == time.May && wd == time.Monday && d+7 > DaysInMonth(t):
		return true
	// Juneteenth: June 19th, observed, since 2022.
	case y >= 2022 && m == time.June && observes(d, wd, 19):
		return true
	// Independence Day: July 4th, observed.
	case m == time.July && observes(d, wd, 4):
		return true
	// Labor Day: first Monday of September.
	case m == time.September && wd == time.Monday && (d-1)/7 == 0:
		return true
	// Columbus Day: second Monday of October.
	case m == time.October && wd == time.Monday && (d-1)/7 == 1:
		return true
	// Veterans Day: November 11th, observed.
	case m == time.November && observes(d, wd, 11):
		return true
	// Thanksgiving: fourth Thursday of November.
	case m == time.November && wd == time.Thursday && (d-1)/7 == 3:
		return true
	// Christmas Day: December 25th, observed.
	case m == time.December && observes(d, wd, 25):
		return true
	}
	return false
}

// observes reports whether day d (falling on weekday wd) is the holiday
// with nominal date target, counting the preceding Friday for a Saturday
// holiday and the following Monday for a Sunday one.
func observes(d int, wd time.Weekday, target int) bool {
	if d == target {
		return wd != time.Saturday && wd != time.Sunday
	}
	return (d == target-1 && wd == time.Friday) || (d == target+1 && wd == time.Monday)
}

// isUKHoliday implements the England & Wales bank holiday rule: New Year's
// Day (observed), Good Friday, Easter Monday, the early May and spring bank
// holidays, the summer bank holiday, Christmas and Boxing Day (observed).
func isUKHoliday(t time.Time) bool {
	y, m, d := t.Year(), t.Month(), t.Day()
	wd := t.Weekday()

	switch {
	case m == time.January && (d == 1 || ((d == 2 || d == 3) && wd == time.Monday)):
		return true
	// Early May bank holiday: first Monday of May.
	case m == time.May && wd == time.Monday && (d-1)/7 == 0:
		return true
	// Spring bank holiday: last Monday of May.
	case m == time.May && wd == time.Monday && d+7 > DaysInMonth(t):
		return true
	// Summer bank holiday: last Monday of August.
	case m == time.August && wd == time.Monday && d+7 > DaysInMonth(t):
		return true
	// Christmas and Boxing Day, observed when falling on a weekend.
	case m == time.December && (d == 25 || d == 26):
		return true
	case m == time.December && (d == 27 || d == 28) && (wd == time.Monday || wd == time.Tuesday):
		return true
	}

	em := easterMonday(y)
	if t.Equal(em) || t.Equal(em.AddDate(0, 0, -3)) {
		return true
	}
	return false
}

// easterMonday returns Easter Monday (Gregorian) for the given year using
// the Meeus/Jones/Butcher computus.
func easterMonday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	// Easter Sunday + 1 day.
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
