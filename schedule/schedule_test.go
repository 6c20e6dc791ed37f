package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/errs"
	"github.com/meenmo/curvecal/schedule"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestGenerateAnnualBackward(t *testing.T) {
	t.Parallel()

	start := d(2008, time.February, 6)
	end := d(2010, time.February, 8) // 2010-02-06 is a Saturday, quotes carry the rolled date

	sch, err := schedule.Generate(start, end, schedule.Annual,
		calendar.TARGET, calendar.ModifiedFollowing, schedule.Backward, false)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if !sch.Start().Equal(start) {
		t.Fatalf("Start = %s, want %s", sch.Start().Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if !sch.End().Equal(end) {
		t.Fatalf("End = %s, want %s", sch.End().Format("2006-01-02"), end.Format("2006-01-02"))
	}
	for i := 1; i < len(sch); i++ {
		if !sch[i].After(sch[i-1]) {
			t.Fatalf("dates not strictly increasing at %d: %s <= %s",
				i, sch[i].Format("2006-01-02"), sch[i-1].Format("2006-01-02"))
		}
	}
	for _, dt := range sch {
		if !calendar.IsBusinessDay(calendar.TARGET, dt) {
			t.Fatalf("%s is not a TARGET business day", dt.Format("2006-01-02"))
		}
	}
	// Backward from 2010-02-08 the anchors fall on Feb 8, leaving a short
	// front stub from the Feb 6 start; 2009-02-08 is a Sunday and rolls to
	// Monday.
	want := []time.Time{
		d(2008, time.February, 6),
		d(2008, time.February, 8),
		d(2009, time.February, 9),
		d(2010, time.February, 8),
	}
	if len(sch) != len(want) {
		t.Fatalf("len = %d, want %d", len(sch), len(want))
	}
	for i := range want {
		if !sch[i].Equal(want[i]) {
			t.Errorf("sch[%d] = %s, want %s", i, sch[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestGenerateBackwardFrontStub(t *testing.T) {
	t.Parallel()

	// 14 months quarterly, backward: the stub sits at the front.
	start := d(2008, time.February, 6)
	end := d(2009, time.April, 6)

	sch, err := schedule.Generate(start, end, schedule.Quarterly,
		calendar.TARGET, calendar.Unadjusted, schedule.Backward, false)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	// Raw backward grid: Apr 6 09, Jan 6 09, Oct 6 08, Jul 6 08, Apr 6 08,
	// then the Feb 6 start. The first period is the two-month stub.
	want := []time.Time{
		d(2008, time.February, 6),
		d(2008, time.April, 6),
		d(2008, time.July, 6),
		d(2008, time.October, 6),
		d(2009, time.January, 6),
		d(2009, time.April, 6),
	}
	if len(sch) != len(want) {
		t.Fatalf("len = %d, want %d", len(sch), len(want))
	}
	for i := range want {
		if !sch[i].Equal(want[i]) {
			t.Errorf("sch[%d] = %s, want %s", i, sch[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestGenerateForwardBackStub(t *testing.T) {
	t.Parallel()

	start := d(2008, time.February, 6)
	end := d(2009, time.April, 6)

	sch, err := schedule.Generate(start, end, schedule.Quarterly,
		calendar.TARGET, calendar.Unadjusted, schedule.Forward, false)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	want := []time.Time{
		d(2008, time.February, 6),
		d(2008, time.May, 6),
		d(2008, time.August, 6),
		d(2008, time.November, 6),
		d(2009, time.February, 6),
		d(2009, time.April, 6),
	}
	if len(sch) != len(want) {
		t.Fatalf("len = %d, want %d", len(sch), len(want))
	}
	for i := range want {
		if !sch[i].Equal(want[i]) {
			t.Errorf("sch[%d] = %s, want %s", i, sch[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestGenerateMonthEndClamp(t *testing.T) {
	t.Parallel()

	// Monthly from Jan 31: Go's naive AddDate would drift through March 2/3.
	sch, err := schedule.Generate(d(2008, time.January, 31), d(2008, time.May, 31),
		schedule.Monthly, calendar.TARGET, calendar.Unadjusted, schedule.Forward, false)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	want := []time.Time{
		d(2008, time.January, 31),
		d(2008, time.February, 29),
		d(2008, time.March, 31),
		d(2008, time.April, 30),
		d(2008, time.May, 31),
	}
	if len(sch) != len(want) {
		t.Fatalf("len = %d, want %d", len(sch), len(want))
	}
	for i := range want {
		if !sch[i].Equal(want[i]) {
			t.Errorf("sch[%d] = %s, want %s", i, sch[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestGenerateEndNotAfterStart(t *testing.T) {
	t.Parallel()

	_, err := schedule.Generate(d(2008, time.February, 6), d(2008, time.February, 6),
		schedule.Quarterly, calendar.TARGET, calendar.ModifiedFollowing, schedule.Backward, false)
	var cfgErr *errs.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
}

func TestGeneratePeriodCollapse(t *testing.T) {
	t.Parallel()

	// Daily steps across a weekend collapse once adjusted to business days.
	_, err := schedule.Generate(d(2008, time.February, 8), d(2008, time.February, 12),
		schedule.Daily, calendar.TARGET, calendar.Following, schedule.Forward, false)
	var cfgErr *errs.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigurationError for collapsed periods, got %v", err)
	}
}

func TestParseFrequencyAndDirection(t *testing.T) {
	t.Parallel()

	if f, err := schedule.ParseFrequency("quarterly"); err != nil || f != schedule.Quarterly {
		t.Fatalf("ParseFrequency = %q, %v", f, err)
	}
	if _, err := schedule.ParseFrequency("FORTNIGHTLY"); err == nil {
		t.Fatalf("ParseFrequency(FORTNIGHTLY) should fail")
	}
	if dir, err := schedule.ParseDirection("Backward"); err != nil || dir != schedule.Backward {
		t.Fatalf("ParseDirection = %q, %v", dir, err)
	}
	if _, err := schedule.ParseDirection("ZIGZAG"); err == nil {
		t.Fatalf("ParseDirection(ZIGZAG) should fail")
	}
}
