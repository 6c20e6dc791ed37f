// Package curve provides a piecewise-constant forward-rate curve keyed by
// pillar dates, with discount-factor and forward-rate queries.
package curve

import (
	"math"
	"sort"
	"time"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/daycount"
	"github.com/meenmo/curvecal/errs"
)

// Knot is one curve pillar: a date and the forward rate that applies on the
// interval ending at that date (backward-flat interpolation). The first
// knot sits at the curve's settlement date; its rate only applies at the
// settlement instant itself.
type Knot struct {
	Date time.Time
	Rate float64
}

// Forward is a piecewise-constant forward curve. It is immutable after
// construction and safe for concurrent reads.
type Forward struct {
	settlement time.Time
	cal        calendar.ID
	dc         daycount.Convention
	knots      []Knot
	times      []float64 // year fraction from settlement to each knot
	integrals  []float64 // cumulative forward integral up to each knot
}

// New builds a curve from ordered knots. Knot dates must be strictly
// increasing with the first knot at the settlement date; dc and cal define
// the curve's time axis.
func New(settlement time.Time, knots []Knot, dc daycount.Convention, cal calendar.ID) (*Forward, error) {
	if len(knots) < 2 {
		return nil, errs.Configf("curve", settlement.Format("2006-01-02"),
			"need at least 2 knots, got %d", len(knots))
	}
	if !knots[0].Date.Equal(settlement) {
		return nil, errs.Configf("curve", knots[0].Date.Format("2006-01-02"),
			"first knot must fall on settlement %s", settlement.Format("2006-01-02"))
	}
	for i := 1; i < len(knots); i++ {
		if !knots[i].Date.After(knots[i-1].Date) {
			return nil, errs.Configf("curve", knots[i].Date.Format("2006-01-02"),
				"knot dates not strictly increasing at index %d", i)
		}
	}

	c := &Forward{
		settlement: settlement,
		cal:        cal,
		dc:         dc,
		knots:      append([]Knot(nil), knots...),
		times:      make([]float64, len(knots)),
		integrals:  make([]float64, len(knots)),
	}
	for i, k := range knots {
		c.times[i] = daycount.YearFraction(dc, settlement, k.Date)
		if i > 0 {
			c.integrals[i] = c.integrals[i-1] + k.Rate*(c.times[i]-c.times[i-1])
		}
	}
	return c, nil
}

// DF returns the discount factor at t: exp of the negated forward integral
// from settlement to t. DF(settlement) is exactly 1. Queries outside the
// knot domain fail with a DomainError; the curve never extrapolates.
func (c *Forward) DF(t time.Time) (float64, error) {
	if t.Equal(c.settlement) {
		return 1.0, nil
	}
	if t.Before(c.settlement) {
		return 0, errs.Domainf("curve.DF", t, "before settlement %s", c.settlement.Format("2006-01-02"))
	}
	last := c.knots[len(c.knots)-1].Date
	if t.After(last) {
		return 0, errs.Domainf("curve.DF", t, "beyond last knot %s", last.Format("2006-01-02"))
	}

	i := c.search(t)
	integral := c.integrals[i-1] + c.knots[i].Rate*(daycount.YearFraction(c.dc, c.settlement, t)-c.times[i-1])
	df := math.Exp(-integral)
	if math.IsNaN(df) || math.IsInf(df, 0) || df <= 0 {
		return 0, errs.Domainf("curve.DF", t, "degenerate discount factor %g", df)
	}
	return df, nil
}

// ForwardRate returns the piecewise-constant rate applicable on the
// interval containing t.
func (c *Forward) ForwardRate(t time.Time) (float64, error) {
	if t.Before(c.settlement) {
		return 0, errs.Domainf("curve.ForwardRate", t, "before settlement %s", c.settlement.Format("2006-01-02"))
	}
	if t.Equal(c.settlement) {
		return c.knots[0].Rate, nil
	}
	last := c.knots[len(c.knots)-1].Date
	if t.After(last) {
		return 0, errs.Domainf("curve.ForwardRate", t, "beyond last knot %s", last.Format("2006-01-02"))
	}
	return c.knots[c.search(t)].Rate, nil
}

// search returns the index of the first knot whose date is >= t. Callers
// guarantee settlement < t <= last knot, so the result is in [1, len-1].
func (c *Forward) search(t time.Time) int {
	return sort.Search(len(c.knots), func(i int) bool {
		return !c.knots[i].Date.Before(t)
	})
}

// Settlement returns the curve's reference date.
func (c *Forward) Settlement() time.Time { return c.settlement }

// DayCount returns the curve's time-axis day count.
func (c *Forward) DayCount() daycount.Convention { return c.dc }

// Calendar returns the curve's calendar.
func (c *Forward) Calendar() calendar.ID { return c.cal }

// Knots returns a copy of the curve pillars.
func (c *Forward) Knots() []Knot {
	return append([]Knot(nil), c.knots...)
}

// Times returns the year fractions from settlement to each knot.
func (c *Forward) Times() []float64 {
	return append([]float64(nil), c.times...)
}
