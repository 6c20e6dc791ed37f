// Package marketdata embeds reference quote sets used by the bootstrap
// driver and the end-to-end tests.
package marketdata

import (
	"time"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/calibrate"
	"github.com/meenmo/curvecal/daycount"
	"github.com/meenmo/curvecal/schedule"
	"github.com/meenmo/curvecal/swap"
)

// USD par swap quotes as of 2008-02-04: 14 payer swaps, 2Y to 30Y, annual
// fixed Actual/360 vs quarterly USD Libor 3M Actual/360, ModifiedFollowing
// on TARGET, backward date generation. Maturities are the quoted
// (adjusted) termination dates.
var usdQuotes20080204 = []calibrate.Quote{
	{ID: "2Y", Maturity: date(2010, 2, 8), ParRate: 0.02795},
	{ID: "3Y", Maturity: date(2011, 2, 7), ParRate: 0.03035},
	{ID: "4Y", Maturity: date(2012, 2, 6), ParRate: 0.03275},
	{ID: "5Y", Maturity: date(2013, 2, 6), ParRate: 0.03505},
	{ID: "6Y", Maturity: date(2014, 2, 6), ParRate: 0.03715},
	{ID: "7Y", Maturity: date(2015, 2, 6), ParRate: 0.03885},
	{ID: "8Y", Maturity: date(2016, 2, 8), ParRate: 0.04025},
	{ID: "9Y", Maturity: date(2017, 2, 6), ParRate: 0.04155},
	{ID: "10Y", Maturity: date(2018, 2, 6), ParRate: 0.04265},
	{ID: "12Y", Maturity: date(2020, 2, 6), ParRate: 0.04435},
	{ID: "15Y", Maturity: date(2023, 2, 6), ParRate: 0.04615},
	{ID: "20Y", Maturity: date(2028, 2, 7), ParRate: 0.04755},
	{ID: "25Y", Maturity: date(2033, 2, 7), ParRate: 0.04805},
	{ID: "30Y", Maturity: date(2038, 2, 8), ParRate: 0.04815},
}

// usdShortEnd20080204 holds the deposit/futures-implied forward rates
// covering the first four quarterly knots; they are treated as known
// constants during calibration.
var usdShortEnd20080204 = []float64{0.03145, 0.0279275, 0.0253077, 0.0249374}

// USD20080204 returns the USD reference calibration input: evaluation date
// 2008-02-04, settlement two TARGET business days later, quarterly knot
// grid out to the 30Y maturity.
func USD20080204() calibrate.Input {
	return calibrate.Input{
		EvaluationDate:    date(2008, 2, 4),
		SettlementLagDays: 2,
		Quotes:            append([]calibrate.Quote(nil), usdQuotes20080204...),
		Conventions: calibrate.Conventions{
			Direction:      swap.Payer,
			Notional:       1_000_000,
			Calendar:       calendar.TARGET,
			Adjustment:     calendar.ModifiedFollowing,
			Generation:     schedule.Backward,
			EndOfMonth:     false,
			FixedFrequency: schedule.Annual,
			FixedDayCount:  daycount.Act360,
			FloatFrequency: schedule.Quarterly,
			FloatDayCount:  daycount.Act360,
			FloatSpread:    0.0,
			Index:          swap.USDLibor3M,
		},
		KnotFrequency: schedule.Quarterly,
		CurveDayCount: daycount.Act360,
		Prefix:        append([]float64(nil), usdShortEnd20080204...),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
