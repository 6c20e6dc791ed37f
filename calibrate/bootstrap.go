package calibrate

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/curve"
	"github.com/meenmo/curvecal/daycount"
	"github.com/meenmo/curvecal/errs"
	"github.com/meenmo/curvecal/schedule"
	"github.com/meenmo/curvecal/swap"
)

// Quote is one par swap quote.
type Quote struct {
	ID       string
	Maturity time.Time
	ParRate  float64
}

// Conventions are the static terms shared by every instrument in a run.
type Conventions struct {
	Direction  swap.Direction
	Notional   float64
	Calendar   calendar.ID
	Adjustment calendar.Adjustment
	Generation schedule.Direction
	EndOfMonth bool

	FixedFrequency schedule.Frequency
	FixedDayCount  daycount.Convention

	FloatFrequency schedule.Frequency
	FloatDayCount  daycount.Convention
	FloatSpread    float64
	Index          swap.Index
}

// Input carries everything the bootstrap driver needs; it is supplied by
// the (out-of-scope) CLI or config layer.
type Input struct {
	// EvaluationDate is the quote date; settlement follows after
	// SettlementLagDays business days on the conventions' calendar.
	EvaluationDate    time.Time
	SettlementLagDays int

	Quotes      []Quote
	Conventions Conventions

	// KnotFrequency spaces the pillar grid, generated Backward from the
	// longest quoted maturity down to settlement.
	KnotFrequency schedule.Frequency

	// CurveDayCount is the curve's time axis for forward integration.
	CurveDayCount daycount.Convention

	// Prefix holds the known short-end forward rates covering the first
	// knots; they are market data, never varied by the optimizer.
	Prefix []float64
}

// Result is a completed calibration: the curve, the full forward vector,
// and the post-calibration residual NPV per instrument id.
type Result struct {
	Curve      *curve.Forward
	KnotDates  []time.Time
	Forwards   []float64
	Residuals  map[string]float64
	Objective  float64
	Iterations int
	Converged  bool
}

// ConvergenceError reports that the solver exceeded its iteration cap or
// stalled off-tolerance. The best-effort (possibly infeasible) result and
// its residuals are attached; the caller decides whether to accept, retry
// with a different initial guess, or abort.
type ConvergenceError struct {
	Result      *Result
	MaxResidual float64
	WorstSwapID string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("calibrate: no convergence after %d iterations (worst residual %.6g on swap %s)",
		e.Result.Iterations, e.MaxResidual, e.WorstSwapID)
}

// Bootstrap builds the instrument set and knot grid from the input, runs
// the constrained solve, and assembles the calibrated curve. On
// non-convergence it returns both the best-effort Result and a
// *ConvergenceError.
func Bootstrap(in Input, cfg Config) (*Result, error) {
	if len(in.Quotes) == 0 {
		return nil, errs.Configf("quotes", "", "no par swap quotes")
	}
	conv := in.Conventions
	settlement := calendar.AddBusinessDays(conv.Calendar, in.EvaluationDate, in.SettlementLagDays)

	instruments := make([]*swap.Instrument, 0, len(in.Quotes))
	finalMaturity := settlement
	for _, q := range in.Quotes {
		inst, err := swap.New(swap.Spec{
			ID:        q.ID,
			Direction: conv.Direction,
			Notional:  conv.Notional,
			Effective: settlement,
			Maturity:  q.Maturity,
			Fixed: swap.LegSpec{
				Frequency:  conv.FixedFrequency,
				Calendar:   conv.Calendar,
				Adjustment: conv.Adjustment,
				Generation: conv.Generation,
				DayCount:   conv.FixedDayCount,
				EndOfMonth: conv.EndOfMonth,
				FixedRate:  q.ParRate,
			},
			Floating: swap.LegSpec{
				Frequency:  conv.FloatFrequency,
				Calendar:   conv.Calendar,
				Adjustment: conv.Adjustment,
				Generation: conv.Generation,
				DayCount:   conv.FloatDayCount,
				EndOfMonth: conv.EndOfMonth,
				Spread:     conv.FloatSpread,
				Index:      conv.Index,
			},
		})
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, inst)
		if q.Maturity.After(finalMaturity) {
			finalMaturity = q.Maturity
		}
	}

	knots, err := schedule.Generate(settlement, finalMaturity, in.KnotFrequency,
		conv.Calendar, conv.Adjustment, schedule.Backward, false)
	if err != nil {
		return nil, fmt.Errorf("knot grid: %w", err)
	}

	prob, err := NewProblem(instruments, knots, in.Prefix, settlement, in.CurveDayCount, conv.Calendar)
	if err != nil {
		return nil, err
	}
	return Run(prob, cfg)
}

// Run solves an assembled problem and reprices every instrument on the
// resulting curve.
func Run(p *Problem, cfg Config) (*Result, error) {
	x, iters, converged, err := solveSQP(p, cfg)
	if err != nil {
		return nil, err
	}

	crv, err := p.BuildCurve(x)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Curve:      crv,
		KnotDates:  p.KnotDates(),
		Forwards:   p.full(x),
		Residuals:  make(map[string]float64, len(p.instruments)),
		Iterations: iters,
		Converged:  converged,
	}
	objFn, _, _ := p.Objective(cfg.Scale)
	res.Objective = objFn(x)

	maxResidual, worst := 0.0, ""
	for _, in := range p.instruments {
		npv, err := swap.NPV(in, crv)
		if err != nil {
			return nil, err
		}
		res.Residuals[in.ID()] = npv
		if ab := math.Abs(npv); ab > maxResidual {
			maxResidual, worst = ab, in.ID()
		}
	}

	if !converged {
		return res, &ConvergenceError{Result: res, MaxResidual: maxResidual, WorstSwapID: worst}
	}
	return res, nil
}
