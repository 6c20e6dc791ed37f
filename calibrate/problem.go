// Package calibrate bootstraps a forward curve from par swap quotes by
// solving an equality-constrained minimization: the decision variables are
// the unknown tail forward rates, each reference swap contributes one
// NPV-equals-zero constraint, and a squared first-difference roughness
// objective selects the smoothest curve among the feasible set.
package calibrate

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/curve"
	"github.com/meenmo/curvecal/daycount"
	"github.com/meenmo/curvecal/errs"
	"github.com/meenmo/curvecal/swap"
)

// Problem is one calibration instance: the instrument set, the fixed knot
// date grid, and the known short-end forward-rate prefix that is never
// varied. The decision vector length is len(knotDates) - len(prefix).
type Problem struct {
	instruments []*swap.Instrument
	knotDates   []time.Time
	prefix      []float64
	settlement  time.Time
	dc          daycount.Convention
	cal         calendar.ID
}

// NewProblem validates and assembles a calibration problem. The knot grid
// must start at settlement, increase strictly, and cover every instrument's
// maturity; instrument ids must be unique within the run.
func NewProblem(instruments []*swap.Instrument, knotDates []time.Time, prefix []float64,
	settlement time.Time, dc daycount.Convention, cal calendar.ID) (*Problem, error) {

	if len(instruments) == 0 {
		return nil, errs.Configf("calibration", "", "no instruments")
	}
	seen := make(map[string]struct{}, len(instruments))
	for _, in := range instruments {
		if _, dup := seen[in.ID()]; dup {
			return nil, errs.Configf("swap id", in.ID(), "duplicate within calibration run")
		}
		seen[in.ID()] = struct{}{}
	}
	if len(prefix) == 0 || len(prefix) >= len(knotDates) {
		return nil, errs.Configf("market rate prefix", fmt.Sprintf("%d rates", len(prefix)),
			"must be shorter than the %d-knot grid and non-empty", len(knotDates))
	}
	if !knotDates[0].Equal(settlement) {
		return nil, errs.Configf("knot grid", knotDates[0].Format("2006-01-02"),
			"first knot must fall on settlement %s", settlement.Format("2006-01-02"))
	}
	for i := 1; i < len(knotDates); i++ {
		if !knotDates[i].After(knotDates[i-1]) {
			return nil, errs.Configf("knot grid", knotDates[i].Format("2006-01-02"),
				"knot dates not strictly increasing at index %d", i)
		}
	}
	last := knotDates[len(knotDates)-1]
	for _, in := range instruments {
		if in.Spec().Maturity.After(last) {
			return nil, errs.Configf("knot grid", last.Format("2006-01-02"),
				"grid ends before swap %s maturity %s", in.ID(), in.Spec().Maturity.Format("2006-01-02"))
		}
	}

	return &Problem{
		instruments: instruments,
		knotDates:   append([]time.Time(nil), knotDates...),
		prefix:      append([]float64(nil), prefix...),
		settlement:  settlement,
		dc:          dc,
		cal:         cal,
	}, nil
}

// Dim returns the decision vector length.
func (p *Problem) Dim() int { return len(p.knotDates) - len(p.prefix) }

// NumConstraints returns the number of NPV equality constraints.
func (p *Problem) NumConstraints() int { return len(p.instruments) }

// Instruments returns the calibration instrument set.
func (p *Problem) Instruments() []*swap.Instrument { return p.instruments }

// KnotDates returns the fixed pillar grid.
func (p *Problem) KnotDates() []time.Time {
	return append([]time.Time(nil), p.knotDates...)
}

// full concatenates the known prefix with the decision vector.
func (p *Problem) full(x []float64) []float64 {
	out := make([]float64, 0, len(p.prefix)+len(x))
	out = append(out, p.prefix...)
	return append(out, x...)
}

// BuildCurve assembles the candidate curve for a decision vector. Each
// evaluation owns its curve exclusively; no curve state crosses iterations.
func (p *Problem) BuildCurve(x []float64) (*curve.Forward, error) {
	if len(x) != p.Dim() {
		return nil, errs.Configf("decision vector", fmt.Sprintf("%d rates", len(x)),
			"want %d", p.Dim())
	}
	rates := p.full(x)
	knots := make([]curve.Knot, len(p.knotDates))
	for i, d := range p.knotDates {
		knots[i] = curve.Knot{Date: d, Rate: rates[i]}
	}
	return curve.New(p.settlement, knots, p.dc, p.cal)
}

// Objective returns the roughness objective scale * sum of squared first
// differences of the full forward vector, with its analytic gradient and
// (constant) Hessian restricted to the decision variables.
func (p *Problem) Objective(scale float64) (
	fn func(x []float64) float64,
	grad func(dst, x []float64),
	hess *mat.SymDense,
) {
	m := len(p.prefix)
	total := len(p.knotDates)
	n := p.Dim()

	fn = func(x []float64) float64 {
		y := p.full(x)
		sum := 0.0
		for i := 0; i+1 < len(y); i++ {
			d := y[i+1] - y[i]
			sum += d * d
		}
		return scale * sum
	}

	grad = func(dst, x []float64) {
		y := p.full(x)
		for j := 0; j < n; j++ {
			i := m + j
			g := 0.0
			if i >= 1 {
				g += 2 * (y[i] - y[i-1])
			}
			if i+1 < total {
				g -= 2 * (y[i+1] - y[i])
			}
			dst[j] = scale * g
		}
	}

	hess = mat.NewSymDense(n, nil)
	for j := 0; j < n; j++ {
		i := m + j
		d := 0.0
		if i >= 1 {
			d += 2 * scale
		}
		if i+1 < total {
			d += 2 * scale
		}
		hess.SetSym(j, j, d)
		if j+1 < n {
			hess.SetSym(j, j+1, -2*scale)
		}
	}
	return fn, grad, hess
}

// Constraints evaluates every instrument's NPV per unit notional on the
// candidate curve into dst. A valuation error aborts the evaluation; it is
// never converted into a penalty value, since a silently wrong constraint
// would corrupt the calibration without detection.
func (p *Problem) Constraints(dst []float64, x []float64) error {
	crv, err := p.BuildCurve(x)
	if err != nil {
		return err
	}
	for k, in := range p.instruments {
		npv, err := swap.NPV(in, crv)
		if err != nil {
			return err
		}
		dst[k] = npv / in.Spec().Notional
	}
	return nil
}
