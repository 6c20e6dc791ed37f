package calibrate

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// solveSQP minimizes the roughness objective subject to the NPV equality
// constraints by sequential quadratic programming: each iteration solves
// the Newton-KKT system
//
//	[ H  Aᵀ ] [ dx ]   [ -g ]
//	[ A  0  ] [ λ  ] = [ -c ]
//
// for the step and multipliers, then backtracks on an l1 merit function.
// The objective Hessian H is analytic and constant; the constraint
// Jacobian A is finite-differenced with constraint evaluations running
// concurrently across columns (each evaluation builds its own curve and
// only reads the immutable instrument set). No convexity is assumed: the
// problem is underdetermined and the smoothness objective selects among
// the feasible curves.
//
// The returned error covers valuation/config failures only; exceeding the
// iteration cap is reported through converged=false with the best-effort
// iterate, not as an error.
func solveSQP(p *Problem, cfg Config) (x []float64, iters int, converged bool, err error) {
	n := p.Dim()
	m := p.NumConstraints()

	x = make([]float64, n)
	for i := range x {
		x[i] = cfg.InitialGuess
	}

	objFn, objGrad, hess := p.Objective(cfg.Scale)

	c := make([]float64, m)
	if err := p.Constraints(c, x); err != nil {
		return x, 0, false, err
	}

	// fd.Jacobian needs an error-free closure; capture the first valuation
	// failure and surface it after the sweep.
	var (
		fdMu  sync.Mutex
		fdErr error
	)
	consFD := func(y, xx []float64) {
		if err := p.Constraints(y, xx); err != nil {
			fdMu.Lock()
			if fdErr == nil {
				fdErr = err
			}
			fdMu.Unlock()
			for i := range y {
				y[i] = 0
			}
		}
	}

	var (
		jac    = mat.NewDense(m, n, nil)
		g      = make([]float64, n)
		kkt    = mat.NewDense(n+m, n+m, nil)
		rhs    = mat.NewVecDense(n+m, nil)
		sol    = mat.NewVecDense(n+m, nil)
		lam    = make([]float64, m)
		dx     = make([]float64, n)
		xTrial = make([]float64, n)
		cTrial = make([]float64, m)
	)

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		fdErr = nil
		fd.Jacobian(jac, consFD, x, &fd.JacobianSettings{
			Formula:     fd.Forward,
			OriginValue: c,
			Concurrent:  true,
		})
		if fdErr != nil {
			return x, iter, false, fdErr
		}

		objGrad(g, x)

		kkt.Zero()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				kkt.Set(i, j, hess.At(i, j))
			}
			kkt.Set(i, i, kkt.At(i, i)+cfg.HessianShift)
		}
		for k := 0; k < m; k++ {
			for j := 0; j < n; j++ {
				a := jac.At(k, j)
				kkt.Set(n+k, j, a)
				kkt.Set(j, n+k, a)
			}
			// Small negative dual shift keeps the factorization stable when
			// the constraint Jacobian loses rank.
			kkt.Set(n+k, n+k, -cfg.DualShift)
		}
		for j := 0; j < n; j++ {
			rhs.SetVec(j, -g[j])
		}
		for k := 0; k < m; k++ {
			rhs.SetVec(n+k, -c[k])
		}

		var lu mat.LU
		lu.Factorize(kkt)
		if err := lu.SolveVecTo(sol, false, rhs); err != nil {
			return x, iter, false, fmt.Errorf("calibrate: KKT solve failed at iteration %d: %w", iter, err)
		}
		for j := 0; j < n; j++ {
			dx[j] = sol.AtVec(j)
		}
		for k := 0; k < m; k++ {
			lam[k] = sol.AtVec(n + k)
		}

		// Converged when every swap reprices within tolerance and the
		// Lagrangian gradient is stationary relative to the objective scale.
		stat := 0.0
		for j := 0; j < n; j++ {
			r := g[j]
			for k := 0; k < m; k++ {
				r += jac.At(k, j) * lam[k]
			}
			if ab := math.Abs(r); ab > stat {
				stat = ab
			}
		}
		viol := floats.Norm(c, math.Inf(1))
		if viol <= cfg.Tolerance && stat <= cfg.Tolerance*math.Max(1, floats.Norm(g, math.Inf(1))) {
			return x, iter, true, nil
		}

		// l1 merit line search. The penalty weight dominates the current
		// multipliers so the step direction stays a descent direction.
		mu := 10.0 + 2.0*floats.Norm(lam, math.Inf(1))
		phi0 := objFn(x) + mu*floats.Norm(c, 1)
		dphi := floats.Dot(g, dx) - mu*floats.Norm(c, 1)

		alpha := 1.0
		for h := 0; ; h++ {
			floats.AddScaledTo(xTrial, x, alpha, dx)
			if err := p.Constraints(cTrial, xTrial); err != nil {
				return x, iter, false, err
			}
			phi := objFn(xTrial) + mu*floats.Norm(cTrial, 1)
			if phi <= phi0+cfg.ArmijoSlope*alpha*dphi || h >= cfg.MaxStepHalvings {
				break
			}
			alpha *= 0.5
		}
		copy(x, xTrial)
		copy(c, cTrial)

		// A vanishing step means the iterate has settled: converged if the
		// constraints are satisfied, stalled otherwise. Either way further
		// iterations cannot move x, so stop instead of spinning out the cap.
		if alpha*floats.Norm(dx, math.Inf(1)) < 1e-14 {
			return x, iter, floats.Norm(c, math.Inf(1)) <= cfg.Tolerance, nil
		}
	}

	return x, cfg.MaxIterations, false, nil
}
