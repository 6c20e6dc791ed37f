package calibrate

// Config holds solver and objective parameters.
type Config struct {
	// Scale multiplies the squared first-difference roughness objective.
	Scale float64

	// InitialGuess is the flat forward rate used to seed every decision
	// variable. Poor guesses can cause non-convergence, which is reported,
	// not fatal.
	InitialGuess float64

	// MaxIterations caps the SQP outer loop.
	MaxIterations int

	// Tolerance bounds both the maximum constraint violation (NPV per unit
	// notional) and the relative Lagrangian stationarity residual at
	// convergence. The forward-difference constraint Jacobian floors
	// achievable feasibility around 1e-7 per unit notional; tolerances
	// below that stall the solver instead of converging.
	Tolerance float64

	// ArmijoSlope is the sufficient-decrease fraction for the merit line
	// search.
	ArmijoSlope float64

	// MaxStepHalvings caps the backtracking line search.
	MaxStepHalvings int

	// HessianShift is added to the objective Hessian diagonal to keep the
	// KKT system factorizable.
	HessianShift float64

	// DualShift regularizes the KKT system's dual block, guarding against
	// rank-deficient constraint Jacobians.
	DualShift float64
}

// DefaultConfig provides the reference calibration parameters.
var DefaultConfig = Config{
	Scale:           1e6,
	InitialGuess:    0.02,
	MaxIterations:   500,
	Tolerance:       1e-6,
	ArmijoSlope:     1e-4,
	MaxStepHalvings: 40,
	HessianShift:    1e-8,
	DualShift:       1e-10,
}
