package qchem

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/theapemachine/errnie"
)

// CostFunc maps a parameter vector to a scalar energy estimate.
type CostFunc func(params []float64) (float64, error)

// GradFunc returns the gradient of a cost function at params.
type GradFunc func(params []float64) ([]float64, error)

// GradientDescent is the plain fixed-step optimizer the convergence loop
// uses: params <- params - stepsize * grad.
type GradientDescent struct {
	Stepsize float64
}

// Step applies one update and returns the new parameters.
func (g *GradientDescent) Step(grad GradFunc, params []float64) ([]float64, error) {
	gr, err := grad(params)
	if err != nil {
		return nil, err
	}
	next := make([]float64, len(params))
	for i := range params {
		next[i] = params[i] - g.Stepsize*gr[i]
	}
	return next, nil
}

// StepAndCost applies one update and returns the new parameters together
// with the cost at the point the step was taken from.
func (g *GradientDescent) StepAndCost(cost CostFunc, grad GradFunc, params []float64) ([]float64, float64, error) {
	prev, err := cost(params)
	if err != nil {
		return nil, 0, err
	}
	next, err := g.Step(grad, params)
	if err != nil {
		return nil, 0, err
	}
	return next, prev, nil
}

// Result records one finished minimization.
type Result struct {
	Energy     float64
	Params     []float64
	Iterations int
	Converged  bool
	History    []float64 // energy after each iteration
}

type minimizeConfig struct {
	stepsize   float64
	tolerance  float64
	maxIter    int
	initial    []float64
	randomSeed *int64
}

// Option configures a minimization run.
type Option func(*minimizeConfig)

// WithStepsize sets the gradient-descent step size (default 0.4).
func WithStepsize(s float64) Option {
	return func(c *minimizeConfig) { c.stepsize = s }
}

// WithTolerance sets the convergence threshold on successive energy
// differences in hartree (default 1e-6).
func WithTolerance(tol float64) Option {
	return func(c *minimizeConfig) { c.tolerance = tol }
}

// WithMaxIterations caps the number of optimizer steps (default 100).
func WithMaxIterations(n int) Option {
	return func(c *minimizeConfig) { c.maxIter = n }
}

// WithInitialParameters starts the optimization from the given vector
// instead of zeros.
func WithInitialParameters(params []float64) Option {
	return func(c *minimizeConfig) { c.initial = append([]float64(nil), params...) }
}

// WithRandomStart draws the initial parameters from a normal
// distribution with standard deviation pi, seeded for reproducibility.
func WithRandomStart(seed int64) Option {
	return func(c *minimizeConfig) { c.randomSeed = &seed }
}

/*
Minimize runs the energy-minimization loop: apply one gradient-descent
step, recompute the energy, and stop once the absolute change between
successive energies falls below the tolerance or the iteration cap is
reached. The returned Result reports whether the tolerance was met and
the full energy history.
*/
func Minimize(ctx context.Context, cost CostFunc, grad GradFunc, numParams int, opts ...Option) (*Result, error) {
	cfg := minimizeConfig{
		stepsize:  0.4,
		tolerance: 1e-6,
		maxIter:   100,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	params := make([]float64, numParams)
	switch {
	case cfg.initial != nil:
		if len(cfg.initial) != numParams {
			return nil, fmt.Errorf("initial parameters have length %d, want %d", len(cfg.initial), numParams)
		}
		copy(params, cfg.initial)
	case cfg.randomSeed != nil:
		rng := rand.New(rand.NewSource(*cfg.randomSeed))
		for i := range params {
			params[i] = rng.NormFloat64() * math.Pi
		}
	}

	opt := &GradientDescent{Stepsize: cfg.stepsize}
	res := &Result{Params: params}

	prev, err := cost(params)
	if err != nil {
		return nil, err
	}
	res.Energy = prev

	for n := 1; n <= cfg.maxIter; n++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		// The energy at the current point is carried over from the
		// previous iteration, so each step costs one gradient and one
		// cost evaluation.
		params, err = opt.Step(grad, params)
		if err != nil {
			return nil, err
		}
		energy, err := cost(params)
		if err != nil {
			return nil, err
		}

		res.Params = params
		res.Energy = energy
		res.Iterations = n
		res.History = append(res.History, energy)

		if (n-1)%4 == 0 {
			errnie.Info("step %d, E = %.8f Ha", n, energy)
		}

		if math.Abs(energy-prev) <= cfg.tolerance {
			res.Converged = true
			return res, nil
		}
		prev = energy
	}
	return res, nil
}

/*
VQE couples a qubit Hamiltonian to a variational circuit and minimizes
the energy expectation value with parameter-shift gradients. The
excitation gates in the circuit are generated by operators with
eigenvalues {0, +-1/2}, so the exact two-term shift rule applies:

	dE/dt = [E(t + pi/2) - E(t - pi/2)] / 2.
*/
type VQE struct {
	hamiltonian *Hamiltonian
	ansatz      *Ansatz
}

// NewVQE pairs an observable with a circuit acting on the same register.
func NewVQE(h *Hamiltonian, a *Ansatz) (*VQE, error) {
	if h.Qubits != a.qubits {
		return nil, fmt.Errorf("Hamiltonian acts on %d qubits, circuit on %d", h.Qubits, a.qubits)
	}
	return &VQE{hamiltonian: h, ansatz: a}, nil
}

// Energy is the cost function: the Hamiltonian expectation at params.
func (v *VQE) Energy(params []float64) (float64, error) {
	return v.ansatz.Expval(v.hamiltonian, params)
}

// Gradient evaluates the parameter-shift gradient of the energy.
func (v *VQE) Gradient(params []float64) ([]float64, error) {
	grad := make([]float64, len(params))
	shifted := make([]float64, len(params))
	copy(shifted, params)
	for i := range params {
		shifted[i] = params[i] + math.Pi/2
		plus, err := v.Energy(shifted)
		if err != nil {
			return nil, err
		}
		shifted[i] = params[i] - math.Pi/2
		minus, err := v.Energy(shifted)
		if err != nil {
			return nil, err
		}
		shifted[i] = params[i]
		grad[i] = (plus - minus) / 2
	}
	return grad, nil
}

// Run executes the minimization loop on this problem.
func (v *VQE) Run(ctx context.Context, opts ...Option) (*Result, error) {
	return Minimize(ctx, v.Energy, v.Gradient, v.ansatz.NumParams(), opts...)
}
