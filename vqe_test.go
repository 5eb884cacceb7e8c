package qchem

import (
	"context"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMinimize(t *testing.T) {
	Convey("Given a strictly decreasing quadratic cost", t, func() {
		cost := func(p []float64) (float64, error) {
			s := 0.0
			for _, x := range p {
				s += x * x
			}
			return s, nil
		}
		grad := func(p []float64) ([]float64, error) {
			g := make([]float64, len(p))
			for i, x := range p {
				g[i] = 2 * x
			}
			return g, nil
		}

		Convey("The loop terminates once successive energies settle", func() {
			res, err := Minimize(context.Background(), cost, grad, 2,
				WithInitialParameters([]float64{1, -2}),
				WithStepsize(0.1),
				WithTolerance(1e-6),
				WithMaxIterations(100),
			)

			So(err, ShouldBeNil)
			So(res.Converged, ShouldBeTrue)
			So(res.Iterations, ShouldBeLessThanOrEqualTo, 100)
			So(res.Energy, ShouldAlmostEqual, 0, 1e-4)

			Convey("And the energy history decreases monotonically", func() {
				for i := 1; i < len(res.History); i++ {
					So(res.History[i], ShouldBeLessThanOrEqualTo, res.History[i-1])
				}
			})
		})

		Convey("The loop never exceeds the iteration cap", func() {
			res, err := Minimize(context.Background(), cost, grad, 1,
				WithInitialParameters([]float64{1}),
				WithStepsize(0.1),
				WithTolerance(0), // unreachable
				WithMaxIterations(20),
			)

			So(err, ShouldBeNil)
			So(res.Converged, ShouldBeFalse)
			So(res.Iterations, ShouldEqual, 20)
		})

		Convey("Each iteration spends one cost and one gradient evaluation", func() {
			costCalls, gradCalls := 0, 0
			countedCost := func(p []float64) (float64, error) {
				costCalls++
				return cost(p)
			}
			countedGrad := func(p []float64) ([]float64, error) {
				gradCalls++
				return grad(p)
			}

			_, err := Minimize(context.Background(), countedCost, countedGrad, 1,
				WithInitialParameters([]float64{1}),
				WithStepsize(0.1),
				WithTolerance(0), // unreachable
				WithMaxIterations(10),
			)

			So(err, ShouldBeNil)
			// one initial evaluation, then one per iteration
			So(costCalls, ShouldEqual, 11)
			So(gradCalls, ShouldEqual, 10)
		})

		Convey("A canceled context stops the loop", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := Minimize(ctx, cost, grad, 1, WithInitialParameters([]float64{1}))
			So(err, ShouldEqual, context.Canceled)
		})

		Convey("A mismatched initial vector errors", func() {
			_, err := Minimize(context.Background(), cost, grad, 2,
				WithInitialParameters([]float64{1}))
			So(err, ShouldNotBeNil)
		})

		Convey("A seeded random start is reproducible", func() {
			r1, err := Minimize(context.Background(), cost, grad, 3,
				WithRandomStart(7), WithMaxIterations(1), WithTolerance(0))
			So(err, ShouldBeNil)
			r2, err := Minimize(context.Background(), cost, grad, 3,
				WithRandomStart(7), WithMaxIterations(1), WithTolerance(0))
			So(err, ShouldBeNil)

			So(r1.Energy, ShouldAlmostEqual, r2.Energy, 1e-15)
		})
	})
}

func TestGradientDescent(t *testing.T) {
	Convey("Given one optimizer step on f(x) = x^2", t, func() {
		opt := &GradientDescent{Stepsize: 0.25}
		cost := func(p []float64) (float64, error) { return p[0] * p[0], nil }
		grad := func(p []float64) ([]float64, error) { return []float64{2 * p[0]}, nil }

		next, prev, err := opt.StepAndCost(cost, grad, []float64{2})

		So(err, ShouldBeNil)
		So(prev, ShouldAlmostEqual, 4, 1e-12)
		So(next[0], ShouldAlmostEqual, 2-0.25*4, 1e-12)

		Convey("Step alone applies the same update", func() {
			only, err := opt.Step(grad, []float64{2})
			So(err, ShouldBeNil)
			So(only[0], ShouldAlmostEqual, next[0], 1e-12)
		})
	})
}

func TestVQEGroundState(t *testing.T) {
	Convey("Given the H2 Hamiltonian at the reference geometry", t, func() {
		m, err := NewMolecule([]string{"H", "H"}, []float64{0, 0, -0.6614, 0, 0, 0.6614})
		So(err, ShouldBeNil)

		Convey("VQE in the spin-preserving sector finds the ground state", func() {
			res, err := SolveSector(context.Background(), m, 0,
				WithTolerance(1e-8), WithMaxIterations(200))

			So(err, ShouldBeNil)
			So(res.Converged, ShouldBeTrue)
			So(res.Energy, ShouldAlmostEqual, -1.1362, 2e-3)

			Convey("And improves on the mean-field energy", func() {
				ig, err := computeIntegrals(m)
				So(err, ShouldBeNil)
				mf, err := solveRHF(m, ig)
				So(err, ShouldBeNil)
				So(res.Energy, ShouldBeLessThan, mf.Energy)
			})
		})

		Convey("The parameter-shift gradient matches finite differences", func() {
			h, qubits, err := MolecularHamiltonian(m)
			So(err, ShouldBeNil)
			singles, doubles, err := Excitations(2, qubits, 0)
			So(err, ShouldBeNil)
			ref, err := HFState(2, qubits)
			So(err, ShouldBeNil)
			ansatz, err := NewAnsatz(qubits, ref, singles, doubles)
			So(err, ShouldBeNil)
			vqe, err := NewVQE(h, ansatz)
			So(err, ShouldBeNil)

			params := []float64{0.3, -0.2, 0.1}
			grad, err := vqe.Gradient(params)
			So(err, ShouldBeNil)

			const eps = 1e-6
			for i := range params {
				shifted := append([]float64(nil), params...)
				shifted[i] = params[i] + eps
				plus, err := vqe.Energy(shifted)
				So(err, ShouldBeNil)
				shifted[i] = params[i] - eps
				minus, err := vqe.Energy(shifted)
				So(err, ShouldBeNil)

				So(grad[i], ShouldAlmostEqual, (plus-minus)/(2*eps), 1e-5)
			}
		})
	})
}

func TestVQESpinSectors(t *testing.T) {
	Convey("Given the H2 Hamiltonian and the spin-raising sector", t, func() {
		m, err := NewMolecule([]string{"H", "H"}, []float64{0, 0, -0.6614, 0, 0, 0.6614})
		So(err, ShouldBeNil)

		h, qubits, err := MolecularHamiltonian(m)
		So(err, ShouldBeNil)
		singles, doubles, err := Excitations(2, qubits, 1)
		So(err, ShouldBeNil)
		So(doubles, ShouldBeEmpty)
		ref, err := HFState(2, qubits)
		So(err, ShouldBeNil)
		ansatz, err := NewAnsatz(qubits, ref, singles, doubles)
		So(err, ShouldBeNil)
		vqe, err := NewVQE(h, ansatz)
		So(err, ShouldBeNil)

		Convey("The fully flipped excitation prepares the triplet", func() {
			res, err := vqe.Run(context.Background(),
				WithInitialParameters([]float64{math.Pi}))

			So(err, ShouldBeNil)
			So(res.Converged, ShouldBeTrue)

			st, err := ansatz.Prepare(res.Params)
			So(err, ShouldBeNil)
			s2, err := Spin2(2, qubits)
			So(err, ShouldBeNil)
			v, err := st.Expectation(s2)
			So(err, ShouldBeNil)

			So(TotalSpin(v), ShouldAlmostEqual, 1, 1e-6)

			Convey("And its energy lies above the singlet ground state", func() {
				ground, err := SolveSector(context.Background(), m, 0)
				So(err, ShouldBeNil)
				So(res.Energy, ShouldBeGreaterThan, ground.Energy)
			})
		})
	})
}

func TestNewVQE(t *testing.T) {
	Convey("Given a register mismatch", t, func() {
		h := &Hamiltonian{Qubits: 2, Terms: []Term{{Coeff: 1, Word: "ZI"}}}
		ansatz, err := NewAnsatz(4, []int{1, 1, 0, 0}, nil, nil)
		So(err, ShouldBeNil)

		_, err = NewVQE(h, ansatz)
		So(err, ShouldNotBeNil)
	})
}
