package qchem

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/theapemachine/errnie"
)

/*
A potential-energy surface is built by repeating the whole pipeline per
geometry: build the molecule at one bond length, assemble its qubit
Hamiltonian, minimize the energy, collect the point. Scan points are
independent of each other, so they are handed to a small worker pool;
Workers set to 1 reproduces a strictly sequential sweep.
*/

// ScanPoint is one converged energy on the surface.
type ScanPoint struct {
	Distance   float64
	Energy     float64
	Iterations int
	Converged  bool
}

// ScanSpec describes a bond-length sweep.
type ScanSpec struct {
	Start float64 // first bond length, bohr
	Stop  float64 // exclusive upper bound
	Step  float64

	// Geometry builds the molecule at one bond length, e.g.
	// Diatomic("H", "H").
	Geometry func(r float64) (*Molecule, error)

	// Optional active-space restriction, 0 means full space.
	ActiveElectrons int
	ActiveOrbitals  int

	// Spin-projection sector of the excitations, usually 0.
	DeltaSz float64

	// Workers is the pool size; values below 1 mean sequential.
	Workers int

	// Options are passed to every per-geometry minimization.
	Options []Option
}

// Scan sweeps the bond length and returns one point per geometry, in
// sweep order. The first failing geometry aborts the scan and its error
// is returned.
func Scan(ctx context.Context, spec ScanSpec) ([]ScanPoint, error) {
	if spec.Geometry == nil {
		return nil, errors.New("scan needs a geometry builder")
	}
	if spec.Step <= 0 || spec.Stop <= spec.Start {
		return nil, fmt.Errorf("bad scan range [%g, %g) step %g", spec.Start, spec.Stop, spec.Step)
	}

	// Count first, then generate by multiplication, so accumulated
	// rounding cannot add or drop the last geometry.
	n := int(math.Ceil((spec.Stop-spec.Start)/spec.Step - 1e-9))
	distances := make([]float64, n)
	for i := range distances {
		distances[i] = spec.Start + float64(i)*spec.Step
	}

	workers := spec.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(distances) {
		workers = len(distances)
	}
	errnie.Info("scanning %d geometries with %d workers", len(distances), workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	points := make([]ScanPoint, len(distances))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	go func() {
		defer close(jobs)
		for i := range distances {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					r := distances[i]
					res, err := scanPoint(ctx, r, spec)
					if err != nil {
						fail(fmt.Errorf("bond length %g: %w", r, err))
						return
					}
					// disjoint index per job, no lock needed
					points[i] = ScanPoint{
						Distance:   r,
						Energy:     res.Energy,
						Iterations: res.Iterations,
						Converged:  res.Converged,
					}
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// scanPoint runs the full pipeline for one geometry.
func scanPoint(ctx context.Context, r float64, spec ScanSpec) (*Result, error) {
	m, err := spec.Geometry(r)
	if err != nil {
		return nil, err
	}
	var hamOpts []HamiltonianOption
	if spec.ActiveOrbitals > 0 {
		hamOpts = append(hamOpts, WithActiveSpace(spec.ActiveElectrons, spec.ActiveOrbitals))
	}
	electrons := m.NElectrons()
	if spec.ActiveOrbitals > 0 {
		electrons = spec.ActiveElectrons
	}
	return solveSector(ctx, m, electrons, spec.DeltaSz, hamOpts, spec.Options)
}

/*
SolveSector assembles the molecular Hamiltonian of m and minimizes its
energy over the excitation ansatz of the given spin-projection sector.
It is the single-geometry form of Scan and the shortest path from a
geometry to a VQE energy.
*/
func SolveSector(ctx context.Context, m *Molecule, deltaSz float64, opts ...Option) (*Result, error) {
	return solveSector(ctx, m, m.NElectrons(), deltaSz, nil, opts)
}

func solveSector(ctx context.Context, m *Molecule, electrons int, deltaSz float64, hamOpts []HamiltonianOption, opts []Option) (*Result, error) {
	h, qubits, err := MolecularHamiltonian(m, hamOpts...)
	if err != nil {
		return nil, err
	}
	singles, doubles, err := Excitations(electrons, qubits, deltaSz)
	if err != nil {
		return nil, err
	}
	ref, err := HFState(electrons, qubits)
	if err != nil {
		return nil, err
	}
	ansatz, err := NewAnsatz(qubits, ref, singles, doubles)
	if err != nil {
		return nil, err
	}
	vqe, err := NewVQE(h, ansatz)
	if err != nil {
		return nil, err
	}
	return vqe.Run(ctx, opts...)
}
