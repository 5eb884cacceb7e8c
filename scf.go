package qchem

import (
	"errors"
	"fmt"
	"math"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/mat"
)

// ErrSCFNotConverged is returned when the self-consistent field loop
// exhausts its iteration budget before the energy settles.
var ErrSCFNotConverged = errors.New("SCF did not converge")

const (
	scfMaxIterations = 200
	scfTolerance     = 1e-10 // hartree, on successive electronic energies
)

/*
meanField is the converged restricted Hartree-Fock solution: the total
energy, the molecular-orbital coefficients over the atomic basis and the
orbital energies. It is the classical input the qubit Hamiltonian is
assembled from.
*/
type meanField struct {
	Energy          float64 // total energy, nuclear repulsion included
	Coefficients    *mat.Dense
	OrbitalEnergies []float64
	Iterations      int
}

/*
solveRHF runs a closed-shell SCF iteration: symmetric orthogonalization
of the overlap matrix, repeated Fock build and diagonalization, density
update from the occupied orbitals, until the electronic energy is stable
to scfTolerance.
*/
func solveRHF(m *Molecule, ig *integrals) (*meanField, error) {
	if m.NElectrons()%2 != 0 || m.Multiplicity != 1 {
		return nil, fmt.Errorf("restricted Hartree-Fock needs a closed shell: %d electrons, multiplicity %d",
			m.NElectrons(), m.Multiplicity)
	}
	n := ig.n
	occ := m.NElectrons() / 2
	if occ > n {
		return nil, fmt.Errorf("%d electron pairs do not fit in %d basis functions", occ, n)
	}

	x, err := invSqrt(ig.S)
	if err != nil {
		return nil, fmt.Errorf("orthogonalize overlap: %w", err)
	}

	enuc := m.NuclearRepulsion()
	density := mat.NewSymDense(n, nil) // zero density start: first Fock is Hcore
	coeffs := mat.NewDense(n, n, nil)
	var energies []float64

	prev := math.Inf(1)
	for iter := 1; iter <= scfMaxIterations; iter++ {
		fock := fockMatrix(ig, density)

		// F' = X^T F X, diagonalized in the orthogonal basis.
		var fx, fp mat.Dense
		fx.Mul(fock, x)
		fp.Mul(x.T(), &fx)

		var eig mat.EigenSym
		if !eig.Factorize(denseToSym(&fp), true) {
			return nil, errors.New("Fock matrix eigendecomposition failed")
		}
		energies = eig.Values(nil)
		var cp mat.Dense
		eig.VectorsTo(&cp)
		coeffs.Mul(x, &cp)

		// D_uv = 2 sum_occ C_ui C_vi
		for u := 0; u < n; u++ {
			for v := u; v < n; v++ {
				d := 0.0
				for i := 0; i < occ; i++ {
					d += 2 * coeffs.At(u, i) * coeffs.At(v, i)
				}
				density.SetSym(u, v, d)
			}
		}

		// E_elec = 1/2 tr D (Hcore + F)
		eelec := 0.0
		for u := 0; u < n; u++ {
			for v := 0; v < n; v++ {
				eelec += 0.5 * density.At(u, v) * (ig.Hcore.At(u, v) + fock.At(u, v))
			}
		}

		if math.Abs(eelec-prev) < scfTolerance {
			errnie.Info("SCF converged after %d iterations, E = %.10f Ha", iter, eelec+enuc)
			return &meanField{
				Energy:          eelec + enuc,
				Coefficients:    coeffs,
				OrbitalEnergies: energies,
				Iterations:      iter,
			}, nil
		}
		prev = eelec
	}
	return nil, fmt.Errorf("%w after %d iterations", ErrSCFNotConverged, scfMaxIterations)
}

// fockMatrix builds F = Hcore + G(D) with
// G_uv = sum_ls D_ls [ (uv|sl) - (ul|sv)/2 ].
func fockMatrix(ig *integrals, density *mat.SymDense) *mat.SymDense {
	n := ig.n
	fock := mat.NewSymDense(n, nil)
	for u := 0; u < n; u++ {
		for v := u; v < n; v++ {
			g := 0.0
			for l := 0; l < n; l++ {
				for s := 0; s < n; s++ {
					g += density.At(l, s) * (ig.eriAt(u, v, s, l) - 0.5*ig.eriAt(u, l, s, v))
				}
			}
			fock.SetSym(u, v, ig.Hcore.At(u, v)+g)
		}
	}
	return fock
}

// invSqrt computes S^(-1/2) by eigendecomposition.
func invSqrt(s *mat.SymDense) (*mat.Dense, error) {
	n := s.SymmetricDim()
	var eig mat.EigenSym
	if !eig.Factorize(s, true) {
		return nil, errors.New("eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		if vals[i] < 1e-10 {
			return nil, fmt.Errorf("overlap matrix is near singular (eigenvalue %g)", vals[i])
		}
		inv := 1 / math.Sqrt(vals[i])
		for u := 0; u < n; u++ {
			for v := 0; v < n; v++ {
				out.Set(u, v, out.At(u, v)+vecs.At(u, i)*inv*vecs.At(v, i))
			}
		}
	}
	return out, nil
}

func denseToSym(d *mat.Dense) *mat.SymDense {
	n, _ := d.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// symmetrize against round-off
			s.SetSym(i, j, 0.5*(d.At(i, j)+d.At(j, i)))
		}
	}
	return s
}

/*
moIntegrals transforms the atomic-orbital integrals into the molecular
orbital basis: h_pq = C^T Hcore C and the four-index transform of the
repulsion tensor. Sizes here are minimal-basis sizes, so the naive
transform is fine.
*/
func moIntegrals(ig *integrals, coeffs *mat.Dense) (*mat.Dense, []float64) {
	n := ig.n
	var hc mat.Dense
	hc.Mul(ig.Hcore, coeffs)
	h := mat.NewDense(n, n, nil)
	h.Mul(coeffs.T(), &hc)

	eri := make([]float64, n*n*n*n)
	idx := func(a, b, c, d int) int { return ((a*n+b)*n+c)*n + d }

	// Staged four-index transform, one index at a time.
	half := make([]float64, n*n*n*n)
	for p := 0; p < n; p++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				for d := 0; d < n; d++ {
					sum := 0.0
					for a := 0; a < n; a++ {
						sum += coeffs.At(a, p) * ig.eriAt(a, b, c, d)
					}
					half[idx(p, b, c, d)] = sum
				}
			}
		}
	}
	next := make([]float64, n*n*n*n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for c := 0; c < n; c++ {
				for d := 0; d < n; d++ {
					sum := 0.0
					for b := 0; b < n; b++ {
						sum += coeffs.At(b, q) * half[idx(p, b, c, d)]
					}
					next[idx(p, q, c, d)] = sum
				}
			}
		}
	}
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for d := 0; d < n; d++ {
					sum := 0.0
					for c := 0; c < n; c++ {
						sum += coeffs.At(c, r) * next[idx(p, q, c, d)]
					}
					half[idx(p, q, r, d)] = sum
				}
			}
		}
	}
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					sum := 0.0
					for d := 0; d < n; d++ {
						sum += coeffs.At(d, s) * half[idx(p, q, r, d)]
					}
					eri[idx(p, q, r, s)] = sum
				}
			}
		}
	}
	return h, eri
}
