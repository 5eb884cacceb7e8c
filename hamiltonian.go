package qchem

import (
	"fmt"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/mat"
)

/*
Building the molecular qubit Hamiltonian chains three stages: a
Hartree-Fock calculation on the geometry, an optional active-space
reduction of the resulting molecular-orbital integrals, and the
Jordan-Wigner mapping of the second-quantized Hamiltonian

	H = sum_pq h_pq a_p^dag a_q
	  + 1/2 sum_pqrs (pq|rs) a_p^dag a_r^dag a_s a_q  (chemist notation)

onto a weighted sum of Pauli words, with the nuclear repulsion (plus any
frozen-core energy) on the identity word.
*/

// hamiltonianConfig collects the optional knobs of MolecularHamiltonian.
type hamiltonianConfig struct {
	activeElectrons int
	activeOrbitals  int
}

// HamiltonianOption configures MolecularHamiltonian.
type HamiltonianOption func(*hamiltonianConfig)

// WithActiveSpace restricts the Hamiltonian to the given number of
// active electrons and active orbitals; the remaining low-lying orbitals
// are frozen into the core.
func WithActiveSpace(activeElectrons, activeOrbitals int) HamiltonianOption {
	return func(c *hamiltonianConfig) {
		c.activeElectrons = activeElectrons
		c.activeOrbitals = activeOrbitals
	}
}

/*
MolecularHamiltonian builds the qubit Hamiltonian of a molecule and
returns it together with the number of qubits it acts on. This is the
one-call form of the pipeline; the number of qubits equals twice the
number of (active) spatial orbitals.
*/
func MolecularHamiltonian(m *Molecule, opts ...HamiltonianOption) (*Hamiltonian, int, error) {
	cfg := hamiltonianConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	ig, err := computeIntegrals(m)
	if err != nil {
		return nil, 0, fmt.Errorf("integrals: %w", err)
	}
	mf, err := solveRHF(m, ig)
	if err != nil {
		return nil, 0, fmt.Errorf("mean field: %w", err)
	}
	h, eri := moIntegrals(ig, mf.Coefficients)

	norb := ig.n
	constant := m.NuclearRepulsion()

	if cfg.activeOrbitals > 0 {
		core, active, err := ActiveSpace(m.NElectrons(), norb, cfg.activeElectrons, cfg.activeOrbitals)
		if err != nil {
			return nil, 0, err
		}
		constant, h, eri = freezeCore(constant, h, eri, norb, core, active)
		norb = len(active)
	}

	qubits := 2 * norb
	errnie.Info("building qubit Hamiltonian: %d spatial orbitals, %d qubits", norb, qubits)
	ham := assembleHamiltonian(constant, h, eri, norb)
	return ham, qubits, nil
}

// assembleHamiltonian maps the spatial-orbital integrals onto qubit
// operators. Spatial orbital p yields spin orbitals 2p (up) and 2p+1
// (down).
func assembleHamiltonian(constant float64, h *mat.Dense, eri []float64, norb int) *Hamiltonian {
	qubits := 2 * norb
	idx := func(a, b, c, d int) int { return ((a*norb+b)*norb+c)*norb + d }

	sum := make(pauliSum)
	sum.add(identityWord(qubits), complex(constant, 0))

	for p := 0; p < norb; p++ {
		for q := 0; q < norb; q++ {
			for spin := 0; spin < 2; spin++ {
				addFermiTerm(sum, h.At(p, q), qubits,
					fermiOp{2*p + spin, true},
					fermiOp{2*q + spin, false},
				)
			}
		}
	}
	for p := 0; p < norb; p++ {
		for q := 0; q < norb; q++ {
			for r := 0; r < norb; r++ {
				for s := 0; s < norb; s++ {
					g := eri[idx(p, q, r, s)]
					if g == 0 {
						continue
					}
					for sa := 0; sa < 2; sa++ {
						for sb := 0; sb < 2; sb++ {
							addFermiTerm(sum, 0.5*g, qubits,
								fermiOp{2*p + sa, true},
								fermiOp{2*r + sb, true},
								fermiOp{2*s + sb, false},
								fermiOp{2*q + sa, false},
							)
						}
					}
				}
			}
		}
	}
	return newHamiltonian(qubits, sum)
}

/*
freezeCore folds the doubly occupied core orbitals into a constant energy
shift and an effective one-body term over the active window, then slices
the repulsion tensor down to active indices:

	E_core = E_nuc + sum_c 2h_cc + sum_cc' [2(cc|c'c') - (cc'|c'c)]
	h'_uv  = h_uv + sum_c [2(uv|cc) - (uc|cv)]
*/
func freezeCore(constant float64, h *mat.Dense, eri []float64, norb int, core, active []int) (float64, *mat.Dense, []float64) {
	idx := func(a, b, c, d int) int { return ((a*norb+b)*norb+c)*norb + d }

	for _, c := range core {
		constant += 2 * h.At(c, c)
		for _, c2 := range core {
			constant += 2*eri[idx(c, c, c2, c2)] - eri[idx(c, c2, c2, c)]
		}
	}

	na := len(active)
	ha := mat.NewDense(na, na, nil)
	for i, u := range active {
		for j, v := range active {
			val := h.At(u, v)
			for _, c := range core {
				val += 2*eri[idx(u, v, c, c)] - eri[idx(u, c, c, v)]
			}
			ha.Set(i, j, val)
		}
	}

	ea := make([]float64, na*na*na*na)
	aidx := func(a, b, c, d int) int { return ((a*na+b)*na+c)*na + d }
	for i, p := range active {
		for j, q := range active {
			for k, r := range active {
				for l, s := range active {
					ea[aidx(i, j, k, l)] = eri[idx(p, q, r, s)]
				}
			}
		}
	}
	return constant, ha, ea
}
