package qchem

import "fmt"

/*
Ansatz is the variational circuit the VQE loop optimizes: the
Hartree-Fock reference prepared by bit flips, followed by one
parameterized excitation gate per double and per single excitation.
Parameters are laid out doubles first, then singles; the double
excitations carry most of the correlation energy, the singles refine it.
*/
type Ansatz struct {
	qubits    int
	reference []int
	singles   [][2]int
	doubles   [][4]int
}

// NewAnsatz validates the reference occupation and excitation indices
// against the register width.
func NewAnsatz(qubits int, reference []int, singles [][2]int, doubles [][4]int) (*Ansatz, error) {
	if len(reference) != qubits {
		return nil, fmt.Errorf("reference has %d entries for %d qubits", len(reference), qubits)
	}
	for _, occ := range reference {
		if occ != 0 && occ != 1 {
			return nil, fmt.Errorf("reference occupation must be 0 or 1, got %d", occ)
		}
	}
	check := func(idx int) error {
		if idx < 0 || idx >= qubits {
			return fmt.Errorf("excitation index %d outside register of %d qubits", idx, qubits)
		}
		return nil
	}
	for _, s := range singles {
		for _, i := range s {
			if err := check(i); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range doubles {
		for _, i := range d {
			if err := check(i); err != nil {
				return nil, err
			}
		}
	}
	return &Ansatz{
		qubits:    qubits,
		reference: append([]int(nil), reference...),
		singles:   singles,
		doubles:   doubles,
	}, nil
}

// NumParams returns the length of the parameter vector the circuit
// expects.
func (a *Ansatz) NumParams() int {
	return len(a.singles) + len(a.doubles)
}

// Prepare runs the circuit and returns the resulting state.
func (a *Ansatz) Prepare(params []float64) (*State, error) {
	if len(params) != a.NumParams() {
		return nil, fmt.Errorf("circuit takes %d parameters, got %d", a.NumParams(), len(params))
	}
	st := NewState(a.qubits)
	for q, occ := range a.reference {
		if occ == 1 {
			st.PauliX(q)
		}
	}
	for i, d := range a.doubles {
		st.DoubleExcitation(params[i], d[0], d[1], d[2], d[3])
	}
	for i, s := range a.singles {
		st.SingleExcitation(params[len(a.doubles)+i], s[0], s[1])
	}
	return st, nil
}

// Expval prepares the circuit at the given parameters and measures an
// observable; this is the cost function shape the optimizer consumes.
func (a *Ansatz) Expval(h *Hamiltonian, params []float64) (float64, error) {
	st, err := a.Prepare(params)
	if err != nil {
		return 0, err
	}
	return st.Expectation(h)
}
