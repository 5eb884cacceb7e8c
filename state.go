package qchem

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

/*
State is a dense statevector over an n-qubit register, one complex128
amplitude per computational basis state. Qubit 0 is the most significant
bit of a basis index, so the four-qubit state written |1100> has qubits 0
and 1 set, matching the occupation-number notation the Hamiltonians use.
*/
type State struct {
	qubits int
	amps   []complex128
}

// NewState prepares |00...0> on the given number of qubits.
func NewState(qubits int) *State {
	s := &State{
		qubits: qubits,
		amps:   make([]complex128, 1<<qubits),
	}
	s.amps[0] = 1
	return s
}

// Qubits returns the register width.
func (s *State) Qubits() int { return s.qubits }

// Amplitude returns the amplitude of one basis state given as an
// occupation string such as "1100".
func (s *State) Amplitude(basis string) (complex128, error) {
	if len(basis) != s.qubits {
		return 0, fmt.Errorf("basis label %q does not match %d qubits", basis, s.qubits)
	}
	idx := 0
	for _, c := range basis {
		idx <<= 1
		switch c {
		case '1':
			idx |= 1
		case '0':
		default:
			return 0, fmt.Errorf("basis label %q is not binary", basis)
		}
	}
	return s.amps[idx], nil
}

// mask returns the bit selecting qubit q inside a basis index.
func (s *State) mask(q int) int {
	return 1 << (s.qubits - 1 - q)
}

// PauliX flips qubit q.
func (s *State) PauliX(q int) {
	m := s.mask(q)
	for i := range s.amps {
		if i&m == 0 {
			s.amps[i], s.amps[i|m] = s.amps[i|m], s.amps[i]
		}
	}
}

/*
SingleExcitation applies the Givens rotation G(theta) on qubits (r, p):

	G|01> = cos(theta/2)|01> + sin(theta/2)|10>
	G|10> = cos(theta/2)|10> - sin(theta/2)|01>

with |rp> ordering; all other basis states are untouched. This is the
qubit image of the fermionic single excitation between the two spin
orbitals.
*/
func (s *State) SingleExcitation(theta float64, r, p int) {
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	mr, mp := s.mask(r), s.mask(p)
	for i := range s.amps {
		// visit each subspace pair once, from its |01> member
		if i&mr == 0 && i&mp != 0 {
			j := i ^ mr ^ mp // the |10> partner
			a01, a10 := s.amps[i], s.amps[j]
			s.amps[i] = c*a01 - sn*a10
			s.amps[j] = sn*a01 + c*a10
		}
	}
}

/*
DoubleExcitation applies the two-pair Givens rotation on qubits
(s1, r, p, q): the |0011> and |1100> states of the four-qubit subspace
rotate into each other, everything else is untouched.
*/
func (st *State) DoubleExcitation(theta float64, s1, r, p, q int) {
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	mlow := st.mask(s1) | st.mask(r)
	mhigh := st.mask(p) | st.mask(q)
	for i := range st.amps {
		if i&mlow == 0 && i&mhigh == mhigh {
			j := i ^ mlow ^ mhigh
			a0011, a1100 := st.amps[i], st.amps[j]
			st.amps[i] = c*a0011 - sn*a1100
			st.amps[j] = sn*a0011 + c*a1100
		}
	}
}

// Norm returns the 2-norm of the statevector; 1 for any physical state.
func (s *State) Norm() float64 {
	sum := 0.0
	for _, a := range s.amps {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

/*
ExpectationWord computes <psi|W|psi> for a single Pauli word. A word maps
each basis state to exactly one basis state with a phase, so the
expectation is a single pass over the amplitudes.
*/
func (s *State) ExpectationWord(word string) (float64, error) {
	if len(word) != s.qubits {
		return 0, fmt.Errorf("word %q does not match %d qubits", word, s.qubits)
	}
	flip := 0
	for q := 0; q < s.qubits; q++ {
		if word[q] == 'X' || word[q] == 'Y' {
			flip |= s.mask(q)
		}
	}
	var sum complex128
	for i, a := range s.amps {
		if a == 0 {
			continue
		}
		phase := complex128(1)
		for q := 0; q < s.qubits; q++ {
			bit := i & s.mask(q)
			switch word[q] {
			case 'Y':
				if bit == 0 {
					phase *= 1i // Y|0> = i|1>
				} else {
					phase *= -1i // Y|1> = -i|0>
				}
			case 'Z':
				if bit != 0 {
					phase = -phase
				}
			}
		}
		sum += cmplx.Conj(s.amps[i^flip]) * phase * a
	}
	return real(sum), nil
}

// Expectation computes <psi|H|psi> for a Pauli-sum observable.
func (s *State) Expectation(h *Hamiltonian) (float64, error) {
	if h.Qubits != s.qubits {
		return 0, fmt.Errorf("observable acts on %d qubits, state has %d", h.Qubits, s.qubits)
	}
	total := 0.0
	for _, t := range h.Terms {
		v, err := s.ExpectationWord(t.Word)
		if err != nil {
			return 0, err
		}
		total += t.Coeff * v
	}
	return total, nil
}

// String renders the state as a sum of basis kets, skipping negligible
// amplitudes.
func (s *State) String() string {
	var b strings.Builder
	first := true
	for i, a := range s.amps {
		if cmplx.Abs(a) < 1e-10 {
			continue
		}
		if !first {
			b.WriteString(" + ")
		}
		first = false
		fmt.Fprintf(&b, "(%.4f%+.4fi)|%0*b>", real(a), imag(a), s.qubits, i)
	}
	if first {
		return "0"
	}
	return b.String()
}
