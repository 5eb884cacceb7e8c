package qchem

import (
	"fmt"
	"math"
)

/*
Spin2 builds the total-spin observable S^2 over the qubit register,

	S^2 = (3/4) N  +  sum <alpha beta| s1.s2 |gamma delta>
	                  a_alpha^dag a_beta^dag a_gamma a_delta,

where the matrix elements of s1.s2 couple spin orbitals sharing spatial
parts (alpha with delta, beta with gamma): parallel spins contribute
sz(alpha)*sz(beta) on the diagonal, antiparallel pairs contribute the
1/2 spin-flip exchange term. The expectation value of the result on a
trial state gives S(S+1).
*/
func Spin2(electrons, qubits int) (*Hamiltonian, error) {
	if electrons <= 0 || qubits < 2 || qubits%2 != 0 {
		return nil, fmt.Errorf("spin observable needs positive electrons and an even qubit count, got %d, %d", electrons, qubits)
	}

	sz := func(i int) float64 {
		if i%2 == 0 {
			return 0.5
		}
		return -0.5
	}

	sum := make(pauliSum)
	sum.add(identityWord(qubits), complex(0.75*float64(electrons), 0))

	for alpha := 0; alpha < qubits; alpha++ {
		for beta := 0; beta < qubits; beta++ {
			for gamma := 0; gamma < qubits; gamma++ {
				for delta := 0; delta < qubits; delta++ {
					if alpha/2 != delta/2 || beta/2 != gamma/2 {
						continue
					}
					var coeff float64
					switch {
					case sz(alpha) == sz(delta) && sz(beta) == sz(gamma):
						coeff = sz(alpha) * sz(beta)
					case sz(alpha) == sz(delta)+1 && sz(beta) == sz(gamma)-1,
						sz(alpha) == sz(delta)-1 && sz(beta) == sz(gamma)+1:
						coeff = 0.5
					default:
						continue
					}
					addFermiTerm(sum, coeff, qubits,
						fermiOp{alpha, true},
						fermiOp{beta, true},
						fermiOp{gamma, false},
						fermiOp{delta, false},
					)
				}
			}
		}
	}
	return newHamiltonian(qubits, sum), nil
}

// TotalSpin recovers the total spin quantum number S from an expectation
// value of S^2: S = -1/2 + sqrt(1/4 + <S^2>).
func TotalSpin(s2 float64) float64 {
	if s2 < 0 {
		s2 = 0 // round-off guard
	}
	return -0.5 + math.Sqrt(0.25+s2)
}
