package qchem

import (
	"fmt"
	"math"
)

// szTwice returns twice the spin projection of a spin orbital: even
// indices are spin-up (+1), odd are spin-down (-1).
func szTwice(i int) int {
	if i%2 == 0 {
		return 1
	}
	return -1
}

// HFState returns the Hartree-Fock occupation vector over the qubit
// register: the lowest `electrons` spin orbitals occupied, the rest
// empty.
func HFState(electrons, qubits int) ([]int, error) {
	if electrons <= 0 || electrons > qubits {
		return nil, fmt.Errorf("cannot occupy %d of %d spin orbitals", electrons, qubits)
	}
	state := make([]int, qubits)
	for i := 0; i < electrons; i++ {
		state[i] = 1
	}
	return state, nil
}

/*
Excitations enumerates the single and double particle-hole excitations of
the Hartree-Fock reference: occupied spin orbitals are 0..electrons-1,
virtual ones electrons..qubits-1. A single excitation [r p] promotes an
electron from r to p; a double [s r p q] promotes two, from s,r to p,q.
Only excitations whose total spin projection changes by deltaSz (in units
of one spin flip: -2, -1, 0, 1 or 2) survive the filter, so different
deltaSz values index disjoint sectors of the same reference.
*/
func Excitations(electrons, qubits int, deltaSz float64) (singles [][2]int, doubles [][4]int, err error) {
	if electrons <= 0 || electrons >= qubits {
		return nil, nil, fmt.Errorf("need 0 < electrons < qubits, got %d electrons, %d qubits", electrons, qubits)
	}
	delta2 := int(math.Round(2 * deltaSz))

	for r := 0; r < electrons; r++ {
		for p := electrons; p < qubits; p++ {
			if szTwice(p)-szTwice(r) == delta2 {
				singles = append(singles, [2]int{r, p})
			}
		}
	}
	for s := 0; s < electrons; s++ {
		for r := s + 1; r < electrons; r++ {
			for p := electrons; p < qubits; p++ {
				for q := p + 1; q < qubits; q++ {
					if szTwice(p)+szTwice(q)-szTwice(r)-szTwice(s) == delta2 {
						doubles = append(doubles, [4]int{s, r, p, q})
					}
				}
			}
		}
	}
	return singles, doubles, nil
}

/*
ExcitationWires expands excitation index pairs into the contiguous qubit
ranges a circuit acts on: a single [r p] covers r..p, a double [s r p q]
covers the two ranges s..r and p..q.
*/
func ExcitationWires(singles [][2]int, doubles [][4]int) (singleWires [][]int, doubleWires [][2][]int) {
	span := func(lo, hi int) []int {
		w := make([]int, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			w = append(w, i)
		}
		return w
	}
	for _, s := range singles {
		singleWires = append(singleWires, span(s[0], s[1]))
	}
	for _, d := range doubles {
		doubleWires = append(doubleWires, [2][]int{span(d[0], d[1]), span(d[2], d[3])})
	}
	return singleWires, doubleWires
}
