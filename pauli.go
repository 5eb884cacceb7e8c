package qchem

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"
)

/*
A Pauli word is one single-qubit operator per qubit, stored as a string
over the alphabet I, X, Y, Z with position i acting on qubit i. The
Hamiltonian below is a weighted sum of such words with real coefficients;
it is immutable once built.
*/

// Term is one weighted Pauli word of an observable.
type Term struct {
	Coeff float64
	Word  string
}

// Label renders a term's word in the compact operator form: "I" for the
// identity, otherwise the non-identity operators with their qubit
// indices, e.g. "X0 X1 Y2 Y3".
func (t Term) Label() string {
	var parts []string
	for q := 0; q < len(t.Word); q++ {
		if t.Word[q] != 'I' {
			parts = append(parts, fmt.Sprintf("%c%d", t.Word[q], q))
		}
	}
	if len(parts) == 0 {
		return "I"
	}
	return strings.Join(parts, " ")
}

// Hamiltonian is a qubit observable: a sum of Pauli words. Terms are
// sorted by word for deterministic iteration and printing.
type Hamiltonian struct {
	Qubits int
	Terms  []Term
}

func (h *Hamiltonian) String() string {
	var b strings.Builder
	for i, t := range h.Terms {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "(%+.8f) [%s]", t.Coeff, t.Label())
	}
	return b.String()
}

// identityWord returns the word acting trivially on every qubit.
func identityWord(qubits int) string {
	return strings.Repeat("I", qubits)
}

// mulPauli multiplies two single-qubit Paulis, returning the resulting
// operator and the accumulated phase (one of 1, i, -1, -i).
func mulPauli(a, b byte) (byte, complex128) {
	if a == 'I' {
		return b, 1
	}
	if b == 'I' {
		return a, 1
	}
	if a == b {
		return 'I', 1
	}
	switch [2]byte{a, b} {
	case [2]byte{'X', 'Y'}:
		return 'Z', 1i
	case [2]byte{'Y', 'X'}:
		return 'Z', -1i
	case [2]byte{'Y', 'Z'}:
		return 'X', 1i
	case [2]byte{'Z', 'Y'}:
		return 'X', -1i
	case [2]byte{'Z', 'X'}:
		return 'Y', 1i
	default: // XZ
		return 'Y', -1i
	}
}

// mulWords multiplies two Pauli words qubit by qubit, tracking the
// overall phase.
func mulWords(a, b string) (string, complex128) {
	buf := make([]byte, len(a))
	phase := complex128(1)
	for q := 0; q < len(a); q++ {
		op, ph := mulPauli(a[q], b[q])
		buf[q] = op
		phase *= ph
	}
	return string(buf), phase
}

/*
pauliSum is the mutable accumulator the Jordan-Wigner mapping works in: a
map from Pauli word to complex coefficient. Products of ladder operators
generate heavy cancellation, which the map representation handles for
free.
*/
type pauliSum map[string]complex128

func (s pauliSum) add(word string, coeff complex128) {
	s[word] += coeff
}

// addScaled folds coeff*other into s.
func (s pauliSum) addScaled(coeff complex128, other pauliSum) {
	for w, c := range other {
		s[w] += coeff * c
	}
}

// mulSums returns the product a*b as a new sum.
func mulSums(a, b pauliSum) pauliSum {
	out := make(pauliSum, len(a)*len(b))
	for wa, ca := range a {
		for wb, cb := range b {
			w, ph := mulWords(wa, wb)
			out[w] += ca * cb * ph
		}
	}
	return out
}

const coeffCutoff = 1e-12

/*
newHamiltonian collapses an accumulated Pauli sum into an immutable
observable. Physical observables are hermitian, so every surviving
coefficient must be real up to round-off; a residual imaginary part
signals a broken assembly and panics rather than returning a silently
wrong operator.
*/
func newHamiltonian(qubits int, sum pauliSum) *Hamiltonian {
	terms := make([]Term, 0, len(sum))
	for w, c := range sum {
		if cmplx.Abs(c) < coeffCutoff {
			continue
		}
		if math.Abs(imag(c)) > 1e-8 {
			panic(fmt.Sprintf("non-hermitian term %s: coefficient %v", w, c))
		}
		terms = append(terms, Term{Coeff: real(c), Word: w})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Word < terms[j].Word })
	return &Hamiltonian{Qubits: qubits, Terms: terms}
}
