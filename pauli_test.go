package qchem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPauliAlgebra(t *testing.T) {
	Convey("Given single-qubit Pauli operators", t, func() {
		Convey("Identity is absorbed", func() {
			op, ph := mulPauli('I', 'X')
			So(op, ShouldEqual, byte('X'))
			So(ph, ShouldEqual, complex128(1))
		})

		Convey("Equal operators square to identity", func() {
			for _, p := range []byte{'X', 'Y', 'Z'} {
				op, ph := mulPauli(p, p)
				So(op, ShouldEqual, byte('I'))
				So(ph, ShouldEqual, complex128(1))
			}
		})

		Convey("The cyclic products carry the right phases", func() {
			op, ph := mulPauli('X', 'Y')
			So(op, ShouldEqual, byte('Z'))
			So(ph, ShouldEqual, complex128(1i))

			op, ph = mulPauli('Y', 'X')
			So(op, ShouldEqual, byte('Z'))
			So(ph, ShouldEqual, complex128(-1i))

			op, ph = mulPauli('Z', 'X')
			So(op, ShouldEqual, byte('Y'))
			So(ph, ShouldEqual, complex128(1i))

			op, ph = mulPauli('X', 'Z')
			So(op, ShouldEqual, byte('Y'))
			So(ph, ShouldEqual, complex128(-1i))
		})
	})

	Convey("Given two Pauli words", t, func() {
		Convey("Their product multiplies qubit by qubit", func() {
			w, ph := mulWords("XYI", "YXZ")
			So(w, ShouldEqual, "ZZZ")
			// (i)(-i) = 1
			So(ph, ShouldEqual, complex128(1))
		})
	})

	Convey("Given a Pauli sum with cancelling terms", t, func() {
		sum := pauliSum{"XI": 0.5, "YI": complex(0, 0.5)}
		sum.addScaled(1, pauliSum{"XI": -0.5, "YI": complex(0, -0.5)})

		Convey("The collapsed Hamiltonian is empty", func() {
			h := newHamiltonian(2, sum)
			So(h.Terms, ShouldBeEmpty)
		})
	})
}

func TestTermLabel(t *testing.T) {
	Convey("Given Hamiltonian terms", t, func() {
		So(Term{Word: "IIII"}.Label(), ShouldEqual, "I")
		So(Term{Word: "XXYY"}.Label(), ShouldEqual, "X0 X1 Y2 Y3")
		So(Term{Word: "IZIZ"}.Label(), ShouldEqual, "Z1 Z3")
	})
}

func TestJordanWigner(t *testing.T) {
	Convey("Given the number operator on one spin orbital", t, func() {
		sum := jordanWigner([]fermiOp{{0, true}, {0, false}}, 1)

		Convey("It maps to (I - Z)/2", func() {
			So(real(sum["I"]), ShouldAlmostEqual, 0.5, 1e-12)
			So(real(sum["Z"]), ShouldAlmostEqual, -0.5, 1e-12)
			So(imag(sum["I"]), ShouldAlmostEqual, 0, 1e-12)
			So(imag(sum["Z"]), ShouldAlmostEqual, 0, 1e-12)
		})
	})

	Convey("Given a repeated creation operator", t, func() {
		sum := jordanWigner([]fermiOp{{1, true}, {1, true}}, 3)

		Convey("Pauli exclusion makes the product vanish", func() {
			h := newHamiltonian(3, sum)
			So(h.Terms, ShouldBeEmpty)
		})
	})

	Convey("Given a hopping term across qubits", t, func() {
		// a_0^dag a_2 + a_2^dag a_0 on three qubits must carry a Z
		// string on qubit 1.
		sum := jordanWigner([]fermiOp{{0, true}, {2, false}}, 3)
		sum.addScaled(1, jordanWigner([]fermiOp{{2, true}, {0, false}}, 3))

		Convey("The surviving words are XZX and YZY", func() {
			h := newHamiltonian(3, sum)
			So(h.Terms, ShouldHaveLength, 2)
			So(h.Terms[0].Word, ShouldEqual, "XZX")
			So(h.Terms[0].Coeff, ShouldAlmostEqual, 0.5, 1e-12)
			So(h.Terms[1].Word, ShouldEqual, "YZY")
			So(h.Terms[1].Coeff, ShouldAlmostEqual, 0.5, 1e-12)
		})
	})
}
