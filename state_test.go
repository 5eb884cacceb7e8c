package qchem

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestState(t *testing.T) {
	Convey("Given a fresh register", t, func() {
		st := NewState(4)

		Convey("It starts in |0000>", func() {
			a, err := st.Amplitude("0000")
			So(err, ShouldBeNil)
			So(real(a), ShouldAlmostEqual, 1, 1e-12)
			So(st.Norm(), ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("PauliX flips a single qubit", func() {
			st.PauliX(0)
			st.PauliX(1)

			a, err := st.Amplitude("1100")
			So(err, ShouldBeNil)
			So(real(a), ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("A malformed basis label errors", func() {
			_, err := st.Amplitude("110")
			So(err, ShouldNotBeNil)
			_, err = st.Amplitude("11a0")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given the |1100> reference", t, func() {
		prep := func() *State {
			st := NewState(4)
			st.PauliX(0)
			st.PauliX(1)
			return st
		}

		Convey("A double excitation rotates into |0011>", func() {
			st := prep()
			theta := 0.6
			st.DoubleExcitation(theta, 0, 1, 2, 3)

			hi, err := st.Amplitude("1100")
			So(err, ShouldBeNil)
			lo, err := st.Amplitude("0011")
			So(err, ShouldBeNil)

			So(real(hi), ShouldAlmostEqual, math.Cos(theta/2), 1e-12)
			So(math.Abs(real(lo)), ShouldAlmostEqual, math.Sin(theta/2), 1e-12)
			So(st.Norm(), ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("A single excitation rotates one electron", func() {
			st := prep()
			theta := 1.1
			st.SingleExcitation(theta, 1, 2)

			hi, err := st.Amplitude("1100")
			So(err, ShouldBeNil)
			lo, err := st.Amplitude("1010")
			So(err, ShouldBeNil)

			So(math.Abs(real(hi)), ShouldAlmostEqual, math.Cos(theta/2), 1e-12)
			So(math.Abs(real(lo)), ShouldAlmostEqual, math.Sin(theta/2), 1e-12)
			So(st.Norm(), ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("A full rotation moves the whole population", func() {
			st := prep()
			st.DoubleExcitation(math.Pi, 0, 1, 2, 3)

			lo, err := st.Amplitude("0011")
			So(err, ShouldBeNil)
			So(math.Abs(real(lo)), ShouldAlmostEqual, 1, 1e-12)
		})
	})

	Convey("Given Pauli expectation values", t, func() {
		Convey("Z on |0> is +1, on |1> is -1", func() {
			st := NewState(1)
			v, err := st.ExpectationWord("Z")
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 1, 1e-12)

			st.PauliX(0)
			v, err = st.ExpectationWord("Z")
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, -1, 1e-12)
		})

		Convey("X on a computational basis state is 0", func() {
			st := NewState(1)
			v, err := st.ExpectationWord("X")
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 0, 1e-12)
		})

		Convey("A mismatched word length errors", func() {
			st := NewState(2)
			_, err := st.ExpectationWord("Z")
			So(err, ShouldNotBeNil)
		})

		Convey("An observable sums its weighted words", func() {
			st := NewState(2)
			st.PauliX(0)
			h := &Hamiltonian{Qubits: 2, Terms: []Term{
				{Coeff: 0.5, Word: "ZI"},
				{Coeff: 2.0, Word: "IZ"},
			}}

			v, err := st.Expectation(h)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, -0.5+2.0, 1e-12)
		})
	})
}
