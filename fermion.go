package qchem

/*
Jordan-Wigner mapping of fermionic ladder operators onto Pauli words.
Spin orbital p maps to qubit p; occupation is encoded in the |1> state.
The antisymmetry of the fermionic algebra is carried by the Z string on
the qubits below p:

	a_p^dag = Z_0 ... Z_{p-1} (X_p - iY_p)/2
	a_p     = Z_0 ... Z_{p-1} (X_p + iY_p)/2
*/

// fermiOp is a single creation or annihilation operator acting on a spin
// orbital.
type fermiOp struct {
	index  int
	create bool
}

// ladder returns the two-term Pauli sum of one ladder operator on a
// register of the given width.
func ladder(op fermiOp, qubits int) pauliSum {
	xw := make([]byte, qubits)
	yw := make([]byte, qubits)
	for q := 0; q < qubits; q++ {
		switch {
		case q < op.index:
			xw[q], yw[q] = 'Z', 'Z'
		case q == op.index:
			xw[q], yw[q] = 'X', 'Y'
		default:
			xw[q], yw[q] = 'I', 'I'
		}
	}
	ySign := complex(0, 0.5) // annihilation: +i/2
	if op.create {
		ySign = complex(0, -0.5)
	}
	return pauliSum{
		string(xw): 0.5,
		string(yw): ySign,
	}
}

// jordanWigner maps a product of ladder operators to its Pauli sum.
func jordanWigner(ops []fermiOp, qubits int) pauliSum {
	sum := pauliSum{identityWord(qubits): 1}
	for _, op := range ops {
		sum = mulSums(sum, ladder(op, qubits))
	}
	return sum
}

// addFermiTerm accumulates coeff * (product of ladder ops) into the sum.
func addFermiTerm(sum pauliSum, coeff float64, qubits int, ops ...fermiOp) {
	if coeff == 0 {
		return
	}
	sum.addScaled(complex(coeff, 0), jordanWigner(ops, qubits))
}
