package qchem

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedElement is returned by the integral layer for elements
// whose minimal basis needs p-type functions. Bookkeeping (electron,
// orbital and qubit counts, active spaces, excitations) still works for
// them; only integral evaluation is restricted to s-type Gaussians.
var ErrUnsupportedElement = errors.New("integral evaluation supports s-type basis functions only (H, He)")

// ErrUnknownBasis is returned for basis-set labels other than sto-3g.
var ErrUnknownBasis = errors.New("unknown basis set")

// primitive is a single normalized s-type Gaussian in a contraction.
type primitive struct {
	alpha float64 // exponent
	coeff float64 // contraction coefficient
}

// basisFunction is a contracted s-type Gaussian centered on a nucleus.
type basisFunction struct {
	center [3]float64
	prims  []primitive
}

// STO-3G 1s contractions. Exponents already carry the atomic scale
// factor; contraction coefficients refer to normalized primitives.
var sto3g = map[string][]primitive{
	"H": {
		{3.42525091, 0.15432897},
		{0.62391373, 0.53532814},
		{0.16885540, 0.44463454},
	},
	"He": {
		{6.36242139, 0.15432897},
		{1.15892300, 0.53532814},
		{0.31364979, 0.44463454},
	},
}

// basisFor expands the molecule into contracted basis functions, one 1s
// function per atom.
func basisFor(m *Molecule) ([]basisFunction, error) {
	if strings.ToLower(m.Basis) != "sto-3g" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBasis, m.Basis)
	}
	funcs := make([]basisFunction, 0, m.NAtoms())
	for i, s := range m.Symbols {
		prims, ok := sto3g[s]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedElement, s)
		}
		funcs = append(funcs, basisFunction{
			center: m.Position(i),
			prims:  prims,
		})
	}
	return funcs, nil
}
