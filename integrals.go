package qchem

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

/*
integrals holds the atomic-orbital matrix elements a mean-field
calculation consumes: the overlap matrix, the core Hamiltonian (kinetic
energy plus nuclear attraction) and the two-electron repulsion tensor in
chemist notation, eri(a,b,c,d) = (ab|cd).
*/
type integrals struct {
	n     int
	S     *mat.SymDense
	Hcore *mat.SymDense
	eri   []float64 // n^4 entries, chemist notation
}

func (ig *integrals) eriAt(a, b, c, d int) float64 {
	n := ig.n
	return ig.eri[((a*n+b)*n+c)*n+d]
}

func (ig *integrals) setERI(a, b, c, d int, v float64) {
	n := ig.n
	ig.eri[((a*n+b)*n+c)*n+d] = v
}

// boys0 is the zeroth-order Boys function, F0(x) = erf(sqrt x) * sqrt(pi/x) / 2.
func boys0(x float64) float64 {
	if x < 1e-12 {
		return 1 - x/3
	}
	return 0.5 * math.Sqrt(math.Pi/x) * math.Erf(math.Sqrt(x))
}

// sNorm is the normalization constant of an s-type primitive Gaussian.
func sNorm(alpha float64) float64 {
	return math.Pow(2*alpha/math.Pi, 0.75)
}

func dist2(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

// gaussianProductCenter returns the center of the Gaussian product rule,
// P = (alpha*A + beta*B) / (alpha + beta).
func gaussianProductCenter(alpha float64, a [3]float64, beta float64, b [3]float64) [3]float64 {
	p := alpha + beta
	return [3]float64{
		(alpha*a[0] + beta*b[0]) / p,
		(alpha*a[1] + beta*b[1]) / p,
		(alpha*a[2] + beta*b[2]) / p,
	}
}

// overlap computes <a|b> for two contracted s functions.
func overlap(a, b basisFunction) float64 {
	ab2 := dist2(a.center, b.center)
	sum := 0.0
	for _, pa := range a.prims {
		for _, pb := range b.prims {
			p := pa.alpha + pb.alpha
			mu := pa.alpha * pb.alpha / p
			n := sNorm(pa.alpha) * sNorm(pb.alpha) * pa.coeff * pb.coeff
			sum += n * math.Pow(math.Pi/p, 1.5) * math.Exp(-mu*ab2)
		}
	}
	return sum
}

// kinetic computes <a|-laplacian/2|b>.
func kinetic(a, b basisFunction) float64 {
	ab2 := dist2(a.center, b.center)
	sum := 0.0
	for _, pa := range a.prims {
		for _, pb := range b.prims {
			p := pa.alpha + pb.alpha
			mu := pa.alpha * pb.alpha / p
			n := sNorm(pa.alpha) * sNorm(pb.alpha) * pa.coeff * pb.coeff
			sum += n * mu * (3 - 2*mu*ab2) * math.Pow(math.Pi/p, 1.5) * math.Exp(-mu*ab2)
		}
	}
	return sum
}

// nuclear computes the attraction of the charge distribution a*b to every
// nucleus of the molecule.
func nuclear(a, b basisFunction, m *Molecule) float64 {
	ab2 := dist2(a.center, b.center)
	sum := 0.0
	for _, pa := range a.prims {
		for _, pb := range b.prims {
			p := pa.alpha + pb.alpha
			mu := pa.alpha * pb.alpha / p
			n := sNorm(pa.alpha) * sNorm(pb.alpha) * pa.coeff * pb.coeff
			pc := gaussianProductCenter(pa.alpha, a.center, pb.alpha, b.center)
			pre := n * 2 * math.Pi / p * math.Exp(-mu*ab2)
			for i := 0; i < m.NAtoms(); i++ {
				z := float64(atomicNumbers[m.Symbols[i]])
				sum -= pre * z * boys0(p*dist2(pc, m.Position(i)))
			}
		}
	}
	return sum
}

// repulsion computes the chemist-notation two-electron integral (ab|cd).
func repulsion(a, b, c, d basisFunction) float64 {
	ab2 := dist2(a.center, b.center)
	cd2 := dist2(c.center, d.center)
	sum := 0.0
	for _, pa := range a.prims {
		for _, pb := range b.prims {
			p := pa.alpha + pb.alpha
			kab := math.Exp(-pa.alpha * pb.alpha / p * ab2)
			pp := gaussianProductCenter(pa.alpha, a.center, pb.alpha, b.center)
			nab := sNorm(pa.alpha) * sNorm(pb.alpha) * pa.coeff * pb.coeff
			for _, pc := range c.prims {
				for _, pd := range d.prims {
					q := pc.alpha + pd.alpha
					kcd := math.Exp(-pc.alpha * pd.alpha / q * cd2)
					qq := gaussianProductCenter(pc.alpha, c.center, pd.alpha, d.center)
					n := nab * sNorm(pc.alpha) * sNorm(pd.alpha) * pc.coeff * pd.coeff
					pre := 2 * math.Pow(math.Pi, 2.5) / (p * q * math.Sqrt(p+q))
					sum += n * pre * kab * kcd * boys0(p*q/(p+q)*dist2(pp, qq))
				}
			}
		}
	}
	return sum
}

// computeIntegrals evaluates all atomic-orbital integrals for the
// molecule's basis.
func computeIntegrals(m *Molecule) (*integrals, error) {
	funcs, err := basisFor(m)
	if err != nil {
		return nil, err
	}
	n := len(funcs)
	ig := &integrals{
		n:     n,
		S:     mat.NewSymDense(n, nil),
		Hcore: mat.NewSymDense(n, nil),
		eri:   make([]float64, n*n*n*n),
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			ig.S.SetSym(i, j, overlap(funcs[i], funcs[j]))
			ig.Hcore.SetSym(i, j, kinetic(funcs[i], funcs[j])+nuclear(funcs[i], funcs[j], m))
		}
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				for d := 0; d < n; d++ {
					ig.setERI(a, b, c, d, repulsion(funcs[a], funcs[b], funcs[c], funcs[d]))
				}
			}
		}
	}
	return ig, nil
}
