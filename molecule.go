package qchem

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// BohrPerAngstrom converts Angstrom coordinates to atomic units.
const BohrPerAngstrom = 1.8897261254535

var (
	// ErrGeometryMismatch is returned when the coordinate slice does not
	// hold exactly three entries per atomic symbol.
	ErrGeometryMismatch = errors.New("coordinate count must be 3 per atom")

	// ErrUnknownElement is returned for symbols outside the periodic table
	// range the library knows about (H through Ar).
	ErrUnknownElement = errors.New("unknown element symbol")
)

// atomicNumbers covers the first three periods, which is as far as the
// minimal-basis bookkeeping goes.
var atomicNumbers = map[string]int{
	"H": 1, "He": 2,
	"Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
}

// minimalOrbitals returns the number of spatial orbitals an element
// contributes in a minimal (STO-3G) basis: 1s for the first period,
// 1s 2s 2p for the second, and so on.
func minimalOrbitals(z int) int {
	switch {
	case z <= 2:
		return 1
	case z <= 10:
		return 5
	default:
		return 9
	}
}

/*
Molecule is the geometry a Hamiltonian is built for: an ordered list of
atomic symbols paired with a flat slice of Cartesian coordinates in bohr,
three per atom. A Molecule also carries the net charge, the spin
multiplicity and the basis-set label used by the mean-field stage. Once
constructed it is never mutated; potential-energy scans build a fresh
Molecule per geometry.
*/
type Molecule struct {
	Symbols      []string
	Coordinates  []float64
	Charge       int
	Multiplicity int
	Basis        string
}

// MoleculeOption configures optional molecule properties.
type MoleculeOption func(*Molecule)

// WithCharge sets the net charge of the molecule.
func WithCharge(charge int) MoleculeOption {
	return func(m *Molecule) {
		m.Charge = charge
	}
}

// WithMultiplicity sets the spin multiplicity 2S+1.
func WithMultiplicity(mult int) MoleculeOption {
	return func(m *Molecule) {
		m.Multiplicity = mult
	}
}

// WithBasis sets the basis-set label. Only "sto-3g" is recognized.
func WithBasis(basis string) MoleculeOption {
	return func(m *Molecule) {
		m.Basis = basis
	}
}

// NewMolecule builds a molecule from symbols and coordinates in bohr.
func NewMolecule(symbols []string, coordinates []float64, opts ...MoleculeOption) (*Molecule, error) {
	if len(coordinates) != 3*len(symbols) {
		return nil, fmt.Errorf("%w: %d atoms, %d coordinates",
			ErrGeometryMismatch, len(symbols), len(coordinates))
	}
	for _, s := range symbols {
		if _, ok := atomicNumbers[s]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownElement, s)
		}
	}

	m := &Molecule{
		Symbols:      append([]string(nil), symbols...),
		Coordinates:  append([]float64(nil), coordinates...),
		Charge:       0,
		Multiplicity: 1,
		Basis:        "sto-3g",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NAtoms returns the number of atoms.
func (m *Molecule) NAtoms() int { return len(m.Symbols) }

// Position returns the coordinates of atom i in bohr.
func (m *Molecule) Position(i int) [3]float64 {
	return [3]float64{
		m.Coordinates[3*i],
		m.Coordinates[3*i+1],
		m.Coordinates[3*i+2],
	}
}

// NElectrons returns the electron count: summed atomic numbers minus the
// net charge.
func (m *Molecule) NElectrons() int {
	n := 0
	for _, s := range m.Symbols {
		n += atomicNumbers[s]
	}
	return n - m.Charge
}

// NOrbitals returns the number of spatial molecular orbitals in the
// minimal basis.
func (m *Molecule) NOrbitals() int {
	n := 0
	for _, s := range m.Symbols {
		n += minimalOrbitals(atomicNumbers[s])
	}
	return n
}

// Qubits returns the number of qubits a full-space simulation needs: one
// per spin orbital.
func (m *Molecule) Qubits() int { return 2 * m.NOrbitals() }

// NuclearRepulsion returns the Coulomb repulsion energy of the clamped
// nuclei in hartree.
func (m *Molecule) NuclearRepulsion() float64 {
	e := 0.0
	for i := 0; i < m.NAtoms(); i++ {
		zi := float64(atomicNumbers[m.Symbols[i]])
		ri := m.Position(i)
		for j := i + 1; j < m.NAtoms(); j++ {
			zj := float64(atomicNumbers[m.Symbols[j]])
			rj := m.Position(j)
			e += zi * zj / distance(ri, rj)
		}
	}
	return e
}

func distance(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

/*
ReadXYZ reads a molecular geometry from an xyz file. The format is the
usual one: an atom count, a comment line, then one "symbol x y z" line
per atom with coordinates in Angstrom. Coordinates are converted to bohr.
*/
func ReadXYZ(path string, opts ...MoleculeOption) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read xyz: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("read xyz %s: missing atom count", path)
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("read xyz %s: bad atom count: %w", path, err)
	}

	// Comment line, ignored.
	if !scanner.Scan() {
		return nil, fmt.Errorf("read xyz %s: truncated header", path)
	}

	symbols := make([]string, 0, count)
	coords := make([]float64, 0, 3*count)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("read xyz %s: short atom line %q", path, scanner.Text())
		}
		symbols = append(symbols, fields[0])
		for _, fs := range fields[1:4] {
			v, err := strconv.ParseFloat(fs, 64)
			if err != nil {
				return nil, fmt.Errorf("read xyz %s: bad coordinate %q: %w", path, fs, err)
			}
			coords = append(coords, v*BohrPerAngstrom)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read xyz %s: %w", path, err)
	}
	if len(symbols) != count {
		return nil, fmt.Errorf("read xyz %s: header says %d atoms, found %d", path, count, len(symbols))
	}
	return NewMolecule(symbols, coords, opts...)
}

// Diatomic returns a geometry generator for a two-atom molecule aligned
// with the z axis: the first atom at the origin, the second at distance r
// bohr. Scans use it to sweep a bond length.
func Diatomic(a, b string, opts ...MoleculeOption) func(r float64) (*Molecule, error) {
	return func(r float64) (*Molecule, error) {
		return NewMolecule(
			[]string{a, b},
			[]float64{0, 0, 0, 0, 0, r},
			opts...,
		)
	}
}
