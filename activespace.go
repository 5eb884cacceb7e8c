package qchem

import (
	"errors"
	"fmt"
)

// ErrInvalidActiveSpace is returned when an active-space request cannot
// be carved out of the molecule's orbitals.
var ErrInvalidActiveSpace = errors.New("invalid active space")

/*
ActiveSpace partitions the molecular orbitals into core and active index
lists. Core orbitals stay doubly occupied, active orbitals host the
activeElectrons that remain after the core is filled, and anything above
the active window is frozen empty. The split is deterministic: the
lowest-energy orbitals form the core, the next activeOrbitals form the
active window.

The number of qubits a reduced simulation needs is 2*len(active).
*/
func ActiveSpace(electrons, orbitals, activeElectrons, activeOrbitals int) (core, active []int, err error) {
	switch {
	case electrons <= 0:
		return nil, nil, fmt.Errorf("%w: electrons must be positive, got %d", ErrInvalidActiveSpace, electrons)
	case orbitals <= 0:
		return nil, nil, fmt.Errorf("%w: orbitals must be positive, got %d", ErrInvalidActiveSpace, orbitals)
	case activeElectrons <= 0:
		return nil, nil, fmt.Errorf("%w: active electrons must be positive, got %d", ErrInvalidActiveSpace, activeElectrons)
	case activeElectrons > electrons:
		return nil, nil, fmt.Errorf("%w: %d active electrons exceed %d total", ErrInvalidActiveSpace, activeElectrons, electrons)
	case (electrons-activeElectrons)%2 != 0:
		return nil, nil, fmt.Errorf("%w: %d frozen electrons cannot doubly occupy core orbitals",
			ErrInvalidActiveSpace, electrons-activeElectrons)
	case activeElectrons > 2*activeOrbitals:
		return nil, nil, fmt.Errorf("%w: %d active electrons do not fit in %d active orbitals",
			ErrInvalidActiveSpace, activeElectrons, activeOrbitals)
	}

	ncore := (electrons - activeElectrons) / 2
	if ncore+activeOrbitals > orbitals {
		return nil, nil, fmt.Errorf("%w: %d core + %d active orbitals exceed %d available",
			ErrInvalidActiveSpace, ncore, activeOrbitals, orbitals)
	}

	core = make([]int, ncore)
	for i := range core {
		core[i] = i
	}
	active = make([]int, activeOrbitals)
	for i := range active {
		active[i] = ncore + i
	}
	return core, active, nil
}
