// Implements the SpecStore, which holds the immutable process descriptors a
// simulation is set up from. Registration is validated eagerly so every setup
// error surfaces before the first tick.

package sim

import (
	"fmt"
	"sort"
)

// SpecStore owns the ProcessSpecs for one simulation run. Registration is only
// allowed until Seal() is called; afterwards the store is read-only.
type SpecStore struct {
	specs  map[int]ProcessSpec
	sealed bool
}

// NewSpecStore creates an empty, unsealed SpecStore.
func NewSpecStore() *SpecStore {
	return &SpecStore{specs: make(map[int]ProcessSpec)}
}

// Register validates and stores a spec.
// Fails with ErrDuplicateID, ErrInvalidBurst, ErrInvalidArrival, or ErrStoreSealed.
func (s *SpecStore) Register(spec ProcessSpec) error {
	if s.sealed {
		return fmt.Errorf("%w: cannot register process %d", ErrStoreSealed, spec.ID)
	}
	if spec.BurstTime <= 0 {
		return fmt.Errorf("%w: process %d has burst %d", ErrInvalidBurst, spec.ID, spec.BurstTime)
	}
	if spec.ArrivalTime < 0 {
		return fmt.Errorf("%w: process %d arrives at %d", ErrInvalidArrival, spec.ID, spec.ArrivalTime)
	}
	if _, exists := s.specs[spec.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, spec.ID)
	}
	s.specs[spec.ID] = spec
	return nil
}

// Seal closes the registration phase. Idempotent.
func (s *SpecStore) Seal() {
	s.sealed = true
}

// Len returns the number of registered specs.
func (s *SpecStore) Len() int {
	return len(s.specs)
}

// All returns every registered spec ordered by arrival time, then ID.
// The stable deterministic ordering is what makes tie-breaks reproducible.
func (s *SpecStore) All() []ProcessSpec {
	specs := make([]ProcessSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		if specs[i].ArrivalTime != specs[j].ArrivalTime {
			return specs[i].ArrivalTime < specs[j].ArrivalTime
		}
		return specs[i].ID < specs[j].ID
	})
	return specs
}
