package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Fitness is the externally computed score of an individual. Only the first
// component is compared and lower is better.
type Fitness struct {
	Values []float64 `json:"values,omitempty"`
}

// Valid reports whether the fitness has been evaluated.
func (f Fitness) Valid() bool { return len(f.Values) > 0 }

// Primary returns the compared component. Callers must check Valid first.
func (f Fitness) Primary() float64 { return f.Values[0] }

// Individual is one candidate VRP solution: a customer permutation of 1..N and
// a parallel vehicle assignment.
type Individual struct {
	ID        string  `json:"id"`
	Customers []int   `json:"customers"`
	Vehicles  []int   `json:"vehicles"`
	Fitness   Fitness `json:"fitness"`
}

// Population is the working set of a generation.
type Population []*Individual

// NewIndividual wraps the given chromosomes under a fresh ID. The slices are
// used as-is, not copied.
func NewIndividual(customers, vehicles []int) *Individual {
	return &Individual{ID: uuid.New().String(), Customers: customers, Vehicles: vehicles}
}

// Clone deep-copies the individual under a new ID. Operators mutate in place,
// so parents that must survive a generation are cloned first.
func (ind *Individual) Clone() *Individual {
	out := &Individual{
		ID:        uuid.New().String(),
		Customers: append([]int(nil), ind.Customers...),
		Vehicles:  append([]int(nil), ind.Vehicles...),
	}
	if ind.Fitness.Valid() {
		out.Fitness.Values = append([]float64(nil), ind.Fitness.Values...)
	}
	return out
}

// Invalidate drops the fitness after a variation operator changed the genes.
func (ind *Individual) Invalidate() { ind.Fitness.Values = nil }

// Len is the number of customers.
func (ind *Individual) Len() int { return len(ind.Customers) }

// Clone deep-copies every member of the population.
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for i, ind := range p {
		out[i] = ind.Clone()
	}
	return out
}

// ValidatePermutation checks that seq holds each of 1..len(seq) exactly once.
func ValidatePermutation(seq []int) error {
	seen := make([]bool, len(seq)+1)
	for i, v := range seq {
		if v < 1 || v > len(seq) {
			return fmt.Errorf("value %d at index %d outside 1..%d", v, i, len(seq))
		}
		if seen[v] {
			return fmt.Errorf("duplicate value %d at index %d", v, i)
		}
		seen[v] = true
	}
	return nil
}

// ValidateVehicles checks that every label lies in [0, vehicles).
func ValidateVehicles(seq []int, vehicles int) error {
	for i, v := range seq {
		if v < 0 || v >= vehicles {
			return fmt.Errorf("vehicle %d at index %d outside 0..%d", v, i, vehicles-1)
		}
	}
	return nil
}

// Validate checks both chromosome invariants and their equal length.
func (ind *Individual) Validate(vehicles int) error {
	if len(ind.Customers) != len(ind.Vehicles) {
		return fmt.Errorf("individual %s: %d customers but %d vehicles", ind.ID, len(ind.Customers), len(ind.Vehicles))
	}
	if err := ValidatePermutation(ind.Customers); err != nil {
		return fmt.Errorf("individual %s customers: %v", ind.ID, err)
	}
	if err := ValidateVehicles(ind.Vehicles, vehicles); err != nil {
		return fmt.Errorf("individual %s vehicles: %v", ind.ID, err)
	}
	return nil
}
