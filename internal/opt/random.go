package opt

import (
	"fmt"

	"vrpga/internal/model"
)

// RandomIndividual draws a uniform customer permutation of 1..n and a uniform
// vehicle assignment over [0, vehicles).
func RandomIndividual(rng Rand, n, vehicles int) (*model.Individual, error) {
	if rng == nil {
		return nil, ErrRandomSource
	}
	if vehicles < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrVehicleCount, vehicles)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least 1 customer, got %d", ErrInvalidLength, n)
	}
	customers := rng.Perm(n)
	for i := range customers {
		customers[i]++
	}
	assign := make([]int, n)
	for i := range assign {
		assign[i] = rng.Intn(vehicles)
	}
	return model.NewIndividual(customers, assign), nil
}

// RandomPopulation builds size independent random individuals.
func RandomPopulation(rng Rand, size, n, vehicles int) (model.Population, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: population size %d", ErrSampleSize, size)
	}
	pop := make(model.Population, 0, size)
	for i := 0; i < size; i++ {
		ind, err := RandomIndividual(rng, n, vehicles)
		if err != nil {
			return nil, err
		}
		pop = append(pop, ind)
	}
	return pop, nil
}
