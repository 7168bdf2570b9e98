package opt

import (
	"fmt"

	"vrpga/internal/model"
)

// Target selects the chromosome a mutation acts on.
type Target int

const (
	// TargetCustomers mutates the customer permutation only.
	TargetCustomers Target = iota
	// TargetVehicles mutates the vehicle assignment only.
	TargetVehicles
	// TargetEither picks one of the two chromosomes with probability 0.5.
	TargetEither
)

func (t Target) String() string {
	switch t {
	case TargetCustomers:
		return "customers"
	case TargetVehicles:
		return "vehicles"
	case TargetEither:
		return "either"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// checkTarget validates the targeted chromosome and returns the index range
// to draw from. TargetEither requires equal lengths since the indices are
// drawn before the chromosome is picked.
func checkTarget(ind *model.Individual, target Target) (int, error) {
	if ind == nil {
		return 0, fmt.Errorf("%w: nil individual", ErrInvalidLength)
	}
	var n int
	switch target {
	case TargetCustomers:
		n = len(ind.Customers)
	case TargetVehicles:
		n = len(ind.Vehicles)
	case TargetEither:
		if len(ind.Customers) != len(ind.Vehicles) {
			return 0, fmt.Errorf("%w: %d customers but %d vehicles", ErrInvalidLength, len(ind.Customers), len(ind.Vehicles))
		}
		n = len(ind.Customers)
	default:
		return 0, fmt.Errorf("unknown mutation target %v", target)
	}
	if n < 2 {
		return 0, fmt.Errorf("%w: %v needs 2 genes, got %d", ErrInvalidLength, target, n)
	}
	return n, nil
}

// resolveGenes flips the chromosome coin for TargetEither.
func resolveGenes(rng Rand, ind *model.Individual, target Target) []int {
	switch target {
	case TargetCustomers:
		return ind.Customers
	case TargetVehicles:
		return ind.Vehicles
	}
	if rng.Float64() < 0.5 {
		return ind.Customers
	}
	return ind.Vehicles
}

// SwapMutation exchanges the genes at two distinct random indices of the
// targeted chromosome.
func SwapMutation(rng Rand, ind *model.Individual, target Target) error {
	if rng == nil {
		return ErrRandomSource
	}
	n, err := checkTarget(ind, target)
	if err != nil {
		return err
	}
	i, j := sampleTwo(rng, n)
	genes := resolveGenes(rng, ind, target)
	genes[i], genes[j] = genes[j], genes[i]
	return nil
}

// ShuffleMutation shuffles the half-open slice between two distinct random
// indices of the targeted chromosome.
func ShuffleMutation(rng Rand, ind *model.Individual, target Target) error {
	if rng == nil {
		return ErrRandomSource
	}
	n, err := checkTarget(ind, target)
	if err != nil {
		return err
	}
	lo, hi := sampleTwoSorted(rng, n)
	seg := resolveGenes(rng, ind, target)[lo:hi]
	rng.Shuffle(len(seg), func(i, j int) { seg[i], seg[j] = seg[j], seg[i] })
	return nil
}

// RandomResettingMutation overwrites one random vehicle label with a uniform
// value in [0, vehicleCount).
func RandomResettingMutation(rng Rand, vehicles []int, vehicleCount int) error {
	if rng == nil {
		return ErrRandomSource
	}
	if vehicleCount < 1 {
		return fmt.Errorf("%w: got %d", ErrVehicleCount, vehicleCount)
	}
	if len(vehicles) == 0 {
		return fmt.Errorf("%w: no vehicles to reset", ErrInvalidLength)
	}
	pos := rng.Intn(len(vehicles))
	vehicles[pos] = rng.Intn(vehicleCount)
	return nil
}

// MutationFunc perturbs one individual in place. vehicleCount bounds the
// labels written by random resetting.
type MutationFunc func(rng Rand, ind *model.Individual, vehicleCount int) error

type geneOp func(rng Rand, ind *model.Individual, target Target) error

func resetVehicles(rng Rand, ind *model.Individual, vehicleCount int) error {
	return RandomResettingMutation(rng, ind.Vehicles, vehicleCount)
}

func onTarget(op geneOp, target Target) MutationFunc {
	return func(rng Rand, ind *model.Individual, _ int) error {
		return op(rng, ind, target)
	}
}

// checkMutable validates what every combinator may touch so none fails
// halfway through.
func checkMutable(rng Rand, ind *model.Individual, vehicleCount int) error {
	if rng == nil {
		return ErrRandomSource
	}
	if _, err := checkTarget(ind, TargetEither); err != nil {
		return err
	}
	if vehicleCount < 1 {
		return fmt.Errorf("%w: got %d", ErrVehicleCount, vehicleCount)
	}
	return nil
}

func chainMutation(steps ...MutationFunc) MutationFunc {
	return func(rng Rand, ind *model.Individual, vehicleCount int) error {
		if err := checkMutable(rng, ind, vehicleCount); err != nil {
			return err
		}
		for _, step := range steps {
			if err := step(rng, ind, vehicleCount); err != nil {
				return err
			}
		}
		return nil
	}
}

// eitherMutation applies swap or shuffle across both chromosomes with equal
// probability.
func eitherMutation(rng Rand, ind *model.Individual, _ int) error {
	if rng.Float64() < 0.5 {
		return SwapMutation(rng, ind, TargetEither)
	}
	return ShuffleMutation(rng, ind, TargetEither)
}

// Mutation combinators.
var (
	SwapReset          MutationFunc = chainMutation(onTarget(SwapMutation, TargetCustomers), resetVehicles)
	SwapShuffle        MutationFunc = chainMutation(onTarget(SwapMutation, TargetCustomers), onTarget(ShuffleMutation, TargetVehicles))
	ShuffleReset       MutationFunc = chainMutation(onTarget(ShuffleMutation, TargetCustomers), resetVehicles)
	ShuffleSwap        MutationFunc = chainMutation(onTarget(ShuffleMutation, TargetCustomers), onTarget(SwapMutation, TargetVehicles))
	SwapOrShuffle      MutationFunc = chainMutation(eitherMutation)
	SwapOrShuffleReset MutationFunc = chainMutation(eitherMutation, resetVehicles)
)
