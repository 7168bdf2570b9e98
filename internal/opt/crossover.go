package opt

import (
	"fmt"

	"vrpga/internal/model"
)

// checkPair enforces the shared two-parent preconditions on one chromosome.
// Parents must be non-nil; see nilParent.
func checkPair(p1, p2 *model.Individual, a, b []int, chromo string) error {
	if p1 == p2 || sameBacking(a, b) {
		return fmt.Errorf("%w: %s", ErrAliasedOperands, p1.ID)
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: %s lengths %d and %d", ErrInvalidLength, chromo, len(a), len(b))
	}
	return nil
}

func nilParent(p1, p2 *model.Individual) error {
	if p1 == nil || p2 == nil {
		return fmt.Errorf("%w: nil parent", ErrInvalidLength)
	}
	return nil
}

func checkPermutations(a, b []int) error {
	if err := model.ValidatePermutation(a); err != nil {
		return fmt.Errorf("%w: first parent: %v", ErrNonPermutation, err)
	}
	if err := model.ValidatePermutation(b); err != nil {
		return fmt.Errorf("%w: second parent: %v", ErrNonPermutation, err)
	}
	return nil
}

// PartiallyMappedCrossover applies PMX to both customer permutations in place.
// Values between the two cut points are exchanged position by position and
// the displaced values are relocated, so both stay permutations of 1..N.
func PartiallyMappedCrossover(rng Rand, p1, p2 *model.Individual) error {
	if rng == nil {
		return ErrRandomSource
	}
	if err := nilParent(p1, p2); err != nil {
		return err
	}
	if err := checkPair(p1, p2, p1.Customers, p2.Customers, "customers"); err != nil {
		return err
	}
	size := len(p1.Customers)
	if size < 2 {
		return fmt.Errorf("%w: pmx needs 2 customers, got %d", ErrInvalidLength, size)
	}
	if err := checkPermutations(p1.Customers, p2.Customers); err != nil {
		return err
	}
	cut1, cut2 := sampleTwoSorted(rng, size)
	pmxBetween(p1.Customers, p2.Customers, cut1, cut2)
	return nil
}

// pmxBetween is the PMX pass over the inclusive range [cut1, cut2]. Both
// inputs must be permutations of 1..N of equal length.
func pmxBetween(sub1, sub2 []int, cut1, cut2 int) {
	size := len(sub1)
	// pos1[v-1] is the index of value v in sub1
	pos1, pos2 := make([]int, size), make([]int, size)
	for i := 0; i < size; i++ {
		pos1[sub1[i]-1] = i
		pos2[sub2[i]-1] = i
	}
	for i := cut1; i <= cut2; i++ {
		t1 := sub1[i] - 1
		t2 := sub2[i] - 1

		sub1[i] = t2 + 1
		sub1[pos1[t2]] = t1 + 1
		sub2[i] = t1 + 1
		sub2[pos2[t1]] = t2 + 1

		pos1[t1], pos1[t2] = pos1[t2], pos1[t1]
		pos2[t1], pos2[t2] = pos2[t2], pos2[t1]
	}
}

// CycleCrossover builds two offspring customer sequences without touching the
// parents. The cycle starting at position 0 is copied straight (parent1 into
// the first child, parent2 into the second); every other position is taken
// from the opposite parent in one pass, however many cycles remain.
func CycleCrossover(p1, p2 *model.Individual) ([]int, []int, error) {
	if err := nilParent(p1, p2); err != nil {
		return nil, nil, err
	}
	if err := checkPair(p1, p2, p1.Customers, p2.Customers, "customers"); err != nil {
		return nil, nil, err
	}
	if len(p1.Customers) == 0 {
		return nil, nil, fmt.Errorf("%w: no customers", ErrInvalidLength)
	}
	if err := checkPermutations(p1.Customers, p2.Customers); err != nil {
		return nil, nil, err
	}
	a, b := cycleFill(p1.Customers, p2.Customers)
	return a, b, nil
}

func cycleFill(a, b []int) ([]int, []int) {
	size := len(a)
	pos := make([]int, size+1)
	for i, v := range a {
		pos[v] = i
	}
	off1, off2 := make([]int, size), make([]int, size)
	inCycle := make([]bool, size)

	idx := 0
	for !inCycle[idx] {
		inCycle[idx] = true
		off1[idx] = a[idx]
		off2[idx] = b[idx]
		idx = pos[b[idx]]
	}
	for i := 0; i < size; i++ {
		if inCycle[i] {
			continue
		}
		off1[i] = b[i]
		off2[i] = a[i]
	}
	return off1, off2
}

// TwoPointCrossover exchanges a vehicle segment [cx1, cx2) between the
// parents in place, with cx1 drawn from [1, N] and cx2 from [1, N-1] and then
// shifted so the points are distinct and ordered.
func TwoPointCrossover(rng Rand, p1, p2 *model.Individual) error {
	if rng == nil {
		return ErrRandomSource
	}
	if err := nilParent(p1, p2); err != nil {
		return err
	}
	if err := checkPair(p1, p2, p1.Vehicles, p2.Vehicles, "vehicles"); err != nil {
		return err
	}
	size := len(p1.Vehicles)
	if size < 2 {
		return fmt.Errorf("%w: two-point needs 2 vehicles, got %d", ErrInvalidLength, size)
	}
	cx1 := rng.Intn(size) + 1
	cx2 := rng.Intn(size-1) + 1
	if cx2 >= cx1 {
		cx2++
	} else {
		cx1, cx2 = cx2, cx1
	}
	swapSegment(p1.Vehicles, p2.Vehicles, cx1, cx2)
	return nil
}

// SegmentSwapCrossover exchanges the vehicle segment between two cut points
// drawn independently from [0, N]. Equal points leave both parents as they
// were.
func SegmentSwapCrossover(rng Rand, p1, p2 *model.Individual) error {
	if rng == nil {
		return ErrRandomSource
	}
	if err := nilParent(p1, p2); err != nil {
		return err
	}
	if err := checkPair(p1, p2, p1.Vehicles, p2.Vehicles, "vehicles"); err != nil {
		return err
	}
	size := len(p1.Vehicles)
	cut1 := rng.Intn(size + 1)
	cut2 := rng.Intn(size + 1)
	if cut1 > cut2 {
		cut1, cut2 = cut2, cut1
	}
	swapSegment(p1.Vehicles, p2.Vehicles, cut1, cut2)
	return nil
}

// swapSegment exchanges a[lo:hi] and b[lo:hi]. hi may equal len(a).
func swapSegment(a, b []int, lo, hi int) {
	for i := lo; i < hi && i < len(a); i++ {
		a[i], b[i] = b[i], a[i]
	}
}

// CrossoverFunc recombines a parent pair in place.
type CrossoverFunc func(rng Rand, p1, p2 *model.Individual) error

// cycleInPlace runs CycleCrossover and installs the offspring into the pair.
func cycleInPlace(_ Rand, p1, p2 *model.Individual) error {
	off1, off2, err := CycleCrossover(p1, p2)
	if err != nil {
		return err
	}
	copy(p1.Customers, off1)
	copy(p2.Customers, off2)
	return nil
}

// chainCrossover checks the vehicle step's preconditions up front so it cannot
// fail after the permutation step already ran.
func chainCrossover(perm, vehicles CrossoverFunc) CrossoverFunc {
	return func(rng Rand, p1, p2 *model.Individual) error {
		if rng == nil {
			return ErrRandomSource
		}
		if err := nilParent(p1, p2); err != nil {
			return err
		}
		if err := checkPair(p1, p2, p1.Vehicles, p2.Vehicles, "vehicles"); err != nil {
			return err
		}
		if len(p1.Vehicles) < 2 {
			return fmt.Errorf("%w: need 2 vehicles, got %d", ErrInvalidLength, len(p1.Vehicles))
		}
		if err := perm(rng, p1, p2); err != nil {
			return err
		}
		return vehicles(rng, p1, p2)
	}
}

// Crossover combinators, permutation operator first.
var (
	PMXTwoPoint      CrossoverFunc = chainCrossover(PartiallyMappedCrossover, TwoPointCrossover)
	PMXSegmentSwap   CrossoverFunc = chainCrossover(PartiallyMappedCrossover, SegmentSwapCrossover)
	CycleTwoPoint    CrossoverFunc = chainCrossover(cycleInPlace, TwoPointCrossover)
	CycleSegmentSwap CrossoverFunc = chainCrossover(cycleInPlace, SegmentSwapCrossover)
)
