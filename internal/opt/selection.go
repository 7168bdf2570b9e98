package opt

import (
	"fmt"
	"sort"

	"vrpga/internal/model"
)

// DefaultTournamentSize is the tournament size used when none is configured.
const DefaultTournamentSize = 9

// SelectionFunc picks k individuals from pop with replacement. Lower fitness
// is better. The population itself is never modified.
type SelectionFunc func(rng Rand, pop model.Population, k int) (model.Population, error)

func checkSelection(rng Rand, pop model.Population, k int) error {
	if rng == nil {
		return ErrRandomSource
	}
	if k < 0 {
		return fmt.Errorf("%w: k=%d", ErrSampleSize, k)
	}
	if k > 0 && len(pop) == 0 {
		return fmt.Errorf("%w: k=%d from empty population", ErrSampleSize, k)
	}
	for i, ind := range pop {
		if ind == nil {
			return fmt.Errorf("%w: nil individual at %d", ErrMissingFitness, i)
		}
		if !ind.Fitness.Valid() {
			return fmt.Errorf("%w: %s", ErrMissingFitness, ind.ID)
		}
	}
	return nil
}

// TournamentSelection runs k tournaments of tournSize distinct aspirants and
// keeps the first aspirant with the lowest fitness from each.
func TournamentSelection(rng Rand, pop model.Population, k, tournSize int) (model.Population, error) {
	if err := checkSelection(rng, pop, k); err != nil {
		return nil, err
	}
	if tournSize < 1 || tournSize > len(pop) {
		return nil, fmt.Errorf("%w: tournament of %d from %d individuals", ErrSampleSize, tournSize, len(pop))
	}
	chosen := make(model.Population, 0, k)
	for d := 0; d < k; d++ {
		aspirants := sampleIndices(rng, len(pop), tournSize)
		winner := pop[aspirants[0]]
		for _, a := range aspirants[1:] {
			if pop[a].Fitness.Primary() < winner.Fitness.Primary() {
				winner = pop[a]
			}
		}
		chosen = append(chosen, winner)
	}
	return chosen, nil
}

// Tournament binds a tournament size. Sizes below 1 fall back to
// DefaultTournamentSize.
func Tournament(tournSize int) SelectionFunc {
	if tournSize < 1 {
		tournSize = DefaultTournamentSize
	}
	return func(rng Rand, pop model.Population, k int) (model.Population, error) {
		return TournamentSelection(rng, pop, k, tournSize)
	}
}

// RankWeights returns the linear rank weights (n-i)/T for ranks 0..n-1, best
// first, with T the n-th triangular number.
func RankWeights(n int) []float64 {
	total := float64(n*(n+1)) / 2
	w := make([]float64, n)
	for i := range w {
		w[i] = float64(n-i) / total
	}
	return w
}

// RankingSelection sorts the population by ascending fitness and draws k
// ranks with probability proportional to n-rank.
func RankingSelection(rng Rand, pop model.Population, k int) (model.Population, error) {
	if err := checkSelection(rng, pop, k); err != nil {
		return nil, err
	}
	chosen := make(model.Population, 0, k)
	if k == 0 {
		return chosen, nil
	}
	sorted := append(model.Population(nil), pop...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fitness.Primary() < sorted[j].Fitness.Primary()
	})

	n := len(sorted)
	cdf := RankWeights(n)
	for i := 1; i < n; i++ {
		cdf[i] += cdf[i-1]
	}
	for d := 0; d < k; d++ {
		r := rng.Float64()
		idx := sort.Search(n, func(i int) bool { return cdf[i] > r })
		if idx == n {
			idx = n - 1
		}
		chosen = append(chosen, sorted[idx])
	}
	return chosen, nil
}

// RouletteWheelSelection draws k individuals with probability proportional
// to 1/fitness. Every fitness must be strictly positive. Each draw scans the
// population linearly, so the cost is O(n*k).
func RouletteWheelSelection(rng Rand, pop model.Population, k int) (model.Population, error) {
	if err := checkSelection(rng, pop, k); err != nil {
		return nil, err
	}
	sum := 0.0
	for _, ind := range pop {
		f := ind.Fitness.Primary()
		if !(f > 0) {
			return nil, fmt.Errorf("%w: %s has %v", ErrNonPositiveFitness, ind.ID, f)
		}
		sum += 1 / f
	}
	chosen := make(model.Population, 0, k)
	for d := 0; d < k; d++ {
		r := rng.Float64() * sum
		acc := 0.0
		// rounding can leave acc <= r after the last member
		pick := pop[len(pop)-1]
		for _, ind := range pop {
			acc += 1 / ind.Fitness.Primary()
			if acc > r {
				pick = ind
				break
			}
		}
		chosen = append(chosen, pick)
	}
	return chosen, nil
}
