package opt

import (
	"math/rand"
	"time"
)

// Rand is the random source consumed by every operator. *rand.Rand satisfies
// it; it is not goroutine-safe, so each worker owns its own.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source. Seed 0 picks a time-based seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// sampleTwo draws two distinct indices uniformly from [0, n). n must be >= 2.
func sampleTwo(rng Rand, n int) (int, int) {
	a := rng.Intn(n)
	b := rng.Intn(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

// sampleTwoSorted is sampleTwo with the result ordered.
func sampleTwoSorted(rng Rand, n int) (int, int) {
	a, b := sampleTwo(rng, n)
	if a > b {
		a, b = b, a
	}
	return a, b
}

// sampleIndices draws k distinct indices from [0, n) in draw order using a
// partial Fisher-Yates pass.
func sampleIndices(rng Rand, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// sameBacking reports whether two non-empty slices start at the same element.
func sameBacking(a, b []int) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
