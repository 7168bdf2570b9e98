package opt

import (
	"math/rand"
	"testing"

	"vrpga/internal/model"
)

// scriptedRand replays fixed draws so tests can force cut points. Shuffle
// reverses the range so its effect is visible.
type scriptedRand struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *scriptedRand) Intn(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatalf("scriptedRand: out of ints (Intn(%d))", n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scriptedRand: %d not in [0,%d)", v, n)
	}
	return v
}

func (s *scriptedRand) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatalf("scriptedRand: out of floats")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func (s *scriptedRand) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func (s *scriptedRand) drained(t *testing.T) {
	t.Helper()
	if len(s.ints) != 0 || len(s.floats) != 0 {
		t.Fatalf("scriptedRand: unused draws ints=%v floats=%v", s.ints, s.floats)
	}
}

func seq(vals ...int) []int { return vals }

func ident(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// randomIndividual builds a valid individual with n customers over v vehicles.
func randomIndividual(rng *rand.Rand, n, v int) *model.Individual {
	cust := rng.Perm(n)
	for i := range cust {
		cust[i]++
	}
	veh := make([]int, n)
	for i := range veh {
		veh[i] = rng.Intn(v)
	}
	return model.NewIndividual(cust, veh)
}

func withFitness(fits ...float64) model.Population {
	pop := make(model.Population, len(fits))
	for i, f := range fits {
		ind := model.NewIndividual(seq(1), seq(0))
		ind.Fitness.Values = []float64{f}
		pop[i] = ind
	}
	return pop
}

func mustPermutation(t *testing.T, label string, s []int) {
	t.Helper()
	if err := model.ValidatePermutation(s); err != nil {
		t.Fatalf("%s: %v (%v)", label, err, s)
	}
}
