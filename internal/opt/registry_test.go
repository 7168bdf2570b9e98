package opt

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"vrpga/internal/model"
)

func TestRegistryListsBuiltins(t *testing.T) {
	cx := ListCrossovers()
	for _, name := range []string{"pmx_two_point", "pmx_segment_swap", "cycle_two_point", "cycle_segment_swap", "xo1", "xo4"} {
		if !slices.Contains(cx, name) {
			t.Fatalf("crossover %s missing from %v", name, cx)
		}
	}
	mut := ListMutations()
	for _, name := range []string{"swap_reset", "swap_or_shuffle_reset", "mutate1", "mutate6"} {
		if !slices.Contains(mut, name) {
			t.Fatalf("mutation %s missing from %v", name, mut)
		}
	}
	if got := ListSelections(); !slices.Equal(got, []string{"ranking", "roulette", "tournament"}) {
		t.Fatalf("selections = %v", got)
	}
	if !slices.IsSorted(cx) || !slices.IsSorted(mut) {
		t.Fatalf("listings not sorted")
	}
}

func TestCrossoverAliasesMatchCanonical(t *testing.T) {
	for canonical, alias := range map[string]string{
		"pmx_two_point":      "xo1",
		"pmx_segment_swap":   "xo2",
		"cycle_two_point":    "xo3",
		"cycle_segment_swap": "xo4",
	} {
		a, err := ResolveCrossover(canonical)
		if err != nil {
			t.Fatalf("resolve %s: %v", canonical, err)
		}
		b, err := ResolveCrossover(alias)
		if err != nil {
			t.Fatalf("resolve %s: %v", alias, err)
		}
		src := rand.New(rand.NewSource(3))
		p1, p2 := randomIndividual(src, 12, 4), randomIndividual(src, 12, 4)
		q1, q2 := p1.Clone(), p2.Clone()
		if err := a(rand.New(rand.NewSource(21)), p1, p2); err != nil {
			t.Fatalf("%s: %v", canonical, err)
		}
		if err := b(rand.New(rand.NewSource(21)), q1, q2); err != nil {
			t.Fatalf("%s: %v", alias, err)
		}
		if !sameGenes(p1, q1) || !sameGenes(p2, q2) {
			t.Fatalf("%s and %s diverged", canonical, alias)
		}
	}
}

func TestMutationAliasesMatchCanonical(t *testing.T) {
	for i, canonical := range []string{"swap_reset", "swap_shuffle", "shuffle_reset", "shuffle_swap", "swap_or_shuffle", "swap_or_shuffle_reset"} {
		alias := "mutate" + string(rune('1'+i))
		a, err := ResolveMutation(canonical)
		if err != nil {
			t.Fatalf("resolve %s: %v", canonical, err)
		}
		b, err := ResolveMutation(alias)
		if err != nil {
			t.Fatalf("resolve %s: %v", alias, err)
		}
		ind := randomIndividual(rand.New(rand.NewSource(5)), 10, 3)
		dup := ind.Clone()
		if err := a(rand.New(rand.NewSource(8)), ind, 3); err != nil {
			t.Fatalf("%s: %v", canonical, err)
		}
		if err := b(rand.New(rand.NewSource(8)), dup, 3); err != nil {
			t.Fatalf("%s: %v", alias, err)
		}
		if !sameGenes(ind, dup) {
			t.Fatalf("%s and %s diverged", canonical, alias)
		}
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	t.Cleanup(resetRegistryForTests)
	noop := func(Rand, *model.Individual, *model.Individual) error { return nil }
	if err := RegisterCrossover("pmx_two_point", noop); !errors.Is(err, ErrOperatorExists) {
		t.Fatalf("duplicate crossover: got %v", err)
	}
	if err := RegisterCrossover("noop", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := ResolveCrossover("noop"); err != nil {
		t.Fatalf("resolve registered: %v", err)
	}
	if err := RegisterMutation("mutate3", SwapReset); !errors.Is(err, ErrOperatorExists) {
		t.Fatalf("duplicate mutation: got %v", err)
	}
	if err := RegisterSelection("roulette", func(SelectionOptions) SelectionFunc { return RankingSelection }); !errors.Is(err, ErrOperatorExists) {
		t.Fatalf("duplicate selection: got %v", err)
	}
	if err := RegisterMutation("", SwapReset); err == nil {
		t.Fatalf("empty name accepted")
	}
}

func TestResetRegistryDropsCustomOperators(t *testing.T) {
	if err := RegisterSelection("first", func(SelectionOptions) SelectionFunc { return RankingSelection }); err != nil {
		t.Fatalf("register: %v", err)
	}
	resetRegistryForTests()
	if _, err := ResolveSelection("first", SelectionOptions{}); !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("custom selection survived reset: %v", err)
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, err := ResolveCrossover("xo9"); !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("crossover: got %v", err)
	}
	if _, err := ResolveMutation("mutate0"); !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("mutation: got %v", err)
	}
	if _, err := ResolveSelection("boltzmann", SelectionOptions{}); !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("selection: got %v", err)
	}
}

func TestResolveSelectionPassesTournamentSize(t *testing.T) {
	sel, err := ResolveSelection("tournament", SelectionOptions{TournamentSize: 4})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := sel(rand.New(rand.NewSource(1)), withFitness(1, 2, 3), 1); !errors.Is(err, ErrSampleSize) {
		t.Fatalf("size 4 over 3 individuals: got %v", err)
	}
}

func sameGenes(a, b *model.Individual) bool {
	return slices.Equal(a.Customers, b.Customers) && slices.Equal(a.Vehicles, b.Vehicles)
}
