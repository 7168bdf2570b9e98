package opt

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrOperatorExists   = errors.New("operator already registered")
	ErrOperatorNotFound = errors.New("operator not found")
)

// SelectionOptions carries the tunables a selection builder may read.
type SelectionOptions struct {
	TournamentSize int
}

// SelectionBuilder binds options into a SelectionFunc.
type SelectionBuilder func(opts SelectionOptions) SelectionFunc

type registry struct {
	mu        sync.RWMutex
	crossover map[string]CrossoverFunc
	mutation  map[string]MutationFunc
	selection map[string]SelectionBuilder
}

var operators = newRegistry()

func newRegistry() *registry {
	r := &registry{
		crossover: map[string]CrossoverFunc{},
		mutation:  map[string]MutationFunc{},
		selection: map[string]SelectionBuilder{},
	}
	r.registerBuiltins()
	return r
}

func (r *registry) registerBuiltins() {
	for _, c := range []struct {
		names []string
		fn    CrossoverFunc
	}{
		{[]string{"pmx_two_point", "xo1"}, PMXTwoPoint},
		{[]string{"pmx_segment_swap", "xo2"}, PMXSegmentSwap},
		{[]string{"cycle_two_point", "xo3"}, CycleTwoPoint},
		{[]string{"cycle_segment_swap", "xo4"}, CycleSegmentSwap},
	} {
		for _, n := range c.names {
			r.crossover[n] = c.fn
		}
	}
	for _, m := range []struct {
		names []string
		fn    MutationFunc
	}{
		{[]string{"swap_reset", "mutate1"}, SwapReset},
		{[]string{"swap_shuffle", "mutate2"}, SwapShuffle},
		{[]string{"shuffle_reset", "mutate3"}, ShuffleReset},
		{[]string{"shuffle_swap", "mutate4"}, ShuffleSwap},
		{[]string{"swap_or_shuffle", "mutate5"}, SwapOrShuffle},
		{[]string{"swap_or_shuffle_reset", "mutate6"}, SwapOrShuffleReset},
	} {
		for _, n := range m.names {
			r.mutation[n] = m.fn
		}
	}
	r.selection["tournament"] = func(o SelectionOptions) SelectionFunc { return Tournament(o.TournamentSize) }
	r.selection["ranking"] = func(SelectionOptions) SelectionFunc { return RankingSelection }
	r.selection["roulette"] = func(SelectionOptions) SelectionFunc { return RouletteWheelSelection }
}

// RegisterCrossover adds a named crossover. Names are unique across calls.
func RegisterCrossover(name string, fn CrossoverFunc) error {
	if name == "" || fn == nil {
		return errors.New("crossover name and function are required")
	}
	operators.mu.Lock()
	defer operators.mu.Unlock()
	if _, ok := operators.crossover[name]; ok {
		return fmt.Errorf("%w: crossover %s", ErrOperatorExists, name)
	}
	operators.crossover[name] = fn
	return nil
}

// RegisterMutation adds a named mutation.
func RegisterMutation(name string, fn MutationFunc) error {
	if name == "" || fn == nil {
		return errors.New("mutation name and function are required")
	}
	operators.mu.Lock()
	defer operators.mu.Unlock()
	if _, ok := operators.mutation[name]; ok {
		return fmt.Errorf("%w: mutation %s", ErrOperatorExists, name)
	}
	operators.mutation[name] = fn
	return nil
}

// RegisterSelection adds a named selection builder.
func RegisterSelection(name string, b SelectionBuilder) error {
	if name == "" || b == nil {
		return errors.New("selection name and builder are required")
	}
	operators.mu.Lock()
	defer operators.mu.Unlock()
	if _, ok := operators.selection[name]; ok {
		return fmt.Errorf("%w: selection %s", ErrOperatorExists, name)
	}
	operators.selection[name] = b
	return nil
}

func ResolveCrossover(name string) (CrossoverFunc, error) {
	operators.mu.RLock()
	defer operators.mu.RUnlock()
	fn, ok := operators.crossover[name]
	if !ok {
		return nil, fmt.Errorf("%w: crossover %s", ErrOperatorNotFound, name)
	}
	return fn, nil
}

func ResolveMutation(name string) (MutationFunc, error) {
	operators.mu.RLock()
	defer operators.mu.RUnlock()
	fn, ok := operators.mutation[name]
	if !ok {
		return nil, fmt.Errorf("%w: mutation %s", ErrOperatorNotFound, name)
	}
	return fn, nil
}

func ResolveSelection(name string, opts SelectionOptions) (SelectionFunc, error) {
	operators.mu.RLock()
	defer operators.mu.RUnlock()
	b, ok := operators.selection[name]
	if !ok {
		return nil, fmt.Errorf("%w: selection %s", ErrOperatorNotFound, name)
	}
	return b(opts), nil
}

func ListCrossovers() []string {
	operators.mu.RLock()
	defer operators.mu.RUnlock()
	return sortedKeys(operators.crossover)
}

func ListMutations() []string {
	operators.mu.RLock()
	defer operators.mu.RUnlock()
	return sortedKeys(operators.mutation)
}

func ListSelections() []string {
	operators.mu.RLock()
	defer operators.mu.RUnlock()
	return sortedKeys(operators.selection)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resetRegistryForTests() {
	operators.mu.Lock()
	defer operators.mu.Unlock()
	fresh := newRegistry()
	operators.crossover = fresh.crossover
	operators.mutation = fresh.mutation
	operators.selection = fresh.selection
}
