package opt

import (
	"errors"
	"fmt"
	"log/slog"

	"vrpga/internal/buildinfo"
	"vrpga/internal/config"
	"vrpga/internal/metrics"
	"vrpga/internal/model"
)

// Operator kinds used in metrics labels and Stats.
const (
	KindCrossover = "crossover"
	KindMutation  = "mutation"
	KindSelection = "selection"
)

// Toolbox binds the configured operators to one random source. It is not
// safe for concurrent use; parallel workers each build their own.
type Toolbox struct {
	cfg       config.Config
	rng       Rand
	crossover CrossoverFunc
	mutation  MutationFunc
	selection SelectionFunc
	log       *slog.Logger
	stats     *statsStore
}

// NewToolbox resolves the operators named in cfg. A nil rng is replaced by
// one seeded from cfg.Seed; a nil logger by slog.Default().
func NewToolbox(cfg config.Config, rng Rand, logger *slog.Logger) (*Toolbox, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	cx, err := ResolveCrossover(cfg.Crossover)
	if err != nil {
		return nil, err
	}
	mut, err := ResolveMutation(cfg.Mutation)
	if err != nil {
		return nil, err
	}
	sel, err := ResolveSelection(cfg.Selection, SelectionOptions{TournamentSize: cfg.TournamentSize})
	if err != nil {
		return nil, err
	}
	metrics.RegisterDefault()
	logger.Info("genetic toolbox ready",
		"crossover", cfg.Crossover,
		"mutation", cfg.Mutation,
		"selection", cfg.Selection,
		"tournamentSize", cfg.TournamentSize,
		"vehicles", cfg.Vehicles,
		"seed", cfg.Seed,
		"build", buildinfo.Info(),
	)
	return &Toolbox{
		cfg:       cfg,
		rng:       rng,
		crossover: cx,
		mutation:  mut,
		selection: sel,
		log:       logger,
		stats:     newStatsStore(),
	}, nil
}

// Config returns the configuration the toolbox was built from.
func (t *Toolbox) Config() config.Config { return t.cfg }

// Mate recombines p1 and p2 in place and clears their fitness.
func (t *Toolbox) Mate(p1, p2 *model.Individual) error {
	err := t.crossover(t.rng, p1, p2)
	t.observe(KindCrossover, t.cfg.Crossover, err, p1)
	if err != nil {
		return err
	}
	p1.Invalidate()
	p2.Invalidate()
	return nil
}

// Mutate perturbs ind in place and clears its fitness.
func (t *Toolbox) Mutate(ind *model.Individual) error {
	err := t.mutation(t.rng, ind, t.cfg.Vehicles)
	t.observe(KindMutation, t.cfg.Mutation, err, ind)
	if err != nil {
		return err
	}
	ind.Invalidate()
	return nil
}

// Select draws k individuals from pop with the configured method. The
// returned individuals are shared with pop; clone before mutating.
func (t *Toolbox) Select(pop model.Population, k int) (model.Population, error) {
	chosen, err := t.selection(t.rng, pop, k)
	t.observe(KindSelection, t.cfg.Selection, err, nil)
	if err != nil {
		return nil, err
	}
	metrics.SelectionSize.WithLabelValues(t.cfg.Selection).Observe(float64(len(chosen)))
	if len(chosen) > 0 {
		best := chosen[0].Fitness.Primary()
		for _, ind := range chosen[1:] {
			best = min(best, ind.Fitness.Primary())
		}
		metrics.SelectionBestFitness.WithLabelValues(t.cfg.Selection).Set(best)
	}
	return chosen, nil
}

// SelectPairs selects 2*n individuals and returns them as independent clones
// ready for Mate, so the population survives the generation untouched.
func (t *Toolbox) SelectPairs(pop model.Population, n int) ([][2]*model.Individual, error) {
	chosen, err := t.Select(pop, 2*n)
	if err != nil {
		return nil, err
	}
	pairs := make([][2]*model.Individual, n)
	for i := range pairs {
		pairs[i] = [2]*model.Individual{chosen[2*i].Clone(), chosen[2*i+1].Clone()}
	}
	return pairs, nil
}

// Stats returns per-operator call tallies for one kind.
func (t *Toolbox) Stats(kind string) map[string]OpStats {
	return t.stats.byKind(kind)
}

func (t *Toolbox) observe(kind, name string, err error, ind *model.Individual) {
	t.stats.record(kind, name, err)
	if err == nil {
		metrics.OperatorApplications.WithLabelValues(kind, name).Inc()
		return
	}
	reason := failureReason(err)
	metrics.OperatorFailures.WithLabelValues(kind, name, reason).Inc()
	attrs := []any{"kind", kind, "op", name, "reason", reason, "error", err}
	if ind != nil {
		attrs = append(attrs, "individual", ind.ID)
	}
	t.log.Warn("genetic operator rejected input", attrs...)
}

func failureReason(err error) string {
	for _, r := range []struct {
		target error
		label  string
	}{
		{ErrInvalidLength, "invalid_length"},
		{ErrSampleSize, "sample_size"},
		{ErrNonPermutation, "non_permutation"},
		{ErrNonPositiveFitness, "non_positive_fitness"},
		{ErrMissingFitness, "missing_fitness"},
		{ErrAliasedOperands, "aliased_operands"},
		{ErrVehicleCount, "vehicle_count"},
		{ErrRandomSource, "random_source"},
	} {
		if errors.Is(err, r.target) {
			return r.label
		}
	}
	return "other"
}

// String describes the bound operators.
func (t *Toolbox) String() string {
	return fmt.Sprintf("toolbox(crossover=%s mutation=%s selection=%s vehicles=%d)",
		t.cfg.Crossover, t.cfg.Mutation, t.cfg.Selection, t.cfg.Vehicles)
}
