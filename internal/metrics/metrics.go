package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the operator library
	Registry = prometheus.NewRegistry()
	// OperatorApplications counts successful operator calls by kind (crossover, mutation, selection) and name
	OperatorApplications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrpga_operator_applications_total", Help: "Genetic operator applications."},
		[]string{"kind", "name"},
	)
	// OperatorFailures counts rejected operator calls by kind, name, and precondition reason
	OperatorFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrpga_operator_failures_total", Help: "Genetic operator precondition failures."},
		[]string{"kind", "name", "reason"},
	)
	// SelectionBestFitness holds the best primary fitness among the last selected set per method
	SelectionBestFitness = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "vrpga_selection_best_fitness", Help: "Best fitness in the most recent selection."},
		[]string{"name"},
	)
	// SelectionSize records how many individuals each selection call returned
	SelectionSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "vrpga_selection_size", Help: "Individuals returned per selection call.", Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256}},
		[]string{"name"},
	)
)

// RegisterDefault registers collectors to the library registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(OperatorApplications)
		Registry.MustRegister(OperatorFailures)
		Registry.MustRegister(SelectionBestFitness)
		Registry.MustRegister(SelectionSize)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
