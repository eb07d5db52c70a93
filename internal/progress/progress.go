// Package progress provides the per-generation status sinks the evolution
// engine reports into. Sinks are fire-and-forget and inert to the
// algorithm's correctness.
package progress

import (
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Reporter accepts one status update per generation: the generation index
// and string-formatted labelled values.
type Reporter interface {
	Report(generation int, stats map[string]string)
}

// Multi fans a report out to several sinks.
type Multi []Reporter

func (m Multi) Report(generation int, stats map[string]string) {
	for _, r := range m {
		r.Report(generation, stats)
	}
}

// ZapReporter logs one structured line per generation.
type ZapReporter struct {
	log *zap.Logger
}

func NewZapReporter(log *zap.Logger) *ZapReporter {
	return &ZapReporter{log: log}
}

func (r *ZapReporter) Report(generation int, stats map[string]string) {
	fields := make([]zap.Field, 0, len(stats)+1)
	fields = append(fields, zap.Int("generation", generation))
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, stats[k]))
	}
	r.log.Info("generation complete", fields...)
}

// PromReporter exports generation progress as prometheus metrics.
type PromReporter struct {
	generation  prometheus.Gauge
	bestFitness prometheus.Gauge
	meanFitness prometheus.Gauge
}

// NewPromReporter registers the progress gauges with the given registerer.
func NewPromReporter(reg prometheus.Registerer) *PromReporter {
	r := &PromReporter{
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evokit_generation",
			Help: "Index of the last completed generation.",
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evokit_best_fitness",
			Help: "Best fitness achieved so far.",
		}),
		meanFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "evokit_mean_fitness",
			Help: "Mean fitness of the current population.",
		}),
	}
	reg.MustRegister(r.generation, r.bestFitness, r.meanFitness)
	return r
}

func (r *PromReporter) Report(generation int, stats map[string]string) {
	r.generation.Set(float64(generation))
	if v, err := strconv.ParseFloat(stats["best_fitness"], 64); err == nil {
		r.bestFitness.Set(v)
	}
	if v, err := strconv.ParseFloat(stats["mean_fitness"], 64); err == nil {
		r.meanFitness.Set(v)
	}
}
