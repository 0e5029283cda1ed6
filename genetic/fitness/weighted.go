// Package fitness turns metric bundles into scalar fitness values.
package fitness

import (
	"maps"
	"slices"

	"github.com/lixenwraith/mazega/genetic/tracking"
)

// Aggregator calculates fitness score from collected metrics
type Aggregator interface {
	Calculate(metrics tracking.MetricBundle) float64
}

// WeightedAggregator calculates fitness as weighted sum of metrics.
// Metrics without a weight are ignored, weights without a metric contribute 0.
type WeightedAggregator struct {
	Weights map[string]float64
}

// Term is one weighted contribution to a fitness value
type Term struct {
	Metric string  `json:"metric"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

// Contribution is Weight times Value
func (t Term) Contribution() float64 { return t.Weight * t.Value }

// Calculate sums in sorted key order so results do not depend on map iteration
func (a *WeightedAggregator) Calculate(metrics tracking.MetricBundle) float64 {
	var fitness float64
	for _, key := range a.keys() {
		if raw, ok := metrics[key]; ok {
			fitness += a.Weights[key] * raw
		}
	}
	return fitness
}

// Terms breaks a fitness value down per weighted metric, sorted by metric name
func (a *WeightedAggregator) Terms(metrics tracking.MetricBundle) []Term {
	keys := a.keys()
	terms := make([]Term, 0, len(keys))
	for _, key := range keys {
		terms = append(terms, Term{Metric: key, Weight: a.Weights[key], Value: metrics[key]})
	}
	return terms
}

// With returns a copy with the given weights overridden
func (a *WeightedAggregator) With(overrides map[string]float64) *WeightedAggregator {
	w := maps.Clone(a.Weights)
	if w == nil {
		w = make(map[string]float64, len(overrides))
	}
	maps.Copy(w, overrides)
	return &WeightedAggregator{Weights: w}
}

func (a *WeightedAggregator) keys() []string {
	return slices.Sorted(maps.Keys(a.Weights))
}
