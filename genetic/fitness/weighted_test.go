package fitness

import (
	"testing"

	"github.com/lixenwraith/mazega/genetic/tracking"
)

func TestWeightedAggregator_Calculate(t *testing.T) {
	agg := &WeightedAggregator{
		Weights: map[string]float64{
			tracking.MetricDistance:   -50,
			tracking.MetricExitFound:  10000,
			tracking.MetricCollisions: -2,
		},
	}

	metrics := tracking.MetricBundle{
		tracking.MetricDistance:   4,
		tracking.MetricExitFound:  0,
		tracking.MetricCollisions: 3,
		"unweighted":              1000,
	}

	fitness := agg.Calculate(metrics)
	expected := -50.0*4 - 2*3

	if fitness != expected {
		t.Errorf("expected %v, got %v", expected, fitness)
	}
}

func TestWeightedAggregator_MissingMetric(t *testing.T) {
	agg := &WeightedAggregator{Weights: map[string]float64{"a": 2, "b": 3}}

	if fitness := agg.Calculate(tracking.MetricBundle{"a": 1}); fitness != 2 {
		t.Errorf("expected 2, got %v", fitness)
	}
	if fitness := agg.Calculate(nil); fitness != 0 {
		t.Errorf("expected 0 for nil metrics, got %v", fitness)
	}
}

func TestWeightedAggregator_Terms(t *testing.T) {
	agg := &WeightedAggregator{Weights: map[string]float64{"b": -1, "a": 5}}

	terms := agg.Terms(tracking.MetricBundle{"a": 2, "b": 7})
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	if terms[0].Metric != "a" || terms[0].Contribution() != 10 {
		t.Errorf("unexpected first term %+v", terms[0])
	}
	if terms[1].Metric != "b" || terms[1].Contribution() != -7 {
		t.Errorf("unexpected second term %+v", terms[1])
	}
}

func TestWeightedAggregator_With(t *testing.T) {
	base := &WeightedAggregator{Weights: map[string]float64{"a": 1, "b": 1}}
	tuned := base.With(map[string]float64{"b": 4})

	if base.Weights["b"] != 1 {
		t.Errorf("base weights mutated: %v", base.Weights)
	}
	if got := tuned.Calculate(tracking.MetricBundle{"a": 1, "b": 1}); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
}
