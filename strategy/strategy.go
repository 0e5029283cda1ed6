package strategy

import (
	"github.com/lixenwraith/mazega/genetic"
	"github.com/lixenwraith/mazega/genetic/fitness"
	"github.com/lixenwraith/mazega/genetic/tracking"
	"github.com/lixenwraith/mazega/maze"
)

// CrossoverFunc is the recombination callback handed to the GA engine
type CrossoverFunc = genetic.CrossoverFunc[Chromosome]

// Strategy is one chromosome semantics over a fixed grid.
// Implementations hold no per-call state and are safe for concurrent use.
type Strategy interface {
	Name() string
	Encoding() Encoding
	// Template returns a zero chromosome of the length the strategy expects
	Template() Chromosome
	Score(c Chromosome) Score
	Fitness(s Score) float64
	// Aggregator exposes the weights behind Fitness
	Aggregator() *fitness.WeightedAggregator
	// Reconstruct decodes c again and marks the realised walk, or the selected
	// set, OnPath in a fresh overlay; it does not score
	Reconstruct(c Chromosome) *maze.Overlay
	Crossover() CrossoverFunc
}

// Tracked wraps a strategy into the fitness callback of the GA engine. Every
// call is reported to t with the score's distance as tie-break; t may be nil.
func Tracked(s Strategy, t *tracking.Tracker) genetic.EvaluatorFunc[Chromosome, float64] {
	return func(c Chromosome) float64 {
		score := s.Score(c)
		f := s.Fitness(score)
		if t != nil {
			t.Observe(f, float64(score.Distance))
		}
		return f
	}
}

// base carries what every strategy shares
type base struct {
	grid *maze.Grid
	name string
	agg  *fitness.WeightedAggregator
}

func (b *base) Name() string { return b.name }

func (b *base) Fitness(s Score) float64 { return b.agg.Calculate(s.Metrics()) }

func (b *base) Aggregator() *fitness.WeightedAggregator { return b.agg }

func newBase(g *maze.Grid, name string, weights, overrides map[string]float64) base {
	agg := &fitness.WeightedAggregator{Weights: weights}
	if len(overrides) > 0 {
		agg = agg.With(overrides)
	}
	return base{grid: g, name: name, agg: agg}
}
