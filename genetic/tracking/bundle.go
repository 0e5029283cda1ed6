package tracking

import "maps"

// MetricBundle holds named measurements of one evaluation or one generation
type MetricBundle map[string]float64

// Metric keys shared by strategies, the tracker and reports
const (
	MetricFitness     = "fitness"
	MetricTieBreak    = "tie_break"
	MetricDistance    = "distance"
	MetricPathLength  = "path_length"
	MetricCollisions  = "collisions"
	MetricRepetitions = "repetitions"
	MetricExcess      = "excess"
	MetricExitFound   = "exit_found"
	MetricSamples     = "samples"
	MetricGeneration  = "generation"
)

// Get returns the value of key, or def when absent
func (b MetricBundle) Get(key string, def float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return def
}

// Merge returns a new bundle holding b overlaid with other
func (b MetricBundle) Merge(other MetricBundle) MetricBundle {
	out := make(MetricBundle, len(b)+len(other))
	maps.Copy(out, b)
	maps.Copy(out, other)
	return out
}

// Clone copies the bundle; nil stays nil
func (b MetricBundle) Clone() MetricBundle {
	return maps.Clone(b)
}

// Collector accumulates metric samples over one generation
type Collector interface {
	// Collect records one sample
	Collect(metrics MetricBundle)

	// Finalize returns the aggregate merged with extra; state is kept until Reset
	Finalize(extra MetricBundle) MetricBundle

	// Reset clears accumulated state for reuse
	Reset()
}
