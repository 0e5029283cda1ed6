package tracking

// Record is the best observation of one completed generation
type Record struct {
	Fitness  float64 `json:"fitness"`
	TieBreak float64 `json:"tie_break"`
	// Summary aggregates every observation of the generation
	Summary MetricBundle `json:"summary,omitempty"`
}

// Tracker turns a stream of per-individual fitness observations into one
// best-of-generation record per populationSize calls.
// Not safe for concurrent use; give each run its own tracker or Reset between runs.
type Tracker struct {
	populationSize int
	calls          int
	best           Record
	hasBest        bool
	history        []Record
	collector      Collector
}

// NewTracker creates a tracker for the given population size, minimum 1
func NewTracker(populationSize int) *Tracker {
	return &Tracker{
		populationSize: max(populationSize, 1),
		collector:      NewStandardCollector(),
	}
}

// Observe records one evaluation. The first observation of a generation always
// becomes its best; later ones replace it only when strictly greater.
func (t *Tracker) Observe(fitness, tieBreak float64) {
	if !t.hasBest || fitness > t.best.Fitness {
		t.best = Record{Fitness: fitness, TieBreak: tieBreak}
		t.hasBest = true
	}
	t.collector.Collect(MetricBundle{MetricFitness: fitness, MetricTieBreak: tieBreak})
	t.calls++

	if t.calls == t.populationSize {
		t.best.Summary = t.collector.Finalize(MetricBundle{MetricGeneration: float64(len(t.history))})
		t.history = append(t.history, t.best)
		t.calls = 0
		t.best = Record{}
		t.hasBest = false
		t.collector.Reset()
	}
}

// Reset clears history and the partial generation
func (t *Tracker) Reset() {
	t.calls = 0
	t.best = Record{}
	t.hasBest = false
	t.history = nil
	t.collector.Reset()
}

// SetPopulationSize changes the generation size and resets the tracker
func (t *Tracker) SetPopulationSize(n int) {
	t.populationSize = max(n, 1)
	t.Reset()
}

// PopulationSize returns the number of observations per generation
func (t *Tracker) PopulationSize() int { return t.populationSize }

// Generation is the number of completed generations
func (t *Tracker) Generation() int { return len(t.history) }

// Pending is the number of observations in the current partial generation
func (t *Tracker) Pending() int { return t.calls }

// History returns a copy of the completed generation records
func (t *Tracker) History() []Record {
	out := make([]Record, len(t.history))
	for i, r := range t.history {
		out[i] = Record{Fitness: r.Fitness, TieBreak: r.TieBreak, Summary: r.Summary.Clone()}
	}
	return out
}

// Fitnesses returns the best fitness of every completed generation
func (t *Tracker) Fitnesses() []float64 {
	out := make([]float64, len(t.history))
	for i, r := range t.history {
		out[i] = r.Fitness
	}
	return out
}
