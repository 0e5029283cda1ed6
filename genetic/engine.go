package genetic

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"k8s.io/klog/v2"

	"github.com/lixenwraith/mazega/parameter"
)

// ErrNoCandidates is returned by Best before the first generation is evaluated
var ErrNoCandidates = errors.New("no candidates available")

// Engine runs a generational GA: an initial random pool, then elitism,
// selection, optional crossover and perturbation for each following pool.
// An Engine is single use and not safe for concurrent calls.
type Engine[S ~[]G, G comparable, F Numeric] struct {
	score    EvaluatorFunc[S, F]
	spawn    InitializerFunc[S]
	pick     Selector[S, F]
	mate     Combiner[S, F]
	mutate   Perturbator[S]
	settings EngineConfig
	random   *rand.Rand

	pool    *Pool[S, F]
	history []PoolStats[F]

	best        Candidate[S, F]
	hasBest     bool
	evaluations int
}

// EngineConfig sizes a run and sets its operator rates
type EngineConfig struct {
	// PoolSize is the fixed member count of every generation
	PoolSize int `json:"pool_size"`
	// Generations is the number of evaluated pools, the random first one included
	Generations int `json:"generations"`
	// EliteCount members are copied unchanged into the next pool
	EliteCount int `json:"elite_count"`
	// PerturbationRate is the per-child chance of mutation (0-1)
	PerturbationRate float64 `json:"perturbation_rate"`
	// CrossoverRate is the per-pair chance of recombination (0-1)
	CrossoverRate float64 `json:"crossover_rate"`
	// TournamentSize is used by the default selector
	TournamentSize int `json:"tournament_size"`
	// Seed fixes the random stream; 0 draws one
	Seed uint64 `json:"seed"`
}

func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:         parameter.GAPoolSize,
		Generations:      parameter.GAGenerations,
		EliteCount:       parameter.GAEliteCount,
		PerturbationRate: parameter.GAPerturbationRate,
		CrossoverRate:    parameter.GACrossoverRate,
		TournamentSize:   parameter.GATournamentSize,
	}
}

// Validate rejects configurations the engine cannot run
func (c EngineConfig) Validate() error {
	switch {
	case c.PoolSize < 2:
		return fmt.Errorf("pool size %d: need at least 2", c.PoolSize)
	case c.Generations < 1:
		return fmt.Errorf("generations %d: need at least 1", c.Generations)
	case c.EliteCount < 0 || c.EliteCount >= c.PoolSize:
		return fmt.Errorf("elite count %d: must be in [0,%d)", c.EliteCount, c.PoolSize)
	case c.PerturbationRate < 0 || c.PerturbationRate > 1:
		return fmt.Errorf("perturbation rate %v: must be in [0,1]", c.PerturbationRate)
	case c.CrossoverRate < 0 || c.CrossoverRate > 1:
		return fmt.Errorf("crossover rate %v: must be in [0,1]", c.CrossoverRate)
	}
	return nil
}

func seededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// NewEngine wires the operators into an engine.
// A nil selector defaults to tournament selection with config.TournamentSize.
// A nil perturbator disables mutation.
func NewEngine[S ~[]G, G comparable, F Numeric](
	evaluator EvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) *Engine[S, G, F] {
	if selector == nil {
		selector = &TournamentSelector[S, F]{TournamentSize: config.TournamentSize}
	}
	return &Engine[S, G, F]{
		score:    evaluator,
		spawn:    initializer,
		pick:     selector,
		mate:     combiner,
		mutate:   perturbator,
		settings: config,
		random:   seededRand(config.Seed),
		history:  make([]PoolStats[F], 0, max(config.Generations, 0)),
	}
}

// Run evaluates config.Generations pools and returns the last one.
// Cancellation is checked between generations.
func (e *Engine[S, G, F]) Run(ctx context.Context) (*Pool[S, F], error) {
	if err := e.settings.Validate(); err != nil {
		return nil, err
	}
	logger := klog.FromContext(ctx)

	first := make([]S, e.settings.PoolSize)
	for i := range first {
		first[i] = e.spawn(e.random)
	}
	e.install(first, 0, logger)

	for e.pool.Generation+1 < e.settings.Generations {
		if err := ctx.Err(); err != nil {
			return e.pool, err
		}
		next, err := e.breed()
		if err != nil {
			return e.pool, err
		}
		e.install(next, e.pool.Generation+1, logger)
	}

	logger.V(2).Info("evolution finished", "generations", len(e.history), "evaluations", e.evaluations, "best", e.best.Score)
	return e.pool, nil
}

// install evaluates every solution once and makes the result the current pool
func (e *Engine[S, G, F]) install(solutions []S, generation int, logger klog.Logger) {
	members := make([]Candidate[S, F], len(solutions))
	for i, s := range solutions {
		members[i] = e.evaluate(s, generation)
	}
	e.pool = &Pool[S, F]{
		Members:    members,
		Generation: generation,
		Stats:      summarize[S, G](members, generation),
	}
	e.history = append(e.history, e.pool.Stats)

	st := e.pool.Stats
	logger.V(4).Info("generation evaluated",
		"generation", st.Generation,
		"best", st.BestScore,
		"average", st.AverageScore,
		"diversity", st.Diversity,
	)
}

// evaluate scores one solution and tracks the best seen; ties keep the earlier
func (e *Engine[S, G, F]) evaluate(solution S, generation int) Candidate[S, F] {
	c := Candidate[S, F]{Data: solution, Score: e.score(solution), Generation: generation}
	e.evaluations++
	if !e.hasBest || c.Score > e.best.Score {
		e.best = Candidate[S, F]{Data: slices.Clone(solution), Score: c.Score, Generation: generation}
		e.hasBest = true
	}
	return c
}

// breed produces the unevaluated solutions of the next pool
func (e *Engine[S, G, F]) breed() ([]S, error) {
	size := e.settings.PoolSize
	next := make([]S, 0, size)

	if k := e.settings.EliteCount; k > 0 {
		ranked := rankByScore(e.pool.Members)
		for _, c := range ranked[:min(k, len(ranked))] {
			next = append(next, slices.Clone(c.Data))
		}
	}

	for len(next) < size {
		parents := e.pick.Select(e.pool, 2, e.random)

		var children []S
		if e.random.Float64() < e.settings.CrossoverRate {
			var err error
			if children, err = e.mate.Combine(parents, e.random); err != nil {
				return nil, err
			}
		} else {
			children = make([]S, len(parents))
			for i, p := range parents {
				children[i] = slices.Clone(p.Data)
			}
		}

		for i := 0; i < len(children) && len(next) < size; i++ {
			if e.mutate != nil && e.random.Float64() < e.settings.PerturbationRate {
				e.mutate.Perturb(&children[i], e.random)
			}
			next = append(next, children[i])
		}
	}
	return next, nil
}

func summarize[S ~[]G, G comparable, F Numeric](members []Candidate[S, F], generation int) PoolStats[F] {
	st := PoolStats[F]{Generation: generation}
	if len(members) == 0 {
		return st
	}

	st.BestScore, st.WorstScore = members[0].Score, members[0].Score
	var sum float64
	for _, m := range members {
		st.BestScore = max(st.BestScore, m.Score)
		st.WorstScore = min(st.WorstScore, m.Score)
		sum += float64(m.Score)
	}
	st.AverageScore = F(sum / float64(len(members)))
	st.Diversity = diversity[S, G, F](members)
	return st
}

// History returns the statistics of every evaluated pool
func (e *Engine[S, G, F]) History() []PoolStats[F] {
	return slices.Clone(e.history)
}

// Evaluations is the number of evaluator calls made so far
func (e *Engine[S, G, F]) Evaluations() int { return e.evaluations }

// Best returns the best candidate evaluated so far, across all generations
func (e *Engine[S, G, F]) Best() (Candidate[S, F], error) {
	if !e.hasBest {
		return Candidate[S, F]{}, ErrNoCandidates
	}
	b := e.best
	b.Data = slices.Clone(b.Data)
	return b, nil
}
