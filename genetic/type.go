package genetic

import (
	"math/rand/v2"
)

// --- Constraints ---

// Solution is any chromosome representation
type Solution any

// Numeric is the set of fitness types; higher is better
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Population ---

// Candidate is one scored chromosome
type Candidate[S Solution, F Numeric] struct {
	Data       S
	Score      F
	Generation int // Generation of the evaluation that produced Score
}

// Pool is one evaluated generation
type Pool[S Solution, F Numeric] struct {
	Members    []Candidate[S, F]
	Generation int
	Stats      PoolStats[F]
}

// PoolStats summarises one generation for history and logging
type PoolStats[F Numeric] struct {
	Generation   int     `json:"generation"`
	BestScore    F       `json:"best"`
	WorstScore   F       `json:"worst"`
	AverageScore F       `json:"average"`
	Diversity    float64 `json:"diversity"` // Mean per-gene minority share (0 = uniform pool)
}

// --- Callbacks ---

// EvaluatorFunc scores one chromosome. The engine calls it sequentially.
type EvaluatorFunc[S Solution, F Numeric] func(solution S) F

// InitializerFunc draws one random chromosome
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// CrossoverFunc recombines two equal-length parents into two children
type CrossoverFunc[S Solution] func(rng *rand.Rand, p1, p2 S) (S, S, error)

// --- Operators ---

// Selector picks size parents from a pool, repeats allowed
type Selector[S Solution, F Numeric] interface {
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner turns selected parents into offspring
type Combiner[S Solution, F Numeric] interface {
	Combine(parents []Candidate[S, F], rng *rand.Rand) ([]S, error)
}

// Perturbator mutates a chromosome in place
type Perturbator[S Solution] interface {
	Perturb(solution *S, rng *rand.Rand)
}
