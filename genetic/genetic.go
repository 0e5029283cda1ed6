// Package genetic is a small generic genetic algorithm: tournament selection,
// pluggable recombination, gene-flip perturbation, elitism and a fixed
// generation budget. Evaluation is sequential and every pool member is scored
// exactly once per generation, so fitness callbacks may keep per-call state.
package genetic

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// TournamentSelector draws TournamentSize members with replacement per pick
// and keeps the highest scoring one. Sizes below 1 mean 2; sizes above the
// pool are clamped.
type TournamentSelector[S Solution, F Numeric] struct {
	TournamentSize int
}

func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	n := len(pool.Members)
	if n == 0 || size <= 0 {
		return nil
	}

	rounds := min(ts.TournamentSize, n)
	if rounds < 1 {
		rounds = 2
	}

	picks := make([]Candidate[S, F], size)
	for k := range picks {
		// Ties keep the earlier draw
		champ := pool.Members[rng.IntN(n)]
		for range rounds - 1 {
			if c := pool.Members[rng.IntN(n)]; c.Score > champ.Score {
				champ = c
			}
		}
		picks[k] = champ
	}
	return picks
}

// FuncCombiner adapts a two-parent CrossoverFunc to the Combiner interface
type FuncCombiner[S Solution, F Numeric] struct {
	Crossover CrossoverFunc[S]
}

// Combine crosses the first two parents; a single parent passes through
func (fc *FuncCombiner[S, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) ([]S, error) {
	switch len(parents) {
	case 0:
		return nil, nil
	case 1:
		return []S{parents[0].Data}, nil
	}

	c1, c2, err := fc.Crossover(rng, parents[0].Data, parents[1].Data)
	if err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	return []S{c1, c2}, nil
}

// GeneFlipPerturbator replaces one random gene with a different value from Alphabet
type GeneFlipPerturbator[S ~[]G, G comparable] struct {
	Alphabet []G
}

// Perturb implements single-gene mutation
func (gp *GeneFlipPerturbator[S, G]) Perturb(solution *S, rng *rand.Rand) {
	if solution == nil || len(*solution) == 0 || len(gp.Alphabet) < 2 {
		return
	}

	i := rng.IntN(len(*solution))
	cur := (*solution)[i]
	for {
		v := gp.Alphabet[rng.IntN(len(gp.Alphabet))]
		if v != cur {
			(*solution)[i] = v
			return
		}
	}
}

// RandomGenes returns an initializer drawing length genes uniformly from alphabet
func RandomGenes[S ~[]G, G any](length int, alphabet []G) InitializerFunc[S] {
	return func(rng *rand.Rand) S {
		s := make(S, length)
		for i := range s {
			s[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return s
	}
}

// diversity is the mean, over gene positions, of the share of members not
// holding that position's most common value
func diversity[S ~[]G, G comparable, F Numeric](members []Candidate[S, F]) float64 {
	if len(members) < 2 {
		return 0
	}
	length := len(members[0].Data)
	for _, m := range members[1:] {
		length = min(length, len(m.Data))
	}
	if length == 0 {
		return 0
	}

	counts := make(map[G]int)
	var total float64
	for i := 0; i < length; i++ {
		clear(counts)
		top := 0
		for _, m := range members {
			counts[m.Data[i]]++
			top = max(top, counts[m.Data[i]])
		}
		total += 1 - float64(top)/float64(len(members))
	}
	return total / float64(length)
}

// rankByScore returns members sorted best first, stable on ties
func rankByScore[S Solution, F Numeric](members []Candidate[S, F]) []Candidate[S, F] {
	ranked := slices.Clone(members)
	slices.SortStableFunc(ranked, func(a, b Candidate[S, F]) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return ranked
}
