package strategy

import (
	"math/rand/v2"
	"slices"
)

// CrossOccupancy is single-point crossover with the cut drawn uniformly from
// [1, len). Parents too short to cut come back as copies.
func CrossOccupancy(rng *rand.Rand, p1, p2 Chromosome) (Chromosome, Chromosome, error) {
	if len(p1) != len(p2) {
		return nil, nil, &LengthMismatchError{Left: len(p1), Right: len(p2)}
	}
	if len(p1) < 2 {
		return slices.Clone(p1), slices.Clone(p2), nil
	}
	cut := 1 + rng.IntN(len(p1)-1)
	c1, c2 := splice(p1, p2, cut)
	return c1, c2, nil
}

// CrossSteps is single-point crossover that never splits a gene pair: the cut
// is drawn from [2, len) and rounded down to even. Parents too short to cut
// come back as copies.
func CrossSteps(rng *rand.Rand, p1, p2 Chromosome) (Chromosome, Chromosome, error) {
	if len(p1) != len(p2) {
		return nil, nil, &LengthMismatchError{Left: len(p1), Right: len(p2)}
	}
	if len(p1) < 3 {
		return slices.Clone(p1), slices.Clone(p2), nil
	}
	cut := 2 + rng.IntN(len(p1)-2)
	cut -= cut % 2
	c1, c2 := splice(p1, p2, cut)
	return c1, c2, nil
}

func splice(p1, p2 Chromosome, cut int) (Chromosome, Chromosome) {
	c1 := make(Chromosome, len(p1))
	c2 := make(Chromosome, len(p2))
	copy(c1, p1[:cut])
	copy(c1[cut:], p2[cut:])
	copy(c2, p2[:cut])
	copy(c2[cut:], p1[cut:])
	return c1, c2
}
