package genetic

import (
	"math/rand/v2"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestTournamentSelector_PressureFavoursBest(t *testing.T) {
	pool := &Pool[bits, float64]{Members: []Candidate[bits, float64]{
		{Data: bits{0}, Score: 1},
		{Data: bits{1}, Score: 9},
		{Data: bits{0}, Score: 3},
	}}
	sel := &TournamentSelector[bits, float64]{TournamentSize: 3}

	wins := make(map[float64]int)
	for _, c := range sel.Select(pool, 1000, testRNG()) {
		wins[c.Score]++
	}

	// Expected shares: 19/27 for the best, 1/27 for the worst
	if wins[9] < 5*wins[1] {
		t.Errorf("expected best to dominate selection, got %v", wins)
	}
	if wins[9]+wins[3]+wins[1] != 1000 {
		t.Errorf("expected 1000 selections, got %v", wins)
	}
}

func TestTournamentSelector_Size(t *testing.T) {
	pool := &Pool[bits, float64]{Members: []Candidate[bits, float64]{{Score: 1}, {Score: 2}}}
	sel := &TournamentSelector[bits, float64]{TournamentSize: 0}

	if got := len(sel.Select(pool, 5, testRNG())); got != 5 {
		t.Errorf("expected 5 selected, got %d", got)
	}
	if got := sel.Select(&Pool[bits, float64]{}, 5, testRNG()); got != nil {
		t.Errorf("expected nil for empty pool, got %v", got)
	}
}

func TestGeneFlipPerturbator_FlipsExactlyOne(t *testing.T) {
	p := &GeneFlipPerturbator[bits, uint8]{Alphabet: []uint8{0, 1}}
	rng := testRNG()

	for trial := 0; trial < 100; trial++ {
		s := make(bits, 16)
		p.Perturb(&s, rng)

		changed := 0
		for _, g := range s {
			if g != 0 {
				changed++
			}
		}
		if changed != 1 {
			t.Fatalf("trial %d: expected 1 changed gene, got %d", trial, changed)
		}
	}
}

func TestFuncCombiner_SingleParent(t *testing.T) {
	fc := &FuncCombiner[bits, float64]{}
	out, err := fc.Combine([]Candidate[bits, float64]{{Data: bits{1, 0}}}, testRNG())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(out) != 1 || len(out[0]) != 2 {
		t.Errorf("expected the parent back, got %v", out)
	}
}

func TestRandomGenes(t *testing.T) {
	gen := RandomGenes[bits](50, []uint8{0, 1})
	s := gen(testRNG())
	if len(s) != 50 {
		t.Fatalf("expected length 50, got %d", len(s))
	}
	for i, g := range s {
		if g > 1 {
			t.Errorf("gene %d out of alphabet: %d", i, g)
		}
	}
}

func TestDiversity(t *testing.T) {
	same := []Candidate[bits, float64]{{Data: bits{1, 0}}, {Data: bits{1, 0}}}
	if d := diversity[bits, uint8, float64](same); d != 0 {
		t.Errorf("expected 0 for identical pool, got %v", d)
	}

	mixed := []Candidate[bits, float64]{{Data: bits{1, 0}}, {Data: bits{0, 0}}}
	// First position split 1/1, second uniform
	if d := diversity[bits, uint8, float64](mixed); d != 0.25 {
		t.Errorf("expected 0.25, got %v", d)
	}
}

func TestRankByScore_StableOnTies(t *testing.T) {
	members := []Candidate[bits, float64]{
		{Data: bits{0}, Score: 1},
		{Data: bits{1}, Score: 5},
		{Data: bits{2}, Score: 5},
	}
	ranked := rankByScore(members)
	if ranked[0].Data[0] != 1 || ranked[1].Data[0] != 2 || ranked[2].Data[0] != 0 {
		t.Errorf("unexpected order %v", ranked)
	}
}
