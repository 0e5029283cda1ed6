package solve

import (
	"github.com/lixenwraith/mazega/genetic/fitness"
	"github.com/lixenwraith/mazega/strategy"
)

// MazeRequest carries a maze in the three-column text format
type MazeRequest struct {
	Layout string `json:"layout" binding:"required"`
	Width  int    `json:"width" binding:"min=0"`  // 0 infers
	Height int    `json:"height" binding:"min=0"` // 0 infers
}

// SolveRequest asks for one deterministic search
type SolveRequest struct {
	MazeRequest
	Algorithm string `json:"algorithm"` // bfs when empty
}

// SolveResponse reports a search
type SolveResponse struct {
	Algorithm  string   `json:"algorithm"`
	PathLength int      `json:"path_length"`
	Visited    int      `json:"visited"`
	Reachable  bool     `json:"reachable"`
	Render     []string `json:"render"`
}

// EvolveRequest asks for one GA run; zero numbers keep the server defaults
type EvolveRequest struct {
	MazeRequest
	Strategy    string `json:"strategy" binding:"required"`
	Generations int    `json:"generations" binding:"min=0"`
	Population  int    `json:"population" binding:"min=0"`
	Steps       int    `json:"steps" binding:"min=0"`
	Seed        uint64 `json:"seed"`
}

// EvolveResponse reports the best chromosome of a GA run
type EvolveResponse struct {
	ID          string    `json:"id"`
	Strategy    string    `json:"strategy"`
	Chromosome  string    `json:"chromosome"`
	Fitness     float64   `json:"fitness"`
	Distance    int       `json:"distance"`
	ExitFound   bool      `json:"exit_found"`
	Evaluations int       `json:"evaluations"`
	History     []float64 `json:"history"`
	Render      []string  `json:"render"`
}

// ReplayRequest scores a known chromosome, as returned by evolve
type ReplayRequest struct {
	MazeRequest
	Strategy   string `json:"strategy" binding:"required"`
	Chromosome string `json:"chromosome" binding:"required"`
	Steps      int    `json:"steps" binding:"min=0"`
}

// ReplayResponse breaks the chromosome's fitness down per weighted metric
type ReplayResponse struct {
	Strategy string         `json:"strategy"`
	Fitness  float64        `json:"fitness"`
	Score    strategy.Score `json:"score"`
	Terms    []fitness.Term `json:"terms"`
	Render   []string       `json:"render"`
}

// StrategiesResponse lists the registered strategies and search algorithms
type StrategiesResponse struct {
	Strategies []string `json:"strategies"`
	Algorithms []string `json:"algorithms"`
}
