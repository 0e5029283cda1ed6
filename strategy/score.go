package strategy

import "github.com/lixenwraith/mazega/genetic/tracking"

// Score is the raw outcome of decoding one chromosome.
// Fields a strategy does not measure stay zero.
type Score struct {
	// Distance is the heuristic (squared Euclidean distance to the exit) of the
	// final cell, or the minimum over the reached set for occupancy
	Distance    int  `json:"distance"`
	PathLength  int  `json:"path_length"`
	Collisions  int  `json:"collisions"`
	Repetitions int  `json:"repetitions"`
	Excess      int  `json:"excess"`
	ExitFound   bool `json:"exit_found"`
}

// Metrics exposes the score to fitness aggregators
func (s Score) Metrics() tracking.MetricBundle {
	exit := 0.0
	if s.ExitFound {
		exit = 1
	}
	return tracking.MetricBundle{
		tracking.MetricDistance:    float64(s.Distance),
		tracking.MetricPathLength:  float64(s.PathLength),
		tracking.MetricCollisions:  float64(s.Collisions),
		tracking.MetricRepetitions: float64(s.Repetitions),
		tracking.MetricExcess:      float64(s.Excess),
		tracking.MetricExitFound:   exit,
	}
}
