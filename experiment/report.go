package experiment

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"sigs.k8s.io/yaml"

	"github.com/lixenwraith/mazega/genetic/tracking"
)

// Convergence summarises a best-of-generation fitness history
type Convergence struct {
	Generations int     `json:"generations"`
	Best        float64 `json:"best"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	// FirstBestGeneration is the earliest generation reaching Best, -1 for an empty history
	FirstBestGeneration int `json:"first_best_generation"`
}

// Fitnesses returns the best fitness of every record
func Fitnesses(history []tracking.Record) []float64 {
	out := make([]float64, len(history))
	for i, r := range history {
		out[i] = r.Fitness
	}
	return out
}

// Summarize computes the convergence of a tracker history
func Summarize(history []tracking.Record) Convergence {
	if len(history) == 0 {
		return Convergence{FirstBestGeneration: -1}
	}
	fits := Fitnesses(history)

	c := Convergence{
		Generations:         len(fits),
		Best:                floats.Max(fits),
		FirstBestGeneration: floats.MaxIdx(fits),
	}
	if len(fits) == 1 {
		c.Mean = fits[0]
		return c
	}
	c.Mean, c.StdDev = stat.MeanStdDev(fits, nil)
	return c
}

// WriteYAML exports the comparison
func WriteYAML(w io.Writer, c *Comparison) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal comparison: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteText prints a human-readable summary of the comparison
func WriteText(w io.Writer, c *Comparison) error {
	fmt.Fprintf(w, "Maze %dx%d, %s open cells, %s walls, start (%d,%d), exit (%d,%d)\n\n",
		c.Maze.Width, c.Maze.Height,
		humanize.Comma(int64(c.Maze.Blanks)), humanize.Comma(int64(c.Maze.Walls)),
		c.Maze.Start.X, c.Maze.Start.Y, c.Maze.Exit.X, c.Maze.Exit.Y)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(c.Solvers) > 0 {
		fmt.Fprintln(tw, "SEARCH\tPATH\tVISITED\tTIME")
		for _, s := range c.Solvers {
			path := "unreachable"
			if s.Reachable {
				path = humanize.Comma(int64(s.PathLength))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Algorithm, path, humanize.Comma(int64(s.Visited)), roundDuration(s.Duration))
		}
		fmt.Fprintln(tw)
	}

	if len(c.Strategies) > 0 {
		fmt.Fprintln(tw, "STRATEGY\tFITNESS\tDISTANCE\tEXIT\tBEST AT\tEVALUATIONS\tTIME")
		for _, s := range c.Strategies {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%d\t%s\t%s\n",
				s.Strategy,
				humanize.CommafWithDigits(s.Fitness, 2),
				s.Score.Distance,
				s.Score.ExitFound,
				s.Summary.FirstBestGeneration,
				humanize.Comma(int64(s.Evaluations)),
				roundDuration(s.Duration),
			)
		}
	}
	return tw.Flush()
}

// WriteReport prints one strategy run with its overlay
func WriteReport(w io.Writer, r StrategyReport) error {
	fmt.Fprintf(w, "%s (%s encoding), run %s\n", r.Strategy, r.Encoding, r.ID)
	fmt.Fprintf(w, "fitness %s, distance %d, path %d, collisions %d, repetitions %d, exit found %t\n",
		humanize.CommafWithDigits(r.Fitness, 2), r.Score.Distance, r.Score.PathLength,
		r.Score.Collisions, r.Score.Repetitions, r.Score.ExitFound)
	fmt.Fprintf(w, "%s evaluations in %s, best first reached in generation %d\n",
		humanize.Comma(int64(r.Evaluations)), roundDuration(r.Duration), r.Summary.FirstBestGeneration)
	for _, t := range r.Terms {
		fmt.Fprintf(w, "  %-12s %s x %s = %s\n", t.Metric, humanize.Ftoa(t.Weight), humanize.Ftoa(t.Value),
			humanize.CommafWithDigits(t.Contribution(), 2))
	}
	if r.Overlay == nil {
		return nil
	}
	return r.Overlay.Render(w)
}

func roundDuration(d time.Duration) time.Duration {
	if d > time.Second {
		return d.Round(time.Millisecond)
	}
	return d.Round(time.Microsecond)
}
