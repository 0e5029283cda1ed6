package tracking

// Summary key prefixes emitted by StandardCollector
const (
	PrefixAvg = "avg_"
	PrefixMin = "min_"
	PrefixMax = "max_"
)

// series is the running aggregate of one metric
type series struct {
	n             int
	sum, min, max float64
}

func (s *series) add(v float64) {
	if s.n == 0 {
		s.min, s.max = v, v
	} else {
		s.min = min(s.min, v)
		s.max = max(s.max, v)
	}
	s.sum += v
	s.n++
}

// StandardCollector keeps a running average, minimum and maximum per metric.
// A metric missing from some samples is averaged over the samples that carry it.
type StandardCollector struct {
	samples int
	series  map[string]*series
}

// NewStandardCollector creates a reusable collector
func NewStandardCollector() *StandardCollector {
	return &StandardCollector{series: make(map[string]*series)}
}

func (c *StandardCollector) Collect(metrics MetricBundle) {
	c.samples++
	for key, v := range metrics {
		s, ok := c.series[key]
		if !ok {
			s = &series{}
			c.series[key] = s
		}
		s.add(v)
	}
}

// Finalize emits samples and avg_/min_/max_ per metric; extra wins on key clashes
func (c *StandardCollector) Finalize(extra MetricBundle) MetricBundle {
	out := MetricBundle{MetricSamples: float64(c.samples)}
	for key, s := range c.series {
		out[PrefixAvg+key] = s.sum / float64(s.n)
		out[PrefixMin+key] = s.min
		out[PrefixMax+key] = s.max
	}
	return out.Merge(extra)
}

func (c *StandardCollector) Reset() {
	c.samples = 0
	clear(c.series)
}
