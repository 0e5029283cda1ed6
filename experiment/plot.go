package experiment

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ErrNothingToPlot is returned when no report carries history
var ErrNothingToPlot = errors.New("no convergence history to plot")

// PlotConvergence renders an HTML line chart of best-of-generation fitness,
// one series per strategy report.
func PlotConvergence(w io.Writer, title string, reports []StrategyReport) error {
	longest := 0
	for _, r := range reports {
		longest = max(longest, len(r.History))
	}
	if longest == 0 {
		return ErrNothingToPlot
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "best fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]string, longest)
	for i := range generations {
		generations[i] = strconv.Itoa(i)
	}
	line.SetXAxis(generations)

	for _, r := range reports {
		if len(r.History) == 0 {
			continue
		}
		data := make([]opts.LineData, len(r.History))
		for i, rec := range r.History {
			data[i] = opts.LineData{Value: rec.Fitness}
		}
		line.AddSeries(fmt.Sprintf("%s (best %.2f)", r.Strategy, r.Summary.Best), data)
	}
	line.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	return line.Render(w)
}
