package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/spektr-org/attrition/engine"
)

const defaultColor = "#1F77B4"

// stackedBar draws one bar per category, series stacked bottom to top.
func stackedBar(config *engine.ChartConfig) (*plot.Plot, error) {
	p := newPlot(config)
	width := barWidth(config.Width, len(config.Categories))

	legendTitle(p, config.LegendTitle)

	var below *plotter.BarChart
	for i, s := range config.Series {
		if len(s.Data) != len(config.Categories) {
			return nil, fmt.Errorf("series %q has %d values for %d categories", s.Name, len(s.Data), len(config.Categories))
		}

		bars, err := plotter.NewBarChart(plotter.Values(s.Data), width)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}

		hex := s.Color
		if hex == "" {
			hex = seriesColor(config, i, defaultColor)
		}
		c, err := parseColor(hex, 1)
		if err != nil {
			return nil, err
		}
		bars.Color = c
		bars.LineStyle.Width = 0

		if below != nil {
			bars.StackOn(below)
		}
		below = bars

		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}

	p.Legend.Top = true
	p.Y.Min, p.Y.Max = 0, 1
	p.NominalX(config.Categories...)

	if config.RotateLabels {
		p.X.Tick.Label.Rotation = 35 * math.Pi / 180
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	return p, nil
}

// boxPlot draws one box per distribution, outliers included.
func boxPlot(config *engine.ChartConfig) (*plot.Plot, error) {
	p := newPlot(config)
	width := vg.Length(config.Width) * vg.Inch / vg.Length(max(len(config.Distributions), 1)) * 0.3

	names := make([]string, len(config.Distributions))
	for i, d := range config.Distributions {
		if len(d.Values) == 0 {
			return nil, fmt.Errorf("box %q: %w", d.Name, engine.ErrEmptyGroup)
		}
		box, err := plotter.NewBoxPlot(width, float64(i), plotter.Values(d.Values))
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", d.Name, err)
		}
		p.Add(box)
		names[i] = d.Name
	}

	if len(config.Categories) == len(names) {
		names = config.Categories
	}
	p.NominalX(names...)
	return p, nil
}

// histogram overlays one translucent histogram per distribution.
func histogram(config *engine.ChartConfig) (*plot.Plot, error) {
	p := newPlot(config)
	legendTitle(p, config.LegendTitle)

	for i, d := range config.Distributions {
		if len(d.Values) == 0 {
			return nil, fmt.Errorf("histogram %q: %w", d.Name, engine.ErrEmptyGroup)
		}
		h, err := plotter.NewHist(plotter.Values(d.Values), config.Bins)
		if err != nil {
			return nil, fmt.Errorf("histogram %q: %w", d.Name, err)
		}

		c, err := parseColor(seriesColor(config, i, defaultColor), config.Alpha)
		if err != nil {
			return nil, err
		}
		h.FillColor = c
		h.LineStyle.Width = 0

		p.Add(h)
		p.Legend.Add(d.Name, h)
	}

	p.Legend.Top = true
	return p, nil
}
