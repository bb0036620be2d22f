// Package render draws engine.ChartConfigs with gonum/plot and writes them
// as PNG files.
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/spektr-org/attrition/engine"
)

// Save draws config and writes it to path as a PNG at dpi, replacing any
// existing file. The file is closed before Save returns.
func Save(config *engine.ChartConfig, path string, dpi float64) error {
	p, err := Plot(config)
	if err != nil {
		return err
	}
	return savePNG(p, path, config.Width, config.Height, dpi)
}

// Plot builds the gonum plot for config without writing it anywhere.
func Plot(config *engine.ChartConfig) (*plot.Plot, error) {
	switch config.ChartType {
	case engine.ChartStackedBar:
		return stackedBar(config)
	case engine.ChartBox:
		return boxPlot(config)
	case engine.ChartHistogram:
		return histogram(config)
	default:
		return nil, fmt.Errorf("unsupported chart type %q", config.ChartType)
	}
}

func newPlot(config *engine.ChartConfig) *plot.Plot {
	p := plot.New()
	p.Title.Text = config.Title
	p.X.Label.Text = config.XAxis
	p.Y.Label.Text = config.YAxis
	return p
}

func savePNG(p *plot.Plot, path string, width, height, dpi float64) (err error) {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch),
		vgimg.UseDPI(int(math.Round(dpi))),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// barWidth spreads n bars over roughly half of the plotting width.
func barWidth(figureWidth float64, n int) vg.Length {
	return vg.Length(figureWidth) * vg.Inch * 0.75 / vg.Length(max(n, 1)) * 0.5
}

// legendTitle adds a thumbnail-less first entry that reads as a title.
func legendTitle(p *plot.Plot, title string) {
	if title != "" {
		p.Legend.Add(title)
	}
}

// parseColor reads "#RRGGBB".
func parseColor(hex string, alpha float64) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	if alpha > 0 && alpha < 1 {
		c.A = uint8(math.Round(alpha * 0xff))
	}
	return c, nil
}

func seriesColor(config *engine.ChartConfig, i int, fallback string) string {
	if i < len(config.Colors) && config.Colors[i] != "" {
		return config.Colors[i]
	}
	return fallback
}
