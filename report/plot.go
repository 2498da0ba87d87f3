package report

import (
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/vertgenlab/gonomics/numbers"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"image/color"
	"math"
)

// TextPlot returns a terminal line graph of hits per barcode in name order.
func TextPlot(c Counts) string {
	if len(c.Hits) == 0 {
		return ""
	}
	data := c.Hits
	if len(data) == 1 { // asciigraph needs two points to draw a line
		data = []float64{data[0], data[0]}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("hash reads per barcode (%d barcodes, %s ... %s)", len(c.Names), c.Names[0], c.Names[len(c.Names)-1])))
}

// BarPlot saves a bar chart of hits per barcode to filename. The image format
// is taken from the file extension (e.g. .png, .pdf, .svg).
func BarPlot(c Counts, filename string) error {
	if len(c.Hits) == 0 {
		return fmt.Errorf("no barcodes to plot")
	}
	p := plot.New()
	p.Title.Text = "Hash reads per barcode"
	p.Y.Label.Text = "Reads"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(plotter.Values(c.Hits), vg.Points(8))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 70, G: 110, B: 170, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(c.Names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = -0.5

	width := vg.Points(float64(numbers.Max(300, 12*len(c.Names)+100)))
	return p.Save(width, 10*vg.Centimeter, filename)
}
