package typer

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotDepthProfile renders the per-marker depth of one sample as a line
// plot saved to pfx_sample.png. Markers are plotted in reference vcf order.
func plotDepthProfile(depths []float64, sample, pfx string) error {
	pts := make(plotter.XYs, len(depths))
	for i := range depths {
		pts[i].X = float64(i + 1)
		pts[i].Y = depths[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Add(line)
	p.Title.Text = sample
	p.X.Label.Text = "Marker"
	p.Y.Label.Text = "Depth"
	p.Y.Min = 0
	if len(depths) > 0 {
		p.Y.Max = slices.Max(depths) + 1
	}
	return p.Save(20*vg.Centimeter, 8*vg.Centimeter, pfx+"_"+sample+".png")
}
