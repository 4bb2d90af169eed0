package report

import (
	"fmt"

	"github.com/fulongli/dabkit/pkg/dab"
	"github.com/fulongli/dabkit/pkg/sst"
	"github.com/fulongli/dabkit/pkg/types"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotEfficiency renders efficiency and total loss versus operating power
// as a PNG figure. Points the model rejected are skipped.
func PlotEfficiency(path string, points []sst.SweepPoint) error {
	effs := make(plotter.XYs, 0, len(points))
	losses := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if pt.Err != nil {
			continue
		}
		effs = append(effs, plotter.XY{X: pt.Power, Y: pt.Efficiency.Efficiency * 100})
		losses = append(losses, plotter.XY{X: pt.Power, Y: pt.Losses.Total})
	}
	if len(effs) == 0 {
		return fmt.Errorf("report: no plottable sweep points")
	}

	p := plot.New()
	p.Title.Text = "Efficiency vs. Output Power"
	p.X.Label.Text = "Power [W]"
	p.Y.Label.Text = "Efficiency [%]"
	line, err := plotter.NewLine(effs)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	if err := p.Save(7*vg.Inch, 4*vg.Inch, path); err != nil {
		return err
	}

	lp := plot.New()
	lp.Title.Text = "Total Losses vs. Output Power"
	lp.X.Label.Text = "Power [W]"
	lp.Y.Label.Text = "Losses [W]"
	lline, err := plotter.NewLine(losses)
	if err != nil {
		return err
	}
	lp.Add(lline, plotter.NewGrid())
	return lp.Save(7*vg.Inch, 4*vg.Inch, lossPath(path))
}

// PlotCandidates renders inductor loss versus inductance across the full
// candidate set of a selection.
func PlotCandidates(path string, sel dab.Selection) error {
	pts := make(plotter.XYs, 0, len(sel.Candidates))
	for _, c := range sel.Candidates {
		if len(c.Violations) > 0 && c.Stats == (dab.Stats{}) {
			continue // target power unreachable at this inductance
		}
		pts = append(pts, plotter.XY{X: types.Henries(c.Inductance).Micro(), Y: c.TotalLoss()})
	}
	if len(pts) == 0 {
		return fmt.Errorf("report: no plottable candidates")
	}

	p := plot.New()
	p.Title.Text = "Inductor Loss vs. Inductance"
	p.X.Label.Text = "Inductance [µH]"
	p.Y.Label.Text = "Loss [W]"
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(7*vg.Inch, 4*vg.Inch, path)
}

// lossPath derives the companion loss-figure filename from the efficiency
// figure path ("eff.png" -> "eff.losses.png").
func lossPath(path string) string {
	ext := ".png"
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			ext = path[i:]
			path = path[:i]
			break
		}
		if path[i] == '/' {
			break
		}
	}
	return path + ".losses" + ext
}
