// Package report renders engine result records as tables, CSV/JSON files
// and PNG figures. The computation packages return data only; everything
// presentation-shaped lives here.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/fulongli/dabkit/pkg/dab"
	"github.com/fulongli/dabkit/pkg/sst"
	"github.com/fulongli/dabkit/pkg/types"
)

// PrintBreakdown writes a loss/efficiency summary table.
func PrintBreakdown(w io.Writer, b sst.LossBreakdown, eff sst.EfficiencyResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MECHANISM\tLOSS")
	fmt.Fprintln(tw, "---------\t----")
	fmt.Fprintf(tw, "conduction\t%s\n", types.Watts(b.Conduction).Humanized())
	fmt.Fprintf(tw, "switching\t%s\n", types.Watts(b.Switching).Humanized())
	fmt.Fprintf(tw, "magnetic\t%s\n", types.Watts(b.Magnetic).Humanized())
	fmt.Fprintf(tw, "total\t%s\n", types.Watts(b.Total).Humanized())
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "operating power\t%s\n", types.Watts(eff.OperatingPower).Humanized())
	fmt.Fprintf(tw, "output power\t%s\n", types.Watts(eff.OutputPower).Humanized())
	fmt.Fprintf(tw, "efficiency\t%.2f %%\n", eff.Efficiency*100)
	tw.Flush()
}

// PrintSweep writes one row per sweep point.
func PrintSweep(w io.Writer, points []sst.SweepPoint) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POWER\tCONDUCTION\tSWITCHING\tMAGNETIC\tTOTAL\tEFFICIENCY")
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(tw, "%s\t%v\n", types.Watts(pt.Power).Humanized(), pt.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f W\t%.2f W\t%.2f W\t%.2f W\t%.2f %%\n",
			types.Watts(pt.Power).Humanized(),
			pt.Losses.Conduction, pt.Losses.Switching, pt.Losses.Magnetic, pt.Losses.Total,
			pt.Efficiency.Efficiency*100)
	}
	tw.Flush()
}

// PrintSelection writes the chosen candidate and its constraint status.
func PrintSelection(w io.Writer, sel dab.Selection) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	best := sel.Best
	if sel.Feasible {
		fmt.Fprintf(tw, "selected inductance\t%s\n", types.Henries(best.Inductance).Humanized())
	} else {
		fmt.Fprintf(tw, "NO FEASIBLE CANDIDATE; least-violating inductance\t%s\n",
			types.Henries(best.Inductance).Humanized())
	}
	fmt.Fprintf(tw, "phase shift\t%.4f\n", best.PhaseShift)
	fmt.Fprintf(tw, "ripple ratio\t%.3f\n", best.Stats.RippleRatio)
	fmt.Fprintf(tw, "rms current\t%s\n", types.Amperes(best.Stats.RMSCurrent).Humanized())
	fmt.Fprintf(tw, "peak current\t%s\n", types.Amperes(best.Stats.PeakCurrent).Humanized())
	fmt.Fprintf(tw, "copper loss\t%s\n", types.Watts(best.CopperLoss).Humanized())
	fmt.Fprintf(tw, "core loss\t%s\n", types.Watts(best.CoreLoss).Humanized())
	for _, v := range best.Violations {
		fmt.Fprintf(tw, "violated\t%s: %.3f over limit %.3f (+%.1f %%)\n",
			v.Constraint, v.Value, v.Limit, v.Overshoot*100)
	}
	fmt.Fprintf(tw, "candidates evaluated\t%d\n", len(sel.Candidates))
	tw.Flush()
}

// WriteSweepCSV writes sweep points to a CSV file, one row per point.
func WriteSweepCSV(path string, points []sst.SweepPoint) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()
	if err := cw.Write([]string{
		"power_w", "conduction_w", "switching_w", "magnetic_w", "total_w", "efficiency",
	}); err != nil {
		return err
	}
	for _, pt := range points {
		if pt.Err != nil {
			continue
		}
		if err := cw.Write([]string{
			fmtFloat(pt.Power), fmtFloat(pt.Losses.Conduction), fmtFloat(pt.Losses.Switching),
			fmtFloat(pt.Losses.Magnetic), fmtFloat(pt.Losses.Total), fmtFloat(pt.Efficiency.Efficiency),
		}); err != nil {
			return err
		}
	}
	return nil
}

// WriteCandidatesCSV writes the full candidate set of a selection.
func WriteCandidatesCSV(path string, sel dab.Selection) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()
	if err := cw.Write([]string{
		"inductance_h", "phase_shift", "ripple_ratio", "rms_a", "peak_a",
		"copper_w", "core_w", "feasible", "violations",
	}); err != nil {
		return err
	}
	for _, c := range sel.Candidates {
		if err := cw.Write([]string{
			fmtFloat(c.Inductance), fmtFloat(c.PhaseShift), fmtFloat(c.Stats.RippleRatio),
			fmtFloat(c.Stats.RMSCurrent), fmtFloat(c.Stats.PeakCurrent),
			fmtFloat(c.CopperLoss), fmtFloat(c.CoreLoss),
			strconv.FormatBool(c.Feasible), strconv.Itoa(len(c.Violations)),
		}); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes any result record as indented JSON.
func WriteJSON(path string, v any) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
