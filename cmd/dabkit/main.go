package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fulongli/dabkit/internal/config"
	"github.com/fulongli/dabkit/internal/report"
	"github.com/fulongli/dabkit/pkg/dab"
	"github.com/fulongli/dabkit/pkg/sst"
	"github.com/fulongli/dabkit/pkg/types"
)

type opts struct {
	configPath string

	// sst overrides (used when no scenario file is given)
	operatingPower float64
	sweepMin       float64
	sweepSteps     int
	ambient        float64

	// outputs
	csvPath  string
	jsonPath string
	plotPath string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "dabkit",
		Short: "DAB/SST design-analysis tool",
		Long: `dabkit sizes the isolation inductor of a Dual Active Bridge DC-DC
stage and evaluates the loss, efficiency and distortion figures of the
surrounding Solid State Transformer. It is an offline design-sizing
tool: it computes numbers for a design review, it does not control
hardware.

Examples:
  dabkit analyze --config scenario.yaml --plot eff.png
  dabkit select  --config scenario.yaml --csv candidates.csv
  dabkit thd 1=325 3=12.5 5=8.1 7=4.2`,
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "YAML scenario file")
	root.PersistentFlags().StringVar(&o.csvPath, "csv", "", "write results to CSV file")
	root.PersistentFlags().StringVar(&o.jsonPath, "json", "", "write results to JSON file")
	root.PersistentFlags().StringVar(&o.plotPath, "plot", "", "write PNG figure(s)")

	analyze := &cobra.Command{
		Use:   "analyze",
		Short: "Loss breakdown, efficiency sweep and thermal estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(o)
		},
	}
	analyze.Flags().Float64VarP(&o.operatingPower, "power", "p", 0, "operating power in Watts (default: rated power)")
	analyze.Flags().Float64Var(&o.sweepMin, "sweep-min", 0, "sweep start in Watts (default: 10% of rated)")
	analyze.Flags().IntVar(&o.sweepSteps, "sweep-steps", 50, "number of sweep points")
	analyze.Flags().Float64Var(&o.ambient, "ambient", 25, "ambient temperature in °C")

	sel := &cobra.Command{
		Use:   "select",
		Short: "Search the inductance space for the best feasible inductor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(o)
		},
	}

	thd := &cobra.Command{
		Use:   "thd ORDER=MAGNITUDE...",
		Short: "Total harmonic distortion of a spectrum",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTHD(args)
		},
	}

	root.AddCommand(analyze, sel, thd)

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func runAnalyze(o opts) error {
	params := sst.DefaultParameters()
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		params = cfg.SSTParameters()
	}

	power := o.operatingPower
	if power == 0 {
		power = params.RatedPower
	}
	fmt.Printf("stage: %.1f kW rated, %s switching\n\n",
		types.Watts(params.RatedPower).Kilo(), types.Hertz(params.SwitchingFrequency).Humanized())

	breakdown, err := sst.ComputePowerLosses(params, power)
	if err != nil {
		return err
	}
	eff, err := sst.ComputeEfficiency(breakdown, power)
	if err != nil {
		return err
	}
	report.PrintBreakdown(os.Stdout, breakdown, eff)

	thermal, err := sst.ThermalAnalysis(params, power, o.ambient)
	if err != nil {
		return err
	}
	fmt.Printf("\njunction temperature: %.1f °C (%.1f K above %.1f °C ambient)\n",
		thermal.Junction, thermal.Rise, thermal.Ambient)

	lo := o.sweepMin
	if lo == 0 {
		lo = 0.1 * params.RatedPower
	}
	seq, err := sst.Sweep(params, sst.PowerRange{Min: lo, Max: params.RatedPower, Steps: o.sweepSteps})
	if err != nil {
		return err
	}
	var points []sst.SweepPoint
	for pt := range seq {
		points = append(points, pt)
	}
	fmt.Println()
	report.PrintSweep(os.Stdout, points)

	if o.csvPath != "" {
		if err := report.WriteSweepCSV(o.csvPath, points); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if o.jsonPath != "" {
		if err := report.WriteJSON(o.jsonPath, points); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if o.plotPath != "" {
		if err := report.PlotEfficiency(o.plotPath, points); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	return nil
}

func runSelect(o opts) error {
	if o.configPath == "" {
		return fmt.Errorf("select needs a scenario file (--config)")
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	sel, err := dab.SelectInductor(cfg.DABParameters(), cfg.InductorConstraints(),
		cfg.InductorCoefficients(), cfg.SearchSpace())
	if err != nil {
		return err
	}
	report.PrintSelection(os.Stdout, sel)
	if !sel.Feasible {
		slog.Warn("no candidate satisfies all constraints; result is best-effort, not a valid design")
	}

	if o.csvPath != "" {
		if err := report.WriteCandidatesCSV(o.csvPath, sel); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if o.jsonPath != "" {
		if err := report.WriteJSON(o.jsonPath, sel); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if o.plotPath != "" {
		if err := report.PlotCandidates(o.plotPath, sel); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	return nil
}

func runTHD(args []string) error {
	spectrum := make(sst.Spectrum, 0, len(args))
	for _, a := range args {
		order, mag, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("harmonic %q: want ORDER=MAGNITUDE", a)
		}
		n, err := strconv.Atoi(order)
		if err != nil {
			return fmt.Errorf("harmonic %q: %w", a, err)
		}
		m, err := strconv.ParseFloat(mag, 64)
		if err != nil {
			return fmt.Errorf("harmonic %q: %w", a, err)
		}
		spectrum = append(spectrum, sst.Harmonic{Order: n, Magnitude: m})
	}

	thd, err := sst.ComputeTHD(spectrum)
	if err != nil {
		return err
	}
	fmt.Printf("THD: %.4f (%.2f %%)\n", thd, thd*100)
	return nil
}
