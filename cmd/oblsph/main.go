// Command oblsph reports oblate spheroidal coordinates, basis vectors and
// surface tangents, and writes Gnuplot scripts visualizing them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/geo/r3"
	"golang.org/x/term"

	"github.com/litescript/oblsph/internal/config"
	"github.com/litescript/oblsph/internal/gnuplot"
	"github.com/litescript/oblsph/internal/logging"
	"github.com/litescript/oblsph/internal/oblsph"
	"github.com/litescript/oblsph/internal/sweep"
	"github.com/litescript/oblsph/internal/ui"
)

// Largest acceptable per-point error for the consistency sweep.
const checkTolerance = 1e-12

func main() {
	env, err := config.EnvLookup(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Build(os.Args[1:], env, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem parsing arguments: %v\n", err)
		os.Exit(2)
	}

	logger := logging.New(cfg.LogLevel)

	if err := run(cfg, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, out io.Writer, logger *logging.Logger) error {
	// Create oblate spheroid object upon which analysis is based
	os1, err := oblsph.FromSpheroidal(cfg.Eccentricity, cfg.Semimajor, cfg.Longitude, cfg.Latitude)
	if err != nil {
		return fmt.Errorf("oblate spheroid construction failed: %w", err)
	}
	fmt.Fprintf(out, "OblateSpheroid %s\n", os1)
	if logger.Enabled(logging.LevelDebug) {
		logger.Debug("Semiminor %v, volume element %v", os1.Semiminor(), os1.VolumeElement())
	}

	var tangentLine *[2]r3.Vector
	if q := cfg.Tangent; q != nil {
		tp := os1.SurfaceTangent(q.Pos, q.Pnt)
		fmt.Fprintf(out, "Surface tangent from %v toward %v: %v\n", q.Pos, q.Pnt, tp)
		tangentLine = &[2]r3.Vector{q.Pos, tp}
	}

	if cfg.PlotPrefix != "" {
		plotLog := logger.Named("plot")
		name, err := gnuplot.WriteFile(cfg.PlotPrefix, os1, gnuplot.Options{
			Kinds:   cfg.PlotKinds,
			Tangent: tangentLine,
		})
		if err != nil {
			return err
		}
		plotLog.Info("wrote %s (%d features)", name, len(cfg.PlotKinds))
		fmt.Fprintf(out, "Generated file %s\n", name)
	}

	if cfg.Check {
		checkLog := logger.Named("check")
		checkLog.Info("running consistency sweep")
		report, err := sweep.Run(sweep.DefaultGrid())
		if err != nil {
			return fmt.Errorf("consistency sweep: %w", err)
		}
		fmt.Fprintln(out, report)
		if !report.OK(checkTolerance) {
			return fmt.Errorf("consistency sweep exceeded tolerance %g", checkTolerance)
		}
	}

	if cfg.Interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("interactive explorer requires a terminal")
		}
		// Log lines would tear the alternate screen
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)

		p := tea.NewProgram(ui.New(os1, logger.Named("ui")), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running explorer: %w", err)
		}
	}

	return nil
}
