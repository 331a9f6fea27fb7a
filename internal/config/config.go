// Package config builds the run configuration from command-line flags,
// the environment and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/joho/godotenv"

	"github.com/litescript/oblsph/internal/gnuplot"
	"github.com/litescript/oblsph/internal/logging"
)

// Environment variables supplying flag defaults.
const (
	EnvEccentricity = "OBLSPH_ECCENTRICITY"
	EnvSemimajor    = "OBLSPH_SEMIMAJOR"
	EnvLongitude    = "OBLSPH_LONGITUDE"
	EnvLatitude     = "OBLSPH_LATITUDE"
	EnvPlotPrefix   = "OBLSPH_PLOT_PREFIX"
	EnvPlotTypes    = "OBLSPH_PLOT_TYPES"
	EnvLogLevel     = "OBLSPH_LOG_LEVEL"
)

// Config holds everything needed for one run.
type Config struct {
	Eccentricity float64
	Semimajor    float64
	Longitude    float64 // radians
	Latitude     float64

	// PlotPrefix names the Gnuplot output file, without extension.
	// Empty disables plotting.
	PlotPrefix string
	PlotKinds  []gnuplot.Kind

	// Tangent is the surface tangent query; nil when not requested.
	Tangent *TangentQuery

	Check       bool
	Interactive bool
	LogLevel    logging.Level
}

// TangentQuery is a position and pointing direction for a surface tangent.
type TangentQuery struct {
	Pos r3.Vector
	Pnt r3.Vector
}

// Lookup retrieves an environment value.
type Lookup func(key string) (string, bool)

// EnvLookup returns a Lookup over the process environment, falling back
// to the given .env files. Missing files are skipped; values already in
// the process environment win.
func EnvLookup(files ...string) (Lookup, error) {
	fileEnv := make(map[string]string)
	for _, name := range files {
		vals, err := godotenv.Read(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		for k, v := range vals {
			if _, ok := fileEnv[k]; !ok {
				fileEnv[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}, nil
}

// MapLookup returns a Lookup over a fixed map.
func MapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Build parses args (without the program name). Defaults come from env,
// then from the unit sphere at (1, 0, 0). Usage and flag errors are
// written to usage. Range checks on the coordinates are left to the
// oblsph constructors.
func Build(args []string, env Lookup, usage io.Writer) (Config, error) {
	if env == nil {
		env = MapLookup(nil)
	}

	defEcc, err := envFloat(env, EnvEccentricity, 0)
	if err != nil {
		return Config{}, err
	}
	defSma, err := envFloat(env, EnvSemimajor, 1)
	if err != nil {
		return Config{}, err
	}
	defLon, err := envFloat(env, EnvLongitude, 0)
	if err != nil {
		return Config{}, err
	}
	defLat, err := envFloat(env, EnvLatitude, 0)
	if err != nil {
		return Config{}, err
	}

	flags := flag.NewFlagSet("oblsph", flag.ContinueOnError)
	flags.SetOutput(usage)

	ecc := flags.Float64("ecc", defEcc, "Eccentricity, 0 <= e < 1")
	sma := flags.Float64("sma", defSma, "Semimajor axis, a >= 0")
	lonDeg := flags.Float64("lon", defLon, "Longitude in degrees, -180 < lon <= 180")
	lat := flags.Float64("lat", defLat, "Latitude fraction, -1 <= eta <= 1")
	plotPrefix := flags.String("plot", envString(env, EnvPlotPrefix, ""), "Write a Gnuplot script to <prefix>.gp")
	plotTypes := flags.String("plot-types", envString(env, EnvPlotTypes, ""), "Comma separated features to plot (cov, cont)")
	tangentPos := flags.String("tangent-pos", "", "Position x,y,z for a surface tangent query")
	tangentPnt := flags.String("tangent-pnt", "", "Pointing direction x,y,z for a surface tangent query")
	check := flags.Bool("check", false, "Run the coordinate consistency sweep")
	interactive := flags.Bool("tui", false, "Start the interactive explorer")
	logLevel := flags.String("log-level", envString(env, EnvLogLevel, "info"), "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if flags.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	cfg := Config{
		Eccentricity: *ecc,
		Semimajor:    *sma,
		Longitude:    (s1.Angle(*lonDeg) * s1.Degree).Radians(),
		Latitude:     *lat,
		PlotPrefix:   *plotPrefix,
		Check:        *check,
		Interactive:  *interactive,
	}

	if cfg.LogLevel, err = logging.ParseLevel(*logLevel); err != nil {
		return Config{}, err
	}

	if cfg.PlotKinds, err = gnuplot.ParseKinds(*plotTypes); err != nil {
		return Config{}, err
	}
	if len(cfg.PlotKinds) > 0 && cfg.PlotPrefix == "" {
		return Config{}, errors.New("-plot-types requires -plot")
	}

	switch {
	case *tangentPos == "" && *tangentPnt == "":
	case *tangentPos == "" || *tangentPnt == "":
		return Config{}, errors.New("-tangent-pos and -tangent-pnt must be given together")
	default:
		pos, err := ParseVector(*tangentPos)
		if err != nil {
			return Config{}, fmt.Errorf("-tangent-pos: %w", err)
		}
		pnt, err := ParseVector(*tangentPnt)
		if err != nil {
			return Config{}, fmt.Errorf("-tangent-pnt: %w", err)
		}
		if pnt.Norm2() == 0 {
			return Config{}, errors.New("-tangent-pnt must be non-zero")
		}
		cfg.Tangent = &TangentQuery{Pos: pos, Pnt: pnt}
	}

	return cfg, nil
}

// ParseVector parses "x,y,z".
func ParseVector(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vector{}, fmt.Errorf("component %d of %q: %w", i+1, s, err)
		}
		xyz[i] = v
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func envString(env Lookup, key, def string) string {
	if v, ok := env(key); ok && v != "" {
		return v
	}
	return def
}

func envFloat(env Lookup, key string, def float64) (float64, error) {
	v, ok := env(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
