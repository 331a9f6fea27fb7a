// Package gnuplot writes Gnuplot command scripts that draw an oblate
// spheroid and vectors attached to it.
package gnuplot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/litescript/oblsph/internal/oblsph"
)

// Kind selects an optional feature to draw with the spheroid.
type Kind string

const (
	// KindCovariant draws the covariant basis vectors at the location.
	KindCovariant Kind = "cov"
	// KindContravariant draws the contravariant basis vectors at the location.
	KindContravariant Kind = "cont"
)

// ParseKinds parses a comma separated list of plot kinds. Empty entries
// are ignored.
func ParseKinds(s string) ([]Kind, error) {
	var kinds []Kind
	for _, f := range strings.Split(s, ",") {
		switch k := Kind(strings.ToLower(strings.TrimSpace(f))); k {
		case "":
		case KindCovariant, KindContravariant:
			kinds = append(kinds, k)
		default:
			return nil, fmt.Errorf("unknown plot type %q (want %q or %q)", f, KindCovariant, KindContravariant)
		}
	}
	return kinds, nil
}

// Surface is the view of an oblate spheroid needed for plotting.
type Surface interface {
	Cartesian() r3.Vector
	Semimajor() float64
	Semiminor() float64
	CovariantBasis() oblsph.Basis
	ContravariantBasis() oblsph.Basis
}

// Arrow returns the command drawing an arrow between two Cartesian
// points in the given Gnuplot color. Line width is fixed at 3.
func Arrow(from, to r3.Vector, rgb string) string {
	return fmt.Sprintf("set arrow from %.3e, %.3e, %.3e to %.3e, %.3e, %.3e lw 3 lc rgb \"%s\"",
		from.X, from.Y, from.Z, to.X, to.Y, to.Z, rgb)
}

// basisColors colors the first, second and third basis vectors.
var basisColors = [3]string{"red", "green", "blue"}

// WriteBasis writes arrows for three basis vectors anchored at origin,
// colored red, green and blue in order.
func WriteBasis(w io.Writer, origin r3.Vector, basis oblsph.Basis) error {
	for i, v := range basis {
		if _, err := fmt.Fprintf(w, "\n%s", Arrow(origin, origin.Add(v), basisColors[i])); err != nil {
			return err
		}
	}
	return nil
}

// Options holds the optional features of a script.
type Options struct {
	Kinds []Kind

	// Tangent, when set, draws the line of sight from Tangent[0] to the
	// surface point Tangent[1].
	Tangent *[2]r3.Vector
}

// WriteScript writes a complete script drawing the spheroid surface and
// the requested features.
func WriteScript(w io.Writer, s Surface, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "set title \"Oblate Spheroid\"")
	fmt.Fprint(bw, "\nset parametric")
	fmt.Fprint(bw, "\nset isosamples 25")
	fmt.Fprint(bw, "\nsplot [-pi:pi][-pi/2:pi/2]")
	fmt.Fprintf(bw, " %.3e*cos(u)*cos(v)", s.Semimajor())
	fmt.Fprintf(bw, ", %.3e*sin(u)*cos(v)", s.Semimajor())
	fmt.Fprintf(bw, ", %.3e*sin(v)", s.Semiminor())

	for _, k := range opts.Kinds {
		var err error
		switch k {
		case KindCovariant:
			err = WriteBasis(bw, s.Cartesian(), s.CovariantBasis())
		case KindContravariant:
			err = WriteBasis(bw, s.Cartesian(), s.ContravariantBasis())
		default:
			err = fmt.Errorf("unknown plot type %q", k)
		}
		if err != nil {
			return err
		}
	}

	if opts.Tangent != nil {
		fmt.Fprintf(bw, "\n%s", Arrow(opts.Tangent[0], opts.Tangent[1], "orange"))
	}

	fmt.Fprint(bw, "\nset view equal xyz\n")

	return bw.Flush()
}

// WriteFile writes the script to prefix + ".gp" and returns the file name.
func WriteFile(prefix string, s Surface, opts Options) (string, error) {
	name := prefix + ".gp"
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()

	if err := WriteScript(f, s, opts); err != nil {
		return "", fmt.Errorf("write plot file: %w", err)
	}
	return name, f.Close()
}
