// Package sweep checks the oblate spheroidal coordinate conversions for
// consistency over a grid of shapes and locations.
package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"gonum.org/v1/gonum/mat"

	"github.com/litescript/oblsph/internal/oblsph"
)

// Range is a half-open sampling interval [Start, Stop) walked in Step
// increments.
type Range struct {
	Start float64
	Stop  float64
	Step  float64
}

func (r Range) validate(name string) error {
	if !(r.Step > 0) {
		return fmt.Errorf("%s step must be positive, got %v", name, r.Step)
	}
	if !(r.Stop > r.Start) {
		return fmt.Errorf("%s range [%v, %v) is empty", name, r.Start, r.Stop)
	}
	return nil
}

// Grid defines the sampled parameter space. Longitude is in degrees.
type Grid struct {
	Eccentricity Range
	Semimajor    Range
	Latitude     Range
	LongitudeDeg Range
}

// DefaultGrid covers eccentricities below 0.9, semimajor axes up to 7.5,
// latitudes within ±0.9 and the full circle of longitude.
func DefaultGrid() Grid {
	return Grid{
		Eccentricity: Range{Start: 0, Stop: 0.9, Step: 0.05},
		Semimajor:    Range{Start: 0.1, Stop: 7.5, Step: 0.1},
		Latitude:     Range{Start: -0.9, Stop: 0.9, Step: 0.05},
		LongitudeDeg: Range{Start: -177, Stop: 180, Step: 3},
	}
}

// Report summarizes a sweep.
type Report struct {
	Count int

	// RSSError accumulates, per point, the root-sum-square difference
	// between the coordinates a point was defined with and those recovered
	// from its Cartesian form.
	RSSError float64

	// BasisError accumulates, per point, the root-sum-square deviation of
	// Z^i · Z_j from the Kronecker delta.
	BasisError float64

	// MaxJacobianResidual is the largest squared Frobenius norm of
	// J·J⁻¹ - I seen.
	MaxJacobianResidual float64
}

// MeanRSSError returns the average round-trip error per point.
func (r Report) MeanRSSError() float64 {
	if r.Count == 0 {
		return 0
	}
	return r.RSSError / float64(r.Count)
}

// MeanBasisError returns the average basis duality error per point.
func (r Report) MeanBasisError() float64 {
	if r.Count == 0 {
		return 0
	}
	return r.BasisError / float64(r.Count)
}

// OK reports whether every per-point average and the worst Jacobian
// residual are within tol.
func (r Report) OK(tol float64) bool {
	return r.Count > 0 &&
		r.MeanRSSError() <= tol &&
		r.MeanBasisError() <= tol &&
		r.MaxJacobianResidual <= tol
}

func (r Report) String() string {
	return fmt.Sprintf("RSS Error over %d tests: %g\nBasis Error: %g\nMax Jacobian Residual: %g",
		r.Count, r.RSSError, r.BasisError, r.MaxJacobianResidual)
}

// Run walks the grid. Each point is defined by oblate spheroidal
// coordinates, converted to Cartesian and back, and its bases and
// Jacobians are checked against each other.
func Run(g Grid) (Report, error) {
	var report Report

	err := errors.Join(
		g.Eccentricity.validate("eccentricity"),
		g.Semimajor.validate("semimajor"),
		g.Latitude.validate("latitude"),
		g.LongitudeDeg.validate("longitude"),
	)
	if err != nil {
		return report, err
	}

	eye := mat.NewDiagDense(3, []float64{1, 1, 1})
	var prod, diff mat.Dense

	for ecc := g.Eccentricity.Start; ecc < g.Eccentricity.Stop; ecc += g.Eccentricity.Step {
		for sma := g.Semimajor.Start; sma < g.Semimajor.Stop; sma += g.Semimajor.Step {
			for lat := g.Latitude.Start; lat < g.Latitude.Stop; lat += g.Latitude.Step {
				for lonDeg := g.LongitudeDeg.Start; lonDeg < g.LongitudeDeg.Stop; lonDeg += g.LongitudeDeg.Step {
					lon := (s1.Angle(lonDeg) * s1.Degree).Radians()

					os1, err := oblsph.FromSpheroidal(ecc, sma, lon, lat)
					if err != nil {
						return report, fmt.Errorf("define point: %w", err)
					}
					os2, err := oblsph.FromCartesian(ecc, os1.Cartesian())
					if err != nil {
						return report, fmt.Errorf("recover point: %w", err)
					}

					de := os2.Eccentricity() - os1.Eccentricity()
					da := os2.Semimajor() - os1.Semimajor()
					dn := os2.Longitude() - os1.Longitude()
					dt := os2.Latitude() - os1.Latitude()
					report.RSSError += math.Sqrt(de*de + da*da + dn*dn + dt*dt)

					report.BasisError += dualityError(os1.CovariantBasis(), os1.ContravariantBasis())

					prod.Mul(os1.Jacobian(), os1.InverseJacobian())
					diff.Sub(&prod, eye)
					n := mat.Norm(&diff, 2)
					report.MaxJacobianResidual = math.Max(report.MaxJacobianResidual, n*n)

					report.Count++
				}
			}
		}
	}

	return report, nil
}

// dualityError returns the root-sum-square deviation of Z^i · Z_j from δ^i_j.
func dualityError(cov, cont oblsph.Basis) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := cont[i].Dot(cov[j])
			if i == j {
				d = 1 - d
			}
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}
