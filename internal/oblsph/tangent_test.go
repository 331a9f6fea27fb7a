package oblsph

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

func TestSurfaceTangent_InTangentPlane(t *testing.T) {
	os, err := New(0.4, 1.0)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	pos := r3.Vector{X: 1, Y: 1, Z: 1}
	pnt := r3.Vector{X: -1, Y: -1, Z: 0}

	tp := os.SurfaceTangent(pos, pnt)

	at, err := FromCartesian(os.Eccentricity(), tp)
	if err != nil {
		t.Fatalf("FromCartesian(%v) error: %v", tp, err)
	}
	if math.Abs(at.Semimajor()-os.Semimajor()) > 1e-13 {
		t.Errorf("tangent point %v not on surface: semimajor %v", tp, at.Semimajor())
	}

	// Line of sight lies in the plane of the λ and η basis vectors
	cov := at.CovariantBasis()
	los := pos.Sub(tp)
	m := mat.NewDense(3, 3, []float64{
		cov[IdxLongitude].X, cov[IdxLongitude].Y, cov[IdxLongitude].Z,
		cov[IdxLatitude].X, cov[IdxLatitude].Y, cov[IdxLatitude].Z,
		los.X, los.Y, los.Z,
	})
	if det := mat.Det(m); math.Abs(det) > 1e-13 {
		t.Errorf("det[Z_λ, Z_η, pos-tp] = %g, want 0", det)
	}

	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		t.Fatal("SVD failed")
	}
	if rank := svd.Rank(1e-12); rank != 2 {
		t.Errorf("rank = %d, want 2", rank)
	}

	// Pointing side
	if los.Mul(-1).Dot(pnt) <= 0 {
		t.Errorf("tangent point %v not on the side of %v", tp, pnt)
	}
}

func TestSurfaceTangent_OnSurfaceAndGrazing(t *testing.T) {
	tests := []struct {
		name string
		ecc  float64
		sma  float64
		pos  r3.Vector
		pnt  r3.Vector
	}{
		{"sphere equatorial", 0, 2, r3.Vector{X: 5}, r3.Vector{X: -1, Y: 0.3}},
		{"above pole", 0.7, 1.5, r3.Vector{Z: 4}, r3.Vector{X: 0.2, Y: 0.1, Z: -1}},
		{"oblique", 0.85, 3, r3.Vector{X: -2, Y: 4, Z: 2.5}, r3.Vector{X: 1, Y: -0.2, Z: -0.4}},
		{"parallel pointing", 0.5, 1, r3.Vector{X: 3, Y: 0, Z: 0}, r3.Vector{X: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os, err := New(tt.ecc, tt.sma)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			tp := os.SurfaceTangent(tt.pos, tt.pnt)

			at, err := FromCartesian(tt.ecc, tp)
			if err != nil {
				t.Fatalf("FromCartesian() error: %v", err)
			}
			if math.Abs(at.Semimajor()-tt.sma) > 1e-12*tt.sma {
				t.Errorf("tangent point %v has semimajor %v, want %v", tp, at.Semimajor(), tt.sma)
			}

			// Surface normal is perpendicular to the line of sight
			normal := at.ContravariantBasis()[IdxSemimajor].Normalize()
			los := tt.pos.Sub(tp).Normalize()
			if d := normal.Dot(los); math.Abs(d) > 1e-12 {
				t.Errorf("normal . line of sight = %g, want 0", d)
			}
		})
	}
}

func TestSurfaceTangent_InsideReturnsRadialProjection(t *testing.T) {
	os, err := New(0.6, 2)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	pos := r3.Vector{X: 0.5, Y: -0.2, Z: 0.3}

	want := func() r3.Vector {
		b := os.Semiminor()
		u := r3.Vector{X: pos.X / 2, Y: pos.Y / 2, Z: pos.Z / b}.Normalize()
		return r3.Vector{X: u.X * 2, Y: u.Y * 2, Z: u.Z * b}
	}()

	for _, pnt := range []r3.Vector{{X: 1}, {Y: -1, Z: 2}, {X: -3, Y: 1, Z: 1}} {
		got := os.SurfaceTangent(pos, pnt)
		if got.Sub(want).Norm() > 1e-13 {
			t.Errorf("SurfaceTangent(%v, %v) = %v, want %v", pos, pnt, got, want)
		}
	}
}

func TestPlaneFrame_Orthonormal(t *testing.T) {
	fr := newPlaneFrame(r3.Vector{X: 1, Y: 2, Z: 0.5}, r3.Vector{X: -0.3, Y: 0.1, Z: 1})
	axes := []r3.Vector{fr.xhat, fr.yhat, fr.zhat}
	for i := range axes {
		for j := range axes {
			want := 0.0
			if i == j {
				want = 1
			}
			if d := math.Abs(axes[i].Dot(axes[j]) - want); d > 1e-15 {
				t.Errorf("axis %d . axis %d = %v, want %v", i, j, axes[i].Dot(axes[j]), want)
			}
		}
	}

	// Right-handed
	if d := fr.xhat.Cross(fr.yhat).Sub(fr.zhat).Norm(); d > 1e-15 {
		t.Errorf("frame is not right-handed: x × y - z = %g", d)
	}
}
