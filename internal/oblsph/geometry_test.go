package oblsph

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// sampleGrid returns a spread of valid, non-polar locations.
func sampleGrid(t *testing.T) []OblateSpheroid {
	t.Helper()

	var out []OblateSpheroid
	for _, ecc := range []float64{0, 0.3, 0.6, 0.85} {
		for _, sma := range []float64{0.1, 1, 3.7, 7.4} {
			for _, lonDeg := range []float64{-177, -90, -45, 0, 0.5, 60, 135, 179} {
				for _, lat := range []float64{-0.9, -0.5, 0, 0.35, 0.9} {
					os, err := FromSpheroidal(ecc, sma, degToRad(lonDeg), lat)
					if err != nil {
						t.Fatalf("FromSpheroidal(%v, %v, %v, %v): %v", ecc, sma, lonDeg, lat, err)
					}
					out = append(out, os)
				}
			}
		}
	}
	return out
}

// identityResidual returns the squared Frobenius norm of a·b - I.
func identityResidual(a, b mat.Matrix) float64 {
	var prod mat.Dense
	prod.Mul(a, b)
	var diff mat.Dense
	diff.Sub(&prod, mat.NewDiagDense(3, []float64{1, 1, 1}))
	n := mat.Norm(&diff, 2)
	return n * n
}

func TestJacobianInverse(t *testing.T) {
	for _, os := range sampleGrid(t) {
		if r := identityResidual(os.Jacobian(), os.InverseJacobian()); r > 1e-13 {
			t.Errorf("J * J^-1 residual %g at %v", r, os)
		}
	}
}

func TestInverseJacobianRowsAreContravariant(t *testing.T) {
	for _, os := range sampleGrid(t) {
		inv := os.InverseJacobian()
		cont := os.ContravariantBasis()
		for i, v := range cont {
			row := []float64{v.X, v.Y, v.Z}
			for j := 0; j < 3; j++ {
				if d := math.Abs(inv.At(i, j) - row[j]); d > 1e-12*math.Max(1, math.Abs(row[j])) {
					t.Errorf("InverseJacobian()[%d][%d] = %v, contravariant = %v at %v",
						i, j, inv.At(i, j), row[j], os)
				}
			}
		}
	}
}

func TestMetricInverse(t *testing.T) {
	for _, os := range sampleGrid(t) {
		if r := identityResidual(os.CovariantMetric(), os.ContravariantMetric()); r > 1e-13 {
			t.Errorf("g * g^-1 residual %g at %v", r, os)
		}
	}
}

func TestCovariantMetricMatchesBasis(t *testing.T) {
	for _, os := range sampleGrid(t) {
		g := os.CovariantMetric()
		cov := os.CovariantBasis()
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := cov[i].Dot(cov[j])
				if d := math.Abs(g.At(i, j) - want); d > 1e-12*math.Max(1, math.Abs(want)) {
					t.Errorf("g[%d][%d] = %v, Z_i.Z_j = %v at %v", i, j, g.At(i, j), want, os)
				}
			}
		}
		if g.At(IdxSemimajor, IdxLongitude) != 0 || g.At(IdxLongitude, IdxLatitude) != 0 {
			t.Errorf("longitude axis does not decouple at %v", os)
		}
	}
}

func TestVolumeElement(t *testing.T) {
	for _, os := range sampleGrid(t) {
		want := math.Sqrt(mat.Det(os.CovariantMetric()))
		got := os.VolumeElement()
		if d := math.Abs(got - want); d > 1e-13*math.Max(1, want) {
			t.Errorf("VolumeElement() = %v, sqrt(det g) = %v at %v", got, want, os)
		}

		det := mat.Det(os.Jacobian())
		if d := math.Abs(det - got); d > 1e-12*math.Max(1, got) {
			t.Errorf("det(J) = %v, VolumeElement() = %v at %v", det, got, os)
		}
	}
}

func TestBasisDuality(t *testing.T) {
	for _, os := range sampleGrid(t) {
		cov := os.CovariantBasis()
		cont := os.ContravariantBasis()
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				if d := math.Abs(cont[i].Dot(cov[j]) - want); d > 1e-13 {
					t.Errorf("Z^%d . Z_%d = %v, want %v at %v", i, j, cont[i].Dot(cov[j]), want, os)
				}
			}
		}
	}
}

func TestCovariantSemimajorIsRadial(t *testing.T) {
	for _, os := range sampleGrid(t) {
		cov := os.CovariantBasis()
		if n := os.Cartesian().Cross(cov[IdxSemimajor]).Norm(); n > 1e-13 {
			t.Errorf("|r x Z_a| = %g at %v", n, os)
		}
	}
}

func TestJacobianColumnsAreCovariant(t *testing.T) {
	os, err := FromSpheroidal(0.4, 2, degToRad(30), 0.2)
	if err != nil {
		t.Fatalf("FromSpheroidal() error: %v", err)
	}
	j := os.Jacobian()
	for c, v := range os.CovariantBasis() {
		if j.At(0, c) != v.X || j.At(1, c) != v.Y || j.At(2, c) != v.Z {
			t.Errorf("column %d = (%v, %v, %v), want %v", c, j.At(0, c), j.At(1, c), j.At(2, c), v)
		}
	}
}
