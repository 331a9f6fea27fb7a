package oblsph

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Coordinate indices into bases and tensors.
const (
	IdxSemimajor = iota
	IdxLongitude
	IdxLatitude
)

// Basis is a set of three basis vectors ordered (a, λ, η).
type Basis [3]r3.Vector

// CovariantBasis returns the tangent vectors (∂r/∂a, ∂r/∂λ, ∂r/∂η) at the
// current location. The first is always radial, parallel to Cartesian().
// The η vector is undefined at the poles (η = ±1).
func (o OblateSpheroid) CovariantBasis() Basis {
	a := o.sma
	eta := o.lat
	sqome2 := math.Sqrt(1 - o.ecc*o.ecc)
	sqometa2 := math.Sqrt(1 - eta*eta)
	cl := math.Cos(o.lon)
	sl := math.Sin(o.lon)

	return Basis{
		{X: sqometa2 * cl, Y: sqometa2 * sl, Z: eta * sqome2},
		{X: -a * sqometa2 * sl, Y: a * sqometa2 * cl, Z: 0},
		{X: -a * eta * cl / sqometa2, Y: -a * eta * sl / sqometa2, Z: a * sqome2},
	}
}

// ContravariantBasis returns the gradients (∇a, ∇λ, ∇η), the dual of the
// covariant basis: Z^i · Z_j = δ^i_j.
func (o OblateSpheroid) ContravariantBasis() Basis {
	a := o.sma
	eta := o.lat
	ometa2 := 1 - eta*eta
	sqome2 := math.Sqrt(1 - o.ecc*o.ecc)
	sqometa2 := math.Sqrt(ometa2)
	cl := math.Cos(o.lon)
	sl := math.Sin(o.lon)

	return Basis{
		{X: sqometa2 * cl, Y: sqometa2 * sl, Z: eta / sqome2},
		{X: -sl / (a * sqometa2), Y: cl / (a * sqometa2), Z: 0},
		{X: -eta * sqometa2 * cl / a, Y: -eta * sqometa2 * sl / a, Z: ometa2 / (a * sqome2)},
	}
}

// Jacobian returns ∂(x,y,z)/∂(a,λ,η). Column j is covariant basis vector j.
func (o OblateSpheroid) Jacobian() *mat.Dense {
	b := o.CovariantBasis()
	return mat.NewDense(3, 3, []float64{
		b[0].X, b[1].X, b[2].X,
		b[0].Y, b[1].Y, b[2].Y,
		b[0].Z, b[1].Z, b[2].Z,
	})
}

// InverseJacobian returns ∂(a,λ,η)/∂(x,y,z), evaluated from the Cartesian
// coordinates. It is the matrix inverse of Jacobian() away from the polar
// axis; row i is contravariant basis vector i.
func (o OblateSpheroid) InverseJacobian() *mat.Dense {
	x, y, z := o.xyz.X, o.xyz.Y, o.xyz.Z
	a := o.sma
	ome2 := 1 - o.ecc*o.ecc
	sqome2 := math.Sqrt(ome2)
	rho2 := x*x + y*y
	a3 := a * a * a

	return mat.NewDense(3, 3, []float64{
		x / a, y / a, z / (a * ome2),
		-y / rho2, x / rho2, 0,
		-x * z / (a3 * sqome2), -y * z / (a3 * sqome2), rho2 / (a3 * sqome2),
	})
}

// CovariantMetric returns g_ij = Z_i · Z_j. The longitude axis decouples;
// the only off-diagonal term couples a and η.
func (o OblateSpheroid) CovariantMetric() *mat.SymDense {
	a := o.sma
	eta := o.lat
	e2 := o.ecc * o.ecc
	eta2 := eta * eta
	ometa2 := 1 - eta2

	gaa := 1 - eta2*e2
	gll := a * a * ometa2
	gnn := a * a * (eta2/ometa2 + 1 - e2)
	gan := -a * eta * e2

	return mat.NewSymDense(3, []float64{
		gaa, 0, gan,
		0, gll, 0,
		gan, 0, gnn,
	})
}

// ContravariantMetric returns g^ij = Z^i · Z^j, the inverse of
// CovariantMetric().
func (o OblateSpheroid) ContravariantMetric() *mat.SymDense {
	a := o.sma
	eta := o.lat
	e2 := o.ecc * o.ecc
	ome2 := 1 - e2
	eta2 := eta * eta
	ometa2 := 1 - eta2

	gaa := ometa2 + eta2/ome2
	gll := 1 / (a * a * ometa2)
	gnn := ometa2 * (eta2 + ometa2/ome2) / (a * a)
	gan := eta * ometa2 * e2 / (a * ome2)

	return mat.NewSymDense(3, []float64{
		gaa, 0, gan,
		0, gll, 0,
		gan, 0, gnn,
	})
}

// VolumeElement returns √det(g_ij) = a²√(1-e²), the Jacobian determinant
// for integration in (a, λ, η). It does not depend on location along the
// spheroid.
func (o OblateSpheroid) VolumeElement() float64 {
	return o.sma * o.sma * math.Sqrt(1-o.ecc*o.ecc)
}
