package oblsph

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/litescript/oblsph/internal/unitcircle"
)

// SurfaceTangent returns the point on the surface of this spheroid where
// a line of sight from pos grazes the surface, on the side pnt points
// toward. pos is relative to the center of the spheroid and pnt is a
// pointing direction from pos; the tangent point lies in the plane they
// span.
//
// If pos is inside the spheroid the radial projection of pos onto the
// surface is returned. If pnt is parallel to pos every plane through pos
// is equally valid and one is picked arbitrarily.
func (o OblateSpheroid) SurfaceTangent(pos, pnt r3.Vector) r3.Vector {
	a := o.sma
	b := o.Semiminor()

	// Oblate spheroid to unit sphere
	toUnit := func(v r3.Vector) r3.Vector {
		return r3.Vector{X: v.X / a, Y: v.Y / a, Z: v.Z / b}
	}
	fromUnit := func(v r3.Vector) r3.Vector {
		return r3.Vector{X: v.X * a, Y: v.Y * a, Z: v.Z * b}
	}

	upos := toUnit(pos)
	upnt := toUnit(pnt)

	// Frame with yhat along the position and zhat normal to the plane of
	// the position and pointing vectors, reducing the problem to 2D.
	fr := newPlaneFrame(upos, upnt)
	tp := unitcircle.Tangent(fr.project(upos), fr.project(upnt))

	return fromUnit(fr.lift(tp))
}

// planeFrame is an orthonormal frame whose (xhat, yhat) plane contains
// the two vectors it was built from.
type planeFrame struct {
	xhat, yhat, zhat r3.Vector
}

func newPlaneFrame(pos, pnt r3.Vector) planeFrame {
	yhat := pos.Normalize()
	zhat := pos.Cross(pnt)
	if zhat.Norm2() == 0 {
		zhat = yhat.Ortho()
	}
	zhat = zhat.Normalize()
	xhat := yhat.Cross(zhat).Normalize()
	return planeFrame{xhat: xhat, yhat: yhat, zhat: zhat}
}

// project rotates v into the frame and drops the out-of-plane component.
func (f planeFrame) project(v r3.Vector) r2.Point {
	return r2.Point{X: f.xhat.Dot(v), Y: f.yhat.Dot(v)}
}

// lift places p in the frame plane and rotates back by the transpose.
func (f planeFrame) lift(p r2.Point) r3.Vector {
	return f.xhat.Mul(p.X).Add(f.yhat.Mul(p.Y))
}
