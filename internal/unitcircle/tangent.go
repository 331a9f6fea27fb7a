// Package unitcircle solves tangency problems on the unit circle.
package unitcircle

import (
	"math"

	"github.com/golang/geo/r2"
)

// Tangent returns the point on the unit circle where a line from pos
// touches the circle tangentially. Every external point has two such
// tangents; pnt, a pointing direction anchored at pos, selects the one
// on its side.
//
// If pos lies on or inside the circle there is no true tangent and the
// point of the circle along the ray from the origin through pos is
// returned instead, regardless of pnt.
//
// Precision degrades as pos approaches the circle from outside, where
// the tangent segment length goes to zero.
func Tangent(pos, pnt r2.Point) r2.Point {
	rsq := pos.Dot(pos)
	rmag := math.Sqrt(rsq)
	rhat := pos.Mul(1 / rmag)

	// Inside or on the circle
	s2 := rsq - 1
	if s2 <= 0 {
		return rhat
	}

	// Sine and cosine of the angle between pos and the tangent line
	s := math.Sqrt(s2)
	sa := 1 / rmag
	ca := s * sa

	// Along-rhat and normal components of the tangent point
	rhatOrth := rhat.Ortho()
	along := rhat.Mul(rmag - s*ca)
	normal := rhatOrth.Mul(s * sa)

	if pnt.Dot(rhatOrth) > 0 {
		return along.Add(normal)
	}
	return along.Sub(normal)
}
