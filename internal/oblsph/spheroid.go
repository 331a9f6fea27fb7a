// Package oblsph implements the oblate spheroidal coordinate frame:
// conversion to and from Cartesian coordinates, the local basis vectors
// and metric tensors, and horizon (surface tangent) queries.
//
// Coordinates are (a, λ, η): the semimajor axis of the spheroid of
// fixed eccentricity through the point, the longitude measured from the
// x-axis, and the latitude fraction η, the height along the polar axis
// as a fraction of the semiminor axis (+1 at the north pole, 0 at the
// equator). η is not an angle.
package oblsph

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// OblateSpheroid is an oblate spheroid definition (eccentricity and
// semimajor axis) together with a location on it, held both as oblate
// spheroidal coordinates and as the equivalent Cartesian point.
//
// Values are immutable. Moving to other coordinates produces a new
// value; the zero value is a degenerate point sphere at the origin.
type OblateSpheroid struct {
	ecc float64
	sma float64
	lon float64
	lat float64
	xyz r3.Vector
}

// Default returns the unit sphere located at (1, 0, 0).
func Default() OblateSpheroid {
	return fromSpheroidal(0, 1, 0, 0)
}

// New returns the spheroid with the given eccentricity and semimajor
// axis, located at longitude 0 on the equator.
func New(eccentricity, semimajor float64) (OblateSpheroid, error) {
	return FromSpheroidal(eccentricity, semimajor, 0, 0)
}

// FromSpheroidal returns the spheroid located by oblate spheroidal
// coordinates.
//
//	0 <= eccentricity < 1
//	semimajor >= 0
//	-pi < longitude <= pi (radians)
//	-1 <= latitude <= 1
func FromSpheroidal(eccentricity, semimajor, longitude, latitude float64) (OblateSpheroid, error) {
	if err := validateShape(eccentricity, semimajor); err != nil {
		return OblateSpheroid{}, err
	}
	if err := validateLocation(longitude, latitude); err != nil {
		return OblateSpheroid{}, err
	}
	return fromSpheroidal(eccentricity, semimajor, longitude, latitude), nil
}

// FromCartesian returns the spheroid of the given eccentricity that
// passes through the Cartesian point xyz. Only the eccentricity is
// validated; every point in space lies on exactly one such spheroid.
func FromCartesian(eccentricity float64, xyz r3.Vector) (OblateSpheroid, error) {
	if !validEccentricity(eccentricity) {
		return OblateSpheroid{}, &ValidationError{Param: ParamEccentricity, Value: eccentricity}
	}

	ome2 := 1 - eccentricity*eccentricity
	sma := math.Sqrt(xyz.X*xyz.X + xyz.Y*xyz.Y + xyz.Z*xyz.Z/ome2)

	lon := math.Atan2(xyz.Y, xyz.X)
	if lon == -math.Pi {
		lon = math.Pi
	}

	// Origin: any latitude is valid, use the equator
	lat := 0.0
	if sma > 0 {
		// On the polar axis the quotient can round past one
		lat = math.Max(-1, math.Min(1, xyz.Z/(sma*math.Sqrt(ome2))))
	}

	return OblateSpheroid{
		ecc: eccentricity,
		sma: sma,
		lon: lon,
		lat: lat,
		xyz: xyz,
	}, nil
}

// At returns a spheroid with the same shape located at a new longitude
// and latitude.
func (o OblateSpheroid) At(longitude, latitude float64) (OblateSpheroid, error) {
	return FromSpheroidal(o.ecc, o.sma, longitude, latitude)
}

// Eccentricity returns the eccentricity.
func (o OblateSpheroid) Eccentricity() float64 { return o.ecc }

// Semimajor returns the semimajor axis.
func (o OblateSpheroid) Semimajor() float64 { return o.sma }

// Semiminor returns the semiminor (polar) axis.
func (o OblateSpheroid) Semiminor() float64 {
	return o.sma * math.Sqrt(1-o.ecc*o.ecc)
}

// Longitude returns the longitude in radians.
func (o OblateSpheroid) Longitude() float64 { return o.lon }

// Latitude returns the latitude fraction η.
func (o OblateSpheroid) Latitude() float64 { return o.lat }

// Cartesian returns the Cartesian coordinates of the location.
func (o OblateSpheroid) Cartesian() r3.Vector { return o.xyz }

// String formats the definition and coordinates with longitude in degrees.
func (o OblateSpheroid) String() string {
	return fmt.Sprintf("(Eccentricity: %v; Semimajor: %v; Azimuth: %v; Elevation: %v)",
		o.ecc, o.sma, s1.Angle(o.lon).Degrees(), o.lat)
}

// fromSpheroidal builds the value from previously validated coordinates.
func fromSpheroidal(ecc, sma, lon, lat float64) OblateSpheroid {
	sqometa2 := math.Sqrt(1 - lat*lat)
	return OblateSpheroid{
		ecc: ecc,
		sma: sma,
		lon: lon,
		lat: lat,
		xyz: r3.Vector{
			X: sma * sqometa2 * math.Cos(lon),
			Y: sma * sqometa2 * math.Sin(lon),
			Z: sma * lat * math.Sqrt(1-ecc*ecc),
		},
	}
}

// Comparisons are written so that NaN fails them.

func validEccentricity(ecc float64) bool {
	return ecc >= 0 && ecc < 1
}

func validateShape(ecc, sma float64) error {
	if !validEccentricity(ecc) {
		return &ValidationError{Param: ParamEccentricity, Value: ecc}
	}
	if !(sma >= 0) || math.IsInf(sma, 1) {
		return &ValidationError{Param: ParamSemimajor, Value: sma}
	}
	return nil
}

func validateLocation(lon, lat float64) error {
	if !(lon > -math.Pi && lon <= math.Pi) {
		return &ValidationError{Param: ParamLongitude, Value: lon}
	}
	if !(lat >= -1 && lat <= 1) {
		return &ValidationError{Param: ParamLatitude, Value: lat}
	}
	return nil
}
