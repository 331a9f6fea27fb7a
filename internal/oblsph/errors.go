package oblsph

import (
	"errors"
	"fmt"

	"github.com/golang/geo/s1"
)

// ErrOutOfRange is matched by every ValidationError via errors.Is.
var ErrOutOfRange = errors.New("parameter out of range")

// Param identifies a defining parameter or coordinate.
type Param string

const (
	ParamEccentricity Param = "eccentricity"
	ParamSemimajor    Param = "semimajor axis"
	ParamLongitude    Param = "longitude"
	ParamLatitude     Param = "latitude"
)

// ValidationError reports a constructor argument outside its valid range.
// Value is in the units it was supplied in (radians for longitude).
type ValidationError struct {
	Param Param
	Value float64
}

func (e *ValidationError) Error() string {
	if e.Param == ParamLongitude {
		return fmt.Sprintf("invalid %s: %v deg", e.Param, s1.Angle(e.Value).Degrees())
	}
	return fmt.Sprintf("invalid %s: %v", e.Param, e.Value)
}

// Is reports whether target is ErrOutOfRange.
func (e *ValidationError) Is(target error) bool {
	return target == ErrOutOfRange
}
