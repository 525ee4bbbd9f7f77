package adcs

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solar"
	sunit "github.com/soniakeys/unit"
)

// ReferenceModel returns the direction of a reference object in the reference (ECI) frame at a given epoch.
type ReferenceModel interface {
	Direction(epoch time.Time) []float64
}

// FixedDirection is a reference model for an inertially fixed direction, such as a star.
type FixedDirection []float64

// Direction implements the ReferenceModel interface.
func (d FixedDirection) Direction(time.Time) []float64 {
	return unit(d)
}

// NewStarDirection returns the fixed direction of a star from its right ascension and declination in degrees.
func NewStarDirection(raDeg, decDeg float64) FixedDirection {
	return FixedDirection(RADec2Unit(sunit.RAFromDeg(raDeg).Rad(), sunit.AngleFromDeg(decDeg).Rad()))
}

// SunModel is the geocentric apparent direction of the Sun (low precision, ~0.01 deg).
type SunModel struct{}

// Direction implements the ReferenceModel interface.
func (SunModel) Direction(epoch time.Time) []float64 {
	return SunDirection(epoch)
}

// SunDirection returns the unit vector from the Earth to the Sun, in the equatorial frame of date.
// The difference between UTC and TT is ignored.
func SunDirection(epoch time.Time) []float64 {
	α, δ := solar.ApparentEquatorial(julian.TimeToJD(epoch.UTC()))
	return RADec2Unit(α.Rad(), δ.Rad())
}
