package adcs

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// All rotation matrices below are passive: they express the components of a vector
// in a frame rotated by the provided angle, i.e. they are direction cosine matrices.

// Rot313Vec converts a given vector with a 3-1-3 Euler rotation.
func Rot313Vec(θ1, θ2, θ3 float64, vI []float64) []float64 {
	return MxV33(R3R1R3(θ1, θ2, θ3), vI)
}

// R3R1R3 performs a 3-1-3 Euler parameter rotation.
// From Schaub and Junkins.
func R3R1R3(θ1, θ2, θ3 float64) *mat.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

// EulerDCM returns the DCM of three successive rotations about the axes of the provided sequence,
// e.g. "313" or "321". θ1 is the angle of the first rotation.
func EulerDCM(sequence string, θ1, θ2, θ3 float64) (*mat.Dense, error) {
	if len(sequence) != 3 {
		return nil, errors.Errorf("invalid Euler sequence %q", sequence)
	}
	axes := [...]func(float64) *mat.Dense{R1, R2, R3}
	dcm := Identity3()
	for i, θ := range []float64{θ1, θ2, θ3} {
		axis := int(sequence[i]) - '1'
		if axis < 0 || axis > 2 || (i > 0 && sequence[i] == sequence[i-1]) {
			return nil, errors.Errorf("invalid Euler sequence %q", sequence)
		}
		var next mat.Dense
		next.Mul(axes[axis](θ), dcm)
		dcm = &next
	}
	return dcm, nil
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}
