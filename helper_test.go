package adcs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const ε = 1e-12

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !scalar.EqualWithinAbs(a[i], b[i], 1e-9) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Abs(a - b)
	if diff < 1e-10 || math.Abs(diff-2*math.Pi) < 1e-10 {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10fπ", diff/math.Pi)
}

// perfectObservations returns noise free observations of the provided reference directions.
func perfectObservations(truth Quaternion, weights []float64, refs ...[]float64) []Observation {
	A := truth.DCM()
	obs := make([]Observation, len(refs))
	for i, r := range refs {
		r = unit(r)
		obs[i] = Observation{Name: fmt.Sprintf("obs%d", i), Reference: r, Body: MxV33(A, r), Weight: weights[i]}
	}
	return obs
}
