package adcs

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// Observation is a pair of corresponding directions seen from the reference (ECI) frame and from the
// spacecraft body frame. Both vectors are expected to be unit vectors.
type Observation struct {
	Name      string    // Optional sensor name
	Reference []float64 // Model direction in the reference frame
	Body      []float64 // Measured direction in the body frame
	Weight    float64   // Usually 1/σ² where σ² is the variance of the sensor
}

// NewObservation returns a new observation.
func NewObservation(name string, reference, body []float64, weight float64) Observation {
	return Observation{name, reference, body, weight}
}

// NewObservations returns the observations from N reference vectors, N body vectors and N weights.
func NewObservations(reference, body [][]float64, weights []float64) ([]Observation, error) {
	if len(reference) != len(body) || len(body) != len(weights) {
		return nil, errors.Wrapf(ErrDegenerateInput, "got %d reference vectors, %d body vectors and %d weights", len(reference), len(body), len(weights))
	}
	obs := make([]Observation, len(weights))
	for i := range weights {
		obs[i] = Observation{Name: fmt.Sprintf("obs%d", i), Reference: reference[i], Body: body[i], Weight: weights[i]}
	}
	return obs, nil
}

// Validate returns an error if the observation cannot be used.
func (o Observation) Validate() error {
	if len(o.Reference) != 3 || len(o.Body) != 3 {
		return errors.Wrapf(ErrDegenerateInput, "%s: vectors must have three components", o)
	}
	if !isFinite(o.Weight) || !isFinite(o.Reference...) || !isFinite(o.Body...) {
		return errors.Wrapf(ErrDegenerateInput, "%s: not finite", o)
	}
	if o.Weight < 0 {
		return errors.Wrapf(ErrDegenerateInput, "%s: negative weight", o)
	}
	if scalar.EqualWithinAbs(norm(o.Reference), 0, zeroNorm) || scalar.EqualWithinAbs(norm(o.Body), 0, zeroNorm) {
		return errors.Wrapf(ErrDegenerateInput, "%s: nil vector", o)
	}
	return nil
}

func (o Observation) String() string {
	name := o.Name
	if name == "" {
		name = "observation"
	}
	return fmt.Sprintf("%s (w=%g): ref=%+v body=%+v", name, o.Weight, o.Reference, o.Body)
}

// checkObservations returns an error wrapping ErrDegenerateInput if the observations cannot define an
// attitude: fewer than two weighted observations, or all weighted vectors collinear in either frame.
func checkObservations(obs []Observation, collinearityTol float64) error {
	weighted := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if err := o.Validate(); err != nil {
			return err
		}
		if o.Weight > 0 {
			weighted = append(weighted, o)
		}
	}
	if len(weighted) < 2 {
		return errors.Wrapf(ErrDegenerateInput, "%d weighted observations out of %d, need at least two", len(weighted), len(obs))
	}
	if !spans(weighted, collinearityTol, func(o Observation) []float64 { return o.Body }) {
		return errors.Wrap(ErrDegenerateInput, "body vectors are collinear")
	}
	if !spans(weighted, collinearityTol, func(o Observation) []float64 { return o.Reference }) {
		return errors.Wrap(ErrDegenerateInput, "reference vectors are collinear")
	}
	return nil
}

// spans returns whether at least two of the selected vectors are not collinear.
func spans(obs []Observation, tol float64, vec func(Observation) []float64) bool {
	for i := 0; i < len(obs); i++ {
		u := vec(obs[i])
		for j := i + 1; j < len(obs); j++ {
			v := vec(obs[j])
			if norm(cross(u, v)) > tol*norm(u)*norm(v) {
				return true
			}
		}
	}
	return false
}
