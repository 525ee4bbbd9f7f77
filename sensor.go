package adcs

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Sensor defines a direction sensor (sun sensor, star tracker, magnetometer...) with an isotropic
// Gaussian noise, used to simulate observations.
type Sensor struct {
	Name      string
	Sigma     float64 // noise standard deviation, in radians
	Reference ReferenceModel
	noise     *distmv.Normal
}

// NewSensor returns a new sensor. The noise σ is in radians and must be positive.
func NewSensor(name string, σ float64, ref ReferenceModel) (Sensor, error) {
	if !(σ > 0) {
		return Sensor{}, errors.Errorf("sensor %s: σ must be positive (got %g)", name, σ)
	}
	σ2 := σ * σ
	noise, ok := distmv.NewNormal([]float64{0, 0, 0}, mat.NewSymDense(3, []float64{σ2, 0, 0, 0, σ2, 0, 0, 0, σ2}), nil)
	if !ok {
		return Sensor{}, errors.Errorf("sensor %s: NOK in Gaussian", name)
	}
	return Sensor{name, σ, ref, noise}, nil
}

// Weight returns the QUEST weight of this sensor, i.e. 1/σ².
func (s Sensor) Weight() float64 {
	return 1 / (s.Sigma * s.Sigma)
}

// Observe returns a noisy observation of the reference direction by a spacecraft whose attitude is
// the provided quaternion (rotation from the body frame to the reference frame).
func (s Sensor) Observe(truth Quaternion, epoch time.Time) Observation {
	r := unit(s.Reference.Direction(epoch))
	b := MxV33(truth.DCM(), r)
	n := s.noise.Rand(nil)
	for i := range b {
		b[i] += n[i]
	}
	return Observation{Name: s.Name, Reference: r, Body: unit(b), Weight: s.Weight()}
}

func (s Sensor) String() string {
	return fmt.Sprintf("%s (σ=%g rad)", s.Name, s.Sigma)
}
