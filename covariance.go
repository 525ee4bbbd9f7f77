package adcs

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Covariance returns the 3x3 covariance (in rad²) of the attitude error, expressed in the body frame,
// using Shuster's QUEST measurement model. The weight of each observation must be 1/σ² where σ is
// the angular noise (in radians) of the sensor.
func Covariance(obs []Observation) (*mat.SymDense, error) {
	F := mat.NewSymDense(3, nil)
	for _, o := range obs {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.Weight == 0 {
			continue
		}
		b := unit(o.Body)
		for i := 0; i < 3; i++ {
			F.SetSym(i, i, F.At(i, i)+o.Weight)
		}
		F.SymRankOne(F, -o.Weight, mat.NewVecDense(3, b))
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(F); !ok {
		return nil, errors.Wrap(ErrDegenerateInput, "singular Fisher information matrix")
	}
	P := mat.NewSymDense(3, nil)
	if err := chol.InverseTo(P); err != nil {
		return nil, errors.Wrap(ErrDegenerateInput, err.Error())
	}
	return P, nil
}
