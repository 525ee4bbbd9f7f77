package adcs

import (
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestCovariance(t *testing.T) {
	obs := []Observation{
		{Reference: []float64{0, 0, 1}, Body: []float64{1, 0, 0}, Weight: 1},
		{Reference: []float64{1, 0, 0}, Body: []float64{0, 1, 0}, Weight: 1},
	}
	P, err := Covariance(obs)
	if err != nil {
		t.Fatal(err)
	}
	exp := mat.NewSymDense(3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 0.5})
	if !mat.EqualApprox(P, exp, 1e-12) {
		t.Fatalf("P =\n%v", mat.Formatted(P))
	}
	// Better sensors shrink the covariance.
	for i := range obs {
		obs[i].Weight = 1e6
	}
	P, err = Covariance(obs)
	if err != nil {
		t.Fatal(err)
	}
	exp.ScaleSym(1e-6, exp)
	if !mat.EqualApprox(P, exp, 1e-15) {
		t.Fatalf("P =\n%v", mat.Formatted(P))
	}
}

func TestCovarianceDegenerate(t *testing.T) {
	x := []float64{1, 0, 0}
	if _, err := Covariance([]Observation{{Reference: x, Body: x, Weight: 1}, {Reference: x, Body: x, Weight: 4}}); !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("collinear observations: %v", err)
	}
	if _, err := Covariance([]Observation{{Reference: x, Body: x, Weight: -1}}); !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("invalid observation: %v", err)
	}
}
