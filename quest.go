package adcs

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Solution is the result of a QUEST estimation.
type Solution struct {
	Q          Quaternion // Rotation from the body frame to the reference frame (see Quaternion.Rotate)
	Eigenvalue float64    // Largest eigenvalue of the Davenport K matrix
	Loss       float64    // Wahba's loss at the optimum, i.e. the sum of the weights minus the eigenvalue
	Iterations int        // Number of Newton iterations
	Rotations  int        // Axis (1-3) of the sequential rotation used, 0 if none
	Status     Status
}

func (s Solution) String() string {
	return fmt.Sprintf("%s q=%s λ=%.9f loss=%.3e iter=%d", s.Status, s.Q, s.Eigenvalue, s.Loss, s.Iterations)
}

// Estimator solves Wahba's problem with the QUaternion ESTimator (QUEST) algorithm.
// An Estimator is stateless and may be shared between goroutines.
type Estimator struct {
	conf   Config
	logger kitlog.Logger
}

// NewEstimator returns a new QUEST estimator. If the logger is nil, nothing is logged.
// The logger receives the attitude profile matrix and a summary of each estimation at the debug level.
func NewEstimator(conf Config, logger kitlog.Logger) (*Estimator, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Estimator{conf, kitlog.With(logger, "estimator", "quest")}, nil
}

// Config returns the configuration of this estimator.
func (e *Estimator) Config() Config {
	return e.conf
}

// QUEST returns the quaternion rotating the body frame into the reference frame which best fits the
// provided observations. A non positive tolerance uses the default tolerance.
func QUEST(obs []Observation, tolerance float64) (Quaternion, error) {
	conf := DefaultConfig()
	if tolerance > 0 {
		conf.Tolerance = tolerance
	}
	e, err := NewEstimator(conf, nil)
	if err != nil {
		return Quaternion{}, err
	}
	sol, err := e.Estimate(obs)
	if err != nil {
		return Quaternion{}, err
	}
	return sol.Q, nil
}

// Estimate returns the optimal attitude for the provided observations.
// On a convergence failure, the returned solution still holds the last eigenvalue and iteration count.
func (e *Estimator) Estimate(obs []Observation) (Solution, error) {
	if err := checkObservations(obs, e.conf.CollinearityTolerance); err != nil {
		e.logger.Log("level", "warning", "status", DegenerateInput, "err", err)
		return Solution{Status: DegenerateInput}, err
	}
	sol, err := e.solve(obs)
	if errors.Is(err, ErrNormalizationSingularity) && e.conf.SequentialRotations {
		for axis := 0; axis < 3; axis++ {
			flip := halfTurn(axis)
			rotated := make([]Observation, len(obs))
			for i, o := range obs {
				rotated[i] = o
				rotated[i].Reference = flip.Rotate(o.Reference)
			}
			sol, err = e.solve(rotated)
			if err == nil {
				sol.Q = flip.Conjugate().Mul(sol.Q)
				sol.Rotations = axis + 1
				break
			}
			if !errors.Is(err, ErrNormalizationSingularity) {
				break
			}
		}
	}
	sol.Status = StatusOf(err)
	if err != nil {
		e.logger.Log("level", "warning", "status", sol.Status, "err", err)
		return sol, err
	}
	e.logger.Log("level", "debug", "lambda", sol.Eigenvalue, "loss", sol.Loss, "iterations", sol.Iterations, "rotations", sol.Rotations, "q", sol.Q)
	return sol, nil
}

// solve performs a single QUEST pass without any sequential rotation.
func (e *Estimator) solve(obs []Observation) (Solution, error) {
	// The sum of the weights is the eigenvalue if all observations perfectly agree.
	λ0 := 0.0
	Bt := mat.NewDense(3, 3, nil)
	for _, o := range obs {
		λ0 += o.Weight
		Bt.Add(Bt, Outer(o.Weight, o.Reference, o.Body))
	}
	// B = Σ w b r^T
	B := mat.DenseCopyOf(Bt.T())
	e.logger.Log("level", "debug", "B", fmt.Sprintf("%v", mat.Formatted(B, mat.FormatMATLAB())))

	var S mat.Dense
	S.Add(B, B.T())
	detS := mat.Det(&S)
	κ := mat.Trace(B)
	z := []float64{B.At(1, 2) - B.At(2, 1), B.At(2, 0) - B.At(0, 2), B.At(0, 1) - B.At(1, 0)}
	Sz := MxV33(&S, z)
	SSz := MxV33(&S, Sz)

	// Coefficients of the characteristic equation λ⁴ - (a+b)λ² - cλ + (ab + cκ - d) = 0
	a := κ*κ - mat.Trace(Adjugate(&S))
	b := κ*κ + dot(z, z)
	c := detS + dot(z, Sz)
	d := dot(z, SSz)

	// Newton-Raphson for the largest root.
	// f' and the quaternion norm are homogeneous of degree three in the weights.
	scale := λ0 * λ0 * λ0
	λ, λPrev := λ0, math.Inf(1)
	iter := 0
	for math.Abs(λ-λPrev) > e.conf.Tolerance && iter < e.conf.MaxIterations {
		λPrev = λ
		fPrime := 4*λ*λ*λ - 2*(a+b)*λ - c
		if math.Abs(fPrime) <= e.conf.DerivativeTolerance*scale {
			return Solution{Eigenvalue: λ, Loss: λ0 - λ, Iterations: iter}, errors.Wrapf(ErrConvergenceFailure, "null derivative at λ=%g after %d iterations", λ, iter)
		}
		λ -= (λ*λ*λ*λ - (a+b)*λ*λ - c*λ + (a*b + c*κ - d)) / fPrime
		iter++
	}
	if !isFinite(λ) || math.Abs(λ-λPrev) > e.conf.Tolerance {
		return Solution{Eigenvalue: λ, Loss: λ0 - λ, Iterations: iter}, errors.Wrapf(ErrConvergenceFailure, "|Δλ|=%g after %d iterations", math.Abs(λ-λPrev), iter)
	}

	// Eigenvector of the optimal eigenvalue.
	α := λ*λ - a
	β := λ - κ
	γ := (λ+κ)*α - detS
	var M, βS mat.Dense
	M.Mul(&S, &S)
	βS.Scale(β, &S)
	M.Add(&M, &βS)
	αI := Identity3()
	αI.Scale(α, αI)
	M.Add(&M, αI)
	x := MxV33(&M, z)

	sol := Solution{Eigenvalue: λ, Loss: λ0 - λ, Iterations: iter}
	normQ := math.Sqrt(γ*γ + dot(x, x))
	if !isFinite(normQ) || normQ <= e.conf.SingularityTolerance*scale {
		return sol, errors.Wrapf(ErrNormalizationSingularity, "norm=%g", normQ)
	}
	sol.Q = Quaternion{x[0] / normQ, x[1] / normQ, x[2] / normQ, γ / normQ}
	return sol, nil
}

// halfTurn returns the quaternion of a rotation of π about the provided axis (0, 1 or 2).
func halfTurn(axis int) Quaternion {
	v := make([]float64, 3)
	v[axis] = 1
	return Quaternion{v[0], v[1], v[2], 0}
}
