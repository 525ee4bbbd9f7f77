package adcs

import "github.com/pkg/errors"

// Status tags the outcome of an estimation.
type Status uint8

const (
	// Converged is a successful estimation.
	Converged Status = iota
	// DegenerateInput is returned for too few observations, null weights or collinear vectors.
	DegenerateInput
	// ConvergenceFailure is returned when the Newton iteration on the eigenvalue does not converge.
	ConvergenceFailure
	// NormalizationSingularity is returned when the quaternion cannot be normalized (rotation of π).
	NormalizationSingularity
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case DegenerateInput:
		return "degenerate input"
	case ConvergenceFailure:
		return "convergence failure"
	case NormalizationSingularity:
		return "normalization singularity"
	default:
		panic("unknown status")
	}
}

// Sentinel errors of the estimator. Returned errors wrap one of these with some context.
var (
	ErrDegenerateInput          = errors.New("degenerate input")
	ErrConvergenceFailure       = errors.New("eigenvalue did not converge")
	ErrNormalizationSingularity = errors.New("quaternion normalization singularity")
)

// StatusOf returns the status tag corresponding to the provided error, Converged if the error is nil.
// Errors which are not estimator errors are considered to be degenerate inputs.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return Converged
	case errors.Is(err, ErrConvergenceFailure):
		return ConvergenceFailure
	case errors.Is(err, ErrNormalizationSingularity):
		return NormalizationSingularity
	default:
		return DegenerateInput
	}
}
