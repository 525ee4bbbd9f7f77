package adcs

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"
)

const exportTimeFormat = "2006-01-02 15:04:05"

// SolutionWriter writes estimation solutions as CSV records.
type SolutionWriter struct {
	w *csv.Writer
}

// NewSolutionWriter writes the header of the report and returns a new SolutionWriter.
func NewSolutionWriter(w io.Writer) (*SolutionWriter, error) {
	if _, err := fmt.Fprintf(w, "# Creation date (UTC): %s\n# Quaternions rotate the body frame to the reference frame; errors are in degrees.\n", time.Now().UTC().Format(exportTimeFormat)); err != nil {
		return nil, err
	}
	sw := &SolutionWriter{csv.NewWriter(w)}
	hdr := []string{"trial", "epoch", "status", "qx", "qy", "qz", "qw", "lambda", "loss", "iterations", "rotations", "errorDeg", "sigma3xDeg", "sigma3yDeg", "sigma3zDeg"}
	if err := sw.w.Write(hdr); err != nil {
		return nil, err
	}
	return sw, nil
}

// Write writes one record, including the angle between the solution and the true attitude, and
// the 3σ bounds of the attitude error per body axis when cov (from Covariance) is not nil.
func (sw *SolutionWriter) Write(trial int, epoch time.Time, sol Solution, truth Quaternion, cov *mat.SymDense) error {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', 12, 64) }
	errDeg := ""
	if sol.Status == Converged {
		errDeg = f(sol.Q.AngleTo(truth) / deg2rad)
	}
	sigma3 := make([]string, 3)
	if cov != nil {
		for i := range sigma3 {
			sigma3[i] = f(3 * math.Sqrt(cov.At(i, i)) / deg2rad)
		}
	}
	return sw.w.Write(append([]string{
		strconv.Itoa(trial), epoch.UTC().Format(exportTimeFormat), sol.Status.String(),
		f(sol.Q.X), f(sol.Q.Y), f(sol.Q.Z), f(sol.Q.W),
		f(sol.Eigenvalue), f(sol.Loss), strconv.Itoa(sol.Iterations), strconv.Itoa(sol.Rotations), errDeg,
	}, sigma3...))
}

// Flush flushes the underlying CSV writer and returns any write error.
func (sw *SolutionWriter) Flush() error {
	sw.w.Flush()
	return sw.w.Error()
}
