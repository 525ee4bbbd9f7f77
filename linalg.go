package adcs

import "gonum.org/v1/gonum/mat"

// Identity3 returns a new 3x3 identity matrix.
func Identity3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

// Outer returns the outer product a*b^T of two 3x1 vectors.
// The m parameter allows to multiply directly the outer product with a scalar.
func Outer(m float64, a, b []float64) *mat.Dense {
	o := mat.NewDense(3, 3, nil)
	o.Outer(m, mat.NewVecDense(3, a), mat.NewVecDense(3, b))
	return o
}

// Skew returns the tilde (cross product) matrix of the provided vector, such that Skew(a)*b = a x b.
func Skew(a []float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{0, -a[2], a[1],
		a[2], 0, -a[0],
		-a[1], a[0], 0})
}

// Adjugate returns the adjugate (transposed cofactor matrix) of a 3x3 matrix, such that m*adj(m) = det(m)*I.
func Adjugate(m mat.Matrix) *mat.Dense {
	adj := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			// The cyclic permutation of indices already carries the cofactor sign.
			cof := m.At(i1, j1)*m.At(i2, j2) - m.At(i1, j2)*m.At(i2, j1)
			adj.Set(j, i, cof)
		}
	}
	return adj
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v []float64) []float64 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(len(v), v))
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}
