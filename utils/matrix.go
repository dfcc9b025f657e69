package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a gonum dense matrix with the operations the solver pipeline
// uses, so call sites stay terse and chainable
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v",
				nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.M.RawMatrix().Data
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	var (
		data = m.M.RawMatrix().Data
	)
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

// MulVec multiplies m by the column vector b. Does not change receiver
func (m Matrix) MulVec(b Vector) (R Vector) {
	var (
		nr, _ = m.Dims()
	)
	R = NewVector(nr)
	R.V.MulVec(m.M, b.V)
	return
}

func (m Matrix) Min() (min float64) {
	var (
		data = m.M.RawMatrix().Data
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	var (
		data = m.M.RawMatrix().Data
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

// IsFinite reports whether every entry is a normal number - a cheap screen
// for a blown-up assembly before attempting a factorization
func (m Matrix) IsFinite() bool {
	var (
		data = m.M.RawMatrix().Data
	)
	for _, val := range data {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return false
		}
	}
	return true
}

// LUSolve solves m*x = b by dense LU with partial pivoting. The receiver is
// not modified. A singular factorization returns an error rather than NaNs.
func (m Matrix) LUSolve(b Vector) (x Vector, err error) {
	var (
		nr, nc = m.Dims()
		lu     mat.LU
	)
	if nr != nc {
		err = fmt.Errorf("LUSolve requires a square matrix, have %dx%d", nr, nc)
		return
	}
	if b.Len() != nr {
		err = fmt.Errorf("dimension mismatch: matrix is %dx%d, rhs has length %d", nr, nc, b.Len())
		return
	}
	lu.Factorize(m.M)
	x = NewVector(nr)
	if err = lu.SolveVecTo(x.V, false, b.V); err != nil {
		err = fmt.Errorf("dense solve failed: %w", err)
	}
	return
}
