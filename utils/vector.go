package utils

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Vector wraps a gonum dense vector, mirroring the Matrix wrapper
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			panic("mismatch in allocation: NewVector length does not match data")
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{v}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

func (v Vector) Set(i int, val float64) Vector { // Changes receiver
	v.V.SetVec(i, val)
	return v
}

func (v Vector) Copy() (R Vector) { // Does not change receiver
	var (
		n     = v.Len()
		dataR = make([]float64, n)
	)
	copy(dataR, v.V.RawVector().Data)
	R = NewVector(n, dataR)
	return
}

func (v Vector) Subtract(a Vector) Vector { // Changes receiver
	v.V.SubVec(v.V, a.V)
	return v
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	var (
		data = v.V.RawVector().Data
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

// InfNorm is the maximum absolute entry
func (v Vector) InfNorm() (norm float64) {
	var (
		data = v.V.RawVector().Data
	)
	for _, val := range data {
		if a := math.Abs(val); a > norm {
			norm = a
		}
	}
	return
}

func (v Vector) Min() (min float64) {
	var (
		data = v.V.RawVector().Data
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.V.RawVector().Data
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}
