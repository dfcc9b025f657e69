package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Construction and copy independence
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		C := M.Copy()
		C.Set(0, 0, 99)
		assert.Equal(t, 1., M.At(0, 0))
		assert.Equal(t, 99., C.At(0, 0))
	}
	// Mul
	{
		A := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		B := NewMatrix(2, 2, []float64{
			0, 1,
			1, 0,
		})
		C := A.Mul(B)
		assert.Equal(t, []float64{2, 1, 4, 3}, C.RawMatrix().Data)
	}
	// MulVec
	{
		A := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		x := NewVector(2, []float64{1, 1})
		y := A.MulVec(x)
		assert.Equal(t, 3., y.AtVec(0))
		assert.Equal(t, 7., y.AtVec(1))
	}
	// Min, Max, IsFinite
	{
		M := NewMatrix(2, 2, []float64{-3, 7, 0, 1})
		assert.Equal(t, -3., M.Min())
		assert.Equal(t, 7., M.Max())
		assert.True(t, M.IsFinite())
		M.Set(1, 1, math.NaN())
		assert.False(t, M.IsFinite())
	}
	// Mismatched allocation panics
	{
		assert.Panics(t, func() { NewMatrix(2, 2, []float64{1, 2, 3}) })
	}
}

func TestLUSolve(t *testing.T) {
	// Known 2x2 system
	{
		A := NewMatrix(2, 2, []float64{
			2, 1,
			1, 3,
		})
		b := NewVector(2, []float64{3, 5})
		x, err := A.LUSolve(b)
		assert.NoError(t, err)
		assert.InDelta(t, 0.8, x.AtVec(0), 1e-12)
		assert.InDelta(t, 1.4, x.AtVec(1), 1e-12)
		// Receiver and rhs are untouched
		assert.Equal(t, []float64{2, 1, 1, 3}, A.RawMatrix().Data)
		assert.Equal(t, []float64{3, 5}, b.RawVector().Data)
	}
	// Singular system reports an error instead of NaNs
	{
		A := NewMatrix(2, 2, []float64{
			1, 2,
			2, 4,
		})
		b := NewVector(2, []float64{1, 1})
		_, err := A.LUSolve(b)
		assert.Error(t, err)
	}
	// Shape errors
	{
		A := NewMatrix(2, 3)
		_, err := A.LUSolve(NewVector(2))
		assert.Error(t, err)
		B := NewMatrix(2, 2)
		_, err = B.LUSolve(NewVector(3))
		assert.Error(t, err)
	}
}

func TestVector(t *testing.T) {
	{
		v := NewVector(3, []float64{1, -4, 2})
		assert.Equal(t, 4., v.InfNorm())
		assert.Equal(t, -4., v.Min())
		assert.Equal(t, 2., v.Max())
	}
	{
		v := NewVector(2, []float64{5, 7})
		w := NewVector(2, []float64{2, 3})
		r := v.Copy().Subtract(w)
		assert.Equal(t, []float64{3, 4}, r.RawVector().Data)
		// Copy left the original alone
		assert.Equal(t, []float64{5, 7}, v.RawVector().Data)
	}
	{
		v := NewVector(2, []float64{1, 2}).Scale(3)
		assert.Equal(t, []float64{3, 6}, v.RawVector().Data)
	}
}
