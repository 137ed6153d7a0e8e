package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

/*
Dense vector kernels over plain []float64, routed through blas64 so that an optimized BLAS
(see blas_netlib.go) accelerates the solver loops without touching callers.
*/

// Column views a slice as an N x 1 matrix.
type Column []float64

func (v Column) Dims() (r, c int)    { return len(v), 1 }
func (v Column) At(i, _ int) float64 { return v[i] }
func (v Column) T() mat.Matrix       { return mat.Transpose{Matrix: v} }
func (v Column) RawVector() blas64.Vector {
	return blas64.Vector{N: len(v), Data: v, Inc: 1}
}

func NewVecConst(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

func Dot(x, y []float64) float64 {
	checkLen(x, y)
	return blas64.Dot(Column(x).RawVector(), Column(y).RawVector())
}

// Axpy computes y += alpha*x
func Axpy(alpha float64, x, y []float64) {
	checkLen(x, y)
	blas64.Axpy(alpha, Column(x).RawVector(), Column(y).RawVector())
}

// Xpay computes y = x + beta*y, the search direction update of CG.
func Xpay(x []float64, beta float64, y []float64) {
	checkLen(x, y)
	for i, xi := range x {
		y[i] = xi + beta*y[i]
	}
}

func Norm2(x []float64) float64 {
	return blas64.Nrm2(Column(x).RawVector())
}

// Sub computes dst = a - b
func Sub(dst, a, b []float64) {
	checkLen(a, b)
	checkLen(dst, a)
	for i := range a {
		dst[i] = a[i] - b[i]
	}
}

func CopyVec(dst, src []float64) {
	checkLen(dst, src)
	blas64.Copy(Column(src).RawVector(), Column(dst).RawVector())
}

// MaxAbsDiff returns the infinity norm of a - b.
func MaxAbsDiff(a, b []float64) (max float64) {
	checkLen(a, b)
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return
}

func checkLen(a, b []float64) {
	if len(a) != len(b) {
		panic(fmt.Errorf("%w: vector lengths %d and %d", ErrDimensionMismatch, len(a), len(b)))
	}
}
