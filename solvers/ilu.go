package solvers

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/fem2d/utils"
)

var ErrZeroPivot = errors.New("zero pivot")

// ILU holds no-fill incomplete factors with L*U matching A on A's pattern.
// L is unit lower triangular with its diagonal stored, U is upper triangular.
type ILU struct {
	L, U *utils.SparseMatrix
}

/*
IncompleteLU computes the ILU(0) factorization of A, row by row (the IKJ ordering):

	w = A[i,:]
	for k < i in pattern(i), ascending:
		w[k] /= U[k,k]
		for j > k in pattern(U[k,:]) and in pattern(i):
			w[j] -= w[k] * U[k,j]
	L[i,:i] = w[:i], L[i,i] = 1, U[i,i:] = w[i:]

Updates that would land outside the pattern of row i are dropped. A pivot whose magnitude falls
below a roundoff threshold relative to the row's scale returns ErrZeroPivot.
*/
func IncompleteLU(A *utils.SparseMatrix) (P *ILU, err error) {
	var (
		N, _ = A.Dims()
		L    = utils.NewSparseMatrix(N)
		U    = utils.NewSparseMatrix(N)
		w    = make([]float64, N)
		mark = make([]bool, N)
	)
	for i := 0; i < N; i++ {
		var (
			cols     = A.RowPattern(i)
			rowScale float64
		)
		for j, v := range A.Row(i) {
			w[j], mark[j] = v, true
			rowScale = math.Max(rowScale, math.Abs(v))
		}
		for _, k := range cols {
			if k >= i {
				break
			}
			w[k] /= U.Diagonal(k)
			for j, ukj := range U.Row(k) {
				if j > k && mark[j] {
					w[j] -= w[k] * ukj
				}
			}
		}
		if !mark[i] || math.Abs(w[i]) <= 1.e-14*rowScale || math.IsNaN(w[i]) {
			err = fmt.Errorf("%w: row %d of %d", ErrZeroPivot, i, N)
			return
		}
		for _, j := range cols {
			if j < i {
				err = L.Accumulate(i, j, w[j])
			} else {
				err = U.Accumulate(i, j, w[j])
			}
			if err != nil {
				return
			}
			w[j], mark[j] = 0, false
		}
		if err = L.Accumulate(i, i, 1); err != nil {
			return
		}
	}
	L.SetReadOnly("L")
	U.SetReadOnly("U")
	P = &ILU{L: L, U: U}
	return
}

// Solve applies (LU)^-1 by forward then backward substitution.
func (P *ILU) Solve(dst, r []float64) {
	var (
		N, _ = P.L.Dims()
	)
	if len(dst) != N || len(r) != N {
		panic(fmt.Errorf("%w: factors are %dx%d, len(dst) = %d, len(r) = %d",
			utils.ErrDimensionMismatch, N, N, len(dst), len(r)))
	}
	for i := 0; i < N; i++ {
		sum := r[i]
		for j, lij := range P.L.Row(i) {
			if j >= i {
				break
			}
			sum -= lij * dst[j]
		}
		dst[i] = sum
	}
	for i := N - 1; i >= 0; i-- {
		sum := dst[i]
		for j, uij := range P.U.Row(i) {
			if j > i {
				sum -= uij * dst[j]
			}
		}
		dst[i] = sum / P.U.Diagonal(i)
	}
}
