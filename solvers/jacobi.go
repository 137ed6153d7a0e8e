package solvers

import (
	"fmt"

	"github.com/notargets/fem2d/utils"
)

// JacobiPreconditioner scales by the inverse diagonal of A.
type JacobiPreconditioner struct {
	InvDiag []float64
}

func Jacobi(A *utils.SparseMatrix) (P *JacobiPreconditioner, err error) {
	var (
		N, _ = A.Dims()
	)
	P = &JacobiPreconditioner{InvDiag: make([]float64, N)}
	for i := range P.InvDiag {
		d := A.Diagonal(i)
		if d == 0 {
			return nil, fmt.Errorf("%w: diagonal of row %d is zero", ErrZeroPivot, i)
		}
		P.InvDiag[i] = 1 / d
	}
	return
}

func (P *JacobiPreconditioner) Solve(dst, r []float64) {
	if len(dst) != len(P.InvDiag) || len(r) != len(P.InvDiag) {
		panic(fmt.Errorf("%w: preconditioner has %d rows, len(dst) = %d, len(r) = %d",
			utils.ErrDimensionMismatch, len(P.InvDiag), len(dst), len(r)))
	}
	for i, d := range P.InvDiag {
		dst[i] = d * r[i]
	}
}
