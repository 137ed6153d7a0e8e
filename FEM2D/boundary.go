package FEM2D

import (
	"fmt"

	"github.com/notargets/fem2d/geometry2D"
	"github.com/notargets/fem2d/utils"
)

// BoundaryFunc gives the Dirichlet value at a physical boundary point.
type BoundaryFunc func(p geometry2D.Point) float64

// SetDiagonalRows replaces each listed row of A with the identity row.
func SetDiagonalRows(A *utils.SparseMatrix, nodes []int) (err error) {
	for _, node := range nodes {
		if err = A.SetDiagonalRow(node); err != nil {
			return
		}
	}
	return
}

// ApplyBC overwrites f at every boundary node with g at that node, discarding
// whatever assembly put there.
func ApplyBC(f []float64, tm *geometry2D.TriMesh, g BoundaryFunc) (err error) {
	if len(f) != tm.NumNodes() {
		return fmt.Errorf("%w: load vector has length %d, mesh has %d nodes",
			utils.ErrDimensionMismatch, len(f), tm.NumNodes())
	}
	for _, node := range tm.BoundaryNodes {
		f[node] = g(tm.Coordinate(node))
	}
	return
}

/*
ApplyDirichlet imposes u = g on the boundary nodes and keeps A symmetric.

SetDiagonalRows alone leaves column b of the interior rows in place, so the interior equations
still couple to the boundary unknowns and the system loses symmetry, which conjugate gradient
needs. ApplyDirichlet first moves the known boundary values to the right hand side,

	f[i] -= A[i,b] * g(b)    for interior i,

removes A[i,b] from the pattern, and then applies SetDiagonalRows and ApplyBC. The solution is
the same as with the row only treatment; the matrix is the symmetric positive definite one.
*/
func ApplyDirichlet(A *utils.SparseMatrix, f []float64, tm *geometry2D.TriMesh, g BoundaryFunc) (err error) {
	var (
		N, _ = A.Dims()
		cols []int
	)
	if len(f) != N || tm.NumNodes() != N {
		return fmt.Errorf("%w: matrix is %dx%d, load vector %d, mesh %d nodes",
			utils.ErrDimensionMismatch, N, N, len(f), tm.NumNodes())
	}
	for _, b := range tm.BoundaryNodes {
		gb := g(tm.Coordinate(b))
		// A is structurally symmetric, so the rows holding column b are the columns of row b
		cols = append(cols[:0], A.RowPattern(b)...)
		for _, i := range cols {
			if i == b || tm.IsBoundary(i) {
				continue
			}
			aib := A.At(i, b)
			f[i] -= aib * gb
			if err = A.Zero(i, b); err != nil {
				return
			}
		}
	}
	if err = SetDiagonalRows(A, tm.BoundaryNodes); err != nil {
		return
	}
	return ApplyBC(f, tm, g)
}
