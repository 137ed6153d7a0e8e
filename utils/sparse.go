package utils

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrReadOnly          = errors.New("write to read only matrix")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

/*
SparseMatrix is a square matrix that is assembled by accumulation.

Values are stored in a DOK (dictionary of keys, keyed on (row,col)), and each row keeps a sorted
list of the columns that have been materialized. Only positions that were accumulated into are
part of the pattern; reading any other position returns 0 and allocates nothing.
*/
type SparseMatrix struct {
	M        *sparse.DOK
	rows     [][]int
	n        int
	readOnly bool
	name     string
}

func NewSparseMatrix(n int) (R *SparseMatrix) {
	R = &SparseMatrix{
		M:    sparse.NewDOK(n, n),
		rows: make([][]int, n),
		n:    n,
		name: "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m *SparseMatrix) Dims() (r, c int) { return m.n, m.n }
func (m *SparseMatrix) T() mat.Matrix    { return mat.Transpose{Matrix: m} }
func (m *SparseMatrix) At(i, j int) float64 {
	if err := m.checkIndex(i, j); err != nil {
		panic(err)
	}
	return m.M.At(i, j)
}

func (m *SparseMatrix) SetReadOnly(name ...string) *SparseMatrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return m
}

// Get returns the value at (i,j), 0 if the position was never accumulated.
func (m *SparseMatrix) Get(i, j int) (val float64, err error) {
	if err = m.checkIndex(i, j); err != nil {
		return
	}
	val = m.M.At(i, j)
	return
}

// Accumulate adds val to the entry at (i,j), adding the position to the
// pattern if needed. Repeated calls sum.
func (m *SparseMatrix) Accumulate(i, j int, val float64) (err error) {
	if err = m.checkWritable(); err != nil {
		return
	}
	if err = m.checkIndex(i, j); err != nil {
		return
	}
	if m.insert(i, j) {
		m.M.Set(i, j, val)
		return
	}
	m.M.Set(i, j, m.M.At(i, j)+val)
	return
}

// SetDiagonalRow clears every off diagonal entry of row r and sets the
// diagonal to 1. Column r of the other rows is left as is.
func (m *SparseMatrix) SetDiagonalRow(r int) (err error) {
	if err = m.checkWritable(); err != nil {
		return
	}
	if err = m.checkIndex(r, r); err != nil {
		return
	}
	for _, j := range m.rows[r] {
		if j != r {
			m.M.Set(r, j, 0)
		}
	}
	m.rows[r] = append(m.rows[r][:0], r)
	m.M.Set(r, r, 1)
	return
}

// Zero removes (i,j) from the pattern.
func (m *SparseMatrix) Zero(i, j int) (err error) {
	if err = m.checkWritable(); err != nil {
		return
	}
	if err = m.checkIndex(i, j); err != nil {
		return
	}
	cols := m.rows[i]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		m.rows[i] = append(cols[:k], cols[k+1:]...)
		m.M.Set(i, j, 0)
	}
	return
}

// Row yields the (column, value) pairs of row i in ascending column order,
// visiting materialized entries only.
func (m *SparseMatrix) Row(i int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for _, j := range m.rows[i] {
			if !yield(j, m.M.At(i, j)) {
				return
			}
		}
	}
}

// RowPattern returns the sorted materialized columns of row i. The slice
// belongs to the matrix.
func (m *SparseMatrix) RowPattern(i int) []int { return m.rows[i] }
func (m *SparseMatrix) RowNNZ(i int) int       { return len(m.rows[i]) }
func (m *SparseMatrix) Diagonal(i int) float64 { return m.M.At(i, i) }

func (m *SparseMatrix) NNZ() (nnz int) {
	for _, cols := range m.rows {
		nnz += len(cols)
	}
	return
}

// InPattern reports whether (i,j) has been materialized.
func (m *SparseMatrix) InPattern(i, j int) bool {
	cols := m.rows[i]
	k := sort.SearchInts(cols, j)
	return k < len(cols) && cols[k] == j
}

// MulVec computes dst = m * x using row iteration.
func (m *SparseMatrix) MulVec(dst, x []float64) {
	if len(dst) != m.n || len(x) != m.n {
		panic(fmt.Errorf("%w: matrix is %dx%d, len(dst) = %d, len(x) = %d",
			ErrDimensionMismatch, m.n, m.n, len(dst), len(x)))
	}
	for i, cols := range m.rows {
		var sum float64
		for _, j := range cols {
			sum += m.M.At(i, j) * x[j]
		}
		dst[i] = sum
	}
}

func (m *SparseMatrix) Copy() (R *SparseMatrix) {
	R = NewSparseMatrix(m.n)
	for i, cols := range m.rows {
		R.rows[i] = make([]int, len(cols))
		copy(R.rows[i], cols)
		for _, j := range cols {
			R.M.Set(i, j, m.M.At(i, j))
		}
	}
	return
}

// IsSymmetric compares every stored entry against its transpose position.
func (m *SparseMatrix) IsSymmetric(tol float64) bool {
	for i, cols := range m.rows {
		for _, j := range cols {
			if math.Abs(m.M.At(i, j)-m.M.At(j, i)) > tol {
				return false
			}
		}
	}
	return true
}

// ToCSR snapshots the matrix into compressed row form for the read only phase.
// The CSR carries exactly the materialized pattern.
func (m *SparseMatrix) ToCSR() *sparse.CSR {
	var (
		nnz    = m.NNZ()
		indptr = make([]int, m.n+1)
		ind    = make([]int, 0, nnz)
		data   = make([]float64, 0, nnz)
	)
	for i, cols := range m.rows {
		for _, j := range cols {
			ind = append(ind, j)
			data = append(data, m.M.At(i, j))
		}
		indptr[i+1] = len(ind)
	}
	return sparse.NewCSR(m.n, m.n, indptr, ind, data)
}

// insert adds (i,j) to the pattern, returning true if it was not there already.
func (m *SparseMatrix) insert(i, j int) bool {
	cols := m.rows[i]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return false
	}
	cols = append(cols, 0)
	copy(cols[k+1:], cols[k:])
	cols[k] = j
	m.rows[i] = cols
	return true
}

func (m *SparseMatrix) checkIndex(i, j int) error {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return fmt.Errorf("%w: (%d,%d) in a %dx%d matrix", ErrIndexOutOfRange, i, j, m.n, m.n)
	}
	return nil
}

func (m *SparseMatrix) checkWritable() error {
	if m.readOnly {
		return fmt.Errorf("%w named: \"%v\"", ErrReadOnly, m.name)
	}
	return nil
}
