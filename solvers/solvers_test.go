package solvers

import (
	"errors"
	"testing"

	"github.com/notargets/fem2d/FEM2D"
	"github.com/notargets/fem2d/geometry2D"
	"github.com/notargets/fem2d/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func tridiagonal(t *testing.T, N int) (A *utils.SparseMatrix) {
	A = utils.NewSparseMatrix(N)
	for i := 0; i < N; i++ {
		require.NoError(t, A.Accumulate(i, i, 4))
		if i > 0 {
			require.NoError(t, A.Accumulate(i, i-1, -1))
		}
		if i < N-1 {
			require.NoError(t, A.Accumulate(i, i+1, -1))
		}
	}
	return
}

// poissonSystem assembles -Lap(u) = -6 with u = 1 + x^2 + 2y^2 on the boundary.
func poissonSystem(t *testing.T, n int) (tm *geometry2D.TriMesh, A *utils.SparseMatrix, F []float64) {
	var err error
	tm, err = geometry2D.NewUnitSquareMesh(n)
	require.NoError(t, err)
	A, err = FEM2D.AssembleMatrix(FEM2D.StiffnessKernel(1), tm)
	require.NoError(t, err)
	F, err = FEM2D.AssembleVector(FEM2D.SourceKernel(func(utils.Vec2) float64 { return -6 }), tm)
	require.NoError(t, err)
	require.NoError(t, FEM2D.ApplyDirichlet(A, F, tm, func(p geometry2D.Point) float64 {
		return 1 + p.X[0]*p.X[0] + 2*p.X[1]*p.X[1]
	}))
	A.SetReadOnly("A")
	return
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "NotStarted", NotStarted.String())
	assert.Equal(t, "Converged", Converged.String())
	assert.Equal(t, "MaxItersReached", MaxItersReached.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}

func TestCG_Tridiagonal(t *testing.T) {
	var (
		N = 12
		A = tridiagonal(t, N)
		b = make([]float64, N)
	)
	for i := range b {
		b[i] = float64(i%3) - 0.5
	}
	res, err := CG(A, b, Settings{})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.LessOrEqual(t, res.Iterations, N)
	assert.LessOrEqual(t, res.ResidualNorm, DefaultTolerance*res.InitialResidualNorm)

	var want mat.VecDense
	require.NoError(t, want.SolveVec(mat.DenseCopyOf(A), mat.NewVecDense(N, b)))
	assert.InDeltaSlice(t, want.RawVector().Data, res.X, 1e-12)
}

func TestCG_ZeroRHS(t *testing.T) {
	A := tridiagonal(t, 5)
	res, err := CG(A, make([]float64, 5), Settings{})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.Equal(t, 0, res.Iterations)
	assert.Equal(t, make([]float64, 5), res.X)
}

func TestCG_MaxIterations(t *testing.T) {
	_, A, F := poissonSystem(t, 8)
	res, err := CG(A, F, Settings{MaxIterations: 2})
	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2, ce.Iterations)
	assert.Equal(t, MaxItersReached, res.Status)
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, res.ResidualNorm, ce.ResidualNorm)
	assert.Len(t, res.X, len(F))
}

func TestCG_Breakdown(t *testing.T) {
	A := utils.NewSparseMatrix(2)
	require.NoError(t, A.Accumulate(0, 0, 1))
	require.NoError(t, A.Accumulate(1, 1, -1))
	res, err := CG(A, []float64{0, 1}, Settings{})
	assert.True(t, errors.Is(err, ErrBreakdown))
	assert.Equal(t, Iterating, res.Status)
	assert.NotEqual(t, Converged, res.Status)
	assert.Len(t, res.X, 2)
}

func TestCG_DimensionMismatch(t *testing.T) {
	_, err := CG(tridiagonal(t, 3), []float64{1, 2}, Settings{})
	assert.True(t, errors.Is(err, utils.ErrDimensionMismatch))
}

func TestIncompleteLU_ExactOnTridiagonal(t *testing.T) {
	var (
		N = 10
		A = tridiagonal(t, N)
	)
	P, err := IncompleteLU(A)
	require.NoError(t, err)
	var LU mat.Dense
	LU.Mul(P.L, P.U)
	// No fill is possible, so the incomplete factors are the exact ones
	assert.True(t, mat.EqualApprox(&LU, A, 1e-14))

	b := utils.NewVecConst(N, 1)
	res, err := PreconditionedCG(A, P, b, Settings{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
}

func TestIncompleteLU_Pattern(t *testing.T) {
	_, A, _ := poissonSystem(t, 6)
	P, err := IncompleteLU(A)
	require.NoError(t, err)
	var (
		N, _ = A.Dims()
		LU   mat.Dense
	)
	LU.Mul(P.L, P.U)
	for i := 0; i < N; i++ {
		assert.Equal(t, 1., P.L.At(i, i))
		for j := range P.L.Row(i) {
			assert.True(t, A.InPattern(i, j) || i == j)
			assert.LessOrEqual(t, j, i)
		}
		for j := range P.U.Row(i) {
			assert.True(t, A.InPattern(i, j))
			assert.GreaterOrEqual(t, j, i)
		}
		// L*U reproduces A wherever A has an entry
		for j, aij := range A.Row(i) {
			assert.InDelta(t, aij, LU.At(i, j), 1e-12, "(%d,%d)", i, j)
		}
	}
	// Both factors are frozen after the factorization
	assert.True(t, errors.Is(P.U.Accumulate(0, 0, 1), utils.ErrReadOnly))
}

func TestIncompleteLU_ZeroPivot(t *testing.T) {
	A := utils.NewSparseMatrix(2)
	require.NoError(t, A.Accumulate(0, 1, 1))
	require.NoError(t, A.Accumulate(1, 0, 1))
	_, err := IncompleteLU(A)
	assert.True(t, errors.Is(err, ErrZeroPivot))

	_, err = Jacobi(A)
	assert.True(t, errors.Is(err, ErrZeroPivot))
}

func TestPreconditionedCG_AgreesWithCG(t *testing.T) {
	tm, A, F := poissonSystem(t, 16)
	plain, err := CG(A, F, Settings{})
	require.NoError(t, err)

	ilu, err := IncompleteLU(A)
	require.NoError(t, err)
	pre, err := PreconditionedCG(A, ilu, F, Settings{})
	require.NoError(t, err)

	jac, err := Jacobi(A)
	require.NoError(t, err)
	jres, err := PreconditionedCG(A, jac, F, Settings{})
	require.NoError(t, err)

	assert.Equal(t, Converged, pre.Status)
	assert.LessOrEqual(t, utils.MaxAbsDiff(plain.X, pre.X), 1e-8)
	assert.LessOrEqual(t, utils.MaxAbsDiff(plain.X, jres.X), 1e-8)
	assert.LessOrEqual(t, pre.Iterations, plain.Iterations)

	for i := range pre.X {
		p := tm.Coordinate(i)
		assert.InDelta(t, 1+p.X[0]*p.X[0]+2*p.X[1]*p.X[1], pre.X[i], 1e-8)
	}
}

func TestILU_SolveAliasing(t *testing.T) {
	_, A, _ := poissonSystem(t, 4)
	P, err := IncompleteLU(A)
	require.NoError(t, err)
	N, _ := A.Dims()
	r := make([]float64, N)
	for i := range r {
		r[i] = float64(i) * 0.1
	}
	dst := make([]float64, N)
	P.Solve(dst, r)
	P.Solve(r, r)
	assert.Equal(t, dst, r)

	// (LU) dst recovers the input
	var (
		LU  mat.Dense
		got mat.VecDense
	)
	LU.Mul(P.L, P.U)
	got.MulVec(&LU, mat.NewVecDense(N, dst))
	for i := 0; i < N; i++ {
		assert.InDelta(t, float64(i)*0.1, got.AtVec(i), 1e-12)
	}
	assert.Panics(t, func() { P.Solve(dst, r[:1]) })
}
