package solvers

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/fem2d/utils"
)

var ErrBreakdown = errors.New("conjugate gradient breakdown")

type Status uint8

const (
	NotStarted Status = iota
	Iterating
	Converged
	MaxItersReached
)

func (st Status) String() string {
	switch st {
	case NotStarted:
		return "NotStarted"
	case Iterating:
		return "Iterating"
	case Converged:
		return "Converged"
	case MaxItersReached:
		return "MaxItersReached"
	}
	return fmt.Sprintf("Status(%d)", uint8(st))
}

// Matrix is what the Krylov loop needs from a system matrix.
type Matrix interface {
	Dims() (r, c int)
	MulVec(dst, x []float64)
}

// Preconditioner applies an approximate inverse: dst = P^-1 r. dst and r may
// be the same slice.
type Preconditioner interface {
	Solve(dst, r []float64)
}

const DefaultTolerance = 1.e-12

// Settings with zero values get DefaultTolerance and N iterations.
type Settings struct {
	Tolerance     float64 // Relative to the initial residual norm
	MaxIterations int
}

// Result is the outcome of a solve. Status stays Iterating when the
// accompanying error is ErrBreakdown: X is then the last iterate, not a solution.
type Result struct {
	X                   []float64
	Iterations          int
	ResidualNorm        float64
	InitialResidualNorm float64
	Status              Status
}

// ConvergenceError is the soft failure returned when the iteration cap is hit.
// The Result returned alongside it holds the last iterate.
type ConvergenceError struct {
	Iterations   int
	ResidualNorm float64
	Target       float64
}

func (ce *ConvergenceError) Error() string {
	return fmt.Sprintf("no convergence after %d iterations: residual %8.3e, target %8.3e",
		ce.Iterations, ce.ResidualNorm, ce.Target)
}

// CG solves A x = b for symmetric positive definite A starting from x = 0.
func CG(A Matrix, b []float64, s Settings) (Result, error) {
	return PreconditionedCG(A, nil, b, s)
}

/*
PreconditionedCG runs conjugate gradient on A x = b with z = P^-1 r in place of the residual. A nil
P gives plain CG. Each iteration costs one MulVec, one P.Solve, two dot products and three vector
updates.

	r = b - A x0, z = P^-1 r, p = z
	loop:
		alpha = (r.z) / (p.Ap)
		x += alpha p,  r -= alpha Ap
		z = P^-1 r,  beta = (r.z)new / (r.z)old,  p = z + beta p

Iteration stops when ||r|| <= Tolerance * ||r0||. The iterate is returned on every path,
including ErrBreakdown (p.Ap not positive, A is not positive definite along p) and the
*ConvergenceError of an exhausted iteration budget.
*/
func PreconditionedCG(A Matrix, P Preconditioner, b []float64, s Settings) (res Result, err error) {
	var (
		N, M = A.Dims()
	)
	if N != M || len(b) != N {
		err = fmt.Errorf("%w: matrix is %dx%d, right hand side %d",
			utils.ErrDimensionMismatch, N, M, len(b))
		return
	}
	s = s.withDefaults(N)
	var (
		x  = make([]float64, N)
		r  = make([]float64, N)
		z  = make([]float64, N)
		p  = make([]float64, N)
		Ap = make([]float64, N)
	)
	res.X = x
	res.Status = Iterating
	utils.CopyVec(r, b)
	res.InitialResidualNorm = utils.Norm2(r)
	res.ResidualNorm = res.InitialResidualNorm
	if res.InitialResidualNorm == 0 {
		res.Status = Converged
		return
	}
	target := s.Tolerance * res.InitialResidualNorm
	precondition(P, z, r)
	utils.CopyVec(p, z)
	rz := utils.Dot(r, z)
	for res.Iterations < s.MaxIterations {
		A.MulVec(Ap, p)
		pAp := utils.Dot(p, Ap)
		if !(pAp > 0) || math.IsInf(pAp, 0) {
			err = fmt.Errorf("%w: p.Ap = %v at iteration %d", ErrBreakdown, pAp, res.Iterations)
			return
		}
		alpha := rz / pAp
		utils.Axpy(alpha, p, x)
		utils.Axpy(-alpha, Ap, r)
		res.Iterations++
		res.ResidualNorm = utils.Norm2(r)
		if math.IsNaN(res.ResidualNorm) {
			err = fmt.Errorf("%w: residual is NaN at iteration %d", ErrBreakdown, res.Iterations)
			return
		}
		if res.ResidualNorm <= target {
			res.Status = Converged
			return
		}
		precondition(P, z, r)
		rzNew := utils.Dot(r, z)
		utils.Xpay(z, rzNew/rz, p)
		rz = rzNew
	}
	res.Status = MaxItersReached
	err = &ConvergenceError{
		Iterations:   res.Iterations,
		ResidualNorm: res.ResidualNorm,
		Target:       target,
	}
	return
}

func precondition(P Preconditioner, z, r []float64) {
	if P == nil {
		utils.CopyVec(z, r)
		return
	}
	P.Solve(z, r)
}

func (s Settings) withDefaults(N int) Settings {
	if s.Tolerance <= 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = N
	}
	return s
}
