package FEM2D

import (
	"fmt"

	"github.com/notargets/fem2d/geometry2D"
	"github.com/notargets/fem2d/utils"
)

// Mesh is the view of a triangulation the assembler needs.
type Mesh interface {
	NumNodes() int
	NumElements() int
	Element(k int) [3]int
	ElementVertices(k int) [3]geometry2D.Point
}

/*
Assembler drives element kernels over a mesh and scatters the local results through the
connectivity: local index a of element k lands on global index Element(k)[a].

Elements are visited in index order and the scatter is always serial in that order, so results are
reproducible and identical for any ParallelDegree. With ParallelDegree > 1 only the kernel
evaluations run concurrently, each worker owning a contiguous block of elements and writing to
per-element local buffers.
*/
type Assembler struct {
	Rule           Cubature
	ParallelDegree int
}

func NewAssembler() *Assembler {
	return &Assembler{
		Rule:           CentroidRule,
		ParallelDegree: 1,
	}
}

// AssembleMatrix assembles with the centroid rule on a single goroutine.
func AssembleMatrix(kernel MatrixKernel, mesh Mesh) (*utils.SparseMatrix, error) {
	return NewAssembler().AssembleMatrix(kernel, mesh)
}

// AssembleVector assembles with the centroid rule on a single goroutine.
func AssembleVector(kernel VectorKernel, mesh Mesh) ([]float64, error) {
	return NewAssembler().AssembleVector(kernel, mesh)
}

func (as *Assembler) AssembleMatrix(kernel MatrixKernel, mesh Mesh) (A *utils.SparseMatrix, err error) {
	var (
		K = mesh.NumElements()
	)
	A = utils.NewSparseMatrix(mesh.NumNodes())
	scatter := func(k int, Ke utils.Mat3) (err error) {
		tri := mesh.Element(k)
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				if err = A.Accumulate(tri[a], tri[b], Ke[a][b]); err != nil {
					return fmt.Errorf("element %d: %w", k, err)
				}
			}
		}
		return
	}
	local := func(k int) (Ke utils.Mat3, err error) {
		var (
			jac Jacobian
			Kq  utils.Mat3
		)
		if jac, err = NewJacobian(mesh.ElementVertices(k)); err != nil {
			err = fmt.Errorf("element %d: %w", k, err)
			return
		}
		for q, r := range as.Rule.R {
			qp := QuadraturePoint{R: r, X: jac.Map(r), W: as.Rule.W[q]}
			if Kq, err = kernel(qp, jac); err != nil {
				return
			}
			Ke = Ke.Add(Kq)
		}
		return
	}
	if as.parallelDegree(K) == 1 {
		for k := 0; k < K; k++ {
			var Ke utils.Mat3
			if Ke, err = local(k); err != nil {
				return nil, err
			}
			if err = scatter(k, Ke); err != nil {
				return nil, err
			}
		}
		return
	}
	KeAll := make([]utils.Mat3, K)
	if err = as.parallelLocal(K, func(k int) (err error) {
		KeAll[k], err = local(k)
		return
	}); err != nil {
		return nil, err
	}
	for k := 0; k < K; k++ {
		if err = scatter(k, KeAll[k]); err != nil {
			return nil, err
		}
	}
	return
}

func (as *Assembler) AssembleVector(kernel VectorKernel, mesh Mesh) (F []float64, err error) {
	var (
		K = mesh.NumElements()
		N = mesh.NumNodes()
	)
	F = make([]float64, N)
	scatter := func(k int, Fe utils.Vec3) (err error) {
		tri := mesh.Element(k)
		for a := 0; a < 3; a++ {
			if tri[a] < 0 || tri[a] >= N {
				return fmt.Errorf("element %d: %w: node %d in a vector of length %d",
					k, utils.ErrIndexOutOfRange, tri[a], N)
			}
			F[tri[a]] += Fe[a]
		}
		return
	}
	local := func(k int) (Fe utils.Vec3, err error) {
		var (
			jac Jacobian
			Fq  utils.Vec3
		)
		if jac, err = NewJacobian(mesh.ElementVertices(k)); err != nil {
			err = fmt.Errorf("element %d: %w", k, err)
			return
		}
		for q, r := range as.Rule.R {
			qp := QuadraturePoint{R: r, X: jac.Map(r), W: as.Rule.W[q]}
			if Fq, err = kernel(qp, jac); err != nil {
				return
			}
			for a := 0; a < 3; a++ {
				Fe[a] += Fq[a]
			}
		}
		return
	}
	if as.parallelDegree(K) == 1 {
		for k := 0; k < K; k++ {
			var Fe utils.Vec3
			if Fe, err = local(k); err != nil {
				return nil, err
			}
			if err = scatter(k, Fe); err != nil {
				return nil, err
			}
		}
		return
	}
	FeAll := make([]utils.Vec3, K)
	if err = as.parallelLocal(K, func(k int) (err error) {
		FeAll[k], err = local(k)
		return
	}); err != nil {
		return nil, err
	}
	for k := 0; k < K; k++ {
		if err = scatter(k, FeAll[k]); err != nil {
			return nil, err
		}
	}
	return
}

func (as *Assembler) parallelDegree(K int) int {
	if as.ParallelDegree <= 1 {
		return 1
	}
	return utils.ParallelDegreeFor(as.ParallelDegree, K)
}

// parallelLocal runs fn over [0,K) split into contiguous buckets. Each bucket
// stops at its first failure; the failure of the lowest element wins, which
// is the error the serial loop would have returned.
func (as *Assembler) parallelLocal(K int, fn func(k int) error) error {
	var (
		pm   = utils.NewPartitionMap(as.parallelDegree(K), K)
		errs = make([]error, pm.ParallelDegree)
	)
	pm.ForEachBucket(func(np, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			if err := fn(k); err != nil {
				errs[np] = err
				return
			}
		}
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
