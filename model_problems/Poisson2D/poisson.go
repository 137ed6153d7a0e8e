package Poisson2D

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/notargets/fem2d/FEM2D"
	"github.com/notargets/fem2d/geometry2D"
	"github.com/notargets/fem2d/solvers"
	"github.com/notargets/fem2d/utils"
)

type PreconditionerType uint8

const (
	PRECON_None PreconditionerType = iota
	PRECON_Jacobi
	PRECON_ILU
)

var (
	PreconditionerNames = map[string]PreconditionerType{
		"none":   PRECON_None,
		"jacobi": PRECON_Jacobi,
		"ilu":    PRECON_ILU,
	}
	PreconditionerPrintNames = []string{"None", "Jacobi", "Incomplete LU, no fill"}
)

func (pc PreconditionerType) Print() (txt string) {
	txt = PreconditionerPrintNames[pc]
	return
}

func NewPreconditionerType(label string) (pc PreconditionerType, err error) {
	var ok bool
	label = strings.ToLower(label)
	if pc, ok = PreconditionerNames[label]; !ok {
		err = fmt.Errorf("unable to use preconditioner named %s", label)
	}
	return
}

type Poisson struct {
	// Input parameters
	N           int
	Coefficient float64
	Case        ProblemType
	Precon      PreconditionerType
	Settings    solvers.Settings
	Problem     Problem
	Assembler   *FEM2D.Assembler
	Mesh        *geometry2D.TriMesh
	// Filled in by Solve
	A       *utils.SparseMatrix // After boundary conditions
	F       []float64
	U       []float64
	Result  solvers.Result
	verbose bool
}

func NewPoisson(N int, k float64, Case ProblemType, Precon PreconditionerType,
	settings solvers.Settings, ProcLimit int, verbose bool) (c *Poisson, err error) {
	c = &Poisson{
		N:           N,
		Coefficient: k,
		Case:        Case,
		Precon:      Precon,
		Settings:    settings,
		Problem:     Case.Problem(k),
		Assembler:   FEM2D.NewAssembler(),
		verbose:     verbose,
	}
	if c.Mesh, err = geometry2D.NewUnitSquareMesh(N); err != nil {
		return nil, err
	}
	c.Assembler.ParallelDegree = utils.ParallelDegreeFor(ProcLimit, c.Mesh.NumElements())
	if verbose {
		fmt.Printf("Poisson Equation in 2 Dimensions\n")
		fmt.Printf("Using %d go routines for element kernels\n", c.Assembler.ParallelDegree)
		fmt.Printf("Solving %s\n", c.Case.Print())
		fmt.Printf("Preconditioner: %s\n", c.Precon.Print())
		fmt.Printf("Coefficient k = %8.4f, Subdivisions N = %d, Nodes = %d, Elements = %d\n\n",
			k, N, c.Mesh.NumNodes(), c.Mesh.NumElements())
	}
	return
}

// Assemble builds the stiffness matrix and load vector and imposes the
// boundary values, leaving A read only.
func (c *Poisson) Assemble() (err error) {
	var (
		start = time.Now()
		vecAs = *c.Assembler
	)
	if c.A, err = c.Assembler.AssembleMatrix(FEM2D.StiffnessKernel(c.Coefficient), c.Mesh); err != nil {
		return
	}
	if !c.Problem.ConstantSource {
		vecAs.Rule = FEM2D.EdgeMidpointRule
	}
	if c.F, err = vecAs.AssembleVector(FEM2D.SourceKernel(c.Problem.Source), c.Mesh); err != nil {
		return
	}
	if err = FEM2D.ApplyDirichlet(c.A, c.F, c.Mesh, c.Problem.Boundary); err != nil {
		return
	}
	if utils.IsNan(c.F) {
		return fmt.Errorf("load vector contains NaN")
	}
	c.A.SetReadOnly("Stiffness")
	if c.verbose {
		log.Printf("assembled %d unknowns, %d nonzeros in %v\n", len(c.F), c.A.NNZ(), time.Since(start))
		log.Printf("%s\n", utils.GetMemUsage())
	}
	return
}

func (c *Poisson) NewPreconditioner() (P solvers.Preconditioner, err error) {
	switch c.Precon {
	case PRECON_Jacobi:
		return solvers.Jacobi(c.A)
	case PRECON_ILU:
		return solvers.IncompleteLU(c.A)
	}
	return
}

/*
Solve runs the full pipeline: assembly, boundary conditions, preconditioner and conjugate gradient.
A *solvers.ConvergenceError is returned with U holding the last iterate, any other error leaves
U nil.
*/
func (c *Poisson) Solve() (err error) {
	var (
		P     solvers.Preconditioner
		start time.Time
	)
	if err = c.Assemble(); err != nil {
		return
	}
	start = time.Now()
	if P, err = c.NewPreconditioner(); err != nil {
		return
	}
	if c.verbose && P != nil {
		log.Printf("preconditioner built in %v\n", time.Since(start))
	}
	start = time.Now()
	c.Result, err = solvers.PreconditionedCG(c.A, P, c.F, c.Settings)
	var ce *solvers.ConvergenceError
	if err != nil && !errors.As(err, &ce) {
		return
	}
	c.U = c.Result.X
	if c.verbose {
		log.Printf("%s after %d iterations, residual %8.3e (initial %8.3e) in %v\n",
			c.Result.Status, c.Result.Iterations, c.Result.ResidualNorm,
			c.Result.InitialResidualNorm, time.Since(start))
		if c.Problem.Exact != nil {
			log.Printf("max nodal error %8.3e\n", c.MaxNodalError())
		}
	}
	return
}

// MaxNodalError is the largest |u_h - u| over the nodes, -1 when the problem
// has no exact solution or nothing has been solved.
func (c *Poisson) MaxNodalError() (maxErr float64) {
	if c.Problem.Exact == nil || c.U == nil {
		return -1
	}
	exact := make([]float64, len(c.U))
	for i := range exact {
		exact[i] = c.Problem.Exact(c.Mesh.Coordinate(i))
	}
	return utils.MaxAbsDiff(c.U, exact)
}
