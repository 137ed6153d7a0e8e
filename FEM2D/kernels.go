package FEM2D

import (
	"github.com/notargets/fem2d/utils"
)

/*
Element kernels map one cubature point of one element to a local contribution. The assembler sums
kernel output over the cubature points and scatters it without any scaling, so a kernel folds in
the weight and Jac.Det itself.

A kernel must not keep mutable state between calls. With Assembler.ParallelDegree > 1 kernels are
called from several goroutines at once.
*/
type MatrixKernel func(q QuadraturePoint, jac Jacobian) (utils.Mat3, error)

type VectorKernel func(q QuadraturePoint, jac Jacobian) (utils.Vec3, error)

// StiffnessKernel integrates k grad(phi_a) . grad(phi_b), the element matrix of -div(k grad u).
// The integrand is constant on a linear triangle, so CentroidRule is exact.
func StiffnessKernel(k float64) MatrixKernel {
	return func(q QuadraturePoint, jac Jacobian) (utils.Mat3, error) {
		G := jac.PhysicalGradients()
		return G.TMul().Scale(k * q.W * jac.Det), nil
	}
}

// MassKernel integrates phi_a phi_b. The integrand is quadratic, use it with
// EdgeMidpointRule for the exact mass matrix.
func MassKernel() MatrixKernel {
	return func(q QuadraturePoint, jac Jacobian) (utils.Mat3, error) {
		N := ShapeFunctions(q.R)
		return N.Outer(N).Scale(q.W * jac.Det), nil
	}
}

// SourceKernel integrates f phi_a with f evaluated at the physical cubature point.
func SourceKernel(f func(x utils.Vec2) float64) VectorKernel {
	return func(q QuadraturePoint, jac Jacobian) (utils.Vec3, error) {
		return ShapeFunctions(q.R).Scale(f(q.X) * q.W * jac.Det), nil
	}
}

// IdentityKernel returns the 3x3 identity for every element, independent of
// geometry. Assembled over a mesh, row i sums to the number of elements
// touching node i.
func IdentityKernel() MatrixKernel {
	return func(QuadraturePoint, Jacobian) (utils.Mat3, error) {
		return utils.Identity3(), nil
	}
}
