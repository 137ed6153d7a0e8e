package FEM2D

import (
	"github.com/notargets/fem2d/utils"
)

/*
Linear (first order Lagrange) triangle on the reference element with vertices

	v0 = (0,0), v1 = (1,0), v2 = (0,1)

Local node numbering follows the vertex order of the mesh connectivity.
*/

// ShapeFunctions evaluates the three barycentric basis functions at the
// reference point r = (r,s).
func ShapeFunctions(r utils.Vec2) utils.Vec3 {
	return utils.Vec3{1 - r[0] - r[1], r[0], r[1]}
}

// DerivativeShapeFunctions returns d/dr (row 0) and d/ds (row 1) of the basis,
// constant over the element.
func DerivativeShapeFunctions() utils.Mat2x3 {
	return utils.Mat2x3{
		{-1, 1, 0},
		{-1, 0, 1},
	}
}

// ReferenceArea of the unit right triangle.
const ReferenceArea = 0.5

type Cubature struct {
	R []utils.Vec2
	W []float64
}

func (cb Cubature) Nq() int { return len(cb.W) }

var (
	// CentroidRule is the one point rule, exact for linear integrands.
	CentroidRule = Cubature{
		R: []utils.Vec2{{1. / 3., 1. / 3.}},
		W: []float64{ReferenceArea},
	}
	// EdgeMidpointRule is exact for quadratic integrands.
	EdgeMidpointRule = Cubature{
		R: []utils.Vec2{{0.5, 0}, {0.5, 0.5}, {0, 0.5}},
		W: []float64{ReferenceArea / 3, ReferenceArea / 3, ReferenceArea / 3},
	}
)

// QuadraturePoint is what a kernel sees at one cubature node.
type QuadraturePoint struct {
	R utils.Vec2 // reference coordinates
	X utils.Vec2 // physical coordinates, J.Map(R)
	W float64    // rule weight on the reference element
}
