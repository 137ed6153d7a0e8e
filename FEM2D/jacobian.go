package FEM2D

import (
	"errors"
	"fmt"

	"github.com/notargets/fem2d/geometry2D"
	"github.com/notargets/fem2d/utils"
)

var ErrDegenerateElement = errors.New("degenerate element")

/*
Jacobian of the affine map x = x0 + J r from the reference triangle to a physical triangle.

	J = | x1-x0  x2-x0 |
	    | y1-y0  y2-y0 |

Det is twice the physical area.
*/
type Jacobian struct {
	J, Inv utils.Mat2
	Det    float64
	Origin utils.Vec2
}

func NewJacobian(verts [3]geometry2D.Point) (jac Jacobian, err error) {
	var (
		x0 = verts[0].Vec()
		e1 = verts[1].Vec().Sub(x0)
		e2 = verts[2].Vec().Sub(x0)
	)
	jac.J = utils.Mat2{
		{e1[0], e2[0]},
		{e1[1], e2[1]},
	}
	jac.Origin = x0
	jac.Det = jac.J.Det()
	if !(jac.Det > 0) {
		err = fmt.Errorf("%w: jacobian determinant %g for vertices %v, %v, %v",
			ErrDegenerateElement, jac.Det, verts[0].X, verts[1].X, verts[2].X)
		return
	}
	jac.Inv = jac.J.Inv()
	return
}

// Map takes a reference point to physical coordinates.
func (jac Jacobian) Map(r utils.Vec2) utils.Vec2 {
	return jac.Origin.Add(jac.J.MulVec(r))
}

// PhysicalGradients returns the x (row 0) and y (row 1) derivatives of the
// three basis functions, J^-T dN/dr.
func (jac Jacobian) PhysicalGradients() utils.Mat2x3 {
	return jac.Inv.T().Mul23(DerivativeShapeFunctions())
}
