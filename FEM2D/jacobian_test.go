package FEM2D

import (
	"errors"
	"testing"

	"github.com/notargets/fem2d/geometry2D"
	"github.com/notargets/fem2d/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tri(x0, y0, x1, y1, x2, y2 float64) [3]geometry2D.Point {
	return [3]geometry2D.Point{{X: [2]float64{x0, y0}}, {X: [2]float64{x1, y1}}, {X: [2]float64{x2, y2}}}
}

func TestNewJacobian(t *testing.T) {
	jac, err := NewJacobian(tri(1, 1, 3, 1, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 2., jac.Det)
	assert.Equal(t, utils.Mat2{{2, 0}, {0, 1}}, jac.J)

	// Vertices of the reference element land on the physical vertices
	assert.Equal(t, utils.Vec2{1, 1}, jac.Map(utils.Vec2{0, 0}))
	assert.Equal(t, utils.Vec2{3, 1}, jac.Map(utils.Vec2{1, 0}))
	assert.Equal(t, utils.Vec2{1, 2}, jac.Map(utils.Vec2{0, 1}))

	// phi_1 = (x-1)/2, phi_2 = y-1
	G := jac.PhysicalGradients()
	assert.InDeltaSlice(t, []float64{-0.5, 0.5, 0}, G[0][:], 1e-15)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, G[1][:], 1e-15)
}

func TestNewJacobian_Degenerate(t *testing.T) {
	for name, verts := range map[string][3]geometry2D.Point{
		"clockwise": tri(0, 0, 0, 1, 1, 0),
		"collinear": tri(0, 0, 1, 1, 2, 2),
		"repeated":  tri(0, 0, 0, 0, 1, 0),
	} {
		_, err := NewJacobian(verts)
		assert.True(t, errors.Is(err, ErrDegenerateElement), name)
	}
}

func TestPhysicalGradientsSkewed(t *testing.T) {
	// Gradients reproduce a linear field u = 3 + 2x - 5y exactly
	var (
		verts = tri(0.1, 0.2, 0.9, 0.4, 0.3, 1.1)
		u     = func(p geometry2D.Point) float64 { return 3 + 2*p.X[0] - 5*p.X[1] }
	)
	jac, err := NewJacobian(verts)
	require.NoError(t, err)
	G := jac.PhysicalGradients()
	var gx, gy float64
	for a := 0; a < 3; a++ {
		gx += G[0][a] * u(verts[a])
		gy += G[1][a] * u(verts[a])
	}
	assert.InDelta(t, 2., gx, 1e-13)
	assert.InDelta(t, -5., gy, 1e-13)
}
