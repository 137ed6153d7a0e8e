package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGraphicsMesh(t *testing.T) {
	var (
		x    = []float64{0, 1, 1, 0}
		y    = []float64{0, 0, 1, 1}
		tris = [][3]int{{0, 1, 2}, {0, 2, 3}}
	)
	gm := NewGraphicsMesh(x, y, tris)
	assert.Len(t, gm.Geometry, 4)
	assert.Len(t, gm.Triangles, 2)
	assert.Equal(t, float32(1), gm.Geometry[2].X[0])
	assert.Equal(t, float32(1), gm.Geometry[3].X[1])
	assert.Equal(t, int32(3), gm.Triangles[1].Nodes[2])
	assert.NotEqual(t, GetColor(White), GetColor(Black))
}
