package Poisson2D

import (
	"fmt"
	"math"

	"github.com/notargets/fem2d/utils"
)

// GraphicsCoordinates splits the node coordinates into x and y arrays.
func (c *Poisson) GraphicsCoordinates() (x, y []float64) {
	x, y = make([]float64, c.Mesh.NumNodes()), make([]float64, c.Mesh.NumNodes())
	for i, p := range c.Mesh.Points {
		x[i], y[i] = p.X[0], p.X[1]
	}
	return
}

// Plot shows the solution as a shaded surface over the mesh, with the element
// edges drawn on top when wireframe is set.
func (c *Poisson) Plot(width, height int, wireframe bool) (sp *utils.SurfacePlot, err error) {
	if c.U == nil {
		return nil, fmt.Errorf("nothing to plot, solve first")
	}
	var (
		x, y       = c.GraphicsCoordinates()
		gm         = utils.NewGraphicsMesh(x, y, c.Mesh.EToV)
		fmin, fmax = math.Inf(1), math.Inf(-1)
	)
	for _, u := range c.U {
		fmin, fmax = math.Min(fmin, u), math.Max(fmax, u)
	}
	if fmax-fmin < 1.e-12 {
		fmin, fmax = fmin-0.5, fmax+0.5
	}
	sp = utils.NewSurfacePlot(width, height, 1.1, gm)
	sp.AddColorMap(fmin, fmax)
	if err = sp.AddFunctionSurface(c.U); err != nil {
		return
	}
	if wireframe {
		err = sp.AddWireframe("TriMesh", utils.Black)
	}
	fmt.Printf(" Plot>u min,max = %8.5f,%8.5f\n", fmin, fmax)
	return
}
