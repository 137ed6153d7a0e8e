package utils

import (
	"fmt"
	"image/color"
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/functions"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
)

type ColorName uint8

const (
	White ColorName = iota
	Blue
	Red
	Green
	Black
)

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	case Blue:
		c = color.RGBA{R: 50, G: 0, B: 255, A: 0}
	case Red:
		c = color.RGBA{R: 255, G: 0, B: 50, A: 0}
	case Green:
		c = color.RGBA{R: 25, G: 255, B: 25, A: 0}
	case Black:
		c = color.RGBA{R: 0, G: 0, B: 0, A: 0}
	}
	return
}

func SleepFor(milliseconds int) {
	time.Sleep(time.Duration(milliseconds) * time.Millisecond)
}

func ArraysToPoints(r1, r2 []float64) (points []graphics2D.Point) {
	points = make([]graphics2D.Point, len(r1))
	for i := range r1 {
		points[i].X[0] = float32(r1[i])
		points[i].X[1] = float32(r2[i])
	}
	return
}

// NewGraphicsMesh converts node coordinates and a triangle list to the plotting mesh.
func NewGraphicsMesh(x, y []float64, tris [][3]int) (gm *graphics2D.TriMesh) {
	gm = &graphics2D.TriMesh{
		BaseGeometryClass: graphics2D.BaseGeometryClass{Geometry: ArraysToPoints(x, y)},
		Triangles:         make([]graphics2D.Triangle, len(tris)),
	}
	for k, tri := range tris {
		for i := 0; i < 3; i++ {
			gm.Triangles[k].Nodes[i] = int32(tri[i])
		}
	}
	return
}

type SurfacePlot struct {
	Chart        *chart2d.Chart2D
	ColorMap     *utils2.ColorMap
	GraphicsMesh *graphics2D.TriMesh
}

// NewSurfacePlot opens a chart window framing gm, enlarged by scale.
func NewSurfacePlot(width, height int, scale float64, gm *graphics2D.TriMesh) (sp *SurfacePlot) {
	box := graphics2D.NewBoundingBox(gm.GetGeometry())
	box = box.Scale(float32(scale))
	sp = &SurfacePlot{
		Chart:        chart2d.NewChart2D(width, height, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1]),
		GraphicsMesh: gm,
	}
	go sp.Chart.Plot()
	return
}

func (sp *SurfacePlot) AddColorMap(fmin, fmax float64) {
	sp.ColorMap = utils2.NewColorMap(float32(fmin), float32(fmax), 1.)
	sp.Chart.AddColorMap(sp.ColorMap)
}

// AddFunctionSurface shades the mesh with one value per node.
func (sp *SurfacePlot) AddFunctionSurface(field []float64) (err error) {
	var (
		f32 = make([]float32, len(field))
	)
	if len(field) != len(sp.GraphicsMesh.Geometry) {
		return fmt.Errorf("%w: field has %d values, mesh has %d nodes",
			ErrDimensionMismatch, len(field), len(sp.GraphicsMesh.Geometry))
	}
	for i, f := range field {
		f32[i] = float32(f)
	}
	fs := functions.NewFSurface(sp.GraphicsMesh, [][]float32{f32}, 0)
	return sp.Chart.AddFunctionSurface("FSurface", *fs, chart2d.NoLine, GetColor(White))
}

func (sp *SurfacePlot) AddWireframe(name string, c ColorName) error {
	return sp.Chart.AddTriMesh(name, *sp.GraphicsMesh, chart2d.NoGlyph, chart2d.Solid, GetColor(c))
}
