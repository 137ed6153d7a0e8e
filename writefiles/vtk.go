package writefiles

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/notargets/fem2d/geometry2D"
	"github.com/notargets/fem2d/utils"
)

type Mesh interface {
	NumNodes() int
	NumElements() int
	Element(k int) [3]int
	Coordinate(node int) geometry2D.Point
}

// NodalField is a named scalar with one value per mesh node.
type NodalField struct {
	Name   string
	Values []float64
}

const vtkTriangle = 5

/*
WriteVTK writes the mesh and its nodal fields as a legacy ASCII VTK unstructured grid:

	POINTS       x y 0 per node
	CELLS        3 a b c per element
	CELL_TYPES   5 (VTK_TRIANGLE) per element
	POINT_DATA   one SCALARS block per field
*/
func WriteVTK(w io.Writer, title string, mesh Mesh, fields ...NodalField) (err error) {
	var (
		Nv = mesh.NumNodes()
		K  = mesh.NumElements()
		bw = bufio.NewWriter(w)
	)
	for _, f := range fields {
		if len(f.Values) != Nv {
			return fmt.Errorf("%w: field %q has %d values, mesh has %d nodes",
				utils.ErrDimensionMismatch, f.Name, len(f.Values), Nv)
		}
	}
	fmt.Fprintf(bw, "# vtk DataFile Version 3.0\n%s\nASCII\nDATASET UNSTRUCTURED_GRID\n", title)
	fmt.Fprintf(bw, "POINTS %d double\n", Nv)
	for i := 0; i < Nv; i++ {
		p := mesh.Coordinate(i)
		fmt.Fprintf(bw, "%.17g %.17g 0\n", p.X[0], p.X[1])
	}
	fmt.Fprintf(bw, "CELLS %d %d\n", K, 4*K)
	for k := 0; k < K; k++ {
		tri := mesh.Element(k)
		fmt.Fprintf(bw, "3 %d %d %d\n", tri[0], tri[1], tri[2])
	}
	fmt.Fprintf(bw, "CELL_TYPES %d\n", K)
	for k := 0; k < K; k++ {
		fmt.Fprintf(bw, "%d\n", vtkTriangle)
	}
	if len(fields) != 0 {
		fmt.Fprintf(bw, "POINT_DATA %d\n", Nv)
	}
	for _, f := range fields {
		fmt.Fprintf(bw, "SCALARS %s double 1\nLOOKUP_TABLE default\n", f.Name)
		for _, v := range f.Values {
			fmt.Fprintf(bw, "%.17g\n", v)
		}
	}
	return bw.Flush()
}

func WriteVTKFile(fileName, title string, mesh Mesh, fields ...NodalField) (err error) {
	var file *os.File
	if file, err = os.Create(fileName); err != nil {
		return
	}
	if err = WriteVTK(file, title, mesh, fields...); err != nil {
		file.Close()
		return
	}
	return file.Close()
}
