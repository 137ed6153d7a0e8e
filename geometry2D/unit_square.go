package geometry2D

import (
	"errors"
	"fmt"

	"github.com/notargets/fem2d/types"
	"github.com/notargets/fem2d/utils"
)

var ErrDegenerateMesh = errors.New("degenerate mesh")

type Point struct {
	X [2]float64
}

func (p Point) Vec() utils.Vec2 { return utils.Vec2(p.X) }

/*
TriMesh is an immutable triangulation with explicit connectivity.

	Points[i]       coordinates of node i
	EToV[k]         node triple of element k, counter-clockwise
	BoundaryNodes   ascending node ids carrying a Dirichlet marker
	NodeBC[i]       boundary marker of node i
*/
type TriMesh struct {
	N             int
	Points        []Point
	EToV          [][3]int
	BoundaryNodes []int
	NodeBC        []types.BCFLAG
}

/*
NewUnitSquareMesh subdivides [0,1]x[0,1] into n x n cells and splits every cell along the diagonal
from its bottom-left to its top-right corner.

Node (i,j) sits at (i/n, j/n) and has index j*(n+1)+i. For the cell with bottom-left node a:

	d ---- c
	|    / |
	|  /   |
	a ---- b

the two elements are [a b c] and [a c d], both counter-clockwise, cells visited row by row.
*/
func NewUnitSquareMesh(n int) (tm *TriMesh, err error) {
	if n < 1 {
		err = fmt.Errorf("%w: need at least one subdivision per side, have n = %d", ErrDegenerateMesh, n)
		return
	}
	var (
		np  = n + 1
		Nv  = np * np
		fn  = float64(n)
		idx = func(i, j int) int { return j*np + i }
	)
	tm = &TriMesh{
		N:      n,
		Points: make([]Point, Nv),
		EToV:   make([][3]int, 0, 2*n*n),
		NodeBC: make([]types.BCFLAG, Nv),
	}
	for j := 0; j < np; j++ {
		for i := 0; i < np; i++ {
			node := idx(i, j)
			tm.Points[node].X = [2]float64{float64(i) / fn, float64(j) / fn}
			if i == 0 || i == n || j == 0 || j == n {
				tm.NodeBC[node] = types.BC_Dirichlet
				tm.BoundaryNodes = append(tm.BoundaryNodes, node)
			}
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			tm.EToV = append(tm.EToV, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	return
}

func (tm *TriMesh) NumNodes() int    { return len(tm.Points) }
func (tm *TriMesh) NumElements() int { return len(tm.EToV) }

func (tm *TriMesh) Coordinate(node int) Point { return tm.Points[node] }
func (tm *TriMesh) Element(k int) [3]int      { return tm.EToV[k] }
func (tm *TriMesh) IsBoundary(node int) bool  { return tm.NodeBC[node] != types.BC_None }
func (tm *TriMesh) ElementVertices(k int) (verts [3]Point) {
	for i, node := range tm.EToV[k] {
		verts[i] = tm.Points[node]
	}
	return
}

// ElementIncidence counts, per node, the elements that reference it.
func (tm *TriMesh) ElementIncidence() (count []int) {
	count = make([]int, tm.NumNodes())
	for _, tri := range tm.EToV {
		for _, node := range tri {
			count[node]++
		}
	}
	return
}

// BoundaryEdges returns the edges owned by exactly one element, in no
// particular order.
func (tm *TriMesh) BoundaryEdges() []types.EdgeKey {
	ec := make(types.EdgeCount, 3*tm.NumElements())
	for _, tri := range tm.EToV {
		ec.AddTriangle(tri)
	}
	return ec.Boundary()
}

// SignedArea is half the cross product of the element's edge vectors, positive
// for counter-clockwise vertex order.
func (tm *TriMesh) SignedArea(k int) float64 {
	var (
		v = tm.ElementVertices(k)
	)
	return 0.5 * ((v[1].X[0]-v[0].X[0])*(v[2].X[1]-v[0].X[1]) -
		(v[2].X[0]-v[0].X[0])*(v[1].X[1]-v[0].X[1]))
}
