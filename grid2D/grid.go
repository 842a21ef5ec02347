package grid2D

import (
	"fmt"
	"math"

	"github.com/notargets/airfoilgrid/geometry2D"
	"github.com/notargets/airfoilgrid/utils"
)

/*
Grid is the computational O-grid. Index i runs around the body and is
periodic, index j runs from the wall (j=0) to the far field (j=M). X and Y are
N x (M+1) matrices, node (i,j) is stored at DataP[i*(M+1)+j].
*/
type Grid struct {
	N, M int
	X, Y utils.Matrix
}

func NewGrid(N, M int) (g *Grid) {
	g = &Grid{
		N: N,
		M: M,
		X: utils.NewMatrix(N, M+1),
		Y: utils.NewMatrix(N, M+1),
	}
	return
}

// Next and Prev are the only circumferential neighbour lookups
func (g *Grid) Next(i int) int { return (i + 1) % g.N }
func (g *Grid) Prev(i int) int { return (i - 1 + g.N) % g.N }

func (g *Grid) index(i, j int) int { return i*(g.M+1) + j }

func (g *Grid) Point(i, j int) (x, y float64) {
	k := g.index(i, j)
	return g.X.DataP[k], g.Y.DataP[k]
}

func (g *Grid) SetPoint(i, j int, x, y float64) {
	k := g.index(i, j)
	g.X.DataP[k], g.Y.DataP[k] = x, y
}

// Ring returns the closed coordinate ring at radial station j
func (g *Grid) Ring(j int) (c geometry2D.Contour, err error) {
	var (
		X, Y = make([]float64, g.N), make([]float64, g.N)
	)
	for i := 0; i < g.N; i++ {
		X[i], Y[i] = g.Point(i, j)
	}
	return geometry2D.NewContour(X, Y)
}

func (g *Grid) Copy() *Grid {
	return &Grid{N: g.N, M: g.M, X: g.X.Copy(), Y: g.Y.Copy()}
}

func (g *Grid) Equal(o *Grid) bool {
	return g.N == o.N && g.M == o.M && g.X.Equal(o.X) && g.Y.Equal(o.Y)
}

func (g *Grid) Print() (o string) {
	o = fmt.Sprintf("Grid N = %d, M = %d\n", g.N, g.M)
	o += g.X.Print("X")
	o += g.Y.Print("Y")
	return
}

// Cell (I,J) is bounded by nodes (I,J), (I,J+1), (I+1,J+1), (I+1,J)
type Cell struct {
	I, J int
}

func (g *Grid) cellCorners(i, j int) (pts [4][2]float64) {
	ip := g.Next(i)
	pts[0][0], pts[0][1] = g.Point(i, j)
	pts[1][0], pts[1][1] = g.Point(i, j+1)
	pts[2][0], pts[2][1] = g.Point(ip, j+1)
	pts[3][0], pts[3][1] = g.Point(ip, j)
	return
}

// CellArea is the signed (shoelace) area, positive for a valid cell
func (g *Grid) CellArea(i, j int) (area float64) {
	pts := g.cellCorners(i, j)
	for k := 0; k < 4; k++ {
		kp := (k + 1) % 4
		area += pts[k][0]*pts[kp][1] - pts[kp][0]*pts[k][1]
	}
	return 0.5 * area
}

/*
CellMinCorner is the smallest corner cross product of the cell,
(p[k+1]-p[k]) x (p[k-1]-p[k]). All four are positive for a convex, correctly
oriented quad. A value <= 0 means the cell is folded, inverted or has
collapsed to a degenerate shape.
*/
func (g *Grid) CellMinCorner(i, j int) float64 {
	return minCorner(g.cellCorners(i, j))
}

func minCorner(pts [4][2]float64) (minC float64) {
	minC = math.Inf(1)
	for k := 0; k < 4; k++ {
		var (
			kp, km = (k + 1) % 4, (k + 3) % 4
			ax, ay = pts[kp][0] - pts[k][0], pts[kp][1] - pts[k][1]
			bx, by = pts[km][0] - pts[k][0], pts[km][1] - pts[k][1]
		)
		minC = math.Min(minC, ax*by-ay*bx)
	}
	return
}

/*
minCornerAround evaluates the four cells sharing interior node (i,j), with the
node moved to (x,y). Only g is read, so the same check serves the in place and
the double buffered sweeps.
*/
func (g *Grid) minCornerAround(i, j int, x, y float64) (minC float64) {
	minC = math.Inf(1)
	im := g.Prev(i)
	for _, c := range [4]Cell{{i, j}, {im, j}, {i, j - 1}, {im, j - 1}} {
		pts := g.cellCorners(c.I, c.J)
		for k := 0; k < 4; k++ {
			ii, jj := c.I, c.J
			switch k {
			case 1:
				jj++
			case 2:
				ii, jj = g.Next(ii), jj+1
			case 3:
				ii = g.Next(ii)
			}
			if ii == i && jj == j {
				pts[k] = [2]float64{x, y}
			}
		}
		minC = math.Min(minC, minCorner(pts))
	}
	return
}
