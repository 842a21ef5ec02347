package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/airfoilgrid/grid2D"
	"github.com/notargets/airfoilgrid/types"
	"github.com/notargets/airfoilgrid/utils"
)

/*
Mesh is the assembled O-grid: node n = j*N + i holds grid point (i,j), quad
k = j*N + i joins (i,j), (i,j+1), (i+1,j+1), (i+1,j) counter-clockwise with
i+1 taken modulo N. The data is copied out of the grid and is not modified
after Assemble.
*/
type Mesh struct {
	N, M    int
	X, Y    []float64
	Quads   [][4]int
	Markers map[types.BCFLAG][][2]int // boundary edges, airfoil is ring j=0, farfield ring j=M
}

func NodeIndex(N, i, j int) int { return j*N + i }

// Assemble refuses grids with folded cells, the error wraps grid2D.ErrDegenerateGrid
func Assemble(g *grid2D.Grid) (m *Mesh, err error) {
	if g == nil || g.N < 3 || g.M < 1 {
		err = fmt.Errorf("mesh: cannot assemble an empty grid: %w", grid2D.ErrConfiguration)
		return
	}
	if utils.IsNan([2]utils.Matrix{g.X, g.Y}) {
		err = fmt.Errorf("mesh: grid has non-finite coordinates: %w", grid2D.ErrDegenerateGrid)
		return
	}
	if qr := grid2D.CheckQuality(g); len(qr.Folded) != 0 {
		err = &grid2D.DegenerateGridError{Cells: qr.Folded, Grid: g}
		return
	}
	var (
		N, M   = g.N, g.M
		nNodes = N * (M + 1)
	)
	m = &Mesh{
		N:       N,
		M:       M,
		X:       make([]float64, nNodes),
		Y:       make([]float64, nNodes),
		Quads:   make([][4]int, 0, N*M),
		Markers: make(map[types.BCFLAG][][2]int),
	}
	for j := 0; j <= M; j++ {
		for i := 0; i < N; i++ {
			n := NodeIndex(N, i, j)
			m.X[n], m.Y[n] = g.Point(i, j)
		}
	}
	for j := 0; j < M; j++ {
		for i := 0; i < N; i++ {
			ip := g.Next(i)
			m.Quads = append(m.Quads, [4]int{
				NodeIndex(N, i, j), NodeIndex(N, i, j+1), NodeIndex(N, ip, j+1), NodeIndex(N, ip, j),
			})
		}
	}
	for i := 0; i < N; i++ {
		ip := g.Next(i)
		m.Markers[types.BC_Wall] = append(m.Markers[types.BC_Wall], [2]int{NodeIndex(N, i, 0), NodeIndex(N, ip, 0)})
		m.Markers[types.BC_Far] = append(m.Markers[types.BC_Far], [2]int{NodeIndex(N, i, M), NodeIndex(N, ip, M)})
	}
	if err = m.Validate(); err != nil {
		return nil, err
	}
	return
}

func (m *Mesh) NumNodes() int    { return len(m.X) }
func (m *Mesh) NumElements() int { return len(m.Quads) }

// MarkerFlags returns the boundary flags present, in ascending order
func (m *Mesh) MarkerFlags() (flags []types.BCFLAG) {
	for bc := range m.Markers {
		flags = append(flags, bc)
	}
	sort.Slice(flags, func(a, b int) bool { return flags[a] < flags[b] })
	return
}

func (m *Mesh) QuadArea(k int) (area float64) {
	q := m.Quads[k]
	for n := 0; n < 4; n++ {
		a, b := q[n], q[(n+1)%4]
		area += m.X[a]*m.Y[b] - m.X[b]*m.Y[a]
	}
	return 0.5 * area
}

// Incidence is the node x element matrix, entry 1 where the element uses the node
func (m *Mesh) Incidence() (inc utils.CSR) {
	dok := utils.NewDOK(m.NumNodes(), m.NumElements())
	for k, q := range m.Quads {
		for _, n := range q {
			dok.Set(n, k, 1)
		}
	}
	dok.SetReadOnly("incidence")
	return dok.ToCSR()
}

/*
Validate checks the connectivity: N*M quads, indices in range, four distinct
nodes per quad, every node used, each boundary edge owned by one quad and each
interior edge by two, markers on boundary edges only, positive areas.
*/
func (m *Mesh) Validate() (err error) {
	var (
		nNodes = m.NumNodes()
		ec     = make(types.EdgeCount)
	)
	if len(m.Quads) != m.N*m.M {
		return fmt.Errorf("mesh: have %d elements, expected N*M = %d", len(m.Quads), m.N*m.M)
	}
	for k, q := range m.Quads {
		for _, n := range q {
			if n < 0 || n >= nNodes {
				return fmt.Errorf("mesh: element %d references node %d, outside [0,%d)", k, n, nNodes)
			}
		}
		ec.AddPolygon(q[0], q[1], q[2], q[3])
	}
	inc := m.Incidence()
	if inc.NNZ() != 4*len(m.Quads) {
		for k, c := range inc.ColCounts() {
			if c != 4 {
				return fmt.Errorf("mesh: element %d repeats a node, %d distinct nodes", k, c)
			}
		}
	}
	for n, c := range inc.RowCounts() {
		if c == 0 {
			return fmt.Errorf("mesh: node %d is not used by any element", n)
		}
	}
	single, shared, other := ec.Tally()
	if single != 2*m.N || other != 0 {
		return fmt.Errorf("mesh: %d boundary edges (expected %d), %d shared, %d over-shared",
			single, 2*m.N, shared, other)
	}
	for bc, edges := range m.Markers {
		for _, e := range edges {
			if ec[types.NewEdgeKey(e)] != 1 {
				return fmt.Errorf("mesh: %s marker edge %v is not a boundary edge", bc, e)
			}
		}
	}
	for k := range m.Quads {
		if m.QuadArea(k) <= 0 {
			return fmt.Errorf("mesh: element %d has area %v: %w", k, m.QuadArea(k), grid2D.ErrDegenerateGrid)
		}
	}
	return
}
