package readfiles

import (
	"fmt"

	"github.com/notargets/airfoilgrid/geometry2D"
	"github.com/notargets/airfoilgrid/mesh"
	"github.com/notargets/airfoilgrid/types"
)

/*
MeshData is the file level view of a 2D mesh: zero based node coordinates,
element vertex loops (3 for triangles, 4 for quads) and boundary edges by
marker. It is what the writers consume and what ReadSU2 produces.
*/
type MeshData struct {
	X, Y     []float64
	Elements [][]int
	Markers  map[types.BCFLAG][][2]int
}

// FromMesh copies the mesh, later changes to either side are not shared
func FromMesh(m *mesh.Mesh) (md *MeshData) {
	md = &MeshData{
		X:        append([]float64(nil), m.X...),
		Y:        append([]float64(nil), m.Y...),
		Elements: make([][]int, len(m.Quads)),
		Markers:  copyMarkers(m.Markers),
	}
	for k, q := range m.Quads {
		md.Elements[k] = []int{q[0], q[1], q[2], q[3]}
	}
	return
}

func FromTriMesh(tm *geometry2D.TriMesh) (md *MeshData) {
	md = &MeshData{
		X:        make([]float64, len(tm.Points)),
		Y:        make([]float64, len(tm.Points)),
		Elements: make([][]int, len(tm.Tris)),
		Markers:  copyMarkers(tm.Markers),
	}
	for i, pt := range tm.Points {
		md.X[i], md.Y[i] = pt.X[0], pt.X[1]
	}
	for k, tri := range tm.Tris {
		md.Elements[k] = []int{tri[0], tri[1], tri[2]}
	}
	return
}

func copyMarkers(markers map[types.BCFLAG][][2]int) (cp map[types.BCFLAG][][2]int) {
	cp = make(map[types.BCFLAG][][2]int, len(markers))
	for bc, edges := range markers {
		cp[bc] = append([][2]int(nil), edges...)
	}
	return
}

func (md *MeshData) NumNodes() int { return len(md.X) }

// markerOrder is the order markers are written in
func (md *MeshData) markerOrder() (flags []types.BCFLAG) {
	for _, bc := range []types.BCFLAG{types.BC_Wall, types.BC_Far} {
		if len(md.Markers[bc]) != 0 {
			flags = append(flags, bc)
		}
	}
	return
}

func (md *MeshData) check() error {
	if len(md.X) != len(md.Y) {
		return fmt.Errorf("coordinate arrays differ in length: %d vs %d", len(md.X), len(md.Y))
	}
	for k, el := range md.Elements {
		if len(el) != 3 && len(el) != 4 {
			return fmt.Errorf("element %d has %d vertices, only triangles and quads are supported", k, len(el))
		}
		for _, n := range el {
			if n < 0 || n >= len(md.X) {
				return fmt.Errorf("element %d references node %d, outside [0,%d)", k, n, len(md.X))
			}
		}
	}
	return nil
}
