package geometry2D

import (
	"fmt"
	"math"

	graphics2D "github.com/notargets/avs/geometry"
	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/airfoilgrid/types"
)

// TriMesh is an unstructured triangulation of the region between the airfoil
// and the far field.
type TriMesh struct {
	Points  []Point
	Tris    [][3]int
	Markers map[types.BCFLAG][][2]int // boundary edges by marker
}

type UnstructuredOptions struct {
	MaxArea  float64 // largest triangle area, <= 0 bounds it by the far field area only
	MinAngle float64 // smallest angle in degrees, 0 for no quality refinement
}

// Triangle is only guaranteed to terminate for minimum angles up to about 33.8 degrees
const MaxMinAngle = 33.

func DefaultUnstructuredOptions() UnstructuredOptions {
	return UnstructuredOptions{MaxArea: 2.5, MinAngle: 25}
}

func (opts UnstructuredOptions) check() error {
	switch {
	case math.IsNaN(opts.MaxArea) || math.IsInf(opts.MaxArea, 0):
		return fmt.Errorf("maximum triangle area must be finite, have %v", opts.MaxArea)
	case !(opts.MinAngle >= 0 && opts.MinAngle <= MaxMinAngle):
		return fmt.Errorf("minimum angle must be in [0,%v] degrees, have %v", MaxMinAngle, opts.MinAngle)
	}
	return nil
}

/*
TriangulateAirfoil meshes the annular region between the airfoil and the far
field contour with Shewchuk's Triangle. The airfoil is removed through a hole
seeded at an interior point. The structured elliptic solver is not involved.
*/
func TriangulateAirfoil(airfoil, farfield Contour, opts UnstructuredOptions) (tm *TriMesh, err error) {
	var (
		nA, nF  = airfoil.Len(), farfield.Len()
		pts     = make([][2]float64, 0, nA+nF)
		segs    = make([][2]int32, 0, nA+nF)
		markers = make([]int32, 0, nA+nF)
		hole    Point
		ok      bool
	)
	if err = opts.check(); err != nil {
		return
	}
	if !farfield.Encloses(airfoil) {
		err = fmt.Errorf("far field does not enclose the airfoil")
		return
	}
	if hole, ok = airfoil.InteriorPoint(); !ok {
		err = fmt.Errorf("unable to locate a point inside the airfoil to seed the hole")
		return
	}
	for i, pt := range airfoil.pts {
		pts = append(pts, pt.X)
		segs = append(segs, [2]int32{int32(i), int32(airfoil.Next(i))})
		markers = append(markers, int32(types.BC_Wall))
	}
	for i, pt := range farfield.pts {
		pts = append(pts, pt.X)
		segs = append(segs, [2]int32{int32(nA + i), int32(nA + farfield.Next(i))})
		markers = append(markers, int32(types.BC_Far))
	}
	triOpts := triangle.NewOptions()
	triOpts.Area = opts.MaxArea
	if triOpts.Area <= 0 {
		// Triangle refuses a zero bound, the whole region is always smaller than this
		triOpts.Area = math.Abs(farfield.SignedArea())
	}
	triOpts.Angle = opts.MinAngle
	in := triangle.NewTriangulateIO()
	defer triangle.FreeTriangulateIO(in)
	in.SetPoints(pts)
	in.SetPointMarkers(make([]int32, len(pts)))
	in.SetSegments(segs)
	in.SetSegmentMarkers(markers)
	in.SetHoles([][2]float64{hole.X})
	out := triangle.Triangulate(in, triOpts, false)
	defer triangle.FreeTriangulateIO(out)
	verts, faces := out.Points(), out.Triangles()
	if len(faces) == 0 {
		err = fmt.Errorf("triangulation produced no elements")
		return
	}
	tm = &TriMesh{
		Points: make([]Point, len(verts)),
		Tris:   make([][3]int, len(faces)),
	}
	for i, v := range verts {
		tm.Points[i] = Point{X: v}
	}
	for k, f := range faces {
		tm.Tris[k] = [3]int{int(f[0]), int(f[1]), int(f[2])}
		if tm.triArea(k) < 0 {
			tm.Tris[k][1], tm.Tris[k][2] = tm.Tris[k][2], tm.Tris[k][1]
		}
	}
	tm.classifyBoundary(airfoil, farfield)
	return
}

func (tm *TriMesh) triArea(k int) float64 {
	var (
		p0, p1, p2 = tm.Points[tm.Tris[k][0]], tm.Points[tm.Tris[k][1]], tm.Points[tm.Tris[k][2]]
	)
	return 0.5 * p1.Minus(p0).Cross(p2.Minus(p0))
}

// Boundary edges are referenced by exactly one triangle. Each is assigned to
// the loop whose radius about the far field centroid is closer.
func (tm *TriMesh) classifyBoundary(airfoil, farfield Contour) {
	var (
		ec        = make(types.EdgeCount)
		center    = farfield.Centroid()
		threshold = 0.5 * (airfoil.MaxDistanceFrom(center) + farfield.MinDistanceFrom(center))
	)
	for _, tri := range tm.Tris {
		ec.AddPolygon(tri[0], tri[1], tri[2])
	}
	tm.Markers = make(map[types.BCFLAG][][2]int)
	for _, tri := range tm.Tris {
		for n := 0; n < 3; n++ {
			e := [2]int{tri[n], tri[(n+1)%3]}
			if ec[types.NewEdgeKey(e)] != 1 {
				continue
			}
			mid := tm.Points[e[0]].Plus(tm.Points[e[1]]).Scale(0.5)
			bc := types.BC_Wall
			if mid.Dist(center) > threshold {
				bc = types.BC_Far
			}
			tm.Markers[bc] = append(tm.Markers[bc], e)
		}
	}
}

func (tm *TriMesh) MinAngle() (minAngle float64) {
	minAngle = 180
	for _, tri := range tm.Tris {
		for n := 0; n < 3; n++ {
			p0 := tm.Points[tri[n]]
			a := tm.Points[tri[(n+1)%3]].Minus(p0)
			b := tm.Points[tri[(n+2)%3]].Minus(p0)
			cosT := (a.X[0]*b.X[0] + a.X[1]*b.X[1]) / (a.Norm() * b.Norm())
			minAngle = math.Min(minAngle, math.Acos(math.Max(-1, math.Min(1, cosT)))*180/math.Pi)
		}
	}
	return
}

func (tm *TriMesh) ToGraphMesh() (gm graphics2D.TriMesh) {
	gm = graphics2D.TriMesh{
		XY:       make([]float32, 2*len(tm.Points)),
		TriVerts: make([][3]int64, len(tm.Tris)),
	}
	for i, pt := range tm.Points {
		gm.XY[2*i] = float32(pt.X[0])
		gm.XY[2*i+1] = float32(pt.X[1])
	}
	for k, tri := range tm.Tris {
		for n := 0; n < 3; n++ {
			gm.TriVerts[k][n] = int64(tri[n])
		}
	}
	return
}
