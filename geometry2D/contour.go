package geometry2D

import (
	"fmt"
	"math"
)

type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) Point { return Point{X: [2]float64{x, y}} }

func (pt Point) Minus(rhs Point) Point {
	return Point{X: [2]float64{pt.X[0] - rhs.X[0], pt.X[1] - rhs.X[1]}}
}

func (pt Point) Plus(rhs Point) Point {
	return Point{X: [2]float64{pt.X[0] + rhs.X[0], pt.X[1] + rhs.X[1]}}
}

func (pt Point) Scale(s float64) Point {
	return Point{X: [2]float64{s * pt.X[0], s * pt.X[1]}}
}

func (pt Point) Norm() float64 { return math.Hypot(pt.X[0], pt.X[1]) }

func (pt Point) Dist(rhs Point) float64 { return pt.Minus(rhs).Norm() }

// Cross is the z component of pt x rhs
func (pt Point) Cross(rhs Point) float64 { return pt.X[0]*rhs.X[1] - pt.X[1]*rhs.X[0] }

/*
Contour is an ordered, closed loop of surface points. Adjacency is periodic:
point Len()-1 connects back to point 0, and the closing point is not stored.
A Contour is never modified after construction, accessors hand out copies.
*/
type Contour struct {
	pts []Point
}

// NewContour builds a contour from coordinate arrays, dropping a repeated
// closing point if present.
func NewContour(X, Y []float64) (c Contour, err error) {
	if len(X) != len(Y) {
		err = fmt.Errorf("contour coordinate arrays differ in length: %d vs %d", len(X), len(Y))
		return
	}
	pts := make([]Point, len(X))
	for i := range X {
		pts[i] = NewPoint(X[i], Y[i])
	}
	return NewContourFromPoints(pts)
}

func NewContourFromPoints(pts []Point) (c Contour, err error) {
	n := len(pts)
	if n > 1 && pts[n-1] == pts[0] {
		n--
	}
	if n < 3 {
		err = fmt.Errorf("contour needs at least 3 distinct points, have %d", n)
		return
	}
	c.pts = make([]Point, n)
	copy(c.pts, pts[:n])
	for i, pt := range c.pts {
		if math.IsNaN(pt.X[0]) || math.IsNaN(pt.X[1]) || math.IsInf(pt.X[0], 0) || math.IsInf(pt.X[1], 0) {
			err = fmt.Errorf("contour point %d is not finite: %v", i, pt.X)
			return Contour{}, err
		}
	}
	return
}

// NewCircleContour samples a circle counter-clockwise starting at angle 0
func NewCircleContour(N int, radius float64, center Point) (c Contour) {
	c.pts = make([]Point, N)
	for i := 0; i < N; i++ {
		theta := 2 * math.Pi * float64(i) / float64(N)
		c.pts[i] = NewPoint(center.X[0]+radius*math.Cos(theta), center.X[1]+radius*math.Sin(theta))
	}
	return
}

func (c Contour) Len() int { return len(c.pts) }

func (c Contour) Next(i int) int { return (i + 1) % len(c.pts) }

func (c Contour) Prev(i int) int { return (i - 1 + len(c.pts)) % len(c.pts) }

// At wraps i onto the contour
func (c Contour) At(i int) Point {
	n := len(c.pts)
	return c.pts[((i%n)+n)%n]
}

func (c Contour) Points() (pts []Point) {
	pts = make([]Point, len(c.pts))
	copy(pts, c.pts)
	return
}

func (c Contour) XY() (X, Y []float64) {
	X, Y = make([]float64, len(c.pts)), make([]float64, len(c.pts))
	for i, pt := range c.pts {
		X[i], Y[i] = pt.X[0], pt.X[1]
	}
	return
}

// Reversed flips the orientation while keeping point 0 first
func (c Contour) Reversed() (r Contour) {
	n := len(c.pts)
	r.pts = make([]Point, n)
	for i := 0; i < n; i++ {
		r.pts[i] = c.pts[(n-i)%n]
	}
	return
}

func (c Contour) SignedArea() (area float64) {
	/*
		Algorithm: Green's theorem in the plane
	*/
	for i, pt0 := range c.pts {
		pt1 := c.pts[c.Next(i)]
		area += pt0.X[0]*pt1.X[1] - pt1.X[0]*pt0.X[1]
	}
	return 0.5 * area
}

func (c Contour) IsCounterClockwise() bool { return c.SignedArea() > 0 }

func (c Contour) Centroid() (centroid Point) {
	/*
		From: https://en.wikipedia.org/wiki/Centroid#Centroid_of_a_polygon
	*/
	var (
		area = c.SignedArea()
	)
	if area == 0 {
		for _, pt := range c.pts {
			centroid = centroid.Plus(pt)
		}
		return centroid.Scale(1 / float64(len(c.pts)))
	}
	for i, pt0 := range c.pts {
		pt1 := c.pts[c.Next(i)]
		metric := pt0.Cross(pt1)
		centroid.X[0] += (pt0.X[0] + pt1.X[0]) * metric
		centroid.X[1] += (pt0.X[1] + pt1.X[1]) * metric
	}
	return centroid.Scale(1 / (6 * area))
}

func (c Contour) PointInside(point Point) (inside bool) {
	/*
		Algorithm:
		Winding Number from http://geomalgorithms.com/a03-_inclusion.html#wn_PnPoly()
		if wn = 0, the point is outside
	*/
	var wn int
	for i, pt0 := range c.pts {
		pt1 := c.pts[c.Next(i)]
		if pt0.X[1] <= point.X[1] {
			if pt1.X[1] > point.X[1] && isLeft(pt0, pt1, point) > 0 {
				wn++
			}
		} else {
			if pt1.X[1] <= point.X[1] && isLeft(pt0, pt1, point) < 0 {
				wn--
			}
		}
	}
	return wn != 0
}

// >0 for P2 left of the line through P0 and P1, =0 on the line, <0 right of it
func isLeft(P0, P1, P2 Point) float64 {
	return P1.Minus(P0).Cross(P2.Minus(P0))
}

func onSegment(p, q, r Point) bool {
	return math.Min(p.X[0], r.X[0]) <= q.X[0] && q.X[0] <= math.Max(p.X[0], r.X[0]) &&
		math.Min(p.X[1], r.X[1]) <= q.X[1] && q.X[1] <= math.Max(p.X[1], r.X[1])
}

// SegmentsIntersect reports whether closed segments p1-p2 and p3-p4 touch
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	var (
		d1 = isLeft(p3, p4, p1)
		d2 = isLeft(p3, p4, p2)
		d3 = isLeft(p1, p2, p3)
		d4 = isLeft(p1, p2, p4)
	)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(p3, p1, p4):
		return true
	case d2 == 0 && onSegment(p3, p2, p4):
		return true
	case d3 == 0 && onSegment(p1, p3, p2):
		return true
	case d4 == 0 && onSegment(p1, p4, p2):
		return true
	}
	return false
}

// SelfIntersects tests every pair of non-adjacent edges
func (c Contour) SelfIntersects() bool {
	n := len(c.pts)
	for i := 0; i < n; i++ {
		a0, a1 := c.pts[i], c.pts[c.Next(i)]
		for k := i + 2; k < n; k++ {
			if i == 0 && k == n-1 { // shares point 0
				continue
			}
			if SegmentsIntersect(a0, a1, c.pts[k], c.pts[c.Next(k)]) {
				return true
			}
		}
	}
	return false
}

// Intersects reports whether any edge of c touches any edge of o
func (c Contour) Intersects(o Contour) bool {
	for i := range c.pts {
		a0, a1 := c.pts[i], c.pts[c.Next(i)]
		for k := range o.pts {
			if SegmentsIntersect(a0, a1, o.pts[k], o.pts[o.Next(k)]) {
				return true
			}
		}
	}
	return false
}

// Encloses reports whether o lies strictly inside c
func (c Contour) Encloses(o Contour) bool {
	if c.Intersects(o) {
		return false
	}
	for _, pt := range o.pts {
		if !c.PointInside(pt) {
			return false
		}
	}
	return true
}

func (c Contour) MaxDistanceFrom(center Point) (d float64) {
	for _, pt := range c.pts {
		d = math.Max(d, pt.Dist(center))
	}
	return
}

func (c Contour) MinDistanceFrom(center Point) (d float64) {
	d = math.Inf(1)
	for _, pt := range c.pts {
		d = math.Min(d, pt.Dist(center))
	}
	return
}

func (c Contour) MinEdgeLength() (l float64) {
	l = math.Inf(1)
	for i, pt := range c.pts {
		l = math.Min(l, pt.Dist(c.pts[c.Next(i)]))
	}
	return
}

func (c Contour) Perimeter() (l float64) {
	for i, pt := range c.pts {
		l += pt.Dist(c.pts[c.Next(i)])
	}
	return
}

// InteriorPoint finds a point strictly inside the contour: the centroid when
// it qualifies, otherwise the midpoint of a chord joining opposite points.
func (c Contour) InteriorPoint() (pt Point, ok bool) {
	if pt = c.Centroid(); c.PointInside(pt) {
		return pt, true
	}
	n := len(c.pts)
	for i := 1; i < n/2; i++ {
		pt = c.pts[i].Plus(c.pts[n-i]).Scale(0.5)
		if c.PointInside(pt) {
			return pt, true
		}
	}
	return Point{}, false
}
