package readfiles

import (
	"image/color"
	"math"
	"sort"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/airfoilgrid/geometry2D"
	"github.com/notargets/airfoilgrid/types"
)

// Chart colours, boundaries and the camber line use their own colours on top
var (
	lineColor = utils2.WHITE
	bgColor   = utils2.BLACK
)

// Window is a plot region in mesh coordinates, the zero value means the whole mesh
type Window struct {
	XMin, XMax, YMin, YMax float32
}

func (w Window) empty() bool { return w.XMax <= w.XMin || w.YMax <= w.YMin }

// GridLines returns each mesh edge once as x1,y1,x2,y2 segments, by colour.
// Boundary edges are drawn in their marker colour.
func (md *MeshData) GridLines() (lines map[color.RGBA][]float32) {
	var (
		ec   = make(types.EdgeCount)
		keys []types.EdgeKey
	)
	lines = make(map[color.RGBA][]float32)
	for _, el := range md.Elements {
		ec.AddPolygon(el...)
	}
	for _, bc := range md.markerOrder() {
		col := utils2.RED
		if bc == types.BC_Far {
			col = utils2.GREEN
		}
		for _, e := range md.Markers[bc] {
			md.addLine(e, col, lines)
			delete(ec, types.NewEdgeKey(e))
		}
	}
	for key := range ec {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	for _, key := range keys {
		md.addLine(key.GetVertices(false), lineColor, lines)
	}
	return
}

func (md *MeshData) addLine(e [2]int, col color.RGBA, lines map[color.RGBA][]float32) {
	lines[col] = append(lines[col],
		float32(md.X[e[0]]), float32(md.Y[e[0]]),
		float32(md.X[e[1]]), float32(md.Y[e[1]]),
	)
}

// BoundingBox is square so the mesh is not distorted in a square window
func (md *MeshData) BoundingBox() (w Window) {
	w = Window{
		XMin: math.MaxFloat32, XMax: -math.MaxFloat32,
		YMin: math.MaxFloat32, YMax: -math.MaxFloat32,
	}
	for i := range md.X {
		x, y := float32(md.X[i]), float32(md.Y[i])
		w.XMin, w.XMax = min32(w.XMin, x), max32(w.XMax, x)
		w.YMin, w.YMax = min32(w.YMin, y), max32(w.YMax, y)
	}
	var (
		xC, yC = 0.5 * (w.XMin + w.XMax), 0.5 * (w.YMin + w.YMax)
		half   = 0.5 * max32(w.XMax-w.XMin, w.YMax-w.YMin)
	)
	return Window{XMin: xC - half, XMax: xC + half, YMin: yC - half, YMax: yC + half}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// PlotGrid opens a chart window with the mesh and blocks while it is displayed
func (md *MeshData) PlotGrid(w Window) {
	if w.empty() {
		w = md.BoundingBox()
	}
	ch := newChart(w)
	for col, line := range md.GridLines() {
		ch.AddLine(line, col)
	}
	for {
	}
}

// PlotTriMesh draws a triangulation with the chart's own mesh renderer
func PlotTriMesh(gm geometry.TriMesh, w Window) {
	if w.empty() {
		md := &MeshData{X: make([]float64, len(gm.XY)/2), Y: make([]float64, len(gm.XY)/2)}
		for i := range md.X {
			md.X[i], md.Y[i] = float64(gm.XY[2*i]), float64(gm.XY[2*i+1])
		}
		w = md.BoundingBox()
	}
	ch := newChart(w)
	ch.AddTriMesh(gm)
	for {
	}
}

func newChart(w Window) *chart2d.Chart2D {
	return chart2d.NewChart2D(w.XMin, w.XMax, w.YMin, w.YMax,
		1024, 1024, lineColor, bgColor)
}

/*
airfoilLines traces the upper surface in red, the lower surface in green and
the camber line in blue through the chord stations x, as x1,y1,x2,y2 segments.
*/
func airfoilLines(af geometry2D.NACA4Airfoil, x []float64) (lines map[color.RGBA][]float32) {
	lines = make(map[color.RGBA][]float32)
	yUpper, yLower, yCamber := af.Surfaces(x)
	for i := 1; i < len(x); i++ {
		x1, x2 := float32(x[i-1]), float32(x[i])
		lines[utils2.RED] = append(lines[utils2.RED], x1, float32(yUpper[i-1]), x2, float32(yUpper[i]))
		lines[utils2.GREEN] = append(lines[utils2.GREEN], x1, float32(yLower[i-1]), x2, float32(yLower[i]))
		lines[utils2.BLUE] = append(lines[utils2.BLUE], x1, float32(yCamber[i-1]), x2, float32(yCamber[i]))
	}
	return
}

// airfoilWindow is a square window a little wider than the chord
func airfoilWindow() Window {
	return Window{XMin: -0.1, XMax: 1.1, YMin: -0.6, YMax: 0.6}
}

// PlotAirfoil draws the airfoil surfaces and camber line and blocks while they are displayed
func PlotAirfoil(af geometry2D.NACA4Airfoil, x []float64, w Window) {
	if w.empty() {
		w = airfoilWindow()
	}
	ch := newChart(w)
	for col, line := range airfoilLines(af, x) {
		ch.AddLine(line, col)
	}
	for {
	}
}
