package grid2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

type QualityReport struct {
	MinArea, MaxArea               float64
	Folded                         []Cell  // cells with a corner cross product <= 0
	MaxWallAngleDeviation          float64 // degrees away from orthogonal at the wall
	MinWallSpacing, MaxWallSpacing float64
}

// CheckQuality scans every cell, a grid is usable only when Folded is empty
func CheckQuality(g *Grid) (qr QualityReport) {
	var (
		areas   = make([]float64, 0, g.N*g.M)
		spacing = make([]float64, g.N)
	)
	for i := 0; i < g.N; i++ {
		for j := 0; j < g.M; j++ {
			areas = append(areas, g.CellArea(i, j))
			if g.CellMinCorner(i, j) <= 0 {
				qr.Folded = append(qr.Folded, Cell{I: i, J: j})
			}
		}
		spacing[i] = wallSpacing(g, i)
		cosT := math.Max(-1, math.Min(1, WallCosine(g, i)))
		qr.MaxWallAngleDeviation = math.Max(qr.MaxWallAngleDeviation,
			math.Abs(90-math.Acos(cosT)*180/math.Pi))
	}
	qr.MinArea, qr.MaxArea = floats.Min(areas), floats.Max(areas)
	qr.MinWallSpacing, qr.MaxWallSpacing = floats.Min(spacing), floats.Max(spacing)
	return
}

func (qr QualityReport) Print() (o string) {
	o = fmt.Sprintf("Cell area [min, max] = [%8.5e, %8.5e]\n", qr.MinArea, qr.MaxArea)
	o += fmt.Sprintf("Wall spacing [min, max] = [%8.5e, %8.5e]\n", qr.MinWallSpacing, qr.MaxWallSpacing)
	o += fmt.Sprintf("Max wall angle deviation from orthogonal = %6.2f degrees\n", qr.MaxWallAngleDeviation)
	o += fmt.Sprintf("Folded cells = %d\n", len(qr.Folded))
	return
}
