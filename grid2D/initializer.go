package grid2D

import (
	"math"

	"github.com/notargets/airfoilgrid/geometry2D"
)

/*
FarfieldBoundary samples a circle of the given radius with as many points as
the contour, counter-clockwise, starting at the polar angle of contour point 0
about the centre. Matching angles keep the initial radial lines short of
crossing each other.
*/
func FarfieldBoundary(contour geometry2D.Contour, radius float64, center [2]float64) (far geometry2D.Contour) {
	var (
		N      = contour.Len()
		p0     = contour.At(0)
		theta0 = math.Atan2(p0.X[1]-center[1], p0.X[0]-center[0])
		pts    = make([]geometry2D.Point, N)
	)
	for i := range pts {
		theta := theta0 + 2*math.Pi*float64(i)/float64(N)
		pts[i] = geometry2D.NewPoint(center[0]+radius*math.Cos(theta), center[1]+radius*math.Sin(theta))
	}
	far, _ = geometry2D.NewContourFromPoints(pts)
	return
}

// RadialDistribution returns s_0..s_M, with s_0 = 0 and s_M = 1 exactly
func RadialDistribution(cfg Config) (s []float64, err error) {
	var (
		M = cfg.RadialLayers
	)
	if M < 1 {
		err = configErrorf("RadialLayers", "need at least 1 radial layer, have %d", M)
		return
	}
	s = make([]float64, M+1)
	switch {
	case cfg.Distribution == Linear:
		for j := range s {
			s[j] = float64(j) / float64(M)
		}
	case cfg.FirstLayerFraction > 0:
		var q float64
		if q, err = GrowthRatioFor(cfg.FirstLayerFraction, M); err != nil {
			return nil, err
		}
		geometricStations(q, s)
	default:
		geometricStations(cfg.GrowthRatio, s)
	}
	s[0], s[M] = 0, 1
	return
}

func geometricStations(q float64, s []float64) {
	M := len(s) - 1
	if math.Abs(q-1) < 1.e-12 {
		for j := range s {
			s[j] = float64(j) / float64(M)
		}
		return
	}
	qM := math.Pow(q, float64(M))
	for j := range s {
		s[j] = (math.Pow(q, float64(j)) - 1) / (qM - 1)
	}
}

// firstFraction is s_1 = 1/(1 + q + ... + q^(M-1)), decreasing in q
func firstFraction(q float64, M int) (f float64) {
	var sum, qj float64 = 0, 1
	for j := 0; j < M; j++ {
		sum += qj
		qj *= q
	}
	return 1 / sum
}

// GrowthRatioFor solves s_1 = frac for the geometric ratio by bisection
func GrowthRatioFor(frac float64, M int) (q float64, err error) {
	if !(frac > 0 && frac < 1) {
		err = configErrorf("FirstLayerFraction", "must be in (0,1), have %v", frac)
		return
	}
	if M == 1 {
		return 1, nil
	}
	var (
		lo, hi = 0., 2.
	)
	for firstFraction(hi, M) > frac {
		if hi *= 2; hi > 1.e6 {
			err = configErrorf("FirstLayerFraction", "%v is too small to reach with %d layers", frac, M)
			return
		}
	}
	for iter := 0; iter < 200 && hi-lo > 1.e-14*hi; iter++ {
		q = 0.5 * (lo + hi)
		if firstFraction(q, M) > frac {
			lo = q
		} else {
			hi = q
		}
	}
	q = 0.5 * (lo + hi)
	return
}

/*
Initialize builds the algebraic O-grid: node (i,j) = (1-s_j)*wall_i + s_j*far_i.
Row 0 is the contour and row M the far field, both copied exactly. All
configuration problems are reported here as *ConfigError.
*/
func Initialize(contour geometry2D.Contour, cfg Config) (g *Grid, err error) {
	var (
		N      = contour.Len()
		M      = cfg.RadialLayers
		center = geometry2D.NewPoint(cfg.FarfieldCenter[0], cfg.FarfieldCenter[1])
		s      []float64
	)
	if err = cfg.Validate(); err != nil {
		return
	}
	if err = checkContour(contour); err != nil {
		return
	}
	if extent := contour.MaxDistanceFrom(center); cfg.FarfieldRadius <= extent {
		err = configErrorf("FarfieldRadius", "radius %v does not exceed the contour extent %v about the centre",
			cfg.FarfieldRadius, extent)
		return
	}
	far := FarfieldBoundary(contour, cfg.FarfieldRadius, cfg.FarfieldCenter)
	if far.Intersects(contour) || !far.Encloses(contour) {
		err = configErrorf("FarfieldRadius", "far field boundary does not enclose the contour")
		return
	}
	if s, err = RadialDistribution(cfg); err != nil {
		return
	}
	g = NewGrid(N, M)
	for i := 0; i < N; i++ {
		w, f := contour.At(i), far.At(i)
		for j := 0; j <= M; j++ {
			switch j {
			case 0:
				g.SetPoint(i, j, w.X[0], w.X[1])
			case M:
				g.SetPoint(i, j, f.X[0], f.X[1])
			default:
				g.SetPoint(i, j,
					(1-s[j])*w.X[0]+s[j]*f.X[0],
					(1-s[j])*w.X[1]+s[j]*f.X[1])
			}
		}
	}
	return
}

func checkContour(contour geometry2D.Contour) error {
	switch {
	case contour.Len() < 3:
		return configErrorf("Contour", "need at least 3 points, have %d", contour.Len())
	case contour.MinEdgeLength() == 0:
		return configErrorf("Contour", "contains a zero length edge")
	case contour.SelfIntersects():
		return configErrorf("Contour", "contour intersects itself")
	case !contour.IsCounterClockwise():
		return configErrorf("Contour", "contour is clockwise or has zero area, it must be counter-clockwise")
	}
	return nil
}
