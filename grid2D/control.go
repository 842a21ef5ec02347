package grid2D

import (
	"math"

	"github.com/notargets/airfoilgrid/utils"
)

/*
ControlFunctions holds the source terms P (phi, along i) and Q (psi, along j)
of the generation equations

	alpha*(x_xixi + P*x_xi) - 2*beta*x_xieta + gamma*(x_etaeta + Q*x_eta) = 0

Each is the sum of a base field, fixed when the functions are built, and a wall
correction per radial line that decays with j. The wall corrections integrate
the error between the current first layer geometry and its targets each time
Refresh is called.
*/
type ControlFunctions struct {
	cfg          ControlConfig
	N, M         int
	P, Q         utils.Matrix // N x (M+1), combined and clamped
	pBase, qBase utils.Matrix
	pCorr, qCorr []float64
	decay        []float64 // exp(-Decay*j)
	target       []float64 // first layer spacing of the initial grid
	Refreshes    int
}

func NewControlFunctions(cfg Config, g *Grid) (cf *ControlFunctions) {
	var (
		N, M = g.N, g.M
	)
	cf = &ControlFunctions{
		cfg:    cfg.Control,
		N:      N,
		M:      M,
		P:      utils.NewMatrix(N, M+1),
		Q:      utils.NewMatrix(N, M+1),
		pBase:  utils.NewMatrix(N, M+1),
		qBase:  utils.NewMatrix(N, M+1),
		pCorr:  make([]float64, N),
		qCorr:  make([]float64, N),
		decay:  make([]float64, M+1),
		target: make([]float64, N),
	}
	for j := range cf.decay {
		cf.decay[j] = math.Exp(-cf.cfg.Decay * float64(j))
	}
	for i := 0; i < N; i++ {
		cf.target[i] = wallSpacing(g, i)
	}
	if cf.cfg.Type == ThomasMiddlecoff {
		cf.thomasMiddlecoff(g)
	}
	cf.combine()
	return
}

// boundaryPhi is -(x_xi . x_xixi)/|x_xi|^2 along row j
func boundaryPhi(g *Grid, i, j int) float64 {
	var (
		x0, y0 = g.Point(g.Prev(i), j)
		x1, y1 = g.Point(i, j)
		x2, y2 = g.Point(g.Next(i), j)
		xXi    = 0.5 * (x2 - x0)
		yXi    = 0.5 * (y2 - y0)
		xXiXi  = x2 - 2*x1 + x0
		yXiXi  = y2 - 2*y1 + y0
		mag2   = xXi*xXi + yXi*yXi
	)
	if mag2 == 0 {
		return 0
	}
	return -(xXi*xXiXi + yXi*yXiXi) / mag2
}

func (cf *ControlFunctions) thomasMiddlecoff(g *Grid) {
	var (
		N, M = g.N, g.M
		arc  = make([]float64, M+1)
	)
	for i := 0; i < N; i++ {
		// Arc length fraction along the radial line blends the boundary values of P
		for j := 1; j <= M; j++ {
			xa, ya := g.Point(i, j-1)
			xb, yb := g.Point(i, j)
			arc[j] = arc[j-1] + math.Hypot(xb-xa, yb-ya)
		}
		var (
			pWall = boundaryPhi(g, i, 0)
			pFar  = boundaryPhi(g, i, M)
		)
		for j := 0; j <= M; j++ {
			t := float64(j) / float64(M)
			if arc[M] > 0 {
				t = arc[j] / arc[M]
			}
			cf.pBase.Set(i, j, (1-t)*pWall+t*pFar)
		}
		// Q from the radial point distribution, -(x_eta . x_etaeta)/|x_eta|^2
		for j := 1; j < M; j++ {
			var (
				x0, y0  = g.Point(i, j-1)
				x1, y1  = g.Point(i, j)
				x2, y2  = g.Point(i, j+1)
				xEta    = 0.5 * (x2 - x0)
				yEta    = 0.5 * (y2 - y0)
				xEtaEta = x2 - 2*x1 + x0
				yEtaEta = y2 - 2*y1 + y0
				mag2    = xEta*xEta + yEta*yEta
			)
			if mag2 > 0 {
				cf.qBase.Set(i, j, -(xEta*xEtaEta+yEta*yEtaEta)/mag2)
			}
		}
	}
}

func wallSpacing(g *Grid, i int) float64 {
	x0, y0 := g.Point(i, 0)
	x1, y1 := g.Point(i, 1)
	return math.Hypot(x1-x0, y1-y0)
}

// WallCosine is the cosine of the angle between the wall tangent and the first radial segment at node i
func WallCosine(g *Grid, i int) float64 {
	var (
		xa, ya = g.Point(g.Prev(i), 0)
		xb, yb = g.Point(g.Next(i), 0)
		x0, y0 = g.Point(i, 0)
		x1, y1 = g.Point(i, 1)
		tx, ty = xb - xa, yb - ya
		nx, ny = x1 - x0, y1 - y0
		mag    = math.Hypot(tx, ty) * math.Hypot(nx, ny)
	)
	if mag == 0 {
		return 0
	}
	return (tx*nx + ty*ny) / mag
}

func (cf *ControlFunctions) HasCorrections() bool {
	return cf.cfg.SpacingGain != 0 || cf.cfg.OrthogonalityGain != 0
}

// RefreshDue reports whether the corrections are updated before sweep iter (counting from 1)
func (cf *ControlFunctions) RefreshDue(iter int) bool {
	K := cf.cfg.RefreshInterval
	return K > 0 && cf.HasCorrections() && iter > 1 && (iter-1)%K == 0
}

/*
Refresh accumulates the wall corrections from the current grid:
Q gets -SpacingGain*(d/d* - 1), which pulls nodes toward the wall where the
first layer has grown, P gets -OrthogonalityGain*cos(theta), which leans the
radial line back toward the wall normal.
*/
func (cf *ControlFunctions) Refresh(g *Grid) {
	for i := 0; i < cf.N; i++ {
		if cf.target[i] > 0 {
			cf.qCorr[i] -= cf.cfg.SpacingGain * (wallSpacing(g, i)/cf.target[i] - 1)
		}
		cf.pCorr[i] -= cf.cfg.OrthogonalityGain * WallCosine(g, i)
		cf.qCorr[i] = clamp(cf.qCorr[i], cf.cfg.Limit)
		cf.pCorr[i] = clamp(cf.pCorr[i], cf.cfg.Limit)
	}
	cf.combine()
	cf.Refreshes++
}

func (cf *ControlFunctions) combine() {
	for i := 0; i < cf.N; i++ {
		for j := 0; j <= cf.M; j++ {
			cf.P.Set(i, j, clamp(cf.pBase.At(i, j)+cf.pCorr[i]*cf.decay[j], cf.cfg.Limit))
			cf.Q.Set(i, j, clamp(cf.qBase.At(i, j)+cf.qCorr[i]*cf.decay[j], cf.cfg.Limit))
		}
	}
}

func (cf *ControlFunctions) At(i, j int) (p, q float64) {
	k := i*(cf.M+1) + j
	return cf.P.DataP[k], cf.Q.DataP[k]
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
