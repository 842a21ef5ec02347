package geometry2D

import (
	"fmt"
	"math"
	"strings"
)

type NodeSpacing uint8

const (
	UNIFORM NodeSpacing = iota
	COSLE               // clustered at the leading edge
	COSLETE             // clustered at both leading and trailing edges
)

var spacingNames = map[string]NodeSpacing{
	"UNIFORM": UNIFORM,
	"COSLE":   COSLE,
	"COSLETE": COSLETE,
}

func NewNodeSpacing(label string) (ns NodeSpacing, err error) {
	var ok bool
	if ns, ok = spacingNames[strings.ToUpper(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("not a valid node spacing method [%s], use one of UNIFORM, COSLE, COSLETE", label)
	}
	return
}

func (ns NodeSpacing) String() string {
	for k, v := range spacingNames {
		if v == ns {
			return k
		}
	}
	return "UNKNOWN"
}

// Chord stations in [0,1] for nPoints points
func (ns NodeSpacing) Stations(nPoints int) (x []float64) {
	x = make([]float64, nPoints)
	for i := range x {
		frac := float64(i) / float64(nPoints-1)
		switch ns {
		case COSLE:
			x[i] = 1 - math.Cos(0.5*math.Pi*frac)
		case COSLETE:
			x[i] = 0.5 * (1 - math.Cos(math.Pi*frac))
		default:
			x[i] = frac
		}
	}
	// Pin the ends so the leading and trailing edges are exact
	x[0], x[nPoints-1] = 0, 1
	return
}

// Coefficient of x^4 in the thickness law, this value closes the trailing edge
const closedTrailingEdge = -0.1036

type NACA4Airfoil struct {
	Code    string
	M, P, T float64 // max camber, camber location, thickness, as chord fractions
}

// ParseNACA4 accepts "NACA2412", "naca 2412" or "2412"
func ParseNACA4(code string) (af NACA4Airfoil, err error) {
	digits := strings.ToUpper(strings.ReplaceAll(code, " ", ""))
	digits = strings.TrimPrefix(digits, "NACA")
	if len(digits) != 4 {
		err = fmt.Errorf("airfoil code [%s] is not a NACA 4-digit code", code)
		return
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			err = fmt.Errorf("airfoil code [%s] does not consist of only numbers", code)
			return
		}
	}
	af = NACA4Airfoil{
		Code: "NACA" + digits,
		M:    float64(digits[0]-'0') / 100.,
		P:    float64(digits[1]-'0') / 10.,
		T:    float64((digits[2]-'0')*10+(digits[3]-'0')) / 100.,
	}
	if af.T <= 0 {
		err = fmt.Errorf("airfoil code [%s] has zero thickness", code)
	}
	return
}

func (af NACA4Airfoil) Camber(x float64) float64 {
	var (
		m, p = af.M, af.P
	)
	switch {
	case m == 0:
		return 0
	case p == 0:
		return m * x
	case x <= p:
		return m / (p * p) * (2*p*x - x*x)
	default:
		return m / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*x - x*x)
	}
}

func (af NACA4Airfoil) Thickness(x float64) float64 {
	return 5 * af.T * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x + closedTrailingEdge*x*x*x*x)
}

// Surfaces evaluates both surfaces at the chord stations
func (af NACA4Airfoil) Surfaces(x []float64) (yUpper, yLower, yCamber []float64) {
	yUpper, yLower, yCamber = make([]float64, len(x)), make([]float64, len(x)), make([]float64, len(x))
	for i, xx := range x {
		yCamber[i] = af.Camber(xx)
		t := af.Thickness(xx)
		yUpper[i] = yCamber[i] + t
		yLower[i] = yCamber[i] - t
	}
	return
}

/*
NACA4 returns the airfoil as a counter-clockwise contour with about Nc points:
the upper surface from the trailing edge to the leading edge, then the lower
surface back toward the trailing edge. The leading and trailing edge points
are stored once.
*/
func NACA4(code string, spacing NodeSpacing, Nc int) (c Contour, err error) {
	var (
		af      NACA4Airfoil
		nPoints = Nc/2 + 1
	)
	if af, err = ParseNACA4(code); err != nil {
		return
	}
	if Nc < 4 {
		err = fmt.Errorf("need at least 4 circumferential points for an airfoil, have %d", Nc)
		return
	}
	x := spacing.Stations(nPoints)
	yUpper, yLower, _ := af.Surfaces(x)
	pts := make([]Point, 0, 2*nPoints-2)
	for i := nPoints - 1; i >= 0; i-- {
		pts = append(pts, NewPoint(x[i], yUpper[i]))
	}
	for i := 1; i < nPoints-1; i++ {
		pts = append(pts, NewPoint(x[i], yLower[i]))
	}
	return NewContourFromPoints(pts)
}
