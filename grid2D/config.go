package grid2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/airfoilgrid/utils"
)

type Scheme uint8

const (
	GaussSeidel Scheme = iota // in place, successive over-relaxation
	Jacobi                    // double buffered, parallel
)

var schemeNames = map[string]Scheme{
	"gauss-seidel": GaussSeidel,
	"jacobi":       Jacobi,
}

func NewScheme(label string) (s Scheme, err error) {
	var ok bool
	if s, ok = schemeNames[normalizeLabel(label)]; !ok {
		err = configErrorf("Scheme", "unknown scheme [%s], use one of gauss-seidel, jacobi", label)
	}
	return
}

func (s Scheme) String() string { return labelFor(schemeNames, s) }

type Distribution uint8

const (
	Geometric Distribution = iota
	Linear
)

var distributionNames = map[string]Distribution{
	"geometric": Geometric,
	"linear":    Linear,
}

func NewDistribution(label string) (d Distribution, err error) {
	var ok bool
	if d, ok = distributionNames[normalizeLabel(label)]; !ok {
		err = configErrorf("Distribution", "unknown radial distribution [%s], use one of linear, geometric", label)
	}
	return
}

func (d Distribution) String() string { return labelFor(distributionNames, d) }

type ControlType uint8

const (
	ControlNone ControlType = iota
	ThomasMiddlecoff
)

var controlNames = map[string]ControlType{
	"none":              ControlNone,
	"thomas-middlecoff": ThomasMiddlecoff,
}

func NewControlType(label string) (ct ControlType, err error) {
	var ok bool
	if ct, ok = controlNames[normalizeLabel(label)]; !ok {
		err = configErrorf("Control.Type", "unknown control function type [%s], use one of none, thomas-middlecoff", label)
	}
	return
}

func (ct ControlType) String() string { return labelFor(controlNames, ct) }

type ResidualNorm uint8

const (
	NormMax ResidualNorm = iota
	NormRMS
)

var normNames = map[string]ResidualNorm{
	"max": NormMax,
	"rms": NormRMS,
}

func NewResidualNorm(label string) (rn ResidualNorm, err error) {
	var ok bool
	if rn, ok = normNames[normalizeLabel(label)]; !ok {
		err = configErrorf("ResidualNorm", "unknown residual norm [%s], use one of max, rms", label)
	}
	return
}

func (rn ResidualNorm) String() string { return labelFor(normNames, rn) }

func normalizeLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), "_", "-")
}

func labelFor[T comparable](names map[string]T, v T) string {
	for k, vv := range names {
		if vv == v {
			return k
		}
	}
	return "unknown"
}

/*
ControlConfig selects the source terms of the generation equations.
Corrections are driven by the first layer spacing and the wall angle, measured
against targets taken from the initial grid. RefreshInterval = 0 freezes the
control functions after construction.
*/
type ControlConfig struct {
	Type              ControlType
	RefreshInterval   int     // sweeps between refreshes
	SpacingGain       float64 // drives first layer spacing to the initial value
	OrthogonalityGain float64 // drives the wall angle to 90 degrees
	Decay             float64 // corrections scale as exp(-Decay*j)
	Limit             float64 // clamp on |P| and |Q|
}

// Config is passed by value and never modified by the solver
type Config struct {
	FarfieldRadius     float64
	FarfieldCenter     [2]float64
	RadialLayers       int // M, the grid has M+1 radial stations
	Distribution       Distribution
	GrowthRatio        float64 // geometric ratio between successive radial spacings
	FirstLayerFraction float64 // if > 0, the growth ratio is solved to match s_1
	Tolerance          float64
	MaxIterations      int
	Scheme             Scheme
	Relaxation         float64 // omega
	ResidualNorm       ResidualNorm
	DivergenceFactor   float64 // residual / best residual that counts as growth
	DivergenceWindow   int     // consecutive growing sweeps before declaring divergence
	MaxFoldRetries     int     // halvings of omega for an update that folds a cell
	ParallelDegree     int     // Jacobi partitions, 0 selects the number of CPUs
	LogInterval        int     // sweeps between residual log lines, 0 disables
	Control            ControlConfig
}

func DefaultConfig() Config {
	return Config{
		FarfieldRadius:   20,
		FarfieldCenter:   [2]float64{0.5, 0},
		RadialLayers:     40,
		Distribution:     Geometric,
		GrowthRatio:      1.1,
		Tolerance:        1.e-6,
		MaxIterations:    5000,
		Scheme:           GaussSeidel,
		Relaxation:       1.8,
		ResidualNorm:     NormMax,
		DivergenceFactor: 1.e3,
		DivergenceWindow: 10,
		MaxFoldRetries:   4,
		LogInterval:      100,
		Control: ControlConfig{
			Type:  ThomasMiddlecoff,
			Decay: 0.5,
			Limit: 1,
		},
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Validate checks each parameter independently of any contour
func (cfg Config) Validate() error {
	switch {
	case !finite(cfg.FarfieldRadius) || cfg.FarfieldRadius <= 0:
		return configErrorf("FarfieldRadius", "must be positive and finite, have %v", cfg.FarfieldRadius)
	case !finite(cfg.FarfieldCenter[0]) || !finite(cfg.FarfieldCenter[1]):
		return configErrorf("FarfieldCenter", "must be finite, have %v", cfg.FarfieldCenter)
	case cfg.RadialLayers < 1:
		return configErrorf("RadialLayers", "need at least 1 radial layer, have %d", cfg.RadialLayers)
	case cfg.Distribution != Geometric && cfg.Distribution != Linear:
		return configErrorf("Distribution", "unknown distribution %d", cfg.Distribution)
	case cfg.Distribution == Geometric && cfg.FirstLayerFraction == 0 &&
		(!finite(cfg.GrowthRatio) || cfg.GrowthRatio <= 0):
		return configErrorf("GrowthRatio", "must be positive, have %v", cfg.GrowthRatio)
	case !finite(cfg.FirstLayerFraction) || cfg.FirstLayerFraction < 0 || cfg.FirstLayerFraction >= 1:
		return configErrorf("FirstLayerFraction", "must be in [0,1), have %v", cfg.FirstLayerFraction)
	case !finite(cfg.Tolerance) || cfg.Tolerance <= 0:
		return configErrorf("Tolerance", "must be positive, have %v", cfg.Tolerance)
	case cfg.MaxIterations < 1:
		return configErrorf("MaxIterations", "must be at least 1, have %d", cfg.MaxIterations)
	case cfg.Scheme == GaussSeidel && !(cfg.Relaxation > 0 && cfg.Relaxation < 2):
		return configErrorf("Relaxation", "Gauss-Seidel needs 0 < omega < 2, have %v", cfg.Relaxation)
	case cfg.Scheme == Jacobi && !(cfg.Relaxation > 0 && cfg.Relaxation <= 1):
		return configErrorf("Relaxation", "Jacobi needs 0 < omega <= 1, have %v", cfg.Relaxation)
	case cfg.Scheme != GaussSeidel && cfg.Scheme != Jacobi:
		return configErrorf("Scheme", "unknown scheme %d", cfg.Scheme)
	case cfg.ResidualNorm != NormMax && cfg.ResidualNorm != NormRMS:
		return configErrorf("ResidualNorm", "unknown norm %d", cfg.ResidualNorm)
	case !finite(cfg.DivergenceFactor) || cfg.DivergenceFactor <= 1:
		return configErrorf("DivergenceFactor", "must be greater than 1, have %v", cfg.DivergenceFactor)
	case cfg.DivergenceWindow < 1:
		return configErrorf("DivergenceWindow", "must be at least 1, have %d", cfg.DivergenceWindow)
	case cfg.MaxFoldRetries < 0:
		return configErrorf("MaxFoldRetries", "must not be negative, have %d", cfg.MaxFoldRetries)
	case cfg.ParallelDegree < 0:
		return configErrorf("ParallelDegree", "must not be negative, have %d", cfg.ParallelDegree)
	case cfg.LogInterval < 0:
		return configErrorf("LogInterval", "must not be negative, have %d", cfg.LogInterval)
	}
	return cfg.Control.validate()
}

func (cc ControlConfig) validate() error {
	switch {
	case cc.Type != ControlNone && cc.Type != ThomasMiddlecoff:
		return configErrorf("Control.Type", "unknown control function type %d", cc.Type)
	case cc.RefreshInterval < 0:
		return configErrorf("Control.RefreshInterval", "must not be negative, have %d", cc.RefreshInterval)
	case !finite(cc.SpacingGain) || !finite(cc.OrthogonalityGain):
		return configErrorf("Control", "gains must be finite")
	case !finite(cc.Decay) || cc.Decay < 0:
		return configErrorf("Control.Decay", "must not be negative, have %v", cc.Decay)
	case !finite(cc.Limit) || cc.Limit <= 0:
		return configErrorf("Control.Limit", "must be positive, have %v", cc.Limit)
	}
	return nil
}

// parallelDegree is the Jacobi partition count for nInt interior nodes, 0 selects the CPU count
func (cfg Config) parallelDegree(nInt int) int {
	return utils.ParallelDegreeFor(cfg.ParallelDegree, nInt)
}

func (cfg Config) Print() (o string) {
	o = fmt.Sprintf("Far field radius = %8.5f, centre = (%8.5f, %8.5f)\n",
		cfg.FarfieldRadius, cfg.FarfieldCenter[0], cfg.FarfieldCenter[1])
	o += fmt.Sprintf("Radial layers = %d, distribution = %s", cfg.RadialLayers, cfg.Distribution)
	if cfg.Distribution == Geometric {
		if cfg.FirstLayerFraction > 0 {
			o += fmt.Sprintf(", first layer fraction = %8.5e", cfg.FirstLayerFraction)
		} else {
			o += fmt.Sprintf(", growth ratio = %8.5f", cfg.GrowthRatio)
		}
	}
	o += "\n"
	o += fmt.Sprintf("Scheme = %s, omega = %5.3f, tolerance = %8.5e, max iterations = %d, norm = %s\n",
		cfg.Scheme, cfg.Relaxation, cfg.Tolerance, cfg.MaxIterations, cfg.ResidualNorm)
	o += fmt.Sprintf("Control = %s, refresh every %d, gains (spacing, orthogonality) = (%5.3f, %5.3f), limit = %5.3f\n",
		cfg.Control.Type, cfg.Control.RefreshInterval, cfg.Control.SpacingGain, cfg.Control.OrthogonalityGain,
		cfg.Control.Limit)
	return
}
