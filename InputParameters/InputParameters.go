package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/airfoilgrid/geometry2D"
	"github.com/notargets/airfoilgrid/grid2D"
)

// Parameters obtained from the YAML input file, names are matched without regard to case
type GridParameters struct {
	Title              string                 `json:"Title"`
	Airfoil            string                 `json:"Airfoil"` // NACA 4-digit code
	Spacing            string                 `json:"Spacing"` // UNIFORM, COSLE or COSLETE
	SurfacePoints      int                    `json:"SurfacePoints"`
	FarfieldRadius     float64                `json:"FarfieldRadius"`
	FarfieldCenter     [2]float64             `json:"FarfieldCenter"`
	RadialLayers       int                    `json:"RadialLayers"`
	Distribution       string                 `json:"Distribution"`
	GrowthRatio        float64                `json:"GrowthRatio"`
	FirstLayerFraction float64                `json:"FirstLayerFraction"`
	Tolerance          float64                `json:"Tolerance"`
	MaxIterations      int                    `json:"MaxIterations"`
	Scheme             string                 `json:"Scheme"`
	Relaxation         float64                `json:"Relaxation"`
	ResidualNorm       string                 `json:"ResidualNorm"`
	DivergenceFactor   float64                `json:"DivergenceFactor"`
	DivergenceWindow   int                    `json:"DivergenceWindow"`
	MaxFoldRetries     int                    `json:"MaxFoldRetries"`
	ParallelDegree     int                    `json:"ParallelDegree"`
	LogInterval        int                    `json:"LogInterval"`
	Control            ControlParameters      `json:"Control"`
	Unstructured       UnstructuredParameters `json:"Unstructured"`
}

type ControlParameters struct {
	Type              string  `json:"Type"`
	RefreshInterval   int     `json:"RefreshInterval"`
	SpacingGain       float64 `json:"SpacingGain"`
	OrthogonalityGain float64 `json:"OrthogonalityGain"`
	Decay             float64 `json:"Decay"`
	Limit             float64 `json:"Limit"`
}

type UnstructuredParameters struct {
	MaxArea  float64 `json:"MaxArea"`
	MinAngle float64 `json:"MinAngle"`
}

// Defaults is a NACA 0012 in a 20 chord far field, values absent from an input file keep these
func Defaults() (gp *GridParameters) {
	var (
		cfg  = grid2D.DefaultConfig()
		opts = geometry2D.DefaultUnstructuredOptions()
	)
	gp = &GridParameters{
		Title:              "NACA 0012 O-grid",
		Airfoil:            "NACA0012",
		Spacing:            geometry2D.COSLETE.String(),
		SurfacePoints:      38,
		FarfieldRadius:     cfg.FarfieldRadius,
		FarfieldCenter:     cfg.FarfieldCenter,
		RadialLayers:       cfg.RadialLayers,
		Distribution:       cfg.Distribution.String(),
		GrowthRatio:        cfg.GrowthRatio,
		FirstLayerFraction: cfg.FirstLayerFraction,
		Tolerance:          cfg.Tolerance,
		MaxIterations:      cfg.MaxIterations,
		Scheme:             cfg.Scheme.String(),
		Relaxation:         cfg.Relaxation,
		ResidualNorm:       cfg.ResidualNorm.String(),
		DivergenceFactor:   cfg.DivergenceFactor,
		DivergenceWindow:   cfg.DivergenceWindow,
		MaxFoldRetries:     cfg.MaxFoldRetries,
		ParallelDegree:     cfg.ParallelDegree,
		LogInterval:        cfg.LogInterval,
		Control: ControlParameters{
			Type:              cfg.Control.Type.String(),
			RefreshInterval:   cfg.Control.RefreshInterval,
			SpacingGain:       cfg.Control.SpacingGain,
			OrthogonalityGain: cfg.Control.OrthogonalityGain,
			Decay:             cfg.Control.Decay,
			Limit:             cfg.Control.Limit,
		},
		Unstructured: UnstructuredParameters{
			MaxArea:  opts.MaxArea,
			MinAngle: opts.MinAngle,
		},
	}
	return
}

// Parse overlays the file contents on the current values
func (gp *GridParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, gp)
}

func (gp *GridParameters) ToConfig() (cfg grid2D.Config, err error) {
	cfg = grid2D.Config{
		FarfieldRadius:     gp.FarfieldRadius,
		FarfieldCenter:     gp.FarfieldCenter,
		RadialLayers:       gp.RadialLayers,
		GrowthRatio:        gp.GrowthRatio,
		FirstLayerFraction: gp.FirstLayerFraction,
		Tolerance:          gp.Tolerance,
		MaxIterations:      gp.MaxIterations,
		Relaxation:         gp.Relaxation,
		DivergenceFactor:   gp.DivergenceFactor,
		DivergenceWindow:   gp.DivergenceWindow,
		MaxFoldRetries:     gp.MaxFoldRetries,
		ParallelDegree:     gp.ParallelDegree,
		LogInterval:        gp.LogInterval,
		Control: grid2D.ControlConfig{
			RefreshInterval:   gp.Control.RefreshInterval,
			SpacingGain:       gp.Control.SpacingGain,
			OrthogonalityGain: gp.Control.OrthogonalityGain,
			Decay:             gp.Control.Decay,
			Limit:             gp.Control.Limit,
		},
	}
	if cfg.Distribution, err = grid2D.NewDistribution(gp.Distribution); err != nil {
		return
	}
	if cfg.Scheme, err = grid2D.NewScheme(gp.Scheme); err != nil {
		return
	}
	if cfg.ResidualNorm, err = grid2D.NewResidualNorm(gp.ResidualNorm); err != nil {
		return
	}
	if cfg.Control.Type, err = grid2D.NewControlType(gp.Control.Type); err != nil {
		return
	}
	err = cfg.Validate()
	return
}

// Contour builds the airfoil surface named by Airfoil and Spacing
func (gp *GridParameters) Contour() (c geometry2D.Contour, err error) {
	var (
		spacing geometry2D.NodeSpacing
	)
	if spacing, err = geometry2D.NewNodeSpacing(gp.Spacing); err != nil {
		return
	}
	return geometry2D.NACA4(gp.Airfoil, spacing, gp.SurfacePoints)
}

func (gp *GridParameters) UnstructuredOptions() geometry2D.UnstructuredOptions {
	return geometry2D.UnstructuredOptions{MaxArea: gp.Unstructured.MaxArea, MinAngle: gp.Unstructured.MinAngle}
}

func (gp *GridParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", gp.Title)
	fmt.Printf("[%s]\t\t= Airfoil\n", gp.Airfoil)
	fmt.Printf("[%s]\t\t= Spacing\n", gp.Spacing)
	fmt.Printf("[%d]\t\t\t= Surface Points\n", gp.SurfacePoints)
	fmt.Printf("%8.5f\t\t= Far Field Radius\n", gp.FarfieldRadius)
	fmt.Printf("(%5.3f,%5.3f)\t= Far Field Center\n", gp.FarfieldCenter[0], gp.FarfieldCenter[1])
	fmt.Printf("[%d]\t\t\t= Radial Layers\n", gp.RadialLayers)
	fmt.Printf("[%s]\t\t= Distribution\n", gp.Distribution)
	fmt.Printf("%8.5f\t\t= Growth Ratio\n", gp.GrowthRatio)
	if gp.FirstLayerFraction > 0 {
		fmt.Printf("%8.5e\t\t= First Layer Fraction\n", gp.FirstLayerFraction)
	}
	fmt.Printf("[%s]\t\t= Scheme\n", gp.Scheme)
	fmt.Printf("%8.5f\t\t= Relaxation\n", gp.Relaxation)
	fmt.Printf("%8.5e\t\t= Tolerance\n", gp.Tolerance)
	fmt.Printf("[%d]\t\t\t= Max Iterations\n", gp.MaxIterations)
	fmt.Printf("[%s]\t= Control Type\n", gp.Control.Type)
}
