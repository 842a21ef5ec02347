package InputParameters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/airfoilgrid/geometry2D"
	"github.com/notargets/airfoilgrid/grid2D"
)

var inputFile = []byte(`
########################################
Title: "Cambered airfoil"
Airfoil: NACA2412
SurfacePoints: 64
FarfieldRadius: 15
FarfieldCenter: [0.25, 0]
RadialLayers: 24
FirstLayerFraction: 0.001
Scheme: jacobi
Relaxation: 0.8
Control:
  Type: thomas_middlecoff
  RefreshInterval: 50
  SpacingGain: 0.1
Unstructured:
  MaxArea: 0.5
########################################
`)

func TestGridParameters(t *testing.T) {
	{ // Test defaults reproduce the default configuration
		cfg, err := Defaults().ToConfig()
		require.NoError(t, err)
		assert.Equal(t, grid2D.DefaultConfig(), cfg)
	}
	{ // Test a file overlays the defaults
		gp := Defaults()
		require.NoError(t, gp.Parse(inputFile))
		assert.Equal(t, "Cambered airfoil", gp.Title)
		assert.Equal(t, "COSLETE", gp.Spacing)
		assert.Equal(t, 0.5, gp.Unstructured.MaxArea)
		assert.Equal(t, 25., gp.Unstructured.MinAngle)
		cfg, err := gp.ToConfig()
		require.NoError(t, err)
		assert.Equal(t, 15., cfg.FarfieldRadius)
		assert.Equal(t, [2]float64{0.25, 0}, cfg.FarfieldCenter)
		assert.Equal(t, 24, cfg.RadialLayers)
		assert.Equal(t, grid2D.Geometric, cfg.Distribution)
		assert.Equal(t, 0.001, cfg.FirstLayerFraction)
		assert.Equal(t, grid2D.Jacobi, cfg.Scheme)
		assert.Equal(t, 0.8, cfg.Relaxation)
		assert.Equal(t, grid2D.ThomasMiddlecoff, cfg.Control.Type)
		assert.Equal(t, 50, cfg.Control.RefreshInterval)
		assert.Equal(t, 0.1, cfg.Control.SpacingGain)
		assert.Equal(t, 0.5, cfg.Control.Decay)
		c, err := gp.Contour()
		require.NoError(t, err)
		assert.Equal(t, 64, c.Len())
		assert.True(t, c.IsCounterClockwise())
		assert.Equal(t, geometry2D.UnstructuredOptions{MaxArea: 0.5, MinAngle: 25}, gp.UnstructuredOptions())
	}
	{ // Test bad labels and values surface as configuration errors
		gp := Defaults()
		gp.Scheme = "multigrid"
		_, err := gp.ToConfig()
		assert.True(t, errors.Is(err, grid2D.ErrConfiguration))
		gp = Defaults()
		gp.RadialLayers = 0
		_, err = gp.ToConfig()
		var ce *grid2D.ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "RadialLayers", ce.Field)
		gp = Defaults()
		gp.Spacing = "chebyshev"
		_, err = gp.Contour()
		assert.Error(t, err)
	}
	{ // Test malformed YAML
		gp := Defaults()
		assert.Error(t, gp.Parse([]byte("RadialLayers: [1, 2")))
	}
}
