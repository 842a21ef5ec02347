package grid2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlFunctions(t *testing.T) {
	{ // No control: P = Q = 0 everywhere
		contour, cfg := naca0012Config(t, 40, 10)
		g, err := Initialize(contour, cfg)
		require.NoError(t, err)
		cf := NewControlFunctions(cfg, g)
		assert.Equal(t, 0., cf.P.Max())
		assert.Equal(t, 0., cf.P.Min())
		assert.Equal(t, 0., cf.Q.Max())
		assert.Equal(t, 0., cf.Q.Min())
		assert.False(t, cf.RefreshDue(11))
	}
	{ // Thomas-Middlecoff on concentric circles: evenly spaced rings give P = 0,
		// geometric layers give Q = -2(q-1)/(q+1)
		contour, cfg := circleConfig(24, 10)
		cfg.Control.Type = ThomasMiddlecoff
		cfg.GrowthRatio = 1.15
		g, err := Initialize(contour, cfg)
		require.NoError(t, err)
		cf := NewControlFunctions(cfg, g)
		qExpected := -2 * (1.15 - 1) / (1.15 + 1)
		for i := 0; i < g.N; i++ {
			for j := 1; j < g.M; j++ {
				p, q := cf.At(i, j)
				assert.InDelta(t, 0., p, 1.e-12)
				assert.InDelta(t, qExpected, q, 1.e-9)
			}
		}
	}
	{ // Boundary P follows the point distribution: clustering toward i+1 gives P > 0
		contour, cfg := naca0012Config(t, 40, 10)
		cfg.Control.Type = ThomasMiddlecoff
		g, err := Initialize(contour, cfg)
		require.NoError(t, err)
		// Upper surface near the leading edge, points are ordered TE to LE and bunch toward the LE
		assert.Greater(t, boundaryPhi(g, 17, 0), 0.)
		// Lower surface near the leading edge, spacing grows toward i+1
		assert.Less(t, boundaryPhi(g, 23, 0), 0.)
		cf := NewControlFunctions(cfg, g)
		// Clamped at the limit
		for i := 0; i < g.N; i++ {
			for j := 0; j <= g.M; j++ {
				p, q := cf.At(i, j)
				assert.LessOrEqual(t, math.Abs(p), cfg.Control.Limit)
				assert.LessOrEqual(t, math.Abs(q), cfg.Control.Limit)
			}
		}
	}
	{ // Spacing correction: a first layer grown past its target drives Q negative
		contour, cfg := circleConfig(16, 8)
		cfg.Control.SpacingGain = 0.5
		cfg.Control.RefreshInterval = 5
		g, err := Initialize(contour, cfg)
		require.NoError(t, err)
		cf := NewControlFunctions(cfg, g)
		assert.True(t, cf.HasCorrections())
		assert.False(t, cf.RefreshDue(1))
		assert.True(t, cf.RefreshDue(6))
		assert.False(t, cf.RefreshDue(7))
		x, y := g.Point(3, 1)
		g.SetPoint(3, 1, 1.1*x, 1.1*y)
		cf.Refresh(g)
		assert.Equal(t, 1, cf.Refreshes)
		_, q := cf.At(3, 1)
		assert.Less(t, q, 0.)
		_, q2 := cf.At(3, 4)
		assert.Less(t, q, q2) // decays away from the wall
		_, q = cf.At(4, 1)
		assert.Equal(t, 0., q)
	}
	{ // Orthogonality correction leans the radial line back toward the normal
		contour, cfg := circleConfig(16, 8)
		cfg.Control.OrthogonalityGain = 0.5
		g, err := Initialize(contour, cfg)
		require.NoError(t, err)
		cf := NewControlFunctions(cfg, g)
		assert.InDelta(t, 0., WallCosine(g, 0), 1.e-12)
		// Node (0,1) sits on the +x axis, shift it toward increasing i (+y)
		x, y := g.Point(0, 1)
		g.SetPoint(0, 1, x, y+0.05)
		assert.Greater(t, WallCosine(g, 0), 0.)
		cf.Refresh(g)
		p, _ := cf.At(0, 1)
		assert.Less(t, p, 0.)
	}
}
