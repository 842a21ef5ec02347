package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNACA4(t *testing.T) {
	{ // Parsing
		af, err := ParseNACA4("naca2412")
		require.NoError(t, err)
		assert.Equal(t, "NACA2412", af.Code)
		assert.InDelta(t, 0.02, af.M, 1e-15)
		assert.InDelta(t, 0.4, af.P, 1e-15)
		assert.InDelta(t, 0.12, af.T, 1e-15)
		_, err = ParseNACA4("NACA23012")
		assert.Error(t, err)
		_, err = ParseNACA4("NACA12a4")
		assert.Error(t, err)
		_, err = ParseNACA4("0000")
		assert.Error(t, err)
	}
	{ // Closed trailing edge, zero thickness at the leading edge
		af, _ := ParseNACA4("0012")
		assert.InDelta(t, 0., af.Thickness(1), 1e-12)
		assert.Equal(t, 0., af.Thickness(0))
		// Maximum thickness of 12% near 30% chord
		assert.InDelta(t, 0.06, af.Thickness(0.3), 2e-4)
	}
	{ // Camber line continuity at the maximum camber location
		af, _ := ParseNACA4("2412")
		assert.InDelta(t, 0.02, af.Camber(0.4), 1e-12)
		assert.InDelta(t, af.Camber(0.4-1e-9), af.Camber(0.4+1e-9), 1e-9)
	}
	{ // Spacing stations
		for _, ns := range []NodeSpacing{UNIFORM, COSLE, COSLETE} {
			x := ns.Stations(11)
			assert.Equal(t, 0., x[0])
			assert.Equal(t, 1., x[10])
			for i := 1; i < len(x); i++ {
				assert.Greater(t, x[i], x[i-1])
			}
		}
		ns, err := NewNodeSpacing("cosle")
		require.NoError(t, err)
		assert.Equal(t, COSLE, ns)
		assert.Equal(t, "COSLETE", COSLETE.String())
		_, err = NewNodeSpacing("random")
		assert.Error(t, err)
	}
	{ // Contour assembly: TE first, upper surface then lower, counter-clockwise
		c, err := NACA4("NACA0012", COSLETE, 40)
		require.NoError(t, err)
		assert.Equal(t, 40, c.Len())
		assert.InDelta(t, 1., c.At(0).X[0], 1e-15)
		assert.Equal(t, NewPoint(0, 0), c.At(20))
		assert.True(t, c.IsCounterClockwise())
		assert.False(t, c.SelfIntersects())
		// Symmetric section: point i mirrors point N-i
		for i := 1; i < 20; i++ {
			assert.InDelta(t, c.At(i).X[0], c.At(40-i).X[0], 1e-15)
			assert.InDelta(t, c.At(i).X[1], -c.At(40-i).X[1], 1e-15)
			assert.Greater(t, c.At(i).X[1], 0.)
		}
		// Area of NACA 00xx is about 0.685 t c^2
		assert.InDelta(t, 0.685*0.12, c.SignedArea(), 0.003)
		pt, ok := c.InteriorPoint()
		assert.True(t, ok)
		assert.True(t, math.Abs(pt.X[1]) < 0.06)
	}
	{ // Cambered section stays simple and counter-clockwise
		c, err := NACA4("NACA4412", COSLE, 60)
		require.NoError(t, err)
		assert.True(t, c.IsCounterClockwise())
		assert.False(t, c.SelfIntersects())
		_, err = NACA4("NACA4412", COSLE, 3)
		assert.Error(t, err)
	}
}
