package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContour(t *testing.T) {
	{ // Closing point is dropped, periodic access wraps
		c, err := NewContour([]float64{0, 1, 1, 0, 0}, []float64{0, 0, 1, 1, 0})
		require.NoError(t, err)
		assert.Equal(t, 4, c.Len())
		assert.Equal(t, 3, c.Prev(0))
		assert.Equal(t, 0, c.Next(3))
		assert.Equal(t, NewPoint(0, 1), c.At(-1))
		assert.Equal(t, NewPoint(0, 0), c.At(4))
		assert.InDelta(t, 1., c.SignedArea(), 1e-15)
		assert.True(t, c.IsCounterClockwise())
		assert.False(t, c.Reversed().IsCounterClockwise())
		assert.Equal(t, c.At(0), c.Reversed().At(0))
		assert.InDelta(t, 0.5, c.Centroid().X[0], 1e-15)
		assert.InDelta(t, 0.5, c.Centroid().X[1], 1e-15)
		assert.InDelta(t, 4., c.Perimeter(), 1e-15)
	}
	{ // Accessors return copies
		c, _ := NewContour([]float64{0, 1, 0}, []float64{0, 0, 1})
		pts := c.Points()
		pts[0] = NewPoint(10, 10)
		assert.Equal(t, NewPoint(0, 0), c.At(0))
	}
	{ // Invalid input
		_, err := NewContour([]float64{0, 1}, []float64{0, 0})
		assert.Error(t, err)
		_, err = NewContour([]float64{0, 1, 2}, []float64{0, 0})
		assert.Error(t, err)
		_, err = NewContour([]float64{0, 1, math.NaN()}, []float64{0, 0, 1})
		assert.Error(t, err)
	}
	{ // Point inclusion and self intersection
		c, _ := NewContour([]float64{0, 1, 1, 0}, []float64{0, 0, 1, 1})
		assert.True(t, c.PointInside(NewPoint(0.5, 0.5)))
		assert.False(t, c.PointInside(NewPoint(1.5, 0.5)))
		assert.False(t, c.SelfIntersects())
		bowTie, _ := NewContour([]float64{0, 1, 1, 0}, []float64{0, 1, 0, 1})
		assert.True(t, bowTie.SelfIntersects())
		pt, ok := c.InteriorPoint()
		assert.True(t, ok)
		assert.True(t, c.PointInside(pt))
	}
	{ // Circle enclosure
		inner := NewCircleContour(16, 1, NewPoint(0, 0))
		outer := NewCircleContour(16, 5, NewPoint(0, 0))
		shifted := NewCircleContour(16, 1, NewPoint(4.5, 0))
		assert.True(t, outer.Encloses(inner))
		assert.False(t, inner.Encloses(outer))
		assert.True(t, outer.Intersects(shifted))
		assert.False(t, outer.Encloses(shifted))
		assert.InDelta(t, 1., inner.MaxDistanceFrom(NewPoint(0, 0)), 1e-14)
		assert.InDelta(t, 5., outer.MinDistanceFrom(NewPoint(0, 0)), 1e-14)
		assert.True(t, inner.IsCounterClockwise())
		assert.InDelta(t, 2*math.Sin(math.Pi/16), inner.MinEdgeLength(), 1e-14)
	}
	{ // Segment predicate, including touching and collinear overlap
		assert.True(t, SegmentsIntersect(NewPoint(0, 0), NewPoint(1, 1), NewPoint(0, 1), NewPoint(1, 0)))
		assert.False(t, SegmentsIntersect(NewPoint(0, 0), NewPoint(1, 0), NewPoint(0, 1), NewPoint(1, 1)))
		assert.True(t, SegmentsIntersect(NewPoint(0, 0), NewPoint(1, 0), NewPoint(1, 0), NewPoint(1, 1)))
		assert.True(t, SegmentsIntersect(NewPoint(0, 0), NewPoint(2, 0), NewPoint(1, 0), NewPoint(3, 0)))
	}
}
