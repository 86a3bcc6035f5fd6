package pathgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesNonDegeneratePath(t *testing.T) {
	shapes := []Shape{ShapeDefault, ShapeSpiral, ShapeZigzag, ShapeLoop, ShapeCross}
	for _, shape := range shapes {
		t.Run(string(shape), func(t *testing.T) {
			p := New(42, shape, 1000, 800)
			require.GreaterOrEqual(t, len(p.Points), 2)
			assert.Greater(t, p.TotalLength(), 0.0)
		})
	}
}

func TestNewFallsBackToStraightLineWhenDegenerate(t *testing.T) {
	// width/height of zero collapses every shape builder's points onto a
	// single coordinate, forcing the degenerate-construction fallback.
	p := New(1, ShapeDefault, 0, 0)
	require.Len(t, p.Points, 2)
	assert.Equal(t, Point{X: 0, Y: 0}, p.Points[0])
	assert.Equal(t, Point{X: 0, Y: 0}, p.Points[1])
}

func TestPositionAtEndpoints(t *testing.T) {
	p := New(7, ShapeDefault, 1000, 800)

	x0, y0, _ := p.PositionAt(0)
	assert.Equal(t, p.Points[0].X, x0)
	assert.Equal(t, p.Points[0].Y, y0)

	last := len(p.Points) - 1
	x1, y1, _ := p.PositionAt(1)
	assert.Equal(t, p.Points[last].X, x1)
	assert.Equal(t, p.Points[last].Y, y1)
}

func TestPositionAtIsMonotonicArcLength(t *testing.T) {
	p := New(99, ShapeZigzag, 1200, 900)

	// The zigzag is monotonic in x, so moving backward along the arc would
	// show up as x decreasing.
	prevX, _, _ := p.PositionAt(0)
	for i := 1; i <= 20; i++ {
		progress := float64(i) / 20
		x, _, _ := p.PositionAt(progress)
		assert.GreaterOrEqual(t, x, prevX-1e-9, "position must not move backward along the arc")
		prevX = x
	}
}

func TestSegmentIndexAtIsMonotonicNonDecreasing(t *testing.T) {
	p := New(13, ShapeLoop, 1000, 800)
	last := len(p.Points) - 1

	prevIdx := 0
	for i := 0; i <= 10; i++ {
		progress := float64(i) / 10
		idx := p.SegmentIndexAt(progress)
		assert.GreaterOrEqual(t, idx, prevIdx)
		assert.LessOrEqual(t, idx, last)
		prevIdx = idx
	}
	assert.Equal(t, last, p.SegmentIndexAt(1))
	assert.Equal(t, 0, p.SegmentIndexAt(0))
}

func TestDistanceToPathAndIsOnPath(t *testing.T) {
	p := New(3, ShapeDefault, 1000, 800)

	x, y, _ := p.PositionAt(0.5)
	pt := Point{X: x, Y: y}
	assert.InDelta(t, 0.0, p.DistanceToPath(pt), 1e-6)
	assert.True(t, p.IsOnPath(pt, 1))

	far := Point{X: x + 10000, Y: y + 10000}
	assert.Greater(t, p.DistanceToPath(far), 1000.0)
	assert.False(t, p.IsOnPath(far, 1))
}

func TestNilPathIsSafe(t *testing.T) {
	var p *Path
	assert.Equal(t, 0.0, p.TotalLength())
	x, y, tangent := p.PositionAt(0.5)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 0.0, tangent)
	assert.Equal(t, 0, p.SegmentIndexAt(0.5))
	assert.True(t, p.DistanceToPath(Point{}) > 0)
}
