// Package pathgen implements the Path Generator: it builds an
// ordered polyline from a seed and shape tag and answers the position/
// distance queries every other subsystem needs to reason about the track.
package pathgen

import (
	"math"
	"math/rand"
)

// Shape selects the geometric construction used to lay out the track.
type Shape string

const (
	ShapeDefault Shape = "default"
	ShapeSpiral  Shape = "spiral"
	ShapeZigzag  Shape = "zigzag"
	ShapeLoop    Shape = "loop"
	ShapeCross   Shape = "cross"
)

// Point is a 2D world-space coordinate.
type Point struct {
	X float64
	Y float64
}

// Path is an immutable ordered polyline plus its derived arc-length table.
type Path struct {
	Points   []Point
	Shape    Shape
	Width    float64
	Height   float64
	cumLen   []float64 // cumLen[i] = arc length from Points[0] to Points[i]
	totalLen float64
}

// New builds a Path for the given seed, shape, and field dimensions. A
// degenerate construction (zero-length result) falls back to a straight
// line across the vertical middle of the field.
func New(seed uint64, shape Shape, width, height float64) *Path {
	rng := rand.New(rand.NewSource(int64(seed)))
	var raw []Point
	switch shape {
	case ShapeSpiral:
		raw = buildSpiral(width, height)
	case ShapeZigzag:
		raw = buildZigzag(width, height)
	case ShapeLoop:
		raw = buildLoop(width, height)
	case ShapeCross:
		raw = buildCross(width, height)
	default:
		raw = buildDefault(rng, width, height)
	}
	points := dedupeConsecutive(raw)
	if len(points) < 2 || totalArcLength(points) <= 0 {
		points = []Point{{X: 0, Y: height / 2}, {X: width, Y: height / 2}}
	}
	p := &Path{Points: points, Shape: shape, Width: width, Height: height}
	p.buildArcTable()
	return p
}

func dedupeConsecutive(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 {
			last := out[len(out)-1]
			if last.X == p.X && last.Y == p.Y {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func totalArcLength(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += dist(pts[i-1], pts[i])
	}
	return total
}

func (p *Path) buildArcTable() {
	p.cumLen = make([]float64, len(p.Points))
	total := 0.0
	for i := 1; i < len(p.Points); i++ {
		total += dist(p.Points[i-1], p.Points[i])
		p.cumLen[i] = total
	}
	p.totalLen = total
}

func dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Hypot(dx, dy)
}

// TotalLength returns the path's arc length.
func (p *Path) TotalLength() float64 {
	if p == nil {
		return 0
	}
	return p.totalLen
}

// PositionAt maps progress in [0,1] to a world position and tangent angle
// (radians), by linear interpolation along arc length.
func (p *Path) PositionAt(progress float64) (x, y, tangent float64) {
	if p == nil || len(p.Points) == 0 {
		return 0, 0, 0
	}
	if progress <= 0 {
		return p.tangentFrom(0)
	}
	if progress >= 1 {
		return p.tangentFromEnd()
	}
	target := progress * p.totalLen
	idx := p.segmentAt(target)
	a, b := p.Points[idx], p.Points[idx+1]
	segLen := dist(a, b)
	segStart := p.cumLen[idx]
	t := 0.0
	if segLen > 0 {
		t = (target - segStart) / segLen
	}
	x = a.X + (b.X-a.X)*t
	y = a.Y + (b.Y-a.Y)*t
	tangent = math.Atan2(b.Y-a.Y, b.X-a.X)
	return x, y, tangent
}

func (p *Path) tangentFrom(idx int) (x, y, tangent float64) {
	a := p.Points[idx]
	b := p.Points[minInt(idx+1, len(p.Points)-1)]
	return a.X, a.Y, math.Atan2(b.Y-a.Y, b.X-a.X)
}

func (p *Path) tangentFromEnd() (x, y, tangent float64) {
	last := len(p.Points) - 1
	a := p.Points[maxInt(last-1, 0)]
	b := p.Points[last]
	return b.X, b.Y, math.Atan2(b.Y-a.Y, b.X-a.X)
}

// segmentAt returns the index i such that target falls within
// [cumLen[i], cumLen[i+1]].
func (p *Path) segmentAt(target float64) int {
	for i := 1; i < len(p.cumLen); i++ {
		if target <= p.cumLen[i] {
			return i - 1
		}
	}
	return maxInt(len(p.Points)-2, 0)
}

// SegmentIndexAt returns the index of the waypoint the traveler is currently
// heading toward at the given progress. It is monotonically non-decreasing as
// progress increases, reaching the final point's index at progress 1.
func (p *Path) SegmentIndexAt(progress float64) int {
	if p == nil || len(p.Points) < 2 {
		return 0
	}
	if progress <= 0 {
		return 0
	}
	last := len(p.Points) - 1
	if progress >= 1 {
		return last
	}
	target := progress * p.totalLen
	idx := p.segmentAt(target) + 1
	if idx > last {
		idx = last
	}
	return idx
}

// DistanceToPath returns the minimum perpendicular distance from point to
// any segment of the path.
func (p *Path) DistanceToPath(pt Point) float64 {
	if p == nil || len(p.Points) < 2 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for i := 1; i < len(p.Points); i++ {
		d := distanceToSegment(pt, p.Points[i-1], p.Points[i])
		if d < best {
			best = d
		}
	}
	return best
}

// IsOnPath reports whether pt lies within halfWidth of the track.
func (p *Path) IsOnPath(pt Point, halfWidth float64) bool {
	return p.DistanceToPath(pt) <= halfWidth
}

func distanceToSegment(pt, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return dist(pt, a)
	}
	t := ((pt.X-a.X)*abx + (pt.Y-a.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point{X: a.X + abx*t, Y: a.Y + aby*t}
	return dist(pt, proj)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
