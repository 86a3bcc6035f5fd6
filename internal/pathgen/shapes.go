package pathgen

import (
	"math"
	"math/rand"
)

// samplesPerSegment is the Bezier sampling density for the default shape.
const samplesPerSegment = 10

// buildDefault draws 6 control points across the field with vertical jitter
// then smooths the result with quadratic Bezier interpolation, anchoring
// each curve segment at the midpoint between consecutive control points so
// the track runs through those midpoints and the two end points, bending
// toward each interior jittered waypoint without passing through it.
func buildDefault(rng *rand.Rand, width, height float64) []Point {
	const controlCount = 6
	controls := make([]Point, controlCount)
	jitter := height * 0.3
	for i := 0; i < controlCount; i++ {
		x := width * float64(i) / float64(controlCount-1)
		y := height/2 + (rng.Float64()*2-1)*jitter
		if i == 0 || i == controlCount-1 {
			y = height / 2
		}
		controls[i] = Point{X: x, Y: y}
	}
	return smoothQuadratic(controls)
}

// smoothQuadratic threads a quadratic Bezier curve through consecutive
// control-point triples, using the midpoint of each adjacent pair as the
// curve anchor and the shared control point as the curve's bend.
func smoothQuadratic(controls []Point) []Point {
	if len(controls) < 2 {
		return controls
	}
	out := make([]Point, 0, len(controls)*samplesPerSegment)
	out = append(out, controls[0])
	for i := 0; i < len(controls)-1; i++ {
		start := controls[i]
		end := controls[i+1]
		if i > 0 {
			start = midpoint(controls[i-1], controls[i])
		}
		if i < len(controls)-2 {
			end = midpoint(controls[i], controls[i+1])
		}
		control := controls[i]
		for s := 1; s <= samplesPerSegment; s++ {
			t := float64(s) / float64(samplesPerSegment)
			out = append(out, quadraticBezier(start, control, end, t))
		}
	}
	return out
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func quadraticBezier(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	x := u*u*p0.X + 2*u*t*p1.X + t*t*p2.X
	y := u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y
	return Point{X: x, Y: y}
}

// buildZigzag produces a monotonic-in-x sawtooth crossing the field's
// vertical center repeatedly.
func buildZigzag(width, height float64) []Point {
	const segments = 8
	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		x := width * float64(i) / float64(segments)
		y := height * 0.25
		if i%2 == 1 {
			y = height * 0.75
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

// buildCross produces a single wide monotonic-in-x "V" traversal: from the
// left edge at 15% of the height to mid-field at 85% and back to the right
// edge at 15%, crossing the field's horizontal centerline twice.
func buildCross(width, height float64) []Point {
	return []Point{
		{X: 0, Y: height * 0.15},
		{X: width * 0.5, Y: height * 0.85},
		{X: width, Y: height * 0.15},
	}
}

// buildSpiral produces a non-monotonic Archimedean spiral that winds
// inward toward the field's center before exiting to the right edge.
func buildSpiral(width, height float64) []Point {
	cx, cy := width/2, height/2
	maxR := minFloat(width, height) * 0.35
	const turns = 2.5
	const samples = 48
	pts := make([]Point, 0, samples+2)
	pts = append(pts, Point{X: 0, Y: cy})
	for i := 1; i <= samples; i++ {
		t := float64(i) / float64(samples)
		angle := t * turns * 2 * math.Pi
		r := maxR * (1 - t*0.85)
		pts = append(pts, Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)})
	}
	pts = append(pts, Point{X: width, Y: cy})
	return pts
}

// buildLoop produces a non-monotonic path that detours through a full
// circular loop partway across the field before continuing to the far edge.
func buildLoop(width, height float64) []Point {
	cy := height / 2
	loopCenter := Point{X: width * 0.5, Y: height * 0.3}
	loopRadius := height * 0.2
	const samples = 24
	pts := make([]Point, 0, samples+4)
	pts = append(pts, Point{X: 0, Y: cy})
	pts = append(pts, Point{X: width * 0.35, Y: cy})
	entryAngle := math.Pi
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		angle := entryAngle + t*2*math.Pi
		pts = append(pts, Point{X: loopCenter.X + loopRadius*math.Cos(angle), Y: loopCenter.Y + loopRadius*math.Sin(angle)})
	}
	pts = append(pts, Point{X: width * 0.65, Y: cy})
	pts = append(pts, Point{X: width, Y: cy})
	return pts
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
