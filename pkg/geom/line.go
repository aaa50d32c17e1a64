package geom

import "math"

// Epsilon is the tolerance used for all near-zero comparisons: parallelism
// tests, conic classification, and the near-vertical line branch.
const Epsilon = 1e-9

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Line is the implicit form ax + by + c = 0.
type Line struct {
	A, B, C float64
}

// IsDegenerate reports whether the line has a zero-length normal vector.
// Degenerate lines arise transiently, e.g. from two coincident defining
// points mid-drag, and are tolerated by every consumer in this package.
func (l Line) IsDegenerate() bool {
	return l.A*l.A+l.B*l.B < Epsilon*Epsilon
}

// LineThrough returns the line through p1 and p2.
// Coincident points yield the degenerate zero line.
func LineThrough(p1, p2 Point) Line {
	return Line{
		A: p2.Y - p1.Y,
		B: p1.X - p2.X,
		C: p2.X*p1.Y - p1.X*p2.Y,
	}
}

// LineAt returns the line through pivot with the given inclination angle
// in radians.
func LineAt(pivot Point, angle float64) Line {
	sin, cos := math.Sincos(angle)
	return Line{
		A: sin,
		B: -cos,
		C: -sin*pivot.X + cos*pivot.Y,
	}
}

// IntersectLines solves the 2×2 linear system formed by two lines.
// The second return value is false when the lines are parallel or
// coincident (|det| below [Epsilon]).
func IntersectLines(l1, l2 Line) (Point, bool) {
	det := l1.A*l2.B - l2.A*l1.B
	if math.Abs(det) < Epsilon {
		return Point{}, false
	}
	return Point{
		X: (l1.B*l2.C - l2.B*l1.C) / det,
		Y: (l2.A*l1.C - l1.A*l2.C) / det,
	}, true
}

// Project returns the foot of the perpendicular from p onto l.
// For a degenerate line the input point is returned unchanged.
func Project(p Point, l Line) Point {
	n2 := l.A*l.A + l.B*l.B
	if n2 == 0 {
		return p
	}
	d := (l.A*p.X + l.B*p.Y + l.C) / n2
	return Point{X: p.X - l.A*d, Y: p.Y - l.B*d}
}
