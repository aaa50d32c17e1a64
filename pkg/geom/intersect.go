package geom

import "math"

// IntersectLineConic substitutes the line into the conic's general equation
// and solves the resulting quadratic.
//
// The result is either empty (no real intersection, or a degenerate
// configuration) or exactly two points in a fixed order: the root using
// +√disc first, then −√disc. Tangent lines therefore yield two coincident
// points, so a stored solution index always selects the same branch across
// repeated evaluations.
func IntersectLineConic(l Line, c Coeffs) []Point {
	if math.Abs(l.B) < Epsilon {
		return intersectVertical(l, c)
	}

	// y = kx + m
	k := -l.A / l.B
	m := -l.C / l.B

	qa := c.A + c.B*k + c.C*k*k
	qb := c.B*m + 2*c.C*k*m + c.D + c.E*k
	qc := c.C*m*m + c.E*m + c.F

	x1, x2, ok := solveQuadratic(qa, qb, qc)
	if !ok {
		return nil
	}
	return []Point{
		{X: x1, Y: k*x1 + m},
		{X: x2, Y: k*x2 + m},
	}
}

// intersectVertical handles the near-vertical branch: x is fixed at −c/a
// and the quadratic is solved in y.
func intersectVertical(l Line, c Coeffs) []Point {
	if math.Abs(l.A) < Epsilon {
		return nil
	}
	x := -l.C / l.A

	qa := c.C
	qb := c.B*x + c.E
	qc := c.A*x*x + c.D*x + c.F

	y1, y2, ok := solveQuadratic(qa, qb, qc)
	if !ok {
		return nil
	}
	return []Point{
		{X: x, Y: y1},
		{X: x, Y: y2},
	}
}

// solveQuadratic returns the two real roots of qa·t² + qb·t + qc = 0 in
// fixed order (+√disc first). It reports false for a negative discriminant
// or a vanishing quadratic coefficient.
func solveQuadratic(qa, qb, qc float64) (float64, float64, bool) {
	if math.Abs(qa) < Epsilon*Epsilon {
		return 0, 0, false
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return (-qb + sq) / (2 * qa), (-qb - sq) / (2 * qa), true
}
