package geom

// PolarLine returns the polar line of p with respect to the conic: the
// homogeneous vector (px, py, 1) multiplied by the conic matrix gives the
// line coefficients directly. When p lies on the conic the polar is the
// tangent at p.
func PolarLine(p Point, c Coeffs) Line {
	m := c.Matrix()
	return Line{
		A: m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		B: m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
		C: m[2][0]*p.X + m[2][1]*p.Y + m[2][2],
	}
}
