package geom

import "math"

// Class identifies a conic section by its discriminant.
type Class int

const (
	// Ellipse: B²−4AC < 0.
	Ellipse Class = iota
	// Hyperbola: B²−4AC > 0.
	Hyperbola
	// Parabola: B²−4AC ≈ 0.
	Parabola
)

// String returns the lowercase class name.
func (c Class) String() string {
	switch c {
	case Ellipse:
		return "ellipse"
	case Hyperbola:
		return "hyperbola"
	case Parabola:
		return "parabola"
	default:
		return "unknown"
	}
}

// Standard holds the standard-form parameters of a conic: center, semi-axes,
// and rotation in radians. For a parabola, A is the focal parameter of
// y² = 4ax and B is unused.
type Standard struct {
	CX, CY   float64
	A, B     float64
	Rotation float64
}

// Coeffs holds the six coefficients of the general conic equation
// Ax² + Bxy + Cy² + Dx + Ey + F = 0.
type Coeffs struct {
	A, B, C, D, E, F float64
}

// Discriminant returns B²−4AC, the classification invariant.
func (c Coeffs) Discriminant() float64 {
	return c.B*c.B - 4*c.A*c.C
}

// Classify maps the discriminant sign to a conic class using [Epsilon].
func Classify(c Coeffs) Class {
	d := c.Discriminant()
	switch {
	case math.Abs(d) < Epsilon:
		return Parabola
	case d < 0:
		return Ellipse
	default:
		return Hyperbola
	}
}

// GeneralCoeffs expands the rotated and translated standard form of the
// given class into general-equation coefficients.
//
// Ellipse and hyperbola expand x²/a² ± y²/b² = 1; the parabola expands
// y² = 4ax. All three are rotated by s.Rotation about the center and
// translated to (s.CX, s.CY).
func GeneralCoeffs(class Class, s Standard) Coeffs {
	sin, cos := math.Sincos(s.Rotation)

	if class == Parabola {
		// v² − 4a·u = 0 in the rotated frame (u along the axis).
		a0 := sin * sin
		b0 := -2 * cos * sin
		c0 := cos * cos
		return Coeffs{
			A: a0,
			B: b0,
			C: c0,
			D: -2*a0*s.CX - b0*s.CY - 4*s.A*cos,
			E: -b0*s.CX - 2*c0*s.CY - 4*s.A*sin,
			F: a0*s.CX*s.CX + b0*s.CX*s.CY + c0*s.CY*s.CY + 4*s.A*(cos*s.CX+sin*s.CY),
		}
	}

	e1 := 1 / (s.A * s.A)
	e2 := 1 / (s.B * s.B)
	if class == Hyperbola {
		e2 = -e2
	}

	a0 := e1*cos*cos + e2*sin*sin
	b0 := 2 * cos * sin * (e1 - e2)
	c0 := e1*sin*sin + e2*cos*cos

	return Coeffs{
		A: a0,
		B: b0,
		C: c0,
		D: -2*a0*s.CX - b0*s.CY,
		E: -b0*s.CX - 2*c0*s.CY,
		F: a0*s.CX*s.CX + b0*s.CX*s.CY + c0*s.CY*s.CY - 1,
	}
}

// StandardParams inverts general coefficients back to standard form.
//
// The boolean result is false for parabolas: the inverse recovery of a
// general parabola is not implemented, only the classification is
// reported. Callers must keep their previous standard parameters in that
// case.
//
// For central conics the center is solved from the gradient system
// [[2A,B],[B,2C]]·(cx,cy) = (−D,−E), the rotation from ½·atan2(B, A−C),
// and the semi-axes from the coefficients after rotating and translating
// to the center. Semi-axes that come out non-finite fall back to 1.
func StandardParams(c Coeffs) (Standard, Class, bool) {
	class := Classify(c)
	if class == Parabola {
		return Standard{}, Parabola, false
	}

	det := 4*c.A*c.C - c.B*c.B
	cx := (c.B*c.E - 2*c.C*c.D) / det
	cy := (c.B*c.D - 2*c.A*c.E) / det

	theta := 0.0
	if math.Abs(c.B) >= Epsilon {
		theta = 0.5 * math.Atan2(c.B, c.A-c.C)
	}
	sin, cos := math.Sincos(theta)

	// Coefficients of the quadratic part after rotating by −θ.
	ar := c.A*cos*cos + c.B*cos*sin + c.C*sin*sin
	cr := c.A*sin*sin - c.B*cos*sin + c.C*cos*cos

	// Constant term after translating to the center.
	fr := c.F + (c.D*cx+c.E*cy)/2

	a := math.Sqrt(math.Abs(fr / ar))
	b := math.Sqrt(math.Abs(fr / cr))
	if math.IsNaN(a) || math.IsInf(a, 0) || a == 0 {
		a = 1
	}
	if math.IsNaN(b) || math.IsInf(b, 0) || b == 0 {
		b = 1
	}

	return Standard{CX: cx, CY: cy, A: a, B: b, Rotation: theta}, class, true
}

// Matrix returns the symmetric 3×3 matrix representation of the conic,
// used for pole/polar computations.
func (c Coeffs) Matrix() [3][3]float64 {
	return [3][3]float64{
		{c.A, c.B / 2, c.D / 2},
		{c.B / 2, c.C, c.E / 2},
		{c.D / 2, c.E / 2, c.F},
	}
}
