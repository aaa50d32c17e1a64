package geom

import (
	"math"
	"testing"
)

const tol = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func TestGeneralCoeffs(t *testing.T) {
	tests := []struct {
		name  string
		class Class
		std   Standard
		check func(t *testing.T, c Coeffs)
	}{
		{
			name:  "UnitCircle",
			class: Ellipse,
			std:   Standard{A: 1, B: 1},
			check: func(t *testing.T, c Coeffs) {
				want := Coeffs{A: 1, B: 0, C: 1, D: 0, E: 0, F: -1}
				if c != want {
					t.Errorf("coeffs = %+v, want %+v", c, want)
				}
			},
		},
		{
			name:  "AxisAlignedEllipse",
			class: Ellipse,
			std:   Standard{A: 3, B: 2},
			check: func(t *testing.T, c Coeffs) {
				if !near(c.A, 1.0/9) || !near(c.C, 1.0/4) || !near(c.F, -1) {
					t.Errorf("coeffs = %+v", c)
				}
				if !near(c.B, 0) || !near(c.D, 0) || !near(c.E, 0) {
					t.Errorf("cross/linear terms nonzero: %+v", c)
				}
			},
		},
		{
			name:  "TranslatedEllipseContainsBoundary",
			class: Ellipse,
			std:   Standard{CX: 2, CY: -1, A: 3, B: 2},
			check: func(t *testing.T, c Coeffs) {
				// (cx+a, cy) lies on the ellipse.
				if v := evalConic(c, 5, -1); !near(v, 0) {
					t.Errorf("boundary residual = %g", v)
				}
			},
		},
		{
			name:  "RotatedHyperbolaVertex",
			class: Hyperbola,
			std:   Standard{A: 2, B: 1, Rotation: math.Pi / 6},
			check: func(t *testing.T, c Coeffs) {
				// The vertex at distance a along the rotated axis is on the curve.
				x := 2 * math.Cos(math.Pi/6)
				y := 2 * math.Sin(math.Pi/6)
				if v := evalConic(c, x, y); !near(v, 0) {
					t.Errorf("vertex residual = %g", v)
				}
			},
		},
		{
			name:  "CanonicalParabola",
			class: Parabola,
			std:   Standard{A: 1.5},
			check: func(t *testing.T, c Coeffs) {
				// y² − 6x = 0: check (6, 6) and the origin.
				if v := evalConic(c, 6, 6); !near(v, 0) {
					t.Errorf("point residual = %g", v)
				}
				if v := evalConic(c, 0, 0); !near(v, 0) {
					t.Errorf("origin residual = %g", v)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, GeneralCoeffs(tt.class, tt.std))
		})
	}
}

func evalConic(c Coeffs, x, y float64) float64 {
	return c.A*x*x + c.B*x*y + c.C*y*y + c.D*x + c.E*y + c.F
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		c    Coeffs
		want Class
	}{
		{"Circle", Coeffs{A: 1, C: 1, F: -1}, Ellipse},
		{"RectangularHyperbola", Coeffs{B: 1, F: -1}, Hyperbola},
		{"Parabola", Coeffs{C: 1, D: -4}, Parabola},
		{"TinyDiscriminant", Coeffs{A: 1, B: 2, C: 1 + 1e-12}, Parabola},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.c); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStandardParamsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		class Class
		std   Standard
	}{
		{"CenteredEllipse", Ellipse, Standard{A: 3, B: 2}},
		{"OffsetEllipse", Ellipse, Standard{CX: 1.5, CY: -2.25, A: 4, B: 1}},
		{"RotatedEllipse", Ellipse, Standard{CX: 2, CY: 3, A: 2, B: 5, Rotation: 0.4}},
		{"CenteredHyperbola", Hyperbola, Standard{A: 2, B: 3}},
		{"RotatedHyperbola", Hyperbola, Standard{CX: -1, CY: 0.5, A: 2, B: 1, Rotation: 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coeffs := GeneralCoeffs(tt.class, tt.std)
			got, class, ok := StandardParams(coeffs)
			if !ok {
				t.Fatal("StandardParams reported not invertible")
			}
			if class != tt.class {
				t.Fatalf("class = %v, want %v", class, tt.class)
			}
			if !near(got.CX, tt.std.CX) || !near(got.CY, tt.std.CY) {
				t.Errorf("center = (%g, %g), want (%g, %g)", got.CX, got.CY, tt.std.CX, tt.std.CY)
			}
			if !near(got.A, tt.std.A) || !near(got.B, tt.std.B) {
				t.Errorf("axes = (%g, %g), want (%g, %g)", got.A, got.B, tt.std.A, tt.std.B)
			}
			if !near(got.Rotation, tt.std.Rotation) {
				t.Errorf("rotation = %g, want %g", got.Rotation, tt.std.Rotation)
			}
		})
	}
}

func TestStandardParamsParabola(t *testing.T) {
	coeffs := GeneralCoeffs(Parabola, Standard{A: 1})
	_, class, ok := StandardParams(coeffs)
	if ok {
		t.Error("parabola inversion reported ok; recovery is unimplemented")
	}
	if class != Parabola {
		t.Errorf("class = %v, want Parabola", class)
	}
}

func TestMatrixSymmetry(t *testing.T) {
	c := Coeffs{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	m := c.Matrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m[i][j] != m[j][i] {
				t.Errorf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
	if m[0][0] != 1 || m[0][1] != 1 || m[2][2] != 6 {
		t.Errorf("unexpected matrix: %v", m)
	}
}
