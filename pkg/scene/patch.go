package scene

import (
	"slices"

	"github.com/daschober/planesketch/pkg/geom"
)

// Patch is a partial entity update. Only non-nil fields are applied, and
// only those meaningful for the target's kind; the rest are ignored.
// This mirrors how an editing surface sends attribute changes: a drag
// sends X/Y, an angle slider sends Angle, a coefficient field sends
// Coeffs.
type Patch struct {
	// Common metadata.
	Name   *string
	Color  *string
	Hidden *bool
	Deps   *[]string

	// Point and line.
	Free *bool

	// Point.
	X, Y          *float64
	OnLine        *string
	SolutionIndex *int

	// Line.
	A, B, C *float64
	P1, P2  *string
	Pivot   *string
	Angle   *float64

	// Conic standard parameters.
	CX, CY, SemiA, SemiB, Rotation *float64

	// Coeffs is a direct general-coefficient edit. Applying it runs the
	// general→standard inversion so the refreshed standard parameters
	// survive the next relaxation pass. A parabolic result cannot be
	// inverted; the previous standard parameters are retained and the
	// next pass re-derives the coefficients from them.
	Coeffs *geom.Coeffs
}

// applyTo clones e and applies the patch to the clone.
func (p Patch) applyTo(e Entity) Entity {
	out := e.Clone()

	m := out.Common()
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	if p.Hidden != nil {
		m.Hidden = *p.Hidden
	}
	if p.Deps != nil {
		m.Deps = slices.Clone(*p.Deps)
	}

	switch out := out.(type) {
	case *Point:
		p.applyPoint(out)
	case *Line:
		p.applyLine(out)
	case *Conic:
		p.applyConic(out)
	}
	return out
}

func (p Patch) applyPoint(pt *Point) {
	if p.Free != nil {
		pt.Free = *p.Free
	}
	if p.X != nil {
		pt.X = *p.X
	}
	if p.Y != nil {
		pt.Y = *p.Y
	}
	if p.OnLine != nil {
		pt.OnLine = *p.OnLine
	}
	if p.SolutionIndex != nil {
		idx := *p.SolutionIndex
		pt.SolutionIndex = &idx
	}
}

func (p Patch) applyLine(l *Line) {
	if p.Free != nil {
		l.Free = *p.Free
	}
	if p.A != nil {
		l.A = *p.A
	}
	if p.B != nil {
		l.B = *p.B
	}
	if p.C != nil {
		l.C = *p.C
	}
	if p.P1 != nil {
		l.P1 = *p.P1
	}
	if p.P2 != nil {
		l.P2 = *p.P2
	}
	if p.Pivot != nil {
		l.Pivot = *p.Pivot
	}
	if p.Angle != nil {
		l.Angle = *p.Angle
	}
}

func (p Patch) applyConic(c *Conic) {
	if p.CX != nil {
		c.Standard.CX = *p.CX
	}
	if p.CY != nil {
		c.Standard.CY = *p.CY
	}
	if p.SemiA != nil {
		c.Standard.A = *p.SemiA
	}
	if p.SemiB != nil {
		c.Standard.B = *p.SemiB
	}
	if p.Rotation != nil {
		c.Standard.Rotation = *p.Rotation
	}
	if p.Coeffs != nil {
		c.Coeffs = *p.Coeffs
		if std, class, ok := geom.StandardParams(*p.Coeffs); ok {
			c.Standard = std
			c.Class = class
		}
	}
}
