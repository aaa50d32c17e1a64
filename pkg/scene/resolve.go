package scene

import "github.com/daschober/planesketch/pkg/geom"

// DefaultPasses is the fixed relaxation depth. Dependency chains in
// practice are at most point → line → intersection (depth 3); chains
// deeper than the pass count under-resolve silently and need
// [Scene.ResolveN] with a higher count.
const DefaultPasses = 3

// Resolve recomputes every entity's derived attributes from its
// dependencies' current values, running [DefaultPasses] relaxation
// passes. It never fails: unresolvable dependencies leave the entity
// unchanged for the pass, degenerate configurations mark it hidden.
func (s Scene) Resolve() Scene {
	return s.ResolveN(DefaultPasses)
}

// ResolveN is Resolve with an explicit pass count.
func (s Scene) ResolveN(passes int) Scene {
	cur := s.entities
	for range passes {
		byID := make(map[string]Entity, len(cur))
		for _, e := range cur {
			byID[e.Common().ID] = e
		}
		next := make([]Entity, len(cur))
		for i, e := range cur {
			next[i] = resolveEntity(e, byID)
		}
		cur = next
	}
	return Scene{entities: cur}
}

// resolveEntity recomputes one entity from the current-pass lookup,
// returning a fresh value when anything changed and the original
// (never mutated) when the entity is unresolvable this pass.
func resolveEntity(e Entity, byID map[string]Entity) Entity {
	switch e := e.(type) {
	case *Conic:
		return resolveConic(e)
	case *Line:
		return resolveLine(e, byID)
	case *Point:
		return resolvePoint(e, byID)
	default:
		return e
	}
}

// resolveConic refreshes the cached general coefficients from the
// authoritative standard parameters. Conics are always-derived.
func resolveConic(c *Conic) Entity {
	out := c.Clone().(*Conic)
	out.Coeffs = geom.GeneralCoeffs(out.Class, out.Standard)
	return out
}

// resolveLine applies the line construction rules in first-match order:
// pivot+angle, two-point, polar pair.
func resolveLine(l *Line, byID map[string]Entity) Entity {
	switch {
	case l.Pivot != "":
		pivot, ok := pointByID(byID, l.Pivot)
		if !ok {
			return l
		}
		return l.withCoeffs(geom.LineAt(geom.Point{X: pivot.X, Y: pivot.Y}, l.Angle))

	case l.P1 != "" && l.P2 != "":
		p1, ok1 := pointByID(byID, l.P1)
		p2, ok2 := pointByID(byID, l.P2)
		if !ok1 || !ok2 {
			return l
		}
		return l.withCoeffs(geom.LineThrough(
			geom.Point{X: p1.X, Y: p1.Y},
			geom.Point{X: p2.X, Y: p2.Y},
		))

	case len(l.Deps) == 2:
		pole, conic, ok := pointConicPair(byID, l.Deps[0], l.Deps[1])
		if !ok {
			return l
		}
		return l.withCoeffs(geom.PolarLine(geom.Point{X: pole.X, Y: pole.Y}, conic.Coeffs))

	default:
		return l
	}
}

func (l *Line) withCoeffs(coeffs geom.Line) Entity {
	out := l.Clone().(*Line)
	out.A, out.B, out.C = coeffs.A, coeffs.B, coeffs.C
	return out
}

// resolvePoint applies the point rules in first-match order: indexed
// line–conic intersection, on-line projection, line–line intersection.
// A matched rule whose dependencies are unresolvable leaves the point
// unchanged; a matched rule with no geometric solution hides the point
// and retains its last coordinates.
func resolvePoint(p *Point, byID map[string]Entity) Entity {
	switch {
	case !p.Free && len(p.Deps) == 2 && p.SolutionIndex != nil:
		line, conic, ok := lineConicPair(byID, p.Deps[0], p.Deps[1])
		if !ok {
			return p
		}
		pts := geom.IntersectLineConic(geom.Line{A: line.A, B: line.B, C: line.C}, conic.Coeffs)
		idx := *p.SolutionIndex
		if idx < 0 || idx >= len(pts) {
			out := p.Clone().(*Point)
			out.Hidden = true
			return out
		}
		return p.at(pts[idx])

	case p.OnLine != "":
		line, ok := lineByID(byID, p.OnLine)
		if !ok {
			return p
		}
		foot := geom.Project(geom.Point{X: p.X, Y: p.Y}, geom.Line{A: line.A, B: line.B, C: line.C})
		out := p.Clone().(*Point)
		out.X, out.Y = foot.X, foot.Y
		return out

	case !p.Free && len(p.Deps) == 2:
		l1, ok1 := lineByID(byID, p.Deps[0])
		l2, ok2 := lineByID(byID, p.Deps[1])
		if !ok1 || !ok2 {
			return p
		}
		at, ok := geom.IntersectLines(
			geom.Line{A: l1.A, B: l1.B, C: l1.C},
			geom.Line{A: l2.A, B: l2.B, C: l2.C},
		)
		if !ok {
			out := p.Clone().(*Point)
			out.Hidden = true
			return out
		}
		return p.at(at)

	default:
		return p
	}
}

// at returns a visible copy of the point at the given position.
func (p *Point) at(at geom.Point) Entity {
	out := p.Clone().(*Point)
	out.X, out.Y = at.X, at.Y
	out.Hidden = false
	return out
}

func pointByID(byID map[string]Entity, id string) (*Point, bool) {
	p, ok := byID[id].(*Point)
	return p, ok
}

func lineByID(byID map[string]Entity, id string) (*Line, bool) {
	l, ok := byID[id].(*Line)
	return l, ok
}

// pointConicPair resolves two ids as a (point, conic) pair in whichever
// order matches.
func pointConicPair(byID map[string]Entity, id1, id2 string) (*Point, *Conic, bool) {
	if p, ok := byID[id1].(*Point); ok {
		if c, ok := byID[id2].(*Conic); ok {
			return p, c, true
		}
	}
	if p, ok := byID[id2].(*Point); ok {
		if c, ok := byID[id1].(*Conic); ok {
			return p, c, true
		}
	}
	return nil, nil, false
}

// lineConicPair resolves two ids as a (line, conic) pair in whichever
// order matches.
func lineConicPair(byID map[string]Entity, id1, id2 string) (*Line, *Conic, bool) {
	if l, ok := byID[id1].(*Line); ok {
		if c, ok := byID[id2].(*Conic); ok {
			return l, c, true
		}
	}
	if l, ok := byID[id2].(*Line); ok {
		if c, ok := byID[id1].(*Conic); ok {
			return l, c, true
		}
	}
	return nil, nil, false
}
