package scene

import (
	"slices"

	"github.com/google/uuid"

	"github.com/daschober/planesketch/pkg/geom"
)

// Kind is the variant tag of an entity.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindConic
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindConic:
		return "conic"
	default:
		return "unknown"
	}
}

// EdgeKind enumerates the dependency relations an entity can hold.
// Keeping the kinds explicit makes the resolver and cascade-deletion
// rules exhaustive and reviewable.
type EdgeKind int

const (
	// EdgeDependency is membership in the generic dependency list. Its
	// meaning depends on the owning entity's construction mode (polar
	// line pair, intersection pair).
	EdgeDependency EdgeKind = iota
	// EdgeOnLine is a point's projection constraint onto a line.
	EdgeOnLine
	// EdgePivot is a pivot+angle line's anchor point.
	EdgePivot
	// EdgeEndpoint1 is the first defining point of a two-point line.
	EdgeEndpoint1
	// EdgeEndpoint2 is the second defining point of a two-point line.
	EdgeEndpoint2
)

// String returns the lowercase edge-kind name.
func (k EdgeKind) String() string {
	switch k {
	case EdgeDependency:
		return "dep"
	case EdgeOnLine:
		return "on-line"
	case EdgePivot:
		return "pivot"
	case EdgeEndpoint1:
		return "p1"
	case EdgeEndpoint2:
		return "p2"
	default:
		return "unknown"
	}
}

// Edge is a directed dependency: From's derived attributes are computed
// from To's current values.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Meta is the metadata shared by every entity kind.
type Meta struct {
	ID     string
	Name   string
	Color  string
	Hidden bool
	// Deps is the generic dependency id list. Its interpretation depends
	// on the entity's construction mode; dangling ids mean "not yet
	// resolvable", never an error.
	Deps []string
}

// NewID returns a fresh unique entity id.
func NewID() string {
	return uuid.NewString()
}

// Entity is the closed set of scene members. Implementations are
// *Point, *Line, and *Conic; the resolver type-switches exhaustively
// over these three.
type Entity interface {
	// Common returns the shared metadata.
	Common() *Meta
	// Kind reports the variant tag.
	Kind() Kind
	// Edges enumerates the entity's outgoing dependency edges.
	Edges() []Edge
	// Clone returns a deep copy sharing no mutable state.
	Clone() Entity

	sealed()
}

// Point is a position, either free (user-authoritative) or derived from
// an intersection or projection constraint.
type Point struct {
	Meta
	X, Y float64
	Free bool
	// OnLine, when set, reprojects the point onto the referenced line
	// every pass, whether or not the point is free.
	OnLine string
	// SolutionIndex selects a branch of a line–conic intersection when
	// the generic dependency pair resolves to (line, conic).
	SolutionIndex *int
}

// Line is ax + by + c = 0, constructed free-standing, from two points,
// from a pivot point plus angle, or as the polar of a (point, conic)
// dependency pair.
type Line struct {
	Meta
	A, B, C float64
	Free    bool
	// P1, P2 are the defining point ids of a two-point line.
	P1, P2 string
	// Pivot is the anchor point id of a pivot+angle line.
	Pivot string
	// Angle is the inclination in radians, used with Pivot.
	Angle float64
}

// Conic is a conic section. Standard parameters are authoritative; the
// general coefficients are a cached derivation refreshed every pass,
// except for the transient instant a direct coefficient edit is being
// inverted back into standard form.
type Conic struct {
	Meta
	Class    geom.Class
	Standard geom.Standard
	Coeffs   geom.Coeffs
}

func (p *Point) Common() *Meta { return &p.Meta }
func (l *Line) Common() *Meta  { return &l.Meta }
func (c *Conic) Common() *Meta { return &c.Meta }

func (p *Point) Kind() Kind { return KindPoint }
func (l *Line) Kind() Kind  { return KindLine }
func (c *Conic) Kind() Kind { return KindConic }

func (p *Point) sealed() {}
func (l *Line) sealed()  {}
func (c *Conic) sealed() {}

// Edges returns the point's projection constraint and generic dependencies.
func (p *Point) Edges() []Edge {
	var edges []Edge
	if p.OnLine != "" {
		edges = append(edges, Edge{From: p.ID, To: p.OnLine, Kind: EdgeOnLine})
	}
	for _, dep := range p.Deps {
		edges = append(edges, Edge{From: p.ID, To: dep, Kind: EdgeDependency})
	}
	return edges
}

// Edges returns the line's pivot, endpoint, and generic dependencies.
func (l *Line) Edges() []Edge {
	var edges []Edge
	if l.Pivot != "" {
		edges = append(edges, Edge{From: l.ID, To: l.Pivot, Kind: EdgePivot})
	}
	if l.P1 != "" {
		edges = append(edges, Edge{From: l.ID, To: l.P1, Kind: EdgeEndpoint1})
	}
	if l.P2 != "" {
		edges = append(edges, Edge{From: l.ID, To: l.P2, Kind: EdgeEndpoint2})
	}
	for _, dep := range l.Deps {
		edges = append(edges, Edge{From: l.ID, To: dep, Kind: EdgeDependency})
	}
	return edges
}

// Edges returns the conic's generic dependencies. Conics are currently
// always free-standing, but the generic list keeps cascade deletion
// uniform across kinds.
func (c *Conic) Edges() []Edge {
	var edges []Edge
	for _, dep := range c.Deps {
		edges = append(edges, Edge{From: c.ID, To: dep, Kind: EdgeDependency})
	}
	return edges
}

// Clone returns a deep copy of the point.
func (p *Point) Clone() Entity {
	out := *p
	out.Deps = slices.Clone(p.Deps)
	if p.SolutionIndex != nil {
		idx := *p.SolutionIndex
		out.SolutionIndex = &idx
	}
	return &out
}

// Clone returns a deep copy of the line.
func (l *Line) Clone() Entity {
	out := *l
	out.Deps = slices.Clone(l.Deps)
	return &out
}

// Clone returns a deep copy of the conic.
func (c *Conic) Clone() Entity {
	out := *c
	out.Deps = slices.Clone(c.Deps)
	return &out
}
