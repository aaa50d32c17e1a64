// Package scenefile is the serialization boundary for scenes: a flat,
// human-readable record format with JSON and TOML encodings.
//
// JSON is the wire format of the HTTP host and the session store; TOML
// is the on-disk manifest format used to describe demo and example
// scenes. Both decode into the same [File] structure and round-trip
// through [FromScene] and [ToScene].
package scenefile

import (
	"github.com/daschober/planesketch/pkg/errors"
	"github.com/daschober/planesketch/pkg/geom"
	"github.com/daschober/planesketch/pkg/scene"
)

// Entity kind tags.
const (
	KindPoint = "point"
	KindLine  = "line"
	KindConic = "conic"
)

// Conic class tags.
const (
	ClassEllipse   = "ellipse"
	ClassHyperbola = "hyperbola"
	ClassParabola  = "parabola"
)

// File is the canonical serialization format for scenes. Used for API
// responses, session storage, and on-disk scene manifests. The format is
// designed for round-trip fidelity: import → resolve → export → re-import
// produces an equivalent scene.
type File struct {
	Entities []Entity `json:"entities" toml:"entities"`
}

// Entity is the unified flat record for all entity kinds. Fields not
// meaningful for a record's kind are left at their zero value and omitted
// from the encoded form.
type Entity struct {
	ID     string   `json:"id" toml:"id"`
	Kind   string   `json:"kind" toml:"kind"`
	Name   string   `json:"name,omitempty" toml:"name,omitempty"`
	Color  string   `json:"color,omitempty" toml:"color,omitempty"`
	Hidden bool     `json:"hidden,omitempty" toml:"hidden,omitempty"`
	Deps   []string `json:"deps,omitempty" toml:"deps,omitempty"`

	// Point fields.
	X             float64 `json:"x,omitempty" toml:"x,omitempty"`
	Y             float64 `json:"y,omitempty" toml:"y,omitempty"`
	Free          bool    `json:"free,omitempty" toml:"free,omitempty"`
	OnLine        string  `json:"on_line,omitempty" toml:"on_line,omitempty"`
	SolutionIndex *int    `json:"solution_index,omitempty" toml:"solution_index,omitempty"`

	// Line fields.
	A     float64 `json:"a,omitempty" toml:"a,omitempty"`
	B     float64 `json:"b,omitempty" toml:"b,omitempty"`
	C     float64 `json:"c,omitempty" toml:"c,omitempty"`
	P1    string  `json:"p1,omitempty" toml:"p1,omitempty"`
	P2    string  `json:"p2,omitempty" toml:"p2,omitempty"`
	Pivot string  `json:"pivot,omitempty" toml:"pivot,omitempty"`
	Angle float64 `json:"angle,omitempty" toml:"angle,omitempty"`

	// Conic fields. Only the standard parameters are serialized; the
	// general coefficients are derived state and re-resolved on import.
	Class    string  `json:"class,omitempty" toml:"class,omitempty"`
	CX       float64 `json:"cx,omitempty" toml:"cx,omitempty"`
	CY       float64 `json:"cy,omitempty" toml:"cy,omitempty"`
	SemiA    float64 `json:"semi_a,omitempty" toml:"semi_a,omitempty"`
	SemiB    float64 `json:"semi_b,omitempty" toml:"semi_b,omitempty"`
	Rotation float64 `json:"rotation,omitempty" toml:"rotation,omitempty"`
}

// FromScene converts a scene to its serialization format, preserving
// insertion order.
func FromScene(s scene.Scene) File {
	out := File{Entities: make([]Entity, 0, s.Len())}
	for _, e := range s.Entities() {
		out.Entities = append(out.Entities, fromEntity(e))
	}
	return out
}

// ToScene converts a file to a relaxed scene. Unknown kind or class tags
// are rejected with [errors.ErrCodeInvalidScene].
func ToScene(f File) (scene.Scene, error) {
	entities := make([]scene.Entity, 0, len(f.Entities))
	for _, rec := range f.Entities {
		e, err := toEntity(rec)
		if err != nil {
			return scene.Scene{}, err
		}
		entities = append(entities, e)
	}
	return scene.New(entities...), nil
}

func fromEntity(e scene.Entity) Entity {
	m := e.Common()
	rec := Entity{
		ID:     m.ID,
		Name:   m.Name,
		Color:  m.Color,
		Hidden: m.Hidden,
		Deps:   m.Deps,
	}

	switch e := e.(type) {
	case *scene.Point:
		rec.Kind = KindPoint
		rec.X, rec.Y = e.X, e.Y
		rec.Free = e.Free
		rec.OnLine = e.OnLine
		if e.SolutionIndex != nil {
			idx := *e.SolutionIndex
			rec.SolutionIndex = &idx
		}
	case *scene.Line:
		rec.Kind = KindLine
		rec.A, rec.B, rec.C = e.A, e.B, e.C
		rec.Free = e.Free
		rec.P1, rec.P2 = e.P1, e.P2
		rec.Pivot = e.Pivot
		rec.Angle = e.Angle
	case *scene.Conic:
		rec.Kind = KindConic
		rec.Class = e.Class.String()
		rec.CX, rec.CY = e.Standard.CX, e.Standard.CY
		rec.SemiA, rec.SemiB = e.Standard.A, e.Standard.B
		rec.Rotation = e.Standard.Rotation
	}
	return rec
}

func toEntity(rec Entity) (scene.Entity, error) {
	meta := scene.Meta{
		ID:     rec.ID,
		Name:   rec.Name,
		Color:  rec.Color,
		Hidden: rec.Hidden,
		Deps:   rec.Deps,
	}
	if meta.ID == "" {
		meta.ID = scene.NewID()
	}

	switch rec.Kind {
	case KindPoint:
		p := &scene.Point{
			Meta: meta,
			X:    rec.X, Y: rec.Y,
			Free:   rec.Free,
			OnLine: rec.OnLine,
		}
		if rec.SolutionIndex != nil {
			idx := *rec.SolutionIndex
			p.SolutionIndex = &idx
		}
		return p, nil

	case KindLine:
		return &scene.Line{
			Meta: meta,
			A:    rec.A, B: rec.B, C: rec.C,
			Free: rec.Free,
			P1:   rec.P1, P2: rec.P2,
			Pivot: rec.Pivot,
			Angle: rec.Angle,
		}, nil

	case KindConic:
		class, err := parseClass(rec.Class)
		if err != nil {
			return nil, err
		}
		return &scene.Conic{
			Meta:  meta,
			Class: class,
			Standard: geom.Standard{
				CX: rec.CX, CY: rec.CY,
				A: rec.SemiA, B: rec.SemiB,
				Rotation: rec.Rotation,
			},
		}, nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown entity kind %q (id %s)", rec.Kind, rec.ID)
	}
}

func parseClass(s string) (geom.Class, error) {
	switch s {
	case ClassEllipse:
		return geom.Ellipse, nil
	case ClassHyperbola:
		return geom.Hyperbola, nil
	case ClassParabola:
		return geom.Parabola, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidScene, "unknown conic class %q", s)
	}
}
