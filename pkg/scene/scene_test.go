package scene

import (
	"errors"
	"testing"

	"github.com/daschober/planesketch/pkg/geom"
)

func TestCreateAssignsID(t *testing.T) {
	s := Scene{}.Create(&Point{Free: true})
	entities := s.Entities()
	if len(entities) != 1 {
		t.Fatalf("len = %d, want 1", len(entities))
	}
	if entities[0].Common().ID == "" {
		t.Error("created entity has no id")
	}
}

func TestCreateDoesNotMutateReceiver(t *testing.T) {
	s := New(&Point{Meta: Meta{ID: "a"}, Free: true})
	_ = s.Create(&Point{Meta: Meta{ID: "b"}, Free: true})
	if s.Len() != 1 {
		t.Errorf("receiver length = %d, want 1", s.Len())
	}
}

func TestUpdateUnknownEntity(t *testing.T) {
	s := New()
	_, err := s.Update("ghost", Patch{X: ptr(1.0)})
	if !errors.Is(err, ErrEntityNotFound) {
		t.Errorf("err = %v, want ErrEntityNotFound", err)
	}
}

func TestUpdateMetadata(t *testing.T) {
	s := New(&Point{Meta: Meta{ID: "p", Name: "P", Color: "#ff0000"}, Free: true})
	s, err := s.Update("p", Patch{Name: ptr("Q"), Hidden: ptr(true)})
	if err != nil {
		t.Fatal(err)
	}
	e, _ := s.Get("p")
	if e.Common().Name != "Q" || !e.Common().Hidden {
		t.Errorf("meta = %+v", e.Common())
	}
	if e.Common().Color != "#ff0000" {
		t.Errorf("untouched color changed: %s", e.Common().Color)
	}
}

func TestUpdateConicCoeffsInverts(t *testing.T) {
	s := New(&Conic{Meta: Meta{ID: "c"}, Class: geom.Ellipse, Standard: geom.Standard{A: 1, B: 1}})

	// Edit the coefficients to an axis-aligned 3×2 ellipse. The inverse
	// conversion must refresh the standard parameters so the next pass
	// re-derives the same coefficients instead of reverting the edit.
	edited := geom.GeneralCoeffs(geom.Ellipse, geom.Standard{A: 3, B: 2})
	s, err := s.Update("c", Patch{Coeffs: &edited})
	if err != nil {
		t.Fatal(err)
	}

	e, _ := s.Get("c")
	c := e.(*Conic)
	if !near(c.Standard.A, 3) || !near(c.Standard.B, 2) {
		t.Errorf("standard axes = (%g, %g), want (3, 2)", c.Standard.A, c.Standard.B)
	}
	if !near(c.Coeffs.A, edited.A) || !near(c.Coeffs.C, edited.C) || !near(c.Coeffs.F, edited.F) {
		t.Errorf("coeffs reverted: %+v", c.Coeffs)
	}
}

func TestApply(t *testing.T) {
	s := New()

	s, err := s.Apply(CreateAction{Entity: &Point{Meta: Meta{ID: "a"}, X: 1, Y: 2, Free: true}})
	if err != nil {
		t.Fatal(err)
	}
	s, err = s.Apply(UpdateAction{ID: "a", Patch: Patch{X: ptr(5.0)}})
	if err != nil {
		t.Fatal(err)
	}
	p := mustPoint(t, s, "a")
	if p.X != 5 || p.Y != 2 {
		t.Errorf("point = (%g, %g), want (5, 2)", p.X, p.Y)
	}

	s, err = s.Apply(DeleteAction{ID: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("scene length = %d, want 0", s.Len())
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
}

func TestEdgesEnumeration(t *testing.T) {
	s := New(
		&Point{Meta: Meta{ID: "p"}, Free: true},
		&Point{Meta: Meta{ID: "q"}, X: 1, Free: true},
		&Line{Meta: Meta{ID: "l"}, P1: "p", P2: "q"},
		&Point{Meta: Meta{ID: "foot"}, Free: true, OnLine: "l"},
	)

	kinds := map[EdgeKind]int{}
	for _, e := range s.Edges() {
		kinds[e.Kind]++
	}
	if kinds[EdgeEndpoint1] != 1 || kinds[EdgeEndpoint2] != 1 || kinds[EdgeOnLine] != 1 {
		t.Errorf("edge kinds = %v", kinds)
	}
}
