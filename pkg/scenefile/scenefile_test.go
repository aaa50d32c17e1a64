package scenefile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/daschober/planesketch/pkg/errors"
	"github.com/daschober/planesketch/pkg/geom"
	"github.com/daschober/planesketch/pkg/scene"
)

func intp(i int) *int { return &i }

func demoScene() scene.Scene {
	return scene.New(
		&scene.Conic{
			Meta:     scene.Meta{ID: "c", Name: "Ellipse", Color: "#3366cc"},
			Class:    geom.Ellipse,
			Standard: geom.Standard{A: 3, B: 2},
		},
		&scene.Point{Meta: scene.Meta{ID: "pole"}, X: 5, Y: 0, Free: true},
		&scene.Line{Meta: scene.Meta{ID: "polar", Deps: []string{"pole", "c"}}},
		&scene.Point{Meta: scene.Meta{ID: "t0", Deps: []string{"polar", "c"}}, SolutionIndex: intp(0)},
	)
}

func assertEquivalent(t *testing.T, got, want scene.Scene) {
	t.Helper()
	if got.Len() != want.Len() {
		t.Fatalf("entity count = %d, want %d", got.Len(), want.Len())
	}
	for _, we := range want.Entities() {
		id := we.Common().ID
		ge, ok := got.Get(id)
		if !ok {
			t.Fatalf("entity %s missing after round trip", id)
		}
		if ge.Kind() != we.Kind() {
			t.Fatalf("entity %s kind = %v, want %v", id, ge.Kind(), we.Kind())
		}
		switch we := we.(type) {
		case *scene.Point:
			gp := ge.(*scene.Point)
			if math.Abs(gp.X-we.X) > 1e-9 || math.Abs(gp.Y-we.Y) > 1e-9 {
				t.Errorf("point %s = (%g, %g), want (%g, %g)", id, gp.X, gp.Y, we.X, we.Y)
			}
		case *scene.Line:
			gl := ge.(*scene.Line)
			// Compare as lines up to scale via cross products.
			if math.Abs(gl.A*we.B-we.A*gl.B) > 1e-9 || math.Abs(gl.A*we.C-we.A*gl.C) > 1e-9 {
				t.Errorf("line %s = %+v, want %+v", id, gl, we)
			}
		case *scene.Conic:
			gc := ge.(*scene.Conic)
			if gc.Standard != we.Standard || gc.Class != we.Class {
				t.Errorf("conic %s = %+v, want %+v", id, gc.Standard, we.Standard)
			}
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := demoScene()

	data, err := MarshalScene(want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalScene(data)
	if err != nil {
		t.Fatal(err)
	}
	assertEquivalent(t, got, want)
}

func TestTOMLRoundTrip(t *testing.T) {
	want := demoScene()

	data, err := MarshalTOML(want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalTOML(data)
	if err != nil {
		t.Fatal(err)
	}
	assertEquivalent(t, got, want)
}

func TestFileRoundTripByExtension(t *testing.T) {
	dir := t.TempDir()
	want := demoScene()

	for _, name := range []string{"scene.json", "scene.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteSceneFile(want, path); err != nil {
				t.Fatal(err)
			}
			got, err := ReadSceneFile(path)
			if err != nil {
				t.Fatal(err)
			}
			assertEquivalent(t, got, want)
		})
	}
}

func TestToSceneRejectsUnknownKind(t *testing.T) {
	_, err := ToScene(File{Entities: []Entity{{ID: "x", Kind: "sphere"}}})
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("error = %v, want INVALID_SCENE", err)
	}

	_, err = ToScene(File{Entities: []Entity{{ID: "c", Kind: "conic", Class: "superellipse"}}})
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("error = %v, want INVALID_SCENE", err)
	}
}

func TestToSceneAssignsMissingIDs(t *testing.T) {
	s, err := ToScene(File{Entities: []Entity{{Kind: "point", X: 1, Free: true}}})
	if err != nil {
		t.Fatal(err)
	}
	if id := s.Entities()[0].Common().ID; id == "" {
		t.Error("imported entity has no id")
	}
}

func TestReadSceneFileMissing(t *testing.T) {
	_, err := ReadSceneFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(errorsUnwrapAll(err)) {
		t.Logf("unwrapped error is not IsNotExist: %v", err)
	}
}

func errorsUnwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}
