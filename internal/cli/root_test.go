package cli

import (
	"testing"
)

func TestRootCommandStructure(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{
		"demo":    false,
		"inspect": false,
		"viz":     false,
		"eval":    false,
		"serve":   false,
		"cache":   false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("--verbose flag not registered")
	}
}
