package scenefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/daschober/planesketch/pkg/scene"
)

// MarshalScene converts a scene to indented JSON bytes.
func MarshalScene(s scene.Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteScene(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalScene decodes JSON bytes into a relaxed scene.
func UnmarshalScene(data []byte) (scene.Scene, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return scene.Scene{}, fmt.Errorf("decode: %w", err)
	}
	return ToScene(f)
}

// WriteScene writes a scene as JSON to an io.Writer.
func WriteScene(s scene.Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromScene(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadScene decodes a JSON scene from an io.Reader.
func ReadScene(r io.Reader) (scene.Scene, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return scene.Scene{}, fmt.Errorf("decode: %w", err)
	}
	return ToScene(f)
}

// ReadSceneFile reads a scene manifest from disk, choosing the decoder
// by extension: .toml for TOML, anything else JSON.
func ReadSceneFile(path string) (scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return UnmarshalTOML(data)
	}
	return UnmarshalScene(data)
}

// WriteSceneFile writes a scene to disk, choosing the encoder by
// extension like [ReadSceneFile]. The file is created with 0644
// permissions.
func WriteSceneFile(s scene.Scene, path string) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = MarshalTOML(s)
	} else {
		data, err = MarshalScene(s)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MarshalTOML converts a scene to a TOML manifest.
func MarshalTOML(s scene.Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(FromScene(s)); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalTOML decodes a TOML manifest into a relaxed scene.
func UnmarshalTOML(data []byte) (scene.Scene, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return scene.Scene{}, fmt.Errorf("decode toml: %w", err)
	}
	return ToScene(f)
}
