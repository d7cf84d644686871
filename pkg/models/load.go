package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh, picking the loader from the file extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("models: unsupported mesh format %q", ext)
	}
}
