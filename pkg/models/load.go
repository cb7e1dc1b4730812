package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Load picks a loader from the file extension (.obj, .glb or .gltf).
// The returned mesh has passed Validate.
func Load(path string, materials bool, log *zap.Logger) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		l := &OBJLoader{Materials: materials, Log: log}
		return l.Load(path)
	case ".glb", ".gltf":
		l := &GLTFLoader{Materials: materials, Log: log}
		return l.Load(path)
	default:
		return nil, fmt.Errorf("load %s: %w", path, ErrUnsupportedFormat)
	}
}
