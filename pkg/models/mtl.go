package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// MTLLoader reads Wavefront material libraries. Only newmtl and Kd are
// interpreted.
type MTLLoader struct {
	Log *zap.Logger
}

// Load reads the MTL file at path.
func (l *MTLLoader) Load(path string) ([]Material, error) {
	if !hasExt(path, ".mtl") {
		return nil, fmt.Errorf("load %s: expected .mtl: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtl: %w", err)
	}
	defer f.Close()

	return l.LoadReader(f)
}

// LoadReader reads MTL data from r.
func (l *MTLLoader) LoadReader(r io.Reader) ([]Material, error) {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	var (
		materials []Material
		current   *Material
		line      int
	)
	flush := func() {
		if current != nil {
			materials = append(materials, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			flush()
			if len(fields) < 2 {
				log.Warn("newmtl without a name", zap.Int("line", line))
				continue
			}
			current = &Material{
				Name:    strings.Join(fields[1:], " "),
				Diffuse: DefaultDiffuse,
			}
		case "Kd":
			if current == nil {
				log.Warn("Kd outside of a material", zap.Int("line", line))
				continue
			}
			kd, err := parseVec3(fields[1:])
			if err != nil {
				log.Warn("skipping malformed Kd", zap.Int("line", line), zap.Error(err))
				continue
			}
			current.Diffuse = kd
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mtl line %d: %w", line, err)
	}
	flush()

	return materials, nil
}
