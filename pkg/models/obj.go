package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/asciimesh/pkg/math3d"
	"github.com/taigrr/asciimesh/pkg/triangulate"
	"go.uber.org/zap"
)

// maxLineSize bounds a single OBJ or MTL line.
const maxLineSize = 1 << 20

// OBJLoader reads Wavefront OBJ files. Only vertex positions, faces and,
// when Materials is set, mtllib/usemtl are interpreted. Malformed lines are
// logged as warnings and skipped.
type OBJLoader struct {
	Materials bool
	Log       *zap.Logger
}

// LoadOBJ loads an OBJ file with a default loader.
func LoadOBJ(path string, materials bool) (*Mesh, error) {
	l := &OBJLoader{Materials: materials}
	return l.Load(path)
}

// Load reads the OBJ file at path. Material libraries are resolved
// relative to the file's directory.
func (l *OBJLoader) Load(path string) (*Mesh, error) {
	if !hasExt(path, ".obj") {
		return nil, fmt.Errorf("load %s: expected .obj: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	p := l.newParser(filepath.Base(path), filepath.Dir(path))
	return p.parse(f)
}

// LoadReader reads OBJ data from r. dir is used to resolve mtllib paths.
func (l *OBJLoader) LoadReader(r io.Reader, dir string) (*Mesh, error) {
	p := l.newParser("", dir)
	return p.parse(r)
}

func (l *OBJLoader) newParser(name, dir string) *objParser {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}
	if name != "" {
		log = log.With(zap.String("file", name))
	}
	return &objParser{
		materials: l.Materials,
		dir:       dir,
		log:       log,
		mesh:      NewMesh(name),
	}
}

// objParser holds the state of a single OBJ read.
type objParser struct {
	materials bool
	dir       string
	log       *zap.Logger

	mesh   *Mesh
	active MaterialIndex
	line   int
}

func (p *objParser) parse(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p.vertex(fields[1:])
		case "f":
			p.face(fields[1:])
		case "mtllib":
			if p.materials {
				p.mtllib(fields[1:])
			}
		case "usemtl":
			if p.materials {
				p.usemtl(fields[1:])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj line %d: %w", p.line, err)
	}

	p.mesh.CalculateBounds()
	if err := p.mesh.Validate(); err != nil {
		return nil, fmt.Errorf("validate obj: %w", err)
	}
	return p.mesh, nil
}

func (p *objParser) warn(msg string, fields ...zap.Field) {
	p.log.Warn(msg, append(fields, zap.Int("line", p.line))...)
}

func (p *objParser) vertex(args []string) {
	v, err := parseVec3(args)
	if err != nil {
		p.warn("skipping malformed vertex", zap.Error(err))
		return
	}
	p.mesh.Vertices = append(p.mesh.Vertices, v)
}

func (p *objParser) face(args []string) {
	if len(args) < 3 {
		p.warn("skipping face with fewer than 3 vertices", zap.Int("count", len(args)))
		return
	}

	n := len(p.mesh.Vertices)
	indices := make([]int, len(args))
	for i, tok := range args {
		head, _, _ := strings.Cut(tok, "/")
		raw, err := strconv.Atoi(head)
		if err != nil {
			p.warn("skipping face with unparsable index", zap.String("token", tok))
			return
		}
		idx, err := ResolveIndex(raw, n)
		if err != nil {
			p.warn("skipping face with invalid index", zap.String("token", tok), zap.Error(err))
			return
		}
		indices[i] = idx
	}

	if len(indices) == 3 {
		p.mesh.Faces = append(p.mesh.Faces, Face{
			V:        [3]int{indices[0], indices[1], indices[2]},
			Material: p.active,
		})
		return
	}

	points := make([]math3d.Vec3, len(indices))
	for i, idx := range indices {
		points[i] = p.mesh.Vertices[idx]
	}
	tris, err := triangulate.EarClip(points)
	if err != nil {
		p.warn("dropping face that cannot be triangulated", zap.Int("count", len(indices)), zap.Error(err))
		return
	}
	for _, tri := range tris {
		p.mesh.Faces = append(p.mesh.Faces, Face{
			V:        [3]int{indices[tri[0]], indices[tri[1]], indices[tri[2]]},
			Material: p.active,
		})
	}
}

func (p *objParser) mtllib(args []string) {
	if len(args) == 0 {
		p.warn("mtllib without a file name")
		return
	}
	// File names may contain spaces.
	name := strings.Join(args, " ")
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.dir, name)
	}

	ml := &MTLLoader{Log: p.log}
	mats, err := ml.Load(path)
	if err != nil {
		p.warn("ignoring material library", zap.String("token", name), zap.Error(err))
		return
	}
	p.mesh.Materials = append(p.mesh.Materials, mats...)
}

func (p *objParser) usemtl(args []string) {
	if len(args) == 0 {
		p.warn("usemtl without a material name")
		p.active = NoMaterial()
		return
	}
	name := strings.Join(args, " ")
	idx, ok := p.mesh.FindMaterial(name)
	if !ok {
		p.warn("unknown material", zap.String("token", name))
	}
	p.active = idx
}

// parseVec3 parses the first three fields as floats.
func parseVec3(args []string) (math3d.Vec3, error) {
	if len(args) < 3 {
		return math3d.Vec3{}, fmt.Errorf("want 3 components, got %d", len(args))
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

func hasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
