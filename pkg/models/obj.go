package models

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/blinn/pkg/math3d"
	"github.com/taigrr/blinn/pkg/render"
)

// objKey identifies a unique v/vt/vn combination. Missing parts are -1.
type objKey struct {
	v, vt, vn int
}

type objDecoder struct {
	dir  string // Directory for mtllib lookups; empty disables them
	line int

	positions []math3d.Vec3
	uvs       []math3d.Vec2
	normals   []math3d.Vec3

	mesh      *Mesh
	index     map[objKey]int
	materials map[string]int
	current   int // Active material, -1 for none
}

// LoadOBJ reads a Wavefront OBJ file. Material libraries next to the file
// supply base colors (Kd) and base color textures (map_Kd).
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()

	dec := newOBJDecoder(filepath.Base(path))
	dec.dir = filepath.Dir(path)
	if err := dec.decode(f); err != nil {
		return nil, fmt.Errorf("obj: %s: %w", path, err)
	}
	return dec.finish(), nil
}

// DecodeOBJ parses OBJ data from r. mtllib statements are ignored.
func DecodeOBJ(r io.Reader) (*Mesh, error) {
	dec := newOBJDecoder("obj")
	if err := dec.decode(r); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	return dec.finish(), nil
}

func newOBJDecoder(name string) *objDecoder {
	return &objDecoder{
		mesh:      NewMesh(name),
		index:     make(map[objKey]int),
		materials: make(map[string]int),
		current:   -1,
	}
}

func (dec *objDecoder) decode(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		dec.line++
		if err := dec.parseLine(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("line %d: %w", dec.line, err)
	}
	return nil
}

func (dec *objDecoder) finish() *Mesh {
	m := dec.mesh
	if !m.hasNormals() {
		m.CalculateSmoothNormals()
	}
	m.CalculateBounds()
	return m
}

func (dec *objDecoder) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", dec.line, fmt.Sprintf(format, args...))
}

func (dec *objDecoder) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := dec.parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.positions = append(dec.positions, math3d.V3(v[0], v[1], v[2]))
	case "vn":
		v, err := dec.parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.normals = append(dec.normals, math3d.V3(v[0], v[1], v[2]))
	case "vt":
		v, err := dec.parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		dec.uvs = append(dec.uvs, math3d.V2(v[0], v[1]))
	case "f":
		return dec.parseFace(fields[1:])
	case "mtllib":
		if dec.dir != "" {
			for _, name := range fields[1:] {
				dec.loadMaterialLib(filepath.Join(dec.dir, name))
			}
		}
	case "usemtl":
		dec.current = -1
		if len(fields) > 1 {
			if i, ok := dec.materials[fields[1]]; ok {
				dec.current = i
			}
		}
	default:
		// o, g, s, l and unknown statements carry nothing we draw.
	}
	return nil
}

// parseFloats parses at least n numbers; extra components (w) are ignored.
func (dec *objDecoder) parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, dec.errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, dec.errorf("bad number %q", fields[i])
		}
		out[i] = f
	}
	return out, nil
}

// resolve converts a 1-based or negative OBJ index into a 0-based one.
func (dec *objDecoder) resolve(s string, count int, kind string) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, dec.errorf("bad %s index %q", kind, s)
	}
	var idx int
	switch {
	case val > 0:
		idx = val - 1
	case val < 0:
		idx = count + val
	default:
		return 0, dec.errorf("%s index 0", kind)
	}
	if idx < 0 || idx >= count {
		return 0, dec.errorf("%s index %d out of range", kind, val)
	}
	return idx, nil
}

func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.errorf("face with %d vertices", len(fields))
	}

	verts := make([]int, len(fields))
	for i, field := range fields {
		parts := strings.Split(field, "/")
		if len(parts) > 3 {
			return dec.errorf("bad face vertex %q", field)
		}
		key := objKey{v: -1, vt: -1, vn: -1}

		var err error
		if key.v, err = dec.resolve(parts[0], len(dec.positions), "vertex"); err != nil {
			return err
		}
		if len(parts) > 1 && parts[1] != "" {
			if key.vt, err = dec.resolve(parts[1], len(dec.uvs), "texture"); err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if key.vn, err = dec.resolve(parts[2], len(dec.normals), "normal"); err != nil {
				return err
			}
		}
		verts[i] = dec.vertex(key)
	}

	// Fan triangulation around the first vertex.
	for i := 1; i+1 < len(verts); i++ {
		dec.mesh.Faces = append(dec.mesh.Faces, Face{
			V:        [3]int{verts[0], verts[i], verts[i+1]},
			Material: dec.current,
		})
	}
	return nil
}

// vertex returns the mesh index for key, adding the vertex on first use.
func (dec *objDecoder) vertex(key objKey) int {
	if i, ok := dec.index[key]; ok {
		return i
	}
	v := MeshVertex{Position: dec.positions[key.v]}
	if key.vt >= 0 {
		v.UV = dec.uvs[key.vt]
	}
	if key.vn >= 0 {
		v.Normal = dec.normals[key.vn]
	}
	i := len(dec.mesh.Vertices)
	dec.mesh.Vertices = append(dec.mesh.Vertices, v)
	dec.index[key] = i
	return i
}

// loadMaterialLib reads newmtl, Kd and map_Kd from an MTL file. A missing or
// unreadable library leaves faces with the default color.
func (dec *objDecoder) loadMaterialLib(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	cur := -1
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			dec.mesh.Materials = append(dec.mesh.Materials, Material{Name: fields[1], BaseColor: DefaultColor})
			cur = len(dec.mesh.Materials) - 1
			dec.materials[fields[1]] = cur
		case "Kd":
			if cur < 0 || len(fields) < 4 {
				continue
			}
			var kd [3]float64
			ok := true
			for i := range 3 {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					ok = false
					break
				}
				kd[i] = v
			}
			if ok {
				dec.mesh.Materials[cur].BaseColor = math3d.V3(kd[0], kd[1], kd[2])
			}
		case "map_Kd":
			if cur < 0 {
				continue
			}
			// Options before the file name are not supported.
			dec.mesh.Materials[cur].BaseMap = loadImage(filepath.Join(filepath.Dir(path), fields[len(fields)-1]))
		}
	}
}

func loadImage(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	img, err := render.DecodeImage(f)
	if err != nil {
		return nil
	}
	return img
}
