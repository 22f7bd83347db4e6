// Package fixture loads named test/demo solids from a YAML scenario file,
// for use by cmd/csgkernel's selftest and bench subcommands.
package fixture

import (
	"fmt"
	"os"

	"github.com/bloodmagesoftware/venture-csg/geom"
	"github.com/bloodmagesoftware/venture-csg/solid"
	"github.com/bloodmagesoftware/venture-csg/vec3"
	"gopkg.in/yaml.v3"
)

// Scenario is the on-disk YAML description of a set of named solids, each
// built from a primitive shape with a translation and scale.
type Scenario struct {
	Solids []SolidSpec `yaml:"solids"`
}

// SolidSpec describes one named solid: a primitive shape plus placement.
type SolidSpec struct {
	Name      string    `yaml:"name"`
	Shape     string    `yaml:"shape"` // "cube" or "octahedron"
	Center    [3]float64 `yaml:"center"`
	HalfSize  float64   `yaml:"half_size"`
}

// Default returns a small built-in scenario (two overlapping unit cubes
// named "a" and "b") for callers that don't want to manage a scenario
// file, such as cmd/csgkernel's selftest default.
func Default() *Scenario {
	return &Scenario{
		Solids: []SolidSpec{
			{Name: "a", Shape: "cube", Center: [3]float64{0, 0, 0}, HalfSize: 1},
			{Name: "b", Shape: "cube", Center: [3]float64{1, 0, 0}, HalfSize: 1},
		},
	}
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, s := range sc.Solids {
		if s.Name == "" {
			return nil, fmt.Errorf("%s: a solid entry is missing 'name'", path)
		}
	}
	return &sc, nil
}

// Build realizes every SolidSpec in the scenario into a solid.Solid, keyed
// by name.
func (sc *Scenario) Build() (map[string]solid.Solid, error) {
	out := make(map[string]solid.Solid, len(sc.Solids))
	for _, spec := range sc.Solids {
		s, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("building %q: %w", spec.Name, err)
		}
		out[spec.Name] = s
	}
	return out, nil
}

func (spec SolidSpec) build() (solid.Solid, error) {
	center := vec3.New(spec.Center[0], spec.Center[1], spec.Center[2])
	half := spec.HalfSize
	if half <= 0 {
		half = 1
	}

	switch spec.Shape {
	case "cube", "":
		return cube(center, half)
	case "octahedron":
		return octahedron(center, half)
	default:
		return solid.Solid{}, fmt.Errorf("unknown shape %q", spec.Shape)
	}
}

func quad(corners [4]vec3.Vec3) (*geom.Polygon, error) {
	verts := make([]geom.Vertex, 4)
	for i, c := range corners {
		verts[i] = geom.NewVertex(c)
	}
	return geom.NewPolygonFromVertices(verts, nil)
}

func tri(corners [3]vec3.Vec3) (*geom.Polygon, error) {
	verts := make([]geom.Vertex, 3)
	for i, c := range corners {
		verts[i] = geom.NewVertex(c)
	}
	return geom.NewPolygonFromVertices(verts, nil)
}

func cube(center vec3.Vec3, h float64) (solid.Solid, error) {
	c := func(x, y, z float64) vec3.Vec3 { return center.Add(vec3.New(x*h, y*h, z*h)) }
	faces := [][4]vec3.Vec3{
		{c(-1, -1, -1), c(-1, 1, -1), c(1, 1, -1), c(1, -1, -1)},
		{c(-1, -1, 1), c(1, -1, 1), c(1, 1, 1), c(-1, 1, 1)},
		{c(-1, -1, -1), c(1, -1, -1), c(1, -1, 1), c(-1, -1, 1)},
		{c(-1, 1, -1), c(-1, 1, 1), c(1, 1, 1), c(1, 1, -1)},
		{c(-1, -1, -1), c(-1, -1, 1), c(-1, 1, 1), c(-1, 1, -1)},
		{c(1, -1, -1), c(1, 1, -1), c(1, 1, 1), c(1, -1, 1)},
	}
	polys := make([]*geom.Polygon, 0, len(faces))
	for _, f := range faces {
		p, err := quad(f)
		if err != nil {
			return solid.Solid{}, err
		}
		polys = append(polys, p)
	}
	return solid.New(polys), nil
}

// octahedron returns a regular octahedron with vertices on the axes at
// distance h from center.
func octahedron(center vec3.Vec3, h float64) (solid.Solid, error) {
	px := center.Add(vec3.New(h, 0, 0))
	nx := center.Add(vec3.New(-h, 0, 0))
	py := center.Add(vec3.New(0, h, 0))
	ny := center.Add(vec3.New(0, -h, 0))
	pz := center.Add(vec3.New(0, 0, h))
	nz := center.Add(vec3.New(0, 0, -h))

	faces := [][3]vec3.Vec3{
		{px, py, pz}, {py, nx, pz}, {nx, ny, pz}, {ny, px, pz},
		{py, px, nz}, {nx, py, nz}, {ny, nx, nz}, {px, ny, nz},
	}
	polys := make([]*geom.Polygon, 0, len(faces))
	for _, f := range faces {
		p, err := tri(f)
		if err != nil {
			return solid.Solid{}, err
		}
		polys = append(polys, p)
	}
	return solid.New(polys), nil
}
