package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// File is the YAML scene description.
type File struct {
	Groups []NodeSpec  `yaml:"groups"`
	Meshes []NodeSpec  `yaml:"meshes"`
	Curves []CurveSpec `yaml:"curves"`
}

// NodeSpec describes a group or mesh transform.
type NodeSpec struct {
	Name      string                 `yaml:"name"`
	Parent    string                 `yaml:"parent"`
	Shape     *ShapeSpec             `yaml:"shape"`
	Vertices  [][3]float32           `yaml:"vertices"`
	Translate [3]float32             `yaml:"translate"`
	Rotate    [3]float32             `yaml:"rotate"`
	Keys      map[host.Channel][]Key `yaml:"keys"`
}

// CurveSpec describes a guide curve.
type CurveSpec struct {
	Name   string       `yaml:"name"`
	Points [][3]float32 `yaml:"points"`
}

// LoadFile reads a YAML scene description from path.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return Build(&f)
}

// Build creates a scene from a parsed description.
func Build(f *File) (*Scene, error) {
	s := New()

	for _, g := range f.Groups {
		n, err := s.AddGroup(host.Handle(g.Name))
		if err != nil {
			return nil, err
		}
		if err := s.applyRest(n, g); err != nil {
			return nil, err
		}
	}

	for _, m := range f.Meshes {
		verts, err := meshVertices(m)
		if err != nil {
			return nil, err
		}
		n, err := s.AddMesh(host.Handle(m.Name), verts)
		if err != nil {
			return nil, err
		}
		if err := s.applyRest(n, m); err != nil {
			return nil, err
		}
	}

	for _, spec := range append(append([]NodeSpec(nil), f.Groups...), f.Meshes...) {
		if spec.Parent == "" {
			continue
		}
		if err := s.Parent(host.Handle(spec.Name), host.Handle(spec.Parent)); err != nil {
			return nil, err
		}
	}

	for _, c := range f.Curves {
		points := make([]math.Vec3, len(c.Points))
		for i, p := range c.Points {
			points[i] = math.Vec3FromArray(p)
		}
		if _, err := s.AddCurve(host.Handle(c.Name), points); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scene) applyRest(n *Node, spec NodeSpec) error {
	n.Translate = math.Vec3FromArray(spec.Translate)
	n.Rotate = math.Vec3FromArray(spec.Rotate)
	for ch, keys := range spec.Keys {
		for _, k := range keys {
			if err := s.SetKeyframe(n.Name, k.Time, ch, k.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func meshVertices(m NodeSpec) ([]math.Vec3, error) {
	if m.Shape != nil {
		if len(m.Vertices) > 0 {
			return nil, fmt.Errorf("mesh %q sets both shape and vertices: %w", m.Name, host.ErrConfiguration)
		}
		return m.Shape.Vertices()
	}
	verts := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = math.Vec3FromArray(v)
	}
	return verts, nil
}
