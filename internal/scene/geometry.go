package scene

import (
	"fmt"

	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// LocalMatrix returns the node's local transform at the current frame.
func (s *Scene) LocalMatrix(n *Node) math.Mat4 {
	t := float32(s.frame)
	rest := n.Translate.Array()
	restRot := n.Rotate.Array()
	var tr, rr [3]float32
	for i := 0; i < 3; i++ {
		tr[i] = s.keys.Evaluate(n.Name, host.TranslateChannels[i], t, rest[i])
		rr[i] = s.keys.Evaluate(n.Name, host.RotateChannels[i], t, restRot[i])
	}
	return math.TRS(math.Vec3FromArray(tr), math.Vec3FromArray(rr))
}

// WorldMatrix returns the node's world transform at the current frame.
func (s *Scene) WorldMatrix(n *Node) math.Mat4 {
	m := s.LocalMatrix(n)
	for p := s.nodes[n.Parent]; p != nil; p = s.nodes[p.Parent] {
		m = s.LocalMatrix(p).Mul(m)
	}
	return m
}

// WorldPosition returns the node's world-space origin at the current frame.
func (s *Scene) WorldPosition(h host.Handle) (math.Vec3, error) {
	n, ok := s.nodes[h]
	if !ok {
		return math.Vec3{}, fmt.Errorf("node %q not found: %w", h, host.ErrConfiguration)
	}
	return s.WorldMatrix(n).TransformPoint(math.Vec3{}), nil
}

// ResolveMesh implements host.Geometry. The object itself is used when it is
// a mesh; otherwise its hierarchy is searched depth first.
func (s *Scene) ResolveMesh(object host.Handle) (host.Handle, int, error) {
	if object == "" {
		return "", 0, fmt.Errorf("agent name is empty: %w", host.ErrConfiguration)
	}
	n, ok := s.nodes[object]
	if !ok {
		return "", 0, fmt.Errorf("agent %q not found: %w", object, host.ErrConfiguration)
	}
	mesh := s.findMesh(n)
	if mesh == nil {
		return "", 0, fmt.Errorf("agent %q has no mesh in its hierarchy: %w", object, host.ErrConfiguration)
	}
	return mesh.Name, len(mesh.Vertices), nil
}

func (s *Scene) findMesh(n *Node) *Node {
	if n.Kind == KindMesh {
		return n
	}
	for _, c := range n.Children {
		if child, ok := s.nodes[c]; ok {
			if m := s.findMesh(child); m != nil {
				return m
			}
		}
	}
	return nil
}

// WorldVertices implements host.Geometry.
func (s *Scene) WorldVertices(mesh host.Handle, count int) ([]math.Vec3, error) {
	n, ok := s.nodes[mesh]
	if !ok || n.Kind != KindMesh {
		return nil, fmt.Errorf("mesh %q not found: %w", mesh, host.ErrGeometryQuery)
	}
	if count < 0 || count > len(n.Vertices) {
		return nil, fmt.Errorf("mesh %q has %d vertices, %d requested: %w",
			mesh, len(n.Vertices), count, host.ErrGeometryQuery)
	}

	world := s.WorldMatrix(n)
	coords := make([]math.Vec3, count)
	for i := 0; i < count; i++ {
		coords[i] = world.TransformPoint(n.Vertices[i])
	}
	return coords, nil
}

// BoundingBoxDiagonal implements host.Geometry. The box spans every mesh
// vertex and sphere marker in the node's subtree, in world space.
func (s *Scene) BoundingBoxDiagonal(h host.Handle) (float32, error) {
	n, ok := s.nodes[h]
	if !ok {
		return 0, fmt.Errorf("node %q not found: %w", h, host.ErrGeometryQuery)
	}

	b := bounds{empty: true}
	s.accumulateBounds(n, &b)
	if b.empty {
		return 0, fmt.Errorf("node %q has no geometry: %w", h, host.ErrGeometryQuery)
	}
	return b.max.Sub(b.min).Length(), nil
}

func (s *Scene) accumulateBounds(n *Node, b *bounds) {
	world := s.WorldMatrix(n)
	switch n.Kind {
	case KindMesh:
		for _, v := range n.Vertices {
			b.add(world.TransformPoint(v))
		}
	case KindSphere:
		c := world.TransformPoint(math.Vec3{})
		r := math.Vec3{X: n.Radius, Y: n.Radius, Z: n.Radius}
		b.add(c.Sub(r))
		b.add(c.Add(r))
	}
	for _, name := range n.Children {
		if child, ok := s.nodes[name]; ok {
			s.accumulateBounds(child, b)
		}
	}
}

// FaceNormal implements host.Geometry for ribbon faces.
func (s *Scene) FaceNormal(face host.Handle) (math.Vec3, error) {
	ref, ok := s.faces[face]
	if !ok {
		return math.Vec3{}, fmt.Errorf("face %q not found: %w", face, host.ErrGeometryQuery)
	}
	r := s.ribbons[ref.ribbon]
	q := r.quad(ref.index)
	n, ok := q[1].Sub(q[0]).Cross(q[3].Sub(q[0])).TryNormalize()
	if !ok {
		return math.Vec3{}, fmt.Errorf("face %q is degenerate: %w", face, host.ErrGeometryQuery)
	}
	return n, nil
}

type bounds struct {
	min, max math.Vec3
	empty    bool
}

func (b *bounds) add(p math.Vec3) {
	if b.empty {
		b.min, b.max, b.empty = p, p, false
		return
	}
	b.min = math.Vec3{X: min(b.min.X, p.X), Y: min(b.min.Y, p.Y), Z: min(b.min.Z, p.Z)}
	b.max = math.Vec3{X: max(b.max.X, p.X), Y: max(b.max.Y, p.Y), Z: max(b.max.Z, p.Z)}
}
