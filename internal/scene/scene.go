// Package scene is an in-memory host: a small scene graph of meshes, marker
// primitives and guide curves, a keyframe channel store, and a time cursor.
// It lets the trail pipeline run outside a content-creation application.
package scene

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/internal/logger"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// NodeKind distinguishes what a transform node carries.
type NodeKind int

const (
	KindMesh NodeKind = iota
	KindSphere
	KindGroup
)

func (k NodeKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindSphere:
		return "sphere"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is a transform in the scene graph.
type Node struct {
	Name     host.Handle
	Kind     NodeKind
	Parent   host.Handle
	Children []host.Handle

	// Vertices are local-space positions (meshes only).
	Vertices []math.Vec3
	// Radius of sphere markers.
	Radius float32
	// Template is the sphere a marker was cloned from.
	Template host.Handle

	// Rest values are used for channels with no keyframes.
	Translate math.Vec3
	Rotate    math.Vec3
}

// Scene implements host.Host. It is not safe for concurrent use.
type Scene struct {
	frame   int
	nodes   map[host.Handle]*Node
	curves  map[host.Handle]*Curve
	ribbons map[host.Handle]*Ribbon
	faces   map[host.Handle]faceRef
	keys    *KeyStore
}

var _ host.Host = (*Scene)(nil)

// New returns an empty scene at frame 0.
func New() *Scene {
	return &Scene{
		nodes:   make(map[host.Handle]*Node),
		curves:  make(map[host.Handle]*Curve),
		ribbons: make(map[host.Handle]*Ribbon),
		faces:   make(map[host.Handle]faceRef),
		keys:    NewKeyStore(),
	}
}

// Keys exposes the keyframe channel store.
func (s *Scene) Keys() *KeyStore {
	return s.keys
}

// Node returns the named node, or nil.
func (s *Scene) Node(h host.Handle) *Node {
	return s.nodes[h]
}

// NodeCount returns the number of transform nodes.
func (s *Scene) NodeCount() int {
	return len(s.nodes)
}

// Nodes returns all node names sorted.
func (s *Scene) Nodes() []host.Handle {
	names := make([]host.Handle, 0, len(s.nodes))
	for name := range s.nodes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// AddMesh adds a mesh transform with local-space vertices.
func (s *Scene) AddMesh(name host.Handle, vertices []math.Vec3) (*Node, error) {
	return s.addNode(&Node{Name: name, Kind: KindMesh, Vertices: vertices})
}

// AddGroup adds an empty transform.
func (s *Scene) AddGroup(name host.Handle) (*Node, error) {
	return s.addNode(&Node{Name: name, Kind: KindGroup})
}

func (s *Scene) addNode(n *Node) (*Node, error) {
	if n.Name == "" {
		return nil, fmt.Errorf("node name is empty: %w", host.ErrConfiguration)
	}
	if _, exists := s.nodes[n.Name]; exists {
		return nil, fmt.Errorf("node %q already exists: %w", n.Name, host.ErrConfiguration)
	}
	s.nodes[n.Name] = n
	return n, nil
}

// Parent makes child a child of parent.
func (s *Scene) Parent(child, parent host.Handle) error {
	c, ok := s.nodes[child]
	if !ok {
		return fmt.Errorf("node %q not found: %w", child, host.ErrConfiguration)
	}
	p, ok := s.nodes[parent]
	if !ok {
		return fmt.Errorf("node %q not found: %w", parent, host.ErrConfiguration)
	}
	for a := p; a != nil; a = s.nodes[a.Parent] {
		if a.Name == child {
			return fmt.Errorf("parenting %q under %q creates a cycle: %w", child, parent, host.ErrConfiguration)
		}
	}
	s.unparent(c)
	c.Parent = parent
	p.Children = append(p.Children, child)
	return nil
}

func (s *Scene) unparent(c *Node) {
	if c.Parent == "" {
		return
	}
	if p, ok := s.nodes[c.Parent]; ok {
		for i, name := range p.Children {
			if name == c.Name {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	c.Parent = ""
}

// AdvanceTo implements host.TimeCursor.
func (s *Scene) AdvanceTo(frame int) error {
	s.frame = frame
	return nil
}

// CurrentFrame implements host.TimeCursor.
func (s *Scene) CurrentFrame() int {
	return s.frame
}

// NewSphere implements host.Primitives.
func (s *Scene) NewSphere(radius float32) (host.Handle, error) {
	if radius <= 0 || math32.IsNaN(radius) {
		return "", fmt.Errorf("sphere radius %v must be positive: %w", radius, host.ErrGeometryQuery)
	}
	n, err := s.addNode(&Node{Name: s.uniqueName("nurbsSphere"), Kind: KindSphere, Radius: radius})
	if err != nil {
		return "", err
	}
	return n.Name, nil
}

// CloneAt implements host.Primitives.
func (s *Scene) CloneAt(template host.Handle, position math.Vec3) (host.Handle, error) {
	t, ok := s.nodes[template]
	if !ok || t.Kind != KindSphere {
		return "", fmt.Errorf("template %q is not a sphere: %w", template, host.ErrConfiguration)
	}
	n, err := s.addNode(&Node{
		Name:      s.uniqueName(string(template) + "_inst"),
		Kind:      KindSphere,
		Radius:    t.Radius,
		Template:  template,
		Translate: position,
	})
	if err != nil {
		return "", err
	}
	return n.Name, nil
}

// Group implements host.Primitives. A taken name is suffixed with a number.
func (s *Scene) Group(name string, members []host.Handle) (host.Handle, error) {
	groupName := host.Handle(name)
	for i := 1; s.nodes[groupName] != nil; i++ {
		groupName = host.Handle(fmt.Sprintf("%s%d", name, i))
	}
	if _, err := s.AddGroup(groupName); err != nil {
		return "", err
	}
	for _, m := range members {
		if err := s.Parent(m, groupName); err != nil {
			return "", err
		}
	}
	return groupName, nil
}

// Destroy implements host.Primitives. It removes a node with its subtree and
// keys, or a ribbon with its faces.
func (s *Scene) Destroy(h host.Handle) error {
	if r, ok := s.ribbons[h]; ok {
		for _, f := range r.Faces {
			delete(s.faces, f)
		}
		delete(s.ribbons, h)
		return nil
	}

	n, ok := s.nodes[h]
	if !ok {
		return fmt.Errorf("node %q not found: %w", h, host.ErrConfiguration)
	}
	s.unparent(n)
	s.destroySubtree(n)
	logger.Debug("destroyed node", zap.String("node", string(h)), zap.Stringer("kind", n.Kind))
	return nil
}

func (s *Scene) destroySubtree(n *Node) {
	for _, c := range n.Children {
		if child, ok := s.nodes[c]; ok {
			s.destroySubtree(child)
		}
	}
	s.keys.Remove(n.Name)
	delete(s.nodes, n.Name)
}

// SetKeyframe implements host.KeyframeSink.
func (s *Scene) SetKeyframe(target host.Handle, time int, channel host.Channel, value float32) error {
	if _, ok := s.nodes[target]; !ok {
		return fmt.Errorf("keyframe target %q not found: %w", target, host.ErrConfiguration)
	}
	if !isTransformChannel(channel) {
		return fmt.Errorf("unknown channel %q: %w", channel, host.ErrConfiguration)
	}
	s.keys.Set(target, channel, time, value)
	return nil
}

func (s *Scene) uniqueName(prefix string) host.Handle {
	return host.Handle(prefix + "_" + uuid.Must(uuid.NewV7()).String())
}

func isTransformChannel(ch host.Channel) bool {
	for _, c := range host.TranslateChannels {
		if c == ch {
			return true
		}
	}
	for _, c := range host.RotateChannels {
		if c == ch {
			return true
		}
	}
	return false
}
