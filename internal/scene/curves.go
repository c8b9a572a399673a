package scene

import (
	"fmt"

	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// Curve is a degree-1 guide curve given by world-space control points.
type Curve struct {
	Name   host.Handle
	Points []math.Vec3
}

// Ribbon is a curve swept along a fixed direction. Face i spans control
// points i and i+1.
type Ribbon struct {
	Name   host.Handle
	Points []math.Vec3
	Offset math.Vec3
	Faces  []host.Handle
}

type faceRef struct {
	ribbon host.Handle
	index  int
}

// quad returns face i's corners wound so that the first edge runs along the
// sweep and the last edge along the curve.
func (r *Ribbon) quad(i int) [4]math.Vec3 {
	a, b := r.Points[i], r.Points[i+1]
	return [4]math.Vec3{a, a.Add(r.Offset), b.Add(r.Offset), b}
}

// AddCurve adds a guide curve.
func (s *Scene) AddCurve(name host.Handle, points []math.Vec3) (*Curve, error) {
	if name == "" {
		return nil, fmt.Errorf("curve name is empty: %w", host.ErrConfiguration)
	}
	if _, exists := s.curves[name]; exists {
		return nil, fmt.Errorf("curve %q already exists: %w", name, host.ErrConfiguration)
	}
	c := &Curve{Name: name, Points: append([]math.Vec3(nil), points...)}
	s.curves[name] = c
	return c, nil
}

// Curve returns the named curve, or nil.
func (s *Scene) Curve(name host.Handle) *Curve {
	return s.curves[name]
}

func (s *Scene) curve(name host.Handle) (*Curve, error) {
	if name == "" {
		return nil, fmt.Errorf("curve name is empty: %w", host.ErrCurveUnavailable)
	}
	c, ok := s.curves[name]
	if !ok {
		return nil, fmt.Errorf("curve %q not found: %w", name, host.ErrCurveUnavailable)
	}
	return c, nil
}

// Resample implements host.Curves. Each original span covers an equal
// parameter range and the new control points sit at uniform parameters, so
// the original control structure is discarded.
func (s *Scene) Resample(name host.Handle, segments int) error {
	c, err := s.curve(name)
	if err != nil {
		return err
	}
	if segments < 1 {
		return fmt.Errorf("curve %q: %d segments requested: %w", name, segments, host.ErrCurveUnavailable)
	}
	if len(c.Points) < 2 {
		return fmt.Errorf("curve %q has %d control points: %w", name, len(c.Points), host.ErrCurveUnavailable)
	}

	spans := float32(len(c.Points) - 1)
	resampled := make([]math.Vec3, segments+1)
	for k := 0; k <= segments; k++ {
		u := spans * float32(k) / float32(segments)
		i := int(u)
		if i >= len(c.Points)-1 {
			resampled[k] = c.Points[len(c.Points)-1]
			continue
		}
		frac := u - float32(i)
		a, b := c.Points[i], c.Points[i+1]
		resampled[k] = a.Add(b.Sub(a).Scale(frac))
	}
	c.Points = resampled
	return nil
}

// ControlPoint implements host.Curves.
func (s *Scene) ControlPoint(name host.Handle, i int) (math.Vec3, error) {
	c, err := s.curve(name)
	if err != nil {
		return math.Vec3{}, err
	}
	if i < 0 || i >= len(c.Points) {
		return math.Vec3{}, fmt.Errorf("curve %q has no control point %d: %w", name, i, host.ErrCurveUnavailable)
	}
	return c.Points[i], nil
}

// ExtrudeRibbon implements host.Curves. The face normal of span i is
// direction x tangent, so a curve running along +X swept toward +Z faces +Y.
func (s *Scene) ExtrudeRibbon(name host.Handle, direction math.Vec3, length float32) (host.Handle, []host.Handle, error) {
	c, err := s.curve(name)
	if err != nil {
		return "", nil, err
	}
	if len(c.Points) < 2 {
		return "", nil, fmt.Errorf("curve %q has %d control points: %w", name, len(c.Points), host.ErrCurveUnavailable)
	}
	dir, ok := direction.TryNormalize()
	if !ok || length <= 0 {
		return "", nil, fmt.Errorf("extrusion of %q needs a direction and positive length: %w", name, host.ErrGeometryQuery)
	}

	r := &Ribbon{
		Name:   s.uniqueName("extrudedPath"),
		Points: append([]math.Vec3(nil), c.Points...),
		Offset: dir.Scale(length),
	}
	r.Faces = make([]host.Handle, len(r.Points)-1)
	for i := range r.Faces {
		f := host.Handle(fmt.Sprintf("%s.f[%d]", r.Name, i))
		r.Faces[i] = f
		s.faces[f] = faceRef{ribbon: r.Name, index: i}
	}
	s.ribbons[r.Name] = r
	return r.Name, append([]host.Handle(nil), r.Faces...), nil
}

// RibbonCount returns the number of live ribbons.
func (s *Scene) RibbonCount() int {
	return len(s.ribbons)
}
