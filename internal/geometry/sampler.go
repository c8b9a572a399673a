// Package geometry samples world-space mesh data from the host.
package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/internal/logger"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// Sampler reads vertex positions and face normals through the host.
//
// VerticesAtFrame moves the host's shared time cursor, so a Sampler must only
// be used from the goroutine that owns the host.
type Sampler struct {
	geo    host.Geometry
	cursor host.TimeCursor
}

// NewSampler creates a sampler over the given geometry provider and cursor.
func NewSampler(geo host.Geometry, cursor host.TimeCursor) *Sampler {
	return &Sampler{geo: geo, cursor: cursor}
}

// Vertices returns the first count world-space vertices of mesh at whatever
// frame the cursor currently points to.
func (s *Sampler) Vertices(mesh host.Handle, count int) ([]math.Vec3, error) {
	if count <= 0 {
		return nil, fmt.Errorf("mesh %q has no vertices: %w", mesh, host.ErrGeometryQuery)
	}

	coords, err := s.geo.WorldVertices(mesh, count)
	if err != nil {
		return nil, fmt.Errorf("querying vertices of %q: %w", mesh, joinGeometry(err))
	}
	if len(coords) != count {
		return nil, fmt.Errorf("mesh %q returned %d vertices, want %d: %w",
			mesh, len(coords), count, host.ErrGeometryQuery)
	}
	return coords, nil
}

// VerticesAtFrame advances the cursor to frame and then samples. The cursor
// is settled before the query is issued.
func (s *Sampler) VerticesAtFrame(mesh host.Handle, count, frame int) ([]math.Vec3, error) {
	if err := s.cursor.AdvanceTo(frame); err != nil {
		return nil, fmt.Errorf("advancing time to frame %d: %w", frame, err)
	}
	return s.Vertices(mesh, count)
}

// FaceNormals returns one unit normal per face, in order.
func (s *Sampler) FaceNormals(faces []host.Handle) ([]math.Vec3, error) {
	normals := make([]math.Vec3, len(faces))
	for i, face := range faces {
		n, err := s.geo.FaceNormal(face)
		if err != nil {
			return nil, fmt.Errorf("querying normal of %q: %w", face, joinGeometry(err))
		}
		unit, ok := n.TryNormalize()
		if !ok {
			return nil, fmt.Errorf("face %q has a zero normal: %w", face, host.ErrGeometryQuery)
		}
		normals[i] = unit
	}
	return normals, nil
}

// BoundingBoxDiagonal returns the world bounding box diagonal of mesh.
func (s *Sampler) BoundingBoxDiagonal(mesh host.Handle) (float32, error) {
	d, err := s.geo.BoundingBoxDiagonal(mesh)
	if err != nil {
		return 0, fmt.Errorf("bounding box of %q: %w", mesh, joinGeometry(err))
	}
	if d < 0 || math32.IsNaN(d) {
		return 0, fmt.Errorf("bounding box of %q has invalid diagonal %v: %w", mesh, d, host.ErrGeometryQuery)
	}
	return d, nil
}

// MeshSource binds a sampler to one mesh so callers can ask for a frame's
// vertices without carrying the mesh handle around.
type MeshSource struct {
	sampler *Sampler
	mesh    host.Handle
	count   int
}

// Mesh returns a MeshSource for count vertices of mesh.
func (s *Sampler) Mesh(mesh host.Handle, count int) *MeshSource {
	return &MeshSource{sampler: s, mesh: mesh, count: count}
}

// VertexCount reports how many vertices each snapshot holds.
func (m *MeshSource) VertexCount() int {
	return m.count
}

// VerticesAtFrame returns a fresh snapshot of the mesh at frame.
func (m *MeshSource) VerticesAtFrame(frame int) ([]math.Vec3, error) {
	coords, err := m.sampler.VerticesAtFrame(m.mesh, m.count, frame)
	if err != nil {
		return nil, err
	}
	logger.Debug("sampled vertices",
		zap.String("mesh", string(m.mesh)),
		zap.Int("frame", frame),
		zap.Int("count", len(coords)))
	return coords, nil
}

// joinGeometry tags host errors that do not already carry a failure class.
func joinGeometry(err error) error {
	if isClassified(err) {
		return err
	}
	return fmt.Errorf("%w: %w", host.ErrGeometryQuery, err)
}

func isClassified(err error) bool {
	return errors.Is(err, host.ErrGeometryQuery) ||
		errors.Is(err, host.ErrConfiguration) ||
		errors.Is(err, host.ErrCurveUnavailable)
}
