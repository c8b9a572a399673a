package particle

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/particle-trail/internal/geometry"
	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/internal/logger"
	"github.com/Faultbox/particle-trail/internal/rng"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// Builder creates particle fields.
type Builder struct {
	primitives host.Primitives
	sampler    *geometry.Sampler
	random     rng.Source
	log        *zap.Logger
}

// NewBuilder creates a builder drawing vertex membership from random.
func NewBuilder(primitives host.Primitives, sampler *geometry.Sampler, random rng.Source) *Builder {
	return &Builder{
		primitives: primitives,
		sampler:    sampler,
		random:     random,
		log:        logger.Named("particle"),
	}
}

// ParticleSize is the mesh's bounding box diagonal divided by sizeRatio, so
// a larger ratio gives smaller particles.
func (b *Builder) ParticleSize(mesh host.Handle, sizeRatio float32) (float32, error) {
	if sizeRatio <= 0 {
		return 0, fmt.Errorf("size ratio %v must be positive: %w", sizeRatio, host.ErrConfiguration)
	}
	diag, err := b.sampler.BoundingBoxDiagonal(mesh)
	if err != nil {
		return 0, err
	}
	return diag / sizeRatio, nil
}

// Build flips a fair coin per vertex and clones a sphere marker onto each
// vertex that comes up present. The clones are grouped and the template
// sphere is destroyed before returning.
func (b *Builder) Build(mesh host.Handle, coords []math.Vec3, count int, sizeRatio float32) (field *Field, err error) {
	if count < 0 || len(coords) != count {
		return nil, fmt.Errorf("mesh %q: %d coordinates for %d vertices: %w",
			mesh, len(coords), count, host.ErrGeometryQuery)
	}

	size, err := b.ParticleSize(mesh, sizeRatio)
	if err != nil {
		return nil, err
	}

	template, err := b.primitives.NewSphere(size)
	if err != nil {
		return nil, fmt.Errorf("creating particle template: %w", err)
	}
	defer func() {
		if derr := b.primitives.Destroy(template); derr != nil {
			err = errors.Join(err, fmt.Errorf("destroying particle template: %w", derr))
			field = nil
		}
	}()

	field = &Field{Mask: make([]bool, count), Size: size}
	for v := 0; v < count; v++ {
		if !b.random.NextBool() {
			continue
		}
		clone, err := b.primitives.CloneAt(template, coords[v])
		if err != nil {
			return nil, fmt.Errorf("placing particle on vertex %d: %w", v, err)
		}
		field.Members = append(field.Members, clone)
		field.Mask[v] = true
	}

	field.Group, err = b.primitives.Group(GroupName, field.Members)
	if err != nil {
		return nil, fmt.Errorf("grouping particles: %w", err)
	}

	b.log.Debug("particle field built",
		zap.String("mesh", string(mesh)),
		zap.String("group", string(field.Group)),
		zap.Int("vertices", count),
		zap.Int("particles", field.Count()),
		zap.Float32("size", size))
	return field, nil
}
