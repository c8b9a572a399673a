// Package trail keys particle layers so they lag behind a moving mesh, and
// runs the full build from agent animation to scheduled keyframes.
package trail

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/internal/logger"
	"github.com/Faultbox/particle-trail/internal/particle"
	"github.com/Faultbox/particle-trail/internal/rng"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// VertexSource returns a fresh world-space snapshot of the agent mesh for a
// frame. Implementations may move the host's time cursor.
type VertexSource interface {
	VerticesAtFrame(frame int) ([]math.Vec3, error)
}

// Scheduler writes translate keys for every particle on every frame.
type Scheduler struct {
	sink   host.KeyframeSink
	random rng.Source
	log    *zap.Logger
}

// NewScheduler creates a scheduler drawing jitter from random.
func NewScheduler(sink host.KeyframeSink, random rng.Source) *Scheduler {
	return &Scheduler{sink: sink, random: random, log: logger.Named("trail")}
}

// Schedule walks frames 0..frameCount-1. For each frame it samples the
// agent once, then keys every particle of every layer to the position of its
// vertex at time frame+jitter, with jitter drawn from [0, trailLength] and
// forced to 0 on frame 0. Keys past frameCount are expected.
//
// It returns the number of particle keyframes written; each one sets the
// three translate channels.
func (s *Scheduler) Schedule(layers []*particle.Field, frameCount, trailLength int, source VertexSource) (int, error) {
	if trailLength < 0 {
		return 0, fmt.Errorf("trail length %d is negative: %w", trailLength, host.ErrConfiguration)
	}

	written := 0
	for i := 0; i < frameCount; i++ {
		snapshot, err := source.VerticesAtFrame(i)
		if err != nil {
			return written, fmt.Errorf("sampling frame %d: %w", i, err)
		}

		for k, layer := range layers {
			if len(layer.Mask) != len(snapshot) {
				return written, fmt.Errorf("layer %d mask covers %d vertices, frame %d has %d: %w",
					k, len(layer.Mask), i, len(snapshot), host.ErrGeometryQuery)
			}

			n, err := s.keyLayer(layer, i, trailLength, snapshot)
			written += n
			if err != nil {
				return written, fmt.Errorf("layer %d frame %d: %w", k, i, err)
			}
		}

		s.log.Debug("frame scheduled", zap.Int("frame", i), zap.Int("keyframes", written))
	}

	s.log.Info("trail scheduled",
		zap.Int("frames", frameCount),
		zap.Int("layers", len(layers)),
		zap.Int("keyframes", written))
	return written, nil
}

func (s *Scheduler) keyLayer(layer *particle.Field, frame, trailLength int, snapshot []math.Vec3) (int, error) {
	written := 0
	index := -1
	for j, present := range layer.Mask {
		if !present {
			continue
		}
		index++
		// Unreachable while Members matches Mask.
		if index >= layer.Count() {
			continue
		}

		jitter := 0
		if frame > 0 {
			jitter = s.random.NextInt(0, trailLength)
		}
		if err := host.SetTranslate(s.sink, layer.Members[index], frame+jitter, snapshot[j]); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
