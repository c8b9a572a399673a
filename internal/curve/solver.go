// Package curve derives per-frame agent poses that follow a guide curve.
package curve

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/particle-trail/internal/geometry"
	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/internal/logger"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// AgentFrame is the agent pose for one span, keyed at Time.
type AgentFrame struct {
	Time        int
	Position    math.Vec3
	Orientation math.Vec3 // XYZ Euler, degrees
}

// Outcome is the result of a solve: frames on success, or the reason the
// curve pass was skipped.
type Outcome struct {
	Frames []AgentFrame
	Reason error
}

// Success wraps solved frames.
func Success(frames []AgentFrame) Outcome {
	return Outcome{Frames: frames}
}

// Skipped records why the curve pass did not run.
func Skipped(reason error) Outcome {
	return Outcome{Reason: reason}
}

// Skipped reports whether the pass was skipped.
func (o Outcome) Skipped() bool {
	return o.Reason != nil
}

// Options controls ribbon construction and orientation.
type Options struct {
	ExtrudeDirection math.Vec3
	ExtrudeLength    float32
	Orienter         Orienter
}

// DefaultOptions sweeps the ribbon half a unit along X per unit along Z, one
// unit long, and uses EulerApproximation.
func DefaultOptions() Options {
	return Options{
		ExtrudeDirection: math.Vec3{X: 0.5, Z: 1},
		ExtrudeLength:    1,
		Orienter:         EulerApproximation{},
	}
}

// PoseSolver resamples a guide curve and emits one agent pose per span.
type PoseSolver struct {
	curves     host.Curves
	primitives host.Primitives
	sampler    *geometry.Sampler
	opts       Options
	log        *zap.Logger
}

// NewPoseSolver creates a solver. The primitives collaborator releases the
// temporary ribbon.
func NewPoseSolver(curves host.Curves, primitives host.Primitives, sampler *geometry.Sampler, opts Options) *PoseSolver {
	if opts.Orienter == nil {
		opts.Orienter = EulerApproximation{}
	}
	return &PoseSolver{
		curves:     curves,
		primitives: primitives,
		sampler:    sampler,
		opts:       opts,
		log:        logger.Named("curve"),
	}
}

// Solve rebuilds the curve into segments linear spans and returns one frame
// per span at times 0..segments-1. Any failure, including an empty curve
// name, yields a Skipped outcome instead of an error.
func (s *PoseSolver) Solve(curveName host.Handle, segments int) Outcome {
	if curveName == "" {
		return s.skip(curveName, fmt.Errorf("no guide curve given: %w", host.ErrCurveUnavailable))
	}

	frames, err := s.solve(curveName, segments)
	if err != nil {
		return s.skip(curveName, err)
	}

	s.log.Info("curve solved",
		zap.String("curve", string(curveName)),
		zap.Int("segments", segments),
		zap.Int("frames", len(frames)))
	return Success(frames)
}

func (s *PoseSolver) skip(curveName host.Handle, reason error) Outcome {
	s.log.Warn("curve pass skipped, keeping existing agent animation",
		zap.String("curve", string(curveName)),
		zap.Error(reason))
	return Skipped(reason)
}

func (s *PoseSolver) solve(curveName host.Handle, segments int) (frames []AgentFrame, err error) {
	if segments < 1 {
		return nil, fmt.Errorf("curve %q: segment count %d: %w", curveName, segments, host.ErrCurveUnavailable)
	}
	if err := s.curves.Resample(curveName, segments); err != nil {
		return nil, fmt.Errorf("resampling %q: %w", curveName, err)
	}

	points := make([]math.Vec3, segments+1)
	for i := range points {
		p, err := s.curves.ControlPoint(curveName, i)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", curveName, err)
		}
		points[i] = p
	}

	forwards := make([]math.Vec3, segments)
	for i := range forwards {
		f, ok := points[i+1].Sub(points[i]).TryNormalize()
		if !ok {
			return nil, fmt.Errorf("curve %q span %d has zero length: %w", curveName, i, host.ErrCurveUnavailable)
		}
		forwards[i] = f
	}

	ribbon, faces, err := s.curves.ExtrudeRibbon(curveName, s.opts.ExtrudeDirection, s.opts.ExtrudeLength)
	if err != nil {
		return nil, fmt.Errorf("extruding %q: %w", curveName, err)
	}
	defer func() {
		if derr := s.primitives.Destroy(ribbon); derr != nil {
			err = errors.Join(err, fmt.Errorf("releasing ribbon %q: %w", ribbon, derr))
			frames = nil
		}
	}()

	if len(faces) != segments {
		return nil, fmt.Errorf("ribbon of %q has %d faces, want %d: %w",
			curveName, len(faces), segments, host.ErrGeometryQuery)
	}
	normals, err := s.sampler.FaceNormals(faces)
	if err != nil {
		return nil, err
	}

	frames = make([]AgentFrame, segments)
	for i := 0; i < segments; i++ {
		forward, normal := forwards[i], normals[i]
		b := Basis{Forward: forward, Normal: normal, Side: forward.Cross(normal)}
		frames[i] = AgentFrame{
			Time:        i,
			Position:    points[i].Midpoint(points[i+1]),
			Orientation: s.opts.Orienter.Orient(b),
		}
	}
	return frames, nil
}

// Apply keys translate and rotate channels of agent for every frame and
// returns the number of keys written.
func Apply(sink host.KeyframeSink, agent host.Handle, frames []AgentFrame) (int, error) {
	written := 0
	for _, f := range frames {
		if err := host.SetTranslate(sink, agent, f.Time, f.Position); err != nil {
			return written, fmt.Errorf("keying %q at %d: %w", agent, f.Time, err)
		}
		written += 3
		if err := host.SetRotate(sink, agent, f.Time, f.Orientation); err != nil {
			return written, fmt.Errorf("keying %q at %d: %w", agent, f.Time, err)
		}
		written += 3
	}
	return written, nil
}
