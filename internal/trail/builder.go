package trail

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/particle-trail/internal/config"
	"github.com/Faultbox/particle-trail/internal/curve"
	"github.com/Faultbox/particle-trail/internal/geometry"
	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/internal/logger"
	"github.com/Faultbox/particle-trail/internal/particle"
	"github.com/Faultbox/particle-trail/internal/rng"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// Params are the values of one build.
type Params struct {
	Agent        host.Handle
	Curve        host.Handle // empty skips the curve pass
	FrameCount   int
	SizeRatio    float32
	TrailDensity int
	TrailLength  int
	Segments     int // curve spans; 0 derives FrameCount-TrailLength
}

// ParamsFromConfig extracts build parameters and curve options.
func ParamsFromConfig(cfg *config.Config) (Params, curve.Options, error) {
	orienter, err := curve.OrienterByName(cfg.Curve.Orientation)
	if err != nil {
		return Params{}, curve.Options{}, err
	}
	p := Params{
		Agent:        host.Handle(cfg.Trail.AgentName),
		Curve:        host.Handle(cfg.Trail.CurveName),
		FrameCount:   cfg.Trail.FrameCount,
		SizeRatio:    cfg.Trail.SizeRatio,
		TrailDensity: cfg.Trail.TrailDensity,
		TrailLength:  cfg.Trail.TrailLength,
		Segments:     cfg.Curve.Segments,
	}
	opts := curve.Options{
		ExtrudeDirection: math.Vec3FromArray(cfg.Curve.ExtrudeDirection),
		ExtrudeLength:    cfg.Curve.ExtrudeLength,
		Orienter:         orienter,
	}
	return p, opts, nil
}

// validate checks the structural limits the pipeline itself depends on.
// Range limits of the user interface live in config.Validate.
func (p Params) validate() error {
	switch {
	case p.Agent == "":
		return fmt.Errorf("agent name is empty: %w", host.ErrConfiguration)
	case p.FrameCount < 1:
		return fmt.Errorf("frame count %d: %w", p.FrameCount, host.ErrConfiguration)
	case p.SizeRatio <= 0:
		return fmt.Errorf("size ratio %v: %w", p.SizeRatio, host.ErrConfiguration)
	case p.TrailDensity < 1:
		return fmt.Errorf("trail density %d: %w", p.TrailDensity, host.ErrConfiguration)
	case p.TrailLength < 0:
		return fmt.Errorf("trail length %d: %w", p.TrailLength, host.ErrConfiguration)
	case p.Segments < 0:
		return fmt.Errorf("segments %d: %w", p.Segments, host.ErrConfiguration)
	}
	return nil
}

func (p Params) segments() int {
	if p.Segments > 0 {
		return p.Segments
	}
	return p.FrameCount - p.TrailLength
}

// Report summarises a build.
type Report struct {
	Mesh           host.Handle
	Vertices       int
	AgentFrames    int
	AgentKeys      int
	CurveSkipped   bool
	SkipReason     error
	Layers         []*particle.Field
	Particles      int
	TrailKeyframes int
}

// Builder runs the whole trail build against one host. Builds on the same
// host must not overlap.
type Builder struct {
	host      host.Host
	sampler   *geometry.Sampler
	solver    *curve.PoseSolver
	particles *particle.Builder
	scheduler *Scheduler
	log       *zap.Logger
}

// NewBuilder wires the stages to h. Membership and jitter both draw from random.
func NewBuilder(h host.Host, random rng.Source, opts curve.Options) *Builder {
	sampler := geometry.NewSampler(h, h)
	return &Builder{
		host:      h,
		sampler:   sampler,
		solver:    curve.NewPoseSolver(h, h, sampler, opts),
		particles: particle.NewBuilder(h, sampler, random),
		scheduler: NewScheduler(h, random),
		log:       logger.Named("build"),
	}
}

// Run animates the agent along the curve when one is given, scatters
// TrailDensity particle layers over the agent mesh and keys them frame by
// frame. Curve problems only skip the curve pass. Any other failure aborts
// the build and leaves already written keys in place.
func (b *Builder) Run(p Params) (Report, error) {
	var r Report
	if err := p.validate(); err != nil {
		return r, err
	}

	mesh, count, err := b.host.ResolveMesh(p.Agent)
	if err != nil {
		return r, fmt.Errorf("resolving agent %q: %w", p.Agent, err)
	}
	if count == 0 {
		return r, fmt.Errorf("agent %q mesh %q has no vertices: %w", p.Agent, mesh, host.ErrGeometryQuery)
	}
	r.Mesh, r.Vertices = mesh, count

	b.log.Info("trail build started",
		zap.String("agent", string(p.Agent)),
		zap.String("mesh", string(mesh)),
		zap.Int("vertices", count),
		zap.Int("frames", p.FrameCount),
		zap.Int("layers", p.TrailDensity))

	b.animateAgent(p, &r)

	coords, err := b.sampler.Vertices(mesh, count)
	if err != nil {
		return r, err
	}

	r.Layers = make([]*particle.Field, 0, p.TrailDensity)
	for k := 0; k < p.TrailDensity; k++ {
		field, err := b.particles.Build(mesh, coords, count, p.SizeRatio)
		if err != nil {
			return r, fmt.Errorf("building layer %d: %w", k, err)
		}
		r.Layers = append(r.Layers, field)
		r.Particles += field.Count()
	}

	r.TrailKeyframes, err = b.scheduler.Schedule(r.Layers, p.FrameCount, p.TrailLength, b.sampler.Mesh(mesh, count))
	if err != nil {
		return r, err
	}

	b.log.Info("trail build finished",
		zap.Int("particles", r.Particles),
		zap.Int("trail_keyframes", r.TrailKeyframes),
		zap.Int("agent_keys", r.AgentKeys),
		zap.Bool("curve_skipped", r.CurveSkipped))
	return r, nil
}

// animateAgent is the best-effort curve pass.
func (b *Builder) animateAgent(p Params, r *Report) {
	out := b.solver.Solve(p.Curve, p.segments())
	if out.Skipped() {
		r.CurveSkipped, r.SkipReason = true, out.Reason
		return
	}

	n, err := curve.Apply(b.host, p.Agent, out.Frames)
	r.AgentKeys = n
	if err != nil {
		b.log.Warn("keying agent along curve failed, keeping existing animation", zap.Error(err))
		r.CurveSkipped, r.SkipReason = true, err
		return
	}
	r.AgentFrames = len(out.Frames)
}
