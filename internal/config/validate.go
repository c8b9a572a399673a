package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/particle-trail/internal/host"
)

// Accepted parameter ranges, inclusive.
const (
	MinFrames       = 1
	MaxFrames       = 1000
	MinSizeRatio    = 20.0
	MaxSizeRatio    = 150.0
	MinTrailDensity = 1
	MaxTrailDensity = 20
	MinTrailLength  = 1
	MaxTrailLength  = 50
)

// Validate checks every field and reports all problems at once, wrapped in
// host.ErrConfiguration.
func (c *Config) Validate() error {
	var errs []error
	t := c.Trail

	if t.AgentName == "" {
		errs = append(errs, errors.New("agent_name is required"))
	}
	if t.FrameCount < MinFrames || t.FrameCount > MaxFrames {
		errs = append(errs, fmt.Errorf("frame_count %d outside [%d, %d]", t.FrameCount, MinFrames, MaxFrames))
	}
	if t.SizeRatio < MinSizeRatio || t.SizeRatio > MaxSizeRatio {
		errs = append(errs, fmt.Errorf("size_ratio %v outside [%v, %v]", t.SizeRatio, MinSizeRatio, MaxSizeRatio))
	}
	if t.TrailDensity < MinTrailDensity || t.TrailDensity > MaxTrailDensity {
		errs = append(errs, fmt.Errorf("trail_density %d outside [%d, %d]", t.TrailDensity, MinTrailDensity, MaxTrailDensity))
	}
	if t.TrailLength < MinTrailLength || t.TrailLength > MaxTrailLength {
		errs = append(errs, fmt.Errorf("trail_length %d outside [%d, %d]", t.TrailLength, MinTrailLength, MaxTrailLength))
	}

	if c.Curve.Segments < 0 {
		errs = append(errs, fmt.Errorf("curve.segments %d is negative", c.Curve.Segments))
	}
	switch c.Curve.Orientation {
	case "", "euler", "basis":
	default:
		errs = append(errs, fmt.Errorf("curve.orientation %q is not euler or basis", c.Curve.Orientation))
	}
	if c.Curve.ExtrudeLength <= 0 {
		errs = append(errs, fmt.Errorf("curve.extrude_length %v must be positive", c.Curve.ExtrudeLength))
	}
	if c.Curve.ExtrudeDirection == [3]float32{} {
		errs = append(errs, errors.New("curve.extrude_direction must be non-zero"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", host.ErrConfiguration, errors.Join(errs...))
}
