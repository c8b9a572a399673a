// Package config handles trail build configuration loading and management.
package config

// Config holds all trail build settings.
type Config struct {
	Trail   TrailConfig   `yaml:"trail"`
	Curve   CurveConfig   `yaml:"curve"`
	Random  RandomConfig  `yaml:"random"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// TrailConfig holds the user-facing trail parameters.
type TrailConfig struct {
	AgentName    string  `yaml:"agent_name"`
	CurveName    string  `yaml:"curve_name"` // empty skips the curve pass
	FrameCount   int     `yaml:"frame_count"`
	SizeRatio    float32 `yaml:"size_ratio"`    // higher means smaller particles
	TrailDensity int     `yaml:"trail_density"` // number of particle layers
	TrailLength  int     `yaml:"trail_length"`  // max jitter in frames
}

// CurveConfig holds guide curve settings.
type CurveConfig struct {
	Segments         int        `yaml:"segments"`    // 0 derives frame_count - trail_length
	Orientation      string     `yaml:"orientation"` // "euler" or "basis"
	ExtrudeDirection [3]float32 `yaml:"extrude_direction"`
	ExtrudeLength    float32    `yaml:"extrude_length"`
}

// RandomConfig holds random source settings.
type RandomConfig struct {
	Seed uint64 `yaml:"seed"` // 0 seeds from the clock
}

// SceneConfig holds input and output paths.
type SceneConfig struct {
	Path   string `yaml:"path"`
	Output string `yaml:"output"` // empty writes keyframes to stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the defaults of the interactive tool.
func Default() *Config {
	return &Config{
		Trail: TrailConfig{
			FrameCount:   100,
			SizeRatio:    70.0,
			TrailDensity: 3,
			TrailLength:  7,
		},
		Curve: CurveConfig{
			Segments:         0,
			Orientation:      "euler",
			ExtrudeDirection: [3]float32{0.5, 0, 1},
			ExtrudeLength:    1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Segments returns the number of curve spans to solve.
func (c *Config) Segments() int {
	if c.Curve.Segments > 0 {
		return c.Curve.Segments
	}
	return c.Trail.FrameCount - c.Trail.TrailLength
}
