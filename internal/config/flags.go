package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagAgent   = flag.String("agent", "", "Name of the animated agent")
	flagCurve   = flag.String("curve", "", "Guide curve to animate the agent along")
	flagFrames  = flag.Int("frames", 0, "Number of animated frames")
	flagRatio   = flag.Float64("ratio", 0, "Ratio of object size to particle size")
	flagDensity = flag.Int("density", 0, "Number of particle layers")
	flagLength  = flag.Int("length", 0, "Maximum keyframe jitter in frames")
	flagOrient  = flag.String("orientation", "", "Curve orientation strategy: euler or basis")
	flagSeed    = flag.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	flagScene   = flag.String("scene", "", "Scene description file")
	flagOut     = flag.String("out", "", "Keyframe output file (default stdout)")
	flagSave    = flag.String("save-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SavePath returns the --save-config path, empty when not requested.
func SavePath() string {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAgent != "" {
		cfg.Trail.AgentName = *flagAgent
	}
	if *flagCurve != "" {
		cfg.Trail.CurveName = *flagCurve
	}
	if *flagFrames > 0 {
		cfg.Trail.FrameCount = *flagFrames
	}
	if *flagRatio > 0 {
		cfg.Trail.SizeRatio = float32(*flagRatio)
	}
	if *flagDensity > 0 {
		cfg.Trail.TrailDensity = *flagDensity
	}
	if *flagLength > 0 {
		cfg.Trail.TrailLength = *flagLength
	}
	if *flagOrient != "" {
		cfg.Curve.Orientation = *flagOrient
	}
	if *flagSeed != 0 {
		cfg.Random.Seed = *flagSeed
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagOut != "" {
		cfg.Scene.Output = *flagOut
	}
}
