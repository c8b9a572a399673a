// Package main is the entry point for the trailgen particle trail builder.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/particle-trail/internal/config"
	"github.com/Faultbox/particle-trail/internal/logger"
	"github.com/Faultbox/particle-trail/internal/rng"
	"github.com/Faultbox/particle-trail/internal/scene"
	"github.com/Faultbox/particle-trail/internal/trail"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if path := config.SavePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Particle Trail ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("trail build failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.Scene.Path == "" {
		return fmt.Errorf("no scene file given (use --scene)")
	}
	s, err := scene.LoadFile(cfg.Scene.Path)
	if err != nil {
		return err
	}

	params, opts, err := trail.ParamsFromConfig(cfg)
	if err != nil {
		return err
	}

	report, err := trail.NewBuilder(s, rng.New(cfg.Random.Seed), opts).Run(params)
	if err != nil {
		return err
	}
	if report.CurveSkipped {
		logger.Warn("agent was not animated along a curve", zap.Error(report.SkipReason))
	}

	var out io.Writer = os.Stdout
	if cfg.Scene.Output != "" {
		f, err := os.Create(cfg.Scene.Output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", cfg.Scene.Output, err)
		}
		defer f.Close()
		out = f
	}
	if err := s.ExportKeyframes(out); err != nil {
		return fmt.Errorf("exporting keyframes: %w", err)
	}

	logger.Info("trail written",
		zap.String("mesh", string(report.Mesh)),
		zap.Int("particles", report.Particles),
		zap.Int("trail_keyframes", report.TrailKeyframes),
		zap.Int("agent_keys", report.AgentKeys))
	return nil
}
