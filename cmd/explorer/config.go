package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/compute"
)

// config holds everything a computation request needs. Center and scale
// are decimal strings so deep zoom coordinates survive at full precision.
type config struct {
	X          string         `toml:"x"`
	Y          string         `toml:"y"`
	Scale      string         `toml:"scale"`
	Landmark   string         `toml:"landmark"`
	Width      uint32         `toml:"width"`
	Height     uint32         `toml:"height"`
	Iterations uint64         `toml:"iterations"`
	Precision  uint           `toml:"precision"`
	Backend    mandel.Backend `toml:"backend"`
	Workers    int            `toml:"workers"`
	Sequential bool           `toml:"sequential"`
	Colors     string         `toml:"colors"`
	Listen     string         `toml:"listen"`
}

func defaultConfig() config {
	return config{
		X:          "-0.5",
		Y:          "0",
		Scale:      "1.75",
		Width:      1600,
		Height:     900,
		Iterations: 500,
		Precision:  mandel.DefaultPrecision,
		Backend:    mandel.SimdF64x4,
		Workers:    8,
		Colors:     "linear",
		Listen:     ":8080",
	}
}

// addFlags registers a flag for every config field, defaulting to cfg.
func addFlags(fs *pflag.FlagSet, cfg *config) {
	fs.StringVar(&cfg.X, "x", cfg.X, "real part of the viewport center")
	fs.StringVar(&cfg.Y, "y", cfg.Y, "imaginary part of the viewport center")
	fs.StringVar(&cfg.Scale, "scale", cfg.Scale, "viewport height in plane units")
	fs.StringVar(&cfg.Landmark, "landmark", cfg.Landmark, "named region overriding center and scale (full, seahorse, elephant, spiral, dragon)")
	fs.Uint32Var(&cfg.Width, "width", cfg.Width, "width in pixels")
	fs.Uint32Var(&cfg.Height, "height", cfg.Height, "height in pixels")
	fs.Uint64Var(&cfg.Iterations, "iterations", cfg.Iterations, "iteration limit")
	fs.UintVar(&cfg.Precision, "precision", cfg.Precision, "significand bits of the precision backend")
	fs.Var(&cfg.Backend, "backend", "single, double, simd-f32x8, simd-f64x4 or precision")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker pool size")
	fs.BoolVar(&cfg.Sequential, "sequential", cfg.Sequential, "compute rows on a single goroutine")
	fs.StringVar(&cfg.Colors, "colors", cfg.Colors, "linear or palette")
	fs.StringVar(&cfg.Listen, "listen", cfg.Listen, "serve address")
}

// loadConfig starts from the defaults, applies the TOML file at path if
// any, then every flag the user set explicitly.
func loadConfig(path string, fs *pflag.FlagSet, flags config) (config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "x":
			cfg.X = flags.X
		case "y":
			cfg.Y = flags.Y
		case "scale":
			cfg.Scale = flags.Scale
		case "landmark":
			cfg.Landmark = flags.Landmark
		case "width":
			cfg.Width = flags.Width
		case "height":
			cfg.Height = flags.Height
		case "iterations":
			cfg.Iterations = flags.Iterations
		case "precision":
			cfg.Precision = flags.Precision
		case "backend":
			cfg.Backend = flags.Backend
		case "workers":
			cfg.Workers = flags.Workers
		case "sequential":
			cfg.Sequential = flags.Sequential
		case "colors":
			cfg.Colors = flags.Colors
		case "listen":
			cfg.Listen = flags.Listen
		}
	})

	if cfg.Landmark != "" {
		r, ok := mandel.Landmarks[cfg.Landmark]
		if !ok {
			return config{}, fmt.Errorf("unknown landmark %q", cfg.Landmark)
		}
		x, y, scale := r.Viewport()
		cfg.X = strconv.FormatFloat(x, 'g', -1, 64)
		cfg.Y = strconv.FormatFloat(y, 'g', -1, 64)
		cfg.Scale = strconv.FormatFloat(scale, 'g', -1, 64)
	}
	return cfg, nil
}

func (cfg config) settings() (compute.Settings, error) {
	s, err := compute.ParseSettings(cfg.X, cfg.Y, cfg.Scale, cfg.Width, cfg.Height, cfg.Backend,
		mandel.BoundsSettings{Limit: cfg.Iterations, Precision: cfg.Precision})
	if err != nil {
		return compute.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return compute.Settings{}, err
	}
	return s, nil
}

// pool returns the pool described by cfg, nil for sequential runs.
func (cfg config) pool() *compute.Pool {
	if cfg.Sequential {
		return nil
	}
	return compute.NewPool(cfg.Workers)
}
