package compute

import (
	"errors"
	"fmt"
	"math/big"

	mandel "github.com/marben/mandel_explorer"
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid compute settings")

// Settings describe one computation: the viewport centered at (X, Y) whose
// plane height is Scale, sampled at Width×Height pixels.
// The big.Float values are never modified by the engine.
type Settings struct {
	X, Y    *big.Float
	Scale   *big.Float
	Width   uint32
	Height  uint32
	Backend mandel.Backend
	Bounds  mandel.BoundsSettings
}

// NewSettings builds settings from float64 coordinates, stored at
// bounds.Precision bits.
func NewSettings(x, y, scale float64, width, height uint32, backend mandel.Backend, bounds mandel.BoundsSettings) Settings {
	prec := precisionOf(bounds)
	return Settings{
		X:       new(big.Float).SetPrec(prec).SetFloat64(x),
		Y:       new(big.Float).SetPrec(prec).SetFloat64(y),
		Scale:   new(big.Float).SetPrec(prec).SetFloat64(scale),
		Width:   width,
		Height:  height,
		Backend: backend,
		Bounds:  bounds,
	}
}

// ParseSettings is NewSettings for decimal strings, which keeps deep zoom
// coordinates exact up to bounds.Precision bits.
func ParseSettings(x, y, scale string, width, height uint32, backend mandel.Backend, bounds mandel.BoundsSettings) (Settings, error) {
	prec := precisionOf(bounds)
	parse := func(name, v string) (*big.Float, error) {
		f, _, err := big.ParseFloat(v, 10, prec, big.ToNearestEven)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", name, v, err)
		}
		return f, nil
	}

	s := Settings{Width: width, Height: height, Backend: backend, Bounds: bounds}
	var err error
	if s.X, err = parse("x", x); err != nil {
		return Settings{}, err
	}
	if s.Y, err = parse("y", y); err != nil {
		return Settings{}, err
	}
	if s.Scale, err = parse("scale", scale); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks what Set assumes without checking.
func (s Settings) Validate() error {
	switch {
	case s.Width == 0 || s.Height == 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidSettings, s.Width, s.Height)
	case s.X == nil || s.Y == nil || s.Scale == nil:
		return fmt.Errorf("%w: missing center or scale", ErrInvalidSettings)
	case s.Scale.Sign() < 0:
		return fmt.Errorf("%w: negative scale %s", ErrInvalidSettings, s.Scale.Text('g', 10))
	case s.Backend < mandel.Single || s.Backend > mandel.Precision:
		return fmt.Errorf("%w: %s", ErrInvalidSettings, s.Backend)
	}
	return nil
}

func precisionOf(bounds mandel.BoundsSettings) uint {
	if bounds.Precision == 0 {
		return mandel.DefaultPrecision
	}
	return bounds.Precision
}
