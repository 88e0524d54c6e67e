package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/bounded"
)

func newPointCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "point",
		Short: "Evaluate the center coordinate on every backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPoint(os.Stdout, a.cfg)
		},
	}
}

func runPoint(w io.Writer, cfg config) error {
	prec := cfg.Precision
	if prec == 0 {
		prec = mandel.DefaultPrecision
	}
	x, _, err := big.ParseFloat(cfg.X, 10, prec, big.ToNearestEven)
	if err != nil {
		return fmt.Errorf("parse x %q: %w", cfg.X, err)
	}
	y, _, err := big.ParseFloat(cfg.Y, 10, prec, big.ToNearestEven)
	if err != nil {
		return fmt.Errorf("parse y %q: %w", cfg.Y, err)
	}

	bounds := mandel.BoundsSettings{Limit: cfg.Iterations, Precision: prec}
	for _, b := range mandel.Backends() {
		if _, err := fmt.Fprintf(w, "%-11s %s\n", b, bounded.Point(b, x, y, bounds)); err != nil {
			return err
		}
	}
	return nil
}
