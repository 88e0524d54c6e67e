package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/compute"
)

// benchConfig is the reference run: half of the default resolution on the
// precision backend at float64 width, computed sequentially.
func benchConfig() config {
	cfg := defaultConfig()
	cfg.Width, cfg.Height = 1600/2, 900/2
	cfg.Backend = mandel.Precision
	cfg.Iterations = 250
	cfg.Precision = mandel.DefaultPrecision
	cfg.Sequential = true
	return cfg
}

func newBenchCmd(a *app) *cobra.Command {
	var useFlags bool
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time a computation and print the elapsed seconds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := benchConfig()
			if useFlags {
				cfg = a.cfg
			}
			return runBench(os.Stdout, cfg)
		},
	}
	cmd.Flags().BoolVar(&useFlags, "custom", false, "time the configured viewport instead of the reference run")
	return cmd
}

func runBench(w io.Writer, cfg config) error {
	settings, err := cfg.settings()
	if err != nil {
		return err
	}
	pool := cfg.pool()
	if pool != nil {
		defer pool.Close()
	}

	log.Printf("bench: %dx%d %s, %d iterations, %d bits", cfg.Width, cfg.Height, cfg.Backend, cfg.Iterations, cfg.Precision)
	start := time.Now()
	if _, err := compute.Set(pool, nil, settings); err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	_, err = fmt.Fprintf(w, "%f\n", time.Since(start).Seconds())
	return err
}
