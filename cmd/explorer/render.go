package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/compute"
	"github.com/marben/mandel_explorer/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var cols int
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compute a viewport and preview it in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(a.cfg, cols)
		},
	}
	cmd.Flags().IntVar(&cols, "cols", 100, "preview width in characters")
	return cmd
}

func runRender(cfg config, cols int) error {
	settings, err := cfg.settings()
	if err != nil {
		return err
	}
	colorer, ok := render.ColorerByName(cfg.Colors, cfg.Iterations)
	if !ok {
		return fmt.Errorf("unknown colors %q", cfg.Colors)
	}

	pool := cfg.pool()
	if pool != nil {
		defer pool.Close()
	}

	stderr := termenv.NewOutput(os.Stderr)
	// the bar only needs the latest events, a slow terminal may drop some
	events := make(chan mandel.ComputeEvent, 64)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		render.Progress(stderr, events, 40)
	}()

	log.Printf("computing %dx%d with %s backend, %d iterations", cfg.Width, cfg.Height, cfg.Backend, cfg.Iterations)
	start := time.Now()
	set, err := compute.Set(pool, compute.ChanObserver(events), settings)
	close(events)
	<-progressDone
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	log.Printf("computed in %s", time.Since(start))

	return render.Terminal(termenv.NewOutput(os.Stdout), set, colorer, cols)
}
