// explorer computes and displays escape-time views of the Mandelbrot set.
//
//	explorer render   preview a viewport in the terminal
//	explorer point    evaluate one coordinate on every backend
//	explorer bench    time the reference precision run
//	explorer serve    serve computations to a browser over websocket
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

// app carries what every subcommand shares.
type app struct {
	configPath string
	verbose    bool
	flags      config
	cfg        config
}

func newRootCmd() *cobra.Command {
	a := &app{flags: defaultConfig()}
	root := &cobra.Command{
		Use:           "explorer",
		Short:         "Mandelbrot set explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			cfg, err := loadConfig(a.configPath, cmd.Flags(), a.flags)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "TOML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	addFlags(pf, &a.flags)

	root.AddCommand(
		newRenderCmd(a),
		newPointCmd(a),
		newBenchCmd(a),
		newServeCmd(a),
	)
	return root
}
