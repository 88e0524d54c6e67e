package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/coder/websocket"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marben/mandel_explorer/compute"
)

func newServeCmd(a *app) *cobra.Command {
	var static string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve computations to browser clients over websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runServe(ctx, a.cfg, static)
		},
	}
	cmd.Flags().StringVar(&static, "static", "./static", "directory served at /")
	return cmd
}

// runServe shares one worker pool between all connected clients.
func runServe(ctx context.Context, cfg config, static string) error {
	pool := compute.NewPool(cfg.Workers)
	defer pool.Close()

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           newServer(pool, cfg).handler(static),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on http://localhost%s", cfg.Listen)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type server struct {
	pool     *compute.Pool
	defaults config
}

func newServer(pool *compute.Pool, defaults config) *server {
	return &server{pool: pool, defaults: defaults}
}

// handler serves files from static (when set) and the /ws endpoint.
func (srv *server) handler(static string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.websocketHandler)
	if static != "" {
		mux.Handle("/", http.FileServer(http.Dir(static)))
	}
	return mux
}

// websocketHandler runs a session for the lifetime of the connection.
func (srv *server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // TODO: restrict once the viewer has a fixed origin
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	log.Printf("got connection from: %s", r.RemoteAddr)
	ss := newSession(c, srv.pool, srv.defaults)
	err = ss.serve(r.Context())
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Printf("client %s disconnected", r.RemoteAddr)
	default:
		log.Printf("session %s: %v", r.RemoteAddr, err)
	}
	ss.wait()
}
