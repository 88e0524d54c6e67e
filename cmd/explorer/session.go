package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/compute"
	"github.com/marben/mandel_explorer/render"
)

// viewRequest is the JSON a client sends to ask for a viewport.
// Zero fields fall back to the server configuration.
type viewRequest struct {
	X          string          `json:"x,omitempty"`
	Y          string          `json:"y,omitempty"`
	Scale      string          `json:"scale,omitempty"`
	Width      uint32          `json:"width,omitempty"`
	Height     uint32          `json:"height,omitempty"`
	Iterations uint64          `json:"iterations,omitempty"`
	Precision  uint            `json:"precision,omitempty"`
	Backend    *mandel.Backend `json:"backend,omitempty"`
	Colors     string          `json:"colors,omitempty"`
}

func (req viewRequest) config(defaults config) config {
	cfg := defaults
	cfg.Landmark = ""
	if req.X != "" {
		cfg.X = req.X
	}
	if req.Y != "" {
		cfg.Y = req.Y
	}
	if req.Scale != "" {
		cfg.Scale = req.Scale
	}
	if req.Width != 0 {
		cfg.Width = req.Width
	}
	if req.Height != 0 {
		cfg.Height = req.Height
	}
	if req.Iterations != 0 {
		cfg.Iterations = req.Iterations
	}
	if req.Precision != 0 {
		cfg.Precision = req.Precision
	}
	if req.Backend != nil {
		cfg.Backend = *req.Backend
	}
	if req.Colors != "" {
		cfg.Colors = req.Colors
	}
	return cfg
}

// Upper bounds on what a websocket client may request.
const (
	maxPixels     = 1600 * 900 * 4
	maxIterations = 1_000_000
	maxPrecision  = 4096
)

var errOverLimit = errors.New("request over server limit")

// checkLimits rejects configurations a client is not allowed to request.
func checkLimits(cfg config) error {
	switch {
	case uint64(cfg.Width)*uint64(cfg.Height) > maxPixels:
		return fmt.Errorf("%w: size %dx%d exceeds %d pixels", errOverLimit, cfg.Width, cfg.Height, maxPixels)
	case cfg.Iterations > maxIterations:
		return fmt.Errorf("%w: %d iterations exceeds %d", errOverLimit, cfg.Iterations, maxIterations)
	case cfg.Precision > maxPrecision:
		return fmt.Errorf("%w: precision %d exceeds %d bits", errOverLimit, cfg.Precision, maxPrecision)
	}
	return nil
}

// message is what the server sends as JSON. A "frame" message is followed
// by one binary message holding Width*Height RGBA pixels, row-major.
type message struct {
	Type   string `json:"type"` // start, progress, end, frame, busy, error
	Row    uint32 `json:"row,omitempty"`
	Done   uint32 `json:"done,omitempty"`
	Total  uint32 `json:"total,omitempty"`
	Width  uint32 `json:"width,omitempty"`
	Height uint32 `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

func eventMessage(ev mandel.ComputeEvent) message {
	switch ev.Kind {
	case mandel.EventStart:
		return message{Type: "start"}
	case mandel.EventProgress:
		return message{Type: "progress", Row: ev.Row, Done: ev.Done, Total: ev.Total}
	}
	return message{Type: "end"}
}

// session serves one websocket client. It runs at most one computation at
// a time; requests arriving while busy are answered with "busy".
type session struct {
	conn     *websocket.Conn
	pool     *compute.Pool
	defaults config

	m    sync.Mutex
	busy bool

	wg sync.WaitGroup
}

func newSession(conn *websocket.Conn, pool *compute.Pool, defaults config) *session {
	return &session{conn: conn, pool: pool, defaults: defaults}
}

// serve reads requests until the connection fails.
func (ss *session) serve(ctx context.Context) error {
	for {
		var req viewRequest
		if err := wsjson.Read(ctx, ss.conn, &req); err != nil {
			return err
		}

		if !ss.acquire() {
			log.Printf("session busy, %d of %d pool workers active", ss.pool.Active(), ss.pool.Size())
			if err := wsjson.Write(ctx, ss.conn, message{Type: "busy"}); err != nil {
				return err
			}
			continue
		}

		cfg := req.config(ss.defaults)
		var settings compute.Settings
		err := checkLimits(cfg)
		if err == nil {
			settings, err = cfg.settings()
		}
		colorer, ok := render.ColorerByName(cfg.Colors, cfg.Iterations)
		if err == nil && !ok {
			err = fmt.Errorf("unknown colors %q", cfg.Colors)
		}
		if err != nil {
			ss.release()
			if err := wsjson.Write(ctx, ss.conn, message{Type: "error", Error: err.Error()}); err != nil {
				return err
			}
			continue
		}

		ss.wg.Add(1)
		go func() {
			defer ss.wg.Done()
			defer ss.release()
			if err := ss.compute(ctx, settings, colorer); err != nil {
				log.Printf("compute: %v", err)
			}
		}()
	}
}

// compute streams the lifecycle events, then the frame. A failed
// computation sends "error" instead and the client keeps its last frame.
func (ss *session) compute(ctx context.Context, settings compute.Settings, colorer render.Colorer) error {
	events := compute.NewMailbox()
	job := compute.Start(ss.pool, events, settings)
	go func() {
		job.Wait()
		events.Close()
	}()

	var writeErr error
	for ev := range events.C() {
		// keep draining after a failed write so the mailbox can finish
		if writeErr == nil {
			writeErr = wsjson.Write(ctx, ss.conn, eventMessage(ev))
		}
	}
	if writeErr != nil {
		return fmt.Errorf("write event: %w", writeErr)
	}

	set, err := job.Wait()
	if err != nil {
		if werr := wsjson.Write(ctx, ss.conn, message{Type: "error", Error: err.Error()}); werr != nil {
			return werr
		}
		return err
	}

	img := render.Image(set, colorer)
	w, h := set.Size()
	if err := wsjson.Write(ctx, ss.conn, message{Type: "frame", Width: w, Height: h}); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if err := ss.conn.Write(ctx, websocket.MessageBinary, img.Pix); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (ss *session) acquire() bool {
	ss.m.Lock()
	defer ss.m.Unlock()
	if ss.busy {
		return false
	}
	ss.busy = true
	return true
}

func (ss *session) release() {
	ss.m.Lock()
	ss.busy = false
	ss.m.Unlock()
}

// wait blocks until the running computation, if any, has finished.
func (ss *session) wait() {
	ss.wg.Wait()
}
