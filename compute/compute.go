// Package compute turns a viewport into a grid of escape-time results,
// sequentially or one row per task on a caller-owned Pool.
package compute

import (
	"fmt"
	"log/slog"
	"math/big"
	"time"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/bounded"
)

// RowError reports a row whose task failed instead of delivering its data.
type RowError struct {
	Row   uint32
	Panic any
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: task panicked: %v", e.Row, e.Panic)
}

// Set computes the grid described by s.
//
// With a nil pool rows are computed in order on the calling goroutine.
// Otherwise every row is a separate pool task and rows are reassembled by
// index; Progress events then follow completion order.
// obs may be nil. It receives Start, one Progress per row and End.
//
// Set does not validate s, see Settings.Validate. A failed row or a closed
// pool aborts the computation and no End event is sent.
func Set(pool *Pool, obs mandel.Observer, s Settings) (ComputedSet, error) {
	if obs == nil {
		obs = discard{}
	}

	switch s.Backend {
	case mandel.Single:
		return run[float64](pool, obs, s, newFloatPlane(s), bounded.Single{})
	case mandel.Double:
		return run[float64](pool, obs, s, newFloatPlane(s), bounded.Double{})
	case mandel.SimdF32x8:
		return run[float64](pool, obs, s, newFloatPlane(s), bounded.F32x8{})
	case mandel.SimdF64x4:
		return run[float64](pool, obs, s, newFloatPlane(s), bounded.F64x4{})
	case mandel.Precision:
		return run[*big.Float](pool, obs, s, newBigPlane(s), bounded.Precision{})
	}
	return EmptySet(s.Width, s.Height), fmt.Errorf("%w: %s", ErrInvalidSettings, s.Backend)
}

type rowResult struct {
	y   uint32
	row []mandel.Bound
	err error
}

func run[F any](pool *Pool, obs mandel.Observer, s Settings, pl plane[F], chk bounded.Checker[F]) (ComputedSet, error) {
	start := time.Now()
	w, h := s.Width, s.Height
	slog.Debug("compute: start", "backend", s.Backend, "width", w, "height", h,
		"limit", s.Bounds.Limit, "parallel", pool != nil)

	obs.Send(mandel.StartEvent())
	output := make([]mandel.Bound, int(w)*int(h))

	if pool == nil {
		for y := range h {
			row := output[int(y)*int(w) : int(y+1)*int(w)]
			computeRow(pl, chk, s.Bounds, y, row)
			obs.Send(mandel.ProgressEvent(y, y+1, h))
		}
	} else {
		// buffered so tasks never block, even after we stop draining
		results := make(chan rowResult, h)
		for y := range h {
			err := pool.Submit(func() {
				defer func() {
					if r := recover(); r != nil {
						results <- rowResult{y: y, err: &RowError{Row: y, Panic: r}}
					}
				}()
				row := make([]mandel.Bound, w)
				computeRow(pl, chk, s.Bounds, y, row)
				results <- rowResult{y: y, row: row}
			})
			if err != nil {
				return EmptySet(w, h), fmt.Errorf("submit row %d: %w", y, err)
			}
		}
		for n := range h {
			r := <-results
			if r.err != nil {
				return EmptySet(w, h), r.err
			}
			copy(output[int(r.y)*int(w):], r.row)
			obs.Send(mandel.ProgressEvent(r.y, n+1, h))
		}
	}

	obs.Send(mandel.EndEvent())
	slog.Debug("compute: done", "backend", s.Backend, "elapsed", time.Since(start))
	return NewComputedSet(w, h, output), nil
}

// computeRow fills out with row y in chunks of the checker's batch width.
// A final partial chunk repeats the last column in the spare lanes and
// their results are dropped.
func computeRow[F any](pl plane[F], chk bounded.Checker[F], bounds mandel.BoundsSettings, y uint32, out []mandel.Bound) {
	k := chk.BatchWidth()
	xs := make([]F, k)
	ys := make([]F, k)
	batch := make([]mandel.Bound, k)

	yy := pl.y(y)
	for i := range ys {
		ys[i] = yy
	}
	last := len(out) - 1
	for x0 := 0; x0 < len(out); x0 += k {
		for i := range k {
			xs[i] = pl.x(uint32(min(x0+i, last)))
		}
		chk.CheckBounded(xs, ys, bounds, batch)
		copy(out[x0:], batch)
	}
}

type discard struct{}

func (discard) Send(mandel.ComputeEvent) {}
