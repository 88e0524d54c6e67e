package bounded

import mandel "github.com/marben/mandel_explorer"

const maxLanes = 8

// F32x8 iterates eight points in lockstep in float32.
type F32x8 struct{}

func (F32x8) BatchWidth() int { return 8 }

func (F32x8) CheckBounded(xs, ys []float64, settings mandel.BoundsSettings, out []mandel.Bound) {
	lanes[float32](8, xs, ys, settings.Limit, out)
}

// F64x4 iterates four points in lockstep in float64.
type F64x4 struct{}

func (F64x4) BatchWidth() int { return 4 }

func (F64x4) CheckBounded(xs, ys []float64, settings mandel.BoundsSettings, out []mandel.Bound) {
	lanes[float64](4, xs, ys, settings.Limit, out)
}

// lanes keeps explicit per-lane state instead of vector intrinsics.
// All lanes share the loop counter; a lane's count only advances until it
// escapes, and the escaped flag is sticky so a lane cannot resume.
func lanes[F float](width int, xs, ys []float64, limit uint64, out []mandel.Bound) {
	var (
		cr, ci, zr, zi [maxLanes]F
		count          [maxLanes]uint64
		escaped        [maxLanes]bool
	)
	for l := range width {
		cr[l], ci[l] = F(xs[l]), F(ys[l])
	}

	for range limit {
		live := false
		for l := range width {
			var norm F
			zr[l], zi[l], norm = step(zr[l], zi[l], cr[l], ci[l])
			escaped[l] = escaped[l] || !(norm < escapeNorm)
			if !escaped[l] {
				count[l]++
				live = true
			}
		}
		if !live {
			break
		}
	}

	for l := range width {
		if count[l] < limit {
			out[l] = mandel.Unbounded(count[l])
		} else {
			out[l] = mandel.Bounded()
		}
	}
}
