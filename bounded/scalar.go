package bounded

import mandel "github.com/marben/mandel_explorer"

// Single iterates one point in float32.
type Single struct{}

func (Single) BatchWidth() int { return 1 }

func (Single) CheckBounded(xs, ys []float64, settings mandel.BoundsSettings, out []mandel.Bound) {
	out[0] = scalar(float32(xs[0]), float32(ys[0]), settings.Limit)
}

// Double iterates one point in float64.
type Double struct{}

func (Double) BatchWidth() int { return 1 }

func (Double) CheckBounded(xs, ys []float64, settings mandel.BoundsSettings, out []mandel.Bound) {
	out[0] = scalar(xs[0], ys[0], settings.Limit)
}

// scalar returns as soon as the orbit escapes.
func scalar[F float](cr, ci F, limit uint64) mandel.Bound {
	var zr, zi, norm F
	for iter := range limit {
		zr, zi, norm = step(zr, zi, cr, ci)
		// NaN fails the comparison and counts as escaped
		if !(norm < escapeNorm) {
			return mandel.Unbounded(iter)
		}
	}
	return mandel.Bounded()
}
