package bounded

import (
	"math/big"

	mandel "github.com/marben/mandel_explorer"
)

// Precision iterates one point with big.Float components whose significand
// is settings.Precision bits wide (DefaultPrecision when zero).
//
// The square is expanded component-wise with one rounding per operation,
// the same order the float backends use, so at 53 bits it matches Double.
type Precision struct{}

func (Precision) BatchWidth() int { return 1 }

func (Precision) CheckBounded(xs, ys []*big.Float, settings mandel.BoundsSettings, out []mandel.Bound) {
	out[0] = precise(xs[0], ys[0], settings)
}

var four = big.NewFloat(escapeNorm)

func precise(cr, ci *big.Float, settings mandel.BoundsSettings) mandel.Bound {
	prec := settings.Precision
	if prec == 0 {
		prec = mandel.DefaultPrecision
	}
	var zr, zi, rr, ii, norm big.Float
	for _, f := range []*big.Float{&zr, &zi, &rr, &ii, &norm} {
		f.SetPrec(prec)
	}

	for iter := range settings.Limit {
		rr.Mul(&zr, &zr)
		ii.Mul(&zi, &zi)

		// imaginary part first while zr still holds the old value
		zi.Mul(&zr, &zi)
		zi.SetMantExp(&zi, 1)
		zi.Add(&zi, ci)

		zr.Sub(&rr, &ii)
		zr.Add(&zr, cr)

		rr.Mul(&zr, &zr)
		ii.Mul(&zi, &zi)
		norm.Add(&rr, &ii)
		if norm.Cmp(four) >= 0 {
			return mandel.Unbounded(iter)
		}
	}
	return mandel.Bounded()
}
