// Package bounded decides, point by point, whether an orbit of z -> z² + c
// stays bounded.
//
// Every backend follows the same rule: starting from z = 0 it updates z and
// then tests |z|² < 4. The first update failing the test at iteration k
// (counting from zero) gives Unbounded(k); surviving Limit updates gives
// Bounded. A Limit of 0 is always Bounded.
package bounded

import (
	"math/big"

	mandel "github.com/marben/mandel_explorer"
)

// Checker evaluates BatchWidth coordinates per call.
// xs, ys and out must hold at least BatchWidth elements.
type Checker[F any] interface {
	CheckBounded(xs, ys []F, settings mandel.BoundsSettings, out []mandel.Bound)
	BatchWidth() int
}

var (
	_ Checker[float64]    = Single{}
	_ Checker[float64]    = Double{}
	_ Checker[float64]    = F32x8{}
	_ Checker[float64]    = F64x4{}
	_ Checker[*big.Float] = Precision{}
)

// escapeNorm is the squared escape radius.
const escapeNorm = 4

type float interface {
	~float32 | ~float64
}

// step performs one z² + c update and returns the new |z|².
// The conversions round every product on its own, so no backend gets a
// fused multiply-add that another one lacks.
func step[F float](zr, zi, cr, ci F) (nr, ni, norm F) {
	nr = F(zr*zr) - F(zi*zi) + cr
	ni = F(2*zr*zi) + ci
	norm = F(nr*nr) + F(ni*ni)
	return nr, ni, norm
}

// Point evaluates a single coordinate on the given backend.
// Vector backends see the coordinate in every lane.
func Point(b mandel.Backend, x, y *big.Float, settings mandel.BoundsSettings) mandel.Bound {
	if b == mandel.Precision {
		var out [1]mandel.Bound
		Precision{}.CheckBounded([]*big.Float{x}, []*big.Float{y}, settings, out[:])
		return out[0]
	}

	var chk Checker[float64]
	switch b {
	case mandel.Single:
		chk = Single{}
	case mandel.SimdF32x8:
		chk = F32x8{}
	case mandel.SimdF64x4:
		chk = F64x4{}
	default:
		chk = Double{}
	}
	fx, _ := x.Float64()
	fy, _ := y.Float64()
	xs := make([]float64, chk.BatchWidth())
	ys := make([]float64, chk.BatchWidth())
	out := make([]mandel.Bound, chk.BatchWidth())
	for i := range xs {
		xs[i], ys[i] = fx, fy
	}
	chk.CheckBounded(xs, ys, settings, out)
	return out[0]
}
