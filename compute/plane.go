package compute

import (
	"math/big"

	mandel "github.com/marben/mandel_explorer"
)

// plane maps pixel indices to plane coordinates:
// (xStart + col*xStep, yStart + row*yStep). Row 0 is the smallest y.
type plane[F any] interface {
	x(col uint32) F
	y(row uint32) F
}

type floatPlane struct {
	xStart, xStep float64
	yStart, yStep float64
}

func newFloatPlane(s Settings) floatPlane {
	x, _ := s.X.Float64()
	y, _ := s.Y.Float64()
	scale, _ := s.Scale.Float64()
	w, h := float64(s.Width), float64(s.Height)

	aspect := w / h
	span := float64(scale * aspect)
	return floatPlane{
		xStart: x - span/2,
		xStep:  span / w,
		yStart: y - scale/2,
		yStep:  scale / h,
	}
}

func (p floatPlane) x(col uint32) float64 {
	return p.xStart + float64(float64(col)*p.xStep)
}

func (p floatPlane) y(row uint32) float64 {
	return p.yStart + float64(float64(row)*p.yStep)
}

// bigPlane performs the same operations as floatPlane, each rounded to prec.
type bigPlane struct {
	prec          uint
	xStart, xStep *big.Float
	yStart, yStep *big.Float
}

var two = big.NewFloat(2)

func newBigPlane(s Settings) bigPlane {
	prec := precisionOf(s.Bounds)
	f := func() *big.Float { return new(big.Float).SetPrec(prec) }

	w := f().SetUint64(uint64(s.Width))
	h := f().SetUint64(uint64(s.Height))
	aspect := f().Quo(w, h)
	span := f().Mul(s.Scale, aspect)
	return bigPlane{
		prec:   prec,
		xStart: f().Sub(s.X, f().Quo(span, two)),
		xStep:  f().Quo(span, w),
		yStart: f().Sub(s.Y, f().Quo(s.Scale, two)),
		yStep:  f().Quo(s.Scale, h),
	}
}

func (p bigPlane) at(start, step *big.Float, i uint32) *big.Float {
	v := new(big.Float).SetPrec(p.prec).SetUint64(uint64(i))
	v.Mul(v, step)
	return v.Add(v, start)
}

func (p bigPlane) x(col uint32) *big.Float { return p.at(p.xStart, p.xStep, col) }

func (p bigPlane) y(row uint32) *big.Float { return p.at(p.yStart, p.yStep, row) }

// Coordinate returns the plane coordinate sampled for pixel (col, row) at
// the precision the backend of s computes with.
func Coordinate(s Settings, col, row uint32) (x, y *big.Float) {
	if s.Backend == mandel.Precision {
		p := newBigPlane(s)
		return p.x(col), p.y(row)
	}
	p := newFloatPlane(s)
	return big.NewFloat(p.x(col)), big.NewFloat(p.y(row))
}
