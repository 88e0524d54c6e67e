package mandel

import "fmt"

// Bound is the escape-time result for a single point of the complex plane.
// The zero value is Bounded.
type Bound struct {
	escaped bool
	n       uint64
}

// Bounded returns the result for an orbit that survived the iteration limit.
func Bounded() Bound { return Bound{} }

// Unbounded returns the result for an orbit that exceeded the escape radius
// after n non-escaping iterations.
func Unbounded(n uint64) Bound { return Bound{escaped: true, n: n} }

// IsBounded reports whether the orbit stayed within the escape radius.
func (b Bound) IsBounded() bool { return !b.escaped }

// Escape returns the escape iteration and true for unbounded points.
func (b Bound) Escape() (n uint64, ok bool) {
	return b.n, b.escaped
}

func (b Bound) String() string {
	if !b.escaped {
		return "Bounded"
	}
	return fmt.Sprintf("Unbounded(%d)", b.n)
}

// BoundsSettings parametrize a single bounds check.
// Precision is only read by the arbitrary-precision backend.
type BoundsSettings struct {
	Limit     uint64
	Precision uint
}

// DefaultPrecision matches the significand width of a float64.
const DefaultPrecision = 53

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Viewport returns the center and the scale (plane height) of the region.
func (r Region) Viewport() (x, y, scale float64) {
	return (r.Xmin + r.Xmax) / 2, (r.Ymin + r.Ymax) / 2, r.Ymax - r.Ymin
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Whole set, the view the explorer opens with
	FullSet = Region{
		Xmin: -0.5 - 1.75*16/9/2,
		Xmax: -0.5 + 1.75*16/9/2,
		Ymin: -0.875,
		Ymax: 0.875,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}
)

// Landmarks indexes the classic regions by the name used on the command line.
var Landmarks = map[string]Region{
	"full":     FullSet,
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"spiral":   SpiralMinibrot,
	"dragon":   ValleyOfTheDragon,
}
