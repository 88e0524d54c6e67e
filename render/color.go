// Package render turns computed sets into colors, RGBA frames and
// terminal previews.
package render

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	mandel "github.com/marben/mandel_explorer"
)

// Colorer maps a point's result to a display color.
type Colorer interface {
	Color(mandel.Bound) color.RGBA
}

var (
	Black = color.RGBA{A: 255}

	// Placeholder fills a set that has not been computed yet.
	Placeholder = color.RGBA{R: 0x3a, G: 0x3a, B: 0x6e, A: 255}
)

// DefaultReference is the escape count drawn at full intensity by Linear.
const DefaultReference = 500

// Linear draws bounded points black and unbounded ones in red with
// intensity n/Reference, clamped to full red.
type Linear struct {
	Reference uint64
}

func (l Linear) Color(b mandel.Bound) color.RGBA {
	n, ok := b.Escape()
	if !ok {
		return Black
	}
	ref := l.Reference
	if ref == 0 {
		ref = DefaultReference
	}
	v := math32.Min(float32(n)/float32(ref), 1)
	return color.RGBA{R: uint8(math32.Round(v * 255)), A: 255}
}

// Palette cycles the hue wheel every Cycle iterations.
type Palette struct {
	Cycle      uint64
	Saturation float64
	Value      float64
}

// DefaultPalette is a full saturation wheel repeating every 64 iterations.
var DefaultPalette = Palette{Cycle: 64, Saturation: 1, Value: 1}

func (p Palette) Color(b mandel.Bound) color.RGBA {
	n, ok := b.Escape()
	if !ok {
		return Black
	}
	cycle := max(p.Cycle, 1)
	hue := 360 * float64(n%cycle) / float64(cycle)
	r, g, bl := colorful.Hsv(hue, p.Saturation, p.Value).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}

// ColorerByName resolves the names accepted on the command line.
func ColorerByName(name string, reference uint64) (Colorer, bool) {
	switch name {
	case "linear", "":
		return Linear{Reference: reference}, true
	case "palette":
		return DefaultPalette, true
	}
	return nil, false
}
