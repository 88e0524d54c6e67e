package render

import (
	"image"
	"image/draw"

	"github.com/marben/mandel_explorer/compute"
)

// Image draws set into a new RGBA frame of the set's size. An empty set
// gives a frame filled with Placeholder.
func Image(set compute.ComputedSet, c Colorer) *image.RGBA {
	w, h := set.Size()
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	if !set.Ready() {
		draw.Draw(img, img.Bounds(), image.NewUniform(Placeholder), image.Point{}, draw.Src)
		return img
	}
	for i, b := range set.All() {
		img.SetRGBA(i%int(w), i/int(w), c.Color(b))
	}
	return img
}
