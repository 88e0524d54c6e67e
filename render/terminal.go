package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/muesli/termenv"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/compute"
)

// Terminal writes a preview of set using upper half blocks: every text
// row shows two sampled pixel rows, the top one as foreground and the
// bottom one as background. cols is the preview width in characters.
func Terminal(out *termenv.Output, set compute.ComputedSet, c Colorer, cols int) error {
	w, h := set.Size()
	if w == 0 || h == 0 || cols <= 0 {
		return nil
	}
	cols = min(cols, int(w))
	// pixels are roughly twice as tall as wide in a terminal cell
	rows := max(int(h)*cols/int(w), 2) &^ 1

	sample := func(cx, cy int) color.RGBA {
		if !set.Ready() {
			return Placeholder
		}
		col := uint32(cx * int(w) / cols)
		row := uint32(cy * int(h) / rows)
		return c.Color(set.At(col, row))
	}

	var sb strings.Builder
	for cy := 0; cy < rows; cy += 2 {
		for cx := range cols {
			top, bottom := sample(cx, cy), sample(cx, cy+1)
			sb.WriteString(out.String("▀").
				Foreground(out.Color(hex(top))).
				Background(out.Color(hex(bottom))).
				String())
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(out, sb.String())
	return err
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Bar renders a text progress bar of the given width for fraction in [0, 1].
func Bar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) +
		fmt.Sprintf("] %3.0f%%", fraction*100)
}

// Progress redraws a progress bar line on out for every event until events
// is closed. The line is terminated on End, or on close if End never arrived.
func Progress(out *termenv.Output, events <-chan mandel.ComputeEvent, width int) {
	open := false
	for ev := range events {
		out.ClearLine()
		fmt.Fprintf(out, "\r%s", Bar(ev.Fraction(), width))
		open = ev.Kind != mandel.EventEnd
		if !open {
			fmt.Fprintln(out)
		}
	}
	if open {
		fmt.Fprintln(out)
	}
}
