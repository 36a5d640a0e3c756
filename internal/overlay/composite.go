package overlay

import (
	"fmt"
	"image"
)

// Composite blends the text layer onto the background in place using
// straight alpha: out = text*a + bg*(1-a) per RGB channel. The
// background is treated as fully opaque and its alpha channel is never
// touched. Both buffers must have identical bounds; a mismatch is a
// programming error and panics.
func Composite(bg, text *image.NRGBA) {
	if bg.Bounds() != text.Bounds() {
		panic(fmt.Sprintf("compositor buffer size mismatch: background %v, text %v",
			bg.Bounds(), text.Bounds()))
	}

	for y := bg.Bounds().Min.Y; y < bg.Bounds().Max.Y; y++ {
		bi := bg.PixOffset(bg.Bounds().Min.X, y)
		ti := text.PixOffset(text.Bounds().Min.X, y)
		for x := bg.Bounds().Min.X; x < bg.Bounds().Max.X; x++ {
			a := text.Pix[ti+3]
			if a > 0 {
				af := float64(a) / 255.0
				for c := 0; c < 3; c++ {
					bg.Pix[bi+c] = uint8(float64(text.Pix[ti+c])*af + float64(bg.Pix[bi+c])*(1-af))
				}
			}
			bi += 4
			ti += 4
		}
	}
}
