package overlay

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestCompositeTransparentLayerIsIdentity(t *testing.T) {
	bg := solid(64, 48, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	before := bytes.Clone(bg.Pix)

	Composite(bg, image.NewNRGBA(image.Rect(0, 0, 64, 48)))

	if !bytes.Equal(bg.Pix, before) {
		t.Error("all-transparent text layer changed the background")
	}
}

func TestCompositeBlendMath(t *testing.T) {
	tests := []struct {
		name string
		bg   color.NRGBA
		text color.NRGBA
		want color.NRGBA
	}{
		{
			"opaque text replaces rgb",
			color.NRGBA{R: 10, G: 20, B: 30, A: 255},
			color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		},
		{
			"half alpha averages",
			color.NRGBA{R: 0, G: 0, B: 0, A: 255},
			color.NRGBA{R: 255, G: 255, B: 255, A: 128},
			// 255 * (128/255) = 128, truncated.
			color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		},
		{
			"background alpha preserved",
			color.NRGBA{R: 100, G: 100, B: 100, A: 77},
			color.NRGBA{R: 0, G: 0, B: 0, A: 255},
			color.NRGBA{R: 0, G: 0, B: 0, A: 77},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := solid(4, 4, tt.bg)
			Composite(bg, solid(4, 4, tt.text))
			if got := bg.NRGBAAt(2, 2); got != tt.want {
				t.Errorf("blend(%v over %v) = %v, want %v", tt.text, tt.bg, got, tt.want)
			}
		})
	}
}

func TestCompositePartialCoverage(t *testing.T) {
	bg := solid(8, 8, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	text := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	text.SetNRGBA(3, 3, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	Composite(bg, text)

	if got := bg.NRGBAAt(3, 3); got.R != 255 {
		t.Errorf("covered pixel = %v, want white", got)
	}
	if got := bg.NRGBAAt(4, 4); got.R != 50 {
		t.Errorf("uncovered pixel = %v, want untouched", got)
	}
}

func TestCompositeMismatchedBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mismatched buffer sizes did not panic")
		}
	}()
	Composite(solid(8, 8, color.NRGBA{A: 255}), image.NewNRGBA(image.Rect(0, 0, 8, 9)))
}
