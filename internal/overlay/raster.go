package overlay

import (
	"fmt"
	"image"
	"os"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

const fontDPI = 72

// LoadFont parses the overlay font. When path is empty, or the file
// cannot be read or parsed, the embedded Go Mono face is used instead;
// a custom font is an optional nicety, not a requirement.
func LoadFont(path string) *truetype.Font {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if f, perr := freetype.ParseFont(data); perr == nil {
				return f
			} else {
				log.Debugf("ignoring unparseable font %s: %v", path, perr)
			}
		} else {
			log.Debugf("ignoring unreadable font %s: %v", path, err)
		}
	}

	f, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		// The embedded font is a compile-time constant; this cannot
		// happen outside of a corrupted toolchain.
		panic(fmt.Sprintf("parsing embedded font: %v", err))
	}
	return f
}

// Rasterize draws the layout's text blocks, white on transparent, into
// a pixel buffer matching the layout's dimensions. End-anchored blocks
// are right-aligned using real glyph advances from the face.
func Rasterize(l *Layout, ttf *truetype.Font) (*image.NRGBA, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("invalid layout dimensions %dx%d", l.Width, l.Height)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, l.Width, l.Height))

	for block := range l.Blocks() {
		face := truetype.NewFace(ttf, &truetype.Options{
			Size: float64(block.FontSize),
			DPI:  fontDPI,
		})
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.White,
			Face: face,
		}

		for i, line := range block.Lines {
			x := block.X
			if block.Anchor == AnchorEnd {
				x -= d.MeasureString(line).Ceil()
			}
			d.Dot = fixed.P(x, block.Y+i*block.LineHeight)
			d.DrawString(line)
		}
	}

	return dst, nil
}
