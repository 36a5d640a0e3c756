// Package geometry computes which part of a wallpaper survives the
// compositor's "fill" mode on every connected display. Fill scales the
// image up until it covers the whole output and then center-crops the
// overflow, so each display sees a different sub-rectangle of the image.
package geometry

import "fmt"

// Display is the pixel resolution of one active output.
type Display struct {
	Width  int
	Height int
}

func (d Display) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("display dimensions must be positive, got %dx%d", d.Width, d.Height)
	}
	return nil
}

// Ratio returns the display's aspect ratio (width over height).
func (d Display) Ratio() float64 {
	return float64(d.Width) / float64(d.Height)
}

func (d Display) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// DisplaySet is the list of active outputs in query order. Order only
// matters for logging; the geometry treats every member the same.
type DisplaySet []Display

func (ds DisplaySet) Validate() error {
	for i, d := range ds {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("display %d: %w", i, err)
		}
	}
	return nil
}

// SafeArea is a rectangle in image coordinates. Width or Height may be
// zero when the displays share no common visible region; that is a
// legitimate (if unhelpful) outcome, not an error.
type SafeArea struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (s SafeArea) String() string {
	return fmt.Sprintf("x=%d y=%d w=%d h=%d", s.X, s.Y, s.Width, s.Height)
}

// SafeAreaFor returns the sub-rectangle of a imgWidth x imgHeight image
// that stays visible on every display in the set under fill scaling.
//
// For each display the image is scaled to cover the output and then
// center-cropped; the surviving region is mapped back into image
// coordinates and intersected with the running result. An empty display
// set yields the full image. Pixel coordinates are truncated, never
// rounded, and an image whose ratio exactly matches the display is
// treated as the taller case (scaled to the display's width).
func SafeAreaFor(imgWidth, imgHeight int, displays DisplaySet) SafeArea {
	imgRatio := float64(imgWidth) / float64(imgHeight)

	minX, minY := 0, 0
	maxX, maxY := imgWidth, imgHeight

	for _, d := range displays {
		var scaledWidth, xOffset, yOffset int

		if imgRatio > d.Ratio() {
			// Image is wider than the display; fill crops horizontally.
			scaledWidth = int(float64(d.Height) * imgRatio)
			xOffset = (scaledWidth - d.Width) / 2
		} else {
			// Image is taller (or an exact ratio match); fill crops vertically.
			scaledWidth = d.Width
			scaledHeight := int(float64(d.Width) / imgRatio)
			yOffset = (scaledHeight - d.Height) / 2
		}

		// Map the display's viewport back into image coordinates.
		scale := float64(imgWidth) / float64(scaledWidth)
		cropX := int(float64(xOffset) * scale)
		cropY := int(float64(yOffset) * scale)
		cropXEnd := cropX + int(float64(d.Width)*scale)
		cropYEnd := cropY + int(float64(d.Height)*scale)

		minX = max(minX, cropX)
		minY = max(minY, cropY)
		maxX = min(maxX, cropXEnd)
		maxY = min(maxY, cropYEnd)
	}

	return SafeArea{
		X:      minX,
		Y:      minY,
		Width:  max(maxX-minX, 0),
		Height: max(maxY-minY, 0),
	}
}
