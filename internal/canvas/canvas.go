// Package canvas prepares the background image for compositing: scale
// to cover the target resolution, then crop to exactly that size.
package canvas

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Anchor selects which part of the cover-scaled image survives the crop.
type Anchor string

const (
	// AnchorCenter crops the overflow evenly from both sides.
	AnchorCenter Anchor = "center"
	// AnchorTopLeft keeps the top-left corner and crops right/bottom.
	AnchorTopLeft Anchor = "top-left"
)

// Fill scales img so it covers targetWidth x targetHeight while keeping
// its aspect ratio, then crops at the given anchor. The result is always
// exactly the target size.
func Fill(img image.Image, targetWidth, targetHeight int, anchor Anchor) (*image.NRGBA, error) {
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", targetWidth, targetHeight)
	}

	a := imaging.Center
	if anchor == AnchorTopLeft {
		a = imaging.TopLeft
	}

	return imaging.Fill(img, targetWidth, targetHeight, a, imaging.Lanczos), nil
}

// Open decodes an image from disk.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}
	return img, nil
}

// Save writes an image to disk; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving image %s: %w", path, err)
	}
	return nil
}
