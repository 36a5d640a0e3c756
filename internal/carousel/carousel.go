// Package carousel walks the images of a directory in a stable order,
// keeping the traversal reproducible across invocations.
package carousel

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Direction selects how the carousel advances.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
	Random   Direction = "random"
)

var (
	ErrNoImages  = errors.New("no images found in directory")
	ErrOnlyImage = errors.New("only one image in directory")
)

// supportedExtensions mirrors the raster formats the generator can
// decode.
var supportedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".ico": true, ".tiff": true, ".tif": true,
}

// Navigator picks the next wallpaper relative to the current one. The
// filesystem is injected so tests can use an in-memory one.
type Navigator struct {
	fs   afero.Fs
	pick func(n int) int
}

func NewNavigator(fs afero.Fs) *Navigator {
	return &Navigator{fs: fs, pick: rand.IntN}
}

// Next returns the path of the image that follows current in the given
// direction. When directory is empty, the current image's parent is
// searched. Forward and backward wrap around; if current is not in the
// listing (a directory override pointing elsewhere), forward starts at
// the first image and backward at the last. Random picks uniformly
// among the other images and never returns current.
func (n *Navigator) Next(current string, dir Direction, directory string) (string, error) {
	parent := directory
	if parent == "" {
		parent = filepath.Dir(current)
	}

	images, err := n.listImages(parent)
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoImages, parent)
	}
	if len(images) == 1 {
		return "", fmt.Errorf("%w: %s", ErrOnlyImage, parent)
	}

	if dir == Random {
		candidates := images[:0]
		for _, p := range images {
			if p != current {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			return "", fmt.Errorf("%w: %s", ErrOnlyImage, parent)
		}
		return candidates[n.pick(len(candidates))], nil
	}

	idx := -1
	for i, p := range images {
		if p == current {
			idx = i
			break
		}
	}

	switch {
	case idx == -1 && dir == Backward:
		return images[len(images)-1], nil
	case idx == -1:
		return images[0], nil
	case dir == Backward:
		if idx == 0 {
			return images[len(images)-1], nil
		}
		return images[idx-1], nil
	default:
		return images[(idx+1)%len(images)], nil
	}
}

// listImages returns the supported image files of a directory, sorted
// by path for a stable traversal order.
func (n *Navigator) listImages(dir string) ([]string, error) {
	entries, err := afero.ReadDir(n.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if supportedExtensions[ext] {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}
