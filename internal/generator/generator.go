// Package generator runs the full overlay pipeline: pick a quote,
// prepare the background for the displays, lay out and rasterize the
// text, composite, and hand the result to sway. One invocation does
// one wallpaper; concurrency only exists across processes, fenced by
// the state lock.
package generator

import (
	"fmt"

	"github.com/charmbracelet/log"

	"quotepaper/internal/canvas"
	"quotepaper/internal/geometry"
	"quotepaper/internal/ipc"
	"quotepaper/internal/overlay"
	"quotepaper/internal/quotes"
	"quotepaper/internal/state"
	"quotepaper/internal/sway"
)

// Options carries everything a generation run needs. Balance is nil
// when the feature is not configured; Tracker is nil when no status
// endpoint is being served.
type Options struct {
	Input    string
	Quotes   []quotes.Quote
	Balance  *quotes.Balance
	Padding  int
	FontPath string
	Store    *state.Store
	Tracker  *ipc.Tracker
}

func (o Options) stage(s string) {
	if o.Tracker != nil {
		o.Tracker.SetStage(s)
	}
}

// Run generates the overlaid wallpaper for opts.Input, applies it, and
// records the input as the carousel position. All failures bubble up
// to the caller; nothing in here retries.
func Run(opts Options) error {
	log.Infof("starting wallpaper generation for %s", opts.Input)

	quote, err := quotes.Pick(opts.Quotes)
	if err != nil {
		return err
	}
	log.Infof("selected quote: %q (author: %q)", quote.Text, quote.Author)

	var balanceText string
	if opts.Balance != nil {
		opts.stage("running balance command")
		balanceText, err = opts.Balance.Value()
		if err != nil {
			return err
		}
	}

	opts.stage("querying displays")
	displays, err := sway.ActiveOutputs()
	if err != nil {
		return err
	}
	log.Infof("found %d active display(s)", len(displays))
	for i, d := range displays {
		log.Infof("  display %d: %s (ratio %.3f)", i+1, d, d.Ratio())
	}

	opts.stage("resizing background")
	img, err := canvas.Open(opts.Input)
	if err != nil {
		return err
	}
	primary := displays[0]
	resized, err := canvas.Fill(img, primary.Width, primary.Height, canvas.AnchorCenter)
	if err != nil {
		return err
	}
	if err := opts.Store.EnsureStateDir(); err != nil {
		return err
	}
	tempPath := opts.Store.StatePath("background_temp.png")
	if err := canvas.Save(resized, tempPath); err != nil {
		return err
	}

	width := resized.Bounds().Dx()
	height := resized.Bounds().Dy()
	safe := geometry.SafeAreaFor(width, height, displays)
	log.Infof("safe area: %s (%.1f%% of image)", safe,
		float64(safe.Width*safe.Height)/float64(width*height)*100)

	opts.stage("rendering text overlay")
	layout := overlay.LayoutText(overlay.Params{
		Text:     quote.Text,
		Author:   quote.Author,
		Balance:  balanceText,
		Width:    width,
		Height:   height,
		SafeArea: safe,
		Padding:  opts.Padding,
	})
	textLayer, err := overlay.Rasterize(layout, overlay.LoadFont(opts.FontPath))
	if err != nil {
		return fmt.Errorf("rasterizing overlay: %w", err)
	}

	opts.stage("compositing")
	overlay.Composite(resized, textLayer)

	outputPath := opts.Store.StatePath("extended.png")
	if err := canvas.Save(resized, outputPath); err != nil {
		return err
	}

	opts.stage("applying wallpaper")
	if err := sway.SetWallpaper(outputPath); err != nil {
		return err
	}

	if err := opts.Store.SaveLastInput(opts.Input); err != nil {
		return err
	}

	log.Infof("wallpaper generation finished: %s", outputPath)
	return nil
}
