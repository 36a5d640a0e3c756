// Package sway talks to the sway compositor through swaymsg: querying
// the active outputs and applying a wallpaper across all of them.
package sway

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/log"

	"quotepaper/internal/geometry"
)

// ErrNoActiveOutputs is returned when sway reports no usable displays.
var ErrNoActiveOutputs = errors.New("no active outputs found")

// output mirrors the fields of `swaymsg -t get_outputs` this tool
// cares about.
type output struct {
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	CurrentMode struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"current_mode"`
}

// runSwaymsg is swapped out in tests.
var runSwaymsg = func(args ...string) ([]byte, error) {
	out, err := exec.Command("swaymsg", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("swaymsg %v: %w", args, err)
	}
	return out, nil
}

// ActiveOutputs queries sway for the resolutions of all active
// displays, in query order.
func ActiveOutputs() (geometry.DisplaySet, error) {
	raw, err := runSwaymsg("-t", "get_outputs")
	if err != nil {
		return nil, err
	}
	return parseOutputs(raw)
}

func parseOutputs(raw []byte) (geometry.DisplaySet, error) {
	var outputs []output
	if err := json.Unmarshal(raw, &outputs); err != nil {
		return nil, fmt.Errorf("decoding swaymsg outputs: %w", err)
	}

	var displays geometry.DisplaySet
	for _, o := range outputs {
		if !o.Active {
			log.Debugf("skipping inactive output %s", o.Name)
			continue
		}
		displays = append(displays, geometry.Display{
			Width:  o.CurrentMode.Width,
			Height: o.CurrentMode.Height,
		})
	}
	if len(displays) == 0 {
		return nil, ErrNoActiveOutputs
	}
	if err := displays.Validate(); err != nil {
		return nil, fmt.Errorf("swaymsg reported an invalid mode: %w", err)
	}
	return displays, nil
}

// SetWallpaper applies the image at path to every output in fill mode.
func SetWallpaper(path string) error {
	if _, err := runSwaymsg("output", "*", "background", path, "fill"); err != nil {
		return fmt.Errorf("setting wallpaper: %w", err)
	}
	log.Infof("wallpaper set to %s", path)
	return nil
}
