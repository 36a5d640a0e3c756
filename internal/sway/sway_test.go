package sway

import (
	"errors"
	"testing"

	"quotepaper/internal/geometry"
)

func TestParseOutputsFiltersInactive(t *testing.T) {
	raw := []byte(`[
		{"name": "eDP-1", "active": true, "current_mode": {"width": 2256, "height": 1504}},
		{"name": "DP-3", "active": false, "current_mode": {"width": 1920, "height": 1080}},
		{"name": "HDMI-A-1", "active": true, "current_mode": {"width": 2560, "height": 1440}}
	]`)

	got, err := parseOutputs(raw)
	if err != nil {
		t.Fatalf("parseOutputs: %v", err)
	}
	want := geometry.DisplaySet{{Width: 2256, Height: 1504}, {Width: 2560, Height: 1440}}
	if len(got) != len(want) {
		t.Fatalf("got %d displays, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("display %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseOutputsNoneActive(t *testing.T) {
	raw := []byte(`[{"name": "eDP-1", "active": false, "current_mode": {"width": 1920, "height": 1080}}]`)
	if _, err := parseOutputs(raw); !errors.Is(err, ErrNoActiveOutputs) {
		t.Errorf("parseOutputs error = %v, want ErrNoActiveOutputs", err)
	}
}

func TestParseOutputsRejectsGarbage(t *testing.T) {
	if _, err := parseOutputs([]byte(`{"not": "an array"}`)); err == nil {
		t.Error("non-array JSON accepted")
	}
	if _, err := parseOutputs([]byte(`[{"active": true, "current_mode": {"width": 0, "height": 1080}}]`)); err == nil {
		t.Error("zero-width mode accepted")
	}
}
