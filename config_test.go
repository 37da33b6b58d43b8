package pluton

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeConfigDefaults(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != 600 || cfg.FrameRate != DefaultFrameRate {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Camera != DefaultCameraOptions() {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if !cfg.Grid || !cfg.Axes || cfg.Filter {
		t.Errorf("toggles = grid %v axes %v filter %v", cfg.Grid, cfg.Axes, cfg.Filter)
	}
}

func TestDecodeConfig(t *testing.T) {
	const src = `
title = "beam"
width = 1024
height = 768
frame_rate = 30
drawing = "rhs"
grid = false
filter = true

[viewbox]
Width = 400
Height = 300

[camera]
max_scale = 8
damping = 0.5

[params]
width = 250.0
label = "RHS"
hatched = true
`
	cfg, err := DecodeConfig(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "beam" || cfg.Drawing != "rhs" || cfg.FrameRate != 30 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Grid || !cfg.Axes || !cfg.Filter {
		t.Errorf("toggles = grid %v axes %v filter %v", cfg.Grid, cfg.Axes, cfg.Filter)
	}
	if cfg.ViewBox == nil || cfg.ViewBox.Width != 400 {
		t.Errorf("viewbox = %+v", cfg.ViewBox)
	}
	if cfg.Camera.MaxScale != 8 || cfg.Camera.Damping != 0.5 || cfg.Camera.MinScale != 1 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Params["width"] != 250.0 || cfg.Params["label"] != "RHS" || cfg.Params["hatched"] != true {
		t.Errorf("params = %v", cfg.Params)
	}

	opts := cfg.Options()
	if opts.Measured.Width != 1024 || opts.FrameRate != 30 || opts.ViewBox != cfg.ViewBox {
		t.Errorf("options = %+v", opts)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name, src string
	}{
		{"syntax", "width = "},
		{"nested param", "[params.inner]\na = 1"},
		{"array param", "[params]\nsizes = [1, 2]"},
		{"size", "width = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeConfig(strings.NewReader(tt.src)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	_, err := DecodeConfig(strings.NewReader("[params]\nsizes = [1, 2]"))
	if !errors.Is(err, ErrNotFlat) {
		t.Errorf("err = %v, want ErrNotFlat", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pluton.toml")
	if err := os.WriteFile(path, []byte("title = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "x" {
		t.Errorf("title = %q", cfg.Title)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestConfigApplyPresentation(t *testing.T) {
	s := newTestScene(t, nil)
	cfg := DefaultConfig()
	cfg.Axes = false
	cfg.Filter = true
	cfg.ApplyPresentation(s)

	if !s.Background().GridVisible() || s.Background().AxesVisible() || !s.FilterEnabled() {
		t.Errorf("grid %v axes %v filter %v", s.Background().GridVisible(), s.Background().AxesVisible(), s.FilterEnabled())
	}
}
