package pluton

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Options configures a Scene. The zero value is usable: 60 fps, default
// camera tuning, a FrameQueue scheduler and the root's own viewBox.
type Options struct {
	// ViewBox forces the coordinate space size. It takes priority over the
	// root's viewBox attribute and the measured box.
	ViewBox *Size
	// Measured is the render target's pixel box as the host lays it out.
	Measured Rect
	// FrameRate caps commits per second. Zero means DefaultFrameRate.
	FrameRate int
	// Camera tunes pan and zoom limits and smoothing.
	Camera CameraOptions
	// NoCamera builds the scene without a camera.
	NoCamera bool
	// Debug enables per-commit diagnostics.
	Debug bool
	// Scheduler supplies frames. Nil creates a FrameQueue.
	Scheduler FrameScheduler
}

// Config is the on-disk TOML form of a scene setup, used by the CLI and
// the ebiten host.
type Config struct {
	Title     string         `toml:"title"`
	Width     int            `toml:"width"`
	Height    int            `toml:"height"`
	ViewBox   *Size          `toml:"viewbox"`
	FrameRate int            `toml:"frame_rate"`
	Debug     bool           `toml:"debug"`
	Drawing   string         `toml:"drawing"`
	Camera    CameraOptions  `toml:"camera"`
	Grid      bool           `toml:"grid"`
	Axes      bool           `toml:"axes"`
	Filter    bool           `toml:"filter"`
	Params    map[string]any `toml:"params"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:     "pluton",
		Width:     800,
		Height:    600,
		FrameRate: DefaultFrameRate,
		Camera:    DefaultCameraOptions(),
		Grid:      true,
		Axes:      true,
		Params:    map[string]any{},
	}
}

// LoadConfig reads a TOML config file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes TOML from r over DefaultConfig and validates the
// params table.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Params == nil {
		cfg.Params = map[string]any{}
	}
	for k, v := range cfg.Params {
		if err := validateParam(k, v); err != nil {
			return Config{}, err
		}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("decode config: window size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// Options converts the config into scene options.
func (c Config) Options() Options {
	return Options{
		ViewBox:   c.ViewBox,
		Measured:  Rect{Width: float64(c.Width), Height: float64(c.Height)},
		FrameRate: c.FrameRate,
		Camera:    c.Camera,
		Debug:     c.Debug,
	}
}

// ApplyPresentation applies the grid, axes and filter toggles to s.
func (c Config) ApplyPresentation(s *Scene) {
	s.EnableGrid(c.Grid)
	s.EnableAxes(c.Axes)
	s.EnableFilter(c.Filter)
}
