package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pluton2d/pluton"
	"github.com/pluton2d/pluton/internal/beams"
)

const defaultDrawing = "i-beam"

// maxSettleFrames bounds the frames run while waiting for a scene to go
// idle headlessly.
const maxSettleFrames = 600

func drawingNames() []string {
	return beams.Names()
}

func lookupDrawing(name string) (beams.Drawing, bool) {
	return beams.Lookup(name)
}

// loadConfig reads the --config file, or returns the defaults.
func loadConfig(g *globalOpts) (pluton.Config, error) {
	if g.configPath == "" {
		return pluton.DefaultConfig(), nil
	}
	return pluton.LoadConfig(g.configPath)
}

// resolveDrawing picks the drawing named by args, then the config, then
// the default.
func resolveDrawing(args []string, cfg pluton.Config) (beams.Drawing, error) {
	name := defaultDrawing
	switch {
	case len(args) > 0:
		name = args[0]
	case cfg.Drawing != "":
		name = cfg.Drawing
	}
	d, ok := lookupDrawing(name)
	if !ok {
		return beams.Drawing{}, fmt.Errorf("unknown drawing %q (available: %s)", name, strings.Join(drawingNames(), ", "))
	}
	return d, nil
}

// buildScene creates a scene for d with the config's params and the --set
// overrides applied over the drawing's defaults.
func buildScene(d beams.Drawing, cfg pluton.Config, sets []string) (*pluton.Scene, error) {
	overrides, err := parseSets(sets)
	if err != nil {
		return nil, err
	}
	params := d.Params(cfg.Params)
	for k, v := range overrides {
		params[k] = v
	}
	scene, err := pluton.NewScene(nil, params, cfg.Options())
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", d.Name, err)
	}
	d.Setup(scene)
	cfg.ApplyPresentation(scene)
	return scene, nil
}

// parseSets parses key=value flags. Values that parse as numbers or bools
// keep that type; everything else is a string.
func parseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}
		out[k] = parseValue(strings.TrimSpace(v))
	}
	return out, nil
}

func parseValue(v string) any {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}

// settle runs frames on the scene's clock until no frame is requested. It
// returns the clock after the last frame. Headless clocks start one frame
// budget in so the first commit is not deferred.
func settle(scene *pluton.Scene, now time.Duration) (time.Duration, error) {
	step := scene.Engine().FrameBudget()
	for range maxSettleFrames {
		ran, err := scene.RunFrame(now)
		if err != nil {
			return now, err
		}
		if !ran {
			return now, nil
		}
		now += step
	}
	return now, fmt.Errorf("scene did not settle after %d frames", maxSettleFrames)
}
