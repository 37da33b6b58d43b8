// Package ebitenview hosts a pluton Scene in an Ebitengine window: it
// drives the scene's frames from the game loop, forwards mouse, wheel and
// touch input to the camera, and blits the rasterized drawing.
package ebitenview

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pluton2d/pluton"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable lets the user resize the window; the scene is resized with it.
	Resizable bool
	// Update runs on the game goroutine at the start of every tick. Use it
	// to apply changes produced elsewhere, such as params read from a file.
	Update func() error
}

// Game adapts a Scene to ebiten.Game. Most programs use Run; embed Game to
// add behaviour around it.
type Game struct {
	scene   *pluton.Scene
	cfg     RunConfig
	start   time.Time
	input   inputState
	canvas  *ebiten.Image
	dirty   bool
	width   int
	height  int
	unsubs  []func()
	lastErr error
}

// NewGame wraps scene. The scene must be stepped by a FrameRunner, which is
// the default for scenes built without a custom scheduler.
func NewGame(scene *pluton.Scene, cfg RunConfig) (*Game, error) {
	if !scene.SelfDriven() {
		return nil, pluton.ErrNoFrameRunner
	}
	g := &Game{
		scene: scene,
		cfg:   cfg,
		start: time.Now(),
		dirty: true,
	}
	bus := scene.Events()
	g.unsubs = append(g.unsubs,
		pluton.On(bus, pluton.CommitEnd, func(struct{}) { g.dirty = true }),
		pluton.On(bus, pluton.CameraChanged, func(pluton.CameraState) { g.dirty = true }),
	)
	return g, nil
}

// Update polls input and runs one scene frame.
func (g *Game) Update() error {
	if g.lastErr != nil {
		return g.lastErr
	}
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	if !g.scene.ProcessInput() {
		if cam := g.scene.Camera(); cam != nil {
			g.input.poll(cam)
		}
	}
	if _, err := g.scene.RunFrame(time.Since(g.start)); err != nil {
		return err
	}
	if r := g.scene.TestRunner(); r != nil && r.Done() && g.scene.PendingInput() == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw re-rasterizes the scene when a commit or camera move happened since
// the last call, then blits it.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.canvas == nil || g.canvas.Bounds().Dx() != w || g.canvas.Bounds().Dy() != h {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(w, h)
		g.dirty = true
	}
	if g.dirty {
		img, err := g.scene.Rasterize(w, h)
		if err != nil {
			g.lastErr = fmt.Errorf("draw: %w", err)
			return
		}
		g.canvas.WritePixels(img.Pix)
		g.dirty = false
	}
	screen.Fill(color.White)
	screen.DrawImage(g.canvas, nil)

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout forwards window size changes to the scene.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.scene.Resize(pluton.Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// Close detaches the game from the scene's events.
func (g *Game) Close() {
	for _, off := range g.unsubs {
		off()
	}
	g.unsubs = nil
}

// Run opens a window and runs scene until it is closed or its test script
// finishes.
func Run(scene *pluton.Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Title == "" {
		cfg.Title = "pluton"
	}
	g, err := NewGame(scene, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
