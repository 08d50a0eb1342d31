package scene2d

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// logger resolves slog.Default on each call so that hosts may install their
// handler after import.
func logger() *slog.Logger {
	return slog.Default().With("component", "scene2d")
}

// RunConfig configures the window Run opens.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the tick rate; zero keeps Ebitengine's default.
	TPS int
	// OnTick runs at the start of every tick, before input is delivered.
	OnTick func()
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
	input inputState
}

// Update delivers host input, unless injected input is pending, then ticks
// the world.
func (g *game) Update() error {
	if g.cfg.OnTick != nil {
		g.cfg.OnTick()
	}
	if !g.scene.InjectPending() {
		g.input.poll(g.scene.World)
	}
	g.scene.Tick()
	return nil
}

// Draw redraws only when the world queued a render.
func (g *game) Draw(screen *ebiten.Image) {
	if g.scene.needsDraw {
		g.scene.Draw(screen)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives s until the window closes. Run blocks and
// must be called from the main goroutine.
func Run(s *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	// Frames without a queued render keep the previous image.
	ebiten.SetScreenClearedEveryFrame(false)
	logger().Info("run", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	g := &game{scene: s, cfg: cfg}
	g.input.width, g.input.height = cfg.Width, cfg.Height
	return ebiten.RunGame(g)
}
