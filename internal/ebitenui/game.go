// Package ebitenui hosts the particle field in an ebiten window.
package ebitenui

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/render"
	"github.com/san-kum/driftfield/internal/surface"
)

var background = surface.RGBA(2, 3, 10, 1)

// Window reports the geometry ebiten last passed to Layout.
type Window struct {
	width, height float64
	ratio         float64
}

func (w *Window) InnerSize() (float64, float64) { return w.width, w.height }
func (w *Window) DevicePixelRatio() float64     { return w.ratio }

// Game adapts the engine to ebiten's Update/Draw/Layout loop. Draw fires the
// pending frame, so ebiten's repaint is the engine's scheduler.
type Game struct {
	Engine  *render.Engine
	Surface *Surface
	Window  *Window
	Sched   *render.ManualScheduler
	Clock   *render.SystemClock
	ShowHUD bool

	ctx     context.Context
	logger  *log.Logger
	resized bool
	lastX   int
	lastY   int
}

func NewGame(ctx context.Context, cfg *config.Config, motion motionpref.Query, logger *log.Logger) *Game {
	g := &Game{
		Surface: NewSurface(background),
		Window:  &Window{width: float64(cfg.Window.Width), height: float64(cfg.Window.Height), ratio: 1},
		Sched:   &render.ManualScheduler{},
		Clock:   render.NewSystemClock(),
		ctx:     ctx,
		logger:  logger,
		lastX:   -1,
		lastY:   -1,
	}
	g.Engine = render.New(cfg.EngineOptions(), render.Host{
		Surface:   g.Surface,
		Window:    g.Window,
		Scheduler: g.Sched,
		Clock:     g.Clock,
		Motion:    motion,
	}, render.WithRand(cfg.Rand()), render.WithLogger(logger))
	return g
}

// Run opens a window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, cfg *config.Config, motion motionpref.Query, logger *log.Logger) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.FPS)

	g := NewGame(ctx, cfg, motion, logger)
	g.Window.ratio = ebiten.Monitor().DeviceScaleFactor()
	if err := g.Engine.Init(ctx); err != nil {
		return err
	}
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.ShowHUD = !g.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Engine.Reseed()
	}

	if g.resized {
		g.resized = false
		g.Engine.OnResize()
	}

	x, y := ebiten.CursorPosition()
	if x != g.lastX || y != g.lastY {
		first := g.lastX < 0
		g.lastX, g.lastY = x, y
		if !first {
			r := math.Max(1, g.Window.ratio)
			g.Engine.OnPointerMove(float64(x)/r, float64(y)/r)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Surface.Target(screen)
	defer g.Surface.Target(nil)

	if g.Engine.Mode() == motionpref.Static {
		g.Surface.DrawBackdrop()
	} else if !g.Sched.Fire(g.Clock.Now()) {
		screen.Fill(background.NRGBA())
	}

	if g.ShowHUD {
		msg := fmt.Sprintf("%s  %d particles  %.0f FPS\n[R] reseed  [H] hud  [Q] quit",
			g.Engine.Mode(), g.Engine.Population(), ebiten.ActualFPS())
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout runs at backing resolution so strokes stay crisp on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ebiten.Monitor().DeviceScaleFactor()
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.Window.width || h != g.Window.height || ratio != g.Window.ratio {
		g.Window.width, g.Window.height, g.Window.ratio = w, h, ratio
		g.resized = true
	}
	r := math.Max(1, ratio)
	return int(math.Ceil(w * r)), int(math.Ceil(h * r))
}
