package gui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/render"
	"github.com/san-kum/driftfield/internal/surface"
)

var (
	ColBg      = surface.RGBA(2, 3, 10, 1)
	ColText    = rl.NewColor(140, 150, 170, 255)
	ColTextDim = rl.NewColor(60, 66, 80, 255)
)

type App struct {
	Engine  *render.Engine
	Surface *Surface
	Sched   *render.ManualScheduler
	Clock   *render.SystemClock
	ShowHUD bool

	title  string
	logger *log.Logger
	lastX  float32
	lastY  float32
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

// NewApp wires an engine to the open raylib window.
func NewApp(cfg *config.Config, motion motionpref.Query, logger *log.Logger) *App {
	a := &App{
		Surface: NewSurface(ColBg),
		Sched:   &render.ManualScheduler{},
		Clock:   render.NewSystemClock(),
		title:   cfg.Window.Title,
		logger:  logger,
	}
	a.Engine = render.New(cfg.EngineOptions(), render.Host{
		Surface:   a.Surface,
		Window:    Window{},
		Scheduler: a.Sched,
		Clock:     a.Clock,
		Motion:    motion,
	}, render.WithRand(cfg.Rand()), render.WithLogger(logger))
	return a
}

// Run opens a window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, cfg *config.Config, motion motionpref.Query, logger *log.Logger) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app := NewApp(cfg, motion, logger)
	pos := rl.GetMousePosition()
	app.lastX, app.lastY = pos.X, pos.Y
	if err := app.Engine.Init(ctx); err != nil {
		return err
	}
	app.RunLoop(ctx)
	return nil
}

func (a *App) RunLoop(ctx context.Context) {
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update forwards window events to the engine and reports whether to keep
// running.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Engine.Reseed()
	}

	if rl.IsWindowResized() {
		a.Engine.OnResize()
	}

	mouse := rl.GetMousePosition()
	if mouse.X != a.lastX || mouse.Y != a.lastY {
		a.lastX, a.lastY = mouse.X, mouse.Y
		a.Engine.OnPointerMove(float64(mouse.X), float64(mouse.Y))
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()

	if a.Engine.Mode() == motionpref.Static {
		a.Surface.DrawBackdrop()
	} else if !a.Sched.Fire(a.Clock.Now()) {
		rl.ClearBackground(a.Surface.Background)
	}

	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	h := int32(rl.GetScreenHeight())
	rl.DrawText(a.title, 20, 20, 20, ColText)
	rl.DrawText(fmt.Sprintf("%s  %d particles", a.Engine.Mode(), a.Engine.Population()), 20, 46, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, h-30, 14, ColTextDim)
	rl.DrawText("[R] RESEED  [H] HUD  [Q] QUIT", 120, h-30, 14, ColTextDim)
}
