package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/render"
)

const (
	headerRows = 2
	footerRows = 2
	// linkHistory is how many frames the link sparkline spans.
	linkHistory = 120
)

type TickMsg time.Time

// Model is a bubbletea program around the engine. Each tick fires the pending
// frame, so the tick interval is the terminal's repaint rate.
type Model struct {
	engine   *render.Engine
	surf     *Surface
	window   *TermWindow
	sched    *render.ManualScheduler
	clock    render.Clock
	interval time.Duration

	links   []float64
	showHUD bool
	quit    bool
}

// NewModel builds the engine over a terminal surface. Call Init on the
// returned engine (via Start) before running the program.
func NewModel(cfg *config.Config, motion motionpref.Query, clock render.Clock, logger *log.Logger) *Model {
	if clock == nil {
		clock = render.NewSystemClock()
	}
	m := &Model{
		surf:     NewSurface(),
		window:   &TermWindow{Cols: 80, Rows: 24 - headerRows - footerRows},
		sched:    &render.ManualScheduler{},
		clock:    clock,
		interval: cfg.Window.FrameInterval(),
		links:    make([]float64, 0, linkHistory),
		showHUD:  true,
	}
	m.surf.OriginRow = headerRows
	m.engine = render.New(cfg.EngineOptions(), render.Host{
		Surface:   m.surf,
		Window:    m.window,
		Scheduler: m.sched,
		Clock:     m.clock,
		Motion:    motion,
	}, render.WithRand(cfg.Rand()), render.WithLogger(logger), render.WithObserver(m))
	return m
}

// Start initializes the engine.
func (m *Model) Start(ctx context.Context) error {
	return m.engine.Init(ctx)
}

func (m *Model) Engine() *render.Engine { return m.engine }

// OnFrame keeps the recent link counts for the sparkline.
func (m *Model) OnFrame(f metrics.Frame) {
	if len(m.links) == linkHistory {
		copy(m.links, m.links[1:])
		m.links = m.links[:linkHistory-1]
	}
	m.links = append(m.links, float64(f.Links))
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "r":
			m.engine.Reseed()
		case "t":
			NextTheme()
		case "h":
			m.showHUD = !m.showHUD
		}

	case tea.WindowSizeMsg:
		rows := msg.Height - headerRows - footerRows
		if rows < 1 {
			rows = 1
		}
		m.window.Cols, m.window.Rows = msg.Width, rows
		m.engine.OnResize()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			x := float64(msg.X*CellWidth + CellWidth/2)
			y := float64(msg.Y*CellHeight + CellHeight/2)
			m.engine.OnPointerMove(x, y)
		}

	case TickMsg:
		m.sched.Fire(m.clock.Now())
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) View() string {
	if m.quit {
		return ""
	}
	theme := CurrentTheme

	var b strings.Builder
	b.WriteString(m.header(theme))
	b.WriteString("\n")

	if m.engine.Mode() == motionpref.Static {
		b.WriteString(m.staticView(theme))
	} else {
		b.WriteString(m.surf.Canvas.Render(theme.Background))
	}

	b.WriteString(KeyHint.Render("[r] reseed  [t] theme  [h] hud  [q] quit"))
	if m.engine.Mode() == motionpref.Static {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Muted).Render("reduced motion: static backdrop"))
	}
	return b.String()
}

func (m *Model) header(theme Theme) string {
	title := GradientText("driftfield", theme.Primary, theme.Secondary)
	if !m.showHUD {
		return title + "\n"
	}

	status := StatusAnimating.Render(m.engine.Mode().String())
	if m.engine.Mode() == motionpref.Static {
		status = StatusStatic.Render(m.engine.Mode().String())
	}
	stats := fmt.Sprintf("%s %s  %s %s",
		MetricLabel.Render("particles"), MetricValue.Render(fmt.Sprint(m.engine.Population())),
		MetricLabel.Render("links"), SparklineChart(m.links, 24))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status, "  ", stats) + "\n"
}

// staticView draws the backdrop washes sized to the current window. The
// engine never resizes the surface in static mode, so this does.
func (m *Model) staticView(theme Theme) string {
	w, h := m.window.InnerSize()
	m.surf.SetBackingSize(int(w), int(h))
	m.surf.DrawBackdrop(w, h)
	return m.surf.Canvas.Render(theme.Background)
}

// Run starts the terminal host and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, motion motionpref.Query, logger *log.Logger) error {
	m := NewModel(cfg, motion, nil, logger)
	if err := m.Start(ctx); err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
