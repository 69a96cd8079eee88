package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
)

const (
	statusLines = 1
	statsWidth  = 44
	frameRate   = 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea shell. The board is sized from the first window
// size message and never resized afterwards.
type Model struct {
	cfg     *config.Config
	logger  *log.Logger
	sim     *sim.Simulator
	history *metrics.History
	cycle   *metrics.CycleDetector
	churn   *metrics.Churn
	painter *painter

	width, height int
	view          sim.Viewport
	pending       sim.Input
	primary       bool
	secondary     bool
	showStats     bool
	err           error
}

func New(cfg *config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		cfg:     cfg,
		logger:  logger,
		painter: newPainter(),
	}
}

// Run takes over the terminal until the user quits.
func Run(cfg *config.Config, logger *log.Logger) error {
	p := tea.NewProgram(New(cfg, logger), tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.sim == nil {
			if err := m.start(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case TickMsg:
		if m.sim == nil {
			return m, tick()
		}
		in := m.pending
		in.Primary, in.Secondary = m.primary, m.secondary
		m.pending = sim.Input{PointerX: in.PointerX, PointerY: in.PointerY}
		if res := m.sim.Frame(time.Time(msg), in); res.Quit {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) start() error {
	w := m.width
	h := (m.height - statusLines) * 2
	if w < 1 {
		w = 1
	}
	if h < 2 {
		h = 2
	}

	m.history = metrics.NewHistory(statsWidth - 10)
	m.cycle = metrics.NewCycleDetector(16)
	m.churn = metrics.NewChurn()
	s, err := sim.New(w, h, m.cfg.ToSim(),
		sim.WithLogger(m.logger),
		sim.WithBackend(m.cfg.Backend()),
		sim.WithMetric(m.history),
		sim.WithMetric(m.cycle),
		sim.WithMetric(m.churn),
	)
	if err != nil {
		return err
	}
	m.sim = s
	// drawn 1:1 from the top-left, so one text cell is one column and two rows
	m.view = sim.Viewport{ScreenW: float64(w), ScreenH: float64(h / 2), GridW: w, GridH: h}
	m.logger.Info("terminal board", "grid", fmt.Sprintf("%dx%d", w, h))
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if m.sim != nil {
			m.sim.Frame(time.Now(), sim.Input{Quit: true})
		}
		return m, tea.Quit
	case "tab":
		m.pending.CycleShape = true
	case "c":
		m.pending.Clear = true
	// terminals report no key release, so every repeat of x counts as held
	case "x":
		m.pending.ClearHeld = true
	case " ", "space":
		m.pending.TogglePause = true
	case "n":
		m.pending.StepOnce = true
	case "+", "=":
		m.pending.Scroll++
	case "-":
		m.pending.Scroll--
	case "r":
		if m.sim != nil {
			m.sim.Reset(0)
		}
	case "?":
		m.showStats = !m.showStats
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	gx, gy := m.view.ToGrid(float64(msg.X), float64(msg.Y))
	m.pending.PointerX, m.pending.PointerY = gx, gy

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.primary = true
		case tea.MouseButtonRight:
			m.secondary = true
		case tea.MouseButtonWheelUp:
			m.pending.Scroll++
		case tea.MouseButtonWheelDown:
			m.pending.Scroll--
		}
	case tea.MouseActionRelease:
		m.primary, m.secondary = false, false
	}
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("error: " + m.err.Error())
	}
	if m.sim == nil {
		return "starting..."
	}

	cols := m.width
	if m.showStats {
		cols -= statsWidth
	}
	if cols < 0 {
		cols = 0
	}
	rows := m.view.GridH / 2
	board := m.painter.Render(m.sim.Buffer(), cols, rows)
	if m.showStats {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, m.statsView(rows))
	}
	return board + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	status := runningStyle.Render("RUNNING")
	if m.sim.Paused() {
		status = pausedStyle.Render("PAUSED")
	}
	info := fmt.Sprintf(" %s  gen %d  pop %d ", m.sim.Brush(), m.sim.Generation(), m.sim.Grid().Population())
	help := helpStyle.Render("tab shape  +/- size  c clear  space pause  n step  r reset  ? stats  q quit")
	return titleStyle.Render("gameoflife") + " " + status + valueStyle.Render(info) + help
}

func (m Model) statsView(rows int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("POPULATION") + "\n")
	if samples := m.history.Samples(); len(samples) > 1 {
		chart := asciigraph.Plot(samples,
			asciigraph.Height(8),
			asciigraph.Width(statsWidth-12),
			asciigraph.Caption("last ticks"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("generation", fmt.Sprintf("%d", m.sim.Generation()))
	row("population", fmt.Sprintf("%d", m.sim.Grid().Population()))
	row("peak", fmt.Sprintf("%.0f", m.history.Value()))
	row("churn/tick", fmt.Sprintf("%.1f", m.churn.Value()))
	if p := m.cycle.Period(); p > 0 {
		row("period", fmt.Sprintf("%d since gen %d", p, m.cycle.Since()))
	} else {
		row("period", "-")
	}
	row("backend", m.sim.Backend().Name())
	row("interval", m.sim.Config().TickInterval.String())
	return statsStyle.Height(rows).Render(s.String())
}
