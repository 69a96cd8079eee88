package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/life"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Sim.FillProbability = 0
	cfg.Sim.Seed = 1
	cfg.Brush.Radius = 0
	m := New(cfg, log.New(io.Discard))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 11})
	m = updated.(Model)
	if m.sim == nil {
		t.Fatal("board not created on first size message")
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelSizesBoardOnce(t *testing.T) {
	m := newTestModel(t)
	if w, h := m.sim.Grid().Width(), m.sim.Grid().Height(); w != 40 || h != 20 {
		t.Fatalf("grid = %dx%d, want 40x20", w, h)
	}
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 50})
	if w := m.sim.Grid().Width(); w != 40 {
		t.Errorf("grid resized to width %d", w)
	}
}

func TestModelBeforeSize(t *testing.T) {
	m := New(config.DefaultConfig(), log.New(io.Discard))
	if m.View() != "starting..." {
		t.Errorf("View() = %q", m.View())
	}
	_, cmd := send(m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick without a board must reschedule")
	}
}

func TestModelMousePaints(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Unix(100, 0)

	m, _ = send(m, tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(m, TickMsg(t0))
	if st, _ := m.sim.Grid().Get(5, 6); st != life.Alive {
		t.Error("left press did not paint the upper cell of the text row")
	}

	m, _ = send(m, tea.MouseMsg{X: 8, Y: 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = send(m, TickMsg(t0))
	if st, _ := m.sim.Grid().Get(8, 6); st != life.Alive {
		t.Error("drag did not paint")
	}

	m, _ = send(m, tea.MouseMsg{X: 8, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = send(m, tea.MouseMsg{X: 12, Y: 3, Action: tea.MouseActionMotion})
	m, _ = send(m, TickMsg(t0))
	if st, _ := m.sim.Grid().Get(12, 6); st != life.Dead {
		t.Error("motion after release painted")
	}

	m, _ = send(m, tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m, _ = send(m, TickMsg(t0))
	if st, _ := m.sim.Grid().Get(5, 6); st != life.Dead {
		t.Error("right press did not erase")
	}
}

func TestModelWheelAndKeys(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Unix(100, 0)

	m, _ = send(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	m, _ = send(m, key("+"))
	m, _ = send(m, key("tab"))
	m, _ = send(m, TickMsg(t0))

	if r := m.sim.Brush().Radius; r != 2 {
		t.Errorf("radius = %d, want 2", r)
	}
	if s := m.sim.Brush().Shape; s != life.CheckerBoard {
		t.Errorf("shape = %s, want checkerboard", s)
	}

	m, _ = send(m, key(" "))
	m, _ = send(m, TickMsg(t0))
	if !m.sim.Paused() {
		t.Error("space did not pause")
	}

	m, _ = send(m, key("n"))
	m, _ = send(m, TickMsg(t0))
	if m.sim.Generation() != 1 {
		t.Errorf("generation = %d after single step", m.sim.Generation())
	}
}

func TestModelDiscreteKeysFireOnce(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Unix(100, 0)

	m, _ = send(m, key("tab"))
	m, _ = send(m, TickMsg(t0))
	m, _ = send(m, TickMsg(t0))
	if s := m.sim.Brush().Shape; s != life.CheckerBoard {
		t.Errorf("shape = %s, want one cycle to checkerboard", s)
	}
}

func TestModelClear(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Unix(100, 0)
	m.sim.State().Brush.Radius = 3
	m, _ = send(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(m, TickMsg(t0))
	m, _ = send(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionRelease})
	if m.sim.Grid().Population() == 0 {
		t.Fatal("nothing painted")
	}
	m, _ = send(m, key("c"))
	m, _ = send(m, TickMsg(t0))
	if m.sim.Grid().Population() != 0 {
		t.Error("c did not clear")
	}
}

func TestModelQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := newTestModel(t)
		_, cmd := send(m, key(k))
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command is not tea.Quit", k)
		}
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	v := m.View()
	if got := strings.Count(v, "\n"); got != 10 {
		t.Errorf("view has %d newlines, want 10", got)
	}
	if !strings.Contains(v, "gameoflife") {
		t.Error("status line missing")
	}

	m, _ = send(m, key("?"))
	m.sim.Run(3)
	if !strings.Contains(m.View(), "POPULATION") {
		t.Error("stats panel missing")
	}
}
