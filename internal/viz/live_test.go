package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/integlab/internal/stream"
)

var constant = stream.SourceFunc(func(float64) (float64, float64) { return 60, 40 })

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestModel_SpaceTogglesSession(t *testing.T) {
	s := stream.NewSession(constant)
	m := NewModel(s, time.Millisecond)

	m = update(t, m, key(" "))
	if s.State() != stream.Running {
		t.Fatalf("expected running, got %s", s.State())
	}
	m = update(t, m, key(" "))
	if s.State() != stream.Stopped {
		t.Fatalf("expected stopped, got %s", s.State())
	}
}

func TestModel_TickAdvancesRunningSession(t *testing.T) {
	s := stream.NewSession(constant)
	m := NewModel(s, time.Millisecond)

	m = update(t, m, TickMsg(time.Now()))
	if s.Ticks() != 0 {
		t.Errorf("stopped session ticked")
	}

	s.Start()
	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	if s.Ticks() != 3 {
		t.Errorf("expected 3 ticks, got %d", s.Ticks())
	}
	if m.last.Memory != 60 || m.last.CPU != 40 {
		t.Errorf("last point = %+v", m.last)
	}
	if got := s.Integral(); got < 29.99 || got > 30.01 {
		t.Errorf("integral = %v, want 30", got)
	}
}

func TestModel_Reset(t *testing.T) {
	s := stream.NewSession(constant)
	s.Start()
	m := NewModel(s, 0)
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, key("r"))

	if s.Ticks() != 0 || s.Integral() != 0 || s.State() != stream.Stopped {
		t.Errorf("session not reset: ticks=%d integral=%v state=%s", s.Ticks(), s.Integral(), s.State())
	}
	if m.last != (stream.Point{}) {
		t.Errorf("last point not cleared")
	}
	if m.period != stream.DefaultPeriod {
		t.Errorf("period = %v", m.period)
	}
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(stream.NewSession(constant), time.Second)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_View(t *testing.T) {
	s := stream.NewSession(constant)
	m := NewModel(s, time.Second)

	view := m.View()
	if !strings.Contains(view, "PAUSED") || !strings.Contains(view, "waiting for samples") {
		t.Errorf("unexpected idle view:\n%s", view)
	}

	s.Start()
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	m = update(t, m, key("?"))
	view = m.View()
	for _, want := range []string{"RUNNING", "Integral", "50.00", "5/100", "KEYBOARD SHORTCUTS"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestNextTheme(t *testing.T) {
	defer SetTheme(ThemeOcean.Name)
	NextTheme()
	if CurrentTheme.Name != "retro" {
		t.Errorf("expected retro, got %s", CurrentTheme.Name)
	}
	SetTheme("nonexistent")
	if CurrentTheme.Name != ThemeOcean.Name {
		t.Errorf("unknown theme should fall back to default")
	}
}

func TestCanvas_FillArea(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillArea([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 0, 7)
	out := c.String()
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected 2 rows, got %q", out)
	}
	// The tallest column reaches the top row.
	if c.Grid[0][3] == 0x2800 {
		t.Error("top right cell should be lit")
	}
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("canvas not cleared")
			}
		}
	}
}

func TestSparkline(t *testing.T) {
	st := themeStyles(CurrentTheme)
	if got := st.Sparkline(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	if got := st.Sparkline([]float64{1, 2, 3}, 10); !strings.Contains(got, "█") {
		t.Errorf("sparkline missing peak: %q", got)
	}
}
