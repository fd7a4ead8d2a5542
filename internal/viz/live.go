package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/integlab/internal/stream"
)

const (
	canvasWidth  = 40
	canvasHeight = 8
	graphWidth   = 60
	graphHeight  = 8
)

type TickMsg time.Time

// Model renders a stream.Session and advances it on every tick.
type Model struct {
	session  *stream.Session
	period   time.Duration
	canvas   *Canvas
	showHelp bool
	last     stream.Point
}

func NewModel(s *stream.Session, period time.Duration) Model {
	if period <= 0 {
		period = stream.DefaultPeriod
	}
	return Model{
		session: s,
		period:  period,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.session.Toggle()
		case "r":
			m.session.Reset()
			m.last = stream.Point{}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if p, ok := m.session.Tick(); ok {
			m.last = p
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	st := themeStyles(CurrentTheme)
	pts := m.session.Points()

	var s strings.Builder
	s.WriteString(st.header.Render("LIVE INTEGRAL  ∫ (memory + cpu) dt") + "\n")
	if m.session.State() == stream.Running {
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(pts) > 1 {
		mem := make([]float64, len(pts))
		cpu := make([]float64, len(pts))
		for i, p := range pts {
			mem[i], cpu[i] = p.Memory, p.CPU
		}
		chart := asciigraph.PlotMany([][]float64{mem, cpu},
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("memory (MB), cpu (%)"),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Yellow),
		)
		s.WriteString(st.graph.Render(chart) + "\n")
	} else {
		s.WriteString(st.subtle.Render("waiting for samples... press space to start") + "\n")
	}

	s.WriteString(m.stats(st, pts))
	s.WriteString("\n" + st.Separator(40) + "\n")
	s.WriteString(st.subtle.Render("SP:Start/Pause R:Reset T:Theme ?:Help Q:Quit"))

	view := s.String()
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func (m Model) stats(st styles, pts []stream.Point) string {
	integrals := make([]float64, len(pts))
	sums := make([]float64, len(pts))
	hi := 0.0
	for i, p := range pts {
		integrals[i] = p.Integral
		sums[i] = p.Memory + p.CPU
		hi = max(hi, sums[i])
	}

	m.canvas.Clear()
	m.canvas.FillArea(sums, 0, hi)

	row := func(label, value string) string {
		return st.label.Render(label) + st.value.Render(value) + "\n"
	}
	var b strings.Builder
	b.WriteString(row("Time", fmt.Sprintf("%.0f", m.session.Time())))
	b.WriteString(row("Ticks", fmt.Sprintf("%d", m.session.Ticks())))
	b.WriteString(row("Memory", fmt.Sprintf("%.2f MB", m.last.Memory)))
	b.WriteString(row("CPU", fmt.Sprintf("%.2f %%", m.last.CPU)))
	b.WriteString(row("Integral", fmt.Sprintf("%.2f", m.session.Integral())))
	fill := float64(len(pts)) / float64(m.session.Window())
	b.WriteString(row("Window", st.ProgressBar(fill, 20)+fmt.Sprintf(" %d/%d", len(pts), m.session.Window())))
	b.WriteString(row("Trend", st.Sparkline(integrals, 30)))

	area := st.panel.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, b.String(), "  ", area) + "\n"
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Start/Pause              ║
║  R        - Reset session            ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`
