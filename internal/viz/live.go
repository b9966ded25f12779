// Package viz renders a live terminal view of a running simulation: an XY
// projection of the orbits on a braille canvas next to a stats pane.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scheme"
	"github.com/san-kum/gravsim/internal/world"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	trailLength  = 400
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).Width(38)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

// Model drives the simulation from the bubbletea event loop.
type Model struct {
	w       *world.World
	initial *world.World
	scheme  scheme.Scheme
	dt      float64

	stepsPerFrame int
	primed        bool
	running       bool
	zoom          float64

	trails        [][2]float64
	steps         int
	initialEnergy float64
}

// NewModel prepares a live view. The scheme is primed on first use.
func NewModel(w *world.World, s scheme.Scheme, dt float64, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return Model{
		w:             w,
		initial:       w.Clone(),
		scheme:        s,
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		zoom:          1,
		initialEnergy: metrics.Energy(w),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.w = m.initial.Clone()
			// Name() of a constructed scheme is always registered; keep the
			// old instance on the impossible error rather than going nil.
			if fresh, err := scheme.New(m.scheme.Name()); err == nil {
				m.scheme = fresh
			}
			m.primed = false
			m.steps = 0
			m.trails = nil
		case "+", "=":
			m.zoom *= 1.25
		case "-", "_":
			m.zoom /= 1.25
		}
	case tickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	if !m.primed {
		if p, ok := m.scheme.(scheme.Primer); ok {
			p.Prime(m.w, m.dt)
		}
		m.primed = true
	}
	for i := 0; i < m.stepsPerFrame; i++ {
		m.scheme.Tick(m.w, m.dt)
		m.steps++
	}
	for _, b := range m.w.Bodies() {
		m.trails = append(m.trails, [2]float64{b.Pos.X(), b.Pos.Y()})
	}
	if over := len(m.trails) - trailLength; over > 0 {
		m.trails = m.trails[over:]
	}
}

func (m Model) View() string {
	canvas := NewCanvas(canvasWidth, canvasHeight)

	scale := m.scale()
	plot := func(x, y float64) (int, int) {
		px := int((x*scale + 1) / 2 * float64(canvasWidth*2))
		py := int((1 - (y*scale+1)/2) * float64(canvasHeight*4))
		return px, py
	}

	for _, p := range m.trails {
		x, y := plot(p[0], p[1])
		canvas.Set(x, y)
	}
	for _, b := range m.w.Bodies() {
		x, y := plot(b.Pos.X(), b.Pos.Y())
		// fatten the current position to a 2x2 block
		canvas.Set(x, y)
		canvas.Set(x+1, y)
		canvas.Set(x, y+1)
		canvas.Set(x+1, y+1)
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("gravsim live") + "\n")
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("scheme", m.scheme.Name())
	row("time", fmt.Sprintf("%.3f", m.w.Time()))
	row("steps", fmt.Sprintf("%d", m.steps))
	row("bodies", fmt.Sprintf("%d", m.w.Len()))
	row("dt", fmt.Sprintf("%g", m.dt))
	row("zoom", fmt.Sprintf("%.2fx", m.zoom))

	if m.initialEnergy != 0 {
		drift := math.Abs(metrics.Energy(m.w)-m.initialEnergy) / math.Abs(m.initialEnergy)
		row("energy drift", fmt.Sprintf("%.2e", drift))
	}
	p := metrics.Momentum(m.w)
	row("|momentum|", fmt.Sprintf("%.2e", p.Length()))

	status := "running"
	if !m.running {
		status = "paused"
	}
	row("status", status)
	stats.WriteString(helpStyle.Render("space pause · r reset · +/- zoom · q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(canvas.String()),
		statsStyle.Render(stats.String()),
	)
}

// scale fits the widest current coordinate into the unit viewport.
func (m Model) scale() float64 {
	max := 1e-9
	for _, b := range m.w.Bodies() {
		max = math.Max(max, math.Abs(b.Pos.X()))
		max = math.Max(max, math.Abs(b.Pos.Y()))
	}
	return m.zoom / (max * 1.2)
}

// Run blocks until the user quits the live view.
func Run(w *world.World, s scheme.Scheme, dt float64, stepsPerFrame int) error {
	p := tea.NewProgram(NewModel(w, s, dt, stepsPerFrame))
	_, err := p.Run()
	return err
}
