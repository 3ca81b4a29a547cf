// Package tui provides a live terminal view of particle advection.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/flowlab/internal/advect"
	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/sampler"
	"github.com/san-kum/flowlab/internal/viz"
)

const (
	canvasCols = 70
	canvasRows = 22
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(34)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model advects a batch of particles one step per tick. The default view
// overlays particle markers on an arrow rendering of the field; a braille
// trajectory view can be toggled in.
type Model struct {
	advector  *advect.Advector
	grid      *field.Grid
	particles []*advect.Particle
	initial   []field.Vec2
	lifespan  int
	name      string
	canvas    *viz.Canvas
	trails    bool
	running   bool
	step      int
}

func NewModel(name string, s *sampler.Sampler, particles []*advect.Particle, lifespan int) Model {
	initial := make([]field.Vec2, len(particles))
	for i, p := range particles {
		initial[i] = p.Position()
	}
	return Model{
		advector:  advect.New(s),
		grid:      s.Grid(),
		particles: particles,
		initial:   initial,
		lifespan:  lifespan,
		name:      name,
		canvas:    viz.NewCanvas(canvasCols, canvasRows),
		running:   true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "v":
			m.trails = !m.trails
		}
	case TickMsg:
		if m.running && !m.done() {
			for _, p := range m.particles {
				if !p.Terminal() {
					// Step cannot fail here; terminality was just checked.
					_ = m.advector.Step(p)
				}
			}
			m.step++
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) reset() {
	fresh := make([]*advect.Particle, len(m.particles))
	for i, p := range m.particles {
		start := m.initial[i]
		fresh[i] = advect.NewParticle(start.X, start.Y, m.lifespan, p.Color())
	}
	m.particles = fresh
	m.step = 0
}

func (m Model) done() bool {
	for _, p := range m.particles {
		if !p.Terminal() {
			return false
		}
	}
	return true
}

// fieldView renders the quiver background with particle markers overlaid.
// Particles outside the domain have no cell and stay invisible until the
// flow carries them back.
func (m Model) fieldView() string {
	rows := strings.Split(strings.TrimRight(viz.Quiver(m.grid, canvasCols, canvasRows), "\n"), "\n")
	cells := make([][]rune, len(rows))
	for i, row := range rows {
		cells[i] = []rune(row)
	}

	w, h := m.grid.Width(), m.grid.Height()
	for _, p := range m.particles {
		pos := p.Position()
		if pos.X < 0 || pos.X >= w || pos.Y < 0 || pos.Y >= h {
			continue
		}
		col := int(pos.X / w * float64(canvasCols))
		row := canvasRows - 1 - int(pos.Y/h*float64(canvasRows))
		if row >= 0 && row < len(cells) && col >= 0 && col < len(cells[row]) {
			cells[row][col] = '●'
		}
	}

	var b strings.Builder
	for _, row := range cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) trailView() string {
	m.canvas.Clear()
	trajectories := make([][]field.Vec2, len(m.particles))
	for i, p := range m.particles {
		trajectories[i] = p.Trajectory()
	}
	viz.DrawTrajectories(m.canvas, trajectories)
	return m.canvas.String()
}

func (m Model) View() string {
	var canvasView string
	if m.trails {
		canvasView = canvasStyle.Render(m.trailView())
	} else {
		canvasView = canvasStyle.Render(m.fieldView())
	}

	status := "RUNNING"
	if m.done() {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.step, m.lifespan)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.particles))) + "\n")

	alive := 0
	for _, p := range m.particles {
		if !p.Terminal() {
			alive++
		}
	}
	s.WriteString(labelStyle.Render("Alive") + valueStyle.Render(fmt.Sprintf("%d", alive)) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause  R:Reset  V:Trails  Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
