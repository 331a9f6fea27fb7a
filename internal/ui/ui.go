// Package ui provides the interactive terminal explorer using Bubble Tea.
package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/s1"

	"github.com/litescript/oblsph/internal/logging"
	"github.com/litescript/oblsph/internal/oblsph"
	"github.com/litescript/oblsph/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewCoordinates ViewMode = iota
	ViewBasis
	ViewMetric
	ViewSection

	viewCount
)

func (v ViewMode) String() string {
	switch v {
	case ViewCoordinates:
		return "Coordinates"
	case ViewBasis:
		return "Basis"
	case ViewMetric:
		return "Metric"
	case ViewSection:
		return "Section"
	default:
		return "Unknown"
	}
}

// Step sizes for keyboard navigation.
const (
	lonStep = 5 * s1.Degree
	latStep = 0.05
	eccStep = 0.05
	smaStep = 0.1
)

// Styles shared by the views
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Padding(0, 1)
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
)

// Model is the root Bubble Tea model. It holds one OblateSpheroid and
// replaces it wholesale on every navigation step.
type Model struct {
	spheroid oblsph.OblateSpheroid
	logger   *logging.Logger

	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
}

// New creates a new root UI model.
func New(os oblsph.OblateSpheroid, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	return Model{
		spheroid: os,
		logger:   logger,
		viewMode: ViewCoordinates,
	}
}

// Spheroid returns the current spheroid.
func (m Model) Spheroid() oblsph.OblateSpheroid { return m.spheroid }

// ViewMode returns the active view.
func (m Model) ViewMode() ViewMode { return m.viewMode }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		os := m.spheroid
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewCoordinates
		case "2":
			m.viewMode = ViewBasis
		case "3":
			m.viewMode = ViewMetric
		case "4":
			m.viewMode = ViewSection
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		case "shift+tab":
			m.viewMode = (m.viewMode + viewCount - 1) % viewCount

		case "left", "h":
			m = m.step(os.At(wrapLongitude(os.Longitude()-lonStep.Radians()), os.Latitude()))
		case "right", "l":
			m = m.step(os.At(wrapLongitude(os.Longitude()+lonStep.Radians()), os.Latitude()))
		case "up", "k":
			m = m.step(os.At(os.Longitude(), clamp(os.Latitude()+latStep, -1, 1)))
		case "down", "j":
			m = m.step(os.At(os.Longitude(), clamp(os.Latitude()-latStep, -1, 1)))
		case "e":
			m = m.step(oblsph.FromSpheroidal(os.Eccentricity()-eccStep, os.Semimajor(), os.Longitude(), os.Latitude()))
		case "E":
			m = m.step(oblsph.FromSpheroidal(os.Eccentricity()+eccStep, os.Semimajor(), os.Longitude(), os.Latitude()))
		case "a":
			m = m.step(oblsph.FromSpheroidal(os.Eccentricity(), os.Semimajor()-smaStep, os.Longitude(), os.Latitude()))
		case "A":
			m = m.step(oblsph.FromSpheroidal(os.Eccentricity(), os.Semimajor()+smaStep, os.Longitude(), os.Latitude()))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	}

	return m, nil
}

// step adopts the result of a navigation step, or keeps the current
// spheroid and reports why the step was rejected.
func (m Model) step(next oblsph.OblateSpheroid, err error) Model {
	if err != nil {
		if m.logger.Enabled(logging.LevelDebug) {
			m.logger.Debug("step rejected at %v: %v", m.spheroid, err)
		}
		m.statusMsg = err.Error()
		return m
	}
	m.spheroid = next
	m.statusMsg = ""
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewCoordinates:
		content = renderCoordinates(m.spheroid)
	case ViewBasis:
		content = renderBasis(m.spheroid)
	case ViewMetric:
		content = renderMetric(m.spheroid)
	case ViewSection:
		// Header and footer take 6 lines
		content = renderSection(m.spheroid, m.width, m.height-6)
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Oblate Spheroid Explorer v%s", version.Version)))
	b.WriteString("\n")

	for v := ViewMode(0); v < viewCount; v++ {
		label := fmt.Sprintf("%d %s", v+1, v)
		if v == m.viewMode {
			b.WriteString(activeTab.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFooter() string {
	var b strings.Builder
	if m.statusMsg != "" {
		b.WriteString(errorStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("←/→ longitude  ↑/↓ latitude  e/E eccentricity  a/A semimajor  tab view  q quit"))
	return b.String()
}

// wrapLongitude wraps radians into (-pi, pi].
func wrapLongitude(lon float64) float64 {
	for lon > math.Pi {
		lon -= 2 * math.Pi
	}
	for lon <= -math.Pi {
		lon += 2 * math.Pi
	}
	return lon
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
