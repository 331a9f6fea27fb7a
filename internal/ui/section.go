package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/litescript/oblsph/internal/oblsph"
)

// Glyphs and colors for the cross-section canvas
const (
	glyphSurface = '·'
	glyphPoint   = '◆'
	glyphRadial  = 'a'
	glyphLatDir  = 'η'

	colorBackground = "236"
	colorAxis       = "60"
	colorSurface    = "135"
	colorPoint      = "229"
	colorBasis      = "46"
)

// sectionCanvas maps meridian-plane coordinates (ρ, z) onto character
// cells. Cells are about twice as tall as they are wide.
type sectionCanvas struct {
	width, height int
	unitsPerRow   float64
	cells         [][]rune
	colors        [][]lipgloss.Color
}

func newSectionCanvas(width, height int, extent float64) *sectionCanvas {
	c := &sectionCanvas{width: width, height: height}

	halfW := float64(width-1) / 2
	halfH := float64(height-1) / 2
	c.unitsPerRow = math.Max(extent/halfH, 2*extent/halfW)

	c.cells = make([][]rune, height)
	c.colors = make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		c.cells[y] = make([]rune, width)
		c.colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			c.cells[y][x] = ' '
			c.colors[y][x] = colorBackground
		}
	}
	return c
}

// toScreen converts a meridian-plane point to a cell, reporting whether
// it falls on the canvas.
func (c *sectionCanvas) toScreen(p r2.Point) (int, int, bool) {
	x := int(math.Round(float64(c.width-1)/2 + 2*p.X/c.unitsPerRow))
	y := int(math.Round(float64(c.height-1)/2 - p.Y/c.unitsPerRow))
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, 0, false
	}
	return x, y, true
}

func (c *sectionCanvas) plot(p r2.Point, glyph rune, color lipgloss.Color) {
	if x, y, ok := c.toScreen(p); ok {
		c.cells[y][x] = glyph
		c.colors[y][x] = color
	}
}

func (c *sectionCanvas) drawAxes() {
	cx := (c.width - 1) / 2
	cy := (c.height - 1) / 2
	for x := 0; x < c.width; x++ {
		c.cells[cy][x] = '─'
		c.colors[cy][x] = colorAxis
	}
	for y := 0; y < c.height; y++ {
		c.cells[y][cx] = '│'
		c.colors[y][cx] = colorAxis
	}
	c.cells[cy][cx] = '┼'
}

func (c *sectionCanvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			style := lipgloss.NewStyle().Foreground(c.colors[y][x])
			b.WriteString(style.Render(string(c.cells[y][x])))
		}
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// meridian projects v onto the meridian half-plane at longitude lon:
// X is the distance from the polar axis, Y the height.
func meridian(v r3.Vector, lon float64) r2.Point {
	return r2.Point{X: v.X*math.Cos(lon) + v.Y*math.Sin(lon), Y: v.Z}
}

// renderSection draws the meridian cross-section of the spheroid through
// the current location, with the location and the directions of its a
// and η basis vectors.
func renderSection(os oblsph.OblateSpheroid, width, height int) string {
	if width < 10 || height < 5 {
		return errorStyle.Render("Window too small")
	}

	a := os.Semimajor()
	b := os.Semiminor()
	extent := 1.25 * a
	if extent == 0 {
		extent = 1
	}

	c := newSectionCanvas(width, height, extent)
	c.drawAxes()

	const samples = 720
	for i := 0; i < samples; i++ {
		t := 2 * math.Pi * float64(i) / samples
		c.plot(r2.Point{X: a * math.Cos(t), Y: b * math.Sin(t)}, glyphSurface, colorSurface)
	}

	lon := os.Longitude()
	at := meridian(os.Cartesian(), lon)

	// Basis directions are drawn at a fixed length, the η vector grows
	// without bound near the poles.
	cov := os.CovariantBasis()
	arm := 0.3 * extent
	for _, d := range []struct {
		v     r3.Vector
		glyph rune
	}{
		{cov[oblsph.IdxSemimajor], glyphRadial},
		{cov[oblsph.IdxLatitude], glyphLatDir},
	} {
		dir := meridian(d.v, lon)
		if n := dir.Norm(); n > 0 && !math.IsInf(n, 0) && !math.IsNaN(n) {
			c.plot(at.Add(dir.Mul(arm/n)), d.glyph, colorBasis)
		}
	}

	c.plot(at, glyphPoint, colorPoint)

	return c.String()
}
