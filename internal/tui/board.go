package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lifesim/internal/render"
)

// Each text cell shows two board rows: the upper half block takes the
// foreground color and the background shows through underneath.
const halfBlock = "▀"

var offPixel = color.RGBA{A: 255}

type cellPair struct {
	top, bottom color.RGBA
}

// painter turns a render buffer into styled half-block rows. Styles are
// cached per color pair since trails only produce a few dozen distinct reds.
type painter struct {
	styles map[cellPair]lipgloss.Style
}

func newPainter() *painter {
	return &painter{styles: make(map[cellPair]lipgloss.Style)}
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func (p *painter) style(cp cellPair) lipgloss.Style {
	if s, ok := p.styles[cp]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(hex(cp.top)).Background(hex(cp.bottom))
	p.styles[cp] = s
	return s
}

func pixel(buf *render.Buffer, x, y int) color.RGBA {
	w, h := buf.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return offPixel
	}
	return buf.At(x, y)
}

// Render draws cols x rows text cells from the top-left of buf. Areas outside
// the buffer are black.
func (p *painter) Render(buf *render.Buffer, cols, rows int) string {
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		run := 0
		var cur cellPair
		for x := 0; x < cols; x++ {
			cp := cellPair{top: pixel(buf, x, 2*r), bottom: pixel(buf, x, 2*r+1)}
			if run > 0 && cp != cur {
				sb.WriteString(p.style(cur).Render(strings.Repeat(halfBlock, run)))
				run = 0
			}
			cur = cp
			run++
		}
		if run > 0 {
			sb.WriteString(p.style(cur).Render(strings.Repeat(halfBlock, run)))
		}
		if r < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
