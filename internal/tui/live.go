package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/lifesim/internal/life"
)

const (
	liveWidth   = 70
	liveHeight  = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// shades from empty to full, indexed by the live fraction of a block
var shades = []rune{' ', '░', '▒', '▓', '█'}

// LiveRenderer prints a downsampled board on every tick, at most frameRate
// times per second. It is a sim.Observer for headless runs.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
}

// NewLiveRenderer draws into a width x height character canvas. A frameRate
// of zero draws every tick.
func NewLiveRenderer(out io.Writer, width, height, frameRate int) *LiveRenderer {
	if width <= 0 {
		width = liveWidth
	}
	if height <= 0 {
		height = liveHeight
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnTick(gen uint64, g *life.Grid) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}
	r.draw(g)
	r.render(gen, g.Population())
}

// draw maps each canvas character onto a block of cells and shades it by the
// fraction of live cells in that block.
func (r *LiveRenderer) draw(g *life.Grid) {
	rows, cols := len(r.canvas), len(r.canvas[0])
	cells := g.Cells()
	for cy := 0; cy < rows; cy++ {
		y0, y1 := cy*g.Height()/rows, (cy+1)*g.Height()/rows
		if y1 == y0 {
			y1 = y0 + 1
		}
		for cx := 0; cx < cols; cx++ {
			x0, x1 := cx*g.Width()/cols, (cx+1)*g.Width()/cols
			if x1 == x0 {
				x1 = x0 + 1
			}
			alive, total := 0, 0
			for y := y0; y < y1 && y < g.Height(); y++ {
				for x := x0; x < x1 && x < g.Width(); x++ {
					total++
					if cells[g.Index(x, y)] == life.Alive {
						alive++
					}
				}
			}
			r.canvas[cy][cx] = shade(alive, total)
		}
	}
}

func shade(alive, total int) rune {
	if total == 0 || alive == 0 {
		return shades[0]
	}
	i := 1 + alive*(len(shades)-2)/total
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

func (r *LiveRenderer) render(gen uint64, pop int) {
	width := len(r.canvas[0])
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  gen %d  pop %d\n", gen, pop))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }
