package render

import (
	"fmt"
	"image/color"

	"github.com/san-kum/lifesim/internal/life"
)

// DefaultDecay is the factor applied to a dead cell's red channel each tick.
const DefaultDecay = 0.7

// Palette controls how cell states become pixels.
type Palette struct {
	On    color.RGBA
	Decay float32
}

// DefaultPalette paints live cells pure red and fades dead ones by 0.7.
var DefaultPalette = Palette{
	On:    color.RGBA{R: 255, A: 255},
	Decay: DefaultDecay,
}

// Buffer holds one color per cell. Dead cells fade from whatever red they
// had on the previous update, so the buffer carries state between ticks.
type Buffer struct {
	w, h    int
	palette Palette
	red     []float32
	pix     []color.RGBA
}

func NewBuffer(width, height int) (*Buffer, error) {
	return NewBufferWithPalette(width, height, DefaultPalette)
}

func NewBufferWithPalette(width, height int, p Palette) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", life.ErrInvalidDimensions, width, height)
	}
	b := &Buffer{
		w:       width,
		h:       height,
		palette: p,
		red:     make([]float32, width*height),
		pix:     make([]color.RGBA, width*height),
	}
	b.Reset()
	return b, nil
}

func (b *Buffer) Size() (int, int) { return b.w, b.h }
func (b *Buffer) Palette() Palette { return b.palette }

// Pixels exposes the color slice in row-major order.
func (b *Buffer) Pixels() []color.RGBA { return b.pix }

func (b *Buffer) At(x, y int) color.RGBA { return b.pix[x+y*b.w] }

// Red returns the unrounded red intensity of (x, y) in [0, 255].
func (b *Buffer) Red(x, y int) float32 { return b.red[x+y*b.w] }

// Reset paints the whole buffer opaque black.
func (b *Buffer) Reset() {
	for i := range b.pix {
		b.red[i] = 0
		b.pix[i] = color.RGBA{A: 255}
	}
}

// Update derives new colors from g. Each cell reads its own previous red
// value before overwriting it.
func (b *Buffer) Update(g *life.Grid) error {
	if g.Width() != b.w || g.Height() != b.h {
		return fmt.Errorf("%w: grid %dx%d, buffer %dx%d", life.ErrSizeMismatch, g.Width(), g.Height(), b.w, b.h)
	}
	on := b.palette.On
	for i, c := range g.Cells() {
		if c == life.Alive {
			b.red[i] = float32(on.R)
			b.pix[i] = on
			continue
		}
		r := b.red[i] * b.palette.Decay
		b.red[i] = r
		b.pix[i] = color.RGBA{R: uint8(r + 0.5), A: 255}
	}
	return nil
}

// WriteRGBA packs the buffer as 8-bit RGBA bytes into dst, which must hold
// at least 4*width*height bytes.
func (b *Buffer) WriteRGBA(dst []byte) {
	for i, c := range b.pix {
		base := i * 4
		dst[base+0] = c.R
		dst[base+1] = c.G
		dst[base+2] = c.B
		dst[base+3] = c.A
	}
}
