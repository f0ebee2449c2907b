// Package canvas implements the off-screen BGRA drawing surface the
// Renderer paints into: one allocation at startup, reused for every
// play() call, exported as a flat byte buffer for the Orchestrator to
// enqueue.
package canvas

import (
	"fmt"
	"image"
	"image/color"
)

// Canvas is a fixed-size BGRA raster surface.
type Canvas struct {
	width, height int
	img           *bgraImage
	theme         *image.RGBA
	themeAlpha    float64
	text          *TextRenderer
}

// New allocates a canvas of the given geometry. themeTag selects an
// embedded SVG watermark (empty disables it); fontPath optionally names a
// TrueType font file for text drawables (empty falls back to a built-in
// bitmap font).
func New(width, height int, themeTag, fontPath string) (*Canvas, error) {
	img := &bgraImage{
		Pix:    make([]byte, width*height*4),
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	theme, err := renderTheme(themeTag, width, height)
	if err != nil {
		return nil, fmt.Errorf("canvas theme: %w", err)
	}

	text, err := NewTextRenderer(fontPath)
	if err != nil {
		return nil, fmt.Errorf("canvas text renderer: %w", err)
	}

	return &Canvas{
		width:      width,
		height:     height,
		img:        img,
		theme:      theme,
		themeAlpha: 0.12,
		text:       text,
	}, nil
}

// Clear blanks the surface to transparent black and, if a theme watermark
// is configured, composites it in as a faint background wash before any
// animation draws.
func (c *Canvas) Clear() {
	for i := range c.img.Pix {
		c.img.Pix[i] = 0
	}
	if c.theme == nil {
		return
	}

	b := c.theme.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			tr, tg, tb, ta := c.theme.At(x, y).RGBA()
			if ta == 0 {
				continue
			}
			a := c.themeAlpha * float64(ta) / 0xFFFF
			c.img.Set(x, y, color.RGBA{
				R: scaleChannel(tr, a),
				G: scaleChannel(tg, a),
				B: scaleChannel(tb, a),
				A: scaleChannel(ta, a),
			})
		}
	}
}

func scaleChannel(v uint32, a float64) uint8 {
	return uint8(float64(v>>8) * a)
}

// FillRect draws a filled, anti-aliased rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	fillRect(c.img, x, y, w, h, col)
}

// DrawText draws text with its baseline at (x, y).
func (c *Canvas) DrawText(text string, x, y int, size float64, col color.Color) error {
	return c.text.Draw(c.img, text, x, y, size, col)
}

// GetImageData returns the canvas' raw BGRA pixel buffer. The returned
// slice aliases the canvas' own storage — callers that enqueue it onto
// the broker must copy it, since the next Clear() mutates it in place.
func (c *Canvas) GetImageData() []byte {
	return c.img.Pix
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }
