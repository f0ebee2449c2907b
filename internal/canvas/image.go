package canvas

import (
	"image"
	"image/color"
)

// bgraImage is a draw.Image backed directly by a BGRA byte buffer, so the
// rest of the canvas package (and the rasterx/freetype drawers it feeds)
// can paint straight into the frame buffer the Transport ultimately
// consumes — no per-frame RGBA-to-BGRA conversion pass.
type bgraImage struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

func (p *bgraImage) ColorModel() color.Model { return color.RGBAModel }

func (p *bgraImage) Bounds() image.Rectangle { return p.Rect }

func (p *bgraImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *bgraImage) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	px := p.Pix[i : i+4 : i+4]
	return color.RGBA{R: px[2], G: px[1], B: px[0], A: px[3]}
}

func (p *bgraImage) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	r, g, b, a := c.RGBA()
	i := p.PixOffset(x, y)
	px := p.Pix[i : i+4 : i+4]
	px[0] = byte(b >> 8)
	px[1] = byte(g >> 8)
	px[2] = byte(r >> 8)
	px[3] = byte(a >> 8)
}
