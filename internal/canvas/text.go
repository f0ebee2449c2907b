package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextRenderer draws glyphs onto the canvas. With a TrueType font loaded
// it rasterizes via freetype; otherwise it falls back to the fixed 7x13
// bitmap font from golang.org/x/image/font/basicfont, which needs no
// asset file.
type TextRenderer struct {
	ttf *truetype.Font
}

// NewTextRenderer loads fontPath if given, or returns a renderer that
// uses the built-in bitmap font.
func NewTextRenderer(fontPath string) (*TextRenderer, error) {
	if fontPath == "" {
		return &TextRenderer{}, nil
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font %q: %w", fontPath, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", fontPath, err)
	}
	return &TextRenderer{ttf: f}, nil
}

// Draw renders text with its baseline at (x, y) in color col at the given
// point size. The built-in bitmap fallback ignores size and always draws
// 7x13 glyphs.
func (t *TextRenderer) Draw(dst draw.Image, text string, x, y int, size float64, col color.Color) error {
	if t.ttf == nil {
		return t.drawBasic(dst, text, x, y, col)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(t.ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(col))

	pt := freetype.Pt(x, y)
	_, err := ctx.DrawString(text, pt)
	if err != nil {
		return fmt.Errorf("draw text: %w", err)
	}
	return nil
}

func (t *TextRenderer) drawBasic(dst draw.Image, text string, x, y int, col color.Color) error {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return nil
}
