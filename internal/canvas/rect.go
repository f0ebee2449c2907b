package canvas

import (
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
)

// fillRect draws an anti-aliased filled rectangle onto dst using rasterx's
// scanline filler, the teacher's declared-but-unused path-fill dependency.
func fillRect(dst draw.Image, x, y, w, h float64, col color.Color) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(col)

	filler.Start(rasterx.ToFixedP(x, y))
	filler.Line(rasterx.ToFixedP(x+w, y))
	filler.Line(rasterx.ToFixedP(x+w, y+h))
	filler.Line(rasterx.ToFixedP(x, y+h))
	filler.Stop(true)
	filler.Draw()
}
