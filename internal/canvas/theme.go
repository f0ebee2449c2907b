package canvas

import (
	"bytes"
	"embed"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/*.svg
var themeAssets embed.FS

// renderTheme decodes the named theme's embedded SVG watermark once and
// rasterizes it to the sign's exact resolution, giving meaning to the
// Sign's otherwise-undefined theme tag. An empty tag disables the
// watermark entirely.
func renderTheme(tag string, width, height int) (*image.RGBA, error) {
	if tag == "" {
		return nil, nil
	}

	data, err := themeAssets.ReadFile("assets/" + tag + ".svg")
	if err != nil {
		return nil, fmt.Errorf("unknown theme tag %q: %w", tag, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse theme %q svg: %w", tag, err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
