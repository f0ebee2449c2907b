package player

import (
	"image/color"
	"math"
)

// compensate applies the perceptual brightness-compensation function to a
// fill color before drawing: it boosts dark tones under low hardware
// brightness while leaving already-bright colors unchanged at full
// brightness. brightness is the Renderer's [1,100] perceptual value, not
// the Transport's [0,255] hardware field.
func compensate(c rgb, brightness int) rgb {
	if brightness >= 100 {
		return c
	}

	b := float64(brightness) / 100
	scale := 1 - 0.7*(1-b)

	avg := (float64(c.r) + float64(c.g) + float64(c.b)) / 3
	darkBoost := 0.0
	if avg < 100 {
		darkBoost = (1 - avg/100) * 0.1
	}
	scale += darkBoost

	adjust := func(ch uint8) uint8 {
		v := math.Round(float64(ch) * scale)
		if v > 255 {
			v = 255
		}
		if v < 0 {
			v = 0
		}
		return uint8(v)
	}

	return rgb{r: adjust(c.r), g: adjust(c.g), b: adjust(c.b)}
}

func rgbToColor(c rgb, alpha float64) color.RGBA {
	a := clamp01(alpha)
	return color.RGBA{R: c.r, G: c.g, B: c.b, A: uint8(a * 255)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
