package player

import (
	"github.com/fcurrie/ledsign/internal/canvas"
)

// drawFunc paints one animation's current state onto the canvas at the
// given perceptual brightness.
type drawFunc func(c *canvas.Canvas, d AnimationDescriptor, state map[string]interface{}, brightness int)

// drawableRegistry dispatches by kind tag rather than by subclass — there
// is no open-ended extension requirement, and rectangle/text are the
// entire set.
var drawableRegistry = map[string]drawFunc{
	KindRectangle: drawRectangle,
	KindText:      drawText,
}

func drawRectangle(c *canvas.Canvas, d AnimationDescriptor, state map[string]interface{}, brightness int) {
	fillHex := attrString(state, d.Props, "fill", "#ffffff")
	x := attrFloat(state, d.Props, "x", 0)
	y := attrFloat(state, d.Props, "y", 0)
	w := attrFloat(state, d.Props, "width", 0)
	h := attrFloat(state, d.Props, "height", 0)
	alpha := attrFloat(state, d.Props, "alpha", 1)

	fill, err := parseHexColor(fillHex)
	if err != nil {
		return
	}
	col := rgbToColor(compensate(fill, brightness), alpha)
	c.FillRect(x, y, w, h, col)
}

func drawText(c *canvas.Canvas, d AnimationDescriptor, state map[string]interface{}, brightness int) {
	fillHex := attrString(state, d.Props, "fill", "#ffffff")
	text := attrString(state, d.Props, "text", "")
	x := attrFloat(state, d.Props, "x", 0)
	y := attrFloat(state, d.Props, "y", 0)
	size := attrFloat(state, d.Props, "fontSize", 12)
	alpha := attrFloat(state, d.Props, "alpha", 1)

	if text == "" {
		return
	}

	fill, err := parseHexColor(fillHex)
	if err != nil {
		return
	}
	col := rgbToColor(compensate(fill, brightness), alpha)
	_ = c.DrawText(text, int(x), int(y), size, col)
}

// attrLookup resolves an attribute by checking the tween state first,
// then falling back to the animation's static props — this lets
// keyframes tween a subset of attributes while leaving the rest fixed.
func attrLookup(state, props map[string]interface{}, name string) (interface{}, bool) {
	if state != nil {
		if v, ok := state[name]; ok {
			return v, true
		}
	}
	if props != nil {
		if v, ok := props[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func attrFloat(state, props map[string]interface{}, name string, def float64) float64 {
	v, ok := attrLookup(state, props, name)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

func attrString(state, props map[string]interface{}, name, def string) string {
	v, ok := attrLookup(state, props, name)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}
