// Package timelines holds the built-in timeline functions registered at
// startup by the Director, the process that loads movies. Movies that need something bespoke register their own
// functions against the same registry; these two cover the common case of
// a screenplay entry that just wants to declare its drawables inline.
package timelines

import (
	"encoding/json"

	"github.com/fcurrie/ledsign/internal/player"
)

// Register installs the built-in timeline functions into r.
func Register(r *player.Registry) {
	r.Register("static", Static)
	r.Register("scroll-text", ScrollText)
}

// Static returns the animation descriptors listed verbatim under the
// screenplay entry's "elements" param — no per-cycle variation. Each
// element is decoded the same way a YAML movie file decodes an
// AnimationDescriptor, via its generic map representation.
func Static(sign player.Sign, params, data map[string]interface{}, cycle int) []player.AnimationDescriptor {
	raw, ok := params["elements"]
	if !ok {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	out := make([]player.AnimationDescriptor, 0, len(list))
	for _, e := range list {
		d, err := decodeDescriptor(e)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ScrollText produces a single text drawable that scrolls horizontally
// from one edge of the sign to the other over the param "duration"
// seconds — params: text, fill, fontSize, y, duration. Every cycle
// scrolls the same path from the right edge; cycle is not used.
func ScrollText(sign player.Sign, params, data map[string]interface{}, cycle int) []player.AnimationDescriptor {
	text, _ := params["text"].(string)
	fill, _ := params["fill"].(string)
	if fill == "" {
		fill = "#ffffff"
	}
	fontSize, _ := params["fontSize"].(float64)
	if fontSize == 0 {
		fontSize = 12
	}
	y, _ := params["y"].(float64)
	duration, _ := params["duration"].(float64)
	if duration <= 0 {
		duration = 4
	}

	startX := float64(sign.Width)
	endX := -float64(len(text)) * fontSize * 0.6

	return []player.AnimationDescriptor{
		{
			Kind:  player.KindText,
			Layer: 0,
			Start: 0,
			Props: map[string]interface{}{
				"fill":     fill,
				"text":     text,
				"fontSize": fontSize,
			},
			Keyframes: []player.Keyframe{
				{Duration: 0, Attributes: map[string]interface{}{"x": startX, "y": y}},
				{Duration: duration, Attributes: map[string]interface{}{"x": endX, "y": y}},
			},
		},
	}
}

func decodeDescriptor(v interface{}) (player.AnimationDescriptor, error) {
	var d player.AnimationDescriptor
	blob, err := json.Marshal(v)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal(blob, &d); err != nil {
		return d, err
	}
	return d, nil
}
