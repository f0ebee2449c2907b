package player

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TweenTrack is the per-animation runtime state: the immutable initial
// snapshot (keyframe 0), the ordered remaining segments, and the mutable
// interpolated state at the current playhead.
//
// The reference animation library mutates its target state bags in
// place; this implementation sidesteps that pitfall by treating every
// keyframe's attribute map as an immutable snapshot and producing a fresh
// interpolated map on every seek, rather than tweening a shared mutable
// object.
type TweenTrack struct {
	initial       map[string]interface{}
	segments      []Keyframe
	totalDuration float64

	state  map[string]interface{}
	active bool
}

// newTweenTrack builds a track from a descriptor's keyframes. The first
// keyframe becomes the immutable initial snapshot (its duration is
// discarded); the rest become segments.
func newTweenTrack(d AnimationDescriptor) (*TweenTrack, error) {
	if len(d.Keyframes) == 0 {
		return nil, fmt.Errorf("animation has no keyframes")
	}

	initial := cloneMap(d.Keyframes[0].Attributes)
	segments := cloneKeyframes(d.Keyframes[1:])

	var total float64
	for _, seg := range segments {
		total += seg.Duration
	}

	return &TweenTrack{
		initial:       initial,
		segments:      segments,
		totalDuration: total,
		state:         cloneMap(initial),
	}, nil
}

// seek updates the track's tween state and active flag for relative
// seconds measured from the animation's own start offset. Negative
// relative marks the animation not yet started; relative past the total
// duration marks it complete. Both transitions toggle Active, standing in
// for the reference engine's onStart/onComplete hooks.
func (t *TweenTrack) seek(relative float64) {
	switch {
	case relative < 0:
		t.active = false
		t.state = cloneMap(t.initial)
		return
	case len(t.segments) == 0:
		// A lone keyframe has no segment to traverse; it is a static
		// pose held active for as long as the animation is on-screen.
		t.active = true
		t.state = cloneMap(t.initial)
		return
	case relative > t.totalDuration:
		t.active = false
		t.state = cloneMap(t.segments[len(t.segments)-1].Attributes)
		return
	}

	// relative is in [0, totalDuration]: the animation is on-screen for
	// its whole span including the instant it completes — the caller
	// sees the final pose on its last active frame rather than it
	// vanishing one tick early.
	t.active = true
	cumulative := 0.0
	prev := t.initial
	for _, seg := range t.segments {
		segEnd := cumulative + seg.Duration
		if relative < segEnd {
			frac := 1.0
			if seg.Duration > 0 {
				frac = (relative - cumulative) / seg.Duration
			}
			t.state = lerpAttrs(prev, seg.Attributes, frac)
			return
		}
		cumulative = segEnd
		prev = seg.Attributes
	}
	t.state = cloneMap(t.segments[len(t.segments)-1].Attributes)
}

func lerpAttrs(from, to map[string]interface{}, frac float64) map[string]interface{} {
	out := make(map[string]interface{}, len(from)+len(to))
	for k, v := range from {
		out[k] = v
	}
	for k, toVal := range to {
		if fromVal, ok := from[k]; ok {
			out[k] = lerpValue(fromVal, toVal, frac)
		} else {
			out[k] = toVal
		}
	}
	return out
}

func lerpValue(a, b interface{}, frac float64) interface{} {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return lerp(av, bv, frac)
		}
	case int:
		if bv, ok := b.(int); ok {
			return int(math.Round(lerp(float64(av), float64(bv), frac)))
		}
	case string:
		if bv, ok := b.(string); ok {
			if ca, err := parseHexColor(av); err == nil {
				if cb, err := parseHexColor(bv); err == nil {
					return formatHexColor(lerpRGB(ca, cb, frac))
				}
			}
		}
	}
	if frac >= 1 {
		return b
	}
	return a
}

// lerp linearly interpolates between a and b at frac in [0,1]. Adapted
// from the PDF-to-video renderer's keyframe interpolator.
func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}

type rgb struct{ r, g, b uint8 }

func parseHexColor(s string) (rgb, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb{}, fmt.Errorf("not a 6-digit hex color: %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, err
	}
	return rgb{r: uint8(v >> 16), g: uint8(v >> 8), b: uint8(v)}, nil
}

func formatHexColor(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func lerpRGB(a, b rgb, frac float64) rgb {
	return rgb{
		r: uint8(math.Round(lerp(float64(a.r), float64(b.r), frac))),
		g: uint8(math.Round(lerp(float64(a.g), float64(b.g), frac))),
		b: uint8(math.Round(lerp(float64(a.b), float64(b.b), frac))),
	}
}
