package player

import (
	"fmt"
	"sync"

	"github.com/fcurrie/ledsign/internal/canvas"
)

// Renderer drives one canvas through a compiled movie, producing one
// frame per Play() call. Play itself is synchronous; the mutex serializes
// it against SetBrightness, which the Director's brightness subscriber
// calls from a goroutine separate from the frame loop.
type Renderer struct {
	mu sync.Mutex

	registry *Registry
	canvas   *canvas.Canvas
	source   Movie
	compiled *CompiledMovie

	brightness int
}

// NewRenderer returns a Renderer painting onto c, using registry to
// resolve timeline-function names.
func NewRenderer(registry *Registry, c *canvas.Canvas) *Renderer {
	return &Renderer{registry: registry, canvas: c, brightness: 100}
}

// Load compiles movie for cycle 0 and becomes the active movie. On
// failure the previously active movie (if any) remains in effect — a
// movie naming an unknown timeline function must not interrupt playback.
func (r *Renderer) Load(movie Movie) error {
	compiled, err := Load(r.registry, movie, 0)
	if err != nil {
		return fmt.Errorf("load movie: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.source = movie
	r.compiled = compiled
	return nil
}

// SetBrightness updates the perceptual brightness used by the next
// frame's color compensation, clamped to [1,100].
func (r *Renderer) SetBrightness(v int) {
	if v < 1 {
		v = 1
	}
	if v > 100 {
		v = 100
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brightness = v
}

// Play advances the compiled movie by one frame and returns the rendered
// BGRA buffer. wrapped is true exactly on the frame `frames-1 -> 0`
// transition, at which point the movie is recompiled for the next cycle
// so a timeline function's content may vary between loops.
func (r *Renderer) Play() (data []byte, wrapped bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cm := r.compiled
	if cm == nil {
		return nil, false, fmt.Errorf("no movie loaded")
	}

	for attempt := 0; attempt < cm.Frames; attempt++ {
		denom := cm.Frames - 1
		if denom < 1 {
			denom = 1
		}
		progress := float64(cm.Frame) / float64(denom)
		t := cm.Duration * progress

		cm.Master.Seek(t)
		r.canvas.Clear()

		anyActive := false
		for _, a := range cm.Master.Animations() {
			if !a.Active() {
				continue
			}
			anyActive = true
			if fn, ok := drawableRegistry[a.Descriptor.Kind]; ok {
				fn(r.canvas, a.Descriptor, a.State(), r.brightness)
			}
		}

		if anyActive {
			break
		}
		cm.Frame = (cm.Frame + 1) % cm.Frames
	}

	nextFrame := cm.Frame + 1
	if nextFrame >= cm.Frames {
		wrapped = true
		nextCycle := cm.Cycle + 1

		recompiled, rerr := Load(r.registry, r.source, nextCycle)
		if rerr == nil {
			recompiled.Cycle = nextCycle
			r.compiled = recompiled
		} else {
			// Timeline functions are expected to be pure and total over
			// cycle; a recompile failure here would mean the very first
			// Load should already have failed. Keep playing the current
			// compiled movie from frame 0 rather than losing playback.
			cm.Frame = 0
			cm.Cycle = nextCycle
		}
	} else {
		cm.Frame = nextFrame
	}

	return r.canvas.GetImageData(), wrapped, nil
}
