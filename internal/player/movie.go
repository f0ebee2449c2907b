// Package player implements the Renderer: a deterministic, headless
// canvas animation engine that compiles a declarative "movie" description
// into layered, timed tween tracks and produces one raster frame per
// play() call.
package player

// Sign describes the physical target the movie is composed for.
type Sign struct {
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Theme  string `yaml:"theme" json:"theme"`
	FPS    int    `yaml:"fps,omitempty" json:"fps,omitempty"`
}

// Movie is the declarative animation description: sign metadata, an
// opaque data bag passed through to timeline functions, and an ordered
// screenplay of timeline invocations.
type Movie struct {
	Sign       Sign                   `yaml:"sign" json:"sign"`
	Data       map[string]interface{} `yaml:"data" json:"data"`
	Screenplay []ScreenplayEntry      `yaml:"screenplay" json:"screenplay"`
}

// ScreenplayEntry names one timeline-function invocation: which function,
// when its scene starts relative to the movie, and the parameters passed
// to it.
type ScreenplayEntry struct {
	Timeline string                 `yaml:"timeline" json:"timeline"`
	Start    float64                `yaml:"start" json:"start"`
	Params   map[string]interface{} `yaml:"params" json:"params"`
}

// Keyframe holds a duration (time to tween into this keyframe's state
// from the previous one) plus the attribute values being tweened. The
// first keyframe of an animation is the initial state; its duration is
// never used as a segment length.
type Keyframe struct {
	Duration   float64                `yaml:"duration" json:"duration"`
	Attributes map[string]interface{} `yaml:"attributes" json:"attributes"`
}

// Drawable kind tags. There is no open-ended extension requirement; these
// two are the entire set, dispatched through drawableRegistry rather than
// subclassing.
const (
	KindRectangle = "rectangle"
	KindText      = "text"
)

// AnimationDescriptor is one drawable element: its kind, paint order
// (layer), when it starts within its enclosing scene, static props that
// never change, and its keyframe sequence.
type AnimationDescriptor struct {
	Kind      string                 `yaml:"kind" json:"kind"`
	Layer     int                    `yaml:"layer" json:"layer"`
	Start     float64                `yaml:"start" json:"start"`
	Props     map[string]interface{} `yaml:"props" json:"props"`
	Keyframes []Keyframe             `yaml:"keyframes" json:"keyframes"`
}

// TimelineFunc is a pure function generating animation descriptors for
// one cycle of one scene. It is invoked once per cycle, so content may
// vary between loops.
type TimelineFunc func(sign Sign, params, data map[string]interface{}, cycle int) []AnimationDescriptor

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return cloneMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneKeyframes(kfs []Keyframe) []Keyframe {
	out := make([]Keyframe, len(kfs))
	for i, kf := range kfs {
		out[i] = Keyframe{Duration: kf.Duration, Attributes: cloneMap(kf.Attributes)}
	}
	return out
}

// deepCopyMovie returns an independent copy of m so that compilation (and
// the tween engine it drives) never mutates the caller's original movie —
// reloading must always see pristine input.
func deepCopyMovie(m Movie) Movie {
	entries := make([]ScreenplayEntry, len(m.Screenplay))
	for i, e := range m.Screenplay {
		entries[i] = ScreenplayEntry{Timeline: e.Timeline, Start: e.Start, Params: cloneMap(e.Params)}
	}
	return Movie{
		Sign:       m.Sign,
		Data:       cloneMap(m.Data),
		Screenplay: entries,
	}
}
