package player

import (
	"testing"

	"github.com/fcurrie/ledsign/internal/canvas"
)

func helloWorldMovie() Movie {
	return Movie{
		Sign: Sign{Width: 320, Height: 64, FPS: 240},
		Screenplay: []ScreenplayEntry{
			{
				Timeline: "static",
				Start:    0,
				Params: map[string]interface{}{
					"elements": []interface{}{
						map[string]interface{}{
							"kind":  KindText,
							"layer": 0,
							"start": 0.0,
							"props": map[string]interface{}{
								"fill":     "#ffffff",
								"fontSize": 16.0,
								"x":        40.0,
								"y":        40.0,
							},
							"keyframes": []interface{}{
								map[string]interface{}{
									"duration":   0.0,
									"attributes": map[string]interface{}{"text": "Hello, World!"},
								},
								map[string]interface{}{
									"duration":   4.0,
									"attributes": map[string]interface{}{"text": "Hello, World!"},
								},
							},
						},
					},
				},
			},
		},
	}
}

func staticTimeline(sign Sign, params, data map[string]interface{}, cycle int) []AnimationDescriptor {
	raw, ok := params["elements"]
	if !ok {
		return nil
	}
	list := raw.([]interface{})
	out := make([]AnimationDescriptor, 0, len(list))
	for _, e := range list {
		m := e.(map[string]interface{})
		props := m["props"].(map[string]interface{})
		kfsRaw := m["keyframes"].([]interface{})
		kfs := make([]Keyframe, len(kfsRaw))
		for i, kfRaw := range kfsRaw {
			kf := kfRaw.(map[string]interface{})
			kfs[i] = Keyframe{
				Duration:   kf["duration"].(float64),
				Attributes: kf["attributes"].(map[string]interface{}),
			}
		}
		out = append(out, AnimationDescriptor{
			Kind:      m["kind"].(string),
			Layer:     int(m["layer"].(int)),
			Start:     m["start"].(float64),
			Props:     props,
			Keyframes: kfs,
		})
	}
	return out
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.Register("static", staticTimeline)
	return r
}

// Scenario 1 from the testable-properties section: a 320x64, 4s,
// fps=240 "Hello, World!" movie must produce exactly 960 play() calls
// before the first wrap, landing on cycle 1.
func TestHelloWorldSingleCycle(t *testing.T) {
	c, err := canvas.New(320, 64, "", "")
	if err != nil {
		t.Fatalf("canvas.New: %v", err)
	}
	reg := newTestRegistry()
	r := NewRenderer(reg, c)
	if err := r.Load(helloWorldMovie()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	wraps := 0
	for i := 0; i < 960; i++ {
		data, wrapped, err := r.Play()
		if err != nil {
			t.Fatalf("Play() at iteration %d: %v", i, err)
		}
		if len(data) != 320*64*4 {
			t.Fatalf("Play() at iteration %d: got %d bytes, want %d", i, len(data), 320*64*4)
		}
		if wrapped {
			wraps++
		}
	}

	if wraps != 1 {
		t.Fatalf("got %d wraps over 960 plays, want exactly 1", wraps)
	}
	if r.compiled.Cycle != 1 {
		t.Fatalf("got cycle %d, want 1", r.compiled.Cycle)
	}
}

// Reload invariant: after load(m); reload(), the initial tween state at
// t=0 equals keyframe 0's attributes byte-for-byte — no leaked mutation
// from a previous compilation.
func TestReloadRestoresInitialState(t *testing.T) {
	reg := newTestRegistry()
	movie := helloWorldMovie()

	first, err := Load(reg, movie, 0)
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	first.Master.Seek(0)
	firstState := first.Master.Animations()[0].State()["text"]

	second, err := Load(reg, movie, 0)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	second.Master.Seek(0)
	secondState := second.Master.Animations()[0].State()["text"]

	if firstState != secondState {
		t.Fatalf("reload state mismatch: %v != %v", firstState, secondState)
	}
	if firstState != "Hello, World!" {
		t.Fatalf("got state %v, want %q", firstState, "Hello, World!")
	}
}

func TestUnknownTimelineFunctionRejected(t *testing.T) {
	reg := NewRegistry()
	movie := helloWorldMovie()

	if _, err := Load(reg, movie, 0); err == nil {
		t.Fatal("expected error loading a movie with an unregistered timeline function")
	}
}

func TestBrightnessCompensationIdentityAtFull(t *testing.T) {
	c := rgb{r: 10, g: 200, b: 128}
	got := compensate(c, 100)
	if got != c {
		t.Fatalf("compensate at brightness=100 changed color: got %+v, want %+v", got, c)
	}
}

func TestBrightnessCompensationMonotoneAboveDarkBoostThreshold(t *testing.T) {
	// Average channel well above the 100 dark-boost threshold, so scale
	// alone governs monotonicity.
	c := rgb{r: 200, g: 210, b: 220}

	prevB := 1
	prev := compensate(c, prevB)
	for b := 10; b <= 100; b += 10 {
		cur := compensate(c, b)
		if cur.r < prev.r || cur.g < prev.g || cur.b < prev.b {
			t.Fatalf("brightness=%d produced a darker channel than brightness=%d: %+v < %+v", b, prevB, cur, prev)
		}
		prev = cur
		prevB = b
	}
}

func TestTweenTrackLoneKeyframeIsStaticAndAlwaysActive(t *testing.T) {
	d := AnimationDescriptor{
		Kind:  KindRectangle,
		Start: 0,
		Keyframes: []Keyframe{
			{Duration: 0, Attributes: map[string]interface{}{"fill": "#ff0000"}},
		},
	}
	track, err := newTweenTrack(d)
	if err != nil {
		t.Fatalf("newTweenTrack: %v", err)
	}

	track.seek(0)
	if !track.active {
		t.Fatal("lone-keyframe animation should be active once entered")
	}
	track.seek(1000)
	if !track.active {
		t.Fatal("lone-keyframe animation should remain active indefinitely")
	}
	if track.state["fill"] != "#ff0000" {
		t.Fatalf("got state %v, want fill=#ff0000", track.state)
	}
}

func TestTweenTrackInactiveBeforeStart(t *testing.T) {
	d := AnimationDescriptor{
		Kind: KindRectangle,
		Keyframes: []Keyframe{
			{Duration: 0, Attributes: map[string]interface{}{"x": 0.0}},
			{Duration: 1, Attributes: map[string]interface{}{"x": 10.0}},
		},
	}
	track, err := newTweenTrack(d)
	if err != nil {
		t.Fatalf("newTweenTrack: %v", err)
	}

	track.seek(-1)
	if track.active {
		t.Fatal("animation should be inactive before its start")
	}

	track.seek(2)
	if track.active {
		t.Fatal("animation should be inactive after its total duration")
	}
	if track.state["x"] != 10.0 {
		t.Fatalf("got frozen state %v, want x=10", track.state)
	}
}
