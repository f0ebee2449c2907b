package player

import (
	"fmt"
	"math"
	"sort"
)

const defaultFPS = 240

// Animation is one descriptor's runtime pairing of static configuration
// and mutable tween state.
type Animation struct {
	Descriptor AnimationDescriptor
	Track      *TweenTrack
}

// Active reports whether this animation is on-screen at the track's
// current playhead.
func (a *Animation) Active() bool {
	return a.Track.active
}

// State returns the current tween state map.
func (a *Animation) State() map[string]interface{} {
	return a.Track.state
}

type sceneTimeline struct {
	start      float64
	animations []*Animation
}

func (s *sceneTimeline) seek(masterT float64) {
	relative := masterT - s.start
	for _, a := range s.animations {
		a.Track.seek(relative - a.Descriptor.Start)
	}
}

func (s *sceneTimeline) duration() float64 {
	var d float64
	for _, a := range s.animations {
		end := a.Descriptor.Start + a.Track.totalDuration
		if end > d {
			d = end
		}
	}
	return d
}

// MasterTimeline spans [0, duration] and composes per-scene sub-timelines,
// each holding one tween track per animation.
type MasterTimeline struct {
	scenes   []*sceneTimeline
	duration float64
}

// Seek updates every scene's (and so every animation's) tween state to
// its interpolated value at master time t.
func (m *MasterTimeline) Seek(t float64) {
	for _, sc := range m.scenes {
		sc.seek(t)
	}
}

// Animations returns every animation across all scenes, in ascending
// layer order (painter's algorithm draw order).
func (m *MasterTimeline) Animations() []*Animation {
	var all []*Animation
	for _, sc := range m.scenes {
		all = append(all, sc.animations...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Descriptor.Layer < all[j].Descriptor.Layer
	})
	return all
}

// CompiledMovie is the result of Load: a master timeline plus the
// bookkeeping the Renderer needs to drive play().
type CompiledMovie struct {
	Sign   Sign
	Data   map[string]interface{}
	Master *MasterTimeline

	Duration float64
	FPS      int
	Frames   int
	Frame    int
	Cycle    int
}

// Load compiles a movie for one cycle: deep-copies the input, invokes
// each screenplay entry's timeline function, builds a tween track per
// returned descriptor, and assembles the master timeline.
func Load(registry *Registry, movie Movie, cycle int) (*CompiledMovie, error) {
	mv := deepCopyMovie(movie)

	scenes := make([]*sceneTimeline, 0, len(mv.Screenplay))
	for _, entry := range mv.Screenplay {
		fn, ok := registry.Lookup(entry.Timeline)
		if !ok {
			return nil, fmt.Errorf("movie references unknown timeline function %q", entry.Timeline)
		}

		descriptors := fn(mv.Sign, entry.Params, mv.Data, cycle)
		animations := make([]*Animation, 0, len(descriptors))
		for _, d := range descriptors {
			track, err := newTweenTrack(d)
			if err != nil {
				return nil, fmt.Errorf("timeline %q: %w", entry.Timeline, err)
			}
			animations = append(animations, &Animation{Descriptor: d, Track: track})
		}

		sort.SliceStable(animations, func(i, j int) bool {
			return animations[i].Descriptor.Layer < animations[j].Descriptor.Layer
		})

		scenes = append(scenes, &sceneTimeline{start: entry.Start, animations: animations})
	}

	var duration float64
	for _, sc := range scenes {
		end := sc.start + sc.duration()
		if end > duration {
			duration = end
		}
	}

	fps := mv.Sign.FPS
	if fps <= 0 {
		fps = defaultFPS
	}

	frames := int(math.Ceil(duration * float64(fps)))
	if frames < 1 {
		frames = 1
	}

	return &CompiledMovie{
		Sign:     mv.Sign,
		Data:     mv.Data,
		Master:   &MasterTimeline{scenes: scenes, duration: duration},
		Duration: duration,
		FPS:      fps,
		Frames:   frames,
	}, nil
}
