// Package animation describes the open and close transitions of a toast.
//
// Each model.Animation maps to a descriptor naming the animated property and
// its open/close ranges. An Animation built from a descriptor is sampled by
// the renderer at normalized progress t in [0,1].
package animation

import (
	"fmt"
	"time"

	"github.com/jmylchreest/toastui/internal/model"
)

// DefaultDuration is the length of every open and close transition.
const DefaultDuration = 600 * time.Millisecond

// Phase distinguishes the open transition from the close transition.
type Phase int

const (
	PhaseOpen Phase = iota
	PhaseClose
)

func (p Phase) String() string {
	if p == PhaseClose {
		return "close"
	}
	return "open"
}

// Direction is +1 for toasts anchored to the right edge and -1 for the left.
type Direction int

const (
	FromLeft  Direction = -1
	FromRight Direction = 1
)

// DirectionFor returns the slide/rotate direction for a corner.
func DirectionFor(pos model.Position) Direction {
	if pos.IsLeft() {
		return FromLeft
	}
	return FromRight
}

// Property is the visual property an animation drives.
type Property int

const (
	PropertyTranslateX Property = iota
	PropertyOpacity
	PropertyRotate
)

// Range is a from/to pair for the animated property.
type Range struct {
	From, To float64
}

type descriptor struct {
	property Property
	open     func(dir Direction, width float64) Range
	close    func(dir Direction, width float64) Range
}

var descriptors = map[model.Animation]descriptor{
	model.AnimationSlide: {
		property: PropertyTranslateX,
		open: func(dir Direction, width float64) Range {
			return Range{From: float64(dir) * width, To: 0}
		},
		close: func(dir Direction, width float64) Range {
			return Range{From: 0, To: float64(dir) * width}
		},
	},
	model.AnimationFade: {
		property: PropertyOpacity,
		open:     func(Direction, float64) Range { return Range{From: 0, To: 1} },
		close:    func(Direction, float64) Range { return Range{From: 1, To: 0} },
	},
	model.AnimationRotate: {
		property: PropertyRotate,
		open: func(dir Direction, _ float64) Range {
			if dir == FromRight {
				return Range{From: 360, To: 0}
			}
			return Range{From: 0, To: 360}
		},
		close: func(dir Direction, _ float64) Range {
			if dir == FromRight {
				return Range{From: 0, To: 360}
			}
			return Range{From: 360, To: 0}
		},
	},
}

// Animation is a single run-once transition.
type Animation struct {
	Kind     model.Animation
	Phase    Phase
	Property Property
	Range    Range
	Duration time.Duration
}

// New builds the transition for kind and phase. Unknown kinds fall back to slide.
func New(kind model.Animation, phase Phase, pos model.Position, width int, duration time.Duration) Animation {
	d, ok := descriptors[kind]
	if !ok {
		kind = model.AnimationSlide
		d = descriptors[kind]
	}
	if duration <= 0 {
		duration = DefaultDuration
	}

	dir := DirectionFor(pos)
	r := d.open(dir, float64(width))
	if phase == PhaseClose {
		r = d.close(dir, float64(width))
	}

	return Animation{
		Kind:     kind,
		Phase:    phase,
		Property: d.property,
		Range:    r,
		Duration: duration,
	}
}

// Value returns the property value at progress t.
func (a Animation) Value(t float64) float64 {
	e := ease(clamp01(t))
	return a.Range.From + (a.Range.To-a.Range.From)*e
}

// At returns the frame at progress t.
func (a Animation) At(t float64) Frame {
	return a.FrameFor(a.Value(t))
}

// FrameFor returns the frame for a raw property value.
func (a Animation) FrameFor(v float64) Frame {
	f := Identity()
	switch a.Property {
	case PropertyTranslateX:
		f.TranslateX = v
	case PropertyOpacity:
		f.Opacity = v
	case PropertyRotate:
		f.Rotate = v
	}
	return f
}

// Progress converts elapsed time into normalized progress.
func (a Animation) Progress(elapsed time.Duration) float64 {
	if a.Duration <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(a.Duration))
}

// Frame is the transform applied to the toast content at one instant.
type Frame struct {
	TranslateX float64
	Rotate     float64
	Opacity    float64
}

// Identity returns the resting frame.
func Identity() Frame {
	return Frame{Opacity: 1}
}

// CSS renders the frame as a GTK CSS rule for selector.
func (f Frame) CSS(selector string) string {
	return fmt.Sprintf("%s { opacity: %.3f; transform: translateX(%.1fpx) rotate(%.1fdeg); }",
		selector, f.Opacity, f.TranslateX, f.Rotate)
}

// ease is a symmetric ease-in-out curve.
func ease(t float64) float64 {
	return t * t * (3 - 2*t)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
