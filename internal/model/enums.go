package model

import (
	"fmt"
	"strings"
)

// Durability controls how long a toast stays on screen before auto-dismissing.
type Durability int

const (
	DurabilityShort Durability = iota
	DurabilityLong
	DurabilityNever
)

// Animation selects the open/close transition.
type Animation int

const (
	AnimationSlide Animation = iota
	AnimationFade
	AnimationRotate
)

// Position is the screen corner a toast is anchored to.
type Position int

const (
	PositionRightBottom Position = iota
	PositionRightTop
	PositionLeftBottom
	PositionLeftTop
)

// Border is the clip shape applied to the icon.
type Border int

const (
	BorderCircle Border = iota
	BorderSquare
)

// Sound is one of the bundled notification sounds.
type Sound int

const (
	SoundICQ Sound = iota
	SoundApple
	SoundTelegram
	SoundVK
)

// enumNames holds the canonical name of each value, indexed by value.
// aliases maps additional accepted spellings to a value.
type enumNames struct {
	kind    string
	names   []string
	aliases map[string]int
}

func (e enumNames) name(v int) string {
	if v < 0 || v >= len(e.names) {
		return fmt.Sprintf("%s(%d)", e.kind, v)
	}
	return e.names[v]
}

func (e enumNames) parse(s string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	for i, n := range e.names {
		if n == key {
			return i, nil
		}
	}
	if v, ok := e.aliases[key]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("invalid %s %q, must be one of: %s", e.kind, s, strings.Join(e.names, ", "))
}

var (
	durabilityNames = enumNames{
		kind:  "durability",
		names: []string{"short", "long", "never"},
	}
	animationNames = enumNames{
		kind:  "animation",
		names: []string{"slide", "fade", "rotate"},
		aliases: map[string]int{
			"display":     int(AnimationSlide),
			"transparent": int(AnimationFade),
			"none":        int(AnimationFade),
		},
	}
	positionNames = enumNames{
		kind:  "position",
		names: []string{"right-bottom", "right-top", "left-bottom", "left-top"},
		aliases: map[string]int{
			"bottom-right": int(PositionRightBottom),
			"top-right":    int(PositionRightTop),
			"bottom-left":  int(PositionLeftBottom),
			"top-left":     int(PositionLeftTop),
		},
	}
	borderNames = enumNames{
		kind:  "border",
		names: []string{"circle", "square"},
	}
	soundNames = enumNames{
		kind:  "sound",
		names: []string{"icq", "apple", "telegram", "vk"},
	}
)

func (d Durability) String() string { return durabilityNames.name(int(d)) }
func (a Animation) String() string  { return animationNames.name(int(a)) }
func (p Position) String() string   { return positionNames.name(int(p)) }
func (b Border) String() string     { return borderNames.name(int(b)) }
func (s Sound) String() string      { return soundNames.name(int(s)) }

// ParseDurability parses a durability name such as "short".
func ParseDurability(s string) (Durability, error) {
	v, err := durabilityNames.parse(s)
	return Durability(v), err
}

// ParseAnimation parses an animation name. "display" and "transparent"
// are accepted for slide and fade respectively.
func ParseAnimation(s string) (Animation, error) {
	v, err := animationNames.parse(s)
	return Animation(v), err
}

// ParsePosition parses a corner name. Both "right-top" and "top-right" forms are accepted.
func ParsePosition(s string) (Position, error) {
	v, err := positionNames.parse(s)
	return Position(v), err
}

// ParseBorder parses an icon border name.
func ParseBorder(s string) (Border, error) {
	v, err := borderNames.parse(s)
	return Border(v), err
}

// ParseSound parses a sound name.
func ParseSound(s string) (Sound, error) {
	v, err := soundNames.parse(s)
	return Sound(v), err
}

// IsLeft reports whether the position is anchored to the left screen edge.
func (p Position) IsLeft() bool {
	return p == PositionLeftTop || p == PositionLeftBottom
}

// IsBottom reports whether the position is anchored to the bottom screen edge.
func (p Position) IsBottom() bool {
	return p == PositionLeftBottom || p == PositionRightBottom
}

// Durabilities returns all durability values.
func Durabilities() []Durability {
	return []Durability{DurabilityShort, DurabilityLong, DurabilityNever}
}

// Positions returns all position values.
func Positions() []Position {
	return []Position{PositionRightBottom, PositionRightTop, PositionLeftBottom, PositionLeftTop}
}

// Sounds returns all sound values.
func Sounds() []Sound {
	return []Sound{SoundICQ, SoundApple, SoundTelegram, SoundVK}
}

func (d Durability) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (a Animation) MarshalText() ([]byte, error)  { return []byte(a.String()), nil }
func (p Position) MarshalText() ([]byte, error)   { return []byte(p.String()), nil }
func (b Border) MarshalText() ([]byte, error)     { return []byte(b.String()), nil }
func (s Sound) MarshalText() ([]byte, error)      { return []byte(s.String()), nil }

func (d *Durability) UnmarshalText(text []byte) error {
	v, err := ParseDurability(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (a *Animation) UnmarshalText(text []byte) error {
	v, err := ParseAnimation(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (p *Position) UnmarshalText(text []byte) error {
	v, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (b *Border) UnmarshalText(text []byte) error {
	v, err := ParseBorder(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (s *Sound) UnmarshalText(text []byte) error {
	v, err := ParseSound(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
