package layout

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Orientation selects how hexes are laid out on screen.
type Orientation int

const (
	FlatTop Orientation = iota
	PointyTop
)

// ErrUnknownOrientation is returned when parsing an unrecognised name.
var ErrUnknownOrientation = errors.New("unknown orientation")

func (o Orientation) String() string {
	switch o {
	case FlatTop:
		return "flat"
	case PointyTop:
		return "pointy"
	}
	return "unknown"
}

// IsValid reports whether o is one of the defined orientations.
func (o Orientation) IsValid() bool {
	switch o {
	case FlatTop, PointyTop:
		return true
	}
	return false
}

// ParseOrientation accepts "flat", "flat-top", "pointy" and "pointy-top",
// ignoring case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat", "flat-top", "flat_top":
		return FlatTop, nil
	case "pointy", "pointy-top", "pointy_top":
		return PointyTop, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOrientation, int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Orientation) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return o.UnmarshalText([]byte(s))
}
