// Package components defines ECS components for the simulation.
package components

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a creature's palette category as a 0xRRGGBB value.
// It only biases alignment toward same-colored neighbors.
type Color uint32

// Palette colors.
const (
	Cyan    Color = 0x00FFFF
	Magenta Color = 0xFF00FF
	Azure   Color = 0x007FFF
)

// String returns the palette name, or the hex value for colors outside the palette.
func (c Color) String() string {
	switch c {
	case Cyan:
		return "cyan"
	case Magenta:
		return "magenta"
	case Azure:
		return "azure"
	}
	return fmt.Sprintf("#%06X", uint32(c))
}

// ParseColor accepts a palette name ("cyan") or a hex value ("#00FFFF", "0x00ffff").
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "cyan":
		return Cyan, nil
	case "magenta":
		return Magenta, nil
	case "azure":
		return Azure, nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return Color(v), nil
}

// Creature bundles identity and category.
type Creature struct {
	ID        uint32
	Color     Color
	SpawnTick int32
}
