package core

import "strings"

// Color represents a foreground or background color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors. The first five double as tile colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorMagenta
	ColorYellow
	ColorCyan
	ColorWhite
	ColorGray
	ColorBlack
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorBlue:    "blue",
	ColorGreen:   "green",
	ColorMagenta: "magenta",
	ColorYellow:  "yellow",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
	ColorGray:    "gray",
	ColorBlack:   "black",
}

// String returns the lowercase color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor looks a color up by name (case-insensitive).
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return ColorDefault, false
}
