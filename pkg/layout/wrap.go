// Package layout approximates text extents on the display and splits long
// strings into lines that fit a pixel width.
//
// The module exposes no glyph metrics, so every rune is assumed to be as
// wide as the font's point size. This over-estimates Latin text and is close
// to exact for CJK text.
package layout

import (
	"strings"
	"unicode/utf8"
)

// Width is the approximate rendered width of text in pixels.
func Width(text string, points int) int {
	return utf8.RuneCountInString(text) * points
}

// LineHeight is the vertical distance between wrapped lines.
func LineHeight(points int) int {
	return 2 * points
}

// Wrap splits text on whitespace and fills lines greedily so that
// Width(line) <= width. A token wider than width on its own is never split
// and ends up alone on an overlong line.
func Wrap(text string, width, points int) []string {
	var lines []string
	var line string

	for _, word := range strings.Fields(text) {
		if line == "" {
			line = word
			continue
		}

		if next := line + " " + word; Width(next, points) <= width {
			line = next
			continue
		}

		lines = append(lines, line)
		line = word
	}

	if line != "" {
		lines = append(lines, line)
	}

	return lines
}
