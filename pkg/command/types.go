package command

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FontSize selects one of the three glyph sizes built into the module.
type FontSize uint8

const (
	FontSmall FontSize = iota + 1
	FontMedium
	FontLarge
)

func (s FontSize) Valid() bool {
	return s >= FontSmall && s <= FontLarge
}

// Points is the glyph height in pixels, also used as the per-rune advance
// by the layout width model.
func (s FontSize) Points() int {
	switch s {
	case FontSmall:
		return 32
	case FontMedium:
		return 48
	case FontLarge:
		return 64
	}
	return 0
}

func (s FontSize) String() string {
	if !s.Valid() {
		return fmt.Sprintf("FontSize(%d)", uint8(s))
	}
	return fmt.Sprintf("%dpt", s.Points())
}

func ParseFontSize(in string) (FontSize, error) {
	switch strings.ToLower(strings.TrimSuffix(in, "pt")) {
	case "32", "small":
		return FontSmall, nil
	case "48", "medium":
		return FontMedium, nil
	case "64", "large":
		return FontLarge, nil
	}
	return 0, errors.Errorf("unknown font size %q", in)
}

// MemoryMode selects where the module reads cached bitmap assets from.
type MemoryMode uint8

const (
	MemoryFlash MemoryMode = iota
	MemorySD
)

func (m MemoryMode) Valid() bool {
	return m <= MemorySD
}

func (m MemoryMode) String() string {
	switch m {
	case MemoryFlash:
		return "flash"
	case MemorySD:
		return "sd"
	}
	return fmt.Sprintf("MemoryMode(%d)", uint8(m))
}

func ParseMemoryMode(in string) (MemoryMode, error) {
	switch strings.ToLower(in) {
	case "flash", "nand":
		return MemoryFlash, nil
	case "sd", "tf":
		return MemorySD, nil
	}
	return 0, errors.Errorf("unknown memory mode %q", in)
}

// Rotation is applied by the module to everything drawn after it is set.
type Rotation uint8

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (r Rotation) Valid() bool {
	return r <= Rotate270
}

func (r Rotation) Degrees() int {
	return int(r) * 90
}

func (r Rotation) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
	return fmt.Sprintf("%d°", r.Degrees())
}

func ParseRotation(in string) (Rotation, error) {
	switch strings.TrimSuffix(in, "°") {
	case "0":
		return Rotate0, nil
	case "90":
		return Rotate90, nil
	case "180":
		return Rotate180, nil
	case "270":
		return Rotate270, nil
	}
	return 0, errors.Errorf("unknown rotation %q", in)
}

// GlyphTarget picks which glyph table a font size change applies to.
type GlyphTarget uint8

const (
	GlyphCJK GlyphTarget = iota
	GlyphLatin
)

func (g GlyphTarget) Valid() bool {
	return g <= GlyphLatin
}

func (g GlyphTarget) String() string {
	switch g {
	case GlyphCJK:
		return "cjk"
	case GlyphLatin:
		return "latin"
	}
	return fmt.Sprintf("GlyphTarget(%d)", uint8(g))
}
