package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"epaper/pkg/asset"
)

// parseCoords reads "x,y[,...]" into exactly n values.
func parseCoords(in string, n int) ([]uint16, error) {
	parts := strings.Split(in, ",")
	if len(parts) != n {
		return nil, errors.Errorf("want %d coordinates in %q", n, in)
	}

	var err error
	vals := lo.Map(parts, func(p string, _ int) uint16 {
		v, perr := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if perr != nil && err == nil {
			err = errors.Wrapf(perr, "coordinate %q", p)
		}
		return uint16(v)
	})
	return vals, err
}

// splitItem splits "coords:payload"; the payload may contain colons.
func splitItem(in string) (string, string, error) {
	i := strings.Index(in, ":")
	if i < 0 {
		return "", "", errors.Errorf("missing ':' in %q", in)
	}
	return in[:i], in[i+1:], nil
}

type textItem struct {
	X, Y, Width uint16
	Text        string
}

func parseText(in string) (textItem, error) {
	coords, text, err := splitItem(in)
	if err != nil {
		return textItem{}, err
	}
	xy, err := parseCoords(coords, 2)
	if err != nil {
		return textItem{}, err
	}
	return textItem{X: xy[0], Y: xy[1], Text: text}, nil
}

func parseWrap(in string) (textItem, error) {
	coords, text, err := splitItem(in)
	if err != nil {
		return textItem{}, err
	}
	xyw, err := parseCoords(coords, 3)
	if err != nil {
		return textItem{}, err
	}
	return textItem{X: xyw[0], Y: xyw[1], Width: xyw[2], Text: text}, nil
}

// glyphSpacing is the horizontal layout of clock glyph bitmaps.
type glyphSpacing struct {
	Digit     uint16
	Colon     uint16
	ZeroShift uint16
}

type glyphPlacement struct {
	X    uint16
	Name string
}

// clockGlyphs places one bitmap per character of value starting at x. A
// leading zero is not drawn; the rest of the clock moves right by ZeroShift
// instead so single-digit hours stay roughly centred.
func clockGlyphs(x uint16, value string, sp glyphSpacing) ([]glyphPlacement, error) {
	pos := int(x)
	if len(value) > 1 && value[0] == '0' {
		value = value[1:]
		pos += int(sp.ZeroShift)
	}

	var out []glyphPlacement
	for _, r := range value {
		name, ok := asset.GlyphName(r)
		if !ok {
			return nil, errors.Errorf("no clock glyph for %q", r)
		}
		if pos > math.MaxUint16 {
			return nil, errors.Errorf("clock glyph %q runs past x=%d", r, math.MaxUint16)
		}
		out = append(out, glyphPlacement{X: uint16(pos), Name: name})

		if r == ':' {
			pos += int(sp.Colon)
		} else {
			pos += int(sp.Digit)
		}
	}
	return out, nil
}
