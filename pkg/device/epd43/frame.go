package epd43

import (
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"epaper/pkg/command"
	"epaper/pkg/layout"
)

var ErrNoLoader = errors.New("no asset loader configured")

// Frame collects the drawing commands of one screen refresh. It is only
// usable while its link is Ready; Link.Update sends and empties it.
type Frame struct {
	link  *Link
	buf   command.Buffer
	cjk   command.FontSize
	latin command.FontSize
}

func (f *Frame) add(op string, cmd command.Command) error {
	if err := f.link.require(op, Ready); err != nil {
		return err
	}
	return f.buf.AppendCommand(cmd)
}

// Pending is the number of bytes waiting for the next Update.
func (f *Frame) Pending() int {
	return f.buf.Len()
}

func (f *Frame) Bitmap(x, y uint16, data []byte) error {
	return f.add("bitmap", command.Bitmap{X: x, Y: y, Data: data})
}

// BitmapFile draws an asset read through the link's loader.
func (f *Frame) BitmapFile(x, y uint16, name string) error {
	if err := f.link.require("bitmap", Ready); err != nil {
		return err
	}
	if f.link.loader == nil {
		return ErrNoLoader
	}

	data, err := f.link.loader.Load(name)
	if err != nil {
		return err
	}

	return f.Bitmap(x, y, data)
}

func (f *Frame) Text(x, y uint16, text string) error {
	return f.add("text", command.Text{X: x, Y: y, Value: text})
}

// WrapText word-wraps text to width pixels with the current CJK font size
// and draws one line every two font heights starting at (x, y). Nothing is
// added when any line fails to encode.
func (f *Frame) WrapText(x, y, width uint16, text string) error {
	if err := f.link.require("wrap-text", Ready); err != nil {
		return err
	}

	points := f.cjk.Points()
	lines := layout.Wrap(text, int(width), points)

	last := int(y) + (len(lines)-1)*layout.LineHeight(points)
	if len(lines) > 0 && last > math.MaxUint16 {
		return errors.Errorf("wrapped text runs past y=%d", math.MaxUint16)
	}

	cmds := lo.Map(lines, func(line string, i int) command.Command {
		return command.Text{X: x, Y: uint16(int(y) + i*layout.LineHeight(points)), Value: line}
	})

	var staged command.Buffer
	for _, cmd := range cmds {
		if err := staged.AppendCommand(cmd); err != nil {
			return err
		}
	}

	f.buf.Merge(&staged)
	return nil
}

func (f *Frame) Line(x0, y0, x1, y1 uint16) error {
	return f.add("line", command.Line{X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func (f *Frame) SetCJKFontSize(size command.FontSize) error {
	if err := f.add("set-cjk-font", command.SetGlyphSize{Target: command.GlyphCJK, Size: size}); err != nil {
		return err
	}
	f.cjk = size
	return nil
}

func (f *Frame) SetLatinFontSize(size command.FontSize) error {
	if err := f.add("set-latin-font", command.SetGlyphSize{Target: command.GlyphLatin, Size: size}); err != nil {
		return err
	}
	f.latin = size
	return nil
}

// SetFontSize changes both glyph tables.
func (f *Frame) SetFontSize(size command.FontSize) error {
	if err := f.SetCJKFontSize(size); err != nil {
		return err
	}
	return f.SetLatinFontSize(size)
}
