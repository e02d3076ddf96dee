package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"epaper/pkg/asset"
	"epaper/pkg/command"
	"epaper/pkg/device/epd43"
	"epaper/pkg/device/remote"
	"epaper/pkg/device/virtual"
	"epaper/pkg/proto"
)

var serial = flag.String("serial", "ttyAMA0", "serial name or remote addr")
var assets = flag.String("assets", "", "bitmap asset dir")
var clearFirst = flag.Bool("clear", true, "clear the screen first")
var memory = flag.String("memory", "flash", "asset memory: flash or sd")
var rotation = flag.String("rotation", "0", "rotation: 0, 90, 180 or 270")
var font = flag.String("font", "32", "font size: 32, 48 or 64")
var bitmaps = flag.StringArray("bitmap", nil, "draw asset, x,y:NAME.BMP")
var glyphs = flag.StringArray("glyphs", nil, "draw clock glyph bitmaps, x,y:12:30")
var glyphAdvance = flag.Uint16("glyph-advance", 100, "horizontal advance after a clock digit")
var colonAdvance = flag.Uint16("colon-advance", 70, "horizontal advance after the clock colon")
var zeroShift = flag.Uint16("zero-shift", 40, "right shift when a leading zero is dropped")
var lines = flag.StringArray("line", nil, "draw line, x0,y0,x1,y1")
var texts = flag.StringArray("text", nil, "draw text, x,y:TEXT")
var wraps = flag.StringArray("wrap", nil, "draw wrapped text, x,y,width:TEXT")
var dryRun = flag.Bool("dry-run", false, "print the bytes instead of sending them")
var progress = flag.Bool("progress", false, "show upload progress")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loader, err := asset.NewOsLoader(*assets)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("asset dir")
	}

	var dev proto.Control
	var mock *virtual.Mocker

	switch {
	case *dryRun:
		mock = virtual.Mock(logger, loader)
		dev = mock
	case strings.Contains(*serial, ":"):
		dev, err = remote.New(*serial)
	default:
		var opts []epd43.Option
		opts = append(opts, epd43.WithLoader(loader))
		if *progress {
			opts = append(opts, epd43.WithTap(progressbar.DefaultBytes(-1, "uploading")))
		}
		dev, err = epd43.NewDevice(proto.NewSerial(*serial), logger, opts...)
	}
	if err != nil {
		logger.With(zap.Error(err)).Fatal("open device")
	}

	if err := run(dev, logger); err != nil {
		logger.With(zap.Error(err)).Error("draw failed")
		os.Exit(1)
	}

	if mock != nil {
		fmt.Print(hex.Dump(mock.Wire()))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// run draws one frame, always shutting the display down afterwards.
func run(dev proto.Control, logger *zap.Logger) (err error) {
	mode, err := command.ParseMemoryMode(*memory)
	if err != nil {
		return err
	}
	rot, err := command.ParseRotation(*rotation)
	if err != nil {
		return err
	}
	size, err := command.ParseFontSize(*font)
	if err != nil {
		return err
	}

	if err := dev.Startup(); err != nil {
		_ = dev.Shutdown()
		return err
	}
	defer func() {
		if serr := dev.Shutdown(); serr != nil && err == nil {
			err = serr
		}
	}()

	if *clearFirst {
		if err := dev.Clear(); err != nil {
			return err
		}
	}
	if err := dev.SetMemory(mode); err != nil {
		return err
	}
	if err := dev.SetRotation(rot); err != nil {
		return err
	}
	if err := dev.SetFontSize(command.GlyphCJK, size); err != nil {
		return err
	}
	if err := dev.SetFontSize(command.GlyphLatin, size); err != nil {
		return err
	}

	if err := drawItems(dev, logger); err != nil {
		return err
	}

	return dev.Update()
}

// recoverable reports errors a frame can carry on after.
func recoverable(err error) bool {
	var nf *asset.NotFoundError
	var enc *command.EncodingError
	return errors.As(err, &nf) || errors.As(err, &enc)
}

func drawItems(dev proto.Control, logger *zap.Logger) error {
	skip := func(item string, err error) error {
		if recoverable(err) {
			logger.With(zap.String("item", item), zap.Error(err)).Warn("skipped")
			return nil
		}
		return err
	}

	for _, in := range *bitmaps {
		coords, name, err := splitItem(in)
		if err != nil {
			return err
		}
		xy, err := parseCoords(coords, 2)
		if err != nil {
			return err
		}
		if err := skip(in, dev.DrawAsset(xy[0], xy[1], name)); err != nil {
			return err
		}
	}

	for _, in := range *glyphs {
		coords, value, err := splitItem(in)
		if err != nil {
			return err
		}
		xy, err := parseCoords(coords, 2)
		if err != nil {
			return err
		}
		placed, err := clockGlyphs(xy[0], value, glyphSpacing{
			Digit:     *glyphAdvance,
			Colon:     *colonAdvance,
			ZeroShift: *zeroShift,
		})
		if err != nil {
			return err
		}
		for _, g := range placed {
			if err := skip(in, dev.DrawAsset(g.X, xy[1], g.Name)); err != nil {
				return err
			}
		}
	}

	for _, in := range *lines {
		c, err := parseCoords(in, 4)
		if err != nil {
			return err
		}
		if err := dev.DrawLine(c[0], c[1], c[2], c[3]); err != nil {
			return err
		}
	}

	for _, in := range *texts {
		item, err := parseText(in)
		if err != nil {
			return err
		}
		if err := skip(in, dev.DrawText(item.X, item.Y, item.Text)); err != nil {
			return err
		}
	}

	for _, in := range *wraps {
		item, err := parseWrap(in)
		if err != nil {
			return err
		}
		if err := skip(in, dev.DrawWrapped(item.X, item.Y, item.Width, item.Text)); err != nil {
			return err
		}
	}

	return nil
}
