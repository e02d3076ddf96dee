package epd43

import (
	"go.uber.org/zap"

	"epaper/pkg/command"
	"epaper/pkg/proto"
)

// Opener returns the port the next link should own.
type Opener func() (proto.Port, error)

// NewDevice opens the serial port and returns the display as a
// proto.Control. Startup must be called before drawing.
func NewDevice(serial *proto.Serial, logger *zap.Logger, opts ...Option) (proto.Control, error) {
	serOpt := proto.DefaultOptions()
	dev := NewPortDevice(func() (proto.Port, error) {
		if err := serial.Open(serOpt); err != nil {
			return nil, err
		}
		return serial, nil
	}, logger, opts...)
	dev.release = serial.Close

	return dev, serial.Open(serOpt)
}

// NewPortDevice builds a Device over any port source.
func NewPortDevice(open Opener, logger *zap.Logger, opts ...Option) *Device {
	return &Device{open: open, logger: logger, opts: opts}
}

// Device keeps one Link and its pending Frame, starting a fresh link on
// every Startup.
type Device struct {
	open    Opener
	release func() error
	logger  *zap.Logger
	opts    []Option
	link    *Link
	frame   *Frame
}

func (d *Device) active(op string) (*Link, error) {
	if d.link == nil {
		return nil, &StateError{Op: op, State: Disconnected}
	}
	return d.link, nil
}

func (d *Device) drawing(op string) (*Frame, error) {
	if _, err := d.active(op); err != nil {
		return nil, err
	}
	if d.frame == nil {
		return nil, &StateError{Op: op, State: d.link.State()}
	}
	return d.frame, nil
}

func (d *Device) Startup() error {
	if d.link != nil && d.link.State() != Closed {
		return nil
	}

	port, err := d.open()
	if err != nil {
		return err
	}

	d.link = New(port, d.logger, d.opts...)
	d.frame = nil
	if err := d.link.Open(); err != nil {
		return err
	}

	frame, err := d.link.Frame()
	if err != nil {
		return err
	}
	d.frame = frame
	return nil
}

func (d *Device) Shutdown() error {
	if d.link == nil {
		if d.release != nil {
			return d.release()
		}
		return nil
	}

	d.frame = nil
	return d.link.Disconnect()
}

func (d *Device) Clear() error {
	link, err := d.active("clear")
	if err != nil {
		return err
	}
	return link.Clear()
}

func (d *Device) SetMemory(mode command.MemoryMode) error {
	link, err := d.active("set-memory")
	if err != nil {
		return err
	}
	return link.SetMemory(mode)
}

func (d *Device) SetRotation(rotation command.Rotation) error {
	link, err := d.active("set-rotation")
	if err != nil {
		return err
	}
	return link.SetRotation(rotation)
}

func (d *Device) SetFontSize(target command.GlyphTarget, size command.FontSize) error {
	frame, err := d.drawing("set-font-size")
	if err != nil {
		return err
	}
	if target == command.GlyphLatin {
		return frame.SetLatinFontSize(size)
	}
	return frame.SetCJKFontSize(size)
}

func (d *Device) DrawBitmap(posX uint16, posY uint16, data []byte) error {
	frame, err := d.drawing("bitmap")
	if err != nil {
		return err
	}
	return frame.Bitmap(posX, posY, data)
}

func (d *Device) DrawAsset(posX uint16, posY uint16, name string) error {
	frame, err := d.drawing("bitmap")
	if err != nil {
		return err
	}
	return frame.BitmapFile(posX, posY, name)
}

func (d *Device) DrawText(posX uint16, posY uint16, text string) error {
	frame, err := d.drawing("text")
	if err != nil {
		return err
	}
	return frame.Text(posX, posY, text)
}

func (d *Device) DrawWrapped(posX uint16, posY uint16, width uint16, text string) error {
	frame, err := d.drawing("wrap-text")
	if err != nil {
		return err
	}
	return frame.WrapText(posX, posY, width, text)
}

func (d *Device) DrawLine(x0, y0, x1, y1 uint16) error {
	frame, err := d.drawing("line")
	if err != nil {
		return err
	}
	return frame.Line(x0, y0, x1, y1)
}

// Update sends the pending frame and refreshes the panel, then starts a new
// frame.
func (d *Device) Update() error {
	frame, err := d.drawing("update")
	if err != nil {
		return err
	}

	if err := d.link.Update(frame); err != nil {
		d.frame = nil
		return err
	}

	d.frame, err = d.link.Frame()
	return err
}
