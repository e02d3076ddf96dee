package virtual

import (
	"bytes"

	"go.uber.org/zap"

	"epaper/pkg/asset"
	"epaper/pkg/command"
	"epaper/pkg/device/epd43"
	"epaper/pkg/proto"
)

// Mock returns a Control that logs every call and runs it through a real
// epd43 device whose port only records. The bytes it keeps are the bytes
// the serial path would send, and it fails where the serial path fails.
func Mock(logger *zap.Logger, loader *asset.Loader) *Mocker {
	m := &Mocker{l: logger}

	var opts []epd43.Option
	if loader != nil {
		opts = append(opts, epd43.WithLoader(loader))
	}

	m.dev = epd43.NewPortDevice(func() (proto.Port, error) {
		return &wirePort{wire: &m.wire}, nil
	}, logger, opts...)

	return m
}

type Mocker struct {
	l    *zap.Logger
	dev  *epd43.Device
	wire bytes.Buffer
}

var _ proto.Control = (*Mocker)(nil)

// Wire is everything the device would have received so far.
func (m *Mocker) Wire() []byte {
	return m.wire.Bytes()
}

func (m *Mocker) Startup() error {
	m.l.Info("startup")
	return m.dev.Startup()
}

func (m *Mocker) Shutdown() error {
	m.l.Info("shutdown")
	return m.dev.Shutdown()
}

func (m *Mocker) Clear() error {
	m.l.Info("clear")
	return m.dev.Clear()
}

func (m *Mocker) SetMemory(mode command.MemoryMode) error {
	m.l.With(zap.Stringer("mode", mode)).Info("set-memory")
	return m.dev.SetMemory(mode)
}

func (m *Mocker) SetRotation(rotation command.Rotation) error {
	m.l.With(zap.Stringer("rotation", rotation)).Info("set-rotation")
	return m.dev.SetRotation(rotation)
}

func (m *Mocker) SetFontSize(target command.GlyphTarget, size command.FontSize) error {
	m.l.With(zap.Stringer("target", target), zap.Stringer("size", size)).Info("set-font-size")
	return m.dev.SetFontSize(target, size)
}

func (m *Mocker) DrawBitmap(posX uint16, posY uint16, data []byte) error {
	m.l.With(
		zap.Uint16("x", posX),
		zap.Uint16("y", posY),
		zap.Int("size", len(data)),
	).Info("draw-bitmap")
	return m.dev.DrawBitmap(posX, posY, data)
}

func (m *Mocker) DrawAsset(posX uint16, posY uint16, name string) error {
	m.l.With(zap.Uint16("x", posX), zap.Uint16("y", posY), zap.String("name", name)).Info("draw-asset")
	return m.dev.DrawAsset(posX, posY, name)
}

func (m *Mocker) DrawText(posX uint16, posY uint16, text string) error {
	m.l.With(zap.Uint16("x", posX), zap.Uint16("y", posY), zap.String("text", text)).Info("draw-text")
	return m.dev.DrawText(posX, posY, text)
}

func (m *Mocker) DrawWrapped(posX uint16, posY uint16, width uint16, text string) error {
	m.l.With(
		zap.Uint16("x", posX),
		zap.Uint16("y", posY),
		zap.Uint16("width", width),
		zap.String("text", text),
	).Info("draw-wrapped")
	return m.dev.DrawWrapped(posX, posY, width, text)
}

func (m *Mocker) DrawLine(x0, y0, x1, y1 uint16) error {
	m.l.With(
		zap.Uint16("x0", x0),
		zap.Uint16("y0", y0),
		zap.Uint16("x1", x1),
		zap.Uint16("y1", y1),
	).Info("draw-line")
	return m.dev.DrawLine(x0, y0, x1, y1)
}

func (m *Mocker) Update() error {
	m.l.Info("update")
	return m.dev.Update()
}
