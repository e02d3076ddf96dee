// Package epd43 drives the Waveshare 4.3" serial e-paper module.
//
// A Link sequences connect, handshake, drawing and disconnect over one
// exclusively owned port. Clear, SetMemory, SetRotation, Update and
// Disconnect go to the port immediately; bitmaps, text, lines and font size
// changes collect in a Frame and are sent by Update, ahead of the refresh
// command.
//
// A Link is not safe for concurrent use.
package epd43

import (
	"io"

	"github.com/inhies/go-bytesize"
	"github.com/rs/xid"
	"go.uber.org/zap"

	"epaper/pkg/asset"
	"epaper/pkg/command"
	"epaper/pkg/proto"
)

type Option func(l *Link)

// WithLoader sets where Frame.BitmapFile reads assets from.
func WithLoader(loader *asset.Loader) Option {
	return func(l *Link) {
		l.loader = loader
	}
}

// WithTap copies every byte written to the port into w.
func WithTap(w io.Writer) Option {
	return func(l *Link) {
		l.tap = w
	}
}

func New(port proto.Port, logger *zap.Logger, opts ...Option) *Link {
	if logger == nil {
		logger = zap.NewNop()
	}

	id := xid.New()
	l := &Link{
		id:     id,
		port:   port,
		logger: logger.With(zap.String("link", id.String())),
		state:  Disconnected,
		cjk:    command.FontSmall,
		latin:  command.FontSmall,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

type Link struct {
	id     xid.ID
	port   proto.Port
	logger *zap.Logger
	state  State
	loader *asset.Loader
	tap    io.Writer
	// font sizes in effect on the device after the last Update
	cjk   command.FontSize
	latin command.FontSize
}

func (l *Link) ID() string {
	return l.id.String()
}

func (l *Link) State() State {
	return l.state
}

func (l *Link) require(op string, want State) error {
	if l.state != want {
		return &StateError{Op: op, State: l.state}
	}
	return nil
}

// Connect sends the connect byte.
func (l *Link) Connect() error {
	if err := l.require("connect", Disconnected); err != nil {
		return err
	}

	if err := l.sendCMD(command.Connect{}); err != nil {
		l.abort(err)
		return err
	}

	l.state = Connected
	l.logger.Debug("connected")
	return nil
}

// Handshake waits for the module's acknowledgement. On anything but Ack the
// link is closed and cannot be reused.
func (l *Link) Handshake() error {
	if err := l.require("handshake", Connected); err != nil {
		return err
	}

	ack, err := l.readAck()
	if err != nil {
		l.abort(err)
		return err
	}

	if ack != command.Ack {
		err := &HandshakeError{Got: ack}
		l.abort(err)
		return err
	}

	l.state = Ready
	l.logger.Info("link ready")
	return nil
}

// Open connects and handshakes.
func (l *Link) Open() error {
	if err := l.Connect(); err != nil {
		return err
	}
	return l.Handshake()
}

func (l *Link) Clear() error {
	return l.immediate("clear", command.Clear{})
}

func (l *Link) SetMemory(mode command.MemoryMode) error {
	return l.immediate("set-memory", command.SetMemory{Mode: mode})
}

func (l *Link) SetRotation(rotation command.Rotation) error {
	return l.immediate("set-rotation", command.SetRotation{Rotation: rotation})
}

// Frame starts an empty frame using the link's current font sizes.
func (l *Link) Frame() (*Frame, error) {
	if err := l.require("frame", Ready); err != nil {
		return nil, err
	}

	return &Frame{link: l, cjk: l.cjk, latin: l.latin}, nil
}

// Update drains frame to the port and then asks the module to refresh the
// panel. A nil frame only refreshes. The module does not report when the
// refresh finishes.
func (l *Link) Update(frame *Frame) error {
	if err := l.require("update", Ready); err != nil {
		return err
	}

	if frame != nil {
		if frame.link != l {
			return &StateError{Op: "update foreign frame", State: l.state}
		}

		count := frame.buf.Commands()
		if data := frame.buf.Drain(); len(data) > 0 {
			l.logger.With(
				zap.Int("commands", count),
				zap.String("size", bytesize.New(float64(len(data))).String()),
			).Debug("flush frame")

			if err := l.sendBytes(data); err != nil {
				l.abort(err)
				return err
			}
		}

		l.cjk, l.latin = frame.cjk, frame.latin
	}

	if err := l.sendCMD(command.Update{}); err != nil {
		l.abort(err)
		return err
	}

	return nil
}

// Disconnect sends the disconnect byte if the module was reached and
// releases the port. Calling it on a closed link does nothing.
func (l *Link) Disconnect() error {
	switch l.state {
	case Closed:
		return nil
	case Disconnected:
		l.state = Closed
		return l.release()
	}

	werr := l.sendCMD(command.Disconnect{})
	l.state = Closed
	cerr := l.release()

	l.logger.Info("disconnected")

	if werr != nil {
		return werr
	}
	return cerr
}

// Close is Disconnect, for use as an io.Closer.
func (l *Link) Close() error {
	return l.Disconnect()
}

func (l *Link) immediate(op string, cmd command.Command) error {
	if err := l.require(op, Ready); err != nil {
		return err
	}

	bs, err := command.Encode(cmd)
	if err != nil {
		return err
	}

	if err := l.sendBytes(bs); err != nil {
		l.abort(err)
		return err
	}
	return nil
}

// abort tears the link down after a fatal error, ignoring further failures.
func (l *Link) abort(cause error) {
	l.logger.With(zap.Error(cause)).Warn("link aborted")

	if l.state == Connected || l.state == Ready {
		if bs, err := command.Encode(command.Disconnect{}); err == nil {
			_, _ = proto.WriteFull(l.port, bs)
		}
	}

	l.state = Closed
	_ = l.release()
}

func (l *Link) release() error {
	if l.port == nil {
		return nil
	}
	return l.port.Close()
}
