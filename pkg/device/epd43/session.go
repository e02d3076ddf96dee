package epd43

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"epaper/pkg/proto"
)

// Session opens a link on port, hands it to fn and always disconnects
// afterwards, also when fn fails or panics. The port is released on every
// path.
func Session(port proto.Port, logger *zap.Logger, fn func(l *Link) error, opts ...Option) (err error) {
	l := New(port, logger, opts...)

	defer func() {
		if r := recover(); r != nil {
			_ = l.Disconnect()
			panic(r)
		}
	}()

	if err := l.Open(); err != nil {
		return multierr.Append(err, l.Disconnect())
	}

	err = fn(l)
	return multierr.Append(err, l.Disconnect())
}
