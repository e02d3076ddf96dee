package virtual

import (
	"bytes"

	"epaper/pkg/command"
)

// wirePort stands in for the serial port: it acknowledges the handshake once
// and appends every write to a shared wire buffer.
type wirePort struct {
	wire   *bytes.Buffer
	acked  bool
	closed bool
}

func (p *wirePort) Read(b []byte) (int, error) {
	if p.acked || len(b) == 0 {
		return 0, nil
	}
	p.acked = true
	b[0] = command.Ack
	return 1, nil
}

func (p *wirePort) Write(b []byte) (int, error) {
	return p.wire.Write(b)
}

func (p *wirePort) Close() error {
	p.closed = true
	return nil
}
