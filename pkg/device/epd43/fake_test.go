package epd43

import (
	"bytes"
	"errors"

	"epaper/pkg/proto"
)

// fakePort records writes and answers reads from a canned reply.
type fakePort struct {
	reply    []byte
	written  bytes.Buffer
	writes   [][]byte
	writeErr error
	readErr  error
	closed   int
}

func newFakePort(reply ...byte) *fakePort {
	return &fakePort{reply: reply}
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.closed > 0 {
		return 0, &proto.TransportError{Op: "read", Err: proto.ErrClosed}
	}
	if p.readErr != nil {
		return 0, p.readErr
	}
	n := copy(b, p.reply)
	p.reply = p.reply[n:]
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.closed > 0 {
		return 0, &proto.TransportError{Op: "write", Err: proto.ErrClosed}
	}
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.writes = append(p.writes, append([]byte(nil), b...))
	p.written.Write(b)
	return len(b), nil
}

func (p *fakePort) Close() error {
	p.closed++
	return nil
}

func (p *fakePort) count(b byte) int {
	return bytes.Count(p.written.Bytes(), []byte{b})
}

var errUnplugged = errors.New("unplugged")
