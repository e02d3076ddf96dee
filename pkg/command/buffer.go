package command

import (
	"bytes"

	"github.com/pkg/errors"
)

var ErrNotBuffered = errors.New("command is not bufferable")

// Buffer accumulates the encoded drawing commands of one frame in issuance
// order. The zero value is ready to use.
type Buffer struct {
	buf   bytes.Buffer
	count int
}

// Append adds already encoded bytes.
func (b *Buffer) Append(p []byte) {
	b.buf.Write(p)
}

// AppendCommand encodes c and adds it. Only Bitmap, Text, Line and
// SetGlyphSize are accepted.
func (b *Buffer) AppendCommand(c Command) error {
	if c == nil {
		return errors.Wrap(ErrInvalidCommand, "nil command")
	}
	if !c.Kind().Buffered() {
		return errors.Wrap(ErrNotBuffered, c.Kind().String())
	}

	bs, err := Encode(c)
	if err != nil {
		return err
	}

	b.Append(bs)
	b.count++
	return nil
}

// Merge moves everything pending in o to the end of b.
func (b *Buffer) Merge(o *Buffer) {
	count := o.count
	b.Append(o.Drain())
	b.count += count
}

// Drain returns everything accumulated so far and empties the buffer.
func (b *Buffer) Drain() []byte {
	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())
	b.Reset()
	return out
}

func (b *Buffer) Reset() {
	b.buf.Reset()
	b.count = 0
}

// Len is the number of pending bytes.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// Commands is the number of commands appended through AppendCommand since
// the last drain.
func (b *Buffer) Commands() int {
	return b.count
}
