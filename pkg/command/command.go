package command

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const (
	opConnect    = 0x00
	opClear      = 0x10
	opUpdate     = 0x20
	opBitmap     = 0x30
	opText       = 0x40
	opLine       = 0x50
	opGlyphCJK   = 0x60
	opGlyphLatin = 0x61
	opRotation   = 0xD0
	opMemory     = 0xE0
	opDisconnect = 0xFF
)

// Ack is the only byte the module answers a Connect with when it is alive.
const Ack = 0x00

var ErrInvalidCommand = errors.New("invalid command")

// Kind tags a Command.
type Kind uint8

const (
	KindConnect Kind = iota
	KindHandshake
	KindDisconnect
	KindSetMemory
	KindSetRotation
	KindClear
	KindUpdate
	KindBitmap
	KindText
	KindLine
	KindSetGlyphSize
)

var kindNames = [...]string{
	KindConnect:      "connect",
	KindHandshake:    "handshake",
	KindDisconnect:   "disconnect",
	KindSetMemory:    "set-memory",
	KindSetRotation:  "set-rotation",
	KindClear:        "clear",
	KindUpdate:       "update",
	KindBitmap:       "bitmap",
	KindText:         "text",
	KindLine:         "line",
	KindSetGlyphSize: "set-glyph-size",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Buffered reports whether commands of this kind belong in a frame's draw
// buffer rather than being written to the port straight away.
func (k Kind) Buffered() bool {
	switch k {
	case KindBitmap, KindText, KindLine, KindSetGlyphSize:
		return true
	}
	return false
}

// Command is one primitive of the display protocol. The set of
// implementations is closed to this package.
type Command interface {
	Kind() Kind
	encode(buf *bytes.Buffer) error
}

type Connect struct{}

type Handshake struct{}

type Disconnect struct{}

type Clear struct{}

type Update struct{}

type SetMemory struct {
	Mode MemoryMode
}

type SetRotation struct {
	Rotation Rotation
}

type Bitmap struct {
	X, Y uint16
	Data []byte
}

type Text struct {
	X, Y  uint16
	Value string
}

type Line struct {
	X0, Y0 uint16
	X1, Y1 uint16
}

type SetGlyphSize struct {
	Target GlyphTarget
	Size   FontSize
}

func (Connect) Kind() Kind      { return KindConnect }
func (Handshake) Kind() Kind    { return KindHandshake }
func (Disconnect) Kind() Kind   { return KindDisconnect }
func (Clear) Kind() Kind        { return KindClear }
func (Update) Kind() Kind       { return KindUpdate }
func (SetMemory) Kind() Kind    { return KindSetMemory }
func (SetRotation) Kind() Kind  { return KindSetRotation }
func (Bitmap) Kind() Kind       { return KindBitmap }
func (Text) Kind() Kind         { return KindText }
func (Line) Kind() Kind         { return KindLine }
func (SetGlyphSize) Kind() Kind { return KindSetGlyphSize }

func (Connect) encode(buf *bytes.Buffer) error {
	return buf.WriteByte(opConnect)
}

// Handshake is a read of the Ack byte; nothing goes on the wire.
func (Handshake) encode(*bytes.Buffer) error {
	return nil
}

func (Disconnect) encode(buf *bytes.Buffer) error {
	return buf.WriteByte(opDisconnect)
}

func (Clear) encode(buf *bytes.Buffer) error {
	return buf.WriteByte(opClear)
}

func (Update) encode(buf *bytes.Buffer) error {
	return buf.WriteByte(opUpdate)
}

func (c SetMemory) encode(buf *bytes.Buffer) error {
	if !c.Mode.Valid() {
		return errors.Wrapf(ErrInvalidCommand, "memory mode %s", c.Mode)
	}
	return buf.WriteByte(opMemory | byte(c.Mode))
}

func (c SetRotation) encode(buf *bytes.Buffer) error {
	if !c.Rotation.Valid() {
		return errors.Wrapf(ErrInvalidCommand, "rotation %s", c.Rotation)
	}
	return buf.WriteByte(opRotation | byte(c.Rotation))
}

func (c Bitmap) encode(buf *bytes.Buffer) error {
	buf.WriteByte(opBitmap)
	writeUint16(buf, c.X, c.Y)
	buf.Write(c.Data)
	return nil
}

func (c Text) encode(buf *bytes.Buffer) error {
	bs, err := EncodeText(c.Value)
	if err != nil {
		return err
	}

	buf.WriteByte(opText)
	writeUint16(buf, c.X, c.Y)
	buf.Write(bs)
	return nil
}

func (c Line) encode(buf *bytes.Buffer) error {
	buf.WriteByte(opLine)
	writeUint16(buf, c.X0, c.Y0, c.X1, c.Y1)
	return nil
}

func (c SetGlyphSize) encode(buf *bytes.Buffer) error {
	if !c.Size.Valid() {
		return errors.Wrapf(ErrInvalidCommand, "font size %s", c.Size)
	}

	switch c.Target {
	case GlyphCJK:
		buf.WriteByte(opGlyphCJK)
	case GlyphLatin:
		buf.WriteByte(opGlyphLatin)
	default:
		return errors.Wrapf(ErrInvalidCommand, "glyph target %s", c.Target)
	}

	return buf.WriteByte(byte(c.Size))
}

func writeUint16(buf *bytes.Buffer, vs ...uint16) {
	for _, v := range vs {
		_ = binary.Write(buf, binary.BigEndian, v)
	}
}

// Encode returns the wire bytes of c. It has no side effects.
func Encode(c Command) ([]byte, error) {
	if c == nil {
		return nil, errors.Wrap(ErrInvalidCommand, "nil command")
	}

	var buf bytes.Buffer
	if err := c.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodingError means a string holds runes the module's GB2312 font table
// cannot represent.
type EncodingError struct {
	Text string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("text %q not representable in device encoding: %v", e.Text, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

var ErrNotGB2312 = errors.New("outside the GB2312 character set")

// EncodeText converts s to the module's native double-byte encoding.
// GBK does the conversion; anything GBK added on top of GB2312 is rejected
// since the module has no glyphs for it.
func EncodeText(s string) ([]byte, error) {
	// encoders keep state, one per call
	bs, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, &EncodingError{Text: s, Err: err}
	}

	if err := checkGB2312(bs); err != nil {
		return nil, &EncodingError{Text: s, Err: err}
	}
	return bs, nil
}

// checkGB2312 accepts single ASCII bytes and EUC-CN pairs with lead byte
// 0xA1-0xF7 and trail byte 0xA1-0xFE.
func checkGB2312(bs []byte) error {
	for i := 0; i < len(bs); i++ {
		b := bs[i]
		if b < 0x80 {
			continue
		}

		if i+1 >= len(bs) {
			return errors.Wrapf(ErrNotGB2312, "byte %#02x at %d", b, i)
		}

		trail := bs[i+1]
		if b < 0xA1 || b > 0xF7 || trail < 0xA1 || trail > 0xFE {
			return errors.Wrapf(ErrNotGB2312, "bytes %#02x %#02x at %d", b, trail, i)
		}
		i++
	}
	return nil
}
