package epd43

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epaper/pkg/asset"
	"epaper/pkg/command"
)

func TestUpdate_FlushesFrameBeforeRefresh(t *testing.T) {
	l, port := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)

	require.NoError(t, f.Line(0, 200, 800, 200))
	require.NoError(t, f.Text(10, 210, "OK"))
	require.NoError(t, f.Bitmap(20, 280, []byte{0xAB}))
	assert.Zero(t, port.written.Len(), "drawing must not reach the port before Update")

	require.NoError(t, l.Update(f))

	want := []byte{
		0x50, 0x00, 0x00, 0x00, 0xC8, 0x03, 0x20, 0x00, 0xC8,
		0x40, 0x00, 0x0A, 0x00, 0xD2, 'O', 'K',
		0x30, 0x00, 0x14, 0x01, 0x18, 0xAB,
		0x20,
	}
	assert.Equal(t, want, port.written.Bytes())
	assert.Zero(t, f.Pending())
}

func TestUpdate_EmptyFrame(t *testing.T) {
	l, port := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)

	require.NoError(t, l.Update(f))

	assert.Equal(t, [][]byte{{0x20}}, port.writes)
}

func TestUpdate_ForeignFrame(t *testing.T) {
	l1, _ := readyLink(t)
	l2, port := readyLink(t)
	f, err := l1.Frame()
	require.NoError(t, err)
	require.NoError(t, f.Line(1, 1, 2, 2))

	assert.ErrorIs(t, l2.Update(f), ErrState)
	assert.Zero(t, port.written.Len())
}

func TestFrame_RequiresReady(t *testing.T) {
	l, port := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)
	require.NoError(t, l.Disconnect())
	written := port.written.Len()

	assert.ErrorIs(t, f.Line(0, 0, 1, 1), ErrState)
	assert.ErrorIs(t, f.Text(0, 0, "x"), ErrState)
	assert.ErrorIs(t, f.Bitmap(0, 0, nil), ErrState)
	assert.ErrorIs(t, f.BitmapFile(0, 0, "NUM1.BMP"), ErrState)
	assert.ErrorIs(t, f.WrapText(0, 0, 100, "a b"), ErrState)
	assert.ErrorIs(t, f.SetFontSize(command.FontLarge), ErrState)

	assert.Zero(t, f.Pending())
	assert.Equal(t, written, port.written.Len())
}

func TestFrame_FontSizes(t *testing.T) {
	l, port := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)
	assert.Equal(t, command.FontSmall, f.cjk)

	require.NoError(t, f.SetFontSize(command.FontMedium))
	require.NoError(t, f.SetLatinFontSize(command.FontLarge))
	assert.Equal(t, command.FontMedium, f.cjk)
	assert.Equal(t, command.FontLarge, f.latin)

	assert.ErrorIs(t, f.SetCJKFontSize(0), command.ErrInvalidCommand)
	assert.Equal(t, command.FontMedium, f.cjk)

	require.NoError(t, l.Update(f))
	assert.Equal(t, []byte{0x60, 0x02, 0x61, 0x02, 0x61, 0x03, 0x20}, port.written.Bytes())

	// the next frame starts from what the device now uses
	next, err := l.Frame()
	require.NoError(t, err)
	assert.Equal(t, command.FontMedium, next.cjk)
	assert.Equal(t, command.FontLarge, next.latin)
}

func TestFrame_WrapText(t *testing.T) {
	l, port := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)

	require.NoError(t, f.WrapText(558, 400, 300, "the quick brown fox"))
	require.NoError(t, l.Update(f))

	want := []byte{
		0x40, 0x02, 0x2E, 0x01, 0x90, 't', 'h', 'e', ' ', 'q', 'u', 'i', 'c', 'k',
		0x40, 0x02, 0x2E, 0x01, 0xD0, 'b', 'r', 'o', 'w', 'n', ' ', 'f', 'o', 'x',
		0x20,
	}
	assert.Equal(t, want, port.written.Bytes())
}

func TestFrame_WrapTextUsesCJKSize(t *testing.T) {
	l, _ := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)
	require.NoError(t, f.SetCJKFontSize(command.FontLarge))
	before := f.Pending()

	require.NoError(t, f.WrapText(0, 0, 300, "the quick brown fox"))

	// 64pt: "the" alone is 192px, "the quick" is 576px
	assert.Equal(t, 4*5+len("thequickbrownfox"), f.Pending()-before)
}

func TestFrame_WrapTextAtomic(t *testing.T) {
	l, _ := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)

	err = f.WrapText(0, 0, 100, "fine words \U0001F600 more")

	var encErr *command.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Zero(t, f.Pending())
}

func TestFrame_WrapTextOverflow(t *testing.T) {
	l, _ := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)

	err = f.WrapText(0, 65500, 32, strings.Repeat("w ", 4))
	assert.Error(t, err)
	assert.Zero(t, f.Pending())
}

func TestFrame_BitmapFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bmp/NUM1.BMP", []byte{1, 2, 3}, 0o644))

	port := newFakePort(0x00)
	l := New(port, nil, WithLoader(asset.NewLoader(fs, "/bmp")))
	require.NoError(t, l.Open())
	f, err := l.Frame()
	require.NoError(t, err)

	require.NoError(t, f.BitmapFile(40, 40, "NUM1.BMP"))

	err = f.BitmapFile(140, 40, "NUM2.BMP")
	var nf *asset.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, Ready, l.State(), "missing asset is recoverable")

	assert.Equal(t, 1+4+3, f.Pending())
}

func TestFrame_BitmapFileNoLoader(t *testing.T) {
	l, _ := readyLink(t)
	f, err := l.Frame()
	require.NoError(t, err)

	assert.ErrorIs(t, f.BitmapFile(0, 0, "NUM1.BMP"), ErrNoLoader)
}

func TestWithTap(t *testing.T) {
	var tap bytes.Buffer
	port := newFakePort(0x00)
	l := New(port, nil, WithTap(&tap))

	require.NoError(t, l.Open())
	require.NoError(t, l.Clear())
	require.NoError(t, l.Disconnect())

	assert.Equal(t, port.written.Bytes(), tap.Bytes())
	assert.Equal(t, []byte{0x00, 0x10, 0xFF}, tap.Bytes())
}
