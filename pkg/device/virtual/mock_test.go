package virtual

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"epaper/pkg/asset"
	"epaper/pkg/command"
	"epaper/pkg/device/epd43"
)

func testLoader(t *testing.T) *asset.Loader {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bmp/NUM1.BMP", []byte{0x42}, 0o644))
	return asset.NewLoader(fs, "/bmp")
}

func TestMocker(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), testLoader(t))

	assert.ErrorIs(t, m.DrawText(0, 0, "early"), epd43.ErrState)

	require.NoError(t, m.Startup())
	require.NoError(t, m.Clear())
	require.NoError(t, m.SetRotation(command.Rotate180))
	require.NoError(t, m.DrawLine(0, 1, 2, 3))
	require.NoError(t, m.DrawWrapped(0, 0, 300, "the quick brown fox"))
	require.NoError(t, m.DrawAsset(5, 5, "NUM1.BMP"))
	require.NoError(t, m.Update())
	require.NoError(t, m.Shutdown())

	want := []byte{
		0x00, 0x10, 0xD2,
		0x50, 0x00, 0x00, 0x00, 0x01, 0x00, 0x02, 0x00, 0x03,
		0x40, 0x00, 0x00, 0x00, 0x00, 't', 'h', 'e', ' ', 'q', 'u', 'i', 'c', 'k',
		0x40, 0x00, 0x00, 0x00, 0x40, 'b', 'r', 'o', 'w', 'n', ' ', 'f', 'o', 'x',
		0x30, 0x00, 0x05, 0x00, 0x05, 0x42,
		0x20, 0xFF,
	}
	assert.Equal(t, want, m.Wire())
}

func TestMocker_EncodingError(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), nil)
	require.NoError(t, m.Startup())

	var encErr *command.EncodingError
	assert.ErrorAs(t, m.DrawText(0, 0, "\U0001F600"), &encErr)
}

func TestMocker_WrappedOverflow(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), nil)
	require.NoError(t, m.Startup())

	assert.Error(t, m.DrawWrapped(0, 65500, 32, "w w w w"))

	require.NoError(t, m.Update())
	assert.Equal(t, []byte{0x00, 0x20}, m.Wire())
}

func TestMocker_WrappedAtomic(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), nil)
	require.NoError(t, m.Startup())

	var encErr *command.EncodingError
	require.ErrorAs(t, m.DrawWrapped(0, 0, 32, "ok \U0001F600"), &encErr)

	require.NoError(t, m.Update())
	assert.Equal(t, []byte{0x00, 0x20}, m.Wire(), "no line of a failed wrap is kept")
}

func TestMocker_AssetWithoutLoader(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), nil)
	require.NoError(t, m.Startup())

	assert.ErrorIs(t, m.DrawAsset(1, 1, "NUM1.BMP"), epd43.ErrNoLoader)

	require.NoError(t, m.Update())
	assert.Equal(t, []byte{0x00, 0x20}, m.Wire())
}

func TestMocker_MissingAsset(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), testLoader(t))
	require.NoError(t, m.Startup())

	var nf *asset.NotFoundError
	assert.ErrorAs(t, m.DrawAsset(1, 1, "NUM9.BMP"), &nf)
}
