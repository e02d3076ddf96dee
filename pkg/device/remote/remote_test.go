package remote

import (
	"net"
	"net/rpc"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"epaper/pkg/command"
	"epaper/pkg/device/virtual"
)

func pipeClient(t *testing.T, svc *Service) *Client {
	t.Helper()

	srv := rpc.NewServer()
	require.NoError(t, srv.Register(svc))

	local, remote := net.Pipe()
	go srv.ServeConn(remote)

	c := &Client{rpc: rpc.NewClient(local)}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRoundTrip(t *testing.T) {
	mock := virtual.Mock(zaptest.NewLogger(t), nil)
	c := pipeClient(t, NewService(mock))

	require.NoError(t, c.Startup())
	require.NoError(t, c.Clear())
	require.NoError(t, c.SetMemory(command.MemorySD))
	require.NoError(t, c.SetRotation(command.Rotate90))
	require.NoError(t, c.SetFontSize(command.GlyphLatin, command.FontLarge))
	require.NoError(t, c.DrawLine(1, 2, 3, 4))
	require.NoError(t, c.DrawText(7, 8, "hi"))
	require.NoError(t, c.DrawBitmap(9, 10, []byte{0xEE}))
	require.NoError(t, c.DrawWrapped(0, 100, 300, "a b"))
	require.NoError(t, c.Update())
	require.NoError(t, c.Shutdown())

	assert.Equal(t, []byte{
		0x00, 0x10, 0xE1, 0xD1,
		0x61, 0x03,
		0x50, 0x00, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04,
		0x40, 0x00, 0x07, 0x00, 0x08, 'h', 'i',
		0x30, 0x00, 0x09, 0x00, 0x0A, 0xEE,
		0x40, 0x00, 0x00, 0x00, 0x64, 'a', ' ', 'b',
		0x20, 0xFF,
	}, mock.Wire())
}

func TestRoundTrip_Errors(t *testing.T) {
	mock := virtual.Mock(zaptest.NewLogger(t), nil)
	c := pipeClient(t, NewService(mock))

	err := c.DrawText(0, 0, "not started")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "link is disconnected")

	err = c.rpc.Call("Service.Command", "reboot", nil)
	assert.EqualError(t, err, "unknown command")
}
