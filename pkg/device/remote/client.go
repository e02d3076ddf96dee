package remote

import (
	"net/rpc"

	"epaper/pkg/command"
	"epaper/pkg/proto"
)

func New(addr string) (proto.Control, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Startup() error {
	return c.rpc.Call("Service.Command", "startup", nil)
}

func (c *Client) Shutdown() error {
	return c.rpc.Call("Service.Command", "shutdown", nil)
}

func (c *Client) Clear() error {
	return c.rpc.Call("Service.Command", "clear", nil)
}

func (c *Client) Update() error {
	return c.rpc.Call("Service.Command", "update", nil)
}

func (c *Client) SetMemory(mode command.MemoryMode) error {
	return c.rpc.Call("Service.SetMemory", mode, nil)
}

func (c *Client) SetRotation(rotation command.Rotation) error {
	return c.rpc.Call("Service.SetRotation", rotation, nil)
}

func (c *Client) SetFontSize(target command.GlyphTarget, size command.FontSize) error {
	return c.rpc.Call("Service.SetFontSize", SetFontSizeRequest{Target: target, Size: size}, nil)
}

func (c *Client) DrawBitmap(posX uint16, posY uint16, data []byte) error {
	return c.rpc.Call("Service.DrawBitmap", &DrawBitmapRequest{PosX: posX, PosY: posY, Data: data}, nil)
}

func (c *Client) DrawAsset(posX uint16, posY uint16, name string) error {
	return c.rpc.Call("Service.DrawAsset", &DrawAssetRequest{PosX: posX, PosY: posY, Name: name}, nil)
}

func (c *Client) DrawText(posX uint16, posY uint16, text string) error {
	return c.rpc.Call("Service.DrawText", &DrawTextRequest{PosX: posX, PosY: posY, Text: text}, nil)
}

func (c *Client) DrawWrapped(posX uint16, posY uint16, width uint16, text string) error {
	return c.rpc.Call("Service.DrawWrapped", &DrawTextRequest{PosX: posX, PosY: posY, Width: width, Text: text}, nil)
}

func (c *Client) DrawLine(x0, y0, x1, y1 uint16) error {
	return c.rpc.Call("Service.DrawLine", &DrawLineRequest{X0: x0, Y0: y0, X1: x1, Y1: y1}, nil)
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
