package remote

import (
	"epaper/pkg/command"
)

type EmptyResponse struct {
}

type SetFontSizeRequest struct {
	Target command.GlyphTarget
	Size   command.FontSize
}

type DrawBitmapRequest struct {
	PosX uint16
	PosY uint16
	Data []byte
}

type DrawAssetRequest struct {
	PosX uint16
	PosY uint16
	Name string
}

type DrawTextRequest struct {
	PosX  uint16
	PosY  uint16
	Width uint16
	Text  string
}

type DrawLineRequest struct {
	X0, Y0 uint16
	X1, Y1 uint16
}
