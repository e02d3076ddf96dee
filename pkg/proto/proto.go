package proto

import (
	"epaper/pkg/command"
)

// Control is the display as seen by applications: a link that can be
// started, reset, drawn on and shut down. Drawing calls collect into the
// current frame until Update sends it.
type Control interface {
	Startup() error
	Shutdown() error

	Clear() error
	SetMemory(mode command.MemoryMode) error
	SetRotation(rotation command.Rotation) error

	SetFontSize(target command.GlyphTarget, size command.FontSize) error
	DrawBitmap(posX uint16, posY uint16, data []byte) error
	DrawAsset(posX uint16, posY uint16, name string) error
	DrawText(posX uint16, posY uint16, text string) error
	DrawWrapped(posX uint16, posY uint16, width uint16, text string) error
	DrawLine(x0, y0, x1, y1 uint16) error

	Update() error
}
