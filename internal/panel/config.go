package panel

import (
	"time"

	"github.com/ajanata/macropanel/internal/gfx"
)

type Config struct {
	Columns, Rows int

	// ButtonX and ButtonY are the centre of the top left button.
	ButtonX, ButtonY int16
	ButtonW, ButtonH int16
	SpacingX         int16
	SpacingY         int16
	TextSize         uint8

	// Labels and Colors are in row-major order, one per button. Colours are RGB565.
	Labels []string
	Colors []uint16

	Outline    uint16
	Text       uint16
	Background uint16

	PollInterval time.Duration
}

// DefaultConfig is a 4x4 grid sized for a 320x240 landscape panel.
func DefaultConfig() Config {
	return Config{
		Columns:  4,
		Rows:     4,
		ButtonX:  38,
		ButtonY:  34,
		ButtonW:  70,
		ButtonH:  50,
		SpacingX: 10,
		SpacingY: 10,
		TextSize: 1,
		Labels: []string{
			"Mac 1", "Mac 2", "Mac 3", "Mac 4",
			"Mac 5", "Mac 6", "Mac 7", "Mac 8",
			"Mac 9", "Mac A", "Mac B", "Mac C",
			"Mac D", "Mac E", "Mac F", "Mac 0",
		},
		Colors: []uint16{
			gfx.DarkGreen, gfx.DarkGrey, gfx.Red, gfx.Red,
			gfx.Blue, gfx.Blue, gfx.Blue, gfx.Blue,
			gfx.Blue, gfx.Blue, gfx.Blue, gfx.Blue,
			gfx.Blue, gfx.Blue, gfx.Blue, gfx.Blue,
		},
		Outline:      gfx.White,
		Text:         gfx.White,
		Background:   gfx.Black,
		PollInterval: 100 * time.Millisecond,
	}
}
