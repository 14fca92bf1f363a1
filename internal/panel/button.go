package panel

import (
	"image/color"

	"github.com/ajanata/macropanel/internal/gfx"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// Button is a labelled rounded rectangle that remembers whether it was pressed on the previous poll.
type Button struct {
	X, Y, W, H int16

	Outline, Fill, Text color.RGBA
	Label               string
	TextSize            uint8

	cur, last bool
}

// NewButton creates a button centred on cx, cy.
func NewButton(cx, cy, w, h int16, outline, fill, text color.RGBA, label string, textSize uint8) *Button {
	return &Button{
		X:        cx - w/2,
		Y:        cy - h/2,
		W:        w,
		H:        h,
		Outline:  outline,
		Fill:     fill,
		Text:     text,
		Label:    label,
		TextSize: textSize,
	}
}

func (b *Button) Contains(x, y int16) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

func (b *Button) Press(p bool) {
	b.last = b.cur
	b.cur = p
}

func (b *Button) IsPressed() bool {
	return b.cur
}

func (b *Button) JustPressed() bool {
	return b.cur && !b.last
}

func (b *Button) JustReleased() bool {
	return !b.cur && b.last
}

// Draw paints the button. Inverted swaps the fill and text colours.
func (b *Button) Draw(d gfx.Displayer, inverted bool) error {
	fill, text := b.Fill, b.Text
	if inverted {
		fill, text = b.Text, b.Fill
	}

	r := b.W
	if b.H < r {
		r = b.H
	}
	r /= 4

	if err := gfx.FillRoundRect(d, b.X, b.Y, b.W, b.H, r, fill); err != nil {
		return err
	}
	if err := gfx.DrawRoundRect(d, b.X, b.Y, b.W, b.H, r, b.Outline); err != nil {
		return err
	}

	font := fontFor(b.TextSize)
	_, outbox := tinyfont.LineWidth(font, b.Label)
	x := b.X + (b.W-int16(outbox))/2
	y := b.Y + b.H/2 + int16(font.YAdvance)/3
	tinyfont.WriteLine(d, font, x, y, b.Label, text)
	return nil
}

func fontFor(size uint8) *tinyfont.Font {
	if size > 1 {
		return &freesans.Regular9pt7b
	}
	return &proggy.TinySZ8pt7b
}
