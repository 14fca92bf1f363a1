package panel

import (
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestButtonContains(t *testing.T) {
	c := qt.New(t)
	b := NewButton(38, 34, 70, 50, color.RGBA{}, color.RGBA{}, color.RGBA{}, "Mac 1", 1)
	c.Assert([2]int16{b.X, b.Y}, qt.Equals, [2]int16{3, 9})
	c.Assert(b.Contains(3, 9), qt.IsTrue)
	c.Assert(b.Contains(72, 58), qt.IsTrue)
	c.Assert(b.Contains(73, 58), qt.IsFalse)
	c.Assert(b.Contains(72, 59), qt.IsFalse)
	c.Assert(b.Contains(-1, -1), qt.IsFalse)
}

func TestButtonTransitions(t *testing.T) {
	c := qt.New(t)
	b := NewButton(38, 34, 70, 50, color.RGBA{}, color.RGBA{}, color.RGBA{}, "Mac 1", 1)

	b.Press(true)
	c.Assert(b.JustPressed(), qt.IsTrue)
	c.Assert(b.JustReleased(), qt.IsFalse)

	b.Press(true)
	c.Assert(b.JustPressed(), qt.IsFalse)
	c.Assert(b.IsPressed(), qt.IsTrue)

	b.Press(false)
	c.Assert(b.JustReleased(), qt.IsTrue)

	b.Press(false)
	c.Assert(b.JustReleased(), qt.IsFalse)
	c.Assert(b.JustPressed(), qt.IsFalse)
}
