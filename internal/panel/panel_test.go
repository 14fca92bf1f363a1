package panel

import (
	"bytes"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/drivers/touch"

	"github.com/ajanata/macropanel/internal/gfx"
	"github.com/ajanata/macropanel/internal/gfx/gfxtest"
	"github.com/ajanata/macropanel/internal/report"
)

type fakeTouch struct {
	empty   bool
	touched bool
	point   touch.Point
}

func (f *fakeTouch) BufferEmpty() bool           { return f.empty }
func (f *fakeTouch) Touched() bool               { return f.touched }
func (f *fakeTouch) ReadTouchPoint() touch.Point { return f.point }

func (f *fakeTouch) touch(x, y int) {
	f.touched = true
	f.point = touch.Point{X: x, Y: y, Z: 1000}
}

func (f *fakeTouch) release() {
	f.touched = false
	f.point = touch.Point{}
}

// identity passes raw points straight through; anything negative is off screen.
type identity struct{}

func (identity) Screen(raw touch.Point, w, h int16) (int16, int16, bool) {
	if raw.X < 0 || raw.Y < 0 {
		return 0, 0, false
	}
	return int16(raw.X), int16(raw.Y), true
}

type fixture struct {
	panel *Panel
	touch *fakeTouch
	fb    *gfxtest.Framebuffer
	log   *bytes.Buffer
}

func newFixture(c *qt.C) *fixture {
	f := &fixture{
		touch: &fakeTouch{},
		fb:    gfxtest.New(320, 240),
		log:   &bytes.Buffer{},
	}
	p, err := New(DefaultConfig(), f.fb, f.touch, identity{}, report.New(f.log))
	c.Assert(err, qt.IsNil)
	c.Assert(p.Draw(), qt.IsNil)
	f.panel = p
	return f
}

// fillPixel is inside the button, clear of the outline and the label.
func (f *fixture) fillPixel(i int) color.RGBA {
	b := f.panel.Button(i)
	return f.fb.At(b.X+b.W/2, b.Y+3)
}

func (f *fixture) step(c *qt.C) []Event {
	events, err := f.panel.Step()
	c.Assert(err, qt.IsNil)
	return append([]Event(nil), events...)
}

func TestLayout(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	c.Assert(f.panel.NumButtons(), qt.Equals, 16)

	b := f.panel.Button(0)
	c.Assert([4]int16{b.X, b.Y, b.W, b.H}, qt.Equals, [4]int16{3, 9, 70, 50})
	c.Assert(b.Label, qt.Equals, "Mac 1")

	b = f.panel.Button(6)
	c.Assert([2]int16{b.X, b.Y}, qt.Equals, [2]int16{163, 69})
	c.Assert(b.Label, qt.Equals, "Mac 7")

	b = f.panel.Button(15)
	c.Assert([2]int16{b.X + b.W, b.Y + b.H}, qt.Equals, [2]int16{313, 239})
	c.Assert(b.Label, qt.Equals, "Mac 0")
}

func TestDraw(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	c.Assert(f.fb.At(0, 0), qt.Equals, gfx.RGB565(gfx.Black))
	c.Assert(f.fillPixel(0), qt.Equals, gfx.RGB565(gfx.DarkGreen))
	c.Assert(f.fillPixel(1), qt.Equals, gfx.RGB565(gfx.DarkGrey))
	c.Assert(f.fillPixel(3), qt.Equals, gfx.RGB565(gfx.Red))
	c.Assert(f.fillPixel(15), qt.Equals, gfx.RGB565(gfx.Blue))

	// label pixels are drawn in the text colour
	b := f.panel.Button(4)
	c.Assert(f.fb.Count(b.X+4, b.Y+4, b.W-8, b.H-8, gfx.RGB565(gfx.White)) > 0, qt.IsTrue)
}

func TestPressAndRelease(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	b := f.panel.Button(5)

	f.touch.touch(int(b.X+b.W/2), int(b.Y+b.H/2))
	c.Assert(f.step(c), qt.DeepEquals, []Event{{Button: 5, Kind: Pressed}})
	c.Assert(f.log.String(), qt.Equals, "touched\nPressing: 5\n")
	c.Assert(f.fillPixel(5), qt.Equals, gfx.RGB565(gfx.White))

	// held: reported again, but no transition
	f.log.Reset()
	c.Assert(f.step(c), qt.HasLen, 0)
	c.Assert(f.log.String(), qt.Equals, "touched\nPressing: 5\n")

	f.log.Reset()
	f.touch.release()
	c.Assert(f.step(c), qt.DeepEquals, []Event{{Button: 5, Kind: Released}})
	c.Assert(f.log.String(), qt.Equals, "Released: 5\n")
	c.Assert(f.fillPixel(5), qt.Equals, gfx.RGB565(gfx.Blue))

	f.log.Reset()
	c.Assert(f.step(c), qt.HasLen, 0)
	c.Assert(f.log.String(), qt.Equals, "")
}

func TestSlideBetweenButtons(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	from, to := f.panel.Button(5), f.panel.Button(6)

	f.touch.touch(int(from.X+1), int(from.Y+1))
	f.step(c)

	f.log.Reset()
	f.touch.touch(int(to.X+1), int(to.Y+1))
	c.Assert(f.step(c), qt.DeepEquals, []Event{
		{Button: 5, Kind: Released},
		{Button: 6, Kind: Pressed},
	})
	c.Assert(f.log.String(), qt.Equals, "touched\nPressing: 6\nReleased: 5\n")
}

func TestTouchBetweenButtons(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	// the gap between columns 0 and 1
	f.touch.touch(75, 30)
	c.Assert(f.step(c), qt.HasLen, 0)
	c.Assert(f.log.String(), qt.Equals, "touched\n")
}

func TestOffScreenTouch(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	f.touch.touch(-5, 10)
	c.Assert(f.step(c), qt.HasLen, 0)
	c.Assert(f.log.String(), qt.Equals, "")
}

func TestBufferEmpty(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	b := f.panel.Button(0)
	f.touch.touch(int(b.X+1), int(b.Y+1))
	f.touch.empty = true
	c.Assert(f.step(c), qt.HasLen, 0)
	c.Assert(f.log.String(), qt.Equals, "")
	c.Assert(b.IsPressed(), qt.IsFalse)
}

func TestBadConfig(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	cfg.Labels = cfg.Labels[:3]
	_, err := New(cfg, gfxtest.New(320, 240), &fakeTouch{}, identity{}, report.New(nil))
	c.Assert(err, qt.ErrorIs, ErrConfig)
}

func TestEventKindString(t *testing.T) {
	c := qt.New(t)
	c.Assert(Pressed.String(), qt.Equals, "pressed")
	c.Assert(Released.String(), qt.Equals, "released")
	c.Assert(EventKind(9).String(), qt.Equals, "EventKind(9)")
}
