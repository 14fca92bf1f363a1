package calib

import (
	"image/color"
	"time"

	"github.com/ajanata/macropanel/internal/filter"
	"github.com/ajanata/macropanel/internal/gfx"
	"github.com/ajanata/macropanel/internal/report"
	"tinygo.org/x/drivers/touch"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	defaultSamples    = 8
	defaultMarkerSize = 15
	defaultDelay      = 20 * time.Millisecond
)

// Session walks the user through touching each corner of the screen.
type Session struct {
	Display gfx.Displayer
	Touch   touch.Pointer
	Log     *report.Reporter

	// Samples is how many readings are averaged per corner.
	Samples    uint8
	MarkerSize int16
	// Delay is the pause between polls; negative disables it.
	Delay time.Duration
}

func (s *Session) Run() (Corners, error) {
	samples := s.Samples
	if samples == 0 {
		samples = defaultSamples
	}
	size := s.MarkerSize
	if size == 0 {
		size = defaultMarkerSize
	}
	delay := s.Delay
	if delay < 0 {
		delay = 0
	} else if delay == 0 {
		delay = defaultDelay
	}

	black := gfx.RGB565(gfx.Black)
	w, h := s.Display.Size()
	if err := s.Display.FillRectangle(0, 0, w, h, black); err != nil {
		return Corners{}, err
	}
	s.text(h/2, "Touch corners as indicated", gfx.RGB565(gfx.White))
	s.Log.Println("Touch corners as indicated")

	markers := [4][2]int16{
		{0, 0},
		{0, h - size},
		{w - size, 0},
		{w - size, h - size},
	}

	var raw [4]touch.Point
	for i, m := range markers {
		if err := s.Display.FillRectangle(m[0], m[1], size, size, gfx.RGB565(gfx.Magenta)); err != nil {
			return Corners{}, err
		}
		_ = s.Display.Display()

		raw[i] = s.sample(samples, delay)
		s.waitRelease(delay)

		if err := s.Display.FillRectangle(m[0], m[1], size, size, black); err != nil {
			return Corners{}, err
		}
	}

	c := Calibrate(raw)
	s.text(h/2+16, "Calibration complete!", gfx.RGB565(gfx.Green))
	_ = s.Display.Display()
	s.Log.Printf("%d, %d, %d, %d, %d", c.X0, c.X1, c.Y0, c.Y1, c.Flags)
	return c, nil
}

func (s *Session) sample(n uint8, delay time.Duration) touch.Point {
	wx := filter.NewWindow(n)
	wy := filter.NewWindow(n)
	var p touch.Point
	for !wx.Full() {
		r := s.Touch.ReadTouchPoint()
		if r.Z > 0 {
			p.X = wx.Filter(r.X)
			p.Y = wy.Filter(r.Y)
			p.Z = r.Z
		}
		sleep(delay)
	}
	return p
}

func (s *Session) waitRelease(delay time.Duration) {
	for s.Touch.ReadTouchPoint().Z > 0 {
		sleep(delay)
	}
}

func (s *Session) text(y int16, msg string, c color.RGBA) {
	w, _ := s.Display.Size()
	_, outbox := tinyfont.LineWidth(&proggy.TinySZ8pt7b, msg)
	x := (w - int16(outbox)) / 2
	if x < 0 {
		x = 0
	}
	tinyfont.WriteLine(s.Display, &proggy.TinySZ8pt7b, x, y, msg, c)
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
