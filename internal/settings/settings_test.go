package settings

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/tinyfs"

	"github.com/ajanata/macropanel/internal/calib"
	"github.com/ajanata/macropanel/internal/tinyflash"
	"github.com/ajanata/macropanel/internal/tinyflash/flashtest"
)

func TestCornersOnMemoryDevice(t *testing.T) {
	c := qt.New(t)
	dev := tinyfs.NewMemoryDevice(512, 4096, 64)

	s, err := Open(dev)
	c.Assert(err, qt.IsNil)
	_, err = s.LoadCorners()
	c.Assert(err, qt.Equals, ErrNotFound)

	want := calib.Corners{X0: 400, X1: 3200, Y0: 450, Y1: 3250, Flags: calib.FlagRotate}
	c.Assert(s.SaveCorners(want), qt.IsNil)
	c.Assert(s.Close(), qt.IsNil)

	// survives a remount
	s, err = Open(dev)
	c.Assert(err, qt.IsNil)
	got, err := s.LoadCorners()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, want)

	want.Flags = 0
	c.Assert(s.SaveCorners(want), qt.IsNil)
	got, err = s.LoadCorners()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, want)
}

func TestCornersOnFlashChip(t *testing.T) {
	c := qt.New(t)
	chip := flashtest.New(256 * 1024)
	dev := tinyflash.New(chip, chip.Pin())
	_, err := dev.Begin()
	c.Assert(err, qt.IsNil)

	s, err := Open(dev)
	c.Assert(err, qt.IsNil)
	c.Assert(s.SaveCorners(calib.DefaultCorners), qt.IsNil)
	got, err := s.LoadCorners()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, calib.DefaultCorners)
	c.Assert(s.Close(), qt.IsNil)
}
