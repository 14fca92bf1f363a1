// Package calib maps raw touch controller readings onto display coordinates.
package calib

import (
	"encoding/binary"
	"errors"
	"math"

	"tinygo.org/x/drivers/touch"
)

// Calibrator converts a raw touch point to screen coordinates. ok is false when the point does not land on the
// screen.
type Calibrator interface {
	Screen(raw touch.Point, width, height int16) (x, y int16, ok bool)
}

// Linear is a per-axis linear fit, clamped to the screen.
type Linear struct {
	XM, XC float32
	YM, YC float32
}

// DefaultLinear fits an XPT2046 in rotation 3 behind a 320x240 panel.
var DefaultLinear = Linear{XM: -0.09, XC: 336.68, YM: -0.07, YC: 257.70}

func (l Linear) Screen(raw touch.Point, width, height int16) (int16, int16, bool) {
	x := int(math.Round(float64(float32(raw.X)*l.XM + l.XC)))
	y := int(math.Round(float64(float32(raw.Y)*l.YM + l.YC)))
	return clamp(x, width), clamp(y, height), true
}

func clamp(v int, size int16) int16 {
	if v < 0 {
		return 0
	}
	if v >= int(size) {
		return size - 1
	}
	return int16(v)
}

const (
	FlagRotate  = 1 << 0
	FlagInvertX = 1 << 1
	FlagInvertY = 1 << 2
)

// Corners is an origin and span per axis, measured by touching the four screen corners. Spans are never zero.
type Corners struct {
	X0, X1 uint16
	Y0, Y1 uint16
	Flags  uint16
}

// DefaultCorners is the prototype pico panel with the display in rotation 270, for raw X from the 0x91
// conversion and raw Y from 0xD1, as xpt2046 reports them in rotation 1.
var DefaultCorners = Corners{X0: 450, X1: 3264, Y0: 384, Y1: 3275}

func (c Corners) Screen(raw touch.Point, width, height int16) (int16, int16, bool) {
	rx, ry := raw.X, raw.Y
	if c.Flags&FlagRotate != 0 {
		rx, ry = ry, rx
	}
	x1, y1 := int(c.X1), int(c.Y1)
	if x1 == 0 {
		x1 = 1
	}
	if y1 == 0 {
		y1 = 1
	}
	x := (rx - int(c.X0)) * int(width) / x1
	y := (ry - int(c.Y0)) * int(height) / y1
	if c.Flags&FlagInvertX != 0 {
		x = int(width) - x
	}
	if c.Flags&FlagInvertY != 0 {
		y = int(height) - y
	}
	if x < 0 || y < 0 || x >= int(width) || y >= int(height) {
		return 0, 0, false
	}
	return int16(x), int16(y), true
}

// Calibrate derives Corners from raw readings taken at the top-left, bottom-left, top-right and bottom-right
// corners of the screen, in that order.
func Calibrate(samples [4]touch.Point) Corners {
	var v [8]int
	for i, s := range samples {
		v[i*2] = s.X
		v[i*2+1] = s.Y
	}

	var x0, x1, y0, y1 int
	var flags uint16
	if abs(v[0]-v[2]) > abs(v[1]-v[3]) {
		// moving down the left edge changed raw X, so the axes are swapped
		flags |= FlagRotate
		x0 = (v[1] + v[3]) / 2
		x1 = (v[5] + v[7]) / 2
		y0 = (v[0] + v[4]) / 2
		y1 = (v[2] + v[6]) / 2
	} else {
		x0 = (v[0] + v[2]) / 2
		x1 = (v[4] + v[6]) / 2
		y0 = (v[1] + v[5]) / 2
		y1 = (v[3] + v[7]) / 2
	}

	if x0 > x1 {
		x0, x1 = x1, x0
		flags |= FlagInvertX
	}
	if y0 > y1 {
		y0, y1 = y1, y0
		flags |= FlagInvertY
	}

	x1 -= x0
	y1 -= y0
	if x0 == 0 {
		x0 = 1
	}
	if x1 == 0 {
		x1 = 1
	}
	if y0 == 0 {
		y0 = 1
	}
	if y1 == 0 {
		y1 = 1
	}
	return Corners{X0: uint16(x0), X1: uint16(x1), Y0: uint16(y0), Y1: uint16(y1), Flags: flags}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var ErrBadCalibration = errors.New("calib: bad calibration data")

var magic = [2]byte{'T', 'C'}

const encodedLen = 2 + 5*2

func (c Corners) MarshalBinary() ([]byte, error) {
	b := make([]byte, encodedLen)
	copy(b, magic[:])
	for i, v := range c.values() {
		binary.LittleEndian.PutUint16(b[2+i*2:], v)
	}
	return b, nil
}

func (c *Corners) UnmarshalBinary(b []byte) error {
	if len(b) != encodedLen || b[0] != magic[0] || b[1] != magic[1] {
		return ErrBadCalibration
	}
	var v [5]uint16
	for i := range v {
		v[i] = binary.LittleEndian.Uint16(b[2+i*2:])
	}
	if v[1] == 0 || v[3] == 0 {
		return ErrBadCalibration
	}
	*c = Corners{X0: v[0], X1: v[1], Y0: v[2], Y1: v[3], Flags: v[4]}
	return nil
}

func (c Corners) values() [5]uint16 {
	return [5]uint16{c.X0, c.X1, c.Y0, c.Y1, c.Flags}
}
