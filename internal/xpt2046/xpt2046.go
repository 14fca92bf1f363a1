// Package xpt2046 reads the XPT2046 resistive touch controller over a hardware SPI bus shared with the display.
package xpt2046

import (
	"errors"
	"time"

	"github.com/ajanata/macropanel/internal/filter"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/touch"
)

const (
	cmdZ1         = 0xB1
	cmdZ2         = 0xC1
	cmdX          = 0x91
	cmdY          = 0xD1
	cmdYPowerDown = 0xD0

	maxRaw = 4095

	DefaultZThreshold = 400

	// the controller is not sampled more often than this; BufferEmpty reports true inside the window
	sampleInterval = 3 * time.Millisecond

	// MaxSPIFrequency is the fastest clock the controller tolerates; the display has to share it.
	MaxSPIFrequency = 2_000_000
)

var ErrNoController = errors.New("xpt2046: no controller on bus")

// Pin is a chip select line. machine.Pin satisfies it once configured as an output.
type Pin interface {
	High()
	Low()
}

type Config struct {
	// Rotation matches the display rotation, 0-3.
	Rotation uint8
	// ZThreshold is the minimum pressure counted as a touch.
	ZThreshold int
}

type Device struct {
	bus       drivers.SPI
	cs        Pin
	rotation  uint8
	threshold int

	point touch.Point
	last  time.Time
	err   error

	now func() time.Time
}

var _ touch.Pointer = (*Device)(nil)

func New(bus drivers.SPI, cs Pin) *Device {
	cs.High()
	return &Device{
		bus:       bus,
		cs:        cs,
		rotation:  1,
		threshold: DefaultZThreshold,
		now:       time.Now,
	}
}

// Configure applies cfg and checks that something answers on the bus.
func (d *Device) Configure(cfg Config) error {
	d.rotation = cfg.Rotation % 4
	if cfg.ZThreshold > 0 {
		d.threshold = cfg.ZThreshold
	}

	d.cs.Low()
	_, err := d.bus.Transfer(cmdZ1)
	raw := d.transfer16(cmdYPowerDown)
	_ = d.transfer16(0)
	d.cs.High()
	if busErr := d.takeErr(); err == nil {
		err = busErr
	}
	if err != nil {
		return err
	}
	// the first clock of every conversion is a zero bit; a floating MISO line reads all ones
	if raw&0x8000 != 0 {
		return ErrNoController
	}
	return nil
}

// BufferEmpty is true while the last touch sample is too fresh to take a new one.
func (d *Device) BufferEmpty() bool {
	return d.now().Sub(d.last) < sampleInterval
}

// Touched samples the controller and reports whether the pressure is over the threshold.
func (d *Device) Touched() bool {
	d.Update()
	return d.point.Z >= d.threshold
}

// ReadTouchPoint samples the controller and returns the raw point in display orientation. Z is zero when
// nothing is touching the screen.
func (d *Device) ReadTouchPoint() touch.Point {
	d.Update()
	return d.point
}

// Err returns and clears the last bus error seen while sampling.
func (d *Device) Err() error {
	return d.takeErr()
}

// Update takes a new sample unless a touch was sampled within the last few milliseconds.
func (d *Device) Update() {
	now := d.now()
	if !d.last.IsZero() && now.Sub(d.last) < sampleInterval {
		return
	}

	var data [6]int16

	d.cs.Low()
	if _, err := d.bus.Transfer(cmdZ1); err != nil && d.err == nil {
		d.err = err
	}
	z1 := int(d.transfer16(cmdZ2) >> 3)
	z := z1 + maxRaw
	z2 := int(d.transfer16(cmdX) >> 3)
	z -= z2
	if z >= d.threshold {
		// first conversion after a pressure read is noisy
		_ = d.transfer16(cmdX)
		// each transfer clocks out the result of the previous command
		data[0] = int16(d.transfer16(cmdY) >> 3)
		data[1] = int16(d.transfer16(cmdX) >> 3)
		data[2] = int16(d.transfer16(cmdY) >> 3)
		data[3] = int16(d.transfer16(cmdX) >> 3)
	}
	data[4] = int16(d.transfer16(cmdYPowerDown) >> 3)
	data[5] = int16(d.transfer16(0) >> 3)
	d.cs.High()

	if z < 0 {
		z = 0
	}
	if z < d.threshold {
		d.point.Z = 0
		return
	}
	// only good reads hold off the next sample
	d.last = now

	x := int(filter.BestTwo(data[0], data[2], data[4]))
	y := int(filter.BestTwo(data[1], data[3], data[5]))
	d.point = rotate(d.rotation, x, y, z)
}

func rotate(rotation uint8, x, y, z int) touch.Point {
	switch rotation {
	case 0:
		return touch.Point{X: maxRaw - y, Y: x, Z: z}
	case 1:
		return touch.Point{X: x, Y: y, Z: z}
	case 2:
		return touch.Point{X: y, Y: maxRaw - x, Z: z}
	default:
		return touch.Point{X: maxRaw - x, Y: maxRaw - y, Z: z}
	}
}

func (d *Device) transfer16(cmd uint16) uint16 {
	w := [2]byte{byte(cmd >> 8), byte(cmd)}
	var r [2]byte
	if err := d.bus.Tx(w[:], r[:]); err != nil && d.err == nil {
		d.err = err
	}
	return uint16(r[0])<<8 | uint16(r[1])
}

func (d *Device) takeErr() error {
	err := d.err
	d.err = nil
	return err
}
