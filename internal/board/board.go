// Package board wires the display, touch controller and flash chip for each supported board. Pin maps live in
// the per-board files.
package board

import (
	"errors"
	"machine"

	"github.com/ajanata/macropanel/internal/gfx"
	"github.com/ajanata/macropanel/internal/tinyflash"
	"github.com/ajanata/macropanel/internal/xpt2046"
	"tinygo.org/x/drivers/ili9341"
)

var ErrNoFlash = errors.New("board: no flash chip fitted")

// Init configures the SPI bus shared by the display, the touch controller and the flash chip. The touch
// controller sets the clock.
func Init() error {
	return configureSPI(xpt2046.MaxSPIFrequency)
}

func Display() *ili9341.Device {
	d := ili9341.NewSPI(bus, tftDC, tftCS, tftRST)
	d.Configure(ili9341.Config{Rotation: ili9341.Rotation270})
	d.FillScreen(gfx.RGB565(gfx.Black))
	return d
}

func Touch() (*xpt2046.Device, error) {
	touchCS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ts := xpt2046.New(bus, touchCS)
	err := ts.Configure(xpt2046.Config{
		Rotation:   touchRotation,
		ZThreshold: touchThreshold,
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// Flash returns the external flash chip, identified and ready for use.
func Flash() (*tinyflash.Device, error) {
	if flashCS == machine.NoPin {
		return nil, ErrNoFlash
	}
	flashCS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	fl := tinyflash.New(bus, flashCS)
	if _, err := fl.Begin(); err != nil {
		return nil, err
	}
	return fl, nil
}
