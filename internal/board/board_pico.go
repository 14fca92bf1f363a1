//go:build pico

package board

import (
	"machine"

	"github.com/ajanata/macropanel/internal/calib"
)

const (
	spiSCK  = machine.GP2
	spiSDO  = machine.GP3
	spiSDI  = machine.GP4
	tftCS   = machine.GP5
	tftDC   = machine.GP6
	tftRST  = machine.GP7
	touchCS = machine.GP8
	flashCS = machine.GP9

	// raw readings are mapped by the corner calibration, which also handles rotation
	touchRotation  = 1
	touchThreshold = 350

	LEDUsable = true
)

var bus = machine.SPI0

// Calibration is used until one has been measured and saved to flash.
var Calibration calib.Calibrator = calib.DefaultCorners

func configureSPI(freq uint32) error {
	return bus.Configure(machine.SPIConfig{
		Frequency: freq,
		SCK:       spiSCK,
		SDO:       spiSDO,
		SDI:       spiSDI,
	})
}
