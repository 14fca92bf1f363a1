//go:build teensy41

package board

import (
	"machine"

	"github.com/ajanata/macropanel/internal/calib"
)

// the display also uses hardware SPI, plus D9 and D10
const (
	tftCS   = machine.D10
	tftDC   = machine.D9
	tftRST  = machine.D23
	touchCS = machine.D8
	flashCS = machine.NoPin

	touchRotation  = 3
	touchThreshold = 400

	// LEDUsable is false because the LED is on SCK.
	LEDUsable = false
)

var bus = machine.SPI0

// Calibration is a linear fit, measured on the prototype.
var Calibration calib.Calibrator = calib.DefaultLinear

func configureSPI(freq uint32) error {
	return bus.Configure(machine.SPIConfig{
		Frequency: freq,
		SDI:       machine.SPI0_SDI_PIN,
		SDO:       machine.SPI0_SDO_PIN,
		SCK:       machine.SPI0_SCK_PIN,
		CS:        machine.NoPin,
	})
}
