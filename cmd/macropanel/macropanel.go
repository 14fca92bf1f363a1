package main

import (
	"machine"
	"time"

	"github.com/ajanata/macropanel/internal/board"
	"github.com/ajanata/macropanel/internal/calib"
	"github.com/ajanata/macropanel/internal/panel"
	"github.com/ajanata/macropanel/internal/report"
	"github.com/ajanata/macropanel/internal/settings"
	"github.com/ajanata/macropanel/internal/xpt2046"
	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers/ili9341"
)

var (
	// to override these, create a config.go and set them in an init()
	forceCalibrate bool
	labels         []string
)

var log = report.New(machine.Serial)

func main() {
	time.Sleep(time.Second)
	log.Println("Starting macro panel")
	blink()

	if err := board.Init(); err != nil {
		earlyPanic(err)
	}
	spiUp = true
	display := board.Display()
	buf, err := textbuf.New(display, textbuf.FontSize6x8)
	if err != nil {
		earlyPanic(err)
	}
	buf.AutoFlush = true
	status(buf, "Starting macro panel")

	ts, err := board.Touch()
	if err != nil {
		status(buf, "Couldn't start touchscreen controller")
		earlyPanic(err)
	}
	status(buf, "Touchscreen started")

	cal := calibration(display, ts, buf)

	cfg := panel.DefaultConfig()
	if labels != nil {
		cfg.Labels = labels
	}
	p, err := panel.New(cfg, display, ts, cal, log)
	if err != nil {
		earlyPanic(err)
	}
	log.Println("Setup complete")
	earlyPanic(p.Run())
}

// calibration loads a saved calibration from flash, measuring a new one if there is none or one was asked for.
// Boards without flash use their built in calibration unless forced.
func calibration(display *ili9341.Device, ts *xpt2046.Device, buf *textbuf.Buffer) calib.Calibrator {
	var store *settings.Store
	fl, err := board.Flash()
	if err == nil {
		store, err = settings.Open(fl)
	}
	if err != nil {
		status(buf, "Flash: "+err.Error())
	}

	if store != nil && !forceCalibrate {
		c, err := store.LoadCorners()
		if err == nil {
			status(buf, "Calibration loaded")
			return c
		}
		if err != settings.ErrNotFound {
			status(buf, "Calibration: "+err.Error())
		}
	}
	if store == nil && !forceCalibrate {
		return board.Calibration
	}

	log.Println("Doing calibration")
	s := &calib.Session{Display: display, Touch: ts, Log: log}
	c, err := s.Run()
	if err != nil {
		earlyPanic(err)
	}
	if store != nil {
		if err := store.SaveCorners(c); err != nil {
			log.Println("Saving calibration: " + err.Error())
		}
	}
	return c
}

func status(buf *textbuf.Buffer, msg string) {
	log.Println(msg)
	_ = buf.Println(msg)
}

// some boards share the LED with the SPI clock, so it cannot blink once the bus is running
var spiUp bool

func blink() {
	if spiUp && !board.LEDUsable {
		time.Sleep(200 * time.Millisecond)
		return
	}
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()
	time.Sleep(100 * time.Millisecond)
	led.Low()
	time.Sleep(100 * time.Millisecond)
}

func earlyPanic(err error) {
	for i := 0; ; i++ {
		blink()
		if i%5 == 0 {
			println(err.Error())
		}
	}
}
