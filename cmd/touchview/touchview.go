// touchview shows raw and calibrated touch readings, for working out a calibration on new hardware.
package main

import (
	"fmt"
	"time"

	"github.com/ajanata/macropanel/internal/board"
	"github.com/ajanata/macropanel/internal/calib"
	"github.com/ajanata/textbuf"
)

func main() {
	time.Sleep(time.Second)
	println("start")

	if err := board.Init(); err != nil {
		panic(err)
	}
	display := board.Display()
	w, h := display.Size()

	buf, err := textbuf.New(display, textbuf.FontSize6x8)
	if err != nil {
		panic(err)
	}
	buf.AutoFlush = true
	buf.Println("touch view")

	ts, err := board.Touch()
	if err != nil {
		buf.PrintlnInverse("touch: " + err.Error())
		panic(err)
	}
	bw, bh := buf.Size()
	buf.Println(fmt.Sprintf("screen %dx%d, console %dx%d", w, h, bw, bh))

	var fits = []struct {
		name string
		cal  calib.Calibrator
	}{
		{"linear", calib.DefaultLinear},
		{"corners", calib.DefaultCorners},
	}

	for {
		time.Sleep(50 * time.Millisecond)
		if ts.BufferEmpty() {
			continue
		}
		p := ts.ReadTouchPoint()
		if p.Z == 0 {
			buf.SetLine(3, "not touched")
			continue
		}
		buf.SetLineInverse(3, fmt.Sprintf("raw x %4d y %4d z %4d", p.X, p.Y, p.Z))
		for i, f := range fits {
			x, y, ok := f.cal.Screen(p, w, h)
			buf.SetLine(4+i, fmt.Sprintf("%-7s %3d %3d %v", f.name, x, y, ok))
		}
		println(p.X, p.Y, p.Z)
		if err := ts.Err(); err != nil {
			println("touch:", err.Error())
		}
	}
}
