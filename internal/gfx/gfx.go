// Package gfx draws the few shapes the panel needs on top of a display that can fill rectangles quickly.
package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Displayer is a drivers.Displayer that can also fill rectangles in hardware, like ili9341.Device.
type Displayer interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// ILI9341 RGB565 palette.
const (
	Black     = 0x0000
	Navy      = 0x000F
	DarkGreen = 0x03E0
	DarkCyan  = 0x03EF
	Maroon    = 0x7800
	Purple    = 0x780F
	Olive     = 0x7BE0
	LightGrey = 0xC618
	DarkGrey  = 0x7BEF
	Blue      = 0x001F
	Green     = 0x07E0
	Cyan      = 0x07FF
	Red       = 0xF800
	Magenta   = 0xF81F
	Yellow    = 0xFFE0
	White     = 0xFFFF
	Orange    = 0xFD20
)

// RGB565 expands a 16-bit 5-6-5 colour.
func RGB565(c uint16) color.RGBA {
	r := uint8(c>>11) & 0x1F
	g := uint8(c>>5) & 0x3F
	b := uint8(c) & 0x1F
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xFF,
	}
}

func fill(d Displayer, x, y, w, h int16, c color.RGBA) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	return d.FillRectangle(x, y, w, h, c)
}

func hline(d Displayer, x, y, w int16, c color.RGBA) error {
	return fill(d, x, y, w, 1, c)
}

func vline(d Displayer, x, y, h int16, c color.RGBA) error {
	return fill(d, x, y, 1, h, c)
}

func clampRadius(w, h, r int16) int16 {
	max := w
	if h < max {
		max = h
	}
	max /= 2
	if r > max {
		return max
	}
	return r
}

// FillRoundRect fills a rectangle with corners of radius r.
func FillRoundRect(d Displayer, x, y, w, h, r int16, c color.RGBA) error {
	r = clampRadius(w, h, r)
	if err := fill(d, x+r, y, w-2*r, h, c); err != nil {
		return err
	}
	if err := FillCircleHelper(d, x+w-r-1, y+r, r, 1, h-2*r-1, c); err != nil {
		return err
	}
	return FillCircleHelper(d, x+r, y+r, r, 2, h-2*r-1, c)
}

// DrawRoundRect outlines a rectangle with corners of radius r.
func DrawRoundRect(d Displayer, x, y, w, h, r int16, c color.RGBA) error {
	r = clampRadius(w, h, r)
	for _, err := range []error{
		hline(d, x+r, y, w-2*r, c),
		hline(d, x+r, y+h-1, w-2*r, c),
		vline(d, x, y+r, h-2*r, c),
		vline(d, x+w-1, y+r, h-2*r, c),
	} {
		if err != nil {
			return err
		}
	}
	DrawCircleHelper(d, x+r, y+r, r, 1, c)
	DrawCircleHelper(d, x+w-r-1, y+r, r, 2, c)
	DrawCircleHelper(d, x+w-r-1, y+h-r-1, r, 4, c)
	DrawCircleHelper(d, x+r, y+h-r-1, r, 8, c)
	return nil
}

// FillCircleHelper fills the right (corners&1) and/or left (corners&2) half of a circle, stretched
// vertically by delta pixels.
func FillCircleHelper(d Displayer, x0, y0, r int16, corners uint8, delta int16, c color.RGBA) error {
	f := 1 - r
	ddx := int16(1)
	ddy := -2 * r
	x := int16(0)
	y := r
	px, py := x, y

	delta++
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx

		// avoid drawing the same column twice
		if x < y+1 {
			if corners&1 != 0 {
				if err := vline(d, x0+x, y0-y, 2*y+delta, c); err != nil {
					return err
				}
			}
			if corners&2 != 0 {
				if err := vline(d, x0-x, y0-y, 2*y+delta, c); err != nil {
					return err
				}
			}
		}
		if y != py {
			if corners&1 != 0 {
				if err := vline(d, x0+py, y0-px, 2*px+delta, c); err != nil {
					return err
				}
			}
			if corners&2 != 0 {
				if err := vline(d, x0-py, y0-px, 2*px+delta, c); err != nil {
					return err
				}
			}
			py = y
		}
		px = x
	}
	return nil
}

// DrawCircleHelper draws quarter circles: 1 top-left, 2 top-right, 4 bottom-right, 8 bottom-left.
func DrawCircleHelper(d Displayer, x0, y0, r int16, corners uint8, c color.RGBA) {
	f := 1 - r
	ddx := int16(1)
	ddy := -2 * r
	x := int16(0)
	y := r

	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		if corners&4 != 0 {
			d.SetPixel(x0+x, y0+y, c)
			d.SetPixel(x0+y, y0+x, c)
		}
		if corners&2 != 0 {
			d.SetPixel(x0+x, y0-y, c)
			d.SetPixel(x0+y, y0-x, c)
		}
		if corners&8 != 0 {
			d.SetPixel(x0-y, y0+x, c)
			d.SetPixel(x0-x, y0+y, c)
		}
		if corners&1 != 0 {
			d.SetPixel(x0-y, y0-x, c)
			d.SetPixel(x0-x, y0-y, c)
		}
	}
}
