// Package gfxtest provides an in-memory display for tests.
package gfxtest

import (
	"errors"
	"image/color"
)

var ErrOutOfBounds = errors.New("rectangle coordinates outside display area")

// Framebuffer records every pixel written to it.
type Framebuffer struct {
	W, H    int16
	Pix     []color.RGBA
	Fills   int
	Flushes int
}

func New(w, h int16) *Framebuffer {
	return &Framebuffer{
		W:   w,
		H:   h,
		Pix: make([]color.RGBA, int(w)*int(h)),
	}
}

func (f *Framebuffer) Size() (int16, int16) {
	return f.W, f.H
}

func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	f.Pix[int(y)*int(f.W)+int(x)] = c
}

func (f *Framebuffer) Display() error {
	f.Flushes++
	return nil
}

func (f *Framebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if x < 0 || y < 0 || width <= 0 || height <= 0 || x+width > f.W || y+height > f.H {
		return ErrOutOfBounds
	}
	f.Fills++
	for j := y; j < y+height; j++ {
		for i := x; i < x+width; i++ {
			f.Pix[int(j)*int(f.W)+int(i)] = c
		}
	}
	return nil
}

func (f *Framebuffer) FillScreen(c color.RGBA) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

func (f *Framebuffer) At(x, y int16) color.RGBA {
	return f.Pix[int(y)*int(f.W)+int(x)]
}

// Count returns how many pixels inside the rectangle have colour c.
func (f *Framebuffer) Count(x, y, w, h int16, c color.RGBA) int {
	n := 0
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			if f.At(i, j) == c {
				n++
			}
		}
	}
	return n
}
