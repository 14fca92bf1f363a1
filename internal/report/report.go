// Package report writes the panel's event lines to the serial console.
package report

import (
	"fmt"
	"io"
)

type Reporter struct {
	w io.Writer
}

// New returns a Reporter writing to w, typically machine.Serial.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) Touched() {
	r.line("touched")
}

func (r *Reporter) Pressing(b int) {
	r.Printf("Pressing: %d", b)
}

func (r *Reporter) Released(b int) {
	r.Printf("Released: %d", b)
}

func (r *Reporter) Println(s string) {
	r.line(s)
}

func (r *Reporter) Printf(format string, args ...any) {
	r.line(fmt.Sprintf(format, args...))
}

// write errors are dropped: there is nowhere else to report them
func (r *Reporter) line(s string) {
	if r == nil || r.w == nil {
		return
	}
	_, _ = io.WriteString(r.w, s+"\n")
}
