package report

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLines(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer
	r := New(&buf)
	r.Touched()
	r.Pressing(3)
	r.Released(15)
	r.Println("Setup complete")
	r.Printf("%d, %d", 450, 3264)
	c.Assert(buf.String(), qt.Equals, "touched\nPressing: 3\nReleased: 15\nSetup complete\n450, 3264\n")
}

func TestNilWriter(t *testing.T) {
	var r *Reporter
	r.Touched()
	New(nil).Pressing(1)
}
