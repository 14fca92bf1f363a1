package filter

// Window is a sliding window mean over integer samples.
type Window struct {
	values []int
}

func NewWindow(size uint8) *Window {
	if size == 0 {
		size = 1
	}
	return &Window{
		values: make([]int, 0, size),
	}
}

// Filter adds value to the window and returns the mean of the window.
func (w *Window) Filter(value int) int {
	var sum int

	// TODO ring buffer?
	if l := len(w.values); l < cap(w.values) {
		w.values = append(w.values, value)
	} else {
		copy(w.values, w.values[1:])
		w.values[l-1] = value
	}

	for _, v := range w.values {
		sum += v
	}
	return sum / len(w.values)
}

func (w *Window) Len() int {
	return len(w.values)
}

func (w *Window) Full() bool {
	return len(w.values) == cap(w.values)
}

func (w *Window) Reset() {
	w.values = w.values[:0]
}
