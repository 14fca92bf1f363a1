// Package panel is the macro pad itself: a grid of on-screen buttons polled against the touchscreen, with every
// press and release reported on the serial console.
package panel

import (
	"errors"
	"fmt"
	"time"

	"github.com/ajanata/macropanel/internal/calib"
	"github.com/ajanata/macropanel/internal/gfx"
	"github.com/ajanata/macropanel/internal/report"
	"tinygo.org/x/drivers/touch"
)

var ErrConfig = errors.New("panel: bad config")

// Touch is a touch controller that can say when it has a fresh sample. xpt2046.Device satisfies it.
type Touch interface {
	touch.Pointer
	BufferEmpty() bool
	Touched() bool
}

type EventKind uint8

const (
	Pressed EventKind = iota
	Released
)

func (k EventKind) String() string {
	switch k {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

type Event struct {
	Button int
	Kind   EventKind
}

type Panel struct {
	cfg     Config
	display gfx.Displayer
	touch   Touch
	cal     calib.Calibrator
	log     *report.Reporter

	buttons []*Button
	events  []Event
	width   int16
	height  int16
}

func New(cfg Config, display gfx.Displayer, t Touch, cal calib.Calibrator, log *report.Reporter) (*Panel, error) {
	n := cfg.Columns * cfg.Rows
	if n <= 0 || len(cfg.Labels) != n || len(cfg.Colors) != n {
		return nil, fmt.Errorf("%w: %dx%d grid with %d labels and %d colours", ErrConfig, cfg.Columns, cfg.Rows, len(cfg.Labels), len(cfg.Colors))
	}

	p := &Panel{
		cfg:     cfg,
		display: display,
		touch:   t,
		cal:     cal,
		log:     log,
		buttons: make([]*Button, n),
		events:  make([]Event, 0, n),
	}
	p.width, p.height = display.Size()

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Columns; col++ {
			i := col + row*cfg.Columns
			p.buttons[i] = NewButton(
				cfg.ButtonX+int16(col)*(cfg.ButtonW+cfg.SpacingX),
				cfg.ButtonY+int16(row)*(cfg.ButtonH+cfg.SpacingY),
				cfg.ButtonW, cfg.ButtonH,
				gfx.RGB565(cfg.Outline),
				gfx.RGB565(cfg.Colors[i]),
				gfx.RGB565(cfg.Text),
				cfg.Labels[i],
				cfg.TextSize,
			)
		}
	}
	return p, nil
}

func (p *Panel) Button(i int) *Button {
	return p.buttons[i]
}

func (p *Panel) NumButtons() int {
	return len(p.buttons)
}

// Draw clears the screen and draws every button released.
func (p *Panel) Draw() error {
	if err := p.display.FillRectangle(0, 0, p.width, p.height, gfx.RGB565(p.cfg.Background)); err != nil {
		return err
	}
	for i, b := range p.buttons {
		if err := b.Draw(p.display, false); err != nil {
			return fmt.Errorf("draw button %d: %w", i, err)
		}
	}
	return p.display.Display()
}

// Step polls the touchscreen once, updates every button, redraws the ones that changed and returns the
// transitions. The returned slice is reused by the next call.
func (p *Panel) Step() ([]Event, error) {
	p.events = p.events[:0]
	if p.touch.BufferEmpty() {
		return p.events, nil
	}

	x, y := p.point()

	for i, b := range p.buttons {
		if b.Contains(x, y) {
			p.log.Pressing(i)
			b.Press(true)
		} else {
			b.Press(false)
		}
	}

	dirty := false
	for i, b := range p.buttons {
		if b.JustReleased() {
			p.log.Released(i)
			if err := b.Draw(p.display, false); err != nil {
				return p.events, err
			}
			p.events = append(p.events, Event{Button: i, Kind: Released})
			dirty = true
		}
		if b.JustPressed() {
			if err := b.Draw(p.display, true); err != nil {
				return p.events, err
			}
			p.events = append(p.events, Event{Button: i, Kind: Pressed})
			dirty = true
		}
	}
	if dirty {
		return p.events, p.display.Display()
	}
	return p.events, nil
}

// point is the touched screen position, or -1, -1 when nothing usable is touching the screen.
func (p *Panel) point() (int16, int16) {
	if !p.touch.Touched() {
		return -1, -1
	}
	x, y, ok := p.cal.Screen(p.touch.ReadTouchPoint(), p.width, p.height)
	if !ok {
		return -1, -1
	}
	p.log.Touched()
	return x, y
}

// Run draws the panel and polls it forever. It only returns if the display fails.
func (p *Panel) Run() error {
	if err := p.Draw(); err != nil {
		return err
	}
	for {
		if _, err := p.Step(); err != nil {
			return err
		}
		time.Sleep(p.cfg.PollInterval)
	}
}
