// Package flashtest simulates a serial NOR flash chip on an SPI bus for tests.
package flashtest

import "math/bits"

// Chip answers the JEDEC command subset used by tinyflash. It implements drivers.SPI; its chip select is Pin().
type Chip struct {
	Mem []byte
	ID  [3]byte

	// BusyPolls is how many status reads report busy after each program or erase.
	BusyPolls int

	// StuckBusy makes the chip report busy forever.
	StuckBusy bool

	// IgnoreWriteEnable makes the chip drop write enable commands.
	IgnoreWriteEnable bool

	// Err is returned by every bus transfer when set.
	Err error

	// Commands logs every command byte received.
	Commands []byte

	selected bool
	wel      bool
	busy     int
	cmd      int
	addr     uint32
	n        int
}

// New returns an erased Winbond-like chip of size bytes, which must be a power of two.
func New(size int) *Chip {
	mem := make([]byte, size)
	for i := range mem {
		mem[i] = 0xFF
	}
	return &Chip{
		Mem: mem,
		ID:  [3]byte{0xEF, 0x40, byte(bits.Len(uint(size)) - 1)},
		cmd: -1,
	}
}

type Pin struct {
	c *Chip
}

func (c *Chip) Pin() *Pin {
	return &Pin{c: c}
}

func (p *Pin) Low() {
	p.c.selected = true
	p.c.cmd = -1
	p.c.n = 0
	p.c.addr = 0
}

func (p *Pin) High() {
	if p.c.selected {
		p.c.finish()
	}
	p.c.selected = false
}

func (c *Chip) Transfer(b byte) (byte, error) {
	if c.Err != nil {
		return 0, c.Err
	}
	return c.clock(b), nil
}

func (c *Chip) Tx(w, r []byte) error {
	if c.Err != nil {
		return c.Err
	}
	n := len(w)
	if len(r) > n {
		n = len(r)
	}
	for i := 0; i < n; i++ {
		var b byte
		if i < len(w) {
			b = w[i]
		}
		out := c.clock(b)
		if i < len(r) {
			r[i] = out
		}
	}
	return nil
}

func (c *Chip) clock(b byte) byte {
	if !c.selected {
		return 0xFF
	}
	if c.cmd < 0 {
		c.cmd = int(b)
		c.Commands = append(c.Commands, b)
		switch b {
		case 0x06:
			if !c.IgnoreWriteEnable && c.busy == 0 {
				c.wel = true
			}
		case 0x04:
			c.wel = false
		}
		return 0xFF
	}

	n := c.n
	c.n++
	switch c.cmd {
	case 0x9F:
		if n < len(c.ID) {
			return c.ID[n]
		}
	case 0x05:
		return c.status()
	case 0x03:
		if n < 3 {
			c.addr = c.addr<<8 | uint32(b)
			return 0xFF
		}
		v := c.Mem[int(c.addr)%len(c.Mem)]
		c.addr++
		return v
	case 0x02:
		if n < 3 {
			c.addr = c.addr<<8 | uint32(b)
			return 0xFF
		}
		if c.wel {
			page := c.addr &^ 0xFF
			a := page | (c.addr+uint32(n-3))&0xFF
			c.Mem[int(a)%len(c.Mem)] &= b
		}
	case 0x20:
		if n < 3 {
			c.addr = c.addr<<8 | uint32(b)
		}
	}
	return 0xFF
}

func (c *Chip) status() byte {
	var s byte
	if c.StuckBusy || c.busy > 0 {
		s |= 0x01
		if c.busy > 0 {
			c.busy--
		}
	}
	if c.wel {
		s |= 0x02
	}
	return s
}

func (c *Chip) finish() {
	if !c.wel {
		return
	}
	switch c.cmd {
	case 0x02:
	case 0x20:
		if c.n < 3 {
			return
		}
		start := int(c.addr&^0xFFF) % len(c.Mem)
		erase(c.Mem[start : start+4096])
	case 0xC7:
		erase(c.Mem)
	default:
		return
	}
	c.wel = false
	c.busy = c.BusyPolls
}

func erase(b []byte) {
	for i := range b {
		b[i] = 0xFF
	}
}
