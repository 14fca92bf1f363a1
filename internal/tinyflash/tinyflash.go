// Package tinyflash drives a small JEDEC serial NOR flash chip (W25Qxx and friends) over SPI, and exposes it as
// a tinyfs.BlockDevice.
package tinyflash

import (
	"errors"
	"fmt"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfs"
)

const (
	cmdPageProgram  = 0x02
	cmdRead         = 0x03
	cmdWriteDisable = 0x04
	cmdReadStatus   = 0x05
	cmdWriteEnable  = 0x06
	cmdSectorErase  = 0x20
	cmdJEDECID      = 0x9F
	cmdChipErase    = 0xC7

	statusBusy = 0x01
	statusWEL  = 0x02

	PageSize   = 256
	SectorSize = 4096

	defaultTimeout     = 100 * time.Millisecond
	sectorEraseTimeout = time.Second
	chipEraseTimeout   = 100 * time.Second
)

var (
	ErrTimeout      = errors.New("tinyflash: timed out waiting for chip")
	ErrWriteEnable  = errors.New("tinyflash: write enable not latched")
	ErrUnknownChip  = errors.New("tinyflash: unknown chip")
	ErrPageBoundary = errors.New("tinyflash: write crosses page boundary")
	ErrRange        = errors.New("tinyflash: address out of range")
)

// manufacturers we have tested against
var knownManufacturers = map[byte]string{
	0xEF: "Winbond",
	0xC8: "GigaDevice",
	0x1F: "Adesto",
	0xC2: "Macronix",
	0x01: "Spansion",
}

// Pin is a chip select line. machine.Pin satisfies it once configured as an output.
type Pin interface {
	High()
	Low()
}

type Device struct {
	bus      drivers.SPI
	cs       Pin
	capacity uint32
	reading  bool
	err      error

	now func() time.Time
}

var _ tinyfs.BlockDevice = (*Device)(nil)

func New(bus drivers.SPI, cs Pin) *Device {
	cs.High()
	return &Device{
		bus: bus,
		cs:  cs,
		now: time.Now,
	}
}

// Begin identifies the chip and returns its capacity in bytes.
func (d *Device) Begin() (uint32, error) {
	var id [3]byte
	d.cs.Low()
	err := d.cmd(cmdJEDECID)
	if err == nil {
		err = d.bus.Tx(nil, id[:])
	}
	d.cs.High()
	if err != nil {
		return 0, err
	}

	if _, ok := knownManufacturers[id[0]]; !ok || id[2] < 0x10 || id[2] > 0x19 {
		return 0, fmt.Errorf("%w: jedec id %02x %02x %02x", ErrUnknownChip, id[0], id[1], id[2])
	}
	d.capacity = 1 << id[2]
	return d.capacity, nil
}

// Capacity returns the size found by Begin.
func (d *Device) Capacity() uint32 {
	return d.capacity
}

// BeginRead starts a sequential read at addr. The chip stays selected until EndRead.
func (d *Device) BeginRead(addr uint32) error {
	if err := d.checkRange(addr, 1); err != nil {
		return err
	}
	if d.reading {
		d.EndRead()
	}
	if err := d.waitForReady(defaultTimeout); err != nil {
		return err
	}
	d.cs.Low()
	d.reading = true
	if err := d.cmdAddr(cmdRead, addr); err != nil {
		d.EndRead()
		return err
	}
	return nil
}

// ReadNextByte returns the next byte of a read started by BeginRead. A bus error reads as 0xFF and is kept
// for Err.
func (d *Device) ReadNextByte() byte {
	b, err := d.bus.Transfer(0xFF)
	if err != nil {
		if d.err == nil {
			d.err = err
		}
		return 0xFF
	}
	return b
}

// Err returns and clears the first bus error seen by ReadNextByte.
func (d *Device) Err() error {
	err := d.err
	d.err = nil
	return err
}

func (d *Device) EndRead() {
	d.cs.High()
	d.reading = false
}

// WritePage programs data at addr. NOR flash can only clear bits, so the target must have been erased. data
// may not run past the end of addr's page.
func (d *Device) WritePage(addr uint32, data []byte) error {
	if int(addr%PageSize)+len(data) > PageSize {
		return ErrPageBoundary
	}
	if err := d.checkRange(addr, len(data)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.waitForReady(defaultTimeout); err != nil {
		return err
	}
	if err := d.writeEnable(); err != nil {
		return err
	}

	d.cs.Low()
	err := d.cmdAddr(cmdPageProgram, addr)
	if err == nil {
		err = d.bus.Tx(data, nil)
	}
	d.cs.High()
	if err != nil {
		return err
	}
	return d.waitForReady(defaultTimeout)
}

func (d *Device) EraseChip() error {
	if err := d.waitForReady(defaultTimeout); err != nil {
		return err
	}
	if err := d.writeEnable(); err != nil {
		return err
	}
	d.cs.Low()
	err := d.cmd(cmdChipErase)
	d.cs.High()
	if err != nil {
		return err
	}
	return d.waitForReady(chipEraseTimeout)
}

// EraseSector erases the 4 KiB sector containing addr.
func (d *Device) EraseSector(addr uint32) error {
	if err := d.checkRange(addr, 1); err != nil {
		return err
	}
	if err := d.waitForReady(defaultTimeout); err != nil {
		return err
	}
	if err := d.writeEnable(); err != nil {
		return err
	}
	d.cs.Low()
	err := d.cmdAddr(cmdSectorErase, addr&^(SectorSize-1))
	d.cs.High()
	if err != nil {
		return err
	}
	return d.waitForReady(sectorEraseTimeout)
}

func (d *Device) waitForReady(timeout time.Duration) error {
	start := d.now()
	for {
		status, err := d.readStatus()
		if err != nil {
			return err
		}
		if status&statusBusy == 0 {
			return nil
		}
		if d.now().Sub(start) > timeout {
			return ErrTimeout
		}
	}
}

func (d *Device) writeEnable() error {
	d.cs.Low()
	err := d.cmd(cmdWriteEnable)
	d.cs.High()
	if err != nil {
		return err
	}
	status, err := d.readStatus()
	if err != nil {
		return err
	}
	if status&statusWEL == 0 {
		return ErrWriteEnable
	}
	return nil
}

func (d *Device) writeDisable() error {
	d.cs.Low()
	err := d.cmd(cmdWriteDisable)
	d.cs.High()
	return err
}

func (d *Device) readStatus() (byte, error) {
	d.cs.Low()
	defer d.cs.High()
	if err := d.cmd(cmdReadStatus); err != nil {
		return 0, err
	}
	return d.bus.Transfer(0xFF)
}

func (d *Device) cmd(c byte) error {
	_, err := d.bus.Transfer(c)
	return err
}

func (d *Device) cmdAddr(c byte, addr uint32) error {
	return d.bus.Tx([]byte{c, byte(addr >> 16), byte(addr >> 8), byte(addr)}, nil)
}

func (d *Device) checkRange(addr uint32, n int) error {
	if d.capacity != 0 && uint64(addr)+uint64(n) > uint64(d.capacity) {
		return ErrRange
	}
	return nil
}
