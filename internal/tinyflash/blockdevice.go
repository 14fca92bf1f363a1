package tinyflash

import "io"

// ReadAt implements tinyfs.BlockDevice.
func (d *Device) ReadAt(buf []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrRange
	}
	if len(buf) == 0 {
		return 0, nil
	}
	if off >= int64(d.capacity) {
		return 0, io.EOF
	}
	if off+int64(len(buf)) > int64(d.capacity) {
		return 0, io.ErrUnexpectedEOF
	}
	if err := d.BeginRead(uint32(off)); err != nil {
		return 0, err
	}
	err := d.bus.Tx(nil, buf)
	d.EndRead()
	if err != nil {
		return 0, err
	}
	return len(buf), nil
}

// WriteAt implements tinyfs.BlockDevice. The range must have been erased.
func (d *Device) WriteAt(buf []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(buf)) > int64(d.capacity) {
		return 0, ErrRange
	}
	n := 0
	for n < len(buf) {
		addr := uint32(off) + uint32(n)
		chunk := PageSize - int(addr%PageSize)
		if rem := len(buf) - n; chunk > rem {
			chunk = rem
		}
		if err := d.WritePage(addr, buf[n:n+chunk]); err != nil {
			return n, err
		}
		n += chunk
	}
	return n, nil
}

func (d *Device) Size() int64 {
	return int64(d.capacity)
}

func (d *Device) WriteBlockSize() int64 {
	return PageSize
}

func (d *Device) EraseBlockSize() int64 {
	return SectorSize
}

// EraseBlocks erases n sectors starting at sector start.
func (d *Device) EraseBlocks(start, n int64) error {
	for i := start; i < start+n; i++ {
		if err := d.EraseSector(uint32(i * SectorSize)); err != nil {
			return err
		}
	}
	return d.writeDisable()
}
