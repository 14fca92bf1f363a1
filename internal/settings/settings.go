// Package settings keeps the touch calibration on a littlefs filesystem in the external flash chip.
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ajanata/macropanel/internal/calib"
	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

const cornersPath = "/touchcal"

var ErrNotFound = errors.New("settings: not found")

type Store struct {
	fs *littlefs.LFS
}

// Open mounts the filesystem on dev, formatting it if it does not mount.
func Open(dev tinyfs.BlockDevice) (*Store, error) {
	fs := littlefs.New(dev)
	fs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 512,
		BlockCycles:   100,
	})

	if err := fs.Mount(); err != nil {
		println("settings: formatting flash:", err.Error())
		if err := fs.Format(); err != nil {
			return nil, fmt.Errorf("format: %w", err)
		}
		if err := fs.Mount(); err != nil {
			return nil, fmt.Errorf("mount: %w", err)
		}
	}
	return &Store{fs: fs}, nil
}

func (s *Store) Close() error {
	return s.fs.Unmount()
}

func (s *Store) LoadCorners() (calib.Corners, error) {
	var c calib.Corners
	f, err := s.fs.OpenFile(cornersPath, os.O_RDONLY)
	if err != nil {
		return c, ErrNotFound
	}
	defer f.Close()

	var buf [32]byte
	n, err := f.Read(buf[:])
	if err != nil && err != io.EOF {
		return c, fmt.Errorf("read %s: %w", cornersPath, err)
	}
	if err := c.UnmarshalBinary(buf[:n]); err != nil {
		return c, err
	}
	return c, nil
}

func (s *Store) SaveCorners(c calib.Corners) error {
	b, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	f, err := s.fs.OpenFile(cornersPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("open %s: %w", cornersPath, err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", cornersPath, err)
	}
	return f.Close()
}
