// Package posixflash implements port.Flash on top of a real *os.File, for
// the CLI front end and for anyone who wants to drive the engine against a
// disk image sitting on the host filesystem. It computes offsets the same
// way drivers/common/blockdevice.go's BlockIDToFileOffset and
// drivers/fat8/driver.go's trackAndSectorToFileOffset do: sector number times
// the fixed sector size, read/written via ReadAt/WriteAt so the device needs
// no internal seek position of its own.
package posixflash

import (
	"fmt"
	"os"

	"github.com/embeddedfat/fat16core/geometry"
)

// Device backs port.Flash with a single *os.File.
type Device struct {
	file *os.File
}

// Open opens an existing image file for reading and writing.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Device{file: f}, nil
}

// Create creates a new, zero-filled image file of exactly totalSectors
// sectors and returns a Device backed by it.
func Create(path string, totalSectors uint16) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(totalSectors) * geometry.SectorSize); err != nil {
		f.Close()
		return nil, err
	}
	return &Device{file: f}, nil
}

// Close releases the underlying file handle.
func (d *Device) Close() error {
	return d.file.Close()
}

func offsetOf(sector uint16, within uint16) int64 {
	return int64(sector)*geometry.SectorSize + int64(within)
}

func (d *Device) PageRead(sector uint16, buf []byte) error {
	if len(buf) != geometry.SectorSize {
		return fmt.Errorf("posixflash: PageRead buffer must be %d bytes, got %d", geometry.SectorSize, len(buf))
	}
	_, err := d.file.ReadAt(buf, offsetOf(sector, 0))
	return err
}

func (d *Device) PageWrite(sector uint16, buf []byte) error {
	if len(buf) != geometry.SectorSize {
		return fmt.Errorf("posixflash: PageWrite buffer must be %d bytes, got %d", geometry.SectorSize, len(buf))
	}
	_, err := d.file.WriteAt(buf, offsetOf(sector, 0))
	return err
}

func (d *Device) PartialRead(sector uint16, offset uint16, dst []byte) error {
	if int(offset)+len(dst) > geometry.SectorSize {
		return fmt.Errorf("posixflash: PartialRead range exceeds sector bounds")
	}
	_, err := d.file.ReadAt(dst, offsetOf(sector, offset))
	return err
}

func (d *Device) PartialWrite(sector uint16, offset uint16, src []byte) error {
	if int(offset)+len(src) > geometry.SectorSize {
		return fmt.Errorf("posixflash: PartialWrite range exceeds sector bounds")
	}
	_, err := d.file.WriteAt(src, offsetOf(sector, offset))
	return err
}
