// Package memflash is an in-memory implementation of port.Flash, for tests.
// It wraps a plain []byte with
// github.com/xaionaro-go/bytesextra.NewReadWriteSeeker the same way
// testing/images.go's LoadDiskImage does for disko's test fixtures, giving
// the simulator an io.ReadWriteSeeker without a real file underneath.
package memflash

import (
	"fmt"
	"io"

	"github.com/xaionaro-go/bytesextra"

	"github.com/embeddedfat/fat16core/geometry"
)

// Device is a fixed-size flash simulator backed entirely by memory.
type Device struct {
	backing []byte
	stream  io.ReadWriteSeeker
}

// New allocates a blank Device with capacity for totalSectors sectors of
// geometry.SectorSize bytes each.
func New(totalSectors uint16) *Device {
	backing := make([]byte, uint32(totalSectors)*geometry.SectorSize)
	return &Device{
		backing: backing,
		stream:  bytesextra.NewReadWriteSeeker(backing),
	}
}

// NewFromImage wraps an existing byte slice (e.g. loaded from disk) as a
// Device without copying it.
func NewFromImage(image []byte) *Device {
	return &Device{backing: image, stream: bytesextra.NewReadWriteSeeker(image)}
}

// Bytes exposes the raw backing storage, mainly so tests can assert on exact
// on-disk byte images (round-trip format checks, §8).
func (d *Device) Bytes() []byte {
	return d.backing
}

func (d *Device) seekSector(sector uint16, offset uint16) error {
	pos := int64(sector)*geometry.SectorSize + int64(offset)
	_, err := d.stream.Seek(pos, io.SeekStart)
	return err
}

func (d *Device) PageRead(sector uint16, buf []byte) error {
	if len(buf) != geometry.SectorSize {
		return fmt.Errorf("memflash: PageRead buffer must be %d bytes, got %d", geometry.SectorSize, len(buf))
	}
	if err := d.seekSector(sector, 0); err != nil {
		return err
	}
	_, err := io.ReadFull(d.stream, buf)
	return err
}

func (d *Device) PageWrite(sector uint16, buf []byte) error {
	if len(buf) != geometry.SectorSize {
		return fmt.Errorf("memflash: PageWrite buffer must be %d bytes, got %d", geometry.SectorSize, len(buf))
	}
	if err := d.seekSector(sector, 0); err != nil {
		return err
	}
	_, err := d.stream.Write(buf)
	return err
}

func (d *Device) PartialRead(sector uint16, offset uint16, dst []byte) error {
	if int(offset)+len(dst) > geometry.SectorSize {
		return fmt.Errorf("memflash: PartialRead range exceeds sector bounds")
	}
	if err := d.seekSector(sector, offset); err != nil {
		return err
	}
	_, err := io.ReadFull(d.stream, dst)
	return err
}

func (d *Device) PartialWrite(sector uint16, offset uint16, src []byte) error {
	if int(offset)+len(src) > geometry.SectorSize {
		return fmt.Errorf("memflash: PartialWrite range exceeds sector bounds")
	}
	if err := d.seekSector(sector, offset); err != nil {
		return err
	}
	_, err := d.stream.Write(src)
	return err
}
