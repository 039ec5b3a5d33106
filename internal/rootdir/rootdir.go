// Package rootdir implements the root directory component (§4.F): slot
// free/used checks, the 8.3 name lookup scan, and raw entry read/write/
// delete, grounded on fat16.c's _root_is_available/_get_available_root_entry
// scan order and on drivers/fat/dirent.go's entry layout conventions.
package rootdir

import (
	"github.com/embeddedfat/fat16core/geometry"
	"github.com/embeddedfat/fat16core/port"
)

// EntrySize is the width of one 32-byte slot.
const EntrySize = 32

const (
	nameFree    = 0x00
	nameDeleted = 0xE5
)

// NoSlot is the "none" sentinel slot value returned by lookups that fail.
const NoSlot uint8 = 0xFF

// Directory is the root directory region of one volume.
type Directory struct {
	flash port.Flash
}

// New wraps flash with a Directory.
func New(flash port.Flash) *Directory {
	return &Directory{flash: flash}
}

func slotLocation(slot uint8) (sector, offset uint16) {
	return geometry.RootSectorOf(slot), geometry.RootOffsetOf(slot)
}

// firstByte reads just the leading byte of a slot, enough to test free/
// deleted/live without pulling the whole 32-byte entry.
func (d *Directory) firstByte(slot uint8) (byte, error) {
	sector, offset := slotLocation(slot)
	var b [1]byte
	if err := d.flash.PartialRead(sector, offset, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// SlotIsFree reports whether slot has never been used or was deleted.
func (d *Directory) SlotIsFree(slot uint8) (bool, error) {
	b, err := d.firstByte(slot)
	if err != nil {
		return false, err
	}
	return b == nameFree || b == nameDeleted, nil
}

// FirstFreeSlot scans every slot in order and returns the first free one, or
// NoSlot if the directory is full.
func (d *Directory) FirstFreeSlot() (uint8, error) {
	for slot := 0; slot < geometry.RootEntries; slot++ {
		free, err := d.SlotIsFree(uint8(slot))
		if err != nil {
			return NoSlot, err
		}
		if free {
			return uint8(slot), nil
		}
	}
	return NoSlot, nil
}

// Lookup scans slots in order for an exact 11-byte (name, ext) match,
// stopping at the first never-used (0x00) entry per the directory
// terminator invariant. Deleted (0xE5) slots are skipped, not treated as a
// terminator.
func (d *Directory) Lookup(name [8]byte, ext [3]byte) (uint8, error) {
	for slot := 0; slot < geometry.RootEntries; slot++ {
		sector, offset := slotLocation(uint8(slot))
		var buf [EntrySize]byte
		if err := d.flash.PartialRead(sector, offset, buf[:]); err != nil {
			return NoSlot, err
		}
		switch buf[0] {
		case nameFree:
			return NoSlot, nil
		case nameDeleted:
			continue
		}

		var n [8]byte
		var x [3]byte
		copy(n[:], buf[0:8])
		copy(x[:], buf[8:11])
		if n == name && x == ext {
			return uint8(slot), nil
		}
	}
	return NoSlot, nil
}

// ReadRaw reads the full 32-byte slot image.
func (d *Directory) ReadRaw(slot uint8) ([EntrySize]byte, error) {
	var buf [EntrySize]byte
	sector, offset := slotLocation(slot)
	err := d.flash.PartialRead(sector, offset, buf[:])
	return buf, err
}

// WriteRaw writes a full 32-byte slot image.
func (d *Directory) WriteRaw(slot uint8, buf [EntrySize]byte) error {
	sector, offset := slotLocation(slot)
	return d.flash.PartialWrite(sector, offset, buf[:])
}

// Delete marks slot deleted by writing 0xE5 into its first byte. Freeing the
// slot's cluster chain is the caller's responsibility.
func (d *Directory) Delete(slot uint8) error {
	sector, offset := slotLocation(slot)
	return d.flash.PartialWrite(sector, offset, []byte{nameDeleted})
}
