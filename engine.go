// Package fat16 is the FAT16 on-disk layout manager: the file-level engine
// (create, delete, rename, read, append, modify, resize, enumerate) plus
// volume lifecycle (format status, format, init). It composes the FAT table
// and root directory components against a port.Flash and a port.Clock, the
// same composition shape drivers/fat/driverbase.go uses to build a full
// driver out of smaller pieces.
package fat16

import (
	"github.com/embeddedfat/fat16core/geometry"
	"github.com/embeddedfat/fat16core/internal/fat"
	"github.com/embeddedfat/fat16core/internal/rootdir"
	"github.com/embeddedfat/fat16core/port"
)

// NoSlot is the "none" file handle value, returned when a lookup or free-slot
// scan finds nothing.
const NoSlot uint8 = rootdir.NoSlot

// Cursor lets a caller resume a sequential read without rewalking a file's
// chain from the head. A Cursor at the start of a file holds that file's
// first cluster with Index 0; the zero Cursor names cluster 0, not the start
// of any file.
type Cursor struct {
	Cluster uint16
	Index   uint32 // cluster's distance from the file's first cluster
}

// Engine is a mounted FAT16 volume: the file-level primitives the core
// exposes, bound to one flash device, one FAT table, one root directory, and
// one clock.
type Engine struct {
	flash port.Flash
	clock port.Clock
	fat   *fat.Table
	root  *rootdir.Directory
}

// New mounts an already-formatted volume. It performs the one linear FAT
// scan needed to seed the free-cluster cache; after that, free-cluster
// searches and counts scan the in-memory bitmap instead of re-reading the FAT.
func New(flash port.Flash, clock port.Clock) (*Engine, error) {
	table, err := fat.New(flash)
	if err != nil {
		return nil, err
	}
	return &Engine{
		flash: flash,
		clock: clock,
		fat:   table,
		root:  rootdir.New(flash),
	}, nil
}

func clusterCount(size uint32) uint16 {
	if size == 0 {
		return 1
	}
	return uint16((size + geometry.SectorSize - 1) / geometry.SectorSize)
}

// CreateFile allocates a directory slot and a cluster chain of the requested
// size and returns the new file's slot. Status is StatusFF if a file with
// this name/extension already exists, StatusFE if no directory slot is
// free, StatusFD if fewer than the required number of clusters are free --
// checked before anything is written, so a failed call leaves the volume
// untouched -- and StatusOK on success.
func (e *Engine) CreateFile(name, ext string, size uint32) (uint8, StatusCode, error) {
	n, x := nameKey(name, ext)
	if existing, err := e.root.Lookup(n, x); err != nil {
		return NoSlot, StatusOK, err
	} else if existing != NoSlot {
		return NoSlot, StatusFF, ErrDuplicateName
	}

	slot, err := e.root.FirstFreeSlot()
	if err != nil {
		return NoSlot, StatusOK, err
	}
	if slot == NoSlot {
		return NoSlot, StatusFE, ErrDirectoryFull
	}

	required := clusterCount(size)
	if e.fat.CountFree(required) < required {
		return NoSlot, StatusFD, ErrInsufficientSpace
	}

	first := e.fat.FindFree(2)
	date, tm := e.clock.FATDate(), e.clock.FATTime()
	entry := Entry{
		Name:         n,
		Extension:    x,
		Attributes:   AttrNone,
		CreatedDate:  date,
		CreatedTime:  tm,
		AccessedDate: date,
		ModifiedDate: date,
		ModifiedTime: tm,
		FirstCluster: first,
		FileSize:     size,
	}
	if err := writeEntry(e.root, slot, entry); err != nil {
		return NoSlot, StatusOK, err
	}

	current := first
	for i := uint16(0); i < required; i++ {
		if i == required-1 {
			if err := e.fat.Write(current, fat.EndOfChain); err != nil {
				return NoSlot, StatusOK, err
			}
			break
		}
		next := e.fat.FindFree(current + 1)
		if err := e.fat.Write(current, next); err != nil {
			return NoSlot, StatusOK, err
		}
		current = next
	}

	return slot, StatusOK, nil
}

// DeleteFile frees every cluster in slot's chain, then marks the slot
// deleted. A slot out of range or already free is a silent no-op, matching
// the source behavior -- the source returns void, so this always reports
// StatusOK; a non-nil error still means something in the underlying flash
// I/O failed.
func (e *Engine) DeleteFile(slot uint8) (StatusCode, error) {
	if int(slot) >= geometry.RootEntries {
		return StatusOK, nil
	}
	free, err := e.root.SlotIsFree(slot)
	if err != nil {
		return StatusOK, err
	}
	if free {
		return StatusOK, nil
	}

	entry, err := readEntry(e.root, slot)
	if err != nil {
		return StatusOK, err
	}

	current := entry.FirstCluster
	for current != 0 && !fat.IsEndOfChain(current) {
		next, err := e.fat.Read(current)
		if err != nil {
			return StatusOK, err
		}
		if err := e.fat.Write(current, fat.Free); err != nil {
			return StatusOK, err
		}
		if fat.IsEndOfChain(next) {
			break
		}
		current = next
	}

	if err := e.root.Delete(slot); err != nil {
		return StatusOK, err
	}
	return StatusOK, nil
}

// RenameFile overwrites slot's 8+3 name bytes. It does not check for name
// collisions -- callers are expected to Lookup first if they care. The
// source returns void, so this always reports StatusOK alongside a nil
// error.
func (e *Engine) RenameFile(slot uint8, name, ext string) (StatusCode, error) {
	entry, err := readEntry(e.root, slot)
	if err != nil {
		return StatusOK, err
	}
	entry.Name, entry.Extension = nameKey(name, ext)
	if err := writeEntry(e.root, slot, entry); err != nil {
		return StatusOK, err
	}
	return StatusOK, nil
}

// ReadFromFile reads len(dst) bytes starting at start into dst. Status is
// StatusFF if the range runs past the end of the file, else StatusOK.
func (e *Engine) ReadFromFile(slot uint8, start uint32, dst []byte) (StatusCode, error) {
	entry, err := readEntry(e.root, slot)
	if err != nil {
		return StatusOK, err
	}
	length := uint32(len(dst))
	if start+length > entry.FileSize {
		return StatusFF, ErrRangeInvalid
	}

	cursor := Cursor{Cluster: entry.FirstCluster, Index: 0}
	return e.ReadFromFileFast(&cursor, start, dst)
}

// ReadFromFileFast reads into dst starting at byte offset start, using
// cursor as a hint to avoid rewalking the chain from the head. cursor.Index
// is measured in whole clusters from the file's first cluster; the caller's
// cursor must already be at or before start (cursor.Index*512 <= start),
// else the call fails with StatusFF/ErrCursorAhead. The cursor is advanced
// to the cluster holding start; the rest of the read walks a local working
// cluster and does not move the cursor further.
func (e *Engine) ReadFromFileFast(cursor *Cursor, start uint32, dst []byte) (StatusCode, error) {
	if uint32(cursor.Index)*geometry.SectorSize > start {
		return StatusFF, ErrCursorAhead
	}

	working := cursor.Cluster
	index := cursor.Index
	for start-index*geometry.SectorSize >= geometry.SectorSize {
		next, err := e.fat.Read(working)
		if err != nil {
			return StatusOK, err
		}
		working = next
		index++
	}
	cursor.Cluster, cursor.Index = working, index

	written := uint32(0)
	length := uint32(len(dst))
	offset := uint16(start - index*geometry.SectorSize)
	for written < length {
		chunk := uint32(geometry.SectorSize - offset)
		if remaining := length - written; chunk > remaining {
			chunk = remaining
		}
		sector := geometry.SectorOfCluster(working)
		if err := e.flash.PartialRead(sector, offset, dst[written:written+chunk]); err != nil {
			return StatusOK, err
		}
		written += chunk
		offset = 0
		if written < length {
			next, err := e.fat.Read(working)
			if err != nil {
				return StatusOK, err
			}
			working = next
		}
	}

	return StatusOK, nil
}

// AppendToFile writes data to the end of slot's file, extending its chain as
// needed, and updates fileSize and the modification timestamp. Status is
// StatusFF for a slot out of range, StatusFE for a free slot, else StatusOK.
func (e *Engine) AppendToFile(slot uint8, data []byte) (StatusCode, error) {
	if int(slot) >= geometry.RootEntries {
		return StatusFF, ErrSlotOutOfRange
	}
	free, err := e.root.SlotIsFree(slot)
	if err != nil {
		return StatusOK, err
	}
	if free {
		return StatusFE, ErrFreeSlot
	}

	entry, err := readEntry(e.root, slot)
	if err != nil {
		return StatusOK, err
	}

	current := entry.FirstCluster
	position := uint32(0)
	for entry.FileSize-position > geometry.SectorSize {
		next, err := e.fat.Read(current)
		if err != nil {
			return StatusOK, err
		}
		current = next
		position += geometry.SectorSize
	}
	offset := uint16(entry.FileSize - position)

	written := uint32(0)
	remaining := uint32(len(data))
	for written < remaining {
		if offset == geometry.SectorSize {
			next := e.fat.FindFree(0)
			if err := e.fat.Write(current, next); err != nil {
				return StatusOK, err
			}
			if err := e.fat.Write(next, fat.EndOfChain); err != nil {
				return StatusOK, err
			}
			current = next
			offset = 0
		}

		chunk := uint32(geometry.SectorSize) - uint32(offset)
		if chunk > remaining-written {
			chunk = remaining - written
		}
		sector := geometry.SectorOfCluster(current)
		if err := e.flash.PartialWrite(sector, offset, data[written:written+chunk]); err != nil {
			return StatusOK, err
		}
		written += chunk
		offset += uint16(chunk)
	}

	entry.FileSize += uint32(len(data))
	entry.ModifiedDate = e.clock.FATDate()
	entry.ModifiedTime = e.clock.FATTime()
	if err := writeEntry(e.root, slot, entry); err != nil {
		return StatusOK, err
	}
	return StatusOK, nil
}

// ModifyFile overwrites length bytes starting at start with data, without
// extending the file. A range that starts past the end of the file is a
// silent no-op; a range that would run past the end is clamped so the write
// never grows fileSize. It deliberately does not refresh the modification
// timestamp. The source returns void with no failure byte of its own, so
// this always reports StatusOK alongside a nil error.
func (e *Engine) ModifyFile(slot uint8, start uint32, data []byte) (StatusCode, error) {
	entry, err := readEntry(e.root, slot)
	if err != nil {
		return StatusOK, err
	}
	if start > entry.FileSize {
		return StatusOK, nil
	}

	length := uint32(len(data))
	if start+length > entry.FileSize {
		length = entry.FileSize - start
	}

	current := entry.FirstCluster
	position := uint32(0)
	for start-position >= geometry.SectorSize {
		next, err := e.fat.Read(current)
		if err != nil {
			return StatusOK, err
		}
		current = next
		position += geometry.SectorSize
	}
	offset := uint16(start - position)

	written := uint32(0)
	for written < length {
		if offset == geometry.SectorSize {
			next, err := e.fat.Read(current)
			if err != nil {
				return StatusOK, err
			}
			current = next
			offset = 0
		}
		chunk := uint32(geometry.SectorSize) - uint32(offset)
		if chunk > length-written {
			chunk = length - written
		}
		sector := geometry.SectorOfCluster(current)
		if err := e.flash.PartialWrite(sector, offset, data[written:written+chunk]); err != nil {
			return StatusOK, err
		}
		written += chunk
		offset += uint16(chunk)
	}

	return StatusOK, nil
}

// ResizeFile grows or shrinks slot's chain to match newSize, splicing in
// newly allocated clusters on growth and freeing trailing ones on shrink.
// Status is StatusFF for a slot out of range, StatusFE for a free slot,
// else StatusOK.
func (e *Engine) ResizeFile(slot uint8, newSize uint32) (StatusCode, error) {
	if int(slot) >= geometry.RootEntries {
		return StatusFF, ErrSlotOutOfRange
	}
	free, err := e.root.SlotIsFree(slot)
	if err != nil {
		return StatusOK, err
	}
	if free {
		return StatusFE, ErrFreeSlot
	}

	entry, err := readEntry(e.root, slot)
	if err != nil {
		return StatusOK, err
	}
	if newSize == entry.FileSize {
		return StatusOK, nil
	}

	if entry.FirstCluster == 0 {
		entry.FirstCluster = e.fat.FindFree(2)
	}

	newClusters := clusterCount(newSize)

	current := entry.FirstCluster
	for i := uint16(1); i < newClusters; i++ {
		next, err := e.fat.Read(current)
		if err != nil {
			return StatusOK, err
		}
		if next == 0 || fat.IsEndOfChain(next) {
			allocated := e.fat.FindFree(current + 1)
			if err := e.fat.Write(current, allocated); err != nil {
				return StatusOK, err
			}
			next = allocated
		}
		current = next
	}
	tail, err := e.fat.Read(current)
	if err != nil {
		return StatusOK, err
	}
	if err := e.fat.Write(current, fat.EndOfChain); err != nil {
		return StatusOK, err
	}

	for tail != 0 && !fat.IsEndOfChain(tail) {
		next, err := e.fat.Read(tail)
		if err != nil {
			return StatusOK, err
		}
		if err := e.fat.Write(tail, fat.Free); err != nil {
			return StatusOK, err
		}
		tail = next
	}

	entry.FileSize = newSize
	if err := writeEntry(e.root, slot, entry); err != nil {
		return StatusOK, err
	}
	return StatusOK, nil
}

// GetFileInformation copies slot's raw directory entry out. Status is
// Status01 for a slot out of range, Status02 for a free slot, else
// StatusOK.
func (e *Engine) GetFileInformation(slot uint8) (Entry, StatusCode, error) {
	if int(slot) >= geometry.RootEntries {
		return Entry{}, Status01, ErrSlotOutOfRange
	}
	free, err := e.root.SlotIsFree(slot)
	if err != nil {
		return Entry{}, StatusOK, err
	}
	if free {
		return Entry{}, Status02, ErrFreeSlot
	}
	entry, err := readEntry(e.root, slot)
	if err != nil {
		return Entry{}, StatusOK, err
	}
	return entry, StatusOK, nil
}

// FindFile looks up a file by its 8.3 name and returns its slot, or NoSlot
// if no live entry matches. fat_find_file's own u8 return already doubles
// as the wire-compatible status byte (0xFF means "not found"), the same way
// the firmware overloads one return for both data and status, so this has
// no separate StatusCode.
func (e *Engine) FindFile(name, ext string) (uint8, error) {
	n, x := nameKey(name, ext)
	return e.root.Lookup(n, x)
}

// GetEmptyClusters counts free clusters up to max, matching
// fat_get_empty_clusters's early-exit behavior.
func (e *Engine) GetEmptyClusters(max uint16) uint16 {
	return e.fat.CountFree(max)
}
