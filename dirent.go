package fat16

import (
	"encoding/binary"

	"github.com/embeddedfat/fat16core/internal/rootdir"
)

// EntrySize is the fixed width of one root directory slot, grounded on
// drivers/fat/dirent.go's DirentSize.
const EntrySize = 32

// Attribute bits this driver sets or recognizes. A generalization of
// drivers/fat/common.go's Attr* constants down to what the engine actually
// writes.
const (
	AttrNone        = 0x00
	AttrVolumeLabel = 0x08
	AttrArchive     = 0x20
)

// deleted/free marker bytes, first name byte.
const (
	nameFree    = 0x00
	nameDeleted = 0xE5
)

// Entry is the in-memory form of a 32-byte root directory slot, laid out in
// field order the way drivers/fat/dirent.go's RawDirent is, but kept flat
// (no split Raw/friendly types) since the engine only ever needs the packed
// fields, never a converted time.Time.
type Entry struct {
	Name             [8]byte
	Extension        [3]byte
	Attributes       uint8
	NTReserved       uint8
	CreatedTimeTenth uint8
	CreatedTime      uint16
	CreatedDate      uint16
	AccessedDate     uint16
	Reserved         uint16
	ModifiedTime     uint16
	ModifiedDate     uint16
	FirstCluster     uint16
	FileSize         uint32
}

// IsFree reports whether the slot holding this entry has never been used.
func (e *Entry) IsFree() bool {
	return e.Name[0] == nameFree
}

// IsDeleted reports whether the slot holding this entry was used and then
// deleted.
func (e *Entry) IsDeleted() bool {
	return e.Name[0] == nameDeleted
}

// MatchesKey compares the entry's name+extension against a raw 11-byte key.
func (e *Entry) MatchesKey(name [8]byte, ext [3]byte) bool {
	return e.Name == name && e.Extension == ext
}

// encode packs the entry into a 32-byte buffer with the same field order and
// offsets as the legacy fat16.c record this driver replaces.
func (e *Entry) encode() [EntrySize]byte {
	var buf [EntrySize]byte
	copy(buf[0:8], e.Name[:])
	copy(buf[8:11], e.Extension[:])
	buf[11] = e.Attributes
	buf[12] = e.NTReserved
	buf[13] = e.CreatedTimeTenth
	binary.LittleEndian.PutUint16(buf[14:16], e.CreatedTime)
	binary.LittleEndian.PutUint16(buf[16:18], e.CreatedDate)
	binary.LittleEndian.PutUint16(buf[18:20], e.AccessedDate)
	binary.LittleEndian.PutUint16(buf[20:22], e.Reserved)
	binary.LittleEndian.PutUint16(buf[22:24], e.ModifiedTime)
	binary.LittleEndian.PutUint16(buf[24:26], e.ModifiedDate)
	binary.LittleEndian.PutUint16(buf[26:28], e.FirstCluster)
	binary.LittleEndian.PutUint32(buf[28:32], e.FileSize)
	return buf
}

// decodeEntry unpacks a 32-byte slot image into an Entry.
func decodeEntry(buf [EntrySize]byte) Entry {
	var e Entry
	copy(e.Name[:], buf[0:8])
	copy(e.Extension[:], buf[8:11])
	e.Attributes = buf[11]
	e.NTReserved = buf[12]
	e.CreatedTimeTenth = buf[13]
	e.CreatedTime = binary.LittleEndian.Uint16(buf[14:16])
	e.CreatedDate = binary.LittleEndian.Uint16(buf[16:18])
	e.AccessedDate = binary.LittleEndian.Uint16(buf[18:20])
	e.Reserved = binary.LittleEndian.Uint16(buf[20:22])
	e.ModifiedTime = binary.LittleEndian.Uint16(buf[22:24])
	e.ModifiedDate = binary.LittleEndian.Uint16(buf[24:26])
	e.FirstCluster = binary.LittleEndian.Uint16(buf[26:28])
	e.FileSize = binary.LittleEndian.Uint32(buf[28:32])
	return e
}

// nameKey splits an 8.3 name passed by the caller (already space-padded)
// into the fixed [8]byte/[3]byte arrays this package compares and stores.
func nameKey(name, ext string) (n [8]byte, x [3]byte) {
	copy(n[:], name)
	copy(x[:], ext)
	return n, x
}

func readEntry(dir *rootdir.Directory, slot uint8) (Entry, error) {
	buf, err := dir.ReadRaw(slot)
	if err != nil {
		return Entry{}, err
	}
	return decodeEntry(buf), nil
}

func writeEntry(dir *rootdir.Directory, slot uint8, e Entry) error {
	return dir.WriteRaw(slot, e.encode())
}
