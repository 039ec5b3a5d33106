package format

import (
	"encoding/binary"

	"github.com/noxer/bytewriter"

	"github.com/embeddedfat/fat16core/geometry"
)

// Fixed fields of the FAT16 boot sector, matching the layout
// drivers/fat/common.go's RawFATBootSectorWithBPB decodes and Microsoft's FAT
// documentation describes.
var (
	jumpInstruction = [3]byte{0xEB, 0x3C, 0x90}
	oemIdentifier   = [8]byte{'F', 'A', 'T', '1', '6', 'C', 'O', 'R'}
	fatTypeLabel    = [8]byte{'F', 'A', 'T', '1', '6', ' ', ' ', ' '}
)

const (
	fbrExtendedBootSignatureOffset = 0x28
	fbrRootDirStartOffset          = 0x2C
	fbrFATTypeLabelOffset          = 0x36
	fbrSignatureOffset             = 0x1FE

	// extendedBootSignature marks the fields below 0x28 (volume ID, label,
	// etc.) as present. This driver leaves those fields zeroed.
	extendedBootSignature = 0x29
)

// FBRSector builds the 512-byte boot sector image. Both bytes of
// rootDirStart are written explicitly, low byte then high byte (see
// DESIGN.md for the fallthrough bug this avoids).
func FBRSector() [512]byte {
	var buf [512]byte

	w := bytewriter.New(buf[:fbrExtendedBootSignatureOffset])
	w.Write(jumpInstruction[:])
	w.Write(oemIdentifier[:])
	binary.Write(w, binary.LittleEndian, uint16(geometry.SectorSize))
	binary.Write(w, binary.LittleEndian, uint8(1)) // sectors per cluster
	binary.Write(w, binary.LittleEndian, uint16(geometry.PartitionFirstSector))
	binary.Write(w, binary.LittleEndian, uint8(1))                      // number of FATs
	binary.Write(w, binary.LittleEndian, uint16(geometry.RootEntries))  // root entry count
	binary.Write(w, binary.LittleEndian, geometry.TotalSectors)         // total sectors (16-bit)
	binary.Write(w, binary.LittleEndian, uint8(0xF8))                   // media descriptor: fixed disk
	binary.Write(w, binary.LittleEndian, uint16(geometry.FATLastSector-geometry.FATFirstSector+1))
	binary.Write(w, binary.LittleEndian, uint16(1)) // sectors per track
	binary.Write(w, binary.LittleEndian, uint16(1)) // heads
	binary.Write(w, binary.LittleEndian, uint32(0)) // hidden sectors

	buf[fbrExtendedBootSignatureOffset] = extendedBootSignature

	rootDirStart := uint16(geometry.RootFirstSector)
	buf[fbrRootDirStartOffset] = byte(rootDirStart)
	buf[fbrRootDirStartOffset+1] = byte(rootDirStart >> 8)

	copy(buf[fbrFATTypeLabelOffset:fbrFATTypeLabelOffset+8], fatTypeLabel[:])

	buf[fbrSignatureOffset] = 0x55
	buf[fbrSignatureOffset+1] = 0xAA

	return buf
}
