// Package format builds the bit-exact initial disk images for a freshly
// formatted FAT16 volume: the MBR, the FBR (boot sector), the first FAT
// sector, the first root directory sector, and the demo data sector. Each
// builder produces a deterministic, total 512-byte image. The MBR partition
// entry and the FBR's leading BPB fields are written the way
// file_systems/unixv1/format.go builds its superblock: wrap the backing
// buffer in a github.com/noxer/bytewriter.Writer and issue sequential
// Write/binary.Write calls instead of hand-computed offsets. Everything else
// (the boot signatures, the FBR fields from 0x28 on, and the FAT, root and
// data images) is written at explicit offsets; see MBRSector below for why
// the MBR signature is two literal bytes.
package format

import (
	"encoding/binary"

	"github.com/noxer/bytewriter"

	"github.com/embeddedfat/fat16core/geometry"
)

// Partition table entry fields for the single primary partition. These are
// deliberately inert placeholders for CHS addressing -- LBA addressing is
// what every modern BIOS and the host's FAT16 driver actually uses, but the
// partition entry format still reserves the bytes.
const (
	partitionStatusActive  = 0x80
	partitionCHSStartHead  = 0x01
	partitionCHSStartSect  = 0x01
	partitionCHSStartCyl   = 0x00
	partitionType          = 0x06 // FAT16B (the type byte for 65536 or more sectors)
	partitionCHSEndHead    = 0xFE
	partitionCHSEndSect    = 0xFF
	partitionCHSEndCyl     = 0xFF
	partitionTableOffset   = 0x1BE
	signatureOffset        = 0x1FE
)

// MBRSector builds the 512-byte Master Boot Record image: mostly zeros, with
// a single 16-byte primary partition entry at offset 0x1BE and the boot
// signature at 0x1FE..0x200.
//
// The signature is written as the two raw bytes 0x55, 0xAA rather than
// derived from a 16-bit 0xAA55 constant, since byte order is exactly what a
// host's FAT16 driver checks for.
func MBRSector() [512]byte {
	var buf [512]byte

	// The partition table entry is the only non-zero region before the
	// signature; write it through a bytewriter scoped to just that 16-byte
	// window so each field lands at the next sequential position instead of
	// a hand-computed one.
	w := bytewriter.New(buf[partitionTableOffset:signatureOffset])
	w.Write([]byte{
		partitionStatusActive,
		partitionCHSStartHead, partitionCHSStartSect, partitionCHSStartCyl,
		partitionType,
		partitionCHSEndHead, partitionCHSEndSect, partitionCHSEndCyl,
	})
	binary.Write(w, binary.LittleEndian, uint32(geometry.PartitionFirstSector))
	binary.Write(w, binary.LittleEndian, geometry.PartitionSizeInSectors)

	buf[signatureOffset] = 0x55
	buf[signatureOffset+1] = 0xAA

	return buf
}
