package format

import (
	"encoding/binary"

	"github.com/embeddedfat/fat16core/geometry"
)

// Attribute bytes used by the root directory image (same bit assignments as
// drivers/fat/common.go's Attr* constants).
const (
	attrVolumeLabel = 0x08
	attrArchived    = 0x20
)

// FirstRootSector builds the first sector of the root directory: slot 0 is
// the volume label, slot 1 is the demo file, the rest is zeroed (free, per
// I4 -- the first 0x00 byte at slot 2 terminates directory scans).
func FirstRootSector() [512]byte {
	var buf [512]byte

	copy(buf[0:11], geometry.RootDriveName)
	buf[11] = attrVolumeLabel

	const demo = 32 // slot 1 starts at offset 32
	copy(buf[demo:demo+8], geometry.RootFileName)
	copy(buf[demo+8:demo+11], geometry.RootFileExtension)
	buf[demo+11] = attrArchived
	binary.LittleEndian.PutUint16(buf[demo+26:demo+28], geometry.RootFileFirstCluster)
	binary.LittleEndian.PutUint32(buf[demo+28:demo+32], geometry.RootFileSize)

	return buf
}

// ZeroRootSector is the image for every root directory sector after the
// first: entirely unused slots.
func ZeroRootSector() [512]byte {
	return [512]byte{}
}
