package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embeddedfat/fat16core/format"
	"github.com/embeddedfat/fat16core/geometry"
)

func TestMBRSignatureBytes(t *testing.T) {
	mbr := format.MBRSector()
	require.Equal(t, byte(0x55), mbr[0x1FE])
	require.Equal(t, byte(0xAA), mbr[0x1FF])
}

func TestMBRPartitionEntry(t *testing.T) {
	mbr := format.MBRSector()
	require.Equal(t, byte(0x80), mbr[0x1BE], "partition should be marked active")
	require.Equal(t, byte(0x06), mbr[0x1BE+4], "partition type should be FAT16")
}

func TestFBRSignatureAndLabel(t *testing.T) {
	fbr := format.FBRSector()
	require.Equal(t, byte(0x55), fbr[0x1FE])
	require.Equal(t, byte(0xAA), fbr[0x1FF])
	require.Equal(t, "FAT16   ", string(fbr[0x36:0x3E]))
}

func TestFBRRootDirStartBothBytesSet(t *testing.T) {
	fbr := format.FBRSector()
	got := uint16(fbr[0x2C]) | uint16(fbr[0x2D])<<8
	require.Equal(t, geometry.RootFirstSector, got)
}

func TestFirstFATSectorPreallocatesDemoCluster(t *testing.T) {
	sector := format.FirstFATSector()
	require.Equal(t, []byte{0xF8, 0xFF, 0xFF, 0xFF}, sector[0:4])
	require.Equal(t, []byte{0xFF, 0xFF}, sector[4:6])
	require.Equal(t, make([]byte, 506), sector[6:])
}

func TestFirstRootSectorHasLabelAndDemoFile(t *testing.T) {
	root := format.FirstRootSector()
	require.Equal(t, "FAT16VOL   ", string(root[0:11]))
	require.Equal(t, byte(0x08), root[11])

	require.Equal(t, "HELLO   ", string(root[32:40]))
	require.Equal(t, "TXT", string(root[40:43]))
	require.Equal(t, byte(0x20), root[43])
}

func TestDemoDataSectorHoldsGreeting(t *testing.T) {
	data := format.DemoDataSector()
	require.Equal(t, geometry.RootFileContent, string(data[:len(geometry.RootFileContent)]))
	require.Zero(t, data[len(geometry.RootFileContent)])
}
