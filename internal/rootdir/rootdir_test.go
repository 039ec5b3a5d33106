package rootdir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embeddedfat/fat16core/format"
	"github.com/embeddedfat/fat16core/geometry"
	"github.com/embeddedfat/fat16core/internal/rootdir"
	"github.com/embeddedfat/fat16core/memflash"
)

func newFormattedDevice(t *testing.T) *memflash.Device {
	t.Helper()
	dev := memflash.New(geometry.TotalSectors)
	require.NoError(t, dev.PageWrite(geometry.RootFirstSector, sliceOf(format.FirstRootSector())))
	zero := format.ZeroRootSector()
	for s := geometry.RootFirstSector + 1; s <= geometry.RootLastSector; s++ {
		require.NoError(t, dev.PageWrite(s, sliceOf(zero)))
	}
	return dev
}

func sliceOf(sector [512]byte) []byte {
	buf := sector
	return buf[:]
}

func TestLookupFindsDemoFile(t *testing.T) {
	dir := rootdir.New(newFormattedDevice(t))

	var name [8]byte
	var ext [3]byte
	copy(name[:], geometry.RootFileName)
	copy(ext[:], geometry.RootFileExtension)

	slot, err := dir.Lookup(name, ext)
	require.NoError(t, err)
	require.Equal(t, uint8(1), slot)
}

func TestLookupStopsAtDirectoryTerminator(t *testing.T) {
	dir := rootdir.New(newFormattedDevice(t))

	var name [8]byte
	var ext [3]byte
	copy(name[:], "NOTHERE ")
	copy(ext[:], "XYZ")

	slot, err := dir.Lookup(name, ext)
	require.NoError(t, err)
	require.Equal(t, rootdir.NoSlot, slot)
}

func TestFirstFreeSlotSkipsUsedEntries(t *testing.T) {
	dir := rootdir.New(newFormattedDevice(t))

	slot, err := dir.FirstFreeSlot()
	require.NoError(t, err)
	require.Equal(t, uint8(2), slot)
}

func TestDeleteMarksSlotFree(t *testing.T) {
	dir := rootdir.New(newFormattedDevice(t))

	require.NoError(t, dir.Delete(1))

	free, err := dir.SlotIsFree(1)
	require.NoError(t, err)
	require.True(t, free)
}
