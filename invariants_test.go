package fat16_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embeddedfat/fat16core"
	"github.com/embeddedfat/fat16core/clock"
	"github.com/embeddedfat/fat16core/geometry"
	"github.com/embeddedfat/fat16core/memflash"
)

func writeFATEntry(t *testing.T, dev *memflash.Device, cluster, value uint16) {
	t.Helper()
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	require.NoError(t, dev.PartialWrite(geometry.FATSectorOf(cluster), geometry.FATOffsetOf(cluster), buf[:]))
}

func TestCheckInvariantsCleanVolume(t *testing.T) {
	engine, _ := newMountedVolume(t)

	_, _, err := engine.CreateFile("DATA    ", "BIN", 1500)
	require.NoError(t, err)

	errs, err := engine.CheckInvariants()
	require.NoError(t, err)
	require.Nil(t, errs.ErrorOrNil())
}

func TestCheckInvariantsDetectsCycle(t *testing.T) {
	engine, dev := newMountedVolume(t)

	slot, _, err := engine.CreateFile("DATA    ", "BIN", 1500)
	require.NoError(t, err)
	info, _, err := engine.GetFileInformation(slot)
	require.NoError(t, err)

	// Point the file's first cluster back at itself instead of the chain's
	// real successor.
	writeFATEntry(t, dev, info.FirstCluster, info.FirstCluster)

	errs, err := engine.CheckInvariants()
	require.NoError(t, err)
	require.Error(t, errs.ErrorOrNil())
	require.Contains(t, errs.Error(), "I1")
}

func TestCheckInvariantsDetectsDoubleAllocation(t *testing.T) {
	engine, dev := newMountedVolume(t)

	a, _, err := engine.CreateFile("AFILE   ", "BIN", 1500)
	require.NoError(t, err)
	b, _, err := engine.CreateFile("BFILE   ", "BIN", 1500)
	require.NoError(t, err)

	aInfo, _, err := engine.GetFileInformation(a)
	require.NoError(t, err)

	// Point b's first cluster at a's: both entries now claim the same
	// cluster as part of their chain.
	sector, offset := geometry.RootSectorOf(b), geometry.RootOffsetOf(b)
	var firstCluster [2]byte
	binary.LittleEndian.PutUint16(firstCluster[:], aInfo.FirstCluster)
	require.NoError(t, dev.PartialWrite(sector, offset+26, firstCluster[:]))

	errs, err := engine.CheckInvariants()
	require.NoError(t, err)
	require.Error(t, errs.ErrorOrNil())
	require.Contains(t, errs.Error(), "I3")
}

func TestCheckInvariantsDetectsSizeMismatch(t *testing.T) {
	engine, dev := newMountedVolume(t)

	slot, _, err := engine.CreateFile("DATA    ", "BIN", 1500)
	require.NoError(t, err)

	// Inflate the stored size without touching the chain, directly
	// corrupting the on-disk entry the way a foreign writer might.
	sector, offset := geometry.RootSectorOf(slot), geometry.RootOffsetOf(slot)
	var sizeField [4]byte
	require.NoError(t, dev.PartialRead(sector, offset+28, sizeField[:]))
	binary.LittleEndian.PutUint32(sizeField[:], 1_000_000)
	require.NoError(t, dev.PartialWrite(sector, offset+28, sizeField[:]))

	errs, err := engine.CheckInvariants()
	require.NoError(t, err)
	require.Error(t, errs.ErrorOrNil())
	require.Contains(t, errs.Error(), "I2")
}

func TestCheckInvariantsDetectsDuplicateName(t *testing.T) {
	engine, dev := newMountedVolume(t)

	_, _, err := engine.CreateFile("DATA    ", "BIN", 0)
	require.NoError(t, err)
	dup, _, err := engine.CreateFile("OTHER   ", "BIN", 0)
	require.NoError(t, err)

	sector, offset := geometry.RootSectorOf(dup), geometry.RootOffsetOf(dup)
	require.NoError(t, dev.PartialWrite(sector, offset, []byte("DATA    BIN")))

	errs, err := engine.CheckInvariants()
	require.NoError(t, err)
	require.Error(t, errs.ErrorOrNil())
	require.Contains(t, errs.Error(), "I5")
}

func TestGetConsistencyReportOnFreshVolume(t *testing.T) {
	dev := memflash.New(geometry.TotalSectors)
	_, err := fat16.Init(dev, clock.Null{})
	require.NoError(t, err)

	report, err := fat16.GetConsistencyReport(dev, clock.Null{})
	require.NoError(t, err)
	require.True(t, report.Consistent)
	require.Nil(t, report.Violations.ErrorOrNil())
}
