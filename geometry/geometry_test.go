package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embeddedfat/fat16core/geometry"
)

func TestSectorOfClusterMatchesDataRegionStart(t *testing.T) {
	require.Equal(t, geometry.DataFirstSector, geometry.SectorOfCluster(2))
}

func TestFATEntryBoundsStayWithinFATRegion(t *testing.T) {
	for c := uint16(2); c < geometry.MaxCluster(); c++ {
		sector := geometry.FATSectorOf(c)
		require.GreaterOrEqual(t, sector, geometry.FATFirstSector)
		require.LessOrEqual(t, sector, geometry.FATLastSector)
	}
}

func TestRootSlotBoundsStayWithinRootRegion(t *testing.T) {
	for slot := 0; slot < geometry.RootEntries; slot++ {
		sector := geometry.RootSectorOf(uint8(slot))
		require.GreaterOrEqual(t, sector, geometry.RootFirstSector)
		require.LessOrEqual(t, sector, geometry.RootLastSector)
	}
}

func TestMaxClusterIsOnePastLastDataCluster(t *testing.T) {
	require.Equal(t, uint16(geometry.DataNumberOfSectors)+2, geometry.MaxCluster())
}
