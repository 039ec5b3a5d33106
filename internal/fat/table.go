// Package fat implements the FAT table: reading and writing 16-bit cluster
// links, finding the next free cluster at
// or after a hint, and counting free clusters. It keeps a
// github.com/boljen/go-bitmap mirror of which clusters are free, the same
// caching idea as drivers/common/allocatormap.go's Allocator, rebuilt once
// from flash and kept in sync on every write so free-cluster queries don't
// have to re-scan the FAT region sector by sector.
package fat

import (
	"encoding/binary"

	"github.com/boljen/go-bitmap"

	"github.com/embeddedfat/fat16core/geometry"
	"github.com/embeddedfat/fat16core/port"
)

const (
	// EndOfChain is the marker this driver always writes to terminate a
	// chain. Any value in [0xFFF0, 0xFFFF] reads back as end-of-chain, but
	// 0xFFFF is the only value ever written.
	EndOfChain uint16 = 0xFFFF
	// Free marks a cluster as unallocated.
	Free uint16 = 0x0000
	// endOfChainFloor is the lowest value treated as end-of-chain on read.
	endOfChainFloor uint16 = 0xFFF0
)

// Table is the FAT table for one volume.
type Table struct {
	flash   port.Flash
	free    bitmap.Bitmap // one bit per cluster index (0 and 1 unused)
	lastHit uint16
}

// New wraps flash with a Table, rebuilding the free-cluster bitmap with a
// single linear scan of the FAT region. Call this once, at mount/init time.
func New(flash port.Flash) (*Table, error) {
	t := &Table{
		flash: flash,
		free:  bitmap.New(int(geometry.MaxCluster())),
	}
	if err := t.rebuildFreeBitmap(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) rebuildFreeBitmap() error {
	for cluster := uint16(2); cluster < geometry.MaxCluster(); cluster++ {
		value, err := t.readRaw(cluster)
		if err != nil {
			return err
		}
		t.free.Set(int(cluster), value == Free)
	}
	return nil
}

func (t *Table) readRaw(cluster uint16) (uint16, error) {
	var buf [2]byte
	err := t.flash.PartialRead(geometry.FATSectorOf(cluster), geometry.FATOffsetOf(cluster), buf[:])
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// Read returns the 16-bit entry for cluster.
func (t *Table) Read(cluster uint16) (uint16, error) {
	return t.readRaw(cluster)
}

// IsEndOfChain reports whether value marks the end of a cluster chain.
func IsEndOfChain(value uint16) bool {
	return value >= endOfChainFloor
}

// Write sets cluster's entry to value and updates the free-cluster bitmap to
// match.
func (t *Table) Write(cluster uint16, value uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	if err := t.flash.PartialWrite(geometry.FATSectorOf(cluster), geometry.FATOffsetOf(cluster), buf[:]); err != nil {
		return err
	}
	t.free.Set(int(cluster), value == Free)
	return nil
}

// FindFree scans [max(hint, 2), MaxCluster) and returns the first free
// cluster, or 0 if none is available. Never returns 1.
func (t *Table) FindFree(hint uint16) uint16 {
	start := hint
	if start < 2 {
		start = 2
	}
	max := geometry.MaxCluster()
	for c := start; c < max; c++ {
		if t.free.Get(int(c)) {
			return c
		}
	}
	return 0
}

// CountFree counts free clusters in [2, MaxCluster), stopping early once the
// count reaches max (a cheap pre-check for CreateFile's capacity check, §4.G
// step 4, which never needs an exact count above the amount it's about to
// allocate).
func (t *Table) CountFree(max uint16) uint16 {
	var count uint16
	upper := geometry.MaxCluster()
	for c := uint16(2); c < upper && count < max; c++ {
		if t.free.Get(int(c)) {
			count++
		}
	}
	return count
}
