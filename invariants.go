package fat16

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/embeddedfat/fat16core/geometry"
	"github.com/embeddedfat/fat16core/internal/fat"
)

// CheckInvariants walks every live root directory entry on the mounted
// volume and its cluster chain, checking the five universally quantified
// invariants the engine is supposed to maintain at rest between operations:
// chain well-formedness and acyclicity (I1), fileSize/chain-length agreement
// (I2), no cluster shared by two chains (I3), the directory terminator (I4),
// and name uniqueness (I5). It reports every violation it finds rather than
// stopping at the first one, in the same multierror.Append style
// GetFormatStatus uses for MBR/FBR byte mismatches; a nil return means the
// volume is consistent.
func (e *Engine) CheckInvariants() (*multierror.Error, error) {
	var errs *multierror.Error
	owner := make(map[uint16]uint8)
	names := make(map[[11]byte]uint8)

	for slot := 0; slot < geometry.RootEntries; slot++ {
		entry, err := readEntry(e.root, uint8(slot))
		if err != nil {
			return nil, err
		}
		if entry.IsFree() {
			break // I4: nothing past the first never-used entry is live
		}
		if entry.IsDeleted() {
			continue
		}

		var key [11]byte
		copy(key[0:8], entry.Name[:])
		copy(key[8:11], entry.Extension[:])
		if prior, ok := names[key]; ok {
			errs = multierror.Append(errs, fmt.Errorf("slot %d: name/extension duplicates slot %d (I5)", slot, prior))
		} else {
			names[key] = uint8(slot)
		}

		visited := make(map[uint16]bool)
		cluster := entry.FirstCluster
		length := 0
		cycle := false
		for cluster != 0 && !fat.IsEndOfChain(cluster) {
			if visited[cluster] {
				cycle = true
				break
			}
			visited[cluster] = true

			if prior, ok := owner[cluster]; ok && prior != uint8(slot) {
				errs = multierror.Append(errs, fmt.Errorf("slot %d: cluster %d already allocated to slot %d (I3)", slot, cluster, prior))
			} else {
				owner[cluster] = uint8(slot)
			}
			length++

			next, err := e.fat.Read(cluster)
			if err != nil {
				return nil, err
			}
			cluster = next
		}
		terminated := cluster == 0 || fat.IsEndOfChain(cluster)

		switch {
		case cycle:
			errs = multierror.Append(errs, fmt.Errorf("slot %d: cluster chain cycles back on itself (I1)", slot))
		case !terminated:
			errs = multierror.Append(errs, fmt.Errorf("slot %d: cluster chain does not end in an end-of-chain marker (I1)", slot))
		default:
			want := clusterCount(entry.FileSize)
			switch {
			case entry.FileSize == 0 && length > 1:
				errs = multierror.Append(errs, fmt.Errorf("slot %d: empty file holds %d clusters, want 0 or 1 (I2)", slot, length))
			case entry.FileSize != 0 && uint16(length) != want:
				errs = multierror.Append(errs, fmt.Errorf("slot %d: file size %d needs %d clusters, chain has %d (I2)", slot, entry.FileSize, want, length))
			}
		}
	}

	return errs, nil
}
