package fat16

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/embeddedfat/fat16core/format"
	"github.com/embeddedfat/fat16core/geometry"
	"github.com/embeddedfat/fat16core/port"
)

// FormatStatus reports whether a device carries this driver's bit-exact
// layout.
type FormatStatus struct {
	Formatted bool
	// Mismatches collects every byte offset (within the MBR and FBR sectors)
	// that didn't match the expected image, aggregated with
	// github.com/hashicorp/go-multierror rather than failing fast on the
	// first one -- useful when diagnosing a foreign or corrupted image.
	Mismatches *multierror.Error
}

// ConsistencyReport is a mounted volume's I1-I5 invariant check, distinct
// from FormatStatus: FormatStatus compares the MBR/FBR sectors byte-for-byte
// against what Format would have written, while ConsistencyReport walks the
// live directory entries and their cluster chains looking for structural
// corruption (see Engine.CheckInvariants).
type ConsistencyReport struct {
	Consistent bool
	Violations *multierror.Error
}

// GetConsistencyReport mounts flash read-only (a fresh FAT scan, no writes)
// and runs Engine.CheckInvariants against it.
func GetConsistencyReport(flash port.Flash, clock port.Clock) (ConsistencyReport, error) {
	engine, err := New(flash, clock)
	if err != nil {
		return ConsistencyReport{}, err
	}
	violations, err := engine.CheckInvariants()
	if err != nil {
		return ConsistencyReport{}, err
	}
	return ConsistencyReport{
		Consistent: violations.ErrorOrNil() == nil,
		Violations: violations,
	}, nil
}

func compareSector(label string, got, want [geometry.SectorSize]byte, errs *multierror.Error) *multierror.Error {
	for i := range want {
		if got[i] != want[i] {
			errs = multierror.Append(errs, fmt.Errorf("%s byte %d: got 0x%02X, want 0x%02X", label, i, got[i], want[i]))
		}
	}
	return errs
}

// GetFormatStatus reads sectors 0 and 1 and compares every byte against the
// MBR/FBR images format() would have written.
func GetFormatStatus(flash port.Flash) (FormatStatus, error) {
	var mbr, fbr [geometry.SectorSize]byte
	if err := flash.PageRead(geometry.MBRSector, mbr[:]); err != nil {
		return FormatStatus{}, err
	}
	if err := flash.PageRead(geometry.PartitionFirstSector, fbr[:]); err != nil {
		return FormatStatus{}, err
	}

	var errs *multierror.Error
	errs = compareSector("MBR", mbr, format.MBRSector(), errs)
	errs = compareSector("FBR", fbr, format.FBRSector(), errs)

	return FormatStatus{
		Formatted:  errs.ErrorOrNil() == nil,
		Mismatches: errs,
	}, nil
}

// Format writes the complete initial volume image: MBR, FBR, the first FAT
// sector followed by zero-filled FAT sectors, the first root sector followed
// by zero-filled root sectors, and the demo data sector.
func Format(flash port.Flash) error {
	if err := flash.PageWrite(geometry.MBRSector, sliceOf(format.MBRSector())); err != nil {
		return err
	}
	if err := flash.PageWrite(geometry.PartitionFirstSector, sliceOf(format.FBRSector())); err != nil {
		return err
	}

	if err := flash.PageWrite(geometry.FATFirstSector, sliceOf(format.FirstFATSector())); err != nil {
		return err
	}
	zeroFAT := format.ZeroFATSector()
	for sector := geometry.FATFirstSector + 1; sector <= geometry.FATLastSector; sector++ {
		if err := flash.PageWrite(sector, sliceOf(zeroFAT)); err != nil {
			return err
		}
	}

	if err := flash.PageWrite(geometry.RootFirstSector, sliceOf(format.FirstRootSector())); err != nil {
		return err
	}
	zeroRoot := format.ZeroRootSector()
	for sector := geometry.RootFirstSector + 1; sector <= geometry.RootLastSector; sector++ {
		if err := flash.PageWrite(sector, sliceOf(zeroRoot)); err != nil {
			return err
		}
	}

	return flash.PageWrite(geometry.DataFirstSector, sliceOf(format.DemoDataSector()))
}

// Init formats the volume iff it is not already formatted, then mounts it.
func Init(flash port.Flash, clock port.Clock) (*Engine, error) {
	status, err := GetFormatStatus(flash)
	if err != nil {
		return nil, err
	}
	if !status.Formatted {
		if err := Format(flash); err != nil {
			return nil, err
		}
	}
	return New(flash, clock)
}

func sliceOf(sector [geometry.SectorSize]byte) []byte {
	buf := sector
	return buf[:]
}
