// Package clock provides FAT-encoded date/time sources implementing
// port.Clock. It mirrors the encode/decode math in
// github.com/dargueta/disko/drivers/fat's Dirent timestamp helpers, run in
// reverse: packing a time.Time into the FAT date/time words instead of
// unpacking them.
package clock

import "time"

// System packs the host's current local time into FAT date/time words.
type System struct{}

// FATDate returns today's date packed as bits 15..9 year-since-1980,
// 8..5 month, 4..0 day.
func (System) FATDate() uint16 {
	return pack(time.Now())
}

// FATTime returns the current time packed as bits 15..11 hours,
// 10..5 minutes, 4..0 seconds/2.
func (System) FATTime() uint16 {
	now := time.Now()
	return uint16(now.Hour())<<11 | uint16(now.Minute())<<5 | uint16(now.Second()/2)
}

func pack(t time.Time) uint16 {
	year := t.Year() - 1980
	if year < 0 {
		year = 0
	}
	return uint16(year)<<9 | uint16(t.Month())<<5 | uint16(t.Day())
}

// Null is a clock for systems with no real-time clock attached. Both methods
// return 0, which the engine treats as "no timestamp available" rather than
// as an error -- see port.Clock's doc comment.
type Null struct{}

func (Null) FATDate() uint16 { return 0 }
func (Null) FATTime() uint16 { return 0 }

// At returns a fixed clock that always reports the packed representation of
// t. Useful for deterministic tests that need to pin CreatedAt/ModifiedAt.
type At struct {
	t time.Time
}

// Fixed builds an At clock pinned to t.
func Fixed(t time.Time) At {
	return At{t: t}
}

func (a At) FATDate() uint16 {
	return pack(a.t)
}

func (a At) FATTime() uint16 {
	return uint16(a.t.Hour())<<11 | uint16(a.t.Minute())<<5 | uint16(a.t.Second()/2)
}
