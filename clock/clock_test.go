package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embeddedfat/fat16core/clock"
)

func TestNullClockReturnsZero(t *testing.T) {
	var c clock.Null
	require.Zero(t, c.FATDate())
	require.Zero(t, c.FATTime())
}

func TestFixedClockPacksDate(t *testing.T) {
	c := clock.Fixed(time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC))

	date := c.FATDate()
	year := date >> 9
	month := (date >> 5) & 0x0F
	day := date & 0x1F

	require.EqualValues(t, 2024-1980, year)
	require.EqualValues(t, 7, month)
	require.EqualValues(t, 15, day)
}

func TestFixedClockPacksTime(t *testing.T) {
	c := clock.Fixed(time.Date(2024, time.July, 15, 13, 45, 32, 0, time.UTC))

	tm := c.FATTime()
	hours := tm >> 11
	minutes := (tm >> 5) & 0x3F
	seconds := (tm & 0x1F) * 2

	require.EqualValues(t, 13, hours)
	require.EqualValues(t, 45, minutes)
	require.EqualValues(t, 32, seconds)
}
