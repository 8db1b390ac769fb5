package datemath

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsLeapYear covers the three branches of the Gregorian rule:
// plain 4-year leaps, century exceptions, and the 400-year re-exception.
func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2000, true},  // divisible by 400
		{2024, true},  // divisible by 4, not by 100
		{1900, false}, // century, not divisible by 400
		{2100, false}, // century, not divisible by 400
		{2023, false}, // plain common year
		{1996, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLeapYear(tt.year), "year %d", tt.year)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, 2), "leap February")
	assert.Equal(t, 28, DaysInMonth(2023, 2), "common February")
	assert.Equal(t, 30, DaysInMonth(2024, 4))
	assert.Equal(t, 31, DaysInMonth(2024, 12))

	// Out-of-range months are documented to return 0 rather than panic.
	assert.Equal(t, 0, DaysInMonth(2024, 0))
	assert.Equal(t, 0, DaysInMonth(2024, 13))
}

// TestOrdinal_StrictlyIncreasing walks day by day across month and year
// boundaries, including a leap day, and asserts the linear scale advances by
// exactly one each step. This is the property the whole engine relies on.
func TestOrdinal_StrictlyIncreasing(t *testing.T) {
	start := Date{Year: 2023, Month: 12, Day: 28}
	prev := Ordinal(start)

	d := start
	for i := 0; i < 70; i++ {
		d.Day++
		d = d.Normalize()
		cur := Ordinal(d)
		require.Equal(t, prev+1, cur, "ordinal must advance by 1 at %s", d.ISO())
		prev = cur
	}
}

func TestOrdinal_LeapBoundary(t *testing.T) {
	feb28 := Ordinal(Date{2024, 2, 28})
	feb29 := Ordinal(Date{2024, 2, 29})
	mar1 := Ordinal(Date{2024, 3, 1})

	assert.Equal(t, feb28+1, feb29)
	assert.Equal(t, feb29+1, mar1)
}

// TestOrdinal_OffsetConvention pins the load-bearing convention: day 1 of the
// epoch year maps to 1, not 0.
func TestOrdinal_OffsetConvention(t *testing.T) {
	assert.Equal(t, 1, Ordinal(Date{2000, 1, 1}))
	assert.Equal(t, 32, Ordinal(Date{2000, 2, 1}))
	// 2000 is a leap year: 366 days, so Jan 1st 2001 is day 367.
	assert.Equal(t, 367, Ordinal(Date{2001, 1, 1}))
}

func TestOrdinal_BeforeEpoch(t *testing.T) {
	// The scale must stay strictly increasing for pre-epoch dates too.
	dec31 := Ordinal(Date{1999, 12, 31})
	jan1 := Ordinal(Date{2000, 1, 1})
	assert.Equal(t, dec31+1, jan1)
}

func TestDiff(t *testing.T) {
	assert.Equal(t, 1, Diff(Date{2025, 12, 31}, Date{2026, 1, 1}))
	assert.Equal(t, -1, Diff(Date{2026, 1, 1}, Date{2025, 12, 31}))
	assert.Equal(t, 365, Diff(Date{2025, 6, 15}, Date{2026, 6, 15}), "2025->2026 crosses no leap day")
	assert.Equal(t, 366, Diff(Date{2023, 6, 15}, Date{2024, 6, 15}), "2023->2024 crosses Feb 29")
	assert.Equal(t, 0, Diff(Date{2025, 3, 9}, Date{2025, 3, 9}))
}

func TestParseISO(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"valid date", "1990-03-10", Date{1990, 3, 10}, false},
		{"valid leap day", "2000-02-29", Date{2000, 2, 29}, false},
		{"feb 29 in common year", "2023-02-29", Date{}, true},
		{"month out of range", "2024-13-01", Date{}, true},
		{"day out of range", "2024-04-31", Date{}, true},
		{"garbage", "not-a-date", Date{}, true},
		{"two fields only", "2024-04", Date{}, true},
		{"empty", "", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISO(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDate), "must be distinguishable as ErrInvalidDate")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	// The leapling case: Feb 29 in a common year rolls to Mar 1.
	assert.Equal(t, Date{2025, 3, 1}, Date{2025, 2, 29}.Normalize())
	// Leap years keep their Feb 29.
	assert.Equal(t, Date{2024, 2, 29}, Date{2024, 2, 29}.Normalize())
	// Valid dates pass through untouched.
	assert.Equal(t, Date{2025, 7, 31}, Date{2025, 7, 31}.Normalize())
}

func TestISO_IsZeroPadded(t *testing.T) {
	// A non-padded key format would split one logical day into several ledger
	// keys depending on the call site. The canonical key is always padded.
	assert.Equal(t, "2025-03-09", Date{2025, 3, 9}.ISO())
	assert.Equal(t, "2025-12-31", Date{2025, 12, 31}.ISO())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "09/03/2025", Date{2025, 3, 9}.Display())
}

func TestReformatISO(t *testing.T) {
	assert.Equal(t, "10/03/1990", ReformatISO("1990-03-10"))
	assert.Equal(t, "09/03/2025", ReformatISO("2025-3-9"), "unpadded input still pads the output")
	assert.Equal(t, "broken", ReformatISO("broken"), "malformed input is returned untouched")
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2025, 6, 15, 23, 45, 0, 0, time.FixedZone("X", 3*3600))
	assert.Equal(t, Date{2025, 6, 15}, FromTime(ts), "civil date in the clock's own location")
}

func TestOrdering(t *testing.T) {
	a := Date{2025, 6, 15}
	b := Date{2025, 6, 16}
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(Date{2025, 6, 15}))
	assert.False(t, a.Before(a))
}
