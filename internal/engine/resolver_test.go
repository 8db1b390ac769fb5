package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lomazzo/birthkeep/internal/datemath"
)

// TestResolve verifies the core temporal logic of the application.
// It covers standard dates, boundaries (end of year), and leap year cases.
func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		birthDate     string
		today         datemath.Date
		wantDaysUntil int
		wantAge       int
		wantAgeNext   int
		wantNext      datemath.Date
		desc          string
	}{
		{
			name:          "Birthday is today",
			birthDate:     "2000-06-15",
			today:         datemath.Date{Year: 2025, Month: 6, Day: 15},
			wantDaysUntil: 0,
			wantAge:       25,
			wantAgeNext:   25,
			wantNext:      datemath.Date{Year: 2025, Month: 6, Day: 15},
			desc:          "The exact anniversary day is not pushed to next year",
		},
		{
			name:          "Birthday was yesterday",
			birthDate:     "2000-06-15",
			today:         datemath.Date{Year: 2025, Month: 6, Day: 16},
			wantDaysUntil: 364,
			wantAge:       25,
			wantAgeNext:   26,
			wantNext:      datemath.Date{Year: 2026, Month: 6, Day: 15},
			desc:          "One day past pushes the occurrence a full common year away",
		},
		{
			name:          "Year boundary",
			birthDate:     "2000-01-01",
			today:         datemath.Date{Year: 2025, Month: 12, Day: 31},
			wantDaysUntil: 1,
			wantAge:       25,
			wantAgeNext:   26,
			wantNext:      datemath.Date{Year: 2026, Month: 1, Day: 1},
			desc:          "Dec 31 to Jan 1 is one day across the year boundary",
		},
		{
			name:          "Day before the birthday",
			birthDate:     "2000-06-15",
			today:         datemath.Date{Year: 2025, Month: 6, Day: 14},
			wantDaysUntil: 1,
			wantAge:       24,
			wantAgeNext:   25,
			wantNext:      datemath.Date{Year: 2025, Month: 6, Day: 15},
			desc:          "Age is still 24 until the birthday arrives",
		},
		{
			name:          "Months ahead",
			birthDate:     "1990-03-10",
			today:         datemath.Date{Year: 2025, Month: 3, Day: 9},
			wantDaysUntil: 1,
			wantAge:       34,
			wantAgeNext:   35,
			wantNext:      datemath.Date{Year: 2025, Month: 3, Day: 10},
			desc:          "Day-before distance in the middle of the year",
		},
		{
			name:          "Born this year",
			birthDate:     "2025-08-01",
			today:         datemath.Date{Year: 2025, Month: 6, Day: 15},
			wantDaysUntil: 47,
			wantAge:       0,
			wantAgeNext:   0,
			wantNext:      datemath.Date{Year: 2025, Month: 8, Day: 1},
			desc:          "Age never goes negative",
		},
		{
			name:          "Leapling in a common year",
			birthDate:     "2000-02-29",
			today:         datemath.Date{Year: 2025, Month: 6, Day: 15},
			wantDaysUntil: 259,
			wantAge:       25,
			wantAgeNext:   26,
			wantNext:      datemath.Date{Year: 2026, Month: 3, Day: 1},
			desc:          "Feb 29 observed on Mar 1 in the non-leap 2026",
		},
		{
			name:          "Leapling observed day",
			birthDate:     "2000-02-29",
			today:         datemath.Date{Year: 2025, Month: 3, Day: 1},
			wantDaysUntil: 0,
			wantAge:       25,
			wantAgeNext:   25,
			wantNext:      datemath.Date{Year: 2025, Month: 3, Day: 1},
			desc:          "Mar 1 counts as the observed birthday in a common year",
		},
		{
			name:          "Leapling before a leap day",
			birthDate:     "2000-02-29",
			today:         datemath.Date{Year: 2024, Month: 2, Day: 1},
			wantDaysUntil: 28,
			wantAge:       23,
			wantAgeNext:   24,
			wantNext:      datemath.Date{Year: 2024, Month: 2, Day: 29},
			desc:          "Leap years keep the real Feb 29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ, err := ResolveISO(tt.birthDate, tt.today)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDaysUntil, occ.DaysUntil, tt.desc)
			assert.Equal(t, tt.wantAge, occ.CurrentAge, "current age mismatch")
			assert.Equal(t, tt.wantAgeNext, occ.AgeAtNext, "next age mismatch")
			assert.Equal(t, tt.wantNext, occ.NextDate)
		})
	}
}

func TestResolve_DaysUntilNeverNegative(t *testing.T) {
	// Sweep a full year of reference days against a fixed birth date.
	birth := datemath.Date{Year: 1990, Month: 3, Day: 10}
	today := datemath.Date{Year: 2025, Month: 1, Day: 1}

	for i := 0; i < 366; i++ {
		occ := Resolve(birth, today)
		require.GreaterOrEqual(t, occ.DaysUntil, 0, "negative distance at %s", today.ISO())
		require.LessOrEqual(t, occ.DaysUntil, 366, "distance beyond one year at %s", today.ISO())

		today.Day++
		today = today.Normalize()
	}
}

func TestResolve_NextDisplay(t *testing.T) {
	occ, err := ResolveISO("1990-03-10", datemath.Date{Year: 2025, Month: 3, Day: 9})
	require.NoError(t, err)
	assert.Equal(t, "10/03/2025", occ.NextDisplay)
}

func TestResolveISO_InvalidInput(t *testing.T) {
	for _, bad := range []string{"", "1990/03/10", "1990-03", "1990-02-30", "abcd-ef-gh"} {
		_, err := ResolveISO(bad, datemath.Date{Year: 2025, Month: 6, Day: 15})
		assert.ErrorIs(t, err, datemath.ErrInvalidDate, "input %q", bad)
	}
}
