package engine

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	people := []Person{
		person(t, "Alice", "1990-06-15"),
		person(t, "Bob", "1985-12-24"),
	}

	data, countToday, err := BuildCalendar(people, now, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, countToday, "Alice's birthday falls on now's date")

	feed := string(data)
	assert.True(t, strings.HasPrefix(feed, "BEGIN:VCALENDAR"))
	assert.Contains(t, feed, "PRODID:-//BirthKeep//Engine//EN")
	assert.Contains(t, feed, "X-WR-CALNAME:")

	// Three years of events per person.
	assert.Equal(t, 6, strings.Count(feed, "BEGIN:VEVENT"))
	assert.Equal(t, 6, strings.Count(feed, "BEGIN:VALARM"))
	assert.Contains(t, feed, "TRIGGER:-P1D")
	assert.Contains(t, feed, "ACTION:DISPLAY")

	// Age in the current-year summary.
	assert.Contains(t, feed, "Birthday: Alice (35)")
	assert.Contains(t, feed, "Birthday: Bob (40)")

	// UIDs are stable per person and year.
	assert.Contains(t, feed, fmt.Sprintf("%s-2025@", people[0].ID))
	assert.Contains(t, feed, fmt.Sprintf("%s-2026@", people[0].ID))
}

func TestBuildCalendar_NoEventsBeforeBirth(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	people := []Person{person(t, "Newborn", "2025-03-01")}

	data, _, err := BuildCalendar(people, now, nil)
	require.NoError(t, err)

	feed := string(data)
	// 2024 is before the birth year: only 2025 and 2026 events exist.
	assert.Equal(t, 2, strings.Count(feed, "BEGIN:VEVENT"))
	assert.NotContains(t, feed, "DTSTART;VALUE=DATE:20240301")
}

func TestBuildCalendar_LeaplingCommonYear(t *testing.T) {
	// Feb 29 births are observed on Mar 1 in common years.
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	people := []Person{person(t, "Leap", "2000-02-29")}

	data, _, err := BuildCalendar(people, now, nil)
	require.NoError(t, err)

	feed := string(data)
	assert.Contains(t, feed, "20240229", "leap year keeps Feb 29")
	assert.Contains(t, feed, "20250301", "common year observes Mar 1")
	assert.Contains(t, feed, "20260301")
}

func TestBuildCalendar_Empty(t *testing.T) {
	data, countToday, err := BuildCalendar(nil, time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, countToday)

	feed := string(data)
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "END:VCALENDAR")
	assert.NotContains(t, feed, "BEGIN:VEVENT")
}

func TestBuildCalendar_CustomSummary(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	people := []Person{person(t, "Alice", "1990-06-15")}

	data, _, err := BuildCalendar(people, now, func(name string, age int) string {
		return fmt.Sprintf("%s faz %d anos", name, age)
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alice faz 35 anos")
}

func TestBuildCalendar_SkipsInvalidBirthDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	people := []Person{
		{ID: "bad", Name: "Broken", BirthDate: "garbage"},
		person(t, "Alice", "1990-06-15"),
	}

	data, _, err := BuildCalendar(people, now, nil)
	require.NoError(t, err)

	feed := string(data)
	assert.NotContains(t, feed, "Broken")
	assert.Contains(t, feed, "Alice")
}
