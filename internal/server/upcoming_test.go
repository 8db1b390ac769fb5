package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lomazzo/birthkeep/internal/datemath"
	"github.com/lomazzo/birthkeep/internal/engine"
)

func TestBuildUpcoming(t *testing.T) {
	mk := func(name, birthDate string) engine.Person {
		p, err := engine.NewPerson(name, birthDate, "")
		require.NoError(t, err)
		return p
	}

	today := datemath.Date{Year: 2025, Month: 6, Day: 15}
	people := []engine.Person{
		mk("Carol", "2001-07-15"),
		mk("Ana", "1990-06-16"),
		{ID: "bad", Name: "Broken", BirthDate: "garbage"},
	}

	data, err := BuildUpcoming(people, today)
	require.NoError(t, err)

	var entries []UpcomingEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2, "unreadable birth dates are left out")

	// Sorted by proximity.
	assert.Equal(t, "Ana", entries[0].Name)
	assert.Equal(t, 1, entries[0].DaysUntil)
	assert.Equal(t, "2025-06-16", entries[0].NextDate)
	assert.Equal(t, 35, entries[0].TurnsAge)
	assert.Equal(t, "The birthday is tomorrow!", entries[0].DaysLeft)

	assert.Equal(t, "Carol", entries[1].Name)
	assert.Equal(t, 30, entries[1].DaysUntil)
	assert.Equal(t, 24, entries[1].TurnsAge)
}

func TestBuildUpcoming_Empty(t *testing.T) {
	data, err := BuildUpcoming(nil, datemath.Date{Year: 2025, Month: 6, Day: 15})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
