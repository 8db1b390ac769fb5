package server

import (
	"encoding/json"
	"sort"

	"github.com/lomazzo/birthkeep/internal/datemath"
	"github.com/lomazzo/birthkeep/internal/engine"
)

// UpcomingEntry is one row of the JSON view, ordered by proximity.
type UpcomingEntry struct {
	Name      string `json:"name"`
	NextDate  string `json:"next_date"`
	DaysUntil int    `json:"days_until"`
	TurnsAge  int    `json:"turns_age"`
	DaysLeft  string `json:"days_left"`
}

// BuildUpcoming renders the tracked people as a JSON array sorted by days
// until the next occurrence. People with unreadable birth dates are left out.
func BuildUpcoming(people []engine.Person, today datemath.Date) ([]byte, error) {
	entries := make([]UpcomingEntry, 0, len(people))
	for _, p := range people {
		occ, err := engine.ResolveISO(p.BirthDate, today)
		if err != nil {
			continue
		}
		entries = append(entries, UpcomingEntry{
			Name:      p.Name,
			NextDate:  occ.NextDate.ISO(),
			DaysUntil: occ.DaysUntil,
			TurnsAge:  occ.AgeAtNext,
			DaysLeft:  engine.DaysLeftText(occ.DaysUntil),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysUntil < entries[j].DaysUntil
	})

	return json.Marshal(entries)
}
