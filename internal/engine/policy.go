package engine

import (
	"fmt"
	"log/slog"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/datemath"
)

// Settings is the process-wide reminder configuration: one master switch and
// one independent toggle per threshold distance.
type Settings struct {
	Enabled         bool
	OnDay           bool
	DayBefore       bool
	ThreeDaysBefore bool
	WeekBefore      bool
	TwoWeeksBefore  bool
	MonthBefore     bool
}

// DefaultSettings enables every threshold.
func DefaultSettings() Settings {
	return Settings{
		Enabled:         true,
		OnDay:           true,
		DayBefore:       true,
		ThreeDaysBefore: true,
		WeekBefore:      true,
		TwoWeeksBefore:  true,
		MonthBefore:     true,
	}
}

// ThresholdEnabled reports whether a reminder fires at exactly days of
// distance. Distances outside the threshold set are never due.
func (s Settings) ThresholdEnabled(days int) bool {
	if !s.Enabled {
		return false
	}
	switch days {
	case config.ThresholdToday:
		return s.OnDay
	case config.ThresholdTomorrow:
		return s.DayBefore
	case config.Threshold3Days:
		return s.ThreeDaysBefore
	case config.ThresholdWeek:
		return s.WeekBefore
	case config.Threshold2Weeks:
		return s.TwoWeeksBefore
	case config.ThresholdMonth:
		return s.MonthBefore
	default:
		return false
	}
}

// Reminder is a decided notification event, ready for delivery by the host.
type Reminder struct {
	PersonID      string
	Name          string
	ThresholdDays int
	Message       string
}

// LedgerEntry marks one person as notified for one calendar day. The host
// persists entries atomically with delivery so a slow or re-entrant delivery
// path cannot double-fire.
type LedgerEntry struct {
	PersonID string
	DayKey   string
}

// SeenFunc answers whether a (person, day) pair is already recorded in the
// de-duplication ledger.
type SeenFunc func(personID, dayKey string) bool

// MessageFunc renders the reminder message for a person at a threshold
// distance. The UI injects a localized implementation; a nil MessageFunc
// falls back to FallbackMessage.
type MessageFunc func(name string, thresholdDays int) string

// Evaluate runs the notification policy over every tracked person and
// returns the reminders to deliver plus the ledger entries the host must
// merge. It is side-effect-free: repeated calls with the same ledger state
// return the same decisions, and once the returned entries are merged a
// second run the same day returns nothing.
//
// Each person fires at most once per calendar day, however many evaluation
// runs occur that day and whichever threshold matched.
func Evaluate(people []Person, today datemath.Date, seen SeenFunc, s Settings, msg MessageFunc) ([]Reminder, []LedgerEntry) {
	if !s.Enabled {
		return nil, nil
	}

	log := slog.With(config.LogKeyComponent, config.CompPolicy)
	dayKey := today.ISO()

	var reminders []Reminder
	var entries []LedgerEntry

	for _, p := range people {
		occ, err := ResolveISO(p.BirthDate, today)
		if err != nil {
			log.Warn(config.MsgSkippedPerson,
				config.LogKeyPersonID, p.ID,
				config.LogKeyDOB, p.BirthDate,
				config.LogKeyError, err)
			continue
		}

		if !s.ThresholdEnabled(occ.DaysUntil) {
			continue
		}
		if seen != nil && seen(p.ID, dayKey) {
			continue
		}

		text := ""
		if msg != nil {
			text = msg(p.Name, occ.DaysUntil)
		}
		if text == "" {
			text = FallbackMessage(p.Name, occ.DaysUntil)
		}

		reminders = append(reminders, Reminder{
			PersonID:      p.ID,
			Name:          p.Name,
			ThresholdDays: occ.DaysUntil,
			Message:       text,
		})
		entries = append(entries, LedgerEntry{PersonID: p.ID, DayKey: dayKey})

		log.Debug(config.MsgReminderFired,
			config.LogKeyPersonID, p.ID,
			config.LogKeyName, p.Name,
			config.LogKeyThreshold, occ.DaysUntil,
			config.LogKeyDayKey, dayKey)
	}

	return reminders, entries
}

// FallbackMessage renders the built-in English reminder text for a threshold
// distance.
func FallbackMessage(name string, thresholdDays int) string {
	switch thresholdDays {
	case config.ThresholdToday:
		return fmt.Sprintf(config.FallbackNotifToday, name)
	case config.ThresholdTomorrow:
		return fmt.Sprintf(config.FallbackNotifTomorrow, name)
	case config.Threshold3Days:
		return fmt.Sprintf(config.FallbackNotif3Days, name)
	case config.ThresholdWeek:
		return fmt.Sprintf(config.FallbackNotifWeek, name)
	case config.Threshold2Weeks:
		return fmt.Sprintf(config.FallbackNotif2Weeks, name)
	case config.ThresholdMonth:
		return fmt.Sprintf(config.FallbackNotifMonth, name)
	default:
		return fmt.Sprintf(config.FallbackSummary, name)
	}
}
