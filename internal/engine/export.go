package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/datemath"
)

// SummaryFunc renders the calendar event title for a person turning age.
// The UI injects a localized implementation; nil falls back to English.
type SummaryFunc func(name string, age int) string

// BuildCalendar renders the tracked people as an iCalendar feed and returns
// the encoded bytes plus the number of birthdays falling on now's date.
//
// Events are generated for the previous, current, and next year so calendar
// clients scrolling either way see entries without an immediate refresh.
// Each event carries a display alarm one day ahead.
func BuildCalendar(people []Person, now time.Time, formatSummary SummaryFunc) ([]byte, int, error) {
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// The feed is stamped in UTC, but event dates follow the local calendar:
	// a birthday is defined by the person's civil date, not a UTC instant.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	today := datemath.FromTime(now)
	countToday := 0

	for _, p := range people {
		birth, err := datemath.ParseISO(p.BirthDate)
		if err != nil {
			log.Warn(config.MsgSkippedPerson,
				config.LogKeyPersonID, p.ID,
				config.LogKeyDOB, p.BirthDate,
				config.LogKeyError, err)
			continue
		}

		for _, y := range []int{today.Year - 1, today.Year, today.Year + 1} {
			// No events before the person is born.
			if y < birth.Year {
				continue
			}

			eventDate := datemath.Date{Year: y, Month: birth.Month, Day: birth.Day}.Normalize()
			if eventDate.Equal(today) {
				countToday++
				log.Info(config.MsgBdayToday,
					config.LogKeyName, p.Name,
					config.LogKeyDOB, p.BirthDate)
			}

			age := y - birth.Year
			summary := ""
			if formatSummary != nil {
				summary = formatSummary(p.Name, age)
			}
			if summary == "" {
				if age > 0 {
					summary = fmt.Sprintf(config.FallbackSummaryAge, p.Name, age)
				} else {
					summary = fmt.Sprintf(config.FallbackSummary, p.Name)
				}
			}

			event := ical.NewEvent()
			event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, p.ID, y, config.ICalDomain))
			event.Props.SetText(config.PropSummary, summary)
			if p.Description != "" {
				event.Props.SetText(config.PropDescription, p.Description)
			}

			dtStartProp := ical.NewProp(config.PropDTStart)
			dtStartProp.SetDate(time.Date(eventDate.Year, time.Month(eventDate.Month), eventDate.Day, 0, 0, 0, 0, now.Location()))
			event.Props.Set(dtStartProp)
			event.Props.Set(dtStampProp)

			addAlarm(event, config.ICalTrigger, summary)
			cal.Children = append(cal.Children, event.Component)
		}
	}

	// A feed without events still must be a valid VCALENDAR, otherwise
	// clients flag it as broken.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), countToday, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), countToday, nil
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the trigger manually to avoid a spurious VALUE=TEXT param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
