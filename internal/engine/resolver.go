package engine

import (
	"github.com/lomazzo/birthkeep/internal/datemath"
)

// Occurrence describes the upcoming anniversary of a birth date relative to
// a reference day.
type Occurrence struct {
	// NextDate is the calendar day of the upcoming anniversary.
	NextDate datemath.Date

	// DaysUntil is the whole-day distance from the reference day to
	// NextDate. Zero on the anniversary itself, never negative.
	DaysUntil int

	// CurrentAge is the completed age on the reference day, floored at 0.
	CurrentAge int

	// AgeAtNext is the age the person turns on NextDate.
	AgeAtNext int

	// NextDisplay is NextDate rendered as "DD/MM/YYYY".
	NextDisplay string
}

// Resolve computes the next occurrence of birth relative to today.
//
// The anniversary stays in the current year while today is on-or-before it;
// it moves to next year only once today is strictly past the (month, day)
// pair, so day-distance 0 is a reachable state on the birthday itself.
//
// A Feb 29 birth date is observed on Mar 1 in non-leap target years. The
// candidate date is normalized before any comparison or distance math, which
// keeps the leapling's observed day reachable (DaysUntil 0 on Mar 1) and the
// day counts exact.
func Resolve(birth, today datemath.Date) Occurrence {
	next := datemath.Date{Year: today.Year, Month: birth.Month, Day: birth.Day}.Normalize()
	if next.Before(today) {
		next = datemath.Date{Year: today.Year + 1, Month: birth.Month, Day: birth.Day}.Normalize()
	}

	age := today.Year - birth.Year
	if today.Month < birth.Month || (today.Month == birth.Month && today.Day < birth.Day) {
		age--
	}
	if age < 0 {
		age = 0
	}

	return Occurrence{
		NextDate:    next,
		DaysUntil:   datemath.Diff(today, next),
		CurrentAge:  age,
		AgeAtNext:   next.Year - birth.Year,
		NextDisplay: next.Display(),
	}
}

// ResolveISO parses a stored birth date string and resolves it against
// today. A malformed string surfaces as datemath.ErrInvalidDate instead of
// silently producing a garbage occurrence.
func ResolveISO(birthDate string, today datemath.Date) (Occurrence, error) {
	birth, err := datemath.ParseISO(birthDate)
	if err != nil {
		return Occurrence{}, err
	}
	return Resolve(birth, today), nil
}
