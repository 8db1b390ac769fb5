// Package datemath implements the calendar arithmetic the reminder engine is
// built on. It deliberately avoids time.Time for the conversion math itself:
// birthdays are civil calendar dates, and counting whole days between two of
// them must not depend on timezones, DST shifts, or wall-clock precision.
// The host clock is only ever consulted to learn what "today" is.
package datemath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lomazzo/birthkeep/internal/config"
)

// ErrInvalidDate reports a date string or component set that does not
// describe a real proleptic Gregorian calendar day.
var ErrInvalidDate = errors.New(config.ErrDateParse)

// monthLengths holds the day count of each month in a common year.
var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a civil calendar date. Month and Day are 1-based.
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromTime extracts the civil date of t in its own location.
// This is the only bridge between the host clock and the date math.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// IsLeapYear reports whether year is a leap year under the proleptic
// Gregorian rule: divisible by 4 and not by 100, or divisible by 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the length of month in year, accounting for leap
// Februaries. Months outside 1..12 return 0.
func DaysInMonth(year, month int) int {
	if month < config.MinMonth || month > config.MaxMonth {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthLengths[month-1]
}

// daysInYear returns 366 for leap years and 365 otherwise.
func daysInYear(year int) int {
	if IsLeapYear(year) {
		return config.DaysLeapYear
	}
	return config.DaysCommonYear
}

// Ordinal maps d onto a linear day scale anchored at the epoch year.
// Day 1 of the epoch year maps to 1, not 0; the offset is irrelevant as long
// as it is uniform, because only differences of two ordinals are consumed.
// Dates before the epoch extend the scale into negative territory so the
// mapping stays strictly increasing everywhere.
func Ordinal(d Date) int {
	total := 0
	if d.Year >= config.EpochYear {
		for y := config.EpochYear; y < d.Year; y++ {
			total += daysInYear(y)
		}
	} else {
		for y := d.Year; y < config.EpochYear; y++ {
			total -= daysInYear(y)
		}
	}
	for m := config.MinMonth; m < d.Month; m++ {
		total += DaysInMonth(d.Year, m)
	}
	return total + d.Day
}

// Diff returns the number of whole days from a to b.
// Positive when b is chronologically after a.
func Diff(a, b Date) int {
	return Ordinal(b) - Ordinal(a)
}

// Valid reports whether d names an existing calendar day.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < config.MinMonth || d.Month > config.MaxMonth {
		return false
	}
	return d.Day >= config.MinDay && d.Day <= DaysInMonth(d.Year, d.Month)
}

// Normalize rolls a day that overflows its month into the following month,
// so that {year, 2, 29} in a non-leap year becomes {year, 3, 1}. Dates that
// are already valid are returned unchanged.
func (d Date) Normalize() Date {
	for d.Month >= config.MinMonth && d.Month <= config.MaxMonth && d.Day > DaysInMonth(d.Year, d.Month) {
		d.Day -= DaysInMonth(d.Year, d.Month)
		d.Month++
		if d.Month > config.MaxMonth {
			d.Month = config.MinMonth
			d.Year++
		}
	}
	return d
}

// Before reports whether d is chronologically before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d is chronologically after o.
func (d Date) After(o Date) bool {
	return o.Before(d)
}

// Equal reports whether d and o name the same day.
func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// ISO renders d as zero-padded "YYYY-MM-DD". This is the canonical storage
// form of birth dates and the canonical ledger day key. Zero padding matters:
// an unpadded variant would let "2025-3-9" and "2025-03-09" coexist as
// distinct ledger keys for the same day.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Display renders d as "DD/MM/YYYY" for the UI.
func (d Date) Display() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// ParseISO parses a canonical "YYYY-MM-DD" string into a Date.
// Unlike a split-and-hope parse, every component must be an integer and the
// resulting triple must name a real calendar day; anything else surfaces as
// ErrInvalidDate so callers can distinguish bad stored data from engine bugs.
func ParseISO(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ReformatISO reshuffles a stored "YYYY-MM-DD" string into "DD/MM/YYYY"
// without any calendar interpretation. Strings that do not have three parts
// are returned untouched rather than mangled.
func ReformatISO(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	pad := func(p string) string {
		if len(p) < 2 {
			return "0" + p
		}
		return p
	}
	return pad(parts[2]) + "/" + pad(parts[1]) + "/" + parts[0]
}
