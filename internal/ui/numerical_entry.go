package ui

import (
	"errors"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"github.com/lomazzo/birthkeep/internal/config"
)

// NumericalEntry is an Entry that only accepts decimal digits. Typed input
// is filtered at the rune level; pasted or programmatic text is caught by
// the built-in validator instead.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a digit-only entry. Callers needing stricter
// rules (such as a port range) replace the Validator, which subsumes the
// digit check since those rules parse the value anyway.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	entry.Validator = digitsOnly
	return entry
}

// TypedRune drops anything that is not a decimal digit.
func (e *NumericalEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile drivers.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errors.New(config.ErrNotNumeric)
		}
	}
	return nil
}
