package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/datemath"
)

// ErrNameRequired reports an attempt to create a person without a name.
var ErrNameRequired = errors.New(config.ErrNameRequired)

// Person is a tracked birthday record. Records are immutable after creation:
// they are added on user submission and removed on confirmation, never edited.
type Person struct {
	// ID is an opaque unique token assigned at creation.
	ID string `json:"id"`

	// Name is the display name. No two persons may share a
	// case-insensitive name; the store enforces this at insert time.
	Name string `json:"name"`

	// BirthDate is the canonical "YYYY-MM-DD" form of the birth date.
	BirthDate string `json:"birthDate"`

	// Description is optional free text shown in the list.
	Description string `json:"description,omitempty"`

	// Photo is an optional encoded image.
	Photo []byte `json:"photo,omitempty"`

	// CreatedAt records when the entry was added.
	CreatedAt time.Time `json:"createdAt"`
}

// NewPerson validates the submitted fields and assembles a record with a
// fresh unique ID. The birth date must parse as a real calendar day so that
// malformed input is rejected at the door instead of poisoning later
// resolver runs.
func NewPerson(name, birthDate, description string) (Person, error) {
	if name == "" {
		return Person{}, ErrNameRequired
	}
	if _, err := datemath.ParseISO(birthDate); err != nil {
		return Person{}, err
	}
	return Person{
		ID:          uuid.NewString(),
		Name:        name,
		BirthDate:   birthDate,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
