package engine

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/datemath"
)

// ImportVCards reads a vCard stream and returns one draft Person per card
// carrying a usable BDAY field. Malformed cards and unparseable dates are
// skipped with a log entry so a single broken contact cannot abort a bulk
// import. The caller decides which drafts actually get stored.
func ImportVCards(r io.Reader) ([]Person, error) {
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	decoder := vcard.NewDecoder(r)

	var people []Person
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		birthDate, err := parseVCardDate(bday.Value)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
			continue
		}

		// Name strategy: FN (formatted) > N (structured) > fallback.
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		description := ""
		if note := card.Get(config.VCardNote); note != nil {
			description = note.Value
		}

		p, err := NewPerson(name, birthDate, description)
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyName, name, config.LogKeyError, err)
			continue
		}
		p.Photo = decodeVCardPhoto(card)
		people = append(people, p)
	}

	return people, nil
}

// decodeVCardPhoto extracts an inline base64 photo from a card. Both the
// 3.0 form (ENCODING=b, raw base64 value) and the 4.0 data URI form are
// handled. URI references and undecodable payloads yield nil; a photo is
// never worth failing the import over.
func decodeVCardPhoto(card vcard.Card) []byte {
	prop := card.Get(config.VCardPhoto)
	if prop == nil || prop.Value == "" {
		return nil
	}

	value := prop.Value
	if strings.HasPrefix(value, config.DataURIPrefix) {
		idx := strings.Index(value, config.Base64Marker)
		if idx < 0 {
			return nil
		}
		value = value[idx+len(config.Base64Marker):]
	}

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	return data
}

// parseVCardDate converts the vCard BDAY formats into the canonical
// "YYYY-MM-DD" form. Truncated dates without a year are anchored at a leap
// year so that --02-29 survives.
func parseVCardDate(value string) (string, error) {
	if d, err := datemath.ParseISO(value); err == nil {
		return d.ISO(), nil
	}
	if t, err := time.Parse(config.DateFormatFullBasic, value); err == nil {
		return datemath.FromTime(t).ISO(), nil
	}
	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			d := datemath.Date{Year: config.FallbackBirthYear, Month: int(t.Month()), Day: t.Day()}
			return d.ISO(), nil
		}
	}
	return "", fmt.Errorf("%w: %q", datemath.ErrInvalidDate, value)
}
