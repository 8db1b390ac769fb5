package engine

import (
	"fmt"

	"github.com/lomazzo/birthkeep/internal/config"
)

// PhraseKind classifies a day distance for presentation.
type PhraseKind int

const (
	PhraseToday PhraseKind = iota
	PhraseTomorrow
	PhraseDays
	PhraseMonth
	PhraseMonthDays
	PhraseMonths
	PhraseMonthsDays
)

// Phrase is the presentation breakdown of a day distance. Literal day counts
// are used through 60 days; beyond that the distance is expressed as
// floor(days/30) approximate months plus a remainder. The 60-day boundary
// and the 30-day month are fixed presentation policy, not calendar months.
type Phrase struct {
	Kind   PhraseKind
	Days   int // literal day count, or the remainder beyond whole months
	Months int
}

// ClassifyDaysLeft breaks a day distance into its phrase shape. The UI maps
// the shape onto localized templates; DaysLeftText renders the English
// fallback from the same shape so both paths agree on the cutoffs.
func ClassifyDaysLeft(days int) Phrase {
	switch {
	case days == 0:
		return Phrase{Kind: PhraseToday}
	case days == 1:
		return Phrase{Kind: PhraseTomorrow}
	case days <= config.LiteralDaysCutoff:
		return Phrase{Kind: PhraseDays, Days: days}
	}

	months := days / config.DaysPerMonthApprox
	rest := days % config.DaysPerMonthApprox

	if months == 1 {
		if rest == 0 {
			return Phrase{Kind: PhraseMonth, Months: 1}
		}
		return Phrase{Kind: PhraseMonthDays, Months: 1, Days: rest}
	}
	if rest == 0 {
		return Phrase{Kind: PhraseMonths, Months: months}
	}
	return Phrase{Kind: PhraseMonthsDays, Months: months, Days: rest}
}

// DaysLeftText renders the English fallback phrase for a day distance.
func DaysLeftText(days int) string {
	p := ClassifyDaysLeft(days)
	switch p.Kind {
	case PhraseToday:
		return config.FallbackPhraseToday
	case PhraseTomorrow:
		return config.FallbackPhraseTomorrow
	case PhraseDays:
		return fmt.Sprintf(config.FallbackPhraseDays, p.Days)
	case PhraseMonth:
		return config.FallbackPhraseMonth
	case PhraseMonthDays:
		return fmt.Sprintf(config.FallbackPhraseMonthDays, p.Days)
	case PhraseMonths:
		return fmt.Sprintf(config.FallbackPhraseMonths, p.Months)
	default:
		return fmt.Sprintf(config.FallbackPhraseMonthsDay, p.Months, p.Days)
	}
}
