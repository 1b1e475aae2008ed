package parser

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/workclock/internal/ledger"
)

// ParsedEntry is a manual entry parsed from one line of text
type ParsedEntry struct {
	Amount    Amount
	HasAmount bool
	Date      *time.Time
	Note      string
	Errors    []error // each a *ledger.ValidationError
}

var onDateRegex = regexp.MustCompile(`(?:^|\s)on:(\S+)`)

// ParseEntry extracts an amount, an optional day and a note from a single line.
// Syntax: "-1h30m dentist on:15/01/2024". The first word that reads as an amount
// is the amount, "on:" sets the day, everything else is the note.
func ParseEntry(input string, now time.Time) ParsedEntry {
	result := ParsedEntry{Errors: []error{}}
	original := strings.TrimSpace(input)

	// Extract the day (on:yesterday, on:15/01/2024, ...)
	if m := onDateRegex.FindStringSubmatch(input); len(m) > 1 {
		date, err := ParseDate(strings.ReplaceAll(m[1], "_", " "), now)
		if err != nil {
			result.Errors = append(result.Errors, err)
		} else {
			result.Date = &date
		}
		input = onDateRegex.ReplaceAllString(input, " ")
	}

	var noteWords []string
	for _, word := range strings.Fields(input) {
		if !result.HasAmount {
			if amount, err := ParseAmount(word); err == nil {
				result.Amount = amount
				result.HasAmount = true
				continue
			}
		}
		noteWords = append(noteWords, word)
	}
	result.Note = strings.Join(noteWords, " ")

	if !result.HasAmount {
		result.Errors = append(result.Errors,
			ledger.NewValidationError("amount", original, "no amount found, use forms like 1h30m, -45m or 1:30"))
	}

	return result
}

// Err joins the parse errors. Unless requireAmount is set, a missing amount is not an error.
func (p ParsedEntry) Err(requireAmount bool) error {
	var errs []error
	for _, err := range p.Errors {
		var ve *ledger.ValidationError
		if !requireAmount && errors.As(err, &ve) && ve.Field == "amount" {
			continue
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
