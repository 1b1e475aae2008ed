package ledger

import (
	"math"
	"strings"
	"time"

	"github.com/balkashynov/workclock/internal/models"
)

// Sign selects whether a manual entry adds or subtracts time
type Sign rune

const (
	Add      Sign = '+'
	Subtract Sign = '-'
)

// Adjustment is a manually entered record: a date and a signed amount of time
type Adjustment struct {
	Date    time.Time
	Sign    Sign
	Hours   float64
	Minutes float64
	Note    string
}

// Validate checks the adjustment before it is converted to a session
func (a Adjustment) Validate() error {
	if a.Sign != Add && a.Sign != Subtract {
		return NewValidationError("sign", string(a.Sign), "must be + or -")
	}
	if a.Date.IsZero() {
		return NewValidationError("date", "", "is required")
	}
	if math.IsNaN(a.Hours) || math.IsInf(a.Hours, 0) || a.Hours < 0 {
		return NewValidationError("hours", a.Hours, "must be a non-negative number")
	}
	if math.IsNaN(a.Minutes) || math.IsInf(a.Minutes, 0) || a.Minutes < 0 {
		return NewValidationError("minutes", a.Minutes, "must be a non-negative number")
	}
	return nil
}

// Seconds returns the signed duration in whole seconds
func (a Adjustment) Seconds() int64 {
	total := math.Round(a.Hours*3600 + a.Minutes*60)
	if a.Sign == Subtract {
		total = -total
	}
	return int64(total)
}

// Input validates the adjustment and converts it to a session starting at local midnight
func (a Adjustment) Input() (models.WorkSessionInput, error) {
	if err := a.Validate(); err != nil {
		return models.WorkSessionInput{}, err
	}
	day := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, a.Date.Location())
	return models.WorkSessionInput{
		Start:    day.Unix(),
		Duration: a.Seconds(),
		Notes:    strings.Trim(a.Note, "\r\n"),
	}, nil
}
