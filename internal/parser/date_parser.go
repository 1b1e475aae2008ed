package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/workclock/internal/ledger"
)

var (
	dayMonthYearRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDateRegex      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	daysAgoRegex      = regexp.MustCompile(`^(\d+)\s+days?\s+ago$`)
)

// ParseDate parses the day a manual entry belongs to.
// Supported formats:
// - "" or "today"
// - "yesterday"
// - N days ago (e.g., "3 days ago")
// - dd/mm/yyyy (e.g., "15/01/2024")
// - yyyy-mm-dd (e.g., "2024-01-15")
// The result is midnight of that day in now's location.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if m := daysAgoRegex.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > 3660 {
			return time.Time{}, ledger.NewValidationError("date", input, "too far in the past")
		}
		return today.AddDate(0, 0, -n), nil
	}

	if m := dayMonthYearRegex.FindStringSubmatch(input); m != nil {
		return buildDate(input, m[3], m[2], m[1], now.Location())
	}
	if m := isoDateRegex.FindStringSubmatch(input); m != nil {
		return buildDate(input, m[1], m[2], m[3], now.Location())
	}

	return time.Time{}, ledger.NewValidationError("date", input, "use dd/mm/yyyy, yyyy-mm-dd, today, yesterday or N days ago")
}

func buildDate(input, y, m, d string, loc *time.Location) (time.Time, error) {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)

	if month < 1 || month > 12 {
		return time.Time{}, ledger.NewValidationError("date", input, "month must be between 1 and 12")
	}
	if year < 1970 || year > 2100 {
		return time.Time{}, ledger.NewValidationError("date", input, "year must be between 1970 and 2100")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, ledger.NewValidationError("date", input, "no such day")
	}
	return date, nil
}

// FormatDate formats a day the way ParseDate accepts it back
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
