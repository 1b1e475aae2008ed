package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/workclock/internal/ledger"
)

// Amount is a signed span of hours and minutes typed by the user
type Amount struct {
	Sign    ledger.Sign
	Hours   float64
	Minutes float64
}

var (
	unitAmountRegex  = regexp.MustCompile(`^([+-]?)(?:(\d+(?:\.\d+)?)h)?(?:(\d+)m)?$`)
	clockAmountRegex = regexp.MustCompile(`^([+-]?)(\d+):(\d{1,2})$`)
)

// ParseAmount parses amounts like "1h30m", "-45m", "+2h", "1.5h" or "-1:15"
func ParseAmount(input string) (Amount, error) {
	input = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))
	if input == "" {
		return Amount{}, ledger.NewValidationError("amount", input, "is required")
	}

	if m := clockAmountRegex.FindStringSubmatch(input); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes, _ := strconv.Atoi(m[3])
		if minutes > 59 {
			return Amount{}, ledger.NewValidationError("amount", input, "minutes must be between 0 and 59")
		}
		return Amount{Sign: signOf(m[1]), Hours: float64(hours), Minutes: float64(minutes)}, nil
	}

	m := unitAmountRegex.FindStringSubmatch(input)
	if m == nil || (m[2] == "" && m[3] == "") {
		return Amount{}, ledger.NewValidationError("amount", input, "use forms like 1h30m, 45m, 2h or 1:30")
	}

	amount := Amount{Sign: signOf(m[1])}
	if m[2] != "" {
		h, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Amount{}, ledger.NewValidationError("hours", m[2], "not a number")
		}
		amount.Hours = h
	}
	if m[3] != "" {
		mins, err := strconv.Atoi(m[3])
		if err != nil {
			return Amount{}, ledger.NewValidationError("minutes", m[3], "not a number")
		}
		amount.Minutes = float64(mins)
	}
	return amount, nil
}

// IsAmount reports whether s parses as an amount
func IsAmount(s string) bool {
	_, err := ParseAmount(s)
	return err == nil
}

func signOf(s string) ledger.Sign {
	if s == "-" {
		return ledger.Subtract
	}
	return ledger.Add
}
