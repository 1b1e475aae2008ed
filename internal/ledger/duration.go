package ledger

import "fmt"

// FormatDuration renders a non-negative number of seconds as HH:MM:SS.
// Hours are not wrapped at 24 and may take more than two digits.
func FormatDuration(total int64) string {
	if total < 0 {
		total = -total
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatSigned is FormatDuration with a leading "-" for negative values
func FormatSigned(total int64) string {
	if total < 0 {
		return "-" + FormatDuration(-total)
	}
	return FormatDuration(total)
}
