package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
		{360000 + 61, "100:01:01"},
		{-3661, "01:01:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "01:00:00", FormatSigned(3600))
	assert.Equal(t, "-00:30:00", FormatSigned(-1800))
	assert.Equal(t, "00:00:00", FormatSigned(0))
}
