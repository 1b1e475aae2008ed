package tui

// Color constants for the workclock TUI theme
const (
	ColorBorder = "#2F4858" // Slate

	// Text Colors
	ColorPrimaryText   = "#E8F1F2" // Field labels, user input, titles
	ColorSecondaryText = "#A9BCC4" // Timestamps, hints
	ColorDisabledText  = "#5E7380" // Muted text
	ColorPlaceholder   = "#7E939D"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (teal theme)
	ColorAccentMain   = "#14B8A6" // Clock digits, active borders
	ColorAccentBright = "#5EEAD4" // Headers, current step

	// Ledger Colors
	ColorBalance  = "#FACC15" // Opening and closing balance rows
	ColorNegative = "#F87171" // Subtractions and negative balances

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Success, confirmations
)
