package tui

// Color constants for the studylog theme
const (
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text
	ColorPrimaryText   = "#E6EAF2" // Labels, input, titles
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383" // Skipped steps, empty chart cells
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240"

	// Accents
	ColorAccentMain   = "#7C3AED" // Logo, borders of the selected row
	ColorAccentBright = "#A78BFA" // Current step, chart bars

	// State
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)
