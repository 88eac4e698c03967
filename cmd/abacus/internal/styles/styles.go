package styles

import "github.com/charmbracelet/lipgloss"

// Terminal palette, ANSI 16 so it follows the user's theme.
var (
	ColorMuted    = lipgloss.Color("8")  // gray
	ColorAccent   = lipgloss.Color("4")  // blue
	ColorError    = lipgloss.Color("1")  // red
	ColorSuccess  = lipgloss.Color("2")  // green
	ColorWarning  = lipgloss.Color("3")  // amber
	ColorInverted = lipgloss.Color("0")  // black, text on colored keys
	ColorBright   = lipgloss.Color("15") // white
)

// Display styles.
var (
	DisplayBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	PreviousStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	CurrentStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
)

// Keypad styles. Every key shares KeyBase so the grid lines up.
var (
	KeyBase = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Align(lipgloss.Center)

	DigitKey    = KeyBase.BorderForeground(ColorMuted)
	OperatorKey = KeyBase.BorderForeground(ColorAccent).Foreground(ColorAccent).Bold(true)
	ClearKey    = KeyBase.BorderForeground(ColorError).Foreground(ColorError).Bold(true)
	DeleteKey   = KeyBase.BorderForeground(ColorWarning).Foreground(ColorWarning)
	EqualsKey   = KeyBase.BorderForeground(ColorSuccess).Foreground(ColorSuccess).Bold(true)

	// PressedKey replaces a key's style while it is highlighted.
	PressedKey = KeyBase.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(ColorBright).
			Background(ColorAccent).
			Foreground(ColorInverted).
			Bold(true)
)

// General utility styles.
var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StatusStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
