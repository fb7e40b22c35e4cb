package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// LeetCode palette
	brandOrange = lipgloss.Color("#FFA116")
	easyGreen   = lipgloss.Color("#00B8A3")
	mediumAmber = lipgloss.Color("#FFC01E")
	hardRed     = lipgloss.Color("#FF375F")
	darkBg      = lipgloss.Color("#1A1A1A")
	dimWhite    = lipgloss.Color("#B0B0B0")

	logoStyle = lipgloss.NewStyle().
			Foreground(brandOrange).
			Bold(true).
			Padding(1, 0, 0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandOrange).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Background(brandOrange).
			Foreground(darkBg).
			Bold(true).
			Padding(0, 1)

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(brandOrange).
			Bold(true)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	successStyle = lipgloss.NewStyle().
			Foreground(easyGreen).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(mediumAmber).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(hardRed).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimWhite)

	logTimestampStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0, 0, 2)
)

// DifficultyStyle returns the LeetCode color for a difficulty column
func DifficultyStyle(difficulty string) lipgloss.Style {
	switch difficulty {
	case "Easy":
		return lipgloss.NewStyle().Foreground(easyGreen)
	case "Medium":
		return lipgloss.NewStyle().Foreground(mediumAmber)
	case "Hard":
		return lipgloss.NewStyle().Foreground(hardRed)
	default:
		return statsValueStyle
	}
}
