package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crystal-crush/internal/core"
)

// Theme contains all configurable visual styles.
type Theme struct {
	// Screen cell colors, used for the board and its HUD
	Cells map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuDescription lipgloss.Style
	Stars           lipgloss.Style
	Lives           lipgloss.Style
	Warning         lipgloss.Style

	// Table styles
	TableBorder   lipgloss.Color
	TableSelected lipgloss.Style

	Help lipgloss.Style
}

// DefaultTheme returns the 256-color theme.
func DefaultTheme() Theme {
	return Theme{
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault: lipgloss.NewStyle(),
			core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
			core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
			core.ColorPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
			core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
			core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			core.ColorGold:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		},

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Stars:           lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Lives:           lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Warning:         lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),

		TableBorder:   lipgloss.Color("240"),
		TableSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),

		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// BasicTheme returns a theme limited to the 16 ANSI colors.
func BasicTheme() Theme {
	theme := DefaultTheme()
	theme.Cells = map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		core.ColorPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		core.ColorGold:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	theme.MenuItemLocked = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	theme.TableSelected = lipgloss.NewStyle().Reverse(true)
	return theme
}

// ThemeByName returns a built-in theme: "default" or "basic".
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "basic":
		return BasicTheme(), nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want default or basic)", name)
}

// Global theme variable (can be changed at startup)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
