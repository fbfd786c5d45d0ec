package ui

import "github.com/gdamore/tcell/v2"

// MenuColors defines the Nord-inspired color palette for the menu UI.
var MenuColors = struct {
	Border      tcell.Color // Muted blue-gray for borders
	BorderFocus tcell.Color // Brighter blue for focused borders
	Title       tcell.Color // Bright white for title
	Label       tcell.Color // Light gray for labels
	Hint        tcell.Color // Dim gray for hints
	Selected    tcell.Color // Bright blue for selected items
	Unselected  tcell.Color // Dim gray for unselected items
	ButtonBG    tcell.Color // Button background
	ButtonText  tcell.Color // Button text
}{
	Border:      tcell.PaletteColor(60),  // Muted blue-gray
	BorderFocus: tcell.PaletteColor(109), // Brighter blue
	Title:       tcell.PaletteColor(255), // Bright white
	Label:       tcell.PaletteColor(250), // Light gray
	Hint:        tcell.PaletteColor(245), // Dim gray
	Selected:    tcell.PaletteColor(109), // Bright blue
	Unselected:  tcell.PaletteColor(245), // Dim gray
	ButtonBG:    tcell.PaletteColor(60),  // Nord blue
	ButtonText:  tcell.PaletteColor(255), // White
}
