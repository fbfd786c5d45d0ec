// Package ui provides terminal UI components for chess-terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/debasish-raychawdhuri/chess-terminal/config"
)

// ColorConfigUI provides a board color configuration screen with live
// preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	selectedLightColor int
	selectedDarkColor  int
	editingDark        bool // true = editing dark squares, false = light squares
}

// Light-square colors to choose from (pale tones)
var lightSquareColors = []struct {
	code int
	name string
}{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{228, "Light Gold"},
	{223, "Peach"},
	{222, "Gold"},
	{188, "Light Beige"},
	{187, "Pale Olive"},
	{181, "Dusty Rose"},
	{180, "Tan"},
	{252, "Light Gray"},
	{250, "Gray"},
	{195, "Pale Cyan"},
	{194, "Pale Green"},
	{255, "White"},
}

// Dark-square colors (deeper tones that contrast with the light squares)
var darkSquareColors = []struct {
	code int
	name string
}{
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Brown"},
	{95, "Mauve"},
	{88, "Dark Red"},
	{52, "Dark Maroon"},
	{22, "Dark Green"},
	{23, "Teal"},
	{24, "Dark Cyan"},
	{17, "Navy Blue"},
	{54, "Purple"},
	{239, "Charcoal"},
	{242, "Slate"},
	{240, "Gray"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                cfg,
		onDone:             onDone,
		selectedLightColor: cfg.Theme.Colors.LightSquare,
		selectedDarkColor:  cfg.Theme.Colors.DarkSquare,
		editingDark:        false,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.SetBorderColor(MenuColors.BorderFocus)
	cc.colorList.ShowSecondaryText(false)
	cc.colorList.SetMainTextColor(MenuColors.Unselected)
	cc.colorList.SetSelectedTextColor(MenuColors.Title)
	cc.colorList.SetSelectedBackgroundColor(MenuColors.Selected)

	cc.populateColorList()

	// Selection change previews without saving
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editingDark {
			if index >= 0 && index < len(darkSquareColors) {
				cc.selectedDarkColor = darkSquareColors[index].code
			}
		} else {
			if index >= 0 && index < len(lightSquareColors) {
				cc.selectedLightColor = lightSquareColors[index].code
			}
		}
	})

	// Selection confirm applies and saves
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editingDark {
			if index >= 0 && index < len(darkSquareColors) {
				cc.cfg.Theme.Colors.DarkSquare = cc.selectedDarkColor
				cc.cfg.Save()
				// Switch back to light-square selection
				cc.editingDark = false
				cc.populateColorList()
			}
		} else {
			if index >= 0 && index < len(lightSquareColors) {
				cc.cfg.Theme.Colors.LightSquare = cc.selectedLightColor
				cc.cfg.Save()
				onDone()
			}
		}
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetBorderColor(MenuColors.Border)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// populateColorList fills the list with the palette for the current mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	if cc.editingDark {
		cc.colorList.SetTitle(" Dark Squares (Tab: light) ")
		for i, c := range darkSquareColors {
			cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
				tcell.PaletteColor(c.code).Hex(), c.name, c.code),
				"", rune('a'+i), nil)
		}
		for i, c := range darkSquareColors {
			if c.code == cc.selectedDarkColor {
				cc.colorList.SetCurrentItem(i)
				break
			}
		}
	} else {
		cc.colorList.SetTitle(" Light Squares (Tab: dark) ")
		for i, c := range lightSquareColors {
			cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
				tcell.PaletteColor(c.code).Hex(), c.name, c.code),
				"", rune('a'+i), nil)
		}
		for i, c := range lightSquareColors {
			if c.code == cc.selectedLightColor {
				cc.colorList.SetCurrentItem(i)
				break
			}
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	lightColor := tcell.PaletteColor(cc.selectedLightColor)
	darkColor := tcell.PaletteColor(cc.selectedDarkColor)
	whitePiece := tcell.PaletteColor(cc.cfg.Theme.Colors.WhitePiece)
	blackPiece := tcell.PaletteColor(cc.cfg.Theme.Colors.BlackPiece)

	startX := x + 2
	startY := y + 1

	if width < 30 || height < 10 {
		return x, y, width, height
	}

	// A sample corner of the starting position: files a-f, ranks 8..5
	// from the black side down.
	pieces := map[[2]int]struct {
		glyph rune
		white bool
	}{
		{0, 0}: {'♜', false},
		{1, 0}: {'♞', false},
		{2, 0}: {'♝', false},
		{3, 0}: {'♛', false},
		{4, 0}: {'♚', false},
		{0, 1}: {'♟', false},
		{1, 1}: {'♟', false},
		{2, 1}: {'♟', false},
		{3, 2}: {'♟', true},
		{4, 3}: {'♞', true},
	}

	for row := 0; row < 4; row++ {
		for col := 0; col < 6; col++ {
			bg := darkColor
			if (col+row)%2 == 0 {
				bg = lightColor
			}
			style := tcell.StyleDefault.Background(bg)

			cell := ' '
			if p, ok := pieces[[2]int{col, row}]; ok {
				cell = p.glyph
				if p.white {
					style = style.Foreground(whitePiece)
				} else {
					style = style.Foreground(blackPiece)
				}
			}

			screenX := startX + col*cellWidth
			screenY := startY + row
			screen.SetContent(screenX, screenY, ' ', nil, style)
			screen.SetContent(screenX+1, screenY, cell, nil, style)
			screen.SetContent(screenX+2, screenY, ' ', nil, style)
		}
	}

	infoStyle := tcell.StyleDefault
	var info string
	if cc.editingDark {
		info = fmt.Sprintf("Dark: %d  Light: %d", cc.selectedDarkColor, cc.selectedLightColor)
	} else {
		info = fmt.Sprintf("Light: %d  Dark: %d", cc.selectedLightColor, cc.selectedDarkColor)
	}
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+5, ch, nil, infoStyle)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between light-square and dark-square editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingDark = !cc.editingDark
	cc.populateColorList()
}
