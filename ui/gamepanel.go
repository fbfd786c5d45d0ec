package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// GameInfoPanel displays game information and move history alongside the
// board.
type GameInfoPanel struct {
	box   *tview.TextView
	board *ChessBoardUI
}

// NewGameInfoPanel creates a new game info panel bound to a board.
func NewGameInfoPanel(board *ChessBoardUI) *GameInfoPanel {
	panel := &GameInfoPanel{
		box:   tview.NewTextView(),
		board: board,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// Refresh updates the panel text from the board's game state.
func (p *GameInfoPanel) Refresh() {
	if p.board == nil {
		p.box.SetText("")
		return
	}
	g := p.board.Game()

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", g.MoveNumber())
	text += fmt.Sprintf("[white]Turn:[-:-:-] %s\n", g.SideToMove())
	if g.IsThinking() {
		text += "[yellow]Engine is thinking…[-:-:-]\n"
	}
	text += "\n" + g.Message() + "\n"

	moves := p.board.moveHistory
	if len(moves) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		// Show the last N moves that fit.
		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}

		for i := start; i < len(moves); i++ {
			m := moves[i]

			colorStr := "[white]W[-]"
			if m.Color.String() == "Black" {
				colorStr = "[dimgray]B[-]"
			}

			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}

			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, m.Text)
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *ChessBoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewGameInfoPanel(board)
	board.infoPanel = infoPanel

	// Horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	// Main vertical flex: board area on top, compact status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 2, 0, false)

	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info
// panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *ChessBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel(board)
	board.infoPanel = infoPanel
	infoPanel.Refresh()

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 2, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered
// board.
func BuildFocusLayout(gameFrame *tview.Flex, board *ChessBoardUI) {
	gameFrame.Clear()

	boardWidth := leftPad + 8*cellWidth + 1
	boardHeight := 8 + 2

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false) // bottom spacer
}
