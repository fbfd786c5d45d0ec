package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/debasish-raychawdhuri/chess-terminal/game"
)

// GameSetupUI provides a form for configuring a new game. Engine strength
// and think time are not on the form; they live in the config file.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(playerColor game.Color, enginePath string)
	onCancel func()
	onColors func()

	playerColor game.Color
	enginePath  string
}

// NewGameSetup creates a new game setup form.
func NewGameSetup(defaultEnginePath string, onStart func(game.Color, string), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:     onStart,
		onCancel:    onCancel,
		onColors:    onColors,
		playerColor: game.White,
		enginePath:  defaultEnginePath,
	}

	colors := []string{"White (play first)", "Black (play second)"}

	form := tview.NewForm()

	form.AddDropDown("Your Color", colors, 0, func(option string, index int) {
		setup.playerColor = game.White
		if index == 1 {
			setup.playerColor = game.Black
		}
	})

	form.AddInputField("Engine Path", defaultEnginePath, 40, nil, func(text string) {
		setup.enginePath = strings.TrimSpace(text)
	})

	form.AddButton("Start Game", func() {
		onStart(setup.playerColor, setup.enginePath)
	})

	form.AddButton("Board Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
