// Package ui specifies custom controls for tview to assist in playing chess
// in the terminal.
package ui

import (
	"fmt"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/debasish-raychawdhuri/chess-terminal/config"
	"github.com/debasish-raychawdhuri/chess-terminal/engine"
	"github.com/debasish-raychawdhuri/chess-terminal/game"
)

// tickRate is how often the board drains the engine reply channel.
const tickRate = 250 * time.Millisecond

// cellWidth is the number of screen columns per board square.
const cellWidth = 3

// leftPad is the column offset of the board, leaving room for rank labels.
const leftPad = 3

var whiteGlyphs = map[dragontoothmg.Piece]rune{
	dragontoothmg.Pawn:   '♟',
	dragontoothmg.Knight: '♞',
	dragontoothmg.Bishop: '♝',
	dragontoothmg.Rook:   '♜',
	dragontoothmg.Queen:  '♛',
	dragontoothmg.King:   '♚',
}

var whiteLetters = map[dragontoothmg.Piece]rune{
	dragontoothmg.Pawn:   'P',
	dragontoothmg.Knight: 'N',
	dragontoothmg.Bishop: 'B',
	dragontoothmg.Rook:   'R',
	dragontoothmg.Queen:  'Q',
	dragontoothmg.King:   'K',
}

var blackLetters = map[dragontoothmg.Piece]rune{
	dragontoothmg.Pawn:   'p',
	dragontoothmg.Knight: 'n',
	dragontoothmg.Bishop: 'b',
	dragontoothmg.Rook:   'r',
	dragontoothmg.Queen:  'q',
	dragontoothmg.King:   'k',
}

// MoveEntry is one move in the side panel history.
type MoveEntry struct {
	Color game.Color
	Text  string
}

// ChessBoardUI renders the board and orchestrates the game: it forwards
// chosen squares to the game state machine, triggers the engine when the
// turn passes to it, and drains engine replies on a fixed tick. All game
// mutation happens on the tview event goroutine; the ticker only queues
// work there.
type ChessBoardUI struct {
	Box         *tview.Box
	hint        *tview.TextView
	cfg         *config.Config
	app         *tview.Application
	game        *game.Game
	eng         engine.MoveFinder
	playerColor game.Color
	finished    bool
	keys        SquareInput
	curFile     int // cursor square, -1 when hidden
	curRank     int
	moveHistory []MoveEntry
	stopTick    chan struct{}
	infoPanel   *GameInfoPanel
	focusMode   bool
	originX     int // screen position of the a-file column, set while drawing
	originY     int // screen position of the 8th-rank row
}

// NewChessBoard creates the board widget. No game is active until
// ConnectEngine.
func NewChessBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *ChessBoardUI {
	board := &ChessBoardUI{
		Box:     tview.NewBox(),
		hint:    hint,
		app:     app,
		game:    game.NewGame(),
		curFile: -1,
		curRank: -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		board.originX = x + leftPad
		board.originY = y
		for rank := 7; rank >= 0; rank-- {
			row := y + (7 - rank)
			for file := 0; file < 8; file++ {
				sq := game.Square{File: file, Rank: rank}
				board.drawSquare(screen, board.originX+file*cellWidth, row, sq)
			}
		}
		board.drawCoordinates(screen, x, y)
		return x, y, leftPad + 8*cellWidth + 1, 8 + 2
	})
	board.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}
		mx, my := event.Position()
		file := (mx - board.originX) / cellWidth
		rank := 7 - (my - board.originY)
		sq, err := game.NewSquare(file, rank)
		if err != nil {
			return action, event
		}
		board.curFile, board.curRank = file, rank
		board.ChooseSquare(sq)
		return action, nil
	})
	return board
}

// SetConfig applies a color theme.
func (c *ChessBoardUI) SetConfig(cfg *config.Config) {
	c.cfg = cfg
}

// Game exposes the game state for the info panel.
func (c *ChessBoardUI) Game() *game.Game {
	return c.game
}

// ConnectEngine starts the engine process and begins a fresh game. The
// human plays playerColor; when that is black the engine is asked to move
// first.
func (c *ChessBoardUI) ConnectEngine(e engine.MoveFinder, playerColor game.Color) error {
	if err := e.Start(); err != nil {
		// A handshake failure can leave the process spawned; Stop reaps it.
		e.Stop()
		return err
	}
	c.eng = e
	c.playerColor = playerColor
	c.game = game.NewGame()
	c.finished = false
	c.moveHistory = c.moveHistory[:0]
	c.keys.Reset()
	c.curFile, c.curRank = -1, -1
	c.game.SetMessage(fmt.Sprintf("New game. You play as %s.", playerColor))

	if playerColor == game.Black {
		c.requestEngineMove()
	}
	c.startTicker()
	c.refreshHint()

	// Watch for the engine process exiting underneath us. The c.eng
	// comparison keeps a watcher from a previous game from firing after a
	// restart.
	go func(e engine.MoveFinder) {
		<-e.Done()
		c.app.QueueUpdateDraw(func() {
			if c.eng == e && !c.finished {
				c.EngineGone()
			}
		})
	}(e)
	return nil
}

// Close stops the tick loop and shuts the engine down. The engine process
// is released even if it already died.
func (c *ChessBoardUI) Close() {
	if c.stopTick != nil {
		close(c.stopTick)
		c.stopTick = nil
	}
	if c.eng != nil {
		c.eng.Stop()
		c.eng = nil
	}
}

// startTicker runs the poll loop. Each tick queues a step onto the tview
// event goroutine, so engine replies are applied between input events and
// never concurrently with them.
func (c *ChessBoardUI) startTicker() {
	if c.stopTick != nil {
		close(c.stopTick)
	}
	stop := make(chan struct{})
	c.stopTick = stop
	go func() {
		ticker := time.NewTicker(tickRate)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.app.QueueUpdateDraw(func() { c.step() })
			}
		}
	}()
}

// step drains at most one engine reply and applies it.
func (c *ChessBoardUI) step() {
	if c.eng == nil || c.finished {
		return
	}
	notation, ok := c.eng.PollMove()
	if !ok {
		return
	}
	// A reply that matches no legal move is dropped on the floor; the
	// game keeps waiting for input or another reply.
	if c.game.ApplyEngineMove(notation) {
		if text, ok := c.game.LastMoveText(); ok {
			c.moveHistory = append(c.moveHistory, MoveEntry{Color: c.playerColor.Other(), Text: text})
		}
		c.checkGameOver()
	}
	c.refreshHint()
}

// ChooseSquare feeds one chosen square to the game. When this completes a
// human move it checks for game over and hands the turn to the engine.
func (c *ChessBoardUI) ChooseSquare(sq game.Square) {
	if c.eng == nil || c.finished {
		return
	}
	if c.game.IsThinking() || c.game.SideToMove() != c.playerColor {
		return
	}
	made := c.game.SelectSquare(sq)
	if made {
		if text, ok := c.game.LastMoveText(); ok {
			c.moveHistory = append(c.moveHistory, MoveEntry{Color: c.playerColor, Text: text})
		}
		if !c.checkGameOver() {
			c.requestEngineMove()
		}
	}
	c.refreshHint()
}

// HandleKey processes a letter or digit key for two-key square entry.
// It reports whether the key was consumed.
func (c *ChessBoardUI) HandleKey(r rune) bool {
	if c.eng == nil || c.finished {
		return false
	}
	_, hadPending := c.keys.Pending()
	if !hadPending && (r < 'a' || r > 'h') {
		return false
	}
	sq, done := c.keys.Feed(r)
	if done {
		c.curFile, c.curRank = sq.File, sq.Rank
		c.ChooseSquare(sq)
		return true
	}
	c.refreshHint()
	return true
}

// MoveCursor shifts the cursor square by (dFile, dRank).
func (c *ChessBoardUI) MoveCursor(dFile, dRank int) {
	if c.finished {
		return
	}
	if c.curFile < 0 || c.curRank < 0 {
		// Start from the king-side center, where most games begin.
		c.curFile, c.curRank = 4, 1
		if c.playerColor == game.Black {
			c.curRank = 6
		}
		return
	}
	if sq, err := game.NewSquare(c.curFile+dFile, c.curRank+dRank); err == nil {
		c.curFile, c.curRank = sq.File, sq.Rank
	}
}

// CursorSelect chooses the square under the cursor.
func (c *ChessBoardUI) CursorSelect() {
	sq, err := game.NewSquare(c.curFile, c.curRank)
	if err != nil {
		return
	}
	c.ChooseSquare(sq)
}

// ResetSelection clears the current selection and any pending key input.
func (c *ChessBoardUI) ResetSelection() {
	c.keys.Reset()
	c.curFile, c.curRank = -1, -1
	c.game.Deselect()
	c.refreshHint()
}

// HasSelection reports whether a square is selected or a file letter is
// pending.
func (c *ChessBoardUI) HasSelection() bool {
	if _, ok := c.game.SelectedSquare(); ok {
		return true
	}
	_, pending := c.keys.Pending()
	return pending
}

// IsFinished returns true if the game is over.
func (c *ChessBoardUI) IsFinished() bool {
	return c.finished
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (c *ChessBoardUI) ToggleFocusMode() bool {
	c.focusMode = !c.focusMode
	c.refreshHint()
	return c.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (c *ChessBoardUI) SetFocusMode(enabled bool) {
	c.focusMode = enabled
	c.refreshHint()
}

func (c *ChessBoardUI) requestEngineMove() {
	c.game.SetThinking(true)
	if err := c.eng.RequestMove(c.game.FEN()); err != nil {
		// The session is desynchronized; only a restart helps.
		c.finished = true
		c.game.SetThinking(false)
		c.game.SetMessage("Engine error: " + err.Error())
	}
}

func (c *ChessBoardUI) checkGameOver() bool {
	result, over := c.game.Result()
	if !over {
		return false
	}
	c.finished = true
	c.game.SetThinking(false)
	c.game.SetMessage("Game over: " + result.String())
	return true
}

// EngineGone marks the session dead after the engine process disappeared.
func (c *ChessBoardUI) EngineGone() {
	if c.finished {
		return
	}
	c.finished = true
	c.game.SetThinking(false)
	c.game.SetMessage("Engine process exited; game cannot continue.")
	c.refreshHint()
}

func (c *ChessBoardUI) drawSquare(screen tcell.Screen, x, y int, sq game.Square) {
	colors := c.cfg.Theme.Colors

	bg := tcell.PaletteColor(colors.DarkSquare)
	if (sq.File+sq.Rank)%2 == 1 {
		bg = tcell.PaletteColor(colors.LightSquare)
	}
	if from, to, ok := c.game.LastMove(); ok && (sq == from || sq == to) {
		bg = tcell.PaletteColor(colors.LastMoveBG)
	}
	if c.game.HasDestination(sq) {
		bg = tcell.PaletteColor(colors.DestinationBG)
	}
	if sel, ok := c.game.SelectedSquare(); ok && sel == sq {
		bg = tcell.PaletteColor(colors.SelectedBG)
	}
	if sq.File == c.curFile && sq.Rank == c.curRank {
		bg = tcell.PaletteColor(colors.CursorBG)
	}

	piece, color, occupied := c.game.PieceAt(sq)
	cell := ' '
	fg := tcell.PaletteColor(colors.WhitePiece)
	if occupied {
		if c.cfg.Theme.UseLetters {
			if color == game.White {
				cell = whiteLetters[piece]
			} else {
				cell = blackLetters[piece]
			}
		} else {
			// The filled glyph set reads best on colored squares;
			// side is conveyed by foreground color alone.
			cell = whiteGlyphs[piece]
		}
		if color == game.Black {
			fg = tcell.PaletteColor(colors.BlackPiece)
		}
	}

	style := tcell.StyleDefault.Background(bg).Foreground(fg)
	screen.SetContent(x, y, ' ', nil, style)
	screen.SetContent(x+1, y, cell, nil, style)
	screen.SetContent(x+2, y, ' ', nil, style)
}

func (c *ChessBoardUI) drawCoordinates(screen tcell.Screen, x, y int) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(tcell.PaletteColor(c.cfg.Theme.Colors.CursorBG))

	for file := 0; file < 8; file++ {
		s := style
		if file == c.curFile {
			s = highlight
		}
		screen.SetContent(x+leftPad+file*cellWidth+1, y+8, rune('a'+file), nil, s)
	}
	for rank := 0; rank < 8; rank++ {
		s := style
		if rank == c.curRank {
			s = highlight
		}
		screen.SetContent(x+1, y+(7-rank), rune('1'+rank), nil, s)
	}
}

func (c *ChessBoardUI) refreshHint() {
	if c.infoPanel != nil {
		c.infoPanel.Refresh()
	}

	if c.focusMode {
		c.hint.SetText("  ^F to toggle")
		return
	}

	var turnLine string
	switch {
	case c.finished:
		turnLine = "  " + c.game.Message()
	case c.game.IsThinking():
		turnLine = "  ◌ Engine is thinking..."
	case c.game.SideToMove() == c.playerColor:
		king := "♔"
		if c.playerColor == game.Black {
			king = "♚"
		}
		turnLine = fmt.Sprintf("  %s Your move (%s)", king, c.playerColor)
		if pending, ok := c.keys.Pending(); ok {
			turnLine += fmt.Sprintf("  [%c_]", pending)
		}
	default:
		turnLine = "  ◌ Waiting for engine..."
	}

	controlsLine := "  ↑↓←→ move  ⏎ play  a-h 1-8 type square  ^F focus  q quit"
	if c.finished {
		controlsLine = "  q · return to menu"
	}
	c.hint.SetText(turnLine + "\n" + controlsLine)
}
