// chess-terminal is a terminal application to play chess against a local
// UCI engine such as Stockfish.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/sync/errgroup"

	"github.com/debasish-raychawdhuri/chess-terminal/config"
	"github.com/debasish-raychawdhuri/chess-terminal/engine"
	"github.com/debasish-raychawdhuri/chess-terminal/engine/uci"
	"github.com/debasish-raychawdhuri/chess-terminal/game"
	"github.com/debasish-raychawdhuri/chess-terminal/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagEngine     = flag.String("engine", "", "Path to the UCI engine binary")
	flagColor      = flag.String("color", "", "Player color (white or black)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
	flagUpdate     = flag.Bool("update", false, "Update to the latest version")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.ChessBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config

func main() {
	flag.Parse()

	// Handle --version
	if *flagVersion {
		latest, err := getLatestVersion()
		if err != nil {
			fmt.Printf("chess-terminal %s\n", Version)
		} else if latest != Version && Version != "dev" {
			fmt.Printf("chess-terminal %s (update available: %s)\n", Version, latest)
			fmt.Println("Run 'chess-terminal --update' to update")
		} else {
			fmt.Printf("chess-terminal %s (latest)\n", Version)
		}
		return
	}

	// Handle --update
	if *flagUpdate {
		if err := selfUpdate(); err != nil {
			fmt.Printf("Update failed: %s\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Check that the engine binary is available
	if err := checkEngine(); err != nil {
		fmt.Println("Error: UCI engine not found.")
		fmt.Println("Please install Stockfish:")
		fmt.Println("  macOS:  brew install stockfish")
		fmt.Println("  Ubuntu: sudo apt install stockfish")
		fmt.Println("  Fedora: sudo dnf install stockfish")
		fmt.Println("or point the engine path at another UCI engine,")
		fmt.Println("via the config file or the -engine flag.")
		return
	}

	quickStart := *flagQuickStart || *flagColor != "" || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ chess-terminal ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameBoard = ui.NewChessBoard(app, cfg, gameHint)

	// Create game layout with board and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			r := event.Rune()
			if gameBoard.HandleKey(r) {
				return nil
			}
			if r == 'q' {
				if gameBoard.HasSelection() {
					gameBoard.ResetSelection()
				} else {
					gameBoard.Close()
					rootPage.SwitchToPage("setup")
				}
				return nil
			}
			return event
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveCursor(0, 1)
		case tcell.KeyDown:
			gameBoard.MoveCursor(0, -1)
		case tcell.KeyLeft:
			gameBoard.MoveCursor(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveCursor(1, 0)
		case tcell.KeyEnter:
			gameBoard.CursorSelect()
		case tcell.KeyEsc:
			gameBoard.ResetSelection()
		case tcell.KeyCtrlF:
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(
		enginePath(),
		func(playerColor game.Color, path string) {
			startGame(playerColor, path)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", setupUI.Form(), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	// Quick start if flags provided
	if quickStart {
		color := game.White
		if *flagColor == "black" || *flagColor == "b" {
			color = game.Black
		}
		startGame(color, enginePath())
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return app.SetRoot(rootPage, true).EnableMouse(true).Run()
	})
	g.Go(func() error {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigc)
		select {
		case <-ctx.Done():
			return nil
		case <-sigc:
			app.Stop()
			return nil
		}
	})
	err = g.Wait()

	// Release the engine process on the way out, whatever got us here.
	gameBoard.Close()

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// startGame starts a game against the engine at path.
func startGame(playerColor game.Color, path string) {
	ecfg := engine.Config{
		Path:       path,
		SkillLevel: cfg.Engine.SkillLevel,
		Threads:    cfg.Engine.Threads,
		HashMB:     cfg.Engine.HashMB,
		MoveTimeMs: cfg.Engine.MoveTimeMs,
	}

	eng := uci.New(ecfg)
	if err := gameBoard.ConnectEngine(eng, playerColor); err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start engine:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
}

// enginePath resolves the engine binary path from flag or config.
func enginePath() string {
	if *flagEngine != "" {
		return *flagEngine
	}
	return cfg.Engine.Path
}

// checkEngine verifies that the engine binary is accessible.
func checkEngine() error {
	path := enginePath()
	if path == "" {
		path = "stockfish"
	}
	_, err := exec.LookPath(path)
	return err
}

// getLatestVersion fetches the latest release version from GitHub.
func getLatestVersion() (string, error) {
	resp, err := http.Get("https://api.github.com/repos/debasish-raychawdhuri/chess-terminal/releases/latest")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return release.TagName, nil
}

// selfUpdate downloads and installs the latest version.
func selfUpdate() error {
	fmt.Println("Checking for updates...")

	latest, err := getLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if latest == Version {
		fmt.Printf("Already at latest version (%s)\n", Version)
		return nil
	}

	fmt.Printf("Updating from %s to %s...\n", Version, latest)

	goos := runtime.GOOS
	goarch := runtime.GOARCH

	ext := ""
	if goos == "windows" {
		ext = ".exe"
	}

	filename := fmt.Sprintf("chess-terminal_%s_%s%s", goos, goarch, ext)
	url := fmt.Sprintf("https://github.com/debasish-raychawdhuri/chess-terminal/releases/download/%s/%s", latest, filename)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	execPath, err = resolveSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "chess-terminal-update-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, err = io.Copy(tmpFile, resp.Body)
	tmpFile.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write update: %w", err)
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, execPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace binary: %w", err)
	}

	fmt.Printf("Updated to %s\n", latest)
	return nil
}

// resolveSymlinks resolves the final path of the executable.
func resolveSymlinks(path string) (string, error) {
	for {
		info, err := os.Lstat(path)
		if err != nil {
			return path, err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}
		link, err := os.Readlink(path)
		if err != nil {
			return path, err
		}
		if !strings.HasPrefix(link, "/") {
			// Relative symlink
			path = path[:strings.LastIndex(path, "/")+1] + link
		} else {
			path = link
		}
	}
}
