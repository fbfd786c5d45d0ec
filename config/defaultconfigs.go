package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		UseLetters: false,
		Colors: ConfigColors{
			LightSquare:   180, // Tan
			DarkSquare:    94,  // Saddle brown
			WhitePiece:    255, // Bright white
			BlackPiece:    232, // Near black
			SelectedBG:    220, // Yellow
			DestinationBG: 120, // Light green
			CursorBG:      4,   // Blue
			LastMoveBG:    2,   // Green
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineSettings{
			Path:       "/usr/games/stockfish",
			SkillLevel: 10,
			Threads:    4,
			HashMB:     128,
			MoveTimeMs: 2000,
		},
	}
}
