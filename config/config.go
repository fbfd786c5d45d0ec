package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
)

var (
	cfgFile = "chess-terminal/config.json"

	validate = validator.New()
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare   int `json:"light_square" validate:"min=0,max=255"`
	DarkSquare    int `json:"dark_square" validate:"min=0,max=255"`
	WhitePiece    int `json:"white_piece" validate:"min=0,max=255"`
	BlackPiece    int `json:"black_piece" validate:"min=0,max=255"`
	SelectedBG    int `json:"selected_bg" validate:"min=0,max=255"`
	DestinationBG int `json:"destination_bg" validate:"min=0,max=255"`
	CursorBG      int `json:"cursor_bg" validate:"min=0,max=255"`
	LastMoveBG    int `json:"last_move_bg" validate:"min=0,max=255"`
}

type Theme struct {
	// UseLetters draws pieces as latin letters instead of chess glyphs,
	// for terminals whose fonts render the glyphs poorly.
	UseLetters bool         `json:"use_letters"`
	Colors     ConfigColors `json:"colors"`
}

// EngineSettings holds everything about the UCI engine process. Strength
// and timing are deliberately config-file-only; there is no in-app UI for
// them.
type EngineSettings struct {
	Path       string `json:"path" validate:"required"`
	SkillLevel int    `json:"skill_level" validate:"min=0,max=20"`
	Threads    int    `json:"threads" validate:"min=1,max=64"`
	HashMB     int    `json:"hash_mb" validate:"min=1,max=8192"`
	MoveTimeMs int    `json:"move_time_ms" validate:"min=100,max=600000"`
}

type Config struct {
	Theme  Theme          `json:"theme"`
	Engine EngineSettings `json:"engine"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		readCfgFile(absPath, &config)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &InvalidConfig{err: err.Error()}
	}
	return nil
}

func (c *Config) Save() {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		panic(err)
	}
	saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		panic(err)
	}
	err = os.WriteFile(filePath, jsonData, perm)
	if err != nil {
		panic(err)
	}
}

func readCfgFile(filePath string, a interface{}) {
	configReader, err := os.ReadFile(filePath)
	if err == nil {
		err = json.Unmarshal(configReader, &a)
		if err != nil {
			panic(err)
		}
	}
}
