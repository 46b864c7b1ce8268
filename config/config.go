package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "kataview/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BlackColor        int `json:"black"`
	WhiteColor        int `json:"white"`
	LineColor         int `json:"line"`
	CursorColorBG     int `json:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
}

type ConfigSymbols struct {
	BlackStone rune `json:"black"`
	WhiteStone rune `json:"white"`
	Candidate  rune `json:"candidate"`
	Ownership  rune `json:"ownership"`
}

type Theme struct {
	DrawCursorBackground bool          `json:"draw_cursor_bg"`
	FullWidthLetters     bool          `json:"fullwidth_letters"`
	Colors               ConfigColors  `json:"colors"`
	Symbols              ConfigSymbols `json:"symbols"`
}

// EngineConfig holds the analysis-server settings.
type EngineConfig struct {
	ServerURL        string  `json:"server_url"`
	HTTPBaseURL      string  `json:"http_base_url"` // recognition endpoint base
	DefaultBoardSize int     `json:"default_board_size"`
	DefaultKomi      float64 `json:"default_komi"`
	MaxVisits        int     `json:"max_visits"`
	QuickVisits      int     `json:"quick_visits"`
	IncludeOwnership bool    `json:"include_ownership"`
}

type Config struct {
	Theme  Theme        `json:"theme"`
	Engine EngineConfig `json:"engine"`
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
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.Candidate} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	switch c.Engine.DefaultBoardSize {
	case 9, 13, 19:
	default:
		return &InvalidConfig{"board size must be 9, 13 or 19"}
	}
	if c.Engine.MaxVisits <= 0 {
		return &InvalidConfig{"max_visits must be positive"}
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

// LogFile returns the path for the session log, creating parent
// directories as needed.
func LogFile() (string, error) {
	return xdg.StateFile("kataview/kataview.log")
}
