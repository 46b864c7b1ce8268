package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground: true,
		FullWidthLetters:     false,
		Colors: ConfigColors{
			BoardColor:        180,
			BlackColor:        232,
			WhiteColor:        255,
			LineColor:         94,
			CursorColorBG:     4,
			LastPlayedColorBG: 2,
		},
		Symbols: ConfigSymbols{
			BlackStone: '●',
			WhiteStone: '●',
			Candidate:  '◆',
			Ownership:  '▪',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineConfig{
			ServerURL:        "ws://localhost:5000/analyze",
			HTTPBaseURL:      "http://localhost:5000",
			DefaultBoardSize: 19,
			DefaultKomi:      7.5,
			MaxVisits:        3000,
			QuickVisits:      100,
			IncludeOwnership: true,
		},
	}
}
