// kataview is a terminal client for reviewing Go positions against a
// KataGo analysis server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"kataview/board"
	"kataview/config"
	"kataview/engine"
	"kataview/event"
	"kataview/types"
	"kataview/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagServer    = flag.String("server", "", "Analysis server websocket URL")
	flagBoardSize = flag.Int("boardsize", 0, "Board size (9, 13, or 19)")
	flagKomi      = flag.Float64("komi", -1, "Komi value")
	flagVisits    = flag.Int("visits", 0, "Max visits per analysis request")
	flagColor     = flag.String("color", "", "Side to move first (black or white)")
	flagOwnership = flag.Bool("ownership", true, "Request ownership estimates")
	flagImage     = flag.String("image", "", "Board photo to recognize as the starting position")
	flagVersion   = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.GoBoardUI
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("kataview %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		panic(err)
	}
	applyFlags(cfg)

	log, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "log setup failed: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	settings := engine.Settings{
		ServerURL:        cfg.Engine.ServerURL,
		BoardSize:        cfg.Engine.DefaultBoardSize,
		Komi:             cfg.Engine.DefaultKomi,
		MaxVisits:        cfg.Engine.MaxVisits,
		QuickVisits:      cfg.Engine.QuickVisits,
		IncludeOwnership: cfg.Engine.IncludeOwnership,
	}

	// History browsing gets a quick low-visit evaluation; committed moves
	// get the full budget. The bus tells the two apart.
	bus := event.NewBus()
	quickBudget := false
	bus.Subscribe(func(e event.Event) {
		switch ev := e.(type) {
		case event.MoveCommitted:
			quickBudget = false
			log.Debugw("move committed", "index", ev.Index)
		case event.NavigationChanged:
			quickBudget = true
			log.Debugw("navigation", "view", ev.ViewIndex, "length", ev.Length)
		}
	})

	game, err := newGame(settings, bus, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬡ kataview ")

	gameHint := tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)

	infoPanel := ui.NewAnalysisPanel(settings.Komi)
	gameBoard = ui.NewGoBoard(cfg, game, gameHint)
	gameFrame := ui.CreateGameLayout(gameBoard, infoPanel, gameHint)

	browser := ui.NewCandidateBrowser(
		func() {
			rootPage.SwitchToPage("gameview")
			app.SetFocus(gameBoard.Box)
		},
		func(p types.Point) {
			gameBoard.PlayMove(p.X, p.Y)
		},
	)

	// Engine wiring. The client hands back only responses whose position
	// signature still matches the displayed board; anything else is
	// dropped before it reaches the UI.
	client := engine.NewClient(settings, game.Signature, bus, log)
	var lastAnalysis *engine.Analysis
	client.OnAnalysis(func(a *engine.Analysis) {
		a.Sanitize(game.Size())
		app.QueueUpdateDraw(func() {
			lastAnalysis = a
			gameBoard.SetAnalysis(a)
		})
	})

	requestAnalysis := func() {
		lastAnalysis = nil
		visits := 0
		if quickBudget {
			visits = settings.QuickVisits
		}
		if err := client.Analyze(engine.BuildQuery(game, settings, visits)); err != nil {
			log.Warnw("analysis request failed", "error", err)
		}
	}
	gameBoard.OnPositionChanged = requestAnalysis

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = client.Connect(ctx)
	cancel()
	if err != nil {
		log.Warnw("analysis server unreachable, board-only mode",
			"server", settings.ServerURL, "error", err)
	} else {
		defer client.Close()
		requestAnalysis()
	}

	gameBoard.Box.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			if sel := gameBoard.SelectedTile(); sel != nil {
				gameBoard.PlayMove(sel.X, sel.Y)
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case 'p':
				gameBoard.Pass()
			case 'u':
				gameBoard.Undo()
			case '[':
				gameBoard.Navigate(-1)
			case ']':
				gameBoard.Navigate(1)
			case 'o':
				gameBoard.ToggleOwnership()
			case 'b':
				gameBoard.PlayBest()
			case 'v':
				browser.SetPosition(game, lastAnalysis)
				rootPage.SwitchToPage("variations")
			case 'f':
				gameBoard.ToggleFocusMode()
			case 'q':
				if gameBoard.SelectedTile() != nil {
					gameBoard.ResetSelection()
				} else {
					app.Stop()
				}
				return nil
			}
		}
		return ev
	})

	rootPage.AddPage("gameview", gameFrame, true, true)
	rootPage.AddPage("variations", browser.Flex(), true, false)

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
}

// applyFlags overlays command-line flags onto the loaded config.
func applyFlags(c *config.Config) {
	if *flagServer != "" {
		c.Engine.ServerURL = *flagServer
	}
	if *flagBoardSize == 9 || *flagBoardSize == 13 || *flagBoardSize == 19 {
		c.Engine.DefaultBoardSize = *flagBoardSize
	}
	if *flagKomi >= 0 {
		c.Engine.DefaultKomi = *flagKomi
	}
	if *flagVisits > 0 {
		c.Engine.MaxVisits = *flagVisits
	}
	c.Engine.IncludeOwnership = *flagOwnership
}

// newGame builds the starting position: an empty board, or one seeded
// from a recognized photo when -image is given.
func newGame(s engine.Settings, bus *event.Bus, log *zap.SugaredLogger) (*board.Game, error) {
	first := types.Black
	if *flagColor == "white" || *flagColor == "w" {
		first = types.White
	}

	if *flagImage == "" {
		if first == types.White {
			return board.NewGameFromStones(s.BoardSize, nil, first, bus), nil
		}
		return board.NewGame(s.BoardSize, bus), nil
	}

	data, err := os.ReadFile(*flagImage)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := engine.Recognize(ctx, cfg.Engine.HTTPBaseURL, data, s.BoardSize, http.DefaultClient)
	if err != nil {
		return nil, fmt.Errorf("board recognition: %w", err)
	}
	stones, next := res.InitialStones()
	log.Infow("board recognized", "stones", len(stones), "confidence", res.Confidence)
	return board.NewGameFromStones(s.BoardSize, stones, next, bus), nil
}

// newLogger writes structured logs to the XDG state file so they never
// corrupt the terminal UI.
func newLogger() (*zap.SugaredLogger, error) {
	path, err := config.LogFile()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
