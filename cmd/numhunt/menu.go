package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numhunt/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scene picker menu",
	Long: `Start numhunt in interactive menu mode.

Pick a scene, a narration language and a pace, then hunt.
After a game you return to the menu to play again.

Controls:
  Up/Down/j/k  - Choose scene
  Left/Right   - Change pace
  L            - Switch language
  Enter/Space  - Play
  Tab          - Scores
  Q            - Quit

Examples:
  numhunt menu
  numhunt menu --fps 30
  numhunt menu --db ./numhunt.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{LogToFile: true, OpenStore: true})
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := runtimeConfig()
	language, pace := a.language, a.pace

	for {
		menuResult, err := tui.RunMenu(cfg, language, pace)
		if err != nil {
			return err
		}

		cfg = menuResult.Config
		language, pace = menuResult.Launch.Language, menuResult.Launch.Pace

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(a.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := a.newGame(menuResult.Launch)
		if err != nil {
			a.logger.Error("cannot start game", "scene", menuResult.Launch.Scene, "err", err)
			continue
		}

		// A fixed --seed replays the same hunt; otherwise every game differs.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		quit, err := tui.Run(game, cfg)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}
