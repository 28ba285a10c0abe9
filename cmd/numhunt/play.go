package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/numhunt/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Play a scene",
	Long: `Start a hunt in the specified scene (default: tabletop).

Controls:
  Enter/Space  - Start
  1-9, 0       - Touch the object carrying that number (0 is 10)
  L            - Switch narration language
  P            - Pause
  R            - Play again (after the last round)
  Esc/B        - Leave (before start, paused or finished)
  Ctrl+S       - Save a screenshot to ~/.numhunt/screenshots
  Q/Ctrl+C     - Quit

Pace options:
  relaxed  - Waits 1.5x longer
  normal   - Default timing
  brisk    - Waits halved

Examples:
  numhunt play
  numhunt play room --lang ja
  numhunt play tabletop --pace relaxed --seed 42
  numhunt play --config ./my-game.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	sceneID, err := sceneArg(args)
	if err != nil {
		return err
	}

	a, err := newApp(appOptions{LogToFile: true, OpenStore: true})
	if err != nil {
		return err
	}
	defer a.Close()

	game, err := a.newGame(tui.Launch{Scene: sceneID, Language: a.language, Pace: a.pace})
	if err != nil {
		return err
	}

	_, err = tui.Run(game, runtimeConfig())
	return err
}
