// numhunt is a number-matching hunt played in the terminal.
//
// Usage:
//
//	numhunt list               - List available scenes
//	numhunt play [scene]       - Play a scene
//	numhunt menu               - Pick scene, language and pace interactively
//	numhunt serve              - Start SSH server for remote play
//	numhunt scores [scene]     - Show best hunts and statistics
//	numhunt simulate [scene]   - Run headless games with an auto-player
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.numhunt/numhunt.db)
//	--config <path>     - Game config YAML
//	--narration <path>  - Narration scripts YAML
//	--lang <code>       - Narration language (en, ja)
//	--pace <preset>     - relaxed, normal or brisk
//	--log-level <lvl>   - debug, info, warn, error
//
// Every global flag falls back to its NUMHUNT_* environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numhunt/internal/config"

	// Import scenes to register them
	_ "github.com/vovakirdan/numhunt/internal/scenes/room"
	_ "github.com/vovakirdan/numhunt/internal/scenes/tabletop"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagNarration string
	flagLang      string
	flagPace      string
	flagLogLevel  string

	// env holds the NUMHUNT_* settings; serve reads its address from it.
	env config.Env
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "numhunt",
	Short: "Number Hunt - find the narrated number among the objects around you",
	Long: `Number Hunt narrates a number, places numbered objects on the surfaces
a scene reveals, and waits for you to touch the right one. Ten rounds, ten
numbers, in English or Japanese.

Available commands:
  list      - Show all scenes
  play      - Play a scene directly
  menu      - Interactive scene picker
  serve     - Start SSH server for remote play
  scores    - View best hunts and statistics
  simulate  - Run headless games with an auto-player

Examples:
  numhunt list
  numhunt play tabletop
  numhunt play room --lang ja --pace relaxed
  numhunt serve --ssh :2222
  numhunt simulate --games 20 --seed 42`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.numhunt/numhunt.db", "Path to results database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagNarration, "narration", "", "Path to custom narration YAML")
	pf.StringVar(&flagLang, "lang", "en", "Narration language: en, ja")
	pf.StringVar(&flagPace, "pace", "normal", "Pace preset: relaxed, normal, brisk")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// applyEnv fills every global flag the user did not set from the environment.
func applyEnv(cmd *cobra.Command, _ []string) error {
	var err error
	if env, err = config.LoadEnv(); err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if !changed("seed") && env.Seed != 0 {
		flagSeed = env.Seed
	}
	if !changed("db") {
		flagDBPath = env.DBPath
	}
	if !changed("config") {
		flagConfig = env.ConfigPath
	}
	if !changed("narration") {
		flagNarration = env.NarrationPath
	}
	if !changed("lang") {
		flagLang = env.Lang
	}
	if !changed("pace") {
		flagPace = env.Pace
	}
	if !changed("log-level") {
		flagLogLevel = env.LogLevel
	}
	return nil
}
