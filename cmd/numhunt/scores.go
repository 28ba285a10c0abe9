package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numhunt/internal/registry"
	"github.com/vovakirdan/numhunt/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresGoals bool
	flagRecent      bool
	flagSessionID   string
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [scene]",
	Short: "Show best hunts and statistics",
	Long: `Display the best hunts, for one scene or for all of them.

Finished hunts rank first, then by score, fewest misses and fastest time.
Unfinished (abandoned) hunts are marked with *.

Examples:
  numhunt scores
  numhunt scores tabletop --limit 20
  numhunt scores --stats
  numhunt scores --goals
  numhunt scores --recent
  numhunt scores --session 3f2c...
  numhunt scores room --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of hunts to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-scene statistics")
	scoresCmd.Flags().BoolVar(&flagScoresGoals, "goals", false, "Show per-number statistics")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest hunts instead of the best")
	scoresCmd.Flags().StringVar(&flagSessionID, "session", "", "Show the rounds of one hunt")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the results of the given scene")
}

func runScores(_ *cobra.Command, args []string) error {
	scene := ""
	if len(args) > 0 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown scene %q; run 'numhunt list' to see available scenes", args[0])
		}
		scene = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if scene == "" {
			return fmt.Errorf("--clear needs a scene")
		}
		if err := store.ClearScene(scene); err != nil {
			return err
		}
		fmt.Printf("Cleared results for %s.\n", scene)
		return nil
	case flagSessionID != "":
		return printSession(store, flagSessionID)
	case flagScoresStats:
		return printSceneStats(store)
	case flagScoresGoals:
		return printGoalStats(store)
	case flagRecent:
		return printRecent(store)
	}
	return printTop(store, scene)
}

func printTop(store *storage.Store, scene string) error {
	sessions, err := store.TopSessions(scene, flagScoresLimit)
	if err != nil {
		return err
	}

	title := "all scenes"
	if scene != "" {
		title = scene
	}
	fmt.Printf("Best Hunts - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No hunts recorded yet.")
		fmt.Println()
		fmt.Println("Play 'numhunt play' to set the first record!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-4s  %-10s  %s\n", "Rank", "Score", "Misses", "Time", "Lang", "Scene", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-4s  %-10s  %s\n", "----", "-----", "------", "----", "----", "-----", "----")

	for i, e := range sessions {
		score := fmt.Sprintf("%d", e.Score)
		if !e.Finished {
			score += "*"
		}
		fmt.Printf("  %-4d  %-6s  %-6d  %-6s  %-4s  %-10s  %s\n",
			i+1, score, e.Mistakes, clock(e.Duration), e.Language, e.Scene, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecent(store *storage.Store) error {
	sessions, err := store.RecentSessions(flagScoresLimit)
	if err != nil {
		return err
	}
	fmt.Println("Latest Hunts")
	fmt.Println()
	if len(sessions) == 0 {
		fmt.Println("No hunts recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-6s  %-6s  %-6s  %s
", "Date", "Scene", "Score", "Misses", "Time", "Session")
	for _, e := range sessions {
		score := fmt.Sprintf("%d", e.Score)
		if !e.Finished {
			score += "*"
		}
		fmt.Printf("  %-16s  %-10s  %-6s  %-6d  %-6s  %s
",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Scene, score, e.Mistakes, clock(e.Duration), e.SessionID)
	}
	return nil
}

func printSession(store *storage.Store, id string) error {
	e, err := store.SessionByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("no hunt with id %q", id)
	}
	rounds, err := store.SessionRounds(id)
	if err != nil {
		return err
	}

	fmt.Printf("Hunt %s\n", e.SessionID)
	fmt.Printf("  scene %s, language %s, seed %d\n", e.Scene, e.Language, e.Seed)
	fmt.Printf("  score %d, misses %d, time %s, finished %t\n", e.Score, e.Mistakes, clock(e.Duration), e.Finished)
	fmt.Println()
	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "Round", "Number", "Misses", "Time")
	for _, r := range rounds {
		fmt.Printf("  %-5d  %-6s  %-6d  %s\n", r.Round, r.Goal, r.Mistakes, clock(r.Duration))
	}
	return nil
}

func printSceneStats(store *storage.Store) error {
	all, err := store.GetAllSceneStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No hunts recorded yet.")
		return nil
	}

	scenes := make([]string, 0, len(all))
	for id := range all {
		scenes = append(scenes, id)
	}
	sort.Strings(scenes)

	fmt.Printf("  %-10s  %-6s  %-8s  %-4s  %-6s  %-8s  %s\n", "Scene", "Played", "Finished", "Best", "Fewest", "Avg time", "Last played")
	for _, id := range scenes {
		st := all[id]
		fmt.Printf("  %-10s  %-6d  %-8d  %-4d  %-6d  %-8s  %s\n",
			st.Scene, st.Sessions, st.Finished, st.BestScore, st.FewestMisses, clock(st.AvgDuration), st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printGoalStats(store *storage.Store) error {
	goals, err := store.GoalStats()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	fmt.Println("Numbers, hardest first")
	fmt.Printf("  %-6s  %-6s  %-10s  %s\n", "Number", "Rounds", "Avg misses", "Avg time")
	for _, g := range goals {
		fmt.Printf("  %-6s  %-6d  %-10.2f  %s\n", g.Goal, g.Rounds, g.AvgMistakes, clock(g.AvgDuration))
	}
	return nil
}

// clock formats a duration as m:ss.
func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
