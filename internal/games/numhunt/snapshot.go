package numhunt

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	State          string
	Round          int
	Goal           string
	Score          int
	Mistakes       int
	Language       string
	Placed         int
	Collected      int
	SpawnRemaining int
	Prompt         string
	PromptLine     int
	PromptPhase    string
	Feedback       string
	Scoring        bool
	Cues           int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	collected := 0
	records := g.store.Records()
	for _, rec := range records {
		if rec.Collected {
			collected++
		}
	}
	prompt, feedback := g.Narration()

	return Snapshot{
		Tick:           g.tick,
		State:          g.machine.State().String(),
		Round:          g.session.Round(),
		Goal:           string(g.session.Goal()),
		Score:          g.session.Score(),
		Mistakes:       g.session.Mistakes(),
		Language:       g.machine.Language().String(),
		Placed:         len(records),
		Collected:      collected,
		SpawnRemaining: g.store.SpawnRemaining(),
		Prompt:         prompt,
		PromptLine:     g.main.LineIndex(),
		PromptPhase:    g.main.Phase(),
		Feedback:       feedback,
		Scoring:        g.scoring,
		Cues:           g.cueCount,
	}
}
