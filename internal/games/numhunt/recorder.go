package numhunt

import "time"

// RoundResult describes one completed round.
type RoundResult struct {
	SessionID string
	Round     int
	Goal      string
	Mistakes  int
	Duration  time.Duration
}

// SessionResult describes a session when it finishes or is abandoned.
type SessionResult struct {
	SessionID string
	Scene     string
	Language  string
	Seed      int64
	Score     int
	Mistakes  int
	Rounds    int
	Finished  bool
	Duration  time.Duration
}

// Recorder persists results. Errors are logged and never stop the game.
type Recorder interface {
	RecordRound(r RoundResult) error
	RecordSession(s SessionResult) error
}

func (g *Game) record(r RoundResult) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.RecordRound(r); err != nil {
		g.logger.Error("record round", "round", r.Round, "err", err)
	}
}

// recordSession saves the session once.
func (g *Game) recordSession(finished bool) {
	if g.recorded {
		return
	}
	g.recorded = true
	if g.recorder == nil {
		return
	}
	res := SessionResult{
		SessionID: g.session.ID(),
		Scene:     g.scene.ID(),
		Language:  g.machine.Language().String(),
		Seed:      g.seed,
		Score:     g.session.Score(),
		Mistakes:  g.session.Mistakes(),
		Rounds:    g.session.Round(),
		Finished:  finished,
		Duration:  g.clock,
	}
	if err := g.recorder.RecordSession(res); err != nil {
		g.logger.Error("record session", "session", res.SessionID, "err", err)
	}
}
