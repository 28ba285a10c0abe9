package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/numhunt/internal/config"
	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/lang"
	"github.com/vovakirdan/numhunt/internal/logging"
	"github.com/vovakirdan/numhunt/internal/platform/tui"
	"github.com/vovakirdan/numhunt/internal/storage"
)

func testApp(t *testing.T) *app {
	t.Helper()
	lib, err := config.DefaultNarration()
	if err != nil {
		t.Fatal(err)
	}
	return &app{
		cfg:      config.DefaultGameConfig(),
		lib:      lib,
		language: lang.English,
		pace:     config.PaceBrisk,
		logger:   logging.Discard(),
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	flagSimMissRate, flagSimReaction, flagSimMaxTime = 0.3, 500*time.Millisecond, 30*time.Minute
	a := testApp(t)
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 99}

	run := func() (string, int, int) {
		game, err := a.newGame(tui.Launch{Scene: "tabletop", Language: lang.English, Pace: config.PaceBrisk})
		if err != nil {
			t.Fatal(err)
		}
		snap := simulate(game, rt)
		return snap.State, snap.Score, snap.Mistakes
	}

	s1, score1, miss1 := run()
	s2, score2, miss2 := run()
	if s1 != s2 || score1 != score2 || miss1 != miss2 {
		t.Errorf("runs differ: (%s,%d,%d) vs (%s,%d,%d)", s1, score1, miss1, s2, score2, miss2)
	}
	if s1 != "finished" || score1 != 10 {
		t.Errorf("expected a finished game with 10 points, got %s with %d", s1, score1)
	}
}

func TestSceneArg(t *testing.T) {
	if id, err := sceneArg(nil); err != nil || id != defaultScene {
		t.Errorf("sceneArg(nil) = %q, %v", id, err)
	}
	if id, err := sceneArg([]string{"room"}); err != nil || id != "room" {
		t.Errorf("sceneArg(room) = %q, %v", id, err)
	}
	if _, err := sceneArg([]string{"moon"}); err == nil {
		t.Error("unknown scene should fail")
	}
}

func TestNewGameUnknownScene(t *testing.T) {
	if _, err := testApp(t).newGame(tui.Launch{Scene: "moon"}); err == nil {
		t.Error("expected an error for an unknown scene")
	}
}

func TestPrintRecent(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := printRecent(store); err != nil {
		t.Errorf("printRecent() on an empty store = %v", err)
	}
	if err := store.SaveSession(storage.SessionEntry{SessionID: "s1", Scene: "room", Language: "en", Score: 4}); err != nil {
		t.Fatal(err)
	}
	if err := printRecent(store); err != nil {
		t.Errorf("printRecent() = %v", err)
	}
}
