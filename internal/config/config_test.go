package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/numhunt/internal/lang"
	"github.com/vovakirdan/numhunt/internal/narration"
)

// isolate points HOME and the working directory at empty temp dirs so the
// user and local search paths find nothing.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func TestEmbeddedGameYAMLMatchesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultGameConfig()) {
		t.Errorf("embedded config differs from defaults:\n got %+v\nwant %+v", cfg, DefaultGameConfig())
	}
	if cfg.Narration.Marker != "" {
		t.Errorf("Narration.Marker = %q, expected no marker by default", cfg.Narration.Marker)
	}
}

func TestLoadGameCustomPathKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := "round:\n  score_delay: 3s\nplacement:\n  batch_max: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGame(path)
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.Round.ScoreDelay != 3*time.Second {
		t.Errorf("ScoreDelay = %v, expected 3s", cfg.Round.ScoreDelay)
	}
	if cfg.Placement.BatchMax != 5 {
		t.Errorf("BatchMax = %d, expected 5", cfg.Placement.BatchMax)
	}
	if cfg.Placement.MinSeparation != 0.15 || len(cfg.Round.Alphabet) != 10 {
		t.Error("unset values should keep their defaults")
	}
}

func TestLoadGameUserDirectory(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".numhunt", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, GameFile), []byte("round:\n  max_objects: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.Round.MaxObjects != 4 {
		t.Errorf("MaxObjects = %d, expected 4 from the user config", cfg.Round.MaxObjects)
	}
}

func TestLoadGameErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := LoadGame(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("round: [\n"), 0o644)
	if _, err := LoadGame(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("placement:\n  batch_min: 4\n  batch_max: 2\n"), 0o644)
	if _, err := LoadGame(invalid); err == nil {
		t.Error("inverted batch range should fail validation")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		ok     bool
	}{
		{"defaults", func(*GameConfig) {}, true},
		{"empty alphabet", func(c *GameConfig) { c.Round.Alphabet = nil }, false},
		{"repeated label", func(c *GameConfig) { c.Round.Alphabet = []string{"1", "1"} }, false},
		{"empty label", func(c *GameConfig) { c.Round.Alphabet = []string{"1", ""} }, false},
		{"no objects", func(c *GameConfig) { c.Round.MaxObjects = 0 }, false},
		{"zero batch", func(c *GameConfig) { c.Placement.BatchMin = 0 }, false},
		{"hold inverted", func(c *GameConfig) { c.Narration.HoldMax = time.Second }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() error = %v, expected ok = %v", err, tc.ok)
			}
		})
	}
}

func TestSectionConversions(t *testing.T) {
	cfg := DefaultGameConfig()

	rules := cfg.Placement.Rules()
	if rules.MinSeparation != 0.15 || rules.ViewerClearance != 1.5 || rules.BootstrapClearance != 0.5 || rules.SpawnDelay != 1250*time.Millisecond {
		t.Errorf("Rules() = %+v", rules)
	}
	if timing := cfg.Narration.Timing(); timing != narration.DefaultTiming() {
		t.Errorf("Timing() = %+v, expected narration defaults %+v", timing, narration.DefaultTiming())
	}
	labels := cfg.Round.Labels()
	if len(labels) != 10 || labels[9] != "10" {
		t.Errorf("Labels() = %v", labels)
	}
}

func TestApplyPace(t *testing.T) {
	tests := []struct {
		preset PacePreset
		char   time.Duration
		spawn  time.Duration
	}{
		{PaceRelaxed, 60 * time.Millisecond, 1875 * time.Millisecond},
		{PaceNormal, 40 * time.Millisecond, 1250 * time.Millisecond},
		{PaceBrisk, 20 * time.Millisecond, 625 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultGameConfig()
			ApplyPace(&cfg, tc.preset)
			if cfg.Narration.CharDelay != tc.char {
				t.Errorf("CharDelay = %v, expected %v", cfg.Narration.CharDelay, tc.char)
			}
			if cfg.Placement.SpawnDelay != tc.spawn {
				t.Errorf("SpawnDelay = %v, expected %v", cfg.Placement.SpawnDelay, tc.spawn)
			}
			if cfg.Placement.MinSeparation != 0.15 {
				t.Error("pace should not change distances")
			}
		})
	}
}

func TestParsePace(t *testing.T) {
	if p, err := ParsePace(" Brisk "); err != nil || p != PaceBrisk {
		t.Errorf("ParsePace(Brisk) = %v, %v", p, err)
	}
	if p, err := ParsePace(""); err != nil || p != PaceNormal {
		t.Errorf("ParsePace(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePace("ludicrous"); err == nil {
		t.Error("unknown pace should fail")
	}
}

func TestLoadNarrationEmbedded(t *testing.T) {
	isolate(t)

	lib, err := LoadNarration("")
	if err != nil {
		t.Fatalf("LoadNarration() error = %v", err)
	}
	primary, ok := lib.Script(narration.ModePrimary, lang.Japanese)
	if !ok || len(primary) != 4 {
		t.Fatalf("primary/ja has %d lines, expected 4", len(primary))
	}
	victory, _ := lib.Script(narration.ModeVictory, lang.Japanese)
	if victory[0].Cue != 1 {
		t.Errorf("ja victory cue = %d, expected 1", victory[0].Cue)
	}
}

func TestLoadNarrationRejectsIncompleteFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "narration.yaml")
	os.WriteFile(path, []byte("primary:\n  en: [\"hi\"]\n"), 0o644)

	if _, err := LoadNarration(path); err == nil {
		t.Error("a file missing modes should fail validation")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("NUMHUNT_LANG", "ja")
	t.Setenv("NUMHUNT_SEED", "42")
	t.Setenv("NUMHUNT_PACE", "brisk")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if e.Lang != "ja" || e.Seed != 42 || e.Pace != "brisk" {
		t.Errorf("LoadEnv() = %+v", e)
	}
	if e.LogLevel != "info" || e.SSHAddr != ":23234" {
		t.Errorf("defaults not applied: %+v", e)
	}

	t.Setenv("NUMHUNT_SEED", "not-a-number")
	if _, err := LoadEnv(); err == nil {
		t.Error("malformed seed should fail")
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	if got := ExpandPath("~/x.db"); got != filepath.Join(home, "x.db") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("ExpandPath() = %q", got)
	}
}
