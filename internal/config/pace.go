package config

import (
	"fmt"
	"strings"
	"time"
)

// PacePreset represents a named narration and spawn pace.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceBrisk   PacePreset = "brisk"
)

// Paces returns every preset, slowest first.
func Paces() []PacePreset {
	return []PacePreset{PaceRelaxed, PaceNormal, PaceBrisk}
}

// ParsePace resolves a preset name. Empty means normal.
func ParsePace(s string) (PacePreset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PaceNormal, nil
	}
	for _, p := range Paces() {
		if string(p) == s {
			return p, nil
		}
	}
	return PaceNormal, fmt.Errorf("config: unknown pace %q", s)
}

// paceFactor returns the multiplier applied to waits for a preset.
func paceFactor(p PacePreset) float64 {
	switch p {
	case PaceRelaxed:
		return 1.5
	case PaceBrisk:
		return 0.5
	default:
		return 1.0
	}
}

// ApplyPace scales every wait of cfg by the preset's factor.
// Distances and counts are left alone.
func ApplyPace(cfg *GameConfig, p PacePreset) {
	f := paceFactor(p)
	if f == 1.0 {
		return
	}
	scale := func(d *time.Duration) {
		*d = time.Duration(float64(*d) * f)
	}

	scale(&cfg.Round.ScoreDelay)
	scale(&cfg.Placement.SpawnDelay)
	scale(&cfg.Narration.StartDelay)
	scale(&cfg.Narration.SecondaryStartDelay)
	scale(&cfg.Narration.LineDelay)
	scale(&cfg.Narration.CharDelay)
	scale(&cfg.Narration.HoldMin)
	scale(&cfg.Narration.HoldMax)
}
