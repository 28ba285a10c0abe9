// Package config provides YAML-based game configuration loading, narration
// content loading and pace presets for numhunt.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/numhunt/internal/narration"
	"github.com/vovakirdan/numhunt/internal/placement"
	"github.com/vovakirdan/numhunt/internal/round"
)

// GameConfig contains all configuration for a numhunt game.
type GameConfig struct {
	Round     RoundConfig     `yaml:"round"`
	Placement PlacementConfig `yaml:"placement"`
	Narration NarrationConfig `yaml:"narration"`
}

// RoundConfig defines the target alphabet and round pacing.
type RoundConfig struct {
	Alphabet   []string      `yaml:"alphabet"`
	ScoreDelay time.Duration `yaml:"score_delay"` // pause after a correct match before the next round
	MaxObjects int           `yaml:"max_objects"` // no new batches once this many objects are placed
}

// PlacementConfig defines the spatial placement rules.
type PlacementConfig struct {
	MinSeparation      float64       `yaml:"min_separation"`
	ViewerClearance    float64       `yaml:"viewer_clearance"`
	BootstrapClearance float64       `yaml:"bootstrap_clearance"`
	MaxOffset          float64       `yaml:"max_offset"`
	SpawnDelay         time.Duration `yaml:"spawn_delay"`
	BatchMin           int           `yaml:"batch_min"` // attempt budget range per discovered anchor
	BatchMax           int           `yaml:"batch_max"`
}

// NarrationConfig defines the typewriter pacing.
type NarrationConfig struct {
	StartDelay          time.Duration `yaml:"start_delay"`
	SecondaryStartDelay time.Duration `yaml:"secondary_start_delay"`
	LineDelay           time.Duration `yaml:"line_delay"`
	CharDelay           time.Duration `yaml:"char_delay"`
	HoldMin             time.Duration `yaml:"hold_min"`
	HoldMax             time.Duration `yaml:"hold_max"`
	Marker              string        `yaml:"marker"`
	MarkerBeforeDelay   bool          `yaml:"marker_before_delay"`
}

// Labels returns the alphabet as round labels.
func (c RoundConfig) Labels() []round.Label {
	labels := make([]round.Label, len(c.Alphabet))
	for i, s := range c.Alphabet {
		labels[i] = round.Label(s)
	}
	return labels
}

// Rules converts the placement section to planner rules.
func (c PlacementConfig) Rules() placement.Rules {
	return placement.Rules{
		MinSeparation:      c.MinSeparation,
		ViewerClearance:    c.ViewerClearance,
		BootstrapClearance: c.BootstrapClearance,
		MaxOffset:          c.MaxOffset,
		SpawnDelay:         c.SpawnDelay,
	}
}

// Timing converts the narration section to sequencer timing.
func (c NarrationConfig) Timing() narration.Timing {
	return narration.Timing{
		StartDelay:          c.StartDelay,
		SecondaryStartDelay: c.SecondaryStartDelay,
		LineDelay:           c.LineDelay,
		CharDelay:           c.CharDelay,
		HoldMin:             c.HoldMin,
		HoldMax:             c.HoldMax,
		Marker:              c.Marker,
		MarkerBeforeDelay:   c.MarkerBeforeDelay,
	}
}

// Validate reports configuration values the game cannot run with.
func (c GameConfig) Validate() error {
	var errs []error

	if len(c.Round.Alphabet) == 0 {
		errs = append(errs, errors.New("round.alphabet is empty"))
	}
	seen := make(map[string]bool, len(c.Round.Alphabet))
	for _, s := range c.Round.Alphabet {
		if s == "" {
			errs = append(errs, errors.New("round.alphabet contains an empty label"))
			continue
		}
		if seen[s] {
			errs = append(errs, fmt.Errorf("round.alphabet repeats %q", s))
		}
		seen[s] = true
	}
	if c.Round.MaxObjects <= 0 {
		errs = append(errs, fmt.Errorf("round.max_objects must be positive, got %d", c.Round.MaxObjects))
	}
	if c.Placement.MinSeparation < 0 || c.Placement.MaxOffset < 0 {
		errs = append(errs, errors.New("placement distances must not be negative"))
	}
	if c.Placement.BatchMin < 1 || c.Placement.BatchMax < c.Placement.BatchMin {
		errs = append(errs, fmt.Errorf("placement batch range [%d, %d] is invalid", c.Placement.BatchMin, c.Placement.BatchMax))
	}
	if c.Narration.HoldMax < c.Narration.HoldMin {
		errs = append(errs, fmt.Errorf("narration.hold_max %v is below hold_min %v", c.Narration.HoldMax, c.Narration.HoldMin))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
