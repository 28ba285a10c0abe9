package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/numhunt/internal/round"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

//go:embed defaults/narration.yaml
var defaultNarrationYAML []byte

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	alphabet := make([]string, len(round.DefaultAlphabet))
	for i, l := range round.DefaultAlphabet {
		alphabet[i] = string(l)
	}
	return GameConfig{
		Round: RoundConfig{
			Alphabet:   alphabet,
			ScoreDelay: 10500 * time.Millisecond,
			MaxObjects: 10,
		},
		Placement: PlacementConfig{
			MinSeparation:      0.15,
			ViewerClearance:    1.5,
			BootstrapClearance: 0.5,
			MaxOffset:          0.1,
			SpawnDelay:         1250 * time.Millisecond,
			BatchMin:           1,
			BatchMax:           3,
		},
		Narration: NarrationConfig{
			StartDelay:          1500 * time.Millisecond,
			SecondaryStartDelay: 10 * time.Second,
			LineDelay:           500 * time.Millisecond,
			CharDelay:           40 * time.Millisecond,
			HoldMin:             6 * time.Second,
			HoldMax:             12 * time.Second,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config file name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case GameFile:
		return defaultGameYAML
	case NarrationFile:
		return defaultNarrationYAML
	default:
		return nil
	}
}
