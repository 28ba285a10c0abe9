package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/numhunt/internal/narration"
)

// Config file names searched by the loaders.
const (
	GameFile      = "game.yaml"
	NarrationFile = "narration.yaml"
)

// LoadGame loads the game configuration.
// Search order: customPath -> ~/.numhunt/configs/game.yaml -> ./configs/game.yaml -> embedded default.
// Values missing from the file keep their defaults.
func LoadGame(customPath string) (GameConfig, error) {
	cfg := DefaultGameConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths(GameFile) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultGameConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, candidate.Validate()
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadNarration loads the narration scripts with the same search order as LoadGame.
// Every mode must have lines in every language.
func LoadNarration(customPath string) (*narration.Library, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		return parseNarration(data, customPath)
	}

	for _, path := range searchPaths(NarrationFile) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if lib, err := parseNarration(data, path); err == nil {
			return lib, nil
		}
	}

	return DefaultNarration()
}

// DefaultNarration returns the embedded narration scripts.
func DefaultNarration() (*narration.Library, error) {
	return parseNarration(defaultNarrationYAML, "embedded "+NarrationFile)
}

func parseNarration(data []byte, source string) (*narration.Library, error) {
	lib, err := narration.ParseLibraryYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", source, err)
	}
	if err := lib.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", source, err)
	}
	return lib, nil
}

// searchPaths returns the user and local candidates for a config file.
func searchPaths(filename string) []string {
	var paths []string
	if dir := DataDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "configs", filename))
	}
	return append(paths, filepath.Join("configs", filename))
}

// DataDir returns ~/.numhunt, or empty if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".numhunt")
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
