package narration

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/numhunt/internal/lang"
)

// Line is one narrated sentence and the clip that voices it.
type Line struct {
	Text string
	Cue  int
}

// Script is an ordered list of lines for one mode and language.
type Script []Line

// Library is the immutable content table of scripts indexed by mode and
// language.
type Library struct {
	scripts map[Mode]map[lang.Language]Script
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{scripts: make(map[Mode]map[lang.Language]Script)}
}

// Set stores a copy of script for mode and language.
func (l *Library) Set(mode Mode, language lang.Language, script Script) {
	if l.scripts[mode] == nil {
		l.scripts[mode] = make(map[lang.Language]Script)
	}
	l.scripts[mode][language] = slices.Clone(script)
}

// Script returns the script for mode and language.
// Returns false when none is configured or it has no lines.
func (l *Library) Script(mode Mode, language lang.Language) (Script, bool) {
	if l == nil {
		return nil, false
	}
	s, ok := l.scripts[mode][language]
	if !ok || len(s) == 0 {
		return nil, false
	}
	return s, true
}

// Validate checks that every mode has lines in every language.
func (l *Library) Validate() error {
	for _, m := range Modes() {
		for _, language := range lang.All() {
			if _, ok := l.Script(m, language); !ok {
				return fmt.Errorf("narration: no %s lines for %s", m, language)
			}
		}
	}
	return nil
}

// yamlLine accepts either a bare string or a {text, cue} mapping.
type yamlLine struct {
	Text string `yaml:"text"`
	Cue  *int   `yaml:"cue,omitempty"`
}

func (y *yamlLine) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		y.Text = n.Value
		return nil
	}
	type plain yamlLine
	return n.Decode((*plain)(y))
}

// ParseLibraryYAML parses a script file of the form
//
//	primary:
//	  en:
//	    - "Hello!"
//	    - text: "Let's begin."
//	      cue: 2
//
// A line's cue defaults to its position in the script.
func ParseLibraryYAML(data []byte) (*Library, error) {
	var raw map[string]map[string][]yamlLine
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("narration: yaml unmarshal: %w", err)
	}

	lib := NewLibrary()
	for modeKey, byLang := range raw {
		mode, err := ParseMode(modeKey)
		if err != nil {
			return nil, err
		}
		for langKey, lines := range byLang {
			language, err := lang.Parse(langKey)
			if err != nil {
				return nil, fmt.Errorf("narration: %s: %w", modeKey, err)
			}
			script := make(Script, 0, len(lines))
			for i, yl := range lines {
				cue := i
				if yl.Cue != nil {
					cue = *yl.Cue
				}
				script = append(script, Line{Text: yl.Text, Cue: cue})
			}
			lib.Set(mode, language, script)
		}
	}
	return lib, nil
}
