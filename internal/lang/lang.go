// Package lang defines the two narration languages and maps them to BCP 47
// tags so user input such as "en-US" or "ja_JP" resolves to a language.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language selects which narration scripts and audio banks are used.
type Language int

const (
	// English is the primary language.
	English Language = iota
	// Japanese is the secondary language.
	Japanese
)

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

// All returns the supported languages in index order.
func All() []Language {
	return []Language{English, Japanese}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == English || l == Japanese
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	if !l.Valid() {
		return language.Und
	}
	return supported[l]
}

// String returns the short code used in config files ("en", "ja").
func (l Language) String() string {
	switch l {
	case English:
		return "en"
	case Japanese:
		return "ja"
	default:
		return "unknown"
	}
}

// Name returns the display name of the language in that language.
func (l Language) Name() string {
	switch l {
	case English:
		return "English"
	case Japanese:
		return "日本語"
	default:
		return "?"
	}
}

// Secondary reports whether l is the secondary language, which gets the
// widened start delay after its first narration pass.
func (l Language) Secondary() bool {
	return l == Japanese
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == English {
		return Japanese
	}
	return English
}

// Parse resolves a language code or tag to a supported Language.
func Parse(s string) (Language, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return English, fmt.Errorf("lang: empty language")
	}
	tag, err := language.Parse(s)
	if err != nil {
		return English, fmt.Errorf("lang: parse %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English, fmt.Errorf("lang: unsupported language %q", s)
	}
	return Language(idx), nil
}
