package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/numhunt/internal/core"
)

// KeyMapper converts Bubble Tea key messages to game actions.
// Digit keys touch the object carrying that number; 0 stands for 10.
type KeyMapper struct {
	keyBindings map[string]core.Action
	labelKeys   map[string]string
}

// NewKeyMapper creates a KeyMapper with the default key bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{
		keyBindings: map[string]core.Action{
			"enter":  core.ActionStart,
			" ":      core.ActionStart,
			"l":      core.ActionLanguage,
			"L":      core.ActionLanguage,
			"r":      core.ActionRestart,
			"R":      core.ActionRestart,
			"p":      core.ActionPause,
			"P":      core.ActionPause,
			"b":      core.ActionBack,
			"B":      core.ActionBack,
			"esc":    core.ActionBack,
			"q":      core.ActionQuit,
			"Q":      core.ActionQuit,
			"ctrl+c": core.ActionQuit,
		},
		labelKeys: map[string]string{
			"0": "10",
		},
	}
	for _, d := range "123456789" {
		km.labelKeys[string(d)] = string(d)
	}
	return km
}

// MapKey returns the action for a key and, for digit keys, the label touched.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, string) {
	key := msg.String()
	if label, ok := km.labelKeys[key]; ok {
		return core.ActionSelect, label
	}
	if action, ok := km.keyBindings[key]; ok {
		return action, ""
	}
	return core.ActionNone, ""
}

// MapKeyToFrame records the key into frame. It reports true when the key
// asks to quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, label := km.MapKey(msg)
	switch action {
	case core.ActionNone:
		return false
	case core.ActionQuit:
		return true
	case core.ActionSelect:
		frame.Select(label)
	default:
		frame.Set(action)
	}
	return false
}

// MenuAction represents actions available in menu screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionLanguage
)

// MapKeyToMenuAction converts a key message to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "up", "k":
		return MenuActionUp
	case "down", "j":
		return MenuActionDown
	case "left", "h":
		return MenuActionLeft
	case "right":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "esc", "b", "B":
		return MenuActionBack
	case "q", "Q", "ctrl+c":
		return MenuActionQuit
	case "tab", "s":
		return MenuActionScoreboard
	case "l", "L":
		return MenuActionLanguage
	}
	return MenuActionNone
}
