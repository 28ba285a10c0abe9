package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/numhunt/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		label  string
	}{
		{"digit", runeKey("7"), core.ActionSelect, "7"},
		{"one", runeKey("1"), core.ActionSelect, "1"},
		{"zero is ten", runeKey("0"), core.ActionSelect, "10"},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, ""},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStart, ""},
		{"language", runeKey("l"), core.ActionLanguage, ""},
		{"restart", runeKey("r"), core.ActionRestart, ""},
		{"pause", runeKey("p"), core.ActionPause, ""},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, ""},
		{"quit", runeKey("q"), core.ActionQuit, ""},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, ""},
		{"unbound", runeKey("z"), core.ActionNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, label := km.MapKey(tt.msg)
			if action != tt.action || label != tt.label {
				t.Errorf("MapKey(%q) = (%v, %q), expected (%v, %q)", tt.msg.String(), action, label, tt.action, tt.label)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("4"), &frame) {
		t.Fatal("digit should not quit")
	}
	if !frame.Has(core.ActionSelect) || frame.Selected != "4" {
		t.Errorf("frame = %+v, expected a touch on 4", frame)
	}

	km.MapKeyToFrame(runeKey("l"), &frame)
	if !frame.Has(core.ActionLanguage) {
		t.Error("l should set ActionLanguage")
	}

	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should report quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit is reported, not recorded in the frame")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("l"), MenuActionLanguage},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.action)
		}
	}
}
