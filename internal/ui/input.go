package ui

import "github.com/gdamore/tcell/v2"

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}

// IsStartKey returns true if the key should start/confirm
func IsStartKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyEnter || (key == tcell.KeyRune && r == ' ')
}

// IsPauseKey toggles pause
func IsPauseKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyRune && (r == 'p' || r == 'P')
}

// IsResetKey returns to the start screen after a game
func IsResetKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyRune && (r == 'r' || r == 'R')
}

// NudgeDirection converts a key event to a horizontal step: -1 left, 1 right
// or 0 for anything else
func NudgeDirection(key tcell.Key, r rune) int {
	switch key {
	case tcell.KeyLeft:
		return -1
	case tcell.KeyRight:
		return 1
	case tcell.KeyRune:
		switch r {
		case 'a', 'A', 'h':
			return -1
		case 'd', 'D', 'l':
			return 1
		}
	}
	return 0
}
