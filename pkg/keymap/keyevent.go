// Package keymap implements the key-event trie and per-mode keymaps that
// the dispatcher walks to resolve a sequence of keypresses into a command.
package keymap

import (
	"sort"
	"strings"
)

// Modifier is one of the three modifier keys a KeyEvent can carry.
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// KeyEvent is a single keypress: a key name plus a modifier set.
type KeyEvent struct {
	Code      string
	Modifiers Modifier
}

// NewKeyEvent builds a KeyEvent from a bare code and modifier flags.
func NewKeyEvent(code string, mods Modifier) KeyEvent {
	return KeyEvent{Code: code, Modifiers: mods}
}

// ParseKeyEvent parses a dash-separated token such as "S-C-a", "A-F12", or
// "space" into a KeyEvent. The key name is the final token; every token
// before it must be one of S, C, A.
func ParseKeyEvent(s string) (KeyEvent, bool) {
	parts := strings.Split(s, "-")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return KeyEvent{}, false
	}
	var mods Modifier
	for _, tok := range parts[:len(parts)-1] {
		switch tok {
		case "S":
			mods |= ModShift
		case "C":
			mods |= ModCtrl
		case "A":
			mods |= ModAlt
		default:
			return KeyEvent{}, false
		}
	}
	return KeyEvent{Code: parts[len(parts)-1], Modifiers: mods}, true
}

// String renders a KeyEvent back to its dash-separated form, e.g. "C-a".
func (k KeyEvent) String() string {
	var b strings.Builder
	if k.Modifiers&ModShift != 0 {
		b.WriteString("S-")
	}
	if k.Modifiers&ModCtrl != 0 {
		b.WriteString("C-")
	}
	if k.Modifiers&ModAlt != 0 {
		b.WriteString("A-")
	}
	b.WriteString(k.Code)
	return b.String()
}

// sortKeyStrings orders rendered key-event strings per the infobox contract:
// 1-char codes first, then "C-" prefixed variants, then by length.
func sortKeyStrings(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if len(a) == 1 {
			return true
		}
		if len(b) == 1 {
			return false
		}
		if len(b) > len(a) && strings.HasPrefix(b, "C-") {
			return false
		}
		return len(a) < len(b)
	})
}
