package keymap

// ev is a shorthand constructor for an unmodified single-key KeyEvent,
// mirroring the terseness of original_source/helix-view/src/keymap/
// macros.rs's key!/ctrl!/shift! macros without needing Go macros.
func ev(code string) KeyEvent { return NewKeyEvent(code, 0) }

// Default builds the built-in "normal" and "insert" mode keymaps: a small,
// representative binding set over the motion and buffer/view commands
// pkg/command exposes (command/command_list.rs's full table spans far more
// ground — shell, LSP, themes — than spec.md's scope keeps).
func Default() *Keymap {
	k := New()
	k.Bind(Mode("normal"), defaultNormalMode())
	k.Bind(Mode("insert"), defaultInsertMode())
	return k
}

func defaultNormalMode() *KeyTrie {
	root := NewKeyTrie("normal mode")

	root.Bind(ev("h"), CommandNode("move_char_left"))
	root.Bind(ev("left"), CommandNode("move_char_left"))
	root.Bind(ev("l"), CommandNode("move_char_right"))
	root.Bind(ev("right"), CommandNode("move_char_right"))

	root.Bind(ev("w"), CommandNode("move_next_word_start"))
	root.Bind(ev("b"), CommandNode("move_prev_word_start"))
	root.Bind(ev("e"), CommandNode("move_next_word_end"))
	root.Bind(ev("W"), CommandNode("move_next_long_word_start"))
	root.Bind(ev("B"), CommandNode("move_prev_long_word_start"))
	root.Bind(ev("E"), CommandNode("move_next_long_word_end"))

	root.Bind(ev("0"), CommandNode("move_line_start"))
	root.Bind(ev("home"), CommandNode("move_line_start"))
	root.Bind(ev("$"), CommandNode("move_line_end"))
	root.Bind(ev("end"), CommandNode("move_line_end"))

	root.Bind(ev("u"), CommandNode("undo"))
	root.Bind(NewKeyEvent("r", ModCtrl), CommandNode("redo"))

	window := NewStickyKeyTrie("window")
	window.Bind(ev("s"), CommandNode("split"))
	window.Bind(ev("v"), CommandNode("vsplit"))
	root.Bind(ev("space"), TrieNode(window))

	goTo := NewKeyTrie("goto")
	goTo.Bind(ev("g"), CommandNode("move_line_start"))
	root.Bind(ev("g"), TrieNode(goTo))

	return root
}

func defaultInsertMode() *KeyTrie {
	root := NewKeyTrie("insert mode")
	root.Bind(ev("left"), CommandNode("move_char_left"))
	root.Bind(ev("right"), CommandNode("move_char_right"))
	return root
}
