// Package config defines the shape of editor configuration. Populating a
// Config from a TOML file on disk is an external concern (spec.md §1 lists
// the TOML config loader as out of scope); this package only specifies the
// fields and their defaults, the way the teacher's pkg/session interfaces
// describe a contract implemented elsewhere.
package config

// ViewOptions controls per-view rendering toggles.
type ViewOptions struct {
	Mouse          bool
	Statusline     []string
	Gutters        []string
	Bufferline     string
	SoftWrap       bool
	LineNumber     string
	CursorlineOpts []string
}

// DocumentOptions controls per-language document defaults (table
// "view.document.*").
type DocumentOptions struct {
	IndentWidth int
	TabWidth    int
	LineEnding  string
}

// SearchOptions controls buffer-search behavior (table "view.search.*").
type SearchOptions struct {
	SmartCase bool
	WrapAround bool
}

// LSPOptions controls language-server integration toggles (table
// "view.lsp").
type LSPOptions struct {
	Enable       bool
	DisplayHints bool
}

// TerminalOptions names the external terminal used for shell commands
// (table "view.terminal").
type TerminalOptions struct {
	Command string
	Args    []string
}

// Config is the top-level configuration tree. Keys mirrors spec.md §6's
// TOML table layout: "keys.<mode>" holds per-mode keymap overrides as a
// raw key-event-string → value tree, left unparsed here since parsing
// that into a keymap.Keymap is the loader's job, not this package's.
type Config struct {
	Keys       map[string]map[string]interface{}
	View       ViewOptions
	Document   DocumentOptions
	Statusline []string
	Gutter     []string
	Search     SearchOptions
	LSP        LSPOptions
	Bufferline string
	Terminal   TerminalOptions
	Theme      string
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Keys: make(map[string]map[string]interface{}),
		View: ViewOptions{
			Statusline: []string{"mode", "file-name", "position"},
			Gutters:    []string{"diagnostics", "line-numbers"},
			LineNumber: "absolute",
		},
		Document: DocumentOptions{
			IndentWidth: 4,
			TabWidth:    4,
			LineEnding:  "\n",
		},
		Search: SearchOptions{
			SmartCase:  true,
			WrapAround: true,
		},
		LSP: LSPOptions{
			Enable:       true,
			DisplayHints: true,
		},
		Theme: "default",
	}
}
