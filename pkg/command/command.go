// Package command defines the static command table: named, aliasable
// operations with a typed argument schema, resolved by the dispatcher
// when a KeyTrie terminal or a ':'-prompt line names one.
package command

import (
	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/editor"
	"github.com/coreseekdev/glyph/pkg/rope"
	"github.com/coreseekdev/glyph/pkg/view"
)

// ArgKind is one member of the closed set of argument slot types spec.md
// §4.6 names.
type ArgKind int

const (
	ArgFilePath ArgKind = iota
	ArgFilePaths
	ArgDirectoryPath
	ArgBuffer
	ArgBuffers
	ArgIndentStyle
	ArgLineEnding
	ArgUndoKind
	ArgTheme
	ArgLanguage
	ArgConfigOption
	ArgShellCommand
	ArgChar
	ArgInteger
)

// ArgSlot is one schema slot: a kind, wrapped Required or Optional.
type ArgSlot struct {
	Kind     ArgKind
	Required bool
}

// Required builds a mandatory argument slot.
func Required(kind ArgKind) ArgSlot { return ArgSlot{Kind: kind, Required: true} }

// Optional builds an optional argument slot.
func Optional(kind ArgKind) ArgSlot { return ArgSlot{Kind: kind, Required: false} }

// ParsedArg is one resolved argument value. Only the field matching Kind
// is populated; others are zero.
type ParsedArg struct {
	Kind ArgKind

	Str     string
	Strs    []string
	Int     int
	Ch      rune
	Indent  rope.IndentStyle
	Ending  string
	Undo    rope.UndoKind
	BufID   buffer.ID
	BufIDs  []buffer.ID
}

// Context is the execution environment a Handler runs against: the
// editor, the view the command was invoked from, and the effective count
// from any dispatcher multiplier.
type Context struct {
	Editor *editor.Editor
	View   view.ID
	Count  uint32
}

// Handler is a command's pure function of (context, parsed args).
type Handler func(ctx *Context, args []ParsedArg) error

// Command is one static command-table record.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	ArgSchema   []ArgSlot
	Handler     Handler
}

// Table indexes Commands by name and alias for case-sensitive lookup.
type Table struct {
	byName map[string]*Command
}

// NewTable builds a Table from a list of Commands, registering both each
// command's Name and every Alias as lookup keys.
func NewTable(commands []Command) *Table {
	t := &Table{byName: make(map[string]*Command, len(commands)*2)}
	for i := range commands {
		c := &commands[i]
		t.byName[c.Name] = c
		for _, alias := range c.Aliases {
			t.byName[alias] = c
		}
	}
	return t
}

// Resolve looks up a command by its canonical name or one of its aliases.
// Resolution is case-sensitive; the command's Name remains the identity
// used for equality and keymap binding regardless of which alias matched.
func (t *Table) Resolve(nameOrAlias string) (*Command, bool) {
	c, ok := t.byName[nameOrAlias]
	return c, ok
}

// RequiredCount returns how many of schema's slots are Required, used to
// validate a supplied-argument count before dispatch.
func RequiredCount(schema []ArgSlot) int {
	n := 0
	for _, s := range schema {
		if s.Required {
			n++
		}
	}
	return n
}
