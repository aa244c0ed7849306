// Package dispatcher resolves a stream of key events into command
// invocations, tracking the sticky-keymap stack, the count-multiplier, and
// macro recording/replay, per spec.md §4.7.
package dispatcher

import (
	"errors"
	"strconv"
	"strings"

	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/command"
	"github.com/coreseekdev/glyph/pkg/editor"
	"github.com/coreseekdev/glyph/pkg/keymap"
	"github.com/coreseekdev/glyph/pkg/rope"
)

// ErrNoBinding names a key path that matches no binding. Dispatch does not
// return it: a miss clears the pending keys and returns nil.
var ErrNoBinding = errors.New("no binding for key path")

// Dispatcher walks KeyEvents against the current mode's KeyTrie and
// invokes resolved commands against an Editor.
type Dispatcher struct {
	Editor *editor.Editor
	Table  *command.Table
	Mode   keymap.Mode

	stickyStack []*keymap.KeyTrie
}

// New creates a Dispatcher starting in mode.
func New(ed *editor.Editor, table *command.Table, mode keymap.Mode) *Dispatcher {
	return &Dispatcher{Editor: ed, Table: table, Mode: mode}
}

func (d *Dispatcher) currentRoot() *keymap.KeyTrie {
	if n := len(d.stickyStack); n > 0 {
		return d.stickyStack[n-1]
	}
	return d.Editor.Keymap.Root(d.Mode)
}

// isDigit reports whether e is an unmodified single ASCII digit, and its
// value.
func isDigit(e keymap.KeyEvent) (uint32, bool) {
	if e.Modifiers != 0 || len(e.Code) != 1 {
		return 0, false
	}
	if e.Code[0] < '0' || e.Code[0] > '9' {
		return 0, false
	}
	n, err := strconv.ParseUint(e.Code, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Dispatch processes one KeyEvent for view, per spec.md §4.7's algorithm.
// It returns any error surfaced by an executed command's Handler; a miss
// or an in-progress sticky traversal both return nil.
func (d *Dispatcher) Dispatch(callCtx command.Context, e keymap.KeyEvent) error {
	root := d.Editor.Keymap.Root(d.Mode)
	if root == nil {
		return nil
	}

	// Step 2 (with the leading-zero REDESIGN FLAG resolution: a leading
	// zero when no multiplier is active is not a multiplier digit and
	// falls through to trie traversal like any other key).
	if digit, ok := isDigit(e); ok {
		_, present := d.Editor.Multiplier.Get()
		if present || digit != 0 {
			d.Editor.Multiplier.PushDigit(digit)
			return nil
		}
	}

	// Step 1: append to the innermost pending_keys vector.
	d.Editor.AppendPendingKey(e)
	path := d.Editor.PendingKeys()[len(d.Editor.PendingKeys())-1]

	node, ok := d.currentRoot().Traverse(path)
	if !ok {
		// Step 4.
		if e.Code == "esc" {
			d.popStickyLevel()
		} else {
			d.Editor.ClearInnermostPending()
		}
		return nil
	}

	if !node.IsTerminal() {
		// Step 5.
		if node.Trie.Sticky {
			d.Editor.PushPendingLevel()
			d.stickyStack = append(d.stickyStack, node.Trie)
		}
		return nil
	}

	// Step 6: terminal — resolve and execute.
	count := d.Editor.Multiplier.UnwrapOrOne()
	consumed := append([]keymap.KeyEvent(nil), path...)

	var firstErr error
	for _, name := range node.Commands {
		cmd, found := d.Table.Resolve(name)
		if !found {
			continue
		}
		ctx := callCtx
		ctx.Count = count
		if err := cmd.Handler(&ctx, nil); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	d.Editor.Multiplier.Clear()
	d.Editor.ClearInnermostPending()

	if d.Editor.RecordingMacro() {
		d.Editor.RecordMacroKeys(consumed...)
	}

	return firstErr
}

// popStickyLevel cancels one sticky level: the innermost pending vector,
// the sticky root it belongs to, and the pending prefix in the level that
// led into it (spec.md §4.7's "cancel one level of pending + the sticky
// level").
func (d *Dispatcher) popStickyLevel() {
	d.Editor.PopPendingLevel()
	if n := len(d.stickyStack); n > 0 {
		d.stickyStack = d.stickyStack[:n-1]
	}
	d.Editor.ClearInnermostPending()
}

// ReplayMacro pushes every key recorded in register reg through Dispatch
// as if pressed, refusing (spec.md §4.7's replay-protection) if reg is
// already being replayed.
func (d *Dispatcher) ReplayMacro(callCtx command.Context, reg rune, keys []keymap.KeyEvent) error {
	if err := d.Editor.PushReplay(reg); err != nil {
		return err
	}
	defer d.Editor.PopReplay()

	for _, k := range keys {
		if err := d.Dispatch(callCtx, k); err != nil {
			return err
		}
	}
	return nil
}

// SetMode transitions the dispatcher's mode, applying the
// leaving-insert-mode clean-up (spec.md §4.7): if the last transaction
// applied to ctx's focused buffer was a bare newline-plus-indentation
// insert with no further edits since, trim the trailing whitespace as a
// follow-up transaction.
func (d *Dispatcher) SetMode(ctx command.Context, next keymap.Mode) {
	leavingInsert := d.Mode == keymap.Mode("insert") && next != keymap.Mode("insert")
	d.Mode = next
	if !leavingInsert {
		return
	}

	v, ok := d.Editor.Tree().View(ctx.View)
	if !ok {
		return
	}
	b, ok := d.Editor.Buffer(v.Buffer)
	if !ok {
		return
	}
	trimBlankLineIndent(b, buffer.ViewID(ctx.View))
}

// trimBlankLineIndent implements the single-responsibility check spelled
// out above: the last applied transaction must be a pure single insert
// whose text is "\n" followed only by spaces/tabs.
func trimBlankLineIndent(b *buffer.Buffer, view buffer.ViewID) {
	tx := b.LastApplied()
	if tx == nil {
		return
	}
	cs := tx.Changeset()

	it := cs.ChangesIterator()
	var insert *rope.OperationInfo
	for info := it.Next(); info != nil; info = it.Next() {
		switch info.Operation.OpType {
		case rope.OpInsert:
			if insert != nil {
				return
			}
			insert = info
		case rope.OpDelete:
			return
		}
	}
	if insert == nil {
		return
	}

	text := insert.Operation.Text
	if !strings.HasPrefix(text, "\n") {
		return
	}
	rest := text[1:]
	if rest == "" || strings.Trim(rest, " \t") != "" {
		return
	}

	start := insert.Position + 1
	end := insert.Position + len([]rune(text))
	total := b.Text().Length()

	trim := rope.NewChangeSet(total).Retain(start).Delete(end - start).Retain(total - end)
	b.Apply(rope.NewTransaction(trim), view)
}
