// Package buffer implements the Buffer aggregate: a rope paired with its
// undo history, per-view selections, and the metadata (encoding, indent
// style, line ending, language) needed to read and write it back to disk.
package buffer

import (
	"errors"
	"os"
	"time"

	"github.com/coreseekdev/glyph/pkg/diff"
	"github.com/coreseekdev/glyph/pkg/rope"
)

// ErrBufferModified is returned by CloseDocument when the buffer has
// uncommitted changes and force was not requested.
var ErrBufferModified = errors.New("buffer has unsaved changes")

// Severity classifies a Diagnostic, mirroring LSP's four-level scheme
// without importing an LSP client (spec.md §6 names the core's LSP-facing
// surface; diagnostic severities are the one piece of that surface a
// Buffer stores directly).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// Diagnostic is a single language-server finding anchored to a char range.
type Diagnostic struct {
	Range    rope.Range
	Severity Severity
	Source   string
	Message  string
}

// Buffer owns one rope and everything needed to edit, undo, and persist
// it, per spec.md §3 "Buffer".
type Buffer struct {
	ID ID

	Path     string
	Language string

	text        *rope.Rope
	encoding    Encoding
	indent      rope.IndentStyle
	lineEnding  string // "\n", "\r\n", or "\r"
	hadBOM      bool

	pending *rope.ChangeSet // uncommitted edits since the last History commit

	history *rope.History

	selections map[ViewID]*rope.Selection

	diagnostics []Diagnostic

	Diff *diff.Handle

	lastSavedRevision int
	version           int
	modified          bool

	lastApplied *rope.Transaction
}

// NewFile creates an empty, unsaved buffer, per spec.md's new_file()
// lifecycle entry point.
func NewFile() *Buffer {
	text := rope.Empty()
	return &Buffer{
		ID:         NewID(),
		text:       text,
		encoding:   EncodingUTF8,
		indent:     rope.DefaultIndentStyle(),
		lineEnding: "\n",
		history:    rope.NewHistory(),
		selections: make(map[ViewID]*rope.Selection),
	}
}

// Open reads path from disk, detects its encoding/indent/line-ending, and
// returns a Buffer ready for editing, per spec.md's open() lifecycle entry
// point.
func Open(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	enc := DetectEncoding(data)
	hadBOM := enc == EncodingUTF16LE || enc == EncodingUTF16BE

	content, err := DecodeText(data, enc)
	if err != nil {
		return nil, err
	}

	text := rope.New(content)
	lineEnding := text.DetectLineEnding()
	normalized := map[string]string{"CRLF": "\r\n", "LF": "\n", "CR": "\r", "NONE": "\n"}[lineEnding]

	b := &Buffer{
		ID:         NewID(),
		Path:       path,
		text:       text,
		encoding:   enc,
		hadBOM:     hadBOM,
		indent:     text.DetectIndentStyle(),
		lineEnding: normalized,
		history:    rope.NewHistory(),
		selections: make(map[ViewID]*rope.Selection),
	}
	return b, nil
}

// Text returns the buffer's current rope.
func (b *Buffer) Text() *rope.Rope { return b.text }

// Encoding returns the codec the buffer was decoded from.
func (b *Buffer) Encoding() Encoding { return b.encoding }

// IndentStyle returns the buffer's detected or configured indent style.
func (b *Buffer) IndentStyle() rope.IndentStyle { return b.indent }

// SetIndentStyle overrides the buffer's indent style (e.g. via the
// IndentStyle command-table slot, spec.md §4.6).
func (b *Buffer) SetIndentStyle(style rope.IndentStyle) { b.indent = style }

// LineEnding returns the buffer's line-ending style ("\n", "\r\n", "\r").
func (b *Buffer) LineEnding() string { return b.lineEnding }

// SetLineEnding overrides the buffer's line-ending style (the LineEnding
// command-table slot, spec.md §4.6).
func (b *Buffer) SetLineEnding(ending string) { b.lineEnding = ending }

// Version returns the buffer's monotonically increasing edit counter,
// surfaced to LSP/DAP per spec.md §6.
func (b *Buffer) Version() int { return b.version }

// Modified reports whether the buffer has edits since it was last saved.
func (b *Buffer) Modified() bool { return b.modified }

// Diagnostics returns the buffer's current diagnostic list.
func (b *Buffer) Diagnostics() []Diagnostic { return b.diagnostics }

// SetDiagnostics replaces the buffer's diagnostic list, typically in
// response to an LSP publishDiagnostics notification.
func (b *Buffer) SetDiagnostics(diags []Diagnostic) { b.diagnostics = diags }

// Selection returns the selection recorded for view, or a single zero-width
// cursor at the document start if the view has never synced a selection.
func (b *Buffer) Selection(view ViewID) *rope.Selection {
	if sel, ok := b.selections[view]; ok {
		return sel
	}
	return rope.NewSelection(rope.Point(0))
}

// SetSelection records view's current selection against this buffer,
// without going through apply (used when a view first attaches, or after
// a motion that doesn't edit text).
func (b *Buffer) SetSelection(view ViewID, sel *rope.Selection) {
	b.selections[view] = sel
}

// History returns the buffer's undo tree.
func (b *Buffer) History() *rope.History { return b.history }

// Apply commits transaction to the buffer, per spec.md's "mutated only
// through apply(transaction, view)" lifecycle rule: the originating view's
// selection is taken from the transaction itself (if it carries one),
// every other view's selection is mapped through the transaction's
// changeset (spec.md §8 invariant 2: s.map(t).valid(t.apply(x))), and the
// edit is committed to history for undo.
func (b *Buffer) Apply(tx *rope.Transaction, view ViewID) {
	if tx == nil || tx.IsEmpty() {
		return
	}

	before := b.text
	cs := tx.Changeset()

	for v, sel := range b.selections {
		if v == view {
			continue
		}
		ranges := make([]rope.Range, 0, sel.Len())
		for _, r := range sel.Iter() {
			ranges = append(ranges, r.Map(cs, rope.AssocAfter))
		}
		b.selections[v] = rope.NewSelectionWithPrimary(ranges, sel.PrimaryIndex())
	}

	b.text = tx.Apply(before)
	b.history.CommitRevision(tx, before)

	if sel := tx.Selection(); sel != nil {
		b.selections[view] = sel
	} else if sel, ok := b.selections[view]; ok {
		ranges := make([]rope.Range, 0, sel.Len())
		for _, r := range sel.Iter() {
			ranges = append(ranges, r.Map(cs, rope.AssocAfter))
		}
		b.selections[view] = rope.NewSelectionWithPrimary(ranges, sel.PrimaryIndex())
	}

	b.version++
	b.modified = true
	b.lastApplied = tx

	if b.Diff != nil {
		b.Diff.UpdateDocument(b.text, false)
	}
}

// LastApplied returns the most recently applied transaction, or nil if
// none has been applied yet. Used by the dispatcher's leaving-insert-mode
// clean-up to inspect whether the last edit was a bare newline-plus-indent.
func (b *Buffer) LastApplied() *rope.Transaction {
	return b.lastApplied
}

// Undo applies one undo step from the history, returning false if there is
// nothing to undo.
func (b *Buffer) Undo() bool {
	return b.timeTravel(b.history.Undo())
}

// Redo re-applies one previously undone step, returning false if there is
// nothing to redo.
func (b *Buffer) Redo() bool {
	return b.timeTravel(b.history.Redo())
}

// Earlier undoes by time instead of step count, backing the UndoKind
// command-table slot's UndoTimePeriod variant (spec.md §4.6).
func (b *Buffer) Earlier(d time.Duration) bool {
	return b.timeTravel(b.history.EarlierByTime(d))
}

// Later redoes by time instead of step count.
func (b *Buffer) Later(d time.Duration) bool {
	return b.timeTravel(b.history.LaterByTime(d))
}

func (b *Buffer) timeTravel(tx *rope.Transaction) bool {
	if tx == nil {
		return false
	}
	cs := tx.Changeset()
	b.text = tx.Apply(b.text)
	for v, sel := range b.selections {
		ranges := make([]rope.Range, 0, sel.Len())
		for _, r := range sel.Iter() {
			ranges = append(ranges, r.Map(cs, rope.AssocAfter))
		}
		b.selections[v] = rope.NewSelectionWithPrimary(ranges, sel.PrimaryIndex())
	}
	b.version++
	b.modified = true
	b.lastApplied = nil
	if b.Diff != nil {
		b.Diff.UpdateDocument(b.text, false)
	}
	return true
}

// Save writes the buffer's content back to Path, transcoding to its
// original encoding and re-applying CRLF line endings if that's what the
// file used. Path must be set; callers wanting "save as" should set Path
// first.
func (b *Buffer) Save() error {
	if b.Path == "" {
		return errors.New("buffer has no path")
	}

	content := b.text.String()
	if b.lineEnding != "\n" {
		content = b.text.NormalizeLineEndings(b.lineEnding).String()
	}

	data, err := EncodeText(content, b.encoding)
	if err != nil {
		return err
	}
	if b.hadBOM {
		data = append(bomFor(b.encoding), data...)
	}

	if err := os.WriteFile(b.Path, data, 0o644); err != nil {
		return err
	}
	b.lastSavedRevision = b.history.CurrentIndex()
	b.modified = false
	return nil
}

func bomFor(enc Encoding) []byte {
	switch enc {
	case EncodingUTF16LE:
		return []byte{0xFF, 0xFE}
	case EncodingUTF16BE:
		return []byte{0xFE, 0xFF}
	default:
		return nil
	}
}

// CloseDocument destroys the buffer per spec.md's lifecycle rule: refused
// with ErrBufferModified when there are unsaved changes, unless force is
// set.
func (b *Buffer) CloseDocument(force bool) error {
	if b.modified && !force {
		return ErrBufferModified
	}
	if b.Diff != nil {
		b.Diff.Close()
	}
	return nil
}
