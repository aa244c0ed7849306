package editor

import (
	"errors"
	"sort"
	"time"

	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/config"
	"github.com/coreseekdev/glyph/pkg/keymap"
	"github.com/coreseekdev/glyph/pkg/view"
)

// ErrMacroAlreadyReplaying is returned by PushReplay when the requested
// register is already being replayed, per spec.md §4.7's replay-protection
// rule.
var ErrMacroAlreadyReplaying = errors.New("register is already being replayed")

// MacroRecording is the register and accumulated key events of an
// in-progress macro capture.
type MacroRecording struct {
	Register rune
	Keys     []keymap.KeyEvent
}

// SaveResult reports the outcome of an asynchronous buffer save.
type SaveResult struct {
	Buffer buffer.ID
	Err    error
}

// Editor is the top-level editor state: every open buffer, the view tree,
// registers, the keymap, dispatcher-visible pending-key/multiplier/macro
// state, and the ambient bits (theme, config, status line) spec.md §3
// "Editor" names. Narrowed from the teacher's far richer
// original_source/helix-view/src/ui_tree.rs::UITree (LSP/DAP clients,
// clipboard provider, syntax/theme loaders, etc. are all out of scope
// here per spec.md).
type Editor struct {
	buffers map[buffer.ID]*buffer.Buffer
	tree    *view.Tree

	Registers  *Registers
	Multiplier CommandMultiplier
	Keymap     *keymap.Keymap

	pendingKeys [][]keymap.KeyEvent

	macroRecording   *MacroRecording
	macroReplayStack []rune

	idleDeadline time.Time

	Saves   chan SaveResult
	redraw  chan struct{}

	StatusMessage string
	ErrorMessage  string

	Theme  string
	Config *config.Config
}

// New creates an Editor with a single view over seed in a fresh view tree
// filling area, with empty pending-key state and a blank first sticky
// level.
func New(seed *buffer.Buffer, seedView *view.View, area view.Rect, cfg *config.Config) *Editor {
	buffers := make(map[buffer.ID]*buffer.Buffer)
	buffers[seed.ID] = seed

	if cfg == nil {
		cfg = config.Default()
	}

	return &Editor{
		buffers:     buffers,
		tree:        view.NewTree(seedView, area),
		Registers:   NewRegisters(),
		Keymap:      keymap.New(),
		pendingKeys: [][]keymap.KeyEvent{{}},
		Saves:       make(chan SaveResult, 16),
		redraw:      make(chan struct{}, 1),
		Theme:       cfg.Theme,
		Config:      cfg,
	}
}

// Tree returns the editor's view tree.
func (e *Editor) Tree() *view.Tree { return e.tree }

// Buffer returns the buffer with the given id.
func (e *Editor) Buffer(id buffer.ID) (*buffer.Buffer, bool) {
	b, ok := e.buffers[id]
	return b, ok
}

// Buffers returns every open buffer ordered by id, mirroring the
// determinism of the teacher's BTreeMap<BufferId, Buffer>.
func (e *Editor) Buffers() []*buffer.Buffer {
	ids := make([]string, 0, len(e.buffers))
	for id := range e.buffers {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	out := make([]*buffer.Buffer, len(ids))
	for i, id := range ids {
		out[i] = e.buffers[buffer.ID(id)]
	}
	return out
}

// OpenBuffer registers an already-constructed buffer with the editor.
func (e *Editor) OpenBuffer(b *buffer.Buffer) {
	e.buffers[b.ID] = b
}

// CloseBuffer closes and forgets the buffer with the given id, refusing
// unsaved changes unless force is set. It also drops the buffer from every
// view's jump list and access history.
func (e *Editor) CloseBuffer(id buffer.ID, force bool) error {
	b, ok := e.buffers[id]
	if !ok {
		return nil
	}
	if err := b.CloseDocument(force); err != nil {
		return err
	}
	delete(e.buffers, id)
	for _, v := range e.tree.Views() {
		v.RemoveBuffer(id)
	}
	return nil
}

// PendingKeys returns the current stack of sticky-level key vectors.
func (e *Editor) PendingKeys() [][]keymap.KeyEvent {
	return e.pendingKeys
}

// PushPendingLevel starts a new sticky level on entering a sticky sub-trie.
func (e *Editor) PushPendingLevel() {
	e.pendingKeys = append(e.pendingKeys, []keymap.KeyEvent{})
}

// PopPendingLevel drops the innermost sticky level, if more than one
// remains.
func (e *Editor) PopPendingLevel() {
	if len(e.pendingKeys) > 1 {
		e.pendingKeys = e.pendingKeys[:len(e.pendingKeys)-1]
	} else {
		e.pendingKeys[0] = nil
	}
}

// AppendPendingKey appends e to the innermost sticky level.
func (e *Editor) AppendPendingKey(ev keymap.KeyEvent) {
	last := len(e.pendingKeys) - 1
	e.pendingKeys[last] = append(e.pendingKeys[last], ev)
}

// ClearInnermostPending empties the innermost sticky level without
// dropping the level itself.
func (e *Editor) ClearInnermostPending() {
	e.pendingKeys[len(e.pendingKeys)-1] = nil
}

// StartMacroRecording begins capturing keys for register reg.
func (e *Editor) StartMacroRecording(reg rune) {
	e.macroRecording = &MacroRecording{Register: reg}
}

// StopMacroRecording ends capture and returns the recorded register and
// keys, or ok=false if nothing was recording.
func (e *Editor) StopMacroRecording() (*MacroRecording, bool) {
	rec := e.macroRecording
	e.macroRecording = nil
	if rec == nil {
		return nil, false
	}
	return rec, true
}

// RecordingMacro reports whether a macro capture is in progress.
func (e *Editor) RecordingMacro() bool {
	return e.macroRecording != nil
}

// RecordMacroKeys appends keys to the in-progress macro recording, if any.
func (e *Editor) RecordMacroKeys(keys ...keymap.KeyEvent) {
	if e.macroRecording == nil {
		return
	}
	e.macroRecording.Keys = append(e.macroRecording.Keys, keys...)
}

// IsReplaying reports whether reg is currently on the replay stack.
func (e *Editor) IsReplaying(reg rune) bool {
	for _, r := range e.macroReplayStack {
		if r == reg {
			return true
		}
	}
	return false
}

// PushReplay marks reg as actively replaying, refusing a register already
// on the stack (spec.md §4.7's replay-protection rule).
func (e *Editor) PushReplay(reg rune) error {
	if e.IsReplaying(reg) {
		return ErrMacroAlreadyReplaying
	}
	e.macroReplayStack = append(e.macroReplayStack, reg)
	return nil
}

// PopReplay removes the most recently pushed register from the replay
// stack.
func (e *Editor) PopReplay() {
	if len(e.macroReplayStack) == 0 {
		return
	}
	e.macroReplayStack = e.macroReplayStack[:len(e.macroReplayStack)-1]
}

// ResetIdleTimer sets the idle-timer deadline to now+d.
func (e *Editor) ResetIdleTimer(d time.Duration) {
	e.idleDeadline = time.Now().Add(d)
}

// IdleDeadline returns the current idle-timer deadline.
func (e *Editor) IdleDeadline() time.Time {
	return e.idleDeadline
}

// RequestRedraw signals the render loop without blocking if a redraw is
// already pending.
func (e *Editor) RequestRedraw() {
	select {
	case e.redraw <- struct{}{}:
	default:
	}
}

// RedrawRequested returns the channel the render loop waits on.
func (e *Editor) RedrawRequested() <-chan struct{} {
	return e.redraw
}

// NotifySaved pushes a save outcome onto the Saves stream, dropping it if
// the channel is full rather than blocking the caller.
func (e *Editor) NotifySaved(id buffer.ID, err error) {
	select {
	case e.Saves <- SaveResult{Buffer: id, Err: err}:
	default:
	}
}
