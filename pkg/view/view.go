package view

import (
	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/rope"
	"github.com/google/uuid"
)

// ID identifies a View.
type ID string

// NewID generates a fresh view identifier.
func NewID() ID { return ID(uuid.New().String()) }

// Rect is a screen area in terminal cells.
type Rect struct {
	X, Y, Width, Height uint16
}

// Offset is a scroll position, in (row, col) text cells.
type Offset struct {
	Row, Col int
}

// GutterComponent names one gutter column (line numbers, diagnostics,
// diff markers, ...); the renderer resolves names to drawing logic.
type GutterComponent string

// View owns everything spec.md §3 "View" names: the buffer it currently
// shows, scroll position, screen area, jump list, buffer-access history,
// the last two distinct buffers shown (for quick alternate-buffer swap),
// an object-selection stack for expand/shrink textobject selection, its
// gutter layout, and a per-buffer last-synced revision map so switching
// back to a buffer only replays changes since this view last saw it.
//
// Grounded on the teacher's original BufferView (helix-view/src/
// buffer_view.rs), generalized from its Rust fields one-for-one.
type View struct {
	ID     ID
	Buffer buffer.ID

	Offset Offset
	Area   Rect

	Jumps *JumpList

	bufferAccessHistory []buffer.ID
	lastModifiedBuffers [2]buffer.ID

	objectSelections []*rope.Selection

	Gutters []GutterComponent

	bufferRevisions map[buffer.ID]int
}

// New creates a View focused on buf, seeding its jump list with a
// zero-width cursor at the document start.
func New(buf buffer.ID, gutters []GutterComponent) *View {
	return &View{
		ID:     NewID(),
		Buffer: buf,
		Jumps:  NewJumpList(Jump{Buffer: buf, Selection: rope.NewSelection(rope.Point(0))}),
		Gutters: gutters,
		bufferRevisions: make(map[buffer.ID]int),
	}
}

// AddToHistory records buf as most recently accessed from this view,
// moving it to the end if already present.
func (v *View) AddToHistory(buf buffer.ID) {
	for i, id := range v.bufferAccessHistory {
		if id == buf {
			v.bufferAccessHistory = append(v.bufferAccessHistory[:i], v.bufferAccessHistory[i+1:]...)
			break
		}
	}
	v.bufferAccessHistory = append(v.bufferAccessHistory, buf)
}

// BufferAccessHistory returns buffers this view has shown, oldest first.
func (v *View) BufferAccessHistory() []buffer.ID { return v.bufferAccessHistory }

// RecordModified pushes buf to the front of the last-modified pair, used
// to support jumping between the two most recently edited buffers.
func (v *View) RecordModified(buf buffer.ID) {
	if v.lastModifiedBuffers[0] == buf {
		return
	}
	v.lastModifiedBuffers[1] = v.lastModifiedBuffers[0]
	v.lastModifiedBuffers[0] = buf
}

// LastModifiedBuffers returns the most-recent and second-most-recent
// distinct buffers edited from this view.
func (v *View) LastModifiedBuffers() [2]buffer.ID { return v.lastModifiedBuffers }

// PushObjectSelection saves sel onto the object-selection stack, so a
// subsequent shrink can restore it (spec.md §3 "expand/shrink").
func (v *View) PushObjectSelection(sel *rope.Selection) {
	v.objectSelections = append(v.objectSelections, sel)
}

// PopObjectSelection removes and returns the most recently pushed
// selection, or false if the stack is empty.
func (v *View) PopObjectSelection() (*rope.Selection, bool) {
	if len(v.objectSelections) == 0 {
		return nil, false
	}
	last := v.objectSelections[len(v.objectSelections)-1]
	v.objectSelections = v.objectSelections[:len(v.objectSelections)-1]
	return last, true
}

// ClearObjectSelections empties the expand/shrink stack, e.g. on any
// motion that isn't itself an object selection.
func (v *View) ClearObjectSelections() {
	v.objectSelections = nil
}

// LastSyncedRevision returns the history revision index this view last
// synced buf at, or -1 if never synced.
func (v *View) LastSyncedRevision(buf buffer.ID) int {
	if rev, ok := v.bufferRevisions[buf]; ok {
		return rev
	}
	return -1
}

// SyncChanges brings this view's record of buf's revision up to date,
// matching spec.md's "must remain consistent with the Buffer's history
// via sync_changes()" lifecycle rule.
func (v *View) SyncChanges(buf *buffer.Buffer) {
	v.bufferRevisions[buf.ID] = buf.History().CurrentIndex()
}

// RemoveBuffer forgets buf entirely: drops its jumps and access-history
// entries, called when the buffer closes.
func (v *View) RemoveBuffer(buf buffer.ID) {
	v.Jumps.Remove(buf)
	for i, id := range v.bufferAccessHistory {
		if id == buf {
			v.bufferAccessHistory = append(v.bufferAccessHistory[:i], v.bufferAccessHistory[i+1:]...)
			break
		}
	}
	delete(v.bufferRevisions, buf)
}

// Apply re-maps this view's jump-list selections for buf through cs,
// mirroring BufferView::apply in the teacher's original source.
func (v *View) Apply(buf buffer.ID, cs *rope.ChangeSet) {
	v.Jumps.Apply(buf, cs)
}
