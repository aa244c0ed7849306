// Package view implements the View aggregate and the windowing Tree that
// arranges views on screen.
package view

import (
	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/rope"
)

// jumpListCapacity bounds JumpList per spec.md §3 "Bounded deque
// (capacity 30)".
const jumpListCapacity = 30

// Jump is one entry in a JumpList: a buffer and the selection within it at
// the time of the jump.
type Jump struct {
	Buffer    buffer.ID
	Selection *rope.Selection
}

// JumpList is a bounded deque of Jumps with a current index, per spec.md
// §3. push truncates any forward history; forward/backward move the
// index; remove drops entries referencing a closed buffer; Apply re-maps
// selections through an edit to the buffer they reference.
type JumpList struct {
	jumps   []Jump
	current int
}

// NewJumpList creates a JumpList seeded with one entry.
func NewJumpList(initial Jump) *JumpList {
	return &JumpList{jumps: []Jump{initial}, current: 0}
}

// Push records a new jump, discarding any entries reachable via Forward
// and silently ignoring a duplicate of the most recent entry.
func (j *JumpList) Push(jump Jump) {
	j.jumps = j.jumps[:j.current]
	if len(j.jumps) > 0 {
		last := j.jumps[len(j.jumps)-1]
		if last.Buffer == jump.Buffer && sameSelection(last.Selection, jump.Selection) {
			return
		}
	}
	for len(j.jumps) >= jumpListCapacity {
		j.jumps = j.jumps[1:]
	}
	j.jumps = append(j.jumps, jump)
	j.current = len(j.jumps)
}

func sameSelection(a, b *rope.Selection) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Len() != b.Len() {
		return false
	}
	ar, br := a.Iter(), b.Iter()
	for i := range ar {
		if ar[i] != br[i] {
			return false
		}
	}
	return true
}

// Forward moves the index ahead by count entries, returning the Jump
// landed on, or false if that would run past the end.
func (j *JumpList) Forward(count int) (Jump, bool) {
	if j.current+count < len(j.jumps) {
		j.current += count
		return j.jumps[j.current], true
	}
	return Jump{}, false
}

// Backward moves the index back by count entries. If the list is
// currently at its tip (no forward entries recorded yet), it first pushes
// currentJump so Forward can return to where Backward was called from —
// matching the teacher's BufferView::jumps.backward taking the live
// buffer/view selection for exactly this purpose.
func (j *JumpList) Backward(count int, currentJump Jump) (Jump, bool) {
	target := j.current - count
	if target < 0 {
		return Jump{}, false
	}
	if j.current == len(j.jumps) {
		j.Push(currentJump)
	}
	j.current = target
	return j.jumps[j.current], true
}

// Remove drops every entry referencing buf, e.g. when that buffer closes.
func (j *JumpList) Remove(buf buffer.ID) {
	kept := j.jumps[:0]
	for _, jump := range j.jumps {
		if jump.Buffer != buf {
			kept = append(kept, jump)
		}
	}
	if j.current > len(kept) {
		j.current = len(kept)
	}
	j.jumps = kept
}

// Iter returns the JumpList's entries in order.
func (j *JumpList) Iter() []Jump {
	return j.jumps
}

// Apply re-maps every jump's selection against buf through transaction,
// so closed or edited text never leaves a jump pointing at a stale range.
func (j *JumpList) Apply(buf buffer.ID, cs *rope.ChangeSet) {
	for i := range j.jumps {
		if j.jumps[i].Buffer != buf || j.jumps[i].Selection == nil {
			continue
		}
		sel := j.jumps[i].Selection
		ranges := make([]rope.Range, 0, sel.Len())
		for _, r := range sel.Iter() {
			ranges = append(ranges, r.Map(cs, rope.AssocAfter))
		}
		j.jumps[i].Selection = rope.NewSelectionWithPrimary(ranges, sel.PrimaryIndex())
	}
}
