package lspdap

import (
	"fmt"
	"sort"

	"github.com/coreseekdev/glyph/pkg/rope"
)

// TextEdit is a single replacement over a range, LSP's wire shape for both
// "workspace/applyEdit" and "textDocument/formatting" style responses.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// charEdit is a TextEdit resolved to character offsets in the document's
// own coordinate space, used internally to build a ChangeSet.
type charEdit struct {
	start, end int
	text       string
}

// BuildTransaction converts inbound TextEdits into the rope.Transaction a
// Buffer.Apply call expects, completing the third item spec.md §6 names as
// crossing the LSP/DAP boundary ("transaction application"). Edits must be
// non-overlapping, per the LSP spec's contract on TextEdit arrays; overlap
// is reported as an error rather than silently resolved one way or another.
func BuildTransaction(text *rope.Rope, edits []TextEdit, enc OffsetEncoding) (*rope.Transaction, error) {
	resolved := make([]charEdit, len(edits))
	for i, e := range edits {
		start, end := RangeToCharRange(text, e.Range, enc)
		if start > end {
			return nil, fmt.Errorf("edit %d: range start %d after end %d", i, start, end)
		}
		resolved[i] = charEdit{start: start, end: end, text: e.NewText}
	}

	sort.Slice(resolved, func(i, j int) bool { return resolved[i].start < resolved[j].start })

	for i := 1; i < len(resolved); i++ {
		if resolved[i].start < resolved[i-1].end {
			return nil, fmt.Errorf("edit %d overlaps preceding edit ending at %d", i, resolved[i-1].end)
		}
	}

	cs := rope.NewChangeSet(text.Length())
	pos := 0
	for _, e := range resolved {
		if e.start > pos {
			cs.Retain(e.start - pos)
		}
		if e.end > e.start {
			cs.Delete(e.end - e.start)
		}
		if e.text != "" {
			cs.Insert(e.text)
		}
		pos = e.end
	}
	if pos < text.Length() {
		cs.Retain(text.Length() - pos)
	}

	return rope.NewTransaction(cs), nil
}
