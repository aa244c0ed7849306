package textobject

import (
	"github.com/coreseekdev/glyph/pkg/motion"
	"github.com/coreseekdev/glyph/pkg/rope"
)

// HunkLookup is the subset of pkg/diff.Handle that VCSChange needs: looking
// up the hunk covering a given document line. Declared here rather than
// imported directly so this package stays independent of the diff worker's
// concurrency machinery.
type HunkLookup interface {
	HunkAt(line uint32) (after Range, ok bool)
}

// Range mirrors pkg/diff.Hunk's After field shape without importing it.
type Range struct {
	Start, End uint32
}

// VCSChange selects the lines of the hunk covering r.Head's line, looked up
// on the buffer's diff handle, per spec.md §4.4.
func VCSChange(text *rope.Rope, r rope.Range, hunks HunkLookup) (rope.Range, bool) {
	line := uint32(motion.LineContaining(text, r.Head))
	after, ok := hunks.HunkAt(line)
	if !ok {
		return r, false
	}
	start := text.LineStart(int(after.Start))
	var end int
	if int(after.End) >= text.LineCount() {
		end = text.LineEnd(text.LineCount() - 1)
	} else {
		end = text.LineStart(int(after.End))
	}
	return rope.Range{Anchor: start, Head: end}, true
}
