package textobject

import (
	"testing"

	"github.com/coreseekdev/glyph/pkg/rope"
	"github.com/stretchr/testify/assert"
)

type fakeHunkLookup struct {
	line  uint32
	after Range
	ok    bool
}

func (f fakeHunkLookup) HunkAt(line uint32) (Range, bool) {
	if line == f.line {
		return f.after, f.ok
	}
	return Range{}, false
}

func TestVCSChange_SelectsHunkLines(t *testing.T) {
	text := rope.New("a\nb\nc\nd\n")
	hunks := fakeHunkLookup{line: 1, after: Range{Start: 1, End: 3}, ok: true}

	got, ok := VCSChange(text, rope.Range{Anchor: 2, Head: 2}, hunks) // inside line 1 ("b")
	assert.True(t, ok)
	assert.Equal(t, text.LineStart(1), got.Anchor)
	assert.Equal(t, text.LineStart(3), got.Head)
}

func TestVCSChange_NoHunkAtLine(t *testing.T) {
	text := rope.New("a\nb\nc\n")
	hunks := fakeHunkLookup{line: 5, after: Range{}, ok: true}

	_, ok := VCSChange(text, rope.Range{Anchor: 0, Head: 0}, hunks)
	assert.False(t, ok)
}
