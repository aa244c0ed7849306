package textobject

import (
	"testing"

	"github.com/coreseekdev/glyph/pkg/rope"
	"github.com/stretchr/testify/assert"
)

func TestParagraphObject_Inside_SpansFirstLine(t *testing.T) {
	text := rope.New("first\n\nparagraph\n\n")
	got := ParagraphObject(text, rope.Range{Anchor: 4, Head: 4}, false, 1)
	assert.Equal(t, rope.Range{Anchor: 0, Head: text.LineStart(1)}, got)
}

func TestParagraphObject_Around_ConsumesTrailingBlanks(t *testing.T) {
	text := rope.New("first\n\nparagraph\n\n")
	got := ParagraphObject(text, rope.Range{Anchor: 4, Head: 4}, true, 1)
	assert.Equal(t, 0, got.Anchor)
	assert.Equal(t, text.LineStart(2), got.Head) // through the blank line to "paragraph"
}

func TestParagraphObject_OnBlankLine_ScansUpward(t *testing.T) {
	text := rope.New("first\n\nparagraph\n\n")
	got := ParagraphObject(text, rope.Range{Anchor: 6, Head: 6}, false, 1)
	assert.Equal(t, 0, got.Anchor)
}
