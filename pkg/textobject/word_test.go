package textobject

import (
	"testing"

	"github.com/coreseekdev/glyph/pkg/rope"
	"github.com/stretchr/testify/assert"
)

func TestWordObject_Inside_StopsAtWhitespace(t *testing.T) {
	text := rope.New("foo bar baz")
	got := WordObject(text, rope.Range{Anchor: 5, Head: 5}, false, false)
	assert.Equal(t, rope.Range{Anchor: 4, Head: 7}, got)
}

func TestWordObject_Around_ConsumesTrailingWhitespace(t *testing.T) {
	text := rope.New("foo bar baz")
	got := WordObject(text, rope.Range{Anchor: 5, Head: 5}, true, false)
	assert.Equal(t, rope.Range{Anchor: 4, Head: 8}, got)
}

func TestWordObject_Long_CrossesPunctuation(t *testing.T) {
	text := rope.New("foo.bar baz")
	got := WordObject(text, rope.Range{Anchor: 4, Head: 4}, false, true)
	assert.Equal(t, rope.Range{Anchor: 0, Head: 7}, got)
}
