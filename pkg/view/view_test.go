package view

import (
	"testing"

	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/rope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SeedsJumpListWithCursorAtZero(t *testing.T) {
	buf := buffer.ID("b1")
	v := New(buf, []GutterComponent{"diagnostics"})

	assert.Equal(t, buf, v.Buffer)
	assert.Equal(t, 0, v.Jumps.Iter()[0].Selection.Primary().Head)
}

func TestAddToHistory_MovesExistingEntryToEnd(t *testing.T) {
	v := New(buffer.ID("b1"), nil)
	a, b := buffer.ID("a"), buffer.ID("b")

	v.AddToHistory(a)
	v.AddToHistory(b)
	v.AddToHistory(a)

	assert.Equal(t, []buffer.ID{b, a}, v.BufferAccessHistory())
}

func TestRecordModified_TracksLastTwoDistinctBuffers(t *testing.T) {
	v := New(buffer.ID("b1"), nil)
	a, b, c := buffer.ID("a"), buffer.ID("b"), buffer.ID("c")

	v.RecordModified(a)
	v.RecordModified(b)
	v.RecordModified(c)

	got := v.LastModifiedBuffers()
	assert.Equal(t, c, got[0])
	assert.Equal(t, b, got[1])
}

func TestObjectSelectionStack_PushPopOrder(t *testing.T) {
	v := New(buffer.ID("b1"), nil)

	_, ok := v.PopObjectSelection()
	assert.False(t, ok)

	first := rope.NewSelection(rope.NewRange(0, 3))
	second := rope.NewSelection(rope.NewRange(0, 8))
	v.PushObjectSelection(first)
	v.PushObjectSelection(second)

	got, ok := v.PopObjectSelection()
	require.True(t, ok)
	assert.Equal(t, second, got)

	got, ok = v.PopObjectSelection()
	require.True(t, ok)
	assert.Equal(t, first, got)

	_, ok = v.PopObjectSelection()
	assert.False(t, ok)
}

func TestRemoveBuffer_DropsJumpsAndHistory(t *testing.T) {
	buf := buffer.ID("b1")
	v := New(buf, nil)
	v.AddToHistory(buf)

	v.RemoveBuffer(buf)

	assert.Empty(t, v.BufferAccessHistory())
	assert.Empty(t, v.Jumps.Iter())
}
