package motion

import "github.com/coreseekdev/glyph/pkg/rope"

// Movement selects whether a motion replaces the range or extends it by
// moving only the head, per spec.md §4.3.
type Movement int

const (
	Move Movement = iota
	Extend
)

// apply returns the resulting range for the given movement, keeping anchor
// fixed under Extend and collapsing anchor to head under Move.
func apply(m Movement, anchor, head int) rope.Range {
	if m == Extend {
		return rope.Range{Anchor: anchor, Head: head}
	}
	return rope.Range{Anchor: head, Head: head}
}

// MoveHorizontally steps the range's head count graphemes left (dir < 0) or
// right (dir > 0), clamped to the document bounds, per spec.md §4.3
// "Character motions operate on grapheme boundaries, never splitting a
// multi-codepoint grapheme cluster."
func MoveHorizontally(text *rope.Rope, r rope.Range, count, dir int, m Movement) rope.Range {
	head := r.Head
	for i := 0; i < count; i++ {
		if dir < 0 {
			if head == 0 {
				break
			}
			head = text.PrevGraphemeStart(head)
		} else {
			if head == text.Length() {
				break
			}
			head = text.NextGraphemeStart(head)
		}
	}
	return apply(m, r.Anchor, head)
}

// MoveLineStart moves the head to the first non-blank column of its current
// line, or column 0 if the line is entirely blank.
func MoveLineStart(text *rope.Rope, r rope.Range, m Movement) rope.Range {
	line := lineContaining(text, r.Head)
	start := text.LineStart(line)
	end := text.LineEnd(line)
	pos := start
	for pos < end {
		ch, err := text.CharAt(pos)
		if err != nil || Categorize(ch) != CategoryWhitespace {
			break
		}
		pos++
	}
	return apply(m, r.Anchor, pos)
}

// MoveLineEnd moves the head to the last column of its current line, before
// any line-ending character.
func MoveLineEnd(text *rope.Rope, r rope.Range, m Movement) rope.Range {
	line := lineContaining(text, r.Head)
	end := text.LineEnd(line)
	pos := end
	for pos > text.LineStart(line) {
		ch, err := text.CharAt(pos - 1)
		if err != nil || !isLineEnding(ch) {
			break
		}
		pos--
	}
	return apply(m, r.Anchor, pos)
}
