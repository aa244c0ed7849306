package motion

import (
	"github.com/coreseekdev/glyph/pkg/rope"
)

// Target names one of the word-motion destinations of spec.md §4.3.
type Target int

const (
	NextWordStart Target = iota
	NextWordEnd
	PrevWordStart
	PrevWordEnd
	NextLongWordStart
	NextLongWordEnd
	PrevLongWordStart
)

func (t Target) isPrev() bool {
	return t == PrevWordStart || t == PrevLongWordStart || t == PrevWordEnd
}

// reachedTarget is the single source of truth for word-motion boundaries,
// per spec.md §4.3 "Reached-target predicates... must match the tables in
// §8" (Scenario C). prev/next are already-classified categories, at a
// position pair, not raw runes — see wordClassifier.
func reachedTarget(target Target, prev, next Category, nextIsLineEnding bool) bool {
	switch target {
	case NextWordStart, PrevWordEnd:
		return isWordBoundary(prev, next) && (nextIsLineEnding || next != CategoryWhitespace)
	case NextWordEnd, PrevWordStart:
		return isWordBoundary(prev, next) && (prev != CategoryWhitespace || nextIsLineEnding)
	case NextLongWordStart:
		return isLongWordBoundary(prev, next) && (nextIsLineEnding || next != CategoryWhitespace)
	case NextLongWordEnd, PrevLongWordStart:
		return isLongWordBoundary(prev, next) && (prev != CategoryWhitespace || nextIsLineEnding)
	default:
		return false
	}
}

// MoveWord performs one word motion of the given target, repeated count
// times (stopping early if a step makes no progress), per spec.md §4.3.
func MoveWord(text *rope.Rope, r rope.Range, count int, target Target) rope.Range {
	length := text.Length()
	isPrev := target.isPrev()

	if (isPrev && r.Head == 0) || (!isPrev && r.Head == length) {
		return r
	}

	cur := prepareStartRange(text, r, isPrev)
	for i := 0; i < count; i++ {
		next := rangeToTarget(text, cur, target)
		if next == cur {
			break
		}
		cur = next
	}
	return cur
}

// prepareStartRange implements spec.md §4.3 step 1: "Adjust the starting
// range for block-cursor semantics: in forward motions, shift head one
// grapheme; in backward motions, shift head one grapheme the other way."
// The anchor is irrelevant to the result beyond this point; rangeToTarget
// sets it once the scan reaches its first boundary.
func prepareStartRange(text *rope.Rope, r rope.Range, isPrev bool) rope.Range {
	if isPrev {
		if r.Anchor < r.Head {
			return rope.Range{Anchor: r.Head, Head: text.PrevGraphemeStart(r.Head)}
		}
		return rope.Range{Anchor: text.NextGraphemeStart(r.Head), Head: r.Head}
	}
	if r.Anchor < r.Head {
		return rope.Range{Anchor: text.PrevGraphemeStart(r.Head), Head: r.Head}
	}
	return rope.Range{Anchor: r.Head, Head: text.NextGraphemeStart(r.Head)}
}

// rangeToTarget scans from origin.Head to the next (or, for *Prev* targets,
// previous) position satisfying reachedTarget, per spec.md §4.3 steps 2-3:
// skip any initial line-ending run (resetting the anchor to head once a
// non-ending char is found), then advance until reached_target first holds
// (fixing the anchor if still at the start) and again (terminating).
func rangeToTarget(text *rope.Rope, origin rope.Range, target Target) rope.Range {
	isPrev := target.isPrev()
	length := text.Length()
	classify := wordClassifier(text)

	advance := func(pos int) int {
		if isPrev {
			if pos == 0 {
				return pos
			}
			return pos - 1
		}
		if pos == length {
			return pos
		}
		return pos + 1
	}
	runeAt := func(pos int) (rune, bool) {
		if isPrev {
			pos--
		}
		if pos < 0 || pos >= length {
			return 0, false
		}
		ch, err := text.CharAt(pos)
		if err != nil {
			return 0, false
		}
		return ch, true
	}
	categoryAt := func(pos int) (Category, bool) {
		if isPrev {
			pos--
		}
		if pos < 0 || pos >= length {
			return CategoryEOL, false
		}
		return classify(pos), true
	}

	anchor := origin.Anchor
	head := origin.Head

	// Skip any initial line-ending run, resetting the anchor to head once a
	// non-ending char is found.
	for {
		ch, ok := runeAt(head)
		if !ok || !isLineEnding(ch) {
			break
		}
		head = advance(head)
		anchor = head
	}

	// The first comparison has no real "prev" yet, so it always counts as a
	// hit: this is what lets reached_target's first firing set the anchor
	// instead of immediately terminating a zero-width scan.
	var prevCat Category
	prevOK := false
	anchorSet := false

	for {
		nextCh, ok := runeAt(head)
		if !ok {
			if isPrev {
				head = 0
			} else {
				head = text.PrevGraphemeStart(length)
			}
			break
		}
		nextCat, _ := categoryAt(head)
		if !prevOK || reachedTarget(target, prevCat, nextCat, isLineEnding(nextCh)) {
			if !anchorSet {
				anchor = head
				anchorSet = true
			} else {
				break
			}
		}
		prevCat, prevOK = nextCat, true
		head = advance(head)
	}

	return rope.Range{Anchor: anchor, Head: head}
}
