// Package textobject implements range-selection functions parameterized by
// (inside/around) and an object kind, per spec.md §4.4: word, paragraph,
// surrounding pair, VCS change, and Tree-sitter capture. Like pkg/motion,
// every function here is a pure (text, range, ...) -> range computation;
// nothing mutates a buffer.
package textobject

import (
	"github.com/coreseekdev/glyph/pkg/motion"
	"github.com/coreseekdev/glyph/pkg/rope"
)

// WordObject expands range bidirectionally from its cursor position while
// the surrounding runes share a non-whitespace, non-EOL category consistent
// with the starting category (long treats Word/Punctuation as one class,
// mirroring motion's long-word rule). In "around" mode the end is extended
// forward through trailing whitespace.
func WordObject(text *rope.Rope, r rope.Range, around, long bool) rope.Range {
	pos := r.Head
	length := text.Length()
	if pos >= length {
		pos = length - 1
	}
	if pos < 0 {
		return r
	}

	startCh, err := text.CharAt(pos)
	if err != nil {
		return r
	}
	cat := motion.Categorize(startCh)
	if cat == motion.CategoryEOL {
		return r
	}

	sameClass := func(ch rune) bool {
		c := motion.Categorize(ch)
		if c == motion.CategoryWhitespace || c == motion.CategoryEOL {
			return false
		}
		if long {
			return c != motion.CategoryWhitespace && c != motion.CategoryEOL
		}
		return c == cat
	}

	start := pos
	for start > 0 {
		ch, err := text.CharAt(start - 1)
		if err != nil || !sameClass(ch) {
			break
		}
		start--
	}

	end := pos + 1
	for end < length {
		ch, err := text.CharAt(end)
		if err != nil || !sameClass(ch) {
			break
		}
		end++
	}

	if around {
		for end < length {
			ch, err := text.CharAt(end)
			if err != nil || motion.Categorize(ch) != motion.CategoryWhitespace {
				break
			}
			end++
		}
	}

	return rope.Range{Anchor: start, Head: end}
}
