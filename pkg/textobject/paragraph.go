package textobject

import (
	"github.com/coreseekdev/glyph/pkg/motion"
	"github.com/coreseekdev/glyph/pkg/rope"
)

func isBlankLine(text *rope.Rope, line int) bool {
	return text.LineStart(line) == text.LineEnd(line)
}

// ParagraphObject implements spec.md §4.4 paragraph_object: if on a blank
// line, scan upward to the paragraph start; then select downward through
// non-blank lines; in "around" mode consume trailing blanks; repeat count
// times, each iteration starting after the previous end.
func ParagraphObject(text *rope.Rope, r rope.Range, around bool, count int) rope.Range {
	if count < 1 {
		count = 1
	}
	lineCount := text.LineCount()
	line := motion.LineContaining(text, r.Head)

	start := line
	if isBlankLine(text, start) {
		// A blank line isn't itself a paragraph: scan past the blank run,
		// then up through the preceding paragraph's content to its start.
		for start > 0 && isBlankLine(text, start-1) {
			start--
		}
		if start > 0 {
			start--
			for start > 0 && !isBlankLine(text, start-1) {
				start--
			}
		}
	} else {
		for start > 0 && !isBlankLine(text, start-1) {
			start--
		}
	}

	end := start
	for i := 0; i < count; i++ {
		if i > 0 {
			end++
			if end >= lineCount {
				end = lineCount - 1
				break
			}
		}
		for end < lineCount-1 && !isBlankLine(text, end+1) {
			end++
		}
		if around {
			for end < lineCount-1 && isBlankLine(text, end+1) {
				end++
			}
		}
	}

	endPos := text.LineEnd(end)
	if end < lineCount-1 {
		endPos = text.LineStart(end + 1)
	}
	return rope.Range{Anchor: text.LineStart(start), Head: endPos}
}
