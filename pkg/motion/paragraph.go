package motion

import "github.com/coreseekdev/glyph/pkg/rope"

func isBlankLine(text *rope.Rope, line int) bool {
	start := text.LineStart(line)
	end := text.LineEnd(line)
	return start == end
}

// MoveNextParagraph moves to the start of the next paragraph from the
// line containing pos, per spec.md §4.3 "Paragraph motions": advance past
// the current paragraph's non-blank lines, then past the blank run that
// separates it from the next one.
func MoveNextParagraph(text *rope.Rope, r rope.Range, m Movement) rope.Range {
	lineCount := text.LineCount()
	line := lineContaining(text, r.Head)

	onLastCharOfLine := r.Head == text.LineEnd(line)
	if onLastCharOfLine && line < lineCount-1 {
		line++
	}

	for line < lineCount && !isBlankLine(text, line) {
		line++
	}
	for line < lineCount && isBlankLine(text, line) {
		line++
	}
	if line >= lineCount {
		line = lineCount - 1
	}

	return apply(m, r.Anchor, text.LineStart(line))
}

// MovePrevParagraph is the mirror of MoveNextParagraph: skip the blank run
// the cursor currently sits in (if any), then skip back over the paragraph
// above it, landing on that paragraph's first line.
func MovePrevParagraph(text *rope.Rope, r rope.Range, m Movement) rope.Range {
	line := lineContaining(text, r.Head)

	onFirstCharOfLine := r.Head == text.LineStart(line)
	if onFirstCharOfLine && line > 0 {
		line--
	}

	for line > 0 && isBlankLine(text, line) {
		line--
	}
	for line > 0 && !isBlankLine(text, line-1) {
		line--
	}

	return apply(m, r.Anchor, text.LineStart(line))
}

// ParagraphRange returns the [start, end) char range of the paragraph
// containing pos. around also consumes the run of trailing blank lines
// after the paragraph, per spec.md's "trailing blanks always belong to
// the preceding paragraph" rule; inside stops at the first blank line
// (or document end).
func ParagraphRange(text *rope.Rope, pos int, around bool) (int, int) {
	lineCount := text.LineCount()
	line := lineContaining(text, pos)

	start := line
	for start > 0 && !isBlankLine(text, start-1) {
		start--
	}

	end := line
	for end < lineCount-1 && !isBlankLine(text, end+1) {
		end++
	}

	if around {
		for end < lineCount-1 && isBlankLine(text, end+1) {
			end++
		}
	}

	endPos := text.LineEnd(end)
	if end < lineCount-1 {
		endPos = text.LineStart(end + 1)
	}
	return text.LineStart(start), endPos
}
