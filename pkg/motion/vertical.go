package motion

import (
	"github.com/coreseekdev/glyph/pkg/rope"
	"github.com/unilibs/uniwidth"
)

// TextFormat carries the rendering parameters vertical motion needs to
// reason about columns the same way the view does, per spec.md §4.3
// "Visual vertical motion must agree with the view's own soft-wrap
// layout, or cursors visibly jump sideways on long lines."
type TextFormat struct {
	TabWidth  int
	WrapWidth int // 0 disables soft wrap
}

func (f TextFormat) tabWidth() int {
	if f.TabWidth <= 0 {
		return 8
	}
	return f.TabWidth
}

// visualColumn returns the rendered column of charPos within its line,
// expanding tabs to the next tab stop and widening double-width runes.
func visualColumn(text *rope.Rope, lineStart, charPos int, f TextFormat) int {
	col := 0
	tw := f.tabWidth()
	for pos := lineStart; pos < charPos; pos++ {
		ch, err := text.CharAt(pos)
		if err != nil {
			break
		}
		if ch == '\t' {
			col += tw - col%tw
			continue
		}
		col += uniwidth.RuneWidth(ch)
	}
	return col
}

// columnToChar finds the char position on the line starting at lineStart
// whose visual column is closest to, without exceeding, col (clamped to the
// line's own end).
func columnToChar(text *rope.Rope, lineStart, lineEnd int, col int, f TextFormat) int {
	cur := 0
	tw := f.tabWidth()
	pos := lineStart
	for pos < lineEnd {
		ch, err := text.CharAt(pos)
		if err != nil {
			break
		}
		var w int
		if ch == '\t' {
			w = tw - cur%tw
		} else {
			w = uniwidth.RuneWidth(ch)
		}
		if cur+w > col {
			break
		}
		cur += w
		pos++
	}
	return pos
}

// MoveVerticallyLogical moves count lines up (dir < 0) or down (dir > 0),
// remembering the caller-supplied target column (OldVisualColumn) rather
// than recomputing it from the current head on every line, so that
// repeated vertical motion through short lines returns to the original
// column once a long enough line is reached again, per spec.md §4.3.
func MoveVerticallyLogical(text *rope.Rope, r rope.Range, count, dir int, targetCol *rope.OldVisualColumn, f TextFormat, m Movement) (rope.Range, rope.OldVisualColumn) {
	line := lineContaining(text, r.Head)
	lineStart := text.LineStart(line)

	col := 0
	if targetCol != nil {
		col = targetCol.Column
	} else {
		col = visualColumn(text, lineStart, r.Head, f)
	}

	newLine := line + dir*count
	if newLine < 0 {
		newLine = 0
	}
	if max := text.LineCount() - 1; newLine > max {
		newLine = max
	}

	newLineStart := text.LineStart(newLine)
	newLineEnd := MoveLineEnd(text, rope.Range{Anchor: newLineStart, Head: newLineStart}, Move).Head
	head := columnToChar(text, newLineStart, newLineEnd, col, f)

	return apply(m, r.Anchor, head), rope.OldVisualColumn{Column: col}
}

// MoveVerticallyVisual is identical to MoveVerticallyLogical except that
// "line" means a soft-wrapped visual row rather than a rope line, per
// spec.md §4.3 "visual vertical motion". Soft-wrap rows are computed by
// slicing each logical line into WrapWidth-wide visual-column segments.
func MoveVerticallyVisual(text *rope.Rope, r rope.Range, count, dir int, targetCol *rope.OldVisualColumn, f TextFormat, m Movement) (rope.Range, rope.OldVisualColumn) {
	if f.WrapWidth <= 0 {
		return MoveVerticallyLogical(text, r, count, dir, targetCol, f, m)
	}

	rows := visualRows(text, f)
	row := visualRowAt(rows, r.Head)

	col := 0
	if targetCol != nil {
		col = targetCol.Column
	} else {
		col = visualColumn(text, rows[row].start, r.Head, f) - rows[row].colOffset
	}

	newRow := row + dir*count
	if newRow < 0 {
		newRow = 0
	}
	if max := len(rows) - 1; newRow > max {
		newRow = max
	}

	target := rows[newRow]
	head := columnToChar(text, target.start, target.end, target.colOffset+col, f)

	return apply(m, r.Anchor, head), rope.OldVisualColumn{Column: col}
}

type visualRow struct {
	start, end int // char range covered by this visual row
	colOffset  int // visual column of start relative to the logical line start
}

func visualRows(text *rope.Rope, f TextFormat) []visualRow {
	var rows []visualRow
	for line := 0; line < text.LineCount(); line++ {
		lineStart := text.LineStart(line)
		lineEnd := MoveLineEnd(text, rope.Range{Anchor: lineStart, Head: lineStart}, Move).Head

		segStart := lineStart
		segColStart := 0
		col := 0
		pos := lineStart
		for pos < lineEnd {
			ch, err := text.CharAt(pos)
			if err != nil {
				break
			}
			var w int
			if ch == '\t' {
				w = f.tabWidth() - col%f.tabWidth()
			} else {
				w = uniwidth.RuneWidth(ch)
			}
			if col-segColStart+w > f.WrapWidth && pos > segStart {
				rows = append(rows, visualRow{start: segStart, end: pos, colOffset: segColStart})
				segStart = pos
				segColStart = col
			}
			col += w
			pos++
		}
		rows = append(rows, visualRow{start: segStart, end: lineEnd, colOffset: segColStart})
	}
	if len(rows) == 0 {
		rows = append(rows, visualRow{start: 0, end: 0, colOffset: 0})
	}
	return rows
}

func visualRowAt(rows []visualRow, charPos int) int {
	for i, row := range rows {
		if charPos >= row.start && (charPos < row.end || i == len(rows)-1) {
			return i
		}
	}
	return len(rows) - 1
}
