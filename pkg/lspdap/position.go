package lspdap

import (
	"github.com/coreseekdev/glyph/pkg/motion"
	"github.com/coreseekdev/glyph/pkg/rope"
)

// OffsetEncoding is one of the three position encodings LSP servers may
// negotiate during initialize (spec.md §6: "selection ranges as (line,char)
// pairs in the LSP offset-encoding the server negotiated").
type OffsetEncoding int

const (
	UTF8 OffsetEncoding = iota
	UTF16
	UTF32
)

// Position is a zero-based (line, char) pair in a negotiated encoding,
// the wire shape LSP's TextDocumentPositionParams use.
type Position struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

// Range is a half-open span between two Positions, LSP's wire shape for
// selections and text edits.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// CharToPosition converts a character offset into text to a (line, char)
// position in enc, the conversion buffer-side collaborators need before
// sending a selection over the wire.
func CharToPosition(text *rope.Rope, charOffset int, enc OffsetEncoding) Position {
	line := motion.LineContaining(text, charOffset)
	lineStart := text.LineStart(line)
	col := encodeColumn(text, lineStart, charOffset, enc)
	return Position{Line: line, Char: col}
}

// PositionToChar converts a (line, char) position in enc back to a
// character offset into text, the conversion needed when an inbound
// LSP/DAP edit names its range in the negotiated encoding.
func PositionToChar(text *rope.Rope, pos Position, enc OffsetEncoding) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= text.LineCount() {
		return text.Length()
	}
	lineStart := text.LineStart(pos.Line)
	return decodeColumn(text, lineStart, pos.Char, enc)
}

// RangeToCharRange converts an LSP Range in enc to a [start, end) character
// range over text.
func RangeToCharRange(text *rope.Rope, r Range, enc OffsetEncoding) (int, int) {
	return PositionToChar(text, r.Start, enc), PositionToChar(text, r.End, enc)
}

// CharRangeToRange converts a [start, end) character range over text to an
// LSP Range in enc.
func CharRangeToRange(text *rope.Rope, start, end int, enc OffsetEncoding) Range {
	return Range{
		Start: CharToPosition(text, start, enc),
		End:   CharToPosition(text, end, enc),
	}
}

// encodeColumn measures the distance from lineStart to charOffset in enc's
// units (UTF-8 bytes, UTF-16 code units, or Unicode code points).
func encodeColumn(text *rope.Rope, lineStart, charOffset int, enc OffsetEncoding) int {
	switch enc {
	case UTF8:
		return text.CharToByte(charOffset) - text.CharToByte(lineStart)
	case UTF16:
		return text.CharToUTF16Offset(charOffset) - text.CharToUTF16Offset(lineStart)
	default: // UTF32: one code point per character
		return charOffset - lineStart
	}
}

// decodeColumn is encodeColumn's inverse: given a column measured in enc's
// units from lineStart, it returns the absolute character offset.
func decodeColumn(text *rope.Rope, lineStart, col int, enc OffsetEncoding) int {
	switch enc {
	case UTF8:
		lineStartByte := text.CharToByte(lineStart)
		return text.ByteToChar(lineStartByte + col)
	case UTF16:
		lineStartUTF16 := text.CharToUTF16Offset(lineStart)
		return text.UTF16OffsetToChar(lineStartUTF16 + col)
	default: // UTF32
		return lineStart + col
	}
}
