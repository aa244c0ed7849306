package rope

import (
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
	znkrdiff "znkr.io/diff"
)

// compareConfig bounds the two-level diff in CompareRopes.
const (
	compareLineSizeRatio  = 5   // size-asymmetry threshold between before/after line counts
	compareMaxHunkLines   = 200 // above this, fall back to whole-hunk replace
	compareLargeInsertCut = 500 // above this many lines, copy the insert as one slice
)

// CompareRopes produces the minimal-apply Transaction taking before to
// after.
//
// It runs a two-level diff: a line-granularity histogram-style diff
// (znkr.io/diff, the same algorithm family the line-hunk diff worker in
// pkg/diff uses) locates matched/unmatched line ranges, and a
// character-level Myers diff (github.com/sergi/go-diff) turns each small,
// balanced unmatched hunk into Retain/Delete/Insert operations. Large or
// lopsided hunks are emitted as a single Delete+Insert instead, since
// character diffing a huge or wildly asymmetric hunk both costs more and
// tends to produce a less readable edit than just replacing it outright.
func CompareRopes(before, after *Rope) *Transaction {
	beforeLines := splitKeepLineEnding(before.String())
	afterLines := splitKeepLineEnding(after.String())

	cs := NewChangeSet(before.Length())

	hunks := znkrdiff.HunksFunc(beforeLines, afterLines, func(a, b string) bool { return a == b }, znkrdiff.Context(0))

	beforeLine := 0

	emitMatch := func(uptoBeforeLine int) {
		for beforeLine < uptoBeforeLine {
			cs.Retain(len([]rune(beforeLines[beforeLine])))
			beforeLine++
		}
	}

	for _, h := range hunks {
		emitMatch(h.PosX)

		beforeChunk := strings.Join(beforeLines[h.PosX:h.EndX], "")
		afterChunk := strings.Join(afterLines[h.PosY:h.EndY], "")
		beforeChunkLen := len([]rune(beforeChunk))
		afterChunkLen := len([]rune(afterChunk))
		nBeforeLines := h.EndX - h.PosX
		nAfterLines := h.EndY - h.PosY

		asymmetric := isAsymmetric(nBeforeLines, nAfterLines)
		tooBig := nBeforeLines+nAfterLines > compareMaxHunkLines
		empty := nBeforeLines == 0 || nAfterLines == 0

		switch {
		case empty || asymmetric || tooBig:
			if beforeChunkLen > 0 {
				cs.Delete(beforeChunkLen)
			}
			if afterChunkLen > 0 {
				// For large inserts (> compareLargeInsertCut lines) the
				// chunk is already a single contiguous slice here rather
				// than built line-by-line.
				cs.Insert(afterChunk)
			}
		default:
			emitCharDiff(cs, beforeChunk, afterChunk)
		}

		beforeLine = h.EndX
	}
	emitMatch(len(beforeLines))

	return NewTransaction(cs.finalize())
}

func isAsymmetric(nBefore, nAfter int) bool {
	if nBefore == 0 || nAfter == 0 {
		return true
	}
	big, small := nBefore, nAfter
	if small > big {
		big, small = small, big
	}
	return big > small*compareLineSizeRatio
}

// emitCharDiff runs a character-level Myers diff between two small,
// line-balanced text chunks and appends the equivalent Retain/Delete/Insert
// operations to cs.
func emitCharDiff(cs *ChangeSet, before, after string) {
	differ := dmp.New()
	a, b, lines := differ.DiffLinesToRunes(before, after)
	diffs := differ.DiffMainRunes(a, b, false)
	diffs = differ.DiffCharsToLines(diffs, lines)

	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case dmp.DiffEqual:
			cs.Retain(n)
		case dmp.DiffDelete:
			cs.Delete(n)
		case dmp.DiffInsert:
			cs.Insert(d.Text)
		}
	}
}

// splitKeepLineEnding splits s into lines, each retaining its trailing line
// terminator (so re-joining the slice exactly reconstructs s), matching how
// ropes are tokenized as a sequence of line slices for the line-level pass.
func splitKeepLineEnding(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
