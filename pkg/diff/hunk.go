// Package diff maintains the version-control gutter for a single buffer: a
// background worker that diffs the live document against a VCS baseline and
// exposes the result as a sorted, non-overlapping list of line Hunks.
//
// This mirrors the channel + sync.RWMutex + closeCh worker idiom used
// throughout the teacher's pkg/transport (memory_history.go,
// multidoc_transport.go, sse.go): one goroutine owns the mutable state and
// talks to the rest of the program over buffered channels.
package diff

import "sort"

// Hunk is a pair of aligned line ranges describing one difference between
// the VCS baseline and the live document, per spec.md §3.
type Hunk struct {
	Before Range // [before.Start, before.End) in the baseline
	After  Range // [after.Start, after.End) in the document
}

// Range is a half-open line range [Start, End).
type Range struct {
	Start, End uint32
}

// Len reports the number of lines in the range.
func (r Range) Len() uint32 { return r.End - r.Start }

// sortHunks sorts hunks ascending on Before.Start (and, since hunks never
// overlap, this also sorts them on After.Start), per spec.md invariant 3.
func sortHunks(hunks []Hunk) {
	sort.Slice(hunks, func(i, j int) bool {
		return hunks[i].Before.Start < hunks[j].Before.Start
	})
}

// hunkAt returns the index of the hunk covering line, or -1.
func hunkAt(hunks []Hunk, line uint32) int {
	i := sort.Search(len(hunks), func(i int) bool { return hunks[i].After.End > line })
	if i < len(hunks) && hunks[i].After.Start <= line && line < hunks[i].After.End {
		return i
	}
	return -1
}

// nextHunk returns the index of the first hunk whose After range starts
// after line, or -1.
func nextHunk(hunks []Hunk, line uint32) int {
	i := sort.Search(len(hunks), func(i int) bool { return hunks[i].After.Start > line })
	if i < len(hunks) {
		return i
	}
	return -1
}

// prevHunk returns the index of the last hunk whose After range ends at or
// before line, or -1.
func prevHunk(hunks []Hunk, line uint32) int {
	i := sort.Search(len(hunks), func(i int) bool { return hunks[i].After.End > line })
	i--
	if i >= 0 {
		return i
	}
	return -1
}
