package textobject

import "github.com/coreseekdev/glyph/pkg/rope"

// pairs is the known set of surrounding delimiters consulted when no
// specific char is given to PairSurround, per spec.md §4.4.
var pairs = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
	'\'': '\'',
	'"':  '"',
	'`':  '`',
}

func closingFor(open rune) (rune, bool) {
	c, ok := pairs[open]
	return c, ok
}

func isOpening(r rune) bool {
	_, ok := pairs[r]
	return ok
}

// PairSurround finds the count-th enclosing matching pair of char (or, if
// char is 0, the closest enclosing pair among the known set) around
// r.Head, per spec.md §4.4. Inside mode excludes the delimiters; around
// mode includes them.
func PairSurround(text *rope.Rope, r rope.Range, char rune, count int, around bool) (rope.Range, bool) {
	if count < 1 {
		count = 1
	}
	pos := r.Head

	openPos, closeChar, ok := findEnclosingOpen(text, pos, char, count)
	if !ok {
		return r, false
	}
	closePos, ok := findMatchingClose(text, openPos+1, rune(mustChar(text, openPos)), closeChar)
	if !ok {
		return r, false
	}

	if around {
		return rope.Range{Anchor: openPos, Head: closePos + 1}, true
	}
	return rope.Range{Anchor: openPos + 1, Head: closePos}, true
}

func mustChar(text *rope.Rope, pos int) rune {
	ch, _ := text.CharAt(pos)
	return ch
}

// findEnclosingOpen scans backward from pos looking for the count-th
// enclosing opening delimiter: a closing delimiter encountered first pushes
// a "skip" that the next matching opening delimiter consumes instead of
// counting as an enclosing level, so already-balanced nested pairs before
// pos are stepped over rather than miscounted.
func findEnclosingOpen(text *rope.Rope, pos int, char rune, count int) (openPos int, closeChar rune, ok bool) {
	remaining := count
	skipOpen := map[rune]int{}

	for i := pos - 1; i >= 0; i-- {
		ch, err := text.CharAt(i)
		if err != nil {
			continue
		}
		if char != 0 {
			cc, isClose := pairs[char]
			if ch == cc && isClose && cc != char {
				skipOpen[char]++
				continue
			}
			if ch != char {
				continue
			}
			if skipOpen[char] > 0 {
				skipOpen[char]--
				continue
			}
			remaining--
			if remaining == 0 {
				return i, cc, true
			}
			continue
		}

		if o, isClose := closingOf(ch); isClose {
			skipOpen[o]++
			continue
		}
		if cc, isOpen := closingFor(ch); isOpen {
			if skipOpen[ch] > 0 {
				skipOpen[ch]--
				continue
			}
			remaining--
			if remaining == 0 {
				return i, cc, true
			}
		}
	}
	return 0, 0, false
}

// closingOf reports whether ch is a closing delimiter of the known set,
// returning the opening delimiter it pairs with.
func closingOf(ch rune) (rune, bool) {
	for o, c := range pairs {
		if c == ch && o != c {
			return o, true
		}
	}
	return 0, false
}

// findMatchingClose scans forward from startPos (the char right after an
// opening delimiter already consumed) tracking nesting depth of the same
// open/close pair until it returns to the opening's own level.
func findMatchingClose(text *rope.Rope, startPos int, openChar, closeChar rune) (int, bool) {
	depth := 1
	length := text.Length()
	for i := startPos; i < length; i++ {
		ch, err := text.CharAt(i)
		if err != nil {
			continue
		}
		switch {
		case ch == closeChar && closeChar != openChar:
			depth--
		case ch == openChar && openChar != closeChar:
			depth++
		case ch == closeChar: // quote-like delimiters where open == close
			depth--
		}
		if depth == 0 {
			return i, true
		}
	}
	return 0, false
}
