package textobject

import "github.com/coreseekdev/glyph/pkg/rope"

// Capture is one match of a textobject query capture, e.g. "function.inside"
// or "function.around", against the syntax tree: a byte span plus the
// capture name it matched, mirroring the shape the highlighter's
// HighlightRange uses for query captures.
type Capture struct {
	StartByte, EndByte uint32
	Name               string
}

// SyntaxProvider is the external boundary a language's parsed tree crosses
// into this package: something that can answer "what are the `name`.around /
// `name`.inside / `name`.movement captures on the syntax root, optionally
// restricted to a byte range". Buffers own the concrete parser/query
// machinery; textobject only needs this much of it.
type SyntaxProvider interface {
	Captures(name string, byteRange *ByteRange) []Capture
}

// ByteRange restricts a capture query to a byte span, used to scope a
// lookup to before or after the cursor's line.
type ByteRange struct {
	Start, End uint32
}

// Direction picks which matching node TreesitterObject returns when more
// than one capture qualifies.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
)

// TreesitterObject queries `{name}.around` / `{name}.inside` from provider,
// optionally restricted by scope, and picks the first (DirectionForward) or
// last (DirectionBackward) matching node, converting its byte span to chars
// via byteToChar. In Extend mode the existing anchor is preserved; in Move
// mode the returned range collapses to the new span with both anchor and
// head set, matching pkg/motion's convention, per spec.md §4.4.
func TreesitterObject(text *rope.Rope, r rope.Range, provider SyntaxProvider, name string, around bool, dir Direction, scope *ByteRange, byteToChar func(int) int, extend bool) (rope.Range, bool) {
	suffix := ".inside"
	if around {
		suffix = ".around"
	}
	captures := provider.Captures(name+suffix, scope)
	if len(captures) == 0 {
		return r, false
	}

	var chosen Capture
	switch dir {
	case DirectionBackward:
		chosen = captures[len(captures)-1]
	default:
		chosen = captures[0]
	}

	start := byteToChar(int(chosen.StartByte))
	end := byteToChar(int(chosen.EndByte))

	if extend {
		return rope.Range{Anchor: r.Anchor, Head: end}, true
	}
	return rope.Range{Anchor: start, Head: end}, true
}
