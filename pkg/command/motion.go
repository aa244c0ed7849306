package command

import (
	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/motion"
	"github.com/coreseekdev/glyph/pkg/rope"
)

// perRange runs fn over every range of the focused buffer's selection for
// ctx.View, replacing the selection with the mapped ranges and preserving
// which one is primary. count defaults to 1 when the dispatcher supplied
// no multiplier.
func perRange(ctx *Context, fn func(text *rope.Rope, r rope.Range, count int) rope.Range) error {
	b, err := focusedBuffer(ctx)
	if err != nil {
		return err
	}
	view := buffer.ViewID(ctx.View)
	sel := b.Selection(view)
	count := int(ctx.Count)
	if count == 0 {
		count = 1
	}

	ranges := make([]rope.Range, 0, sel.Len())
	for _, r := range sel.Iter() {
		ranges = append(ranges, fn(b.Text(), r, count))
	}
	b.SetSelection(view, rope.NewSelectionWithPrimary(ranges, sel.PrimaryIndex()))
	return nil
}

func horizontal(dir int, m motion.Movement) Handler {
	return func(ctx *Context, args []ParsedArg) error {
		return perRange(ctx, func(text *rope.Rope, r rope.Range, count int) rope.Range {
			return motion.MoveHorizontally(text, r, count, dir, m)
		})
	}
}

func lineEdge(edge func(text *rope.Rope, r rope.Range, m motion.Movement) rope.Range, m motion.Movement) Handler {
	return func(ctx *Context, args []ParsedArg) error {
		return perRange(ctx, func(text *rope.Rope, r rope.Range, count int) rope.Range {
			return edge(text, r, m)
		})
	}
}

func word(target motion.Target) Handler {
	return func(ctx *Context, args []ParsedArg) error {
		return perRange(ctx, func(text *rope.Rope, r rope.Range, count int) rope.Range {
			return motion.MoveWord(text, r, count, target)
		})
	}
}

// Motions is the selection-moving subset of the command table, grounded on
// original_source/helix-term/src/commands.rs's move_*/extend_* bindings —
// narrowed to the character/word/line-edge motions pkg/motion exports as
// pure functions. Vertical and paragraph motions exist in pkg/motion but
// are not bound here: both need a remembered target column or blank-line
// scan state threaded across repeated invocations, which belongs in the
// per-view cursor state a real render loop would own, not a stateless
// command Handler (spec.md's Non-goals exclude the render loop itself).
var Motions = []Command{
	{Name: "move_char_left", Description: "Move left one grapheme.", Handler: horizontal(-1, motion.Move)},
	{Name: "move_char_right", Description: "Move right one grapheme.", Handler: horizontal(1, motion.Move)},
	{Name: "extend_char_left", Description: "Extend selection left one grapheme.", Handler: horizontal(-1, motion.Extend)},
	{Name: "extend_char_right", Description: "Extend selection right one grapheme.", Handler: horizontal(1, motion.Extend)},

	{Name: "move_line_start", Description: "Move to the first non-blank of the line.", Handler: lineEdge(motion.MoveLineStart, motion.Move)},
	{Name: "move_line_end", Description: "Move to the end of the line.", Handler: lineEdge(motion.MoveLineEnd, motion.Move)},
	{Name: "extend_line_start", Description: "Extend selection to the first non-blank of the line.", Handler: lineEdge(motion.MoveLineStart, motion.Extend)},
	{Name: "extend_line_end", Description: "Extend selection to the end of the line.", Handler: lineEdge(motion.MoveLineEnd, motion.Extend)},

	{Name: "move_next_word_start", Aliases: []string{"move_word_forward"}, Description: "Move to the start of the next word.", Handler: word(motion.NextWordStart)},
	{Name: "move_prev_word_start", Aliases: []string{"move_word_backward"}, Description: "Move to the start of the previous word.", Handler: word(motion.PrevWordStart)},
	{Name: "move_next_word_end", Description: "Move to the end of the next word.", Handler: word(motion.NextWordEnd)},
	{Name: "move_prev_word_end", Description: "Move to the end of the previous word.", Handler: word(motion.PrevWordEnd)},
	{Name: "move_next_long_word_start", Description: "Move to the start of the next WORD.", Handler: word(motion.NextLongWordStart)},
	{Name: "move_next_long_word_end", Description: "Move to the end of the next WORD.", Handler: word(motion.NextLongWordEnd)},
	{Name: "move_prev_long_word_start", Description: "Move to the start of the previous WORD.", Handler: word(motion.PrevLongWordStart)},
}
