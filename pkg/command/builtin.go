package command

import (
	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/view"
)

// Builtin is the single static command list, grounded on
// original_source/helix-view/src/command/command_list.rs's COMMAND_LIST —
// narrowed to the subset spec.md's scope actually exercises (buffer/view
// lifecycle, undo/redo, save) rather than the original's LSP/DAP/theme/
// shell-heavy superset.
var Builtin = []Command{
	{
		Name:        "quit",
		Aliases:     []string{"q"},
		Description: "Close the current view.",
		Handler: func(ctx *Context, args []ParsedArg) error {
			return ctx.Editor.Tree().Close(ctx.View)
		},
	},
	{
		Name:        "quit!",
		Aliases:     []string{"q!"},
		Description: "Force close the current view, discarding its focused buffer if unsaved.",
		Handler: func(ctx *Context, args []ParsedArg) error {
			v, ok := ctx.Editor.Tree().View(ctx.View)
			if !ok {
				return ErrNoSuchView
			}
			if err := ctx.Editor.Tree().Close(ctx.View); err != nil {
				return err
			}
			return ctx.Editor.CloseBuffer(v.Buffer, true)
		},
	},
	{
		Name:        "write",
		Aliases:     []string{"w"},
		Description: "Write changes to disk.",
		ArgSchema:   []ArgSlot{Optional(ArgFilePath)},
		Handler: func(ctx *Context, args []ParsedArg) error {
			b, err := focusedBuffer(ctx)
			if err != nil {
				return err
			}
			if len(args) > 0 && args[0].Str != "" {
				b.Path = args[0].Str
			}
			return b.Save()
		},
	},
	{
		Name:        "buffer-close",
		Aliases:     []string{"bc", "bclose"},
		Description: "Close the focused buffer.",
		Handler: func(ctx *Context, args []ParsedArg) error {
			b, err := focusedBuffer(ctx)
			if err != nil {
				return err
			}
			return ctx.Editor.CloseBuffer(b.ID, false)
		},
	},
	{
		Name:        "buffer-close!",
		Aliases:     []string{"bc!", "bclose!"},
		Description: "Forcefully close the focused buffer, ignoring unsaved changes.",
		Handler: func(ctx *Context, args []ParsedArg) error {
			b, err := focusedBuffer(ctx)
			if err != nil {
				return err
			}
			return ctx.Editor.CloseBuffer(b.ID, true)
		},
	},
	{
		Name:        "undo",
		Aliases:     []string{"u"},
		Description: "Undo the last change.",
		ArgSchema:   []ArgSlot{Optional(ArgUndoKind)},
		Handler: func(ctx *Context, args []ParsedArg) error {
			b, err := focusedBuffer(ctx)
			if err != nil {
				return err
			}
			b.Undo()
			return nil
		},
	},
	{
		Name:        "redo",
		Aliases:     []string{"U"},
		Description: "Redo the last undone change.",
		ArgSchema:   []ArgSlot{Optional(ArgUndoKind)},
		Handler: func(ctx *Context, args []ParsedArg) error {
			b, err := focusedBuffer(ctx)
			if err != nil {
				return err
			}
			b.Redo()
			return nil
		},
	},
	{
		Name:        "split",
		Aliases:     []string{"sp", "hsplit"},
		Description: "Split the current view horizontally.",
		Handler: func(ctx *Context, args []ParsedArg) error {
			return splitFocused(ctx, view.LayoutHorizontal)
		},
	},
	{
		Name:        "vsplit",
		Aliases:     []string{"vsp"},
		Description: "Split the current view vertically.",
		Handler: func(ctx *Context, args []ParsedArg) error {
			return splitFocused(ctx, view.LayoutVertical)
		},
	},
	{
		Name:        "theme",
		Aliases:     nil,
		Description: "Switch the active theme.",
		ArgSchema:   []ArgSlot{Required(ArgTheme)},
		Handler: func(ctx *Context, args []ParsedArg) error {
			ctx.Editor.Theme = args[0].Str
			return nil
		},
	},
	{
		Name:        "indent-style",
		Aliases:     []string{"indentstyle"},
		Description: "Set the focused buffer's indent style.",
		ArgSchema:   []ArgSlot{Required(ArgIndentStyle)},
		Handler: func(ctx *Context, args []ParsedArg) error {
			b, err := focusedBuffer(ctx)
			if err != nil {
				return err
			}
			b.SetIndentStyle(args[0].Indent)
			return nil
		},
	},
	{
		Name:        "line-ending",
		Aliases:     []string{"lineending"},
		Description: "Set the focused buffer's line ending.",
		ArgSchema:   []ArgSlot{Required(ArgLineEnding)},
		Handler: func(ctx *Context, args []ParsedArg) error {
			b, err := focusedBuffer(ctx)
			if err != nil {
				return err
			}
			b.SetLineEnding(args[0].Ending)
			return nil
		},
	},
}

// All concatenates Builtin and Motions into the full static command set a
// default NewTable should register.
func All() []Command {
	all := make([]Command, 0, len(Builtin)+len(Motions))
	all = append(all, Builtin...)
	all = append(all, Motions...)
	return all
}

func focusedBuffer(ctx *Context) (*buffer.Buffer, error) {
	v, ok := ctx.Editor.Tree().View(ctx.View)
	if !ok {
		return nil, ErrNoSuchView
	}
	b, ok := ctx.Editor.Buffer(v.Buffer)
	if !ok {
		return nil, ErrNoSuchBuffer
	}
	return b, nil
}

func splitFocused(ctx *Context, layout view.Layout) error {
	v, ok := ctx.Editor.Tree().View(ctx.View)
	if !ok {
		return ErrNoSuchView
	}
	newView := view.New(v.Buffer, v.Gutters)
	return ctx.Editor.Tree().Split(newView, layout)
}
