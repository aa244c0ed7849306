package cmd

import (
	"fmt"
	"log"

	"github.com/coreseekdev/glyph/pkg/buffer"
	"github.com/coreseekdev/glyph/pkg/command"
	"github.com/coreseekdev/glyph/pkg/config"
	"github.com/coreseekdev/glyph/pkg/dispatcher"
	"github.com/coreseekdev/glyph/pkg/editor"
	"github.com/coreseekdev/glyph/pkg/keymap"
	"github.com/coreseekdev/glyph/pkg/view"
)

// runOpen wires an Editor, the default keymap, the full command table, and
// a Dispatcher over the given paths (or a single empty buffer if none were
// given), the way a real front end would before handing control to its
// render loop. Reading input from the terminal and drawing frames is the
// render loop's job, which spec.md §1's Non-goals place outside this core
// — so this prints a readiness summary and returns rather than blocking.
func runOpen(paths []string, configPath string) error {
	if configPath != "" {
		log.Printf("config override %q requested; TOML loading is not implemented in this core", configPath)
	}

	cfg := config.Default()

	var seed *buffer.Buffer
	var rest []*buffer.Buffer
	if len(paths) == 0 {
		seed = buffer.NewFile()
	} else {
		for i, p := range paths {
			b, err := buffer.Open(p)
			if err != nil {
				return fmt.Errorf("opening %s: %w", p, err)
			}
			if i == 0 {
				seed = b
			} else {
				rest = append(rest, b)
			}
		}
	}

	gutters := make([]view.GutterComponent, len(cfg.View.Gutters))
	for i, g := range cfg.View.Gutters {
		gutters[i] = view.GutterComponent(g)
	}
	seedView := view.New(seed.ID, gutters)
	ed := editor.New(seed, seedView, view.Rect{Width: 80, Height: 24}, cfg)
	for _, b := range rest {
		ed.OpenBuffer(b)
	}

	ed.Keymap.Merge(keymap.Default())
	table := command.NewTable(command.All())
	d := dispatcher.New(ed, table, keymap.Mode("normal"))

	log.Printf("glyph ready: %d buffer(s), mode=%s", len(ed.Buffers()), d.Mode)
	fmt.Printf("glyph: %d buffer(s) loaded, no interactive front end in this build\n", len(ed.Buffers()))
	return nil
}
