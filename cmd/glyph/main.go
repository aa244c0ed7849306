// Command glyph is the CLI entry point for the editor core: flag parsing,
// config/log wiring, and either a one-shot report (--version, --health,
// --grammar) or standing up an Editor ready for a front end to drive.
package main

import (
	"os"

	"github.com/coreseekdev/glyph/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
