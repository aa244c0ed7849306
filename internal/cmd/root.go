// Package cmd wires glyph's command-line surface: flag parsing, logging
// setup, and the three entry points spec.md §6 names (normal startup,
// --health, --grammar), in the cobra idiom aleiby-gastown's internal/cmd
// package uses for its own command tree.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

var (
	flagVersion  bool
	flagHealth   string
	flagGrammar  string
	flagConfig   string
	flagLog      string
	flagVerbose  int
)

const healthNoOptDefVal = "*"

var rootCmd = &cobra.Command{
	Use:           "glyph [paths...]",
	Short:         "A modal terminal text editor core",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRoot,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&flagVersion, "version", "v", false, "print the version and exit")
	flags.StringVar(&flagHealth, "health", "", "report health for one language, or every configured language")
	flags.Lookup("health").NoOptDefVal = healthNoOptDefVal
	flags.StringVar(&flagGrammar, "grammar", "", `manage tree-sitter grammars: "fetch" or "build"`)
	flags.StringVarP(&flagConfig, "config", "c", "", "path to a config file, overriding the default location")
	flags.StringVar(&flagLog, "log", "", "path to a log file, overriding the default location")
	flags.CountVarP(&flagVerbose, "verbose", "V", "increase logging verbosity (repeatable, 0..3)")
}

// Execute parses os.Args and runs the resolved command, returning the
// process exit code spec.md §6 specifies (0 success, non-zero otherwise;
// a running editor can additionally request a specific code via
// :cquit N, which is out of this package's reach since the interactive
// loop itself is a Non-goal of the core spec.md describes).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "glyph:", err)
		return 1
	}
	return 0
}

func runRoot(c *cobra.Command, paths []string) error {
	if flagVersion {
		fmt.Printf("glyph %s\n", Version)
		return nil
	}

	closeLog, err := setupLogging(flagLog, flagVerbose)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()

	if c.Flags().Changed("grammar") {
		return runGrammar(flagGrammar)
	}
	if c.Flags().Changed("health") {
		lang := flagHealth
		if lang == healthNoOptDefVal {
			lang = ""
		}
		return runHealth(lang)
	}
	return runOpen(paths, flagConfig)
}

func setupLogging(path string, verbosity int) (func(), error) {
	if verbosity > 3 {
		verbosity = 3
	}
	if path == "" {
		log.SetOutput(io.Discard)
		if verbosity > 0 {
			log.SetOutput(os.Stderr)
		}
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }, nil
}
