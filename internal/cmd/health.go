package cmd

import (
	"fmt"
	"sort"

	"github.com/coreseekdev/glyph/pkg/config"
)

// runHealth reports the configured defaults for one language, or every
// language the config names, per spec.md §6's "--health [language]" flag.
// Grammar/query availability itself (tree-sitter compilation) is a
// Non-goal (spec.md §1); this only reports what the config layer knows.
func runHealth(lang string) error {
	cfg := config.Default()

	langs := configuredLanguages(cfg)
	if lang != "" {
		if !contains(langs, lang) {
			fmt.Printf("%s: no configuration found\n", lang)
			return nil
		}
		langs = []string{lang}
	}

	fmt.Println("Runtime")
	fmt.Printf("  theme:        %s\n", cfg.Theme)
	fmt.Printf("  indent width: %d\n", cfg.Document.IndentWidth)
	fmt.Printf("  line ending:  %q\n", cfg.Document.LineEnding)

	fmt.Println("Languages")
	if len(langs) == 0 {
		fmt.Println("  (none configured)")
		return nil
	}
	for _, l := range langs {
		fmt.Printf("  %s: ok\n", l)
	}
	return nil
}

// configuredLanguages lists the languages named under the config's
// "keys.<mode>" or per-language override tables. The shape-only Config in
// pkg/config doesn't carry a language registry of its own (TOML loading is
// out of scope), so this walks the one place a language name could appear:
// Keys' top-level table names that aren't mode names.
func configuredLanguages(cfg *config.Config) []string {
	modes := map[string]bool{"normal": true, "insert": true, "select": true}
	var langs []string
	for name := range cfg.Keys {
		if !modes[name] {
			langs = append(langs, name)
		}
	}
	sort.Strings(langs)
	return langs
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
